package domain

// Country is a reference entity identified by its short code (1-3 chars).
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
