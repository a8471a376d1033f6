package domain

import "time"

// OrderStatus is the lifecycle state of an order. There is no enforced
// transition graph: update may overwrite any status with any other.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// Valid reports whether s is one of the known order statuses.
func (s OrderStatus) Valid() bool {
	return s == OrderPending || s == OrderCompleted || s == OrderCancelled
}

// OrderProduct is a line item. Its identity is the (order, product) pair and
// it never exists outside its owning order.
type OrderProduct struct {
	ProductID int64    `json:"product_id"`
	Amount    int      `json:"amount"`
	Product   *Product `json:"product,omitempty"` // populated on reads
}

// Order is the purchase aggregate. It exclusively owns its line items:
// deleting the order removes them, and updating the Products slice replaces
// the collection wholesale.
type Order struct {
	ID        int64          `json:"id"`
	User      *User          `json:"user"`
	Status    OrderStatus    `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	Products  []OrderProduct `json:"order_products"`
}
