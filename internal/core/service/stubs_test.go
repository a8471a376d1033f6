package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/blanca/commerce-api/internal/core/domain"
	"github.com/blanca/commerce-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories. Each mirrors the filtering the real Postgres
// repository performs and counts writes so tests can assert that failed
// operations caused no mutation.
// ---------------------------------------------------------------------------

type stubCountryRepo struct {
	countries   map[string]domain.Country
	saveCalls   int
	deleteCalls int
}

func newStubCountryRepo() *stubCountryRepo {
	return &stubCountryRepo{countries: make(map[string]domain.Country)}
}

func (r *stubCountryRepo) FindAll(_ context.Context) ([]domain.Country, error) {
	out := make([]domain.Country, 0, len(r.countries))
	for _, c := range r.countries {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *stubCountryRepo) FindByCode(_ context.Context, code string) (*domain.Country, error) {
	c, ok := r.countries[code]
	if !ok {
		return nil, domain.ErrCountryNotFound
	}
	clone := c
	return &clone, nil
}

func (r *stubCountryRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	_, ok := r.countries[code]
	return ok, nil
}

func (r *stubCountryRepo) Save(_ context.Context, country *domain.Country) (*domain.Country, error) {
	r.saveCalls++
	r.countries[country.Code] = *country
	clone := *country
	return &clone, nil
}

func (r *stubCountryRepo) Delete(_ context.Context, code string) error {
	r.deleteCalls++
	delete(r.countries, code)
	return nil
}

type stubUserRepo struct {
	users     map[int64]domain.User
	nextID    int64
	saveCalls int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]domain.User), nextID: 1}
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := u
	return &clone, nil
}

func (r *stubUserRepo) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := r.users[id]
	return ok, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	r.saveCalls++
	if user.ID == 0 {
		user.ID = r.nextID
		r.nextID++
	}
	r.users[user.ID] = *user
	clone := *user
	return &clone, nil
}

type stubProductRepo struct {
	products    map[int64]domain.Product
	nextID      int64
	saveCalls   int
	deleteCalls int
	lastFilter  ports.ProductFilter
	filterCalls int
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[int64]domain.Product), nextID: 1}
}

func (r *stubProductRepo) FindAll(_ context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := p
	return &clone, nil
}

func (r *stubProductRepo) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := r.products[id]
	return ok, nil
}

// FindWithFilters applies the same conjunction the real SQL query would.
func (r *stubProductRepo) FindWithFilters(_ context.Context, filter ports.ProductFilter) ([]domain.Product, error) {
	r.filterCalls++
	r.lastFilter = filter

	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		if filter.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.MinPrice != nil && p.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && p.Price > *filter.MaxPrice {
			continue
		}
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubProductRepo) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	r.saveCalls++
	if product.ID == 0 {
		product.ID = r.nextID
		r.nextID++
	}
	r.products[product.ID] = *product
	clone := *product
	return &clone, nil
}

func (r *stubProductRepo) Delete(_ context.Context, id int64) error {
	r.deleteCalls++
	delete(r.products, id)
	return nil
}

type stubOrderRepo struct {
	orders      map[int64]domain.Order
	nextID      int64
	saveCalls   int
	deleteCalls int
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[int64]domain.Order), nextID: 1}
}

func cloneOrder(o domain.Order) domain.Order {
	clone := o
	if o.User != nil {
		u := *o.User
		clone.User = &u
	}
	clone.Products = append([]domain.OrderProduct(nil), o.Products...)
	return clone
}

func (r *stubOrderRepo) FindAll(_ context.Context) ([]domain.Order, error) {
	out := make([]domain.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, cloneOrder(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id int64) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	clone := cloneOrder(o)
	return &clone, nil
}

func (r *stubOrderRepo) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := r.orders[id]
	return ok, nil
}

func (r *stubOrderRepo) FindByUserID(_ context.Context, userID int64) ([]domain.Order, error) {
	out := make([]domain.Order, 0)
	for _, o := range r.orders {
		if o.User != nil && o.User.ID == userID {
			out = append(out, cloneOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubOrderRepo) Save(_ context.Context, order *domain.Order) (*domain.Order, error) {
	r.saveCalls++
	if order.ID == 0 {
		order.ID = r.nextID
		r.nextID++
	}
	r.orders[order.ID] = cloneOrder(*order)
	clone := cloneOrder(*order)
	return &clone, nil
}

func (r *stubOrderRepo) Delete(_ context.Context, id int64) error {
	r.deleteCalls++
	delete(r.orders, id)
	return nil
}

// ---------------------------------------------------------------------------
// Collaborator stubs
// ---------------------------------------------------------------------------

// stubHasher prefixes instead of hashing and counts calls so tests can assert
// ordering guarantees (e.g. conflict check before hashing).
type stubHasher struct {
	hashCalls int
}

func (h *stubHasher) Hash(plain string) (string, error) {
	h.hashCalls++
	return "hashed:" + plain, nil
}

func (h *stubHasher) Compare(hash, plain string) error {
	if hash != "hashed:"+plain {
		return errors.New("mismatch")
	}
	return nil
}

type stubThrottle struct {
	failures map[string]int
	limit    int
	err      error // when set, every call fails with this error
}

func newStubThrottle(limit int) *stubThrottle {
	return &stubThrottle{failures: make(map[string]int), limit: limit}
}

func (t *stubThrottle) TooManyFailures(_ context.Context, email string) (bool, error) {
	if t.err != nil {
		return false, t.err
	}
	return t.failures[email] >= t.limit, nil
}

func (t *stubThrottle) RecordFailure(_ context.Context, email string) error {
	if t.err != nil {
		return t.err
	}
	t.failures[email]++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, email string) error {
	if t.err != nil {
		return t.err
	}
	delete(t.failures, email)
	return nil
}
