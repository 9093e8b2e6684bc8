package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/seatech/storefront-api/internal/core/domain"
	"github.com/seatech/storefront-api/internal/core/ports"
)

// --- users ---

type memUsers struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMemUsers(users ...*domain.User) *memUsers {
	m := &memUsers{users: map[string]*domain.User{}}
	for _, u := range users {
		m.users[u.Email] = u
	}
	return m
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) Upsert(_ context.Context, email string, p domain.Profile) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		u = &domain.User{ID: fmt.Sprintf("u%d", len(m.users)+1), Email: email, Role: domain.RoleCustomer}
		m.users[email] = u
	}
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&u.Name, p.Name)
	set(&u.Phone, p.Phone)
	set(&u.Location, p.Location)
	set(&u.Education, p.Education)
	set(&u.LinkedIn, p.LinkedIn)
	set(&u.PhotoURL, p.PhotoURL)
	cp := *u
	return &cp, nil
}

func (m *memUsers) List(context.Context) ([]*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (m *memUsers) SetRole(_ context.Context, email string, role domain.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (m *memUsers) DeleteNonAdmin(_ context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok || u.Role == domain.RoleAdmin {
		return false, nil
	}
	delete(m.users, email)
	return true, nil
}

// --- products ---

type memProducts struct {
	mu       sync.Mutex
	products map[string]*domain.Product
	// afterFind runs after FindByID copied the product, outside the lock.
	afterFind func()
	setErr    error
	writes    int
}

func newMemProducts(products ...*domain.Product) *memProducts {
	m := &memProducts{products: map[string]*domain.Product{}}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *memProducts) quantity(id string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.products[id].AvailableQuantity
}

func (m *memProducts) List(context.Context) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Product, 0, len(m.products))
	for _, p := range m.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memProducts) FindByID(_ context.Context, id string) (*domain.Product, error) {
	m.mu.Lock()
	p, ok := m.products[id]
	var cp domain.Product
	if ok {
		cp = *p
	}
	m.mu.Unlock()
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	if m.afterFind != nil {
		m.afterFind()
	}
	return &cp, nil
}

func (m *memProducts) Create(_ context.Context, p *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = fmt.Sprintf("p%d", len(m.products)+1)
	cp := *p
	m.products[p.ID] = &cp
	return nil
}

func (m *memProducts) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *memProducts) SetAvailableQuantity(_ context.Context, id string, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	p, ok := m.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	m.writes++
	p.AvailableQuantity = quantity
	return nil
}

func (m *memProducts) CompareAndSetAvailableQuantity(_ context.Context, id string, expected, quantity int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return false, m.setErr
	}
	p, ok := m.products[id]
	if !ok {
		return false, domain.ErrProductNotFound
	}
	if p.AvailableQuantity != expected {
		return false, nil
	}
	m.writes++
	p.AvailableQuantity = quantity
	return true, nil
}

// --- orders ---

type memOrders struct {
	mu           sync.Mutex
	orders       map[string]*domain.Order
	deliverErr   error
	markPaidHits int
	writes       int
}

func newMemOrders(orders ...*domain.Order) *memOrders {
	m := &memOrders{orders: map[string]*domain.Order{}}
	for _, o := range orders {
		m.orders[o.ID] = o
	}
	return m
}

func (m *memOrders) get(id string) domain.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.orders[id]
}

func (m *memOrders) Create(_ context.Context, o *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o.ID = fmt.Sprintf("o%d", len(m.orders)+1)
	cp := *o
	m.orders[o.ID] = &cp
	return nil
}

func (m *memOrders) List(_ context.Context, f ports.ListOrdersFilter) ([]*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Order
	for _, o := range m.orders {
		if f.UserEmail != "" && o.UserEmail != f.UserEmail {
			continue
		}
		if f.Status != "" && string(o.Status) != f.Status {
			continue
		}
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memOrders) MarkPaid(_ context.Context, id, txn string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.markPaidHits++
	o, ok := m.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	if !o.Status.CanTransitionTo(domain.OrderPending) {
		return domain.ErrInvalidTransition
	}
	o.TransactionID = txn
	o.Status = domain.OrderPending
	o.UpdatedAt = time.Now()
	m.writes++
	return nil
}

func (m *memOrders) MarkDelivered(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deliverErr != nil {
		return m.deliverErr
	}
	o, ok := m.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.Status = domain.OrderDelivered
	m.writes++
	return nil
}

// --- dedup & events ---

type memDedup struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newMemDedup() *memDedup { return &memDedup{seen: map[string]bool{}} }

func (d *memDedup) IsDuplicate(_ context.Context, orderID, txn string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.seen[orderID+":"+txn], nil
}

func (d *memDedup) Mark(_ context.Context, orderID, txn string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seen[orderID+":"+txn] = true
	return nil
}

type recordedEvents struct {
	mu     sync.Mutex
	events []domain.OrderEvent
}

func (r *recordedEvents) Enqueue(e domain.OrderEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordedEvents) types() []domain.OrderEventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.OrderEventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}
