package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"yemalin/internal/domain"
)

// MemoryStore объединённое in-memory хранилище пользователей, товаров и заказов
type MemoryStore struct {
	mu           sync.RWMutex
	usersByID    map[string]domain.User
	userByEmail  map[string]string
	productsByID map[string]domain.Product
	ordersByID   map[string]domain.Order
	orderByNum   map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		usersByID:    make(map[string]domain.User),
		userByEmail:  make(map[string]string),
		productsByID: make(map[string]domain.Product),
		ordersByID:   make(map[string]domain.Order),
		orderByNum:   make(map[string]string),
	}
}

// transaction-aware locking helpers
type txKey struct{}

func isTx(ctx context.Context) bool {
	v := ctx.Value(txKey{})
	if v == nil {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

func (m *MemoryStore) rlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RLock()
	}
}
func (m *MemoryStore) runlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RUnlock()
	}
}
func (m *MemoryStore) wlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Lock()
	}
}
func (m *MemoryStore) wunlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Unlock()
	}
}

// snapshot copies every table; used to roll back a failed transaction
type snapshot struct {
	usersByID    map[string]domain.User
	userByEmail  map[string]string
	productsByID map[string]domain.Product
	ordersByID   map[string]domain.Order
	orderByNum   map[string]string
}

func (m *MemoryStore) snapshot() snapshot {
	s := snapshot{
		usersByID:    make(map[string]domain.User, len(m.usersByID)),
		userByEmail:  make(map[string]string, len(m.userByEmail)),
		productsByID: make(map[string]domain.Product, len(m.productsByID)),
		ordersByID:   make(map[string]domain.Order, len(m.ordersByID)),
		orderByNum:   make(map[string]string, len(m.orderByNum)),
	}
	for k, v := range m.usersByID {
		s.usersByID[k] = cloneUser(v)
	}
	for k, v := range m.userByEmail {
		s.userByEmail[k] = v
	}
	for k, v := range m.productsByID {
		s.productsByID[k] = cloneProduct(v)
	}
	for k, v := range m.ordersByID {
		s.ordersByID[k] = cloneOrder(v)
	}
	for k, v := range m.orderByNum {
		s.orderByNum[k] = v
	}
	return s
}

func (m *MemoryStore) restore(s snapshot) {
	m.usersByID = s.usersByID
	m.userByEmail = s.userByEmail
	m.productsByID = s.productsByID
	m.ordersByID = s.ordersByID
	m.orderByNum = s.orderByNum
}

func cloneUser(u domain.User) domain.User {
	if u.LastLogin != nil {
		t := *u.LastLogin
		u.LastLogin = &t
	}
	return u
}

func cloneProduct(p domain.Product) domain.Product {
	p.Images = append([]string(nil), p.Images...)
	p.Sizes = append([]domain.ProductSize(nil), p.Sizes...)
	if p.ReleaseDate != nil {
		t := *p.ReleaseDate
		p.ReleaseDate = &t
	}
	return p
}

func cloneOrder(o domain.Order) domain.Order {
	o.Items = append([]domain.OrderItem(nil), o.Items...)
	if o.UserID != nil {
		id := *o.UserID
		o.UserID = &id
	}
	if o.ShippedAt != nil {
		t := *o.ShippedAt
		o.ShippedAt = &t
	}
	if o.DeliveredAt != nil {
		t := *o.DeliveredAt
		o.DeliveredAt = &t
	}
	return o
}

// Ensure interfaces
var _ ProductRepository = (*MemoryStore)(nil)

// ProductRepository implementation
func (m *MemoryStore) Create(ctx context.Context, p *domain.Product) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if _, ok := m.productsByID[p.ID]; ok {
		return ErrDuplicate
	}
	domain.SortSizes(p.Sizes)
	p.Stock = 0
	for _, s := range p.Sizes {
		p.Stock += s.Stock
	}
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	m.productsByID[p.ID] = cloneProduct(*p)
	return nil
}

func (m *MemoryStore) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	p, ok := m.productsByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	// return copy
	cp := cloneProduct(p)
	return &cp, nil
}

// Update overwrites descriptive fields; stock and sizes stay as stored.
func (m *MemoryStore) Update(ctx context.Context, p *domain.Product) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	cur, ok := m.productsByID[p.ID]
	if !ok {
		return ErrNotFound
	}
	next := cloneProduct(*p)
	next.Sizes = cur.Sizes
	next.Stock = cur.Stock
	next.CreatedAt = cur.CreatedAt
	next.UpdatedAt = time.Now().UTC()
	m.productsByID[p.ID] = next
	*p = cloneProduct(next)
	return nil
}

func (m *MemoryStore) ListActive(ctx context.Context) ([]domain.Product, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	out := make([]domain.Product, 0)
	for _, p := range m.productsByID {
		if p.Orderable() {
			out = append(out, cloneProduct(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MemoryStore) ListComingSoon(ctx context.Context) ([]domain.Product, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	out := make([]domain.Product, 0)
	for _, p := range m.productsByID {
		if p.IsComingSoon {
			out = append(out, cloneProduct(p))
		}
	}
	// release date ascending, undated last
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].ReleaseDate, out[j].ReleaseDate
		switch {
		case a == nil && b == nil:
			return out[i].ID < out[j].ID
		case a == nil:
			return false
		case b == nil:
			return true
		case !a.Equal(*b):
			return a.Before(*b)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MemoryStore) SizeStock(ctx context.Context, productID, size string) (int64, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	p, ok := m.productsByID[productID]
	if !ok {
		return 0, ErrNotFound
	}
	stock, ok := p.SizeStock(size)
	if !ok {
		return 0, fmt.Errorf("size %q: %w", size, ErrNotFound)
	}
	return stock, nil
}

// AdjustStock moves the size counter and the aggregate together under one lock.
func (m *MemoryStore) AdjustStock(ctx context.Context, productID, size string, delta int64) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	p, ok := m.productsByID[productID]
	if !ok {
		return ErrNotFound
	}
	p = cloneProduct(p)
	idx := -1
	for i, s := range p.Sizes {
		if s.Size == size {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("size %q: %w", size, ErrNotFound)
	}
	if p.Sizes[idx].Stock+delta < 0 {
		return ErrInsufficientStock
	}
	p.Sizes[idx].Stock += delta
	p.Stock += delta
	p.UpdatedAt = time.Now().UTC()
	m.productsByID[productID] = p
	return nil
}

func (m *MemoryStore) ListAll(ctx context.Context) ([]domain.Product, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	out := make([]domain.Product, 0, len(m.productsByID))
	for _, p := range m.productsByID {
		out = append(out, cloneProduct(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// MemoryUsers UserRepository поверх общего хранилища
type MemoryUsers struct{ store *MemoryStore }

func NewMemoryUsers(store *MemoryStore) *MemoryUsers { return &MemoryUsers{store: store} }

var _ UserRepository = (*MemoryUsers)(nil)

func (mu *MemoryUsers) Create(ctx context.Context, u *domain.User) error {
	mu.store.wlock(ctx)
	defer mu.store.wunlock(ctx)
	key := NormalizeEmail(u.Email)
	if _, ok := mu.store.userByEmail[key]; ok {
		return ErrDuplicate
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Email = key
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	mu.store.usersByID[u.ID] = cloneUser(*u)
	mu.store.userByEmail[key] = u.ID
	return nil
}

func (mu *MemoryUsers) GetByID(ctx context.Context, id string) (*domain.User, error) {
	mu.store.rlock(ctx)
	defer mu.store.runlock(ctx)
	u, ok := mu.store.usersByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := cloneUser(u)
	return &cp, nil
}

func (mu *MemoryUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	mu.store.rlock(ctx)
	defer mu.store.runlock(ctx)
	id, ok := mu.store.userByEmail[NormalizeEmail(email)]
	if !ok {
		return nil, ErrNotFound
	}
	cp := cloneUser(mu.store.usersByID[id])
	return &cp, nil
}

// Update rewrites profile and ledger fields. Email is immutable.
func (mu *MemoryUsers) Update(ctx context.Context, u *domain.User) error {
	mu.store.wlock(ctx)
	defer mu.store.wunlock(ctx)
	cur, ok := mu.store.usersByID[u.ID]
	if !ok {
		return ErrNotFound
	}
	next := cloneUser(*u)
	next.Email = cur.Email
	next.CreatedAt = cur.CreatedAt
	next.UpdatedAt = time.Now().UTC()
	mu.store.usersByID[u.ID] = next
	*u = cloneUser(next)
	return nil
}

func (mu *MemoryUsers) TouchLogin(ctx context.Context, id string, at time.Time) error {
	mu.store.wlock(ctx)
	defer mu.store.wunlock(ctx)
	u, ok := mu.store.usersByID[id]
	if !ok {
		return ErrNotFound
	}
	t := at.UTC()
	u.LastLogin = &t
	mu.store.usersByID[id] = u
	return nil
}

func (mu *MemoryUsers) ListVIP(ctx context.Context) ([]domain.User, error) {
	mu.store.rlock(ctx)
	defer mu.store.runlock(ctx)
	out := make([]domain.User, 0)
	for _, u := range mu.store.usersByID {
		if u.IsVIP() {
			out = append(out, cloneUser(u))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].TotalSpent.Cmp(out[j].TotalSpent); c != 0 {
			return c > 0
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// OrderRepository implementation on wrapper type
type MemoryOrders struct{ store *MemoryStore }

func NewMemoryOrders(store *MemoryStore) *MemoryOrders { return &MemoryOrders{store: store} }

var _ OrderRepository = (*MemoryOrders)(nil)

func (mo *MemoryOrders) Create(ctx context.Context, o *domain.Order) error {
	mo.store.wlock(ctx)
	defer mo.store.wunlock(ctx)
	if _, ok := mo.store.orderByNum[o.OrderNumber]; ok {
		return ErrDuplicate
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	for i := range o.Items {
		if o.Items[i].ID == "" {
			o.Items[i].ID = uuid.NewString()
		}
		o.Items[i].OrderID = o.ID
	}
	o.CreatedAt = time.Now().UTC()
	o.UpdatedAt = o.CreatedAt
	mo.store.ordersByID[o.ID] = cloneOrder(*o)
	mo.store.orderByNum[o.OrderNumber] = o.ID
	return nil
}

func (mo *MemoryOrders) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	mo.store.rlock(ctx)
	defer mo.store.runlock(ctx)
	o, ok := mo.store.ordersByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := cloneOrder(o)
	return &cp, nil
}

func (mo *MemoryOrders) GetByNumber(ctx context.Context, number string) (*domain.Order, error) {
	mo.store.rlock(ctx)
	defer mo.store.runlock(ctx)
	id, ok := mo.store.orderByNum[number]
	if !ok {
		return nil, ErrNotFound
	}
	cp := cloneOrder(mo.store.ordersByID[id])
	return &cp, nil
}

func (mo *MemoryOrders) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	mo.store.rlock(ctx)
	defer mo.store.runlock(ctx)
	out := make([]domain.Order, 0)
	for _, o := range mo.store.ordersByID {
		if o.OwnedBy(userID) {
			out = append(out, cloneOrder(o))
		}
	}
	sortOrdersNewestFirst(out)
	return out, nil
}

func (mo *MemoryOrders) List(ctx context.Context, limit, offset int) ([]domain.Order, error) {
	mo.store.rlock(ctx)
	defer mo.store.runlock(ctx)
	all := make([]domain.Order, 0, len(mo.store.ordersByID))
	for _, o := range mo.store.ordersByID {
		all = append(all, cloneOrder(o))
	}
	sortOrdersNewestFirst(all)
	if offset >= len(all) {
		return []domain.Order{}, nil
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end], nil
}

// Update persists status/payment fields; the item list is kept as created.
func (mo *MemoryOrders) Update(ctx context.Context, o *domain.Order) error {
	mo.store.wlock(ctx)
	defer mo.store.wunlock(ctx)
	cur, ok := mo.store.ordersByID[o.ID]
	if !ok {
		return ErrNotFound
	}
	next := cloneOrder(*o)
	next.Items = cur.Items
	next.OrderNumber = cur.OrderNumber
	next.CreatedAt = cur.CreatedAt
	next.UpdatedAt = time.Now().UTC()
	mo.store.ordersByID[o.ID] = next
	*o = cloneOrder(next)
	return nil
}

func (mo *MemoryOrders) Stats(ctx context.Context) (domain.OrderStats, error) {
	mo.store.rlock(ctx)
	defer mo.store.runlock(ctx)
	st := domain.OrderStats{TotalRevenue: decimal.Zero}
	for _, o := range mo.store.ordersByID {
		st.Total++
		switch o.Status {
		case domain.OrderStatusPending:
			st.Pending++
		case domain.OrderStatusProcessing:
			st.Processing++
		case domain.OrderStatusShipped:
			st.Shipped++
		case domain.OrderStatusDelivered:
			st.Delivered++
		case domain.OrderStatusCancelled:
			st.Cancelled++
		}
		if o.PaymentStatus == domain.PaymentStatusPaid {
			st.PaidOrders++
			st.TotalRevenue = st.TotalRevenue.Add(o.Total)
		}
	}
	averageOrderValue(&st)
	return st, nil
}

func sortOrdersNewestFirst(orders []domain.Order) {
	sort.Slice(orders, func(i, j int) bool {
		if !orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		}
		return orders[i].OrderNumber > orders[j].OrderNumber
	})
}

// Tx manager using write lock to emulate transaction boundary
type MemoryTx struct{ store *MemoryStore }

func NewMemoryTx(store *MemoryStore) *MemoryTx { return &MemoryTx{store: store} }

func (tx *MemoryTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	// nested call joins the outer transaction
	if isTx(ctx) {
		return fn(ctx)
	}
	// Для in-memory используем блокировку записи и помечаем контекст, чтобы репозитории пропускали внутренние локи
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	snap := tx.store.snapshot()
	ctx = context.WithValue(ctx, txKey{}, true)
	if err := fn(ctx); err != nil {
		tx.store.restore(snap)
		return err
	}
	return nil
}

// MemoryCarts in-memory брошенные корзины, ключ: email
type MemoryCarts struct {
	mu      sync.Mutex
	byEmail map[string]domain.AbandonedCart
}

func NewMemoryCarts() *MemoryCarts {
	return &MemoryCarts{byEmail: make(map[string]domain.AbandonedCart)}
}

var _ AbandonedCartRepository = (*MemoryCarts)(nil)

func cloneCart(c domain.AbandonedCart) domain.AbandonedCart {
	c.Items = append([]domain.CartItem(nil), c.Items...)
	if c.RecoveredAt != nil {
		t := *c.RecoveredAt
		c.RecoveredAt = &t
	}
	return c
}

func (mc *MemoryCarts) Save(_ context.Context, c *domain.AbandonedCart) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	c.Email = NormalizeEmail(c.Email)
	c.Reminders = domain.ReminderFlags{}
	c.Recovered = false
	c.RecoveredAt = nil
	mc.byEmail[c.Email] = cloneCart(*c)
	return nil
}

func (mc *MemoryCarts) GetActive(_ context.Context, email string) (*domain.AbandonedCart, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	c, ok := mc.byEmail[NormalizeEmail(email)]
	if !ok || c.Recovered {
		return nil, ErrNotFound
	}
	cp := cloneCart(c)
	return &cp, nil
}

func (mc *MemoryCarts) ListActive(_ context.Context) ([]domain.AbandonedCart, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	out := make([]domain.AbandonedCart, 0)
	for _, c := range mc.byEmail {
		if !c.Recovered {
			out = append(out, cloneCart(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AbandonedAt.Before(out[j].AbandonedAt) })
	return out, nil
}

func (mc *MemoryCarts) MarkReminderSent(_ context.Context, email string, stage int) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	key := NormalizeEmail(email)
	c, ok := mc.byEmail[key]
	if !ok || c.Recovered {
		return ErrNotFound
	}
	c.Reminders.Mark(stage)
	mc.byEmail[key] = c
	return nil
}

func (mc *MemoryCarts) MarkRecovered(_ context.Context, email string, at time.Time) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	key := NormalizeEmail(email)
	c, ok := mc.byEmail[key]
	if !ok || c.Recovered {
		return ErrNotFound
	}
	t := at.UTC()
	c.Recovered = true
	c.RecoveredAt = &t
	mc.byEmail[key] = c
	return nil
}
