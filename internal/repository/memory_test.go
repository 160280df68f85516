package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"yemalin/internal/domain"
)

func newTee() domain.Product {
	return domain.Product{
		Name:     "Essential Black Tee",
		Price:    decimal.NewFromInt(189),
		IsActive: true,
		Images:   []string{"/img/black-1.jpg", "/img/black-2.jpg"},
		Sizes: []domain.ProductSize{
			{Size: "XL", Stock: 2},
			{Size: "S", Stock: 3},
			{Size: "M", Stock: 5},
		},
	}
}

func TestMemoryStore_ProductCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	p := newTee()
	if err := store.Create(ctx, &p); err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == "" {
		t.Fatalf("no id")
	}
	if p.Stock != 10 {
		t.Fatalf("aggregate stock expected 10, got %d", p.Stock)
	}
	if p.Sizes[0].Size != "S" || p.Sizes[2].Size != "XL" {
		t.Fatalf("sizes not sorted: %+v", p.Sizes)
	}

	got, err := store.GetByID(ctx, p.ID)
	if err != nil || got.ID != p.ID {
		t.Fatalf("get: %v", err)
	}

	// stock in the update payload is ignored
	p.Price = decimal.NewFromInt(199)
	p.Stock = 1000
	p.Sizes = nil
	if err := store.Update(ctx, &p); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ = store.GetByID(ctx, p.ID)
	if !got.Price.Equal(decimal.NewFromInt(199)) || got.Stock != 10 || len(got.Sizes) != 3 {
		t.Fatalf("unexpected product after update: %+v", got)
	}

	if _, err := store.GetByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMemoryStore_AdjustStock(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	p := newTee()
	if err := store.Create(ctx, &p); err != nil {
		t.Fatal(err)
	}

	if err := store.AdjustStock(ctx, p.ID, "M", -4); err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if err := store.AdjustStock(ctx, p.ID, "S", -4); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	if err := store.AdjustStock(ctx, p.ID, "XXL", 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected unknown size, got %v", err)
	}

	got, _ := store.GetByID(ctx, p.ID)
	var sum int64
	for _, s := range got.Sizes {
		sum += s.Stock
	}
	if got.Stock != 6 || sum != got.Stock {
		t.Fatalf("aggregate %d, sizes sum %d", got.Stock, sum)
	}
	if n, _ := store.SizeStock(ctx, p.ID, "M"); n != 1 {
		t.Fatalf("size M expected 1, got %d", n)
	}
}

func TestMemoryTx_TransactionalUpdate(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	tx := NewMemoryTx(store)
	orders := NewMemoryOrders(store)

	p := newTee()
	if err := store.Create(ctx, &p); err != nil {
		t.Fatal(err)
	}

	// atomic create order with stock decrease
	err := tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := store.AdjustStock(ctx, p.ID, "M", -3); err != nil {
			return err
		}
		o := domain.Order{
			OrderNumber: "YM-TEST-0001",
			Status:      domain.OrderStatusPending,
			Items:       []domain.OrderItem{{ProductID: p.ID, Size: "M", Quantity: 3}},
		}
		return orders.Create(ctx, &o)
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}

	n, _ := store.SizeStock(context.Background(), p.ID, "M")
	if n != 2 {
		t.Fatalf("stock expected 2, got %v", n)
	}
	o, err := orders.GetByNumber(ctx, "YM-TEST-0001")
	if err != nil || o.Items[0].OrderID != o.ID {
		t.Fatalf("order lookup: %v", err)
	}
}

func TestMemoryTx_RollbackRestoresState(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	tx := NewMemoryTx(store)
	orders := NewMemoryOrders(store)

	p := newTee()
	if err := store.Create(ctx, &p); err != nil {
		t.Fatal(err)
	}

	err := tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := store.AdjustStock(ctx, p.ID, "M", -5); err != nil {
			return err
		}
		o := domain.Order{OrderNumber: "YM-ROLLBACK-0001"}
		if err := orders.Create(ctx, &o); err != nil {
			return err
		}
		// second line fails, everything above must vanish
		return store.AdjustStock(ctx, p.ID, "S", -99)
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}

	got, _ := store.GetByID(ctx, p.ID)
	if got.Stock != 10 {
		t.Fatalf("stock not restored: %d", got.Stock)
	}
	if _, err := orders.GetByNumber(ctx, "YM-ROLLBACK-0001"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("order survived rollback: %v", err)
	}
}

func TestMemoryTx_NestedJoinsOuter(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	tx := NewMemoryTx(store)
	p := newTee()
	if err := store.Create(ctx, &p); err != nil {
		t.Fatal(err)
	}

	err := tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := tx.WithTransaction(ctx, func(ctx context.Context) error {
			return store.AdjustStock(ctx, p.ID, "S", -1)
		}); err != nil {
			return err
		}
		return errors.New("boom")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if n, _ := store.SizeStock(ctx, p.ID, "S"); n != 3 {
		t.Fatalf("inner change not rolled back: %d", n)
	}
}

func TestMemoryUsers_EmailUnique(t *testing.T) {
	ctx := context.Background()
	users := NewMemoryUsers(NewMemoryStore())

	u := domain.User{Email: "  Ada@Example.com ", PasswordHash: "x"}
	if err := users.Create(ctx, &u); err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.Email != "ada@example.com" {
		t.Fatalf("email not normalized: %q", u.Email)
	}
	dup := domain.User{Email: "ADA@example.com", PasswordHash: "y"}
	if err := users.Create(ctx, &dup); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected duplicate, got %v", err)
	}
	got, err := users.GetByEmail(ctx, "ada@EXAMPLE.com")
	if err != nil || got.ID != u.ID {
		t.Fatalf("lookup by email: %v", err)
	}

	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	if err := users.TouchLogin(ctx, u.ID, at); err != nil {
		t.Fatal(err)
	}
	got, _ = users.GetByID(ctx, u.ID)
	if got.LastLogin == nil || !got.LastLogin.Equal(at) {
		t.Fatalf("last login not stored: %v", got.LastLogin)
	}
}

func TestMemoryOrders_ListAndPaging(t *testing.T) {
	ctx := context.Background()
	orders := NewMemoryOrders(NewMemoryStore())
	uid := "user-1"
	for _, num := range []string{"YM-A-0001", "YM-A-0002", "YM-A-0003"} {
		o := domain.Order{OrderNumber: num, UserID: &uid}
		if err := orders.Create(ctx, &o); err != nil {
			t.Fatal(err)
		}
	}
	guest := domain.Order{OrderNumber: "YM-G-0001"}
	if err := orders.Create(ctx, &guest); err != nil {
		t.Fatal(err)
	}
	dup := domain.Order{OrderNumber: "YM-G-0001"}
	if err := orders.Create(ctx, &dup); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected duplicate number, got %v", err)
	}

	mine, _ := orders.ListByUser(ctx, uid)
	if len(mine) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(mine))
	}
	page, _ := orders.List(ctx, 2, 0)
	if len(page) != 2 {
		t.Fatalf("expected page of 2, got %d", len(page))
	}
	rest, _ := orders.List(ctx, 2, 2)
	if len(rest) != 2 {
		t.Fatalf("expected 2 remaining, got %d", len(rest))
	}
	empty, _ := orders.List(ctx, 2, 10)
	if len(empty) != 0 {
		t.Fatalf("expected empty page, got %d", len(empty))
	}
}

func TestMemoryCarts_Lifecycle(t *testing.T) {
	ctx := context.Background()
	carts := NewMemoryCarts()

	c := domain.AbandonedCart{Email: "Buyer@Example.com", AbandonedAt: time.Now().UTC()}
	if err := carts.Save(ctx, &c); err != nil {
		t.Fatal(err)
	}
	if err := carts.MarkReminderSent(ctx, "buyer@example.com", 1); err != nil {
		t.Fatal(err)
	}
	got, err := carts.GetActive(ctx, "buyer@example.com")
	if err != nil || !got.Reminders.First {
		t.Fatalf("reminder flag not stored: %v", err)
	}

	// a new abandonment resets reminder flags
	if err := carts.Save(ctx, &c); err != nil {
		t.Fatal(err)
	}
	got, _ = carts.GetActive(ctx, "buyer@example.com")
	if got.Reminders.First {
		t.Fatal("flags survived new abandonment")
	}

	if err := carts.MarkRecovered(ctx, "buyer@example.com", time.Now()); err != nil {
		t.Fatal(err)
	}
	if _, err := carts.GetActive(ctx, "buyer@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("recovered cart still active: %v", err)
	}
	if err := carts.MarkRecovered(ctx, "buyer@example.com", time.Now()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found on second recover, got %v", err)
	}
}
