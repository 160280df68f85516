package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yemalin/internal/domain"
	"yemalin/internal/repository"
)

type env struct {
	store  *repository.MemoryStore
	users  *repository.MemoryUsers
	orders *repository.MemoryOrders
	carts  *repository.MemoryCarts
	ps     *ProductService
	os     *OrderService
	cs     *CartService
	ledger *Ledger
	mail   *recordingNotifier
}

func setup(t *testing.T) *env {
	t.Helper()
	store := repository.NewMemoryStore()
	tx := repository.NewMemoryTx(store)
	e := &env{
		store:  store,
		users:  repository.NewMemoryUsers(store),
		orders: repository.NewMemoryOrders(store),
		carts:  repository.NewMemoryCarts(),
	}
	e.ps = NewProductService(store, tx)
	e.ledger = NewLedger(e.users, tx)
	e.cs = NewCartService(e.carts, store)
	e.mail = &recordingNotifier{}
	e.os = NewOrderService(store, e.orders, tx, e.ledger, e.cs).WithNotifier(e.mail)
	return e
}

func (e *env) product(t *testing.T, name string, price int64, sizes ...domain.ProductSize) *domain.Product {
	t.Helper()
	p, err := e.ps.Create(context.Background(), NewProduct{Name: name, Price: decimal.NewFromInt(price), Images: []string{"/img/" + name + ".jpg"}, Sizes: sizes})
	require.NoError(t, err)
	return p
}

func (e *env) user(t *testing.T, email string) *domain.User {
	t.Helper()
	u := domain.User{Email: email, PasswordHash: "x"}
	require.NoError(t, e.users.Create(context.Background(), &u))
	return &u
}

func shipTo(email string) ShippingInput {
	return ShippingInput{Name: "Ada", Email: email, Phone: "555-0100", Address: "1 Main St", City: "Austin", State: "TX", Zip: "73301", Country: "US"}
}

func card() PaymentInput {
	return PaymentInput{Type: "card", CardNumber: "4242 4242 4242 4242", CardHolder: "Ada L"}
}

// assertStockConsistent checks aggregate == Σ sizes for the product.
func assertStockConsistent(t *testing.T, e *env, id string) *domain.Product {
	t.Helper()
	p, err := e.ps.GetByID(context.Background(), id)
	require.NoError(t, err)
	var sum int64
	for _, s := range p.Sizes {
		sum += s.Stock
	}
	require.Equal(t, sum, p.Stock, "aggregate drifted: %s", spew.Sdump(p))
	return p
}

func TestCreateOrderAndCancel(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	p1 := e.product(t, "tee", 40, domain.ProductSize{Size: "M", Stock: 5}, domain.ProductSize{Size: "L", Stock: 1})
	p2 := e.product(t, "cap", 20, domain.ProductSize{Size: "OS", Stock: 2})

	o, err := e.os.CreateOrder(ctx, CreateOrderInput{
		Items:    []OrderLine{{ProductID: p1.ID, Size: "M", Quantity: 2}, {ProductID: p2.ID, Size: "OS", Quantity: 2}},
		Shipping: shipTo("ada@example.com"),
		Payment:  card(),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, o.Status)
	assert.Equal(t, domain.PaymentStatusPending, o.PaymentStatus)
	assert.True(t, strings.HasPrefix(o.OrderNumber, "YM-"))
	assert.Equal(t, "4242", o.Payment.CardLast4)
	assert.Nil(t, o.UserID)

	// totals reproducible from the items
	sum := decimal.Zero
	for _, it := range o.Items {
		assert.True(t, it.Subtotal.Equal(it.Price.Mul(decimal.NewFromInt(it.Quantity))))
		sum = sum.Add(it.Subtotal)
	}
	assert.True(t, o.Subtotal.Equal(sum))
	assert.True(t, o.Total.Equal(o.Subtotal.Add(o.ShippingCost).Add(o.Tax)))

	// stocks decreased
	p1After := assertStockConsistent(t, e, p1.ID)
	p2After := assertStockConsistent(t, e, p2.ID)
	assert.Equal(t, int64(4), p1After.Stock)
	assert.Equal(t, int64(0), p2After.Stock)

	o2, err := e.os.CancelOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, o2.Status)

	// stocks restored
	assert.Equal(t, int64(6), assertStockConsistent(t, e, p1.ID).Stock)
	assert.Equal(t, int64(2), assertStockConsistent(t, e, p2.ID).Stock)
}

func TestCreateOrder_RepricesFromCatalog(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	p := e.product(t, "tee", 40, domain.ProductSize{Size: "M", Stock: 5})

	forged := decimal.NewFromInt(1)
	o, err := e.os.CreateOrder(ctx, CreateOrderInput{
		Items:    []OrderLine{{ProductID: p.ID, Size: "M", Quantity: 3, Price: &forged}},
		Shipping: shipTo("ada@example.com"),
		Payment:  PaymentInput{Type: "paypal"},
	})
	require.NoError(t, err)
	assert.Equal(t, "120", o.Subtotal.String())
	assert.Equal(t, "15", o.ShippingCost.String())
	assert.Equal(t, "9.6", o.Tax.String())
	assert.Equal(t, "144.6", o.Total.String())
	assert.Equal(t, "tee", o.Items[0].ProductName)
	assert.Equal(t, "/img/tee.jpg", o.Items[0].ProductImage)
}

func TestCreateOrder_MergesDuplicateLines(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	p := e.product(t, "tee", 10, domain.ProductSize{Size: "M", Stock: 3})

	// 2 + 2 exceeds stock even though each line alone fits
	_, err := e.os.CreateOrder(ctx, CreateOrderInput{
		Items:    []OrderLine{{ProductID: p.ID, Size: "M", Quantity: 2}, {ProductID: p.ID, Size: "M", Quantity: 2}},
		Shipping: shipTo("ada@example.com"),
		Payment:  card(),
	})
	assert.ErrorIs(t, err, ErrNotEnoughStock)

	o, err := e.os.CreateOrder(ctx, CreateOrderInput{
		Items:    []OrderLine{{ProductID: p.ID, Size: "M", Quantity: 1}, {ProductID: p.ID, Size: "M", Quantity: 2}},
		Shipping: shipTo("ada@example.com"),
		Payment:  card(),
	})
	require.NoError(t, err)
	require.Len(t, o.Items, 1)
	assert.Equal(t, int64(3), o.Items[0].Quantity)
}

func TestCreateOrder_NotEnoughStock_NoPartialWrites(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	p1 := e.product(t, "tee", 10, domain.ProductSize{Size: "M", Stock: 5})
	p2 := e.product(t, "cap", 10, domain.ProductSize{Size: "OS", Stock: 1})

	_, err := e.os.CreateOrder(ctx, CreateOrderInput{
		Items:    []OrderLine{{ProductID: p1.ID, Size: "M", Quantity: 2}, {ProductID: p2.ID, Size: "OS", Quantity: 2}},
		Shipping: shipTo("ada@example.com"),
		Payment:  card(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotEnoughStock)

	var se *StockError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "cap", se.ProductName)
	assert.Equal(t, "OS", se.Size)
	assert.Equal(t, int64(1), se.Available)

	assert.Equal(t, int64(5), assertStockConsistent(t, e, p1.ID).Stock)
	assert.Equal(t, int64(1), assertStockConsistent(t, e, p2.ID).Stock)
	all, err := e.os.ListOrders(ctx, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreateOrder_InvalidInput(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	p := e.product(t, "tee", 10, domain.ProductSize{Size: "M", Stock: 5})
	soon, err := e.ps.Create(ctx, NewProduct{Name: "bag", Price: decimal.NewFromInt(2890), IsComingSoon: true, Sizes: []domain.ProductSize{{Size: "OS", Stock: 5}}})
	require.NoError(t, err)

	good := CreateOrderInput{
		Items:    []OrderLine{{ProductID: p.ID, Size: "M", Quantity: 1}},
		Shipping: shipTo("ada@example.com"),
		Payment:  card(),
	}
	cases := map[string]func(in *CreateOrderInput){
		"no items":       func(in *CreateOrderInput) { in.Items = nil },
		"zero quantity":  func(in *CreateOrderInput) { in.Items = []OrderLine{{ProductID: p.ID, Size: "M", Quantity: 0}} },
		"bad email":      func(in *CreateOrderInput) { in.Shipping.Email = "nope" },
		"missing city":   func(in *CreateOrderInput) { in.Shipping.City = "" },
		"no payment":     func(in *CreateOrderInput) { in.Payment = PaymentInput{} },
		"short card":     func(in *CreateOrderInput) { in.Payment.CardNumber = "4242" },
		"letters card":   func(in *CreateOrderInput) { in.Payment.CardNumber = "4242-abcd-4242-4242" },
		"unknown size":   func(in *CreateOrderInput) { in.Items = []OrderLine{{ProductID: p.ID, Size: "XXL", Quantity: 1}} },
		"unknown product": func(in *CreateOrderInput) {
			in.Items = []OrderLine{{ProductID: "missing", Size: "M", Quantity: 1}}
		},
		"coming soon": func(in *CreateOrderInput) { in.Items = []OrderLine{{ProductID: soon.ID, Size: "OS", Quantity: 1}} },
	}
	for name, mutate := range cases {
		in := good
		in.Items = append([]OrderLine(nil), good.Items...)
		mutate(&in)
		_, err := e.os.CreateOrder(ctx, in)
		assert.ErrorIs(t, err, ErrInvalidInput, name)
	}
	assert.Equal(t, int64(5), assertStockConsistent(t, e, p.ID).Stock)
}

func TestCancelOrder_InvalidState(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	p := e.product(t, "tee", 10, domain.ProductSize{Size: "M", Stock: 10})
	o, err := e.os.CreateOrder(ctx, CreateOrderInput{
		Items:    []OrderLine{{ProductID: p.ID, Size: "M", Quantity: 2}},
		Shipping: shipTo("ada@example.com"),
		Payment:  card(),
	})
	require.NoError(t, err)

	_, err = e.os.CancelOrder(ctx, o.ID)
	require.NoError(t, err)
	_, err = e.os.CancelOrder(ctx, o.ID)
	assert.ErrorIs(t, err, ErrInvalidState)

	// restored exactly once
	assert.Equal(t, int64(10), assertStockConsistent(t, e, p.ID).Stock)

	_, err = e.os.CancelOrder(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCancelOrder_ConcurrentOnlyRestoresOnce(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	p := e.product(t, "tee", 10, domain.ProductSize{Size: "M", Stock: 10})
	o, err := e.os.CreateOrder(ctx, CreateOrderInput{
		Items:    []OrderLine{{ProductID: p.ID, Size: "M", Quantity: 4}},
		Shipping: shipTo("ada@example.com"),
		Payment:  card(),
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	okCount := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := e.os.CancelOrder(ctx, o.ID); err == nil {
				mu.Lock()
				okCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, okCount)
	assert.Equal(t, int64(10), assertStockConsistent(t, e, p.ID).Stock)
}

func TestCreateOrder_ConcurrentNeverOversells(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	p := e.product(t, "tee", 10, domain.ProductSize{Size: "M", Stock: 5})

	var wg sync.WaitGroup
	var mu sync.Mutex
	placed := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.os.CreateOrder(ctx, CreateOrderInput{
				Items:    []OrderLine{{ProductID: p.ID, Size: "M", Quantity: 1}},
				Shipping: shipTo("ada@example.com"),
				Payment:  card(),
			})
			if err == nil {
				mu.Lock()
				placed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 5, placed)
	assert.Equal(t, int64(0), assertStockConsistent(t, e, p.ID).Stock)
}

func TestUpdatePaymentStatus_PaidAppliesLedger(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	u := e.user(t, "vip@example.com")
	p := e.product(t, "coat", 1000, domain.ProductSize{Size: "M", Stock: 5})

	o, err := e.os.CreateOrder(ctx, CreateOrderInput{
		UserID:   &u.ID,
		Items:    []OrderLine{{ProductID: p.ID, Size: "M", Quantity: 1}},
		Shipping: shipTo("vip@example.com"),
		Payment:  card(),
	})
	require.NoError(t, err)
	assert.Equal(t, "1080", o.Total.String())

	paid, err := e.os.UpdatePaymentStatus(ctx, o.ID, domain.PaymentStatusPaid, "ch_123")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, paid.PaymentStatus)
	assert.Equal(t, domain.OrderStatusProcessing, paid.Status)
	assert.Equal(t, "ch_123", paid.ChargeRef)

	got, err := e.users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "1080", got.TotalSpent.String())
	assert.Equal(t, domain.VIPTierBronze, got.VIPTier)

	// paying twice is rejected and does not double count
	_, err = e.os.UpdatePaymentStatus(ctx, o.ID, domain.PaymentStatusPaid, "")
	assert.ErrorIs(t, err, ErrInvalidState)

	refunded, err := e.os.UpdatePaymentStatus(ctx, o.ID, domain.PaymentStatusRefunded, "")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusRefunded, refunded.PaymentStatus)

	// spend is monotonic
	got, _ = e.users.GetByID(ctx, u.ID)
	assert.Equal(t, "1080", got.TotalSpent.String())
}

func TestUpdatePaymentStatus_Transitions(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	p := e.product(t, "tee", 10, domain.ProductSize{Size: "M", Stock: 5})
	newOrder := func() *domain.Order {
		o, err := e.os.CreateOrder(ctx, CreateOrderInput{
			Items:    []OrderLine{{ProductID: p.ID, Size: "M", Quantity: 1}},
			Shipping: shipTo("guest@example.com"),
			Payment:  card(),
		})
		require.NoError(t, err)
		return o
	}

	failed := newOrder()
	_, err := e.os.UpdatePaymentStatus(ctx, failed.ID, domain.PaymentStatusFailed, "")
	require.NoError(t, err)
	_, err = e.os.UpdatePaymentStatus(ctx, failed.ID, domain.PaymentStatusPaid, "")
	assert.ErrorIs(t, err, ErrInvalidState)

	pending := newOrder()
	_, err = e.os.UpdatePaymentStatus(ctx, pending.ID, domain.PaymentStatusRefunded, "")
	assert.ErrorIs(t, err, ErrInvalidState)
	_, err = e.os.UpdatePaymentStatus(ctx, pending.ID, "bogus", "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	cancelled := newOrder()
	_, err = e.os.CancelOrder(ctx, cancelled.ID)
	require.NoError(t, err)
	_, err = e.os.UpdatePaymentStatus(ctx, cancelled.ID, domain.PaymentStatusPaid, "")
	assert.ErrorIs(t, err, ErrInvalidState)

	// guest order: paid without a ledger owner
	guest := newOrder()
	paid, err := e.os.UpdatePaymentStatus(ctx, guest.ID, domain.PaymentStatusPaid, "")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusProcessing, paid.Status)
}

func TestUpdatePaymentStatus_LedgerFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	p := e.product(t, "tee", 10, domain.ProductSize{Size: "M", Stock: 5})
	ghost := "deleted-user"
	o, err := e.os.CreateOrder(ctx, CreateOrderInput{
		UserID:   &ghost,
		Items:    []OrderLine{{ProductID: p.ID, Size: "M", Quantity: 1}},
		Shipping: shipTo("ghost@example.com"),
		Payment:  card(),
	})
	require.NoError(t, err)

	_, err = e.os.UpdatePaymentStatus(ctx, o.ID, domain.PaymentStatusPaid, "ch_1")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	got, err := e.os.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPending, got.PaymentStatus)
	assert.Equal(t, domain.OrderStatusPending, got.Status)
	assert.Empty(t, got.ChargeRef)
}

func TestUpdateStatus_Fulfilment(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	p := e.product(t, "tee", 10, domain.ProductSize{Size: "M", Stock: 5})
	o, err := e.os.CreateOrder(ctx, CreateOrderInput{
		Items:    []OrderLine{{ProductID: p.ID, Size: "M", Quantity: 1}},
		Shipping: shipTo("ada@example.com"),
		Payment:  card(),
	})
	require.NoError(t, err)

	_, err = e.os.UpdateStatus(ctx, o.ID, domain.OrderStatusShipped, "1Z999")
	assert.ErrorIs(t, err, ErrInvalidState, "cannot skip processing")

	_, err = e.os.UpdateStatus(ctx, o.ID, domain.OrderStatusProcessing, "")
	require.NoError(t, err)
	_, err = e.os.UpdateStatus(ctx, o.ID, domain.OrderStatusShipped, "")
	assert.ErrorIs(t, err, ErrInvalidInput, "tracking required")

	shipped, err := e.os.UpdateStatus(ctx, o.ID, domain.OrderStatusShipped, "1Z999")
	require.NoError(t, err)
	assert.Equal(t, "1Z999", shipped.TrackingNumber)
	assert.NotNil(t, shipped.ShippedAt)

	// no cancel after shipping
	_, err = e.os.CancelOrder(ctx, o.ID)
	assert.ErrorIs(t, err, ErrInvalidState)

	delivered, err := e.os.UpdateStatus(ctx, o.ID, domain.OrderStatusDelivered, "")
	require.NoError(t, err)
	assert.NotNil(t, delivered.DeliveredAt)

	_, err = e.os.UpdateStatus(ctx, o.ID, domain.OrderStatusCancelled, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestOrderLookups(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	u := e.user(t, "ada@example.com")
	p := e.product(t, "tee", 10, domain.ProductSize{Size: "M", Stock: 10})

	var last *domain.Order
	for i := 0; i < 3; i++ {
		o, err := e.os.CreateOrder(ctx, CreateOrderInput{
			UserID:   &u.ID,
			Items:    []OrderLine{{ProductID: p.ID, Size: "M", Quantity: 1}},
			Shipping: shipTo("ada@example.com"),
			Payment:  card(),
		})
		require.NoError(t, err)
		last = o
	}
	_, err := e.os.CreateOrder(ctx, CreateOrderInput{
		Items:    []OrderLine{{ProductID: p.ID, Size: "M", Quantity: 1}},
		Shipping: shipTo("guest@example.com"),
		Payment:  card(),
	})
	require.NoError(t, err)

	mine, err := e.os.GetMyOrders(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 3)
	for _, o := range mine {
		assert.True(t, o.OwnedBy(u.ID))
	}

	byNum, err := e.os.GetByNumber(ctx, last.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, last.ID, byNum.ID)

	page, err := e.os.ListOrders(ctx, 2, 0)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	_, err = e.os.ListOrders(ctx, 10, -1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateOrder_RecoversAbandonedCart(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	p := e.product(t, "tee", 10, domain.ProductSize{Size: "M", Stock: 10})

	_, err := e.cs.Abandon(ctx, "Ada@Example.com", []CartLine{{ProductID: p.ID, Size: "M", Quantity: 1}})
	require.NoError(t, err)

	_, err = e.os.CreateOrder(ctx, CreateOrderInput{
		Items:    []OrderLine{{ProductID: p.ID, Size: "M", Quantity: 1}},
		Shipping: shipTo("ada@example.com"),
		Payment:  card(),
	})
	require.NoError(t, err)

	_, err = e.carts.GetActive(ctx, "ada@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMergeLines_SortedByProductAndSize(t *testing.T) {
	got := mergeLines([]OrderLine{
		{ProductID: "b", Size: "M", Quantity: 1},
		{ProductID: "a", Size: "S", Quantity: 1},
		{ProductID: "b", Size: "L", Quantity: 2},
		{ProductID: "a", Size: "S", Quantity: 3},
	})
	require.Len(t, got, 3)
	assert.Equal(t, OrderLine{ProductID: "a", Size: "S", Quantity: 4}, got[0])
	assert.Equal(t, OrderLine{ProductID: "b", Size: "L", Quantity: 2}, got[1])
	assert.Equal(t, OrderLine{ProductID: "b", Size: "M", Quantity: 1}, got[2])
}

// Orders listing the same two products in opposite order must both complete.
func TestCreateOrder_OppositeLineOrderConcurrently(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	a := e.product(t, "tee", 10, domain.ProductSize{Size: "M", Stock: 50})
	b := e.product(t, "cap", 10, domain.ProductSize{Size: "M", Stock: 50})

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		lines := []OrderLine{{ProductID: a.ID, Size: "M", Quantity: 1}, {ProductID: b.ID, Size: "M", Quantity: 1}}
		if i%2 == 1 {
			lines[0], lines[1] = lines[1], lines[0]
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.os.CreateOrder(ctx, CreateOrderInput{Items: lines, Shipping: shipTo("ada@example.com"), Payment: card()})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int64(30), assertStockConsistent(t, e, a.ID).Stock)
	assert.Equal(t, int64(30), assertStockConsistent(t, e, b.ID).Stock)
}

func TestOrderMail_ConfirmationAndShipping(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	p := e.product(t, "tee", 10, domain.ProductSize{Size: "M", Stock: 5})
	o, err := e.os.CreateOrder(ctx, CreateOrderInput{
		Items:    []OrderLine{{ProductID: p.ID, Size: "M", Quantity: 1}},
		Shipping: shipTo("ada@example.com"),
		Payment:  card(),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{o.OrderNumber}, e.mail.confirmed)
	assert.Empty(t, e.mail.shipped)

	_, err = e.os.UpdateStatus(ctx, o.ID, domain.OrderStatusProcessing, "")
	require.NoError(t, err)
	assert.Empty(t, e.mail.shipped)
	_, err = e.os.UpdateStatus(ctx, o.ID, domain.OrderStatusShipped, "1Z999")
	require.NoError(t, err)
	_, err = e.os.UpdateStatus(ctx, o.ID, domain.OrderStatusDelivered, "")
	require.NoError(t, err)
	assert.Equal(t, []string{o.OrderNumber}, e.mail.shipped)

	// failed orders send nothing
	_, err = e.os.CreateOrder(ctx, CreateOrderInput{
		Items:    []OrderLine{{ProductID: p.ID, Size: "M", Quantity: 99}},
		Shipping: shipTo("ada@example.com"),
		Payment:  card(),
	})
	require.Error(t, err)
	assert.Len(t, e.mail.confirmed, 1)
}

func TestOrderMail_FailureKeepsOrder(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	e.mail.fail = true
	p := e.product(t, "tee", 10, domain.ProductSize{Size: "M", Stock: 5})
	o, err := e.os.CreateOrder(ctx, CreateOrderInput{
		Items:    []OrderLine{{ProductID: p.ID, Size: "M", Quantity: 1}},
		Shipping: shipTo("ada@example.com"),
		Payment:  card(),
	})
	require.NoError(t, err)
	_, err = e.os.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Len(t, e.mail.confirmed, 1)
}

func TestOrderStats(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	p := e.product(t, "tee", 100, domain.ProductSize{Size: "M", Stock: 10})

	st, err := e.os.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), st.Total)
	assert.True(t, st.AverageOrderValue.IsZero())

	var ids []string
	for i := 0; i < 3; i++ {
		o, err := e.os.CreateOrder(ctx, CreateOrderInput{
			Items:    []OrderLine{{ProductID: p.ID, Size: "M", Quantity: int64(i + 1)}},
			Shipping: shipTo("ada@example.com"),
			Payment:  card(),
		})
		require.NoError(t, err)
		ids = append(ids, o.ID)
	}
	// totals: 100 -> 123, 200 -> 216, 300 -> 324
	_, err = e.os.UpdatePaymentStatus(ctx, ids[0], domain.PaymentStatusPaid, "")
	require.NoError(t, err)
	_, err = e.os.UpdatePaymentStatus(ctx, ids[1], domain.PaymentStatusPaid, "")
	require.NoError(t, err)
	_, err = e.os.CancelOrder(ctx, ids[2])
	require.NoError(t, err)

	st, err = e.os.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStats{
		Total:             3,
		Processing:        2,
		Cancelled:         1,
		PaidOrders:        2,
		TotalRevenue:      st.TotalRevenue,
		AverageOrderValue: st.AverageOrderValue,
	}, st)
	assert.Equal(t, "339", st.TotalRevenue.String())
	assert.Equal(t, "169.5", st.AverageOrderValue.String())
}
