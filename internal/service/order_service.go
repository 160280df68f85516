package service

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"yemalin/internal/domain"
	"yemalin/internal/notify"
	"yemalin/internal/repository"
)

// CartRecoverer marks an abandoned cart as recovered after a checkout.
type CartRecoverer interface {
	Recover(ctx context.Context, email string) error
}

// OrderService реализует логику заказов: создание, оплата, выполнение, отмена
type OrderService struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
	tx       repository.TxManager
	ledger   *Ledger
	carts    CartRecoverer
	notifier notify.Notifier
	now      func() time.Time
}

func NewOrderService(products repository.ProductRepository, orders repository.OrderRepository, tx repository.TxManager, ledger *Ledger, carts CartRecoverer) *OrderService {
	return &OrderService{products: products, orders: orders, tx: tx, ledger: ledger, carts: carts, now: time.Now}
}

// WithNotifier sends order confirmations and shipping notifications through n.
func (s *OrderService) WithNotifier(n notify.Notifier) *OrderService {
	s.notifier = n
	return s
}

// OrderLine позиция запроса на оформление. Price from the client is advisory
// only; the catalog price at checkout time is what gets charged.
type OrderLine struct {
	ProductID string           `json:"productId" validate:"required"`
	Size      string           `json:"size" validate:"required"`
	Quantity  int64            `json:"quantity" validate:"gt=0,lte=100"`
	Price     *decimal.Decimal `json:"price,omitempty"`
}

// ShippingInput адрес доставки
type ShippingInput struct {
	Name    string `json:"name" validate:"required,max=255"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Phone   string `json:"phone" validate:"required,max=64"`
	Address string `json:"address" validate:"required,max=512"`
	City    string `json:"city" validate:"required,max=128"`
	State   string `json:"state" validate:"required,max=128"`
	Zip     string `json:"zip" validate:"required,max=32"`
	Country string `json:"country" validate:"required,max=128"`
}

// PaymentInput способ оплаты. CardNumber is reduced to its last four digits
// and never stored.
type PaymentInput struct {
	Type       string `json:"type" validate:"required,max=32"`
	CardNumber string `json:"cardNumber,omitempty"`
	CardHolder string `json:"cardHolder,omitempty" validate:"max=255"`
}

type CreateOrderInput struct {
	UserID    *string
	UserEmail string
	Items     []OrderLine `validate:"required,min=1,max=50,dive"`
	Shipping  ShippingInput
	Payment   PaymentInput
}

func (s *OrderService) paymentSnapshot(in PaymentInput) (domain.PaymentMethod, error) {
	pm := domain.PaymentMethod{Type: strings.TrimSpace(in.Type), CardHolder: strings.TrimSpace(in.CardHolder)}
	if in.CardNumber == "" {
		return pm, nil
	}
	var digits []byte
	for i := 0; i < len(in.CardNumber); i++ {
		c := in.CardNumber[i]
		switch {
		case c >= '0' && c <= '9':
			digits = append(digits, c)
		case c == ' ' || c == '-':
		default:
			return pm, invalid("card number contains invalid characters")
		}
	}
	if len(digits) < 12 || len(digits) > 19 {
		return pm, invalid("card number has invalid length")
	}
	pm.CardLast4 = string(digits[len(digits)-4:])
	return pm, nil
}

// mergeLines folds duplicate product/size lines and sorts the result by
// product and size, so concurrent orders lock size rows in the same order.
func mergeLines(lines []OrderLine) []OrderLine {
	idx := make(map[string]int, len(lines))
	out := make([]OrderLine, 0, len(lines))
	for _, l := range lines {
		key := l.ProductID + "\x00" + l.Size
		if i, ok := idx[key]; ok {
			out[i].Quantity += l.Quantity
			continue
		}
		idx[key] = len(out)
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProductID != out[j].ProductID {
			return out[i].ProductID < out[j].ProductID
		}
		return out[i].Size < out[j].Size
	})
	return out
}

// CreateOrder проверяет наличие товара, пересчитывает цены по каталогу и
// атомарно создаёт заказ с позициями и списанием остатков
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if in.UserID != nil && *in.UserID == "" {
		in.UserID = nil
	}
	payment, err := s.paymentSnapshot(in.Payment)
	if err != nil {
		return nil, err
	}
	lines := mergeLines(in.Items)

	var created *domain.Order
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		// load and check everything before the first write
		items := make([]domain.OrderItem, 0, len(lines))
		subtotal := decimal.Zero
		for _, l := range lines {
			p, err := s.products.GetByID(ctx, l.ProductID)
			if errors.Is(err, repository.ErrNotFound) {
				return invalid("unknown product %q", l.ProductID)
			}
			if err != nil {
				return err
			}
			if !p.Orderable() {
				return invalid("product %q is not available for purchase", p.Name)
			}
			stock, err := s.products.SizeStock(ctx, p.ID, l.Size)
			if errors.Is(err, repository.ErrNotFound) {
				return invalid("product %q has no size %q", p.Name, l.Size)
			}
			if err != nil {
				return err
			}
			if stock < l.Quantity {
				return &StockError{ProductID: p.ID, ProductName: p.Name, Size: l.Size, Requested: l.Quantity, Available: stock}
			}
			lineTotal := p.Price.Mul(decimal.NewFromInt(l.Quantity)).Round(2)
			subtotal = subtotal.Add(lineTotal)
			items = append(items, domain.OrderItem{
				ProductID:    p.ID,
				ProductName:  p.Name,
				ProductImage: p.PrimaryImage(),
				Size:         l.Size,
				Quantity:     l.Quantity,
				Price:        p.Price,
				Subtotal:     lineTotal,
			})
		}

		totals := Quote(subtotal)
		o := domain.Order{
			UserID:        in.UserID,
			OrderNumber:   NewOrderNumber(s.now()),
			Status:        domain.OrderStatusPending,
			PaymentStatus: domain.PaymentStatusPending,
			Subtotal:      totals.Subtotal,
			ShippingCost:  totals.Shipping,
			Tax:           totals.Tax,
			Total:         totals.Total,
			Shipping: domain.ShippingAddress{
				Name:    in.Shipping.Name,
				Email:   repository.NormalizeEmail(in.Shipping.Email),
				Phone:   in.Shipping.Phone,
				Address: in.Shipping.Address,
				City:    in.Shipping.City,
				State:   in.Shipping.State,
				Zip:     in.Shipping.Zip,
				Country: in.Shipping.Country,
			},
			Payment: payment,
			Items:   items,
		}
		if err := s.orders.Create(ctx, &o); err != nil {
			return err
		}
		for _, it := range o.Items {
			err := s.products.AdjustStock(ctx, it.ProductID, it.Size, -it.Quantity)
			if errors.Is(err, repository.ErrInsufficientStock) {
				available, _ := s.products.SizeStock(ctx, it.ProductID, it.Size)
				return &StockError{ProductID: it.ProductID, ProductName: it.ProductName, Size: it.Size, Requested: it.Quantity, Available: available}
			}
			if err != nil {
				return err
			}
		}
		created = &o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recoverCarts(ctx, created.Shipping.Email, in.UserEmail)
	s.notifyOrder(ctx, created, false)
	return created, nil
}

// notifyOrder runs after commit; like recoverCarts it only logs failures.
func (s *OrderService) notifyOrder(ctx context.Context, o *domain.Order, shipped bool) {
	if s.notifier == nil {
		return
	}
	what, send := "order confirmation", s.notifier.SendOrderConfirmation
	if shipped {
		what, send = "shipping notification", s.notifier.SendShippingNotification
	}
	if err := send(ctx, *o); err != nil {
		log.Printf("[WARN] %s for %s: %v", what, o.OrderNumber, err)
	}
}

// recoverCarts runs after commit; a failure here never fails the order.
func (s *OrderService) recoverCarts(ctx context.Context, emails ...string) {
	if s.carts == nil {
		return
	}
	seen := make(map[string]bool, len(emails))
	for _, e := range emails {
		e = repository.NormalizeEmail(e)
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		if err := s.carts.Recover(ctx, e); err != nil && !errors.Is(err, repository.ErrNotFound) {
			log.Printf("[WARN] recover cart for %s: %v", e, err)
		}
	}
}

// GetOrder возвращает заказ по id
func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return s.orders.GetByID(ctx, id)
}

func (s *OrderService) GetByNumber(ctx context.Context, number string) (*domain.Order, error) {
	if number == "" {
		return nil, ErrInvalidInput
	}
	return s.orders.GetByNumber(ctx, number)
}

// GetMyOrders newest first
func (s *OrderService) GetMyOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	return s.orders.ListByUser(ctx, userID)
}

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// ListOrders admin listing, newest first
func (s *OrderService) ListOrders(ctx context.Context, limit, offset int) ([]domain.Order, error) {
	if offset < 0 {
		return nil, ErrInvalidInput
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.orders.List(ctx, limit, offset)
}

var paymentTransitions = map[domain.PaymentStatus][]domain.PaymentStatus{
	domain.PaymentStatusPending: {domain.PaymentStatusPaid, domain.PaymentStatusFailed},
	domain.PaymentStatusPaid:    {domain.PaymentStatusRefunded},
}

var fulfilmentTransitions = map[domain.OrderStatus]domain.OrderStatus{
	domain.OrderStatusPending:    domain.OrderStatusProcessing,
	domain.OrderStatusProcessing: domain.OrderStatusShipped,
	domain.OrderStatusShipped:    domain.OrderStatusDelivered,
}

func canMovePayment(from, to domain.PaymentStatus) bool {
	for _, next := range paymentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// UpdatePaymentStatus меняет статус оплаты. Переход в paid в той же транзакции
// переводит заказ в processing и начисляет сумму заказа владельцу.
func (s *OrderService) UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus, chargeRef string) (*domain.Order, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	switch status {
	case domain.PaymentStatusPaid, domain.PaymentStatusFailed, domain.PaymentStatusRefunded:
	default:
		return nil, invalid("unknown payment status %q", status)
	}
	var updated *domain.Order
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		o, err := s.orders.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !canMovePayment(o.PaymentStatus, status) {
			return ErrInvalidState
		}
		if status == domain.PaymentStatusPaid && o.Status == domain.OrderStatusCancelled {
			return ErrInvalidState
		}
		o.PaymentStatus = status
		if chargeRef != "" {
			o.ChargeRef = chargeRef
		}
		if status == domain.PaymentStatusPaid {
			if o.Status == domain.OrderStatusPending {
				o.Status = domain.OrderStatusProcessing
			}
			if o.UserID != nil && s.ledger != nil {
				if _, err := s.ledger.ApplyPayment(ctx, *o.UserID, o.Total); err != nil {
					return err
				}
			}
		}
		if err := s.orders.Update(ctx, o); err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// UpdateStatus advances fulfilment one step: pending, processing, shipped, delivered.
// A tracking number is required on, and only accepted for, the move to shipped.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, tracking string) (*domain.Order, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	tracking = strings.TrimSpace(tracking)
	switch status {
	case domain.OrderStatusProcessing, domain.OrderStatusDelivered:
		if tracking != "" {
			return nil, invalid("tracking number is only set when shipping")
		}
	case domain.OrderStatusShipped:
		if tracking == "" {
			return nil, invalid("tracking number is required to ship")
		}
	case domain.OrderStatusCancelled:
		return nil, invalid("use cancel to cancel an order")
	default:
		return nil, invalid("unknown order status %q", status)
	}
	var updated *domain.Order
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		o, err := s.orders.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if next, ok := fulfilmentTransitions[o.Status]; !ok || next != status {
			return ErrInvalidState
		}
		now := s.now().UTC()
		o.Status = status
		switch status {
		case domain.OrderStatusShipped:
			o.TrackingNumber = tracking
			o.ShippedAt = &now
		case domain.OrderStatusDelivered:
			o.DeliveredAt = &now
		}
		if err := s.orders.Update(ctx, o); err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	if status == domain.OrderStatusShipped {
		s.notifyOrder(ctx, updated, true)
	}
	return updated, nil
}

// Stats counts orders per status; revenue and average cover paid orders only.
func (s *OrderService) Stats(ctx context.Context) (domain.OrderStats, error) {
	return s.orders.Stats(ctx)
}

// CancelOrder из pending или processing: возвращаем товары на склад и ставим Cancelled
func (s *OrderService) CancelOrder(ctx context.Context, id string) (*domain.Order, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	var updated *domain.Order
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		o, err := s.orders.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if o.Status != domain.OrderStatusPending && o.Status != domain.OrderStatusProcessing {
			return ErrInvalidState
		}
		// return stock
		for _, it := range o.Items {
			if err := s.products.AdjustStock(ctx, it.ProductID, it.Size, it.Quantity); err != nil {
				return err
			}
		}
		o.Status = domain.OrderStatusCancelled
		if err := s.orders.Update(ctx, o); err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
