package notify

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/shopspring/decimal"

	"yemalin/internal/domain"
)

// LowStockThreshold at or below this many units a cart item triggers the urgency line
const LowStockThreshold = 3

// Reminder одно письмо-напоминание о брошенной корзине
type Reminder struct {
	Email        string
	Stage        int
	Subject      string
	DiscountPct  int
	DiscountCode string
	Items        []domain.CartItem
	CartValue    decimal.Decimal
	Urgent       bool
}

// Notifier delivers customer mail. Implementations must be safe for concurrent use.
type Notifier interface {
	SendCartReminder(ctx context.Context, r Reminder) error
	SendOrderConfirmation(ctx context.Context, o domain.Order) error
	SendShippingNotification(ctx context.Context, o domain.Order) error
}

// HasLowStock reports whether any item is nearly sold out.
func HasLowStock(items []domain.CartItem) bool {
	for _, it := range items {
		if it.Stock <= LowStockThreshold {
			return true
		}
	}
	return false
}

// Render plain-text body of the reminder
func Render(r Reminder) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", r.Subject)
	b.WriteString("You left these in your cart:\n")
	for _, it := range r.Items {
		fmt.Fprintf(&b, "  - %s (%s) x%d  $%s\n", it.Name, it.Size, it.Quantity, it.Price.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nCart total: $%s\n", r.CartValue.StringFixed(2))
	fmt.Fprintf(&b, "Use code %s for %d%% off.\n", r.DiscountCode, r.DiscountPct)
	if r.Urgent {
		b.WriteString("Hurry, some items in your cart are almost sold out.\n")
	}
	return b.String()
}

// OrderConfirmationSubject e.g. "Order Confirmation - YM-..."
func OrderConfirmationSubject(o domain.Order) string {
	return "Order Confirmation - " + o.OrderNumber
}

func ShippingSubject(o domain.Order) string {
	return "Your Order Has Shipped - " + o.OrderNumber
}

// RenderOrder plain-text order confirmation
func RenderOrder(o domain.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", OrderConfirmationSubject(o))
	fmt.Fprintf(&b, "Thank you for your order, %s.\n\n", o.Shipping.Name)
	for _, it := range o.Items {
		fmt.Fprintf(&b, "  - %s (%s) x%d  $%s\n", it.ProductName, it.Size, it.Quantity, it.Subtotal.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nSubtotal: $%s\n", o.Subtotal.StringFixed(2))
	fmt.Fprintf(&b, "Shipping: $%s\n", o.ShippingCost.StringFixed(2))
	fmt.Fprintf(&b, "Tax: $%s\n", o.Tax.StringFixed(2))
	fmt.Fprintf(&b, "Total: $%s\n", o.Total.StringFixed(2))
	return b.String()
}

// RenderShipping plain-text shipping notification
func RenderShipping(o domain.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", ShippingSubject(o))
	fmt.Fprintf(&b, "Great news! Your order %s has shipped.\n", o.OrderNumber)
	fmt.Fprintf(&b, "Tracking number: %s\n", o.TrackingNumber)
	b.WriteString("Your order should arrive within 3-5 business days.\n")
	return b.String()
}

// LogNotifier writes reminders to the process log instead of sending mail.
type LogNotifier struct {
	Logger *log.Logger
}

func (n LogNotifier) logger() *log.Logger {
	if n.Logger == nil {
		return log.Default()
	}
	return n.Logger
}

func (n LogNotifier) SendCartReminder(_ context.Context, r Reminder) error {
	n.logger().Printf("[INFO] cart reminder %d to %s:\n%s", r.Stage, r.Email, Render(r))
	return nil
}

func (n LogNotifier) SendOrderConfirmation(_ context.Context, o domain.Order) error {
	n.logger().Printf("[INFO] order confirmation to %s:\n%s", o.Shipping.Email, RenderOrder(o))
	return nil
}

func (n LogNotifier) SendShippingNotification(_ context.Context, o domain.Order) error {
	n.logger().Printf("[INFO] shipping notification to %s:\n%s", o.Shipping.Email, RenderShipping(o))
	return nil
}
