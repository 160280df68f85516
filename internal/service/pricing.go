package service

import (
	"crypto/rand"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// TaxRate доля налога от подытога
	TaxRate = decimal.RequireFromString("0.08")
	// ShippingFee flat fee below the free shipping threshold
	ShippingFee = decimal.NewFromInt(15)
	// FreeShippingThreshold subtotal from which shipping is free (inclusive)
	FreeShippingThreshold = decimal.NewFromInt(150)
)

// Totals денежная разбивка заказа
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shippingCost"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// Quote prices a subtotal. All amounts are rounded to cents and Total is
// always exactly Subtotal + Shipping + Tax.
func Quote(subtotal decimal.Decimal) Totals {
	subtotal = subtotal.Round(2)
	shipping := ShippingFee
	if subtotal.GreaterThanOrEqual(FreeShippingThreshold) {
		shipping = decimal.Zero
	}
	tax := subtotal.Mul(TaxRate).Round(2)
	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax),
	}
}

const base36 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewOrderNumber "YM-<base36 millis>-<4 random base36>"
func NewOrderNumber(now time.Time) string {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// fall back to clock bits
		n := now.UnixNano()
		for i := range buf {
			buf[i] = byte(n >> (8 * i))
		}
	}
	suffix := make([]byte, len(buf))
	for i, b := range buf {
		suffix[i] = base36[int(b)%len(base36)]
	}
	ts := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
	return "YM-" + ts + "-" + string(suffix)
}
