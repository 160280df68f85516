package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// VIPTier уровень лояльности, вычисляется из суммы покупок
type VIPTier string

const (
	VIPTierNone     VIPTier = ""
	VIPTierBronze   VIPTier = "bronze"
	VIPTierSilver   VIPTier = "silver"
	VIPTierGold     VIPTier = "gold"
	VIPTierPlatinum VIPTier = "platinum"
)

// User учётная запись покупателя
type User struct {
	ID           string          `json:"id"`
	Email        string          `json:"email"`
	PasswordHash string          `json:"-"`
	Name         string          `json:"name"`
	Phone        string          `json:"phone"`
	ProfileImage string          `json:"profileImage"`
	TotalSpent   decimal.Decimal `json:"totalSpent"`
	VIPTier      VIPTier         `json:"vipTier"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
	LastLogin    *time.Time      `json:"lastLogin,omitempty"`
}

// IsVIP reports whether the user holds any tier.
func (u User) IsVIP() bool { return u.VIPTier != VIPTierNone }

// ProductSize остаток по одному размеру
type ProductSize struct {
	Size  string `json:"size"`
	Stock int64  `json:"stock"`
}

// Product товар каталога. Stock всегда равен сумме остатков по размерам и ведётся хранилищем.
type Product struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	Color           string          `json:"color"`
	Stock           int64           `json:"stock"`
	IsLimited       bool            `json:"isLimited"`
	TotalMade       int64           `json:"totalMade,omitempty"`
	IsActive        bool            `json:"isActive"`
	IsComingSoon    bool            `json:"isComingSoon"`
	ReleaseDate     *time.Time      `json:"releaseDate,omitempty"`
	ExclusiveAccess bool            `json:"exclusiveAccess"`
	Images          []string        `json:"images"`
	Sizes           []ProductSize   `json:"sizes"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// SizeStock returns the stock of one size and whether the size exists.
func (p Product) SizeStock(size string) (int64, bool) {
	for _, s := range p.Sizes {
		if s.Size == size {
			return s.Stock, true
		}
	}
	return 0, false
}

// PrimaryImage first image or empty string
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// Orderable reports whether the product can be bought right now.
func (p Product) Orderable() bool { return p.IsActive && !p.IsComingSoon }

var sizeRank = map[string]int{"XS": 1, "S": 2, "M": 3, "L": 4, "XL": 5, "XXL": 6}

func rankOf(size string) int {
	if r, ok := sizeRank[size]; ok {
		return r
	}
	return len(sizeRank) + 1
}

// SortSizes orders sizes XS, S, M, L, XL, XXL and then anything else by name.
func SortSizes(sizes []ProductSize) {
	sort.SliceStable(sizes, func(i, j int) bool {
		ri, rj := rankOf(sizes[i].Size), rankOf(sizes[j].Size)
		if ri != rj {
			return ri < rj
		}
		return sizes[i].Size < sizes[j].Size
	})
}

// OrderStatus статус выполнения заказа
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// PaymentStatus статус оплаты
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// ShippingAddress снимок адреса доставки на момент оформления
type ShippingAddress struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

// PaymentMethod snapshot. Only the last four card digits are ever kept.
type PaymentMethod struct {
	Type       string `json:"type"`
	CardLast4  string `json:"cardLast4,omitempty"`
	CardHolder string `json:"cardHolder,omitempty"`
}

// OrderItem позиция в заказе (снимок товара, не меняется после создания)
type OrderItem struct {
	ID           string          `json:"id"`
	OrderID      string          `json:"orderId"`
	ProductID    string          `json:"productId"`
	ProductName  string          `json:"productName"`
	ProductImage string          `json:"productImage"`
	Size         string          `json:"size"`
	Quantity     int64           `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// Order сущность заказа
type Order struct {
	ID             string          `json:"id"`
	UserID         *string         `json:"userId,omitempty"`
	OrderNumber    string          `json:"orderNumber"`
	Status         OrderStatus     `json:"status"`
	PaymentStatus  PaymentStatus   `json:"paymentStatus"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	ShippingCost   decimal.Decimal `json:"shippingCost"`
	Tax            decimal.Decimal `json:"tax"`
	Total          decimal.Decimal `json:"total"`
	Shipping       ShippingAddress `json:"shipping"`
	Payment        PaymentMethod   `json:"payment"`
	ChargeRef      string          `json:"chargeRef,omitempty"`
	TrackingNumber string          `json:"trackingNumber,omitempty"`
	ShippedAt      *time.Time      `json:"shippedAt,omitempty"`
	DeliveredAt    *time.Time      `json:"deliveredAt,omitempty"`
	Items          []OrderItem     `json:"items"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// OwnedBy reports whether the order belongs to the given user.
func (o Order) OwnedBy(userID string) bool {
	return o.UserID != nil && *o.UserID == userID
}

// OrderStats сводка по заказам для админки. Revenue and average cover paid orders only.
type OrderStats struct {
	Total             int64           `json:"total"`
	Pending           int64           `json:"pending"`
	Processing        int64           `json:"processing"`
	Shipped           int64           `json:"shipped"`
	Delivered         int64           `json:"delivered"`
	Cancelled         int64           `json:"cancelled"`
	PaidOrders        int64           `json:"paidOrders"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
}

// CartItem позиция брошенной корзины
type CartItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Image     string          `json:"image,omitempty"`
	Size      string          `json:"size"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Stock     int64           `json:"stock"`
}

// ReminderFlags which staged reminders went out
type ReminderFlags struct {
	First  bool `json:"first"`
	Second bool `json:"second"`
	Third  bool `json:"third"`
}

// Sent reports whether reminder stage (1..3) was sent.
func (f ReminderFlags) Sent(stage int) bool {
	switch stage {
	case 1:
		return f.First
	case 2:
		return f.Second
	case 3:
		return f.Third
	}
	return false
}

// Mark sets the flag of stage (1..3).
func (f *ReminderFlags) Mark(stage int) {
	switch stage {
	case 1:
		f.First = true
	case 2:
		f.Second = true
	case 3:
		f.Third = true
	}
}

// AbandonedCart корзина, брошенная без оформления заказа
type AbandonedCart struct {
	Email       string          `json:"email"`
	Items       []CartItem      `json:"items"`
	CartValue   decimal.Decimal `json:"cartValue"`
	AbandonedAt time.Time       `json:"abandonedAt"`
	Reminders   ReminderFlags   `json:"reminders"`
	Recovered   bool            `json:"recovered"`
	RecoveredAt *time.Time      `json:"recoveredAt,omitempty"`
}
