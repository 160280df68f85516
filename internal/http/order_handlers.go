package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"yemalin/internal/domain"
	"yemalin/internal/repository"
	"yemalin/internal/service"
)

type createOrderRequest struct {
	Items    []service.OrderLine   `json:"items"`
	Shipping service.ShippingInput `json:"shipping"`
	Payment  service.PaymentInput  `json:"payment"`
}

type createOrderResponse struct {
	OrderID       string               `json:"orderId"`
	OrderNumber   string               `json:"orderNumber"`
	Subtotal      decimal.Decimal      `json:"subtotal"`
	ShippingCost  decimal.Decimal      `json:"shippingCost"`
	Tax           decimal.Decimal      `json:"tax"`
	Total         decimal.Decimal      `json:"total"`
	Status        domain.OrderStatus   `json:"status"`
	PaymentStatus domain.PaymentStatus `json:"paymentStatus"`
	Order         *domain.Order        `json:"order"`
}

type paymentRequest struct {
	Status    domain.PaymentStatus `json:"status" binding:"required"`
	ChargeRef string               `json:"chargeRef"`
}

// @Summary Оформить заказ
// @Description Guests may order without a token; a signed-in user gets the order attached to the account.
// @Tags orders
// @Accept json
// @Produce json
// @Param input body createOrderRequest true "Order"
// @Success 201 {object} createOrderResponse
// @Failure 400 {object} map[string]string
// @Router /orders [post]
func (s *Server) createOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c)
		return
	}
	in := service.CreateOrderInput{Items: req.Items, Shipping: req.Shipping, Payment: req.Payment}
	if claims, ok := claimsFrom(c); ok {
		uid := claims.UserID()
		in.UserID = &uid
		in.UserEmail = claims.Email
	}
	o, err := s.orders.CreateOrder(c, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, createOrderResponse{
		OrderID:       o.ID,
		OrderNumber:   o.OrderNumber,
		Subtotal:      o.Subtotal,
		ShippingCost:  o.ShippingCost,
		Tax:           o.Tax,
		Total:         o.Total,
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		Order:         o,
	})
}

// @Summary Мои заказы
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Order
// @Router /orders/mine [get]
func (s *Server) myOrders(c *gin.Context) {
	claims, _ := claimsFrom(c)
	items, err := s.orders.GetMyOrders(c, claims.UserID())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Заказ по номеру
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param number path string true "Order number"
// @Success 200 {object} domain.Order
// @Failure 404 {object} map[string]string
// @Router /orders/number/{number} [get]
func (s *Server) orderByNumber(c *gin.Context) {
	o, err := s.orders.GetByNumber(c, c.Param("number"))
	if err != nil {
		writeError(c, err)
		return
	}
	// someone else's order looks exactly like a missing one
	if !s.canAccess(c, o) {
		writeError(c, fmt.Errorf("order %s: %w", c.Param("number"), repository.ErrNotFound))
		return
	}
	c.JSON(http.StatusOK, o)
}

// @Summary Отменить заказ
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders/{id}/cancel [post]
func (s *Server) cancelOrder(c *gin.Context) {
	o, err := s.orders.GetOrder(c, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if !s.canAccess(c, o) {
		writeError(c, fmt.Errorf("%w: not your order", service.ErrForbidden))
		return
	}
	o, err = s.orders.CancelOrder(c, o.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// @Summary Обновить статус оплаты
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param input body paymentRequest true "Payment status"
// @Success 200 {object} domain.Order
// @Failure 409 {object} map[string]string
// @Router /orders/{id}/payment [post]
func (s *Server) updatePayment(c *gin.Context) {
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}
	o, err := s.orders.UpdatePaymentStatus(c, c.Param("id"), req.Status, req.ChargeRef)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (s *Server) canAccess(c *gin.Context, o *domain.Order) bool {
	claims, ok := claimsFrom(c)
	if !ok {
		return false
	}
	return o.OwnedBy(claims.UserID()) || s.isAdmin(c)
}
