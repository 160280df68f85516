package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"yemalin/internal/domain"
	"yemalin/internal/service"
)

type statusRequest struct {
	Status         domain.OrderStatus `json:"status" binding:"required"`
	TrackingNumber string             `json:"trackingNumber"`
}

type stockRequest struct {
	Stock *int64 `json:"stock" binding:"required"`
}

// @Summary Все заказы
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Limit" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} domain.Order
// @Router /admin/orders [get]
func (s *Server) adminListOrders(c *gin.Context) {
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offset"})
		return
	}
	items, err := s.orders.ListOrders(c, limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Сводка по заказам
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.OrderStats
// @Router /admin/orders/stats [get]
func (s *Server) adminOrderStats(c *gin.Context) {
	st, err := s.orders.Stats(c)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary Статус выполнения заказа
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param input body statusRequest true "Status"
// @Success 200 {object} domain.Order
// @Failure 409 {object} map[string]string
// @Router /admin/orders/{id}/status [patch]
func (s *Server) adminUpdateOrderStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}
	o, err := s.orders.UpdateStatus(c, c.Param("id"), req.Status, req.TrackingNumber)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// @Summary Весь каталог, включая скрытые товары
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Product
// @Router /admin/products [get]
func (s *Server) adminListProducts(c *gin.Context) {
	items, err := s.products.ListAll(c)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Создать товар
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body service.NewProduct true "Product"
// @Success 201 {object} domain.Product
// @Failure 400 {object} map[string]string
// @Router /admin/products [post]
func (s *Server) adminCreateProduct(c *gin.Context) {
	var in service.NewProduct
	if err := c.ShouldBindJSON(&in); err != nil {
		badJSON(c)
		return
	}
	p, err := s.products.Create(c, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// @Summary Обновить товар
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param input body service.ProductUpdate true "Fields to change"
// @Success 200 {object} domain.Product
// @Failure 404 {object} map[string]string
// @Router /admin/products/{id} [patch]
func (s *Server) adminUpdateProduct(c *gin.Context) {
	var in service.ProductUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		badJSON(c)
		return
	}
	p, err := s.products.Update(c, c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary Остаток по размеру
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param size path string true "Size"
// @Param input body stockRequest true "Stock"
// @Success 200 {object} domain.Product
// @Failure 404 {object} map[string]string
// @Router /admin/products/{id}/sizes/{size} [put]
func (s *Server) adminSetSizeStock(c *gin.Context) {
	var req stockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "stock is required"})
		return
	}
	p, err := s.products.SetSizeStock(c, c.Param("id"), c.Param("size"), *req.Stock)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary VIP-клиенты
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.User
// @Router /admin/users/vip [get]
func (s *Server) adminListVIP(c *gin.Context) {
	users, err := s.users.ListVIP(c)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func queryInt(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
