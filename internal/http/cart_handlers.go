package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yemalin/internal/service"
)

type abandonRequest struct {
	Email string             `json:"email"`
	Items []service.CartLine `json:"items"`
}

type recoverRequest struct {
	Email string `json:"email" binding:"required"`
}

// @Summary Зафиксировать брошенную корзину
// @Tags carts
// @Accept json
// @Produce json
// @Param input body abandonRequest true "Cart"
// @Success 201 {object} domain.AbandonedCart
// @Failure 400 {object} map[string]string
// @Router /carts/abandoned [post]
func (s *Server) abandonCart(c *gin.Context) {
	var req abandonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c)
		return
	}
	cart, err := s.carts.Abandon(c, req.Email, req.Items)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cart)
}

// @Summary Корзина восстановлена
// @Tags admin
// @Accept json
// @Security BearerAuth
// @Param input body recoverRequest true "Email"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /admin/carts/recovered [post]
func (s *Server) recoverCart(c *gin.Context) {
	var req recoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}
	if err := s.carts.Recover(c, req.Email); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Активные брошенные корзины
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.AbandonedCart
// @Router /admin/carts [get]
func (s *Server) adminListCarts(c *gin.Context) {
	carts, err := s.carts.ListActive(c)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, carts)
}
