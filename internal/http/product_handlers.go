package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary Активные товары
// @Tags products
// @Produce json
// @Success 200 {array} domain.Product
// @Router /products [get]
func (s *Server) listProducts(c *gin.Context) {
	items, err := s.products.GetActive(c)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Скоро в продаже
// @Tags products
// @Produce json
// @Success 200 {array} domain.Product
// @Router /products/coming-soon [get]
func (s *Server) comingSoon(c *gin.Context) {
	items, err := s.products.GetComingSoon(c)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Получить товар
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} domain.Product
// @Failure 404 {object} map[string]string
// @Router /products/{id} [get]
func (s *Server) getProduct(c *gin.Context) {
	p, err := s.products.GetByID(c, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary Ранний доступ для VIP
// @Tags vip
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Product
// @Failure 403 {object} map[string]string
// @Router /vip/early-access [get]
func (s *Server) earlyAccess(c *gin.Context) {
	items, err := s.products.GetEarlyAccess(c)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
