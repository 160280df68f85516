package httpapi

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"yemalin/internal/auth"
	"yemalin/internal/repository"
	"yemalin/internal/service"
)

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrNotEnoughStock):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized),
		errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrTokenMalformed):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrInvalidState):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as {"error": ...}; internals never leak to the client.
func writeError(c *gin.Context, err error) {
	status := mapErrorToStatus(err)
	body := gin.H{"error": err.Error()}
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		body["code"] = "token_expired"
	case errors.Is(err, auth.ErrTokenMalformed):
		body["code"] = "invalid_token"
	}
	var se *service.StockError
	if errors.As(err, &se) {
		body["productId"] = se.ProductID
		body["size"] = se.Size
		body["available"] = se.Available
	}
	if status == http.StatusInternalServerError {
		log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.FullPath(), err)
		body = gin.H{"error": "internal error"}
	}
	c.AbortWithStatusJSON(status, body)
}

func badJSON(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
}
