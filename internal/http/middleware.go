package httpapi

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"yemalin/internal/auth"
	"yemalin/internal/service"
)

const claimsKey = "auth.claims"

// authenticate verifies the bearer token. With required=false a request
// without Authorization passes through anonymously, but a bad token is still rejected.
func (s *Server) authenticate(required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" && !required {
			c.Next()
			return
		}
		token, ok := auth.BearerToken(header)
		if !ok {
			writeError(c, fmt.Errorf("%w: missing bearer token", service.ErrUnauthorized))
			return
		}
		claims, err := s.tokens.Verify(token)
		if err != nil {
			writeError(c, err)
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFrom(c)
		if !ok || !s.users.IsAdminEmail(claims.Email) {
			writeError(c, fmt.Errorf("%w: admin access required", service.ErrForbidden))
			return
		}
		c.Next()
	}
}

// requireVIP checks the stored tier, not the one frozen in the token.
func (s *Server) requireVIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFrom(c)
		if !ok {
			writeError(c, service.ErrUnauthorized)
			return
		}
		u, err := s.users.Me(c, claims.UserID())
		if err != nil {
			writeError(c, err)
			return
		}
		if !u.IsVIP() {
			writeError(c, fmt.Errorf("%w: VIP membership required", service.ErrForbidden))
			return
		}
		c.Next()
	}
}

func claimsFrom(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

func (s *Server) isAdmin(c *gin.Context) bool {
	claims, ok := claimsFrom(c)
	return ok && s.users.IsAdminEmail(claims.Email)
}
