package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yemalin/internal/service"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// @Summary Регистрация
// @Tags auth
// @Accept json
// @Produce json
// @Param input body service.SignupInput true "Signup"
// @Success 201 {object} service.AuthResult
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /auth/signup [post]
func (s *Server) signup(c *gin.Context) {
	var in service.SignupInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badJSON(c)
		return
	}
	res, err := s.users.Signup(c, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// @Summary Вход
// @Tags auth
// @Accept json
// @Produce json
// @Param input body loginRequest true "Credentials"
// @Success 200 {object} service.AuthResult
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}
	res, err := s.users.Login(c, req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Обновить пару токенов
// @Tags auth
// @Accept json
// @Produce json
// @Param input body refreshRequest true "Refresh token"
// @Success 200 {object} service.AuthResult
// @Failure 401 {object} map[string]string
// @Router /auth/refresh [post]
func (s *Server) refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "refreshToken is required"})
		return
	}
	res, err := s.users.Refresh(c, req.RefreshToken)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Текущий пользователь
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.User
// @Failure 401 {object} map[string]string
// @Router /auth/me [get]
func (s *Server) me(c *gin.Context) {
	claims, _ := claimsFrom(c)
	u, err := s.users.Me(c, claims.UserID())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// @Summary Обновить профиль
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body service.ProfileUpdate true "Profile"
// @Success 200 {object} domain.User
// @Failure 400 {object} map[string]string
// @Router /auth/me [patch]
func (s *Server) updateMe(c *gin.Context) {
	claims, _ := claimsFrom(c)
	var in service.ProfileUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		badJSON(c)
		return
	}
	u, err := s.users.UpdateProfile(c, claims.UserID(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
