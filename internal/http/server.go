package httpapi

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"yemalin/internal/auth"
	"yemalin/internal/service"
)

type Server struct {
	engine   *gin.Engine
	users    *service.UserService
	tokens   *auth.TokenService
	products *service.ProductService
	orders   *service.OrderService
	carts    *service.CartService
}

func NewServer(users *service.UserService, tokens *auth.TokenService, products *service.ProductService, orders *service.OrderService, carts *service.CartService) *Server {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	s := &Server{engine: r, users: users, tokens: tokens, products: products, orders: orders, carts: carts}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := s.engine.Group("/api/v1")
	{
		authGroup := v1.Group("/auth")
		authGroup.POST("/signup", s.signup)
		authGroup.POST("/login", s.login)
		authGroup.POST("/refresh", s.refresh)
		authGroup.GET("/me", s.authenticate(true), s.me)
		authGroup.PATCH("/me", s.authenticate(true), s.updateMe)

		products := v1.Group("/products")
		products.GET("", s.listProducts)
		products.GET("/coming-soon", s.comingSoon)
		products.GET("/:id", s.getProduct)

		vip := v1.Group("/vip", s.authenticate(true), s.requireVIP())
		vip.GET("/early-access", s.earlyAccess)

		orders := v1.Group("/orders")
		orders.POST("", s.authenticate(false), s.createOrder)
		orders.GET("/mine", s.authenticate(true), s.myOrders)
		orders.GET("/number/:number", s.authenticate(true), s.orderByNumber)
		orders.POST("/:id/cancel", s.authenticate(true), s.cancelOrder)
		orders.POST("/:id/payment", s.authenticate(true), s.requireAdmin(), s.updatePayment)

		carts := v1.Group("/carts")
		carts.POST("/abandoned", s.abandonCart)

		admin := v1.Group("/admin", s.authenticate(true), s.requireAdmin())
		admin.GET("/orders", s.adminListOrders)
		admin.GET("/orders/stats", s.adminOrderStats)
		admin.PATCH("/orders/:id/status", s.adminUpdateOrderStatus)
		admin.POST("/products", s.adminCreateProduct)
		admin.PATCH("/products/:id", s.adminUpdateProduct)
		admin.GET("/products", s.adminListProducts)
		admin.PUT("/products/:id/sizes/:size", s.adminSetSizeStock)
		admin.GET("/carts", s.adminListCarts)
		admin.POST("/carts/recovered", s.recoverCart)
		admin.GET("/users/vip", s.adminListVIP)
	}
}
