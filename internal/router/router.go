package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/guruapp/backend/api/handler"
)

type Handlers struct {
	Auth    *apiHandler.AuthHandler
	Item    *apiHandler.ItemHandler
	Payment *apiHandler.PaymentHandler
	Admin   *apiHandler.AdminHandler
	Health  *apiHandler.HealthHandler
}

type Middleware = func(fasthttp.RequestHandler) fasthttp.RequestHandler

func New(handlers Handlers, jwtAuth Middleware, adminAuth Middleware) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/register", handlers.Auth.Register)
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.GET("/api/v1/auth/me", jwtAuth(handlers.Auth.Me))

	// Marketplace routes
	r.POST("/api/v1/items", handlers.Item.Create)
	r.GET("/api/v1/items", handlers.Item.List)
	r.GET("/api/v1/items/{id}", handlers.Item.Get)
	r.GET("/uploads/{filename}", handlers.Item.Download)
	r.POST("/api/v1/payments", handlers.Payment.Submit)

	// Admin routes
	r.GET("/api/v1/admin/payments", adminAuth(handlers.Admin.ListPayments))
	r.POST("/api/v1/admin/payments/{id}/decide", adminAuth(handlers.Admin.DecidePayment))
	r.GET("/api/v1/admin/items", adminAuth(handlers.Admin.ListItems))
	r.POST("/api/v1/admin/items/{id}/activate", adminAuth(handlers.Admin.ActivateItem))
	r.GET("/api/v1/admin/users", adminAuth(handlers.Admin.ListUsers))
	r.POST("/api/v1/admin/users/{id}/approve", adminAuth(handlers.Admin.ApproveUser))
	r.GET("/api/v1/admin/audit", adminAuth(handlers.Admin.Audit))

	return r
}
