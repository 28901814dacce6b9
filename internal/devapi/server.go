package devapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/nookcoder/library-console/internal/auth"
	"github.com/nookcoder/library-console/internal/health"
	"github.com/nookcoder/library-console/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Options struct {
	AllowOrigins []string
}

// NewRouter wires the development API.
func NewRouter(h *Handler, tokens auth.Service, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	if len(opts.AllowOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = opts.AllowOrigins
		corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Request-ID"}
		corsConfig.MaxAge = 12 * time.Hour
		r.Use(cors.New(corsConfig))
	}

	healthHandler := health.NewHealthHandler("library-devapi")
	r.GET("/health", healthHandler.Check)
	r.HEAD("/health", healthHandler.Check)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.POST("/register", h.Register)
		authGroup.POST("/refresh", h.Refresh)
	}

	// Protected API
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(tokens))
	{
		api.GET("/books", h.ListBooks)
		api.GET("/books/:id", h.GetBook)
		api.GET("/loans", h.ListLoans)

		admin := api.Group("/users", middleware.RequireRole("ADMIN"))
		admin.GET("", h.ListUsers)
		admin.GET("/:id", h.GetUser)
		admin.GET("/:id/loans", h.UserLoans)
	}

	return r
}

// SeedBooks is the fixture catalog served by the development API.
func SeedBooks() []Book {
	return []Book{
		{ID: 1, ISBN: "9780262033848", Title: "Introduction to Algorithms", Author: "Cormen", AvailableCopies: 2, TotalCopies: 3},
		{ID: 2, ISBN: "9780134190440", Title: "The Go Programming Language", Author: "Donovan", AvailableCopies: 1, TotalCopies: 1},
		{ID: 3, ISBN: "9780201633610", Title: "Design Patterns", Author: "Gamma", AvailableCopies: 0, TotalCopies: 2},
	}
}
