package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"poolbnb/internal/infra/config"
	"poolbnb/internal/infra/obs"
)

type Handlers struct {
	Auth           AuthHTTP
	Me             MeHTTP
	Pool           PoolHTTP
	Booking        BookingHTTP
	Review         ReviewHTTP
	AuthMiddleware gin.HandlerFunc
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.RequestLogger())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))
	if h.AuthMiddleware != nil {
		router.Use(h.AuthMiddleware)
	}

	// A known path hit with the wrong verb answers 405, not 404.
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"message": "Method not allowed"})
	})
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	})

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Auth != nil {
		api.POST("/auth/signup", h.Auth.Signup)
		api.POST("/auth/login", h.Auth.Login)
		api.POST("/auth/logout", h.Auth.Logout)
	}
	if h.Me != nil {
		meGroup := api.Group("/me")
		meGroup.GET("", h.Me.Me)
		meGroup.PUT("/profile", h.Me.UpdateProfile)
		meGroup.GET("/bookings", h.Me.ListBookings)
		meGroup.GET("/listings", h.Me.ListListings)
	}
	if h.Pool != nil {
		api.GET("/pools/featured", h.Pool.Featured)
		api.GET("/pools/search", h.Pool.Search)
		api.GET("/pools/sort-filter", h.Pool.SortFilter)
		api.POST("/pools", h.Pool.Create)
		api.GET("/pools/:id", h.Pool.Details)
	}
	if h.Booking != nil {
		api.POST("/pools/:id/availability", h.Booking.CheckAvailability)
		api.POST("/pools/:id/book", h.Booking.Book)
		api.DELETE("/bookings/:id", h.Booking.Cancel)
	}
	if h.Review != nil {
		api.POST("/pools/:id/reviews", h.Review.Submit)
		api.GET("/pools/:id/reviews", h.Review.List)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
