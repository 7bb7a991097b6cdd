package cmd

import (
	"log"
	"net/http"

	"bookit/config"
	"bookit/internal/handlers"
	"bookit/internal/services"
	"bookit/security"
	"bookit/utils"

	_ "bookit/migrations"

	"github.com/labstack/echo/v5"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	pubnub "github.com/pubnub/go"
	"github.com/redis/go-redis/v9"
)

func Start() error {
	app := pocketbase.New()

	// Load configuration
	cfg := config.LoadConfig()

	// Initialize Redis
	redisClient := utils.NewRedisClient(cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
	defer redisClient.Close()

	// Initialize PubNub (optional; availability updates are best effort)
	var pn *pubnub.PubNub
	if cfg.PubNubPublishKey != "" && cfg.PubNubSubscribeKey != "" {
		pnConfig := pubnub.NewConfig()
		pnConfig.PublishKey = cfg.PubNubPublishKey
		pnConfig.SubscribeKey = cfg.PubNubSubscribeKey
		pnConfig.SecretKey = cfg.PubNubSecretKey

		pn = pubnub.NewPubNub(pnConfig)
	}

	// Initialize services
	store := services.NewStore(app)
	notifier := services.NewAvailabilityNotifier(pn)
	experienceService := services.NewExperienceService(store, redisClient, cfg.CacheTTL)
	promoService := services.NewPromoService(store)
	bookingService := services.NewBookingService(store, experienceService, notifier)

	// Initialize handlers
	experienceHandler := handlers.NewExperienceHandler(app, experienceService)
	promoHandler := handlers.NewPromoHandler(app, promoService)
	bookingHandler := handlers.NewBookingHandler(app, bookingService)

	limiter := security.NewRateLimiter(redisClient, cfg.RateLimitPerMinute)

	// Enable migrations
	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: cfg.Environment == "development",
	})

	// Metrics/health sidecar
	if cfg.EnableMetrics {
		go startMetricsServer(cfg, redisClient)
	}

	// Register routes
	app.OnServe().BindFunc(func(e *core.ServeEvent) error {
		api := e.Router.Group("/api/v1")

		// Catalog endpoints
		api.GET("/experiences", experienceHandler.List)
		api.GET("/experiences/{experienceId}", experienceHandler.Get)

		// Promo endpoints
		api.POST("/promo/validate", promoHandler.Validate)

		// Booking endpoints
		bookings := api.Group("/bookings")
		bookings.BindFunc(limiter.Limit)
		bookings.POST("", bookingHandler.Create)
		bookings.POST("/quote", bookingHandler.Quote)
		bookings.GET("", bookingHandler.List)

		// Health check
		e.Router.GET("/health", func(e *core.RequestEvent) error {
			if err := utils.RedisHealthCheck(redisClient); err != nil {
				return e.JSON(http.StatusServiceUnavailable, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
			}
			return e.JSON(http.StatusOK, map[string]string{"status": "healthy"})
		})

		log.Println("Server routes registered")

		return e.Next()
	})

	return app.Start()
}

// startMetricsServer exposes prometheus metrics and a liveness endpoint on a
// separate port so they never share the public listener.
func startMetricsServer(cfg *config.Config, redisClient *redis.Client) {
	e := echo.New()

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/healthz", func(c echo.Context) error {
		if err := utils.RedisHealthCheck(redisClient); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	})

	if err := e.Start(":" + cfg.MetricsPort); err != nil {
		log.Printf("metrics server stopped: %v", err)
	}
}
