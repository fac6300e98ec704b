package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"rentalhub/internal/config"
	"rentalhub/internal/events"
	"rentalhub/internal/metrics"
	"rentalhub/internal/middleware"
	"rentalhub/internal/modules/auth"
	"rentalhub/internal/modules/booking"
	"rentalhub/internal/modules/catalog"
	"rentalhub/internal/modules/chat"
	"rentalhub/internal/pkg/session"
	"rentalhub/internal/repository"
)

type Options struct {
	Config    *config.Config
	DB        *gorm.DB
	Revoker   session.Revoker
	Publisher events.Publisher
	// Completer replaces the HTTP LLM client when set.
	Completer chat.Completer
}

// New wires repositories, services and handlers onto a gin engine.
// The returned func releases background resources owned by the router.
func New(opts Options) (*gin.Engine, func()) {
	cfg := opts.Config
	metrics.Register()

	propertyRepo := repository.NewPropertyRepository(opts.DB)
	bookingRepo := repository.NewBookingRepository(opts.DB)
	credentialRepo := repository.NewCredentialRepository(opts.DB)

	sessions := session.New(cfg.SecretKey, cfg.SessionTTL)

	authService := auth.NewService(credentialRepo, sessions, opts.Revoker)
	catalogService := catalog.NewService(propertyRepo, cfg.ListingCacheTTL)
	bookingService := booking.NewService(
		booking.NewGormUnitOfWork(opts.DB),
		bookingRepo,
		catalogService,
		opts.Publisher,
	)

	completer := opts.Completer
	if completer == nil {
		completer = chat.NewLLMClient(chat.LLMConfig{
			BaseURL: cfg.LLMBaseURL,
			APIKey:  cfg.LLMAPIKey,
			Model:   cfg.LLMModel,
		}, &http.Client{Timeout: cfg.ChatTimeout})
	}
	chatService := chat.NewService(completer, nil, cfg.ChatTimeout)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.ErrorLogger(),
		middleware.RequestLogger(),
		metrics.Middleware(),
		middleware.CORS(cfg.CORSOrigins),
	)

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Server running")
	})
	r.GET("/health", healthHandler(opts.DB))
	r.GET("/metrics", metrics.Handler())

	auth.NewHandler(authService, cfg.CookieSecure).RegisterRoutes(r)

	api := r.Group("/api")
	{
		catalogHandler := catalog.NewHandler(catalogService)
		catalogHandler.RegisterPublicRoutes(api)
		chat.NewHandler(chatService).RegisterRoutes(api)

		protected := api.Group("")
		protected.Use(middleware.SessionAuth(sessions, opts.Revoker))
		{
			catalogHandler.RegisterProtectedRoutes(protected)
			booking.NewHandler(bookingService).RegisterRoutes(protected)
		}
	}

	return r, catalogService.Close
}

func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
