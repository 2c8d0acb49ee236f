package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"turfbook/internal/config"
	"turfbook/internal/database"
	"turfbook/internal/middleware"
	"turfbook/internal/modules/admin"
	"turfbook/internal/modules/auth"
	"turfbook/internal/modules/booking"
	"turfbook/internal/modules/catalog"
	"turfbook/internal/modules/notification"
	"turfbook/internal/modules/payment"
	jwtsvc "turfbook/internal/pkg/jwt"
	"turfbook/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	turfRepo := repository.NewTurfRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	sessionRepo := repository.NewCheckoutSessionRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	notifService := notification.NewService(notifRepo)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(turfRepo, bookingRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	bookingService := booking.NewService(bookingRepo, turfRepo, notifService)
	bookingHandler := booking.NewHandler(bookingService)

	stripeProvider := payment.NewStripeProvider(cfg.StripeSecretKey, cfg.ProviderTimeout)
	paymentService := payment.NewService(
		sessionRepo,
		bookingRepo,
		bookingRepo,
		turfRepo,
		notifService,
		stripeProvider,
		payment.Config{
			WebhookSecret:      cfg.StripeWebhookSecret,
			DepositAmountMinor: cfg.DepositAmountMinor,
			Currency:           cfg.Currency,
			FrontendURL:        cfg.FrontendURL,
		},
		log.Printf,
	)
	paymentHandler := payment.NewHandler(paymentService)

	adminService := admin.NewService(userRepo, notifRepo)
	adminHandler := admin.NewHandler(adminService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterRoutes(v1)

		// provider callback, authenticated by signature instead of JWT
		paymentHandler.RegisterWebhookRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			paymentHandler.RegisterProtectedRoutes(protected)

			adminGroup := protected.Group("/admin")
			adminGroup.Use(middleware.AdminOnly())
			{
				adminHandler.RegisterRoutes(adminGroup)
				bookingHandler.RegisterAdminRoutes(adminGroup)
				catalogHandler.RegisterAdminRoutes(adminGroup)
			}
		}
	}

	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
