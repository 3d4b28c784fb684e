package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"artist-site/config"
	"artist-site/database"
	adminapi "artist-site/internal/api/admin"
	authapi "artist-site/internal/api/auth"
	contactapi "artist-site/internal/api/contact"
	eventsapi "artist-site/internal/api/events"
	galleryapi "artist-site/internal/api/gallery"
	newsletterapi "artist-site/internal/api/newsletter"
	usersapi "artist-site/internal/api/users"
	worksapi "artist-site/internal/api/works"
	routes "artist-site/internal/app/http"
	"artist-site/internal/app/http/middleware"
	"artist-site/internal/mail"
	"artist-site/internal/service"
	"artist-site/internal/storage"
	_ "artist-site/internal/storage/local"
	_ "artist-site/internal/storage/s3"
	"artist-site/internal/telemetry"
	"artist-site/internal/validation"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := telemetry.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	database.InitDB(cfg, logger)

	store, err := storage.New(cfg)
	if err != nil {
		logger.Fatal("storage init failed", zap.Error(err))
	}

	renderer, err := mail.NewRenderer()
	if err != nil {
		logger.Fatal("mail templates failed to load", zap.Error(err))
	}
	mailer, err := mail.New(cfg, renderer, logger)
	if err != nil {
		logger.Fatal("mailer init failed", zap.Error(err))
	}

	ownerEmail := cfg.Site.OwnerEmail
	if ownerEmail == "" {
		ownerEmail = cfg.Auth.AdminEmail
	}

	v := validation.New()
	db := database.DB

	artworks := service.NewArtworkService(db, store, v, logger)
	tags := service.NewTagService(db, v, logger)
	evs := service.NewEventService(db, store, v, logger)
	news := service.NewNewsletterService(db, mailer, v, service.NewsletterOptions{
		SiteName:        cfg.Site.Name,
		AppURL:          cfg.Server.AppURL,
		UnsubscribeMode: cfg.Newsletter.UnsubscribeMode,
	}, logger)
	auth := service.NewAuthService(db, cfg.Auth.JWTSecret, cfg.Auth.AdminEmail, v, logger)

	deps := routes.Deps{
		Works:   worksapi.NewHandler(artworks, tags),
		Events:  eventsapi.NewHandler(evs),
		Gallery: galleryapi.NewHandler(service.NewGalleryService(artworks, tags, cfg.Site.Locale)),
		Newsletter: newsletterapi.NewHandler(news, renderer, newsletterapi.PageInfo{
			SiteName: cfg.Site.Name,
			SiteURL:  cfg.Server.AppURL,
		}),
		Contact: contactapi.NewHandler(service.NewContactService(mailer, ownerEmail, v, logger)),
		Auth:    authapi.NewHandler(auth, cfg.Auth.Google),
		Users:   usersapi.NewHandler(auth),
		Admin:   adminapi.NewHandler(service.NewDashboardService(artworks, evs, news), news),

		JWTSecret:   cfg.Auth.JWTSecret,
		FormLimiter: middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
	}
	if cfg.Storage.Backend == "local" {
		deps.StoragePrefix = cfg.Storage.Local.PublicPrefix
		deps.StoragePath = cfg.Storage.Local.BasePath
	}

	gin.SetMode(cfg.Server.GinMode)
	r := gin.New()
	r.MaxMultipartMemory = 8 << 20
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.LoggerMiddleware(logger))

	// CORS must run before the routes
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.Server.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
