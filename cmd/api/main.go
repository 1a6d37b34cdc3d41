package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/msrpanel/msr-api/internal/access"
	"github.com/msrpanel/msr-api/internal/config"
	"github.com/msrpanel/msr-api/internal/domain/admin"
	"github.com/msrpanel/msr-api/internal/domain/dashboard"
	"github.com/msrpanel/msr-api/internal/domain/report"
	"github.com/msrpanel/msr-api/internal/domain/user"
	"github.com/msrpanel/msr-api/internal/middleware"
	"github.com/msrpanel/msr-api/internal/pkg/database"
	"github.com/msrpanel/msr-api/internal/pkg/imaging"
	pkgresponse "github.com/msrpanel/msr-api/internal/pkg/response"
	"github.com/msrpanel/msr-api/internal/pkg/storage"
	"github.com/msrpanel/msr-api/internal/rolegrant"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Str("profile", cfg.PolicyProfile).
		Msg("Starting MSR API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	profile, err := access.ParseProfile(cfg.PolicyProfile)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid policy profile")
	}
	policy := access.NewPolicy(profile)

	jwtService := admin.NewJWTService(cfg.JWTSecret, cfg.JWTAccessTTL)
	denylist := admin.NewRedisDenylist(redis)

	idProofs, err := storage.NewS3Storage(storage.Config{
		Endpoint:        cfg.StorageEndpoint,
		Region:          cfg.StorageRegion,
		AccessKeyID:     cfg.StorageAccessKeyID,
		AccessKeySecret: cfg.StorageAccessKeySecret,
		BucketName:      cfg.StorageBucketName,
		PublicURL:       cfg.StoragePublicURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create object storage client")
	}
	normalizer := imaging.NewNormalizer(imaging.DefaultConfig())

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	reportRepo := report.NewRepository(db)
	granter := rolegrant.NewRepository(db)

	// ---------- Services ----------
	authService := admin.NewAuthService(userRepo, jwtService, denylist)
	userService := admin.NewUserService(userRepo, policy, granter)
	reportService := admin.NewReportService(reportRepo, userRepo, policy)
	dashboardService := dashboard.NewService(userRepo, reportRepo, policy)

	// ---------- Handlers ----------
	panelHandler := admin.NewHandler(
		authService,
		userService,
		reportService,
		jwtService,
		denylist,
		userRepo,
		idProofs,
		normalizer,
	)
	dashboardHandler := dashboard.NewHandler(dashboardService)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status": "ok",
			"env":    cfg.Env,
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/", panelHandler.Routes())

		r.Group(func(r chi.Router) {
			r.Use(admin.AuthMiddleware(jwtService, denylist, userRepo))
			r.Mount("/dashboard", dashboardHandler.Routes())
		})
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		})
	}
}
