package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tearoma/tearoma-api/config"
	"github.com/tearoma/tearoma-api/internal/cache"
	"github.com/tearoma/tearoma-api/internal/email"
	"github.com/tearoma/tearoma-api/internal/health"
	"github.com/tearoma/tearoma-api/internal/infrastructure/postgres"
	ctxlog "github.com/tearoma/tearoma-api/internal/log"
	"github.com/tearoma/tearoma-api/internal/metrics"
	"github.com/tearoma/tearoma-api/internal/token"
	httptransport "github.com/tearoma/tearoma-api/internal/transport/http"
	"github.com/tearoma/tearoma-api/internal/transport/http/handler"
	"github.com/tearoma/tearoma-api/internal/usecase"
	"github.com/tearoma/tearoma-api/internal/warmer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	redisClient, err := cache.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		stop()
		log.Fatalf("redis: %v", err)
	}
	defer redisClient.Close()
	store := cache.NewRedisStore(redisClient)

	// Repositories
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	subscriptionRepo := postgres.NewSubscriptionRepository(pool)
	cartRepo := postgres.NewCartRepository(pool)
	chatRepo := postgres.NewChatRepository(pool)
	bestSellerRepo := postgres.NewBestSellerRepository(pool)

	// Usecases
	sender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)
	signer := token.NewSigner([]byte(cfg.SecretKey))

	authUsecase := usecase.NewAuthUsecase(userRepo)
	resetUsecase := usecase.NewResetUsecase(userRepo, store, signer, sender, cfg.FrontendBase, logger)
	profileUsecase := usecase.NewProfileUsecase(userRepo, store, logger)
	catalogUsecase := usecase.NewCatalogUsecase(productRepo, store, logger)
	viewTracker := usecase.NewViewTracker(userRepo, store)
	recommendUsecase := usecase.NewRecommendUsecase(userRepo, productRepo, viewTracker, store, logger)
	subscriptionUsecase := usecase.NewSubscriptionUsecase(userRepo, productRepo, subscriptionRepo)
	cartUsecase := usecase.NewCartUsecase(cartRepo)
	chatUsecase := usecase.NewChatUsecase(userRepo, chatRepo)
	bestSellerUsecase := usecase.NewBestSellerUsecase(bestSellerRepo, productRepo, store, logger)

	metrics.Register()
	checker := health.NewChecker(pool, store, logger, prometheus.DefaultRegisterer)

	router := httptransport.NewRouter(logger, cfg.AllowedOrigin, httptransport.Handlers{
		Auth:           handler.NewAuthHandler(authUsecase, resetUsecase, cfg.Env, logger),
		Profile:        handler.NewProfileHandler(profileUsecase, logger),
		Product:        handler.NewProductHandler(catalogUsecase, viewTracker, logger),
		Recommendation: handler.NewRecommendationHandler(recommendUsecase, logger),
		Subscription:   handler.NewSubscriptionHandler(subscriptionUsecase, logger),
		Cart:           handler.NewCartHandler(cartUsecase, logger),
		Chat:           handler.NewChatHandler(chatUsecase, logger),
		BestSeller:     handler.NewBestSellerHandler(bestSellerUsecase, logger),
	})

	srv := http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	warm := warmer.New(catalogUsecase, bestSellerUsecase, logger)
	if err := warm.Start(ctx); err != nil {
		logger.Error("cache warmer", "error", err)
	}

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	warm.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
