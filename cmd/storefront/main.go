package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Ragul1106/pet-store/internal/auth"
	"github.com/Ragul1106/pet-store/internal/backend"
	"github.com/Ragul1106/pet-store/internal/cartstore"
	"github.com/Ragul1106/pet-store/internal/checkout"
	"github.com/Ragul1106/pet-store/internal/config"
	"github.com/Ragul1106/pet-store/internal/httpapi"
	"github.com/Ragul1106/pet-store/internal/orderlookup"
	"github.com/Ragul1106/pet-store/internal/product"
	"github.com/Ragul1106/pet-store/internal/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := newLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	if err := run(cfg, log); err != nil {
		log.Fatal("storefront exited", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	// Storage for the cart token and product cache: redis when configured,
	// in-process otherwise.
	var (
		tokens       token.Store   = token.NewMemoryStore()
		productCache product.Cache = product.NopCache{}
	)
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			return fmt.Errorf("redis ping: %w", err)
		}
		tokens = token.NewRedisStore(rdb)
		productCache = product.NewRedisCache(rdb)
		log.Info("redis connected", zap.String("addr", cfg.Redis.Addr))
	}

	session := auth.NewSession()
	client := backend.NewClient(cfg.Backend.BaseURL, tokens, log,
		backend.WithCredentials(session),
		backend.WithHTTPClient(&http.Client{
			Timeout:   cfg.Backend.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}),
	)

	carts := cartstore.NewStore(client, log)
	initCtx, cancel := context.WithTimeout(context.Background(), cfg.Backend.Timeout)
	if err := carts.Init(initCtx); err != nil {
		// the store is still serving the empty cart; a later Refresh recovers
		log.Warn("cart hydration failed", zap.Error(err))
	}
	cancel()

	products := product.NewService(client, productCache, log)
	authSvc := auth.NewService(client, session, log)
	intents := auth.NewIntentStore()
	checkoutSvc := checkout.NewService(carts, products, client, session, intents, cfg.Checkout.ShippingFlat, log)
	lookupSvc := orderlookup.NewService(client, log)

	router := httpapi.NewRouter(httpapi.Handlers{
		Cart:     httpapi.NewCartHandler(carts, log),
		Checkout: httpapi.NewCheckoutHandler(checkoutSvc, log),
		Orders:   httpapi.NewOrderHandler(lookupSvc, log),
		Products: httpapi.NewProductHandler(products, log),
		Auth:     httpapi.NewAuthHandler(authSvc, session, log),
	}, cfg.HTTP.RequestTimeout, log)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("storefront listening",
			zap.String("port", cfg.HTTP.Port),
			zap.String("backend", cfg.Backend.BaseURL),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("server exited")
	return nil
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
	}

	var zc zap.Config
	if cfg.Format == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
