package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/sawaikart/padharo/internal"
	"github.com/sawaikart/padharo/internal/addressbook"
	"github.com/sawaikart/padharo/internal/cartapi"
	"github.com/sawaikart/padharo/internal/catalog"
	"github.com/sawaikart/padharo/internal/events"
	"github.com/sawaikart/padharo/internal/gateway"
	"github.com/sawaikart/padharo/internal/handler/storefront"
	"github.com/sawaikart/padharo/internal/identity"
	"github.com/sawaikart/padharo/internal/kv"
	"github.com/sawaikart/padharo/internal/middleware"
	"github.com/sawaikart/padharo/internal/orderapi"
	"github.com/sawaikart/padharo/internal/postal"
	"github.com/sawaikart/padharo/internal/router"
	"github.com/sawaikart/padharo/internal/routes"
	"github.com/sawaikart/padharo/internal/service"
	"github.com/sawaikart/padharo/internal/telemetry"
)

func run() error {
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)
	logger.Info("starting padharo checkout service",
		"env", cfg.Env,
		"port", cfg.Port)

	// Migrations run over database/sql; the kv store runs over pgxpool.
	migrationDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := internal.RunMigrations(migrationDB); err != nil {
		migrationDB.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	migrationDB.Close()

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()
	store := kv.NewPostgresStore(pool)

	// Upstream collaborators.
	catalogClient := catalog.NewHTTPClient(cfg.Upstream.CatalogURL)
	cartClient := cartapi.NewHTTPClient(cfg.Upstream.CartURL)
	addressClient := addressbook.NewHTTPClient(cfg.Upstream.AddressBookURL)
	orderClient := orderapi.NewHTTPClient(cfg.Upstream.OrderURL)
	postalLookup := postal.NewHTTPLookup(cfg.Upstream.PostalURL)
	paymentGateway := gateway.NewStripeGateway(cfg.Stripe.SecretKey, logger)

	var identityProvider identity.Provider
	if cfg.Upstream.IdentityURL != "" {
		identityProvider = identity.NewHTTPProvider(cfg.Upstream.IdentityURL)
	} else {
		logger.Warn("no identity service configured, all requests resolve as guests")
		identityProvider = identity.NewStaticProvider(nil)
	}

	// Event publishing is optional; a nil publisher drops events.
	var publisher *events.Publisher
	if cfg.Nats.URL != "" {
		publisher, err = events.Connect(cfg.Nats.URL, logger)
		if err != nil {
			return fmt.Errorf("failed to connect to nats: %w", err)
		}
		defer publisher.Close()
	}

	businessMetrics := telemetry.NewBusinessMetrics("padharo")
	httpMetrics := middleware.NewMetrics("padharo")

	// Checkout core.
	registry := service.NewRegistry(cartClient, addressClient, postalLookup, cfg.ServiceableRegion, logger, businessMetrics)
	variants := service.NewVariantResolver(catalogClient, logger)
	continuations := service.NewContinuationStore(store, cfg.ContinuationTTL, logger, businessMetrics)
	coordinator := service.NewCheckoutCoordinator(
		orderClient,
		paymentGateway,
		store,
		continuations,
		publisher,
		cfg.ServiceableRegion,
		cfg.BaseURL,
		logger,
		businessMetrics,
	)
	reconciler := service.NewReconciler(store, orderClient, logger, businessMetrics)

	r := router.New(
		middleware.RequestID,
		middleware.WithIdentity(identityProvider),
		middleware.WithRequestLogger(logger),
		httpMetrics.Middleware,
	)

	routes.RegisterStorefrontRoutes(r, routes.StorefrontDeps{
		CartHandler:         storefront.NewCartHandler(registry, variants, logger),
		AddressHandler:      storefront.NewAddressHandler(registry, logger),
		CheckoutHandler:     storefront.NewCheckoutHandler(registry, coordinator, continuations, logger),
		ConfirmationHandler: storefront.NewOrderConfirmationHandler(reconciler, logger),
	})

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := pool.Ping(req.Context()); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle(http.MethodGet, "/metrics", httpMetrics.Handler())

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
