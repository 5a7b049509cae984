package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	cartapp "github.com/dwikikusuma/ubermelon/internal/cart/app"
	cartadapter "github.com/dwikikusuma/ubermelon/internal/cart/infra/adapter"

	catalogapp "github.com/dwikikusuma/ubermelon/internal/catalog/app"
	catalogpg "github.com/dwikikusuma/ubermelon/internal/catalog/infra/postgres"
	catalogyaml "github.com/dwikikusuma/ubermelon/internal/catalog/infra/yamlstore"

	checkoutapp "github.com/dwikikusuma/ubermelon/internal/checkout/app"

	customerapp "github.com/dwikikusuma/ubermelon/internal/customer/app"
	customeryaml "github.com/dwikikusuma/ubermelon/internal/customer/infra/yamlstore"

	"github.com/dwikikusuma/ubermelon/internal/session"
	"github.com/dwikikusuma/ubermelon/internal/web"
	"github.com/dwikikusuma/ubermelon/pkg/config"
	"github.com/dwikikusuma/ubermelon/pkg/logger"
	"github.com/dwikikusuma/ubermelon/pkg/postgres"
	"github.com/dwikikusuma/ubermelon/pkg/shutdown"
)

const serviceName = "ubermelon"

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Service: serviceName, Env: cfg.AppEnv, Level: cfg.LogLevel, AddSource: true})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("shop stopped with error", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("bye")
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	productRepo, closeCatalog, err := openCatalog(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeCatalog(); err != nil {
			log.Warn("catalog close failed", slog.Any("err", err))
		}
	}()
	customerRepo, err := openCustomers(cfg)
	if err != nil {
		return err
	}
	sessions, err := session.NewCookieStore(session.Options{
		Secret: cfg.SessionSecret,
		TTL:    cfg.SessionTTL,
		Secure: cfg.SessionSecure,
	}, log)
	if err != nil {
		return err
	}

	// Catalog
	catalogSvc := catalogapp.NewService(productRepo)

	// Cart
	cartSvc := cartapp.NewService(cartadapter.NewCatalogServiceReader(catalogSvc), log)

	router, err := web.NewRouter(web.NewHandler(web.Deps{
		Catalog:   catalogSvc,
		Cart:      cartSvc,
		Customers: customerapp.NewService(customerRepo, log),
		Checkout:  checkoutapp.NewService(log),
		Sessions:  sessions,
		Log:       log,
	}))
	if err != nil {
		return err
	}

	httpAddr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              httpAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	grpcAddr := fmt.Sprintf(":%d", cfg.GRPCPort)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", grpcAddr, err)
	}
	grpcServer := grpc.NewServer()
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthSrv)
	healthSrv.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server starting", slog.String("addr", httpAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		log.Info("grpc health starting", slog.String("addr", grpcAddr))
		if err := grpcServer.Serve(lis); err != nil {
			return fmt.Errorf("grpc serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")
		healthSrv.Shutdown()

		if !shutdown.Graceful(10*time.Second, server.Shutdown, func() { _ = server.Close() }) {
			log.Warn("http graceful stop timeout, forcing stop")
		}
		if !shutdown.Graceful(10*time.Second, func(context.Context) error {
			grpcServer.GracefulStop()
			return nil
		}, grpcServer.Stop) {
			log.Warn("grpc graceful stop timeout, forcing stop")
		}
		return nil
	})

	return g.Wait()
}

// openCatalog returns the product store for cfg and a func that releases
// it. Callers close it after the servers have stopped.
func openCatalog(ctx context.Context, cfg config.Config, log *slog.Logger) (catalogapp.ProductRepo, func() error, error) {
	seed, err := loadCatalogFile(cfg.CatalogPath)
	if err != nil {
		return nil, nil, err
	}

	switch cfg.CatalogSource {
	case config.CatalogSourceFile:
		return seed, func() error { return nil }, nil
	case config.CatalogSourcePostgres:
	default:
		return nil, nil, fmt.Errorf("unknown catalog source %q", cfg.CatalogSource)
	}

	db, err := postgres.Open(postgres.Config{
		Host: cfg.Postgres.Host,
		Port: cfg.Postgres.Port,
		User: cfg.Postgres.User,
		Pass: cfg.Postgres.Pass,
		DB:   cfg.Postgres.DB,
	})
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() error { return postgres.Close(db) }

	repo, err := prepareCatalog(ctx, catalogpg.NewProductRepo(db), seed, cfg.CatalogSeed, log)
	if err != nil {
		_ = closeDB()
		return nil, nil, err
	}
	return repo, closeDB, nil
}

func prepareCatalog(ctx context.Context, repo *catalogpg.ProductRepo, seed *catalogyaml.ProductRepo, doSeed bool, log *slog.Logger) (*catalogpg.ProductRepo, error) {
	if err := repo.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("migrate catalog: %w", err)
	}
	if !doSeed {
		return repo, nil
	}

	products, err := seed.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := repo.Seed(ctx, products); err != nil {
		return nil, err
	}
	log.Info("catalog seeded", slog.Int("products", len(products)))
	return repo, nil
}

func loadCatalogFile(path string) (*catalogyaml.ProductRepo, error) {
	if path == "" {
		return catalogyaml.Default()
	}
	return catalogyaml.Open(path)
}

func openCustomers(cfg config.Config) (*customeryaml.CustomerRepo, error) {
	if cfg.CustomersPath == "" {
		return customeryaml.Default()
	}
	return customeryaml.Open(cfg.CustomersPath)
}
