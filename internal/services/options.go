package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"gorm.io/gorm"

	"github.com/light-bringer/foxshop-service/internal/app/product/contracts"
	"github.com/light-bringer/foxshop-service/internal/app/product/queries/get_price_history"
	"github.com/light-bringer/foxshop-service/internal/app/product/queries/get_product"
	"github.com/light-bringer/foxshop-service/internal/app/product/queries/list_products"
	"github.com/light-bringer/foxshop-service/internal/app/product/repo"
	"github.com/light-bringer/foxshop-service/internal/app/product/repo/gormrepo"
	"github.com/light-bringer/foxshop-service/internal/app/product/repo/memrepo"
	"github.com/light-bringer/foxshop-service/internal/app/product/usecases/create_product"
	"github.com/light-bringer/foxshop-service/internal/app/product/usecases/deactivate_product"
	"github.com/light-bringer/foxshop-service/internal/app/product/usecases/update_product"
	"github.com/light-bringer/foxshop-service/internal/config"
	"github.com/light-bringer/foxshop-service/internal/pkg/clock"
	"github.com/light-bringer/foxshop-service/internal/pkg/committer"
	"github.com/light-bringer/foxshop-service/internal/pkg/database"
	"github.com/light-bringer/foxshop-service/internal/pkg/logger"
	"github.com/light-bringer/foxshop-service/internal/pkg/metrics"
	"github.com/light-bringer/foxshop-service/internal/transport/http/product"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient  *spanner.Client
	DB             *gorm.DB
	Metrics        *metrics.Metrics
	ProductHandler *product.Handler

	health func(ctx context.Context) error
}

// stores groups the three contracts a storage driver provides.
type stores struct {
	products  contracts.ProductRepository
	history   contracts.PriceHistoryRepository
	readModel contracts.ReadModel
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg *config.Config) (*ServiceOptions, error) {
	opts := &ServiceOptions{}

	// 1. Initialize metrics
	if cfg.Metrics.Enabled {
		m, err := metrics.New(cfg.Metrics.Namespace)
		if err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		opts.Metrics = m
	}

	// 2. Initialize the store selected by config
	s, err := opts.openStores(ctx, cfg.Storage)
	if err != nil {
		opts.Close()
		return nil, err
	}

	// 3. Create infrastructure components
	clk := clock.NewRealClock()

	// 4. Create command use cases (write operations)
	createProductUseCase := create_product.NewInteractor(s.products, clk, opts.Metrics)
	updateProductUseCase := update_product.NewInteractor(s.products, clk, opts.Metrics)
	deactivateProductUseCase := deactivate_product.NewInteractor(s.products, clk)

	// 5. Create query use cases (read operations)
	getProductQuery := get_product.NewQuery(s.readModel)
	listProductsQuery := list_products.NewQuery(s.readModel)
	getPriceHistoryQuery := get_price_history.NewQuery(s.products, s.history)

	// 6. Create HTTP handler
	opts.ProductHandler = product.NewHandler(
		createProductUseCase,
		updateProductUseCase,
		deactivateProductUseCase,
		getProductQuery,
		listProductsQuery,
		getPriceHistoryQuery,
	)

	return opts, nil
}

func (s *ServiceOptions) openStores(ctx context.Context, cfg config.StorageConfig) (*stores, error) {
	switch cfg.Driver {
	case config.DriverSpanner:
		client, err := spanner.NewClient(ctx, cfg.SpannerDatabase)
		if err != nil {
			return nil, fmt.Errorf("failed to create Spanner client: %w", err)
		}
		s.SpannerClient = client
		s.health = func(ctx context.Context) error {
			iter := client.Single().Query(ctx, spanner.Statement{SQL: "SELECT 1"})
			defer iter.Stop()
			_, err := iter.Next()
			return err
		}

		logger.Info(ctx, "using Spanner store", "database", cfg.SpannerDatabase)
		return &stores{
			products:  repo.NewProductRepo(client, committer.NewCommitter(client)),
			history:   repo.NewPriceHistoryRepo(client),
			readModel: repo.NewReadModel(client),
		}, nil

	case config.DriverPostgres:
		db, err := database.Open(ctx, cfg.Database())
		if err != nil {
			return nil, err
		}
		s.DB = db
		s.health = func(ctx context.Context) error {
			return database.Ping(ctx, db)
		}

		logger.Info(ctx, "using PostgreSQL store")
		return &stores{
			products:  gormrepo.NewProductRepo(db),
			history:   gormrepo.NewPriceHistoryRepo(db),
			readModel: gormrepo.NewReadModel(db),
		}, nil

	case config.DriverMemory:
		store := memrepo.NewStore()

		logger.Warn(ctx, "using in-memory store; data is lost on restart")
		return &stores{products: store, history: store, readModel: store}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver: %q", cfg.Driver)
	}
}

// Health pings the configured store.
func (s *ServiceOptions) Health(ctx context.Context) error {
	if s.health == nil {
		return nil
	}
	return s.health(ctx)
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
	if s.DB != nil {
		if err := database.Close(s.DB); err != nil {
			logger.Warn(context.Background(), "failed to close database", "error", err)
		}
	}
}
