package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/happyshop/happyshop/internal/adapters/outbound/config"
	"github.com/happyshop/happyshop/internal/adapters/outbound/memstore"
	"github.com/happyshop/happyshop/internal/adapters/outbound/orderid"
	"github.com/happyshop/happyshop/internal/adapters/outbound/orderlog"
	"github.com/happyshop/happyshop/internal/adapters/outbound/pgstore"
	"github.com/happyshop/happyshop/internal/adapters/outbound/redisstore"
	"github.com/happyshop/happyshop/internal/application"
	"github.com/happyshop/happyshop/internal/domain"
)

// inventory is what every store adapter offers the commands.
type inventory interface {
	domain.InventoryStore
	domain.CatalogueSeeder
}

// shop bundles the collaborators built from config for one command run.
type shop struct {
	cfg      domain.ShopConfig
	logger   *slog.Logger
	store    inventory
	orders   *orderlog.FileLog
	checkout *application.CheckoutService
	closers  []func() error
}

func (s *shop) newSession() *application.Session {
	return application.NewSession(s.store, s.checkout,
		application.WithCurrency(s.cfg.Currency),
		application.WithImageFolder(s.cfg.ImageFolder),
	)
}

func (s *shop) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}
	return errors.Join(errs...)
}

func loadConfig(flags *globalFlags) (domain.ShopConfig, error) {
	loader := config.New()
	if flags.configPath != "" {
		return loader.LoadFile(flags.configPath)
	}
	return loader.Load(".")
}

// openShop loads config and connects the configured store.
func openShop(cmd *cobra.Command, flags *globalFlags) (*shop, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel, flags.verbose)
	s := &shop{cfg: cfg, logger: logger, orders: orderlog.New(cfg.OrderLog)}

	if flags.trace {
		shutdown, err := setupTracing(cmd.ErrOrStderr())
		if err != nil {
			return nil, fmt.Errorf("starting tracer: %w", err)
		}
		s.closers = append(s.closers, func() error { return shutdown(context.Background()) })
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	s.store = store
	if closeStore != nil {
		s.closers = append(s.closers, closeStore)
	}

	ids, err := newIDGenerator(cfg, s.orders)
	if err != nil {
		_ = s.Close()
		return nil, err
	}

	s.checkout = application.NewCheckoutService(
		store,
		domain.NewOrderFactory(ids, nil),
		application.WithOrderLog(s.orders),
		application.WithLogger(logger),
	)
	logger.Debug("shop ready", "driver", cfg.Store.Driver, "order_log", cfg.OrderLog)
	return s, nil
}

func openStore(ctx context.Context, cfg domain.ShopConfig) (inventory, func() error, error) {
	switch cfg.Store.Driver {
	case domain.StorePostgres:
		s, err := pgstore.Open(ctx, cfg.Store.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := s.Migrate(ctx); err != nil {
			_ = s.Close()
			return nil, nil, err
		}
		return s, s.Close, nil
	case domain.StoreRedis:
		s, err := redisstore.Open(ctx, cfg.Store.RedisURL, cfg.Store.RedisPrefix, cfg.Store.MaxRetries)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		products, err := config.LoadCatalogue(cfg.Catalogue)
		if err != nil {
			return nil, nil, err
		}
		s, err := memstore.New(products...)
		if err != nil {
			return nil, nil, err
		}
		return s, nil, nil
	}
}

// newIDGenerator continues a sequence after the highest id in the log.
func newIDGenerator(cfg domain.ShopConfig, log domain.OrderLog) (domain.IDGenerator, error) {
	var last int64
	if cfg.OrderIDs == domain.OrderIDsSequence {
		orders, err := log.Load()
		if err != nil {
			return nil, fmt.Errorf("reading order log: %w", err)
		}
		for _, o := range orders {
			if n, err := strconv.ParseInt(o.ID(), 10, 64); err == nil && n > last {
				last = n
			}
		}
	}
	return orderid.New(cfg.OrderIDs, last)
}

func newLogger(w io.Writer, level string, verbose bool) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelWarn
	}
	if verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// setupTracing installs a global tracer provider exporting to w.
func setupTracing(w io.Writer) (func(context.Context) error, error) {
	exp, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp))
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}
