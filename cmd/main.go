package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	httpadapter "mesa-budget/internal/adapter/http"
	kafkaadapter "mesa-budget/internal/adapter/kafka"
	"mesa-budget/internal/adapter/memory"
	"mesa-budget/internal/adapter/postgres"
	redisadapter "mesa-budget/internal/adapter/redis"
	"mesa-budget/internal/adapter/usecase"
	"mesa-budget/internal/clock"
	"mesa-budget/internal/config"
	"mesa-budget/internal/core/port"
	"mesa-budget/internal/db"
	"mesa-budget/internal/logging"
	"mesa-budget/internal/metrics"
	"mesa-budget/internal/scheduler"
	"mesa-budget/internal/tracing"
)

// main is the entry point of the budget engine. It loads configuration,
// opens the aggregate store, then serves HTTP, consumes spend events and
// runs the periodic jobs until a termination signal arrives.
func main() {
	seed := flag.Bool("seed", false, "insert demo brands, campaigns and schedules before starting")
	reset := flag.Bool("reset", false, "run the daily and monthly resets once and exit")
	simulate := flag.Bool("simulate", false, "ingest one random spend per active campaign and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger, logCloser := logging.New(cfg.Log, os.Stdout)
	logger = logger.With(slog.String("env", cfg.Env))
	defer logCloser.Close()

	if err := run(cfg, logger, flags{seed: *seed, reset: *reset, simulate: *simulate}); err != nil {
		logger.Error("fatal", slog.Any("error", err))
		logCloser.Close()
		os.Exit(1)
	}
}

type flags struct {
	seed, reset, simulate bool
}

func run(cfg config.Config, logger *slog.Logger, f flags) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	shutdownTracing, err := tracing.Setup(ctx, cfg.Otel)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.WithoutCancel(ctx)); err != nil {
			logger.Error("tracer shutdown error", slog.Any("error", err))
		}
	}()

	loc, err := cfg.Engine.Location()
	if err != nil {
		return err
	}
	clk := clock.System{Location: loc}
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	var (
		store port.BudgetStore
		ready func(context.Context) error
	)
	switch cfg.Engine.StoreDriver {
	case "memory":
		mem := memory.NewBudgetStore()
		db.LoadMemory(mem, db.DemoFixtures(clk.Now(), rnd))
		logger.Info("using in-memory store with demo fixtures")
		store = mem
	case "postgres":
		if cfg.Psql.RunMigrations {
			if err := db.Migrate(cfg.Psql.Addr.String()); err != nil {
				return err
			}
			logger.Info("migrations applied successfully")
		}
		pool, err := db.NewPostgresPool(ctx, cfg.Psql)
		if err != nil {
			return fmt.Errorf("database connection error: %w", err)
		}
		defer pool.Close()
		if f.seed {
			if err := db.Seed(ctx, pool, db.DemoFixtures(clk.Now(), rnd)); err != nil {
				return err
			}
			logger.Info("demo fixtures seeded")
		}
		store = postgres.NewBudgetStore(pool, cfg.Psql.LockTimeout)
		ready = pool.Ping
	default:
		return fmt.Errorf("unknown store driver %q", cfg.Engine.StoreDriver)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	engine := usecase.NewBudgetUseCase(store, clk, logger, usecase.Options{
		Workers: cfg.Engine.Workers,
		Metrics: m,
	})

	switch {
	case f.reset:
		reports, err := engine.ManualReset(ctx)
		for _, r := range reports {
			logger.Info("reset done", slog.String("job", r.Job), slog.Int("scanned", r.Scanned), slog.Int("changed", r.Changed), slog.Int("failed", r.Failed))
		}
		return err
	case f.simulate:
		n, err := db.Simulate(ctx, engine, store, clk.Now(), rnd)
		logger.Info("simulated spend", slog.Int("accepted", n))
		return err
	}

	if cfg.Scheduler.Enabled {
		var lease scheduler.Lease = scheduler.NewLocalLease()
		if cfg.Redis.Addr != "" {
			rc, err := redisadapter.NewClient(ctx, cfg.Redis)
			if err != nil {
				return err
			}
			defer rc.Close()
			lease = redisadapter.NewLease(rc, cfg.Redis.KeyPrefix)
		}
		stop := scheduler.New(engine, clk, lease, cfg.Scheduler, logger).Start(ctx)
		defer stop()
	}

	if len(cfg.Kafka.Brokers) > 0 {
		consumer := kafkaadapter.NewSpendConsumer(kafkaadapter.NewReader(cfg.Kafka), engine, logger, m, cfg.Kafka)
		defer consumer.Close()
		go func() {
			if err := consumer.Run(ctx); err != nil {
				logger.Error("spend consumer error", slog.Any("error", err))
				cancel()
			}
		}()
	}

	handler := httpadapter.NewHandler(engine, logger, httpadapter.Options{
		Metrics:  m,
		Gatherer: reg,
		Ready:    ready,
	})
	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.HTTP.Host, strconv.Itoa(int(cfg.HTTP.Port))),
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, done := context.WithTimeout(context.WithoutCancel(ctx), cfg.HTTP.ShutdownTimeout)
	defer done()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}
	return nil
}
