package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vietanh2810/hackathon-api/internal/api"
	"github.com/vietanh2810/hackathon-api/internal/config"
	"github.com/vietanh2810/hackathon-api/internal/db"
	"github.com/vietanh2810/hackathon-api/internal/domain"
	"github.com/vietanh2810/hackathon-api/internal/live"
	"github.com/vietanh2810/hackathon-api/internal/logger"
	"github.com/vietanh2810/hackathon-api/internal/metrics"
)

const (
	defaultConfigPath = "./cmd/app/config.yml"
	shutdownTimeout   = 10 * time.Second
)

func Start() error {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	conf, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}
	defer func() { _ = zap.L().Sync() }()

	postgresDB, err := OpenDatabase(conf)
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := metrics.NewRegistry()
	domainMetrics := metrics.NewDomain(reg)

	hub := live.NewHub(domainMetrics)
	go hub.Run(ctx)

	events, closeEvents, err := newPublisher(ctx, conf.Redis, hub, domainMetrics)
	if err != nil {
		return fmt.Errorf("failed to initialize live events -> %w", err)
	}
	defer closeEvents()

	s := api.NewServer(conf, postgresDB, reg, domainMetrics, hub, events)

	addr := ":" + s.Config.API.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info(fmt.Sprintf("starting server at %v", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start the server -> %w", err)
		}
	case <-ctx.Done():
		zap.L().Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err = srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("srv.Shutdown -> %w", err)
		}
	}

	return nil
}

// OpenDatabase prefers DATABASE_URL over the postgres section of the config.
func OpenDatabase(conf *config.AppConfig) (*gorm.DB, error) {
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		return db.OpenPostgresWithURL(dbURL)
	}

	return db.OpenPostgres(conf.Postgres)
}

// newPublisher fans events out through Redis when a URL is configured, so
// every instance behind a load balancer sees them. Otherwise events stay
// in-process.
func newPublisher(ctx context.Context, conf *config.RedisConfig, hub *live.Hub, m live.Metrics) (domain.EventPublisher, func(), error) {
	if conf == nil || conf.URL == "" {
		zap.L().Info("redis not configured, live events are local only")
		return live.NewLocalPublisher(hub, m), func() {}, nil
	}

	opts, err := goredis.ParseURL(conf.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("goredis.ParseURL -> %w", err)
	}

	rdb := goredis.NewClient(opts)
	if err = rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("rdb.Ping -> %w", err)
	}

	channel := conf.Channel
	if channel == "" {
		channel = "hackathon:live"
	}

	go func() {
		if err := live.Relay(ctx, rdb, channel, hub); err != nil {
			zap.L().Error("live relay stopped", zap.Error(err))
		}
	}()

	zap.L().Info("live events relayed through redis", zap.String("channel", channel))

	return live.NewRedisPublisher(rdb, channel, m), func() { _ = rdb.Close() }, nil
}
