package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/seojun-dev/danwatch/internal/config"
	"github.com/seojun-dev/danwatch/internal/domain"
	"github.com/seojun-dev/danwatch/internal/httpserver"
	"github.com/seojun-dev/danwatch/internal/httpserver/deps"
	"github.com/seojun-dev/danwatch/internal/ledger"
	ledgerredis "github.com/seojun-dev/danwatch/internal/ledger/redis"
	ledgersqlite "github.com/seojun-dev/danwatch/internal/ledger/sqlite"
	"github.com/seojun-dev/danwatch/internal/logger"
	"github.com/seojun-dev/danwatch/internal/notify/telegram"
	"github.com/seojun-dev/danwatch/internal/redis"
	"github.com/seojun-dev/danwatch/internal/source/daangn"
	"github.com/seojun-dev/danwatch/internal/version"
	"github.com/seojun-dev/danwatch/internal/watch"
)

// notifyTimeout bounds each Telegram sendMessage call.
const notifyTimeout = 10 * time.Second

type App struct {
	cfg      *config.Config
	logger   logger.Logger
	server   *httpserver.Server
	ledger   ledger.Ledger
	registry *watch.Registry

	// baseCtx is the lifetime of all monitors; cancelled on shutdown.
	baseCtx context.Context
	cancel  context.CancelFunc
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// The epoch is fixed once for the whole process: anything posted at
	// or before it is pre-existing noise, never notified. The offset
	// pre-dates it for testing against already-posted listings.
	epoch := time.Now().In(domain.KST).Add(-cfg.EpochOffset)

	store, err := openLedger(cfg, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to open ledger: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("ledger initialized", logger.String("backend", cfg.LedgerBackend))

	source := daangn.New(cfg.BaseURL, cfg.HTTPTimeout, loggerClient)
	notifier := telegram.New(cfg.TelegramAPIURL, cfg.TelegramToken, cfg.DefaultChatIDs, notifyTimeout, loggerClient)

	baseCtx, cancel := context.WithCancel(context.Background())

	registry := watch.NewRegistry(watch.Options{
		Source:           source,
		Notifier:         notifier,
		Ledger:           store,
		Logger:           loggerClient,
		Epoch:            epoch,
		ChatIDs:          cfg.DefaultChatIDs,
		PollInterval:     cfg.PollInterval,
		RecoveryInterval: cfg.RecoveryInterval,
	})

	scanner := watch.NewScanner(source, notifier, cfg.DefaultChatIDs, loggerClient)

	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		BaseCtx:        baseCtx,
		Epoch:          epoch,
		Registry:       registry,
		Scanner:        scanner,
		Notifier:       notifier,
		LedgerBackend:  cfg.LedgerBackend,
		DefaultChatIDs: cfg.DefaultChatIDs,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:      cfg,
		logger:   loggerClient,
		server:   server,
		ledger:   store,
		registry: registry,
		baseCtx:  baseCtx,
		cancel:   cancel,
	}
}

// openLedger picks the backend configured by DANWATCH_LEDGER_BACKEND.
func openLedger(cfg *config.Config, log logger.Logger) (ledger.Ledger, error) {
	switch cfg.LedgerBackend {
	case config.LedgerRedis:
		client, err := redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, log)
		if err != nil {
			return nil, err
		}
		return ledgerredis.NewStore(client), nil
	default:
		return ledgersqlite.Open(cfg.LedgerPath)
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting danwatch v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("danwatch %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start preset watches so monitors survive restarts without a
	// manual /watch call for each.
	if a.cfg.PresetFile != "" {
		presets, err := watch.LoadPresets(a.cfg.PresetFile)
		if err != nil {
			return fmt.Errorf("failed to load watch presets: %w", err)
		}
		for _, p := range presets {
			result := a.registry.Start(a.baseCtx, p.Filter())
			a.logger.Info("preset watch started",
				logger.String("filter", p.Filter().Key()),
				logger.String("result", string(result)))
		}
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	// Cancel all monitors and wait for them to reach their next
	// suspension point and exit.
	a.cancel()
	a.registry.StopAll(a.cfg.ShutdownTimeout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if err := a.ledger.Close(); err != nil {
		a.logger.Warnf("failed to close ledger: %v", err)
	} else {
		a.logger.Info("✅ Ledger closed cleanly")
	}

	a.logger.Info("✅ danwatch stopped cleanly")
	return nil
}
