package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/simple-dapp/simple-dapp-go/pkg/app"
	"github.com/simple-dapp/simple-dapp-go/pkg/config"
	"github.com/simple-dapp/simple-dapp-go/pkg/journal"
	"github.com/simple-dapp/simple-dapp-go/pkg/journal/badger"
	"github.com/simple-dapp/simple-dapp-go/pkg/journal/leveldb"
	"github.com/simple-dapp/simple-dapp-go/pkg/journal/memory"
	"github.com/simple-dapp/simple-dapp-go/pkg/journal/redis"
	"github.com/simple-dapp/simple-dapp-go/pkg/logger"
	"github.com/simple-dapp/simple-dapp-go/pkg/provider"
	"github.com/simple-dapp/simple-dapp-go/pkg/view"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	defaults := config.NewDefaultDappConfig()

	cliApp := &cli.App{
		Name:  "simple-dapp",
		Usage: "Wallet demo dapp for the LockV2 contract",
		Description: `Connects to a wallet provider and serves a page that:
- shows the connected account and its balance
- signs a fixed message and verifies the signature locally and through the wallet
- deposits into and withdraws from the LockV2 contract
- listens for Deposited and Withdrawn events`,
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "provider-url",
				Aliases: []string{"rpc"},
				Usage:   "Wallet provider JSON-RPC endpoint, repeat to list fallbacks in order of preference",
				Value:   cli.NewStringSlice(defaults.ProviderURLs...),
				EnvVars: []string{config.EnvDappProviderURLs},
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Value:   defaults.Port,
				Usage:   "HTTP server port",
				EnvVars: []string{config.EnvDappPort},
			},
			&cli.Uint64Flag{
				Name:    "chain-id",
				Aliases: []string{"chain"},
				Usage:   fmt.Sprintf("Expected chain ID: %s", config.GetSupportedChainIDsString()),
				EnvVars: []string{config.EnvDappChainID},
			},
			&cli.StringFlag{
				Name:    "lock-contract-address",
				Aliases: []string{"lock"},
				Value:   defaults.LockContractAddress,
				Usage:   "LockV2 contract address",
				EnvVars: []string{config.EnvDappLockContractAddress},
			},
			&cli.StringFlag{
				Name:    "deposit-amount-wei",
				Value:   defaults.DepositAmountWei,
				Usage:   "Value sent with deposit, in wei",
				EnvVars: []string{config.EnvDappDepositAmountWei},
			},
			&cli.Uint64Flag{
				Name:    "lock-duration",
				Value:   defaults.LockDurationSeconds,
				Usage:   "Lock duration passed to deposit, in seconds",
				EnvVars: []string{config.EnvDappLockDurationSeconds},
			},
			&cli.DurationFlag{
				Name:    "poll-interval",
				Value:   defaults.PollInterval,
				Usage:   "Interval for wallet change detection, receipt and log polling",
				EnvVars: []string{config.EnvDappPollInterval},
			},
			&cli.BoolFlag{
				Name:    "wait-receipt",
				Usage:   "Wait for transactions to be mined and report reverts",
				EnvVars: []string{config.EnvDappWaitReceipt},
			},
			&cli.StringFlag{
				Name:    "journal",
				Value:   string(config.JournalType_Memory),
				Usage:   "Event journal backend: memory, badger, leveldb or redis",
				EnvVars: []string{config.EnvDappJournalType},
			},
			&cli.StringFlag{
				Name:    "journal-path",
				Usage:   "Data directory for the badger and leveldb journals",
				EnvVars: []string{config.EnvDappJournalPath},
			},
			&cli.StringFlag{
				Name:    "redis-address",
				Usage:   "Redis address (host:port) for the redis journal",
				EnvVars: []string{config.EnvDappRedisAddress},
			},
			&cli.StringFlag{
				Name:    "redis-password",
				Usage:   "Redis password",
				EnvVars: []string{config.EnvDappRedisPassword},
			},
			&cli.IntFlag{
				Name:    "redis-db",
				Usage:   "Redis database number",
				EnvVars: []string{config.EnvDappRedisDB},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "Enable verbose logging",
				EnvVars: []string{config.EnvDappVerbose},
			},
		},
		Action: runSimpleDapp,
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func runSimpleDapp(c *cli.Context) error {
	l, err := logger.NewLogger(&logger.LoggerConfig{
		Debug: c.Bool("verbose"),
	})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	dappConfig := parseDappConfig(c)
	if err := dappConfig.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if dappConfig.ChainID != 0 {
		l.Sugar().Infow("Using chain", "name", config.GetChainName(dappConfig.ChainID), "chain_id", dappConfig.ChainID)
	}

	eventJournal, err := openJournal(&dappConfig.Journal, l)
	if err != nil {
		return fmt.Errorf("failed to open event journal: %w", err)
	}
	defer func() {
		if err := eventJournal.Close(); err != nil {
			l.Sugar().Warnw("Failed to close event journal", "error", err)
		}
	}()

	display := view.NewDisplay()
	binder := view.NewBinder(display, l)
	server := view.NewServer(display, binder, eventJournal, dappConfig.Port, l)

	providerConfig := &provider.Config{
		URLs:         dappConfig.ProviderURLs,
		PollInterval: dappConfig.PollInterval,
	}
	detect := func(ctx context.Context) (provider.IWalletProvider, error) {
		p, err := provider.DetectProvider(ctx, providerConfig, l)
		if err != nil {
			return nil, err
		}
		return p, nil
	}

	dapp := app.NewApp(dappConfig, detect, display, binder, eventJournal, l)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Start(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Stop(shutdownCtx); err != nil {
			l.Sugar().Warnw("Failed to stop server", "error", err)
		}
	}()

	l.Sugar().Infow("Simple dapp running",
		"port", dappConfig.Port,
		"providers", dappConfig.ProviderURLs,
		"lock_contract", dappConfig.LockContractAddress,
		"journal", dappConfig.Journal.Type,
	)
	l.Sugar().Info("Press Ctrl+C to stop")

	return dapp.Run(ctx)
}

func parseDappConfig(c *cli.Context) *config.DappConfig {
	return &config.DappConfig{
		ProviderURLs:        c.StringSlice("provider-url"),
		Port:                c.Int("port"),
		ChainID:             config.ChainId(c.Uint64("chain-id")),
		LockContractAddress: c.String("lock-contract-address"),
		DepositAmountWei:    c.String("deposit-amount-wei"),
		LockDurationSeconds: c.Uint64("lock-duration"),
		PollInterval:        c.Duration("poll-interval"),
		WaitForReceipt:      c.Bool("wait-receipt"),
		Journal: config.JournalConfig{
			Type:          config.JournalType(c.String("journal")),
			Path:          c.String("journal-path"),
			RedisAddress:  c.String("redis-address"),
			RedisPassword: c.String("redis-password"),
			RedisDB:       c.Int("redis-db"),
		},
		Debug: c.Bool("verbose"),
	}
}

// openJournal opens the configured backend and refuses to hand out one that fails its
// health check, so a corrupted store or unreachable redis stops the dapp at startup.
func openJournal(cfg *config.JournalConfig, l *zap.Logger) (journal.IEventJournal, error) {
	j, err := newJournal(cfg, l)
	if err != nil {
		return nil, err
	}
	if err := checkJournal(j, cfg.Type); err != nil {
		return nil, err
	}
	l.Sugar().Infow("Event journal ready", "type", cfg.Type)
	return j, nil
}

func newJournal(cfg *config.JournalConfig, l *zap.Logger) (journal.IEventJournal, error) {
	switch cfg.Type {
	case config.JournalType_Badger:
		j, err := badger.NewBadgerJournal(cfg.Path, l)
		if err != nil {
			return nil, err
		}
		return j, nil
	case config.JournalType_LevelDB:
		j, err := leveldb.NewLevelDBJournal(cfg.Path, l)
		if err != nil {
			return nil, err
		}
		return j, nil
	case config.JournalType_Redis:
		j, err := redis.NewRedisJournal(&redis.RedisConfig{
			Address:  cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, l)
		if err != nil {
			return nil, err
		}
		return j, nil
	case config.JournalType_Memory:
		return memory.NewMemoryJournal(), nil
	}
	return nil, fmt.Errorf("unsupported journal type: %s", cfg.Type)
}

// checkJournal closes j when it is not usable.
func checkJournal(j journal.IEventJournal, journalType config.JournalType) error {
	if err := j.HealthCheck(); err != nil {
		_ = j.Close()
		return fmt.Errorf("%s journal failed health check: %w", journalType, err)
	}
	return nil
}
