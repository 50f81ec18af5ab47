package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/aleister1102/outboundwatch/internal/config"
	"github.com/aleister1102/outboundwatch/internal/datastore"
	"github.com/aleister1102/outboundwatch/internal/logger"
	"github.com/aleister1102/outboundwatch/internal/monitor"
	"github.com/aleister1102/outboundwatch/internal/notifier"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var flags AppFlags

	cmd := &cobra.Command{
		Use:   "outboundwatch [config-path]",
		Short: "Watch the outbound EDI pipeline folders and alert on missing, stuck or late files",
		Long: `outboundwatch polls the vendor extract, proprietary, hold and drop folders of the
outbound pipeline and notifies the configured groups when a file is missing, stuck,
still being written, or likely to miss its SLA deadline.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			err := run(ctx, flags.configPath(args), flags.Once, cmd.ErrOrStderr())
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	flags.register(cmd)
	return cmd
}

// run loads the configuration, wires the monitor and blocks until ctx is
// cancelled or the cycle limit is reached.
func run(ctx context.Context, configPath string, once bool, stderr io.Writer) error {
	bootLogger := logger.NewBootstrap().Output(zerolog.ConsoleWriter{Out: stderr, TimeFormat: "15:04:05"})

	cfg, err := config.LoadGlobalConfig(configPath, bootLogger)
	if err != nil {
		bootLogger.Error().Err(err).Msg("Could not load configuration")
		return fmt.Errorf("load config: %w", err)
	}
	if err := config.ValidateConfig(cfg); err != nil {
		bootLogger.Error().Err(err).Msg("Configuration validation failed")
		return fmt.Errorf("validate config: %w", err)
	}
	if once {
		cfg.MonitorConfig.MaxCycles = 1
	}

	zLogger, logCloser, err := logger.NewLoggerBuilder().
		WithConfig(cfg.LogConfig).
		WithConsoleOutput(stderr).
		Build()
	if err != nil {
		bootLogger.Error().Err(err).Msg("Could not initialize logger")
		return fmt.Errorf("init logger: %w", err)
	}
	defer logCloser.Close()
	zLogger.Info().Msg("Logger initialized")

	monitor.EnsureFolders(cfg.Folders.All(), cfg.MonitorConfig.LowDiskWarningMB, zLogger)

	var dispatcherOpts []notifier.DispatcherOption
	var serviceOpts []monitor.ServiceOption

	if cfg.StorageConfig.Enabled() {
		journal, err := datastore.NewJournal(cfg.StorageConfig.JournalPath, zLogger)
		if err != nil {
			zLogger.Error().Err(err).Msg("Failed to open journal, continuing without it")
		} else {
			defer journal.Close()
			dispatcherOpts = append(dispatcherOpts, notifier.WithJournal(journal))
			serviceOpts = append(serviceOpts, monitor.WithCycleJournal(journal))
		}
	}

	dedupStore := notifier.NewMemoryDedupStore()
	dispatcherOpts = append(dispatcherOpts, notifier.WithDedupStore(dedupStore))
	serviceOpts = append(serviceOpts, monitor.WithKeyPruner(dedupStore))

	dispatcher, err := notifier.NewFromConfig(cfg.NotificationConfig, zLogger, dispatcherOpts...)
	if err != nil {
		zLogger.Error().Err(err).Msg("Failed to initialize notifier")
		return fmt.Errorf("init notifier: %w", err)
	}

	service, err := monitor.NewService(cfg, dispatcher, zLogger, serviceOpts...)
	if err != nil {
		zLogger.Error().Err(err).Msg("Failed to initialize pipeline monitor")
		return fmt.Errorf("init monitor: %w", err)
	}

	err = service.Run(ctx)
	if errors.Is(err, context.Canceled) {
		zLogger.Info().Msg("Shutdown requested, monitor stopped")
	}
	return err
}
