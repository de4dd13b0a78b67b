package app

import (
	"context"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/five82/vocab/internal/coalesce"
	"github.com/five82/vocab/internal/config"
	"github.com/five82/vocab/internal/gate"
	"github.com/five82/vocab/internal/logging"
	"github.com/five82/vocab/internal/ready"
	"github.com/five82/vocab/internal/telemetry"
	"github.com/five82/vocab/internal/ui"
)

// Options configure the vocab application.
type Options struct {
	ConfigPath string
	Backend    string // overrides store.backend when set
	LogLevel   string // overrides log.level when set
}

// Run boots the vocab TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := applyOverrides(&cfg, opts); err != nil {
		return err
	}

	logger, cleanupLog, err := logging.Setup(cfg.Log)
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	defer cleanupLog()

	store, closeStore, err := openStore(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store.Backend, err)
	}

	reg := prometheus.NewRegistry()
	collector, err := telemetry.NewPrometheusCollector(reg)
	if err != nil {
		_ = closeStore()
		return fmt.Errorf("register metrics: %w", err)
	}

	logger.Info().
		Str("backend", cfg.Store.Backend).
		Str("store", cfg.Store.Path).
		Dur("settle_delay", cfg.SettleDelay).
		Dur("min_interaction_delay", cfg.MinInteractionDelay).
		Dur("debounce_window", cfg.DebounceWindow).
		Msg("vocab starting")

	loop := ready.NewLoop(logger)
	latch := &ready.Latch{}
	clock := ready.New(ready.Options{
		SettleDelay: cfg.SettleDelay,
		Signal:      latch,
		Dispatcher:  loop,
		Logger:      logger,
	})
	g := gate.New(gate.Options{
		MinDelay:   cfg.MinInteractionDelay,
		Dispatcher: loop,
		Logger:     logger,
	})
	c := coalesce.New(store, coalesce.Options{
		Debounce:  cfg.DebounceWindow,
		Logger:    logger,
		Collector: collector,
	})
	clock.Start()

	runErr := ui.Run(ui.Options{
		Context:    ctx,
		Clock:      clock,
		Gate:       g,
		Latch:      latch,
		Coalescer:  c,
		Dispatcher: loop,
		Logger:     logger,
	})

	clock.Stop()
	g.Stop()
	loop.Close()
	if err := shutdown(ctx, logger, c, closeStore); err != nil && runErr == nil {
		runErr = err
	}
	logMetrics(logger, reg)
	return runErr
}

func applyOverrides(cfg *config.Config, opts Options) error {
	if opts.Backend != "" && opts.Backend != cfg.Store.Backend {
		cfg.Store.Backend = opts.Backend
		cfg.Store.Path = config.DefaultStorePath(opts.Backend)
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

// shutdown flushes pending writes and then closes the store. Flushing uses a
// context detached from ctx so a cancelled run still persists its last edits.
func shutdown(ctx context.Context, logger zerolog.Logger, c *coalesce.Coalescer, closeStore func() error) error {
	flushCtx := context.WithoutCancel(ctx)
	if pending := c.Pending(); pending > 0 {
		logger.Info().Int("pending", pending).Msg("flushing pending writes")
	}
	c.Close(flushCtx)
	if err := closeStore(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	return nil
}

// PrintLog writes the last n lines of the configured log file to w.
func PrintLog(w io.Writer, opts Options, n int) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	lines, err := logging.Tail(cfg.Log.File, n)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
