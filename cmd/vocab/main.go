package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/vocab/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	backend := flag.String("store", "", "storage backend: sqlite, toml or memory (optional)")
	logLevel := flag.String("log-level", "", "log level override (optional)")
	tailLogs := flag.Int("logs", 0, "print the last N log lines and exit")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		Backend:    *backend,
		LogLevel:   *logLevel,
	}

	if *tailLogs > 0 {
		if err := app.PrintLog(os.Stdout, opts, *tailLogs); err != nil {
			fmt.Fprintf(os.Stderr, "vocab: %v\n", err)
			return 1
		}
		return 0
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "vocab: %v\n", err)
		return 1
	}
	return 0
}
