package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/oukeidos/tlviz/internal/cleanup"
	"github.com/oukeidos/tlviz/internal/config"
	"github.com/oukeidos/tlviz/internal/datefield"
	"github.com/oukeidos/tlviz/internal/files"
	"github.com/oukeidos/tlviz/internal/logger"
)

const defaultConfigPath = "tlviz.yml"

// dateArg maps an omitted date flag to the untouched-field sentinel so it is
// reported as empty rather than malformed.
func dateArg(s string) string {
	if strings.TrimSpace(s) == "" {
		return datefield.Placeholder
	}
	return s
}

// setupLogging installs the global logger, adding a JSONL sink when
// logFilePath is set. The file is closed by the cleanup hooks.
func setupLogging(debug bool, logFilePath string) error {
	level := logger.LevelInfo
	if debug {
		level = logger.LevelDebug
	}
	var logFileW io.Writer
	if logFilePath != "" {
		if err := files.RejectSymlinkPath(logFilePath); err != nil {
			return err
		}
		f, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		cleanup.Register(f.Close)
		logFileW = f
	}
	logger.Init(level, logFileW)
	return nil
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		path = defaultConfigPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	logger.Debug("Configuration loaded", "path", path, "interpreter", cfg.Interpreter, "script", cfg.Script)
	return cfg, nil
}

func signalContext() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			logger.Warn("Cancellation requested")
			cancel()
		case <-ctx.Done():
		}
	}()
	stop := func() {
		signal.Stop(sigCh)
		cancel()
	}
	return ctx, stop
}
