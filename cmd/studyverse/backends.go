package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/softpython2884/StudyVerse-sub000/internal/aigen"
	"github.com/softpython2884/StudyVerse-sub000/internal/config"
	"github.com/softpython2884/StudyVerse-sub000/internal/pagestore"
)

// openStore opens the configured page store. The returned close function
// is never nil.
func openStore(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (pagestore.Store, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Backend {
	case config.StoreMemory:
		return pagestore.NewMemory(), noop, nil
	case config.StoreBadger:
		if err := os.MkdirAll(cfg.BadgerDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating %s: %w", cfg.BadgerDir, err)
		}
		b, err := pagestore.OpenBadger(pagestore.BadgerOptions{Dir: cfg.BadgerDir, Logger: logger})
		if err != nil {
			return nil, nil, err
		}
		return b, b.Close, nil
	case config.StorePostgres:
		p, err := pagestore.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := p.CreateSchema(ctx); err != nil {
			_ = p.Close()
			return nil, nil, err
		}
		return p, p.Close, nil
	case config.StoreRemote:
		return pagestore.NewRemote(cfg.RemoteURL, cfg.Timeout), noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// newGenerator builds the configured diagram generator.
func newGenerator(cfg config.AIConfig, logger *slog.Logger) (aigen.Generator, error) {
	switch cfg.Backend {
	case config.AIBuiltin:
		return aigen.NewBuiltinGenerator(logger), nil
	case config.AIScript:
		src, err := os.ReadFile(cfg.Script)
		if err != nil {
			return nil, fmt.Errorf("reading generator script: %w", err)
		}
		return aigen.NewScriptGenerator(cfg.Script, string(src), logger)
	case config.AIHTTP:
		return aigen.NewHTTPGenerator(cfg.Endpoint, cfg.Token, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown ai backend %q", cfg.Backend)
	}
}

// newLogger logs to the configured file, or discards when none is set.
// The editor owns the terminal, so logs never go to stderr there.
func newLogger(cfg config.LogConfig, fallback io.Writer) (*slog.Logger, func() error, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, nil, err
	}
	w, closeFn := fallback, func() error { return nil }
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w, closeFn = f, f.Close
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closeFn, nil
}
