package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/gofiber/fiber/v3"

	"github.com/softpython2884/StudyVerse-sub000/internal/config"
	"github.com/softpython2884/StudyVerse-sub000/internal/export"
	"github.com/softpython2884/StudyVerse-sub000/internal/pagestore"
	"github.com/softpython2884/StudyVerse-sub000/internal/pagestore/server"
	"github.com/softpython2884/StudyVerse-sub000/pkg/edgeroute"
)

// ServeCmd serves the configured store so several editors can share pages.
type ServeCmd struct {
	Listen string `short:"l" help:"Override server.listen"`
	Store  string `help:"Override store.backend (memory, badger, postgres)"`
}

// Run executes the serve command.
func (c *ServeCmd) Run(cli *CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	if c.Listen != "" {
		cfg.Server.Listen = c.Listen
	}
	if c.Store != "" {
		cfg.Store.Backend = c.Store
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if cfg.Store.Backend == config.StoreRemote {
		return errors.New("serve needs a local store backend, not remote")
	}

	logger, closeLog, err := newLogger(cfg.Log, os.Stderr)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg.Store, logger)
	if err != nil {
		return fmt.Errorf("opening page store: %w", err)
	}
	defer func() { _ = closeStore() }()

	app := server.New(store, server.Config{
		BodyLimit:      cfg.Server.BodyLimit,
		SkipValidation: cfg.Server.SkipValidation,
	}, server.NewMetrics(), logger)

	color.Green("Serving %s pages on %s", cfg.Store.Backend, cfg.Server.Listen)
	errc := make(chan error, 1)
	go func() {
		errc <- app.Listen(cfg.Server.Listen, fiber.ListenConfig{DisableStartupMessage: true})
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	color.Yellow("Shutting down")
	return app.ShutdownWithTimeout(5 * time.Second)
}

// ShowCmd prints the configuration after defaults and environment
// overrides, with secrets redacted.
type ShowCmd struct{}

// Run executes the show command.
func (c *ShowCmd) Run(cli *CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	out, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}

// ExportCmd renders a stored page without opening the editor.
type ExportCmd struct {
	Page   string `arg:"" help:"Page to render"`
	Output string `short:"o" type:"path" help:"PNG file to write (defaults to <page>.png in export.dir)"`
}

// Run executes the export command.
func (c *ExportCmd) Run(cli *CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg.Log, os.Stderr)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Store.Timeout)
	defer cancel()
	store, closeStore, err := openStore(ctx, cfg.Store, logger)
	if err != nil {
		return fmt.Errorf("opening page store: %w", err)
	}
	defer func() { _ = closeStore() }()

	g, err := pagestore.NewAdapter(store, logger).Load(ctx, c.Page)
	if err != nil {
		return err
	}
	if g == nil || g.Len() == 0 {
		return fmt.Errorf("page %q is empty", c.Page)
	}

	out := c.Output
	if out == "" {
		out = filepath.Join(cfg.Export.Dir, c.Page+".png")
	}
	paths := edgeroute.RouteAll(g.Edges(), edgeroute.ArenaFromGraph(g))
	if err := export.SavePNG(out, g, paths, export.PNGOptions{Scale: cfg.Export.Scale}); err != nil {
		return err
	}
	color.Green("Wrote %s", out)
	return nil
}
