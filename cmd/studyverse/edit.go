package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	tea "charm.land/bubbletea/v2"

	"github.com/softpython2884/StudyVerse-sub000/internal/aigen"
	"github.com/softpython2884/StudyVerse-sub000/internal/config"
	"github.com/softpython2884/StudyVerse-sub000/internal/editor"
	"github.com/softpython2884/StudyVerse-sub000/internal/export"
	"github.com/softpython2884/StudyVerse-sub000/internal/pagestore"
	"github.com/softpython2884/StudyVerse-sub000/internal/studyui"
	"github.com/softpython2884/StudyVerse-sub000/pkg/graphmodel"
	"github.com/softpython2884/StudyVerse-sub000/pkg/viewport"
)

// EditCmd opens the terminal editor on one page.
type EditCmd struct {
	Page    string `arg:"" optional:"" help:"Page to open (defaults to the configured page)"`
	Diagram string `short:"t" default:"Flowchart" enum:"Flowchart,MindMap,OrgChart" help:"Initial diagram type for layout and AI generation"`
	Store   string `help:"Override store.backend (memory, badger, postgres, remote)"`
	AI      string `name:"ai" help:"Override ai.backend (builtin, script, http)"`
}

// Run executes the edit command.
func (c *EditCmd) Run(cli *CLI) error {
	cfg, err := c.config(cli.Config)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg.Log, io.Discard)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	ctx := context.Background()
	store, closeStore, err := openStore(ctx, cfg.Store, logger)
	if err != nil {
		return fmt.Errorf("opening page store: %w", err)
	}
	defer func() { _ = closeStore() }()

	gen, err := newGenerator(cfg.AI, logger)
	if err != nil {
		return err
	}

	opts := editor.Options{
		PageID:      cfg.Page,
		Store:       pagestore.NewAdapter(store, logger),
		Generator:   aigen.NewAdapter(gen, logger),
		ExportDir:   cfg.Export.Dir,
		ExportScale: cfg.Export.Scale,
		Viewport: viewport.Config{
			MinZoom:     cfg.Viewport.MinZoom,
			MaxZoom:     cfg.Viewport.MaxZoom,
			InitialZoom: cfg.Viewport.InitialZoom,
		},
		MenuReserve: studyui.MenuReserve,
		Logger:      logger,
	}
	if p, ok := printer(cfg.Export, logger); ok {
		opts.Printer = p
	}

	logger.Info("editor starting", "page", cfg.Page, "store", cfg.Store.Backend, "ai", cfg.AI.Backend)
	model := studyui.New(studyui.Options{
		Controller:      editor.New(opts),
		Diagram:         graphmodel.DiagramType(c.Diagram),
		SaveTimeout:     cfg.Store.Timeout,
		GenerateTimeout: cfg.AI.Timeout,
		LoadOnStart:     true,
		Logger:          logger,
	})
	_, err = tea.NewProgram(model).Run()
	return err
}

func (c *EditCmd) config(path string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if c.Page != "" {
		cfg.Page = c.Page
	}
	if c.Store != "" {
		cfg.Store.Backend = c.Store
	}
	if c.AI != "" {
		cfg.AI.Backend = c.AI
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// printer returns the configured print command, or the platform default.
func printer(cfg config.ExportConfig, logger *slog.Logger) (export.Printer, bool) {
	if cfg.PrintCommand != "" {
		return export.Printer{Command: cfg.PrintCommand, Args: cfg.PrintArgs}, true
	}
	p, err := export.DefaultPrinter()
	if err != nil {
		logger.Warn("printing disabled", "error", err)
		return export.Printer{}, false
	}
	return p, true
}
