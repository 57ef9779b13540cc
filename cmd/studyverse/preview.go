package main

import (
	"context"
	"fmt"
	"os"

	"charm.land/lipgloss/v2"

	"github.com/softpython2884/StudyVerse-sub000/internal/config"
	"github.com/softpython2884/StudyVerse-sub000/internal/editor"
	"github.com/softpython2884/StudyVerse-sub000/internal/pagestore"
	"github.com/softpython2884/StudyVerse-sub000/internal/studyui"
)

// PreviewCmd prints a stored page as terminal art, for a quick look or
// for piping into other tools with --plain.
type PreviewCmd struct {
	Page   string `arg:"" help:"Page to print"`
	Width  int    `short:"W" default:"100" help:"Columns"`
	Height int    `short:"H" default:"30" help:"Rows"`
	Plain  bool   `help:"Print without colors"`
}

var (
	previewTitle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f59e0b")).Bold(true).Underline(true)
	previewLegend = lipgloss.NewStyle().Foreground(lipgloss.Color("#64748b"))
)

// Run executes the preview command.
func (c *PreviewCmd) Run(cli *CLI) error {
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
	if g == nil {
		return fmt.Errorf("page %q does not exist", c.Page)
	}

	ctl := editor.New(editor.Options{PageID: c.Page, Logger: logger})
	ctl.Open(c.Page, g)
	art := studyui.Preview(ctl, c.Width, c.Height, !c.Plain)
	if c.Plain {
		fmt.Println(art)
		return nil
	}
	fmt.Println()
	fmt.Println(previewTitle.Render("  " + c.Page))
	fmt.Println()
	fmt.Println(art)
	fmt.Println()
	fmt.Println(previewLegend.Render(fmt.Sprintf("  %d nodes  %d edges", g.Len(), len(g.Edges()))))
	return nil
}
