// StudyVerse diagram editor and page store.
//
// Run: go run ./cmd/studyverse/ edit --page notes
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

// Version is set at build time via ldflags.
var Version = "dev"

// CLI is the root command structure.
type CLI struct {
	Version kong.VersionFlag `help:"Show version information"`
	Config  string           `short:"c" type:"path" help:"YAML configuration file"`

	Edit    EditCmd    `cmd:"" default:"withargs" help:"Open the diagram editor"`
	Serve   ServeCmd   `cmd:"" help:"Serve a page store over HTTP"`
	Show    ShowCmd    `cmd:"" help:"Print the effective configuration"`
	Export  ExportCmd  `cmd:"" help:"Render a saved page to PNG"`
	Preview PreviewCmd `cmd:"" help:"Print a saved page to the terminal"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("studyverse"),
		kong.Description("Diagram editor for StudyVerse pages"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": Version},
	)
	if err := ctx.Run(&cli); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
