// Command cellsel loads a CSV table, replays a TOML script of
// selection and row/column operations against it and outputs
// the resulting cell selection.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/ungerik/go-fs"
	"github.com/urfave/cli/v2"

	"github.com/domonda/go-cellset/csvtable"
	"github.com/domonda/go-cellset/grid"
)

var outputFormats = []string{"cells", "rows", "bounds", "regions"}

func main() {
	err := newApp(os.Stdout, os.Stderr).Run(os.Args)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	verboseFlag := &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"V"},
		Usage:   "Log debug output to stderr",
	}
	return &cli.App{
		Name:      "cellsel",
		Usage:     "Select cells of a CSV table with a TOML script",
		Version:   "v0.1.0",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     []cli.Flag{verboseFlag},
		Commands: []*cli.Command{
			{
				Name:      "select",
				Aliases:   []string{"s"},
				Usage:     "Write the selected cells as CSV",
				UsageText: "cellsel select [options] <table.csv> <script.toml>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "cells",
						Usage:   "Output format. Allowed values are: " + strings.Join(outputFormats, ", "),
					},
					&cli.StringFlag{
						Name:    "delimiter",
						Aliases: []string{"d"},
						Value:   ",",
						Usage:   "CSV field delimiter of the output",
					},
				},
				Action: func(cCtx *cli.Context) error {
					format := cCtx.String("format")
					if !slices.Contains(outputFormats, format) {
						return fmt.Errorf("invalid format %s. Must be one of %s", format, strings.Join(outputFormats, ", "))
					}
					delimiter := []rune(cCtx.String("delimiter"))
					if len(delimiter) != 1 {
						return fmt.Errorf("delimiter must be a single character, got %q", cCtx.String("delimiter"))
					}
					g, err := loadGrid(cCtx)
					if err != nil {
						return err
					}
					writer := csvtable.NewWriter().
						WithHeaderRow(true).
						WithDelimiter(delimiter[0]).
						WithNewLine("\n")
					return writer.WriteView(cCtx.Context, cCtx.App.Writer, selectionView(g, format))
				},
			},
			{
				Name:      "show",
				Usage:     "Print the table with the selected cells highlighted",
				UsageText: "cellsel show <table.csv> <script.toml>",
				Action: func(cCtx *cli.Context) error {
					g, err := loadGrid(cCtx)
					if err != nil {
						return err
					}
					_, err = io.WriteString(cCtx.App.Writer, renderGrid(g))
					return err
				},
			},
			{
				Name:      "html",
				Usage:     "Write the table as HTML with the selected cells marked",
				UsageText: "cellsel html [options] <table.csv> <script.toml>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "class",
						Value: "selected",
						Usage: "Class of selected cells",
					},
				},
				Action: func(cCtx *cli.Context) error {
					g, err := loadGrid(cCtx)
					if err != nil {
						return err
					}
					return writeHTML(cCtx.Context, cCtx.App.Writer, g, cCtx.String("class"))
				},
			},
		},
	}
}

func newLogger(cCtx *cli.Context) *slog.Logger {
	level := slog.LevelWarn
	if cCtx.Bool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cCtx.App.ErrWriter, &slog.HandlerOptions{Level: level}))
}

// loadGrid reads the table and script files passed as arguments
// and returns the grid with the script applied.
func loadGrid(cCtx *cli.Context) (*grid.Grid, error) {
	if cCtx.NArg() != 2 {
		return nil, fmt.Errorf("expected table and script file arguments, got %d arguments", cCtx.NArg())
	}
	logger := newLogger(cCtx)
	tableFile := fs.File(cCtx.Args().Get(0))
	scriptFile := fs.File(cCtx.Args().Get(1))

	data, err := tableFile.ReadAll()
	if err != nil {
		return nil, err
	}
	view, format, err := csvtable.Read(data, tableFile.Name())
	if err != nil {
		return nil, fmt.Errorf("can't read table %s: %w", tableFile, err)
	}
	logger.Debug("table loaded", "file", tableFile, "format", format, "rows", view.NumRows(), "columns", len(view.Columns()))

	data, err = scriptFile.ReadAll()
	if err != nil {
		return nil, err
	}
	script, err := ParseScript(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", scriptFile, err)
	}

	g := grid.NewFromView(view).WithLogger(logger)
	g.OnSelectedCellsChanged(func(e grid.SelectedCellsChanged) {
		logger.Info("selection changed", "added", e.Added.Count(), "removed", e.Removed.Count())
	})
	if err = script.Apply(g, logger); err != nil {
		return nil, fmt.Errorf("%s: %w", scriptFile, err)
	}
	return g, nil
}
