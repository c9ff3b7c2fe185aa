package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pelletier/go-toml/v2"

	"github.com/domonda/go-cellset/grid"
)

// Script is a sequence of grid operations read from TOML:
//
//	mode = "Extended"
//	unit = "Cell"
//
//	[[op]]
//	kind = "select"
//	row = 1
//	rows = 2
//	columns = ["Name", "Amount*"]
type Script struct {
	Mode string `toml:"mode"`
	Unit string `toml:"unit"`
	Ops  []Op   `toml:"op"`
}

// Op is a single operation of a Script.
// Rows and Cols default to 1 where a count is needed.
type Op struct {
	Kind    string   `toml:"kind"`
	Row     int      `toml:"row"`
	Col     int      `toml:"col"`
	Rows    int      `toml:"rows"`
	Cols    int      `toml:"cols"`
	To      int      `toml:"to"`
	Columns []string `toml:"columns"`
	Title   string   `toml:"title"`
	Values  []string `toml:"values"`
}

// ParseScript parses TOML data into a Script.
// Unknown keys are an error.
func ParseScript(data []byte) (*Script, error) {
	var script Script
	err := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&script)
	if err != nil {
		return nil, fmt.Errorf("can't parse script: %w", err)
	}
	return &script, nil
}

// Apply sets the selection mode and unit of the script
// and executes its operations on g within a single update.
func (s *Script) Apply(g *grid.Grid, logger *slog.Logger) error {
	if s.Mode != "" {
		mode, ok := grid.ParseSelectionMode(s.Mode)
		if !ok {
			return fmt.Errorf("invalid selection mode %q", s.Mode)
		}
		if err := g.SetSelectionMode(mode); err != nil {
			return err
		}
	}
	if s.Unit != "" {
		unit, ok := grid.ParseSelectionUnit(s.Unit)
		if !ok {
			return fmt.Errorf("invalid selection unit %q", s.Unit)
		}
		if err := g.SetSelectionUnit(unit); err != nil {
			return err
		}
	}

	g.BeginUpdate()
	defer g.EndUpdate()

	for i, op := range s.Ops {
		logger.Debug("applying op", "index", i, "kind", op.Kind, "row", op.Row, "col", op.Col)
		if err := op.apply(g); err != nil {
			return fmt.Errorf("op %d %q: %w", i, op.Kind, err)
		}
	}
	return nil
}

func (op *Op) apply(g *grid.Grid) error {
	rows, cols := max(op.Rows, 1), max(op.Cols, 1)
	switch op.Kind {
	case "select", "unselect":
		regionFunc := g.SelectRegion
		if op.Kind == "unselect" {
			regionFunc = g.UnselectRegion
		}
		if len(op.Columns) == 0 {
			return regionFunc(op.Row, op.Col, rows, cols)
		}
		matched, err := matchColumns(g.Columns(), op.Columns)
		if err != nil {
			return err
		}
		for _, col := range matched {
			if err = regionFunc(op.Row, col, rows, 1); err != nil {
				return err
			}
		}
		return nil

	case "select-row":
		for row := op.Row; row < op.Row+rows; row++ {
			if err := g.SelectRow(row); err != nil {
				return err
			}
		}
		return nil

	case "select-all":
		return g.SelectAll()

	case "unselect-all":
		return g.UnselectAll()

	case "insert-rows":
		inserted := make([][]any, rows)
		for i := range inserted {
			inserted[i] = make([]any, len(g.Columns()))
			for col := range min(len(op.Values), len(inserted[i])) {
				inserted[i][col] = op.Values[col]
			}
		}
		return g.InsertRows(op.Row, inserted...)

	case "remove-rows":
		return g.RemoveRows(op.Row, rows)

	case "move-row":
		return g.MoveRow(op.Row, op.To)

	case "insert-column":
		values := make([]any, len(op.Values))
		for i, v := range op.Values {
			values[i] = v
		}
		return g.InsertColumn(op.Col, op.Title, values...)

	case "remove-column":
		if len(op.Columns) == 0 {
			return g.RemoveColumn(op.Col)
		}
		matched, err := matchColumns(g.Columns(), op.Columns)
		if err != nil {
			return err
		}
		// Remove from the right so indices stay valid
		for _, col := range slices.Backward(matched) {
			if err = g.RemoveColumn(col); err != nil {
				return err
			}
		}
		return nil

	case "move-column":
		return g.MoveColumn(op.Col, op.To)

	case "keep-one":
		return g.UnselectAllBut(op.Row, op.Col)

	case "keep-row":
		return g.UnselectAllButRow(op.Row)
	}
	return fmt.Errorf("unknown op kind %q", op.Kind)
}

// matchColumns returns the ascending indices of the titles
// that match any of the doublestar patterns.
func matchColumns(titles, patterns []string) ([]int, error) {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid column pattern %q", pattern)
		}
	}
	var matched []int
	for col, title := range titles {
		for _, pattern := range patterns {
			if ok, _ := doublestar.Match(pattern, title); ok {
				matched = append(matched, col)
				break
			}
		}
	}
	if len(matched) == 0 {
		return nil, fmt.Errorf("no column matches %q", patterns)
	}
	return matched, nil
}
