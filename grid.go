package wordgrid

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"crosswarped.com/wordgrid/pkg/dict"
)

// CharGrid is the read-only view of a letter grid that the search needs.
type CharGrid interface {
	Width() int
	Height() int
	Get(row, col int) byte
}

// Grid is a 2D grid of single-byte letters stored row by row.
type Grid struct {
	grid [][]byte
}

var _ CharGrid = Grid{}

// NewGrid builds a grid from equal-length rows. Each rune of a row is one
// cell and must fit in a byte.
func NewGrid(rows []string) (Grid, error) {
	if len(rows) == 0 {
		return Grid{}, fmt.Errorf("no rows: %w", ErrInvalidGrid)
	}
	g := make([][]byte, len(rows))
	for i, row := range rows {
		cells, ok := dict.Latin1(row)
		if !ok {
			return Grid{}, fmt.Errorf("row %d %q has a character above 0xff: %w", i, row, ErrInvalidGrid)
		}
		if len(cells) == 0 {
			return Grid{}, fmt.Errorf("row %d is empty: %w", i, ErrInvalidGrid)
		}
		if i > 0 && len(cells) != len(g[0]) {
			return Grid{}, fmt.Errorf("row %d has %d cells, want %d: %w", i, len(cells), len(g[0]), ErrInvalidGrid)
		}
		g[i] = cells
	}
	return Grid{grid: g}, nil
}

// ParseGrid reads rows separated by '/' or newlines, such as
// "ABCD/EFGH/IJKL/MNOP". Spaces are ignored. A single row whose length is a
// perfect square, such as "ABCDEFGHIJKLMNOP", is read as a square grid.
func ParseGrid(s string) (Grid, error) {
	s = strings.ReplaceAll(s, " ", "")
	rows := strings.FieldsFunc(s, func(r rune) bool {
		return r == '/' || r == '\n' || r == '\r'
	})
	if len(rows) == 1 {
		cells := []rune(rows[0])
		side := 1
		for side*side < len(cells) {
			side++
		}
		if side > 1 && side*side == len(cells) {
			rows = make([]string, side)
			for i := range side {
				rows[i] = string(cells[i*side : (i+1)*side])
			}
		}
	}
	return NewGrid(rows)
}

func (g Grid) Width() int {
	if len(g.grid) == 0 {
		return 0
	}
	return len(g.grid[0])
}

func (g Grid) Height() int {
	return len(g.grid)
}

func (g Grid) Get(row, col int) byte {
	return g.grid[row][col]
}

func (g Grid) Repr() string {
	lines := make([]string, g.Height())
	for y := range g.Height() {
		lines[y] = string(g.grid[y])
	}
	return strings.Join(lines, "\n")
}

func (g Grid) DebugString() string {
	return fmt.Sprintf("Grid{width: %d, height: %d, grid: %q}", g.Width(), g.Height(), g.grid)
}

// checkGrid rejects grids the bitmask search cannot represent.
func checkGrid(g CharGrid) error {
	if g == nil {
		return fmt.Errorf("nil grid: %w", ErrInvalidGrid)
	}
	if v := reflect.ValueOf(g); v.Kind() == reflect.Pointer && v.IsNil() {
		return fmt.Errorf("nil %T: %w", g, ErrInvalidGrid)
	}
	w, h := g.Width(), g.Height()
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%dx%d: %w", w, h, ErrInvalidGrid)
	}
	if w*h > MaxCells {
		return fmt.Errorf("%dx%d has %d cells, at most %d supported: %w", w, h, w*h, MaxCells, ErrInvalidGrid)
	}
	return nil
}

// ErrInvalidGrid is returned for grids that are empty, ragged or too large to
// search.
var ErrInvalidGrid = errors.New("invalid grid")
