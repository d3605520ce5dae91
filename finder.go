package wordgrid

import (
	"maps"
	"slices"
	"strings"
	"unicode"

	"crosswarped.com/wordgrid/pkg/dict"
)

const (
	// DefaultMinLength is the shortest word a Finder reports unless configured
	// otherwise.
	DefaultMinLength = 3

	// MaxCells is the largest grid, in cells, that can be searched. Visited
	// cells are tracked in a single 32-bit mask.
	MaxCells = 31
)

// DefaultTiles maps the Q tile to "qu".
func DefaultTiles() map[byte]string {
	return map[byte]string{'q': "qu"}
}

// Finder enumerates the dictionary words that can be traced through a grid by
// stepping between horizontally, vertically or diagonally adjacent cells,
// using each cell at most once.
//
// A Finder holds no per-search state and may be shared between goroutines.
type Finder struct {
	dict      *dict.Dictionary
	minLength int

	// tiles[c] is the text a cell showing c stands for. Word lengths count
	// characters, not cells.
	tiles [256]string
}

type FinderOption func(*Finder)

// WithMinLength sets the shortest word length reported.
func WithMinLength(n int) FinderOption {
	return func(f *Finder) {
		f.minLength = n
	}
}

// WithTiles sets the multi-character tiles, keyed by cell letter. Keys and
// values are case folded. Letters without an entry stand for themselves.
func WithTiles(tiles map[byte]string) FinderOption {
	return func(f *Finder) {
		f.resetTiles()
		for c, text := range tiles {
			if text == "" {
				continue
			}
			if b, ok := dict.Latin1(strings.ToLower(text)); ok {
				f.tiles[fold(c)] = string(b)
			}
		}
	}
}

// WithoutTiles makes every cell stand for exactly its own letter.
func WithoutTiles() FinderOption {
	return WithTiles(nil)
}

func NewFinder(d *dict.Dictionary, opts ...FinderOption) *Finder {
	f := &Finder{
		dict:      d,
		minLength: DefaultMinLength,
	}
	WithTiles(DefaultTiles())(f)
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Finder) resetTiles() {
	for c := range f.tiles {
		f.tiles[c] = string([]byte{byte(c)})
	}
}

// MinLength returns the shortest word length reported.
func (f *Finder) MinLength() int {
	return f.minLength
}

// fold lower-cases a single-byte character.
func fold(c byte) byte {
	l := unicode.ToLower(rune(c))
	if l > 0xff {
		return c
	}
	return byte(l)
}

// search is the state of one FindWords call.
type search struct {
	f      *Finder
	width  int
	height int
	cells  []string // tile text per cell, row major

	buf   []byte
	found map[string]struct{}
}

func (f *Finder) newSearch(g CharGrid) (*search, error) {
	if err := checkGrid(g); err != nil {
		return nil, err
	}
	s := &search{
		f:      f,
		width:  g.Width(),
		height: g.Height(),
		found:  make(map[string]struct{}),
	}
	s.cells = make([]string, s.width*s.height)
	longest := 0
	for row := range s.height {
		for col := range s.width {
			text := f.tiles[fold(g.Get(row, col))]
			s.cells[row*s.width+col] = text
			longest = max(longest, len(text))
		}
	}
	s.buf = make([]byte, 0, longest*len(s.cells))
	return s, nil
}

// FindWords returns every distinct dictionary word of at least the minimum
// length that the grid spells, in alphabetical order.
func (f *Finder) FindWords(g CharGrid) ([]string, error) {
	s, err := f.newSearch(g)
	if err != nil {
		return nil, err
	}
	for row := range s.height {
		for col := range s.width {
			s.visit(row, col, 0)
		}
	}
	return slices.Sorted(maps.Keys(s.found)), nil
}

func (s *search) visit(row, col int, visited uint32) {
	pos := row*s.width + col
	bit := uint32(1) << pos
	if visited&bit != 0 {
		return
	}
	visited |= bit

	mark := len(s.buf)
	s.buf = append(s.buf, s.cells[pos]...)
	r := s.f.dict.LookupBytes(s.buf)
	if len(s.buf) >= s.f.minLength && r.IsWord() {
		s.found[string(s.buf)] = struct{}{}
	}
	if r.HasChildren() {
		s.visitNeighbors(row, col, visited)
	}
	s.buf = s.buf[:mark]
}

func (s *search) visitNeighbors(row, col int, visited uint32) {
	for dr := -1; dr <= 1; dr++ {
		rr := row + dr
		if rr < 0 || rr >= s.height {
			continue
		}
		for dc := -1; dc <= 1; dc++ {
			cc := col + dc
			if cc < 0 || cc >= s.width || (dr == 0 && dc == 0) {
				continue
			}
			s.visit(rr, cc, visited)
		}
	}
}

// GridContains reports whether word is a dictionary word of at least the
// minimum length that can be traced through the grid. It agrees with
// FindWords but only follows paths that spell word.
func (f *Finder) GridContains(g CharGrid, word string) (bool, error) {
	s, err := f.newSearch(g)
	if err != nil {
		return false, err
	}
	target, ok := dict.Latin1(strings.ToLower(word))
	if !ok || len(target) < f.minLength || !f.dict.LookupBytes(target).IsWord() {
		return false, nil
	}
	for row := range s.height {
		for col := range s.width {
			if s.trace(row, col, 0, target) {
				return true, nil
			}
		}
	}
	return false, nil
}

// trace reports whether rest can be spelled starting at (row, col).
func (s *search) trace(row, col int, visited uint32, rest []byte) bool {
	pos := row*s.width + col
	bit := uint32(1) << pos
	if visited&bit != 0 {
		return false
	}
	text := s.cells[pos]
	if len(text) > len(rest) || string(rest[:len(text)]) != text {
		return false
	}
	rest = rest[len(text):]
	if len(rest) == 0 {
		return true
	}
	visited |= bit

	for dr := -1; dr <= 1; dr++ {
		rr := row + dr
		if rr < 0 || rr >= s.height {
			continue
		}
		for dc := -1; dc <= 1; dc++ {
			cc := col + dc
			if cc < 0 || cc >= s.width || (dr == 0 && dc == 0) {
				continue
			}
			if s.trace(rr, cc, visited, rest) {
				return true
			}
		}
	}
	return false
}

// ComputeMaxScore returns the best score a player could reach on the grid:
// the sum of WordScore over every word FindWords reports.
func (f *Finder) ComputeMaxScore(g CharGrid) (int, error) {
	words, err := f.FindWords(g)
	if err != nil {
		return 0, err
	}
	return Score(words), nil
}

// Score sums WordScore over words.
func Score(words []string) int {
	total := 0
	for _, w := range words {
		total += WordScore(w)
	}
	return total
}

// WordScore rewards longer words along the Fibonacci sequence: three letters
// score 1, four 2, five 3, six 5 and so on.
func WordScore(word string) int {
	return Fibonacci(len(word) - 2)
}

// Fibonacci returns the n-th term of 1, 1, 2, 3, 5, ... counting from zero.
// Negative n is treated as zero.
func Fibonacci(n int) int {
	a, b := 1, 0
	for ; n > 0; n-- {
		a, b = a+b, a
	}
	return a
}
