package wordgrid

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFindAll(t *testing.T) {
	f := NewFinder(loadDictionary(t, true))
	inputs := []string{
		"ABCDEFGHIJKLMNOP",
		"PONMLKJIHGFEDCBA",
		"ZZZZZZZZZZZZZZZZ",
		"ABCD/EFGH/IJKL/MNOP",
	}

	var grids []CharGrid
	var want [][]string
	for _, in := range inputs {
		g := mustParse(t, in)
		grids = append(grids, g)
		words, err := f.FindWords(g)
		if err != nil {
			t.Fatalf("FindWords(%q) error = %v", in, err)
		}
		want = append(want, words)
	}

	for _, workers := range []int{0, 1, 3} {
		got, err := FindAll(t.Context(), f, grids, workers)
		if err != nil {
			t.Fatalf("workers=%d FindAll() error = %v", workers, err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("workers=%d FindAll() mismatch (-want +got):\n%s", workers, diff)
		}
	}
}

func TestFindAllInvalidGrid(t *testing.T) {
	f := NewFinder(loadDictionary(t, false))
	grids := []CharGrid{mustParse(t, "ABCDEFGHIJKLMNOP"), sizedGrid{8, 8}}

	got, err := FindAll(t.Context(), f, grids, 2)
	if !errors.Is(err, ErrInvalidGrid) {
		t.Errorf("FindAll() error = %v, want ErrInvalidGrid", err)
	}
	if got != nil {
		t.Errorf("FindAll() = %v, want nil", got)
	}
}

func TestFindAllCancelled(t *testing.T) {
	f := NewFinder(loadDictionary(t, false))
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := FindAll(ctx, f, []CharGrid{mustParse(t, "ABCDEFGHIJKLMNOP")}, 1)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("FindAll() error = %v, want context.Canceled", err)
	}
}
