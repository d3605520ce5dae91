package wordsource

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/multierr"

	"crosswarped.com/wordgrid/pkg/primitives"
	"crosswarped.com/wordgrid/pkg/trie"
)

// Options filters the words read from a list.
type Options struct {
	// Alphabet, if set, rejects words containing other characters.
	Alphabet *primitives.CharSet
	// MinLength and MaxLength skip words outside the range; zero disables
	// the bound.
	MinLength int
	MaxLength int

	// Seen, if set, collects every character of the words kept.
	Seen *primitives.CharSet
}

func (o Options) keep(word string) bool {
	if o.MinLength > 0 && len(word) < o.MinLength {
		return false
	}
	if o.MaxLength > 0 && len(word) > o.MaxLength {
		return false
	}
	return true
}

// ReadWords reads a newline-delimited word list. Words are trimmed and lower
// cased; blank lines are skipped.
func ReadWords(ctx context.Context, r io.Reader, opts Options) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if word == "" || !opts.keep(word) {
			continue
		}
		if opts.Alphabet != nil {
			if err := opts.Alphabet.Validate(word); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
		}
		if opts.Seen != nil {
			for _, r := range word {
				if r > 0xff {
					continue
				}
				if err := opts.Seen.Add(byte(r)); err != nil {
					return nil, fmt.Errorf("line %d: %w", line, err)
				}
			}
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// LoadFile reads the word list at path, which may be gzip compressed.
func LoadFile(ctx context.Context, path string, opts Options) (words []string, err error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = multierr.Append(err, r.Close())
	}()

	words, err = ReadWords(ctx, r, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return words, nil
}

// NewBuilder inserts words into a fresh trie builder.
func NewBuilder(words ...[]string) (*trie.Builder, error) {
	b := trie.New()
	for _, list := range words {
		for _, w := range list {
			if err := b.Insert(w); err != nil {
				return nil, err
			}
		}
	}
	return b, nil
}

// LoadBuilder reads every word list in paths into one trie builder.
func LoadBuilder(ctx context.Context, paths []string, opts Options) (*trie.Builder, error) {
	lists := make([][]string, 0, len(paths))
	for _, path := range paths {
		words, err := LoadFile(ctx, path, opts)
		if err != nil {
			return nil, err
		}
		lists = append(lists, words)
	}
	return NewBuilder(lists...)
}
