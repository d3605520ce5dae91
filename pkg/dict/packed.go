// Package dict implements the packed dictionary: a letter trie (or DAG)
// flattened into an array of fixed-width edge records that can be queried
// directly, without decoding.
//
// Each record is a uint32 describing one edge:
//
//	bit  31     end of sibling list
//	bit  30     end of word (the edge's destination is terminal)
//	bits 8-29   offset of the destination's first child edge, 0 if none
//	bits 0-7    character
//
// The children of a node occupy a contiguous run sorted by character. The
// root's children always start at offset 0, so offset 0 never names any other
// run and can double as "no children".
package dict

import (
	"errors"
	"fmt"
	"iter"

	"crosswarped.com/wordgrid/pkg/trie"
)

const (
	endOfList  uint32 = 1 << 31
	endOfWord  uint32 = 1 << 30
	offsetMask uint32 = 0x3fffff00
	offsetBits        = 8
	charMask   uint32 = 0xff

	// MaxEdges is the largest number of records the offset field can address.
	MaxEdges = 1 << 22
)

var (
	// ErrTooLarge is returned when a dictionary needs more records than an
	// offset can address.
	ErrTooLarge = errors.New("dictionary exceeds addressable size")

	// ErrMalformed is returned when a serialized dictionary is structurally
	// invalid.
	ErrMalformed = errors.New("malformed dictionary")
)

// Result is the outcome of a Lookup.
type Result uint8

const (
	// Word is set when the looked up string is a complete word.
	Word Result = 1 << iota
	// Prefix is set when some longer word starts with the looked up string.
	Prefix
)

func (r Result) IsWord() bool      { return r&Word != 0 }
func (r Result) HasChildren() bool { return r&Prefix != 0 }

// Found reports whether the string occurs as a word or a prefix.
func (r Result) Found() bool { return r != 0 }

func (r Result) String() string {
	switch r {
	case 0:
		return "absent"
	case Word:
		return "word"
	case Prefix:
		return "prefix"
	default:
		return "word+prefix"
	}
}

// Dictionary is an immutable packed trie. It is safe for concurrent use.
type Dictionary struct {
	edges []uint32
}

func encodeEdge(c byte, childOffset int, last, terminal bool) uint32 {
	e := uint32(c) | uint32(childOffset)<<offsetBits
	if last {
		e |= endOfList
	}
	if terminal {
		e |= endOfWord
	}
	return e
}

func edgeChar(e uint32) byte { return byte(e & charMask) }
func edgeOffset(e uint32) int { return int((e & offsetMask) >> offsetBits) }
func edgeIsLast(e uint32) bool { return e&endOfList != 0 }
func edgeIsTerminal(e uint32) bool { return e&endOfWord != 0 }

// Build encodes the node graph held by b. Shared nodes of a collapsed builder
// are placed once and every parent points at the same run.
func Build(b *trie.Builder) (*Dictionary, error) {
	nodes := b.Identify()
	if total := b.NumEdges(); total > MaxEdges {
		return nil, fmt.Errorf("%d edges: %w", total, ErrTooLarge)
	}

	edges := make([]uint32, 0, b.NumEdges())

	// placed maps node identity to the offset of its child run; 0 means not
	// yet placed, which is unambiguous because only the root lives at 0.
	placed := make([]int, nodes)
	var pending []trie.NodeID

	place := func(n trie.NodeID) int {
		offset := len(edges)
		edges = append(edges, make([]uint32, len(b.Children(n)))...)
		placed[b.ID(n)] = offset
		pending = append(pending, n)
		return offset
	}

	place(b.Root())
	for len(pending) > 0 {
		n := pending[0]
		pending = pending[1:]

		base := placed[b.ID(n)]
		children := b.Children(n)
		for i, e := range children {
			childOffset := 0
			if len(b.Children(e.Child)) > 0 {
				childOffset = placed[b.ID(e.Child)]
				if childOffset == 0 {
					childOffset = place(e.Child)
				}
			}
			edges[base+i] = encodeEdge(e.Char, childOffset, i == len(children)-1, b.IsTerminal(e.Child))
		}
	}

	return &Dictionary{edges: edges}, nil
}

// Lookup reports whether s is a word in the dictionary and whether it can be
// extended into a longer word. Each rune of s is one character; strings with
// runes above 0xff are absent.
func (d *Dictionary) Lookup(s string) Result {
	if isASCII(s) {
		return lookup(d.edges, s)
	}
	b, ok := Latin1(s)
	if !ok {
		return 0
	}
	return lookup(d.edges, b)
}

// LookupBytes is Lookup for a byte slice.
func (d *Dictionary) LookupBytes(b []byte) Result {
	return lookup(d.edges, b)
}

// Contains reports whether s is a word in the dictionary.
func (d *Dictionary) Contains(s string) bool {
	return d.Lookup(s).IsWord()
}

// Latin1 converts s to one byte per rune, failing if any rune is above 0xff.
func Latin1(s string) ([]byte, bool) {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xff {
			return nil, false
		}
		out = append(out, byte(r))
	}
	return out, true
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

func lookup[T ~string | ~[]byte](edges []uint32, letters T) Result {
	if len(edges) == 0 {
		return 0
	}
	if len(letters) == 0 {
		return Prefix
	}

	offset := 0
	var edge uint32
	for i := 0; i < len(letters); i++ {
		if i > 0 && offset == 0 {
			// the previous match has no children but letters remain
			return 0
		}
		c := letters[i]
		for {
			edge = edges[offset]
			ec := edgeChar(edge)
			if ec == c {
				offset = edgeOffset(edge)
				break
			}
			if ec > c || edgeIsLast(edge) {
				return 0
			}
			offset++
		}
	}

	var r Result
	if edgeIsTerminal(edge) {
		r |= Word
	}
	if offset > 0 {
		r |= Prefix
	}
	return r
}

// Words yields every word in ascending order. Each byte of a yielded string
// is one character.
func (d *Dictionary) Words() iter.Seq[string] {
	return func(yield func(string) bool) {
		if len(d.edges) == 0 {
			return
		}
		var prefix []byte
		d.walk(0, prefix, yield)
	}
}

func (d *Dictionary) walk(offset int, prefix []byte, yield func(string) bool) bool {
	for ; ; offset++ {
		e := d.edges[offset]
		word := append(prefix, edgeChar(e))
		if edgeIsTerminal(e) && !yield(string(word)) {
			return false
		}
		if child := edgeOffset(e); child > 0 {
			if !d.walk(child, word, yield) {
				return false
			}
		}
		if edgeIsLast(e) {
			return true
		}
	}
}

// Len returns the number of edge records.
func (d *Dictionary) Len() int {
	return len(d.edges)
}

func (d *Dictionary) String() string {
	return fmt.Sprintf("Dictionary<%d>", len(d.edges))
}
