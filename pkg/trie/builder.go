// Package trie builds the mutable letter tree that a packed dictionary is
// encoded from. It is a build-time tool: nodes live in an arena addressed by
// NodeID, and the tree can be collapsed into a DAG that shares identical
// single-word suffixes.
package trie

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode/utf8"
)

var (
	// ErrCharOutOfRange is returned when a word contains a character that
	// cannot be stored in a single byte.
	ErrCharOutOfRange = errors.New("character out of single-byte range")

	// ErrCollapsed is returned when inserting into a builder whose suffixes
	// have already been shared.
	ErrCollapsed = errors.New("builder suffixes already collapsed")
)

// NodeID addresses a node in a Builder's arena.
type NodeID int32

// Edge is a labelled link from a node to one of its children.
type Edge struct {
	Char  byte
	Child NodeID
}

type node struct {
	children []Edge // sorted by Char
	terminal bool
}

// Builder is an arena of trie nodes. The zero value is not usable, use New.
type Builder struct {
	nodes     []node
	words     int
	collapsed bool

	// ids maps arena index to the dense identity assigned by Identify, or -1
	// for unreachable nodes.
	ids      []int32
	numNodes int
}

const root NodeID = 0

func New() *Builder {
	return &Builder{nodes: []node{{}}}
}

// Insert adds word to the tree, marking its final node terminal. The word is
// read as UTF-8 and each rune is one character, so every rune must be at most
// 0xff. Byte strings in a single-byte encoding such as Latin-1 should go
// through InsertBytes. Inserting the empty string is a no-op.
func (b *Builder) Insert(word string) error {
	if b.collapsed {
		return ErrCollapsed
	}
	letters := make([]byte, 0, len(word))
	for _, r := range word {
		if r > 0xff {
			return fmt.Errorf("word %q contains %q: %w", word, r, ErrCharOutOfRange)
		}
		letters = append(letters, byte(r))
	}
	return b.InsertBytes(letters)
}

// InsertBytes adds word to the tree with each byte as one character.
func (b *Builder) InsertBytes(word []byte) error {
	if b.collapsed {
		return ErrCollapsed
	}
	if len(word) == 0 {
		return nil
	}

	n := root
	for _, c := range word {
		n = b.child(n, c)
	}
	if !b.nodes[n].terminal {
		b.nodes[n].terminal = true
		b.words++
	}
	b.ids = nil
	return nil
}

// child returns the child of n labelled c, creating it if needed.
func (b *Builder) child(n NodeID, c byte) NodeID {
	children := b.nodes[n].children
	i, found := slices.BinarySearchFunc(children, c, func(e Edge, c byte) int {
		return int(e.Char) - int(c)
	})
	if found {
		return children[i].Child
	}

	id := NodeID(len(b.nodes))
	b.nodes = append(b.nodes, node{})
	b.nodes[n].children = slices.Insert(children, i, Edge{Char: c, Child: id})
	return id
}

// AddWords reads a newline-delimited word list, inserting one word per line.
// Surrounding whitespace is trimmed and blank lines are skipped. Lines that are
// not valid UTF-8 are taken as Latin-1 bytes. It returns the number of lines
// inserted.
func (b *Builder) AddWords(r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	added := 0
	line := 0
	for scanner.Scan() {
		line++
		word := bytes.TrimSpace(scanner.Bytes())
		if len(word) == 0 {
			continue
		}
		var err error
		if utf8.Valid(word) {
			err = b.Insert(string(word))
		} else {
			err = b.InsertBytes(word)
		}
		if err != nil {
			return added, fmt.Errorf("line %d: %w", line, err)
		}
		added++
	}
	if err := scanner.Err(); err != nil {
		return added, fmt.Errorf("reading word list: %w", err)
	}
	return added, nil
}

// CollapseSuffixes turns the tree into a DAG by making every subtree that
// holds exactly one word share a single node with all other subtrees spelling
// the same suffix. Subtrees holding zero or several words are left alone. It
// returns the number of distinct reachable nodes afterwards.
//
// Once collapsed, the builder no longer accepts insertions.
func (b *Builder) CollapseSuffixes() int {
	suffixes := make(map[string]NodeID)
	b.collapse(root, suffixes)
	b.collapsed = true
	b.ids = nil
	return b.Identify()
}

// collapse returns the number of terminal nodes in the subtree rooted at n.
func (b *Builder) collapse(n NodeID, suffixes map[string]NodeID) int {
	count := 0
	if b.nodes[n].terminal {
		count++
	}
	for i, e := range b.nodes[n].children {
		c := b.collapse(e.Child, suffixes)
		if c == 1 {
			key := b.suffix(e.Child)
			if shared, ok := suffixes[key]; ok {
				b.nodes[n].children[i].Child = shared
			} else {
				suffixes[key] = e.Child
			}
		}
		count += c
	}
	return count
}

// suffix spells the path below n. Only meaningful for single-word subtrees,
// which are always a chain ending in a terminal leaf.
func (b *Builder) suffix(n NodeID) string {
	var sb strings.Builder
	for {
		children := b.nodes[n].children
		if len(children) == 0 {
			return sb.String()
		}
		sb.WriteByte(children[0].Char)
		n = children[0].Child
	}
}

// Identify assigns every reachable node a dense id in pre-order, visiting
// children in ascending character order. Shared nodes get one id. It returns
// the number of reachable nodes.
func (b *Builder) Identify() int {
	if b.ids != nil {
		return b.numNodes
	}

	ids := make([]int32, len(b.nodes))
	for i := range ids {
		ids[i] = -1
	}

	next := int32(0)
	stack := []NodeID{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if ids[n] >= 0 {
			continue
		}
		ids[n] = next
		next++

		children := b.nodes[n].children
		for i := len(children) - 1; i >= 0; i-- {
			if ids[children[i].Child] < 0 {
				stack = append(stack, children[i].Child)
			}
		}
	}

	b.ids = ids
	b.numNodes = int(next)
	return b.numNodes
}

// Root returns the root node.
func (b *Builder) Root() NodeID {
	return root
}

// Children returns the edges leaving n in ascending character order. The
// returned slice must not be modified.
func (b *Builder) Children(n NodeID) []Edge {
	return b.nodes[n].children
}

// IsTerminal reports whether a word ends at n.
func (b *Builder) IsTerminal(n NodeID) bool {
	return b.nodes[n].terminal
}

// ID returns the identity Identify assigned to n, or -1 if n is unreachable.
func (b *Builder) ID(n NodeID) int {
	b.Identify()
	return int(b.ids[n])
}

// NumWords returns the number of distinct words inserted.
func (b *Builder) NumWords() int {
	return b.words
}

// NumEdges counts the distinct edges reachable from the root, which is the
// number of records a packed encoding of this builder needs.
func (b *Builder) NumEdges() int {
	b.Identify()
	total := 0
	for i, id := range b.ids {
		if id >= 0 {
			total += len(b.nodes[i].children)
		}
	}
	return total
}

// Collapsed reports whether CollapseSuffixes has run.
func (b *Builder) Collapsed() bool {
	return b.collapsed
}
