package primitives

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned when a character falls outside a CharSet's range.
var ErrOutOfRange = errors.New("character out of range")

// CharSet is a set of single-byte characters within a contiguous range. Word
// lists are validated against one, and the build records the letters it saw
// in another.
type CharSet struct {
	available []bool
	min       byte
	count     int
}

func NewCharSet(min, max byte) *CharSet {
	if max < min {
		min, max = max, min
	}
	return &CharSet{
		available: make([]bool, int(max)-int(min)+1),
		min:       min,
	}
}

// LowercaseCharSet returns a full set containing the ASCII letters a to z.
func LowercaseCharSet() *CharSet {
	c := NewCharSet('a', 'z')
	c.Fill()
	return c
}

// ParseCharSet parses a range description such as "a-z" into a full CharSet.
func ParseCharSet(s string) (*CharSet, error) {
	if len(s) != 3 || s[1] != '-' {
		return nil, fmt.Errorf("invalid character range %q, want e.g. a-z", s)
	}
	c := NewCharSet(s[0], s[2])
	c.Fill()
	return c, nil
}

// Add adds a character to the set.
func (c *CharSet) Add(b byte) error {
	if !c.inRange(b) {
		return fmt.Errorf("character %q: %w", b, ErrOutOfRange)
	}

	if c.available[b-c.min] {
		return nil
	}

	c.count++
	c.available[b-c.min] = true
	return nil
}

// Fill adds every character in range.
func (c *CharSet) Fill() {
	for i := range c.available {
		c.available[i] = true
	}
	c.count = len(c.available)
}

// Contains checks if a character is in the set. Characters outside the range
// are never contained.
func (c *CharSet) Contains(b byte) bool {
	return c.inRange(b) && c.available[b-c.min]
}

// Validate returns an error naming the first character of word that is not in
// the set.
func (c *CharSet) Validate(word string) error {
	for i := 0; i < len(word); i++ {
		if !c.Contains(word[i]) {
			return fmt.Errorf("word %q contains %q: %w", word, word[i], ErrOutOfRange)
		}
	}
	return nil
}

// Count returns the number of characters in the set.
func (c *CharSet) Count() int {
	return c.count
}

// String lists the members of the set in ascending order.
func (c *CharSet) String() string {
	out := make([]byte, 0, c.count)
	for i, ok := range c.available {
		if ok {
			out = append(out, c.min+byte(i))
		}
	}
	return string(out)
}

func (c *CharSet) inRange(b byte) bool {
	return b >= c.min && int(b-c.min) < len(c.available)
}
