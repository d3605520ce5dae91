package dict

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Serialized form: a big-endian uint32 record count followed by that many
// big-endian uint32 edge records in array order. There is no header or
// version; reader and writer must agree on the record layout.

// WriteTo writes the dictionary in its serialized form.
func (d *Dictionary) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var buf [4]byte
	var written int64

	binary.BigEndian.PutUint32(buf[:], uint32(len(d.edges)))
	n, err := bw.Write(buf[:])
	written += int64(n)
	if err != nil {
		return written, err
	}

	for _, e := range d.edges {
		binary.BigEndian.PutUint32(buf[:], e)
		n, err := bw.Write(buf[:])
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, bw.Flush()
}

// Read loads a dictionary written by WriteTo. A truncated stream fails with an
// error wrapping io.ErrUnexpectedEOF; a structurally invalid one with
// ErrMalformed. No partial dictionary is ever returned.
func Read(r io.Reader) (*Dictionary, error) {
	br := bufio.NewReader(r)
	var buf [4]byte

	if _, err := io.ReadFull(br, buf[:]); err != nil {
		return nil, fmt.Errorf("reading record count: %w", eof(err))
	}
	count := binary.BigEndian.Uint32(buf[:])
	if count > MaxEdges {
		return nil, fmt.Errorf("record count %d exceeds %d: %w", count, MaxEdges, ErrMalformed)
	}

	edges := make([]uint32, count)
	for i := range edges {
		if _, err := io.ReadFull(br, buf[:]); err != nil {
			return nil, fmt.Errorf("reading record %d of %d: %w", i, count, eof(err))
		}
		edges[i] = binary.BigEndian.Uint32(buf[:])
	}

	if err := validate(edges); err != nil {
		return nil, err
	}
	return &Dictionary{edges: edges}, nil
}

func eof(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// validate checks that every child offset lands inside the array, that the
// final sibling run is terminated and that no run reachable from the root can
// reach itself, so neither lookups nor Words can run away.
func validate(edges []uint32) error {
	if len(edges) == 0 {
		return nil
	}
	for i, e := range edges {
		if off := edgeOffset(e); off >= len(edges) {
			return fmt.Errorf("record %d points at offset %d past %d records: %w", i, off, len(edges), ErrMalformed)
		}
	}
	if !edgeIsLast(edges[len(edges)-1]) {
		return fmt.Errorf("final record does not end a sibling list: %w", ErrMalformed)
	}
	return checkAcyclic(edges)
}

// checkAcyclic walks the child runs reachable from offset 0 depth first.
// Shared runs may be visited from several parents, so offsets may point
// backwards; only a run that is still on the walk stack marks a cycle.
func checkAcyclic(edges []uint32) error {
	const (
		unvisited uint8 = iota
		onStack
		done
	)
	state := make([]uint8, len(edges))

	type frame struct {
		start int
		next  int // next record to scan, -1 once the run is exhausted
	}
	stack := []frame{{start: 0, next: 0}}
	state[0] = onStack

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next < 0 {
			state[top.start] = done
			stack = stack[:len(stack)-1]
			continue
		}

		e := edges[top.next]
		if edgeIsLast(e) {
			top.next = -1
		} else {
			top.next++
		}

		child := edgeOffset(e)
		if child == 0 {
			continue
		}
		switch state[child] {
		case onStack:
			return fmt.Errorf("record run at %d leads back to itself: %w", child, ErrMalformed)
		case unvisited:
			state[child] = onStack
			stack = append(stack, frame{start: child, next: child})
		}
	}
	return nil
}
