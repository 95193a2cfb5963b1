// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package seqdiff

import (
	"errors"
	"fmt"

	"znkr.io/seqdiff/internal/rvecs"
)

// Type describes the kind of a [Delta].
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Type
type Type int

const (
	Insert Type = iota // Elements only present in the target
	Delete             // Elements only present in the source
	Change             // Elements in the source are replaced by elements in the target
)

// Chunk is a contiguous range of elements in one of the inputs.
type Chunk[T any] struct {
	// Index of the first element in the input. For an empty chunk, this is the index at which
	// the elements of the other side are inserted or from which they were removed.
	Position int

	// The elements, a subslice of the input or nil if the chunk is empty. The capacity is limited
	// to the length, appending to Elements never modifies the input.
	Elements []T
}

// Delta describes one difference between the source (x) and the target (y).
//
//   - For Insert, Source.Elements is empty and Target.Elements is not.
//   - For Delete, Target.Elements is empty and Source.Elements is not.
//   - For Change, both are non-empty.
type Delta[T any] struct {
	Type   Type
	Source Chunk[T]
	Target Chunk[T]
}

func deltas[T any](x, y []T, rx, ry []bool) []Delta[T] {
	// Counting the regions is relatively cheap and allows us to preallocate the return value.
	n, _ := rvecs.Count(rx, ry)
	if n == 0 {
		return nil
	}

	out := make([]Delta[T], 0, n)
	for r := range rvecs.Regions(rx, ry) {
		d := Delta[T]{
			Source: chunk(x, r.S0, r.S1),
			Target: chunk(y, r.T0, r.T1),
		}
		switch {
		case r.S0 == r.S1:
			d.Type = Insert
		case r.T0 == r.T1:
			d.Type = Delete
		default:
			d.Type = Change
		}
		out = append(out, d)
	}
	return out
}

func chunk[T any](in []T, i, j int) Chunk[T] {
	c := Chunk[T]{Position: i}
	if i < j {
		c.Elements = in[i:j:j]
	}
	return c
}

// ErrInvalidDeltas is returned (wrapped) by [Apply] for deltas that can't be applied.
var ErrInvalidDeltas = errors.New("invalid deltas")

// Apply transforms x by applying deltas and returns the result. The deltas must be ordered by
// position and must not overlap, like the output of [Diff].
//
// Apply doesn't compare the elements of the source chunks with x, only their positions and
// lengths are used. Applying the result of Diff(x, y) to x yields y.
func Apply[T any](x []T, deltas []Delta[T]) ([]T, error) {
	var size int
	for _, d := range deltas {
		size += len(d.Target.Elements) - len(d.Source.Elements)
	}
	out := make([]T, 0, max(len(x)+size, 0))

	s, t := 0, 0 // next unconsumed position in x and in the result
	for i, d := range deltas {
		if !d.valid() {
			return nil, fmt.Errorf("%w: delta %d: type %v doesn't match chunk sizes %d and %d", ErrInvalidDeltas, i, d.Type, len(d.Source.Elements), len(d.Target.Elements))
		}
		pos, end := d.Source.Position, d.Source.Position+len(d.Source.Elements)
		if pos < s || end > len(x) {
			return nil, fmt.Errorf("%w: delta %d: source range [%d,%d) out of bounds [%d,%d)", ErrInvalidDeltas, i, pos, end, s, len(x))
		}
		if want := t + pos - s; d.Target.Position != want {
			return nil, fmt.Errorf("%w: delta %d: target position %d, want %d", ErrInvalidDeltas, i, d.Target.Position, want)
		}
		out = append(out, x[s:pos]...)
		out = append(out, d.Target.Elements...)
		s = end
		t = d.Target.Position + len(d.Target.Elements)
	}
	return append(out, x[s:]...), nil
}

// valid reports whether the type of d matches the sizes of its chunks.
func (d Delta[T]) valid() bool {
	ns, nt := len(d.Source.Elements), len(d.Target.Elements)
	switch d.Type {
	case Insert:
		return ns == 0 && nt > 0
	case Delete:
		return ns > 0 && nt == 0
	case Change:
		return ns > 0 && nt > 0
	default:
		return false
	}
}
