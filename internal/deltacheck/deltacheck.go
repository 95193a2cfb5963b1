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

// Package deltacheck validates a list of deltas against the inputs it was computed from.
package deltacheck

import (
	"fmt"

	"cloudeng.io/errors"
	"znkr.io/seqdiff"
)

// Check verifies that deltas is a valid result of comparing x and y using eq and returns all
// violations it finds, or nil.
//
// The following properties are verified:
//
//   - The type of every delta matches the sizes of its chunks.
//   - Chunks are in bounds, and the elements of a chunk are the elements of the input at the
//     chunk's position (same memory), with a capacity limited to their length. Empty chunks have
//     nil elements.
//   - Deltas are strictly increasing in both positions, and any two deltas are separated by at
//     least one matching element.
//   - The elements between deltas are equivalent in x and y. Together with the deltas, they
//     cover x and y completely.
func Check[T any](x, y []T, deltas []seqdiff.Delta[T], eq func(a, b T) bool) error {
	var errs errors.M
	s, t := 0, 0 // end of the previous delta in x and y
	for i, d := range deltas {
		if err := checkType(d); err != nil {
			errs.Append(fmt.Errorf("delta %d: %w", i, err))
		}
		if err := checkChunk(x, d.Source); err != nil {
			errs.Append(fmt.Errorf("delta %d: source: %w", i, err))
			return errs.Err() // positions are meaningless from here on
		}
		if err := checkChunk(y, d.Target); err != nil {
			errs.Append(fmt.Errorf("delta %d: target: %w", i, err))
			return errs.Err()
		}

		gs, gt := d.Source.Position-s, d.Target.Position-t
		switch {
		case gs < 0 || gt < 0:
			errs.Append(fmt.Errorf("delta %d: overlaps with previous delta", i))
			return errs.Err()
		case gs != gt:
			errs.Append(fmt.Errorf("delta %d: gap before delta has different lengths %d and %d", i, gs, gt))
			return errs.Err()
		case gs == 0 && i > 0:
			errs.Append(fmt.Errorf("delta %d: not separated from previous delta", i))
		}
		errs.Append(checkGap(x, y, s, t, gs, eq)...)

		s = d.Source.Position + len(d.Source.Elements)
		t = d.Target.Position + len(d.Target.Elements)
	}

	if len(x)-s != len(y)-t {
		errs.Append(fmt.Errorf("trailing gap has different lengths %d and %d", len(x)-s, len(y)-t))
		return errs.Err()
	}
	errs.Append(checkGap(x, y, s, t, len(x)-s, eq)...)
	return errs.Err()
}

func checkType[T any](d seqdiff.Delta[T]) error {
	ns, nt := len(d.Source.Elements), len(d.Target.Elements)
	var ok bool
	switch d.Type {
	case seqdiff.Insert:
		ok = ns == 0 && nt > 0
	case seqdiff.Delete:
		ok = ns > 0 && nt == 0
	case seqdiff.Change:
		ok = ns > 0 && nt > 0
	}
	if !ok {
		return fmt.Errorf("type %v with chunk sizes %d and %d", d.Type, ns, nt)
	}
	return nil
}

func checkChunk[T any](in []T, c seqdiff.Chunk[T]) error {
	n := len(c.Elements)
	if c.Position < 0 || c.Position+n > len(in) {
		return fmt.Errorf("range [%d,%d) out of bounds [0,%d)", c.Position, c.Position+n, len(in))
	}
	if n == 0 {
		if c.Elements != nil {
			return fmt.Errorf("empty chunk at %d with non-nil elements", c.Position)
		}
		return nil
	}
	if &c.Elements[0] != &in[c.Position] {
		return fmt.Errorf("elements at %d are not a subslice of the input", c.Position)
	}
	if cap(c.Elements) != n {
		return fmt.Errorf("elements at %d have capacity %d, want %d", c.Position, cap(c.Elements), n)
	}
	return nil
}

func checkGap[T any](x, y []T, s, t, n int, eq func(a, b T) bool) []error {
	var errs []error
	for i := range n {
		if !eq(x[s+i], y[t+i]) {
			errs = append(errs, fmt.Errorf("x[%d] and y[%d] are between deltas but not equivalent", s+i, t+i))
		}
	}
	return errs
}
