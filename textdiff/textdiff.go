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

// Package textdiff provides functions to efficiently compare text line by line.
package textdiff

import (
	"znkr.io/seqdiff"
	"znkr.io/seqdiff/internal/byteview"
)

// Lines splits text into lines. Every line includes its terminating newline character, except for
// a last line without one. The lines share memory with text.
func Lines[T string | []byte](text T) []T {
	return lines[T](byteview.SplitLines(byteview.From(text)))
}

func lines[T string | []byte](views []byteview.ByteView) []T {
	out := make([]T, len(views))
	for i, v := range views {
		out[i] = byteview.To[T](v)
	}
	return out
}

// Deltas compares the lines in x and y and returns the deltas necessary to convert from one to the
// other. The elements of the deltas are lines as returned by [Lines], they share memory with x and
// y.
//
// A last line without a newline character differs from the same line with a newline character.
//
// The following options are supported: [seqdiff.Histogram], [seqdiff.Myers], [seqdiff.Minimal]
//
// Important: The output is not guaranteed to be stable and may change with minor version upgrades.
// DO NOT rely on the output being stable.
func Deltas[T string | []byte](x, y T, opts ...seqdiff.Option) []seqdiff.Delta[T] {
	// ByteViews are comparable, which lets us use the fastest comparison for both strings and
	// []byte without copying the inputs.
	vx := byteview.SplitLines(byteview.From(x))
	vy := byteview.SplitLines(byteview.From(y))
	vd := seqdiff.Diff(vx, vy, opts...)
	if len(vd) == 0 {
		return nil
	}

	xlines, ylines := lines[T](vx), lines[T](vy)
	out := make([]seqdiff.Delta[T], len(vd))
	for i, d := range vd {
		out[i] = seqdiff.Delta[T]{
			Type:   d.Type,
			Source: chunk(xlines, d.Source),
			Target: chunk(ylines, d.Target),
		}
	}
	return out
}

func chunk[T any](lines []T, c seqdiff.Chunk[byteview.ByteView]) seqdiff.Chunk[T] {
	out := seqdiff.Chunk[T]{Position: c.Position}
	if n := len(c.Elements); n > 0 {
		out.Elements = lines[c.Position : c.Position+n : c.Position+n]
	}
	return out
}

// Apply transforms x by applying deltas line by line and returns the result. See [seqdiff.Apply]
// for the requirements on deltas.
func Apply[T string | []byte](x T, deltas []seqdiff.Delta[T]) (T, error) {
	applied, err := seqdiff.Apply(Lines(x), deltas)
	if err != nil {
		var zero T
		return zero, err
	}
	var b byteview.Builder[T]
	var n int
	for _, line := range applied {
		n += len(line)
	}
	b.Grow(n)
	for _, line := range applied {
		b.WriteByteView(byteview.From(line))
	}
	return b.Build(), nil
}
