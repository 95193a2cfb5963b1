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

// Package rvecs contains functions to work with the result vectors, the internal representation
// that's used by the matching engines and is then translated to a user facing API.
//
// For inputs x and y, the result vectors rx and ry mark every element of x that is not part of a
// match (rx[s] == true) and every element of y that is not part of a match (ry[t] == true). Both
// vectors have one extra element at the end that is always false. This border makes it easier to
// iterate over the results.
//
// Alignment is implicit: the i-th unmarked element of x is matched with the i-th unmarked element
// of y. Consequently, both vectors must have the same number of unmarked elements.
package rvecs

import (
	"fmt"
	"iter"
)

// Make allocates result vectors for x and y with a single allocation.
func Make[T any](x, y []T) (rx, ry []bool) {
	r := make([]bool, (len(x) + len(y) + 2))
	rx = r[: len(x)+1 : len(x)+1]
	ry = r[len(x)+1:]
	return
}

// Run is a maximal sequence of matching elements x[S:S+Len] and y[T:T+Len].
type Run struct {
	S, T int
	Len  int
}

// Region is a maximal sequence of elements without any match, x[S0:S1] and y[T0:T1]. At
// most one of the two ranges is empty.
type Region struct {
	S0, S1 int // Start and end of the region in x.
	T0, T1 int // Start and end of the region in y.
}

// Regions returns all unmatched regions from left to right.
//
// Every match, no matter how short, terminates a region. Two regions are therefore always
// separated by at least one matching pair of elements.
func Regions(rx, ry []bool) iter.Seq[Region] {
	return func(yield func(Region) bool) {
		for r, ok := range walk(rx, ry) {
			if !ok {
				continue
			}
			if !yield(Region{r.S, r.S + r.Len, r.T, r.T + r.dy}) {
				return
			}
		}
	}
}

// Runs returns all matched runs from left to right.
func Runs(rx, ry []bool) iter.Seq[Run] {
	return func(yield func(Run) bool) {
		for r, ok := range walk(rx, ry) {
			if ok {
				continue
			}
			if !yield(r.Run) {
				return
			}
		}
	}
}

// span is either a region (x[S:S+Len], y[T:T+dy]) or a run (Len matches at S, T).
type span struct {
	Run
	dy int
}

// walk scans both result vectors once and alternates between unmatched regions (true) and
// matched runs (false).
func walk(rx, ry []bool) iter.Seq2[span, bool] {
	return func(yield func(span, bool) bool) {
		n, m := len(rx)-1, len(ry)-1
		if n < 0 || m < 0 || rx[n] || ry[m] {
			panic("invariant violation: result vectors without border")
		}
		s, t := 0, 0 // current index into x, y
		for s < n || t < m {
			if rx[s] || ry[t] {
				s0, t0 := s, t
				for s < n && rx[s] {
					s++
				}
				for t < m && ry[t] {
					t++
				}
				if !yield(span{Run{s0, t0, s - s0}, t - t0}, true) {
					return
				}
				continue
			}
			s0, t0 := s, t
			for s < n && t < m && !rx[s] && !ry[t] {
				s++
				t++
			}
			if s == s0 {
				// Only one of x or y has unmatched elements left.
				panic(fmt.Sprintf("invariant violation: unbalanced result vectors at s=%d, t=%d", s, t))
			}
			if !yield(span{Run{s0, t0, s - s0}, 0}, false) {
				return
			}
		}
	}
}

// Count returns the number of regions and the number of elements in all regions.
func Count(rx, ry []bool) (regions, elements int) {
	for r := range Regions(rx, ry) {
		regions++
		elements += (r.S1 - r.S0) + (r.T1 - r.T0)
	}
	return regions, elements
}
