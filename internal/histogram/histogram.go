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

// Package histogram aligns two sequences of integer IDs with the histogram algorithm.
//
// The histogram algorithm is a refinement of patience diff: Instead of anchoring the alignment on
// elements that appear exactly once in both inputs, it anchors on the rarest elements shared by
// both inputs. Rare elements are almost certainly true alignment points, unlike frequent elements
// such as blank lines or closing braces that would otherwise lead to misalignments.
//
// For a region x[smin:smax], y[tmin:tmax] the algorithm works as follows:
//
//  1. Count how often every ID occurs in both windows (the histogram).
//  2. For every pair of equal elements whose ID isn't too frequent, extend the match as far as
//     possible in both directions. The weight of the resulting run is the lowest combined number
//     of occurrences of any of its IDs.
//  3. Pick the run with the lowest weight. Ties are broken by the longest run, then by the
//     leftmost run in x, then by the leftmost run in y.
//  4. Continue with the regions before and after the run.
//
// If a region doesn't share any ID, everything in it is unmatched. If it shares IDs but all of them
// are too frequent to be considered (e.g., inputs consisting of the same element repeated over and
// over), the region is aligned with Myers' algorithm instead.
//
// The runtime is roughly linear for inputs with few repetitions and degrades towards quadratic
// for highly repetitive inputs.
package histogram

import (
	"fmt"

	"znkr.io/seqdiff/internal/myers"
)

// maxChainLen is the maximal combined number of occurrences of an ID in x and y for it to be an
// anchor candidate. It bounds the number of pairs that need to be evaluated for every element in y.
const maxChainLen = 64

// debug enables expensive internal consistency checks.
const debug = false

// Diff aligns x[smin:smax] with y[tmin:tmax] and marks every element that is not part of the
// alignment in rx and ry. All IDs in x and y must be in [0, n).
//
// The minimal flag is passed on to Myers' algorithm for regions without good anchors.
func Diff(rx, ry []bool, x, y []int, n int, smin, smax, tmin, tmax int, minimal bool) {
	h := histogram{
		x:       x,
		y:       y,
		rx:      rx,
		ry:      ry,
		minimal: minimal,
		countX:  make([]int, n),
		countY:  make([]int, n),
		head:    make([]int, n),
		next:    make([]int, len(x)),
	}
	for i := range h.head {
		h.head[i] = -1
	}
	h.todo = append(h.todo, region{smin, smax, tmin, tmax})
	for len(h.todo) > 0 {
		r := h.todo[len(h.todo)-1]
		h.todo = h.todo[:len(h.todo)-1]
		h.align(r)
	}
}

type histogram struct {
	x, y    []int
	rx, ry  []bool
	minimal bool

	// Number of occurrences of every ID in the current windows of x and y.
	countX, countY []int

	// Occurrences of every ID in the current window of x in increasing order: head[id] is the
	// first index of id and next[s] the index after s, or -1.
	head, next []int

	// Regions that still need to be aligned.
	todo []region
}

type region struct {
	smin, smax, tmin, tmax int
}

// anchor is a candidate run x[s0:s1] == y[t0:t1].
type anchor struct {
	s0, s1, t0, t1 int
	weight         int
}

// better reports if a is a better anchor than b.
func (a anchor) better(b anchor) bool {
	if a.weight != b.weight {
		return a.weight < b.weight
	}
	if la, lb := a.s1-a.s0, b.s1-b.s0; la != lb {
		return la > lb
	}
	if a.s0 != b.s0 {
		return a.s0 < b.s0
	}
	return a.t0 < b.t0
}

func (h *histogram) align(r region) {
	if r.smin == r.smax || r.tmin == r.tmax {
		h.unmatched(r)
		return
	}

	h.count(r)
	best, shared := h.findAnchor(r)
	h.reset(r)

	switch {
	case best.weight > 0:
		if best.s0 < r.smin || best.s1 > r.smax || best.t0 < r.tmin || best.t1 > r.tmax || best.s0 >= best.s1 {
			panic(fmt.Sprintf("invariant violation: anchor %+v outside of region %+v", best, r))
		}
		if debug {
			for i := range best.s1 - best.s0 {
				if h.x[best.s0+i] != h.y[best.t0+i] {
					panic(fmt.Sprintf("invariant violation: anchor %+v doesn't match", best))
				}
			}
		}
		// Push the region after the anchor first, so that regions are processed left to right.
		h.todo = append(h.todo,
			region{best.s1, r.smax, best.t1, r.tmax},
			region{r.smin, best.s0, r.tmin, best.t0},
		)
	case shared:
		// There are shared elements, but all of them are too frequent.
		myers.Diff(h.rx, h.ry, h.x, h.y, r.smin, r.smax, r.tmin, r.tmax, h.minimal)
	default:
		h.unmatched(r)
	}
}

// count builds the histogram for r.
func (h *histogram) count(r region) {
	for s := r.smax - 1; s >= r.smin; s-- {
		id := h.x[s]
		h.countX[id]++
		h.next[s] = h.head[id]
		h.head[id] = s
	}
	for _, id := range h.y[r.tmin:r.tmax] {
		h.countY[id]++
	}
}

// reset undoes count for r. This is cheaper than clearing all entries when windows get small.
func (h *histogram) reset(r region) {
	for _, id := range h.x[r.smin:r.smax] {
		h.countX[id] = 0
		h.head[id] = -1
	}
	for _, id := range h.y[r.tmin:r.tmax] {
		h.countY[id] = 0
	}
}

// findAnchor returns the best anchor in r. If there's none, the weight of the returned anchor is 0
// and shared reports whether x and y have any element in common.
func (h *histogram) findAnchor(r region) (best anchor, shared bool) {
	x, y := h.x, h.y
	for t := r.tmin; t < r.tmax; {
		id := y[t]
		cx := h.countX[id]
		if cx == 0 {
			t++
			continue
		}
		shared = true
		if cx+h.countY[id] > maxChainLen {
			t++
			continue
		}

		tnext := t + 1
		for s := h.head[id]; s >= 0; s = h.next[s] {
			a := anchor{s, s + 1, t, t + 1, h.weight(id)}
			for a.s0 > r.smin && a.t0 > r.tmin && x[a.s0-1] == y[a.t0-1] {
				a.s0--
				a.t0--
				a.weight = min(a.weight, h.weight(x[a.s0]))
			}
			for a.s1 < r.smax && a.t1 < r.tmax && x[a.s1] == y[a.t1] {
				a.weight = min(a.weight, h.weight(x[a.s1]))
				a.s1++
				a.t1++
			}
			if best.weight == 0 || a.better(best) {
				best = a
			}
			// Every element of y covered by this run would only find the same run again on this
			// diagonal.
			tnext = max(tnext, a.t1)
		}
		t = tnext
	}
	return best, shared
}

// weight returns the combined number of occurrences of id.
func (h *histogram) weight(id int) int {
	return h.countX[id] + h.countY[id]
}

func (h *histogram) unmatched(r region) {
	for s := r.smin; s < r.smax; s++ {
		h.rx[s] = true
	}
	for t := r.tmin; t < r.tmax; t++ {
		h.ry[t] = true
	}
}
