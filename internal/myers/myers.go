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

package myers

import (
	"math"
)

// Lower bound of the cost before the TOO_EXPENSIVE heuristic is applied. Only large inputs with
// many differences reach it.
const minCostLimit = 4096

// GOOD_DIAGONAL heuristic parameters.
const (
	goodDiagMinLen    = 20  // A diagonal needs at least this many matches to be accepted.
	goodDiagCostLimit = 256 // Only applied once the cost exceeds this number.
	goodDiagMagic     = 4   // Minimal progress per unit of cost.
)

// Diff aligns x[smin:smax] with y[tmin:tmax] and marks every element in the windows that is not
// part of the alignment in rx and ry. Elements outside of the windows are left untouched.
//
// If minimal is set, the cost heuristics are disabled and the result is a shortest edit script.
func Diff(rx, ry []bool, x, y []int, smin, smax, tmin, tmax int, minimal bool) {
	// Strip common prefix and suffix.
	for smin < smax && tmin < tmax && x[smin] == y[tmin] {
		smin++
		tmin++
	}
	for smax > smin && tmax > tmin && x[smax-1] == y[tmax-1] {
		smax--
		tmax--
	}
	if smin == smax || tmin == tmax {
		for s := smin; s < smax; s++ {
			rx[s] = true
		}
		for t := tmin; t < tmax; t++ {
			ry[t] = true
		}
		return
	}

	// Reduce the problem size by dropping all elements that only appear in one of the windows.
	// Those are always deletions or insertions respectively. In practice, large diffs have many
	// of those.
	const inX, inY = 1, 2
	seen := make(map[int]uint8, smax-smin)
	for _, id := range x[smin:smax] {
		seen[id] |= inX
	}
	for _, id := range y[tmin:tmax] {
		seen[id] |= inY
	}
	n, m := smax-smin, tmax-tmin
	buf := make([]int, 2*(n+m))
	var x0, y0, xidx, yidx []int
	x0, buf = buf[:0:n], buf[n:]
	xidx, buf = buf[:0:n], buf[n:]
	y0, buf = buf[:0:m], buf[m:]
	yidx, buf = buf[:0:m], buf[m:]
	if len(buf) != 0 && cap(buf) != 0 {
		panic("something went wrong during buffer assignments")
	}
	for s := smin; s < smax; s++ {
		if seen[x[s]] == inX|inY {
			x0 = append(x0, x[s])
			xidx = append(xidx, s)
		} else {
			rx[s] = true
		}
	}
	for t := tmin; t < tmax; t++ {
		if seen[y[t]] == inX|inY {
			y0 = append(y0, y[t])
			yidx = append(yidx, t)
		} else {
			ry[t] = true
		}
	}

	var mm matcher
	mm.rx, mm.ry = rx, ry
	mm.xidx, mm.yidx = xidx, yidx
	smin0, smax0, tmin0, tmax0 := mm.init(x0, y0)
	mm.compare(smin0, smax0, tmin0, tmax0, minimal)
}

type matcher struct {
	// Inputs to compare.
	x, y []int

	// v-arrays for forwards and backwards iteration respectively. A v-array stores the furthest
	// reaching endpoint of a d-path in diagonal k in v[v0+k]. Only the s-coordinate is stored,
	// since t = s - k.
	vf, vb []int
	v0     int

	// Limit for the TOO_EXPENSIVE heuristic.
	costLimit int

	// Mapping from s and t to indices in the result vectors.
	xidx, yidx []int

	// Result vectors.
	rx, ry []bool

	// Rectangles that still need to be compared.
	todo []rect
}

// rect is a rectangle of the edit graph that still needs to be compared.
type rect struct {
	smin, smax, tmin, tmax int
	minimal                bool
}

func (m *matcher) init(x, y []int) (smin, smax, tmin, tmax int) {
	smin, tmin = 0, 0
	smax, tmax = len(x), len(y)

	// Strip common prefix.
	for smin < smax && tmin < tmax && x[smin] == y[tmin] {
		smin++
		tmin++
	}

	// Strip common suffix.
	for smax > smin && tmax > tmin && x[smax-1] == y[tmax-1] {
		smax--
		tmax--
	}

	diagonals := (smax - smin) + (tmax - tmin)
	vlen := 2*diagonals + 3    // +1 for the middle point and +2 for the borders
	buf := make([]int, 2*vlen) // vf and vb share a single allocation

	m.x = x
	m.y = y
	m.vf = buf[:vlen]
	m.vb = buf[vlen:]
	m.v0 = diagonals + 1

	// The cost limit is the approximate square root of the number of diagonals, but at least
	// minCostLimit.
	costLimit := 1
	for i := diagonals; i != 0; i >>= 2 {
		costLimit <<= 1
	}
	m.costLimit = max(minCostLimit, costLimit)
	return
}

// compare finds a path from (smin, tmin) to (smax, tmax) and marks all elements not on a diagonal
// of that path. If minimal is set, the path is a shortest path.
//
// Important: x[smin:smax] and y[tmin:tmax] must not have a common prefix or a common suffix.
func (m *matcher) compare(smin, smax, tmin, tmax int, minimal bool) {
	m.todo = append(m.todo[:0], rect{smin, smax, tmin, tmax, minimal})
	for len(m.todo) > 0 {
		r := m.todo[len(m.todo)-1]
		m.todo = m.todo[:len(m.todo)-1]

		switch {
		case r.smin == r.smax:
			// Nothing left in x, everything in y is an insertion.
			for t := r.tmin; t < r.tmax; t++ {
				m.ry[m.yidx[t]] = true
			}
		case r.tmin == r.tmax:
			// Nothing left in y, everything in x is a deletion.
			for s := r.smin; s < r.smax; s++ {
				m.rx[m.xidx[s]] = true
			}
		default:
			// Split the rectangle into (1) a, possibly empty, rectangle before the middle
			// diagonal, (2) the middle diagonal, and (3) a, possibly empty, rectangle after it.
			// Neither (1) nor (3) have a common prefix or suffix.
			s0, s1, t0, t1, min0, min1 := m.split(r.smin, r.smax, r.tmin, r.tmax, r.minimal)
			m.todo = append(m.todo,
				rect{s1, r.smax, t1, r.tmax, min1},
				rect{r.smin, s0, r.tmin, t0, min0},
			)
		}
	}
}

// split finds the endpoints of a, potentially empty, middle diagonal of a path from (smin, tmin)
// to (smax, tmax). It also reports whether the rectangles before and after that diagonal need to be
// compared without heuristics. That's the case for both after an optimal split was found and for
// the side of a heuristic split that was searched to completion.
//
// Important: x[smin:smax] and y[tmin:tmax] must not have a common prefix or a common suffix and
// they may not both be empty.
func (m *matcher) split(smin, smax, tmin, tmax int, minimal bool) (s0, s1, t0, t1 int, min0, min1 bool) {
	N, M := smax-smin, tmax-tmin
	x, y := m.x, m.y
	vf, vb := m.vf, m.vb
	v0 := m.v0

	// Bounds for k = s - t.
	kmin, kmax := smin-tmax, smax-tmin

	// Forward and backward searches are centered around different diagonals, but all diagonals
	// are numbered consistently. That way, overlaps can be detected without converting k.
	fmid, bmid := smin-tmin, smax-tmax
	fmin, fmax := fmid, fmid
	bmin, bmax := bmid, bmid

	// An overlap can only happen in the forward search when N-M is odd and only in the backward
	// search when it's even.
	odd := (N-M)%2 != 0

	// There's no common prefix or suffix, so there is no 0-path. We can start with d=1 after
	// initializing the result of the trivial d=0 iteration. There's always a path with
	// d = ⌈(N+M)/2⌉, the loop therefore always terminates.
	vf[v0+fmid] = smin
	vb[v0+bmid] = smax
	for d := 1; ; d++ {
		longestDiag := 0

		// Forward search.
		//
		// Keep k within the edit grid. Since k moves in steps of 2, the bounds are extended
		// when possible and shrunk otherwise. The v-array entry just outside of the bounds is
		// set to a sentinel that makes the borders behave like any other diagonal.
		if fmin > kmin {
			fmin--
			vf[v0+fmin-1] = math.MinInt
		} else {
			fmin++
		}
		if fmax < kmax {
			fmax++
			vf[v0+fmax+1] = math.MinInt
		} else {
			fmax--
		}
		for k := fmin; k <= fmax; k += 2 {
			k0 := k + v0

			// Extend the furthest reaching (d-1)-path from k+1 with a vertical edge or the one
			// from k-1 with a horizontal edge. Ties prefer deletions over insertions.
			var s int
			if vf[k0-1] < vf[k0+1] {
				s = vf[k0+1]
			} else {
				s = vf[k0-1] + 1
			}
			t := s - k

			// Follow the diagonal as far as possible.
			sd, td := s, t
			for s < smax && t < tmax && x[s] == y[t] {
				s++
				t++
			}
			longestDiag = max(longestDiag, s-sd)
			vf[k0] = s

			if odd && bmin <= k && k <= bmax && s >= vb[k0] {
				return sd, s, td, t, true, true
			}
		}

		// Backward search, mirroring the forward search.
		if bmin > kmin {
			bmin--
			vb[v0+bmin-1] = math.MaxInt
		} else {
			bmin++
		}
		if bmax < kmax {
			bmax++
			vb[v0+bmax+1] = math.MaxInt
		} else {
			bmax--
		}
		for k := bmin; k <= bmax; k += 2 {
			k0 := k + v0
			var s int
			if vb[k0-1] < vb[k0+1] {
				s = vb[k0-1]
			} else {
				s = vb[k0+1] - 1
			}
			t := s - k

			sd, td := s, t
			for s > smin && t > tmin && x[s-1] == y[t-1] {
				s--
				t--
			}
			longestDiag = max(longestDiag, sd-s)
			vb[k0] = s

			if !odd && fmin <= k && k <= fmax && s <= vf[k0] {
				return s, sd, t, td, true, true
			}
		}

		if minimal {
			continue
		}

		if longestDiag >= goodDiagMinLen && d >= goodDiagCostLimit {
			if s0, s1, t0, t1, min0, min1, ok := m.goodDiagonal(d, smin, smax, tmin, tmax, fmin, fmax, bmin, bmax); ok {
				return s0, s1, t0, t1, min0, min1
			}
		}

		if d >= m.costLimit {
			return m.tooExpensive(smin, smax, tmin, tmax, fmin, fmax, bmin, bmax)
		}
	}
}

// goodDiagonal implements the GOOD_DIAGONAL heuristic: It picks the endpoint of a d-path that made
// the most progress and ends in a long enough diagonal. Diagonals too far from the middle diagonal
// are not considered.
func (m *matcher) goodDiagonal(d, smin, smax, tmin, tmax, fmin, fmax, bmin, bmax int) (s0, s1, t0, t1 int, min0, min1, ok bool) {
	vf, vb, v0 := m.vf, m.vb, m.v0
	fmid, bmid := smin-tmin, smax-tmax
	best := 0
	for k := fmin; k <= fmax; k += 2 {
		s := vf[k+v0]
		t := s - k
		if s < smin || smax <= s || t < tmin || tmax <= t {
			continue
		}
		v := (s - smin) + (t - tmin) - max(fmid-d, d-fmid)
		if v <= goodDiagMagic*d || v < best {
			continue
		}
		if diag := m.forwardDiagonal(k); diag >= goodDiagMinLen {
			best = v
			s0, s1, t0, t1 = s-diag, s, t-diag, t
			min0, min1 = true, false
			ok = true
		}
	}
	for k := bmin; k <= bmax; k += 2 {
		s := vb[k+v0]
		t := s - k
		if s < smin || smax <= s || t < tmin || tmax <= t {
			continue
		}
		v := (smax - s) + (tmax - t) - max(bmid-d, d-bmid)
		if v <= goodDiagMagic*d || v < best {
			continue
		}
		if diag := m.backwardDiagonal(k); diag >= goodDiagMinLen {
			best = v
			s0, s1, t0, t1 = s, s+diag, t, t+diag
			min0, min1 = false, true
			ok = true
		}
	}
	return
}

// tooExpensive implements the TOO_EXPENSIVE heuristic: It uses the furthest reaching forward or
// backward path (whatever made more progress) to split the input.
func (m *matcher) tooExpensive(smin, smax, tmin, tmax, fmin, fmax, bmin, bmax int) (s0, s1, t0, t1 int, min0, min1 bool) {
	vf, vb, v0 := m.vf, m.vb, m.v0

	// Endpoint of the furthest reaching forward d-path that maximizes s+t.
	fbest, fbestk := math.MinInt, math.MinInt
	for k := fmin; k <= fmax; k += 2 {
		s := vf[k+v0]
		t := s - k
		if smin <= s && s < smax && tmin <= t && t < tmax && fbest < s+t {
			fbest = s + t
			fbestk = k
		}
	}

	// Endpoint of the furthest reaching backward d-path that minimizes s+t.
	bbest, bbestk := math.MaxInt, math.MaxInt
	for k := bmin; k <= bmax; k += 2 {
		s := vb[k+v0]
		t := s - k
		if smin <= s && s < smax && tmin <= t && t < tmax && s+t < bbest {
			bbest = s + t
			bbestk = k
		}
	}

	switch {
	case fbest != math.MinInt && (smax+tmax)-bbest < fbest-(smin+tmin):
		k := fbestk
		s := vf[k+v0]
		t := s - k
		diag := m.forwardDiagonal(k)
		return s - diag, s, t - diag, t, true, false
	case bbest != math.MaxInt:
		k := bbestk
		s := vb[k+v0]
		t := s - k
		diag := m.backwardDiagonal(k)
		return s, s + diag, t, t + diag, false, true
	default:
		panic("no best path found")
	}
}

// forwardDiagonal returns the length of the diagonal at the end of the furthest reaching forward
// path on diagonal k. By construction, that path consists of the path on the previous diagonal,
// followed by one horizontal or vertical edge and the diagonal.
func (m *matcher) forwardDiagonal(k int) int {
	vf, v0 := m.vf, m.v0
	k0 := k + v0
	s := vf[k0]
	t := s - k
	var pk int
	if vf[k0-1] < vf[k0+1] {
		pk = k + 1
	} else {
		pk = k - 1
	}
	ps := vf[pk+v0]
	pt := ps - pk
	return min(s-ps, t-pt)
}

// backwardDiagonal is the backward search equivalent of forwardDiagonal.
func (m *matcher) backwardDiagonal(k int) int {
	vb, v0 := m.vb, m.v0
	k0 := k + v0
	s := vb[k0]
	t := s - k
	var pk int
	if vb[k0-1] < vb[k0+1] {
		pk = k - 1
	} else {
		pk = k + 1
	}
	ps := vb[pk+v0]
	pt := ps - pk
	return min(ps-s, pt-t)
}
