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

// Package intern maps the elements of two inputs to dense integer IDs such that two elements
// have the same ID if and only if they are equivalent. The matching engines compare IDs only and
// never call back into user code.
//
// IDs are assigned in order of first appearance, first in x and then in y, starting at 0. The
// first element of an equivalence class is its representative and every later element is
// compared against representatives only.
//
// Three strategies are provided, in decreasing order of performance:
//
//   - [Comparable] uses Go's native equality via a map.
//   - [Hashed] buckets representatives by a user provided hash and only calls the equality
//     function for elements in the same bucket.
//   - [Scan] compares every element against every representative, O(N*K) where K is the number
//     of equivalence classes.
//
// For [Hashed], it's assumed that eq(a, b) implies hash(a) == hash(b). This is not verified. If
// the assumption is violated, equivalent elements may receive different IDs. The resulting diff
// is still valid, but it may not be minimal.
package intern

// Comparable assigns IDs to the elements in x and y using ==. It returns the IDs for x and y
// and the number of distinct IDs.
func Comparable[T comparable](x, y []T) (tx, ty []int, n int) {
	tx, ty = alloc(len(x), len(y))
	ids := make(map[T]int, len(x))
	for i, e := range x {
		id, ok := ids[e]
		if !ok {
			id = len(ids)
			ids[e] = id
		}
		tx[i] = id
	}
	for i, e := range y {
		id, ok := ids[e]
		if !ok {
			id = len(ids)
			ids[e] = id
		}
		ty[i] = id
	}
	return tx, ty, len(ids)
}

// Hashed assigns IDs to the elements in x and y using hash to bucket elements and eq to
// compare elements within a bucket.
//
// The first error returned by eq or hash stops the assignment and is returned unchanged.
func Hashed[T any](x, y []T, eq func(a, b T) (bool, error), hash func(T) (uint64, error)) (tx, ty []int, n int, err error) {
	tx, ty = alloc(len(x), len(y))
	h := hashed[T]{
		eq:    eq,
		hash:  hash,
		heads: make(map[uint64]int, len(x)),
	}
	for i, e := range x {
		if tx[i], err = h.id(e); err != nil {
			return nil, nil, 0, err
		}
	}
	for i, e := range y {
		if ty[i], err = h.id(e); err != nil {
			return nil, nil, 0, err
		}
	}
	return tx, ty, len(h.reps), nil
}

type hashed[T any] struct {
	eq   func(a, b T) (bool, error)
	hash func(T) (uint64, error)

	// Representatives with the same hash form a chain: heads holds the most recent ID for a
	// hash and next[id] the ID before it, or -1.
	heads map[uint64]int
	next  []int
	reps  []T
}

func (h *hashed[T]) id(e T) (int, error) {
	hv, err := h.hash(e)
	if err != nil {
		return 0, err
	}
	head, ok := h.heads[hv]
	if ok {
		for id := head; id >= 0; id = h.next[id] {
			same, err := h.eq(e, h.reps[id])
			if err != nil {
				return 0, err
			}
			if same {
				return id, nil
			}
		}
	} else {
		head = -1
	}
	id := len(h.reps)
	h.reps = append(h.reps, e)
	h.next = append(h.next, head)
	h.heads[hv] = id
	return id, nil
}

// Scan assigns IDs to the elements in x and y using eq only.
//
// Every element is compared against the representatives found so far, the runtime is therefore
// O((N+M)*K) where K is the number of distinct elements. The first error returned by eq stops the
// assignment and is returned unchanged.
func Scan[T any](x, y []T, eq func(a, b T) (bool, error)) (tx, ty []int, n int, err error) {
	tx, ty = alloc(len(x), len(y))
	var reps []T
	id := func(e T) (int, error) {
		for i, rep := range reps {
			same, err := eq(e, rep)
			if err != nil {
				return 0, err
			}
			if same {
				return i, nil
			}
		}
		reps = append(reps, e)
		return len(reps) - 1, nil
	}
	for i, e := range x {
		if tx[i], err = id(e); err != nil {
			return nil, nil, 0, err
		}
	}
	for i, e := range y {
		if ty[i], err = id(e); err != nil {
			return nil, nil, 0, err
		}
	}
	return tx, ty, len(reps), nil
}

// alloc allocates the ID slices for both inputs with a single allocation.
func alloc(n, m int) (tx, ty []int) {
	buf := make([]int, n+m)
	return buf[:n:n], buf[n:]
}
