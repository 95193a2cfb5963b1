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
	"znkr.io/seqdiff/internal/config"
	"znkr.io/seqdiff/internal/impl"
	"znkr.io/seqdiff/internal/intern"
)

// Diff compares the contents of x and y and returns the deltas necessary to convert from one to
// the other.
//
// Every delta is bounded by matching elements or the start and end of the inputs. If x and y are
// identical, the output is nil.
//
// The following options are supported: [Histogram], [Myers], [Minimal]
//
// Important: The output is not guaranteed to be stable and may change with minor version upgrades.
// DO NOT rely on the output being stable.
func Diff[T comparable](x, y []T, opts ...Option) []Delta[T] {
	cfg := config.FromOptions(opts)
	tx, ty, n := intern.Comparable(x, y)
	rx, ry := impl.Diff(tx, ty, n, cfg)
	return deltas(x, y, rx, ry)
}

// DiffFunc compares the contents of x and y using the provided equality comparison and returns the
// deltas necessary to convert from one to the other.
//
// Every element is compared against one representative of every distinct element seen so far.
// This makes DiffFunc quadratic in the number of distinct elements, use [DiffHashFunc] for large
// inputs.
//
// The following options are supported: [Histogram], [Myers], [Minimal]
//
// Important: The output is not guaranteed to be stable and may change with minor version upgrades.
// DO NOT rely on the output being stable.
func DiffFunc[T any](x, y []T, eq func(a, b T) bool, opts ...Option) []Delta[T] {
	out, _ := DiffEquivalence(x, y, Equivalence[T]{Equal: infallible(eq)}, opts...)
	return out
}

// DiffHashFunc compares the contents of x and y using the provided equality comparison and hash
// function and returns the deltas necessary to convert from one to the other.
//
// The hash function must be consistent with eq: eq(a, b) implies hash(a) == hash(b). Only
// elements with equal hashes are compared with eq.
//
// The following options are supported: [Histogram], [Myers], [Minimal]
//
// Important: The output is not guaranteed to be stable and may change with minor version upgrades.
// DO NOT rely on the output being stable.
func DiffHashFunc[T any](x, y []T, eq func(a, b T) bool, hash func(T) uint64, opts ...Option) []Delta[T] {
	e := Equivalence[T]{
		Equal: infallible(eq),
		Hash: func(v T) (uint64, error) {
			return hash(v), nil
		},
	}
	out, _ := DiffEquivalence(x, y, e, opts...)
	return out
}

// Equaler is implemented by types that define their own notion of equivalence.
type Equaler[T any] interface {
	Equal(T) bool
}

// Hasher is implemented by types that provide a hash consistent with their Equal method.
type Hasher interface {
	Hash() uint64
}

// DiffEqual compares the contents of x and y using the Equal method of the elements and returns
// the deltas necessary to convert from one to the other.
//
// If all elements also implement [Hasher], DiffEqual behaves like [DiffHashFunc] and otherwise
// like [DiffFunc].
//
// The following options are supported: [Histogram], [Myers], [Minimal]
//
// Important: The output is not guaranteed to be stable and may change with minor version upgrades.
// DO NOT rely on the output being stable.
func DiffEqual[T Equaler[T]](x, y []T, opts ...Option) []Delta[T] {
	e := Equivalence[T]{
		Equal: func(a, b T) (bool, error) {
			return a.Equal(b), nil
		},
	}
	if hashers(x) && hashers(y) {
		e.Hash = func(v T) (uint64, error) {
			return any(v).(Hasher).Hash(), nil
		}
	}
	out, _ := DiffEquivalence(x, y, e, opts...)
	return out
}

func hashers[T any](in []T) bool {
	for _, v := range in {
		if _, ok := any(v).(Hasher); !ok {
			return false
		}
	}
	return true
}

// Equivalence defines how elements are compared by [DiffEquivalence].
type Equivalence[T any] struct {
	// Equal reports whether a and b are equivalent. It must not be nil.
	Equal func(a, b T) (bool, error)

	// Hash returns a hash of v that's consistent with Equal. If nil, every element is compared
	// against one representative of every distinct element seen so far.
	Hash func(v T) (uint64, error)
}

// DiffEquivalence compares the contents of x and y using e and returns the deltas necessary to
// convert from one to the other.
//
// The first error returned by e.Equal or e.Hash aborts the comparison and is returned without
// modifications. e.Equal is never called for elements with different hashes.
//
// The following options are supported: [Histogram], [Myers], [Minimal]
//
// Important: The output is not guaranteed to be stable and may change with minor version upgrades.
// DO NOT rely on the output being stable.
func DiffEquivalence[T any](x, y []T, e Equivalence[T], opts ...Option) ([]Delta[T], error) {
	if e.Equal == nil {
		panic("seqdiff: Equivalence.Equal must not be nil")
	}
	cfg := config.FromOptions(opts)

	var (
		tx, ty []int
		n      int
		err    error
	)
	if e.Hash != nil {
		tx, ty, n, err = intern.Hashed(x, y, e.Equal, e.Hash)
	} else {
		tx, ty, n, err = intern.Scan(x, y, e.Equal)
	}
	if err != nil {
		return nil, err
	}

	rx, ry := impl.Diff(tx, ty, n, cfg)
	return deltas(x, y, rx, ry), nil
}

func infallible[T any](eq func(a, b T) bool) func(a, b T) (bool, error) {
	return func(a, b T) (bool, error) {
		return eq(a, b), nil
	}
}
