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

// Package impl drives the comparison of two sequences of interned IDs.
package impl

import (
	"fmt"

	"znkr.io/seqdiff/internal/config"
	"znkr.io/seqdiff/internal/histogram"
	"znkr.io/seqdiff/internal/myers"
	"znkr.io/seqdiff/internal/rvecs"
)

// Diff aligns x and y and returns the result vectors. All IDs in x and y must be in [0, n).
func Diff(x, y []int, n int, cfg config.Config) (rx, ry []bool) {
	rx, ry = rvecs.Make(x, y)

	smin, smax, tmin, tmax := findChangeBounds(x, y)
	if handleTrivialBounds(rx, ry, smin, smax, tmin, tmax) {
		return
	}

	switch cfg.Algorithm {
	case config.Histogram:
		histogram.Diff(rx, ry, x, y, n, smin, smax, tmin, tmax, cfg.Minimal)
	case config.Myers:
		myers.Diff(rx, ry, x, y, smin, smax, tmin, tmax, cfg.Minimal)
	default:
		panic(fmt.Sprintf("unknown algorithm: %v", cfg.Algorithm))
	}

	return rx, ry
}

// findChangeBounds returns the upper and lower bounds for the changed portion of the inputs.
func findChangeBounds(x, y []int) (smin, smax, tmin, tmax int) {
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

	return
}

// handleTrivialBounds handles bounds where at least one side is empty. It returns true if the
// bounds were trivial.
func handleTrivialBounds(rx, ry []bool, smin, smax, tmin, tmax int) bool {
	switch {
	case smin != smax && tmin == tmax:
		for s := smin; s < smax; s++ {
			rx[s] = true
		}
		return true
	case smin == smax && tmin != tmax:
		for t := tmin; t < tmax; t++ {
			ry[t] = true
		}
		return true
	case smin == smax && tmin == tmax:
		return true
	default:
		return false
	}
}
