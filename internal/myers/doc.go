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

// Package myers aligns two sequences of integer IDs with Myers' algorithm.
//
// The implementation uses the linear space variant from section 4.2 of the paper: Instead of
// storing the whole edit graph, a forward and a backward search for the furthest reaching d-paths
// run simultaneously until they overlap. The overlap contains a, possibly empty, sequence of
// matches (a middle diagonal) that splits the problem into two smaller rectangles that are
// processed the same way. Rectangles are kept on an explicit stack.
//
// The edit graph for x = "ABCABBA" and y = "CBABAC" looks like this, a step to the right is a
// deletion, a step down an insertion and a diagonal step a match:
//
//	(0,0)   A   B   C   A   B   B   A
//	    ┌───┬───┬───┬───┬───┬───┬───┐ 0
//	    │   │   │ ╲ │   │   │   │   │
//	 C  ├───┼───┼───┼───┼───┼───┼───┤ 1
//	    │   │ ╲ │   │   │ ╲ │ ╲ │   │
//	 B  ├───┼───┼───┼───┼───┼───┼───┤ 2
//	    │ ╲ │   │   │ ╲ │   │   │ ╲ │
//	 A  ├───┼───┼───┼───┼───┼───┼───┤ 3
//	    │   │ ╲ │   │   │ ╲ │ ╲ │   │
//	 B  ├───┼───┼───┼───┼───┼───┼───┤ 4
//	    │ ╲ │   │   │ ╲ │   │   │ ╲ │
//	 A  ├───┼───┼───┼───┼───┼───┼───┤ 5
//	    │   │   │ ╲ │   │   │   │   │
//	 C  └───┴───┴───┴───┴───┴───┴───┘
//	    0   1   2   3   4   5   6     (7,6)
//
// We use s and t for the coordinates in x and y and k = s - t for diagonals. A d-path is a path
// with exactly d non-diagonal edges. The facts from the paper the code relies on:
//
//   - A d-path ends on a diagonal k in {-d, -d+2, ..., d-2, d}.
//   - The furthest reaching d-path on diagonal k is a furthest reaching (d-1)-path on k-1 or k+1,
//     followed by one horizontal or vertical edge and as many diagonal edges as possible.
//   - The parity of the length of an optimal path equals the parity of N-M, so overlaps only
//     need to be checked in the forward search when N-M is odd and in the backward search
//     otherwise.
//
// Without heuristics, the runtime is O(ND) where N is the sum of the length of both inputs and D is
// the number of differences.
//
// # Heuristics
//
// GOOD_DIAGONAL: Eagerly accept a long diagonal that's not too far from a corner as a split point
// instead of searching for the optimal one.
//
// TOO_EXPENSIVE: A heuristic by Paul Eggert. If the search for an optimal d-path exceeds a cost
// limit (about the square root of the number of diagonals), the search is aborted and the furthest
// reaching d-path that optimizes s + t is used to determine a split. This reduces the time
// complexity to O(N^1.5 log N) but it produces suboptimal diffs.
//
// ## References:
//
// Myers, E.W. An O(ND) difference algorithm and its variations. Algorithmica 1, 251-266 (1986).
// https://doi.org/10.1007/BF01840446
package myers
