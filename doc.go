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

// Package seqdiff compares two sequences and reports their differences as position addressed
// deltas.
//
// A [Delta] describes a maximal block of elements without any match in between: an [Insert], a
// [Delete], or a [Change] that replaces elements of the source with elements of the target.
// Two deltas are always separated by at least one matching element. The elements in a delta are
// subslices of the inputs, never copies.
//
// The main function is [Diff] for comparable element types. [DiffFunc], [DiffHashFunc],
// [DiffEqual], and [DiffEquivalence] support types with a custom notion of equivalence. [Apply]
// applies deltas to a sequence.
//
// By default, the histogram algorithm is used to align the inputs. It anchors the alignment on the
// rarest elements shared by both inputs and produces intuitive results for inputs with a lot of
// repetition (e.g., source code). Use [Myers] to find a shortest edit script instead.
//
// Performance: The runtime of the histogram algorithm is roughly linear for inputs with few
// repetitions and degrades towards O(N^2) for highly repetitive inputs. Myers' algorithm runs in
// O(N^1.5 log N) time with its heuristics and in O(ND) time with [Minimal], where N = len(x) +
// len(y) and D is the number of differences. Both use O(N) space.
//
// All functions are safe for concurrent use, as long as the inputs are not modified during a call.
//
// Note: For a line-by-line diff of text, please see [znkr.io/seqdiff/textdiff].
//
// [znkr.io/seqdiff/textdiff]: https://pkg.go.dev/znkr.io/seqdiff/textdiff
package seqdiff
