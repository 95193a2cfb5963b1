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

import "znkr.io/seqdiff/internal/config"

// Option configures the behavior of comparison functions.
type Option = config.Option

// ErrUnknownAlgorithm is returned (wrapped) by [ParseAlgorithm] for unsupported names.
var ErrUnknownAlgorithm = config.ErrUnknownAlgorithm

// Histogram selects the histogram algorithm. This is the default.
//
// The histogram algorithm anchors the alignment on the rarest elements that appear in both inputs
// and repeats the search around every anchor. Rare elements are almost always true alignment
// points, so repeated boilerplate (blank lines, closing braces) doesn't derail the result. For
// regions where every shared element is too frequent to be a good anchor, it falls back to Myers'
// algorithm.
func Histogram() Option {
	return func(cfg *config.Config) {
		cfg.Algorithm = config.Histogram
	}
}

// Myers selects Myers' algorithm, which finds a shortest edit script.
//
// By default, heuristics are used to limit the cost for large inputs with many differences, use
// [Minimal] to disable them.
func Myers() Option {
	return func(cfg *config.Config) {
		cfg.Algorithm = config.Myers
	}
}

// Minimal disables the cost heuristics of Myers' algorithm, both when selected with [Myers] and
// when the histogram algorithm falls back to it.
//
// With this option, the runtime of Myers' algorithm is O(ND) where N = len(x) + len(y), and D is
// the number of differences between x and y.
func Minimal() Option {
	return func(cfg *config.Config) {
		cfg.Minimal = true
	}
}

// ParseAlgorithm returns the option that selects the algorithm called name. Names are case
// insensitive, the supported names are "histogram" and "myers". For any other name, the error
// wraps [ErrUnknownAlgorithm].
func ParseAlgorithm(name string) (Option, error) {
	algo, err := config.ParseAlgorithm(name)
	if err != nil {
		return nil, err
	}
	return func(cfg *config.Config) {
		cfg.Algorithm = algo
	}, nil
}
