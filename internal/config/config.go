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

// Package config provides shared configuration mechanisms for packages in this module.
//
// This package is an implementation detail, the configuration surface for users is provided via
// seqdiff.Option.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Algorithm selects the matching engine used to align the inputs.
type Algorithm int

const (
	// Anchor on the rarest shared elements and recurse around them.
	Histogram Algorithm = iota

	// Find a shortest edit script using Myers' algorithm.
	Myers
)

func (a Algorithm) String() string {
	switch a {
	case Histogram:
		return "histogram"
	case Myers:
		return "myers"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// ErrUnknownAlgorithm is returned by [ParseAlgorithm] for names that don't denote an algorithm.
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// ParseAlgorithm returns the algorithm with the given name. Names are case insensitive.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(name) {
	case "histogram":
		return Histogram, nil
	case "myers":
		return Myers, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

// Config collects all configurable parameters for comparison functions in this module.
type Config struct {
	// Matching engine.
	Algorithm Algorithm

	// If set, Myers' algorithm (also when used as a fallback by the histogram engine) searches
	// for a minimal diff irrespective of the cost.
	Minimal bool
}

// Default is the default configuration.
var Default = Config{
	Algorithm: Histogram,
	Minimal:   false,
}

// Option is the mechanism used to expose the configuration to users.
type Option func(*Config)

// FromOptions creates a configuration from a set of options. Later options override earlier ones.
func FromOptions(opts []Option) Config {
	cfg := Default
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}
