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

package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
	"znkr.io/seqdiff"
)

// config holds the settings of an evaluation run. It can be read from a YAML file, flags that are
// set explicitly take precedence.
type config struct {
	Algorithms []string `yaml:"algorithms"`
	Minimal    bool     `yaml:"minimal"`
	Parallel   int      `yaml:"parallel"`
	Random     int      `yaml:"random"`
	Seed       uint64   `yaml:"seed"`
	Report     string   `yaml:"report"`
	Verbose    bool     `yaml:"verbose"`
}

func defaultConfig() config {
	return config{
		Algorithms: []string{"histogram", "myers"},
		Parallel:   runtime.GOMAXPROCS(0),
	}
}

// register adds flags for all settings to fs, using the values in cfg as defaults.
func (cfg *config) register(fs *pflag.FlagSet) {
	fs.StringSliceVar(&cfg.Algorithms, "algorithm", cfg.Algorithms, "algorithms to evaluate")
	fs.BoolVar(&cfg.Minimal, "minimal", cfg.Minimal, "disable the cost heuristics of Myers' algorithm")
	fs.IntVar(&cfg.Parallel, "parallel", cfg.Parallel, "number of evaluations to run in parallel")
	fs.IntVar(&cfg.Random, "random", cfg.Random, "number of random cases to add to the corpus")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "seed for random cases")
	fs.StringVar(&cfg.Report, "report", cfg.Report, "file to write a YAML report to")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "log every evaluated case")
}

// load reads the YAML file at path into cfg. Settings for flags that were set on fs are kept.
func (cfg *config) load(path string, fs *pflag.FlagSet) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %v", err)
	}
	fromFile := *cfg
	if err := yaml.Unmarshal(data, &fromFile); err != nil {
		return fmt.Errorf("parsing config %s: %v", path, err)
	}

	// Restore everything that was set on the command line.
	flags := *cfg
	*cfg = fromFile
	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "algorithm":
			cfg.Algorithms = flags.Algorithms
		case "minimal":
			cfg.Minimal = flags.Minimal
		case "parallel":
			cfg.Parallel = flags.Parallel
		case "random":
			cfg.Random = flags.Random
		case "seed":
			cfg.Seed = flags.Seed
		case "report":
			cfg.Report = flags.Report
		case "verbose":
			cfg.Verbose = flags.Verbose
		}
	})
	return nil
}

// variant is one configuration of the diff under evaluation.
type variant struct {
	name string
	opts []seqdiff.Option
}

// variants validates the configuration and returns the variants to evaluate.
func (cfg *config) variants() ([]variant, error) {
	if len(cfg.Algorithms) == 0 {
		return nil, fmt.Errorf("no algorithm selected")
	}
	if cfg.Parallel < 1 {
		return nil, fmt.Errorf("parallel must be at least 1, got %d", cfg.Parallel)
	}
	if cfg.Random < 0 {
		return nil, fmt.Errorf("random must not be negative, got %d", cfg.Random)
	}
	var out []variant
	for _, name := range cfg.Algorithms {
		opt, err := seqdiff.ParseAlgorithm(name)
		if err != nil {
			return nil, err
		}
		v := variant{name: name, opts: []seqdiff.Option{opt}}
		if cfg.Minimal {
			v.name += "-minimal"
			v.opts = append(v.opts, seqdiff.Minimal())
		}
		out = append(out, v)
	}
	return out, nil
}
