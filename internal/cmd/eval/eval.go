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
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"cloudeng.io/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/txtar"
	"gopkg.in/yaml.v3"
	"znkr.io/diff"
	difftext "znkr.io/diff/textdiff"
	"znkr.io/seqdiff"
	"znkr.io/seqdiff/internal/deltacheck"
	"znkr.io/seqdiff/textdiff"
)

// evalCase is a pair of texts from the corpus.
type evalCase struct {
	name string
	x, y string
}

// result is the outcome of evaluating one case with one variant.
type result struct {
	Case     string `yaml:"case"`
	Variant  string `yaml:"variant"`
	N        int    `yaml:"n"`
	M        int    `yaml:"m"`
	Deltas   int    `yaml:"deltas"`
	Changed  int    `yaml:"changed_lines"`
	Baseline int    `yaml:"baseline_changed_lines"`
	Duration int64  `yaml:"duration_ns"`
	Error    string `yaml:"error,omitempty"`
}

type report struct {
	Cases    int      `yaml:"cases"`
	Failures int      `yaml:"failures"`
	Results  []result `yaml:"results"`
}

// readCorpus reads txtar archives that each contain the files x and y.
func readCorpus(files []string) ([]evalCase, error) {
	var out []evalCase
	for _, file := range files {
		ar, err := txtar.ParseFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading corpus: %v", err)
		}
		c := evalCase{name: filepath.Base(file)}
		var found int
		for _, f := range ar.Files {
			switch f.Name {
			case "x":
				c.x = string(f.Data)
				found |= 1
			case "y":
				c.y = string(f.Data)
				found |= 2
			}
		}
		if found != 3 {
			return nil, fmt.Errorf("corpus file %s: must contain the files x and y", file)
		}
		out = append(out, c)
	}
	return out, nil
}

// randomCases generates n cases with a small vocabulary of lines, to get a lot of repetition.
func randomCases(n int, seed uint64) []evalCase {
	var s [32]byte
	copy(s[:], strconv.FormatUint(seed, 16))
	rng := rand.New(rand.NewChaCha8(s))
	vocab := []string{"{\n", "}\n", "\n", "return nil\n", "if err != nil {\n", "x++\n", "y--\n"}
	text := func(n int) string {
		var sb strings.Builder
		for range n {
			if rng.IntN(4) == 0 {
				fmt.Fprintf(&sb, "line %d\n", rng.IntN(100))
			} else {
				sb.WriteString(vocab[rng.IntN(len(vocab))])
			}
		}
		return sb.String()
	}
	out := make([]evalCase, n)
	for i := range out {
		out[i] = evalCase{
			name: fmt.Sprintf("random-%d", i),
			x:    text(rng.IntN(200)),
			y:    text(rng.IntN(200)),
		}
	}
	return out
}

// evaluate diffs c with v and validates the result.
func evaluate(c evalCase, v variant) (result, error) {
	xlines, ylines := textdiff.Lines(c.x), textdiff.Lines(c.y)
	res := result{
		Case:    c.name,
		Variant: v.name,
		N:       len(xlines),
		M:       len(ylines),
	}

	start := time.Now()
	deltas := seqdiff.Diff(xlines, ylines, v.opts...)
	res.Duration = time.Since(start).Nanoseconds()
	res.Deltas = len(deltas)
	for _, d := range deltas {
		res.Changed += len(d.Source.Elements) + len(d.Target.Elements)
	}
	for _, edit := range difftext.Edits(c.x, c.y) {
		if edit.Op != diff.Match {
			res.Baseline++
		}
	}

	if err := deltacheck.Check(xlines, ylines, deltas, func(a, b string) bool { return a == b }); err != nil {
		return res, err
	}
	applied, err := textdiff.Apply(c.x, textdiff.Deltas(c.x, c.y, v.opts...))
	if err != nil {
		return res, err
	}
	if applied != c.y {
		return res, fmt.Errorf("applying deltas doesn't reproduce y")
	}
	return res, nil
}

// run evaluates all cases with all variants. It returns an error if any evaluation failed.
func run(ctx context.Context, logger *slog.Logger, cfg config, cases []evalCase) (*report, error) {
	variants, err := cfg.variants()
	if err != nil {
		return nil, err
	}

	type job struct {
		c evalCase
		v variant
	}
	var jobs []job
	for _, c := range cases {
		for _, v := range variants {
			jobs = append(jobs, job{c, v})
		}
	}

	results := make([]result, len(jobs))
	var errs errors.M
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Parallel)
	for i, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := evaluate(j.c, j.v)
			if err != nil {
				res.Error = err.Error()
				errs.Append(fmt.Errorf("%s (%s): %w", j.c.name, j.v.name, err))
				logger.Error("evaluation failed", "case", j.c.name, "algorithm", j.v.name, "err", err)
			} else {
				logger.Debug("evaluated", "case", j.c.name, "algorithm", j.v.name, "deltas", res.Deltas, "changed", res.Changed, "baseline", res.Baseline)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rep := &report{
		Cases:   len(cases),
		Results: results,
	}
	for _, r := range results {
		if r.Error != "" {
			rep.Failures++
		}
	}
	logger.Info("evaluation done", "cases", len(cases), "variants", len(variants), "failures", rep.Failures)
	return rep, errs.Err()
}

// writeReport writes rep as YAML to path.
func writeReport(path string, rep *report) error {
	slices.SortStableFunc(rep.Results, func(a, b result) int {
		return strings.Compare(a.Case, b.Case)
	})
	data, err := yaml.Marshal(rep)
	if err != nil {
		return fmt.Errorf("encoding report: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %v", err)
	}
	return nil
}
