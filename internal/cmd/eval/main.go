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

// eval validates the diff algorithms against a corpus of text pairs. For every pair and algorithm
// it checks that the deltas are well formed, that applying them reproduces the second text, and
// compares the number of changed lines with a baseline implementation.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := defaultConfig()
	var configFile string

	cmd := &cobra.Command{
		Use:          "eval [flags] [corpus files...]",
		Short:        "Validate the diff algorithms against a corpus",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configFile != "" {
				if err := cfg.load(configFile, cmd.Flags()); err != nil {
					return err
				}
			}

			level := slog.LevelInfo
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			cases, err := readCorpus(args)
			if err != nil {
				return err
			}
			cases = append(cases, randomCases(cfg.Random, cfg.Seed)...)

			rep, runErr := run(cmd.Context(), logger, cfg, cases)
			if rep != nil && cfg.Report != "" {
				if err := writeReport(cfg.Report, rep); err != nil {
					return err
				}
			}
			return runErr
		},
	}
	cfg.register(cmd.Flags())
	cmd.Flags().StringVar(&configFile, "config", "", "YAML file with settings, explicitly set flags take precedence")
	return cmd
}
