// Copyright 2025 The go-cryptodiff Authors
// This file is part of the go-cryptodiff library.
//
// The go-cryptodiff library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-cryptodiff library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-cryptodiff library. If not, see <http://www.gnu.org/licenses/>.

// cryptodiff replays fuzz inputs through the differential engine: it decodes
// each input into one cryptographic operation, runs it on every loaded
// library module and aborts with a full report on the first divergence.
package main

import (
	"crypto/sha256"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/davecgh/go-spew/spew"
	"github.com/urfave/cli/v2"

	"github.com/cryptodiff/go-cryptodiff/core"
	"github.com/cryptodiff/go-cryptodiff/datasource"
	"github.com/cryptodiff/go-cryptodiff/log"
	"github.com/cryptodiff/go-cryptodiff/operation"
)

var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	moduleFlag = &cli.StringSliceFlag{
		Name:  "module",
		Usage: "restrict the registry to the named modules (repeatable)",
	}
	reportDirFlag = &cli.StringFlag{
		Name:  "reportdir",
		Usage: "directory receiving CBOR divergence reports",
	}
	verbosityFlag = &cli.StringFlag{
		Name:  "verbosity",
		Usage: "logging level (trace|debug|info|warn|error)",
	}
)

func main() {
	app := &cli.App{
		Name:  "cryptodiff",
		Usage: "differential tester for cryptographic libraries",
		Flags: []cli.Flag{configFlag, moduleFlag, reportDirFlag, verbosityFlag},
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "replay fuzz input files through the engine",
				ArgsUsage: "<file|dir> [...]",
				Action:    runCmd,
			},
			{
				Name:   "kinds",
				Usage:  "list operation kinds and the modules covering each",
				Action: kindsCmd,
			},
			{
				Name:      "decode",
				Usage:     "show the operation an input decodes to, without executing it",
				ArgsUsage: "<file>",
				Action:    decodeCmd,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup merges flags over the config file and applies the logging level.
func setup(ctx *cli.Context) (*Config, error) {
	cfg, err := loadConfig(ctx.String(configFlag.Name))
	if err != nil {
		return nil, err
	}
	if mods := ctx.StringSlice(moduleFlag.Name); len(mods) > 0 {
		cfg.Modules = mods
	}
	if dir := ctx.String(reportDirFlag.Name); dir != "" {
		cfg.ReportDir = dir
	}
	if v := ctx.String(verbosityFlag.Name); v != "" {
		cfg.Verbosity = v
	}
	switch cfg.Verbosity {
	case "trace":
		log.SetVerbosity(log.LevelTrace)
	case "debug":
		log.SetVerbosity(slog.LevelDebug)
	case "", "info":
	case "warn":
		log.SetVerbosity(slog.LevelWarn)
	case "error":
		log.SetVerbosity(slog.LevelError)
	default:
		return nil, fmt.Errorf("unknown verbosity %q", cfg.Verbosity)
	}
	return cfg, nil
}

func runCmd(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return fmt.Errorf("no input files given")
	}
	cfg, err := setup(ctx)
	if err != nil {
		return err
	}
	reg, err := buildRegistry(cfg)
	if err != nil {
		return err
	}
	driver := core.NewDriver(reg)

	inputs, err := collectInputs(ctx.Args().Slice())
	if err != nil {
		return err
	}
	log.Info("replaying inputs", "count", len(inputs), "modules", reg.Len())

	var executed, skipped int
	for _, path := range inputs {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		div, n := driver.Run(data)
		if div != nil {
			return abort(cfg, path, div)
		}
		if n > 0 {
			executed++
		} else {
			skipped++
		}
	}
	log.Info("replay finished", "executed", executed, "skipped", skipped)
	return nil
}

// abort surfaces the divergence and terminates abnormally: the non-zero exit
// is the signal an outer harness keys on.
func abort(cfg *Config, input string, div *core.Divergence) error {
	rep := div.Report()
	log.Error(div.Error(), "input", input)
	if diff := div.Diff(); diff != "" {
		fmt.Fprintln(os.Stderr, diff)
	}
	spew.Fdump(os.Stderr, rep)

	if cfg.ReportDir != "" {
		enc, err := rep.Encode()
		if err != nil {
			return err
		}
		sum := sha256.Sum256(enc)
		path := filepath.Join(cfg.ReportDir, fmt.Sprintf("divergence-%x.cbor", sum[:8]))
		if err := os.WriteFile(path, enc, 0644); err != nil {
			return err
		}
		log.Info("wrote divergence report", "path", path)
	}
	os.Exit(1)
	return nil // unreachable
}

func collectInputs(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if !e.IsDir() {
				out = append(out, filepath.Join(arg, e.Name()))
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

func kindsCmd(ctx *cli.Context) error {
	cfg, err := setup(ctx)
	if err != nil {
		return err
	}
	reg, err := buildRegistry(cfg)
	if err != nil {
		return err
	}
	for _, kind := range operation.Kinds() {
		var names []string
		for _, m := range reg.Capable(kind) {
			names = append(names, m.Name())
		}
		fmt.Printf("%-16s %v\n", kind, names)
	}
	return nil
}

func decodeCmd(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("expected exactly one input file")
	}
	if _, err := setup(ctx); err != nil {
		return err
	}
	data, err := os.ReadFile(ctx.Args().First())
	if err != nil {
		return err
	}
	op, err := operation.Decode(datasource.New(data))
	if err != nil {
		fmt.Println("input does not decode to a complete operation")
		return nil
	}
	fmt.Println(op)
	for i, v := range op.Operands {
		fmt.Printf("  operand %d: %s\n", i, v.Canonical())
	}
	fmt.Printf("  modifier: %d bytes\n", len(op.Modifier))
	return nil
}
