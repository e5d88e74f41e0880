/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Command gs1scan decodes GS1 element strings from barcode scans.
//
//	gs1scan decode ']C10102658960000004' 3103004646
//	gs1scan decode --config gs1scan.toml '0102658960000004<GS>3103004646'
//	gs1scan batch scans.txt --workers 8 --format yaml
//	gs1scan table
package main

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/intel/rsp-sw-toolkit-im-suite-gs1ai"
	"github.com/intel/rsp-sw-toolkit-im-suite-gs1ai/ai"
)

// maxLineLength bounds a single payload in batch mode; 2D codes top out at a
// few kilobytes.
const maxLineLength = 64 * 1024

type app struct {
	configPath string
	format     string
	workers    int
	verbose    bool

	cfg     Config
	logger  *zap.Logger
	decoder *gs1ai.Decoder
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:          "gs1scan",
		Short:        "Decode GS1 Application Identifier barcode payloads",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "TOML config file")
	root.PersistentFlags().StringVarP(&a.format, "format", "f", "", "Output format: json or yaml (default from config, else json)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	decodeCmd := &cobra.Command{
		Use:   "decode <payload>...",
		Short: "Decode each argument",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docs := make([]document, len(args))
			for i, arg := range args {
				docs[i] = newDocument(arg, a.decoder.Decode(arg), a.cfg)
			}
			return writeDocuments(cmd.OutOrStdout(), a.cfg.Format, docs)
		},
	}

	batchCmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "Decode each line of a file, or stdin, concurrently",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return errors.Wrap(err, "failed to open input")
				}
				defer f.Close()
				in = f
			}
			return a.batch(cmd.Context(), in, cmd.OutOrStdout())
		},
	}
	batchCmd.Flags().IntVarP(&a.workers, "workers", "w", 0, "Concurrent decoders (default from config, else number of CPUs)")

	tableCmd := &cobra.Command{
		Use:   "table",
		Short: "List the supported Application Identifiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeTable(cmd.OutOrStdout(), ai.All())
		},
	}

	root.AddCommand(decodeCmd, batchCmd, tableCmd)
	return root
}

// setup loads the config, applies flag overrides, and builds the logger and
// decoder.
func (a *app) setup(cmd *cobra.Command) error {
	zc := zap.NewProductionConfig()
	if a.verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := zc.Build()
	if err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	a.logger = logger.Named("gs1scan")

	cfg, err := LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = strings.ToLower(a.format)
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = a.workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	opts := append(cfg.DecoderOptions(), gs1ai.WithLogger(a.logger.Named("decoder")))
	a.decoder = gs1ai.NewDecoder(opts...)
	a.logger.Debug("configured",
		zap.String("config", a.configPath),
		zap.String("format", cfg.Format),
		zap.Int("workers", cfg.Workers))
	return nil
}

// batch decodes every non-blank line of in with a bounded number of workers
// and writes the documents in input order.
func (a *app) batch(ctx context.Context, in io.Reader, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var lines []string
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 4096), maxLineLength)
	for scanner.Scan() {
		if line := scanner.Text(); strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "failed to read input")
	}

	docs := make([]document, len(lines))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Workers)
	for i, line := range lines {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r := a.decoder.Decode(line)
			if !r.Complete() {
				a.logger.Debug("partial decode",
					zap.Int("payload", i),
					zap.Strings("skipped", r.Skipped()))
			}
			docs[i] = newDocument(line, r, a.cfg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return errors.Wrap(err, "batch decode interrupted")
	}

	a.logger.Info("batch decoded", zap.Int("payloads", len(docs)))
	return writeDocuments(out, a.cfg.Format, docs)
}
