package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wippyai/fieldblob/blob"
)

func runOptimize(args []string) error {
	var (
		opts    common
		suffix  string
		inPlace bool
		jobs    int
	)
	fs := newFlagSet("optimize")
	opts.addFlags(fs)
	fs.StringVar(&suffix, "suffix", ".opt", "suffix appended to each output file")
	fs.BoolVar(&inPlace, "in-place", false, "overwrite the input files")
	fs.IntVarP(&jobs, "jobs", "j", 4, "files processed concurrently")
	if err := opts.parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("usage: blobtool optimize [flags] <file>...")
	}

	c, err := opts.codec()
	if err != nil {
		return err
	}

	g, _ := errgroup.WithContext(context.Background())
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for _, name := range fs.Args() {
		out := name + suffix
		if inPlace {
			out = name
		}
		g.Go(func() error {
			return optimizeFile(c, opts.logger, name, out)
		})
	}
	return g.Wait()
}

// optimizeFile converts one file. Every call works on its own buffers.
func optimizeFile(c *blob.Codec, logger *zap.Logger, in, out string) error {
	src, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	dst, err := c.Optimized(src)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	if err := os.WriteFile(out, dst, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	logger.Info("optimized", zap.String("input", in), zap.String("output", out), zap.Int("bytes", len(dst)))
	return nil
}
