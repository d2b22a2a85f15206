package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/wippyai/fieldblob/manifest"
	"github.com/wippyai/fieldblob/tree"
)

func runBuild(args []string) error {
	var (
		opts     common
		output   string
		optimize bool
	)
	fs := newFlagSet("build")
	opts.addFlags(fs)
	fs.StringVarP(&output, "output", "o", "", "output file (required)")
	fs.BoolVar(&optimize, "optimize", false, "write runtime objects instead of generic objects")
	if err := opts.parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 || output == "" {
		return fmt.Errorf("usage: blobtool build [flags] <manifest> -o <out>")
	}

	c, err := opts.codec()
	if err != nil {
		return err
	}
	doc, err := manifest.Load(fs.Arg(0))
	if err != nil {
		return err
	}
	nodes, err := doc.Nodes()
	if err != nil {
		return fmt.Errorf("%s: %w", fs.Arg(0), err)
	}
	buf, err := tree.Encode(c, nodes)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if optimize {
		if buf, err = c.Optimized(buf); err != nil {
			return fmt.Errorf("optimize: %w", err)
		}
	}
	if err := os.WriteFile(output, buf, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	opts.logger.Info("built blob",
		zap.String("manifest", fs.Arg(0)),
		zap.String("output", output),
		zap.Int("bytes", len(buf)))
	return nil
}
