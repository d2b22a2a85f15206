package main

import (
	"fmt"
	"os"

	"github.com/wippyai/fieldblob/tree"
)

func runDump(args []string) error {
	var (
		opts        common
		format      string
		namesPath   string
		color       string
		interactive bool
	)
	fs := newFlagSet("dump")
	opts.addFlags(fs)
	fs.StringVarP(&format, "format", "f", "text", "output format: text, json or cbor")
	fs.StringVar(&namesPath, "names", "", "manifest whose field names label the output")
	fs.StringVar(&color, "color", "auto", "colorize text output: auto, always or never")
	fs.BoolVarP(&interactive, "interactive", "i", false, "browse the blob in a terminal UI")
	if err := opts.parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: blobtool dump [flags] <file>")
	}

	c, err := opts.codec()
	if err != nil {
		return err
	}
	names, err := loadNames(namesPath)
	if err != nil {
		return err
	}
	data, err := readInput(fs.Arg(0))
	if err != nil {
		return err
	}
	nodes, err := tree.Decode(c, data)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	if interactive {
		if !isTerminal(os.Stdout) {
			return fmt.Errorf("interactive mode needs a terminal")
		}
		return runInteractive(fs.Arg(0), nodes, names)
	}

	switch format {
	case "text":
		useColor := color == "always" || (color == "auto" && isTerminal(os.Stdout))
		return tree.Render(stdout, nodes, tree.RenderOptions{Names: names, Color: useColor})
	case "json":
		return tree.ExportJSON(stdout, nodes, names)
	case "cbor":
		out, err := tree.ExportCBOR(nodes, names)
		if err != nil {
			return err
		}
		_, err = stdout.Write(out)
		return err
	}
	return fmt.Errorf("unknown format %q", format)
}
