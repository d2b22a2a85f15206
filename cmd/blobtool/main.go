// blobtool builds, optimizes and inspects field blobs.
//
//	blobtool build [flags] <manifest> -o <out>
//	blobtool optimize [flags] <file>...
//	blobtool dump [flags] <file>
//	blobtool schema [flags] <file>
//	blobtool base64 encode|decode [<file>]
//	blobtool bom [--decode] <file>
package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/fieldblob/blob"
	"github.com/wippyai/fieldblob/manifest"
	"github.com/wippyai/fieldblob/memory"
)

// stdout receives command output.
var stdout io.Writer = os.Stdout

type command struct {
	run     func(args []string) error
	summary string
}

var commands = map[string]command{
	"build":    {runBuild, "encode a YAML or JSONC manifest into a blob"},
	"optimize": {runOptimize, "rewrite generic objects into runtime objects"},
	"dump":     {runDump, "print the fields of a blob"},
	"schema":   {runSchema, "print prototypes as WIT records"},
	"base64":   {runBase64, "encode or decode Base64"},
	"bom":      {runBOM, "detect the text encoding of a file"},
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" {
		printUsage(os.Stderr)
		return nil
	}
	cmd, ok := commands[args[0]]
	if !ok {
		printUsage(os.Stderr)
		return fmt.Errorf("unknown command %q", args[0])
	}
	return cmd.run(args[1:])
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: blobtool <command> [flags] [args]")
	fmt.Fprintln(w)
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-10s %s\n", name, commands[name].summary)
	}
}

// common holds the flags shared by the blob commands.
type common struct {
	order   string
	verbose bool
	logger  *zap.Logger
}

func (c *common) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.order, "order", "le", "byte order: le, be or native")
	fs.BoolVarP(&c.verbose, "verbose", "v", false, "log codec activity to stderr")
}

// parse parses args and sets up logging.
func (c *common) parse(fs *pflag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	logger, err := newLogger(c.verbose)
	if err != nil {
		return err
	}
	c.logger = logger
	blob.SetLogger(logger)
	memory.SetLogger(logger)
	return nil
}

func (c *common) codec() (*blob.Codec, error) {
	var order binary.ByteOrder
	switch strings.ToLower(c.order) {
	case "le", "little":
		order = binary.LittleEndian
	case "be", "big":
		order = binary.BigEndian
	case "native", "":
		order = binary.NativeEndian
	default:
		return nil, fmt.Errorf("unknown byte order %q", c.order)
	}
	return blob.New(blob.Options{Order: order, Logger: c.logger}), nil
}

// newLogger returns a development logger when verbose and a warn-level
// production logger otherwise.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet("blobtool "+name, pflag.ContinueOnError)
	fs.SortFlags = false
	return fs
}

// loadNames reads the reverse name dictionary from a manifest, or
// returns nil when path is empty.
func loadNames(path string) (map[uint32]string, error) {
	if path == "" {
		return nil, nil
	}
	doc, err := manifest.Load(path)
	if err != nil {
		return nil, err
	}
	return doc.Names(), nil
}

// isTerminal reports whether f is an interactive terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// readInput reads the named file, or stdin when name is empty or "-".
func readInput(name string) ([]byte, error) {
	if name == "" || name == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}
