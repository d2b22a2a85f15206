package main

import (
	"fmt"
	"os"

	"github.com/wippyai/fieldblob/blob"
	"github.com/wippyai/fieldblob/tree"
	"github.com/wippyai/fieldblob/witschema"
)

func runSchema(args []string) error {
	var (
		opts      common
		namesPath string
	)
	fs := newFlagSet("schema")
	opts.addFlags(fs)
	fs.StringVar(&namesPath, "names", "", "manifest whose field names label the records")
	if err := opts.parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: blobtool schema [flags] <file>")
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

	calc := witschema.NewCalculator()
	found := 0
	var visit func(label string, n *tree.Node) error
	visit = func(label string, n *tree.Node) error {
		switch n.Type {
		case blob.TypePrototype:
			fields := make([]blob.PrototypeField, len(n.Fields))
			for i, f := range n.Fields {
				fields[i] = blob.PrototypeField{Name: f.Name, Type: f.Type}
			}
			td, err := witschema.Record(label, fields, witschema.Names(names))
			if err != nil {
				return err
			}
			text, err := witschema.Render(td)
			if err != nil {
				return err
			}
			info := calc.Calculate(td)
			fmt.Fprintf(stdout, "// size %d, align %d\n%s\n", info.Size, info.Align, text)
			found++
		case blob.TypeGenericObject, blob.TypeRuntimeObject:
			for i := range n.Fields {
				if err := visit(tree.Key(n.Fields[i].Name, names), &n.Fields[i]); err != nil {
					return err
				}
			}
		case blob.TypeArray:
			for i := range n.Items {
				if err := visit(fmt.Sprintf("%s-%d", label, i), &n.Items[i]); err != nil {
					return err
				}
			}
		}
		return nil
	}
	for i := range nodes {
		if err := visit(fmt.Sprintf("prototype-%d", i), &nodes[i]); err != nil {
			return err
		}
	}
	if found == 0 {
		fmt.Fprintf(os.Stderr, "no prototypes in %s\n", fs.Arg(0))
	}
	return nil
}
