// Package manifest reads blob contents described as YAML or JSONC.
//
// A document lists top-level fields:
//
//	fields:
//	  - name: player
//	    type: object
//	    fields:
//	      - {name: id, type: uint32, value: 7}
//	      - {name: label, type: string, value: crate}
//	      - {name: position, type: vector3f, value: [1, 2, 3]}
//	      - {name: tags, type: array, items: uint16, value: [1, 2]}
//
// Type names are the registry names plus "string" and "object" (an alias
// for generic_object). Arrays of fixed types or strings take their items
// as a value list; arrays of composites list them under elements. Names
// are hashed with blob.Name.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/fieldblob/blob"
	"github.com/wippyai/fieldblob/errors"
	"github.com/wippyai/fieldblob/tree"
)

// Document is a parsed manifest.
type Document struct {
	Fields []Field `yaml:"fields"`
}

// Field describes one value. Top-level fields and array elements may
// leave Name empty.
type Field struct {
	Value    any     `yaml:"value"`
	Name     string  `yaml:"name"`
	Type     string  `yaml:"type"`
	Items    string  `yaml:"items"`
	Elements []Field `yaml:"elements"`
	Fields   []Field `yaml:"fields"`
}

// Format selects the input syntax.
type Format int

const (
	YAML Format = iota
	JSONC
)

// FormatOf picks a format from a file extension. Anything other than
// .json and .jsonc is read as YAML.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return JSONC
	}
	return YAML
}

// Parse decodes data. JSONC input has comments and trailing commas
// stripped, after which it is valid YAML.
func Parse(data []byte, format Format) (*Document, error) {
	if format == JSONC {
		data = jsonc.ToJSON(data)
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.ParseFailed("manifest", err)
	}
	return &doc, nil
}

// Load reads and parses the manifest at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Load(fmt.Sprintf("read %s", path), err)
	}
	doc, err := Parse(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Names returns the reverse dictionary of every field name in d.
func (d *Document) Names() map[uint32]string {
	names := make(map[uint32]string)
	var walk func(fs []Field)
	walk = func(fs []Field) {
		for i := range fs {
			if fs[i].Name != "" {
				names[blob.Name(fs[i].Name)] = fs[i].Name
			}
			walk(fs[i].Fields)
			walk(fs[i].Elements)
		}
	}
	walk(d.Fields)
	return names
}

// Nodes converts d into a tree ready for tree.Encode. Two distinct names
// that hash to the same value are rejected.
func (d *Document) Nodes() ([]tree.Node, error) {
	b := builder{seen: make(map[uint32]string)}
	nodes := make([]tree.Node, 0, len(d.Fields))
	for i := range d.Fields {
		n, err := b.node(&d.Fields[i], "")
		if err != nil {
			return nil, errors.PrependPath(err, segment(&d.Fields[i], i))
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

type builder struct {
	seen map[uint32]string
}

func (b *builder) name(s string) (uint32, error) {
	if s == "" {
		return 0, nil
	}
	h := blob.Name(s)
	if prev, ok := b.seen[h]; ok && prev != s {
		return 0, errors.New(errors.PhaseParse, errors.KindInvalidInput).
			Detail("names %q and %q share hash 0x%08x", prev, s, h).
			Build()
	}
	b.seen[h] = s
	return h, nil
}

// node converts f. typ overrides f.Type for array elements.
func (b *builder) node(f *Field, typ string) (tree.Node, error) {
	if typ == "" {
		typ = f.Type
	}
	name, err := b.name(f.Name)
	if err != nil {
		return tree.Node{}, err
	}

	switch typ {
	case "string":
		s, ok := f.Value.(string)
		if !ok && f.Value != nil {
			return tree.Node{}, mismatch(f.Value, typ)
		}
		return tree.String(name, s), nil
	case "object", "generic_object", "runtime_object", "prototype":
		n := tree.Node{Name: name, Type: blob.TypeGenericObject}
		switch typ {
		case "runtime_object":
			n.Type = blob.TypeRuntimeObject
		case "prototype":
			n.Type = blob.TypePrototype
		}
		n.Fields = make([]tree.Node, 0, len(f.Fields))
		for i := range f.Fields {
			var child tree.Node
			if n.Type == blob.TypePrototype {
				child, err = b.protoField(&f.Fields[i])
			} else {
				child, err = b.node(&f.Fields[i], "")
			}
			if err != nil {
				return tree.Node{}, errors.PrependPath(err, segment(&f.Fields[i], i))
			}
			n.Fields = append(n.Fields, child)
		}
		return n, nil
	case "array":
		return b.array(f, name)
	}

	t, ok := blob.ParseType(typ)
	if !ok || !t.IsFixed() || t == blob.TypeNone {
		return tree.Node{}, unknownType(typ)
	}
	v, err := Convert(t, f.Value)
	if err != nil {
		return tree.Node{}, err
	}
	return tree.Scalar(name, t, v), nil
}

func (b *builder) protoField(f *Field) (tree.Node, error) {
	name, err := b.name(f.Name)
	if err != nil {
		return tree.Node{}, err
	}
	t, ok := itemType(f.Type)
	if !ok || t == blob.TypeNone {
		return tree.Node{}, unknownType(f.Type)
	}
	return tree.Node{Name: name, Type: t}, nil
}

func (b *builder) array(f *Field, name uint32) (tree.Node, error) {
	t, ok := itemType(f.Items)
	if !ok || t == blob.TypeNone {
		return tree.Node{}, unknownType(f.Items)
	}
	n := tree.Array(name, t)

	if t.IsFixed() || f.Items == "string" {
		values, ok := f.Value.([]any)
		if !ok && f.Value != nil {
			return tree.Node{}, mismatch(f.Value, "list")
		}
		n.Items = make([]tree.Node, 0, len(values))
		for i, v := range values {
			item, err := b.node(&Field{Value: v}, f.Items)
			if err != nil {
				return tree.Node{}, errors.PrependPath(err, fmt.Sprintf("[%d]", i))
			}
			n.Items = append(n.Items, item)
		}
		return n, nil
	}

	n.Items = make([]tree.Node, 0, len(f.Elements))
	for i := range f.Elements {
		item, err := b.node(&f.Elements[i], f.Items)
		if err != nil {
			return tree.Node{}, errors.PrependPath(err, fmt.Sprintf("[%d]", i))
		}
		n.Items = append(n.Items, item)
	}
	return n, nil
}

// itemType resolves a type name as used for array items and prototype
// fields, where "string" means an array of char.
func itemType(name string) (blob.Type, bool) {
	switch name {
	case "string":
		return blob.TypeArray, true
	case "object":
		return blob.TypeGenericObject, true
	}
	return blob.ParseType(name)
}

func segment(f *Field, i int) string {
	if f.Name != "" {
		return f.Name
	}
	return fmt.Sprintf("[%d]", i)
}

func unknownType(name string) error {
	return errors.New(errors.PhaseParse, errors.KindInvalidInput).
		FieldType(name).
		Detail("unknown type %q", name).
		Build()
}

func mismatch(v any, want string) error {
	return errors.New(errors.PhaseParse, errors.KindTypeMismatch).
		FieldType(want).
		Detail("cannot use %T as %s", v, want).
		Value(v).
		Build()
}
