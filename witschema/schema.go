package witschema

import (
	"fmt"
	"strings"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/fieldblob/blob"
	"github.com/wippyai/fieldblob/errors"
)

// NameFunc returns the source name of a hashed field name, or "" when it
// is unknown.
type NameFunc func(name uint32) string

// Names returns a NameFunc backed by a dictionary.
func Names(dict map[uint32]string) NameFunc {
	return func(name uint32) string { return dict[name] }
}

// TypeOf returns the WIT type used for a field of type t.
func TypeOf(t blob.Type) (wit.Type, error) {
	switch t {
	case blob.TypeBool:
		return wit.Bool{}, nil
	case blob.TypeChar, blob.TypeUint8:
		return wit.U8{}, nil
	case blob.TypeInt8:
		return wit.S8{}, nil
	case blob.TypeInt16:
		return wit.S16{}, nil
	case blob.TypeUint16:
		return wit.U16{}, nil
	case blob.TypeInt32:
		return wit.S32{}, nil
	case blob.TypeUint32:
		return wit.U32{}, nil
	case blob.TypeInt64:
		return wit.S64{}, nil
	case blob.TypeUint64:
		return wit.U64{}, nil
	case blob.TypeFloat32:
		return wit.F32{}, nil
	case blob.TypeFloat64:
		return wit.F64{}, nil
	case blob.TypeNull:
		return &wit.TypeDef{Kind: &wit.Tuple{}}, nil
	case blob.TypeArray, blob.TypeGenericObject, blob.TypeRuntimeObject, blob.TypePrototype:
		return &wit.TypeDef{Kind: &wit.List{Type: wit.U8{}}}, nil
	}
	if t.IsVector() || t.IsMatrix() {
		types := make([]wit.Type, t.Components())
		for i := range types {
			types[i] = wit.F32{}
		}
		return &wit.TypeDef{Kind: &wit.Tuple{Types: types}}, nil
	}
	return nil, errors.Unsupported(errors.PhaseEncode, fmt.Sprintf("WIT type for %s", t))
}

// Record builds a named WIT record from prototype fields. Field names
// come from names when known and fall back to f-<hash>.
func Record(name string, fields []blob.PrototypeField, names NameFunc) (*wit.TypeDef, error) {
	rec := &wit.Record{Fields: make([]wit.Field, 0, len(fields))}
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		typ, err := TypeOf(f.Type)
		if err != nil {
			return nil, errors.PrependPath(err, fmt.Sprintf("name:0x%08x", f.Name))
		}
		id := ""
		if names != nil {
			id = Ident(names(f.Name))
		}
		if id == "" || seen[id] {
			id = fmt.Sprintf("f-%08x", f.Name)
		}
		seen[id] = true
		rec.Fields = append(rec.Fields, wit.Field{Name: id, Type: typ})
	}
	id := Ident(name)
	if id == "" {
		id = "prototype"
	}
	return &wit.TypeDef{Name: &id, Kind: rec}, nil
}

// Ident converts s into a WIT identifier: lower-case words joined by
// hyphens. It returns "" when s has no letters or digits.
func Ident(s string) string {
	var words []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}
	prevLower := false
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			if prevLower {
				flush()
			}
			cur.WriteRune(r + ('a' - 'A'))
			prevLower = false
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			cur.WriteRune(r)
			prevLower = true
		default:
			flush()
			prevLower = false
		}
	}
	flush()
	if len(words) == 0 {
		return ""
	}
	// Words may not start with a digit.
	for i, w := range words {
		if w[0] >= '0' && w[0] <= '9' {
			words[i] = "x" + w
		}
	}
	return strings.Join(words, "-")
}

// TypeString returns the WIT spelling of t.
func TypeString(t wit.Type) string {
	switch v := t.(type) {
	case wit.Bool:
		return "bool"
	case wit.U8:
		return "u8"
	case wit.S8:
		return "s8"
	case wit.U16:
		return "u16"
	case wit.S16:
		return "s16"
	case wit.U32:
		return "u32"
	case wit.S32:
		return "s32"
	case wit.U64:
		return "u64"
	case wit.S64:
		return "s64"
	case wit.F32:
		return "f32"
	case wit.F64:
		return "f64"
	case wit.Char:
		return "char"
	case wit.String:
		return "string"
	case *wit.TypeDef:
		if v.Name != nil {
			return *v.Name
		}
		switch kind := v.Kind.(type) {
		case *wit.List:
			return "list<" + TypeString(kind.Type) + ">"
		case *wit.Tuple:
			parts := make([]string, len(kind.Types))
			for i, elem := range kind.Types {
				parts[i] = TypeString(elem)
			}
			return "tuple<" + strings.Join(parts, ", ") + ">"
		}
		return "typedef"
	default:
		return fmt.Sprintf("%T", t)
	}
}

// Render returns the WIT declaration of a record typedef.
func Render(td *wit.TypeDef) (string, error) {
	rec, ok := td.Kind.(*wit.Record)
	if !ok || td.Name == nil {
		return "", errors.Unsupported(errors.PhaseEncode, "rendering anything but a named record")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "record %s {\n", *td.Name)
	for _, f := range rec.Fields {
		fmt.Fprintf(&b, "    %s: %s,\n", f.Name, TypeString(f.Type))
	}
	b.WriteString("}\n")
	return b.String(), nil
}
