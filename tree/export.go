package tree

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/wippyai/fieldblob/blob"
)

// encMode uses Core Deterministic Encoding (RFC 8949 §4.2) so the same
// tree always exports to identical bytes.
var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("tree: CBOR encoder initialization failed: " + err.Error())
	}
}

// Export converts nodes into plain Go values: objects become
// map[string]any, arrays []any, strings string, prototypes a map from
// field name to type name. Names found in names are used as keys; others
// are written as 0x%08x. When an object repeats a name the first member
// wins, matching search order.
func Export(nodes []Node, names map[uint32]string) []any {
	out := make([]any, len(nodes))
	for i := range nodes {
		out[i] = exportNode(&nodes[i], names)
	}
	return out
}

func exportNode(n *Node, names map[uint32]string) any {
	switch n.Type {
	case blob.TypeGenericObject, blob.TypeRuntimeObject:
		m := make(map[string]any, len(n.Fields))
		for i := range n.Fields {
			key := Key(n.Fields[i].Name, names)
			if _, dup := m[key]; dup {
				continue
			}
			m[key] = exportNode(&n.Fields[i], names)
		}
		return m
	case blob.TypeArray:
		if n.IsString() {
			return n.Value
		}
		items := make([]any, len(n.Items))
		for i := range n.Items {
			items[i] = exportNode(&n.Items[i], names)
		}
		return items
	case blob.TypePrototype:
		m := make(map[string]string, len(n.Fields))
		for _, f := range n.Fields {
			key := Key(f.Name, names)
			if _, dup := m[key]; !dup {
				m[key] = f.Type.String()
			}
		}
		return m
	}
	return n.Value
}

// Key returns the display name of a hashed field name.
func Key(name uint32, names map[uint32]string) string {
	if s, ok := names[name]; ok {
		return s
	}
	return fmt.Sprintf("0x%08x", name)
}

// ExportJSON writes the exported form of nodes as indented JSON.
func ExportJSON(w io.Writer, nodes []Node, names map[uint32]string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Export(nodes, names))
}

// ExportCBOR returns the exported form of nodes as deterministic CBOR.
func ExportCBOR(nodes []Node, names map[uint32]string) ([]byte, error) {
	return encMode.Marshal(Export(nodes, names))
}
