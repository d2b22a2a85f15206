package tree

import (
	"fmt"

	"github.com/wippyai/fieldblob/blob"
)

// Leaf is one scalar reached from the top level.
type Leaf struct {
	Path  []string
	Type  blob.Type
	Value any
}

// Leaves flattens nodes depth first. Object members add a name segment
// and array items an index segment. Strings and prototypes are leaves;
// prototype leaves carry []blob.PrototypeField. Empty objects and arrays
// appear as a leaf with a nil Value so that they survive the flattening.
//
// The result does not depend on which object encoding was used, so a
// buffer and its optimized form yield equal leaves.
func Leaves(nodes []Node) []Leaf {
	var out []Leaf
	for i := range nodes {
		out = appendLeaves(out, []string{fmt.Sprintf("[%d]", i)}, &nodes[i])
	}
	return out
}

func appendLeaves(out []Leaf, path []string, n *Node) []Leaf {
	switch n.Type {
	case blob.TypeGenericObject, blob.TypeRuntimeObject:
		if len(n.Fields) == 0 {
			return append(out, Leaf{Path: path, Type: blob.TypeGenericObject})
		}
		for i := range n.Fields {
			out = appendLeaves(out, extend(path, nameSegment(n.Fields[i].Name)), &n.Fields[i])
		}
		return out

	case blob.TypeArray:
		if n.IsString() {
			return append(out, Leaf{Path: path, Type: n.Type, Value: n.Value})
		}
		if len(n.Items) == 0 {
			return append(out, Leaf{Path: path, Type: n.Type})
		}
		for i := range n.Items {
			out = appendLeaves(out, extend(path, fmt.Sprintf("[%d]", i)), &n.Items[i])
		}
		return out

	case blob.TypePrototype:
		fields := make([]blob.PrototypeField, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = blob.PrototypeField{Name: f.Name, Type: f.Type}
		}
		return append(out, Leaf{Path: path, Type: n.Type, Value: fields})
	}
	return append(out, Leaf{Path: path, Type: n.Type, Value: n.Value})
}

func extend(path []string, seg string) []string {
	p := make([]string, len(path), len(path)+1)
	copy(p, path)
	return append(p, seg)
}
