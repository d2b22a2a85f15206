package tree

import (
	"fmt"

	"github.com/wippyai/fieldblob/blob"
	"github.com/wippyai/fieldblob/errors"
)

// Node is one decoded value.
//
// Fixed-size types carry their payload in Value using the Go types
// blob.Codec.Value returns. Arrays set ItemType and either Items or, for
// NUL-terminated CHAR arrays, a string Value. Objects and prototypes list
// their fields in Fields; prototype fields carry only Name and Type.
type Node struct {
	Name     uint32
	Type     blob.Type
	Value    any
	ItemType blob.Type
	Items    []Node
	Fields   []Node
}

// String returns a CHAR array node holding s.
func String(name uint32, s string) Node {
	return Node{Name: name, Type: blob.TypeArray, ItemType: blob.TypeChar, Value: s}
}

// Scalar returns a fixed-size node.
func Scalar(name uint32, t blob.Type, v any) Node {
	return Node{Name: name, Type: t, Value: v}
}

// Object returns a generic object node.
func Object(name uint32, fields ...Node) Node {
	return Node{Name: name, Type: blob.TypeGenericObject, Fields: fields}
}

// Array returns an array node.
func Array(name uint32, itemType blob.Type, items ...Node) Node {
	return Node{Name: name, Type: blob.TypeArray, ItemType: itemType, Items: items}
}

// IsString reports whether n is a CHAR array carried as a Go string.
func (n *Node) IsString() bool {
	if n.Type != blob.TypeArray || n.ItemType != blob.TypeChar {
		return false
	}
	_, ok := n.Value.(string)
	return ok
}

// Size returns the bytes Encode needs for nodes.
func Size(nodes []Node) (uint32, error) {
	total := uint32(0)
	for i := range nodes {
		size, err := dataSize(&nodes[i])
		if err != nil {
			return 0, errors.PrependPath(err, fmt.Sprintf("[%d]", i))
		}
		if total, err = add(total, size, blob.TagSize); err != nil {
			return 0, err
		}
	}
	return total, nil
}

// dataSize returns the untagged size of n.
func dataSize(n *Node) (uint32, error) {
	switch n.Type {
	case blob.TypeArray:
		if n.IsString() {
			return add(blob.ArrayHeaderSize, uint32(len(n.Value.(string))), 1)
		}
		total := uint32(blob.ArrayHeaderSize)
		for i := range n.Items {
			item := &n.Items[i]
			if item.Type != n.ItemType {
				return 0, errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
					Path(fmt.Sprintf("[%d]", i)).
					FieldType(item.Type.String()).
					Detail("array of %s", n.ItemType).
					Build()
			}
			size, err := dataSize(item)
			if err != nil {
				return 0, errors.PrependPath(err, fmt.Sprintf("[%d]", i))
			}
			if total, err = add(total, size, 0); err != nil {
				return 0, err
			}
		}
		return total, nil

	case blob.TypeGenericObject, blob.TypeRuntimeObject:
		perField := uint32(blob.GenericFieldHeaderSize)
		if n.Type == blob.TypeRuntimeObject {
			perField = 8 + blob.RuntimeValueHeaderSize
		}
		total := uint32(blob.GenericHeaderSize)
		for i := range n.Fields {
			size, err := dataSize(&n.Fields[i])
			if err != nil {
				return 0, errors.PrependPath(err, nameSegment(n.Fields[i].Name))
			}
			if total, err = add(total, size, perField); err != nil {
				return 0, err
			}
		}
		return total, nil

	case blob.TypePrototype:
		size, ok := blob.PrototypeSize(uint32(len(n.Fields)))
		if !ok {
			return 0, errors.Overflow(errors.PhaseEncode, nil, "prototype size")
		}
		return size, nil
	}

	if !n.Type.IsFixed() || n.Type == blob.TypeNone {
		return 0, errors.New(errors.PhaseEncode, errors.KindInvalidInput).
			Detail("invalid node type %d", int32(n.Type)).
			Build()
	}
	return n.Type.Size(), nil
}

func add(a, b, c uint32) (uint32, error) {
	sum := uint64(a) + uint64(b) + uint64(c)
	if sum > uint64(^uint32(0)) {
		return 0, errors.Overflow(errors.PhaseEncode, nil, "tree size")
	}
	return uint32(sum), nil
}

func nameSegment(name uint32) string {
	return fmt.Sprintf("name:0x%08x", name)
}
