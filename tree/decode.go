package tree

import (
	"fmt"

	"github.com/wippyai/fieldblob/blob"
	"github.com/wippyai/fieldblob/errors"
)

// Decode reads every top-level field of buf into nodes. Generic and
// runtime objects are both accepted and keep their type.
func Decode(c *blob.Codec, buf []byte) ([]Node, error) {
	fields, err := c.Fields(buf)
	if err != nil {
		return nil, err
	}
	nodes := make([]Node, 0, len(fields))
	for i, f := range fields {
		n, err := DecodeField(c, buf, f)
		if err != nil {
			return nil, errors.PrependPath(err, fmt.Sprintf("[%d]", i))
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// DecodeField reads the value f describes.
func DecodeField(c *blob.Codec, buf []byte, f blob.Field) (Node, error) {
	switch f.Type {
	case blob.TypeArray:
		return decodeArray(c, buf, f)
	case blob.TypeGenericObject, blob.TypeRuntimeObject:
		o, err := c.ObjectAt(buf, f)
		if err != nil {
			return Node{}, err
		}
		members, err := o.Members()
		if err != nil {
			return Node{}, err
		}
		n := Node{Type: f.Type, Fields: make([]Node, 0, len(members))}
		for _, m := range members {
			child, err := DecodeField(c, buf, m.Field)
			if err != nil {
				return Node{}, errors.PrependPath(err, nameSegment(m.Name))
			}
			child.Name = m.Name
			n.Fields = append(n.Fields, child)
		}
		return n, nil
	case blob.TypePrototype:
		p, err := c.PrototypeAt(buf, f.Offset)
		if err != nil {
			return Node{}, err
		}
		fields, err := p.Fields()
		if err != nil {
			return Node{}, err
		}
		n := Node{Type: f.Type, Fields: make([]Node, 0, len(fields))}
		for _, pf := range fields {
			n.Fields = append(n.Fields, Node{Name: pf.Name, Type: pf.Type})
		}
		return n, nil
	}

	v, err := c.Value(buf, f)
	if err != nil {
		return Node{}, err
	}
	return Node{Type: f.Type, Value: v}, nil
}

func decodeArray(c *blob.Codec, buf []byte, f blob.Field) (Node, error) {
	a, err := c.ArrayAt(buf, f.Offset)
	if err != nil {
		return Node{}, err
	}
	n := Node{Type: blob.TypeArray, ItemType: a.ItemType}
	if a.ItemType == blob.TypeChar {
		if s, err := a.Text(); err == nil {
			n.Value = s
			return n, nil
		}
	}
	items, err := a.Items()
	if err != nil {
		return Node{}, err
	}
	n.Items = make([]Node, 0, len(items))
	for i, item := range items {
		child, err := DecodeField(c, buf, item)
		if err != nil {
			return Node{}, errors.PrependPath(err, fmt.Sprintf("[%d]", i))
		}
		n.Items = append(n.Items, child)
	}
	return n, nil
}
