package tree

import (
	"fmt"
	"strings"

	"github.com/wippyai/fieldblob/blob"
	"github.com/wippyai/fieldblob/errors"
)

// Encode writes nodes as a sequence of top-level fields. Objects of type
// GENERIC_OBJECT use the construction encoding and RUNTIME_OBJECT nodes
// are written directly in the access encoding.
func Encode(c *blob.Codec, nodes []Node) ([]byte, error) {
	size, err := Size(nodes)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, size)
	off := uint32(0)
	for i := range nodes {
		n, err := encodeField(c, buf, off, &nodes[i])
		if err != nil {
			return nil, errors.PrependPath(err, fmt.Sprintf("[%d]", i))
		}
		off += n
	}
	return buf, nil
}

func encodeField(c *blob.Codec, buf []byte, off uint32, n *Node) (uint32, error) {
	if err := c.PutInt32(buf, off, int32(n.Type)); err != nil {
		return 0, err
	}
	size, err := encodeValue(c, buf, off+blob.TagSize, n)
	if err != nil {
		return 0, err
	}
	return size + blob.TagSize, nil
}

// encodeValue writes the untagged value of n at off.
func encodeValue(c *blob.Codec, buf []byte, off uint32, n *Node) (uint32, error) {
	switch n.Type {
	case blob.TypeArray:
		return encodeArray(c, buf, off, n)
	case blob.TypeGenericObject:
		return encodeGeneric(c, buf, off, n)
	case blob.TypeRuntimeObject:
		return encodeRuntime(c, buf, off, n)
	case blob.TypePrototype:
		names := make([]uint32, len(n.Fields))
		types := make([]blob.Type, len(n.Fields))
		for i, f := range n.Fields {
			names[i], types[i] = f.Name, f.Type
		}
		return c.WritePrototypeData(buf, off, names, types)
	}
	return c.PutValue(buf, off, n.Type, n.Value)
}

func encodeArray(c *blob.Codec, buf []byte, off uint32, n *Node) (uint32, error) {
	if n.IsString() {
		s := n.Value.(string)
		if strings.IndexByte(s, 0) >= 0 {
			return 0, errors.InvalidInput(errors.PhaseEncode, "string contains NUL")
		}
		data := make([]byte, len(s)+1)
		copy(data, s)
		h, err := c.WriteArrayInfo(buf, off, uint32(len(data)), blob.TypeChar)
		if err != nil {
			return 0, err
		}
		d, err := c.WriteArrayData(buf, off+h, data)
		if err != nil {
			return 0, err
		}
		return h + d, nil
	}

	written, err := c.WriteArrayInfo(buf, off, uint32(len(n.Items)), n.ItemType)
	if err != nil {
		return 0, err
	}
	for i := range n.Items {
		item := &n.Items[i]
		if item.Type != n.ItemType {
			return 0, errors.TypeMismatch(errors.PhaseEncode, []string{fmt.Sprintf("[%d]", i)}, item.Type.String(), n.ItemType.String())
		}
		size, err := encodeValue(c, buf, off+written, item)
		if err != nil {
			return 0, errors.PrependPath(err, fmt.Sprintf("[%d]", i))
		}
		written += size
	}
	return written, nil
}

func encodeGeneric(c *blob.Codec, buf []byte, off uint32, n *Node) (uint32, error) {
	total, err := dataSize(n)
	if err != nil {
		return 0, err
	}
	written, err := c.WriteGenericObjectInfo(buf, off, uint32(len(n.Fields)), total-blob.GenericHeaderSize)
	if err != nil {
		return 0, err
	}
	for i := range n.Fields {
		f := &n.Fields[i]
		size, err := dataSize(f)
		if err != nil {
			return 0, errors.PrependPath(err, nameSegment(f.Name))
		}
		h, err := c.WriteGenericObjectFieldHeader(buf, off+written, f.Name, f.Type, size)
		if err != nil {
			return 0, err
		}
		if _, err := encodeValue(c, buf, off+written+h, f); err != nil {
			return 0, errors.PrependPath(err, nameSegment(f.Name))
		}
		written += h + size
	}
	return written, nil
}

// encodeRuntime assembles the value blob first, then hands the tables
// and blob to the runtime object writer.
func encodeRuntime(c *blob.Codec, buf []byte, off uint32, n *Node) (uint32, error) {
	names := make([]uint32, len(n.Fields))
	offsets := make([]uint32, len(n.Fields))
	blobSize := uint32(0)
	for i := range n.Fields {
		size, err := dataSize(&n.Fields[i])
		if err != nil {
			return 0, errors.PrependPath(err, nameSegment(n.Fields[i].Name))
		}
		names[i], offsets[i] = n.Fields[i].Name, blobSize
		blobSize += blob.RuntimeValueHeaderSize + size
	}

	values := make([]byte, blobSize)
	for i := range n.Fields {
		if _, err := encodeField(c, values, offsets[i], &n.Fields[i]); err != nil {
			return 0, errors.PrependPath(err, nameSegment(names[i]))
		}
	}
	return c.WriteRuntimeObjectData(buf, off, names, offsets, values)
}
