package witschema

import (
	"go.bytecodealliance.org/wit"
)

// Info is the Canonical ABI layout of a type. FieldOffs is set for
// records only.
type Info struct {
	FieldOffs map[string]uint32
	Size      uint32
	Align     uint32
}

var empty = Info{Size: 0, Align: 1}

// Calculator computes layouts. Typedef results are cached by pointer, so
// a Calculator must not be shared between goroutines.
type Calculator struct {
	cache map[*wit.TypeDef]Info
}

func NewCalculator() *Calculator {
	return &Calculator{cache: make(map[*wit.TypeDef]Info)}
}

// Calculate returns the layout of t. Types TypeOf never produces get a
// zero-size layout.
func (c *Calculator) Calculate(t wit.Type) Info {
	switch typ := t.(type) {
	case wit.Bool, wit.U8, wit.S8:
		return scalar(1)
	case wit.U16, wit.S16:
		return scalar(2)
	case wit.U32, wit.S32, wit.F32, wit.Char:
		return scalar(4)
	case wit.U64, wit.S64, wit.F64:
		return scalar(8)
	case wit.String:
		return Info{Size: 8, Align: 4} // ptr, len
	case *wit.TypeDef:
		if info, ok := c.cache[typ]; ok {
			return info
		}
		info := c.typedef(typ)
		c.cache[typ] = info
		return info
	}
	return empty
}

func scalar(n uint32) Info {
	return Info{Size: n, Align: n}
}

func (c *Calculator) typedef(t *wit.TypeDef) Info {
	switch kind := t.Kind.(type) {
	case *wit.Record:
		info := empty
		info.FieldOffs = make(map[string]uint32, len(kind.Fields))
		for _, f := range kind.Fields {
			info.FieldOffs[f.Name] = c.place(&info, f.Type)
		}
		return finish(info)
	case *wit.Tuple:
		info := empty
		for _, elem := range kind.Types {
			c.place(&info, elem)
		}
		return finish(info)
	case *wit.List:
		return Info{Size: 8, Align: 4} // ptr, len
	}
	return empty
}

// place appends a member of type t to the struct being laid out in info
// and returns the member's offset. info.Size tracks the unpadded end.
func (c *Calculator) place(info *Info, t wit.Type) uint32 {
	member := c.Calculate(t)
	off := alignTo(info.Size, member.Align)
	info.Size = off + member.Size
	info.Align = max(info.Align, member.Align)
	return off
}

// finish pads the struct size to its alignment.
func finish(info Info) Info {
	info.Size = alignTo(info.Size, info.Align)
	return info
}

func alignTo(offset, align uint32) uint32 {
	if align == 0 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}
