package types

import "math"

// Type is a field type tag as stored on the wire.
type Type int32

const (
	None Type = iota
	Null
	Bool
	Char
	Int8
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Int64
	Uint64
	Float32
	Float64
	Vector2F
	Vector3F
	Vector4F
	Matrix2x2F
	Matrix3x3F
	Matrix3x4F
	Matrix4x4F
	Array
	Prototype
	GenericObject
	RuntimeObject
)

// TagSize is the size of the type tag that prefixes every field.
const TagSize = 4

// Variable marks types whose payload size depends on the data.
const Variable = math.MaxUint32

type class uint8

const (
	classNone class = iota
	classSigned
	classUnsigned
	classFloat
	classVector
	classMatrix
	classComposite
)

type info struct {
	name  string
	size  uint32
	class class
}

var registry = [...]info{
	None:          {"none", 0, classNone},
	Null:          {"null", 0, classNone},
	Bool:          {"bool", 1, classNone},
	Char:          {"char", 1, classNone},
	Int8:          {"int8", 1, classSigned},
	Uint8:         {"uint8", 1, classUnsigned},
	Int16:         {"int16", 2, classSigned},
	Uint16:        {"uint16", 2, classUnsigned},
	Int32:         {"int32", 4, classSigned},
	Uint32:        {"uint32", 4, classUnsigned},
	Int64:         {"int64", 8, classSigned},
	Uint64:        {"uint64", 8, classUnsigned},
	Float32:       {"float32", 4, classFloat},
	Float64:       {"float64", 8, classFloat},
	Vector2F:      {"vector2f", 8, classVector},
	Vector3F:      {"vector3f", 12, classVector},
	Vector4F:      {"vector4f", 16, classVector},
	Matrix2x2F:    {"matrix2x2f", 16, classMatrix},
	Matrix3x3F:    {"matrix3x3f", 36, classMatrix},
	Matrix3x4F:    {"matrix3x4f", 48, classMatrix},
	Matrix4x4F:    {"matrix4x4f", 64, classMatrix},
	Array:         {"array", Variable, classComposite},
	Prototype:     {"prototype", Variable, classComposite},
	GenericObject: {"generic_object", Variable, classComposite},
	RuntimeObject: {"runtime_object", Variable, classComposite},
}

// Valid reports whether t is a registered tag.
func (t Type) Valid() bool {
	return t >= 0 && int(t) < len(registry)
}

func (t Type) String() string {
	if t.Valid() {
		return registry[t].name
	}
	return "unknown"
}

// Parse returns the tag registered under name.
func Parse(name string) (Type, bool) {
	for t, in := range registry {
		if in.name == name {
			return Type(t), true
		}
	}
	return None, false
}

// Size returns the payload size of t, Variable for composite tags, and 0
// for unregistered tags.
func (t Type) Size() uint32 {
	if !t.Valid() {
		return 0
	}
	return registry[t].size
}

// TotalSize returns the payload size plus the tag, or Variable.
func (t Type) TotalSize() uint32 {
	size := t.Size()
	if size == Variable {
		return Variable
	}
	return size + TagSize
}

func (t Type) IsVariable() bool {
	return t.Valid() && registry[t].size == Variable
}

func (t Type) IsFixed() bool {
	return t.Valid() && registry[t].size != Variable
}

func (t Type) IsSigned() bool {
	return t.Valid() && registry[t].class == classSigned
}

func (t Type) IsUnsigned() bool {
	return t.Valid() && registry[t].class == classUnsigned
}

func (t Type) IsInteger() bool {
	return t.IsSigned() || t.IsUnsigned()
}

func (t Type) IsFloat() bool {
	return t.Valid() && registry[t].class == classFloat
}

func (t Type) IsVector() bool {
	return t.Valid() && registry[t].class == classVector
}

func (t Type) IsMatrix() bool {
	return t.Valid() && registry[t].class == classMatrix
}

func (t Type) IsObject() bool {
	return t == GenericObject || t == RuntimeObject
}

// Components returns the number of float32 values in a vector or matrix
// payload, and 0 for every other type.
func (t Type) Components() int {
	if t.IsVector() || t.IsMatrix() {
		return int(registry[t].size / 4)
	}
	return 0
}

// NarrowestSigned returns the smallest signed integer tag that holds v.
func NarrowestSigned(v int64) Type {
	switch {
	case v >= math.MinInt8 && v <= math.MaxInt8:
		return Int8
	case v >= math.MinInt16 && v <= math.MaxInt16:
		return Int16
	case v >= math.MinInt32 && v <= math.MaxInt32:
		return Int32
	default:
		return Int64
	}
}

// NarrowestUnsigned returns the smallest unsigned integer tag that holds v.
func NarrowestUnsigned(v uint64) Type {
	switch {
	case v <= math.MaxUint8:
		return Uint8
	case v <= math.MaxUint16:
		return Uint16
	case v <= math.MaxUint32:
		return Uint32
	default:
		return Uint64
	}
}

// NarrowestInteger returns the smallest tag able to represent every value
// in [lo, hi]. Non-negative ranges select unsigned tags.
func NarrowestInteger(lo, hi int64) Type {
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo >= 0 {
		return NarrowestUnsigned(uint64(hi))
	}
	a, b := NarrowestSigned(lo), NarrowestSigned(hi)
	if a.Size() >= b.Size() {
		return a
	}
	return b
}
