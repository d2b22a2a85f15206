package blob

import (
	"github.com/wippyai/fieldblob/blob/internal/types"
)

type Type = types.Type

const (
	TypeNone          = types.None
	TypeNull          = types.Null
	TypeBool          = types.Bool
	TypeChar          = types.Char
	TypeInt8          = types.Int8
	TypeUint8         = types.Uint8
	TypeInt16         = types.Int16
	TypeUint16        = types.Uint16
	TypeInt32         = types.Int32
	TypeUint32        = types.Uint32
	TypeInt64         = types.Int64
	TypeUint64        = types.Uint64
	TypeFloat32       = types.Float32
	TypeFloat64       = types.Float64
	TypeVector2F      = types.Vector2F
	TypeVector3F      = types.Vector3F
	TypeVector4F      = types.Vector4F
	TypeMatrix2x2F    = types.Matrix2x2F
	TypeMatrix3x3F    = types.Matrix3x3F
	TypeMatrix3x4F    = types.Matrix3x4F
	TypeMatrix4x4F    = types.Matrix4x4F
	TypeArray         = types.Array
	TypePrototype     = types.Prototype
	TypeGenericObject = types.GenericObject
	TypeRuntimeObject = types.RuntimeObject
)

const (
	// TagSize is the size of the type tag that prefixes every field.
	TagSize = types.TagSize
	// Variable is the size reported for composite types.
	Variable = types.Variable
)

// Wire header sizes.
const (
	ArrayHeaderSize        = 8  // count, item type
	GenericHeaderSize      = 8  // field count, field data size
	GenericFieldHeaderSize = 12 // name, type, size
	RuntimeHeaderSize      = 8  // field count, reserved (always 0)
	RuntimeValueHeaderSize = 4  // value type
	PrototypeHeaderSize    = 4  // field count
	runtimeEntrySize       = 8  // name + offset per field
	prototypeEntrySize     = 8  // name + type per field
)

// FieldSize returns the fixed payload size of t, or Variable.
func FieldSize(t Type) uint32 { return t.Size() }

// TotalSize returns the fixed payload size of t plus its tag, or Variable.
func TotalSize(t Type) uint32 { return t.TotalSize() }

// ParseType returns the tag registered under its lower-case name.
func ParseType(name string) (Type, bool) { return types.Parse(name) }

var (
	NarrowestSigned   = types.NarrowestSigned
	NarrowestUnsigned = types.NarrowestUnsigned
	NarrowestInteger  = types.NarrowestInteger
)

// Fixed-size float payloads. The codec treats them as opaque component
// arrays in row order.
type (
	Vec2   [2]float32
	Vec3   [3]float32
	Vec4   [4]float32
	Mat2   [4]float32
	Mat3   [9]float32
	Mat3x4 [12]float32
	Mat4   [16]float32
)
