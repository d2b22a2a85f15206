package manifest

import (
	"math"

	"github.com/wippyai/fieldblob/blob"
	"github.com/wippyai/fieldblob/errors"
)

// Convert turns a decoded YAML value into the Go type blob.Codec.Value
// returns for t, so that a manifest tree compares equal to a decoded
// blob. Vectors and matrices come back as []float32.
func Convert(t blob.Type, v any) (any, error) {
	switch {
	case t == blob.TypeNull:
		if v != nil {
			return nil, mismatch(v, t.String())
		}
		return nil, nil
	case t == blob.TypeBool:
		b, ok := v.(bool)
		if !ok {
			return nil, mismatch(v, t.String())
		}
		return b, nil
	case t == blob.TypeChar:
		if s, ok := v.(string); ok {
			if len(s) != 1 {
				return nil, outOfRange(t, v)
			}
			return s[0], nil
		}
		return integer(blob.TypeUint8, v)
	case t.IsInteger():
		return integer(t, v)
	case t == blob.TypeFloat32:
		f, ok := number(v)
		if !ok {
			return nil, mismatch(v, t.String())
		}
		return float32(f), nil
	case t == blob.TypeFloat64:
		f, ok := number(v)
		if !ok {
			return nil, mismatch(v, t.String())
		}
		return f, nil
	case t.IsVector() || t.IsMatrix():
		list, ok := v.([]any)
		if !ok {
			return nil, mismatch(v, t.String())
		}
		if len(list) != t.Components() {
			return nil, errors.New(errors.PhaseParse, errors.KindInvalidInput).
				FieldType(t.String()).
				Detail("need %d components, got %d", t.Components(), len(list)).
				Build()
		}
		out := make([]float32, len(list))
		for i, x := range list {
			f, ok := number(x)
			if !ok {
				return nil, mismatch(x, "float32")
			}
			out[i] = float32(f)
		}
		return out, nil
	}
	return nil, unknownType(t.String())
}

func number(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}

// integer range-checks v against t and returns it as the Go type of
// matching width.
func integer(t blob.Type, v any) (any, error) {
	var (
		s       int64
		u       uint64
		signed  bool
		inRange bool
	)
	switch x := v.(type) {
	case int:
		s, signed = int64(x), true
	case int64:
		s, signed = x, true
	case uint64:
		u = x
	case float64:
		if x != math.Trunc(x) {
			return nil, mismatch(v, t.String())
		}
		if x < 0 {
			if x < math.MinInt64 {
				return nil, outOfRange(t, v)
			}
			s, signed = int64(x), true
		} else {
			if x >= math.MaxUint64 {
				return nil, outOfRange(t, v)
			}
			u = uint64(x)
		}
	default:
		return nil, mismatch(v, t.String())
	}
	if signed && s >= 0 {
		u, signed = uint64(s), false
	}

	var out any
	switch t {
	case blob.TypeInt8:
		inRange = fitsSigned(s, u, signed, math.MinInt8, math.MaxInt8)
		out = int8(s)
		if !signed {
			out = int8(u)
		}
	case blob.TypeInt16:
		inRange = fitsSigned(s, u, signed, math.MinInt16, math.MaxInt16)
		out = int16(s)
		if !signed {
			out = int16(u)
		}
	case blob.TypeInt32:
		inRange = fitsSigned(s, u, signed, math.MinInt32, math.MaxInt32)
		out = int32(s)
		if !signed {
			out = int32(u)
		}
	case blob.TypeInt64:
		inRange = fitsSigned(s, u, signed, math.MinInt64, math.MaxInt64)
		out = s
		if !signed {
			out = int64(u)
		}
	case blob.TypeUint8:
		inRange = !signed && u <= math.MaxUint8
		out = uint8(u)
	case blob.TypeUint16:
		inRange = !signed && u <= math.MaxUint16
		out = uint16(u)
	case blob.TypeUint32:
		inRange = !signed && u <= math.MaxUint32
		out = uint32(u)
	case blob.TypeUint64:
		inRange = !signed
		out = u
	}
	if !inRange {
		return nil, outOfRange(t, v)
	}
	return out, nil
}

func fitsSigned(s int64, u uint64, signed bool, lo, hi int64) bool {
	if signed {
		return s >= lo
	}
	return u <= uint64(hi)
}

func outOfRange(t blob.Type, v any) error {
	return errors.New(errors.PhaseParse, errors.KindInvalidInput).
		FieldType(t.String()).
		Detail("value %v out of range", v).
		Value(v).
		Build()
}
