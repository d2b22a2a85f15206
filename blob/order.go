package blob

import (
	"math"

	"github.com/wippyai/fieldblob/blob/internal/abi"
	"github.com/wippyai/fieldblob/errors"
)

// Fixed-width accessors. Every read and write is bounds checked against
// the buffer and uses the codec's byte order.

func (c *Codec) check(phase errors.Phase, buf []byte, off, size uint32) error {
	if !abi.Fits(off, size, len(buf)) {
		return errors.OutOfBounds(phase, off, size, len(buf))
	}
	return nil
}

func (c *Codec) Uint8(buf []byte, off uint32) (uint8, error) {
	if err := c.check(errors.PhaseRead, buf, off, 1); err != nil {
		return 0, err
	}
	return buf[off], nil
}

func (c *Codec) Uint16(buf []byte, off uint32) (uint16, error) {
	if err := c.check(errors.PhaseRead, buf, off, 2); err != nil {
		return 0, err
	}
	return c.order.Uint16(buf[off:]), nil
}

func (c *Codec) Uint32(buf []byte, off uint32) (uint32, error) {
	if err := c.check(errors.PhaseRead, buf, off, 4); err != nil {
		return 0, err
	}
	return c.order.Uint32(buf[off:]), nil
}

func (c *Codec) Uint64(buf []byte, off uint32) (uint64, error) {
	if err := c.check(errors.PhaseRead, buf, off, 8); err != nil {
		return 0, err
	}
	return c.order.Uint64(buf[off:]), nil
}

func (c *Codec) Int8(buf []byte, off uint32) (int8, error) {
	v, err := c.Uint8(buf, off)
	return int8(v), err
}

func (c *Codec) Int16(buf []byte, off uint32) (int16, error) {
	v, err := c.Uint16(buf, off)
	return int16(v), err
}

func (c *Codec) Int32(buf []byte, off uint32) (int32, error) {
	v, err := c.Uint32(buf, off)
	return int32(v), err
}

func (c *Codec) Int64(buf []byte, off uint32) (int64, error) {
	v, err := c.Uint64(buf, off)
	return int64(v), err
}

// Float32 reads IEEE-754 bits verbatim; NaN payloads are preserved.
func (c *Codec) Float32(buf []byte, off uint32) (float32, error) {
	v, err := c.Uint32(buf, off)
	return math.Float32frombits(v), err
}

func (c *Codec) Float64(buf []byte, off uint32) (float64, error) {
	v, err := c.Uint64(buf, off)
	return math.Float64frombits(v), err
}

// Float32s reads n consecutive float32 values.
func (c *Codec) Float32s(buf []byte, off uint32, n int) ([]float32, error) {
	if n < 0 || uint64(n) > math.MaxUint32/4 {
		return nil, errors.Overflow(errors.PhaseRead, nil, "float32 run")
	}
	size := uint32(n) * 4
	if err := c.check(errors.PhaseRead, buf, off, size); err != nil {
		return nil, err
	}
	out := make([]float32, n)
	for i := range out {
		out[i] = math.Float32frombits(c.order.Uint32(buf[off+uint32(i)*4:]))
	}
	return out, nil
}

func (c *Codec) PutUint8(buf []byte, off uint32, v uint8) error {
	if err := c.check(errors.PhaseWrite, buf, off, 1); err != nil {
		return err
	}
	buf[off] = v
	return nil
}

func (c *Codec) PutUint16(buf []byte, off uint32, v uint16) error {
	if err := c.check(errors.PhaseWrite, buf, off, 2); err != nil {
		return err
	}
	c.order.PutUint16(buf[off:], v)
	return nil
}

func (c *Codec) PutUint32(buf []byte, off uint32, v uint32) error {
	if err := c.check(errors.PhaseWrite, buf, off, 4); err != nil {
		return err
	}
	c.order.PutUint32(buf[off:], v)
	return nil
}

func (c *Codec) PutUint64(buf []byte, off uint32, v uint64) error {
	if err := c.check(errors.PhaseWrite, buf, off, 8); err != nil {
		return err
	}
	c.order.PutUint64(buf[off:], v)
	return nil
}

func (c *Codec) PutInt8(buf []byte, off uint32, v int8) error {
	return c.PutUint8(buf, off, uint8(v))
}

func (c *Codec) PutInt16(buf []byte, off uint32, v int16) error {
	return c.PutUint16(buf, off, uint16(v))
}

func (c *Codec) PutInt32(buf []byte, off uint32, v int32) error {
	return c.PutUint32(buf, off, uint32(v))
}

func (c *Codec) PutInt64(buf []byte, off uint32, v int64) error {
	return c.PutUint64(buf, off, uint64(v))
}

func (c *Codec) PutFloat32(buf []byte, off uint32, v float32) error {
	return c.PutUint32(buf, off, math.Float32bits(v))
}

func (c *Codec) PutFloat64(buf []byte, off uint32, v float64) error {
	return c.PutUint64(buf, off, math.Float64bits(v))
}

// PutFloat32s writes vs as consecutive float32 values.
func (c *Codec) PutFloat32s(buf []byte, off uint32, vs []float32) error {
	if uint64(len(vs)) > math.MaxUint32/4 {
		return errors.Overflow(errors.PhaseWrite, nil, "float32 run")
	}
	size := uint32(len(vs)) * 4
	if err := c.check(errors.PhaseWrite, buf, off, size); err != nil {
		return err
	}
	for i, v := range vs {
		c.order.PutUint32(buf[off+uint32(i)*4:], math.Float32bits(v))
	}
	return nil
}

// Bytes returns the n bytes at off as a view into buf.
func (c *Codec) Bytes(buf []byte, off, n uint32) ([]byte, error) {
	if err := c.check(errors.PhaseRead, buf, off, n); err != nil {
		return nil, err
	}
	return buf[off : off+n : off+n], nil
}

// Copy copies n bytes from src at srcOff to dst at dstOff. The two
// regions must not share memory.
func (c *Codec) Copy(dst []byte, dstOff uint32, src []byte, srcOff, n uint32) error {
	if err := c.check(errors.PhaseRead, src, srcOff, n); err != nil {
		return err
	}
	if err := c.check(errors.PhaseWrite, dst, dstOff, n); err != nil {
		return err
	}
	from := src[srcOff : srcOff+n]
	to := dst[dstOff : dstOff+n]
	if abi.Overlaps(from, to) {
		return errors.Overlap(errors.PhaseWrite, "copy regions overlap")
	}
	copy(to, from)
	return nil
}

func (c *Codec) typeAt(buf []byte, off uint32) (Type, error) {
	v, err := c.Int32(buf, off)
	return Type(v), err
}

func (c *Codec) putType(buf []byte, off uint32, t Type) error {
	return c.PutInt32(buf, off, int32(t))
}
