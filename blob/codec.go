package blob

import (
	"encoding/binary"

	"go.uber.org/zap"

	"github.com/wippyai/fieldblob/blob/internal/abi"
	"github.com/wippyai/fieldblob/errors"
)

// Options configures a Codec.
type Options struct {
	// Order is the byte order of every fixed-width value. Nil selects the
	// host order.
	Order binary.ByteOrder
	// Logger overrides the package logger for this codec.
	Logger *zap.Logger
	// MaxDepth bounds the nesting of arrays and objects followed by
	// traversal. Zero selects the default of 64.
	MaxDepth int
}

// DefaultOptions returns host-order configuration.
func DefaultOptions() Options {
	return Options{
		Order:    binary.NativeEndian,
		MaxDepth: abi.MaxDepth,
	}
}

// Codec reads and writes fields in one byte order. It holds no buffer
// state and is safe for concurrent use.
type Codec struct {
	order    binary.ByteOrder
	logger   *zap.Logger
	maxDepth int
}

// New creates a Codec from opts.
func New(opts Options) *Codec {
	c := &Codec{
		order:    opts.Order,
		logger:   opts.Logger,
		maxDepth: opts.MaxDepth,
	}
	if c.order == nil {
		c.order = binary.NativeEndian
	}
	if c.maxDepth <= 0 {
		c.maxDepth = abi.MaxDepth
	}
	return c
}

var (
	// Native reads and writes in host byte order. Buffers it produces are
	// only meaningful on hosts with the same order.
	Native = New(DefaultOptions())
	// LittleEndian and BigEndian produce buffers suitable for transport.
	LittleEndian = New(Options{Order: binary.LittleEndian})
	BigEndian    = New(Options{Order: binary.BigEndian})
)

// Order returns the codec's byte order.
func (c *Codec) Order() binary.ByteOrder {
	return c.order
}

func (c *Codec) log() *zap.Logger {
	if c.logger != nil {
		return c.logger
	}
	return Logger()
}

func (c *Codec) enter(depth int) error {
	if depth > c.maxDepth {
		return errors.InvalidData(errors.PhaseRead, nil, "nesting exceeds maximum depth")
	}
	return nil
}
