package blob

import (
	"fmt"
	"testing"
)

// wideObject builds a generic object with n uint32 fields followed by a
// float array, so lookups of the last field pay for every preceding one.
func wideObject(b *testing.B, c *Codec, n int) []byte {
	b.Helper()
	recs := make([]rec, 0, n+1)
	for i := 0; i < n; i++ {
		recs = append(recs, rec{uint32(i), TypeUint32, u32(c, uint32(i))})
	}
	recs = append(recs, rec{uint32(n), TypeArray, arrayData(b, c, TypeFloat32, 4, floats(c, 1, 2, 3, 4))})
	return tagged(b, c, TypeGenericObject, genericData(b, c, recs...))
}

func BenchmarkSearch(b *testing.B) {
	c := LittleEndian
	for _, n := range []int{4, 64, 1024} {
		src := wideObject(b, c, n)
		dst, err := c.Optimized(src)
		if err != nil {
			b.Fatal(err)
		}
		last := uint32(n)

		b.Run(fmt.Sprintf("generic/%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, ok, err := c.GenericObjectSearch(src, TagSize, last); !ok || err != nil {
					b.Fatal("not found")
				}
			}
		})

		b.Run(fmt.Sprintf("runtime/%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, ok, err := c.RuntimeObjectSearch(dst, TagSize, last); !ok || err != nil {
					b.Fatal("not found")
				}
			}
		})
	}
}

func BenchmarkOptimize(b *testing.B) {
	c := LittleEndian
	src := wideObject(b, c, 256)
	dst := make([]byte, len(src))

	b.SetBytes(int64(len(src)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Optimize(dst, src); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFieldTotalSize(b *testing.B) {
	c := LittleEndian
	generic := wideObject(b, c, 256)
	runtime, err := c.Optimized(generic)
	if err != nil {
		b.Fatal(err)
	}

	b.Run("generic", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = c.FieldTotalSize(generic, 0)
		}
	})
	b.Run("runtime", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = c.FieldTotalSize(runtime, 0)
		}
	})
}
