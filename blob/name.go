package blob

import "github.com/cespare/xxhash/v2"

// Name hashes a field name to the 32-bit identifier stored on the wire:
// the low 32 bits of its xxHash64. The codec itself never interprets
// names, so callers may use any other scheme.
func Name(s string) uint32 {
	return uint32(xxhash.Sum64String(s))
}
