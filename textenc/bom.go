package textenc

// Encoding is a Unicode encoding identified by its byte-order mark.
type Encoding int

const (
	Unsure Encoding = iota
	UTF8
	UTF16BE
	UTF16LE
	UTF32BE
	UTF32LE
)

var encodingNames = [...]string{
	Unsure:  "unsure",
	UTF8:    "utf-8",
	UTF16BE: "utf-16be",
	UTF16LE: "utf-16le",
	UTF32BE: "utf-32be",
	UTF32LE: "utf-32le",
}

func (e Encoding) String() string {
	if e >= 0 && int(e) < len(encodingNames) {
		return encodingNames[e]
	}
	return "unknown"
}

// ParseEncoding returns the encoding with the given name.
func ParseEncoding(name string) (Encoding, bool) {
	for e, n := range encodingNames {
		if n == name {
			return Encoding(e), true
		}
	}
	return Unsure, false
}

var boms = [...]struct {
	bytes [4]byte
	size  int
}{
	UTF8:    {[4]byte{0xEF, 0xBB, 0xBF}, 3},
	UTF16BE: {[4]byte{0xFE, 0xFF}, 2},
	UTF16LE: {[4]byte{0xFF, 0xFE}, 2},
	UTF32BE: {[4]byte{0x00, 0x00, 0xFE, 0xFF}, 4},
	UTF32LE: {[4]byte{0xFF, 0xFE, 0x00, 0x00}, 4},
}

// detection order: FF FE 00 00 must be tried before its FF FE prefix
var detectOrder = [...]Encoding{UTF32BE, UTF32LE, UTF8, UTF16BE, UTF16LE}

// DetermineTextEncoding matches the leading bytes of b against the known
// byte-order marks and returns the encoding and the mark's length. Input
// without a mark yields (Unsure, 0).
func DetermineTextEncoding(b []byte) (Encoding, int) {
	for _, e := range detectOrder {
		mark := boms[e]
		if len(b) >= mark.size && string(b[:mark.size]) == string(mark.bytes[:mark.size]) {
			return e, mark.size
		}
	}
	return Unsure, 0
}

// BOM returns the byte-order mark of e and its length. Only the first
// size bytes of the array are the mark; DetermineTextEncoding(mark[:size])
// yields e again. Unsure has none.
func BOM(e Encoding) ([4]byte, int) {
	if e <= Unsure || int(e) >= len(boms) {
		return [4]byte{}, 0
	}
	return boms[e].bytes, boms[e].size
}
