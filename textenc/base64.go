package textenc

import (
	"encoding/base64"

	"github.com/wippyai/fieldblob/errors"
)

const (
	base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
	base64Pad      = '='
	base64Invalid  = 0xff
)

// reverse lookup from input byte to 6-bit value, base64Invalid for
// anything outside the alphabet
var base64Values [256]byte

func init() {
	for i := range base64Values {
		base64Values[i] = base64Invalid
	}
	for i := range len(base64Alphabet) {
		base64Values[base64Alphabet[i]] = byte(i)
	}
}

// Base64Size returns the output buffer size Base64Encode needs for n
// input bytes, including the trailing NUL, and the number of '=' padding
// characters the output will end with.
func Base64Size(n int) (size, padding int) {
	return (n+2)/3*4 + 1, (3 - n%3) % 3
}

// Base64DecodedMaxSize returns an upper bound on the bytes Base64Decode
// produces from n input characters.
func Base64DecodedMaxSize(n int) int {
	return n / 4 * 3
}

// Base64Encode writes the padded, single-line encoding of src to dst
// followed by a NUL byte, and returns the bytes written including the NUL.
func Base64Encode(dst, src []byte) (int, error) {
	size, _ := Base64Size(len(src))
	if len(dst) < size {
		return 0, errors.New(errors.PhaseEncode, errors.KindOutOfBounds).
			Detail("base64 output needs %d bytes, have %d", size, len(dst)).
			Build()
	}
	base64.StdEncoding.Encode(dst, src)
	dst[size-1] = 0
	return size, nil
}

// Base64Decode decodes src into dst and returns the number of bytes
// written. Characters outside the alphabet are skipped. Decoding stops
// after the first group of four that contains padding, and a trailing
// group of fewer than four characters is ignored.
func Base64Decode(dst, src []byte) (int, error) {
	var (
		quad [4]byte
		q    int
		pad  int
		n    int
	)
	for _, ch := range src {
		if ch == base64Pad {
			quad[q] = 0
			pad++
		} else {
			v := base64Values[ch]
			if v == base64Invalid {
				continue
			}
			quad[q] = v
		}
		q++
		if q < 4 {
			continue
		}

		out := [3]byte{
			quad[0]<<2 | quad[1]>>4,
			quad[1]<<4 | quad[2]>>2,
			quad[2]<<6 | quad[3],
		}
		emit := max(3-pad, 0)
		if n+emit > len(dst) {
			return n, errors.New(errors.PhaseDecode, errors.KindOutOfBounds).
				Detail("base64 output exceeds %d bytes", len(dst)).
				Build()
		}
		n += copy(dst[n:], out[:emit])
		if pad > 0 {
			break
		}
		q = 0
	}
	return n, nil
}

// EncodeBase64String returns the encoding of b without the NUL
// terminator.
func EncodeBase64String(b []byte) string {
	size, _ := Base64Size(len(b))
	buf := make([]byte, size)
	n, _ := Base64Encode(buf, b)
	return string(buf[:n-1])
}

// DecodeBase64String decodes s with the same leniency as Base64Decode.
func DecodeBase64String(s string) ([]byte, error) {
	buf := make([]byte, Base64DecodedMaxSize(len(s)))
	n, err := Base64Decode(buf, []byte(s))
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}
