package textenc

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"

	"github.com/wippyai/fieldblob/errors"
)

// Text returns the transcoder for e. The mark itself is handled by
// DecodeText and EncodeText, so the returned encodings ignore BOMs.
// Unsure maps to plain UTF-8.
func (e Encoding) Text() encoding.Encoding {
	switch e {
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	case UTF32BE:
		return utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM)
	case UTF32LE:
		return utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM)
	default:
		return unicode.UTF8
	}
}

// DecodeText detects the byte-order mark of b, strips it and returns the
// remaining text as UTF-8 along with the detected encoding.
func DecodeText(b []byte) (string, Encoding, error) {
	e, n := DetermineTextEncoding(b)
	out, err := e.Text().NewDecoder().Bytes(b[n:])
	if err != nil {
		return "", e, errors.Wrap(errors.PhaseDecode, errors.KindInvalidData, err, "transcode "+e.String())
	}
	return string(out), e, nil
}

// EncodeText returns the byte-order mark of e followed by s in e.
func EncodeText(s string, e Encoding) ([]byte, error) {
	mark, n := BOM(e)
	body, err := e.Text().NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, errors.Wrap(errors.PhaseEncode, errors.KindInvalidData, err, "transcode "+e.String())
	}
	out := make([]byte, 0, n+len(body))
	out = append(out, mark[:n]...)
	return append(out, body...), nil
}
