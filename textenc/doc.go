// Package textenc provides the byte-exact text codecs that travel with
// blobs: Base64 with a NUL-terminated output buffer, and Unicode
// byte-order mark detection and emission.
//
// # Base64
//
// Encoding uses the standard alphabet with '=' padding and no line breaks.
// The encoder appends a NUL after the last character, so Base64Size
// reports one byte more than the encoded length.
//
// Decoding is lenient: characters outside the alphabet are skipped, and
// decoding stops after the first group of four characters that contains
// padding, even if input remains.
//
// # Byte-Order Marks
//
//	Encoding   Mark
//	────────────────────────
//	UTF-8      EF BB BF
//	UTF-16BE   FE FF
//	UTF-16LE   FF FE
//	UTF-32BE   00 00 FE FF
//	UTF-32LE   FF FE 00 00
//
// FF FE followed by 00 00 is UTF-32LE, not UTF-16LE.
package textenc
