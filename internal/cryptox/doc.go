// Package cryptox implements the diary's obfuscation layer: a repeating-key
// XOR over UTF-16 code units, a 31-multiplier rolling password hash and the
// base64 framing used in data files.
//
// None of this is cryptography. The XOR stream is trivially reversible
// without the key, and the hash collides easily; both exist only so that a
// data file written by the original browser application opens here and vice
// versa. Do not use anything in this package to protect real secrets.
//
// Compatibility notes
//
// Text is processed as UTF-16 code units, exactly like JavaScript strings.
// An XOR can turn a unit into an unpaired surrogate; such units are carried
// inside Go strings as three-byte generalized UTF-8 so EncodeDecode stays an
// involution. Seal refuses to frame such text because the browser could
// never have produced (or read) it.
package cryptox
