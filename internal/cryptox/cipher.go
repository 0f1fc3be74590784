package cryptox

import (
	"encoding/base64"
	"errors"
	"regexp"
	"strconv"
	"unicode/utf8"
)

var (
	ErrInvalidBase64 = errors.New("payload is not valid base64")
	ErrInvalidUTF8   = errors.New("payload does not decode to UTF-8 text")
	ErrUnencodable   = errors.New("ciphertext contains an unpaired surrogate")
)

var base64Pattern = regexp.MustCompile(`^[A-Za-z0-9+/]*={0,2}$`)

// EncodeDecode XORs every UTF-16 code unit of text with the key's code
// units, cycling the key. Applying it twice with the same key returns the
// original text. An empty key leaves text unchanged. A wrong key silently
// yields garbage.
func EncodeDecode(text, key string) string {
	out, _ := fromUnits(xorUnits(toUnits(text), toUnits(key)))
	return out
}

// HashPassword folds the password's code units with h = h*31 + unit in
// 32-bit signed arithmetic and returns the decimal result. Collision-prone
// by construction; it only gates which key is tried.
func HashPassword(password string) string {
	var h int32
	for _, u := range toUnits(password) {
		h = h*31 + int32(u)
	}
	return strconv.FormatInt(int64(h), 10)
}

// IsValidBase64 reports whether s is shaped like padded standard base64.
func IsValidBase64(s string) bool {
	return len(s)%4 == 0 && base64Pattern.MatchString(s)
}

// Seal XORs plaintext with key and frames the result as base64 of its UTF-8
// bytes, the encryptedDiaries format.
func Seal(plaintext, key string) (string, error) {
	text, lone := fromUnits(xorUnits(toUnits(plaintext), toUnits(key)))
	if lone {
		return "", ErrUnencodable
	}
	return base64.StdEncoding.EncodeToString([]byte(text)), nil
}

// Open reverses Seal. The payload is checked with IsValidBase64 first.
func Open(payload, key string) (string, error) {
	if !IsValidBase64(payload) {
		return "", ErrInvalidBase64
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", ErrInvalidBase64
	}
	if !utf8.Valid(raw) {
		return "", ErrInvalidUTF8
	}
	return EncodeDecode(string(raw), key), nil
}
