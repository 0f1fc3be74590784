package cryptox

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// toUnits converts s to UTF-16 code units. Generalized UTF-8 encodings of
// surrogate code points (ED A0..BF 80..BF) decode to the bare unit; any
// other invalid byte becomes U+FFFD.
func toUnits(s string) []uint16 {
	units := make([]uint16, 0, len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			if u, ok := surrogateAt(s[i:]); ok {
				units = append(units, u)
				i += 3
				continue
			}
		}
		if r >= 0x10000 {
			hi, lo := utf16.EncodeRune(r)
			units = append(units, uint16(hi), uint16(lo))
		} else {
			units = append(units, uint16(r))
		}
		i += size
	}
	return units
}

func surrogateAt(s string) (uint16, bool) {
	if len(s) < 3 || s[0] != 0xED || s[1] < 0xA0 || s[1] > 0xBF || s[2] < 0x80 || s[2] > 0xBF {
		return 0, false
	}
	return 0xD000 | uint16(s[1]&0x3F)<<6 | uint16(s[2]&0x3F), true
}

// fromUnits is the inverse of toUnits. lone reports whether an unpaired
// surrogate had to be written in generalized form.
func fromUnits(units []uint16) (s string, lone bool) {
	var b strings.Builder
	b.Grow(len(units))
	for i := 0; i < len(units); i++ {
		u := units[i]
		switch {
		case isHigh(u) && i+1 < len(units) && isLow(units[i+1]):
			b.WriteRune(utf16.DecodeRune(rune(u), rune(units[i+1])))
			i++
		case isHigh(u) || isLow(u):
			lone = true
			b.WriteByte(0xED)
			b.WriteByte(0x80 | byte(u>>6&0x3F))
			b.WriteByte(0x80 | byte(u&0x3F))
		default:
			b.WriteRune(rune(u))
		}
	}
	return b.String(), lone
}

func isHigh(u uint16) bool { return u >= 0xD800 && u <= 0xDBFF }
func isLow(u uint16) bool  { return u >= 0xDC00 && u <= 0xDFFF }

func xorUnits(src, key []uint16) []uint16 {
	out := make([]uint16, len(src))
	if len(key) == 0 {
		copy(out, src)
		return out
	}
	for i, u := range src {
		out[i] = u ^ key[i%len(key)]
	}
	return out
}
