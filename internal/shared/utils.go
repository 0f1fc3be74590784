// Package shared provides small helpers for handling secrets in memory.
package shared

// WipeByteArray overwrites b with zeros. Password buffers read from the
// terminal are wiped this way once the string copy has been handed on.
// A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
