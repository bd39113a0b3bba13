// Package common contains helpers shared across the authflow client.
package common

// WipeByteArray overwrites b with zeros. Password buffers read from the
// terminal are wiped once the request that needed them has been built.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
