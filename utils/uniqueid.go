package utils

import "math/rand"

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// UniqueID returns a random alphanumeric string of the given length.
// The source is deliberately non-cryptographic and no collision check is
// performed; at cart-id lengths the collision odds are negligible.
func UniqueID(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = idAlphabet[rand.Intn(len(idAlphabet))]
	}
	return string(b)
}
