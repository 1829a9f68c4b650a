package core

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash represents a one-way SHA-256 digest in lowercase hex (64 chars)
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// HashString digests the UTF-8 bytes of s.
func HashString(s string) Hash {
	return NewHash([]byte(s))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}
