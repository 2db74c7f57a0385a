package server

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

const idChars = "abcdefghijklmnopqrstuvwxyz0123456789"

// NewSessionID 形如 "k3j9x0q2m1c8v7b4-0421"
func NewSessionID() (string, error) {
	return newSessionID(rand.Reader)
}

func newSessionID(r io.Reader) (string, error) {
	b := make([]byte, 16)
	max := big.NewInt(int64(len(idChars)))
	for i := range b {
		idx, err := rand.Int(r, max)
		if err != nil {
			return "", fmt.Errorf("session id: %w", err)
		}
		b[i] = idChars[idx.Int64()]
	}
	n, err := rand.Int(r, big.NewInt(10000))
	if err != nil {
		return "", fmt.Errorf("session id: %w", err)
	}
	return fmt.Sprintf("%s-%04d", b, n.Int64()), nil
}
