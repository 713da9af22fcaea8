// Package cryptox implements the at-rest envelope for snippet bodies.
//
// Every body is encrypted with AES-256 in CBC mode under a single
// process-wide key. Each call draws a fresh random IV, so identical
// plaintexts never produce identical envelopes. The stored form is
//
//	<hex IV>:<hex ciphertext>
package cryptox

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/snipkeeper/internal/common"
)

const (
	// KeySize is the required key length (AES-256).
	KeySize = 32

	// IVSize equals the AES block size.
	IVSize = aes.BlockSize

	separator = ":"
)

// Payload is a decoded envelope: the IV and the ciphertext it was produced with.
type Payload struct {
	IV         []byte
	Ciphertext []byte
}

// String renders the payload in its stored form.
func (p Payload) String() string {
	return hex.EncodeToString(p.IV) + separator + hex.EncodeToString(p.Ciphertext)
}

// ParsePayload splits a stored envelope into its parts and validates their
// lengths. It never touches the key.
func ParsePayload(s string) (Payload, error) {
	parts := strings.Split(s, separator)
	if len(parts) != 2 {
		return Payload{}, fmt.Errorf("%w: expected 2 fields, got %d", common.ErrDecode, len(parts))
	}

	iv, err := hex.DecodeString(parts[0])
	if err != nil {
		return Payload{}, fmt.Errorf("%w: iv is not hex", common.ErrDecode)
	}
	if len(iv) != IVSize {
		return Payload{}, fmt.Errorf("%w: iv length %d", common.ErrDecode, len(iv))
	}

	ct, err := hex.DecodeString(parts[1])
	if err != nil {
		return Payload{}, fmt.Errorf("%w: ciphertext is not hex", common.ErrDecode)
	}
	if len(ct) == 0 || len(ct)%aes.BlockSize != 0 {
		return Payload{}, fmt.Errorf("%w: ciphertext length %d", common.ErrDecode, len(ct))
	}

	return Payload{IV: iv, Ciphertext: ct}, nil
}

// Envelope encodes and decodes snippet bodies with the process key.
// It is safe for concurrent use.
type Envelope struct {
	block cipher.Block
	rand  io.Reader
}

// NewEnvelope builds an Envelope. A key that is not exactly KeySize bytes
// is a fatal misconfiguration.
func NewEnvelope(key []byte) (*Envelope, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: encryption key must be %d bytes, got %d", common.ErrFatalConfiguration, KeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrFatalConfiguration, err)
	}

	return &Envelope{block: block, rand: rand.Reader}, nil
}

// Encode encrypts plaintext under a fresh IV and returns the stored form.
func (e *Envelope) Encode(plaintext string) (string, error) {
	iv := make([]byte, IVSize)
	if _, err := io.ReadFull(e.rand, iv); err != nil {
		return "", fmt.Errorf("failed to generate iv: %w", err)
	}

	padded := pad([]byte(plaintext), aes.BlockSize)
	ct := make([]byte, len(padded))
	cipher.NewCBCEncrypter(e.block, iv).CryptBlocks(ct, padded)

	return Payload{IV: iv, Ciphertext: ct}.String(), nil
}

// Decode reverses Encode. Any parse or cryptographic failure is reported
// as common.ErrDecode; the caller should treat the record as unreadable.
func (e *Envelope) Decode(stored string) (string, error) {
	p, err := ParsePayload(stored)
	if err != nil {
		return "", err
	}

	plain := make([]byte, len(p.Ciphertext))
	cipher.NewCBCDecrypter(e.block, p.IV).CryptBlocks(plain, p.Ciphertext)

	out, err := unpad(plain, aes.BlockSize)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// PKCS#7
func pad(b []byte, size int) []byte {
	n := size - len(b)%size
	return append(b, bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(b []byte, size int) ([]byte, error) {
	if len(b) == 0 || len(b)%size != 0 {
		return nil, fmt.Errorf("%w: bad padded length", common.ErrDecode)
	}
	n := int(b[len(b)-1])
	if n == 0 || n > size {
		return nil, fmt.Errorf("%w: bad padding", common.ErrDecode)
	}
	for _, c := range b[len(b)-n:] {
		if int(c) != n {
			return nil, fmt.Errorf("%w: bad padding", common.ErrDecode)
		}
	}
	return b[:len(b)-n], nil
}
