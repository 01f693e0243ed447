// Package secrets is the authenticated-encryption service for secret byte
// buffers. It is the only place raw key material exists in memory; every
// plaintext copy is zeroized before the owning call returns, including on
// failure paths.
package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"wdk-wallet/go-daemon/internal/wdkerr"
)

const (
	// KeySize is the AES-256 key length.
	KeySize = 32
	// ivSize is the GCM nonce length. A fresh IV is drawn per encryption;
	// reuse under the same key would be a catastrophic confidentiality
	// failure.
	ivSize = 12
	// tagSize is the GCM authentication tag length appended to ciphertext.
	tagSize = 16
)

// GenerateKey produces a fresh 32-byte key and returns its base64 form. The
// key is never retained here; the caller is its sole durable owner.
func GenerateKey() (string, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return "", fmt.Errorf("entropy source failed: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(key)
	Zero(key)
	return encoded, nil
}

// Encrypt seals plaintext under keyB64 with AES-256-GCM and returns
// base64(IV || ciphertext || tag). Local key and IV copies are zeroized
// before returning.
func Encrypt(plaintext []byte, keyB64 string) (string, error) {
	key, err := decodeKey(keyB64)
	if err != nil {
		return "", err
	}
	defer Zero(key)

	aead, err := newGCM(key)
	if err != nil {
		return "", err
	}

	iv := make([]byte, ivSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", fmt.Errorf("entropy source failed: %w", err)
	}

	blob := make([]byte, 0, ivSize+len(plaintext)+tagSize)
	blob = append(blob, iv...)
	blob = aead.Seal(blob, iv, plaintext, nil)
	Zero(iv)

	encoded := base64.StdEncoding.EncodeToString(blob)
	Zero(blob)
	return encoded, nil
}

// Decrypt reverses Encrypt. Authentication and decryption are a single
// atomic operation; a tag mismatch or malformed blob is always a
// BAD_REQUEST, never an internal error.
func Decrypt(blobB64, keyB64 string) ([]byte, error) {
	key, err := decodeKey(keyB64)
	if err != nil {
		return nil, err
	}
	defer Zero(key)

	blob, err := base64.StdEncoding.DecodeString(blobB64)
	if err != nil {
		return nil, wdkerr.Wrap(wdkerr.KindBadRequest, "encrypted payload must be valid base64", err)
	}
	if len(blob) < ivSize+tagSize {
		return nil, wdkerr.New(wdkerr.KindBadRequest, "encrypted payload is truncated")
	}

	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	plaintext, err := aead.Open(nil, blob[:ivSize], blob[ivSize:], nil)
	if err != nil {
		return nil, wdkerr.New(wdkerr.KindBadRequest, "decryption failed")
	}
	return plaintext, nil
}

// Zero overwrites buf with zero bytes. Best-effort defense in depth: the
// runtime may have copied the buffer during growth or GC, so this narrows
// the window rather than guaranteeing erasure.
func Zero(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}

// GenerateEntropy samples fresh entropy for a mnemonic of the given length:
// 16 bytes for 12 words, 32 bytes for 24.
func GenerateEntropy(wordCount int) ([]byte, error) {
	var size int
	switch wordCount {
	case 12:
		size = 16
	case 24:
		size = 32
	default:
		return nil, wdkerr.Newf(wdkerr.KindBadRequest, "wordCount must be 12 or 24, got %d", wordCount)
	}
	entropy := make([]byte, size)
	if _, err := io.ReadFull(rand.Reader, entropy); err != nil {
		return nil, fmt.Errorf("entropy source failed: %w", err)
	}
	return entropy, nil
}

// Encrypted is the result of sealing a seed/entropy pair under one fresh
// key. The key is returned to the caller exactly once and not retained.
type Encrypted struct {
	Key     string
	Seed    string
	Entropy string
}

// EncryptSecrets generates one fresh key, seals both buffers under it and
// scrubs the plaintext copies. Callers must treat the inputs as consumed.
func EncryptSecrets(seed, entropy []byte) (Encrypted, error) {
	defer Zero(seed)
	defer Zero(entropy)

	key, err := GenerateKey()
	if err != nil {
		return Encrypted{}, err
	}
	encSeed, err := Encrypt(seed, key)
	if err != nil {
		return Encrypted{}, err
	}
	encEntropy, err := Encrypt(entropy, key)
	if err != nil {
		return Encrypted{}, err
	}
	return Encrypted{Key: key, Seed: encSeed, Entropy: encEntropy}, nil
}

func decodeKey(keyB64 string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(keyB64)
	if err != nil {
		return nil, wdkerr.Wrap(wdkerr.KindBadRequest, "encryption key must be valid base64", err)
	}
	if len(key) != KeySize {
		Zero(key)
		return nil, wdkerr.Newf(wdkerr.KindBadRequest, "encryption key must be %d bytes", KeySize)
	}
	return key, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cipher init failed: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("gcm init failed: %w", err)
	}
	return aead, nil
}
