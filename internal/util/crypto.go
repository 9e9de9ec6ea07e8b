package util

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	kdfIterations = 100_000
	kdfSalt       = "brainshift.audit.v1"
)

// Cipher seals short strings (audit paths and actions) with AES-256-GCM.
// The key is derived once from the configured passphrase with PBKDF2.
// A Cipher built from an empty passphrase passes values through unchanged.
type Cipher struct {
	key []byte
}

// NewCipher derives the AES key for passphrase.
func NewCipher(passphrase string) *Cipher {
	if passphrase == "" {
		return &Cipher{}
	}
	key := pbkdf2.Key([]byte(passphrase), []byte(kdfSalt), kdfIterations, 32, sha256.New)
	return &Cipher{key: key}
}

// Enabled reports whether values are actually encrypted.
func (c *Cipher) Enabled() bool {
	return len(c.key) > 0
}

// EncryptString returns base64(nonce+ciphertext) of plain.
func (c *Cipher) EncryptString(plain string) (string, error) {
	if plain == "" || !c.Enabled() {
		return plain, nil
	}
	b, err := EncryptAES(c.key, []byte(plain))
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// DecryptString reverses EncryptString. Values that do not decrypt are
// returned as stored.
func (c *Cipher) DecryptString(stored string) string {
	if stored == "" || !c.Enabled() {
		return stored
	}
	b, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		return stored
	}
	plain, err := DecryptAES(c.key, b)
	if err != nil {
		return stored
	}
	return string(plain)
}

// EncryptAES encrypts with AES-256-GCM and returns nonce+ciphertext.
func EncryptAES(key, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("new cipher: %w", err)
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("new gcm: %w", err)
	}

	nonce := make([]byte, aesgcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("nonce: %w", err)
	}

	ciphertext := aesgcm.Seal(nil, nonce, plaintext, nil)
	return append(nonce, ciphertext...), nil
}

// DecryptAES decrypts nonce+ciphertext produced by EncryptAES.
func DecryptAES(key, data []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("new cipher: %w", err)
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("new gcm: %w", err)
	}

	ns := aesgcm.NonceSize()
	if len(data) < ns {
		return nil, fmt.Errorf("cipher too short")
	}
	nonce, ciphertext := data[:ns], data[ns:]

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decrypt: %w", err)
	}
	return plaintext, nil
}
