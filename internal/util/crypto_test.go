package util

import (
	"bytes"
	"strings"
	"testing"
)

// ============ Cipher ============

func TestCipher_RoundTrip(t *testing.T) {
	c := NewCipher("test-encryption-key")

	testCases := []string{
		"PATCH /api/sessions/abc/completed",
		"中文测试",
		"Special!@#$%^&*()",
		strings.Repeat("A", 1000),
	}

	for _, plain := range testCases {
		enc, err := c.EncryptString(plain)
		if err != nil {
			t.Fatalf("EncryptString(%q) error = %v", plain, err)
		}
		if enc == plain {
			t.Errorf("EncryptString(%q) returned plaintext", plain)
		}
		if got := c.DecryptString(enc); got != plain {
			t.Errorf("DecryptString() = %q, want %q", got, plain)
		}
	}
}

func TestCipher_EmptyPassphrasePassesThrough(t *testing.T) {
	c := NewCipher("")
	if c.Enabled() {
		t.Fatal("Enabled() = true for empty passphrase")
	}
	enc, err := c.EncryptString("POST /api/sessions")
	if err != nil || enc != "POST /api/sessions" {
		t.Errorf("EncryptString() = %q, %v; want passthrough", enc, err)
	}
	if got := c.DecryptString("plain"); got != "plain" {
		t.Errorf("DecryptString() = %q, want passthrough", got)
	}
}

func TestCipher_WrongKeyReturnsStored(t *testing.T) {
	enc, _ := NewCipher("correct-key").EncryptString("secret")
	if got := NewCipher("wrong-key").DecryptString(enc); got != enc {
		t.Errorf("DecryptString() with wrong key = %q, want stored value", got)
	}
	if got := NewCipher("k").DecryptString("not base64 !!"); got != "not base64 !!" {
		t.Errorf("DecryptString() of garbage = %q, want stored value", got)
	}
}

func TestCipher_SamePassphraseSameKey(t *testing.T) {
	a, b := NewCipher("shared"), NewCipher("shared")
	if !bytes.Equal(a.key, b.key) {
		t.Error("same passphrase derived different keys")
	}
	if bytes.Equal(a.key, NewCipher("other").key) {
		t.Error("different passphrases derived the same key")
	}
	if len(a.key) != 32 {
		t.Errorf("key length = %d, want 32", len(a.key))
	}
}

// ============ AES ============

func TestDecryptAES_InvalidData(t *testing.T) {
	key := bytes.Repeat([]byte{1}, 32)

	if _, err := DecryptAES(key, []byte{1, 2, 3}); err == nil {
		t.Error("DecryptAES(short) error = nil, want error")
	}
	if _, err := DecryptAES(key, []byte{}); err == nil {
		t.Error("DecryptAES(empty) error = nil, want error")
	}
}

func TestEncryptAES_RandomNonce(t *testing.T) {
	key := bytes.Repeat([]byte{7}, 32)
	a, _ := EncryptAES(key, []byte("same"))
	b, _ := EncryptAES(key, []byte("same"))
	if bytes.Equal(a, b) {
		t.Error("EncryptAES() produced identical ciphertexts")
	}
}

// ============ benchmarks ============

func BenchmarkCipherEncrypt(b *testing.B) {
	c := NewCipher("bench-key")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.EncryptString("PATCH /api/sessions/x/cancel")
	}
}
