// Package crypt seals checkout drafts before they reach the session
// store, so card fields are never readable at rest. AES-256-GCM with a
// random nonce, output base64url encoded as nonce || ciphertext || tag
// in one string.
//
//	enc, _ := crypt.EncryptJSON(state)
//	var state checkout.State
//	err := crypt.DecryptJSON(enc, &state)
package crypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/shashiranjanraj/aushadhi/config"
)

// ErrDecrypt covers bad encoding, truncation, and failed authentication
// alike, so callers cannot distinguish tampering from corruption.
var ErrDecrypt = errors.New("crypt: decryption failed")

// aead builds the AES-GCM cipher from APP_KEY, falling back to the JWT
// secret. The secret is stretched to 32 bytes with SHA-256.
func aead() (cipher.AEAD, error) {
	secret := config.Get("APP_KEY", config.JWTSecret())
	if secret == "" {
		return nil, errors.New("crypt: APP_KEY not configured")
	}
	k := sha256.Sum256([]byte(secret))
	block, err := aes.NewCipher(k[:])
	if err != nil {
		return nil, fmt.Errorf("crypt: new cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("crypt: new GCM: %w", err)
	}
	return gcm, nil
}

// Encrypt seals plaintext and returns the encoded result.
func Encrypt(plaintext string) (string, error) {
	return EncryptBytes([]byte(plaintext))
}

// EncryptBytes seals data under a fresh random nonce.
func EncryptBytes(data []byte) (string, error) {
	gcm, err := aead()
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("crypt: nonce: %w", err)
	}
	sealed := gcm.Seal(nonce, nonce, data, nil)
	return base64.URLEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt.
func Decrypt(encoded string) (string, error) {
	b, err := DecryptBytes(encoded)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecryptBytes opens an encoded ciphertext, verifying its tag.
func DecryptBytes(encoded string) ([]byte, error) {
	gcm, err := aead()
	if err != nil {
		return nil, err
	}
	data, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrDecrypt
	}
	if len(data) < gcm.NonceSize() {
		return nil, ErrDecrypt
	}
	nonce, sealed := data[:gcm.NonceSize()], data[gcm.NonceSize():]
	plain, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrDecrypt
	}
	return plain, nil
}

// EncryptJSON marshals v and seals the result.
func EncryptJSON(v interface{}) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("crypt: marshal: %w", err)
	}
	return EncryptBytes(raw)
}

// DecryptJSON opens encoded and unmarshals it into dest.
func DecryptJSON(encoded string, dest interface{}) error {
	raw, err := DecryptBytes(encoded)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("crypt: unmarshal: %w", err)
	}
	return nil
}

// Hash returns the SHA-256 hex digest of input.
func Hash(input string) string {
	h := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", h)
}
