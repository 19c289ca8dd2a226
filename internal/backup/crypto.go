package backup

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	keySize          = 32 // AES-256
	nonceSize        = 12 // GCM standard nonce size
	saltSize         = 16
	pbkdf2Iterations = 100000
)

// envelope wraps an encrypted backup payload. The nonce is prepended
// to the ciphertext inside Payload.
type envelope struct {
	Version   string `json:"version"`
	Encrypted bool   `json:"encrypted"`
	Salt      string `json:"salt"`
	Payload   string `json:"payload"`
}

// Encrypt seals backup JSON with AES-256-GCM under a key derived from
// the passphrase.
func Encrypt(plainJSON []byte, passphrase string) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}

	gcm, err := newGCM(passphrase, salt)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	sealed := gcm.Seal(nonce, nonce, plainJSON, nil)

	return json.MarshalIndent(envelope{
		Version:   Version,
		Encrypted: true,
		Salt:      base64.StdEncoding.EncodeToString(salt),
		Payload:   base64.StdEncoding.EncodeToString(sealed),
	}, "", "  ")
}

// Decrypt opens an encrypted backup file. A wrong passphrase or a
// corrupted payload yields a FormatError.
func Decrypt(data []byte, passphrase string) ([]byte, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &FormatError{Reason: err.Error()}
	}
	if !env.Encrypted {
		return nil, &FormatError{Reason: "backup is not encrypted"}
	}

	salt, err := base64.StdEncoding.DecodeString(env.Salt)
	if err != nil {
		return nil, &FormatError{Reason: "bad salt encoding"}
	}
	sealed, err := base64.StdEncoding.DecodeString(env.Payload)
	if err != nil {
		return nil, &FormatError{Reason: "bad payload encoding"}
	}
	if len(sealed) < nonceSize {
		return nil, &FormatError{Reason: "payload too short"}
	}

	gcm, err := newGCM(passphrase, salt)
	if err != nil {
		return nil, err
	}

	plain, err := gcm.Open(nil, sealed[:nonceSize], sealed[nonceSize:], nil)
	if err != nil {
		return nil, &FormatError{Reason: "decryption failed: wrong passphrase or corrupted data"}
	}
	return plain, nil
}

// IsEncrypted reports whether data looks like an encrypted backup
// envelope rather than a plain backup document.
func IsEncrypted(data []byte) bool {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return false
	}
	return env.Encrypted
}

func newGCM(passphrase string, salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key([]byte(passphrase), salt, pbkdf2Iterations, keySize, sha256.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
