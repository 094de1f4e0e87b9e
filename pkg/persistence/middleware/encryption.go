package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/p2lu/turingtoy/pkg/domain"
	"github.com/p2lu/turingtoy/pkg/ports"
)

// EnvelopeState is the final state recorded on encrypted envelopes.
const EnvelopeState = "encrypted"

// ErrKeySize is returned when a key is not 32 bytes long.
var ErrKeySize = errors.New("encryption key must be 32 bytes (AES-256)")

// ErrNotEncrypted is returned when a stored result is not an encrypted envelope.
var ErrNotEncrypted = errors.New("stored result is not an encrypted envelope")

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey encrypts new results.
	ActiveKey []byte

	// FallbackKeys are tried in order when the active key cannot decrypt a result.
	FallbackKeys [][]byte
}

type encryptionMiddleware struct {
	next   ports.ResultStore
	config EncryptionConfig
}

// NewEncryptionMiddleware creates a middleware that seals results with AES-GCM.
// The inner store only sees an envelope whose Tape holds the base64 ciphertext;
// Halted, Steps and Reason stay readable for listing and monitoring.
func NewEncryptionMiddleware(config EncryptionConfig) (Middleware, error) {
	if len(config.ActiveKey) != 32 {
		return nil, ErrKeySize
	}
	for i, k := range config.FallbackKeys {
		if len(k) != 32 {
			return nil, fmt.Errorf("fallback key %d: %w", i, ErrKeySize)
		}
	}
	return func(next ports.ResultStore) ports.ResultStore {
		return &encryptionMiddleware{next: next, config: config}
	}, nil
}

func (m *encryptionMiddleware) Save(ctx context.Context, runID string, result *domain.Result) error {
	plainText, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	ciphertext, err := encrypt(plainText, m.config.ActiveKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt result: %w", err)
	}

	envelope := &domain.Result{
		Tape:       base64.StdEncoding.EncodeToString(ciphertext),
		Halted:     result.Halted,
		FinalState: EnvelopeState,
		Steps:      result.Steps,
		Reason:     result.Reason,
	}
	return m.next.Save(ctx, runID, envelope)
}

func (m *encryptionMiddleware) Load(ctx context.Context, runID string) (*domain.Result, error) {
	envelope, err := m.next.Load(ctx, runID)
	if err != nil {
		return nil, err
	}
	if envelope.FinalState != EnvelopeState {
		return nil, fmt.Errorf("run %q: %w", runID, ErrNotEncrypted)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(envelope.Tape)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext base64: %w", err)
	}

	plainText, err := decryptWithRotation(ciphertext, m.config.ActiveKey, m.config.FallbackKeys)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt result: %w", err)
	}

	var result domain.Result
	if err := json.Unmarshal(plainText, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal decrypted result: %w", err)
	}
	return &result, nil
}

func (m *encryptionMiddleware) Delete(ctx context.Context, runID string) error {
	return m.next.Delete(ctx, runID)
}

func (m *encryptionMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func encrypt(plaintext, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decryptWithRotation(ciphertext, activeKey []byte, fallbackKeys [][]byte) ([]byte, error) {
	for _, key := range append([][]byte{activeKey}, fallbackKeys...) {
		if plain, err := decrypt(ciphertext, key); err == nil {
			return plain, nil
		}
	}
	return nil, errors.New("decryption failed with all available keys")
}

func decrypt(ciphertext, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}
	nonce, body := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, body, nil)
}

// ParseKey decodes a 32-byte key given as base64 (standard or URL alphabet) or as raw text.
func ParseKey(s string) ([]byte, error) {
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.URLEncoding, base64.RawStdEncoding, base64.RawURLEncoding} {
		if k, err := enc.DecodeString(s); err == nil && len(k) == 32 {
			return k, nil
		}
	}
	if len(s) == 32 {
		return []byte(s), nil
	}
	return nil, ErrKeySize
}
