package middleware_test

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"io"
	"testing"

	"github.com/p2lu/turingtoy/pkg/adapters/memory"
	"github.com/p2lu/turingtoy/pkg/domain"
	"github.com/p2lu/turingtoy/pkg/persistence/middleware"
	"github.com/p2lu/turingtoy/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateKey(t *testing.T) []byte {
	k := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, k); err != nil {
		t.Fatal(err)
	}
	return k
}

func encrypted(t *testing.T, inner ports.ResultStore, cfg middleware.EncryptionConfig) ports.ResultStore {
	mw, err := middleware.NewEncryptionMiddleware(cfg)
	require.NoError(t, err)
	return mw(inner)
}

func secretResult() *domain.Result {
	return &domain.Result{
		Tape: "10110",
		History: []domain.HistoryEntry{
			{State: "s", Reading: "1", Position: 0, Memory: "10110", Transition: domain.NewInstruction(domain.MoveEntry(domain.Right, ""))},
		},
		Halted:     true,
		FinalState: domain.DoneState,
		Steps:      1,
		Reason:     domain.HaltAccepted,
	}
}

func TestEncryptionMiddleware_Contract(t *testing.T) {
	ports.RunResultStoreContract(t, encrypted(t, memory.NewStore(), middleware.EncryptionConfig{ActiveKey: generateKey(t)}))
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	ctx := context.Background()
	inner := memory.NewStore()
	store := encrypted(t, inner, middleware.EncryptionConfig{ActiveKey: generateKey(t)})

	require.NoError(t, store.Save(ctx, "run-1", secretResult()))

	envelope, err := inner.Load(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, middleware.EnvelopeState, envelope.FinalState)
	assert.NotEqual(t, "10110", envelope.Tape)
	assert.Empty(t, envelope.History)
	assert.True(t, envelope.Halted)
	assert.Equal(t, 1, envelope.Steps)

	loaded, err := store.Load(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, secretResult(), loaded)
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	ctx := context.Background()
	inner := memory.NewStore()
	oldKey, newKey := generateKey(t), generateKey(t)

	require.NoError(t, encrypted(t, inner, middleware.EncryptionConfig{ActiveKey: oldKey}).Save(ctx, "run-1", secretResult()))

	rotated := encrypted(t, inner, middleware.EncryptionConfig{ActiveKey: newKey, FallbackKeys: [][]byte{oldKey}})
	loaded, err := rotated.Load(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "10110", loaded.Tape)

	withoutFallback := encrypted(t, inner, middleware.EncryptionConfig{ActiveKey: newKey})
	_, err = withoutFallback.Load(ctx, "run-1")
	assert.Error(t, err)
}

func TestEncryptionMiddleware_RejectsPlainResults(t *testing.T) {
	ctx := context.Background()
	inner := memory.NewStore()
	require.NoError(t, inner.Save(ctx, "plain", secretResult()))

	store := encrypted(t, inner, middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	_, err := store.Load(ctx, "plain")
	assert.ErrorIs(t, err, middleware.ErrNotEncrypted)
}

func TestNewEncryptionMiddleware_KeySize(t *testing.T) {
	_, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short")})
	assert.ErrorIs(t, err, middleware.ErrKeySize)

	_, err = middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    generateKey(t),
		FallbackKeys: [][]byte{[]byte("short")},
	})
	assert.ErrorIs(t, err, middleware.ErrKeySize)
}

func TestParseKey(t *testing.T) {
	key := generateKey(t)

	got, err := middleware.ParseKey(base64.StdEncoding.EncodeToString(key))
	require.NoError(t, err)
	assert.Equal(t, key, got)

	got, err = middleware.ParseKey("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	assert.Len(t, got, 32)

	_, err = middleware.ParseKey("too-short")
	assert.ErrorIs(t, err, middleware.ErrKeySize)
}

func TestChain(t *testing.T) {
	var order []string
	tag := func(name string) middleware.Middleware {
		return func(next ports.ResultStore) ports.ResultStore {
			order = append(order, name)
			return next
		}
	}

	middleware.Chain(memory.NewStore(), tag("outer"), tag("inner"))
	assert.Equal(t, []string{"inner", "outer"}, order)
}
