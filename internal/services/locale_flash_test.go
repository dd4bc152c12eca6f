package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deliverypro-backend-go/internal/session"
)

// memStore is an in-memory session.Store for exercising locale and flash
// behavior without Redis.
type memStore struct {
	data map[string]map[string]string
}

func newMemStore() *memStore {
	return &memStore{data: map[string]map[string]string{}}
}

func (m *memStore) Get(_ context.Context, sid, field string) (string, error) {
	return m.data[sid][field], nil
}

func (m *memStore) Set(_ context.Context, sid, field, value string) error {
	if m.data[sid] == nil {
		m.data[sid] = map[string]string{}
	}
	m.data[sid][field] = value
	return nil
}

func (m *memStore) Delete(_ context.Context, sid string, fields ...string) error {
	if len(fields) == 0 {
		delete(m.data, sid)
		return nil
	}
	for _, field := range fields {
		delete(m.data[sid], field)
	}
	return nil
}

func TestResolveLocaleDefaults(t *testing.T) {
	store := newMemStore()
	locale := ResolveLocale(context.Background(), store, "s1", "")
	assert.Equal(t, Locale{Lang: LangArabic, Dir: DirRTL}, locale)
}

func TestResolveLocaleOverridePersists(t *testing.T) {
	store := newMemStore()
	locale := ResolveLocale(context.Background(), store, "s1", "fr")
	assert.Equal(t, Locale{Lang: LangFrench, Dir: DirLTR}, locale)

	// Later requests without an override keep the session's choice.
	locale = ResolveLocale(context.Background(), store, "s1", "")
	assert.Equal(t, LangFrench, locale.Lang)
}

func TestResolveLocaleInvalidFallsBack(t *testing.T) {
	store := newMemStore()
	// Regional variants and aliases of the supported languages are still
	// outside the allow-list and reset to the primary locale.
	for _, code := range []string{"en", "xx", "de-DE", "!!", "fr-CA", "fr-FR", "FR", "ar-EG", "arb"} {
		locale := ResolveLocale(context.Background(), store, "s1", code)
		assert.Equal(t, LangArabic, locale.Lang, code)
		assert.Equal(t, DirRTL, locale.Dir, code)
		// The fallback is written back to the session.
		assert.Equal(t, LangArabic, store.data["s1"][session.FieldLang], code)
	}
}

func TestFlashSingleRead(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()

	require.NoError(t, SetFlash(ctx, store, "s1", "success", "saved"))

	flash, err := GetFlash(ctx, store, "s1")
	require.NoError(t, err)
	require.NotNil(t, flash)
	assert.Equal(t, "success", flash.Kind)
	assert.Equal(t, "saved", flash.Message)
	assert.Equal(t, "check-circle", flash.Icon)
	assert.Equal(t, "success", flash.Class)

	// Consumed on first read.
	flash, err = GetFlash(ctx, store, "s1")
	require.NoError(t, err)
	assert.Nil(t, flash)
}

func TestFlashOverwrite(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()

	require.NoError(t, SetFlash(ctx, store, "s1", "success", "first"))
	require.NoError(t, SetFlash(ctx, store, "s1", "error", "second"))

	flash, err := GetFlash(ctx, store, "s1")
	require.NoError(t, err)
	require.NotNil(t, flash)
	assert.Equal(t, "second", flash.Message)
	assert.Equal(t, "danger", flash.Class)
	assert.Equal(t, "exclamation-triangle", flash.Icon)
}

func TestFlashKindTokens(t *testing.T) {
	assert.Equal(t, "exclamation-circle", flashIcon("warning"))
	assert.Equal(t, "warning", flashClass("warning"))
	assert.Equal(t, "exclamation-triangle", flashIcon("info"))
	assert.Equal(t, "info", flashClass("info"))
}
