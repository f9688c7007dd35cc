package memory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/viewsync/internal/core/domain"
)

func TestPreferenceStore_GetMissing(t *testing.T) {
	store := NewPreferenceStore()

	_, err := store.Get("viewsync.layout")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPreferenceStore_PutGet(t *testing.T) {
	store := NewPreferenceStore()

	value := []byte(`{"dividerPosition":0.4}`)
	require.NoError(t, store.Put("viewsync.layout", value))

	// Mutating the caller's slice must not reach the store.
	value[0] = 'X'

	got, err := store.Get("viewsync.layout")
	require.NoError(t, err)
	assert.Equal(t, `{"dividerPosition":0.4}`, string(got))
	assert.Equal(t, 1, store.Puts())
}

func TestPreferenceStore_InjectedFailures(t *testing.T) {
	store := NewPreferenceStore()
	require.NoError(t, store.Put("k", []byte("v")))

	quota := errors.New("quota exceeded")
	store.FailPuts(quota)
	assert.ErrorIs(t, store.Put("k", []byte("w")), quota)

	store.FailGets(domain.ErrStorageUnavailable)
	_, err := store.Get("k")
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)

	store.FailGets(nil)
	store.FailPuts(nil)
	got, err := store.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
	assert.Equal(t, 1, store.Puts())
}
