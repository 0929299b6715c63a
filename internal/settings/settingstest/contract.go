// Package settingstest holds the behaviour every settings backend must share.
package settingstest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/jackdaw/internal/settings"
)

// RunStoreContract exercises s against the settings.Store contract.
// s must start empty.
func RunStoreContract(t *testing.T, s settings.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("MissingKey", func(t *testing.T) {
		_, err := s.Get(ctx, settings.KeyEUI64)
		assert.True(t, errors.Is(err, settings.ErrNotFound), "got %v", err)
	})

	t.Run("SetGet", func(t *testing.T) {
		want := []byte{0x02, 0x11, 0x22, 0xFF, 0xFE, 0x33, 0x44, 0x55}
		require.NoError(t, s.Set(ctx, settings.KeyEUI64, want))

		got, err := s.Get(ctx, settings.KeyEUI64)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, settings.KeyChannel, []byte{11}))
		require.NoError(t, s.Set(ctx, settings.KeyChannel, []byte{26}))

		got, err := settings.GetUint8(ctx, s, settings.KeyChannel)
		require.NoError(t, err)
		assert.Equal(t, uint8(26), got)
	})

	t.Run("Uint16", func(t *testing.T) {
		require.NoError(t, settings.SetUint16(ctx, s, settings.KeyPanID, 0xABCD))

		got, err := settings.GetUint16(ctx, s, settings.KeyPanID)
		require.NoError(t, err)
		assert.Equal(t, uint16(0xABCD), got)
	})

	t.Run("WrongSize", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, settings.KeyTxPower, []byte{1, 2, 3}))

		_, err := settings.GetUint8(ctx, s, settings.KeyTxPower)
		assert.True(t, errors.Is(err, settings.ErrSize), "got %v", err)
	})

	t.Run("ReturnedSliceIsCopy", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, settings.KeyPanAddr, []byte{0xFF, 0xFF}))

		got, err := s.Get(ctx, settings.KeyPanAddr)
		require.NoError(t, err)
		got[0] = 0

		again, err := s.Get(ctx, settings.KeyPanAddr)
		require.NoError(t, err)
		assert.Equal(t, []byte{0xFF, 0xFF}, again)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, settings.KeyEUI64))
		_, err := s.Get(ctx, settings.KeyEUI64)
		assert.True(t, errors.Is(err, settings.ErrNotFound), "got %v", err)

		// deleting again is fine
		require.NoError(t, s.Delete(ctx, settings.KeyEUI64))
	})
}
