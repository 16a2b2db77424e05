package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oderahub/stackpledge/identity"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore(t *testing.T) {
	s := openTemp(t)

	t.Run("EmptyLoad", func(t *testing.T) {
		entries, ok, err := s.LoadAddresses()
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, entries)
	})

	t.Run("SaveLoad", func(t *testing.T) {
		want := []identity.Entry{
			{Address: "SM1EXAMPLE", Symbol: "STX"},
			{Address: "SP1EXAMPLE", Symbol: "STX"},
			{Address: "bc1qexample", Symbol: "BTC"},
		}
		require.NoError(t, s.SaveAddresses(want))

		got, ok, err := s.LoadAddresses()
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	})

	t.Run("Clear", func(t *testing.T) {
		require.NoError(t, s.Clear())
		_, ok, err := s.LoadAddresses()
		require.NoError(t, err)
		assert.False(t, ok)

		// Clearing twice is fine.
		require.NoError(t, s.Clear())
	})
}

func TestStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.SaveAddresses([]identity.Entry{{Address: "SP1EXAMPLE", Symbol: "STX"}}))
	require.NoError(t, s.Close())

	s, err = Open(dir)
	require.NoError(t, err)
	defer s.Close()

	got, ok, err := s.LoadAddresses()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "SP1EXAMPLE", got[0].Address)
}
