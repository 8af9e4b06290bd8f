package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"euclid-dex/pkg/wallet"
)

func TestStorageRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "session.json")
	s, err := NewStorage(path)
	require.NoError(t, err)
	require.Equal(t, path, s.GetFilePath())

	_, ok, err := s.Load()
	require.NoError(t, err)
	require.False(t, ok)

	want := wallet.Session{
		ID:          "f47ac10b-58cc-4372-a567-0e02b2c3d479",
		Address:     "osmo1holder",
		Kind:        wallet.KindCosmos,
		ChainID:     "osmosis",
		ConnectedAt: time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.Save(want))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())

	got, ok, err := s.Load()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, want, got)

	require.NoError(t, s.Clear())
	_, ok, err = s.Load()
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Clear(), "clearing twice is not an error")
}

func TestStorageCorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	s, err := NewStorage(path)
	require.NoError(t, err)

	_, _, err = s.Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to unmarshal session")

	var syntaxErr *json.SyntaxError
	require.ErrorAs(t, errors.Cause(err), &syntaxErr)
}
