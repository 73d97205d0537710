package session_test

import (
	"bytes"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskpad/internal/config"
	"taskpad/internal/session"
)

func newStore(t *testing.T) *session.Store {
	t.Helper()
	return session.NewStore(&config.Config{Dir: t.TempDir()})
}

func TestStore_AbsentSession(t *testing.T) {
	s := newStore(t)
	assert.Empty(t, s.Token())
	assert.Empty(t, s.Identity())
}

func TestStore_SetThenGet(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Set("T1", "a@x.com"))
	assert.Equal(t, "T1", s.Token())
	assert.Equal(t, "a@x.com", s.Identity())
}

func TestStore_SetOverwrites(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Set("T1", "a@x.com"))
	require.NoError(t, s.Set("T2", "b@y.com"))
	assert.Equal(t, "T2", s.Token())
	assert.Equal(t, "b@y.com", s.Identity())
}

func TestStore_Clear(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Set("T1", "a@x.com"))
	require.NoError(t, s.Clear())
	assert.Empty(t, s.Token())
	assert.Empty(t, s.Identity())

	// Clearing an absent session is not an error.
	require.NoError(t, s.Clear())
}

func TestStore_CorruptSessionFileIsLoggedOut(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}
	require.NoError(t, os.WriteFile(cfg.SessionPath(), []byte("{not json"), 0600))

	var logBuf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logBuf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	s := session.NewStore(cfg)
	assert.Empty(t, s.Token())
	assert.Empty(t, s.Identity())
	assert.Contains(t, logBuf.String(), cfg.SessionPath(),
		"a damaged session file should be reported, not silently ignored")
}
