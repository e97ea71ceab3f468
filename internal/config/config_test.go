package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsPort(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "client.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  host: jj2.example.com\nlocal_players:\n  - Spaz\nfeatures:\n  bot: true\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "jj2.example.com", cfg.Server.Host)
	require.Equal(t, DefaultPort, cfg.Server.Port)
	require.Equal(t, []string{"Spaz"}, cfg.LocalPlayers)
	require.Equal(t, true, cfg.SessionConfig()["bot"])
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
