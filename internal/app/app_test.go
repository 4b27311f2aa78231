package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/five82/standups/internal/config"
	"github.com/five82/standups/internal/prefs"
	"github.com/five82/standups/internal/speech"
	"github.com/five82/standups/internal/standup"
	"github.com/five82/standups/internal/storage"
)

func TestOpenGateway_DemoIsSeeded(t *testing.T) {
	gateway, closeGateway, err := openGateway(config.Default(), true)
	require.NoError(t, err)
	defer func() { require.NoError(t, closeGateway()) }()

	standups, err := storage.NewStore(gateway).Load()
	require.NoError(t, err)
	require.Len(t, standups, 1)
	assert.Equal(t, "Design", standups[0].Title)
}

func TestOpenGateway_FilesUsesDataDir(t *testing.T) {
	cfg := config.Default()
	cfg.DataDir = t.TempDir()

	gateway, closeGateway, err := openGateway(cfg, false)
	require.NoError(t, err)
	defer func() { require.NoError(t, closeGateway()) }()

	require.NoError(t, storage.NewStore(gateway).Save([]standup.Standup{standup.Mock()}))
	assert.FileExists(t, filepath.Join(cfg.DataDir, storage.Key))
}

func TestOpenGateway_Bolt(t *testing.T) {
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	cfg.Storage = config.BackendBolt

	gateway, closeGateway, err := openGateway(cfg, false)
	require.NoError(t, err)

	store := storage.NewStore(gateway)
	require.NoError(t, store.Save([]standup.Standup{standup.Mock()}))
	require.NoError(t, closeGateway())
	assert.FileExists(t, cfg.StoragePath())

	gateway, closeGateway, err = openGateway(cfg, false)
	require.NoError(t, err)
	defer func() { require.NoError(t, closeGateway()) }()
	standups, err := storage.NewStore(gateway).Load()
	require.NoError(t, err)
	assert.Len(t, standups, 1)
}

func TestLoadStandups_Demo(t *testing.T) {
	standups, err := LoadStandups(Options{
		ConfigPath: filepath.Join(t.TempDir(), "config.toml"),
		Demo:       true,
	})
	require.NoError(t, err)
	require.Len(t, standups, 1)
	assert.Len(t, standups[0].Attendees, 6)
}

func TestSpeechClient_RemembersAnswer(t *testing.T) {
	dir := t.TempDir()
	prefsPath := filepath.Join(dir, "prefs.toml")
	cfg := config.Default()
	cfg.TranscriptFile = filepath.Join(dir, "dictation.txt")

	client := speechClient(cfg, prefs.Prefs{}, Options{PrefsPath: prefsPath}, zap.NewNop())
	require.Equal(t, speech.Authorized, client.RequestAuthorization(context.Background()))

	saved, err := prefs.Load(prefsPath)
	require.NoError(t, err)
	assert.Equal(t, "authorized", saved.Speech)
}

func TestSpeechClient_StoredAnswerWins(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.TranscriptFile = filepath.Join(dir, "dictation.txt")

	client := speechClient(cfg, prefs.Prefs{Speech: "denied"}, Options{PrefsPath: filepath.Join(dir, "prefs.toml")}, zap.NewNop())
	assert.Equal(t, speech.Denied, client.RequestAuthorization(context.Background()))
}

func TestSpeechClient_NoTranscriptFile(t *testing.T) {
	client := speechClient(config.Default(), prefs.Prefs{}, Options{PrefsPath: filepath.Join(t.TempDir(), "prefs.toml")}, zap.NewNop())
	assert.Equal(t, speech.Restricted, client.RequestAuthorization(context.Background()))
}
