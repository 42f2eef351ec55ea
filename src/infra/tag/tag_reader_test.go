package tag

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	id3v2 "github.com/bogem/id3v2/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeMP3 creates an MP3 file carrying only an ID3v2 tag with the given fields.
func writeMP3(t *testing.T, dir, name, artist, title string) string {
	t.Helper()
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	tagFile, err := id3v2.Open(path, id3v2.Options{Parse: true})
	require.NoError(t, err)
	if artist != "" {
		tagFile.SetArtist(artist)
	}
	if title != "" {
		tagFile.SetTitle(title)
	}
	require.NoError(t, tagFile.Save())
	require.NoError(t, tagFile.Close())

	return path
}

func TestReadTrack(t *testing.T) {
	dir := t.TempDir()
	path := writeMP3(t, dir, "song.mp3", "Queen", "Bohemian Rhapsody")

	reader := NewTagReader()
	track, err := reader.ReadTrack(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Queen", track.Artist)
	assert.Equal(t, "Bohemian Rhapsody", track.Title)
	assert.Equal(t, path, track.Path)
}

func TestReadTrackMissingTags(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name   string
		artist string
		title  string
	}{
		{"no artist", "", "Bohemian Rhapsody"},
		{"no title", "Queen", ""},
		{"whitespace only", "   ", "  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeMP3(t, dir, tt.name+".mp3", tt.artist, tt.title)

			reader := NewTagReader()
			_, err := reader.ReadTrack(context.Background(), path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMissingTags))
		})
	}
}

func TestReadTrackUnreadableFile(t *testing.T) {
	reader := NewTagReader()
	_, err := reader.ReadTrack(context.Background(), filepath.Join(t.TempDir(), "missing.mp3"))
	assert.Error(t, err)
}

func TestReadTrackNotAnAudioFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "junk.mp3")
	require.NoError(t, os.WriteFile(path, []byte("definitely not audio"), 0644))

	reader := NewTagReader()
	_, err := reader.ReadTrack(context.Background(), path)
	assert.Error(t, err)
}
