package scanning

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/contre95/lyricfetch/src/features/config"
	"github.com/contre95/lyricfetch/src/features/sidecar"
	"github.com/contre95/lyricfetch/src/music"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReader serves scripted tracks keyed by file base name.
type fakeReader struct {
	tracks map[string]*music.Track
}

func (r *fakeReader) ReadTrack(ctx context.Context, path string) (*music.Track, error) {
	if track, ok := r.tracks[filepath.Base(path)]; ok {
		return track, nil
	}
	return nil, fmt.Errorf("missing artist or title tag: %s", path)
}

// fakeResolver returns the same result for every track and counts calls.
type fakeResolver struct {
	result *music.Lyrics
	calls  int
}

func (r *fakeResolver) Resolve(ctx context.Context, artist, title string) *music.Lyrics {
	r.calls++
	return r.result
}

func testConfig(delay float64) *config.Manager {
	return config.NewManager(&config.Config{
		Scan: config.Scan{
			Delay:      delay,
			Extensions: []string{"flac", "mp3", "m4a"},
		},
	})
}

func newTestService(reader MetadataReader, resolver Resolver, delay float64) (*Service, *[]time.Duration) {
	svc := NewService(reader, resolver, sidecar.NewStore(), testConfig(delay))
	svc.progress = false
	var slept []time.Duration
	svc.sleep = func(d time.Duration) { slept = append(slept, d) }
	return svc, &slept
}

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	return path
}

func TestScanRejectsBadRoot(t *testing.T) {
	svc, _ := newTestService(&fakeReader{}, &fakeResolver{}, 0)

	_, err := svc.Scan(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	file := touch(t, t.TempDir(), "file.mp3")
	_, err = svc.Scan(context.Background(), file)
	assert.Error(t, err)
}

func TestScanSyncedSidecarSkipsWithoutQuery(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "song.flac")
	touch(t, dir, "song.lrc")

	resolver := &fakeResolver{result: &music.Lyrics{Text: "should not be used"}}
	svc, slept := newTestService(&fakeReader{}, resolver, 1.0)

	stats, err := svc.Scan(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 0, resolver.calls, "synced sidecar means zero network requests")
	assert.Equal(t, 1, stats.Skipped)
	assert.Empty(t, *slept, "skipped tracks incur no delay")
}

func TestScanWritesPlainSidecar(t *testing.T) {
	dir := t.TempDir()
	audio := touch(t, dir, "song.mp3")

	reader := &fakeReader{tracks: map[string]*music.Track{
		"song.mp3": {Path: audio, Artist: "Queen", Title: "Bohemian Rhapsody"},
	}}
	resolver := &fakeResolver{result: &music.Lyrics{Text: "plain lyrics"}}
	svc, _ := newTestService(reader, resolver, 0)

	stats, err := svc.Scan(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Found)

	data, err := os.ReadFile(filepath.Join(dir, "song.txt"))
	require.NoError(t, err)
	assert.Equal(t, "plain lyrics", string(data))
}

func TestScanUpgradesPlainToSynced(t *testing.T) {
	dir := t.TempDir()
	audio := touch(t, dir, "song.flac")
	txt := touch(t, dir, "song.txt")

	reader := &fakeReader{tracks: map[string]*music.Track{
		"song.flac": {Path: audio, Artist: "Queen", Title: "Bohemian Rhapsody"},
	}}
	resolver := &fakeResolver{result: &music.Lyrics{Synced: true, Lines: []music.LyricLine{
		{At: 0, Text: "Is this the real life"},
		{At: 3500 * time.Millisecond, Text: "Is this just fantasy"},
	}}}
	svc, _ := newTestService(reader, resolver, 0)

	stats, err := svc.Scan(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Found)

	_, err = os.Stat(txt)
	assert.True(t, os.IsNotExist(err), "plain sidecar should be replaced")

	data, err := os.ReadFile(filepath.Join(dir, "song.lrc"))
	require.NoError(t, err)
	assert.Equal(t, "[00:00.00]Is this the real life\n[00:03.50]Is this just fantasy", string(data))
}

func TestScanKeepsPlainWhenOnlyPlainFound(t *testing.T) {
	dir := t.TempDir()
	audio := touch(t, dir, "song.flac")
	txt := filepath.Join(dir, "song.txt")
	require.NoError(t, os.WriteFile(txt, []byte("existing plain"), 0644))

	reader := &fakeReader{tracks: map[string]*music.Track{
		"song.flac": {Path: audio, Artist: "Queen", Title: "Bohemian Rhapsody"},
	}}
	resolver := &fakeResolver{result: &music.Lyrics{Text: "newer plain"}}
	svc, _ := newTestService(reader, resolver, 0)

	stats, err := svc.Scan(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Skipped)

	data, err := os.ReadFile(txt)
	require.NoError(t, err)
	assert.Equal(t, "existing plain", string(data), "plain sidecar is never rewritten")
}

func TestScanMissingMetadata(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "untagged.mp3")

	resolver := &fakeResolver{result: &music.Lyrics{Text: "never"}}
	svc, slept := newTestService(&fakeReader{}, resolver, 1.0)

	stats, err := svc.Scan(context.Background(), dir)
	require.NoError(t, err, "missing tags never abort the scan")
	assert.Equal(t, 0, resolver.calls)
	assert.Equal(t, 1, stats.Errors)
	assert.Empty(t, *slept)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no sidecar created for untagged file")
}

func TestScanZeroDelayStillResolvesEveryTrack(t *testing.T) {
	dir := t.TempDir()
	reader := &fakeReader{tracks: map[string]*music.Track{}}
	for _, name := range []string{"a.mp3", "b.flac", "c.m4a"} {
		path := touch(t, dir, name)
		reader.tracks[name] = &music.Track{Path: path, Artist: "Artist", Title: "Title"}
	}

	resolver := &fakeResolver{result: &music.Lyrics{Text: "plain"}}
	svc, slept := newTestService(reader, resolver, 0)

	stats, err := svc.Scan(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 3, resolver.calls)
	assert.Equal(t, 3, stats.Found)
	assert.Empty(t, *slept, "delay 0 means no sleeping at all")
}

func TestScanDelaysBetweenQueriedTracks(t *testing.T) {
	dir := t.TempDir()
	reader := &fakeReader{tracks: map[string]*music.Track{}}
	for _, name := range []string{"a.mp3", "b.mp3", "c.mp3"} {
		path := touch(t, dir, name)
		reader.tracks[name] = &music.Track{Path: path, Artist: "Artist", Title: "Title"}
	}

	resolver := &fakeResolver{result: &music.Lyrics{Text: "plain"}}
	svc, slept := newTestService(reader, resolver, 2.0)

	_, err := svc.Scan(context.Background(), dir)
	require.NoError(t, err)
	// No pause after the last track.
	require.Len(t, *slept, 2)
	assert.Equal(t, 2*time.Second, (*slept)[0])
}

func TestCollectAudioFilesFiltersExtensions(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "keep.mp3")
	touch(t, dir, "KEEP.FLAC")
	touch(t, dir, "skip.ogg")
	touch(t, dir, "skip.txt")
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0755))
	touch(t, sub, "deep.m4a")

	svc, _ := newTestService(&fakeReader{}, &fakeResolver{}, 0)
	files, err := svc.collectAudioFiles(dir)
	require.NoError(t, err)
	assert.Len(t, files, 3, "extension match is case-insensitive and recursive")
}
