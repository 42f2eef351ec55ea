package scanning

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/contre95/lyricfetch/src/features/config"
	"github.com/contre95/lyricfetch/src/features/sidecar"
	"github.com/contre95/lyricfetch/src/music"
	"github.com/google/uuid"
	ansi "github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"
)

// MetadataReader reads the tag fields needed to search lyrics for a file.
type MetadataReader interface {
	ReadTrack(ctx context.Context, path string) (*music.Track, error)
}

// Resolver searches the provider chain for lyrics.
type Resolver interface {
	Resolve(ctx context.Context, artist, title string) *music.Lyrics
}

// Stats accumulates the per-run counters reported in the scan summary.
type Stats struct {
	Processed int
	Found     int
	Skipped   int
	Errors    int
}

// Service walks a directory tree and drives metadata reading, lyrics
// resolution and sidecar persistence for every audio file found. Tracks are
// processed strictly one at a time.
type Service struct {
	reader   MetadataReader
	resolver Resolver
	store    *sidecar.Store
	config   *config.Manager
	sleep    func(time.Duration)
	progress bool
}

// NewService creates a new scanning service.
func NewService(reader MetadataReader, resolver Resolver, store *sidecar.Store, cfg *config.Manager) *Service {
	return &Service{
		reader:   reader,
		resolver: resolver,
		store:    store,
		config:   cfg,
		sleep:    time.Sleep,
		progress: true,
	}
}

// Scan processes every audio file under root. Per-file failures are logged
// and counted; only an unusable root directory is returned as an error.
func (s *Service) Scan(ctx context.Context, root string) (*Stats, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot access directory %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	logger := slog.Default().With("scan", uuid.NewString()[:8])

	files, err := s.collectAudioFiles(root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	if len(files) == 0 {
		logger.Info("No audio files found", "root", root)
		return &Stats{}, nil
	}
	logger.Info("Found audio files", "root", root, "count", len(files))

	var bar *progressbar.ProgressBar
	if s.progress {
		bar = progressbar.NewOptions(
			len(files),
			progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetTheme(progressbar.ThemeASCII),
			progressbar.OptionShowCount(),
			progressbar.OptionSetDescription("[cyan]Fetching lyrics...[reset]"),
		)
	}

	delay := time.Duration(s.config.Get().Scan.Delay * float64(time.Second))
	stats := &Stats{}
	for i, path := range files {
		select {
		case <-ctx.Done():
			logger.Info("Scan cancelled", "processed", stats.Processed)
			return stats, ctx.Err()
		default:
		}

		queried := s.processFile(ctx, logger, path, stats)
		if bar != nil {
			bar.Add(1)
		}
		// Be respectful to the APIs, but never sleep for tracks that
		// issued no query, or after the last one.
		if queried && delay > 0 && i < len(files)-1 {
			s.sleep(delay)
		}
	}

	logger.Info("Scan finished",
		"processed", stats.Processed,
		"found", stats.Found,
		"skipped", stats.Skipped,
		"errors", stats.Errors,
	)
	return stats, nil
}

// processFile handles one audio file and reports whether any network query
// was issued for it.
func (s *Service) processFile(ctx context.Context, logger *slog.Logger, path string, stats *Stats) bool {
	state := s.store.State(path)
	if state == sidecar.StateHasSynced {
		logger.Debug("Skipping, synced lyrics already exist", "path", path)
		stats.Skipped++
		return false
	}

	track, err := s.reader.ReadTrack(ctx, path)
	if err != nil {
		logger.Warn("Skipping, cannot read metadata", "path", path, "error", err.Error())
		stats.Errors++
		return false
	}

	logger.Info("Fetching lyrics", "artist", track.Artist, "title", track.Title, "path", path)
	lyrics := s.resolver.Resolve(ctx, track.Artist, track.Title)
	stats.Processed++

	action := sidecar.Decide(state, lyrics)
	if action == sidecar.Skip {
		if lyrics == nil && state == sidecar.StateNone {
			stats.Errors++
		} else {
			logger.Debug("Keeping existing sidecar", "path", path, "state", state.String())
			stats.Skipped++
		}
		return true
	}

	if err := s.store.Apply(path, action, lyrics); err != nil {
		logger.Error("Failed to write lyrics sidecar", "path", path, "action", action.String(), "error", err.Error())
		stats.Errors++
		return true
	}

	logger.Info("Saved lyrics", "path", path, "action", action.String(), "synced", lyrics.Synced)
	stats.Found++
	return true
}

// collectAudioFiles walks root and returns every file whose extension is on
// the configured allow-list, compared case-insensitively.
func (s *Service) collectAudioFiles(root string) ([]string, error) {
	allowed := make(map[string]bool)
	for _, ext := range s.config.Get().Scan.Extensions {
		allowed["."+strings.ToLower(strings.TrimPrefix(ext, "."))] = true
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Warn("Skipping unreadable path", "path", path, "error", err.Error())
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if allowed[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
