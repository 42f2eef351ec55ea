package sidecar

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/contre95/lyricfetch/src/music"
)

// State describes which lyrics sidecar files already exist next to an audio
// file. It is derived from the filesystem on every look, never stored.
type State int

const (
	StateNone State = iota
	StateHasPlain
	StateHasSynced
)

func (s State) String() string {
	switch s {
	case StateHasPlain:
		return "plain"
	case StateHasSynced:
		return "synced"
	default:
		return "none"
	}
}

// Action is the persistence decision for one (state, result) pair.
type Action int

const (
	Skip Action = iota
	WritePlain
	WriteSynced
	UpgradeToSynced
)

func (a Action) String() string {
	switch a {
	case WritePlain:
		return "write_plain"
	case WriteSynced:
		return "write_synced"
	case UpgradeToSynced:
		return "upgrade_to_synced"
	default:
		return "skip"
	}
}

// Store inspects and writes .lrc/.txt sidecar files next to audio files.
type Store struct{}

// NewStore creates a new sidecar store.
func NewStore() *Store {
	return &Store{}
}

// LRCPath returns the synced sidecar path for an audio file.
func (s *Store) LRCPath(audioPath string) string {
	return replaceExt(audioPath, ".lrc")
}

// TxtPath returns the plain sidecar path for an audio file.
func (s *Store) TxtPath(audioPath string) string {
	return replaceExt(audioPath, ".txt")
}

// State checks which sidecar files exist for the audio file. An existing
// .lrc wins over a coexisting .txt.
func (s *Store) State(audioPath string) State {
	if fileExists(s.LRCPath(audioPath)) {
		return StateHasSynced
	}
	if fileExists(s.TxtPath(audioPath)) {
		return StateHasPlain
	}
	return StateNone
}

// Decide maps an existing sidecar state and a resolution result to the
// action to take. The matrix is spelled out pair by pair so every branch of
// the skip/write/upgrade behavior stays auditable.
func Decide(state State, result *music.Lyrics) Action {
	switch {
	case state == StateHasSynced:
		return Skip
	case result == nil:
		return Skip
	case state == StateHasPlain && !result.Synced:
		return Skip
	case state == StateHasPlain && result.Synced:
		return UpgradeToSynced
	case state == StateNone && result.Synced:
		return WriteSynced
	default: // StateNone, plain result
		return WritePlain
	}
}

// Apply executes the action for the audio file. Writes are whole-file
// overwrites; an upgrade removes the old .txt only after the .lrc has been
// written so the track is never left with neither sidecar.
func (s *Store) Apply(audioPath string, action Action, lyrics *music.Lyrics) error {
	switch action {
	case Skip:
		return nil
	case WritePlain:
		return s.writeFile(s.TxtPath(audioPath), lyrics.Text)
	case WriteSynced:
		return s.writeFile(s.LRCPath(audioPath), music.FormatLRC(lyrics.Lines))
	case UpgradeToSynced:
		if err := s.writeFile(s.LRCPath(audioPath), music.FormatLRC(lyrics.Lines)); err != nil {
			return err
		}
		if err := os.Remove(s.TxtPath(audioPath)); err != nil && !os.IsNotExist(err) {
			slog.Warn("Failed to remove plain sidecar after upgrade", "path", s.TxtPath(audioPath), "error", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown sidecar action: %d", action)
	}
}

func (s *Store) writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write sidecar %s: %w", path, err)
	}
	slog.Debug("Wrote sidecar", "path", path, "bytes", len(content))
	return nil
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
