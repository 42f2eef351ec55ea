package tag

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/contre95/lyricfetch/src/music"
	"github.com/dhowden/tag"
)

// ErrMissingTags is returned when a file has no usable artist or title tag.
// Callers skip the file and continue.
var ErrMissingTags = errors.New("missing artist or title tag")

// TagReader reads artist/title metadata using the dhowden/tag library.
type TagReader struct{}

// NewTagReader creates a new TagReader
func NewTagReader() *TagReader {
	return &TagReader{}
}

// ReadTrack reads the search-relevant tag fields from a music file.
func (r *TagReader) ReadTrack(ctx context.Context, filePath string) (*music.Track, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	tags, err := tag.ReadFrom(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read tags: %w", err)
	}

	track := &music.Track{
		Path:   filePath,
		Artist: strings.TrimSpace(tags.Artist()),
		Title:  strings.TrimSpace(tags.Title()),
	}
	if track.Artist == "" || track.Title == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingTags, filePath)
	}

	return track, nil
}
