package music

import (
	"fmt"
	"strings"
)

// Track represents a single audio file and the tag fields needed to search
// for its lyrics. It is read once from the file and never mutated.
type Track struct {
	Path   string
	Artist string
	Title  string
}

// Validate validates the track fields.
func (t *Track) Validate() error {
	if strings.TrimSpace(t.Path) == "" {
		return fmt.Errorf("track path cannot be empty")
	}
	if strings.TrimSpace(t.Artist) == "" {
		return fmt.Errorf("track artist cannot be empty: path -> %s", t.Path)
	}
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("track title cannot be empty: path -> %s", t.Path)
	}
	return nil
}

// SearchParams contains parameters for searching lyrics.
type SearchParams struct {
	Artist string
	Title  string
}

// Empty reports whether the params carry no usable search terms.
func (p SearchParams) Empty() bool {
	return strings.TrimSpace(p.Artist) == "" || strings.TrimSpace(p.Title) == ""
}
