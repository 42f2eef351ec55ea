package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/contre95/lyricfetch/src/music"
)

// LRCLib API response structures
type lrclibSearchResponse []lrclibSong

type lrclibSong struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Artist       string  `json:"artistName"`
	Album        string  `json:"albumName"`
	Duration     float64 `json:"duration"`
	PlainLyrics  string  `json:"plainLyrics"`
	SyncedLyrics string  `json:"syncedLyrics"`
}

// LRCLibProvider fetches lyrics from LRCLib. It is the only provider in the
// chain that can return synced lyrics.
type LRCLibProvider struct {
	enabled   bool
	client    *http.Client
	userAgent string
	timeout   time.Duration
	baseURL   string
}

// NewLRCLibProvider creates a new LRCLib provider
func NewLRCLibProvider(enabled bool, client *http.Client, userAgent string, timeout time.Duration) *LRCLibProvider {
	return &LRCLibProvider{
		enabled:   enabled,
		client:    client,
		userAgent: userAgent,
		timeout:   timeout,
		baseURL:   "https://lrclib.net",
	}
}

func (p *LRCLibProvider) SearchLyrics(ctx context.Context, params music.SearchParams) (*music.Lyrics, error) {
	query := url.Values{}
	query.Set("artist_name", params.Artist)
	query.Set("track_name", params.Title)
	searchURL := fmt.Sprintf("%s/api/search?%s", p.baseURL, query.Encode())

	body, err := fetch(ctx, p.client, p.userAgent, searchURL, p.timeout)
	if err != nil {
		return nil, fmt.Errorf("lrclib request failed: %w", err)
	}
	if body == nil {
		return nil, nil
	}

	var searchResp lrclibSearchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode lrclib response: %w", err)
	}
	if len(searchResp) == 0 {
		return nil, nil
	}

	// First result wins; synced lyrics take precedence within it.
	song := searchResp[0]
	if song.SyncedLyrics != "" {
		if lyrics := music.NewSynced(music.ParseLRC(song.SyncedLyrics)); lyrics != nil {
			return lyrics, nil
		}
	}
	return music.NewPlain(song.PlainLyrics), nil
}

func (p *LRCLibProvider) Name() string    { return "lrclib" }
func (p *LRCLibProvider) IsEnabled() bool { return p.enabled }
