package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/contre95/lyricfetch/src/music"
	"github.com/gosimple/unidecode"
)

// lyrics.ovh takes artist and title as raw URL path segments, so queries are
// transliterated to ASCII and stripped of punctuation before escaping.
var ovhQueryRe = regexp.MustCompile(`[^\w\s-]`)

func sanitizeQuery(s string) string {
	return strings.TrimSpace(ovhQueryRe.ReplaceAllString(unidecode.Unidecode(s), ""))
}

type lyricsOvhResponse struct {
	Lyrics string `json:"lyrics"`
}

// LyricsOvhProvider fetches plain lyrics from the lyrics.ovh API.
type LyricsOvhProvider struct {
	enabled   bool
	client    *http.Client
	userAgent string
	timeout   time.Duration
	baseURL   string
}

// NewLyricsOvhProvider creates a new lyrics.ovh provider
func NewLyricsOvhProvider(enabled bool, client *http.Client, userAgent string, timeout time.Duration) *LyricsOvhProvider {
	return &LyricsOvhProvider{
		enabled:   enabled,
		client:    client,
		userAgent: userAgent,
		timeout:   timeout,
		baseURL:   "https://api.lyrics.ovh",
	}
}

// QueryURL builds the lyrics.ovh lookup URL for the given search params.
// Shared with the AllOrigins relay so both transports issue the same query.
func (p *LyricsOvhProvider) QueryURL(params music.SearchParams) string {
	artist := sanitizeQuery(params.Artist)
	title := sanitizeQuery(params.Title)
	return fmt.Sprintf("%s/v1/%s/%s", p.baseURL, url.PathEscape(artist), url.PathEscape(title))
}

func (p *LyricsOvhProvider) SearchLyrics(ctx context.Context, params music.SearchParams) (*music.Lyrics, error) {
	body, err := fetch(ctx, p.client, p.userAgent, p.QueryURL(params), p.timeout)
	if err != nil {
		return nil, fmt.Errorf("lyrics.ovh request failed: %w", err)
	}
	if body == nil {
		return nil, nil
	}

	var resp lyricsOvhResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode lyrics.ovh response: %w", err)
	}

	return music.NewPlain(resp.Lyrics), nil
}

func (p *LyricsOvhProvider) Name() string    { return "lyricsovh" }
func (p *LyricsOvhProvider) IsEnabled() bool { return p.enabled }
