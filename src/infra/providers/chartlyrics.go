package providers

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/contre95/lyricfetch/src/music"
)

// chartlyricsResult is the SearchLyricDirect response envelope.
type chartlyricsResult struct {
	XMLName   xml.Name `xml:"GetLyricResult"`
	LyricSong string   `xml:"LyricSong"`
	Artist    string   `xml:"LyricArtist"`
	Lyric     string   `xml:"Lyric"`
}

// ChartLyricsProvider fetches plain lyrics from the ChartLyrics SOAP-ish XML API.
type ChartLyricsProvider struct {
	enabled   bool
	client    *http.Client
	userAgent string
	timeout   time.Duration
	baseURL   string
}

// NewChartLyricsProvider creates a new ChartLyrics provider
func NewChartLyricsProvider(enabled bool, client *http.Client, userAgent string, timeout time.Duration) *ChartLyricsProvider {
	return &ChartLyricsProvider{
		enabled:   enabled,
		client:    client,
		userAgent: userAgent,
		timeout:   timeout,
		baseURL:   "http://api.chartlyrics.com",
	}
}

func (p *ChartLyricsProvider) SearchLyrics(ctx context.Context, params music.SearchParams) (*music.Lyrics, error) {
	query := url.Values{}
	query.Set("artist", params.Artist)
	query.Set("song", params.Title)
	searchURL := fmt.Sprintf("%s/apiv1.asmx/SearchLyricDirect?%s", p.baseURL, query.Encode())

	body, err := fetch(ctx, p.client, p.userAgent, searchURL, p.timeout)
	if err != nil {
		return nil, fmt.Errorf("chartlyrics request failed: %w", err)
	}
	if body == nil {
		return nil, nil
	}

	var result chartlyricsResult
	if err := xml.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode chartlyrics response: %w", err)
	}

	// ChartLyrics answers 200 with an empty Lyric element when it has no match.
	return music.NewPlain(result.Lyric), nil
}

func (p *ChartLyricsProvider) Name() string    { return "chartlyrics" }
func (p *ChartLyricsProvider) IsEnabled() bool { return p.enabled }
