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

type allOriginsEnvelope struct {
	Contents string `json:"contents"`
}

// AllOriginsProvider relays the lyrics.ovh query through the AllOrigins CORS
// proxy. It is a transport fallback only: the chain skips it unless a direct
// provider failed at the network level, and the lyrics.ovh classification of
// the relayed body is unchanged.
type AllOriginsProvider struct {
	enabled   bool
	client    *http.Client
	userAgent string
	timeout   time.Duration
	baseURL   string
	inner     *LyricsOvhProvider
}

// NewAllOriginsProvider creates a new AllOrigins relay around the given
// lyrics.ovh provider.
func NewAllOriginsProvider(enabled bool, client *http.Client, userAgent string, timeout time.Duration, inner *LyricsOvhProvider) *AllOriginsProvider {
	return &AllOriginsProvider{
		enabled:   enabled,
		client:    client,
		userAgent: userAgent,
		timeout:   timeout,
		baseURL:   "https://api.allorigins.win",
		inner:     inner,
	}
}

func (p *AllOriginsProvider) SearchLyrics(ctx context.Context, params music.SearchParams) (*music.Lyrics, error) {
	relayURL := fmt.Sprintf("%s/get?url=%s", p.baseURL, url.QueryEscape(p.inner.QueryURL(params)))

	// The relay is slow; give it a longer budget than direct providers.
	body, err := fetch(ctx, p.client, p.userAgent, relayURL, 3*p.timeout)
	if err != nil {
		return nil, fmt.Errorf("allorigins request failed: %w", err)
	}
	if body == nil {
		return nil, nil
	}

	var envelope allOriginsEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode allorigins envelope: %w", err)
	}
	if envelope.Contents == "" {
		return nil, nil
	}

	var resp lyricsOvhResponse
	if err := json.Unmarshal([]byte(envelope.Contents), &resp); err != nil {
		return nil, fmt.Errorf("failed to decode relayed lyrics.ovh response: %w", err)
	}

	return music.NewPlain(resp.Lyrics), nil
}

func (p *AllOriginsProvider) Name() string    { return "allorigins" }
func (p *AllOriginsProvider) IsEnabled() bool { return p.enabled }

// TransportFallback marks this provider as a relay tried only after a
// network-level failure.
func (p *AllOriginsProvider) TransportFallback() bool { return true }
