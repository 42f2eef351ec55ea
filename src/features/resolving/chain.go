package resolving

import (
	"context"
	"errors"
	"log/slog"

	"github.com/contre95/lyricfetch/src/music"
)

// Chain tries lyrics providers in fixed priority order and returns the first
// result any provider yields. Priority is absolute: a plain result from an
// earlier provider wins over a synced result a later provider might have
// returned. Provider failures are swallowed and the next provider is tried.
type Chain struct {
	providers []LyricsProvider
}

// NewChain creates a chain over the given providers, in priority order.
func NewChain(providers []LyricsProvider) *Chain {
	return &Chain{providers: providers}
}

// Providers returns the configured providers in priority order.
func (c *Chain) Providers() []LyricsProvider {
	return c.providers
}

// Resolve searches the providers for lyrics matching artist and title.
// Empty or whitespace-only artist/title short-circuits to a nil result
// without issuing any network call. A nil result means no lyrics were found
// by any provider.
func (c *Chain) Resolve(ctx context.Context, artist, title string) *music.Lyrics {
	params := music.SearchParams{Artist: artist, Title: title}
	if params.Empty() {
		slog.Debug("Skipping lyrics search, missing artist or title", "artist", artist, "title", title)
		return nil
	}

	unreachable := false
	for _, provider := range c.providers {
		if !provider.IsEnabled() {
			continue
		}
		if fb, ok := provider.(TransportFallback); ok && fb.TransportFallback() && !unreachable {
			slog.Debug("Skipping transport fallback, direct providers were reachable", "provider", provider.Name())
			continue
		}

		slog.Debug("Trying lyrics provider", "provider", provider.Name(), "artist", artist, "title", title)
		lyrics, err := provider.SearchLyrics(ctx, params)
		if err != nil {
			if errors.Is(err, ErrUnreachable) {
				unreachable = true
			}
			slog.Warn("Lyrics provider failed", "provider", provider.Name(), "artist", artist, "title", title, "error", err.Error())
			continue
		}
		if lyrics == nil {
			continue
		}

		slog.Info("Found lyrics", "provider", provider.Name(), "artist", artist, "title", title, "synced", lyrics.Synced)
		return lyrics
	}

	slog.Info("No lyrics found from any provider", "artist", artist, "title", title)
	return nil
}
