package resolving

import (
	"context"
	"errors"

	"github.com/contre95/lyricfetch/src/music"
)

// ErrUnreachable marks a provider failure at the transport level (connection
// error, timeout, 5xx). Providers wrap such failures with this sentinel so
// the chain can tell them apart from a semantic "no lyrics found".
var ErrUnreachable = errors.New("provider unreachable")

// LyricsProvider defines the interface for fetching lyrics from external services
type LyricsProvider interface {
	// SearchLyrics searches for lyrics using metadata parameters. A nil
	// result with a nil error means the provider has no lyrics for the track.
	SearchLyrics(ctx context.Context, params music.SearchParams) (*music.Lyrics, error)

	// Name returns the provider name
	Name() string

	// IsEnabled returns whether the provider is enabled
	IsEnabled() bool
}

// TransportFallback is implemented by providers that only relay another
// provider's query through a proxy. The chain skips them unless an earlier
// provider failed with ErrUnreachable.
type TransportFallback interface {
	TransportFallback() bool
}
