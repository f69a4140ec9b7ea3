package transcript

import (
	"context"
	"errors"
)

// ErrNotAvailable is returned when a video has no captions (disabled or
// never generated).
var ErrNotAvailable = errors.New("transcript not available")

// Source fetches the ordered caption segments for a video
type Source interface {
	Fetch(ctx context.Context, videoID string) ([]Segment, error)
}

// TitleSource resolves a video's display title, best-effort
type TitleSource interface {
	FetchTitle(ctx context.Context, videoID string) string
}

// Client combines caption fetching and title resolution
type Client interface {
	Source
	TitleSource
}
