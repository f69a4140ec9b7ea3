package transcript

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/astrocyte/Youtube-Summerator/internal/logger"
)

const (
	defaultTimedTextURL = "https://video.google.com/timedtext"
	defaultOEmbedURL    = "https://www.youtube.com/oembed"
	defaultHTTPTimeout  = 30 * time.Second
)

type implYouTube struct {
	httpClient   *http.Client
	timedTextURL string
	oembedURL    string
	language     string
	logger       logger.Logger
}

// NewYouTube creates a Client backed by YouTube's timedtext and oEmbed
// endpoints.
func NewYouTube(language string, log logger.Logger) Client {
	if language == "" {
		language = "en"
	}
	return &implYouTube{
		httpClient:   &http.Client{Timeout: defaultHTTPTimeout},
		timedTextURL: defaultTimedTextURL,
		oembedURL:    defaultOEmbedURL,
		language:     language,
		logger:       log,
	}
}

type timedTextDocument struct {
	XMLName xml.Name        `xml:"transcript"`
	Texts   []timedTextLine `xml:"text"`
}

type timedTextLine struct {
	Start    float64 `xml:"start,attr"`
	Duration float64 `xml:"dur,attr"`
	Body     string  `xml:",chardata"`
}

// Fetch downloads the caption track for a video. An empty track means the
// video has captions disabled or none were published, reported as
// ErrNotAvailable.
func (y *implYouTube) Fetch(ctx context.Context, videoID string) ([]Segment, error) {
	endpoint := fmt.Sprintf("%s?lang=%s&v=%s", y.timedTextURL, url.QueryEscape(y.language), url.QueryEscape(videoID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build transcript request: %w", err)
	}

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch transcript: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotAvailable
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch transcript: http %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read transcript body: %w", err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, ErrNotAvailable
	}

	segments, err := parseTimedText(body)
	if err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return nil, ErrNotAvailable
	}

	y.logger.Debug(ctx, "Fetched %d transcript segments for %s", len(segments), videoID)
	return segments, nil
}

func parseTimedText(body []byte) ([]Segment, error) {
	var doc timedTextDocument
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("parse transcript xml: %w", err)
	}

	segments := make([]Segment, 0, len(doc.Texts))
	for _, line := range doc.Texts {
		text := strings.TrimSpace(html.UnescapeString(line.Body))
		if text == "" {
			continue
		}
		segments = append(segments, Segment{
			Text:     text,
			Start:    line.Start,
			Duration: line.Duration,
		})
	}
	return segments, nil
}

// FetchTitle resolves the video title via oEmbed, falling back to the raw
// video id on any failure.
func (y *implYouTube) FetchTitle(ctx context.Context, videoID string) string {
	watchURL := "https://www.youtube.com/watch?v=" + url.QueryEscape(videoID)
	endpoint := fmt.Sprintf("%s?url=%s&format=json", y.oembedURL, url.QueryEscape(watchURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return videoID
	}

	resp, err := y.httpClient.Do(req)
	if err != nil {
		y.logger.Warn(ctx, "Could not fetch video title: %v", err)
		return videoID
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		y.logger.Warn(ctx, "Could not fetch video title: http %d", resp.StatusCode)
		return videoID
	}

	var payload struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return videoID
	}
	if strings.TrimSpace(payload.Title) == "" {
		return videoID
	}
	return payload.Title
}
