package transcript

import "strings"

// Segment is one caption entry: its text and its position in the video.
// Segments are ordered by Start and immutable once fetched.
type Segment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// FullText joins all segment texts into the flat transcript string the
// chunker operates on.
func FullText(segments []Segment) string {
	parts := make([]string, 0, len(segments))
	for _, segment := range segments {
		if text := strings.TrimSpace(segment.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// TotalDuration returns the end time of the final segment in seconds.
func TotalDuration(segments []Segment) float64 {
	if len(segments) == 0 {
		return 0
	}
	last := segments[len(segments)-1]
	return last.Start + last.Duration
}
