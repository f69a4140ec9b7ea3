package video

import (
	"fmt"
	"regexp"
	"strings"
)

// idPatterns cover the common YouTube URL shapes: watch links, short
// links, embeds and the legacy /v/ path.
var idPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:v=|/v/)([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`youtu\.be/([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`/embed/([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`/shorts/([0-9A-Za-z_-]{11})`),
}

var bareID = regexp.MustCompile(`^[0-9A-Za-z_-]{11}$`)

// ExtractID pulls the 11-character video id out of a YouTube URL. A bare
// id passes through unchanged.
func ExtractID(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("empty video reference")
	}

	if bareID.MatchString(input) {
		return input, nil
	}

	for _, pattern := range idPatterns {
		if m := pattern.FindStringSubmatch(input); m != nil {
			return m[1], nil
		}
	}
	return "", fmt.Errorf("could not extract video id from %q", input)
}

// IsURL reports whether the input looks like a link rather than a bare id.
func IsURL(input string) bool {
	input = strings.TrimSpace(input)
	return strings.HasPrefix(input, "http://") ||
		strings.HasPrefix(input, "https://") ||
		strings.Contains(input, "youtube.com/") ||
		strings.Contains(input, "youtu.be/")
}
