package output

import (
	"fmt"
	"strings"

	"github.com/astrocyte/Youtube-Summerator/internal/transcript"
)

const (
	// blockSeconds is the window each timestamp header covers.
	blockSeconds = 300
	// bulletGapSeconds starts a new bullet when the pause between
	// consecutive captions exceeds it.
	bulletGapSeconds = 2.0
)

// FormatTranscript renders caption segments as readable text: a
// timestamp header per five-minute block, with bullets broken on pauses
// in the speech.
func FormatTranscript(segments []transcript.Segment) string {
	if len(segments) == 0 {
		return ""
	}

	var b strings.Builder
	blockStart := -1
	var bullet []string
	var lastEnd float64

	flushBullet := func() {
		if len(bullet) > 0 {
			b.WriteString("- ")
			b.WriteString(strings.Join(bullet, " "))
			b.WriteString("\n")
			bullet = nil
		}
	}

	for _, seg := range segments {
		block := int(seg.Start) / blockSeconds
		if block != blockStart {
			flushBullet()
			if blockStart != -1 {
				b.WriteString("\n")
			}
			blockStart = block
			from := float64(block * blockSeconds)
			to := from + blockSeconds
			fmt.Fprintf(&b, "[%s - %s]\n", formatTimestamp(from), formatTimestamp(to))
		} else if seg.Start-lastEnd > bulletGapSeconds {
			flushBullet()
		}

		if text := strings.TrimSpace(seg.Text); text != "" {
			bullet = append(bullet, text)
		}
		lastEnd = seg.Start + seg.Duration
	}
	flushBullet()

	return b.String()
}

func formatTimestamp(seconds float64) string {
	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
