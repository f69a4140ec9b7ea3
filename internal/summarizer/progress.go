package summarizer

import "time"

// progressTracker estimates time remaining from the running average of
// completed chunk durations.
type progressTracker struct {
	total int
	done  int
	start time.Time
	now   func() time.Time
}

func newProgressTracker(total int, now func() time.Time) *progressTracker {
	return &progressTracker{total: total, start: now(), now: now}
}

// step records one finished chunk and returns the snapshot to report.
func (t *progressTracker) step() Progress {
	t.done++

	var eta float64
	if t.done < t.total {
		elapsed := t.now().Sub(t.start).Seconds()
		average := elapsed / float64(t.done)
		eta = average * float64(t.total-t.done)
	}

	return Progress{
		CurrentChunk: t.done,
		TotalChunks:  t.total,
		ETASeconds:   eta,
	}
}
