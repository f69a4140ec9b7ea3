package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sanitizer turns arbitrary video titles into safe file names. The policy
// is explicit so callers choose strictness up front instead of relying on
// the host platform.
type Sanitizer struct {
	// WindowsSafe additionally strips characters NTFS rejects, so files
	// written on one platform stay portable to the other.
	WindowsSafe bool
	// MaxLength truncates the sanitized name (extension excluded).
	// Zero means no limit.
	MaxLength int
}

// DefaultSanitizer keeps names portable across platforms and well under
// common path length limits.
func DefaultSanitizer() Sanitizer {
	return Sanitizer{WindowsSafe: true, MaxLength: 120}
}

const windowsReserved = `<>:"/\|?*`

// Sanitize maps a title to a file name stem. It never returns an empty
// string.
func (s Sanitizer) Sanitize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r == '/' || r == '\x00':
			b.WriteRune('_')
		case r < 0x20:
			b.WriteRune('_')
		case s.WindowsSafe && strings.ContainsRune(windowsReserved, r):
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}

	out := strings.TrimSpace(b.String())
	// Trailing dots and spaces are invalid on Windows.
	if s.WindowsSafe {
		out = strings.TrimRight(out, ". ")
	}
	if s.MaxLength > 0 && len(out) > s.MaxLength {
		out = strings.TrimSpace(out[:s.MaxLength])
	}
	if out == "" {
		out = "untitled"
	}
	return out
}

// NextAvailableName returns path if it does not exist yet, otherwise the
// first "name (N).ext" variant that is free.
func NextAvailableName(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}

	dir := filepath.Dir(path)
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)

	for n := 1; ; n++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, n, ext))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}
