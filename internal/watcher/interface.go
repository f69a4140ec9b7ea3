package watcher

import "context"

// Watcher monitors a drop folder for URL list files.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one dropped file.
type EventHandler func(ctx context.Context, filePath string) error
