package domain

import "fmt"

// EventKind classifies a file-system watch event
type EventKind string

const (
	EventAdd       EventKind = "add"
	EventAddDir    EventKind = "addDir"
	EventChange    EventKind = "change"
	EventUnlink    EventKind = "unlink"
	EventUnlinkDir EventKind = "unlinkDir"
)

// Exists reports whether the affected path still exists after the event
func (k EventKind) Exists() bool {
	switch k {
	case EventAdd, EventAddDir, EventChange:
		return true
	default:
		return false
	}
}

// WatchEvent is a single raw event coming from the vault watcher
type WatchEvent struct {
	Kind EventKind
	Path string
}

func (e WatchEvent) String() string {
	return fmt.Sprintf("%s %s", e.Kind, e.Path)
}
