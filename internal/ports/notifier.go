package ports

import "mdvault/internal/domain"

// Notifier receives the outbound notifications sent to the presentation layer.
// Implementations must not block the caller for long; the reconciler loop
// delivers from a single goroutine.
type Notifier interface {
	FolderContent(root *domain.Entry)
	EntryCreated(entry *domain.Entry)
	EntryUpdated(entry *domain.Entry)
	EntryDeleted(path string)
	NoteOpened(name string, doc *domain.Root)
}
