package sqlite

import (
	"mdvault/internal/domain"
	"mdvault/internal/logger"
	"mdvault/internal/ports"
)

// Sink mirrors vault notifications into the index
type Sink struct {
	idx *Index
	log *logger.Logger
}

var _ ports.Notifier = (*Sink)(nil)

// NewSink creates a notifier that keeps idx current
func NewSink(idx *Index, log *logger.Logger) *Sink {
	if log == nil {
		log = logger.Discard()
	}
	return &Sink{idx: idx, log: log}
}

func (s *Sink) FolderContent(root *domain.Entry) {
	stats, err := s.idx.SyncFull(root)
	if err != nil {
		s.log.OperationFailed("index", root.Path, err)
		return
	}
	s.log.IndexSynced(stats.NodesAdded, stats.NodesDeleted, stats.Duration)
}

func (s *Sink) EntryCreated(entry *domain.Entry) {
	if err := s.idx.UpsertEntry(entry); err != nil {
		s.log.OperationFailed("index", entry.Path, err)
	}
}

func (s *Sink) EntryUpdated(entry *domain.Entry) {
	if err := s.idx.UpsertEntry(entry); err != nil {
		s.log.OperationFailed("index", entry.Path, err)
	}
}

func (s *Sink) EntryDeleted(path string) {
	if err := s.idx.DeleteEntry(path); err != nil {
		s.log.OperationFailed("index", path, err)
	}
}

func (s *Sink) NoteOpened(string, *domain.Root) {}
