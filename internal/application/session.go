package application

import (
	"sync"

	"mdvault/internal/domain"
)

// Session holds the vault root and the currently opened note.
// It is safe for concurrent use.
type Session struct {
	mu     sync.RWMutex
	root   string
	opened *domain.OpenedFile
}

// NewSession creates an empty session with no vault selected
func NewSession() *Session {
	return &Session{}
}

// Root returns the vault root, or ErrNoVault when none is selected
func (s *Session) Root() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.root == "" {
		return "", ErrNoVault
	}
	return s.root, nil
}

// SetRoot selects a new vault and forgets the opened note
func (s *Session) SetRoot(root string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.root = root
	s.opened = nil
}

// Opened returns a copy of the opened note, or ErrNoOpenNote
func (s *Session) Opened() (domain.OpenedFile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.opened == nil {
		return domain.OpenedFile{}, ErrNoOpenNote
	}
	return *s.opened, nil
}

// Open records path as the opened note
func (s *Session) Open(path, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opened = &domain.OpenedFile{Path: path, Content: content}
}

// UpdateOpened replaces the content of the opened note, if any
func (s *Session) UpdateOpened(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.opened != nil {
		s.opened.Content = content
	}
}

// Relocate follows the opened note after it was renamed or moved.
// oldPath may be the note itself or one of its ancestor folders.
func (s *Session) Relocate(oldPath, newPath string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.opened == nil {
		return
	}
	if SamePath(s.opened.Path, oldPath) {
		s.opened.Path = newPath
		return
	}
	if IsWithin(oldPath, s.opened.Path) {
		s.opened.Path = newPath + s.opened.Path[len(oldPath):]
	}
}

// CloseNote forgets the opened note
func (s *Session) CloseNote() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opened = nil
}

// CloseIfWithin forgets the opened note when it lies under path
func (s *Session) CloseIfWithin(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.opened != nil && IsWithin(path, s.opened.Path) {
		s.opened = nil
	}
}
