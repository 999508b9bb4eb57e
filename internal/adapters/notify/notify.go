// Package notify provides Notifier implementations for the different
// front ends: fan-out, logging, JSON lines and a channel for the TUI.
package notify

import (
	"encoding/json"
	"io"
	"sync"

	"mdvault/internal/codec"
	"mdvault/internal/domain"
	"mdvault/internal/logger"
	"mdvault/internal/ports"
)

// Kind names a notification
type Kind string

const (
	KindFolderContent Kind = "folder-content"
	KindEntryCreated  Kind = "entry-created"
	KindEntryUpdated  Kind = "entry-updated"
	KindEntryDeleted  Kind = "entry-deleted"
	KindNoteOpened    Kind = "note-opened"
)

// Message is a notification as a value
type Message struct {
	Kind     Kind            `json:"kind"`
	Entry    *domain.Entry   `json:"entry,omitempty"`
	Path     string          `json:"path,omitempty"`
	Name     string          `json:"name,omitempty"`
	Document json.RawMessage `json:"document,omitempty"`
	Tree     *domain.Root    `json:"-"`
}

// Fanout forwards every notification to each target in order
type Fanout []ports.Notifier

var _ ports.Notifier = Fanout(nil)

func (f Fanout) FolderContent(root *domain.Entry) {
	for _, n := range f {
		n.FolderContent(root)
	}
}

func (f Fanout) EntryCreated(entry *domain.Entry) {
	for _, n := range f {
		n.EntryCreated(entry)
	}
}

func (f Fanout) EntryUpdated(entry *domain.Entry) {
	for _, n := range f {
		n.EntryUpdated(entry)
	}
}

func (f Fanout) EntryDeleted(path string) {
	for _, n := range f {
		n.EntryDeleted(path)
	}
}

func (f Fanout) NoteOpened(name string, doc *domain.Root) {
	for _, n := range f {
		n.NoteOpened(name, doc)
	}
}

// Log writes each notification to the logger at debug level
type Log struct {
	log *logger.Logger
}

// NewLog creates a logging notifier
func NewLog(log *logger.Logger) *Log {
	return &Log{log: log}
}

func (l *Log) FolderContent(root *domain.Entry) {
	l.log.Debug("folder content", "root", root.Path, "entries", len(root.Flatten()))
}

func (l *Log) EntryCreated(entry *domain.Entry) {
	l.log.Debug("entry created", "path", entry.Path, "dir", entry.IsDir)
}

func (l *Log) EntryUpdated(entry *domain.Entry) {
	l.log.Debug("entry updated", "path", entry.Path)
}

func (l *Log) EntryDeleted(path string) {
	l.log.Debug("entry deleted", "path", path)
}

func (l *Log) NoteOpened(name string, _ *domain.Root) {
	l.log.Debug("note opened", "name", name)
}

// Writer encodes notifications as JSON lines
type Writer struct {
	mu  sync.Mutex
	enc *json.Encoder
	log *logger.Logger
}

// NewWriter creates a JSON lines notifier over w
func NewWriter(w io.Writer, log *logger.Logger) *Writer {
	if log == nil {
		log = logger.Discard()
	}
	return &Writer{enc: json.NewEncoder(w), log: log}
}

func (w *Writer) write(m Message) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.enc.Encode(m); err != nil {
		w.log.OperationFailed("notify", string(m.Kind), err)
	}
}

func (w *Writer) FolderContent(root *domain.Entry) {
	w.write(Message{Kind: KindFolderContent, Entry: root})
}

func (w *Writer) EntryCreated(entry *domain.Entry) {
	w.write(Message{Kind: KindEntryCreated, Entry: entry})
}

func (w *Writer) EntryUpdated(entry *domain.Entry) {
	w.write(Message{Kind: KindEntryUpdated, Entry: entry})
}

func (w *Writer) EntryDeleted(path string) {
	w.write(Message{Kind: KindEntryDeleted, Path: path})
}

func (w *Writer) NoteOpened(name string, doc *domain.Root) {
	data, err := codec.EncodeDocument(doc)
	if err != nil {
		w.log.OperationFailed("notify", name, err)
		return
	}
	w.write(Message{Kind: KindNoteOpened, Name: name, Document: data})
}

// Channel delivers notifications as messages. When the buffer is full the
// oldest pending message is dropped so the reconciler never blocks.
type Channel struct {
	ch chan Message
}

// NewChannel creates a channel notifier with the given buffer size
func NewChannel(size int) *Channel {
	if size < 1 {
		size = 1
	}
	return &Channel{ch: make(chan Message, size)}
}

// C returns the receive side
func (c *Channel) C() <-chan Message {
	return c.ch
}

func (c *Channel) send(m Message) {
	for {
		select {
		case c.ch <- m:
			return
		default:
		}
		select {
		case <-c.ch:
		default:
		}
	}
}

func (c *Channel) FolderContent(root *domain.Entry) {
	c.send(Message{Kind: KindFolderContent, Entry: root})
}

func (c *Channel) EntryCreated(entry *domain.Entry) {
	c.send(Message{Kind: KindEntryCreated, Entry: entry})
}

func (c *Channel) EntryUpdated(entry *domain.Entry) {
	c.send(Message{Kind: KindEntryUpdated, Entry: entry})
}

func (c *Channel) EntryDeleted(path string) {
	c.send(Message{Kind: KindEntryDeleted, Path: path})
}

func (c *Channel) NoteOpened(name string, doc *domain.Root) {
	c.send(Message{Kind: KindNoteOpened, Name: name, Tree: doc})
}
