// Package workspace holds the canonical folder, note and tag collections
// behind a mutation API. Every mutator validates first, builds a fresh
// snapshot, swaps it in, and records the previous snapshot for undo unless
// the mutation is a silent autosave. Snapshots are immutable once swapped
// out; mutators clone what they change and share the rest, so history can
// hold many generations cheaply.
package workspace

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/chelle-c/second-brain/pkg/history"
	"github.com/chelle-c/second-brain/pkg/models"
)

// DefaultAutosaveDelay is the quiet period an edit session waits before
// flushing content to the store.
const DefaultAutosaveDelay = 500 * time.Millisecond

// SaveHook is called with the new snapshot after every mutation. Returning
// an error does not roll the mutation back; persistence failures are
// logged and the in-memory state stays authoritative.
type SaveHook func(*models.Snapshot) error

// Options configures a Store. The zero value is usable.
type Options struct {
	// HistoryLimit caps the undo depth. Non-positive means the default.
	HistoryLimit int
	// AutosaveDelay is the edit session debounce. Non-positive means the
	// default.
	AutosaveDelay time.Duration
	// Logger receives mutation logging. Nil gets a stderr logger at warn
	// level.
	Logger *logrus.Logger
	// SaveHook, when set, is invoked after each mutation.
	SaveHook SaveHook
	// Clock and IDFunc exist for tests; nil means real time and random
	// uuids.
	Clock  func() time.Time
	IDFunc func() string
}

// Store is the single writer for the workspace collections. All reads go
// through Snapshot; all writes go through the mutator methods.
type Store struct {
	mu       sync.RWMutex
	snap     *models.Snapshot
	history  *history.Stack[*models.Snapshot]
	log      *logrus.Entry
	saveHook SaveHook
	delay    time.Duration
	now      func() time.Time
	newID    func() string
}

// New builds a store around an initial snapshot. A nil snapshot starts an
// empty workspace. The inbox folder is guaranteed to exist afterwards
// regardless of what the snapshot contained.
func New(initial *models.Snapshot, opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logrus.WarnLevel)
	}

	now := opts.Clock
	if now == nil {
		now = time.Now
	}
	newID := opts.IDFunc
	if newID == nil {
		newID = uuid.NewString
	}
	delay := opts.AutosaveDelay
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}

	if initial == nil {
		initial = models.NewSnapshot()
	}

	s := &Store{
		snap:     initial,
		history:  history.NewStack[*models.Snapshot](opts.HistoryLimit),
		log:      logger.WithField("component", "workspace"),
		saveHook: opts.SaveHook,
		delay:    delay,
		now:      now,
		newID:    newID,
	}
	s.snap = ensureInbox(s.snap, s.now())
	return s
}

// ensureInbox adds the inbox folder when missing and reassigns notes whose
// folder id references nothing. The inbox is the fallback destination for
// orphans, so a loaded or imported snapshot always normalizes to a state
// where every note's folder exists.
func ensureInbox(snap *models.Snapshot, now time.Time) *models.Snapshot {
	hasInbox := false
	known := make(map[string]bool, len(snap.Folders))
	for _, f := range snap.Folders {
		known[f.ID] = true
		if f.IsInbox() {
			hasInbox = true
		}
	}

	folders := snap.Folders
	if !hasInbox {
		folders = make([]*models.Folder, 0, len(snap.Folders)+1)
		folders = append(folders, models.NewInbox(now))
		folders = append(folders, snap.Folders...)
		known[models.InboxFolderID] = true
	}

	orphaned := false
	for _, n := range snap.Notes {
		if !known[n.FolderID] {
			orphaned = true
			break
		}
	}
	notes := snap.Notes
	if orphaned {
		notes = make([]*models.Note, len(snap.Notes))
		for i, n := range snap.Notes {
			if known[n.FolderID] {
				notes[i] = n
				continue
			}
			moved := n.Clone()
			moved.FolderID = models.InboxFolderID
			notes[i] = moved
		}
	}

	if !hasInbox || orphaned {
		return &models.Snapshot{Folders: folders, Notes: notes, Tags: snap.Tags}
	}
	return snap
}

// Snapshot returns the current state. Callers must treat it and everything
// it references as read-only.
func (s *Store) Snapshot() *models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// CanUndo reports whether an undo entry is available.
func (s *Store) CanUndo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.CanUndo()
}

// CanRedo reports whether a redo entry is available.
func (s *Store) CanRedo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.CanRedo()
}

// Undo restores the snapshot from before the most recent recorded
// mutation. It reports whether anything was undone; an empty history is a
// no-op.
func (s *Store) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.history.PopUndo(s.snap)
	if !ok {
		return false
	}
	s.snap = prev
	s.log.Debug("undo applied")
	s.save()
	return true
}

// Redo re-applies the most recently undone mutation. It reports whether
// anything was redone.
func (s *Store) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := s.history.PopRedo(s.snap)
	if !ok {
		return false
	}
	s.snap = next
	s.log.Debug("redo applied")
	s.save()
	return true
}

// apply swaps in the next snapshot under the held write lock. Unless
// silent, the previous snapshot becomes the new undo entry and any redo
// entries are dropped.
func (s *Store) apply(next *models.Snapshot, silent bool) {
	prev := s.snap
	s.snap = next
	if !silent {
		s.history.Record(prev)
	}
	s.save()
}

// save fires the external save hook with the current snapshot. Failures
// are logged, never propagated; the in-memory state already moved on.
func (s *Store) save() {
	if s.saveHook == nil {
		return
	}
	if err := s.saveHook(s.snap); err != nil {
		s.log.WithError(err).Warn("save hook failed")
	}
}

// findFolder returns the folder with the given id or nil.
func findFolder(folders []*models.Folder, id string) *models.Folder {
	for _, f := range folders {
		if f.ID == id {
			return f
		}
	}
	return nil
}

// findNote returns the note with the given id or nil.
func findNote(notes []*models.Note, id string) *models.Note {
	for _, n := range notes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// findTag returns the tag with the given id or nil.
func findTag(tags []*models.Tag, id string) *models.Tag {
	for _, t := range tags {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// replaceFolder builds a new slice with updated swapped in by id.
func replaceFolder(folders []*models.Folder, updated *models.Folder) []*models.Folder {
	next := make([]*models.Folder, len(folders))
	for i, f := range folders {
		if f.ID == updated.ID {
			next[i] = updated
		} else {
			next[i] = f
		}
	}
	return next
}

// replaceNote builds a new slice with updated swapped in by id.
func replaceNote(notes []*models.Note, updated *models.Note) []*models.Note {
	next := make([]*models.Note, len(notes))
	for i, n := range notes {
		if n.ID == updated.ID {
			next[i] = updated
		} else {
			next[i] = n
		}
	}
	return next
}

// replaceTag builds a new slice with updated swapped in by id.
func replaceTag(tags []*models.Tag, updated *models.Tag) []*models.Tag {
	next := make([]*models.Tag, len(tags))
	for i, t := range tags {
		if t.ID == updated.ID {
			next[i] = updated
		} else {
			next[i] = t
		}
	}
	return next
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
}
