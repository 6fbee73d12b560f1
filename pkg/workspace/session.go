package workspace

import (
	"sync"
	"time"
)

// EditSession owns the autosave lifecycle for one open note editor. Writes
// buffer the latest content and restart a debounce timer; when the timer
// fires the content lands in the store as a silent update, keeping
// keystrokes out of undo history. Close cancels the timer and flushes
// whatever is still buffered, so navigating away can never lose an edit.
// Intermediate writes coalesce: at most one store update happens per quiet
// period, always carrying the newest content.
type EditSession struct {
	store  *Store
	noteID string

	mu      sync.Mutex
	timer   *time.Timer
	pending *string
	closed  bool
}

// OpenEditSession starts an autosave session for a note. The caller must
// Close it when the editor goes away; opening a different note means
// closing this session and opening a new one.
func (s *Store) OpenEditSession(noteID string) (*EditSession, error) {
	s.mu.RLock()
	exists := findNote(s.snap.Notes, noteID) != nil
	s.mu.RUnlock()
	if !exists {
		return nil, notFound("note", noteID)
	}
	return &EditSession{store: s, noteID: noteID}, nil
}

// NoteID returns the note this session autosaves.
func (e *EditSession) NoteID() string {
	return e.noteID
}

// Write buffers content and restarts the debounce countdown. Only the
// newest write survives to the next flush.
func (e *EditSession) Write(content string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrSessionClosed
	}
	e.pending = &content
	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = time.AfterFunc(e.store.delay, e.fire)
	return nil
}

// Dirty reports whether buffered content has not reached the store yet.
func (e *EditSession) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending != nil
}

// Flush writes any buffered content to the store immediately.
func (e *EditSession) Flush() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopTimer()
	return e.flushLocked()
}

// Close ends the session with a final unconditional flush. Further writes
// fail with ErrSessionClosed. Closing twice is harmless.
func (e *EditSession) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true
	e.stopTimer()
	return e.flushLocked()
}

// fire runs on the timer goroutine when the quiet period elapses.
func (e *EditSession) fire() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	if err := e.flushLocked(); err != nil {
		e.store.log.WithError(err).WithField("note", e.noteID).Warn("autosave failed")
	}
}

func (e *EditSession) stopTimer() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

// flushLocked hands pending content to the store as a silent update. The
// caller holds e.mu; the store takes its own lock, never this one, so the
// ordering is safe.
func (e *EditSession) flushLocked() error {
	if e.pending == nil {
		return nil
	}
	content := *e.pending
	e.pending = nil
	_, err := e.store.UpdateNote(e.noteID, NotePatch{Content: &content}, false)
	return err
}
