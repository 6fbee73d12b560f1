package workspace

import (
	"errors"
	"testing"
	"time"

	"github.com/chelle-c/second-brain/pkg/models"
)

func newSessionStore(delay time.Duration) (*Store, *models.Note) {
	s := New(nil, Options{
		Logger:        quietLogger(),
		IDFunc:        sequentialIDs(),
		AutosaveDelay: delay,
	})
	note, _ := s.AddNote("draft", "initial", "", nil)
	return s, note
}

func TestSessionDebouncedFlush(t *testing.T) {
	s, note := newSessionStore(20 * time.Millisecond)

	session, err := s.OpenEditSession(note.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer session.Close()

	if err := session.Write("typing"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.Snapshot().NoteByID(note.ID).Content; got != "initial" {
		t.Errorf("content flushed before the quiet period: %q", got)
	}
	if !session.Dirty() {
		t.Error("session should be dirty before the flush")
	}

	time.Sleep(80 * time.Millisecond)
	if got := s.Snapshot().NoteByID(note.ID).Content; got != "typing" {
		t.Errorf("expected debounced flush, content is %q", got)
	}
	if session.Dirty() {
		t.Error("session should be clean after the flush")
	}
}

func TestSessionCoalescesWrites(t *testing.T) {
	s, note := newSessionStore(30 * time.Millisecond)

	flushes := 0
	s.saveHook = func(*models.Snapshot) error {
		flushes++
		return nil
	}

	session, _ := s.OpenEditSession(note.ID)
	defer session.Close()

	session.Write("a")
	session.Write("ab")
	session.Write("abc")
	time.Sleep(100 * time.Millisecond)

	if got := s.Snapshot().NoteByID(note.ID).Content; got != "abc" {
		t.Errorf("last write must win, got %q", got)
	}
	if flushes != 1 {
		t.Errorf("expected one coalesced store write, got %d", flushes)
	}
}

func TestSessionAutosaveStaysOutOfHistory(t *testing.T) {
	s := New(&models.Snapshot{
		Notes: []*models.Note{{ID: "n1", Title: "draft", FolderID: models.InboxFolderID}},
	}, Options{
		Logger:        quietLogger(),
		AutosaveDelay: 10 * time.Millisecond,
	})

	session, _ := s.OpenEditSession("n1")
	session.Write("keystroke burst")
	time.Sleep(50 * time.Millisecond)
	session.Close()

	if got := s.Snapshot().NoteByID("n1").Content; got != "keystroke burst" {
		t.Fatalf("flush lost the edit, content is %q", got)
	}
	if s.CanUndo() {
		t.Error("autosave flushes must not create undo entries")
	}
}

func TestSessionCloseFlushesPending(t *testing.T) {
	s, note := newSessionStore(time.Hour)

	session, _ := s.OpenEditSession(note.ID)
	session.Write("unflushed edit")

	if err := session.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.Snapshot().NoteByID(note.ID).Content; got != "unflushed edit" {
		t.Errorf("close must flush pending content, got %q", got)
	}

	if err := session.Write("after close"); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("expected ErrSessionClosed, got %v", err)
	}
	if err := session.Close(); err != nil {
		t.Errorf("double close should be harmless, got %v", err)
	}
}

func TestSessionManualFlush(t *testing.T) {
	s, note := newSessionStore(time.Hour)

	session, _ := s.OpenEditSession(note.ID)
	defer session.Close()

	session.Write("flush me")
	if err := session.Flush(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.Snapshot().NoteByID(note.ID).Content; got != "flush me" {
		t.Errorf("manual flush failed, got %q", got)
	}

	// Nothing pending: flush is a no-op.
	if err := session.Flush(); err != nil {
		t.Errorf("idle flush should pass, got %v", err)
	}
}

func TestOpenSessionUnknownNote(t *testing.T) {
	s, _ := newSessionStore(time.Hour)

	if _, err := s.OpenEditSession("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
