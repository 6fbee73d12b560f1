package history

import "testing"

func TestRecordAndUndo(t *testing.T) {
	s := NewStack[int](10)

	if s.CanUndo() || s.CanRedo() {
		t.Fatal("new stack should be empty")
	}

	s.Record(1)
	s.Record(2)
	s.Record(3)

	if s.UndoLen() != 3 {
		t.Fatalf("expected 3 undo entries, got %d", s.UndoLen())
	}

	entry, ok := s.PopUndo(4)
	if !ok || entry != 3 {
		t.Fatalf("expected to pop 3, got %d (ok=%v)", entry, ok)
	}
	if !s.CanRedo() {
		t.Error("undo should make redo available")
	}

	entry, ok = s.PopUndo(3)
	if !ok || entry != 2 {
		t.Fatalf("expected to pop 2, got %d (ok=%v)", entry, ok)
	}
}

func TestUndoEmptyIsNoop(t *testing.T) {
	s := NewStack[string](10)

	entry, ok := s.PopUndo("current")
	if ok {
		t.Errorf("empty undo should report false, got %q", entry)
	}
	if s.CanRedo() {
		t.Error("failed undo must not push a redo entry")
	}
}

func TestRedoRoundTrip(t *testing.T) {
	s := NewStack[int](10)
	s.Record(1)
	s.Record(2)

	// State is 3. Undo to 2, undo to 1, redo back up.
	entry, _ := s.PopUndo(3)
	if entry != 2 {
		t.Fatalf("expected 2, got %d", entry)
	}
	entry, _ = s.PopUndo(entry)
	if entry != 1 {
		t.Fatalf("expected 1, got %d", entry)
	}

	entry, ok := s.PopRedo(entry)
	if !ok || entry != 2 {
		t.Fatalf("expected redo to 2, got %d (ok=%v)", entry, ok)
	}
	entry, ok = s.PopRedo(entry)
	if !ok || entry != 3 {
		t.Fatalf("expected redo to 3, got %d (ok=%v)", entry, ok)
	}
	if s.CanRedo() {
		t.Error("redo side should be drained")
	}
	if s.UndoLen() != 2 {
		t.Errorf("expected 2 undo entries after round trip, got %d", s.UndoLen())
	}
}

func TestRecordClearsRedo(t *testing.T) {
	s := NewStack[int](10)
	s.Record(1)
	s.Record(2)

	s.PopUndo(3)
	if !s.CanRedo() {
		t.Fatal("expected redo entry after undo")
	}

	s.Record(2)
	if s.CanRedo() {
		t.Error("recording must clear the redo side")
	}
}

func TestLimitEvictsOldest(t *testing.T) {
	s := NewStack[int](3)
	for i := 1; i <= 5; i++ {
		s.Record(i)
	}

	if s.UndoLen() != 3 {
		t.Fatalf("expected 3 entries at cap, got %d", s.UndoLen())
	}

	// Newest three survive: 3, 4, 5.
	want := []int{5, 4, 3}
	for _, w := range want {
		entry, ok := s.PopUndo(0)
		if !ok || entry != w {
			t.Fatalf("expected %d, got %d (ok=%v)", w, entry, ok)
		}
	}
	if s.CanUndo() {
		t.Error("oldest entries should have been evicted")
	}
}

func TestNonPositiveLimitUsesDefault(t *testing.T) {
	s := NewStack[int](0)
	for i := 0; i < DefaultLimit+20; i++ {
		s.Record(i)
	}
	if s.UndoLen() != DefaultLimit {
		t.Errorf("expected default cap %d, got %d", DefaultLimit, s.UndoLen())
	}
}

func TestClear(t *testing.T) {
	s := NewStack[int](10)
	s.Record(1)
	s.PopUndo(2)

	s.Clear()
	if s.CanUndo() || s.CanRedo() {
		t.Error("clear should drop both sides")
	}
}
