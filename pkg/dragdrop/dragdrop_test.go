package dragdrop

import (
	"testing"

	"github.com/chelle-c/second-brain/pkg/models"
)

func noteItem(id, folderID string) Item[*models.Note] {
	return Item[*models.Note]{
		Kind: KindNote,
		ID:   id,
		Data: &models.Note{ID: id, FolderID: folderID},
	}
}

func TestSingleActiveDrag(t *testing.T) {
	c := NewCoordinator()
	first := NewSource(c, noteItem("n1", "inbox"))
	second := NewSource(c, noteItem("n2", "inbox"))

	if !first.Start() {
		t.Fatal("first drag should claim the slot")
	}
	if second.Start() {
		t.Error("second drag must be rejected while one is in flight")
	}
	if !first.Dragging() {
		t.Error("first source should report dragging")
	}
	if second.Dragging() {
		t.Error("second source must not report dragging")
	}

	first.End()
	if c.Dragging() {
		t.Error("ending the drag should clear the global record")
	}
	if !second.Start() {
		t.Error("slot should be free after the first drag ended")
	}
}

func TestStaleEndKeepsNewerDrag(t *testing.T) {
	c := NewCoordinator()
	first := NewSource(c, noteItem("n1", "inbox"))
	second := NewSource(c, noteItem("n2", "inbox"))

	first.Start()
	first.End()
	second.Start()

	// A late duplicate end from the finished gesture.
	first.End()
	if !second.Dragging() {
		t.Error("stale End cleared a drag it does not own")
	}
}

func TestGlobalState(t *testing.T) {
	c := NewCoordinator()
	if st := c.State(); st.Active {
		t.Error("fresh coordinator should report no drag")
	}

	src := NewSource(c, noteItem("n1", "work"))
	src.Start()

	st := c.State()
	if !st.Active || st.Kind != KindNote || st.ID != "n1" {
		t.Errorf("unexpected state: %+v", st)
	}

	item, ok := ActiveItem[*models.Note](c)
	if !ok || item.Data.FolderID != "work" {
		t.Errorf("typed access failed: %+v ok=%v", item, ok)
	}
	if _, ok := ActiveItem[*models.Folder](c); ok {
		t.Error("payload typed as note must not surface as folder")
	}
}

func TestZoneAcceptance(t *testing.T) {
	c := NewCoordinator()

	var dropped []string
	zone := NewZone(c, ZoneConfig[*models.Note]{
		Accepts: []Kind{KindNote},
		CanDrop: func(item Item[*models.Note]) bool {
			return item.Data.FolderID != "work"
		},
		OnDrop: func(item Item[*models.Note]) {
			dropped = append(dropped, item.ID)
		},
	})
	zone.SetOver(true)

	// A note already filed in this zone's folder: hovering yes, dropping no.
	src := NewSource(c, noteItem("n1", "work"))
	src.Start()
	if !zone.Over() {
		t.Error("zone should report the pointer over an accepted drag")
	}
	if zone.CanDrop() {
		t.Error("predicate should reject a note already in the folder")
	}
	if zone.Drop() {
		t.Error("drop must not fire when the predicate rejects")
	}
	if len(dropped) != 0 {
		t.Fatalf("handler ran despite rejection: %v", dropped)
	}
	src.End()

	// A note from elsewhere drops fine.
	src = NewSource(c, noteItem("n2", "personal"))
	src.Start()
	if !zone.CanDrop() {
		t.Error("predicate should allow a note from another folder")
	}
	if !zone.Drop() {
		t.Error("drop should fire")
	}
	src.End()

	if len(dropped) != 1 || dropped[0] != "n2" {
		t.Errorf("expected exactly n2 dropped, got %v", dropped)
	}
}

func TestZoneKindDispatch(t *testing.T) {
	c := NewCoordinator()

	noteDrops := 0
	folderDrops := 0
	noteZone := NewZone(c, ZoneConfig[*models.Note]{
		Accepts: []Kind{KindNote},
		OnDrop:  func(Item[*models.Note]) { noteDrops++ },
	})
	folderZone := NewZone(c, ZoneConfig[*models.Folder]{
		Accepts: []Kind{KindFolder},
		OnDrop:  func(Item[*models.Folder]) { folderDrops++ },
	})
	noteZone.SetOver(true)
	folderZone.SetOver(true)

	src := NewSource(c, Item[*models.Folder]{
		Kind: KindFolder,
		ID:   "f1",
		Data: &models.Folder{ID: "f1"},
	})
	src.Start()

	if noteZone.Over() || noteZone.CanDrop() {
		t.Error("note zone must ignore a folder drag")
	}
	noteZone.Drop()
	folderZone.Drop()
	src.End()

	if noteDrops != 0 {
		t.Errorf("note handler fired on a folder drag %d times", noteDrops)
	}
	if folderDrops != 1 {
		t.Errorf("expected one folder drop, got %d", folderDrops)
	}
}

func TestDropFiresOncePerGesture(t *testing.T) {
	c := NewCoordinator()

	fired := 0
	zone := NewZone(c, ZoneConfig[*models.Note]{
		Accepts: []Kind{KindNote},
		OnDrop:  func(Item[*models.Note]) { fired++ },
	})
	zone.SetOver(true)

	src := NewSource(c, noteItem("n1", "inbox"))
	src.Start()
	if !zone.Drop() {
		t.Fatal("first drop should fire")
	}
	if zone.Drop() {
		t.Error("second drop in the same gesture must be a no-op")
	}
	src.End()

	// A fresh gesture may drop again.
	src.Start()
	if !zone.Drop() {
		t.Error("new gesture should be droppable")
	}
	src.End()

	if fired != 2 {
		t.Errorf("expected 2 handler runs, got %d", fired)
	}
}

func TestDropRequiresPointerOver(t *testing.T) {
	c := NewCoordinator()

	fired := 0
	zone := NewZone(c, ZoneConfig[*models.Note]{
		Accepts: []Kind{KindNote},
		OnDrop:  func(Item[*models.Note]) { fired++ },
	})

	src := NewSource(c, noteItem("n1", "inbox"))
	src.Start()
	if zone.Drop() {
		t.Error("drop away from the zone must not fire")
	}
	if zone.Over() {
		t.Error("zone should not report over without pointer contact")
	}
	src.End()

	if fired != 0 {
		t.Errorf("handler ran %d times", fired)
	}
}

func TestZoneWithoutPredicateAcceptsAll(t *testing.T) {
	c := NewCoordinator()

	zone := NewZone(c, ZoneConfig[*models.Note]{
		Accepts: []Kind{KindNote},
	})
	zone.SetOver(true)

	src := NewSource(c, noteItem("n1", "anywhere"))
	src.Start()
	if !zone.CanDrop() {
		t.Error("nil predicate should accept every accepted kind")
	}
	if !zone.Drop() {
		t.Error("drop with nil handler should still report success")
	}
	src.End()
}
