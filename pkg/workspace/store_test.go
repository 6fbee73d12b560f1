package workspace

import (
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chelle-c/second-brain/pkg/foldertree"
	"github.com/chelle-c/second-brain/pkg/models"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestStore(initial *models.Snapshot) *Store {
	return New(initial, Options{
		Logger: quietLogger(),
		IDFunc: sequentialIDs(),
		Clock:  func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) },
	})
}

func TestNewStoreStartsWithInbox(t *testing.T) {
	s := newTestStore(nil)

	snap := s.Snapshot()
	require.Len(t, snap.Folders, 1)
	assert.True(t, snap.Folders[0].IsInbox())
	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())
}

func TestEnsureInboxNormalizesLoadedSnapshot(t *testing.T) {
	initial := &models.Snapshot{
		Folders: []*models.Folder{{ID: "work", Name: "Work"}},
		Notes: []*models.Note{
			{ID: "n1", Title: "kept", FolderID: "work"},
			{ID: "n2", Title: "orphan", FolderID: "ghost"},
		},
	}
	s := newTestStore(initial)

	snap := s.Snapshot()
	require.NotNil(t, snap.FolderByID(models.InboxFolderID))
	assert.Equal(t, "work", snap.NoteByID("n1").FolderID)
	assert.Equal(t, models.InboxFolderID, snap.NoteByID("n2").FolderID)

	// Normalization happens at load, not as a recorded mutation.
	assert.False(t, s.CanUndo())
}

func TestUndoRedoExactness(t *testing.T) {
	s := newTestStore(nil)
	initial := s.Snapshot()

	work, err := s.AddFolder("Work", "", "")
	require.NoError(t, err)
	urgent, err := s.AddFolder("Urgent", work.ID, "")
	require.NoError(t, err)
	note, err := s.AddNote("Plan", "body", work.ID, nil)
	require.NoError(t, err)
	require.NoError(t, s.MoveNote(note.ID, urgent.ID))
	tag, err := s.AddTag("todo", "", "#ff0000")
	require.NoError(t, err)
	require.NoError(t, s.TagNote(note.ID, tag.ID))
	require.NoError(t, s.DeleteFolder(urgent.ID))

	final := s.Snapshot()
	assert.Equal(t, models.InboxFolderID, final.NoteByID(note.ID).FolderID)

	steps := 0
	for s.CanUndo() {
		require.True(t, s.Undo())
		steps++
	}
	assert.Equal(t, 7, steps)
	assert.Equal(t, initial, s.Snapshot())

	for s.CanRedo() {
		require.True(t, s.Redo())
	}
	assert.Equal(t, final, s.Snapshot())
}

func TestUndoOnEmptyHistoryIsNoop(t *testing.T) {
	s := newTestStore(nil)

	assert.False(t, s.Undo())
	assert.False(t, s.Redo())
}

func TestSilentUpdateSkipsHistory(t *testing.T) {
	initial := &models.Snapshot{
		Notes: []*models.Note{{ID: "n1", Title: "draft", FolderID: models.InboxFolderID}},
	}
	s := newTestStore(initial)
	require.False(t, s.CanUndo())

	for i := 0; i < 5; i++ {
		content := fmt.Sprintf("keystrokes %d", i)
		_, err := s.UpdateNote("n1", NotePatch{Content: &content}, false)
		require.NoError(t, err)
	}

	assert.False(t, s.CanUndo(), "autosave writes must not create undo entries")
	assert.Equal(t, "keystrokes 4", s.Snapshot().NoteByID("n1").Content)
}

func TestNewActionTruncatesRedo(t *testing.T) {
	s := newTestStore(nil)

	_, err := s.AddFolder("One", "", "")
	require.NoError(t, err)
	_, err = s.AddFolder("Two", "", "")
	require.NoError(t, err)

	require.True(t, s.Undo())
	require.True(t, s.CanRedo())

	_, err = s.AddFolder("Three", "", "")
	require.NoError(t, err)
	assert.False(t, s.CanRedo(), "a fresh action invalidates forward history")
}

func TestHistoryLimitEviction(t *testing.T) {
	s := New(nil, Options{
		Logger:       quietLogger(),
		IDFunc:       sequentialIDs(),
		HistoryLimit: 2,
	})

	for i := 0; i < 4; i++ {
		_, err := s.AddFolder(fmt.Sprintf("f%d", i), "", "")
		require.NoError(t, err)
	}

	undone := 0
	for s.Undo() {
		undone++
	}
	assert.Equal(t, 2, undone)
}

func TestScenarioMoveNestedFolderToRoot(t *testing.T) {
	s := newTestStore(nil)

	work, err := s.AddFolder("Work", "", "")
	require.NoError(t, err)
	urgent, err := s.AddFolder("Urgent", work.ID, "")
	require.NoError(t, err)

	require.NoError(t, s.MoveFolder(urgent.ID, ""))

	roots := foldertree.BuildTree(s.Snapshot().Folders, "")
	var workNode *foldertree.Node
	for _, n := range roots {
		if n.Folder.ID == work.ID {
			workNode = n
		}
	}
	require.NotNil(t, workNode)
	assert.Empty(t, workNode.Children, "Work should have no children after the move")
	assert.Equal(t, "", s.Snapshot().FolderByID(urgent.ID).ParentID)
}

func TestSaveHookFiresOnEveryMutation(t *testing.T) {
	saves := 0
	var lastSaved *models.Snapshot
	s := New(nil, Options{
		Logger: quietLogger(),
		IDFunc: sequentialIDs(),
		SaveHook: func(snap *models.Snapshot) error {
			saves++
			lastSaved = snap
			return nil
		},
	})

	_, err := s.AddFolder("Work", "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, saves)
	assert.Same(t, s.Snapshot(), lastSaved)

	note, err := s.AddNote("n", "", "", nil)
	require.NoError(t, err)
	content := "autosaved"
	_, err = s.UpdateNote(note.ID, NotePatch{Content: &content}, false)
	require.NoError(t, err)
	assert.Equal(t, 3, saves, "silent updates still persist")

	s.Undo()
	assert.Equal(t, 4, saves, "undo persists the restored snapshot")
}

func TestSaveHookErrorDoesNotBlockMutation(t *testing.T) {
	s := New(nil, Options{
		Logger:   quietLogger(),
		IDFunc:   sequentialIDs(),
		SaveHook: func(*models.Snapshot) error { return fmt.Errorf("disk full") },
	})

	folder, err := s.AddFolder("Work", "", "")
	require.NoError(t, err)
	assert.NotNil(t, s.Snapshot().FolderByID(folder.ID))
}

func TestFailedMutationLeavesStateUntouched(t *testing.T) {
	s := newTestStore(nil)
	work, err := s.AddFolder("Work", "", "")
	require.NoError(t, err)
	before := s.Snapshot()

	_, err = s.AddFolder("Work", "", "")
	require.ErrorIs(t, err, ErrDuplicateName)
	assert.Same(t, before, s.Snapshot(), "rejected mutations must not swap snapshots")

	err = s.MoveFolder(work.ID, work.ID)
	require.ErrorIs(t, err, foldertree.ErrInvalidMove)
	assert.Same(t, before, s.Snapshot())
	assert.True(t, s.CanUndo())

	s.Undo()
	assert.Nil(t, s.Snapshot().FolderByID(work.ID))
}
