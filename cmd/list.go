package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/chelle-c/second-brain/cmd/config"
	"github.com/chelle-c/second-brain/pkg/foldertree"
	"github.com/chelle-c/second-brain/pkg/models"
)

func NewListCmd(ws **config.Workspace) *cobra.Command {
	var (
		listArchived bool
		listFolder   string
		listTag      string
		listJSON     bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List folders and notes",
		Aliases: []string{"ls"},
		Long: `List the folder tree with the notes inside each folder.

Examples:
  sb list               # Whole workspace as a tree
  sb list -f Work       # Only the Work subtree
  sb list -t planning   # Only notes carrying the planning tag
  sb list --archived    # Include archived folders and notes
  sb list --json        # Notes as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := *ws
			snap := w.Store.Snapshot()

			rootID := ""
			if listFolder != "" {
				folder, err := resolveFolder(snap, listFolder)
				if err != nil {
					return err
				}
				rootID = folder.ID
			}

			var tagID string
			if listTag != "" {
				tag, err := resolveTag(snap, listTag)
				if err != nil {
					return err
				}
				tagID = tag.ID
			}

			notes := visibleNotes(snap, rootID, tagID, listArchived)

			if listJSON {
				return outputJSON(notes)
			}

			if listTag != "" {
				printNotesTable(snap, notes)
				return nil
			}

			printTree(snap, rootID, listArchived)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&listArchived, "archived", "a", false, "Include archived folders and notes")
	cmd.Flags().StringVarP(&listFolder, "folder", "f", "", "Limit to a folder subtree (name, path, or id)")
	cmd.Flags().StringVarP(&listTag, "tag", "t", "", "Only notes carrying this tag")
	cmd.Flags().BoolVar(&listJSON, "json", false, "Output notes as JSON")

	return cmd
}

func visibleNotes(snap *models.Snapshot, rootID, tagID string, includeArchived bool) []*models.Note {
	inScope := map[string]bool{}
	if rootID != "" {
		inScope = foldertree.DescendantIDs(snap.Folders, rootID)
	}

	var notes []*models.Note
	for _, note := range snap.Notes {
		if note.Archived && !includeArchived {
			continue
		}
		if rootID != "" && !inScope[note.FolderID] {
			continue
		}
		if tagID != "" && !hasTag(note, tagID) {
			continue
		}
		notes = append(notes, note)
	}
	return notes
}

func hasTag(note *models.Note, tagID string) bool {
	for _, id := range note.Tags {
		if id == tagID {
			return true
		}
	}
	return false
}

func printTree(snap *models.Snapshot, rootID string, includeArchived bool) {
	notesByFolder := make(map[string][]*models.Note)
	for _, note := range snap.Notes {
		if note.Archived && !includeArchived {
			continue
		}
		notesByFolder[note.FolderID] = append(notesByFolder[note.FolderID], note)
	}

	tagNames := make(map[string]string, len(snap.Tags))
	for _, tag := range snap.Tags {
		tagNames[tag.ID] = tag.Name
	}

	var walk func(nodes []*foldertree.Node, depth int)
	walk = func(nodes []*foldertree.Node, depth int) {
		for _, node := range nodes {
			if node.Folder.Archived && !includeArchived {
				continue
			}
			indent := strings.Repeat("  ", depth)
			count := foldertree.SubtreeNoteCount(snap.Folders, snap.Notes, node.Folder.ID)
			suffix := ""
			if node.Folder.Archived {
				suffix = " (archived)"
			}
			fmt.Printf("%s%s (%d)%s\n", indent, node.Folder.Name, count, suffix)
			for _, note := range notesByFolder[node.Folder.ID] {
				printNoteLine(note, tagNames, indent+"  ")
			}
			walk(node.Children, depth+1)
		}
	}

	if rootID == "" {
		walk(foldertree.BuildTree(snap.Folders, ""), 0)
		return
	}

	root, _ := resolveFolder(snap, rootID)
	if root == nil {
		return
	}
	count := foldertree.SubtreeNoteCount(snap.Folders, snap.Notes, root.ID)
	fmt.Printf("%s (%d)\n", root.Name, count)
	for _, note := range notesByFolder[root.ID] {
		printNoteLine(note, tagNames, "  ")
	}
	walk(foldertree.BuildTree(snap.Folders, root.ID), 1)
}

func printNoteLine(note *models.Note, tagNames map[string]string, indent string) {
	var tags []string
	for _, id := range note.Tags {
		if name, ok := tagNames[id]; ok {
			tags = append(tags, "#"+name)
		}
	}
	line := fmt.Sprintf("%s▢ %s", indent, note.Title)
	if len(tags) > 0 {
		line += "  " + strings.Join(tags, " ")
	}
	if note.Reminder != nil {
		line += "  ⏰" + note.Reminder.DateTime.Local().Format("2006-01-02 15:04")
	}
	if note.Archived {
		line += "  (archived)"
	}
	fmt.Println(line)
}

func printNotesTable(snap *models.Snapshot, notes []*models.Note) {
	if len(notes) == 0 {
		fmt.Println("No matching notes.")
		return
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tFOLDER\tUPDATED")
	for _, note := range notes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			note.ID[:minInt(8, len(note.ID))],
			note.Title,
			folderPathString(snap, note.FolderID),
			note.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	tw.Flush()
}

func outputJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
