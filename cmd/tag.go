package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/chelle-c/second-brain/cmd/config"
	"github.com/chelle-c/second-brain/pkg/workspace"
)

func NewTagCmd(ws **config.Workspace) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage tags and apply them to notes",
		Long: `Create, rename, and delete tags, and attach them to notes. Run without
a subcommand to list all tags with usage counts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTagList(*ws)
		},
	}

	cmd.AddCommand(newTagAddCmd(ws))
	cmd.AddCommand(newTagRenameCmd(ws))
	cmd.AddCommand(newTagRemoveCmd(ws))
	cmd.AddCommand(newTagApplyCmd(ws))
	cmd.AddCommand(newTagClearCmd(ws))

	return cmd
}

func runTagList(w *config.Workspace) error {
	snap := w.Store.Snapshot()
	if len(snap.Tags) == 0 {
		fmt.Println("No tags yet. Create one with: sb tag add <name>")
		return nil
	}

	usage := make(map[string]int)
	for _, note := range snap.Notes {
		for _, id := range note.Tags {
			usage[id]++
		}
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TAG\tCOLOR\tNOTES")
	for _, tag := range snap.Tags {
		color := tag.Color
		if color == "" {
			color = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\n", tag.Name, color, usage[tag.ID])
	}
	return tw.Flush()
}

func newTagAddCmd(ws **config.Workspace) *cobra.Command {
	var (
		color string
		icon  string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a tag",
		Long: `Create a tag. Colors are free-form strings, hex values work well.

Examples:
  sb tag add planning
  sb tag add urgent -c "#ff4444"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := *ws
			tag, err := w.Store.AddTag(args[0], icon, color)
			if err != nil {
				return err
			}
			fmt.Printf("Added tag %q\n", tag.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&color, "color", "c", "", "Display color")
	cmd.Flags().StringVarP(&icon, "icon", "i", "", "Icon name for clients that render one")

	return cmd
}

func newTagRenameCmd(ws **config.Workspace) *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "rename <tag> <new-name>",
		Short: "Rename a tag",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := *ws
			tag, err := resolveTag(w.Store.Snapshot(), args[0])
			if err != nil {
				return err
			}

			patch := workspace.TagPatch{Name: &args[1]}
			if cmd.Flags().Changed("color") {
				patch.Color = &color
			}

			updated, err := w.Store.UpdateTag(tag.ID, patch)
			if err != nil {
				return err
			}
			fmt.Printf("Renamed to %q\n", updated.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&color, "color", "c", "", "Replace the display color")

	return cmd
}

func newTagRemoveCmd(ws **config.Workspace) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <tag>",
		Short: "Delete a tag",
		Long:  "Delete a tag. Notes carrying it simply lose it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := *ws
			tag, err := resolveTag(w.Store.Snapshot(), args[0])
			if err != nil {
				return err
			}
			if err := w.Store.DeleteTag(tag.ID); err != nil {
				return err
			}
			fmt.Printf("Deleted tag %q\n", tag.Name)
			return nil
		},
	}
	return cmd
}

func newTagApplyCmd(ws **config.Workspace) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply <note> <tag>...",
		Short: "Attach tags to a note",
		Long: `Attach one or more tags to a note, creating tags that do not exist
yet. Applying a tag twice is a no-op.

Examples:
  sb tag apply "Q3 plan" planning
  sb tag apply 1a2b3c4d planning urgent`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := *ws
			note, err := resolveNote(w.Store.Snapshot(), args[0])
			if err != nil {
				return err
			}

			ids, err := ensureTags(w, args[1:])
			if err != nil {
				return err
			}
			for _, id := range ids {
				if err := w.Store.TagNote(note.ID, id); err != nil {
					return err
				}
			}

			fmt.Printf("Tagged %q\n", note.Title)
			return nil
		},
	}
	return cmd
}

func newTagClearCmd(ws **config.Workspace) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear <note> <tag>...",
		Short: "Remove tags from a note",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := *ws
			snap := w.Store.Snapshot()
			note, err := resolveNote(snap, args[0])
			if err != nil {
				return err
			}

			for _, ref := range args[1:] {
				tag, err := resolveTag(snap, ref)
				if err != nil {
					return err
				}
				if err := w.Store.UntagNote(note.ID, tag.ID); err != nil {
					return err
				}
			}

			fmt.Printf("Untagged %q\n", note.Title)
			return nil
		},
	}
	return cmd
}
