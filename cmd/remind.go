package cmd

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/chelle-c/second-brain/cmd/config"
	"github.com/chelle-c/second-brain/pkg/models"
)

var reminderLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

func NewRemindCmd(ws **config.Workspace) *cobra.Command {
	var (
		notify    []string
		clearFlag bool
	)

	cmd := &cobra.Command{
		Use:   "remind <note> [datetime]",
		Short: "Set or clear a reminder on a note",
		Long: `Set a reminder on a note, optionally with advance notifications.
Datetimes without a zone are read in local time.

Examples:
  sb remind "Q3 plan" "2026-09-01 09:00"
  sb remind "Q3 plan" 2026-09-01 --notify 15m,1h
  sb remind "Q3 plan" --clear`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := *ws
			note, err := resolveNote(w.Store.Snapshot(), args[0])
			if err != nil {
				return err
			}

			if clearFlag {
				if err := w.Store.ClearReminder(note.ID); err != nil {
					return err
				}
				fmt.Printf("Cleared reminder on %q\n", note.Title)
				return nil
			}

			if len(args) < 2 {
				return fmt.Errorf("a datetime is required unless --clear is given")
			}

			at, err := parseReminderTime(args[1])
			if err != nil {
				return err
			}

			notifications, err := parseNotifications(notify)
			if err != nil {
				return err
			}

			reminder := models.Reminder{DateTime: at, Notifications: notifications}
			if err := w.Store.SetReminder(note.ID, reminder); err != nil {
				return err
			}

			fmt.Printf("Reminder on %q at %s\n", note.Title, at.Local().Format("2006-01-02 15:04"))
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&notify, "notify", "n", nil, "Advance notifications, e.g. 15m,1h,2d")
	cmd.Flags().BoolVar(&clearFlag, "clear", false, "Remove the reminder instead")

	cmd.AddCommand(newRemindListCmd(ws))

	return cmd
}

func newRemindListCmd(ws **config.Workspace) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all reminders, soonest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := *ws
			snap := w.Store.Snapshot()

			var notes []*models.Note
			for _, note := range snap.Notes {
				if note.Reminder != nil {
					notes = append(notes, note)
				}
			}
			if len(notes) == 0 {
				fmt.Println("No reminders set.")
				return nil
			}
			sort.Slice(notes, func(i, j int) bool {
				return notes[i].Reminder.DateTime.Before(notes[j].Reminder.DateTime)
			})

			now := time.Now()
			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "WHEN\tNOTE\tNOTIFY")
			for _, note := range notes {
				when := note.Reminder.DateTime.Local().Format("2006-01-02 15:04")
				if note.Reminder.DateTime.Before(now) {
					when += " (past)"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", when, note.Title, notifyColumn(note.Reminder.Notifications))
			}
			return tw.Flush()
		},
	}
}

func notifyColumn(notifications []models.ReminderNotification) string {
	parts := make([]string, 0, len(notifications))
	for _, n := range notifications {
		if n.Unit == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%d%c", n.Value, n.Unit[0]))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ",")
}

func parseReminderTime(value string) (time.Time, error) {
	for _, layout := range reminderLayouts {
		if at, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return at, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized datetime %q, try \"2006-01-02 15:04\"", value)
}

// parseNotifications reads offsets like "15m", "1h", "2d".
func parseNotifications(specs []string) ([]models.ReminderNotification, error) {
	var out []models.ReminderNotification
	for _, spec := range specs {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			continue
		}

		unitChar := spec[len(spec)-1]
		value, err := strconv.Atoi(spec[:len(spec)-1])
		if err != nil || value <= 0 {
			return nil, fmt.Errorf("bad notification offset %q, use forms like 15m, 1h, 2d", spec)
		}

		var unit models.NotificationUnit
		switch unitChar {
		case 'm':
			unit = models.UnitMinutes
		case 'h':
			unit = models.UnitHours
		case 'd':
			unit = models.UnitDays
		default:
			return nil, fmt.Errorf("bad notification offset %q, use forms like 15m, 1h, 2d", spec)
		}

		out = append(out, models.ReminderNotification{Unit: unit, Value: value})
	}
	return out, nil
}
