package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rswalker/academy-scheduler/pkg/core/services"
)

// ListShiftsCmd creates the listShifts command
func ListShiftsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listShifts <first_day> <last_day>",
		Short: "List shifts between two days, inclusive, with conflicts flagged",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			first, err := app.parseDay(args[0])
			if err != nil {
				return err
			}
			last, err := app.parseDay(args[1])
			if err != nil {
				return err
			}

			schedule, err := services.ViewSchedule(
				app.Ctx, app.Store, app.Logger,
				app.OrgID, first, last.AddDate(0, 0, 1),
			)
			if err != nil {
				return err
			}

			if len(schedule.Shifts) == 0 {
				fmt.Println("\nNo shifts in that range.")
				fmt.Println()
				return nil
			}

			fmt.Printf("\nFound %d shift(s):\n\n", len(schedule.Shifts))
			fmt.Printf("  %-36s  %-16s  %-13s  %-18s  %-9s  %s\n",
				"ID", "START", "END", "TITLE", "FILLED", "FLAGS")
			for _, shift := range schedule.Shifts {
				flags := ""
				if !shift.IsPublished {
					flags += "draft "
				}
				if shift.IsOpenForClaim {
					flags += "open "
				}
				if shift.HasConflict {
					flags += "CONFLICT"
				}

				fmt.Printf("  %-36s  %-16s  %-13s  %-18s  %d/%-7d  %s\n",
					shift.ID,
					shift.StartTime.Format("2006-01-02 15:04"),
					shift.EndTime.Format("15:04"),
					shift.Title,
					schedule.Filled[shift.ID],
					shift.Capacity,
					flags,
				)
			}
			fmt.Println()

			return nil
		},
	}
}
