package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rswalker/academy-scheduler/pkg/core/model"
	"github.com/rswalker/academy-scheduler/pkg/core/services"
)

// CreateShiftCmd creates the createShift command
func CreateShiftCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "createShift <day>",
		Short: "Create draft shifts on the given day (YYYY-MM-DD)",
		Long: `Create one or more draft shifts on the given day.

With --staff the shift is created pre-assigned to that staff member.
With --open the shift is created unassigned and open for claiming; --staff
then only suggests the job type. Without either, a quick-create builds an
open draft with the configured defaults, optionally repeated by an RRULE.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := app.parseDay(args[0])
			if err != nil {
				return err
			}

			staffID, _ := cmd.Flags().GetString("staff")
			open, _ := cmd.Flags().GetBool("open")
			startClock, _ := cmd.Flags().GetString("start")
			endClock, _ := cmd.Flags().GetString("end")
			locationID, _ := cmd.Flags().GetString("location")
			branch, _ := cmd.Flags().GetString("branch")
			quantity, _ := cmd.Flags().GetInt("quantity")
			repeat, _ := cmd.Flags().GetString("repeat")
			until, _ := cmd.Flags().GetString("until")

			intent := services.ShiftIntent{
				OrganizationID: app.OrgID,
				Day:            day,
				StartClock:     startClock,
				EndClock:       endClock,
				LocationID:     locationID,
				BranchFilter:   branch,
			}

			var staff *model.Staff
			if staffID != "" {
				staff, err = app.FindStaff(staffID)
				if err != nil {
					return err
				}
				intent.Staff = staff
			}

			switch {
			case open:
				intent.Kind = services.IntentOpenHeaderDrop
			case staff != nil:
				intent.Kind = services.IntentDayDrop
			default:
				intent.Kind = services.IntentQuickCreate
				intent.Quantity = quantity
				intent.Repeat = repeat
				if until != "" {
					intent.RepeatUntil, err = app.parseDay(until)
					if err != nil {
						return err
					}
				}
			}

			org, err := app.Directory.Organization(app.OrgID)
			if err != nil {
				return fmt.Errorf("failed to load organization: %w", err)
			}

			result, err := services.CreateShift(app.Ctx, app.Store, app.Directory, org, app.Cfg, app.Logger, intent)
			if errors.Is(err, services.ErrOpenShiftsDisabled) {
				fmt.Printf("\n✗ Open shifts are disabled for %s\n\n", org.Name)
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Created %d draft shift(s)\n\n", len(result.Shifts))
			for _, shift := range result.Shifts {
				fmt.Printf("  %s  %s  %s - %s  [%s, capacity %d]\n",
					shift.ID,
					shift.Title,
					shift.StartTime.Format("2006-01-02 15:04"),
					shift.EndTime.Format("15:04"),
					shift.JobType,
					shift.Capacity,
				)
			}
			if result.Assignment != nil {
				fmt.Printf("\nAssigned: %s (%s)\n", result.Assignment.StaffID, result.Assignment.Status)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("staff", "", "Staff ID to pre-assign (day drop)")
	cmd.Flags().Bool("open", false, "Create an open shift instead of an assigned one")
	cmd.Flags().String("start", "", "Start clock HH:MM (default from config)")
	cmd.Flags().String("end", "", "End clock HH:MM (default from config)")
	cmd.Flags().String("location", "", "Location ID (default: branch filter, then first location)")
	cmd.Flags().String("branch", "", "Branch filter used as a location fallback")
	cmd.Flags().Int("quantity", 1, "Capacity for quick-created shifts")
	cmd.Flags().String("repeat", "", "RRULE for recurring quick-creates, e.g. FREQ=WEEKLY;BYDAY=MO")
	cmd.Flags().String("until", "", "Last day (YYYY-MM-DD) a repeat rule may produce")

	return cmd
}
