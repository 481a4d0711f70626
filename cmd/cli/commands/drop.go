package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rswalker/academy-scheduler/pkg/core/services"
)

// DropCmd creates the drop command
func DropCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drop <staff_id>",
		Short: "Drop a staff member onto a shift, a day, or the open-header row",
		Long: `Resolve a staff drop the way the scheduling board does.

Exactly one target must be given: --shift assigns the staff member to an
existing shift, --day creates a new shift on that day pre-assigned to them,
and --open-header (with --day) creates an open shift using their job type.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			staff, err := app.FindStaff(args[0])
			if err != nil {
				return err
			}

			shiftID, _ := cmd.Flags().GetString("shift")
			dayArg, _ := cmd.Flags().GetString("day")
			openHeader, _ := cmd.Flags().GetBool("open-header")

			var target services.DropTarget
			switch {
			case shiftID != "":
				target = services.DropTarget{Kind: services.TargetExistingShift, ShiftID: shiftID}

			case dayArg != "":
				day, err := app.parseDay(dayArg)
				if err != nil {
					return err
				}
				kind := services.TargetDayColumn
				if openHeader {
					kind = services.TargetOpenHeaderRow
				}
				target = services.DropTarget{Kind: kind, Day: day}

			default:
				return fmt.Errorf("one of --shift or --day is required")
			}

			org, err := app.Directory.Organization(app.OrgID)
			if err != nil {
				return fmt.Errorf("failed to load organization: %w", err)
			}

			result, err := services.ResolveDrop(app.Ctx, app.Store, app.Directory, org, app.Cfg, app.Logger, target, *staff)
			if errors.Is(err, services.ErrOpenShiftsDisabled) {
				fmt.Printf("\n✗ Open shifts are disabled for %s\n\n", org.Name)
				return nil
			}
			if err != nil {
				return err
			}

			switch result.Outcome {
			case services.DropAlreadyAssigned:
				fmt.Printf("\n%s is already on shift %s, nothing changed\n\n", staff.DisplayName, result.Shift.ID)
			case services.DropCreatedOpen:
				fmt.Printf("\n✓ Created open shift %s (%s)\n\n", result.Shift.ID, result.Shift.JobType)
			default:
				fmt.Printf("\n✓ %s assigned to shift %s (%s - %s)\n\n",
					staff.DisplayName,
					result.Shift.ID,
					result.Shift.StartTime.Format("2006-01-02 15:04"),
					result.Shift.EndTime.Format("15:04"),
				)
			}

			return nil
		},
	}

	cmd.Flags().String("shift", "", "Existing shift ID to assign onto")
	cmd.Flags().String("day", "", "Day (YYYY-MM-DD) to create a shift on")
	cmd.Flags().Bool("open-header", false, "Target the open-header row instead of the day column")

	return cmd
}
