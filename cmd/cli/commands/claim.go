package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rswalker/academy-scheduler/pkg/core/services"
)

// ClaimCmd creates the claim command
func ClaimCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "claim <shift_id> <staff_id>",
		Short: "Claim one slot of an open shift for a staff member",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			shiftID, staffID := args[0], args[1]

			org, err := app.Directory.Organization(app.OrgID)
			if err != nil {
				return fmt.Errorf("failed to load organization: %w", err)
			}

			result, err := services.ClaimShift(app.Ctx, app.Store, org, app.Logger, shiftID, staffID)
			if errors.Is(err, services.ErrOpenShiftsDisabled) {
				fmt.Printf("\n✗ Open shifts are disabled for %s\n\n", org.Name)
				return nil
			}
			if err != nil {
				return err
			}

			switch result.Outcome {
			case services.ClaimAccepted:
				fmt.Printf("\n✓ Claimed shift %s for %s\n", shiftID, staffID)
			case services.ClaimAlreadyClaimed:
				fmt.Printf("\n%s already holds a slot on shift %s\n", staffID, shiftID)
			case services.ClaimShiftFull:
				fmt.Printf("\n✗ Shift %s is full\n", shiftID)
			}
			fmt.Printf("Filled: %d/%d (%s)\n\n", result.Filled, result.Shift.Capacity, result.State)

			return nil
		},
	}
}
