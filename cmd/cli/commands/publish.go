package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rswalker/academy-scheduler/pkg/core/services"
)

// logNotifier reports published shifts through the application logger.
// It stands in for a real delivery channel, which is out of scope here.
type logNotifier struct {
	logger *zap.Logger
}

func (n *logNotifier) NotifyShiftsPublished(ctx context.Context, orgID string, staffIDs []string) error {
	n.logger.Info("Schedule published, staff should be notified",
		zap.String("organization_id", orgID),
		zap.Strings("staff_ids", staffIDs))
	return nil
}

// PublishCmd creates the publish command
func PublishCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "publish <first_day> <last_day>",
		Short: "Publish all draft shifts between two days, inclusive",
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
			if last.Before(first) {
				return fmt.Errorf("last day %s is before first day %s", args[1], args[0])
			}

			notifier := &logNotifier{logger: app.Logger}
			result, err := services.PublishShifts(
				app.Ctx, app.Store, notifier, app.Logger,
				app.OrgID, first, last.AddDate(0, 0, 1),
			)
			if err != nil {
				return err
			}

			if result.Count == 0 {
				fmt.Println("\nNo draft shifts in that range - already published or empty.")
				fmt.Println()
				return nil
			}

			fmt.Printf("\n✓ Published %d shift(s)\n", result.Count)
			if len(result.StaffIDs) > 0 {
				fmt.Printf("Affected staff: %d\n", len(result.StaffIDs))
			}
			fmt.Println()

			return nil
		},
	}
}
