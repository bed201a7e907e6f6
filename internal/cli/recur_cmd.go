package cli

import (
	"context"
	"fmt"

	"github.com/dmateus/crewplan/internal/domain"
	"github.com/spf13/cobra"
)

func newRecurCmd(app *App) *cobra.Command {
	var every string
	var interval int
	var until string
	var skipWeekends bool

	cmd := &cobra.Command{
		Use:   "recur <entry>",
		Short: "Materialize a recurrence rule into sibling entries",
		Long: `Expand a recurrence rule anchored at the given entry into real schedule
entries, one per occurrence up to the end date. The anchor keeps the rule;
the created siblings do not, so they are never re-expanded.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveEntryID(ctx, app, args[0])
			if err != nil {
				return err
			}
			endDate, err := parseDay(until)
			if err != nil {
				return err
			}

			rule := domain.RecurrenceRule{
				Type:         domain.RecurrenceType(every),
				Interval:     interval,
				EndDate:      endDate,
				SkipWeekends: skipWeekends,
			}
			siblings, err := app.Coordinator.Materialize(ctx, id, rule, actorFrom(cmd))
			if err != nil {
				return err
			}

			fmt.Printf("Materialized %d occurrences\n", len(siblings))
			for _, sib := range siblings {
				fmt.Printf("  %s  %s\n", sib.PlannedStart.Format("2006-01-02 15:04"), sib.DisplayID())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&every, "every", "weekly", "Recurrence type: daily, weekly, monthly or yearly")
	cmd.Flags().IntVar(&interval, "interval", 1, "Step size in units of the recurrence type")
	cmd.Flags().StringVar(&until, "until", "", "Last date to generate (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&skipWeekends, "skip-weekends", false, "Drop Saturdays and shift Sundays to the preceding Saturday")
	addActorFlags(cmd)
	_ = cmd.MarkFlagRequired("until")

	return cmd
}
