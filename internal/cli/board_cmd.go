package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmateus/crewplan/internal/cli/formatter"
	"github.com/dmateus/crewplan/internal/schedule"
	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show the schedule board for a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			fromT, toT, err := boardRange(from, to)
			if err != nil {
				return err
			}
			entries, err := app.Coordinator.Board(context.Background(), app.Branch, fromT, toT)
			if err != nil {
				return err
			}
			fmt.Print(formatter.RenderBoard(entries, time.Now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Range start (YYYY-MM-DD), defaults to today")
	cmd.Flags().StringVar(&to, "to", "", "Range end exclusive (YYYY-MM-DD), defaults to a week out")

	return cmd
}

func newConflictsCmd(app *App) *cobra.Command {
	var from, to string
	var byTeam bool

	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "Detect overlapping assignments on the board",
		RunE: func(cmd *cobra.Command, args []string) error {
			fromT, toT, err := boardRange(from, to)
			if err != nil {
				return err
			}

			keyFn := schedule.ByWorker
			if byTeam {
				keyFn = schedule.ByTeam
			}
			conflicts, err := app.Coordinator.Conflicts(context.Background(), app.Branch, fromT, toT, keyFn)
			if err != nil {
				return err
			}
			fmt.Print(formatter.RenderConflicts(conflicts))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Range start (YYYY-MM-DD), defaults to today")
	cmd.Flags().StringVar(&to, "to", "", "Range end exclusive (YYYY-MM-DD), defaults to a week out")
	cmd.Flags().BoolVar(&byTeam, "by-team", false, "Group conflicts by team instead of worker")

	return cmd
}

func boardRange(from, to string) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	fromT := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	toT := fromT.AddDate(0, 0, 7)

	var err error
	if from != "" {
		if fromT, err = parseDay(from); err != nil {
			return time.Time{}, time.Time{}, err
		}
		toT = fromT.AddDate(0, 0, 7)
	}
	if to != "" {
		if toT, err = parseDay(to); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return fromT, toT, nil
}
