package cli

import (
	"context"
	"fmt"

	"github.com/dmateus/crewplan/internal/service"
	"github.com/spf13/cobra"
)

func newMoveCmd(app *App) *cobra.Command {
	var to, project, team string
	var workers []string
	var confirm bool

	cmd := &cobra.Command{
		Use:   "move <entry>",
		Short: "Reschedule an entry, keeping its duration",
		Long: `Move an entry to a new start time. The planned duration is preserved,
workers unavailable on the target date are dropped from the assignment, and
a team whose workers were all dropped goes with them.

Moving an entry that has already started requires --elevated --confirm.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveEntryID(ctx, app, args[0])
			if err != nil {
				return err
			}
			newStart, err := parseMoment(to)
			if err != nil {
				return err
			}

			req := service.RescheduleRequest{
				EntryID:         id,
				NewStart:        newStart,
				NewProjectID:    project,
				NewTeamID:       team,
				Actor:           actorFrom(cmd),
				ConfirmOverride: confirm,
			}
			if cmd.Flags().Changed("worker") {
				req.NewWorkerIDs = workers
			}

			e, err := app.Coordinator.Reschedule(ctx, req)
			if err != nil {
				return err
			}
			fmt.Printf("Moved entry %s to %s\n", e.DisplayID(), e.PlannedStart.Format("2006-01-02 15:04"))
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "New planned start (YYYY-MM-DD HH:MM)")
	cmd.Flags().StringVar(&project, "project", "", "Retarget to this project")
	cmd.Flags().StringVar(&team, "team", "", "Retarget to this team")
	cmd.Flags().StringSliceVar(&workers, "worker", nil, "Replace the worker assignment (repeatable)")
	cmd.Flags().BoolVar(&confirm, "confirm", false, "Confirm moving an entry that has already started")
	addActorFlags(cmd)
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
