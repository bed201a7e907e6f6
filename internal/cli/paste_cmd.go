package cli

import (
	"context"
	"fmt"

	"github.com/dmateus/crewplan/internal/service"
	"github.com/spf13/cobra"
)

func newPasteCmd(app *App) *cobra.Command {
	var onto string

	cmd := &cobra.Command{
		Use:   "paste <entry>...",
		Short: "Duplicate entries onto another date as a back-to-back chain",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			ids := make([]string, 0, len(args))
			for _, arg := range args {
				id, err := resolveEntryID(ctx, app, arg)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}
			target, err := parseDay(onto)
			if err != nil {
				return err
			}

			copies, err := app.Coordinator.Paste(ctx, service.PasteRequest{
				SourceIDs:  ids,
				TargetDate: target,
				Actor:      actorFrom(cmd),
			})
			if err != nil {
				return err
			}

			fmt.Printf("Pasted %d entries onto %s:\n", len(copies), target.Format("2006-01-02"))
			for _, cp := range copies {
				fmt.Printf("  %s  %s - %s  %s\n",
					cp.DisplayID(),
					cp.PlannedStart.Format("15:04"),
					cp.PlannedEnd.Format("15:04"),
					cp.ProjectID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&onto, "onto", "", "Target date (YYYY-MM-DD)")
	addActorFlags(cmd)
	_ = cmd.MarkFlagRequired("onto")

	return cmd
}
