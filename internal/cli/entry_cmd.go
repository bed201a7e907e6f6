package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmateus/crewplan/internal/cli/formatter"
	"github.com/dmateus/crewplan/internal/domain"
	"github.com/dmateus/crewplan/internal/service"
	"github.com/spf13/cobra"
)

func newEntryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Manage schedule entries",
	}

	cmd.AddCommand(
		newEntryAddCmd(app),
		newEntryListCmd(app),
		newEntryInspectCmd(app),
		newEntryBeginCmd(app),
		newEntryCloseCmd(app),
		newEntryActivityCmd(app),
	)

	return cmd
}

func newEntryAddCmd(app *App) *cobra.Command {
	var project, start, end string
	var workers, teams []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new schedule entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			plannedStart, err := parseMoment(start)
			if err != nil {
				return err
			}

			e := &domain.ScheduleEntry{
				BranchID:     app.Branch,
				ProjectID:    project,
				WorkerIDs:    workers,
				TeamIDs:      teams,
				PlannedStart: plannedStart,
				Status:       domain.EntryOpen,
			}
			if end != "" {
				plannedEnd, err := parseMoment(end)
				if err != nil {
					return err
				}
				e.PlannedEnd = plannedEnd
			}

			if err := app.Entries.Create(context.Background(), e, actorFrom(cmd)); err != nil {
				return err
			}

			fmt.Printf("Created entry %s for project %s\n", e.DisplayID(), project)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project the entry belongs to")
	cmd.Flags().StringVar(&start, "start", "", "Planned start (YYYY-MM-DD HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "Planned end (YYYY-MM-DD HH:MM), defaults to one hour")
	cmd.Flags().StringSliceVar(&workers, "worker", nil, "Assigned worker ID (repeatable)")
	cmd.Flags().StringSliceVar(&teams, "team", nil, "Assigned team ID (repeatable)")
	addActorFlags(cmd)
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func newEntryListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's schedule entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Entries.ListByProject(context.Background(), project)
			if err != nil {
				return err
			}
			fmt.Print(formatter.RenderBoard(entries, time.Now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project whose entries to list")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newEntryInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <entry>",
		Short: "Show one entry in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveEntryID(ctx, app, args[0])
			if err != nil {
				return err
			}
			e, err := app.Entries.GetByID(ctx, id)
			if err != nil {
				return err
			}
			fmt.Print(formatter.RenderEntryDetail(e, time.Now()))
			return nil
		},
	}
}

func newEntryBeginCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "begin <entry>",
		Short: "Clock in on an entry, allocating its sequence number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveEntryID(ctx, app, args[0])
			if err != nil {
				return err
			}
			e, err := app.Entries.Begin(ctx, id, actorFrom(cmd))
			if err != nil {
				return err
			}
			fmt.Printf("Started entry %s\n", e.DisplayID())
			return nil
		},
	}
	addActorFlags(cmd)
	return cmd
}

func newEntryCloseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "close <entry>",
		Short: "Clock out and close an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveEntryID(ctx, app, args[0])
			if err != nil {
				return err
			}
			e, err := app.Entries.Close(ctx, id, actorFrom(cmd))
			if err != nil {
				return err
			}
			fmt.Printf("Closed entry %s\n", e.DisplayID())
			return nil
		},
	}
	addActorFlags(cmd)
	return cmd
}

func newEntryActivityCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "activity <entry>",
		Short: "Show an entry's activity log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveEntryID(ctx, app, args[0])
			if err != nil {
				return err
			}
			events, err := app.Entries.Activity(ctx, id)
			if err != nil {
				return err
			}
			fmt.Print(formatter.RenderActivity(events))
			return nil
		},
	}
}

// actorFrom builds the acting identity from the standard actor flags that
// every mutating command registers through addActorFlags.
func actorFrom(cmd *cobra.Command) service.Actor {
	actor, _ := cmd.Flags().GetString("actor")
	elevated, _ := cmd.Flags().GetBool("elevated")
	if actor == "" {
		actor = "cli"
	}
	return service.Actor{ID: actor, Elevated: elevated}
}

func addActorFlags(cmd *cobra.Command) {
	cmd.Flags().String("actor", "cli", "Acting user recorded in the activity log")
	cmd.Flags().Bool("elevated", false, "Act with elevated permissions")
}
