package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmateus/crewplan/internal/cli/formatter"
	"github.com/dmateus/crewplan/internal/domain"
	"github.com/spf13/cobra"
)

func newWorkerCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Manage the worker roster",
	}

	cmd.AddCommand(
		newWorkerAddCmd(app),
		newWorkerListCmd(app),
		newWorkerArchiveCmd(app),
		newWorkerAvailableCmd(app),
		newWorkerLeaveCmd(app),
	)

	return cmd
}

func newWorkerAddCmd(app *App) *cobra.Command {
	var name, team string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a worker",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := &domain.Worker{
				Name:     name,
				TeamID:   team,
				BranchID: app.Branch,
			}
			if err := app.Workers.Create(context.Background(), w); err != nil {
				return err
			}
			fmt.Printf("Added worker %s (%s)\n", w.Name, w.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Worker name")
	cmd.Flags().StringVar(&team, "team", "", "Team the worker belongs to")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newWorkerListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List workers",
		RunE: func(cmd *cobra.Command, args []string) error {
			workers, err := app.Workers.List(context.Background(), all)
			if err != nil {
				return err
			}
			fmt.Print(formatter.RenderWorkers(workers))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived workers")
	return cmd
}

func newWorkerArchiveCmd(app *App) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "archive <worker-id>",
		Short: "Archive a worker from an effective date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			effective := time.Now().UTC()
			if from != "" {
				var err error
				if effective, err = parseDay(from); err != nil {
					return err
				}
			}
			if err := app.Workers.Archive(context.Background(), args[0], effective); err != nil {
				return err
			}
			fmt.Printf("Archived worker %s effective %s\n", args[0], effective.Format("2006-01-02"))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Effective date (YYYY-MM-DD), defaults to today")
	return cmd
}

func newWorkerLeaveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "leave <worker-id>",
		Short: "Show a worker's leave records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := app.Workers.Leave(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Print(formatter.RenderLeave(records))
			return nil
		},
	}
}

func newWorkerAvailableCmd(app *App) *cobra.Command {
	var on string

	cmd := &cobra.Command{
		Use:   "available <worker-id>",
		Short: "Check whether a worker can be scheduled on a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := time.Now().UTC()
			if on != "" {
				var err error
				if date, err = parseDay(on); err != nil {
					return err
				}
			}
			ok, err := app.Workers.Available(context.Background(), args[0], date)
			if err != nil {
				return err
			}
			if ok {
				fmt.Printf("Available on %s\n", date.Format("2006-01-02"))
			} else {
				fmt.Printf("Not available on %s\n", date.Format("2006-01-02"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&on, "on", "", "Date to check (YYYY-MM-DD), defaults to today")
	return cmd
}
