package cli

import (
	"context"
	"fmt"

	"github.com/dmateus/crewplan/internal/cli/formatter"
	"github.com/dmateus/crewplan/internal/domain"
	"github.com/spf13/cobra"
)

func newTeamCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Manage teams",
	}

	cmd.AddCommand(
		newTeamAddCmd(app),
		newTeamListCmd(app),
	)

	return cmd
}

func newTeamAddCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a team",
		RunE: func(cmd *cobra.Command, args []string) error {
			tm := &domain.Team{
				Name:     name,
				BranchID: app.Branch,
			}
			if err := app.Teams.Create(context.Background(), tm); err != nil {
				return err
			}
			fmt.Printf("Added team %s (%s)\n", tm.Name, tm.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Team name")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newTeamListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List teams",
		RunE: func(cmd *cobra.Command, args []string) error {
			teams, err := app.Teams.List(context.Background(), app.Branch)
			if err != nil {
				return err
			}
			fmt.Print(formatter.RenderTeams(teams))
			return nil
		},
	}
}
