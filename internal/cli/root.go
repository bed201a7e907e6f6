package cli

import (
	"github.com/dmateus/crewplan/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Entries     service.EntryService
	Workers     service.WorkerService
	Teams       service.TeamService
	Coordinator service.ScheduleCoordinator

	// Branch scopes every schedule read and write.
	Branch string
}

// NewRootCmd creates the top-level "crewplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "crewplan",
		Short: "Crew schedule board and coordination",
	}

	root.PersistentFlags().StringVar(&app.Branch, "branch", "branch-1", "Branch whose schedule to operate on")

	root.AddCommand(
		newEntryCmd(app),
		newBoardCmd(app),
		newConflictsCmd(app),
		newMoveCmd(app),
		newPasteCmd(app),
		newBulkCmd(app),
		newRecurCmd(app),
		newWorkerCmd(app),
		newTeamCmd(app),
	)

	return root
}
