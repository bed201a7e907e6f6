package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmateus/crewplan/internal/cli/formatter"
	"github.com/dmateus/crewplan/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func newBulkCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bulk",
		Short: "Paced bulk operations on many entries",
	}

	cmd.AddCommand(
		newBulkArchiveCmd(app),
		newBulkDeleteCmd(app),
	)

	return cmd
}

func newBulkArchiveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "archive <entry>...",
		Short: "Archive many entries, pausing between batches",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBulk(app, args, yes, "Archived", app.Coordinator.BulkArchive)
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the destructive operation")
	return cmd
}

func newBulkDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <entry>...",
		Short: "Permanently delete many entries, pausing between batches",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBulk(app, args, yes, "Deleted", app.Coordinator.BulkDelete)
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the destructive operation")
	return cmd
}

func runBulk(app *App, args []string, yes bool, verb string,
	op func(context.Context, []string, bool) (service.BulkResult, error)) error {

	ctx := context.Background()
	ids := make([]string, 0, len(args))
	for _, arg := range args {
		id, err := resolveEntryID(ctx, app, arg)
		if err != nil {
			// Unresolvable inputs are passed through; the operation
			// reports them as already removed.
			id = arg
		}
		ids = append(ids, id)
	}

	// Without --yes, ask interactively when attached to a terminal.
	// Non-interactive runs fail with the confirmation error instead.
	if !yes && (isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())) {
		fmt.Printf("About to run '%s' on %d entries. Type yes to continue: ", strings.ToLower(verb), len(ids))
		var answer string
		_, _ = fmt.Scanln(&answer)
		yes = strings.EqualFold(strings.TrimSpace(answer), "yes")
	}

	res, err := op(ctx, ids, yes)
	if err != nil {
		return err
	}
	fmt.Print(formatter.RenderBulkResult(verb, res))
	return nil
}
