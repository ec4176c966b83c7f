// Package schedule implements the "schedule" command group: running the
// best-first auto-insertion search over every not-yet-inserted activity and
// applying its result (§4.8).
package schedule

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adrienmarchand/schedcore/adapter/cli"
)

// Cmd is the "schedule" command, added to the root command by main.
var Cmd = &cobra.Command{
	Use:   "schedule",
	Short: "Auto-insert every not-yet-inserted activity",
	Long: `schedule runs the best-first branch-and-bound search over every
activity that is not currently inserted, and applies the winning placement
to each one. It fails if any candidate's insertion costs have not been
computed yet (run "activity costs" to check readiness first).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		run, err := app.StartAutoInsertion()
		if err != nil {
			return fmt.Errorf("start auto-insertion: %w", err)
		}
		result := run.Wait()
		if !result.Solved {
			fmt.Println("no complete placement found")
			return nil
		}
		if err := app.ApplyResult(cmd.Context(), run, result); err != nil {
			return fmt.Errorf("apply auto-insertion result: %w", err)
		}
		fmt.Printf("auto-inserted %d activities\n", len(result.Beginnings))
		return nil
	},
}
