package group

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adrienmarchand/schedcore/adapter/cli"
)

var removeCmd = &cobra.Command{
	Use:     "remove [name]",
	Short:   "Delete a group, cascading into every activity that lists it",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if err := app.RemoveGroup(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("remove group: %w", err)
		}
		fmt.Printf("removed group %q\n", args[0])
		return nil
	},
}
