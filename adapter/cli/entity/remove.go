package entity

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adrienmarchand/schedcore/adapter/cli"
)

var removeCmd = &cobra.Command{
	Use:     "remove [name]",
	Short:   "Delete an entity",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if err := app.RemoveEntity(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("remove entity: %w", err)
		}
		fmt.Printf("removed entity %q\n", args[0])
		return nil
	},
}
