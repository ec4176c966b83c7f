package entity

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adrienmarchand/schedcore/adapter/cli"
)

var renameCmd = &cobra.Command{
	Use:   "rename [old-name] [new-name]",
	Short: "Rename an entity, cascading into groups and activities",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if err := app.RenameEntity(cmd.Context(), args[0], args[1]); err != nil {
			return fmt.Errorf("rename entity: %w", err)
		}
		fmt.Printf("renamed entity %q to %q\n", args[0], args[1])
		return nil
	},
}
