package group

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adrienmarchand/schedcore/adapter/cli"
)

var addEntityCmd = &cobra.Command{
	Use:   "add-entity [group] [entity]",
	Short: "Add an entity to a group's membership",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if err := app.AddEntityToGroup(cmd.Context(), args[0], args[1]); err != nil {
			return fmt.Errorf("add entity to group: %w", err)
		}
		fmt.Printf("added %q to group %q\n", args[1], args[0])
		return nil
	},
}

var removeEntityCmd = &cobra.Command{
	Use:   "remove-entity [group] [entity]",
	Short: "Remove an entity from a group's membership",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if err := app.RemoveEntityFromGroup(cmd.Context(), args[0], args[1]); err != nil {
			return fmt.Errorf("remove entity from group: %w", err)
		}
		fmt.Printf("removed %q from group %q\n", args[1], args[0])
		return nil
	},
}
