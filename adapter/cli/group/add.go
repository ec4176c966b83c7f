package group

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adrienmarchand/schedcore/adapter/cli"
)

var addCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Register a new group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		g, err := app.AddGroup(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("add group: %w", err)
		}
		fmt.Printf("added group %q\n", g.Name())
		return nil
	},
}
