package activity

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adrienmarchand/schedcore/adapter/cli"
)

var addCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create a new activity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		snap, err := app.AddActivity(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("add activity: %w", err)
		}
		fmt.Printf("added activity %q with id %s\n", snap.Name, snap.ID)
		return nil
	},
}
