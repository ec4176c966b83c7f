package activity

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adrienmarchand/schedcore/adapter/cli"
)

var removeCmd = &cobra.Command{
	Use:     "remove [id]",
	Short:   "Delete an activity",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		id, err := parseActivityID(args[0])
		if err != nil {
			return err
		}
		if err := app.RemoveActivity(cmd.Context(), id); err != nil {
			return fmt.Errorf("remove activity: %w", err)
		}
		fmt.Printf("removed activity %s\n", id)
		return nil
	},
}
