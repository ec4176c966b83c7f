package workhours

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adrienmarchand/schedcore/adapter/cli"
	"github.com/adrienmarchand/schedcore/adapter/cli/clitime"
)

var addEntityName string

var addCmd = &cobra.Command{
	Use:   "add [begin HH:MM] [end HH:MM]",
	Short: "Add a work-hours interval, global or scoped to one entity",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		iv, err := clitime.ParseInterval(args[0], args[1])
		if err != nil {
			return err
		}
		if addEntityName != "" {
			if err := app.AddEntityWorkHours(cmd.Context(), addEntityName, iv); err != nil {
				return fmt.Errorf("add entity work hours: %w", err)
			}
			fmt.Printf("added %s-%s to %q's work hours\n", args[0], args[1], addEntityName)
			return nil
		}
		if err := app.AddGlobalWorkHours(cmd.Context(), iv); err != nil {
			return fmt.Errorf("add global work hours: %w", err)
		}
		fmt.Printf("added %s-%s to the global work hours\n", args[0], args[1])
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addEntityName, "entity", "", "scope the interval to one entity instead of the global store")
}
