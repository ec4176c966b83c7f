package workhours

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adrienmarchand/schedcore/adapter/cli"
	"github.com/adrienmarchand/schedcore/adapter/cli/clitime"
)

var removeEntityName string

var removeCmd = &cobra.Command{
	Use:     "remove [begin HH:MM] [end HH:MM]",
	Short:   "Remove a work-hours interval, global or scoped to one entity",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		iv, err := clitime.ParseInterval(args[0], args[1])
		if err != nil {
			return err
		}
		if removeEntityName != "" {
			if err := app.RemoveEntityWorkHours(cmd.Context(), removeEntityName, iv); err != nil {
				return fmt.Errorf("remove entity work hours: %w", err)
			}
			fmt.Printf("removed %s-%s from %q's work hours\n", args[0], args[1], removeEntityName)
			return nil
		}
		if err := app.RemoveGlobalWorkHours(cmd.Context(), iv); err != nil {
			return fmt.Errorf("remove global work hours: %w", err)
		}
		fmt.Printf("removed %s-%s from the global work hours\n", args[0], args[1])
		return nil
	},
}

func init() {
	removeCmd.Flags().StringVar(&removeEntityName, "entity", "", "scope the interval to one entity instead of the global store")
}
