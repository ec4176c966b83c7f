package workhours

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adrienmarchand/schedcore/adapter/cli"
)

var listEntityName string

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List effective work hours, global or for one entity",
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if listEntityName == "" {
			return fmt.Errorf("workhours list: --entity is required (the global store has no dedicated query)")
		}
		intervals, err := app.WorkHoursOf(listEntityName)
		if err != nil {
			return fmt.Errorf("list work hours: %w", err)
		}
		if len(intervals) == 0 {
			fmt.Printf("%q has no effective work hours\n", listEntityName)
			return nil
		}
		for _, iv := range intervals {
			fmt.Printf("%s-%s\n", iv.Beginning(), iv.End())
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listEntityName, "entity", "", "entity to report effective work hours for")
}
