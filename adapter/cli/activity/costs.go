package activity

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adrienmarchand/schedcore/adapter/cli"
)

var costsCmd = &cobra.Command{
	Use:   "costs [id]",
	Short: "List an activity's cached candidate beginnings and insertion costs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		id, err := parseActivityID(args[0])
		if err != nil {
			return err
		}
		costs, ready, err := app.PossibleInsertionTimesWithCost(id)
		if err != nil {
			return fmt.Errorf("activity costs: %w", err)
		}
		if !ready {
			fmt.Println("not computed yet")
			return nil
		}
		if len(costs) == 0 {
			fmt.Println("no candidate beginnings")
			return nil
		}
		for _, c := range costs {
			fmt.Printf("%s  cost %d\n", c.Beginning, c.Cost)
		}
		return nil
	},
}
