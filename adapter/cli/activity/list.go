package activity

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adrienmarchand/schedcore/adapter/cli"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List every activity",
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		snaps := app.ActivitiesSorted()
		if len(snaps) == 0 {
			fmt.Println("no activities registered")
			return nil
		}
		for _, s := range snaps {
			placement := "not inserted"
			if s.InsertionInterval != nil {
				placement = fmt.Sprintf("%s-%s", s.InsertionInterval.Beginning(), s.InsertionInterval.End())
			}
			fmt.Printf("%-4s %-20s %4d min  %-24s participants: %s\n",
				s.ID, s.Name, s.DurationMinutes, placement, strings.Join(s.EntityNames, ", "))
		}
		return nil
	},
}
