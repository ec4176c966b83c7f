package entity

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adrienmarchand/schedcore/adapter/cli"
)

var freeTimeCmd = &cobra.Command{
	Use:   "free-time [name]",
	Short: "Report an entity's remaining free time, in minutes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		minutes, err := app.FreeTimeOf(args[0])
		if err != nil {
			return fmt.Errorf("free time: %w", err)
		}
		fmt.Printf("%d minutes free\n", minutes)
		return nil
	},
}
