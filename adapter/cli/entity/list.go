package entity

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adrienmarchand/schedcore/adapter/cli"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List every entity",
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		names := app.EntitiesSorted()
		if len(names) == 0 {
			fmt.Println("no entities registered")
			return nil
		}
		fmt.Println(strings.Join(names, "\n"))
		return nil
	},
}
