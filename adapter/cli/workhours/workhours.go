// Package workhours implements the "workhours" command group (§4.2).
package workhours

import "github.com/spf13/cobra"

// Cmd is the "workhours" command group, added to the root command by main.
var Cmd = &cobra.Command{
	Use:   "workhours",
	Short: "Manage global and per-entity work hours",
}

func init() {
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(removeCmd)
	Cmd.AddCommand(listCmd)
}
