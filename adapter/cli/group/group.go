// Package group implements the "group" command group (§4.3).
package group

import "github.com/spf13/cobra"

// Cmd is the "group" command group, added to the root command by main.
var Cmd = &cobra.Command{
	Use:   "group",
	Short: "Manage groups of entities",
}

func init() {
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(removeCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(addEntityCmd)
	Cmd.AddCommand(removeEntityCmd)
}
