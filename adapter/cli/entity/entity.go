// Package entity implements the "entity" command group (§4.3).
package entity

import "github.com/spf13/cobra"

// Cmd is the "entity" command group, added to the root command by main.
var Cmd = &cobra.Command{
	Use:   "entity",
	Short: "Manage entities (participants)",
}

func init() {
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(removeCmd)
	Cmd.AddCommand(renameCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(freeTimeCmd)
}
