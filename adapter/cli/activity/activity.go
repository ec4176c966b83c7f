// Package activity implements the "activity" command group (§4.4).
package activity

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/adrienmarchand/schedcore/internal/scheduling/domain"
)

// Cmd is the "activity" command group, added to the root command by main.
var Cmd = &cobra.Command{
	Use:   "activity",
	Short: "Manage activities and their insertion",
}

func init() {
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(removeCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(setDurationCmd)
	Cmd.AddCommand(addEntityCmd)
	Cmd.AddCommand(removeEntityCmd)
	Cmd.AddCommand(addGroupCmd)
	Cmd.AddCommand(removeGroupCmd)
	Cmd.AddCommand(insertCmd)
	Cmd.AddCommand(uninsertCmd)
	Cmd.AddCommand(reinsertCmd)
	Cmd.AddCommand(costsCmd)
}

func parseActivityID(s string) (domain.ActivityID, error) {
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("%q is not a valid activity id: %w", s, err)
	}
	return domain.ActivityID(n), nil
}
