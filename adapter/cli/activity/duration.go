package activity

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/adrienmarchand/schedcore/adapter/cli"
)

var setDurationCmd = &cobra.Command{
	Use:   "set-duration [id] [minutes]",
	Short: "Change an activity's duration",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		id, err := parseActivityID(args[0])
		if err != nil {
			return err
		}
		minutes, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("%q is not a number of minutes: %w", args[1], err)
		}
		if err := app.SetDuration(cmd.Context(), id, minutes); err != nil {
			return fmt.Errorf("set duration: %w", err)
		}
		fmt.Printf("set activity %s's duration to %d minutes\n", id, minutes)
		return nil
	},
}
