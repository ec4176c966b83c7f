package activity

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adrienmarchand/schedcore/adapter/cli"
	"github.com/adrienmarchand/schedcore/adapter/cli/clitime"
)

var insertCmd = &cobra.Command{
	Use:   "insert [id] [HH:MM]",
	Short: "Place an activity at a candidate beginning",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		id, err := parseActivityID(args[0])
		if err != nil {
			return err
		}
		t, err := clitime.ParseHHMM(args[1])
		if err != nil {
			return err
		}
		minutes := t.TotalMinutes()
		if err := app.Insert(cmd.Context(), id, &minutes); err != nil {
			return fmt.Errorf("insert activity: %w", err)
		}
		fmt.Printf("inserted activity %s at %s\n", id, args[1])
		return nil
	},
}

var uninsertCmd = &cobra.Command{
	Use:   "uninsert [id]",
	Short: "Clear an activity's placement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		id, err := parseActivityID(args[0])
		if err != nil {
			return err
		}
		if err := app.Insert(cmd.Context(), id, nil); err != nil {
			return fmt.Errorf("uninsert activity: %w", err)
		}
		fmt.Printf("uninserted activity %s\n", id)
		return nil
	},
}

var reinsertCmd = &cobra.Command{
	Use:   "reinsert [id]",
	Short: "Re-insert an activity evicted by a duration increase, closest to its prior slot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		id, err := parseActivityID(args[0])
		if err != nil {
			return err
		}
		reinserted, err := app.ReinsertClosestTo(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("reinsert activity: %w", err)
		}
		if !reinserted {
			fmt.Printf("activity %s has no prior placement to reinsert near\n", id)
			return nil
		}
		fmt.Printf("reinserted activity %s\n", id)
		return nil
	},
}
