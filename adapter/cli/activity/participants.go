package activity

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adrienmarchand/schedcore/adapter/cli"
)

var addEntityCmd = &cobra.Command{
	Use:   "add-entity [id] [entity]",
	Short: "Add an entity as a direct participant of an activity",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		id, err := parseActivityID(args[0])
		if err != nil {
			return err
		}
		if err := app.AddEntityToActivity(cmd.Context(), id, args[1]); err != nil {
			return fmt.Errorf("add entity to activity: %w", err)
		}
		fmt.Printf("added %q to activity %s\n", args[1], id)
		return nil
	},
}

var removeEntityCmd = &cobra.Command{
	Use:   "remove-entity [id] [entity]",
	Short: "Remove an entity from an activity's direct participants",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		id, err := parseActivityID(args[0])
		if err != nil {
			return err
		}
		if err := app.RemoveEntityFromActivity(cmd.Context(), id, args[1]); err != nil {
			return fmt.Errorf("remove entity from activity: %w", err)
		}
		fmt.Printf("removed %q from activity %s\n", args[1], id)
		return nil
	},
}

var addGroupCmd = &cobra.Command{
	Use:   "add-group [id] [group]",
	Short: "Add a group as a participant group of an activity",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		id, err := parseActivityID(args[0])
		if err != nil {
			return err
		}
		if err := app.AddGroupToActivity(cmd.Context(), id, args[1]); err != nil {
			return fmt.Errorf("add group to activity: %w", err)
		}
		fmt.Printf("added group %q to activity %s\n", args[1], id)
		return nil
	},
}

var removeGroupCmd = &cobra.Command{
	Use:   "remove-group [id] [group]",
	Short: "Remove a group from an activity's participant groups",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		id, err := parseActivityID(args[0])
		if err != nil {
			return err
		}
		if err := app.RemoveGroupFromActivity(cmd.Context(), id, args[1]); err != nil {
			return fmt.Errorf("remove group from activity: %w", err)
		}
		fmt.Printf("removed group %q from activity %s\n", args[1], id)
		return nil
	},
}
