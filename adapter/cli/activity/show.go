package activity

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adrienmarchand/schedcore/adapter/cli"
)

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one activity's full snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		id, err := parseActivityID(args[0])
		if err != nil {
			return err
		}
		s, err := app.Activity(id)
		if err != nil {
			return fmt.Errorf("show activity: %w", err)
		}
		fmt.Printf("id:           %s\n", s.ID)
		fmt.Printf("name:         %s\n", s.Name)
		fmt.Printf("duration:     %d min\n", s.DurationMinutes)
		fmt.Printf("entities:     %s\n", strings.Join(s.EntityNames, ", "))
		fmt.Printf("groups:       %s\n", strings.Join(s.GroupNames, ", "))
		if s.InsertionInterval != nil {
			fmt.Printf("inserted at:  %s-%s\n", s.InsertionInterval.Beginning(), s.InsertionInterval.End())
		} else {
			fmt.Println("inserted at:  (not inserted)")
		}
		return nil
	},
}
