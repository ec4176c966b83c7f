package entity

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adrienmarchand/schedcore/adapter/cli"
)

var (
	addMail     string
	addSendMail bool
)

var addCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Register a new entity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		e, err := app.AddEntity(cmd.Context(), args[0], addMail, addSendMail)
		if err != nil {
			return fmt.Errorf("add entity: %w", err)
		}
		fmt.Printf("added entity %q\n", e.Name())
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addMail, "mail", "", "entity's mail address")
	addCmd.Flags().BoolVar(&addSendMail, "send-mail", false, "whether schedcore may mail this entity")
}
