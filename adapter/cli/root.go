// Package cli implements the cobra command tree: a thin front-end over the
// facade.Data object of §6, one subcommand package per concern
// (entity, group, workhours, activity, schedule).
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/adrienmarchand/schedcore/internal/scheduling/facade"
	"github.com/adrienmarchand/schedcore/internal/shared/application"
)

var (
	cfgFile string
	verbose bool
	logger  *slog.Logger
	app     *facade.Data
)

type commandContext struct {
	correlationID uuid.UUID
	startedAt     time.Time
}

type commandContextKey struct{}

var rootCmd = &cobra.Command{
	Use:   "schedcore",
	Short: "schedcore - constraint-based activity scheduler",
	Long: `schedcore manages entities, groups, work hours and activities,
computes possible insertion times under work-hour and conflict constraints,
and can auto-insert a whole schedule with a best-first search.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if logger == nil {
			logger = slog.Default()
		}
		ctx := cmd.Context()
		info := commandContext{
			correlationID: uuid.New(),
			startedAt:     time.Now(),
		}
		ctx = context.WithValue(ctx, commandContextKey{}, info)
		ctx = application.WithCausationID(ctx, info.correlationID)
		cmd.SetContext(ctx)
		logger.Info("command start",
			"command", cmd.CommandPath(),
			"correlation_id", info.correlationID.String(),
		)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger == nil {
			logger = slog.Default()
		}
		info, ok := cmd.Context().Value(commandContextKey{}).(commandContext)
		if !ok {
			return
		}
		logger.Info("command end",
			"command", cmd.CommandPath(),
			"correlation_id", info.correlationID.String(),
			"duration_ms", time.Since(info.startedAt).Milliseconds(),
		)
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// AddCommand adds a command to the root command.
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

// SetLogger sets the CLI logger.
func SetLogger(l *slog.Logger) {
	logger = l
}

// SetApp sets the facade every subcommand operates on.
func SetApp(a *facade.Data) {
	app = a
}

// GetApp returns the facade every subcommand operates on, or nil if the CLI
// has not been wired yet.
func GetApp() *facade.Data {
	return app
}
