package main

import (
	"github.com/spf13/cobra"

	"foiagate/internal/gate"
	"foiagate/internal/platform/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "gatectl",
		Short: "Classify paused FOIA cases and preview proposed actions",
		Long: `gatectl runs the decision-gate engine over JSON snapshots without a server.
Input files use the same shapes as the HTTP API; pass -f - to read stdin.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger.Init(logger.ParseLevel(logLevel), "text", cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	newService := func(opts ...gate.Option) *gate.Service {
		return gate.NewService(append([]gate.Option{gate.WithLogger(logger.New("gatectl"))}, opts...)...)
	}
	root.AddCommand(
		newClassifyCmd(newService),
		newPreviewCmd(newService),
		newReviewActionsCmd(),
	)
	return root
}
