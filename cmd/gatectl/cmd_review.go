package main

import (
	"github.com/spf13/cobra"

	"foiagate/internal/gate"
	"foiagate/internal/gate/handler"
)

func newReviewActionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "review-actions <reason>",
		Short: "List the actions that resolve a review reason",
		Long: `Review reasons: PORTAL_FAILED, PORTAL_STUCK, FEE_QUOTE, DENIAL,
MISSING_INFO, GENERAL. Unrecognized reasons resolve to GENERAL.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reason := gate.ParseReviewReason(args[0])
			return writeJSON(cmd, handler.FromReviewActions(reason, gate.ReviewActions(reason)))
		},
	}
}
