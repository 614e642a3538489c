package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"foiagate/internal/gate"
	"foiagate/internal/gate/handler"
)

func newPreviewCmd(newService serviceFactory) *cobra.Command {
	var (
		file   string
		mode   string
		portal bool
	)
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "List what approving a proposed action would do",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var action gate.NextAction
			if err := readJSON(cmd, file, &action); err != nil {
				return err
			}
			if strings.TrimSpace(string(action.Type)) == "" {
				return fmt.Errorf("%s: action type is required", file)
			}

			m := gate.ExecutionMode(strings.ToUpper(strings.TrimSpace(mode)))
			if m != gate.ModeDry && m != gate.ModeLive {
				return fmt.Errorf("--mode must be DRY or LIVE, got %q", mode)
			}

			req := gate.PreviewRequest{Action: action, Mode: m}
			if portal {
				req.Agency = &gate.Agency{SubmissionMethod: "portal"}
			}
			res, err := newService().Preview(cmd.Context(), req)
			if err != nil {
				return err
			}
			return writeJSON(cmd, handler.FromPreviewResult(res))
		},
	}
	f := cmd.Flags()
	f.StringVarP(&file, "file", "f", "", "Next-action JSON file, or - for stdin (required)")
	f.StringVar(&mode, "mode", string(gate.ModeDry), "Execution mode (DRY or LIVE)")
	f.BoolVar(&portal, "portal", false, "Treat the agency as a portal agency")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
