package main

import (
	"github.com/spf13/cobra"

	"foiagate/internal/gate"
	"foiagate/internal/gate/handler"
)

func newClassifyCmd(newService serviceFactory) *cobra.Command {
	var (
		file    string
		surface bool
	)
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Resolve the gate reason and evidence for a case snapshot",
		Long: `Classify reads a case snapshot and prints the resolved gate reason,
its quality and source, and the evidence bullets. With --surface it prints the
full decision surface: question, ordered actions and recommendation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var c gate.CaseSnapshot
			if err := readJSON(cmd, file, &c); err != nil {
				return err
			}
			svc := newService()

			if surface {
				s, err := svc.Evaluate(cmd.Context(), gate.EvaluateRequest{
					Case:   c,
					State:  gate.StateDecisionRequired,
					Regime: gate.RegimeDecision,
				})
				if err != nil {
					return err
				}
				return writeJSON(cmd, handler.FromSurface(s))
			}

			res, err := svc.Classify(cmd.Context(), c)
			if err != nil {
				return err
			}
			return writeJSON(cmd, handler.FromClassifyResult(res))
		},
	}
	f := cmd.Flags()
	f.StringVarP(&file, "file", "f", "", "Case snapshot JSON file, or - for stdin (required)")
	f.BoolVar(&surface, "surface", false, "Print the full decision surface")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
