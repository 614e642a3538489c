package gate

import (
	"fmt"
	"strings"
)

// FollowupDays is the follow-up delay shown in previews.
const FollowupDays = 14

// PreviewCaveat accompanies every preview. The steps are derived from static
// rules, not from the execution pipeline, and must be re-checked whenever the
// executor's behavior changes.
const PreviewCaveat = "Preview only: the execution pipeline decides what actually happens."

// StepKind identifies a preview step.
type StepKind string

const (
	StepCreateExecution  StepKind = "create_execution"
	StepCreatePortalTask StepKind = "create_portal_task"
	StepSendEmail        StepKind = "send_email"
	StepSkipSend         StepKind = "skip_send"
	StepScheduleFollowup StepKind = "schedule_followup"
	StepUpdateStatus     StepKind = "update_status"
)

// PreviewStep is one consequence of approving an action.
type PreviewStep struct {
	Kind StepKind `json:"kind"`
	Text string   `json:"text"`
}

// BuildPreview lists what approving action would do, in order. The output is
// advisory text only.
func BuildPreview(action NextAction, mode ExecutionMode, isPortalAgency bool) []PreviewStep {
	steps := []PreviewStep{{
		Kind: StepCreateExecution,
		Text: "Create an execution record for this action",
	}}

	switch {
	case isPortalAgency:
		steps = append(steps, PreviewStep{
			Kind: StepCreatePortalTask,
			Text: "Create a portal task for submission through " + orDefault(action.PortalProvider, "the agency portal"),
		})
	case mode == ModeLive:
		steps = append(steps, PreviewStep{
			Kind: StepSendEmail,
			Text: "Send the email to " + orDefault(action.Recipient, "the agency"),
		})
	default:
		steps = append(steps, PreviewStep{
			Kind: StepSkipSend,
			Text: "Skip sending (DRY mode): the email is recorded but not delivered",
		})
	}

	withdrawal := action.Type.IsWithdrawal()
	if !withdrawal {
		steps = append(steps, PreviewStep{
			Kind: StepScheduleFollowup,
			Text: fmt.Sprintf("Schedule a follow-up in %d days", FollowupDays),
		})
	}

	status := "Update case status to awaiting agency response"
	if withdrawal {
		status = "Update case status to withdrawn"
	}
	steps = append(steps, PreviewStep{Kind: StepUpdateStatus, Text: status})
	return steps
}

func orDefault(s, fallback string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return fallback
}
