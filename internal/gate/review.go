package gate

// ReviewAction is one way to resolve an operational-failure review.
type ReviewAction struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

var (
	retryPortal = ReviewAction{
		ID:          "retry_portal",
		Label:       "Retry portal submission",
		Description: "Queue another automated portal submission.",
	}
	submitManually = ReviewAction{
		ID:          "submit_manually",
		Label:       "Mark submitted manually",
		Description: "Record that you submitted through the portal yourself.",
	}
	cancelPortal = ReviewAction{
		ID:          "cancel_portal",
		Label:       "Cancel portal submission",
		Description: "Stop the portal submission and mark the request as sent.",
	}
	withdrawReview = ReviewAction{
		ID:          "withdraw",
		Label:       "Withdraw request",
		Description: "Withdraw the request and stop all correspondence.",
	}
)

var reviewActions = map[ReviewReason][]ReviewAction{
	ReviewPortalFailed: {
		retryPortal,
		submitManually,
		{
			ID:          "send_via_email",
			Label:       "Send by email instead",
			Description: "Switch this request to email delivery.",
		},
		cancelPortal,
	},
	ReviewPortalStuck: {
		{
			ID:          "check_portal_status",
			Label:       "Check portal status",
			Description: "Re-read the portal to see whether the submission went through.",
		},
		retryPortal,
		submitManually,
		cancelPortal,
	},
	ReviewFeeQuote: {
		{ID: "approve_fee", Label: "Approve fee", Description: "Accept the quoted fee and authorize payment."},
		{ID: "negotiate_fee", Label: "Negotiate", Description: "Ask the agency to reduce or waive the fee."},
		{ID: "decline_fee", Label: "Decline fee", Description: "Decline the fee and ask for whatever can be released at no cost."},
	},
	ReviewDenial: {
		{ID: "appeal", Label: "File appeal", Description: "Send an administrative appeal challenging the denial."},
		{ID: "rebut", Label: "Send rebuttal", Description: "Reply disputing the grounds for denial."},
		{ID: "accept_denial", Label: "Accept denial", Description: "Close the request without further correspondence."},
	},
	ReviewMissingInfo: {
		{ID: "provide_info", Label: "Provide missing information", Description: "Fill in what the copilot needs and resume."},
		{ID: "send_clarification", Label: "Ask the agency", Description: "Send the agency a clarification question."},
		withdrawReview,
	},
	ReviewGeneral: {
		{ID: "resume", Label: "Resume automation", Description: "Let the copilot continue from where it stopped."},
		{ID: "mark_resolved", Label: "Mark resolved", Description: "Record that the issue was handled outside the system."},
		withdrawReview,
	},
}

// ReviewActions returns the resolvable actions for reason. Unrecognized reasons
// get the GENERAL list.
func ReviewActions(reason ReviewReason) []ReviewAction {
	actions, ok := reviewActions[reason]
	if !ok {
		actions = reviewActions[ReviewGeneral]
	}
	return append([]ReviewAction(nil), actions...)
}
