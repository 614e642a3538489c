package gate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any) error
	GET(path string) error
	LastStatus() int
	GetResponseField(path string) (any, error)
	ResponseContains(path string) bool
}

// RegisterSteps registers gate-related step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &gateSteps{tc: tc, state: "decision_required"}

	// Request steps
	ctx.Step(`^a case snapshot:$`, steps.aCaseSnapshot)
	ctx.Step(`^the case is in state "([^"]*)"$`, steps.caseIsInState)
	ctx.Step(`^the case is in the review regime$`, steps.caseIsInReviewRegime)
	ctx.Step(`^I evaluate the case$`, steps.evaluateCase)
	ctx.Step(`^I classify the case$`, steps.classifyCase)
	ctx.Step(`^I preview the action in "([^"]*)" mode:$`, steps.previewAction)
	ctx.Step(`^I request the review actions for "([^"]*)"$`, steps.requestReviewActions)

	// Assertion steps
	ctx.Step(`^the response status should be (\d+)$`, steps.responseStatusShouldBe)
	ctx.Step(`^the response field "([^"]*)" should equal "([^"]*)"$`, steps.responseFieldShouldEqual)
	ctx.Step(`^the response should not contain "([^"]*)"$`, steps.responseShouldNotContain)
	ctx.Step(`^the evidence at "([^"]*)" should be:$`, steps.evidenceShouldBe)
	ctx.Step(`^the preview steps should be "([^"]*)"$`, steps.previewStepsShouldBe)
}

type gateSteps struct {
	tc     TestContext
	snap   json.RawMessage
	state  string
	regime string
}

func (s *gateSteps) aCaseSnapshot(ctx context.Context, doc *godog.DocString) error {
	if !json.Valid([]byte(doc.Content)) {
		return fmt.Errorf("case snapshot is not valid JSON")
	}
	s.snap = json.RawMessage(doc.Content)
	return nil
}

func (s *gateSteps) caseIsInState(ctx context.Context, state string) error {
	s.state = state
	return nil
}

func (s *gateSteps) caseIsInReviewRegime(ctx context.Context) error {
	s.regime = "review"
	return nil
}

func (s *gateSteps) evaluateCase(ctx context.Context) error {
	body := map[string]any{
		"case":  s.caseBody(),
		"state": s.state,
	}
	if s.regime != "" {
		body["regime"] = s.regime
	}
	return s.tc.POST("/gates/evaluate", body)
}

func (s *gateSteps) classifyCase(ctx context.Context) error {
	return s.tc.POST("/gates/classify", map[string]any{"case": s.caseBody()})
}

func (s *gateSteps) previewAction(ctx context.Context, mode string, doc *godog.DocString) error {
	var action map[string]any
	if err := json.Unmarshal([]byte(doc.Content), &action); err != nil {
		return fmt.Errorf("action is not valid JSON: %w", err)
	}
	body := map[string]any{"action": action, "mode": mode}
	if agency, ok := action["agency"]; ok {
		delete(action, "agency")
		body["agency"] = agency
	}
	return s.tc.POST("/actions/preview", body)
}

func (s *gateSteps) requestReviewActions(ctx context.Context, reason string) error {
	return s.tc.GET("/review/" + reason + "/actions")
}

func (s *gateSteps) responseStatusShouldBe(ctx context.Context, status int) error {
	if got := s.tc.LastStatus(); got != status {
		return fmt.Errorf("expected status %d, got %d", status, got)
	}
	return nil
}

func (s *gateSteps) responseFieldShouldEqual(ctx context.Context, path, want string) error {
	v, err := s.tc.GetResponseField(path)
	if err != nil {
		return err
	}
	if got := fmt.Sprint(v); got != want {
		return fmt.Errorf("expected %s to be %q, got %q", path, want, got)
	}
	return nil
}

func (s *gateSteps) responseShouldNotContain(ctx context.Context, path string) error {
	if s.tc.ResponseContains(path) {
		return fmt.Errorf("expected %s to be absent", path)
	}
	return nil
}

func (s *gateSteps) evidenceShouldBe(ctx context.Context, path string, table *godog.Table) error {
	v, err := s.tc.GetResponseField(path)
	if err != nil {
		return err
	}
	items, ok := v.([]any)
	if !ok {
		return fmt.Errorf("%s is not a list", path)
	}
	want := make([]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		want = append(want, row.Cells[0].Value)
	}
	got := make([]string, 0, len(items))
	for _, item := range items {
		got = append(got, fmt.Sprint(item))
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		return fmt.Errorf("evidence mismatch:\nwant %q\ngot  %q", want, got)
	}
	return nil
}

func (s *gateSteps) previewStepsShouldBe(ctx context.Context, kinds string) error {
	v, err := s.tc.GetResponseField("steps")
	if err != nil {
		return err
	}
	steps, ok := v.([]any)
	if !ok {
		return fmt.Errorf("steps is not a list")
	}
	got := make([]string, 0, len(steps))
	for _, step := range steps {
		m, _ := step.(map[string]any)
		got = append(got, fmt.Sprint(m["kind"]))
	}
	if want := strings.Split(kinds, ","); strings.Join(got, ",") != strings.Join(want, ",") {
		return fmt.Errorf("expected steps %v, got %v", want, got)
	}
	return nil
}

func (s *gateSteps) caseBody() any {
	if s.snap == nil {
		return map[string]any{}
	}
	return s.snap
}
