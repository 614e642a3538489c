package e2e

import (
	"context"
	"testing"

	"github.com/cucumber/godog"
)

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		Name: "foiagate",
		ScenarioInitializer: func(ctx *godog.ScenarioContext) {
			tc := NewTestContext()
			ctx.After(func(ctx context.Context, _ *godog.Scenario, err error) (context.Context, error) {
				tc.Close()
				return ctx, err
			})
			RegisterSteps(ctx, tc)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			Strict:   true,
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
