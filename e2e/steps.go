package e2e

import (
	"github.com/cucumber/godog"

	"foiagate/e2e/steps/gate"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	gate.RegisterSteps(ctx, tc)
}
