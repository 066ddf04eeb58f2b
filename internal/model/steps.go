package model

import "fmt"

// Step is the wizard's position: upload a file, review the cleaning, then
// build the dashboard. Transitions are linear and only advance on a fully
// successful operation.
type Step string

const (
	StepUpload    Step = "upload"
	StepClean     Step = "clean"
	StepDashboard Step = "dashboard"
)

// CanAdvance reports whether moving from s to next is a legal wizard
// transition.
func (s Step) CanAdvance(next Step) bool {
	switch s {
	case StepUpload:
		return next == StepClean
	case StepClean:
		return next == StepDashboard
	default:
		return false
	}
}

// ParseStep validates a stored step value.
func ParseStep(v string) (Step, error) {
	switch Step(v) {
	case StepUpload, StepClean, StepDashboard:
		return Step(v), nil
	}
	return "", fmt.Errorf("unknown wizard step: %q", v)
}
