package events

import "time"

// Kind identifies a lifecycle event. The set is closed: rendering
// dispatches exhaustively over it, so a new kind forces a decision at
// every switch.
type Kind int

const (
	// RunStarted is emitted once before any test runs.
	RunStarted Kind = iota
	// PlanStepStarted marks an intermediate plan-step boundary.
	PlanStepStarted
	// TestStarted is emitted when a test or suite begins.
	TestStarted
	// TestCaseStarted is emitted for each parameterized invocation.
	TestCaseStarted
	// ExpectationChecked is emitted for every evaluated expectation.
	ExpectationChecked
	// IssueRecorded is emitted when a test records a failure.
	IssueRecorded
	// TestCaseEnded closes a parameterized invocation.
	TestCaseEnded
	// TestEnded closes a test or suite.
	TestEnded
	// TestSkipped is emitted for tests that never run.
	TestSkipped
	// TestBypassed is the legacy skip notification, superseded by
	// TestSkipped and kept only so old engines keep working.
	TestBypassed
	// PlanStepEnded closes an intermediate plan-step boundary.
	PlanStepEnded
	// RunEnded is emitted once after every test finished.
	RunEnded
)

// String returns the wire name of the kind, as written to event logs.
func (k Kind) String() string {
	switch k {
	case RunStarted:
		return "runStarted"
	case PlanStepStarted:
		return "planStepStarted"
	case TestStarted:
		return "testStarted"
	case TestCaseStarted:
		return "testCaseStarted"
	case ExpectationChecked:
		return "expectationChecked"
	case IssueRecorded:
		return "issueRecorded"
	case TestCaseEnded:
		return "testCaseEnded"
	case TestEnded:
		return "testEnded"
	case TestSkipped:
		return "testSkipped"
	case TestBypassed:
		return "testBypassed"
	case PlanStepEnded:
		return "planStepEnded"
	case RunEnded:
		return "runEnded"
	}
	return "unknown"
}

// KindFromString maps a wire name back to its Kind.
func KindFromString(s string) (Kind, bool) {
	for k := RunStarted; k <= RunEnded; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// Event is one lifecycle notification from the engine.
//
// Every event carries the instant it happened. Test-scoped kinds carry
// the identity of the test they belong to; IssueRecorded additionally
// carries the issue itself.
type Event struct {
	Kind    Kind
	Instant time.Time
	TestID  *ID
	Issue   *Issue

	// SkipReason accompanies TestSkipped when the author gave one.
	SkipReason string
}

// Context is the engine-owned state handed to a recorder together with
// an event: the currently running test and, when inside a parameterized
// invocation, the current case. Either may be nil.
type Context struct {
	Test *Test
	Case *Case
}
