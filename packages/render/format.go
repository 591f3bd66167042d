package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/testglow/testglow/packages/events"
)

var dimText = enabled(color.New(color.Faint))

// formatDuration renders the elapsed time between two instants. Clock
// skew must never surface as negative time; clamp to zero instead.
func formatDuration(start, end time.Time) string {
	elapsed := end.Sub(start)
	if elapsed < 0 {
		elapsed = 0
	}
	return fmt.Sprintf("%.3f seconds", elapsed.Seconds())
}

// countPhrase pluralizes a noun for a non-negative count: "1 test",
// "2 issues".
func countPhrase(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// issueSuffix builds the " with N issue(s)" tail appended to test and
// run summary lines.
func issueSuffix(issues, knownIssues int) string {
	switch {
	case issues == 0 && knownIssues == 0:
		return ""
	case issues == 0:
		return fmt.Sprintf(" with %s", countPhrase(knownIssues, "known issue"))
	case knownIssues == 0:
		return fmt.Sprintf(" with %s", countPhrase(issues, "issue"))
	default:
		return fmt.Sprintf(" with %s (including %s)",
			countPhrase(issues+knownIssues, "issue"),
			countPhrase(knownIssues, "known issue"))
	}
}

// commentBlock renders free-text comments as an arrow-prefixed block.
// Continuation lines indent two spaces to align under the arrow. The
// whole block dims when ANSI is enabled. Empty input, empty output.
func commentBlock(comments []string, useANSI bool) string {
	if len(comments) == 0 {
		return ""
	}

	var lines []string
	for _, comment := range comments {
		for i, l := range strings.Split(comment, "\n") {
			if i == 0 {
				lines = append(lines, "→ "+l)
			} else {
				lines = append(lines, "  "+l)
			}
		}
	}
	block := strings.Join(lines, "\n")
	if useANSI {
		return dimText.Sprint(block)
	}
	return block
}

// labeledArguments renders the arguments of a parameterized invocation
// as "label → value" pairs, dropping labels for placeholder parameters.
func labeledArguments(args []events.Argument) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		if a.Parameter.HasName() {
			parts = append(parts, fmt.Sprintf("%s → %s", a.Parameter.Name, a.Value))
		} else {
			parts = append(parts, a.Value)
		}
	}
	return strings.Join(parts, ", ")
}
