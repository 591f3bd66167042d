package render

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/testglow/testglow/packages/events"
)

// Version identifies the rendering library in the run-started banner.
// Overridden at build time by the CLI.
var Version = "dev"

// Recorder consumes lifecycle events and writes rendered lines to a
// sink. Safe for arbitrary concurrent use; the sink receives one
// newline-terminated string per non-suppressed event and may interleave
// concurrent writes however it likes.
type Recorder struct {
	opts      Options
	write     func(string)
	ctx       *runContext
	tagColors map[string]Color
}

// NewRecorder builds a recorder writing through sink. A nil sink
// discards output.
func NewRecorder(sink func(string), opts ...Option) *Recorder {
	if sink == nil {
		sink = func(string) {}
	}
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return &Recorder{
		opts:      o,
		write:     sink,
		ctx:       newRunContext(),
		tagColors: mergeTagColors(o.TagColors),
	}
}

// Record renders one event and writes the result to the sink. Reports
// whether anything was written; suppressed kinds never are.
func (r *Recorder) Record(e events.Event, ec events.Context) bool {
	out := r.render(e, ec)
	if out == "" {
		return false
	}
	r.write(out)
	return true
}

// Warn writes an advisory message with the warning glyph. Render never
// calls this itself; it exists for callers that need to surface tool
// problems alongside test output.
func (r *Recorder) Warn(message string) {
	r.write(fmt.Sprintf("%s %s\n", SymbolWarning.Render(r.opts), message))
}

func (r *Recorder) render(e events.Event, ec events.Context) string {
	switch e.Kind {
	case events.RunStarted:
		r.ctx.recordRunStart(e.Instant)
		return r.line(SymbolDefault, "Test run started.", r.environmentComments())

	case events.TestStarted:
		t := ec.Test
		if t == nil {
			return ""
		}
		r.ctx.beginEntry(t.ID, e.Instant)
		r.ctx.incrementRunCount(t.IsSuite)
		return r.line(SymbolDefault, fmt.Sprintf("Test %s started.", r.testName(t)), nil)

	case events.TestEnded:
		t := ec.Test
		if t == nil {
			return ""
		}
		snap := r.ctx.subtreeSnapshot(t.ID)
		duration := formatDuration(snap.startedAt, e.Instant)
		if snap.issues > 0 {
			text := fmt.Sprintf("Test %s failed after %s%s.",
				r.testName(t), duration, issueSuffix(snap.issues, snap.knownIssues))
			return r.line(SymbolFail, text, t.Comments)
		}
		text := fmt.Sprintf("Test %s passed after %s%s.",
			r.testName(t), duration, issueSuffix(snap.issues, snap.knownIssues))
		return r.line(PassSymbol(snap.knownIssues > 0), text, nil)

	case events.TestSkipped:
		t := ec.Test
		if t == nil {
			return ""
		}
		r.ctx.beginEntry(t.ID, e.Instant)
		r.ctx.incrementRunCount(t.IsSuite)
		text := fmt.Sprintf("Test %s skipped.", r.testName(t))
		if e.SkipReason != "" {
			text = fmt.Sprintf("Test %s skipped: %q.", r.testName(t), e.SkipReason)
		}
		return r.line(SymbolSkip, text, nil)

	case events.IssueRecorded:
		return r.renderIssue(e, ec)

	case events.TestCaseStarted:
		t, c := ec.Test, ec.Case
		if t == nil || c == nil || !c.Distinct || len(c.Arguments) == 0 {
			return ""
		}
		text := fmt.Sprintf("Passing %s %s to Test %s.",
			countPhrase(len(c.Arguments), "argument"),
			labeledArguments(c.Arguments), r.testName(t))
		return r.line(SymbolDefault, text, nil)

	case events.RunEnded:
		snap := r.ctx.snapshot()
		duration := formatDuration(snap.startedAt, e.Instant)
		if snap.issues > 0 {
			text := fmt.Sprintf("Test run with %s failed after %s%s.",
				countPhrase(snap.testCount, "test"), duration,
				issueSuffix(snap.issues, snap.knownIssues))
			return r.line(SymbolFail, text, nil)
		}
		text := fmt.Sprintf("Test run with %s passed after %s%s.",
			countPhrase(snap.testCount, "test"), duration,
			issueSuffix(snap.issues, snap.knownIssues))
		return r.line(PassSymbol(snap.knownIssues > 0), text, nil)

	case events.PlanStepStarted, events.PlanStepEnded,
		events.ExpectationChecked, events.TestCaseEnded,
		events.TestBypassed:
		// Suppressed: no output, no state change.
		return ""
	}
	return ""
}

func (r *Recorder) renderIssue(e events.Event, ec events.Context) string {
	issue := e.Issue
	if issue == nil {
		return ""
	}

	if ec.Test != nil {
		r.ctx.incrementIssue(&ec.Test.ID, issue.Known)
	}

	var sb strings.Builder
	sb.WriteString("Test ")
	sb.WriteString(r.testName(ec.Test))
	if issue.Known {
		sb.WriteString(" recorded a known issue")
	} else {
		sb.WriteString(" recorded an issue")
	}
	if t, c := ec.Test, ec.Case; t != nil && t.IsParameterized() && c != nil && len(c.Arguments) > 0 {
		fmt.Fprintf(&sb, " with %s %s",
			countPhrase(len(c.Arguments), "argument"), labeledArguments(c.Arguments))
	}
	if issue.SourceLocation != nil {
		fmt.Fprintf(&sb, " at %s", issue.SourceLocation)
	}
	if issue.Description != "" {
		sb.WriteString(": ")
		sb.WriteString(issue.Description)
	}

	sym := SymbolFail
	if issue.Known {
		sym = SymbolPassKnown
	}
	out := fmt.Sprintf("%s %s\n", sym.Render(r.opts), sb.String())
	if issue.Diff != "" {
		out += fmt.Sprintf("%s %s\n", SymbolDifference.Render(r.opts), issue.Diff)
	}
	if block := commentBlock(issue.Comments, r.opts.UseANSI); block != "" {
		out += block + "\n"
	}
	return out
}

// line composes a symbol-prefixed line plus an optional trailing
// comment block, always newline-terminated.
func (r *Recorder) line(sym Symbol, text string, comments []string) string {
	out := fmt.Sprintf("%s %s\n", sym.Render(r.opts), text)
	if block := commentBlock(comments, r.opts.UseANSI); block != "" {
		out += block + "\n"
	}
	return out
}

// testName renders a test's display identity: quoted display name,
// else the stable identifier, else a placeholder. With ANSI enabled and
// resolvable tags, a colored-dot prefix precedes the name.
func (r *Recorder) testName(t *events.Test) string {
	name := "unknown"
	var tags []string
	if t != nil {
		tags = t.Tags
		switch {
		case t.DisplayName != "":
			name = fmt.Sprintf("%q", t.DisplayName)
		case t.Name != "":
			name = t.Name
		}
	}
	if dots := tagDots(tags, r.tagColors, r.opts); dots != "" {
		return dots + " " + name
	}
	return name
}

// environmentComments describes the library and host, shown once under
// the run-started line.
func (r *Recorder) environmentComments() []string {
	return []string{
		fmt.Sprintf("testglow version %s", Version),
		fmt.Sprintf("Running with %s on %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH),
	}
}
