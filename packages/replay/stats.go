package replay

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	"github.com/testglow/testglow/packages/events"
)

// Stats aggregates timing and outcome figures from an event log.
// Test wall durations go into an HDR histogram, microsecond precision,
// 1us to 1h range.
type Stats struct {
	histogram *hdrhistogram.Histogram
	starts    map[string]time.Time

	tests       int
	suites      int
	skipped     int
	issues      int
	knownIssues int

	runStart time.Time
	runEnd   time.Time
}

// NewStats returns an empty collector.
func NewStats() *Stats {
	return &Stats{
		histogram: hdrhistogram.New(1, 3_600_000_000, 3),
		starts:    make(map[string]time.Time),
	}
}

// Observe folds one event into the statistics. Suppressed kinds and
// events without the metadata they need are ignored.
func (s *Stats) Observe(e events.Event, ec events.Context) {
	switch e.Kind {
	case events.RunStarted:
		s.runStart = e.Instant
	case events.RunEnded:
		s.runEnd = e.Instant
	case events.TestStarted:
		if t := ec.Test; t != nil {
			if t.IsSuite {
				s.suites++
			} else {
				s.tests++
			}
			s.starts[t.ID.Key()] = e.Instant
		}
	case events.TestSkipped:
		if t := ec.Test; t != nil && !t.IsSuite {
			s.skipped++
		}
	case events.IssueRecorded:
		if e.Issue == nil {
			return
		}
		if e.Issue.Known {
			s.knownIssues++
		} else {
			s.issues++
		}
	case events.TestEnded:
		t := ec.Test
		if t == nil || t.IsSuite {
			return
		}
		started, ok := s.starts[t.ID.Key()]
		if !ok {
			return
		}
		us := e.Instant.Sub(started).Microseconds()
		if us < 1 {
			us = 1
		}
		if us > 3_600_000_000 {
			us = 3_600_000_000
		}
		_ = s.histogram.RecordValue(us)
	}
}

// Collect folds a whole log into the statistics. Undecodable lines are
// counted, not fatal.
func (s *Stats) Collect(src io.Reader) (badLines int, err error) {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		e, ec, err := DecodeEvent(line)
		if err != nil {
			badLines++
			continue
		}
		s.Observe(e, ec)
	}
	return badLines, scanner.Err()
}

// Summary is an immutable snapshot of collected statistics.
type Summary struct {
	Tests       int
	Suites      int
	Skipped     int
	Issues      int
	KnownIssues int

	RunDuration time.Duration

	// Test wall-duration distribution; zero when no test finished.
	Timed int64
	Min   time.Duration
	Max   time.Duration
	Mean  time.Duration
	P50   time.Duration
	P95   time.Duration
	P99   time.Duration
}

// Summary snapshots the collected figures.
func (s *Stats) Summary() *Summary {
	sum := &Summary{
		Tests:       s.tests,
		Suites:      s.suites,
		Skipped:     s.skipped,
		Issues:      s.issues,
		KnownIssues: s.knownIssues,
		Timed:       s.histogram.TotalCount(),
	}
	if !s.runStart.IsZero() && !s.runEnd.IsZero() && s.runEnd.After(s.runStart) {
		sum.RunDuration = s.runEnd.Sub(s.runStart)
	}
	if sum.Timed > 0 {
		sum.Min = time.Duration(s.histogram.Min()) * time.Microsecond
		sum.Max = time.Duration(s.histogram.Max()) * time.Microsecond
		sum.Mean = time.Duration(s.histogram.Mean()) * time.Microsecond
		sum.P50 = time.Duration(s.histogram.ValueAtQuantile(50)) * time.Microsecond
		sum.P95 = time.Duration(s.histogram.ValueAtQuantile(95)) * time.Microsecond
		sum.P99 = time.Duration(s.histogram.ValueAtQuantile(99)) * time.Microsecond
	}
	return sum
}

// Format writes a human-readable summary block.
func (sum *Summary) Format(w io.Writer) {
	fmt.Fprintf(w, "Tests:    %d", sum.Tests)
	if sum.Suites > 0 {
		fmt.Fprintf(w, " (in %d suites)", sum.Suites)
	}
	if sum.Skipped > 0 {
		fmt.Fprintf(w, ", %d skipped", sum.Skipped)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Issues:   %d", sum.Issues)
	if sum.KnownIssues > 0 {
		fmt.Fprintf(w, " (+%d known)", sum.KnownIssues)
	}
	fmt.Fprintln(w)

	if sum.RunDuration > 0 {
		fmt.Fprintf(w, "Run time: %s\n", sum.RunDuration.Round(time.Millisecond))
	}
	if sum.Timed > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "TEST DURATION")
		fmt.Fprintf(w, "  p50: %s | p95: %s | p99: %s\n",
			formatLatency(sum.P50), formatLatency(sum.P95), formatLatency(sum.P99))
		fmt.Fprintf(w, "  min: %s | mean: %s | max: %s\n",
			formatLatency(sum.Min), formatLatency(sum.Mean), formatLatency(sum.Max))
	}
}

func formatLatency(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dμs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
