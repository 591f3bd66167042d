package replay

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statsLog = `{"kind": "runStarted", "instant": "2026-03-01T12:00:00Z"}
{"kind": "testStarted", "instant": "2026-03-01T12:00:00Z", "test": {"id": ["S"], "name": "S", "isSuite": true}}
{"kind": "testStarted", "instant": "2026-03-01T12:00:00Z", "test": {"id": ["S", "a"], "name": "a"}}
{"kind": "testEnded", "instant": "2026-03-01T12:00:00.020Z", "test": {"id": ["S", "a"], "name": "a"}}
{"kind": "testStarted", "instant": "2026-03-01T12:00:00Z", "test": {"id": ["S", "b"], "name": "b"}}
{"kind": "issueRecorded", "instant": "2026-03-01T12:00:00.030Z", "test": {"id": ["S", "b"], "name": "b"}, "issue": {"description": "boom"}}
{"kind": "issueRecorded", "instant": "2026-03-01T12:00:00.031Z", "test": {"id": ["S", "b"], "name": "b"}, "issue": {"description": "meh", "known": true}}
{"kind": "testEnded", "instant": "2026-03-01T12:00:00.040Z", "test": {"id": ["S", "b"], "name": "b"}}
{"kind": "testSkipped", "instant": "2026-03-01T12:00:00.040Z", "test": {"id": ["S", "c"], "name": "c"}}
{"kind": "testEnded", "instant": "2026-03-01T12:00:00.050Z", "test": {"id": ["S"], "name": "S", "isSuite": true}}
{"kind": "runEnded", "instant": "2026-03-01T12:00:00.060Z"}
`

func TestStatsCollect(t *testing.T) {
	stats := NewStats()
	badLines, err := stats.Collect(strings.NewReader(statsLog))
	require.NoError(t, err)
	assert.Equal(t, 0, badLines)

	sum := stats.Summary()
	assert.Equal(t, 2, sum.Tests)
	assert.Equal(t, 1, sum.Suites)
	assert.Equal(t, 1, sum.Skipped)
	assert.Equal(t, 1, sum.Issues)
	assert.Equal(t, 1, sum.KnownIssues)
	assert.Equal(t, 60*time.Millisecond, sum.RunDuration)

	// Two timed tests: 20ms and 40ms. HDR precision is 3 significant
	// digits, so allow a little slack.
	assert.Equal(t, int64(2), sum.Timed)
	assert.InDelta(t, 20_000, sum.Min.Microseconds(), 100)
	assert.InDelta(t, 40_000, sum.Max.Microseconds(), 100)
	assert.InDelta(t, 30_000, sum.Mean.Microseconds(), 200)
}

func TestStatsCollectCountsBadLines(t *testing.T) {
	stats := NewStats()
	badLines, err := stats.Collect(strings.NewReader("oops\n{\"kind\": \"runStarted\", \"instant\": \"2026-03-01T12:00:00Z\"}\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, badLines)
}

func TestStatsEndWithoutStart(t *testing.T) {
	stats := NewStats()
	_, err := stats.Collect(strings.NewReader(
		`{"kind": "testEnded", "instant": "2026-03-01T12:00:00Z", "test": {"id": ["x"], "name": "x"}}` + "\n"))
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.Summary().Timed)
}

func TestSummaryFormat(t *testing.T) {
	stats := NewStats()
	_, err := stats.Collect(strings.NewReader(statsLog))
	require.NoError(t, err)

	var sb strings.Builder
	stats.Summary().Format(&sb)
	out := sb.String()

	assert.Contains(t, out, "Tests:    2 (in 1 suites)")
	assert.Contains(t, out, "1 skipped")
	assert.Contains(t, out, "Issues:   1 (+1 known)")
	assert.Contains(t, out, "Run time: 60ms")
	assert.Contains(t, out, "TEST DURATION")
	assert.Contains(t, out, "p50:")
}
