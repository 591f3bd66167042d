package render

import (
	"sync"
	"time"

	"github.com/testglow/testglow/packages/events"
)

// runContext is the run-scoped aggregation state of a Recorder. One
// mutex guards everything; critical sections mutate or copy only, text
// formatting always happens outside the lock.
type runContext struct {
	mu sync.Mutex

	runStarted time.Time
	testCount  int
	suiteCount int

	// tests maps a normalized identity key to its counters. Flat on
	// purpose: subtree queries are key-prefix scans, not tree walks.
	tests map[string]*testData
}

// testData is the per-test slice of the aggregation state. Created on
// the first observation of an identity, never re-created; counters only
// grow.
type testData struct {
	startedAt   time.Time
	issues      int
	knownIssues int
}

func newRunContext() *runContext {
	return &runContext{tests: make(map[string]*testData)}
}

func (c *runContext) recordRunStart(at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.runStarted = at
}

// beginEntry inserts the identity's counters if absent. Re-observing an
// identity is a caller error; tolerated as a no-op.
func (c *runContext) beginEntry(id events.ID, at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := id.Key()
	if _, ok := c.tests[key]; ok {
		return
	}
	c.tests[key] = &testData{startedAt: at}
}

func (c *runContext) incrementRunCount(isSuite bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if isSuite {
		c.suiteCount++
	} else {
		c.testCount++
	}
}

// incrementIssue bumps the issue counter of the owning identity. Issues
// recorded outside any test carry no identity and are not aggregated.
func (c *runContext) incrementIssue(id *events.ID, known bool) {
	if id == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.tests[id.Key()]
	if !ok {
		return
	}
	if known {
		data.knownIssues++
	} else {
		data.issues++
	}
}

// aggregateSnapshot is an immutable copy of one subtree's counters.
type aggregateSnapshot struct {
	startedAt   time.Time
	issues      int
	knownIssues int
}

// runSnapshot is an immutable copy of the whole run's counters.
type runSnapshot struct {
	startedAt   time.Time
	testCount   int
	suiteCount  int
	issues      int
	knownIssues int
}

// subtreeSnapshot sums counters over the identity and every descendant.
// Absent entries contribute zero; the start instant is the entry's own.
func (c *runContext) subtreeSnapshot(id events.ID) aggregateSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	var snap aggregateSnapshot
	if own, ok := c.tests[id.Key()]; ok {
		snap.startedAt = own.startedAt
	}
	for key, data := range c.tests {
		if !id.Contains(events.ParseID(key)) {
			continue
		}
		snap.issues += data.issues
		snap.knownIssues += data.knownIssues
	}
	return snap
}

// snapshot copies the run-level aggregate.
func (c *runContext) snapshot() runSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := runSnapshot{
		startedAt:  c.runStarted,
		testCount:  c.testCount,
		suiteCount: c.suiteCount,
	}
	for _, data := range c.tests {
		snap.issues += data.issues
		snap.knownIssues += data.knownIssues
	}
	return snap
}
