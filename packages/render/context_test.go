package render

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/testglow/testglow/packages/events"
)

func TestSubtreeSnapshotSumsDescendants(t *testing.T) {
	ctx := newRunContext()
	now := time.Now()

	suite := events.NewID("Suite")
	t1 := events.NewID("Suite", "t1")
	t2 := events.NewID("Suite", "t2")
	other := events.NewID("Other")

	ctx.beginEntry(suite, now)
	ctx.beginEntry(t1, now)
	ctx.beginEntry(t2, now)
	ctx.beginEntry(other, now)

	ctx.incrementIssue(&t1, false)
	ctx.incrementIssue(&t1, false)
	ctx.incrementIssue(&t2, true)
	ctx.incrementIssue(&other, false)

	snap := ctx.subtreeSnapshot(suite)
	assert.Equal(t, 2, snap.issues)
	assert.Equal(t, 1, snap.knownIssues)

	leaf := ctx.subtreeSnapshot(t1)
	assert.Equal(t, 2, leaf.issues)
	assert.Equal(t, 0, leaf.knownIssues)
}

func TestSubtreeSnapshotMissingEntryIsZero(t *testing.T) {
	ctx := newRunContext()
	snap := ctx.subtreeSnapshot(events.NewID("never", "seen"))
	assert.Equal(t, 0, snap.issues)
	assert.Equal(t, 0, snap.knownIssues)
	assert.True(t, snap.startedAt.IsZero())
}

func TestBeginEntryIdempotent(t *testing.T) {
	ctx := newRunContext()
	id := events.NewID("t")
	first := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	ctx.beginEntry(id, first)
	ctx.beginEntry(id, first.Add(time.Hour))

	snap := ctx.subtreeSnapshot(id)
	assert.Equal(t, first, snap.startedAt)
}

func TestIncrementIssueWithoutIdentity(t *testing.T) {
	ctx := newRunContext()
	ctx.incrementIssue(nil, false) // no-op, must not panic

	snap := ctx.snapshot()
	assert.Equal(t, 0, snap.issues)
}

func TestRunSnapshotCounts(t *testing.T) {
	ctx := newRunContext()
	start := time.Now()
	ctx.recordRunStart(start)

	ctx.incrementRunCount(false)
	ctx.incrementRunCount(false)
	ctx.incrementRunCount(true)

	a := events.NewID("a")
	ctx.beginEntry(a, start)
	ctx.incrementIssue(&a, false)
	ctx.incrementIssue(&a, true)

	snap := ctx.snapshot()
	assert.Equal(t, start, snap.startedAt)
	assert.Equal(t, 2, snap.testCount)
	assert.Equal(t, 1, snap.suiteCount)
	assert.Equal(t, 1, snap.issues)
	assert.Equal(t, 1, snap.knownIssues)
}

func TestContextConcurrentMutation(t *testing.T) {
	ctx := newRunContext()
	now := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := events.NewID("Suite", fmt.Sprintf("t%d", n))
			ctx.beginEntry(id, now)
			ctx.incrementRunCount(false)
			ctx.incrementIssue(&id, n%2 == 0)
		}(i)
	}
	wg.Wait()

	snap := ctx.snapshot()
	assert.Equal(t, 50, snap.testCount)
	assert.Equal(t, 50, snap.issues+snap.knownIssues)
}
