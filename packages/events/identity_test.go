package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDKeyRoundTrip(t *testing.T) {
	id := NewID("PaymentsTests", "RefundSuite", "testPartial")
	assert.Equal(t, "PaymentsTests/RefundSuite/testPartial", id.Key())
	assert.Equal(t, id.Key(), ParseID(id.Key()).Key())
	assert.Equal(t, "testPartial", id.Name())
}

func TestIDParent(t *testing.T) {
	id := NewID("A", "B")

	parent, ok := id.Parent()
	assert.True(t, ok)
	assert.Equal(t, "A", parent.Key())

	root, ok := parent.Parent()
	assert.True(t, ok)
	assert.Equal(t, "", root.Key())

	_, ok = root.Parent()
	assert.False(t, ok)
}

func TestIDContains(t *testing.T) {
	suite := NewID("A", "B")

	assert.True(t, suite.Contains(suite))
	assert.True(t, suite.Contains(NewID("A", "B", "C")))
	assert.True(t, suite.Contains(NewID("A", "B", "C", "D")))
	assert.False(t, suite.Contains(NewID("A")))
	assert.False(t, suite.Contains(NewID("A", "BB"))) // sibling, not a child
	assert.False(t, suite.Contains(NewID("X", "B")))
}

func TestKindStringRoundTrip(t *testing.T) {
	for k := RunStarted; k <= RunEnded; k++ {
		parsed, ok := KindFromString(k.String())
		assert.True(t, ok, k.String())
		assert.Equal(t, k, parsed)
	}

	_, ok := KindFromString("somethingElse")
	assert.False(t, ok)
}
