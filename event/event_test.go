package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignal(t *testing.T) {
	var e Event
	assert.True(t, e.IsEmpty())
	e.Signal(AxisPositionChange)
	e.SignalMany(AxisOrderChange, Resize)
	assert.True(t, e.HasEvents())
	assert.True(t, e.Signaled(AxisOrderChange))
	assert.True(t, e.Signaled(AxisOrderChange|SelectionsChange))
	assert.False(t, e.Signaled(SelectionsChange))
	assert.True(t, e.SignaledAny(SelectionsChange, Resize))
	assert.False(t, e.SignaledAll(SelectionsChange, Resize))
	assert.True(t, e.SignaledAll(AxisPositionChange, Resize))
	prev := e.Clear()
	assert.Equal(t, AxisPositionChange|AxisOrderChange|Resize, prev)
	assert.Equal(t, None, e)
}

func TestPartition(t *testing.T) {
	for _, ext := range []Event{Resize, TransactionCommit, DebugOptionsChange} {
		assert.True(t, ext.Signaled(External))
		assert.False(t, ext.Signaled(Internal))
	}
	for _, in := range []Event{AxisStateChange, AxisPositionChange, AxisOrderChange, SelectionsChange} {
		assert.True(t, in.Signaled(Internal))
		assert.False(t, in.Signaled(External))
	}
	assert.Equal(t, Event(1<<20), AxisStateChange)
	assert.Equal(t, Event(1<<23), SelectionsChange)
}

func TestString(t *testing.T) {
	assert.Equal(t, "None", None.String())
	assert.Equal(t, "Resize|AxisOrderChange", (Resize | AxisOrderChange).String())
	assert.Equal(t, "AxisStateChange|0x80000000", (AxisStateChange | 1<<31).String())
}
