package crystal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingIndexWraps(t *testing.T) {
	r := NewDelayRing(10)
	assert.Equal(t, 10, r.Len())
	assert.Equal(t, 1, r.Index(0, 1))
	assert.Equal(t, 0, r.Index(0, 10))
	assert.Equal(t, 3, r.Index(27, 6))
}

func TestRingScheduleRejectsOutOfRangeDelay(t *testing.T) {
	r := NewDelayRing(3)
	c := &Crystal{brightness: 100, delays: [4]int{1, 1, 1, 1}}
	assert.Panics(t, func() { r.Schedule(0, 0, PendingEvent{Crystal: c}) })
	assert.Panics(t, func() { r.Schedule(0, 4, PendingEvent{Crystal: c}) })
	assert.NotPanics(t, func() { r.Schedule(0, 3, PendingEvent{Crystal: c}) })
	assert.Equal(t, 1, r.BucketLen(0))
}

func TestRingTakeLeavesBucketWritable(t *testing.T) {
	r := NewDelayRing(4)
	c := &Crystal{brightness: 100, delays: [4]int{1, 1, 1, 1}}
	r.Schedule(0, 2, PendingEvent{X: 1, Crystal: c})
	r.Schedule(0, 2, PendingEvent{X: 2, Crystal: c})

	taken := r.Take(2)
	require.Len(t, taken, 2)
	assert.Equal(t, 0, r.BucketLen(2))

	// Scheduling into the bucket being drained must not touch the taken slice.
	r.Schedule(2, 4, PendingEvent{X: 9, Crystal: c})
	assert.Equal(t, 1, r.BucketLen(2))
	assert.Equal(t, 1, taken[0].X)
	assert.Equal(t, 2, taken[1].X)

	r.Recycle(2, taken)
	assert.Equal(t, 1, r.BucketLen(2), "recycle must not drop freshly scheduled events")
	assert.Equal(t, 9, r.Take(2)[0].X)
}

func TestRingRecycleReusesStorage(t *testing.T) {
	r := NewDelayRing(2)
	c := &Crystal{brightness: 100, delays: [4]int{1, 1, 1, 1}}
	r.Schedule(0, 1, PendingEvent{Crystal: c})
	taken := r.Take(1)
	r.Recycle(1, taken)

	assert.Equal(t, 0, r.BucketLen(1))
	assert.Nil(t, taken[0].Crystal, "recycled storage is cleared")
	assert.Equal(t, 0, r.Pending())
}
