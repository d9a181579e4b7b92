package crystal

import "fmt"

// PendingEvent is a placement attempt of Crystal at (X, Y). Coordinates may lie
// off the grid; they are filtered when the event is consumed.
type PendingEvent struct {
	X, Y    int
	Crystal *Crystal
}

// DelayRing is a fixed circular schedule of pending events. Bucket i holds the
// events due at every tick t with t mod Len() == i.
//
// Delays are bounded by the ring size, so a bucket is always drained before
// the schedule wraps around to it again.
type DelayRing struct {
	buckets [][]PendingEvent
}

// NewDelayRing allocates a ring with size buckets.
func NewDelayRing(size int) *DelayRing {
	if size <= 0 {
		size = 1
	}
	return &DelayRing{buckets: make([][]PendingEvent, size)}
}

// Len returns the number of buckets.
func (r *DelayRing) Len() int { return len(r.buckets) }

// Index returns the bucket for an event scheduled at tick t with delay d.
func (r *DelayRing) Index(t, d int) int { return (t + d) % len(r.buckets) }

// Schedule appends ev to the bucket due delay ticks after t. The delay must lie
// in [1, Len()].
func (r *DelayRing) Schedule(t, delay int, ev PendingEvent) {
	if delay < 1 || delay > len(r.buckets) {
		panic(fmt.Sprintf("crystal: delay %d outside [1, %d]", delay, len(r.buckets)))
	}
	i := r.Index(t, delay)
	r.buckets[i] = append(r.buckets[i], ev)
}

// Take moves bucket i's events out of the ring and leaves it empty, so events
// consumed from the returned slice may schedule into any bucket, i included.
func (r *DelayRing) Take(i int) []PendingEvent {
	events := r.buckets[i]
	r.buckets[i] = nil
	return events
}

// Recycle hands a drained slice back as bucket i's storage when nothing was
// scheduled into i meanwhile.
func (r *DelayRing) Recycle(i int, events []PendingEvent) {
	if r.buckets[i] != nil || cap(events) == 0 {
		return
	}
	clear(events)
	r.buckets[i] = events[:0]
}

// BucketLen returns the number of events waiting in bucket i.
func (r *DelayRing) BucketLen(i int) int { return len(r.buckets[i]) }

// Pending returns the number of events waiting across all buckets.
func (r *DelayRing) Pending() int {
	n := 0
	for _, b := range r.buckets {
		n += len(b)
	}
	return n
}
