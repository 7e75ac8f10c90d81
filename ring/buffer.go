// SPDX-License-Identifier: EPL-2.0

package ring

import "sync/atomic"

// Buffer is a lock-free single-producer, single-consumer ring buffer of
// interleaved float32 samples.
//
// It uses two monotonically increasing atomic counters; the slot index
// is the counter modulo capacity. The producer stores writePos only
// after writing the slot and the consumer stores readPos only after
// reading it, so each side observes fully written data. Go's
// sync/atomic gives sequentially consistent ordering, which is stronger
// than required.
//
// Thread assignment:
//   - Push: producer goroutine only
//   - Pop, PopSlice: consumer (render path) only
//   - UsedSlots, FreeSlots: any goroutine
//   - Reset: control path, and only while the producer is quiesced
type Buffer struct {
	// Counters live on separate cache lines so the producer and the
	// consumer do not invalidate each other's line on every operation.
	writePos atomic.Uint64
	_        [56]byte
	readPos  atomic.Uint64
	_        [56]byte

	buf      []float32
	capacity uint64
}

// New creates a buffer holding exactly capacity samples.
func New(capacity int) (*Buffer, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	return &Buffer{
		buf:      make([]float32, capacity),
		capacity: uint64(capacity),
	}, nil
}

// Push appends one sample. It returns false without writing anything
// when the buffer is full. Never blocks, never allocates.
func (b *Buffer) Push(s float32) bool {
	w := b.writePos.Load()
	r := b.readPos.Load()
	if w-r == b.capacity {
		return false
	}

	b.buf[w%b.capacity] = s
	b.writePos.Store(w + 1)
	return true
}

// Pop removes and returns the oldest sample. The second result is false
// when the buffer is empty.
func (b *Buffer) Pop() (float32, bool) {
	r := b.readPos.Load()
	w := b.writePos.Load()
	if w == r {
		return 0, false
	}

	s := b.buf[r%b.capacity]
	b.readPos.Store(r + 1)
	return s, true
}

// PopSlice fills dst completely or not at all. It returns false and
// consumes nothing when fewer than len(dst) samples are buffered, so a
// partial multi-channel block can never skew channel alignment.
func (b *Buffer) PopSlice(dst []float32) bool {
	r := b.readPos.Load()
	w := b.writePos.Load()

	n := uint64(len(dst))
	if w-r < n {
		return false
	}

	pos := r % b.capacity
	first := b.capacity - pos
	if first >= n {
		copy(dst, b.buf[pos:pos+n])
	} else {
		copy(dst[:first], b.buf[pos:])
		copy(dst[first:], b.buf[:n-first])
	}

	b.readPos.Store(r + n)
	return true
}

// UsedSlots returns the number of samples available to pop.
func (b *Buffer) UsedSlots() int {
	return int(b.writePos.Load() - b.readPos.Load())
}

// FreeSlots returns the number of samples that can still be pushed.
func (b *Buffer) FreeSlots() int {
	return int(b.capacity - (b.writePos.Load() - b.readPos.Load()))
}

// Capacity returns the fixed buffer capacity in samples.
func (b *Buffer) Capacity() int { return int(b.capacity) }

// Reset discards all buffered samples. Only legal while the producer is
// parked between ticks; used to flush stale audio on seek and stop.
func (b *Buffer) Reset() {
	b.readPos.Store(b.writePos.Load())
}
