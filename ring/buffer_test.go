// SPDX-License-Identifier: EPL-2.0

package ring

import (
	"fmt"
	"testing"
)

func checkInvariant(t *testing.T, b *Buffer) {
	t.Helper()

	if got := b.UsedSlots() + b.FreeSlots(); got != b.Capacity() {
		t.Fatalf("UsedSlots()+FreeSlots() = %d, want capacity %d", got, b.Capacity())
	}
}

func TestNew_InvalidCapacity(t *testing.T) {
	t.Parallel()

	for _, capacity := range []int{0, -1, -128} {
		if _, err := New(capacity); err != ErrInvalidCapacity {
			t.Errorf("New(%d) error = %v, want ErrInvalidCapacity", capacity, err)
		}
	}
}

func TestBuffer_PushPopOrder(t *testing.T) {
	t.Parallel()

	b, err := New(8)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for i := range 5 {
		if !b.Push(float32(i)) {
			t.Fatalf("Push(%d) = false, want true", i)
		}
		checkInvariant(t, b)
	}

	for i := range 5 {
		s, ok := b.Pop()
		if !ok {
			t.Fatalf("Pop() #%d ok = false, want true", i)
		}
		if s != float32(i) {
			t.Errorf("Pop() #%d = %v, want %v", i, s, float32(i))
		}
		checkInvariant(t, b)
	}
}

func TestBuffer_PushFull(t *testing.T) {
	t.Parallel()

	b, _ := New(4)

	for i := range 4 {
		if !b.Push(float32(i)) {
			t.Fatalf("Push() #%d = false, want true", i)
		}
	}

	if b.Push(99) {
		t.Error("Push() on full buffer = true, want false")
	}

	if b.UsedSlots() != 4 {
		t.Errorf("UsedSlots() = %d, want 4", b.UsedSlots())
	}
	if b.FreeSlots() != 0 {
		t.Errorf("FreeSlots() = %d, want 0", b.FreeSlots())
	}

	// The rejected sample must not have overwritten anything.
	for i := range 4 {
		s, ok := b.Pop()
		if !ok || s != float32(i) {
			t.Errorf("Pop() #%d = %v, %v, want %v, true", i, s, ok, float32(i))
		}
	}
}

func TestBuffer_PopEmpty(t *testing.T) {
	t.Parallel()

	b, _ := New(4)

	if _, ok := b.Pop(); ok {
		t.Error("Pop() on empty buffer ok = true, want false")
	}
	checkInvariant(t, b)

	// State must not be corrupted by the failed pop.
	b.Push(0.5)
	s, ok := b.Pop()
	if !ok || s != 0.5 {
		t.Errorf("Pop() after failed pop = %v, %v, want 0.5, true", s, ok)
	}
}

func TestBuffer_Wraparound(t *testing.T) {
	t.Parallel()

	b, _ := New(3)

	// Cycle enough times to wrap the slot index repeatedly.
	next := float32(0)
	for range 10 {
		for range 3 {
			if !b.Push(next) {
				t.Fatal("Push() = false on non-full buffer")
			}
			next++
		}
		checkInvariant(t, b)

		want := next - 3
		for range 3 {
			s, ok := b.Pop()
			if !ok || s != want {
				t.Fatalf("Pop() = %v, %v, want %v, true", s, ok, want)
			}
			want++
		}
		checkInvariant(t, b)
	}
}

func TestBuffer_PopSlice_AllOrNone(t *testing.T) {
	t.Parallel()

	b, _ := New(16)

	for i := range 6 {
		b.Push(float32(i))
	}

	dst := make([]float32, 8)
	if b.PopSlice(dst) {
		t.Error("PopSlice() with 6 of 8 samples = true, want false")
	}
	if b.UsedSlots() != 6 {
		t.Errorf("UsedSlots() after failed PopSlice = %d, want 6", b.UsedSlots())
	}

	dst = dst[:6]
	if !b.PopSlice(dst) {
		t.Fatal("PopSlice() with exact fill = false, want true")
	}
	for i := range 6 {
		if dst[i] != float32(i) {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], float32(i))
		}
	}
	if b.UsedSlots() != 0 {
		t.Errorf("UsedSlots() after PopSlice = %d, want 0", b.UsedSlots())
	}
}

func TestBuffer_PopSlice_Wrapped(t *testing.T) {
	t.Parallel()

	b, _ := New(4)

	// Advance the cursors so the next block straddles the slot boundary.
	b.Push(0)
	b.Push(1)
	b.Pop()
	b.Pop()

	for i := range 4 {
		b.Push(float32(10 + i))
	}

	dst := make([]float32, 4)
	if !b.PopSlice(dst) {
		t.Fatal("PopSlice() = false, want true")
	}
	for i := range 4 {
		if dst[i] != float32(10+i) {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], float32(10+i))
		}
	}
}

func TestBuffer_Reset(t *testing.T) {
	t.Parallel()

	b, _ := New(8)
	for i := range 5 {
		b.Push(float32(i))
	}

	b.Reset()

	if b.UsedSlots() != 0 {
		t.Errorf("UsedSlots() after Reset = %d, want 0", b.UsedSlots())
	}
	if b.FreeSlots() != 8 {
		t.Errorf("FreeSlots() after Reset = %d, want 8", b.FreeSlots())
	}
	if _, ok := b.Pop(); ok {
		t.Error("Pop() after Reset ok = true, want false")
	}

	// The buffer stays usable after a flush.
	b.Push(42)
	if s, ok := b.Pop(); !ok || s != 42 {
		t.Errorf("Pop() after Reset+Push = %v, %v, want 42, true", s, ok)
	}
}

func TestBuffer_SPSCStress(t *testing.T) {
	t.Parallel()

	const total = 100000

	b, _ := New(64)
	done := make(chan error, 1)

	go func() {
		want := float32(0)
		for n := 0; n < total; {
			s, ok := b.Pop()
			if !ok {
				continue
			}
			if s != want {
				done <- fmt.Errorf("popped %v, want %v", s, want)
				return
			}
			want++
			n++
		}
		done <- nil
	}()

	for i := 0; i < total; {
		if b.Push(float32(i)) {
			i++
		}
	}

	if err := <-done; err != nil {
		t.Fatal(err)
	}
}
