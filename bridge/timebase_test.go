// SPDX-License-Identifier: EPL-2.0

package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ik5/audplay/clock"
)

type fakePosition struct {
	frames uint64
	state  clock.State
}

func (f *fakePosition) PositionFrames() uint64 { return f.frames }
func (f *fakePosition) State() clock.State     { return f.state }

func TestTimebaseMaster_ReportsPosition(t *testing.T) {
	t.Parallel()

	src := &fakePosition{frames: 12345, state: clock.Playing}
	m := NewTimebaseMaster(src)

	assert.NoError(t, m.Start())
	assert.Equal(t, uint64(12345), m.ReportPosition())
	assert.True(t, m.Playing())
	assert.NoError(t, m.Close())
}

func TestTimebaseMaster_HoldAtZeroLatch(t *testing.T) {
	t.Parallel()

	src := &fakePosition{frames: 500, state: clock.Playing}
	m := NewTimebaseMaster(src)

	m.NotifyStop()
	src.state = clock.Stopped
	assert.Equal(t, uint64(0), m.ReportPosition(), "stopped master must hold at zero")
	assert.False(t, m.Playing())

	// Pause and seek do not release the latch.
	m.NotifyPause()
	m.NotifySeek(2.5)
	assert.Equal(t, uint64(0), m.ReportPosition())

	// Only play does.
	m.NotifyPlay()
	src.state = clock.Playing
	assert.Equal(t, uint64(500), m.ReportPosition())
	assert.True(t, m.Playing())
}

func TestTimebaseMaster_PauseHoldsPosition(t *testing.T) {
	t.Parallel()

	src := &fakePosition{frames: 777, state: clock.Playing}
	m := NewTimebaseMaster(src)

	m.NotifyPause()
	src.state = clock.Paused

	assert.Equal(t, uint64(777), m.ReportPosition(), "paused master keeps reporting the held position")
	assert.False(t, m.Playing())
}

func TestTimebaseMaster_LoopWrapReportsZeroWhilePlaying(t *testing.T) {
	t.Parallel()

	src := &fakePosition{frames: 99, state: clock.Playing}
	m := NewTimebaseMaster(src)
	m.NotifyPlay()

	// The position counter wraps to zero on loop; the master relays it
	// without engaging the stop latch.
	src.frames = 0
	assert.Equal(t, uint64(0), m.ReportPosition())
	assert.True(t, m.Playing())
}
