// SPDX-License-Identifier: EPL-2.0

package bridge

import (
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureWriter records every datagram written to it.
type captureWriter struct {
	mu   sync.Mutex
	msgs []string
}

func (c *captureWriter) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.msgs = append(c.msgs, string(p))
	return len(p), nil
}

func (c *captureWriter) messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]string(nil), c.msgs...)
}

// fakeStatus serves a fixed position and an optional one-shot loop event.
type fakeStatus struct {
	mu      sync.Mutex
	seconds float64
	looped  bool
}

func (f *fakeStatus) PositionSeconds() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.seconds
}

func (f *fakeStatus) PollLoopEvent() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	was := f.looped
	f.looped = false
	return was
}

func TestBroadcaster_OneShotCommands(t *testing.T) {
	t.Parallel()

	w := &captureWriter{}
	b := newBroadcaster(w, &fakeStatus{})

	b.NotifyPlay()
	b.NotifyPause()
	b.NotifyStop()
	b.NotifySeek(12.5)

	assert.Equal(t, []string{"PLAY", "PAUSE", "STOP", "SEEK 12.500"}, w.messages())
}

func TestBroadcaster_SyncTicker(t *testing.T) {
	t.Parallel()

	w := &captureWriter{}
	b := newBroadcaster(w, &fakeStatus{seconds: 1.5})

	require.NoError(t, b.Start())
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, b.Close())

	var syncs int
	for _, msg := range w.messages() {
		if msg == "SYNC 1.500" {
			syncs++
		}
	}
	assert.Greater(t, syncs, 0, "expected periodic SYNC datagrams")
}

func TestBroadcaster_LoopEventSendsSeekZeroOnce(t *testing.T) {
	t.Parallel()

	w := &captureWriter{}
	b := newBroadcaster(w, &fakeStatus{looped: true})

	require.NoError(t, b.Start())
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, b.Close())

	var seeks int
	for _, msg := range w.messages() {
		if msg == "SEEK 0.000" {
			seeks++
		}
	}
	assert.Equal(t, 1, seeks, "one consumed loop event must produce exactly one SEEK 0")
}

func TestBroadcaster_StartTwice(t *testing.T) {
	t.Parallel()

	b := newBroadcaster(&captureWriter{}, &fakeStatus{})

	require.NoError(t, b.Start())
	assert.ErrorIs(t, b.Start(), ErrAlreadyStarted)
	require.NoError(t, b.Close())
}

func TestBroadcaster_CloseWithoutStart(t *testing.T) {
	t.Parallel()

	b := newBroadcaster(&captureWriter{}, &fakeStatus{})

	assert.NoError(t, b.Close())
}

func TestNewBroadcaster_SendsOverUDP(t *testing.T) {
	t.Parallel()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer pc.Close()

	b, err := NewBroadcaster(pc.LocalAddr().String(), &fakeStatus{})
	require.NoError(t, err)
	defer b.Close()

	b.NotifyPlay()

	buf := make([]byte, 64)
	require.NoError(t, pc.SetReadDeadline(time.Now().Add(2*time.Second)))
	n, _, err := pc.ReadFrom(buf)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(buf[:n]), "PLAY"))
}
