// SPDX-License-Identifier: EPL-2.0

package bridge

import (
	"fmt"
	"io"
	"net"
	"sync"
	"time"
)

// syncInterval is the period of the SYNC datagram ticker.
const syncInterval = time.Millisecond

// Broadcaster pushes transport state to a remote follower over UDP.
//
// Datagram grammar, one ASCII message per packet:
//
//	PLAY
//	PAUSE
//	STOP
//	SEEK <seconds>
//	SYNC <seconds>
//
// SYNC carries the playback position and is sent every millisecond by a
// background goroutine. The command messages are one-shots sent when the
// corresponding Notify method is called. A consumed loop event is
// announced as SEEK 0, once per wrap.
//
// Delivery is fire and forget: send errors are swallowed, matching UDP
// semantics. The follower resynchronizes from the next SYNC.
type Broadcaster struct {
	w   io.Writer
	src StatusSource

	closer io.Closer // the dialed conn, nil when constructed over a writer

	mu      sync.Mutex
	started bool
	stopCh  chan struct{}
	done    chan struct{}
}

// NewBroadcaster dials the UDP follower at addr (host:port) and returns
// a broadcaster reporting positions from src.
func NewBroadcaster(addr string, src StatusSource) (*Broadcaster, error) {
	conn, err := net.Dial("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", addr, err)
	}

	b := newBroadcaster(conn, src)
	b.closer = conn

	return b, nil
}

// newBroadcaster wires an arbitrary writer, letting tests capture the
// datagram stream.
func newBroadcaster(w io.Writer, src StatusSource) *Broadcaster {
	return &Broadcaster{w: w, src: src}
}

// Start launches the SYNC ticker goroutine.
func (b *Broadcaster) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.started {
		return ErrAlreadyStarted
	}

	b.stopCh = make(chan struct{})
	b.done = make(chan struct{})
	b.started = true
	go b.syncLoop()

	return nil
}

// Close stops the ticker goroutine, waits for it to exit and closes the
// connection.
func (b *Broadcaster) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.started {
		close(b.stopCh)
		<-b.done
		b.started = false
	}

	if b.closer != nil {
		return b.closer.Close()
	}
	return nil
}

func (b *Broadcaster) NotifyPlay()  { b.send("PLAY") }
func (b *Broadcaster) NotifyPause() { b.send("PAUSE") }
func (b *Broadcaster) NotifyStop()  { b.send("STOP") }

func (b *Broadcaster) NotifySeek(seconds float64) {
	b.send(fmt.Sprintf("SEEK %.3f", seconds))
}

func (b *Broadcaster) syncLoop() {
	defer close(b.done)

	ticker := time.NewTicker(syncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-b.stopCh:
			return
		case <-ticker.C:
		}

		if b.src.PollLoopEvent() {
			b.send("SEEK 0.000")
		}
		b.send(fmt.Sprintf("SYNC %.3f", b.src.PositionSeconds()))
	}
}

// send writes one datagram. Errors are dropped on purpose: a missed
// UDP packet is recovered by the next SYNC.
func (b *Broadcaster) send(msg string) {
	_, _ = b.w.Write([]byte(msg))
}
