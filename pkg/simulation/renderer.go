package simulation

import (
	"sync/atomic"
	"time"
)

// Renderer draws one snapshot. It is called exactly once per frame, after every
// butterfly has been updated. A renderer that also implements io.Closer is closed
// when the driver stops.
type Renderer interface {
	Render(s *Snapshot) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(s *Snapshot) error

func (f RendererFunc) Render(s *Snapshot) error { return f(s) }

// ChannelRenderer hands snapshots to another goroutine, typically a UI loop.
// When the receiver is busy the snapshot is dropped rather than stalling the meadow.
type ChannelRenderer struct {
	ch      chan<- *Snapshot
	dropped atomic.Uint64
}

func NewChannelRenderer(ch chan<- *Snapshot) *ChannelRenderer {
	return &ChannelRenderer{ch: ch}
}

func (r *ChannelRenderer) Render(s *Snapshot) error {
	select {
	case r.ch <- s:
	default:
		// UI busy, skip frame
		r.dropped.Add(1)
	}
	return nil
}

// Dropped returns how many snapshots were skipped.
func (r *ChannelRenderer) Dropped() uint64 {
	return r.dropped.Load()
}

// FrameSource delivers frame timestamps to a Run.
type FrameSource interface {
	C() <-chan time.Time
	Stop()
}

// TickerFrames produces frames at a fixed interval.
type TickerFrames struct {
	ticker *time.Ticker
}

// NewTickerFrames ticks fps times per second.
func NewTickerFrames(fps int) *TickerFrames {
	if fps <= 0 {
		fps = 60
	}
	return &TickerFrames{ticker: time.NewTicker(time.Second / time.Duration(fps))}
}

func (t *TickerFrames) C() <-chan time.Time { return t.ticker.C }
func (t *TickerFrames) Stop()               { t.ticker.Stop() }

// ManualFrames lets the host push frame timestamps itself.
type ManualFrames struct {
	ch   chan time.Time
	done chan struct{}
	once atomic.Bool
}

func NewManualFrames() *ManualFrames {
	return &ManualFrames{
		ch:   make(chan time.Time),
		done: make(chan struct{}),
	}
}

// Push hands a frame timestamp to the run and blocks until it is picked up.
// It returns false once the source is stopped.
func (m *ManualFrames) Push(t time.Time) bool {
	select {
	case <-m.done:
		return false
	default:
	}
	select {
	case m.ch <- t:
		return true
	case <-m.done:
		return false
	}
}

func (m *ManualFrames) C() <-chan time.Time { return m.ch }

func (m *ManualFrames) Stop() {
	if m.once.CompareAndSwap(false, true) {
		close(m.done)
	}
}
