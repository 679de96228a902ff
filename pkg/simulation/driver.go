package simulation

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tochemey/goakt/v3/log"
)

// Driver runs frames: it reads the clock, steps the meadow and renders the result
// exactly once per frame. Frames are serialized; a closed driver ignores requests.
type Driver struct {
	mu       sync.Mutex
	meadow   *Meadow
	clock    *Clock
	renderer Renderer
	logger   log.Logger
	closed   bool
}

// Option configures a Driver.
type Option func(*Driver)

func WithLogger(logger log.Logger) Option {
	return func(d *Driver) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithTimeProvider replaces the process clock, mostly for tests.
func WithTimeProvider(tp TimeProvider) Option {
	return func(d *Driver) {
		if tp != nil {
			d.clock.provider = tp
		}
	}
}

// WithMaxDelta clamps frame deltas so a paused host does not make butterflies jump.
func WithMaxDelta(limit time.Duration) Option {
	return func(d *Driver) { d.clock.maxDelta = limit }
}

// NewDriver drives m and hands every snapshot to r (which may be nil).
func NewDriver(m *Meadow, r Renderer, opts ...Option) *Driver {
	d := &Driver{
		meadow:   m,
		clock:    NewClock(nil),
		renderer: r,
		logger:   log.DiscardLogger,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Frame runs one frame at the current time.
func (d *Driver) Frame() (*Snapshot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, ErrStopped
	}
	return d.step(d.clock.Tick()), nil
}

// FrameAt runs one frame for a host supplied timestamp.
func (d *Driver) FrameAt(t time.Time) (*Snapshot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, ErrStopped
	}
	return d.step(d.clock.TickAt(t)), nil
}

func (d *Driver) step(dt float64) *Snapshot {
	snap := d.meadow.Step(dt)
	if d.renderer != nil {
		if err := d.renderer.Render(snap); err != nil {
			d.logger.Warnf("render frame %d: %v", snap.Frame, err)
		}
	}
	return snap
}

// Tune forwards runtime parameter changes to the meadow.
func (d *Driver) Tune(values map[string]float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrStopped
	}
	return d.meadow.Tune(values)
}

// Close stops the driver and releases the meadow and the renderer. Teardown
// failures are logged at debug level. Close is idempotent.
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true

	d.meadow.Release()
	if c, ok := d.renderer.(io.Closer); ok {
		if err := c.Close(); err != nil {
			d.logger.Debugf("close renderer: %v", err)
		}
	}
	return nil
}

// Start runs frames from the source on a new goroutine until ctx is cancelled, the
// source closes its channel or Stop is called.
func (d *Driver) Start(ctx context.Context, frames FrameSource) *Run {
	ctx, cancel := context.WithCancel(ctx)
	r := &Run{
		ID:     uuid.NewString(),
		driver: d,
		frames: frames,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	d.logger.Infof("run %s started", r.ID)
	go r.loop(ctx)
	return r
}

// Run is a running animation.
type Run struct {
	ID string

	driver   *Driver
	frames   FrameSource
	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once
}

func (r *Run) loop(ctx context.Context) {
	defer close(r.done)
	for {
		select {
		case <-ctx.Done():
			return
		case t, ok := <-r.frames.C():
			if !ok || ctx.Err() != nil {
				return
			}
			if _, err := r.driver.FrameAt(t); errors.Is(err, ErrStopped) {
				return
			}
		}
	}
}

// Stop ends the run. When it returns no further frame will execute and the
// meadow and renderer resources have been released. Stop may be called repeatedly.
func (r *Run) Stop() {
	r.stopOnce.Do(func() {
		r.cancel()
		<-r.done
		r.frames.Stop()
		_ = r.driver.Close()
		r.driver.logger.Infof("run %s stopped", r.ID)
	})
}

// Done is closed when the frame loop has exited, for whatever reason.
func (r *Run) Done() <-chan struct{} {
	return r.done
}
