package render

import (
	"errors"
	"fmt"
	"sync"

	"github.com/tochemey/goakt/v3/log"
)

// ErrUnknownResource is returned when releasing a key that was never acquired.
var ErrUnknownResource = errors.New("render: unknown resource")

type entry[T any] struct {
	value T
	refs  int
}

// Library shares drawing resources (materials, sprites, styles) between the
// butterflies that use them. A resource is built on first Acquire and disposed
// when its last user releases it.
type Library[T any] struct {
	mu      sync.Mutex
	entries map[string]*entry[T]
	dispose func(T) error
	logger  log.Logger
}

// NewLibrary returns an empty library. dispose may be nil.
func NewLibrary[T any](dispose func(T) error, logger log.Logger) *Library[T] {
	if logger == nil {
		logger = log.DiscardLogger
	}
	return &Library[T]{
		entries: make(map[string]*entry[T]),
		dispose: dispose,
		logger:  logger,
	}
}

// Acquire returns the resource stored under key, building it first if needed.
func (l *Library[T]) Acquire(key string, build func() (T, error)) (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if e, ok := l.entries[key]; ok {
		e.refs++
		return e.value, nil
	}
	v, err := build()
	if err != nil {
		var zero T
		return zero, fmt.Errorf("build %q: %w", key, err)
	}
	l.entries[key] = &entry[T]{value: v, refs: 1}
	return v, nil
}

// Release drops one reference to key and disposes the resource with the last one.
// Dispose failures are logged, not returned.
func (l *Library[T]) Release(key string) error {
	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		l.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownResource, key)
	}
	e.refs--
	if e.refs > 0 {
		l.mu.Unlock()
		return nil
	}
	delete(l.entries, key)
	l.mu.Unlock()

	l.disposeOne(key, e.value)
	return nil
}

// Get returns the resource stored under key without taking a reference.
func (l *Library[T]) Get(key string) (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok := l.entries[key]; ok {
		return e.value, true
	}
	var zero T
	return zero, false
}

// Refs returns the number of live references to key.
func (l *Library[T]) Refs(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok := l.entries[key]; ok {
		return e.refs
	}
	return 0
}

// Len returns the number of live resources.
func (l *Library[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Close disposes every resource still held, whatever its reference count.
func (l *Library[T]) Close() {
	l.mu.Lock()
	entries := l.entries
	l.entries = make(map[string]*entry[T])
	l.mu.Unlock()

	for key, e := range entries {
		l.disposeOne(key, e.value)
	}
}

func (l *Library[T]) disposeOne(key string, v T) {
	if l.dispose == nil {
		return
	}
	if err := l.dispose(v); err != nil {
		l.logger.Debugf("dispose %q: %v", key, err)
	}
}
