package grid

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrActorStopped is returned by Actor.Do after Actor.Run has returned.
var ErrActorStopped = errors.New("grid actor stopped")

// Actor owns a Grid and executes all calls to it
// on the single goroutine running Run.
type Actor struct {
	grid   *Grid
	calls  chan actorCall
	logger *slog.Logger

	stopped  chan struct{}
	stopOnce sync.Once
}

type actorCall struct {
	fn   func(*Grid) error
	done chan error
}

// NewActor returns an Actor for grid.
// The grid must not be used directly after this call.
func NewActor(grid *Grid) *Actor {
	return &Actor{
		grid:    grid,
		calls:   make(chan actorCall),
		logger:  grid.logger,
		stopped: make(chan struct{}),
	}
}

// Run executes calls passed to Do until ctx is done
// and returns the error of the context.
// Run must be called only once, calls to Do after
// it returned fail with ErrActorStopped.
func (a *Actor) Run(ctx context.Context) error {
	select {
	case <-a.stopped:
		return ErrActorStopped
	default:
	}
	a.logger.Debug("grid actor started", "title", a.grid.Title())
	defer a.logger.Debug("grid actor stopped", "title", a.grid.Title())
	defer a.stopOnce.Do(func() { close(a.stopped) })
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case call := <-a.calls:
			call.done <- a.execute(call.fn)
		}
	}
}

func (a *Actor) execute(fn func(*Grid) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("panic in grid call", "panic", r)
			err = fmt.Errorf("panic in grid call: %v", r)
		}
	}()
	return fn(a.grid)
}

// Do executes fn with the grid on the goroutine of Run
// and returns its result, or the error of ctx if ctx is done
// before fn was executed, or ErrActorStopped if Run has returned.
// Event handlers of the grid are called on the same goroutine,
// they must not call Do.
func (a *Actor) Do(ctx context.Context, fn func(*Grid) error) error {
	call := actorCall{fn: fn, done: make(chan error, 1)}
	select {
	case a.calls <- call:
	case <-a.stopped:
		return ErrActorStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	// Run sends the result before it can return
	select {
	case err := <-call.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
