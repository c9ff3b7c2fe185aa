package grid

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestActor(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	actor := NewActor(newTestGrid())
	runErr := make(chan error, 1)
	go func() { runErr <- actor.Run(ctx) }()

	var wg sync.WaitGroup
	errs := make(chan error, 12)
	for row := range 4 {
		for col := range 3 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- actor.Do(ctx, func(g *Grid) error { return g.SelectCell(row, col) })
			}()
		}
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var count int
	err := actor.Do(ctx, func(g *Grid) error {
		count = g.Selection().Count()
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 12, count)

	errTest := errors.New("test")
	err = actor.Do(ctx, func(*Grid) error { return errTest })
	require.ErrorIs(t, err, errTest)

	err = actor.Do(ctx, func(*Grid) error { panic("boom") })
	require.ErrorContains(t, err, "boom")

	cancel()
	require.ErrorIs(t, <-runErr, context.Canceled)
}

func TestActorStopped(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	actor := NewActor(newTestGrid())
	runErr := make(chan error, 1)
	go func() { runErr <- actor.Run(ctx) }()

	require.NoError(t, actor.Do(context.Background(), func(g *Grid) error { return g.SelectCell(0, 0) }))
	cancel()
	require.ErrorIs(t, <-runErr, context.Canceled)

	done := make(chan error, 1)
	go func() { done <- actor.Do(context.Background(), func(*Grid) error { return nil }) }()
	select {
	case err := <-done:
		require.ErrorIs(t, err, ErrActorStopped)
	case <-time.After(time.Second):
		t.Fatal("Do did not return after Run returned")
	}

	require.ErrorIs(t, actor.Run(context.Background()), ErrActorStopped)
}

func TestActorDoContextDone(t *testing.T) {
	actor := NewActor(newTestGrid())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// Run was never started
	require.ErrorIs(t, actor.Do(ctx, func(*Grid) error { return nil }), context.Canceled)
}
