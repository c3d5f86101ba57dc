package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errDown = errors.New("connection refused")

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestBreaker(isFailure func(error) bool) (*CircuitBreaker, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 9, 1, 7, 0, 0, 0, time.UTC)}
	cb := New(Config{Name: "postgres", FailureThreshold: 3, CoolDown: time.Minute, IsFailure: isFailure})
	cb.now = clock.now
	return cb, clock
}

func fail(context.Context) error    { return errDown }
func succeed(context.Context) error { return nil }

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	cb, _ := newTestBreaker(nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(ctx, fail), errDown)
	}
	assert.Equal(t, StateOpen, cb.State())

	called := false
	err := cb.Execute(ctx, func(context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrOpen)
	assert.False(t, called)
}

func TestCircuitBreaker_SuccessResetsFailures(t *testing.T) {
	cb, _ := newTestBreaker(nil)
	ctx := context.Background()

	_ = cb.Execute(ctx, fail)
	_ = cb.Execute(ctx, fail)
	assert.NoError(t, cb.Execute(ctx, succeed))
	_ = cb.Execute(ctx, fail)
	_ = cb.Execute(ctx, fail)

	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenTrial(t *testing.T) {
	tests := []struct {
		name      string
		trial     func(context.Context) error
		wantState State
	}{
		{name: "trial succeeds", trial: succeed, wantState: StateClosed},
		{name: "trial fails", trial: fail, wantState: StateOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb, clock := newTestBreaker(nil)
			ctx := context.Background()
			for i := 0; i < 3; i++ {
				_ = cb.Execute(ctx, fail)
			}

			clock.t = clock.t.Add(time.Minute)
			_ = cb.Execute(ctx, tt.trial)

			assert.Equal(t, tt.wantState, cb.State())
		})
	}
}

func TestCircuitBreaker_SingleTrialWhileHalfOpen(t *testing.T) {
	cb, clock := newTestBreaker(nil)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_ = cb.Execute(ctx, fail)
	}
	clock.t = clock.t.Add(time.Minute)

	release := make(chan struct{})
	done := make(chan error)
	go func() {
		done <- cb.Execute(ctx, func(context.Context) error {
			<-release
			return nil
		})
	}()

	assert.Eventually(t, func() bool { return cb.State() == StateHalfOpen }, time.Second, time.Millisecond)
	assert.ErrorIs(t, cb.Execute(ctx, succeed), ErrOpen)

	close(release)
	assert.NoError(t, <-done)
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_IsFailureFilter(t *testing.T) {
	errNotFound := errors.New("not found")
	cb, _ := newTestBreaker(func(err error) bool {
		return err != nil && !errors.Is(err, errNotFound)
	})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_ = cb.Execute(ctx, func(context.Context) error { return errNotFound })
	}

	assert.Equal(t, StateClosed, cb.State())
}

func TestNew_Defaults(t *testing.T) {
	cb := New(Config{Name: "redis"})

	assert.Equal(t, 5, cb.cfg.FailureThreshold)
	assert.Equal(t, 30*time.Second, cb.cfg.CoolDown)
	assert.Equal(t, "redis", cb.Name())
	assert.True(t, cb.cfg.IsFailure(errDown))
	assert.False(t, cb.cfg.IsFailure(nil))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "CLOSED", StateClosed.String())
	assert.Equal(t, "OPEN", StateOpen.String())
	assert.Equal(t, "HALF_OPEN", StateHalfOpen.String())
	assert.Equal(t, "UNKNOWN", State(9).String())
}
