package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"moviedb/internal/logging"
	"moviedb/internal/metrics"
)

// Deactivation modes, mirrored from configuration.
const (
	DeactivateExpired = "expired"
	DeactivateAny     = "any"
	DeactivateOff     = "off"
)

// AccountDeactivator flips the active flag of a user.
type AccountDeactivator interface {
	SetActive(ctx context.Context, userID uint, active bool) error
}

// Decoder reads a token payload without trusting it.
type Decoder interface {
	DecodeUnsafe(token string) (*Claims, bool)
}

// Dispatch runs a background task. Tests replace it to run inline.
type Dispatch func(task func())

// Deactivator marks the owner of a rejected session token inactive. It is
// best effort: it never blocks the request and its failures are only logged.
type Deactivator struct {
	users    AccountDeactivator
	decoder  Decoder
	mode     string
	timeout  time.Duration
	dispatch Dispatch
	pending  sync.WaitGroup
}

// NewDeactivator builds a Deactivator. An unknown mode behaves like "off".
func NewDeactivator(users AccountDeactivator, decoder Decoder, mode string, timeout time.Duration) *Deactivator {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Deactivator{
		users:    users,
		decoder:  decoder,
		mode:     mode,
		timeout:  timeout,
		dispatch: func(task func()) { go task() },
	}
}

// WithDispatch overrides how background work is scheduled.
func (d *Deactivator) WithDispatch(dispatch Dispatch) *Deactivator {
	d.dispatch = dispatch
	return d
}

// HandleRejected decides whether the rejection of token for verifyErr
// warrants deactivation and, if so, schedules it. It reports whether a task
// was scheduled.
func (d *Deactivator) HandleRejected(ctx context.Context, token string, verifyErr error) bool {
	if d == nil || errors.Is(verifyErr, ErrTokenRevoked) {
		return false
	}

	switch d.mode {
	case DeactivateExpired:
		if !errors.Is(verifyErr, ErrTokenExpired) {
			metrics.Deactivations.WithLabelValues(metrics.OutcomeSkipped).Inc()
			return false
		}
	case DeactivateAny:
	default:
		return false
	}

	claims, ok := d.decoder.DecodeUnsafe(token)
	if !ok {
		metrics.Deactivations.WithLabelValues(metrics.OutcomeSkipped).Inc()
		return false
	}

	requestID := logging.RequestIDFromContext(ctx)
	userID := claims.User.ID
	d.pending.Add(1)
	d.dispatch(func() {
		defer d.pending.Done()
		taskCtx, cancel := context.WithTimeout(logging.ContextWithRequestID(context.Background(), requestID), d.timeout)
		defer cancel()
		d.deactivate(taskCtx, userID)
	})
	return true
}

// Wait blocks until every scheduled deactivation has finished or ctx is
// done. Call it before closing the store the tasks write to.
func (d *Deactivator) Wait(ctx context.Context) error {
	if d == nil {
		return nil
	}
	done := make(chan struct{})
	go func() {
		d.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Deactivator) deactivate(ctx context.Context, userID uint) {
	defer func() {
		if r := recover(); r != nil {
			metrics.Deactivations.WithLabelValues(metrics.OutcomeError).Inc()
			logging.Ctx(ctx).Error().Uint("user_id", userID).Interface("panic", r).Msg("token deactivation panicked")
		}
	}()

	if err := d.users.SetActive(ctx, userID, false); err != nil {
		metrics.Deactivations.WithLabelValues(metrics.OutcomeError).Inc()
		logging.Ctx(ctx).Warn().Err(err).Uint("user_id", userID).Msg("token deactivation failed")
		return
	}
	metrics.Deactivations.WithLabelValues(metrics.OutcomeSuccess).Inc()
	logging.Ctx(ctx).Info().Uint("user_id", userID).Msg("account deactivated after invalid token")
}
