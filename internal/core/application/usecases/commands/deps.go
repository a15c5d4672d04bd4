package commands

import (
	"context"
	"errors"
	"slices"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/services"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/keylock"
	"procurement/internal/pkg/metrics"

	"go.uber.org/zap"
)

// Deps are the collaborators every handler shares. Zero fields get defaults:
// a private lock table, the default-rate workflow, a no-op logger, no metrics
// and the wall clock.
type Deps struct {
	Locks    *keylock.Locker
	Workflow services.ProcurementWorkflow
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
	Clock    func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Locks == nil {
		d.Locks = keylock.New()
	}
	if d.Workflow.Converter().Validate() != nil {
		d.Workflow = services.NewProcurementWorkflow(kernel.DefaultConverter())
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Clock == nil {
		d.Clock = func() time.Time { return time.Now().UTC() }
	}
	return d
}

// observe records the outcome of a command; use it deferred with a named error.
func (d Deps) observe(command string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = string(errs.KindOf(err))
	}
	d.Metrics.ObserveCommand(command, outcome, time.Since(start))
}

func (d Deps) recordRejection(outcome services.RejectionOutcome) {
	if outcome.NegotiationChanged {
		d.Metrics.Cascade("negotiation_cancelled")
	}
	if outcome.RequestChanged {
		d.Metrics.Cascade("request_rejected")
	}
}

func idKeys(ids ...*kernel.UUID) []string {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != nil {
			keys = append(keys, id.String())
		}
	}
	return keys
}

// maxChainAttempts bounds how often lockChain re-resolves a chain that changed
// while its locks were being taken.
const maxChainAttempts = 3

// lockChain locks every key resolve returns. resolve runs again once the locks
// are held; if it names a key that is not held, the locks are released and
// every key seen so far is taken instead. A chain that keeps moving fails with
// InvalidStateError rather than running with a key unlocked.
func (d Deps) lockChain(ctx context.Context, resolve func(ctx context.Context) ([]string, error)) (func(), error) {
	held, err := resolve(ctx)
	if err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		unlock := d.Locks.LockAll(held...)

		current, err := resolve(ctx)
		if err != nil {
			unlock()
			return nil, err
		}
		if containsAll(held, current) {
			return unlock, nil
		}

		unlock()
		if attempt == maxChainAttempts {
			return nil, errs.NewInvalidStateError("record chain", "links changed concurrently, retry the operation")
		}
		held = append(held, current...)
	}
}

func containsAll(held, keys []string) bool {
	for _, k := range keys {
		if !slices.Contains(held, k) {
			return false
		}
	}
	return true
}

// optional turns a NotFound into a nil record so cascades can skip links to
// records that no longer exist.
func optional[T any](record *T, err error) (*T, error) {
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil
	}
	return record, err
}
