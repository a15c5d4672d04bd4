package commands

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/keylock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockChain(t *testing.T) {
	ctx := context.Background()

	t.Run("should lock a stable chain once", func(t *testing.T) {
		locks := keylock.New()
		calls := 0
		unlock, err := Deps{Locks: locks}.lockChain(ctx, func(context.Context) ([]string, error) {
			calls++
			return []string{"request", "negotiation"}, nil
		})
		require.NoError(t, err)

		assert.Equal(t, 2, calls)
		assert.Equal(t, 2, locks.Len())
		unlock()
		assert.Zero(t, locks.Len())
	})

	t.Run("should take a key linked while locking", func(t *testing.T) {
		locks := keylock.New()
		chains := [][]string{
			{"negotiation", "request"},
			{"negotiation", "request", "order"},
			{"negotiation", "request", "order"},
		}
		calls := 0
		unlock, err := Deps{Locks: locks}.lockChain(ctx, func(context.Context) ([]string, error) {
			keys := chains[calls]
			calls++
			return keys, nil
		})
		require.NoError(t, err)
		defer unlock()

		assert.Equal(t, 3, calls)
		assert.Equal(t, 3, locks.Len(), "order is held too")
	})

	t.Run("should fail instead of running with an unlocked key", func(t *testing.T) {
		locks := keylock.New()
		calls := 0
		unlock, err := Deps{Locks: locks}.lockChain(ctx, func(context.Context) ([]string, error) {
			calls++
			return []string{"request", fmt.Sprintf("order-%d", calls)}, nil
		})

		require.Error(t, err)
		assert.Nil(t, unlock)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, maxChainAttempts+1, calls)
		assert.Zero(t, locks.Len())
	})

	t.Run("should release the locks when resolving fails", func(t *testing.T) {
		locks := keylock.New()
		boom := errors.New("read failed")
		calls := 0
		_, err := Deps{Locks: locks}.lockChain(ctx, func(context.Context) ([]string, error) {
			calls++
			if calls == 2 {
				return nil, boom
			}
			return []string{"request"}, nil
		})

		require.ErrorIs(t, err, boom)
		assert.Zero(t, locks.Len())
	})
}
