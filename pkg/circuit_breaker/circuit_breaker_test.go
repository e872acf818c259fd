package circuit_breaker_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/smartlib/circulation-service/pkg/circuit_breaker"
)

func Test_circuitBreaker_Call(t *testing.T) {
	okService := func() error { return nil }
	failingService := func() error { return errors.New("service error") }

	t.Run("stays closed on successes", func(t *testing.T) {
		cb := circuit_breaker.New(10, time.Second, 0.5, 2)
		for i := 0; i < 30; i++ {
			require.NoError(t, cb.Call(okService))
		}
	})

	t.Run("opens after failure percentile and fails fast", func(t *testing.T) {
		cb := circuit_breaker.New(10, time.Minute, 0.5, 2)
		for i := 0; i < 5; i++ {
			require.Error(t, cb.Call(failingService))
		}
		// window is half failures now, next call must be rejected without
		// reaching the service
		called := false
		err := cb.Call(func() error {
			called = true
			return nil
		})
		require.ErrorIs(t, err, circuit_breaker.ErrOpenCB)
		require.False(t, called)
	})

	t.Run("recovers through half-open", func(t *testing.T) {
		cb := circuit_breaker.New(4, 10*time.Millisecond, 0.5, 1)
		for i := 0; i < 2; i++ {
			require.Error(t, cb.Call(failingService))
		}
		require.ErrorIs(t, cb.Call(okService), circuit_breaker.ErrOpenCB)

		time.Sleep(20 * time.Millisecond)

		// half-open: successes close the breaker again
		require.NoError(t, cb.Call(okService))
		require.NoError(t, cb.Call(okService))
		require.NoError(t, cb.Call(okService))
	})

	t.Run("reset closes an open breaker", func(t *testing.T) {
		cb := circuit_breaker.New(2, time.Minute, 0.5, 1)
		require.Error(t, cb.Call(failingService))
		require.ErrorIs(t, cb.Call(okService), circuit_breaker.ErrOpenCB)
		cb.Reset()
		require.NoError(t, cb.Call(okService))
	})
}
