package netparams

import (
	"testing"
	"time"

	"github.com/lightningnetwork/lnd/clock"
	"github.com/stretchr/testify/require"
)

// testNow is the fixed wall clock time used by tests.
var testNow = time.Unix(1700000000, 0)

// constRand is a RandSource that always returns the same offset, clamped to
// the requested range.
type constRand int64

func (c constRand) Int63n(n int64) int64 {
	if int64(c) >= n {
		return n - 1
	}

	return int64(c)
}

// newTestRegistry builds a registry with a fixed clock and random source.
func newTestRegistry(t *testing.T) *Registry {
	t.Helper()

	r, err := NewRegistry(&Config{
		Clock: clock.NewTestClock(testNow),
		Rand:  constRand(0),
	})
	require.NoError(t, err)

	return r
}
