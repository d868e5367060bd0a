// Package storetest builds stores over an in-memory slot for tests of
// packages that sit on top of the store.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tpv/internal/persistence"
	"github.com/MrJamesThe3rd/tpv/internal/persistence/slots/memory"
	"github.com/MrJamesThe3rd/tpv/internal/store"
)

// Now is the clock of stores built by New; the sample sale2 is dated Now.
var Now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

// New returns a store seeded with the sample dataset.
func New(t *testing.T, opts ...store.Option) *store.Store {
	t.Helper()

	clock := func() time.Time { return Now }
	adapter := persistence.NewAdapter(memory.New(), "ivanmarket_data", persistence.WithClock(clock))

	s, err := store.New(context.Background(), adapter, append([]store.Option{store.WithClock(clock)}, opts...)...)
	require.NoError(t, err)

	return s
}
