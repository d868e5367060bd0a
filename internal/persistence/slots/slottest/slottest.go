// Package slottest holds the behaviour every slot backend must share.
package slottest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tpv/internal/persistence"
)

// Run exercises an empty read, a write, an overwrite and key isolation.
func Run(t *testing.T, slot persistence.Slot) {
	t.Helper()

	ctx := context.Background()

	_, err := slot.Get(ctx, "missing")
	require.ErrorIs(t, err, persistence.ErrSlotEmpty)

	require.NoError(t, slot.Put(ctx, "state", []byte(`{"invoiceCounter":1}`)))

	got, err := slot.Get(ctx, "state")
	require.NoError(t, err)
	assert.JSONEq(t, `{"invoiceCounter":1}`, string(got))

	require.NoError(t, slot.Put(ctx, "state", []byte(`{"invoiceCounter":2}`)))

	got, err = slot.Get(ctx, "state")
	require.NoError(t, err)
	assert.JSONEq(t, `{"invoiceCounter":2}`, string(got))

	require.NoError(t, slot.Put(ctx, "other", []byte(`{"invoiceCounter":9}`)))

	got, err = slot.Get(ctx, "state")
	require.NoError(t, err)
	assert.JSONEq(t, `{"invoiceCounter":2}`, string(got))

	// The adapter round trip must work on top of the backend.
	a := persistence.NewAdapter(slot, "adapter")

	s, err := a.Load(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, s.Products)

	s.InvoiceCounter = 77
	require.NoError(t, a.Save(ctx, s))

	s, err = a.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 77, s.InvoiceCounter)
}
