package sale_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tpv/internal/pos"
	"github.com/MrJamesThe3rd/tpv/internal/sale"
)

func TestCart_Add(t *testing.T) {
	milk := pos.Product{ID: "p1", Name: "Leche Entera", Price: d("1.20"), Stock: d("2")}
	empty := pos.Product{ID: "p9", Name: "Agotado", Price: d("3"), Stock: decimal.Zero}

	c := sale.NewCart("c1")

	require.NoError(t, c.Add(milk))
	require.NoError(t, c.Add(milk))
	assert.ErrorIs(t, c.Add(milk), sale.ErrInsufficientStock)
	assert.ErrorIs(t, c.Add(empty), sale.ErrInsufficientStock)

	require.Equal(t, 1, c.Len())
	assert.True(t, d("2").Equal(c.Lines()[0].Quantity))
	assert.True(t, d("2.40").Equal(c.Total()))
}

func TestCart_PriceIsSnapshotted(t *testing.T) {
	p := pos.Product{ID: "p1", Name: "Pan", Price: d("2.50"), Stock: d("10")}

	c := sale.NewCart("c1")
	require.NoError(t, c.Add(p))

	p.Price = d("9.99")
	require.NoError(t, c.Add(p))

	assert.True(t, d("5.00").Equal(c.Total()))
}

func TestCart_SetQuantity(t *testing.T) {
	p := pos.Product{ID: "p3", Name: "Manzanas (kg)", Price: d("1.99"), Stock: d("5")}

	tests := []struct {
		name        string
		q           decimal.Decimal
		wantClamped bool
		wantLen     int
		wantQty     decimal.Decimal
	}{
		{name: "WithinStock", q: d("3.5"), wantLen: 1, wantQty: d("3.5")},
		{name: "ClampedToStock", q: d("8"), wantClamped: true, wantLen: 1, wantQty: d("5")},
		{name: "ZeroRemoves", q: decimal.Zero, wantLen: 0},
		{name: "NegativeRemoves", q: d("-1"), wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := sale.NewCart("c1")
			require.NoError(t, c.Add(p))

			clamped := c.SetQuantity(p, tt.q)

			assert.Equal(t, tt.wantClamped, clamped)
			require.Equal(t, tt.wantLen, c.Len())

			if tt.wantLen > 0 {
				assert.True(t, tt.wantQty.Equal(c.Lines()[0].Quantity))
			}
		})
	}
}

func TestCart_AddQuantityAndRequest(t *testing.T) {
	chicken := pos.Product{ID: "p4", Name: "Pollo (kg)", Price: d("5.50"), Stock: d("3")}

	c := sale.NewCart("c2")
	assert.ErrorIs(t, c.AddQuantity(chicken, decimal.Zero), sale.ErrInvalidItem)
	assert.ErrorIs(t, c.AddQuantity(chicken, d("3.5")), sale.ErrInsufficientStock)
	require.NoError(t, c.AddQuantity(chicken, d("1.5")))

	req := c.Request()
	assert.Equal(t, "c2", req.CustomerID)
	assert.True(t, req.EnforceStock)
	require.Len(t, req.Items, 1)
	assert.Equal(t, "p4", req.Items[0].ProductID)
	assert.True(t, d("1.5").Equal(req.Items[0].Quantity))
	assert.True(t, d("5.50").Equal(req.Items[0].Price))

	c.Remove("p4")
	assert.Equal(t, 0, c.Len())

	require.NoError(t, c.Add(chicken))
	c.Clear()
	assert.True(t, c.Total().IsZero())
}
