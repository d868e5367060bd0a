package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tpv/internal/pos"
	"github.com/MrJamesThe3rd/tpv/internal/store"
)

func TestObserveSale(t *testing.T) {
	m := New()
	state := pos.SampleState(time.Now())

	m.ObserveSale(state.Sales[0])
	m.ObserveSale(state.Sales[1])

	assert.InDelta(t, 2, testutil.ToFloat64(m.sales), 0)
	assert.InDelta(t, 5.385+13.5, testutil.ToFloat64(m.revenue), 1e-9)
	assert.InDelta(t, 6.5, testutil.ToFloat64(m.itemsSold), 1e-9)
}

func TestObserveAdjustment(t *testing.T) {
	m := New()

	m.ObserveAdjustment(pos.Product{}, decimal.NewFromInt(5))
	m.ObserveAdjustment(pos.Product{}, decimal.NewFromInt(-2))
	m.ObserveAdjustment(pos.Product{}, decimal.NewFromInt(-1))

	assert.InDelta(t, 1, testutil.ToFloat64(m.stockMoves.WithLabelValues("in")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.stockMoves.WithLabelValues("out")), 0)
}

func TestPersister(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := store.NewMockPersister(ctrl)
	m := New()
	p := m.Persister(next)

	state := pos.SampleState(time.Now())

	next.EXPECT().Load(gomock.Any()).Return(state, nil)
	next.EXPECT().Save(gomock.Any(), state).Return(nil)
	next.EXPECT().Save(gomock.Any(), state).Return(errors.New("slot unavailable"))

	got, err := p.Load(context.Background())
	require.NoError(t, err)
	assert.Same(t, state, got)

	require.NoError(t, p.Save(context.Background(), state))
	assert.Error(t, p.Save(context.Background(), state))

	assert.InDelta(t, 1, testutil.ToFloat64(m.flushErrors), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.flushDuration))
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveSale(pos.Sale{Total: decimal.NewFromInt(3)})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "tpv_sales_total 1")
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
