package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xinnxz/sim4lon-sub000/internal/core/apperror"
	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
	"github.com/xinnxz/sim4lon-sub000/internal/core/types"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/ledger"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/ledger/ledgertest"
)

type stubRepo struct {
	opening    types.Quantity
	aggregates []DailyMovementAggregate
	totals     MovementSummary
	salesRows  []SalesSummaryRow
}

func (r *stubRepo) OpeningBalance(_ context.Context, _ ledger.StockKey, _ time.Time) (types.Quantity, error) {
	return r.opening, nil
}

func (r *stubRepo) DailyMovementAggregates(_ context.Context, _ ledger.StockKey, _, _ time.Time) ([]DailyMovementAggregate, error) {
	return r.aggregates, nil
}

func (r *stubRepo) MovementTotals(_ context.Context, _ id.ID, _ *id.ID, _, _ time.Time) (MovementSummary, error) {
	return r.totals, nil
}

func (r *stubRepo) SalesAggregates(_ context.Context, _ id.ID, _, _ time.Time) ([]SalesSummaryRow, error) {
	return r.salesRows, nil
}

func day(d int) time.Time {
	return time.Date(2026, time.August, d, 0, 0, 0, 0, time.UTC)
}

func TestStockCardRowsTelescope(t *testing.T) {
	repo := &stubRepo{
		opening: 5,
		aggregates: []DailyMovementAggregate{
			{Date: day(1), In: 10, Out: -3},
			{Date: day(2), Out: -7},
			{Date: day(4), In: 12, Out: -2, Adjust: -1},
		},
	}
	svc := NewService(repo, ledgertest.NopTxManager{})

	card, err := svc.StockCard(context.Background(), ledger.StockKey{OutletID: id.New(), ProductID: id.New()}, day(1), day(5))
	require.NoError(t, err)

	assert.Equal(t, types.Quantity(5), card.Opening)
	require.Len(t, card.Rows, 3)

	assert.Equal(t, types.Quantity(5), card.Rows[0].Opening)
	assert.Equal(t, types.Quantity(12), card.Rows[0].Closing)
	assert.Equal(t, types.Quantity(12), card.Rows[1].Opening)
	assert.Equal(t, types.Quantity(5), card.Rows[1].Closing)
	assert.Equal(t, types.Quantity(5), card.Rows[2].Opening)
	assert.Equal(t, types.Quantity(14), card.Rows[2].Closing)
	assert.Equal(t, types.Quantity(14), card.Closing)

	// Each opening equals the previous closing.
	for i := 1; i < len(card.Rows); i++ {
		assert.Equal(t, card.Rows[i-1].Closing, card.Rows[i].Opening, "row %d", i)
	}
}

func TestStockCardEmptyPeriod(t *testing.T) {
	svc := NewService(&stubRepo{opening: 9}, ledgertest.NopTxManager{})

	card, err := svc.StockCard(context.Background(), ledger.StockKey{}, day(1), day(5))
	require.NoError(t, err)
	assert.Empty(t, card.Rows)
	assert.Equal(t, types.Quantity(9), card.Opening)
	assert.Equal(t, types.Quantity(9), card.Closing)
}

func TestStockCardRejectsInvertedRange(t *testing.T) {
	svc := NewService(&stubRepo{}, ledgertest.NopTxManager{})

	_, err := svc.StockCard(context.Background(), ledger.StockKey{}, day(5), day(1))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestSalesSummaryComputesMargin(t *testing.T) {
	repo := &stubRepo{
		salesRows: []SalesSummaryRow{
			{ProductName: "LPG 3kg", Quantity: 30, Revenue: types.MustMoney("540000"), Cost: types.MustMoney("480000")},
			{ProductName: "LPG 12kg", Quantity: 4, Revenue: types.MustMoney("600000"), Cost: types.MustMoney("440000")},
		},
	}
	svc := NewService(repo, ledgertest.NopTxManager{})

	sum, err := svc.SalesSummary(context.Background(), id.New(), day(1), day(31))
	require.NoError(t, err)

	require.Len(t, sum.Rows, 2)
	assert.True(t, sum.Rows[0].Margin.Equal(types.MustMoney("60000")))
	assert.True(t, sum.Rows[1].Margin.Equal(types.MustMoney("160000")))
	assert.True(t, sum.TotalRevenue.Equal(types.MustMoney("1140000")))
	assert.True(t, sum.TotalCost.Equal(types.MustMoney("920000")))
	assert.True(t, sum.TotalMargin.Equal(types.MustMoney("220000")))
}

func TestMovementSummaryPassesThroughTotals(t *testing.T) {
	repo := &stubRepo{totals: MovementSummary{TotalIn: 40, TotalOut: 25, TotalAdjust: -2, Count: 17}}
	svc := NewService(repo, ledgertest.NopTxManager{})

	sum, err := svc.MovementSummary(context.Background(), id.New(), nil, day(1), day(31))
	require.NoError(t, err)
	assert.Equal(t, types.Quantity(40), sum.TotalIn)
	assert.Equal(t, types.Quantity(25), sum.TotalOut)
	assert.Equal(t, 17, sum.Count)
}
