package reports

import (
	"context"
	"time"

	"github.com/xinnxz/sim4lon-sub000/internal/core/apperror"
	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
	"github.com/xinnxz/sim4lon-sub000/internal/core/tx"
	"github.com/xinnxz/sim4lon-sub000/internal/core/types"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/ledger"
)

// Service builds reports from the aggregation repository.
type Service struct {
	repo Repository
	txm  tx.ReadOnlyManager
}

// NewService creates a new reports service.
func NewService(repo Repository, txm tx.ReadOnlyManager) *Service {
	return &Service{repo: repo, txm: txm}
}

func normalizeRange(from, to time.Time) (time.Time, time.Time, error) {
	if from.IsZero() || to.IsZero() {
		return from, to, apperror.NewValidation("from and to dates are required")
	}
	if to.Before(from) {
		return from, to, apperror.NewValidation("to date must not precede from date")
	}
	return from, to, nil
}

// StockCard builds the daily stock card for one product at one outlet over
// [from, to). Rows telescope: each day's opening is the previous closing,
// and the first opening is replayed from the log before the period.
func (s *Service) StockCard(ctx context.Context, key ledger.StockKey, from, to time.Time) (*StockCard, error) {
	from, to, err := normalizeRange(from, to)
	if err != nil {
		return nil, err
	}

	// Both reads must see one snapshot, otherwise a movement posted between
	// them would desynchronize the opening from the daily rows.
	var (
		opening    types.Quantity
		aggregates []DailyMovementAggregate
	)
	err = s.txm.ReadOnly(ctx, func(ctx context.Context) error {
		opening, err = s.repo.OpeningBalance(ctx, key, from)
		if err != nil {
			return err
		}
		aggregates, err = s.repo.DailyMovementAggregates(ctx, key, from, to)
		return err
	})
	if err != nil {
		return nil, err
	}

	card := &StockCard{
		OutletID:  key.OutletID,
		ProductID: key.ProductID,
		From:      from,
		To:        to,
		Opening:   opening,
		Rows:      buildStockCardRows(opening, aggregates),
	}
	card.Closing = opening
	if n := len(card.Rows); n > 0 {
		card.Closing = card.Rows[n-1].Closing
	}
	return card, nil
}

// buildStockCardRows folds daily aggregates into telescoping rows.
// Aggregates carry signed applied deltas, so closing balances match the
// materialized balance even across clamped issues.
func buildStockCardRows(opening types.Quantity, aggregates []DailyMovementAggregate) []StockCardRow {
	rows := make([]StockCardRow, 0, len(aggregates))
	running := opening
	for _, agg := range aggregates {
		row := StockCardRow{
			Date:    agg.Date,
			Opening: running,
			In:      agg.In,
			Out:     agg.Out,
			Adjust:  agg.Adjust,
		}
		running += agg.In + agg.Out + agg.Adjust
		row.Closing = running
		rows = append(rows, row)
	}
	return rows
}

// MovementSummary returns period totals per movement kind.
func (s *Service) MovementSummary(ctx context.Context, outletID id.ID, productID *id.ID, from, to time.Time) (MovementSummary, error) {
	from, to, err := normalizeRange(from, to)
	if err != nil {
		return MovementSummary{}, err
	}
	return s.repo.MovementTotals(ctx, outletID, productID, from, to)
}

// SalesSummary aggregates an outlet's sales with revenue, cost and margin.
func (s *Service) SalesSummary(ctx context.Context, outletID id.ID, from, to time.Time) (*SalesSummary, error) {
	from, to, err := normalizeRange(from, to)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.SalesAggregates(ctx, outletID, from, to)
	if err != nil {
		return nil, err
	}

	summary := &SalesSummary{
		OutletID:     outletID,
		From:         from,
		To:           to,
		Rows:         rows,
		TotalRevenue: types.ZeroMoney(),
		TotalCost:    types.ZeroMoney(),
		TotalMargin:  types.ZeroMoney(),
	}
	for i := range rows {
		rows[i].Margin = rows[i].Revenue.Sub(rows[i].Cost)
		summary.TotalRevenue = summary.TotalRevenue.Add(rows[i].Revenue)
		summary.TotalCost = summary.TotalCost.Add(rows[i].Cost)
	}
	summary.TotalMargin = summary.TotalRevenue.Sub(summary.TotalCost)
	return summary, nil
}
