package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xinnxz/sim4lon-sub000/internal/core/apperror"
	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
	"github.com/xinnxz/sim4lon-sub000/internal/core/types"
)

// nopTxManager runs the function directly; unit tests exercise the service
// logic, not transaction plumbing.
type nopTxManager struct{}

func (nopTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// memRepo is an in-memory ledger repository.
type memRepo struct {
	balances  map[StockKey]StockBalance
	movements []Movement
}

func newMemRepo() *memRepo {
	return &memRepo{balances: make(map[StockKey]StockBalance)}
}

func (r *memRepo) GetBalance(_ context.Context, key StockKey) (StockBalance, error) {
	if b, ok := r.balances[key]; ok {
		return b, nil
	}
	return StockBalance{OutletID: key.OutletID, ProductID: key.ProductID}, nil
}

func (r *memRepo) GetOrCreateBalanceForUpdate(_ context.Context, key StockKey) (StockBalance, error) {
	if b, ok := r.balances[key]; ok {
		return b, nil
	}
	b := StockBalance{OutletID: key.OutletID, ProductID: key.ProductID, UpdatedAt: time.Now().UTC()}
	r.balances[key] = b
	return b, nil
}

func (r *memRepo) SetBalanceQuantity(_ context.Context, key StockKey, qty types.Quantity, movedAt time.Time) error {
	b := r.balances[key]
	b.OutletID = key.OutletID
	b.ProductID = key.ProductID
	b.Quantity = qty
	b.LastMovementAt = movedAt
	b.UpdatedAt = time.Now().UTC()
	r.balances[key] = b
	return nil
}

func (r *memRepo) ListBalancesByOutlet(_ context.Context, outletID id.ID, filter BalanceFilter) ([]StockBalance, error) {
	var out []StockBalance
	for _, b := range r.balances {
		if b.OutletID != outletID {
			continue
		}
		if filter.ExcludeZero && b.Quantity.IsZero() {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *memRepo) InsertMovement(_ context.Context, m Movement) error {
	r.movements = append(r.movements, m)
	return nil
}

func (r *memRepo) ListMovements(_ context.Context, filter MovementFilter) ([]Movement, error) {
	var out []Movement
	for i := len(r.movements) - 1; i >= 0; i-- {
		m := r.movements[i]
		if filter.OutletID != nil && m.OutletID != *filter.OutletID {
			continue
		}
		if filter.ProductID != nil && m.ProductID != *filter.ProductID {
			continue
		}
		out = append(out, m)
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out, nil
}

func (r *memRepo) movementsFor(key StockKey) []Movement {
	var out []Movement
	for _, m := range r.movements {
		if m.Key() == key {
			out = append(out, m)
		}
	}
	return out
}

// replay recomputes a balance from the movement log alone.
func (r *memRepo) replay(key StockKey) types.Quantity {
	var q types.Quantity
	for _, m := range r.movementsFor(key) {
		q += m.Delta
	}
	return q
}

func testKey() StockKey {
	return StockKey{OutletID: id.New(), ProductID: id.New()}
}

func newTestService() (*Service, *memRepo) {
	repo := newMemRepo()
	return NewService(repo, nopTxManager{}), repo
}

func TestGetOrCreateIsIdempotent(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	key := testKey()

	b1, err := svc.GetOrCreate(ctx, key)
	require.NoError(t, err)
	assert.True(t, b1.Quantity.IsZero())

	// Put stock on the balance, then get-or-create again: must not reset.
	_, err = svc.Receive(ctx, ReceiveInput{Key: key, Quantity: 5, Source: SourceManualReceive})
	require.NoError(t, err)

	b2, err := svc.GetOrCreate(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, types.Quantity(5), b2.Quantity)
	assert.Len(t, repo.movements, 1)
}

func TestReceiveAppendsMovementAndUpdatesBalance(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	key := testKey()
	ref := id.New()

	m, err := svc.Receive(ctx, ReceiveInput{
		Key:         key,
		Quantity:    10,
		Source:      SourceDistributorDelivery,
		ReferenceID: &ref,
	})
	require.NoError(t, err)

	assert.Equal(t, KindIn, m.Kind)
	assert.Equal(t, types.Quantity(10), m.Quantity)
	assert.Equal(t, types.Quantity(10), m.BalanceAfter)
	require.NotNil(t, m.ReferenceID)
	assert.Equal(t, ref, *m.ReferenceID)

	b, err := svc.GetBalance(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, types.Quantity(10), b.Quantity)
	assert.Equal(t, b.Quantity, repo.replay(key))
}

func TestReceiveRejectsNonPositiveQuantity(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	for _, qty := range []types.Quantity{0, -3} {
		_, err := svc.Receive(ctx, ReceiveInput{Key: testKey(), Quantity: qty, Source: SourceManualReceive})
		require.Error(t, err)
		assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
	}
	assert.Empty(t, repo.movements)
}

func TestIssueStrictRejectsInsufficientStock(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	key := testKey()

	_, err := svc.Receive(ctx, ReceiveInput{Key: key, Quantity: 6, Source: SourceManualReceive})
	require.NoError(t, err)

	_, err = svc.Issue(ctx, IssueInput{Key: key, Quantity: 7, Source: SourceDistributorDelivery})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInsufficientStock))

	// Nothing was posted: one IN movement, balance unchanged.
	assert.Len(t, repo.movementsFor(key), 1)
	b, _ := svc.GetBalance(ctx, key)
	assert.Equal(t, types.Quantity(6), b.Quantity)
}

func TestIssueDecrementsBalance(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	key := testKey()
	saleID := id.New()

	_, err := svc.Receive(ctx, ReceiveInput{Key: key, Quantity: 10, Source: SourceManualReceive})
	require.NoError(t, err)

	res, err := svc.Issue(ctx, IssueInput{
		Key:         key,
		Quantity:    4,
		Source:      SourcePointOfSale,
		ReferenceID: &saleID,
		AllowClamp:  true,
	})
	require.NoError(t, err)
	assert.False(t, res.Clamped)
	assert.Equal(t, types.Quantity(6), res.Balance.Quantity)
	assert.Equal(t, KindOut, res.Movement.Kind)
	assert.Equal(t, types.Quantity(4), res.Movement.Quantity)
	assert.Equal(t, types.Quantity(-4), res.Movement.Delta)
	assert.Equal(t, saleID, *res.Movement.ReferenceID)
	assert.Equal(t, types.Quantity(6), repo.replay(key))
}

func TestIssueClampsAtZero(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	key := testKey()

	_, err := svc.Receive(ctx, ReceiveInput{Key: key, Quantity: 6, Source: SourceManualReceive})
	require.NoError(t, err)

	// Selling 20 with 6 on hand: balance floors at zero, the movement still
	// records the full sold magnitude.
	res, err := svc.Issue(ctx, IssueInput{Key: key, Quantity: 20, Source: SourcePointOfSale, AllowClamp: true})
	require.NoError(t, err)
	assert.True(t, res.Clamped)
	assert.Equal(t, types.Quantity(0), res.Balance.Quantity)
	assert.Equal(t, types.Quantity(20), res.Movement.Quantity)
	assert.Equal(t, types.Quantity(-6), res.Movement.Delta)
	assert.Equal(t, types.Quantity(0), res.Movement.BalanceAfter)

	assert.Equal(t, types.Quantity(0), repo.replay(key))
}

func TestAdjustReportsDifference(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	key := testKey()

	_, err := svc.Receive(ctx, ReceiveInput{Key: key, Quantity: 6, Source: SourceManualReceive})
	require.NoError(t, err)

	res, err := svc.Adjust(ctx, AdjustInput{Key: key, ActualQty: 8, Note: "monthly count"})
	require.NoError(t, err)
	assert.Equal(t, types.Quantity(6), res.OldQty)
	assert.Equal(t, types.Quantity(8), res.NewQty)
	assert.Equal(t, types.Quantity(2), res.Difference)
	require.NotNil(t, res.Movement)
	assert.Equal(t, KindAdjust, res.Movement.Kind)
	assert.Equal(t, types.Quantity(2), res.Movement.Quantity)
	assert.Equal(t, SourceManualCount, res.Movement.Source)

	assert.Equal(t, types.Quantity(8), repo.replay(key))
}

func TestAdjustDownward(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	key := testKey()

	_, err := svc.Receive(ctx, ReceiveInput{Key: key, Quantity: 10, Source: SourceManualReceive})
	require.NoError(t, err)

	res, err := svc.Adjust(ctx, AdjustInput{Key: key, ActualQty: 3})
	require.NoError(t, err)
	assert.Equal(t, types.Quantity(-7), res.Difference)
	require.NotNil(t, res.Movement)
	assert.Equal(t, types.Quantity(7), res.Movement.Quantity)
	assert.Equal(t, types.Quantity(-7), res.Movement.Delta)
	assert.Equal(t, types.Quantity(3), repo.replay(key))
}

func TestAdjustZeroDifferenceRecordsNoMovement(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	key := testKey()

	_, err := svc.Receive(ctx, ReceiveInput{Key: key, Quantity: 5, Source: SourceManualReceive})
	require.NoError(t, err)

	res, err := svc.Adjust(ctx, AdjustInput{Key: key, ActualQty: 5})
	require.NoError(t, err)
	assert.True(t, res.Difference.IsZero())
	assert.Nil(t, res.Movement)
	assert.Len(t, repo.movementsFor(key), 1)
}

func TestAdjustRejectsNegativeActual(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Adjust(ctx, AdjustInput{Key: testKey(), ActualQty: -1})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

// The balance must stay reproducible from the log across a mixed sequence of
// operations, and never go negative.
func TestLedgerReplayMatchesBalance(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	key := testKey()

	steps := []func() error{
		func() error { _, err := svc.Receive(ctx, ReceiveInput{Key: key, Quantity: 12, Source: SourceDistributorDelivery}); return err },
		func() error { _, err := svc.Issue(ctx, IssueInput{Key: key, Quantity: 5, Source: SourcePointOfSale, AllowClamp: true}); return err },
		func() error { _, err := svc.Adjust(ctx, AdjustInput{Key: key, ActualQty: 9}); return err },
		func() error { _, err := svc.Issue(ctx, IssueInput{Key: key, Quantity: 15, Source: SourcePointOfSale, AllowClamp: true}); return err },
		func() error { _, err := svc.Receive(ctx, ReceiveInput{Key: key, Quantity: 3, Source: SourceManualReceive}); return err },
	}
	for i, step := range steps {
		require.NoError(t, step(), "step %d", i)

		b, err := svc.GetBalance(ctx, key)
		require.NoError(t, err)
		assert.False(t, b.Quantity.IsNegative(), "step %d: balance went negative", i)
		assert.Equal(t, b.Quantity, repo.replay(key), "step %d: replay mismatch", i)
	}

	b, _ := svc.GetBalance(ctx, key)
	assert.Equal(t, types.Quantity(3), b.Quantity)
}

func TestBalanceStatusClassification(t *testing.T) {
	b := StockBalance{Quantity: 40, WarnThreshold: 20, CriticalThreshold: 5}
	assert.Equal(t, StatusAman, b.Status())

	b.Quantity = 20
	assert.Equal(t, StatusRendah, b.Status())

	b.Quantity = 5
	assert.Equal(t, StatusKritis, b.Status())

	b.Quantity = 0
	assert.Equal(t, StatusKritis, b.Status())
}
