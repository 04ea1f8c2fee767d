package opname

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xinnxz/sim4lon-sub000/internal/core/apperror"
	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
	"github.com/xinnxz/sim4lon-sub000/internal/core/numerator"
	"github.com/xinnxz/sim4lon-sub000/internal/core/types"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/ledger"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/ledger/ledgertest"
)

type memOpnameRepo struct {
	docs map[id.ID]*Opname
}

func newMemOpnameRepo() *memOpnameRepo {
	return &memOpnameRepo{docs: make(map[id.ID]*Opname)}
}

func (r *memOpnameRepo) Create(_ context.Context, o *Opname) error {
	cp := *o
	r.docs[o.ID] = &cp
	return nil
}

func (r *memOpnameRepo) GetByID(_ context.Context, opnameID id.ID) (*Opname, error) {
	if o, ok := r.docs[opnameID]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, apperror.NewNotFound("opname", opnameID)
}

func (r *memOpnameRepo) List(_ context.Context, filter ListFilter) ([]*Opname, error) {
	var out []*Opname
	for _, o := range r.docs {
		if filter.OutletID != nil && o.OutletID != *filter.OutletID {
			continue
		}
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

type fixture struct {
	svc        *Service
	repo       *memOpnameRepo
	ledgerRepo *ledgertest.Repository
	ledgerSvc  *ledger.Service
	key        ledger.StockKey
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo := newMemOpnameRepo()
	ledgerRepo := ledgertest.NewRepository()
	ledgerSvc := ledger.NewService(ledgerRepo, ledgertest.NopTxManager{})
	svc := NewService(repo, ledgerSvc, &numerator.MockGenerator{}, ledgertest.NopTxManager{}, nil)

	return &fixture{
		svc:        svc,
		repo:       repo,
		ledgerRepo: ledgerRepo,
		ledgerSvc:  ledgerSvc,
		key:        ledger.StockKey{OutletID: id.New(), ProductID: id.New()},
	}
}

func (f *fixture) stock(t *testing.T, qty types.Quantity) {
	t.Helper()
	_, err := f.ledgerSvc.Receive(context.Background(), ledger.ReceiveInput{
		Key:      f.key,
		Quantity: qty,
		Source:   ledger.SourceManualReceive,
	})
	require.NoError(t, err)
}

// Recorded 6, counted 8: balance becomes 8 and the document keeps both sides.
func TestPerformResetsBalanceToCount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.stock(t, 6)

	doc, err := f.svc.Perform(ctx, PerformInput{
		OutletID:  f.key.OutletID,
		ProductID: f.key.ProductID,
		ActualQty: 8,
		Note:      "monthly count",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, doc.Code)
	assert.Equal(t, types.Quantity(6), doc.RecordedQty)
	assert.Equal(t, types.Quantity(8), doc.ActualQty)
	assert.Equal(t, types.Quantity(2), doc.Difference)

	b, err := f.ledgerSvc.GetBalance(ctx, f.key)
	require.NoError(t, err)
	assert.Equal(t, types.Quantity(8), b.Quantity)
	assert.Equal(t, types.Quantity(8), f.ledgerRepo.Replay(f.key))

	movements := f.ledgerRepo.Movements(f.key)
	require.Len(t, movements, 2)
	m := movements[1]
	assert.Equal(t, ledger.KindAdjust, m.Kind)
	assert.Equal(t, types.Quantity(2), m.Quantity)
	assert.Equal(t, types.Quantity(2), m.Delta)
	require.NotNil(t, m.ReferenceID)
	assert.Equal(t, doc.ID, *m.ReferenceID)
}

func TestPerformDownwardCount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.stock(t, 10)

	doc, err := f.svc.Perform(ctx, PerformInput{
		OutletID:  f.key.OutletID,
		ProductID: f.key.ProductID,
		ActualQty: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, types.Quantity(-7), doc.Difference)
	assert.Equal(t, types.Quantity(3), f.ledgerRepo.Replay(f.key))
}

func TestPerformMatchingCountRecordsNoMovement(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.stock(t, 5)

	doc, err := f.svc.Perform(ctx, PerformInput{
		OutletID:  f.key.OutletID,
		ProductID: f.key.ProductID,
		ActualQty: 5,
	})
	require.NoError(t, err)
	assert.True(t, doc.Difference.IsZero())

	// The document exists, the log gained nothing.
	assert.Len(t, f.repo.docs, 1)
	assert.Len(t, f.ledgerRepo.Movements(f.key), 1)
}

func TestPerformRejectsNegativeCount(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Perform(context.Background(), PerformInput{
		OutletID:  f.key.OutletID,
		ProductID: f.key.ProductID,
		ActualQty: -1,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
	assert.Empty(t, f.repo.docs)
}

func TestPerformOnEmptyBalance(t *testing.T) {
	f := newFixture(t)

	doc, err := f.svc.Perform(context.Background(), PerformInput{
		OutletID:  f.key.OutletID,
		ProductID: f.key.ProductID,
		ActualQty: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, types.Quantity(0), doc.RecordedQty)
	assert.Equal(t, types.Quantity(12), doc.Difference)
	assert.Equal(t, types.Quantity(12), f.ledgerRepo.Replay(f.key))
}
