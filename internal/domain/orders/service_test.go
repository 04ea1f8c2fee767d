package orders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xinnxz/sim4lon-sub000/internal/core/apperror"
	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
	"github.com/xinnxz/sim4lon-sub000/internal/core/numerator"
	"github.com/xinnxz/sim4lon-sub000/internal/core/types"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/catalogs/outlet"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/ledger"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/ledger/ledgertest"
)

type memOrderRepo struct {
	orders map[id.ID]*Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[id.ID]*Order)}
}

func (r *memOrderRepo) Create(_ context.Context, o *Order) error {
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *memOrderRepo) GetByID(_ context.Context, orderID id.ID) (*Order, error) {
	if o, ok := r.orders[orderID]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, apperror.NewNotFound("order", orderID)
}

func (r *memOrderRepo) GetByCode(_ context.Context, code string) (*Order, error) {
	for _, o := range r.orders {
		if o.Code == code {
			cp := *o
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("order", code)
}

func (r *memOrderRepo) List(_ context.Context, filter ListFilter) ([]*Order, error) {
	var out []*Order
	for _, o := range r.orders {
		if filter.OutletID != nil && o.OutletID != *filter.OutletID {
			continue
		}
		if filter.Status != nil && o.Status != *filter.Status {
			continue
		}
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memOrderRepo) Update(_ context.Context, o *Order) error {
	stored, ok := r.orders[o.ID]
	if !ok {
		return apperror.NewNotFound("order", o.ID)
	}
	if stored.Version != o.Version {
		return apperror.NewConcurrentUpdate("order", o.ID)
	}
	o.Version++
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

type memOutletRepo struct {
	outlets map[id.ID]*outlet.Outlet
}

func (r *memOutletRepo) Create(_ context.Context, o *outlet.Outlet) error {
	r.outlets[o.ID] = o
	return nil
}

func (r *memOutletRepo) GetByID(_ context.Context, outletID id.ID) (*outlet.Outlet, error) {
	if o, ok := r.outlets[outletID]; ok {
		return o, nil
	}
	return nil, apperror.NewNotFound("outlet", outletID)
}

func (r *memOutletRepo) GetByCode(_ context.Context, code string) (*outlet.Outlet, error) {
	for _, o := range r.outlets {
		if o.Code == code {
			return o, nil
		}
	}
	return nil, apperror.NewNotFound("outlet", code)
}

func (r *memOutletRepo) List(_ context.Context, _ outlet.ListFilter) ([]*outlet.Outlet, error) {
	var out []*outlet.Outlet
	for _, o := range r.outlets {
		out = append(out, o)
	}
	return out, nil
}

func (r *memOutletRepo) Update(_ context.Context, o *outlet.Outlet) error {
	r.outlets[o.ID] = o
	return nil
}

func (r *memOutletRepo) CreateAgen(_ context.Context, _ *outlet.Agen) error { return nil }

func (r *memOutletRepo) GetAgenByID(_ context.Context, agenID id.ID) (*outlet.Agen, error) {
	return nil, apperror.NewNotFound("agen", agenID)
}

func (r *memOutletRepo) ListAgens(_ context.Context) ([]*outlet.Agen, error) { return nil, nil }

type fixture struct {
	svc        *Service
	orderRepo  *memOrderRepo
	ledgerRepo *ledgertest.Repository
	outletID   id.ID
	agenID     id.ID
	productID  id.ID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	agenID := id.New()
	out := outlet.NewOutlet("PGK-001", "Pangkalan Maju Jaya")
	out.AgenID = &agenID

	outletRepo := &memOutletRepo{outlets: map[id.ID]*outlet.Outlet{out.ID: out}}
	orderRepo := newMemOrderRepo()
	ledgerRepo := ledgertest.NewRepository()
	ledgerSvc := ledger.NewService(ledgerRepo, ledgertest.NopTxManager{})

	svc := NewService(orderRepo, outletRepo, ledgerSvc, &numerator.MockGenerator{}, ledgertest.NopTxManager{}, nil)
	return &fixture{
		svc:        svc,
		orderRepo:  orderRepo,
		ledgerRepo: ledgerRepo,
		outletID:   out.ID,
		agenID:     agenID,
		productID:  id.New(),
	}
}

func (f *fixture) createOrder(t *testing.T, qty types.Quantity) *Order {
	t.Helper()
	o, err := f.svc.Create(context.Background(), CreateInput{
		OutletID:  f.outletID,
		ProductID: f.productID,
		Quantity:  qty,
	})
	require.NoError(t, err)
	return o
}

func (f *fixture) stockKey() ledger.StockKey {
	return ledger.StockKey{OutletID: f.outletID, ProductID: f.productID}
}

func TestCreateOrderStartsPending(t *testing.T) {
	f := newFixture(t)

	o := f.createOrder(t, 10)
	assert.Equal(t, StatusPending, o.Status)
	assert.NotEmpty(t, o.Code)
	require.NotNil(t, o.AgenID)
	assert.Equal(t, f.agenID, *o.AgenID)

	// No stock moves until the order is received.
	assert.Empty(t, f.ledgerRepo.Movements(f.stockKey()))
}

func TestCreateOrderRejectsNonPositiveQuantity(t *testing.T) {
	f := newFixture(t)

	for _, qty := range []types.Quantity{0, -2} {
		_, err := f.svc.Create(context.Background(), CreateInput{
			OutletID:  f.outletID,
			ProductID: f.productID,
			Quantity:  qty,
		})
		require.Error(t, err)
		assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
	}
}

// Full lifecycle: order 10, confirm, receive, balance goes up by 10 with a
// movement that references the order.
func TestOrderLifecycleMovesStockOnReceive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	o := f.createOrder(t, 10)

	o, err := f.svc.Confirm(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, o.Status)
	assert.Empty(t, f.ledgerRepo.Movements(f.stockKey()))

	o, err = f.svc.Receive(ctx, ReceiveInput{OrderID: o.ID})
	require.NoError(t, err)
	assert.Equal(t, StatusReceived, o.Status)
	assert.Equal(t, types.Quantity(10), o.ReceivedQty)
	require.NotNil(t, o.ReceivedDate)

	movements := f.ledgerRepo.Movements(f.stockKey())
	require.Len(t, movements, 1)
	m := movements[0]
	assert.Equal(t, ledger.KindIn, m.Kind)
	assert.Equal(t, types.Quantity(10), m.Quantity)
	assert.Equal(t, ledger.SourceDistributorDelivery, m.Source)
	require.NotNil(t, m.ReferenceID)
	assert.Equal(t, o.ID, *m.ReferenceID)
	assert.Equal(t, types.Quantity(10), f.ledgerRepo.Replay(f.stockKey()))
}

func TestReceivePendingOrderRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	o := f.createOrder(t, 5)

	_, err := f.svc.Receive(ctx, ReceiveInput{OrderID: o.ID})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidTransition))

	// The rejected receive must leave both the order and the ledger untouched.
	stored, err := f.svc.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, stored.Status)
	assert.Empty(t, f.ledgerRepo.Movements(f.stockKey()))
}

func TestReceiveWithDeviatingQuantity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	o := f.createOrder(t, 10)
	_, err := f.svc.Confirm(ctx, o.ID)
	require.NoError(t, err)

	delivered := types.Quantity(12)
	o, err = f.svc.Receive(ctx, ReceiveInput{OrderID: o.ID, ReceivedQty: &delivered})
	require.NoError(t, err)
	assert.Equal(t, types.Quantity(10), o.OrderedQty)
	assert.Equal(t, types.Quantity(12), o.ReceivedQty)
	assert.Equal(t, types.Quantity(12), f.ledgerRepo.Replay(f.stockKey()))
}

func TestCancelPendingAndConfirmed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	o1 := f.createOrder(t, 4)
	o1, err := f.svc.Cancel(ctx, o1.ID, "outlet closed this week")
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, o1.Status)

	o2 := f.createOrder(t, 4)
	_, err = f.svc.Confirm(ctx, o2.ID)
	require.NoError(t, err)
	o2, err = f.svc.Cancel(ctx, o2.ID, "")
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, o2.Status)

	assert.Empty(t, f.ledgerRepo.Movements(f.stockKey()))
}

func TestTerminalStatesRejectAllTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	o := f.createOrder(t, 6)
	_, err := f.svc.Confirm(ctx, o.ID)
	require.NoError(t, err)
	_, err = f.svc.Receive(ctx, ReceiveInput{OrderID: o.ID})
	require.NoError(t, err)

	for name, op := range map[string]func() error{
		"confirm": func() error { _, err := f.svc.Confirm(ctx, o.ID); return err },
		"receive": func() error { _, err := f.svc.Receive(ctx, ReceiveInput{OrderID: o.ID}); return err },
		"cancel":  func() error { _, err := f.svc.Cancel(ctx, o.ID, ""); return err },
	} {
		err := op()
		require.Error(t, err, name)
		assert.True(t, apperror.IsCode(err, apperror.CodeInvalidTransition), name)
	}

	// Receive ran exactly once.
	assert.Equal(t, types.Quantity(6), f.ledgerRepo.Replay(f.stockKey()))
}

func TestConfirmCancelledOrderRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	o := f.createOrder(t, 3)
	_, err := f.svc.Cancel(ctx, o.ID, "")
	require.NoError(t, err)

	_, err = f.svc.Confirm(ctx, o.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidTransition))
}

func TestOrderCodesAreUniqueAndSequential(t *testing.T) {
	f := newFixture(t)

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		o := f.createOrder(t, 1)
		assert.False(t, seen[o.Code], "duplicate code %s", o.Code)
		seen[o.Code] = true
	}
}

func TestStatusTransitionTable(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusReceived, false},
		{StatusConfirmed, StatusReceived, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusReceived, StatusCancelled, false},
		{StatusCancelled, StatusConfirmed, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
	assert.True(t, StatusReceived.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
}

func TestReceiveDateDefaultsToNow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	o := f.createOrder(t, 2)
	_, err := f.svc.Confirm(ctx, o.ID)
	require.NoError(t, err)

	before := time.Now().UTC()
	o, err = f.svc.Receive(ctx, ReceiveInput{OrderID: o.ID})
	require.NoError(t, err)
	require.NotNil(t, o.ReceivedDate)
	assert.False(t, o.ReceivedDate.Before(before))
}
