package sales

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xinnxz/sim4lon-sub000/internal/core/apperror"
	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
	"github.com/xinnxz/sim4lon-sub000/internal/core/numerator"
	"github.com/xinnxz/sim4lon-sub000/internal/core/types"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/catalogs/customer"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/catalogs/product"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/ledger"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/ledger/ledgertest"
)

type memSaleRepo struct {
	sales map[id.ID]*Sale
}

func newMemSaleRepo() *memSaleRepo {
	return &memSaleRepo{sales: make(map[id.ID]*Sale)}
}

func (r *memSaleRepo) Create(_ context.Context, s *Sale) error {
	cp := *s
	r.sales[s.ID] = &cp
	return nil
}

func (r *memSaleRepo) GetByID(_ context.Context, saleID id.ID) (*Sale, error) {
	if s, ok := r.sales[saleID]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, apperror.NewNotFound("sale", saleID)
}

func (r *memSaleRepo) List(_ context.Context, filter ListFilter) ([]*Sale, error) {
	var out []*Sale
	for _, s := range r.sales {
		if filter.OutletID != nil && s.OutletID != *filter.OutletID {
			continue
		}
		if !filter.IncludeReversed && s.Reversed {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memSaleRepo) Update(_ context.Context, s *Sale) error {
	stored, ok := r.sales[s.ID]
	if !ok {
		return apperror.NewNotFound("sale", s.ID)
	}
	if stored.Version != s.Version {
		return apperror.NewConcurrentUpdate("sale", s.ID)
	}
	s.Version++
	cp := *s
	r.sales[s.ID] = &cp
	return nil
}

type memProductRepo struct {
	products map[id.ID]*product.Product
}

func (r *memProductRepo) Create(_ context.Context, p *product.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, productID id.ID) (*product.Product, error) {
	if p, ok := r.products[productID]; ok {
		return p, nil
	}
	return nil, apperror.NewNotFound("product", productID)
}

func (r *memProductRepo) GetBySizeClass(_ context.Context, size product.SizeClass) (*product.Product, error) {
	for _, p := range r.products {
		if p.SizeClass == size {
			return p, nil
		}
	}
	return nil, apperror.NewNotFound("product", size)
}

func (r *memProductRepo) List(_ context.Context, _ product.ListFilter) ([]*product.Product, error) {
	var out []*product.Product
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *memProductRepo) Update(_ context.Context, p *product.Product) error {
	r.products[p.ID] = p
	return nil
}

type memCustomerRepo struct {
	customers map[id.ID]*customer.Customer
}

func (r *memCustomerRepo) Create(_ context.Context, c *customer.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *memCustomerRepo) GetByID(_ context.Context, customerID id.ID) (*customer.Customer, error) {
	if c, ok := r.customers[customerID]; ok {
		return c, nil
	}
	return nil, apperror.NewNotFound("customer", customerID)
}

func (r *memCustomerRepo) ListByOutlet(_ context.Context, outletID id.ID, _ customer.ListFilter) ([]*customer.Customer, error) {
	var out []*customer.Customer
	for _, c := range r.customers {
		if c.OutletID == outletID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memCustomerRepo) Update(_ context.Context, c *customer.Customer) error {
	r.customers[c.ID] = c
	return nil
}

type fixture struct {
	svc        *Service
	saleRepo   *memSaleRepo
	ledgerRepo *ledgertest.Repository
	ledgerSvc  *ledger.Service
	outletID   id.ID
	prod       *product.Product
	cust       *customer.Customer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	outletID := id.New()
	prod := product.NewProduct("LPG-3", "LPG 3kg", product.Size3Kg,
		types.MustMoney("16000"), types.MustMoney("18000"))
	cust := customer.NewCustomer(outletID, "Bu Siti")

	saleRepo := newMemSaleRepo()
	productRepo := &memProductRepo{products: map[id.ID]*product.Product{prod.ID: prod}}
	customerRepo := &memCustomerRepo{customers: map[id.ID]*customer.Customer{cust.ID: cust}}
	ledgerRepo := ledgertest.NewRepository()
	ledgerSvc := ledger.NewService(ledgerRepo, ledgertest.NopTxManager{})

	svc := NewService(saleRepo, productRepo, customerRepo, ledgerSvc,
		&numerator.MockGenerator{}, ledgertest.NopTxManager{}, nil)
	return &fixture{
		svc:        svc,
		saleRepo:   saleRepo,
		ledgerRepo: ledgerRepo,
		ledgerSvc:  ledgerSvc,
		outletID:   outletID,
		prod:       prod,
		cust:       cust,
	}
}

func (f *fixture) stockKey() ledger.StockKey {
	return ledger.StockKey{OutletID: f.outletID, ProductID: f.prod.ID}
}

func (f *fixture) stock(t *testing.T, qty types.Quantity) {
	t.Helper()
	_, err := f.ledgerSvc.Receive(context.Background(), ledger.ReceiveInput{
		Key:      f.stockKey(),
		Quantity: qty,
		Source:   ledger.SourceManualReceive,
	})
	require.NoError(t, err)
}

func TestCreateSaleDecrementsStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.stock(t, 10)

	res, err := f.svc.Create(ctx, CreateInput{
		OutletID:     f.outletID,
		ProductID:    f.prod.ID,
		Quantity:     4,
		CustomerName: "walk-in",
	})
	require.NoError(t, err)
	assert.False(t, res.LedgerClamped)

	sale := res.Sale
	assert.NotEmpty(t, sale.Code)
	assert.Equal(t, types.Quantity(4), sale.Quantity)
	assert.True(t, sale.Total.Equal(types.MustMoney("72000")), "total = %s", sale.Total)
	assert.True(t, sale.CostPrice.Equal(types.MustMoney("16000")))
	assert.Equal(t, PaymentPaid, sale.PaymentStatus)

	b, err := f.ledgerSvc.GetBalance(ctx, f.stockKey())
	require.NoError(t, err)
	assert.Equal(t, types.Quantity(6), b.Quantity)

	movements := f.ledgerRepo.Movements(f.stockKey())
	require.Len(t, movements, 2)
	m := movements[1]
	assert.Equal(t, ledger.KindOut, m.Kind)
	assert.Equal(t, ledger.SourcePointOfSale, m.Source)
	require.NotNil(t, m.ReferenceID)
	assert.Equal(t, sale.ID, *m.ReferenceID)
}

// Selling more than the recorded balance still posts the sale; the balance
// clamps at zero and the document keeps the real sold quantity.
func TestCreateSaleClampsAtZero(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.stock(t, 6)

	res, err := f.svc.Create(ctx, CreateInput{
		OutletID:     f.outletID,
		ProductID:    f.prod.ID,
		Quantity:     20,
		CustomerName: "warung sebelah",
	})
	require.NoError(t, err)
	assert.True(t, res.LedgerClamped)
	assert.Equal(t, types.Quantity(20), res.Sale.Quantity)
	assert.True(t, res.Sale.Total.Equal(types.MustMoney("360000")))

	b, err := f.ledgerSvc.GetBalance(ctx, f.stockKey())
	require.NoError(t, err)
	assert.True(t, b.Quantity.IsZero())
	assert.Equal(t, types.Quantity(0), f.ledgerRepo.Replay(f.stockKey()))
}

func TestCreateSaleWithRegisteredCustomer(t *testing.T) {
	f := newFixture(t)
	f.stock(t, 5)

	res, err := f.svc.Create(context.Background(), CreateInput{
		OutletID:   f.outletID,
		ProductID:  f.prod.ID,
		Quantity:   1,
		CustomerID: &f.cust.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Sale.CustomerID)
	assert.Equal(t, f.cust.ID, *res.Sale.CustomerID)
}

func TestCreateSaleRequiresExactlyOneCustomerField(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, CreateInput{
		OutletID:  f.outletID,
		ProductID: f.prod.ID,
		Quantity:  1,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))

	_, err = f.svc.Create(ctx, CreateInput{
		OutletID:     f.outletID,
		ProductID:    f.prod.ID,
		Quantity:     1,
		CustomerID:   &f.cust.ID,
		CustomerName: "Bu Siti",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestCreateSaleRejectsForeignCustomer(t *testing.T) {
	f := newFixture(t)

	other := customer.NewCustomer(id.New(), "Pak Budi")
	f.svc.customers.(*memCustomerRepo).customers[other.ID] = other

	_, err := f.svc.Create(context.Background(), CreateInput{
		OutletID:   f.outletID,
		ProductID:  f.prod.ID,
		Quantity:   1,
		CustomerID: &other.ID,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestCreateSaleWithPriceOverride(t *testing.T) {
	f := newFixture(t)
	f.stock(t, 3)

	override := types.MustMoney("20000")
	res, err := f.svc.Create(context.Background(), CreateInput{
		OutletID:     f.outletID,
		ProductID:    f.prod.ID,
		Quantity:     2,
		CustomerName: "walk-in",
		UnitPrice:    &override,
	})
	require.NoError(t, err)
	assert.True(t, res.Sale.Total.Equal(types.MustMoney("40000")))
}

func TestUpdateRejectsQuantityAndProductChange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.stock(t, 10)

	res, err := f.svc.Create(ctx, CreateInput{
		OutletID:     f.outletID,
		ProductID:    f.prod.ID,
		Quantity:     4,
		CustomerName: "walk-in",
	})
	require.NoError(t, err)

	newQty := types.Quantity(7)
	_, err = f.svc.Update(ctx, UpdateInput{SaleID: res.Sale.ID, Quantity: &newQty})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeSaleAlreadyPosted))

	otherProduct := id.New()
	_, err = f.svc.Update(ctx, UpdateInput{SaleID: res.Sale.ID, ProductID: &otherProduct})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeSaleAlreadyPosted))

	// Balance unchanged by the rejected edits.
	assert.Equal(t, types.Quantity(6), f.ledgerRepo.Replay(f.stockKey()))
}

func TestUpdatePaymentStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.stock(t, 5)

	res, err := f.svc.Create(ctx, CreateInput{
		OutletID:      f.outletID,
		ProductID:     f.prod.ID,
		Quantity:      1,
		CustomerName:  "walk-in",
		PaymentStatus: PaymentUnpaid,
	})
	require.NoError(t, err)
	assert.Equal(t, PaymentUnpaid, res.Sale.PaymentStatus)

	paid := PaymentPaid
	updated, err := f.svc.Update(ctx, UpdateInput{SaleID: res.Sale.ID, PaymentStatus: &paid})
	require.NoError(t, err)
	assert.Equal(t, PaymentPaid, updated.PaymentStatus)
}

func TestReverseRestoresBalance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.stock(t, 10)

	res, err := f.svc.Create(ctx, CreateInput{
		OutletID:     f.outletID,
		ProductID:    f.prod.ID,
		Quantity:     4,
		CustomerName: "walk-in",
	})
	require.NoError(t, err)

	sale, err := f.svc.Reverse(ctx, res.Sale.ID, "wrong entry")
	require.NoError(t, err)
	assert.True(t, sale.Reversed)

	b, err := f.ledgerSvc.GetBalance(ctx, f.stockKey())
	require.NoError(t, err)
	assert.Equal(t, types.Quantity(10), b.Quantity)

	// The reversal is a new IN movement, not a deletion from the log.
	movements := f.ledgerRepo.Movements(f.stockKey())
	require.Len(t, movements, 3)
	last := movements[2]
	assert.Equal(t, ledger.KindIn, last.Kind)
	assert.Equal(t, ledger.SourceSaleReversal, last.Source)
	assert.Equal(t, sale.ID, *last.ReferenceID)
}

// Reversing a clamped sale restores only what the sale actually deducted.
func TestReverseClampedSaleRestoresAppliedOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.stock(t, 6)

	res, err := f.svc.Create(ctx, CreateInput{
		OutletID:     f.outletID,
		ProductID:    f.prod.ID,
		Quantity:     20,
		CustomerName: "walk-in",
	})
	require.NoError(t, err)
	require.True(t, res.LedgerClamped)

	f.stock(t, 5)

	_, err = f.svc.Reverse(ctx, res.Sale.ID, "")
	require.NoError(t, err)

	b, err := f.ledgerSvc.GetBalance(ctx, f.stockKey())
	require.NoError(t, err)
	assert.Equal(t, types.Quantity(11), b.Quantity)
}

func TestReverseTwiceRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.stock(t, 5)

	res, err := f.svc.Create(ctx, CreateInput{
		OutletID:     f.outletID,
		ProductID:    f.prod.ID,
		Quantity:     2,
		CustomerName: "walk-in",
	})
	require.NoError(t, err)

	_, err = f.svc.Reverse(ctx, res.Sale.ID, "")
	require.NoError(t, err)

	_, err = f.svc.Reverse(ctx, res.Sale.ID, "")
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeConflict))

	assert.Equal(t, types.Quantity(5), f.ledgerRepo.Replay(f.stockKey()))
}
