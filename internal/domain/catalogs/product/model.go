// Package product provides the LPG product catalog.
package product

import (
	"context"
	"time"

	"github.com/xinnxz/sim4lon-sub000/internal/core/apperror"
	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
	"github.com/xinnxz/sim4lon-sub000/internal/core/types"
)

// SizeClass is the closed enumeration of LPG cylinder classes.
type SizeClass string

const (
	Size3Kg   SizeClass = "3kg"
	Size5Kg   SizeClass = "5.5kg"
	Size12Kg  SizeClass = "12kg"
	Size50Kg  SizeClass = "50kg"
)

// KnownSizeClasses lists all valid cylinder classes.
var KnownSizeClasses = []SizeClass{Size3Kg, Size5Kg, Size12Kg, Size50Kg}

// ParseSizeClass validates a fixed LPG type name.
func ParseSizeClass(s string) (SizeClass, error) {
	for _, sc := range KnownSizeClasses {
		if string(sc) == s {
			return sc, nil
		}
	}
	return "", apperror.NewValidation("unknown LPG type").WithDetail("lpg_type", s)
}

// defaultCostPrices is the fallback cost snapshot per cylinder class, used
// when a product row carries no cost price. Values in IDR.
var defaultCostPrices = map[SizeClass]string{
	Size3Kg:  "16000",
	Size5Kg:  "52000",
	Size12Kg: "110000",
	Size50Kg: "450000",
}

// DefaultCostPrice returns the fallback cost price for a cylinder class.
func DefaultCostPrice(size SizeClass) types.Money {
	if s, ok := defaultCostPrices[size]; ok {
		return types.MustMoney(s)
	}
	return types.ZeroMoney()
}

// Product represents one sellable LPG cylinder class with pricing.
type Product struct {
	ID        id.ID       `db:"id" json:"id"`
	Code      string      `db:"code" json:"code"`
	Name      string      `db:"name" json:"name"`
	SizeClass SizeClass   `db:"size_class" json:"sizeClass"`
	CostPrice types.Money `db:"cost_price" json:"costPrice"`
	SellPrice types.Money `db:"sell_price" json:"sellPrice"`
	Active    bool        `db:"active" json:"active"`
	CreatedAt time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time   `db:"updated_at" json:"updatedAt"`
}

// NewProduct creates a new active product.
func NewProduct(code, name string, size SizeClass, costPrice, sellPrice types.Money) *Product {
	now := time.Now().UTC()
	return &Product{
		ID:        id.New(),
		Code:      code,
		Name:      name,
		SizeClass: size,
		CostPrice: costPrice,
		SellPrice: sellPrice,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks product invariants.
func (p *Product) Validate(ctx context.Context) error {
	if p.Name == "" {
		return apperror.NewValidation("name is required").WithDetail("field", "name")
	}
	if _, err := ParseSizeClass(string(p.SizeClass)); err != nil {
		return err
	}
	if p.SellPrice.IsNegative() || p.CostPrice.IsNegative() {
		return apperror.NewValidation("prices cannot be negative")
	}
	return nil
}

// EffectiveCostPrice returns the product cost price, falling back to the
// class default when the row carries none. The caller snapshots this value;
// it is a point-in-time copy, not a live reference.
func (p *Product) EffectiveCostPrice() types.Money {
	if p.CostPrice.IsZero() {
		return DefaultCostPrice(p.SizeClass)
	}
	return p.CostPrice
}
