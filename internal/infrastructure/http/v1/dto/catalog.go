package dto

import (
	"time"

	"github.com/xinnxz/sim4lon-sub000/internal/domain/catalogs/customer"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/catalogs/outlet"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/catalogs/product"
)

// --- Outlet DTOs ---

// CreateOutletRequest registers a pangkalan.
type CreateOutletRequest struct {
	Code    string  `json:"code" binding:"required"`
	Name    string  `json:"name" binding:"required"`
	AgenID  *string `json:"agenId,omitempty" binding:"omitempty,uuid"`
	Address string  `json:"address,omitempty"`
	Phone   string  `json:"phone,omitempty"`
}

// ListOutletsQuery filters the outlet list.
type ListOutletsQuery struct {
	AgenID     string `form:"agenId" binding:"omitempty,uuid"`
	ActiveOnly bool   `form:"activeOnly"`
	Search     string `form:"search"`
	PageQuery
}

// OutletResponse represents an outlet in API responses.
type OutletResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	AgenID    *string   `json:"agenId,omitempty"`
	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromOutlet converts domain entity to response DTO.
func FromOutlet(o *outlet.Outlet) OutletResponse {
	resp := OutletResponse{
		ID:        o.ID.String(),
		Code:      o.Code,
		Name:      o.Name,
		Address:   o.Address,
		Phone:     o.Phone,
		Active:    o.Active,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
	if o.AgenID != nil {
		val := o.AgenID.String()
		resp.AgenID = &val
	}
	return resp
}

// OutletListResponse represents a list of outlets.
type OutletListResponse struct {
	Items []OutletResponse `json:"items"`
}

// --- Agen DTOs ---

// CreateAgenRequest registers a distributor.
type CreateAgenRequest struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
}

// AgenResponse represents a distributor in API responses.
type AgenResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromAgen converts domain entity to response DTO.
func FromAgen(a *outlet.Agen) AgenResponse {
	return AgenResponse{
		ID:        a.ID.String(),
		Code:      a.Code,
		Name:      a.Name,
		Active:    a.Active,
		CreatedAt: a.CreatedAt,
	}
}

// AgenListResponse represents a list of distributors.
type AgenListResponse struct {
	Items []AgenResponse `json:"items"`
}

// --- Product DTOs ---

// CreateProductRequest registers an LPG product.
type CreateProductRequest struct {
	Code      string `json:"code"`
	Name      string `json:"name" binding:"required"`
	SizeClass string `json:"sizeClass" binding:"required"`
	// Prices are decimal strings; costPrice falls back to the class default
	// when empty.
	CostPrice string `json:"costPrice,omitempty"`
	SellPrice string `json:"sellPrice" binding:"required"`
}

// ListProductsQuery filters the product list.
type ListProductsQuery struct {
	ActiveOnly bool `form:"activeOnly"`
	PageQuery
}

// ProductResponse represents an LPG product in API responses.
type ProductResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	SizeClass string    `json:"sizeClass"`
	CostPrice string    `json:"costPrice"`
	SellPrice string    `json:"sellPrice"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromProduct converts domain entity to response DTO.
func FromProduct(p *product.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID.String(),
		Code:      p.Code,
		Name:      p.Name,
		SizeClass: string(p.SizeClass),
		CostPrice: p.EffectiveCostPrice().String(),
		SellPrice: p.SellPrice.String(),
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ProductListResponse represents a list of products.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
}

// --- Customer DTOs ---

// CreateCustomerRequest registers a repeat buyer at an outlet. Pangkalan
// callers may omit outletId; it defaults to their own outlet.
type CreateCustomerRequest struct {
	OutletID string `json:"outletId" binding:"omitempty,uuid"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

// ListCustomersQuery filters an outlet's customer list. Pangkalan callers
// may omit outletId; it defaults to their own outlet.
type ListCustomersQuery struct {
	OutletID string `form:"outletId" binding:"omitempty,uuid"`
	Search   string `form:"search"`
	PageQuery
}

// CustomerResponse represents a customer in API responses.
type CustomerResponse struct {
	ID        string    `json:"id"`
	OutletID  string    `json:"outletId"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromCustomer converts domain entity to response DTO.
func FromCustomer(c *customer.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID.String(),
		OutletID:  c.OutletID.String(),
		Name:      c.Name,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// CustomerListResponse represents a list of customers.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
}
