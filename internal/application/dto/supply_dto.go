package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSupplyRequest body para POST /api/supplies.
type CreateSupplyRequest struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Unit     string          `json:"unit"`
	MinStock decimal.Decimal `json:"min_stock"`
	IsActive *bool           `json:"is_active,omitempty"`
}

// UpdateSupplyRequest body para PUT /api/supplies/:id (parcial).
type UpdateSupplyRequest struct {
	Name     *string          `json:"name,omitempty"`
	Category *string          `json:"category,omitempty"`
	Unit     *string          `json:"unit,omitempty"`
	MinStock *decimal.Decimal `json:"min_stock,omitempty"`
	IsActive *bool            `json:"is_active,omitempty"`
}

// SupplyResponse representação de um insumo.
type SupplyResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Unit      string          `json:"unit"`
	MinStock  decimal.Decimal `json:"min_stock"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
