package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/stock/movements.
// SchoolID vazio significa estoque central.
type RegisterMovementRequest struct {
	SupplyID     string          `json:"supply_id"`
	SchoolID     string          `json:"school_id,omitempty"`
	Type         string          `json:"type"`
	Quantity     decimal.Decimal `json:"quantity"`
	MovementDate *time.Time      `json:"movement_date,omitempty"`
	Note         string          `json:"note,omitempty"`
}

// StockBalanceResponse saldo de um insumo em um escopo.
type StockBalanceResponse struct {
	SupplyID   string          `json:"supply_id"`
	SupplyName string          `json:"supply_name,omitempty"`
	Category   string          `json:"category,omitempty"`
	Unit       string          `json:"unit,omitempty"`
	SchoolID   string          `json:"school_id,omitempty"`
	Quantity   decimal.Decimal `json:"quantity"`
	MinStock   decimal.Decimal `json:"min_stock"`
	Status     string          `json:"status,omitempty"` // low | normal | high (derivado)
	UpdatedAt  time.Time       `json:"updated_at"`
}

// StockMovementResponse lançamento do razão.
type StockMovementResponse struct {
	ID           string          `json:"id"`
	SupplyID     string          `json:"supply_id"`
	SchoolID     string          `json:"school_id,omitempty"`
	Type         string          `json:"type"`
	Quantity     decimal.Decimal `json:"quantity"`
	MovementDate time.Time       `json:"movement_date"`
	Note         string          `json:"note,omitempty"`
	CreatedBy    string          `json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
}

// SchoolStockLimitRequest body para PUT /api/schools/:id/stock-limits.
type SchoolStockLimitRequest struct {
	SupplyID string          `json:"supply_id"`
	MinStock decimal.Decimal `json:"min_stock"`
}

// ConsumptionItemRequest item do consumo direto do portal público.
type ConsumptionItemRequest struct {
	SupplyID     string          `json:"supply"`
	Quantity     decimal.Decimal `json:"quantity"`
	MovementDate *time.Time      `json:"movement_date,omitempty"`
	Note         string          `json:"note,omitempty"`
}

// ConsumptionRequest body para POST /public/schools/:slug/consumption.
type ConsumptionRequest struct {
	Items []ConsumptionItemRequest `json:"items"`
}
