package repository

import (
	"github.com/shopspring/decimal"

	"github.com/semed-merenda/merenda-api/internal/domain/entity"
)

// StockBalanceFilter filtros de listagem de saldos.
type StockBalanceFilter struct {
	Query    string
	Category string
	LowStock *bool
}

// StockRow é a linha de leitura de saldo com os dados do insumo (join).
type StockRow struct {
	Balance entity.StockBalance
	Supply  entity.Supply
}

// StockBalanceRepository define a porta de persistência dos saldos de estoque
// (central e por escola). Usado dentro de transações para garantir consistência.
type StockBalanceRepository interface {
	// Get devolve o saldo atual; se não existir, devolve uma linha zero (lazy).
	Get(supplyID string, scope entity.StockScope) (*entity.StockBalance, error)
	// GetForUpdate devolve o saldo bloqueando a linha (SELECT FOR UPDATE).
	// Cria a linha zero sob o mesmo lock se ainda não existir.
	GetForUpdate(supplyID string, scope entity.StockScope) (*entity.StockBalance, error)
	Upsert(balance *entity.StockBalance) error
	// ListCentral lista saldos centrais com os dados do insumo.
	ListCentral(filter StockBalanceFilter, limit, offset int) ([]*StockRow, error)
	// ListBySchool lista os saldos de uma escola com os dados do insumo.
	ListBySchool(schoolID string) ([]*StockRow, error)
	// SetSchoolMinStock define o limite mínimo próprio de uma escola para um insumo.
	SetSchoolMinStock(schoolID, supplyID string, minStock decimal.Decimal) error
}
