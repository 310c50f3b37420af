// Package inventory contém os serviços de domínio puros do estoque:
// mínimo efetivo, classificação de saldo e validação de assinatura.
package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/semed-merenda/merenda-api/internal/domain/entity"
)

// Status derivado de um saldo escolar (nunca armazenado).
const (
	StockStatusLow    = "low"
	StockStatusNormal = "normal"
	StockStatusHigh   = "high"
)

// EffectiveMinStock devolve o mínimo efetivo: o limite da escola quando
// definido (> 0), senão o mínimo global do insumo.
func EffectiveMinStock(balance *entity.StockBalance, supply *entity.Supply) decimal.Decimal {
	if balance != nil && balance.MinStock.GreaterThan(decimal.Zero) {
		return balance.MinStock
	}
	return supply.MinStock
}

// StockStatus classifica a quantidade contra o mínimo efetivo:
// quantity < min => low; quantity >= 2*min => high; senão normal.
func StockStatus(quantity, minStock decimal.Decimal) string {
	if quantity.LessThan(minStock) {
		return StockStatusLow
	}
	if quantity.GreaterThanOrEqual(minStock.Mul(decimal.NewFromInt(2))) {
		return StockStatusHigh
	}
	return StockStatusNormal
}

// IsLowStock indica se a quantidade está abaixo do mínimo efetivo.
func IsLowStock(quantity, minStock decimal.Decimal) bool {
	return quantity.LessThan(minStock)
}
