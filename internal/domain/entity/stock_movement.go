package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimento do razão de estoque.
const (
	MovementTypeIN  = "IN"  // entrada
	MovementTypeOUT = "OUT" // saida
)

// StockMovement é um lançamento imutável do razão: nunca é atualizado ou
// excluído depois de criado, é a trilha de auditoria. Toda mudança de saldo
// corresponde a exatamente um lançamento (ajustes de conferência geram dois:
// o da quantidade recebida e o do delta planejado/recebido contra o central).
type StockMovement struct {
	ID           string
	SupplyID     string
	Scope        StockScope
	Type         string
	Quantity     decimal.Decimal // sempre positiva; o sentido vem de Type
	MovementDate time.Time
	Note         string
	CreatedBy    string
	CreatedAt    time.Time
}
