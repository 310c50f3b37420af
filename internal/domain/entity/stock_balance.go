package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockBalance representa o saldo atual de um insumo em um escopo (central ou escola).
// Criado de forma preguiçosa na primeira referência (get-or-create com quantidade zero).
// Invariante: Quantity nunca fica negativa; toda mutação ocorre sob lock de linha.
// MinStock só se aplica ao escopo de escola (0 = usa o mínimo global do insumo).
type StockBalance struct {
	SupplyID  string
	Scope     StockScope
	Quantity  decimal.Decimal
	MinStock  decimal.Decimal
	UpdatedAt time.Time
}
