package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de medida aceitas para insumos.
const (
	UnitKG   = "kg"
	UnitG    = "g"
	UnitL    = "l"
	UnitML   = "ml"
	UnitUnit = "unit"
)

// ValidUnit verifica se a unidade informada é uma das aceitas.
func ValidUnit(unit string) bool {
	switch unit {
	case UnitKG, UnitG, UnitL, UnitML, UnitUnit:
		return true
	}
	return false
}

// Supply representa um insumo da merenda (item do catálogo).
// MinStock é o limite mínimo global; escolas podem sobrescrever no saldo próprio.
// Nunca é excluído depois de referenciado por movimentos (protect-on-delete).
type Supply struct {
	ID        string
	Name      string
	Category  string
	Unit      string
	MinStock  decimal.Decimal
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
