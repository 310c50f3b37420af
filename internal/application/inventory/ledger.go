package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/semed-merenda/merenda-api/internal/domain"
	"github.com/semed-merenda/merenda-api/internal/domain/entity"
)

// movementInput descreve uma mutação de saldo a aplicar dentro de uma tx.
type movementInput struct {
	Supply       *entity.Supply
	Scope        entity.StockScope
	Type         string // entity.MovementTypeIN / MovementTypeOUT
	Quantity     decimal.Decimal
	MovementDate time.Time
	Note         string
	ActorID      string
}

// applyMovement aplica uma mutação de saldo sob lock de linha e grava o
// lançamento correspondente do razão. Para OUT, rejeita com
// InsufficientStockError se o saldo ficaria negativo. Devolve o saldo
// atualizado (para avaliação de estoque baixo) e o lançamento criado.
//
// O lock (GetForUpdate) e a escrita do saldo acontecem na mesma transação do
// chamador: duas mutações concorrentes sobre o mesmo (insumo, escopo) nunca
// intercalam leitura e escrita.
func applyMovement(r TxRepos, in movementInput) (*entity.StockBalance, *entity.StockMovement, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, nil, domain.ErrInvalidInput
	}
	if in.Type != entity.MovementTypeIN && in.Type != entity.MovementTypeOUT {
		return nil, nil, domain.ErrInvalidInput
	}

	balance, err := r.Balances.GetForUpdate(in.Supply.ID, in.Scope)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	switch in.Type {
	case entity.MovementTypeIN:
		balance.Quantity = balance.Quantity.Add(in.Quantity)
	case entity.MovementTypeOUT:
		if balance.Quantity.LessThan(in.Quantity) {
			return nil, nil, &domain.InsufficientStockError{
				SupplyName: in.Supply.Name,
				Available:  balance.Quantity,
				SchoolID:   in.Scope.SchoolID(),
			}
		}
		balance.Quantity = balance.Quantity.Sub(in.Quantity)
	}
	balance.UpdatedAt = now
	if err := r.Balances.Upsert(balance); err != nil {
		return nil, nil, err
	}

	movement := &entity.StockMovement{
		ID:           uuid.New().String(),
		SupplyID:     in.Supply.ID,
		Scope:        in.Scope,
		Type:         in.Type,
		Quantity:     in.Quantity,
		MovementDate: in.MovementDate,
		Note:         in.Note,
		CreatedBy:    in.ActorID,
		CreatedAt:    now,
	}
	if err := r.Movements.Create(movement); err != nil {
		return nil, nil, err
	}
	return balance, movement, nil
}
