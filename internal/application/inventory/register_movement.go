package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/semed-merenda/merenda-api/internal/domain"
	"github.com/semed-merenda/merenda-api/internal/domain/entity"
)

// RegisterMovementUseCase registra movimentos avulsos de estoque de forma
// transacional (IN/OUT) com bloqueio de fila e Commit/Rollback.
type RegisterMovementUseCase struct {
	txRunner TxRunner
}

// NewRegisterMovementUseCase constrói o caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner}
}

// MovementInput entrada para registrar um movimento avulso.
// SchoolID vazio significa estoque central.
type MovementInput struct {
	ActorID      string
	SupplyID     string
	SchoolID     string
	Type         string
	Quantity     decimal.Decimal
	MovementDate time.Time
	Note         string
}

// RegisterMovement inicia uma transação, bloqueia a linha do saldo alvo,
// aplica a mutação e grava o lançamento do razão. Saída que deixaria o saldo
// negativo é rejeitada com InsufficientStockError.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, in MovementInput) (*entity.StockMovement, error) {
	if in.SupplyID == "" || in.ActorID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Type != entity.MovementTypeIN && in.Type != entity.MovementTypeOUT {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.MovementDate.IsZero() {
		in.MovementDate = time.Now()
	}

	scope := entity.CentralScope()
	if in.SchoolID != "" {
		scope = entity.SchoolScope(in.SchoolID)
	}

	var created *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		supply, err := r.Supplies.GetByID(in.SupplyID)
		if err != nil {
			return err
		}
		if supply == nil {
			return domain.ErrNotFound
		}
		_, movement, err := applyMovement(r, movementInput{
			Supply:       supply,
			Scope:        scope,
			Type:         in.Type,
			Quantity:     in.Quantity,
			MovementDate: in.MovementDate,
			Note:         in.Note,
			ActorID:      in.ActorID,
		})
		if err != nil {
			return err
		}
		created = movement
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
