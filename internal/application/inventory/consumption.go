package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/semed-merenda/merenda-api/internal/domain"
	"github.com/semed-merenda/merenda-api/internal/domain/entity"
	"github.com/semed-merenda/merenda-api/internal/domain/repository"
)

// ConsumptionItemInput é um consumo de insumo informado pela escola.
type ConsumptionItemInput struct {
	SupplyID     string
	Quantity     decimal.Decimal
	MovementDate time.Time
	Note         string
}

// ConsumptionUseCase registra o consumo direto de uma escola (saídas do saldo
// escolar via portal público), com alerta em lote de estoque baixo.
type ConsumptionUseCase struct {
	txRunner   TxRunner
	schoolRepo repository.SchoolRepository
}

// NewConsumptionUseCase constrói o caso de uso.
func NewConsumptionUseCase(txRunner TxRunner, schoolRepo repository.SchoolRepository) *ConsumptionUseCase {
	return &ConsumptionUseCase{txRunner: txRunner, schoolRepo: schoolRepo}
}

// Record debita o saldo da escola para cada item e lança as saídas no razão,
// tudo em uma única transação. actorID vem resolvido pelo chamador (o portal
// público não tem usuário autenticado). Depois das mutações, itens abaixo do
// mínimo efetivo geram um único alerta de estoque baixo para a escola.
func (uc *ConsumptionUseCase) Record(ctx context.Context, schoolID, actorID string, items []ConsumptionItemInput) error {
	if schoolID == "" || actorID == "" || len(items) == 0 {
		return domain.ErrInvalidInput
	}
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item.SupplyID == "" || !item.Quantity.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
		if _, dup := seen[item.SupplyID]; dup {
			return domain.ErrInvalidInput
		}
		seen[item.SupplyID] = struct{}{}
	}

	school, err := uc.schoolRepo.GetByID(schoolID)
	if err != nil {
		return err
	}
	if school == nil {
		return domain.ErrNotFound
	}

	return uc.txRunner.Run(ctx, func(r TxRepos) error {
		var lowStock []lowStockItem
		for _, item := range items {
			supply, err := r.Supplies.GetByID(item.SupplyID)
			if err != nil {
				return err
			}
			if supply == nil {
				return domain.ErrNotFound
			}
			date := item.MovementDate
			if date.IsZero() {
				date = time.Now()
			}
			balance, _, err := applyMovement(r, movementInput{
				Supply:       supply,
				Scope:        entity.SchoolScope(school.ID),
				Type:         entity.MovementTypeOUT,
				Quantity:     item.Quantity,
				MovementDate: date,
				Note:         item.Note,
				ActorID:      actorID,
			})
			if err != nil {
				return err
			}
			lowStock = collectLowStock(lowStock, balance, supply)
		}
		return notifyLowStock(r, school, lowStock)
	})
}
