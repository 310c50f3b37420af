package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/semed-merenda/merenda-api/internal/domain"
	"github.com/semed-merenda/merenda-api/internal/domain/entity"
	"github.com/semed-merenda/merenda-api/internal/domain/repository"
)

// ReceiptWorkflowUseCase implementa a máquina de estados do recebimento de
// fornecedor: DRAFT -> EXPECTED -> IN_CONFERENCE -> CONFERRED, com CANCELLED
// como terminal alternativo. Diferente da entrega, o recebimento só adiciona
// estoque e pode estender o catálogo dinamicamente.
type ReceiptWorkflowUseCase struct {
	txRunner   TxRunner
	schoolRepo repository.SchoolRepository
}

// NewReceiptWorkflowUseCase constrói o caso de uso.
func NewReceiptWorkflowUseCase(txRunner TxRunner, schoolRepo repository.SchoolRepository) *ReceiptWorkflowUseCase {
	return &ReceiptWorkflowUseCase{txRunner: txRunner, schoolRepo: schoolRepo}
}

// StartConference marca o recebimento como IN_CONFERENCE e carimba o início.
// Idempotente se já estiver em conferência; rejeita status terminal.
func (uc *ReceiptWorkflowUseCase) StartConference(ctx context.Context, receiptID string) (*entity.SupplierReceipt, error) {
	var started *entity.SupplierReceipt
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		receipt, err := r.Receipts.GetForUpdate(receiptID)
		if err != nil {
			return err
		}
		if receipt == nil {
			return domain.ErrNotFound
		}
		if entity.ReceiptStatusTerminal(receipt.Status) {
			return domain.ErrTerminalStatus
		}
		if receipt.Status != entity.ReceiptStatusInConference {
			now := time.Now()
			receipt.Status = entity.ReceiptStatusInConference
			receipt.ConferenceStartedAt = &now
			receipt.UpdatedAt = now
			if err := r.Receipts.Update(receipt); err != nil {
				return err
			}
		}
		started = receipt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return started, nil
}

// Cancel marca o recebimento como CANCELLED. Alcançável de qualquer estado não
// terminal; nenhum saldo é alterado.
func (uc *ReceiptWorkflowUseCase) Cancel(ctx context.Context, receiptID string) (*entity.SupplierReceipt, error) {
	var cancelled *entity.SupplierReceipt
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		receipt, err := r.Receipts.GetForUpdate(receiptID)
		if err != nil {
			return err
		}
		if receipt == nil {
			return domain.ErrNotFound
		}
		if entity.ReceiptStatusTerminal(receipt.Status) {
			return domain.ErrTerminalStatus
		}
		receipt.Status = entity.ReceiptStatusCancelled
		receipt.UpdatedAt = time.Now()
		if err := r.Receipts.Update(receipt); err != nil {
			return err
		}
		cancelled = receipt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

// SubmitConference registra a conferência do recebimento: resolve (ou cria) o
// insumo de cada item, credita o saldo alvo (escola do recebimento ou central)
// pelo recebido e lança a entrada no razão. O conjunto de itens do payload deve
// casar exatamente com o do recebimento. Tudo em uma única transação.
func (uc *ReceiptWorkflowUseCase) SubmitConference(ctx context.Context, receiptID string, in ConferenceInput) (*entity.SupplierReceipt, error) {
	senderName, receiverName, err := in.validate()
	if err != nil {
		return nil, err
	}

	var conferred *entity.SupplierReceipt
	err = uc.txRunner.Run(ctx, func(r TxRepos) error {
		receipt, err := r.Receipts.GetForUpdate(receiptID)
		if err != nil {
			return err
		}
		if receipt == nil {
			return domain.ErrNotFound
		}
		if entity.ReceiptStatusTerminal(receipt.Status) {
			return domain.ErrTerminalStatus
		}

		scope := entity.CentralScope()
		var school *entity.School
		if receipt.SchoolID != "" {
			school, err = uc.schoolRepo.GetByID(receipt.SchoolID)
			if err != nil {
				return err
			}
			if school == nil {
				return domain.ErrNotFound
			}
			scope = entity.SchoolScope(school.ID)
		}

		byID := make(map[string]*entity.SupplierReceiptItem, len(receipt.Items))
		for i := range receipt.Items {
			byID[receipt.Items[i].ID] = &receipt.Items[i]
		}
		if len(in.Items) != len(byID) {
			return domain.ErrItemMismatch
		}
		for _, entry := range in.Items {
			if _, ok := byID[entry.ItemID]; !ok {
				return domain.ErrItemMismatch
			}
		}

		var lowStock []lowStockItem
		for _, entry := range in.Items {
			item := byID[entry.ItemID]
			supply, err := uc.resolveSupply(r, item)
			if err != nil {
				return err
			}

			received := entry.ReceivedQuantity
			item.SupplyID = supply.ID
			item.ReceivedQuantity = &received
			item.DivergenceNote = entry.Note
			if err := r.Receipts.UpdateItemConference(item); err != nil {
				return err
			}

			if !received.IsPositive() {
				continue
			}
			balance, _, err := applyMovement(r, movementInput{
				Supply:       supply,
				Scope:        scope,
				Type:         entity.MovementTypeIN,
				Quantity:     received,
				MovementDate: receipt.ExpectedDate,
				Note:         fmt.Sprintf("Entrada confirmada do recebimento %s.", receipt.ID),
				ActorID:      receipt.CreatedBy,
			})
			if err != nil {
				return err
			}
			if school != nil {
				lowStock = collectLowStock(lowStock, balance, supply)
			}
		}

		now := time.Now()
		receipt.Status = entity.ReceiptStatusConferred
		receipt.ConferenceFinishedAt = &now
		if receipt.ConferenceStartedAt == nil {
			receipt.ConferenceStartedAt = &now
		}
		receipt.SenderSignature = in.SenderSignature
		receipt.SenderSignedBy = senderName
		receipt.ReceiverSignature = in.ReceiverSignature
		receipt.ReceiverSignedBy = receiverName
		receipt.UpdatedAt = now
		if err := r.Receipts.Update(receipt); err != nil {
			return err
		}

		if school != nil {
			if err := notifyLowStock(r, school, lowStock); err != nil {
				return err
			}
		}
		conferred = receipt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return conferred, nil
}

// resolveSupply devolve o insumo do item: o já referenciado, um existente que
// case por (nome, categoria, unidade) case-insensitive, ou um novo criado com
// min_stock zero. O insumo criado fica registrado em SupplyCreatedID.
func (uc *ReceiptWorkflowUseCase) resolveSupply(r TxRepos, item *entity.SupplierReceiptItem) (*entity.Supply, error) {
	if item.SupplyID != "" {
		supply, err := r.Supplies.GetByID(item.SupplyID)
		if err != nil {
			return nil, err
		}
		if supply == nil {
			return nil, domain.ErrNotFound
		}
		return supply, nil
	}
	if item.RawName == "" && item.Category == "" {
		return nil, domain.ErrUnresolvableItem
	}

	existing, err := r.Supplies.FindByNameCategoryUnit(item.RawName, item.Category, item.Unit)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		item.SupplyCreatedID = existing.ID
		return existing, nil
	}

	now := time.Now()
	supply := &entity.Supply{
		ID:        uuid.New().String(),
		Name:      item.RawName,
		Category:  item.Category,
		Unit:      item.Unit,
		MinStock:  decimal.Zero,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.Supplies.Create(supply); err != nil {
		return nil, err
	}
	item.SupplyCreatedID = supply.ID
	return supply, nil
}
