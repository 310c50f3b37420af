package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/semed-merenda/merenda-api/internal/application/dto"
	"github.com/semed-merenda/merenda-api/internal/domain"
	"github.com/semed-merenda/merenda-api/internal/domain/entity"
	"github.com/semed-merenda/merenda-api/internal/domain/repository"
)

// ReceiptUseCase CRUD de recebimentos de fornecedor. Início, cancelamento e
// submissão da conferência ficam no workflow transacional.
type ReceiptUseCase struct {
	receiptRepo  repository.SupplierReceiptRepository
	supplierRepo repository.SupplierRepository
	schoolRepo   repository.SchoolRepository
	supplyRepo   repository.SupplyRepository
}

// NewReceiptUseCase constrói o caso de uso.
func NewReceiptUseCase(
	receiptRepo repository.SupplierReceiptRepository,
	supplierRepo repository.SupplierRepository,
	schoolRepo repository.SchoolRepository,
	supplyRepo repository.SupplyRepository,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		receiptRepo:  receiptRepo,
		supplierRepo: supplierRepo,
		schoolRepo:   schoolRepo,
		supplyRepo:   supplyRepo,
	}
}

// Create cria um recebimento em DRAFT ou EXPECTED com seus itens.
func (uc *ReceiptUseCase) Create(in dto.CreateReceiptRequest, actorID string) (*dto.ReceiptResponse, error) {
	if in.SupplierID == "" {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	if in.SchoolID != "" {
		school, err := uc.schoolRepo.GetByID(in.SchoolID)
		if err != nil {
			return nil, err
		}
		if school == nil {
			return nil, domain.ErrNotFound
		}
	}

	status := in.Status
	if status == "" {
		status = entity.ReceiptStatusDraft
	}
	if status != entity.ReceiptStatusDraft && status != entity.ReceiptStatusExpected {
		return nil, domain.ErrInvalidInput
	}
	items, err := uc.buildItems(in.Items)
	if err != nil {
		return nil, err
	}

	expectedDate := in.ExpectedDate
	if expectedDate.IsZero() {
		expectedDate = time.Now()
	}
	receipt := &entity.SupplierReceipt{
		ID:           uuid.New().String(),
		SupplierID:   in.SupplierID,
		SchoolID:     in.SchoolID,
		ExpectedDate: expectedDate,
		Status:       status,
		Notes:        in.Notes,
		CreatedBy:    actorID,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	for i := range items {
		items[i].ReceiptID = receipt.ID
	}
	receipt.Items = items

	if err := uc.receiptRepo.Create(receipt); err != nil {
		return nil, err
	}
	resp := ToReceiptResponse(receipt)
	return &resp, nil
}

// Update edita um recebimento não terminal.
func (uc *ReceiptUseCase) Update(id string, in dto.UpdateReceiptRequest) (*dto.ReceiptResponse, error) {
	receipt, err := uc.receiptRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, domain.ErrNotFound
	}
	if entity.ReceiptStatusTerminal(receipt.Status) {
		return nil, domain.ErrTerminalStatus
	}

	if in.SchoolID != nil {
		if *in.SchoolID != "" {
			school, err := uc.schoolRepo.GetByID(*in.SchoolID)
			if err != nil {
				return nil, err
			}
			if school == nil {
				return nil, domain.ErrNotFound
			}
		}
		receipt.SchoolID = *in.SchoolID
	}
	if in.ExpectedDate != nil {
		receipt.ExpectedDate = *in.ExpectedDate
	}
	if in.Status != nil {
		// A transição livre via edição cobre apenas DRAFT <-> EXPECTED;
		// os demais estados passam pelo workflow de conferência.
		if *in.Status != entity.ReceiptStatusDraft && *in.Status != entity.ReceiptStatusExpected {
			return nil, domain.ErrInvalidInput
		}
		if receipt.Status == entity.ReceiptStatusInConference {
			return nil, domain.ErrConflict
		}
		receipt.Status = *in.Status
	}
	if in.Notes != nil {
		receipt.Notes = *in.Notes
	}
	receipt.UpdatedAt = time.Now()

	if in.Items != nil {
		items, err := uc.buildItems(in.Items)
		if err != nil {
			return nil, err
		}
		for i := range items {
			items[i].ReceiptID = receipt.ID
		}
		if err := uc.receiptRepo.ReplaceItems(receipt.ID, items); err != nil {
			return nil, err
		}
		receipt.Items = items
	}
	if err := uc.receiptRepo.Update(receipt); err != nil {
		return nil, err
	}
	resp := ToReceiptResponse(receipt)
	return &resp, nil
}

// Delete remove um recebimento ainda não terminal e sem conferência em curso.
func (uc *ReceiptUseCase) Delete(id string) error {
	receipt, err := uc.receiptRepo.GetByID(id)
	if err != nil {
		return err
	}
	if receipt == nil {
		return domain.ErrNotFound
	}
	if receipt.Status != entity.ReceiptStatusDraft && receipt.Status != entity.ReceiptStatusExpected {
		return domain.ErrConflict
	}
	return uc.receiptRepo.Delete(id)
}

// GetByID devolve o recebimento com itens.
func (uc *ReceiptUseCase) GetByID(id string) (*dto.ReceiptResponse, error) {
	receipt, err := uc.receiptRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, domain.ErrNotFound
	}
	resp := ToReceiptResponse(receipt)
	return &resp, nil
}

// List lista recebimentos com filtros e paginação.
func (uc *ReceiptUseCase) List(filter repository.ReceiptFilter, limit, offset int) ([]dto.ReceiptResponse, error) {
	list, err := uc.receiptRepo.List(filter, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReceiptResponse, 0, len(list))
	for _, r := range list {
		items = append(items, ToReceiptResponse(r))
	}
	return items, nil
}

// buildItems valida e materializa os itens: quantidade esperada não negativa
// (zero é válido: item bônus não planejado), insumo existente quando
// informado, descrição bruta quando não informado e unidade válida. Insumos
// do catálogo não se repetem no mesmo recebimento.
func (uc *ReceiptUseCase) buildItems(in []dto.ReceiptItemRequest) ([]entity.SupplierReceiptItem, error) {
	if len(in) == 0 {
		return nil, domain.ErrInvalidInput
	}
	seen := make(map[string]bool, len(in))
	items := make([]entity.SupplierReceiptItem, 0, len(in))
	for _, it := range in {
		if it.ExpectedQuantity.IsNegative() || !entity.ValidUnit(it.Unit) {
			return nil, domain.ErrInvalidInput
		}
		if it.SupplyID != "" {
			if seen[it.SupplyID] {
				return nil, domain.ErrDuplicate
			}
			seen[it.SupplyID] = true
			supply, err := uc.supplyRepo.GetByID(it.SupplyID)
			if err != nil {
				return nil, err
			}
			if supply == nil {
				return nil, domain.ErrNotFound
			}
		} else if it.RawName == "" && it.Category == "" {
			return nil, domain.ErrInvalidInput
		}
		items = append(items, entity.SupplierReceiptItem{
			ID:               uuid.New().String(),
			SupplyID:         it.SupplyID,
			RawName:          it.RawName,
			Category:         it.Category,
			Unit:             it.Unit,
			ExpectedQuantity: it.ExpectedQuantity,
			CreatedAt:        time.Now(),
		})
	}
	return items, nil
}

// ToReceiptResponse converte a entidade para o DTO de saída.
func ToReceiptResponse(r *entity.SupplierReceipt) dto.ReceiptResponse {
	items := make([]dto.ReceiptItemResponse, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, dto.ReceiptItemResponse{
			ID:               it.ID,
			SupplyID:         it.SupplyID,
			RawName:          it.RawName,
			Category:         it.Category,
			Unit:             it.Unit,
			ExpectedQuantity: it.ExpectedQuantity,
			ReceivedQuantity: it.ReceivedQuantity,
			DivergenceNote:   it.DivergenceNote,
			SupplyCreatedID:  it.SupplyCreatedID,
		})
	}
	return dto.ReceiptResponse{
		ID:                   r.ID,
		SupplierID:           r.SupplierID,
		SchoolID:             r.SchoolID,
		ExpectedDate:         r.ExpectedDate,
		Status:               r.Status,
		Notes:                r.Notes,
		SenderSignedBy:       r.SenderSignedBy,
		ReceiverSignedBy:     r.ReceiverSignedBy,
		ConferenceStartedAt:  r.ConferenceStartedAt,
		ConferenceFinishedAt: r.ConferenceFinishedAt,
		CreatedBy:            r.CreatedBy,
		CreatedAt:            r.CreatedAt,
		Items:                items,
	}
}
