package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/semed-merenda/merenda-api/internal/application/dto"
	"github.com/semed-merenda/merenda-api/internal/domain"
	"github.com/semed-merenda/merenda-api/internal/domain/entity"
	"github.com/semed-merenda/merenda-api/internal/domain/repository"
)

// DeliveryUseCase CRUD de rascunhos de entrega. O envio e a conferência
// ficam no workflow transacional (application/inventory).
type DeliveryUseCase struct {
	deliveryRepo repository.DeliveryRepository
	schoolRepo   repository.SchoolRepository
	supplyRepo   repository.SupplyRepository

	// base do front público (PUBLIC_BASE_URL); vazio gera links relativos
	publicBaseURL string
}

// NewDeliveryUseCase constrói o caso de uso.
func NewDeliveryUseCase(
	deliveryRepo repository.DeliveryRepository,
	schoolRepo repository.SchoolRepository,
	supplyRepo repository.SupplyRepository,
	publicBaseURL string,
) *DeliveryUseCase {
	return &DeliveryUseCase{
		deliveryRepo:  deliveryRepo,
		schoolRepo:    schoolRepo,
		supplyRepo:    supplyRepo,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// Create cria uma entrega em DRAFT com seus itens.
func (uc *DeliveryUseCase) Create(in dto.CreateDeliveryRequest, actorID string) (*dto.DeliveryResponse, error) {
	if in.SchoolID == "" {
		return nil, domain.ErrInvalidInput
	}
	school, err := uc.schoolRepo.GetByID(in.SchoolID)
	if err != nil {
		return nil, err
	}
	if school == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.buildItems(in.Items)
	if err != nil {
		return nil, err
	}

	deliveryDate := in.DeliveryDate
	if deliveryDate.IsZero() {
		deliveryDate = time.Now()
	}
	delivery := &entity.Delivery{
		ID:               uuid.New().String(),
		SchoolID:         in.SchoolID,
		DeliveryDate:     deliveryDate,
		SenderID:         in.SenderID,
		ResponsibleName:  in.ResponsibleName,
		ResponsiblePhone: in.ResponsiblePhone,
		Notes:            in.Notes,
		Status:           entity.DeliveryStatusDraft,
		CreatedBy:        actorID,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	for i := range items {
		items[i].DeliveryID = delivery.ID
	}
	delivery.Items = items

	if err := uc.deliveryRepo.Create(delivery); err != nil {
		return nil, err
	}
	resp := ToDeliveryResponse(delivery)
	return &resp, nil
}

// Update edita uma entrega ainda em DRAFT; fora disso -> conflito.
func (uc *DeliveryUseCase) Update(id string, in dto.UpdateDeliveryRequest) (*dto.DeliveryResponse, error) {
	delivery, err := uc.deliveryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if delivery == nil {
		return nil, domain.ErrNotFound
	}
	if delivery.Status != entity.DeliveryStatusDraft {
		return nil, domain.ErrConflict
	}

	if in.DeliveryDate != nil {
		delivery.DeliveryDate = *in.DeliveryDate
	}
	if in.SenderID != nil {
		delivery.SenderID = *in.SenderID
	}
	if in.ResponsibleName != nil {
		delivery.ResponsibleName = *in.ResponsibleName
	}
	if in.ResponsiblePhone != nil {
		delivery.ResponsiblePhone = *in.ResponsiblePhone
	}
	if in.Notes != nil {
		delivery.Notes = *in.Notes
	}
	delivery.UpdatedAt = time.Now()

	if in.Items != nil {
		items, err := uc.buildItems(in.Items)
		if err != nil {
			return nil, err
		}
		for i := range items {
			items[i].DeliveryID = delivery.ID
		}
		if err := uc.deliveryRepo.ReplaceItems(delivery.ID, items); err != nil {
			return nil, err
		}
		delivery.Items = items
	}
	if err := uc.deliveryRepo.Update(delivery); err != nil {
		return nil, err
	}
	resp := ToDeliveryResponse(delivery)
	return &resp, nil
}

// Delete remove uma entrega ainda em DRAFT; fora disso -> conflito.
func (uc *DeliveryUseCase) Delete(id string) error {
	delivery, err := uc.deliveryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if delivery == nil {
		return domain.ErrNotFound
	}
	if delivery.Status != entity.DeliveryStatusDraft {
		return domain.ErrConflict
	}
	return uc.deliveryRepo.Delete(id)
}

// GetByID devolve a entrega com itens.
func (uc *DeliveryUseCase) GetByID(id string) (*dto.DeliveryResponse, error) {
	delivery, err := uc.deliveryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if delivery == nil {
		return nil, domain.ErrNotFound
	}
	resp := ToDeliveryResponse(delivery)
	return &resp, nil
}

// List lista entregas com filtros e paginação.
func (uc *DeliveryUseCase) List(filter repository.DeliveryFilter, limit, offset int) ([]dto.DeliveryResponse, error) {
	list, err := uc.deliveryRepo.List(filter, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DeliveryResponse, 0, len(list))
	for _, d := range list {
		items = append(items, ToDeliveryResponse(d))
	}
	return items, nil
}

// ConferenceLink monta o link público de conferência de uma entrega enviada.
func (uc *DeliveryUseCase) ConferenceLink(id string) (*dto.ConferenceLinkResponse, error) {
	delivery, err := uc.deliveryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if delivery == nil {
		return nil, domain.ErrNotFound
	}
	if delivery.Status == entity.DeliveryStatusDraft {
		return nil, domain.ErrConflict
	}
	school, err := uc.schoolRepo.GetByID(delivery.SchoolID)
	if err != nil {
		return nil, err
	}
	if school == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.ConferenceLinkResponse{
		Slug:       school.PublicSlug,
		Token:      school.PublicToken,
		DeliveryID: delivery.ID,
		URL:        fmt.Sprintf("%s/escola/%s/%s/conferencia?delivery_id=%s", uc.publicBaseURL, school.PublicSlug, school.PublicToken, delivery.ID),
		APIURL:     fmt.Sprintf("%s/public/schools/%s/%s/deliveries/current?delivery_id=%s", uc.publicBaseURL, school.PublicSlug, school.PublicToken, delivery.ID),
	}, nil
}

// buildItems valida e materializa os itens: lista não vazia, insumos
// existentes e distintos, quantidades positivas.
func (uc *DeliveryUseCase) buildItems(in []dto.DeliveryItemRequest) ([]entity.DeliveryItem, error) {
	if len(in) == 0 {
		return nil, domain.ErrInvalidInput
	}
	seen := make(map[string]bool, len(in))
	items := make([]entity.DeliveryItem, 0, len(in))
	for _, it := range in {
		if it.SupplyID == "" || !it.PlannedQuantity.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
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
		items = append(items, entity.DeliveryItem{
			ID:              uuid.New().String(),
			SupplyID:        it.SupplyID,
			PlannedQuantity: it.PlannedQuantity,
			CreatedAt:       time.Now(),
		})
	}
	return items, nil
}

// ToDeliveryResponse converte a entidade para o DTO de saída.
func ToDeliveryResponse(d *entity.Delivery) dto.DeliveryResponse {
	items := make([]dto.DeliveryItemResponse, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, dto.DeliveryItemResponse{
			ID:               it.ID,
			SupplyID:         it.SupplyID,
			PlannedQuantity:  it.PlannedQuantity,
			ReceivedQuantity: it.ReceivedQuantity,
			ShortageQuantity: it.ShortageQuantity(),
			DivergenceNote:   it.DivergenceNote,
		})
	}
	return dto.DeliveryResponse{
		ID:                d.ID,
		SchoolID:          d.SchoolID,
		DeliveryDate:      d.DeliveryDate,
		SenderID:          d.SenderID,
		Notes:             d.Notes,
		Status:            d.Status,
		ConferenceEnabled: d.ConferenceEnabled,
		SentAt:            d.SentAt,
		ConferenceAt:      d.ConferenceAt,
		SenderSignedBy:    d.SenderSignedBy,
		ReceiverSignedBy:  d.ReceiverSignedBy,
		CreatedBy:         d.CreatedBy,
		CreatedAt:         d.CreatedAt,
		Items:             items,
	}
}
