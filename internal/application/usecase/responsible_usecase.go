package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/semed-merenda/merenda-api/internal/application/dto"
	"github.com/semed-merenda/merenda-api/internal/domain"
	"github.com/semed-merenda/merenda-api/internal/domain/entity"
	"github.com/semed-merenda/merenda-api/internal/domain/repository"
)

// ResponsibleUseCase CRUD de responsáveis por envio/recebimento de entregas.
type ResponsibleUseCase struct {
	responsibleRepo repository.ResponsibleRepository
}

// NewResponsibleUseCase constrói o caso de uso.
func NewResponsibleUseCase(responsibleRepo repository.ResponsibleRepository) *ResponsibleUseCase {
	return &ResponsibleUseCase{responsibleRepo: responsibleRepo}
}

// Create cria um responsável.
func (uc *ResponsibleUseCase) Create(in dto.ResponsibleRequest) (*dto.ResponsibleResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}
	responsible := &entity.Responsible{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Phone:     in.Phone,
		Position:  in.Position,
		IsActive:  isActive,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := uc.responsibleRepo.Create(responsible); err != nil {
		return nil, err
	}
	resp := toResponsibleResponse(responsible)
	return &resp, nil
}

// Update edita um responsável.
func (uc *ResponsibleUseCase) Update(id string, in dto.ResponsibleRequest) (*dto.ResponsibleResponse, error) {
	responsible, err := uc.responsibleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if responsible == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	responsible.Name = in.Name
	responsible.Phone = in.Phone
	responsible.Position = in.Position
	if in.IsActive != nil {
		responsible.IsActive = *in.IsActive
	}
	responsible.UpdatedAt = time.Now()
	if err := uc.responsibleRepo.Update(responsible); err != nil {
		return nil, err
	}
	resp := toResponsibleResponse(responsible)
	return &resp, nil
}

// List lista responsáveis por status.
func (uc *ResponsibleUseCase) List(isActive *bool, limit, offset int) ([]dto.ResponsibleResponse, error) {
	list, err := uc.responsibleRepo.List(isActive, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ResponsibleResponse, 0, len(list))
	for _, r := range list {
		items = append(items, toResponsibleResponse(r))
	}
	return items, nil
}

// Delete remove um responsável.
func (uc *ResponsibleUseCase) Delete(id string) error {
	responsible, err := uc.responsibleRepo.GetByID(id)
	if err != nil {
		return err
	}
	if responsible == nil {
		return domain.ErrNotFound
	}
	return uc.responsibleRepo.Delete(id)
}

func toResponsibleResponse(r *entity.Responsible) dto.ResponsibleResponse {
	return dto.ResponsibleResponse{
		ID:        r.ID,
		Name:      r.Name,
		Phone:     r.Phone,
		Position:  r.Position,
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
	}
}
