package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/semed-merenda/merenda-api/internal/application/dto"
	"github.com/semed-merenda/merenda-api/internal/domain"
	"github.com/semed-merenda/merenda-api/internal/domain/entity"
	"github.com/semed-merenda/merenda-api/internal/domain/repository"
)

// SupplyUseCase casos de uso CRUD do catálogo de insumos.
type SupplyUseCase struct {
	repo        repository.SupplyRepository
	balanceRepo repository.StockBalanceRepository
}

// NewSupplyUseCase constrói o caso de uso.
func NewSupplyUseCase(repo repository.SupplyRepository, balanceRepo repository.StockBalanceRepository) *SupplyUseCase {
	return &SupplyUseCase{repo: repo, balanceRepo: balanceRepo}
}

// Create cria um insumo e semeia seu saldo central zerado (get-or-create).
func (uc *SupplyUseCase) Create(in dto.CreateSupplyRequest) (*dto.SupplyResponse, error) {
	if in.Name == "" || !entity.ValidUnit(in.Unit) || in.MinStock.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	supply := &entity.Supply{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Category:  in.Category,
		Unit:      in.Unit,
		MinStock:  in.MinStock,
		IsActive:  active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(supply); err != nil {
		return nil, err
	}
	if err := uc.balanceRepo.Upsert(&entity.StockBalance{
		SupplyID:  supply.ID,
		Scope:     entity.CentralScope(),
		Quantity:  decimal.Zero,
		UpdatedAt: now,
	}); err != nil {
		return nil, err
	}
	return toSupplyResponse(supply), nil
}

// GetByID obtém um insumo.
func (uc *SupplyUseCase) GetByID(id string) (*dto.SupplyResponse, error) {
	supply, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supply == nil {
		return nil, nil
	}
	return toSupplyResponse(supply), nil
}

// Update atualiza atributos mutáveis de um insumo (a identidade é imutável).
func (uc *SupplyUseCase) Update(id string, in dto.UpdateSupplyRequest) (*dto.SupplyResponse, error) {
	supply, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supply == nil {
		return nil, nil
	}
	if in.Name != nil {
		supply.Name = *in.Name
	}
	if in.Category != nil {
		supply.Category = *in.Category
	}
	if in.Unit != nil {
		if !entity.ValidUnit(*in.Unit) {
			return nil, domain.ErrInvalidInput
		}
		supply.Unit = *in.Unit
	}
	if in.MinStock != nil {
		if in.MinStock.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		supply.MinStock = *in.MinStock
	}
	if in.IsActive != nil {
		supply.IsActive = *in.IsActive
	}
	supply.UpdatedAt = time.Now()
	if err := uc.repo.Update(supply); err != nil {
		return nil, err
	}
	return toSupplyResponse(supply), nil
}

// List lista insumos com filtros.
func (uc *SupplyUseCase) List(filter repository.SupplyFilter, limit, offset int) ([]dto.SupplyResponse, error) {
	list, err := uc.repo.List(filter, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplyResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplyResponse(s))
	}
	return items, nil
}

// Delete exclui um insumo; protegido quando já referenciado pelo razão.
func (uc *SupplyUseCase) Delete(id string) error {
	supply, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if supply == nil {
		return domain.ErrNotFound
	}
	referenced, err := uc.repo.HasMovements(id)
	if err != nil {
		return err
	}
	if referenced {
		return domain.ErrProtected
	}
	return uc.repo.Delete(id)
}

func toSupplyResponse(s *entity.Supply) *dto.SupplyResponse {
	return &dto.SupplyResponse{
		ID:        s.ID,
		Name:      s.Name,
		Category:  s.Category,
		Unit:      s.Unit,
		MinStock:  s.MinStock,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
