package usecase

import (
	"github.com/semed-merenda/merenda-api/internal/application/dto"
	"github.com/semed-merenda/merenda-api/internal/domain"
	"github.com/semed-merenda/merenda-api/internal/domain/inventory"
	"github.com/semed-merenda/merenda-api/internal/domain/repository"
)

// StockUseCase consultas de saldo (central e por escola), razão e limites
// mínimos escolares. As mutações ficam nos workflows transacionais.
type StockUseCase struct {
	balanceRepo  repository.StockBalanceRepository
	movementRepo repository.StockMovementRepository
	schoolRepo   repository.SchoolRepository
	supplyRepo   repository.SupplyRepository
}

// NewStockUseCase constrói o caso de uso.
func NewStockUseCase(
	balanceRepo repository.StockBalanceRepository,
	movementRepo repository.StockMovementRepository,
	schoolRepo repository.SchoolRepository,
	supplyRepo repository.SupplyRepository,
) *StockUseCase {
	return &StockUseCase{
		balanceRepo:  balanceRepo,
		movementRepo: movementRepo,
		schoolRepo:   schoolRepo,
		supplyRepo:   supplyRepo,
	}
}

// ListCentral lista os saldos centrais com o status derivado.
func (uc *StockUseCase) ListCentral(filter repository.StockBalanceFilter, limit, offset int) ([]dto.StockBalanceResponse, error) {
	rows, err := uc.balanceRepo.ListCentral(filter, limit, offset)
	if err != nil {
		return nil, err
	}
	return toStockResponses(rows), nil
}

// ListBySchool lista os saldos de uma escola com o status derivado.
func (uc *StockUseCase) ListBySchool(schoolID string) ([]dto.StockBalanceResponse, error) {
	school, err := uc.schoolRepo.GetByID(schoolID)
	if err != nil {
		return nil, err
	}
	if school == nil {
		return nil, domain.ErrNotFound
	}
	rows, err := uc.balanceRepo.ListBySchool(schoolID)
	if err != nil {
		return nil, err
	}
	return toStockResponses(rows), nil
}

// SetSchoolMinStock define o limite mínimo próprio de uma escola para um insumo.
func (uc *StockUseCase) SetSchoolMinStock(schoolID string, in dto.SchoolStockLimitRequest) error {
	if in.SupplyID == "" || in.MinStock.IsNegative() {
		return domain.ErrInvalidInput
	}
	school, err := uc.schoolRepo.GetByID(schoolID)
	if err != nil {
		return err
	}
	if school == nil {
		return domain.ErrNotFound
	}
	supply, err := uc.supplyRepo.GetByID(in.SupplyID)
	if err != nil {
		return err
	}
	if supply == nil {
		return domain.ErrNotFound
	}
	return uc.balanceRepo.SetSchoolMinStock(schoolID, in.SupplyID, in.MinStock)
}

// ListMovements lista o razão com filtros.
func (uc *StockUseCase) ListMovements(filter repository.MovementFilter, limit, offset int) ([]dto.StockMovementResponse, error) {
	list, err := uc.movementRepo.List(filter, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.StockMovementResponse{
			ID:           m.ID,
			SupplyID:     m.SupplyID,
			SchoolID:     m.Scope.SchoolID(),
			Type:         m.Type,
			Quantity:     m.Quantity,
			MovementDate: m.MovementDate,
			Note:         m.Note,
			CreatedBy:    m.CreatedBy,
			CreatedAt:    m.CreatedAt,
		})
	}
	return items, nil
}

func toStockResponses(rows []*repository.StockRow) []dto.StockBalanceResponse {
	items := make([]dto.StockBalanceResponse, 0, len(rows))
	for _, row := range rows {
		min := inventory.EffectiveMinStock(&row.Balance, &row.Supply)
		items = append(items, dto.StockBalanceResponse{
			SupplyID:   row.Supply.ID,
			SupplyName: row.Supply.Name,
			Category:   row.Supply.Category,
			Unit:       row.Supply.Unit,
			SchoolID:   row.Balance.Scope.SchoolID(),
			Quantity:   row.Balance.Quantity,
			MinStock:   min,
			Status:     inventory.StockStatus(row.Balance.Quantity, min),
			UpdatedAt:  row.Balance.UpdatedAt,
		})
	}
	return items
}

// LowStockOnly filtra as respostas já montadas para apenas as abaixo do mínimo.
func LowStockOnly(items []dto.StockBalanceResponse) []dto.StockBalanceResponse {
	out := make([]dto.StockBalanceResponse, 0, len(items))
	for _, item := range items {
		if item.Quantity.LessThan(item.MinStock) {
			out = append(out, item)
		}
	}
	return out
}
