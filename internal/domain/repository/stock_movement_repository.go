package repository

import (
	"time"

	"github.com/semed-merenda/merenda-api/internal/domain/entity"
)

// MovementFilter filtros de listagem do razão.
type MovementFilter struct {
	DateFrom *time.Time
	DateTo   *time.Time
	Type     string
	SupplyID string
	SchoolID string
}

// StockMovementRepository define a porta de persistência do razão de estoque.
// O razão é append-only: não há Update nem Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	List(filter MovementFilter, limit, offset int) ([]*entity.StockMovement, error)
	// LatestCreatorForSchool devolve o created_by do movimento mais recente da
	// escola ("" se não houver). Usado na atribuição de ator do portal público.
	LatestCreatorForSchool(schoolID string) (string, error)
}
