package repository

import "github.com/semed-merenda/merenda-api/internal/domain/entity"

// SupplyFilter filtros de listagem do catálogo.
type SupplyFilter struct {
	Query    string // busca parcial por nome
	Category string
	IsActive *bool
}

// SupplyRepository define a porta de persistência do catálogo de insumos (DIP).
type SupplyRepository interface {
	Create(supply *entity.Supply) error
	GetByID(id string) (*entity.Supply, error)
	Update(supply *entity.Supply) error
	List(filter SupplyFilter, limit, offset int) ([]*entity.Supply, error)
	// FindByNameCategoryUnit casa um insumo por igualdade exata case-insensitive
	// em (nome, categoria, unidade). Usado pela conferência de recebimentos.
	FindByNameCategoryUnit(name, category, unit string) (*entity.Supply, error)
	// HasMovements indica se o insumo já foi referenciado pelo razão
	// (protect-on-delete).
	HasMovements(id string) (bool, error)
	Delete(id string) error
}
