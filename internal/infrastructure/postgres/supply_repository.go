package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/semed-merenda/merenda-api/internal/domain"
	"github.com/semed-merenda/merenda-api/internal/domain/entity"
	"github.com/semed-merenda/merenda-api/internal/domain/repository"
)

var _ repository.SupplyRepository = (*SupplyRepo)(nil)

// SupplyRepo implementação de SupplyRepository sobre PostgreSQL.
type SupplyRepo struct {
	q Querier
}

// NewSupplyRepository constrói o adaptador. Aceita pool ou tx (Querier).
func NewSupplyRepository(q Querier) *SupplyRepo {
	return &SupplyRepo{q: q}
}

const supplyColumns = `id, name, category, unit, min_stock, is_active, created_at, updated_at`

func scanSupply(row pgx.Row) (*entity.Supply, error) {
	var s entity.Supply
	err := row.Scan(&s.ID, &s.Name, &s.Category, &s.Unit, &s.MinStock, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SupplyRepo) Create(supply *entity.Supply) error {
	query := `
		INSERT INTO supplies (id, name, category, unit, min_stock, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		supply.ID, supply.Name, supply.Category, supply.Unit,
		supply.MinStock, supply.IsActive, supply.CreatedAt, supply.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create supply: %w", err)
	}
	return nil
}

func (r *SupplyRepo) GetByID(id string) (*entity.Supply, error) {
	query := `SELECT ` + supplyColumns + ` FROM supplies WHERE id = $1`
	s, err := scanSupply(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get supply: %w", err)
	}
	return s, nil
}

func (r *SupplyRepo) Update(supply *entity.Supply) error {
	query := `
		UPDATE supplies
		SET name = $2, category = $3, unit = $4, min_stock = $5, is_active = $6, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		supply.ID, supply.Name, supply.Category, supply.Unit, supply.MinStock, supply.IsActive,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update supply: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SupplyRepo) List(filter repository.SupplyFilter, limit, offset int) ([]*entity.Supply, error) {
	query := `SELECT ` + supplyColumns + ` FROM supplies WHERE 1=1`
	args := []any{}
	i := 1
	if filter.Query != "" {
		query += fmt.Sprintf(" AND name ILIKE $%d", i)
		args = append(args, "%"+filter.Query+"%")
		i++
	}
	if filter.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", i)
		args = append(args, filter.Category)
		i++
	}
	if filter.IsActive != nil {
		query += fmt.Sprintf(" AND is_active = $%d", i)
		args = append(args, *filter.IsActive)
		i++
	}
	query += fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", i, i+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list supplies: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supply
	for rows.Next() {
		var s entity.Supply
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.Unit, &s.MinStock, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supply: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *SupplyRepo) FindByNameCategoryUnit(name, category, unit string) (*entity.Supply, error) {
	query := `
		SELECT ` + supplyColumns + `
		FROM supplies
		WHERE lower(name) = lower($1) AND lower(category) = lower($2) AND unit = $3
		LIMIT 1`
	s, err := scanSupply(r.q.QueryRow(context.Background(), query, name, category, unit))
	if err != nil {
		return nil, fmt.Errorf("find supply by name/category/unit: %w", err)
	}
	return s, nil
}

func (r *SupplyRepo) HasMovements(id string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM stock_movements WHERE supply_id = $1)`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("supply has movements: %w", err)
	}
	return exists, nil
}

func (r *SupplyRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM supplies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete supply: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
