package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/semed-merenda/merenda-api/internal/domain/entity"
	"github.com/semed-merenda/merenda-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementação de StockMovementRepository sobre PostgreSQL.
// school_id NULL representa o escopo central.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository constrói o adaptador. Aceita pool ou tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

func scopeSchoolID(scope entity.StockScope) any {
	if scope.IsCentral() {
		return nil
	}
	return scope.SchoolID()
}

func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, supply_id, school_id, movement_type, quantity, movement_date, note, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.SupplyID, scopeSchoolID(movement.Scope),
		movement.Type, movement.Quantity, movement.MovementDate,
		movement.Note, movement.CreatedBy, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	query := `
		SELECT id, supply_id, school_id, movement_type, quantity, movement_date, note, created_by, created_at
		FROM stock_movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return m, nil
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var (
		m        entity.StockMovement
		schoolID *string
	)
	err := row.Scan(&m.ID, &m.SupplyID, &schoolID, &m.Type, &m.Quantity, &m.MovementDate, &m.Note, &m.CreatedBy, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if schoolID != nil {
		m.Scope = entity.SchoolScope(*schoolID)
	} else {
		m.Scope = entity.CentralScope()
	}
	return &m, nil
}

func (r *StockMovementRepo) List(filter repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, supply_id, school_id, movement_type, quantity, movement_date, note, created_by, created_at
		FROM stock_movements WHERE 1=1`
	args := []any{}
	i := 1
	if filter.DateFrom != nil {
		query += fmt.Sprintf(" AND movement_date >= $%d", i)
		args = append(args, *filter.DateFrom)
		i++
	}
	if filter.DateTo != nil {
		query += fmt.Sprintf(" AND movement_date <= $%d", i)
		args = append(args, *filter.DateTo)
		i++
	}
	if filter.Type != "" {
		query += fmt.Sprintf(" AND movement_type = $%d", i)
		args = append(args, filter.Type)
		i++
	}
	if filter.SupplyID != "" {
		query += fmt.Sprintf(" AND supply_id = $%d", i)
		args = append(args, filter.SupplyID)
		i++
	}
	if filter.SchoolID != "" {
		query += fmt.Sprintf(" AND school_id = $%d", i)
		args = append(args, filter.SchoolID)
		i++
	}
	query += fmt.Sprintf(" ORDER BY movement_date DESC, created_at DESC LIMIT $%d OFFSET $%d", i, i+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var (
			m        entity.StockMovement
			schoolID *string
		)
		if err := rows.Scan(&m.ID, &m.SupplyID, &schoolID, &m.Type, &m.Quantity, &m.MovementDate, &m.Note, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		if schoolID != nil {
			m.Scope = entity.SchoolScope(*schoolID)
		} else {
			m.Scope = entity.CentralScope()
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

func (r *StockMovementRepo) LatestCreatorForSchool(schoolID string) (string, error) {
	query := `
		SELECT created_by FROM stock_movements
		WHERE school_id = $1 AND created_by <> ''
		ORDER BY created_at DESC LIMIT 1`
	var createdBy string
	err := r.q.QueryRow(context.Background(), query, schoolID).Scan(&createdBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("latest movement creator: %w", err)
	}
	return createdBy, nil
}
