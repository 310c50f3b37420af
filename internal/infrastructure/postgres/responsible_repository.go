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

var _ repository.ResponsibleRepository = (*ResponsibleRepo)(nil)

// ResponsibleRepo implementação de ResponsibleRepository sobre PostgreSQL.
type ResponsibleRepo struct {
	q Querier
}

// NewResponsibleRepository constrói o adaptador. Aceita pool ou tx (Querier).
func NewResponsibleRepository(q Querier) *ResponsibleRepo {
	return &ResponsibleRepo{q: q}
}

const responsibleColumns = `id, name, phone, position, is_active, created_at, updated_at`

func (r *ResponsibleRepo) Create(responsible *entity.Responsible) error {
	query := `
		INSERT INTO responsibles (` + responsibleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		responsible.ID, responsible.Name, responsible.Phone, responsible.Position,
		responsible.IsActive, responsible.CreatedAt, responsible.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create responsible: %w", err)
	}
	return nil
}

func (r *ResponsibleRepo) GetByID(id string) (*entity.Responsible, error) {
	query := `SELECT ` + responsibleColumns + ` FROM responsibles WHERE id = $1`
	var res entity.Responsible
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&res.ID, &res.Name, &res.Phone, &res.Position, &res.IsActive, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get responsible: %w", err)
	}
	return &res, nil
}

func (r *ResponsibleRepo) Update(responsible *entity.Responsible) error {
	query := `
		UPDATE responsibles
		SET name = $2, phone = $3, position = $4, is_active = $5, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		responsible.ID, responsible.Name, responsible.Phone, responsible.Position, responsible.IsActive,
	)
	if err != nil {
		return fmt.Errorf("update responsible: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ResponsibleRepo) List(isActive *bool, limit, offset int) ([]*entity.Responsible, error) {
	query := `SELECT ` + responsibleColumns + ` FROM responsibles WHERE 1=1`
	args := []any{}
	i := 1
	if isActive != nil {
		query += fmt.Sprintf(" AND is_active = $%d", i)
		args = append(args, *isActive)
		i++
	}
	query += fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", i, i+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list responsibles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Responsible
	for rows.Next() {
		var res entity.Responsible
		if err := rows.Scan(&res.ID, &res.Name, &res.Phone, &res.Position, &res.IsActive, &res.CreatedAt, &res.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan responsible: %w", err)
		}
		list = append(list, &res)
	}
	return list, rows.Err()
}

func (r *ResponsibleRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM responsibles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete responsible: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
