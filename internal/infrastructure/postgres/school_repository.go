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

var _ repository.SchoolRepository = (*SchoolRepo)(nil)

// SchoolRepo implementação de SchoolRepository sobre PostgreSQL.
type SchoolRepo struct {
	q Querier
}

// NewSchoolRepository constrói o adaptador. Aceita pool ou tx (Querier).
func NewSchoolRepository(q Querier) *SchoolRepo {
	return &SchoolRepo{q: q}
}

const schoolColumns = `id, name, address, city, is_active, public_slug, public_token, created_at, updated_at`

func scanSchool(row pgx.Row) (*entity.School, error) {
	var s entity.School
	err := row.Scan(&s.ID, &s.Name, &s.Address, &s.City, &s.IsActive, &s.PublicSlug, &s.PublicToken, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SchoolRepo) Create(school *entity.School) error {
	query := `
		INSERT INTO schools (id, name, address, city, is_active, public_slug, public_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		school.ID, school.Name, school.Address, school.City, school.IsActive,
		school.PublicSlug, school.PublicToken, school.CreatedAt, school.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create school: %w", err)
	}
	return nil
}

func (r *SchoolRepo) GetByID(id string) (*entity.School, error) {
	query := `SELECT ` + schoolColumns + ` FROM schools WHERE id = $1`
	s, err := scanSchool(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get school: %w", err)
	}
	return s, nil
}

func (r *SchoolRepo) GetBySlug(slug string) (*entity.School, error) {
	query := `SELECT ` + schoolColumns + ` FROM schools WHERE public_slug = $1`
	s, err := scanSchool(r.q.QueryRow(context.Background(), query, slug))
	if err != nil {
		return nil, fmt.Errorf("get school by slug: %w", err)
	}
	return s, nil
}

func (r *SchoolRepo) Update(school *entity.School) error {
	query := `
		UPDATE schools
		SET name = $2, address = $3, city = $4, is_active = $5, public_slug = $6, public_token = $7, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		school.ID, school.Name, school.Address, school.City, school.IsActive,
		school.PublicSlug, school.PublicToken,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update school: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SchoolRepo) List(query string, isActive *bool, limit, offset int) ([]*entity.School, error) {
	sql := `SELECT ` + schoolColumns + ` FROM schools WHERE 1=1`
	args := []any{}
	i := 1
	if query != "" {
		sql += fmt.Sprintf(" AND name ILIKE $%d", i)
		args = append(args, "%"+query+"%")
		i++
	}
	if isActive != nil {
		sql += fmt.Sprintf(" AND is_active = $%d", i)
		args = append(args, *isActive)
		i++
	}
	sql += fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", i, i+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list schools: %w", err)
	}
	defer rows.Close()
	var list []*entity.School
	for rows.Next() {
		var s entity.School
		if err := rows.Scan(&s.ID, &s.Name, &s.Address, &s.City, &s.IsActive, &s.PublicSlug, &s.PublicToken, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan school: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *SchoolRepo) SlugExists(slug, excludeID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM schools WHERE public_slug = $1 AND id <> $2)`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, slug, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("school slug exists: %w", err)
	}
	return exists, nil
}

func (r *SchoolRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM schools WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete school: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
