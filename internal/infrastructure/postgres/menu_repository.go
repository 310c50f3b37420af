package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/semed-merenda/merenda-api/internal/domain"
	"github.com/semed-merenda/merenda-api/internal/domain/entity"
	"github.com/semed-merenda/merenda-api/internal/domain/repository"
)

var _ repository.MenuRepository = (*MenuRepo)(nil)

// MenuRepo implementação de MenuRepository sobre PostgreSQL.
type MenuRepo struct {
	q Querier
}

// NewMenuRepository constrói o adaptador. Aceita pool ou tx (Querier).
func NewMenuRepository(q Querier) *MenuRepo {
	return &MenuRepo{q: q}
}

const menuColumns = `id, school_id, name, week_start, week_end, status, notes, created_by, published_at, created_at, updated_at`

func (r *MenuRepo) Create(menu *entity.Menu) error {
	ctx := context.Background()
	query := `
		INSERT INTO menus (` + menuColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		menu.ID, menu.SchoolID, menu.Name, menu.WeekStart, menu.WeekEnd,
		menu.Status, menu.Notes, menu.CreatedBy, menu.PublishedAt, menu.CreatedAt, menu.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create menu: %w", err)
	}
	return r.insertItems(ctx, menu.ID, menu.Items)
}

func (r *MenuRepo) insertItems(ctx context.Context, menuID string, items []entity.MenuItem) error {
	for _, it := range items {
		query := `
			INSERT INTO menu_items (id, menu_id, day_of_week, meal_type, meal_name, portion_text, image_url, image_data, description, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
		_, err := r.q.Exec(ctx, query,
			it.ID, menuID, it.DayOfWeek, it.MealType, it.MealName,
			it.PortionText, it.ImageURL, it.ImageData, it.Description, it.CreatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert menu item: %w", err)
		}
	}
	return nil
}

func (r *MenuRepo) GetByID(id string) (*entity.Menu, error) {
	ctx := context.Background()
	query := `SELECT ` + menuColumns + ` FROM menus WHERE id = $1`
	return r.scanOne(ctx, r.q.QueryRow(ctx, query, id))
}

func (r *MenuRepo) scanOne(ctx context.Context, row pgx.Row) (*entity.Menu, error) {
	var m entity.Menu
	err := row.Scan(&m.ID, &m.SchoolID, &m.Name, &m.WeekStart, &m.WeekEnd, &m.Status, &m.Notes, &m.CreatedBy, &m.PublishedAt, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get menu: %w", err)
	}
	items, err := r.loadItems(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	m.Items = items
	return &m, nil
}

func (r *MenuRepo) loadItems(ctx context.Context, menuID string) ([]entity.MenuItem, error) {
	query := `
		SELECT id, menu_id, day_of_week, meal_type, meal_name, portion_text, image_url, image_data, description, created_at
		FROM menu_items WHERE menu_id = $1 ORDER BY day_of_week, meal_type`
	rows, err := r.q.Query(ctx, query, menuID)
	if err != nil {
		return nil, fmt.Errorf("load menu items: %w", err)
	}
	defer rows.Close()
	var items []entity.MenuItem
	for rows.Next() {
		var it entity.MenuItem
		if err := rows.Scan(&it.ID, &it.MenuID, &it.DayOfWeek, &it.MealType, &it.MealName, &it.PortionText, &it.ImageURL, &it.ImageData, &it.Description, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *MenuRepo) Update(menu *entity.Menu) error {
	query := `
		UPDATE menus
		SET name = $2, week_start = $3, week_end = $4, status = $5, notes = $6, published_at = $7, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		menu.ID, menu.Name, menu.WeekStart, menu.WeekEnd, menu.Status, menu.Notes, menu.PublishedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update menu: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MenuRepo) ReplaceItems(menuID string, items []entity.MenuItem) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM menu_items WHERE menu_id = $1`, menuID); err != nil {
		return fmt.Errorf("replace menu items: %w", err)
	}
	return r.insertItems(ctx, menuID, items)
}

func (r *MenuRepo) Delete(id string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM menu_items WHERE menu_id = $1`, id); err != nil {
		return fmt.Errorf("delete menu items: %w", err)
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM menus WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete menu: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MenuRepo) List(filter repository.MenuFilter, limit, offset int) ([]*entity.Menu, error) {
	ctx := context.Background()
	query := `SELECT ` + menuColumns + ` FROM menus WHERE 1=1`
	args := []any{}
	i := 1
	if filter.SchoolID != "" {
		query += fmt.Sprintf(" AND school_id = $%d", i)
		args = append(args, filter.SchoolID)
		i++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", i)
		args = append(args, filter.Status)
		i++
	}
	query += fmt.Sprintf(" ORDER BY week_start DESC LIMIT $%d OFFSET $%d", i, i+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list menus: %w", err)
	}
	defer rows.Close()
	var list []*entity.Menu
	for rows.Next() {
		var m entity.Menu
		if err := rows.Scan(&m.ID, &m.SchoolID, &m.Name, &m.WeekStart, &m.WeekEnd, &m.Status, &m.Notes, &m.CreatedBy, &m.PublishedAt, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan menu: %w", err)
		}
		list = append(list, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, m := range list {
		items, err := r.loadItems(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		m.Items = items
	}
	return list, nil
}

func (r *MenuRepo) CurrentPublished(schoolID string, date time.Time) (*entity.Menu, error) {
	ctx := context.Background()
	query := `
		SELECT ` + menuColumns + `
		FROM menus
		WHERE school_id = $1 AND status = 'PUBLISHED' AND week_start <= $2 AND week_end >= $2
		ORDER BY published_at DESC LIMIT 1`
	return r.scanOne(ctx, r.q.QueryRow(ctx, query, schoolID, date))
}

func (r *MenuRepo) PublishedByWeek(schoolID string, weekStart time.Time) (*entity.Menu, error) {
	ctx := context.Background()
	query := `
		SELECT ` + menuColumns + `
		FROM menus
		WHERE school_id = $1 AND status = 'PUBLISHED' AND week_start = $2
		ORDER BY published_at DESC LIMIT 1`
	return r.scanOne(ctx, r.q.QueryRow(ctx, query, schoolID, weekStart))
}

func (r *MenuRepo) SchoolsWithPublishedMenu(date time.Time) ([]*entity.School, error) {
	query := `
		SELECT DISTINCT s.id, s.name, s.address, s.city, s.is_active, s.public_slug, s.public_token, s.created_at, s.updated_at
		FROM schools s
		JOIN menus m ON m.school_id = s.id
		WHERE s.is_active = TRUE AND m.status = 'PUBLISHED' AND m.week_start <= $1 AND m.week_end >= $1
		ORDER BY s.name`
	rows, err := r.q.Query(context.Background(), query, date)
	if err != nil {
		return nil, fmt.Errorf("schools with published menu: %w", err)
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
