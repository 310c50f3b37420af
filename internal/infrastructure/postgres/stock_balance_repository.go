package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/semed-merenda/merenda-api/internal/domain/entity"
	"github.com/semed-merenda/merenda-api/internal/domain/repository"
)

var _ repository.StockBalanceRepository = (*StockBalanceRepo)(nil)

// StockBalanceRepo implementação de StockBalanceRepository sobre PostgreSQL.
// O saldo central vive em stock_balances e o por escola em school_stock_balances;
// o escopo do saldo decide a tabela.
type StockBalanceRepo struct {
	q Querier
}

// NewStockBalanceRepository constrói o adaptador. Aceita pool ou tx (Querier).
func NewStockBalanceRepository(q Querier) *StockBalanceRepo {
	return &StockBalanceRepo{q: q}
}

func (r *StockBalanceRepo) Get(supplyID string, scope entity.StockScope) (*entity.StockBalance, error) {
	var (
		b   entity.StockBalance
		err error
	)
	if scope.IsCentral() {
		query := `SELECT quantity, updated_at FROM stock_balances WHERE supply_id = $1`
		err = r.q.QueryRow(context.Background(), query, supplyID).Scan(&b.Quantity, &b.UpdatedAt)
	} else {
		query := `SELECT quantity, min_stock, updated_at FROM school_stock_balances WHERE school_id = $1 AND supply_id = $2`
		err = r.q.QueryRow(context.Background(), query, scope.SchoolID(), supplyID).Scan(&b.Quantity, &b.MinStock, &b.UpdatedAt)
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Linha preguiçosa: saldo zero até a primeira escrita.
			return &entity.StockBalance{SupplyID: supplyID, Scope: scope, Quantity: decimal.Zero, MinStock: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock balance: %w", err)
	}
	b.SupplyID = supplyID
	b.Scope = scope
	return &b, nil
}

// GetForUpdate bloqueia a linha de saldo (SELECT FOR UPDATE). Se a linha ainda
// não existe, insere a linha zero primeiro para ter o que bloquear; o INSERT
// com ON CONFLICT DO NOTHING serializa criadores concorrentes.
func (r *StockBalanceRepo) GetForUpdate(supplyID string, scope entity.StockScope) (*entity.StockBalance, error) {
	ctx := context.Background()
	var (
		b   entity.StockBalance
		err error
	)
	if scope.IsCentral() {
		insert := `
			INSERT INTO stock_balances (supply_id, quantity, updated_at)
			VALUES ($1, 0, now())
			ON CONFLICT (supply_id) DO NOTHING`
		if _, err = r.q.Exec(ctx, insert, supplyID); err != nil {
			return nil, fmt.Errorf("ensure stock balance: %w", err)
		}
		query := `SELECT quantity, updated_at FROM stock_balances WHERE supply_id = $1 FOR UPDATE`
		err = r.q.QueryRow(ctx, query, supplyID).Scan(&b.Quantity, &b.UpdatedAt)
	} else {
		insert := `
			INSERT INTO school_stock_balances (school_id, supply_id, quantity, min_stock, updated_at)
			VALUES ($1, $2, 0, 0, now())
			ON CONFLICT (school_id, supply_id) DO NOTHING`
		if _, err = r.q.Exec(ctx, insert, scope.SchoolID(), supplyID); err != nil {
			return nil, fmt.Errorf("ensure school stock balance: %w", err)
		}
		query := `SELECT quantity, min_stock, updated_at FROM school_stock_balances WHERE school_id = $1 AND supply_id = $2 FOR UPDATE`
		err = r.q.QueryRow(ctx, query, scope.SchoolID(), supplyID).Scan(&b.Quantity, &b.MinStock, &b.UpdatedAt)
	}
	if err != nil {
		return nil, fmt.Errorf("lock stock balance: %w", err)
	}
	b.SupplyID = supplyID
	b.Scope = scope
	return &b, nil
}

func (r *StockBalanceRepo) Upsert(balance *entity.StockBalance) error {
	ctx := context.Background()
	if balance.Scope.IsCentral() {
		query := `
			INSERT INTO stock_balances (supply_id, quantity, updated_at)
			VALUES ($1, $2, now())
			ON CONFLICT (supply_id)
			DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
		if _, err := r.q.Exec(ctx, query, balance.SupplyID, balance.Quantity); err != nil {
			return fmt.Errorf("upsert stock balance: %w", err)
		}
		return nil
	}
	query := `
		INSERT INTO school_stock_balances (school_id, supply_id, quantity, min_stock, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (school_id, supply_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, balance.Scope.SchoolID(), balance.SupplyID, balance.Quantity, balance.MinStock); err != nil {
		return fmt.Errorf("upsert school stock balance: %w", err)
	}
	return nil
}

func (r *StockBalanceRepo) ListCentral(filter repository.StockBalanceFilter, limit, offset int) ([]*repository.StockRow, error) {
	query := `
		SELECT s.id, s.name, s.category, s.unit, s.min_stock, s.is_active, s.created_at, s.updated_at,
		       COALESCE(b.quantity, 0), COALESCE(b.updated_at, s.updated_at)
		FROM supplies s
		LEFT JOIN stock_balances b ON b.supply_id = s.id
		WHERE s.is_active = TRUE`
	args := []any{}
	i := 1
	if filter.Query != "" {
		query += fmt.Sprintf(" AND s.name ILIKE $%d", i)
		args = append(args, "%"+filter.Query+"%")
		i++
	}
	if filter.Category != "" {
		query += fmt.Sprintf(" AND s.category = $%d", i)
		args = append(args, filter.Category)
		i++
	}
	if filter.LowStock != nil && *filter.LowStock {
		query += " AND COALESCE(b.quantity, 0) < s.min_stock"
	}
	query += fmt.Sprintf(" ORDER BY s.name LIMIT $%d OFFSET $%d", i, i+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list central balances: %w", err)
	}
	defer rows.Close()
	var list []*repository.StockRow
	for rows.Next() {
		var row repository.StockRow
		if err := rows.Scan(
			&row.Supply.ID, &row.Supply.Name, &row.Supply.Category, &row.Supply.Unit,
			&row.Supply.MinStock, &row.Supply.IsActive, &row.Supply.CreatedAt, &row.Supply.UpdatedAt,
			&row.Balance.Quantity, &row.Balance.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan central balance: %w", err)
		}
		row.Balance.SupplyID = row.Supply.ID
		row.Balance.Scope = entity.CentralScope()
		list = append(list, &row)
	}
	return list, rows.Err()
}

func (r *StockBalanceRepo) ListBySchool(schoolID string) ([]*repository.StockRow, error) {
	query := `
		SELECT s.id, s.name, s.category, s.unit, s.min_stock, s.is_active, s.created_at, s.updated_at,
		       b.quantity, b.min_stock, b.updated_at
		FROM school_stock_balances b
		JOIN supplies s ON s.id = b.supply_id
		WHERE b.school_id = $1
		ORDER BY s.name`
	rows, err := r.q.Query(context.Background(), query, schoolID)
	if err != nil {
		return nil, fmt.Errorf("list school balances: %w", err)
	}
	defer rows.Close()
	var list []*repository.StockRow
	for rows.Next() {
		var row repository.StockRow
		if err := rows.Scan(
			&row.Supply.ID, &row.Supply.Name, &row.Supply.Category, &row.Supply.Unit,
			&row.Supply.MinStock, &row.Supply.IsActive, &row.Supply.CreatedAt, &row.Supply.UpdatedAt,
			&row.Balance.Quantity, &row.Balance.MinStock, &row.Balance.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan school balance: %w", err)
		}
		row.Balance.SupplyID = row.Supply.ID
		row.Balance.Scope = entity.SchoolScope(schoolID)
		list = append(list, &row)
	}
	return list, rows.Err()
}

func (r *StockBalanceRepo) SetSchoolMinStock(schoolID, supplyID string, minStock decimal.Decimal) error {
	query := `
		INSERT INTO school_stock_balances (school_id, supply_id, quantity, min_stock, updated_at)
		VALUES ($1, $2, 0, $3, now())
		ON CONFLICT (school_id, supply_id)
		DO UPDATE SET min_stock = EXCLUDED.min_stock, updated_at = now()`
	if _, err := r.q.Exec(context.Background(), query, schoolID, supplyID, minStock); err != nil {
		return fmt.Errorf("set school min stock: %w", err)
	}
	return nil
}
