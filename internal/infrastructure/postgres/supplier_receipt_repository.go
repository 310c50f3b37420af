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

var _ repository.SupplierReceiptRepository = (*SupplierReceiptRepo)(nil)

// SupplierReceiptRepo implementação de SupplierReceiptRepository sobre PostgreSQL.
// school_id NULL representa recebimento para o estoque central.
type SupplierReceiptRepo struct {
	q Querier
}

// NewSupplierReceiptRepository constrói o adaptador. Aceita pool ou tx (Querier).
func NewSupplierReceiptRepository(q Querier) *SupplierReceiptRepo {
	return &SupplierReceiptRepo{q: q}
}

const receiptColumns = `id, supplier_id, school_id, expected_date, status, notes,
	sender_signature, sender_signed_by, receiver_signature, receiver_signed_by,
	conference_started_at, conference_finished_at, created_by, created_at, updated_at`

func (r *SupplierReceiptRepo) Create(receipt *entity.SupplierReceipt) error {
	ctx := context.Background()
	query := `
		INSERT INTO supplier_receipts (` + receiptColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		receipt.ID, receipt.SupplierID, nullString(receipt.SchoolID),
		receipt.ExpectedDate, receipt.Status, receipt.Notes,
		receipt.SenderSignature, receipt.SenderSignedBy,
		receipt.ReceiverSignature, receipt.ReceiverSignedBy,
		receipt.ConferenceStartedAt, receipt.ConferenceFinishedAt,
		receipt.CreatedBy, receipt.CreatedAt, receipt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create supplier receipt: %w", err)
	}
	return r.insertItems(ctx, receipt.ID, receipt.Items)
}

func (r *SupplierReceiptRepo) insertItems(ctx context.Context, receiptID string, items []entity.SupplierReceiptItem) error {
	for _, it := range items {
		query := `
			INSERT INTO supplier_receipt_items (id, receipt_id, supply_id, raw_name, category, unit,
				expected_quantity, received_quantity, divergence_note, supply_created_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
		_, err := r.q.Exec(ctx, query,
			it.ID, receiptID, nullString(it.SupplyID), it.RawName, it.Category, it.Unit,
			it.ExpectedQuantity, it.ReceivedQuantity, it.DivergenceNote,
			nullString(it.SupplyCreatedID), it.CreatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert receipt item: %w", err)
		}
	}
	return nil
}

func (r *SupplierReceiptRepo) GetByID(id string) (*entity.SupplierReceipt, error) {
	return r.get(id, false)
}

func (r *SupplierReceiptRepo) GetForUpdate(id string) (*entity.SupplierReceipt, error) {
	return r.get(id, true)
}

func (r *SupplierReceiptRepo) get(id string, forUpdate bool) (*entity.SupplierReceipt, error) {
	ctx := context.Background()
	query := `SELECT ` + receiptColumns + ` FROM supplier_receipts WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	receipt, err := scanReceipt(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get supplier receipt: %w", err)
	}
	if receipt == nil {
		return nil, nil
	}
	items, err := r.loadItems(ctx, receipt.ID)
	if err != nil {
		return nil, err
	}
	receipt.Items = items
	return receipt, nil
}

func scanReceipt(row pgx.Row) (*entity.SupplierReceipt, error) {
	var (
		rec      entity.SupplierReceipt
		schoolID *string
	)
	err := row.Scan(
		&rec.ID, &rec.SupplierID, &schoolID, &rec.ExpectedDate, &rec.Status, &rec.Notes,
		&rec.SenderSignature, &rec.SenderSignedBy, &rec.ReceiverSignature, &rec.ReceiverSignedBy,
		&rec.ConferenceStartedAt, &rec.ConferenceFinishedAt, &rec.CreatedBy, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if schoolID != nil {
		rec.SchoolID = *schoolID
	}
	return &rec, nil
}

func (r *SupplierReceiptRepo) loadItems(ctx context.Context, receiptID string) ([]entity.SupplierReceiptItem, error) {
	query := `
		SELECT id, receipt_id, supply_id, raw_name, category, unit,
		       expected_quantity, received_quantity, divergence_note, supply_created_id, created_at
		FROM supplier_receipt_items WHERE receipt_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, receiptID)
	if err != nil {
		return nil, fmt.Errorf("load receipt items: %w", err)
	}
	defer rows.Close()
	var items []entity.SupplierReceiptItem
	for rows.Next() {
		var (
			it              entity.SupplierReceiptItem
			supplyID        *string
			supplyCreatedID *string
		)
		if err := rows.Scan(&it.ID, &it.ReceiptID, &supplyID, &it.RawName, &it.Category, &it.Unit,
			&it.ExpectedQuantity, &it.ReceivedQuantity, &it.DivergenceNote, &supplyCreatedID, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan receipt item: %w", err)
		}
		if supplyID != nil {
			it.SupplyID = *supplyID
		}
		if supplyCreatedID != nil {
			it.SupplyCreatedID = *supplyCreatedID
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *SupplierReceiptRepo) Update(receipt *entity.SupplierReceipt) error {
	query := `
		UPDATE supplier_receipts
		SET school_id = $2, expected_date = $3, status = $4, notes = $5,
		    sender_signature = $6, sender_signed_by = $7, receiver_signature = $8, receiver_signed_by = $9,
		    conference_started_at = $10, conference_finished_at = $11, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		receipt.ID, nullString(receipt.SchoolID), receipt.ExpectedDate, receipt.Status, receipt.Notes,
		receipt.SenderSignature, receipt.SenderSignedBy, receipt.ReceiverSignature, receipt.ReceiverSignedBy,
		receipt.ConferenceStartedAt, receipt.ConferenceFinishedAt,
	)
	if err != nil {
		return fmt.Errorf("update supplier receipt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SupplierReceiptRepo) ReplaceItems(receiptID string, items []entity.SupplierReceiptItem) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM supplier_receipt_items WHERE receipt_id = $1`, receiptID); err != nil {
		return fmt.Errorf("replace receipt items: %w", err)
	}
	return r.insertItems(ctx, receiptID, items)
}

func (r *SupplierReceiptRepo) UpdateItemConference(item *entity.SupplierReceiptItem) error {
	query := `
		UPDATE supplier_receipt_items
		SET supply_id = $2, received_quantity = $3, divergence_note = $4, supply_created_id = $5
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		item.ID, nullString(item.SupplyID), item.ReceivedQuantity, item.DivergenceNote, nullString(item.SupplyCreatedID),
	)
	if err != nil {
		return fmt.Errorf("update receipt item conference: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SupplierReceiptRepo) Delete(id string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM supplier_receipt_items WHERE receipt_id = $1`, id); err != nil {
		return fmt.Errorf("delete receipt items: %w", err)
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM supplier_receipts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete supplier receipt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SupplierReceiptRepo) List(filter repository.ReceiptFilter, limit, offset int) ([]*entity.SupplierReceipt, error) {
	ctx := context.Background()
	query := `SELECT ` + receiptColumns + ` FROM supplier_receipts WHERE 1=1`
	args := []any{}
	i := 1
	if filter.SupplierID != "" {
		query += fmt.Sprintf(" AND supplier_id = $%d", i)
		args = append(args, filter.SupplierID)
		i++
	}
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
	query += fmt.Sprintf(" ORDER BY expected_date DESC, created_at DESC LIMIT $%d OFFSET $%d", i, i+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list supplier receipts: %w", err)
	}
	defer rows.Close()
	var list []*entity.SupplierReceipt
	for rows.Next() {
		var (
			rec      entity.SupplierReceipt
			schoolID *string
		)
		if err := rows.Scan(
			&rec.ID, &rec.SupplierID, &schoolID, &rec.ExpectedDate, &rec.Status, &rec.Notes,
			&rec.SenderSignature, &rec.SenderSignedBy, &rec.ReceiverSignature, &rec.ReceiverSignedBy,
			&rec.ConferenceStartedAt, &rec.ConferenceFinishedAt, &rec.CreatedBy, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan supplier receipt: %w", err)
		}
		if schoolID != nil {
			rec.SchoolID = *schoolID
		}
		list = append(list, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, rec := range list {
		items, err := r.loadItems(ctx, rec.ID)
		if err != nil {
			return nil, err
		}
		rec.Items = items
	}
	return list, nil
}
