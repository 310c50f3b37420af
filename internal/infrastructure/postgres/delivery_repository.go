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

var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

// DeliveryRepo implementação de DeliveryRepository sobre PostgreSQL.
type DeliveryRepo struct {
	q Querier
}

// NewDeliveryRepository constrói o adaptador. Aceita pool ou tx (Querier).
func NewDeliveryRepository(q Querier) *DeliveryRepo {
	return &DeliveryRepo{q: q}
}

const deliveryColumns = `id, school_id, delivery_date, sender_id, responsible_name, responsible_phone,
	notes, status, conference_enabled, sent_at, conference_submitted_at,
	sender_signature, sender_signed_by, receiver_signature, receiver_signed_by,
	conference_signature, conference_signed_by, created_by, created_at, updated_at`

func (r *DeliveryRepo) Create(delivery *entity.Delivery) error {
	ctx := context.Background()
	query := `
		INSERT INTO deliveries (` + deliveryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(ctx, query,
		delivery.ID, delivery.SchoolID, delivery.DeliveryDate, nullString(delivery.SenderID),
		delivery.ResponsibleName, delivery.ResponsiblePhone, delivery.Notes, delivery.Status,
		delivery.ConferenceEnabled, delivery.SentAt, delivery.ConferenceAt,
		delivery.SenderSignature, delivery.SenderSignedBy,
		delivery.ReceiverSignature, delivery.ReceiverSignedBy,
		delivery.ConferenceSignature, delivery.ConferenceSignedBy,
		delivery.CreatedBy, delivery.CreatedAt, delivery.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create delivery: %w", err)
	}
	return r.insertItems(ctx, delivery.ID, delivery.Items)
}

func (r *DeliveryRepo) insertItems(ctx context.Context, deliveryID string, items []entity.DeliveryItem) error {
	for _, it := range items {
		query := `
			INSERT INTO delivery_items (id, delivery_id, supply_id, planned_quantity, received_quantity, divergence_note, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`
		_, err := r.q.Exec(ctx, query,
			it.ID, deliveryID, it.SupplyID, it.PlannedQuantity, it.ReceivedQuantity, it.DivergenceNote, it.CreatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert delivery item: %w", err)
		}
	}
	return nil
}

func (r *DeliveryRepo) GetByID(id string) (*entity.Delivery, error) {
	return r.get(id, false)
}

func (r *DeliveryRepo) GetForUpdate(id string) (*entity.Delivery, error) {
	return r.get(id, true)
}

func (r *DeliveryRepo) get(id string, forUpdate bool) (*entity.Delivery, error) {
	ctx := context.Background()
	query := `SELECT ` + deliveryColumns + ` FROM deliveries WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	d, err := scanDelivery(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get delivery: %w", err)
	}
	if d == nil {
		return nil, nil
	}
	items, err := r.loadItems(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	d.Items = items
	return d, nil
}

func scanDelivery(row pgx.Row) (*entity.Delivery, error) {
	var (
		d        entity.Delivery
		senderID *string
	)
	err := row.Scan(
		&d.ID, &d.SchoolID, &d.DeliveryDate, &senderID, &d.ResponsibleName, &d.ResponsiblePhone,
		&d.Notes, &d.Status, &d.ConferenceEnabled, &d.SentAt, &d.ConferenceAt,
		&d.SenderSignature, &d.SenderSignedBy, &d.ReceiverSignature, &d.ReceiverSignedBy,
		&d.ConferenceSignature, &d.ConferenceSignedBy, &d.CreatedBy, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if senderID != nil {
		d.SenderID = *senderID
	}
	return &d, nil
}

func (r *DeliveryRepo) loadItems(ctx context.Context, deliveryID string) ([]entity.DeliveryItem, error) {
	query := `
		SELECT id, delivery_id, supply_id, planned_quantity, received_quantity, divergence_note, created_at
		FROM delivery_items WHERE delivery_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, deliveryID)
	if err != nil {
		return nil, fmt.Errorf("load delivery items: %w", err)
	}
	defer rows.Close()
	var items []entity.DeliveryItem
	for rows.Next() {
		var it entity.DeliveryItem
		if err := rows.Scan(&it.ID, &it.DeliveryID, &it.SupplyID, &it.PlannedQuantity, &it.ReceivedQuantity, &it.DivergenceNote, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan delivery item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *DeliveryRepo) Update(delivery *entity.Delivery) error {
	query := `
		UPDATE deliveries
		SET delivery_date = $2, sender_id = $3, responsible_name = $4, responsible_phone = $5,
		    notes = $6, status = $7, conference_enabled = $8, sent_at = $9, conference_submitted_at = $10,
		    sender_signature = $11, sender_signed_by = $12, receiver_signature = $13, receiver_signed_by = $14,
		    conference_signature = $15, conference_signed_by = $16, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		delivery.ID, delivery.DeliveryDate, nullString(delivery.SenderID),
		delivery.ResponsibleName, delivery.ResponsiblePhone, delivery.Notes,
		delivery.Status, delivery.ConferenceEnabled, delivery.SentAt, delivery.ConferenceAt,
		delivery.SenderSignature, delivery.SenderSignedBy,
		delivery.ReceiverSignature, delivery.ReceiverSignedBy,
		delivery.ConferenceSignature, delivery.ConferenceSignedBy,
	)
	if err != nil {
		return fmt.Errorf("update delivery: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DeliveryRepo) ReplaceItems(deliveryID string, items []entity.DeliveryItem) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM delivery_items WHERE delivery_id = $1`, deliveryID); err != nil {
		return fmt.Errorf("replace delivery items: %w", err)
	}
	return r.insertItems(ctx, deliveryID, items)
}

func (r *DeliveryRepo) UpdateItemConference(item *entity.DeliveryItem) error {
	query := `
		UPDATE delivery_items
		SET received_quantity = $2, divergence_note = $3
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, item.ID, item.ReceivedQuantity, item.DivergenceNote)
	if err != nil {
		return fmt.Errorf("update delivery item conference: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DeliveryRepo) Delete(id string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM delivery_items WHERE delivery_id = $1`, id); err != nil {
		return fmt.Errorf("delete delivery items: %w", err)
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM deliveries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete delivery: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DeliveryRepo) List(filter repository.DeliveryFilter, limit, offset int) ([]*entity.Delivery, error) {
	ctx := context.Background()
	query := `SELECT ` + deliveryColumns + ` FROM deliveries WHERE 1=1`
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
	if filter.ConferenceEnabled != nil {
		query += fmt.Sprintf(" AND conference_enabled = $%d", i)
		args = append(args, *filter.ConferenceEnabled)
		i++
	}
	query += fmt.Sprintf(" ORDER BY delivery_date DESC, created_at DESC LIMIT $%d OFFSET $%d", i, i+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()
	var list []*entity.Delivery
	for rows.Next() {
		var (
			d        entity.Delivery
			senderID *string
		)
		if err := rows.Scan(
			&d.ID, &d.SchoolID, &d.DeliveryDate, &senderID, &d.ResponsibleName, &d.ResponsiblePhone,
			&d.Notes, &d.Status, &d.ConferenceEnabled, &d.SentAt, &d.ConferenceAt,
			&d.SenderSignature, &d.SenderSignedBy, &d.ReceiverSignature, &d.ReceiverSignedBy,
			&d.ConferenceSignature, &d.ConferenceSignedBy, &d.CreatedBy, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		if senderID != nil {
			d.SenderID = *senderID
		}
		list = append(list, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, d := range list {
		items, err := r.loadItems(ctx, d.ID)
		if err != nil {
			return nil, err
		}
		d.Items = items
	}
	return list, nil
}

func (r *DeliveryRepo) LatestEnabledForSchool(schoolID string) (*entity.Delivery, error) {
	ctx := context.Background()
	query := `
		SELECT ` + deliveryColumns + `
		FROM deliveries
		WHERE school_id = $1 AND conference_enabled = TRUE
		ORDER BY sent_at DESC NULLS LAST, created_at DESC
		LIMIT 1`
	d, err := scanDelivery(r.q.QueryRow(ctx, query, schoolID))
	if err != nil {
		return nil, fmt.Errorf("latest enabled delivery: %w", err)
	}
	if d == nil {
		return nil, nil
	}
	items, err := r.loadItems(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	d.Items = items
	return d, nil
}

func (r *DeliveryRepo) LatestCreatorForSchool(schoolID string) (string, error) {
	query := `
		SELECT created_by FROM deliveries
		WHERE school_id = $1 AND created_by <> ''
		ORDER BY created_at DESC LIMIT 1`
	var createdBy string
	err := r.q.QueryRow(context.Background(), query, schoolID).Scan(&createdBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("latest delivery creator: %w", err)
	}
	return createdBy, nil
}

// nullString converte "" em NULL para colunas FK opcionais.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
