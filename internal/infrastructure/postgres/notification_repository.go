package postgres

import (
	"context"
	"fmt"

	"github.com/semed-merenda/merenda-api/internal/domain"
	"github.com/semed-merenda/merenda-api/internal/domain/entity"
	"github.com/semed-merenda/merenda-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo implementação de NotificationRepository sobre PostgreSQL.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository constrói o adaptador. Aceita pool ou tx (Querier).
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

func (r *NotificationRepo) Create(notification *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, notification_type, title, message, delivery_id, school_id, is_read, is_alert, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		notification.ID, notification.Type, notification.Title, notification.Message,
		nullString(notification.DeliveryID), nullString(notification.SchoolID),
		notification.IsRead, notification.IsAlert, notification.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

func (r *NotificationRepo) List(filter repository.NotificationFilter, limit, offset int) ([]*entity.Notification, error) {
	query := `
		SELECT id, notification_type, title, message, delivery_id, school_id, is_read, is_alert, created_at
		FROM notifications WHERE 1=1`
	args := []any{}
	i := 1
	if filter.SchoolID != "" {
		query += fmt.Sprintf(" AND school_id = $%d", i)
		args = append(args, filter.SchoolID)
		i++
	}
	if filter.IsRead != nil {
		query += fmt.Sprintf(" AND is_read = $%d", i)
		args = append(args, *filter.IsRead)
		i++
	}
	if filter.IsAlert != nil {
		query += fmt.Sprintf(" AND is_alert = $%d", i)
		args = append(args, *filter.IsAlert)
		i++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", i, i+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()
	var list []*entity.Notification
	for rows.Next() {
		var (
			n          entity.Notification
			deliveryID *string
			schoolID   *string
		)
		if err := rows.Scan(&n.ID, &n.Type, &n.Title, &n.Message, &deliveryID, &schoolID, &n.IsRead, &n.IsAlert, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		if deliveryID != nil {
			n.DeliveryID = *deliveryID
		}
		if schoolID != nil {
			n.SchoolID = *schoolID
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

func (r *NotificationRepo) MarkRead(id string) error {
	tag, err := r.q.Exec(context.Background(), `UPDATE notifications SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *NotificationRepo) MarkAllRead() error {
	if _, err := r.q.Exec(context.Background(), `UPDATE notifications SET is_read = TRUE WHERE is_read = FALSE`); err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}
