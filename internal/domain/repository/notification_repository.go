package repository

import "github.com/semed-merenda/merenda-api/internal/domain/entity"

// NotificationFilter filtros de listagem de notificações.
type NotificationFilter struct {
	SchoolID string
	IsRead   *bool
	IsAlert  *bool
}

// NotificationRepository define a porta de persistência de notificações
// (write-only a partir dos workflows; leitura/marcação pela API).
type NotificationRepository interface {
	Create(notification *entity.Notification) error
	List(filter NotificationFilter, limit, offset int) ([]*entity.Notification, error)
	MarkRead(id string) error
	MarkAllRead() error
}
