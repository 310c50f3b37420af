package usecase

import (
	"github.com/semed-merenda/merenda-api/internal/application/dto"
	"github.com/semed-merenda/merenda-api/internal/domain/repository"
)

// NotificationUseCase leitura e marcação das notificações geradas pelos
// workflows de conferência e pelos alertas de estoque.
type NotificationUseCase struct {
	notificationRepo repository.NotificationRepository
}

// NewNotificationUseCase constrói o caso de uso.
func NewNotificationUseCase(notificationRepo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{notificationRepo: notificationRepo}
}

// List lista notificações com filtros e paginação.
func (uc *NotificationUseCase) List(filter repository.NotificationFilter, limit, offset int) ([]dto.NotificationResponse, error) {
	list, err := uc.notificationRepo.List(filter, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		items = append(items, dto.NotificationResponse{
			ID:         n.ID,
			Type:       n.Type,
			Title:      n.Title,
			Message:    n.Message,
			DeliveryID: n.DeliveryID,
			SchoolID:   n.SchoolID,
			IsRead:     n.IsRead,
			IsAlert:    n.IsAlert,
			CreatedAt:  n.CreatedAt,
		})
	}
	return items, nil
}

// MarkRead marca uma notificação como lida.
func (uc *NotificationUseCase) MarkRead(id string) error {
	return uc.notificationRepo.MarkRead(id)
}

// MarkAllRead marca todas as notificações como lidas.
func (uc *NotificationUseCase) MarkAllRead() error {
	return uc.notificationRepo.MarkAllRead()
}
