package repository

import "github.com/semed-merenda/merenda-api/internal/domain/entity"

// DeliveryFilter filtros de listagem de entregas.
type DeliveryFilter struct {
	SchoolID          string
	Status            string
	ConferenceEnabled *bool
}

// DeliveryRepository define a porta de persistência do agregado de entrega.
type DeliveryRepository interface {
	// Create persiste a entrega e seus itens atomicamente.
	Create(delivery *entity.Delivery) error
	// GetByID devolve a entrega com seus itens (nil se não existir).
	GetByID(id string) (*entity.Delivery, error)
	// GetForUpdate devolve a entrega com itens, bloqueando a linha da entrega.
	GetForUpdate(id string) (*entity.Delivery, error)
	// Update atualiza os campos do cabeçalho (status, assinaturas, timestamps, notas).
	Update(delivery *entity.Delivery) error
	// ReplaceItems substitui os itens de uma entrega em rascunho.
	ReplaceItems(deliveryID string, items []entity.DeliveryItem) error
	// UpdateItemConference grava received_quantity e divergence_note de um item.
	UpdateItemConference(item *entity.DeliveryItem) error
	Delete(id string) error
	List(filter DeliveryFilter, limit, offset int) ([]*entity.Delivery, error)
	// LatestEnabledForSchool devolve a entrega mais recente com conferência
	// habilitada para a escola (nil se não houver).
	LatestEnabledForSchool(schoolID string) (*entity.Delivery, error)
	// LatestCreatorForSchool devolve o created_by da entrega mais recente da
	// escola ("" se não houver).
	LatestCreatorForSchool(schoolID string) (string, error)
}
