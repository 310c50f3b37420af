package entity

import "time"

// Tipos de notificação de eventos do fluxo de entregas/estoque.
const (
	NotificationDeliveryConferred  = "DELIVERY_CONFERRED"
	NotificationDeliveryWithNote   = "DELIVERY_WITH_NOTE"
	NotificationDeliveryDivergence = "DELIVERY_DIVERGENCE" // também usado para alerta de estoque baixo
)

// Notification é um registro derivado, efeito colateral das transições de
// workflow; nunca altera o estado do domínio.
type Notification struct {
	ID         string
	Type       string
	Title      string
	Message    string
	DeliveryID string // opcional
	SchoolID   string // opcional
	IsRead     bool
	IsAlert    bool
	CreatedAt  time.Time
}
