package dto

import "time"

// NotificationResponse representação de uma notificação.
type NotificationResponse struct {
	ID         string    `json:"id"`
	Type       string    `json:"notification_type"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	DeliveryID string    `json:"delivery,omitempty"`
	SchoolID   string    `json:"school,omitempty"`
	IsRead     bool      `json:"is_read"`
	IsAlert    bool      `json:"is_alert"`
	CreatedAt  time.Time `json:"created_at"`
}

// ResponsibleRequest body para criação/edição de responsável.
type ResponsibleRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	Position string `json:"position,omitempty"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// ResponsibleResponse representação de um responsável.
type ResponsibleResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Position  string    `json:"position,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
