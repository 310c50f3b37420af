package entity

import "time"

// School representa uma escola atendida pela SEMED.
// PublicSlug e PublicToken habilitam o portal público de conferência
// (a escola acessa sem conta autenticada, apenas com o token).
type School struct {
	ID          string
	Name        string
	Address     string
	City        string
	IsActive    bool
	PublicSlug  string
	PublicToken string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
