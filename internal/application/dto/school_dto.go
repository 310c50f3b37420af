package dto

import "time"

// CreateSchoolRequest body para POST /api/schools.
type CreateSchoolRequest struct {
	Name     string `json:"name"`
	Address  string `json:"address,omitempty"`
	City     string `json:"city,omitempty"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// UpdateSchoolRequest body para PUT /api/schools/:id (parcial).
type UpdateSchoolRequest struct {
	Name     *string `json:"name,omitempty"`
	Address  *string `json:"address,omitempty"`
	City     *string `json:"city,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// SchoolResponse representação de uma escola (visão autenticada, com token).
type SchoolResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address,omitempty"`
	City        string    `json:"city,omitempty"`
	IsActive    bool      `json:"is_active"`
	PublicSlug  string    `json:"public_slug"`
	PublicToken string    `json:"public_token"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SchoolPublicResponse visão pública mínima de uma escola.
type SchoolPublicResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	City string `json:"city,omitempty"`
}
