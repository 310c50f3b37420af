package entity

import "time"

// Responsible é uma pessoa que pode enviar ou receber entregas.
type Responsible struct {
	ID        string
	Name      string
	Phone     string
	Position  string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
