package entity

import "time"

// Supplier representa um fornecedor externo de insumos.
type Supplier struct {
	ID          string
	Name        string
	Document    string
	ContactName string
	Phone       string
	Email       string
	Address     string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
