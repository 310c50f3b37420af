package entity

import "time"

// Papéis de usuário.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

// User é um operador autenticado do back office. Sua identidade alimenta a
// atribuição created_by do razão de estoque.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string // hash bcrypt, nunca plano depois de persistir
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
