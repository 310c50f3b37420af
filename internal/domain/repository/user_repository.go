package repository

import "github.com/semed-merenda/merenda-api/internal/domain/entity"

// UserRepository define a porta de persistência de usuários.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	// AnyActiveAdminID devolve o ID de algum admin ativo ("" se não houver).
	// Último recurso da atribuição de ator do portal público.
	AnyActiveAdminID() (string, error)
}

// ResponsibleRepository define a porta de persistência de responsáveis.
type ResponsibleRepository interface {
	Create(responsible *entity.Responsible) error
	GetByID(id string) (*entity.Responsible, error)
	Update(responsible *entity.Responsible) error
	List(isActive *bool, limit, offset int) ([]*entity.Responsible, error)
	Delete(id string) error
}
