package repository

import "github.com/semed-merenda/merenda-api/internal/domain/entity"

// SchoolRepository define a porta de persistência de escolas.
type SchoolRepository interface {
	Create(school *entity.School) error
	GetByID(id string) (*entity.School, error)
	GetBySlug(slug string) (*entity.School, error)
	Update(school *entity.School) error
	List(query string, isActive *bool, limit, offset int) ([]*entity.School, error)
	// SlugExists verifica se o slug já pertence a outra escola.
	SlugExists(slug, excludeID string) (bool, error)
	Delete(id string) error
}
