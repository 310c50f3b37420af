package repository

import (
	"time"

	"github.com/semed-merenda/merenda-api/internal/domain/entity"
)

// MenuFilter filtros de listagem de cardápios.
type MenuFilter struct {
	SchoolID string
	Status   string
}

// MenuRepository define a porta de persistência dos cardápios semanais.
type MenuRepository interface {
	Create(menu *entity.Menu) error
	GetByID(id string) (*entity.Menu, error)
	Update(menu *entity.Menu) error
	ReplaceItems(menuID string, items []entity.MenuItem) error
	Delete(id string) error
	List(filter MenuFilter, limit, offset int) ([]*entity.Menu, error)
	// CurrentPublished devolve o cardápio publicado cuja semana contém a data
	// (nil se não houver).
	CurrentPublished(schoolID string, date time.Time) (*entity.Menu, error)
	// PublishedByWeek devolve o cardápio publicado com o week_start dado.
	PublishedByWeek(schoolID string, weekStart time.Time) (*entity.Menu, error)
	// SchoolsWithPublishedMenu devolve as escolas ativas com cardápio publicado
	// vigente na data.
	SchoolsWithPublishedMenu(date time.Time) ([]*entity.School, error)
}
