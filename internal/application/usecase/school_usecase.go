package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/semed-merenda/merenda-api/internal/application/dto"
	"github.com/semed-merenda/merenda-api/internal/domain"
	"github.com/semed-merenda/merenda-api/internal/domain/entity"
	"github.com/semed-merenda/merenda-api/internal/domain/repository"
	"github.com/semed-merenda/merenda-api/pkg/slug"
)

// SchoolUseCase casos de uso CRUD de escolas, incluindo a geração de
// slug/token públicos usados pelo portal de conferência.
type SchoolUseCase struct {
	repo repository.SchoolRepository
}

// NewSchoolUseCase constrói o caso de uso.
func NewSchoolUseCase(repo repository.SchoolRepository) *SchoolUseCase {
	return &SchoolUseCase{repo: repo}
}

// Create cria uma escola com slug único derivado do nome e token público novo.
func (uc *SchoolUseCase) Create(in dto.CreateSchoolRequest) (*dto.SchoolResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	school := &entity.School{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Address:   in.Address,
		City:      in.City,
		IsActive:  active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	publicSlug, err := uc.uniqueSlug(in.Name, school.ID)
	if err != nil {
		return nil, err
	}
	school.PublicSlug = publicSlug
	token, err := slug.Token()
	if err != nil {
		return nil, err
	}
	school.PublicToken = token
	if err := uc.repo.Create(school); err != nil {
		return nil, err
	}
	return toSchoolResponse(school), nil
}

// uniqueSlug deriva o slug do nome e acrescenta sufixo numérico em colisão.
func (uc *SchoolUseCase) uniqueSlug(name, schoolID string) (string, error) {
	base := slug.Make(name)
	if base == "" {
		base = schoolID
	}
	candidate := base
	for idx := 2; ; idx++ {
		exists, err := uc.repo.SlugExists(candidate, schoolID)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, idx)
	}
}

// GetByID obtém uma escola.
func (uc *SchoolUseCase) GetByID(id string) (*dto.SchoolResponse, error) {
	school, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if school == nil {
		return nil, nil
	}
	return toSchoolResponse(school), nil
}

// Update atualiza uma escola (slug e token permanecem estáveis).
func (uc *SchoolUseCase) Update(id string, in dto.UpdateSchoolRequest) (*dto.SchoolResponse, error) {
	school, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if school == nil {
		return nil, nil
	}
	if in.Name != nil {
		school.Name = *in.Name
	}
	if in.Address != nil {
		school.Address = *in.Address
	}
	if in.City != nil {
		school.City = *in.City
	}
	if in.IsActive != nil {
		school.IsActive = *in.IsActive
	}
	school.UpdatedAt = time.Now()
	if err := uc.repo.Update(school); err != nil {
		return nil, err
	}
	return toSchoolResponse(school), nil
}

// List lista escolas.
func (uc *SchoolUseCase) List(query string, isActive *bool, limit, offset int) ([]dto.SchoolResponse, error) {
	list, err := uc.repo.List(query, isActive, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SchoolResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSchoolResponse(s))
	}
	return items, nil
}

// Delete exclui uma escola.
func (uc *SchoolUseCase) Delete(id string) error {
	school, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if school == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toSchoolResponse(s *entity.School) *dto.SchoolResponse {
	return &dto.SchoolResponse{
		ID:          s.ID,
		Name:        s.Name,
		Address:     s.Address,
		City:        s.City,
		IsActive:    s.IsActive,
		PublicSlug:  s.PublicSlug,
		PublicToken: s.PublicToken,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
