package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/semed-merenda/merenda-api/internal/application/dto"
	"github.com/semed-merenda/merenda-api/internal/domain"
	"github.com/semed-merenda/merenda-api/internal/domain/entity"
	"github.com/semed-merenda/merenda-api/internal/domain/repository"
)

// MenuPDFGenerator gera o PDF do cardápio semanal de uma escola.
type MenuPDFGenerator interface {
	Generate(menu *entity.Menu, school *entity.School) ([]byte, error)
}

// MenuUseCase CRUD e publicação dos cardápios semanais.
type MenuUseCase struct {
	menuRepo   repository.MenuRepository
	schoolRepo repository.SchoolRepository
	pdfGen     MenuPDFGenerator
}

// NewMenuUseCase constrói o caso de uso.
func NewMenuUseCase(menuRepo repository.MenuRepository, schoolRepo repository.SchoolRepository, pdfGen MenuPDFGenerator) *MenuUseCase {
	return &MenuUseCase{menuRepo: menuRepo, schoolRepo: schoolRepo, pdfGen: pdfGen}
}

func validMenuDay(day string) bool {
	switch day {
	case entity.DayMon, entity.DayTue, entity.DayWed, entity.DayThu, entity.DayFri:
		return true
	}
	return false
}

func validMealType(meal string) bool {
	switch meal {
	case entity.MealBreakfast1, entity.MealSnack1, entity.MealLunch,
		entity.MealSnack2, entity.MealBreakfast2, entity.MealDinnerCoffee:
		return true
	}
	return false
}

// Create cria um cardápio em DRAFT para a semana informada.
func (uc *MenuUseCase) Create(in dto.CreateMenuRequest, actorID string) (*dto.MenuResponse, error) {
	if in.SchoolID == "" || in.WeekStart.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	school, err := uc.schoolRepo.GetByID(in.SchoolID)
	if err != nil {
		return nil, err
	}
	if school == nil {
		return nil, domain.ErrNotFound
	}
	weekEnd := in.WeekEnd
	if weekEnd.IsZero() {
		weekEnd = in.WeekStart.AddDate(0, 0, 4)
	}
	if weekEnd.Before(in.WeekStart) {
		return nil, domain.ErrInvalidInput
	}
	items, err := buildMenuItems(in.Items)
	if err != nil {
		return nil, err
	}

	menu := &entity.Menu{
		ID:        uuid.New().String(),
		SchoolID:  in.SchoolID,
		Name:      in.Name,
		WeekStart: in.WeekStart,
		WeekEnd:   weekEnd,
		Status:    entity.MenuStatusDraft,
		Notes:     in.Notes,
		CreatedBy: actorID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	for i := range items {
		items[i].MenuID = menu.ID
	}
	menu.Items = items

	if err := uc.menuRepo.Create(menu); err != nil {
		return nil, err
	}
	resp := toMenuResponse(menu)
	return &resp, nil
}

// Update edita um cardápio; publicado volta para DRAFT ao ser alterado.
func (uc *MenuUseCase) Update(id string, in dto.UpdateMenuRequest) (*dto.MenuResponse, error) {
	menu, err := uc.menuRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if menu == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		menu.Name = *in.Name
	}
	if in.WeekStart != nil {
		menu.WeekStart = *in.WeekStart
	}
	if in.WeekEnd != nil {
		menu.WeekEnd = *in.WeekEnd
	}
	if menu.WeekEnd.Before(menu.WeekStart) {
		return nil, domain.ErrInvalidInput
	}
	if in.Notes != nil {
		menu.Notes = *in.Notes
	}
	menu.Status = entity.MenuStatusDraft
	menu.PublishedAt = nil
	menu.UpdatedAt = time.Now()

	if in.Items != nil {
		items, err := buildMenuItems(in.Items)
		if err != nil {
			return nil, err
		}
		for i := range items {
			items[i].MenuID = menu.ID
		}
		if err := uc.menuRepo.ReplaceItems(menu.ID, items); err != nil {
			return nil, err
		}
		menu.Items = items
	}
	if err := uc.menuRepo.Update(menu); err != nil {
		return nil, err
	}
	resp := toMenuResponse(menu)
	return &resp, nil
}

// Publish publica o cardápio, tornando-o visível no portal público.
func (uc *MenuUseCase) Publish(id string) (*dto.MenuResponse, error) {
	menu, err := uc.menuRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if menu == nil {
		return nil, domain.ErrNotFound
	}
	if len(menu.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	menu.Status = entity.MenuStatusPublished
	menu.PublishedAt = &now
	menu.UpdatedAt = now
	if err := uc.menuRepo.Update(menu); err != nil {
		return nil, err
	}
	resp := toMenuResponse(menu)
	return &resp, nil
}

// GetByID devolve o cardápio com itens.
func (uc *MenuUseCase) GetByID(id string) (*dto.MenuResponse, error) {
	menu, err := uc.menuRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if menu == nil {
		return nil, domain.ErrNotFound
	}
	resp := toMenuResponse(menu)
	return &resp, nil
}

// List lista cardápios com filtros e paginação.
func (uc *MenuUseCase) List(filter repository.MenuFilter, limit, offset int) ([]dto.MenuResponse, error) {
	list, err := uc.menuRepo.List(filter, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MenuResponse, 0, len(list))
	for _, m := range list {
		items = append(items, toMenuResponse(m))
	}
	return items, nil
}

// Delete remove um cardápio.
func (uc *MenuUseCase) Delete(id string) error {
	menu, err := uc.menuRepo.GetByID(id)
	if err != nil {
		return err
	}
	if menu == nil {
		return domain.ErrNotFound
	}
	return uc.menuRepo.Delete(id)
}

// CurrentForSchool devolve o cardápio publicado vigente na data (nil se não houver).
func (uc *MenuUseCase) CurrentForSchool(schoolID string, date time.Time) (*dto.MenuResponse, error) {
	menu, err := uc.menuRepo.CurrentPublished(schoolID, date)
	if err != nil {
		return nil, err
	}
	if menu == nil {
		return nil, nil
	}
	resp := toMenuResponse(menu)
	return &resp, nil
}

// ByWeek devolve o cardápio publicado da semana informada (nil se não houver).
func (uc *MenuUseCase) ByWeek(schoolID string, weekStart time.Time) (*dto.MenuResponse, error) {
	menu, err := uc.menuRepo.PublishedByWeek(schoolID, weekStart)
	if err != nil {
		return nil, err
	}
	if menu == nil {
		return nil, nil
	}
	resp := toMenuResponse(menu)
	return &resp, nil
}

// SchoolsWithCurrentMenu lista as escolas ativas com cardápio publicado
// vigente na data. É a vitrine pública: só nome, slug e cidade.
func (uc *MenuUseCase) SchoolsWithCurrentMenu(date time.Time) ([]dto.SchoolPublicResponse, error) {
	schools, err := uc.menuRepo.SchoolsWithPublishedMenu(date)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SchoolPublicResponse, 0, len(schools))
	for _, s := range schools {
		out = append(out, dto.SchoolPublicResponse{
			ID:   s.ID,
			Name: s.Name,
			Slug: s.PublicSlug,
			City: s.City,
		})
	}
	return out, nil
}

// ForExport carrega cardápio e escola para os exports (PDF e CSV).
func (uc *MenuUseCase) ForExport(id string) (*entity.Menu, *entity.School, error) {
	menu, err := uc.menuRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if menu == nil {
		return nil, nil, domain.ErrNotFound
	}
	school, err := uc.schoolRepo.GetByID(menu.SchoolID)
	if err != nil {
		return nil, nil, err
	}
	if school == nil {
		return nil, nil, domain.ErrNotFound
	}
	return menu, school, nil
}

// ExportPDF gera o PDF do cardápio.
func (uc *MenuUseCase) ExportPDF(id string) ([]byte, error) {
	menu, school, err := uc.ForExport(id)
	if err != nil {
		return nil, err
	}
	return uc.pdfGen.Generate(menu, school)
}

func buildMenuItems(in []dto.MenuItemRequest) ([]entity.MenuItem, error) {
	items := make([]entity.MenuItem, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, it := range in {
		if !validMenuDay(it.DayOfWeek) || !validMealType(it.MealType) || it.Description == "" {
			return nil, domain.ErrInvalidInput
		}
		key := it.DayOfWeek + "/" + it.MealType
		if seen[key] {
			return nil, domain.ErrDuplicate
		}
		seen[key] = true
		items = append(items, entity.MenuItem{
			ID:          uuid.New().String(),
			DayOfWeek:   it.DayOfWeek,
			MealType:    it.MealType,
			MealName:    it.MealName,
			PortionText: it.PortionText,
			ImageURL:    it.ImageURL,
			ImageData:   it.ImageData,
			Description: it.Description,
			CreatedAt:   time.Now(),
		})
	}
	return items, nil
}

func toMenuResponse(m *entity.Menu) dto.MenuResponse {
	items := make([]dto.MenuItemResponse, 0, len(m.Items))
	for _, it := range m.Items {
		items = append(items, dto.MenuItemResponse{
			ID:          it.ID,
			DayOfWeek:   it.DayOfWeek,
			MealType:    it.MealType,
			MealName:    it.MealName,
			PortionText: it.PortionText,
			ImageURL:    it.ImageURL,
			ImageData:   it.ImageData,
			Description: it.Description,
		})
	}
	return dto.MenuResponse{
		ID:          m.ID,
		SchoolID:    m.SchoolID,
		Name:        m.Name,
		WeekStart:   m.WeekStart,
		WeekEnd:     m.WeekEnd,
		Status:      m.Status,
		Notes:       m.Notes,
		PublishedAt: m.PublishedAt,
		CreatedAt:   m.CreatedAt,
		Items:       items,
	}
}
