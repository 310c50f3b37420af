package http

import (
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/semed-merenda/merenda-api/internal/application/dto"
	"github.com/semed-merenda/merenda-api/internal/application/usecase"
	"github.com/semed-merenda/merenda-api/internal/domain/repository"
)

// MenuHandler trata as requisições HTTP de cardápios semanais (protegido).
type MenuHandler struct {
	uc *usecase.MenuUseCase
}

// NewMenuHandler constrói o handler.
func NewMenuHandler(uc *usecase.MenuUseCase) *MenuHandler {
	return &MenuHandler{uc: uc}
}

// Create godoc
// @Summary      Criar cardápio semanal (DRAFT)
// @Tags         menus
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMenuRequest  true  "escola, semana e refeições"
// @Success      201   {object}  dto.MenuResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/menus [post]
func (h *MenuHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMenuRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Create(in, GetUserID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obter cardápio por ID
// @Tags         menus
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do cardápio"
// @Success      200  {object}  dto.MenuResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menus/{id} [get]
func (h *MenuHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar cardápio (volta para DRAFT se estava publicado)
// @Tags         menus
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID do cardápio"
// @Param        body  body  dto.UpdateMenuRequest  true  "campos a alterar"
// @Success      200   {object}  dto.MenuResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/menus/{id} [put]
func (h *MenuHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMenuRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Publish godoc
// @Summary      Publicar cardápio no portal público
// @Tags         menus
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do cardápio"
// @Success      200  {object}  dto.MenuResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/menus/{id}/publish [post]
func (h *MenuHandler) Publish(c *fiber.Ctx) error {
	out, err := h.uc.Publish(c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar cardápios
// @Tags         menus
// @Security     Bearer
// @Produce      json
// @Param        school_id  query  string  false  "filtrar por escola"
// @Param        status     query  string  false  "DRAFT ou PUBLISHED"
// @Success      200  {array}  dto.MenuResponse
// @Router       /api/menus [get]
func (h *MenuHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()
	filter := repository.MenuFilter{
		SchoolID: c.Query("school_id"),
		Status:   c.Query("status"),
	}
	list, err := h.uc.List(filter, page.Limit, page.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(list)
}

// Delete godoc
// @Summary      Excluir cardápio
// @Tags         menus
// @Security     Bearer
// @Param        id  path  string  true  "ID do cardápio"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menus/{id} [delete]
func (h *MenuHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ExportPDF godoc
// @Summary      Exportar cardápio em PDF
// @Tags         menus
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID do cardápio"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menus/{id}/export [get]
func (h *MenuHandler) ExportPDF(c *fiber.Ctx) error {
	pdf, err := h.uc.ExportPDF(c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="cardapio-%s.pdf"`, time.Now().Format("2006-01-02")))
	return c.Send(pdf)
}

// ExportCSV godoc
// @Summary      Exportar cardápio em CSV
// @Tags         menus
// @Security     Bearer
// @Produce      text/csv
// @Param        id  path  string  true  "ID do cardápio"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menus/{id}/export-csv [get]
func (h *MenuHandler) ExportCSV(c *fiber.Ctx) error {
	menu, school, err := h.uc.ForExport(c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	_ = w.Write([]string{"escola", "semana_inicio", "semana_fim", "dia", "refeicao", "prato", "porcao", "descricao"})
	for _, it := range menu.Items {
		_ = w.Write([]string{
			school.Name,
			menu.WeekStart.Format("2006-01-02"),
			menu.WeekEnd.Format("2006-01-02"),
			it.DayOfWeek,
			it.MealType,
			it.MealName,
			it.PortionText,
			it.Description,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return respondDomainError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="cardapio-%s.csv"`, menu.WeekStart.Format("2006-01-02")))
	return c.SendString(sb.String())
}
