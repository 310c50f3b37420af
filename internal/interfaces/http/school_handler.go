package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/semed-merenda/merenda-api/internal/application/dto"
	"github.com/semed-merenda/merenda-api/internal/application/usecase"
)

// SchoolHandler trata as requisições HTTP de escolas (protegido).
type SchoolHandler struct {
	uc *usecase.SchoolUseCase
}

// NewSchoolHandler constrói o handler.
func NewSchoolHandler(uc *usecase.SchoolUseCase) *SchoolHandler {
	return &SchoolHandler{uc: uc}
}

// Create godoc
// @Summary      Criar escola (gera slug e token públicos)
// @Tags         schools
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSchoolRequest  true  "name, address, city"
// @Success      201   {object}  dto.SchoolResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/schools [post]
func (h *SchoolHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSchoolRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obter escola por ID
// @Tags         schools
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da escola"
// @Success      200  {object}  dto.SchoolResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/schools/{id} [get]
func (h *SchoolHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar escola (parcial)
// @Tags         schools
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID da escola"
// @Param        body  body  dto.UpdateSchoolRequest  true  "campos a alterar"
// @Success      200   {object}  dto.SchoolResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/schools/{id} [put]
func (h *SchoolHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSchoolRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar escolas
// @Tags         schools
// @Security     Bearer
// @Produce      json
// @Param        q          query  string  false  "busca parcial por nome"
// @Param        is_active  query  bool    false  "filtrar por status"
// @Success      200  {array}  dto.SchoolResponse
// @Router       /api/schools [get]
func (h *SchoolHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.List(c.Query("q"), queryBool(c, "is_active"), page.Limit, page.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(list)
}

// Delete godoc
// @Summary      Excluir escola
// @Tags         schools
// @Security     Bearer
// @Param        id  path  string  true  "ID da escola"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/schools/{id} [delete]
func (h *SchoolHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
