package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/semed-merenda/merenda-api/internal/application/dto"
	"github.com/semed-merenda/merenda-api/internal/application/usecase"
)

// ResponsibleHandler CRUD de responsáveis por envio/recebimento (protegido).
type ResponsibleHandler struct {
	uc *usecase.ResponsibleUseCase
}

// NewResponsibleHandler constrói o handler.
func NewResponsibleHandler(uc *usecase.ResponsibleUseCase) *ResponsibleHandler {
	return &ResponsibleHandler{uc: uc}
}

// Create godoc
// @Summary      Criar responsável
// @Tags         responsibles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResponsibleRequest  true  "nome, telefone e cargo"
// @Success      201   {object}  dto.ResponsibleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/responsibles [post]
func (h *ResponsibleHandler) Create(c *fiber.Ctx) error {
	var in dto.ResponsibleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Editar responsável
// @Tags         responsibles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID do responsável"
// @Param        body  body  dto.ResponsibleRequest  true  "campos a alterar"
// @Success      200   {object}  dto.ResponsibleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/responsibles/{id} [put]
func (h *ResponsibleHandler) Update(c *fiber.Ctx) error {
	var in dto.ResponsibleRequest
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
// @Summary      Listar responsáveis
// @Tags         responsibles
// @Security     Bearer
// @Produce      json
// @Param        is_active  query  bool  false  "filtrar por status"
// @Success      200  {array}  dto.ResponsibleResponse
// @Router       /api/responsibles [get]
func (h *ResponsibleHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.List(queryBool(c, "is_active"), page.Limit, page.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(list)
}

// Delete godoc
// @Summary      Excluir responsável
// @Tags         responsibles
// @Security     Bearer
// @Param        id  path  string  true  "ID do responsável"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/responsibles/{id} [delete]
func (h *ResponsibleHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
