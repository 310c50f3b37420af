package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/semed-merenda/merenda-api/internal/application/dto"
	"github.com/semed-merenda/merenda-api/internal/application/inventory"
	"github.com/semed-merenda/merenda-api/internal/application/usecase"
	"github.com/semed-merenda/merenda-api/internal/domain/repository"
)

// ReceiptHandler trata as requisições HTTP de recebimentos de fornecedor (protegido).
type ReceiptHandler struct {
	uc       *usecase.ReceiptUseCase
	workflow *inventory.ReceiptWorkflowUseCase
}

// NewReceiptHandler constrói o handler.
func NewReceiptHandler(uc *usecase.ReceiptUseCase, workflow *inventory.ReceiptWorkflowUseCase) *ReceiptHandler {
	return &ReceiptHandler{uc: uc, workflow: workflow}
}

// Create godoc
// @Summary      Criar recebimento de fornecedor
// @Tags         supplier-receipts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReceiptRequest  true  "supplier, school (vazio = central), expected_date, items"
// @Success      201   {object}  dto.ReceiptResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/supplier-receipts [post]
func (h *ReceiptHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Create(in, userID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obter recebimento por ID (com itens)
// @Tags         supplier-receipts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do recebimento"
// @Success      200  {object}  dto.ReceiptResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/supplier-receipts/{id} [get]
func (h *ReceiptHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar recebimento (não terminal)
// @Tags         supplier-receipts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID do recebimento"
// @Param        body  body  dto.UpdateReceiptRequest  true  "campos a alterar"
// @Success      200   {object}  dto.ReceiptResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/supplier-receipts/{id} [put]
func (h *ReceiptHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Excluir recebimento (apenas DRAFT/EXPECTED)
// @Tags         supplier-receipts
// @Security     Bearer
// @Param        id  path  string  true  "ID do recebimento"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/supplier-receipts/{id} [delete]
func (h *ReceiptHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Listar recebimentos
// @Tags         supplier-receipts
// @Security     Bearer
// @Produce      json
// @Param        supplier  query  string  false  "filtrar por fornecedor"
// @Param        school    query  string  false  "filtrar por escola"
// @Param        status    query  string  false  "DRAFT | EXPECTED | IN_CONFERENCE | CONFERRED | CANCELLED"
// @Success      200  {array}  dto.ReceiptResponse
// @Router       /api/supplier-receipts [get]
func (h *ReceiptHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()
	filter := repository.ReceiptFilter{
		SupplierID: c.Query("supplier"),
		SchoolID:   c.Query("school"),
		Status:     c.Query("status"),
	}
	list, err := h.uc.List(filter, page.Limit, page.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(list)
}

// StartConference godoc
// @Summary      Iniciar a conferência do recebimento
// @Tags         supplier-receipts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do recebimento"
// @Success      200  {object}  dto.ReceiptResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/supplier-receipts/{id}/start-conference [post]
func (h *ReceiptHandler) StartConference(c *fiber.Ctx) error {
	receipt, err := h.workflow.StartConference(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(usecase.ToReceiptResponse(receipt))
}

// SubmitConference godoc
// @Summary      Submeter a conferência do recebimento (credita o estoque)
// @Tags         supplier-receipts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID do recebimento"
// @Param        body  body  dto.ConferenceRequest  true  "itens recebidos + assinaturas"
// @Success      200   {object}  dto.ReceiptResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/supplier-receipts/{id}/conference [post]
func (h *ReceiptHandler) SubmitConference(c *fiber.Ctx) error {
	var in dto.ConferenceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	receipt, err := h.workflow.SubmitConference(c.Context(), c.Params("id"), conferenceInputFromDTO(in))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(usecase.ToReceiptResponse(receipt))
}

// Cancel godoc
// @Summary      Cancelar recebimento não terminal
// @Tags         supplier-receipts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do recebimento"
// @Success      200  {object}  dto.ReceiptResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/supplier-receipts/{id}/cancel [post]
func (h *ReceiptHandler) Cancel(c *fiber.Ctx) error {
	receipt, err := h.workflow.Cancel(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(usecase.ToReceiptResponse(receipt))
}
