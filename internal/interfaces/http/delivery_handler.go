package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/semed-merenda/merenda-api/internal/application/dto"
	"github.com/semed-merenda/merenda-api/internal/application/inventory"
	"github.com/semed-merenda/merenda-api/internal/application/usecase"
	"github.com/semed-merenda/merenda-api/internal/domain/repository"
)

// DeliveryHandler trata as requisições HTTP de entregas (protegido).
type DeliveryHandler struct {
	uc       *usecase.DeliveryUseCase
	workflow *inventory.DeliveryWorkflowUseCase
}

// NewDeliveryHandler constrói o handler.
func NewDeliveryHandler(uc *usecase.DeliveryUseCase, workflow *inventory.DeliveryWorkflowUseCase) *DeliveryHandler {
	return &DeliveryHandler{uc: uc, workflow: workflow}
}

// Create godoc
// @Summary      Criar entrega em rascunho
// @Tags         deliveries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDeliveryRequest  true  "school_id, delivery_date, items"
// @Success      201   {object}  dto.DeliveryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/deliveries [post]
func (h *DeliveryHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateDeliveryRequest
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
// @Summary      Obter entrega por ID (com itens)
// @Tags         deliveries
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da entrega"
// @Success      200  {object}  dto.DeliveryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id} [get]
func (h *DeliveryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar entrega (apenas em DRAFT)
// @Tags         deliveries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID da entrega"
// @Param        body  body  dto.UpdateDeliveryRequest  true  "campos a alterar"
// @Success      200   {object}  dto.DeliveryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id} [put]
func (h *DeliveryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDeliveryRequest
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
// @Summary      Excluir entrega (apenas em DRAFT)
// @Tags         deliveries
// @Security     Bearer
// @Param        id  path  string  true  "ID da entrega"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id} [delete]
func (h *DeliveryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Listar entregas
// @Tags         deliveries
// @Security     Bearer
// @Produce      json
// @Param        school_id  query  string  false  "filtrar por escola"
// @Param        status     query  string  false  "DRAFT | SENT | CONFERRED"
// @Success      200  {array}  dto.DeliveryResponse
// @Router       /api/deliveries [get]
func (h *DeliveryHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()
	filter := repository.DeliveryFilter{
		SchoolID:          c.Query("school_id"),
		Status:            c.Query("status"),
		ConferenceEnabled: queryBool(c, "conference_enabled"),
	}
	list, err := h.uc.List(filter, page.Limit, page.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(list)
}

// Send godoc
// @Summary      Enviar entrega (debita o estoque central atomicamente)
// @Tags         deliveries
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da entrega"
// @Success      200  {object}  dto.DeliveryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id}/send [post]
func (h *DeliveryHandler) Send(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	delivery, err := h.workflow.Send(c.Context(), c.Params("id"), userID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(usecase.ToDeliveryResponse(delivery))
}

// SubmitConference godoc
// @Summary      Submeter conferência de uma entrega enviada
// @Tags         deliveries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID da entrega"
// @Param        body  body  dto.ConferenceRequest  true  "itens recebidos + assinaturas"
// @Success      200   {object}  dto.DeliveryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id}/conference [post]
func (h *DeliveryHandler) SubmitConference(c *fiber.Ctx) error {
	var in dto.ConferenceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	delivery, err := h.workflow.SubmitConference(c.Context(), c.Params("id"), conferenceInputFromDTO(in))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(usecase.ToDeliveryResponse(delivery))
}

// ConferenceLink godoc
// @Summary      Obter o link público de conferência de uma entrega
// @Tags         deliveries
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da entrega"
// @Success      200  {object}  dto.ConferenceLinkResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id}/conference-link [get]
func (h *DeliveryHandler) ConferenceLink(c *fiber.Ctx) error {
	out, err := h.uc.ConferenceLink(c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// conferenceInputFromDTO converte o body HTTP para a entrada do workflow.
func conferenceInputFromDTO(in dto.ConferenceRequest) inventory.ConferenceInput {
	items := make([]inventory.ConferenceItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, inventory.ConferenceItemInput{
			ItemID:           it.ItemID,
			ReceivedQuantity: it.ReceivedQuantity,
			Note:             it.Note,
		})
	}
	return inventory.ConferenceInput{
		Items:             items,
		SenderSignature:   in.SenderSignature,
		SenderName:        in.SenderSignerName,
		ReceiverSignature: in.ReceiverSignature,
		ReceiverName:      in.ReceiverSignerName,
	}
}
