package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/semed-merenda/merenda-api/internal/application/dto"
	"github.com/semed-merenda/merenda-api/internal/application/usecase"
	"github.com/semed-merenda/merenda-api/internal/domain/repository"
)

// NotificationHandler leitura e marcação de notificações (protegido).
type NotificationHandler struct {
	uc *usecase.NotificationUseCase
}

// NewNotificationHandler constrói o handler.
func NewNotificationHandler(uc *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

// List godoc
// @Summary      Listar notificações
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        school_id  query  string  false  "filtrar por escola"
// @Param        is_read    query  bool    false  "filtrar por lidas/não lidas"
// @Param        is_alert   query  bool    false  "apenas alertas de estoque"
// @Success      200  {array}  dto.NotificationResponse
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()
	filter := repository.NotificationFilter{
		SchoolID: c.Query("school_id"),
		IsRead:   queryBool(c, "is_read"),
		IsAlert:  queryBool(c, "is_alert"),
	}
	list, err := h.uc.List(filter, page.Limit, page.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(list)
}

// MarkRead godoc
// @Summary      Marcar notificação como lida
// @Tags         notifications
// @Security     Bearer
// @Param        id  path  string  true  "ID da notificação"
// @Success      204
// @Router       /api/notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.uc.MarkRead(c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MarkAllRead godoc
// @Summary      Marcar todas as notificações como lidas
// @Tags         notifications
// @Security     Bearer
// @Success      204
// @Router       /api/notifications/read-all [post]
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	if err := h.uc.MarkAllRead(); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
