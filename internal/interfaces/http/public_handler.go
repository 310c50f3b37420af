package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/semed-merenda/merenda-api/internal/application/dto"
	"github.com/semed-merenda/merenda-api/internal/application/inventory"
	"github.com/semed-merenda/merenda-api/internal/application/usecase"
	"github.com/semed-merenda/merenda-api/internal/domain/entity"
	"github.com/semed-merenda/merenda-api/internal/domain/repository"
)

// PublicHandler portal público de conferência e consumo. Toda rota é
// escopada por slug+token da escola; o token vale como credencial única,
// nenhum JWT é exigido aqui.
type PublicHandler struct {
	schoolRepo    repository.SchoolRepository
	deliveryRepo  repository.DeliveryRepository
	stockUC       *usecase.StockUseCase
	menuUC        *usecase.MenuUseCase
	workflow      *inventory.DeliveryWorkflowUseCase
	consumption   *inventory.ConsumptionUseCase
	actorResolver *inventory.ActorResolver
}

// NewPublicHandler constrói o handler.
func NewPublicHandler(
	schoolRepo repository.SchoolRepository,
	deliveryRepo repository.DeliveryRepository,
	stockUC *usecase.StockUseCase,
	menuUC *usecase.MenuUseCase,
	workflow *inventory.DeliveryWorkflowUseCase,
	consumption *inventory.ConsumptionUseCase,
	actorResolver *inventory.ActorResolver,
) *PublicHandler {
	return &PublicHandler{
		schoolRepo:    schoolRepo,
		deliveryRepo:  deliveryRepo,
		stockUC:       stockUC,
		menuUC:        menuUC,
		workflow:      workflow,
		consumption:   consumption,
		actorResolver: actorResolver,
	}
}

// resolveSchool valida o par slug+token da rota. Slug desconhecido ou escola
// inativa respondem 404; token errado responde 401 sem revelar se o slug
// existe de fato em outra escola.
func (h *PublicHandler) resolveSchool(c *fiber.Ctx) (*entity.School, error) {
	school, err := h.schoolRepo.GetBySlug(c.Params("slug"))
	if err != nil {
		return nil, respondDomainError(c, err)
	}
	if school == nil || !school.IsActive {
		return nil, c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "escola não encontrada"})
	}
	if school.PublicToken == "" || school.PublicToken != c.Params("token") {
		return nil, c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido"})
	}
	return school, nil
}

// ListSchools godoc
// @Summary      Escolas com cardápio publicado vigente
// @Description  Única rota pública sem token: vitrine mínima (id, nome, slug, cidade).
// @Tags         public
// @Produce      json
// @Success      200  {array}  dto.SchoolPublicResponse
// @Router       /public/schools [get]
func (h *PublicHandler) ListSchools(c *fiber.Ctx) error {
	schools, err := h.menuUC.SchoolsWithCurrentMenu(time.Now())
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(schools)
}

// GetSchool godoc
// @Summary      Dados públicos da escola
// @Tags         public
// @Produce      json
// @Param        slug   path  string  true  "slug público da escola"
// @Param        token  path  string  true  "token público da escola"
// @Success      200  {object}  dto.SchoolPublicResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /public/schools/{slug}/{token} [get]
func (h *PublicHandler) GetSchool(c *fiber.Ctx) error {
	school, err := h.resolveSchool(c)
	if school == nil {
		return err
	}
	return c.JSON(dto.SchoolPublicResponse{
		ID:   school.ID,
		Name: school.Name,
		Slug: school.PublicSlug,
		City: school.City,
	})
}

// CurrentMenu godoc
// @Summary      Cardápio publicado vigente da escola
// @Tags         public
// @Produce      json
// @Param        slug   path  string  true  "slug público da escola"
// @Param        token  path  string  true  "token público da escola"
// @Success      200  {object}  dto.MenuResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /public/schools/{slug}/{token}/menus/current [get]
func (h *PublicHandler) CurrentMenu(c *fiber.Ctx) error {
	school, err := h.resolveSchool(c)
	if school == nil {
		return err
	}
	menu, err := h.menuUC.CurrentForSchool(school.ID, time.Now())
	if err != nil {
		return respondDomainError(c, err)
	}
	if menu == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_MENU", Message: "nenhum cardápio publicado para a data"})
	}
	return c.JSON(menu)
}

// MenuByWeek godoc
// @Summary      Cardápio publicado de uma semana específica
// @Tags         public
// @Produce      json
// @Param        slug        path   string  true  "slug público da escola"
// @Param        token       path   string  true  "token público da escola"
// @Param        week_start  query  string  true  "início da semana (YYYY-MM-DD)"
// @Success      200  {object}  dto.MenuResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /public/schools/{slug}/{token}/menus/week [get]
func (h *PublicHandler) MenuByWeek(c *fiber.Ctx) error {
	school, err := h.resolveSchool(c)
	if school == nil {
		return err
	}
	weekStart, err := time.Parse("2006-01-02", c.Query("week_start"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "week_start inválido, use YYYY-MM-DD"})
	}
	menu, err := h.menuUC.ByWeek(school.ID, weekStart)
	if err != nil {
		return respondDomainError(c, err)
	}
	if menu == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_MENU", Message: "nenhum cardápio publicado para a semana"})
	}
	return c.JSON(menu)
}

// resolveDelivery escolhe a entrega alvo da conferência: o delivery_id da
// query quando presente (precisa pertencer à escola e estar habilitado),
// senão a entrega habilitada mais recente. Com duas entregas SENT da mesma
// escola, o link de cada uma carrega o próprio id; sem o parâmetro valeria
// sempre a mais nova.
func (h *PublicHandler) resolveDelivery(c *fiber.Ctx, school *entity.School) (*entity.Delivery, error) {
	if id := c.Query("delivery_id"); id != "" {
		delivery, err := h.deliveryRepo.GetByID(id)
		if err != nil {
			return nil, respondDomainError(c, err)
		}
		if delivery == nil || delivery.SchoolID != school.ID || !delivery.ConferenceEnabled {
			return nil, c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_ACTIVE_DELIVERY", Message: "entrega não habilitada para conferência"})
		}
		return delivery, nil
	}
	delivery, err := h.deliveryRepo.LatestEnabledForSchool(school.ID)
	if err != nil {
		return nil, respondDomainError(c, err)
	}
	if delivery == nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_ACTIVE_DELIVERY", Message: "nenhuma entrega aguardando conferência"})
	}
	return delivery, nil
}

// CurrentDelivery godoc
// @Summary      Entrega aguardando conferência da escola
// @Tags         public
// @Produce      json
// @Param        slug         path   string  true   "slug público da escola"
// @Param        token        path   string  true   "token público da escola"
// @Param        delivery_id  query  string  false  "entrega específica; ausente usa a habilitada mais recente"
// @Success      200  {object}  dto.DeliveryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /public/schools/{slug}/{token}/deliveries/current [get]
func (h *PublicHandler) CurrentDelivery(c *fiber.Ctx) error {
	school, err := h.resolveSchool(c)
	if school == nil {
		return err
	}
	delivery, err := h.resolveDelivery(c, school)
	if delivery == nil {
		return err
	}
	return c.JSON(usecase.ToDeliveryResponse(delivery))
}

// SubmitConference godoc
// @Summary      Conferir a entrega atual da escola
// @Tags         public
// @Accept       json
// @Produce      json
// @Param        slug         path   string                 true   "slug público da escola"
// @Param        token        path   string                 true   "token público da escola"
// @Param        delivery_id  query  string                 false  "entrega específica; ausente usa a habilitada mais recente"
// @Param        body         body   dto.ConferenceRequest  true   "quantidades recebidas e assinaturas"
// @Success      200  {object}  dto.DeliveryResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /public/schools/{slug}/{token}/deliveries/current/conference [post]
func (h *PublicHandler) SubmitConference(c *fiber.Ctx) error {
	school, err := h.resolveSchool(c)
	if school == nil {
		return err
	}
	delivery, err := h.resolveDelivery(c, school)
	if delivery == nil {
		return err
	}
	var in dto.ConferenceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	conferred, err := h.workflow.SubmitConference(c.Context(), delivery.ID, conferenceInputFromDTO(in))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(usecase.ToDeliveryResponse(conferred))
}

// SchoolStock godoc
// @Summary      Saldo de estoque da escola (base do formulário de consumo)
// @Tags         public
// @Produce      json
// @Param        slug   path  string  true  "slug público da escola"
// @Param        token  path  string  true  "token público da escola"
// @Success      200  {array}  dto.StockBalanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /public/schools/{slug}/{token}/stock [get]
func (h *PublicHandler) SchoolStock(c *fiber.Ctx) error {
	school, err := h.resolveSchool(c)
	if school == nil {
		return err
	}
	list, err := h.stockUC.ListBySchool(school.ID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(list)
}

// RecordConsumption godoc
// @Summary      Registrar consumo direto da escola
// @Tags         public
// @Accept       json
// @Param        slug   path  string                  true  "slug público da escola"
// @Param        token  path  string                  true  "token público da escola"
// @Param        body   body  dto.ConsumptionRequest  true  "itens consumidos"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /public/schools/{slug}/{token}/consumption [post]
func (h *PublicHandler) RecordConsumption(c *fiber.Ctx) error {
	school, err := h.resolveSchool(c)
	if school == nil {
		return err
	}
	var in dto.ConsumptionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	actorID, err := h.actorResolver.ResolveForSchool(school.ID)
	if err != nil {
		return respondDomainError(c, err)
	}
	items := make([]inventory.ConsumptionItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		item := inventory.ConsumptionItemInput{
			SupplyID: it.SupplyID,
			Quantity: it.Quantity,
			Note:     it.Note,
		}
		if it.MovementDate != nil {
			item.MovementDate = *it.MovementDate
		}
		items = append(items, item)
	}
	if err := h.consumption.Record(c.Context(), school.ID, actorID, items); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
