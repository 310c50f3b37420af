package http

import (
	"encoding/csv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/semed-merenda/merenda-api/internal/application/dto"
	"github.com/semed-merenda/merenda-api/internal/application/inventory"
	"github.com/semed-merenda/merenda-api/internal/application/usecase"
	dominventory "github.com/semed-merenda/merenda-api/internal/domain/inventory"
	"github.com/semed-merenda/merenda-api/internal/domain/repository"
)

// StockHandler trata as requisições HTTP de saldos e razão de estoque (protegido).
type StockHandler struct {
	stockUC    *usecase.StockUseCase
	movementUC *inventory.RegisterMovementUseCase
}

// NewStockHandler constrói o handler.
func NewStockHandler(stockUC *usecase.StockUseCase, movementUC *inventory.RegisterMovementUseCase) *StockHandler {
	return &StockHandler{stockUC: stockUC, movementUC: movementUC}
}

// ListCentral godoc
// @Summary      Listar saldos do estoque central
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        q          query  string  false  "busca parcial por nome"
// @Param        category   query  string  false  "filtrar por categoria"
// @Param        low_stock  query  bool    false  "apenas abaixo do mínimo"
// @Success      200  {array}  dto.StockBalanceResponse
// @Router       /api/stock [get]
func (h *StockHandler) ListCentral(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()
	filter := repository.StockBalanceFilter{
		Query:    c.Query("q"),
		Category: c.Query("category"),
		LowStock: queryBool(c, "low_stock"),
	}
	list, err := h.stockUC.ListCentral(filter, page.Limit, page.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(list)
}

// ListBySchool godoc
// @Summary      Listar saldos de uma escola
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da escola"
// @Success      200  {array}  dto.StockBalanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/schools/{id}/stock [get]
func (h *StockHandler) ListBySchool(c *fiber.Ctx) error {
	list, err := h.stockUC.ListBySchool(c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(list)
}

// SetSchoolMinStock godoc
// @Summary      Definir limite mínimo de um insumo para uma escola
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Param        id    path  string                       true  "ID da escola"
// @Param        body  body  dto.SchoolStockLimitRequest  true  "supply_id e min_stock"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/schools/{id}/stock-limits [put]
func (h *StockHandler) SetSchoolMinStock(c *fiber.Ctx) error {
	var in dto.SchoolStockLimitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if err := h.stockUC.SetSchoolMinStock(c.Params("id"), in); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RegisterMovement godoc
// @Summary      Registrar movimento avulso de estoque
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "supply_id, school_id (vazio = central), type (IN|OUT), quantity"
// @Success      201   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *StockHandler) RegisterMovement(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	input := inventory.MovementInput{
		ActorID:  userID,
		SupplyID: in.SupplyID,
		SchoolID: in.SchoolID,
		Type:     in.Type,
		Quantity: in.Quantity,
		Note:     in.Note,
	}
	if in.MovementDate != nil {
		input.MovementDate = *in.MovementDate
	}
	movement, err := h.movementUC.RegisterMovement(c.Context(), input)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.StockMovementResponse{
		ID:           movement.ID,
		SupplyID:     movement.SupplyID,
		SchoolID:     movement.Scope.SchoolID(),
		Type:         movement.Type,
		Quantity:     movement.Quantity,
		MovementDate: movement.MovementDate,
		Note:         movement.Note,
		CreatedBy:    movement.CreatedBy,
		CreatedAt:    movement.CreatedAt,
	})
}

// ListMovements godoc
// @Summary      Listar o razão de estoque
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        date_from  query  string  false  "data inicial (RFC 3339)"
// @Param        date_to    query  string  false  "data final (RFC 3339)"
// @Param        type       query  string  false  "IN ou OUT"
// @Param        supply_id  query  string  false  "filtrar por insumo"
// @Param        school_id  query  string  false  "filtrar por escola"
// @Success      200  {array}  dto.StockMovementResponse
// @Router       /api/stock/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()
	filter, err := movementFilterFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "data inválida"})
	}
	list, err := h.stockUC.ListMovements(filter, page.Limit, page.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(list)
}

// ExportBalancesCSV godoc
// @Summary      Exportar os saldos do estoque central em CSV
// @Tags         stock
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {string}  string
// @Router       /api/stock/export [get]
func (h *StockHandler) ExportBalancesCSV(c *fiber.Ctx) error {
	list, err := h.stockUC.ListCentral(repository.StockBalanceFilter{}, 10000, 0)
	if err != nil {
		return respondDomainError(c, err)
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	_ = w.Write([]string{"insumo", "categoria", "unidade", "quantidade", "minimo", "baixo"})
	for _, b := range list {
		low := "nao"
		if b.Status == dominventory.StockStatusLow {
			low = "sim"
		}
		_ = w.Write([]string{
			b.SupplyName, b.Category, b.Unit,
			b.Quantity.String(), b.MinStock.String(), low,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="estoque.csv"`)
	return c.SendString(sb.String())
}

// ExportMovementsCSV godoc
// @Summary      Exportar o razão de estoque em CSV
// @Tags         stock
// @Security     Bearer
// @Produce      text/csv
// @Param        date_from  query  string  false  "data inicial (RFC 3339)"
// @Param        date_to    query  string  false  "data final (RFC 3339)"
// @Success      200  {string}  string
// @Router       /api/stock/movements/export [get]
func (h *StockHandler) ExportMovementsCSV(c *fiber.Ctx) error {
	filter, err := movementFilterFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "data inválida"})
	}
	// Exportação sem paginação: teto fixo alto.
	list, err := h.stockUC.ListMovements(filter, 10000, 0)
	if err != nil {
		return respondDomainError(c, err)
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	_ = w.Write([]string{"id", "supply_id", "school_id", "type", "quantity", "movement_date", "note", "created_by"})
	for _, m := range list {
		_ = w.Write([]string{
			m.ID, m.SupplyID, m.SchoolID, m.Type,
			m.Quantity.String(), m.MovementDate.Format(time.RFC3339), m.Note, m.CreatedBy,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="movimentos.csv"`)
	return c.SendString(sb.String())
}

func movementFilterFromQuery(c *fiber.Ctx) (repository.MovementFilter, error) {
	filter := repository.MovementFilter{
		Type:     c.Query("type"),
		SupplyID: c.Query("supply_id"),
		SchoolID: c.Query("school_id"),
	}
	if v := c.Query("date_from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, err
		}
		filter.DateFrom = &t
	}
	if v := c.Query("date_to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, err
		}
		filter.DateTo = &t
	}
	return filter, nil
}
