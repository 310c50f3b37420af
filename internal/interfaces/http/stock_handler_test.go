package http_test

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semed-merenda/merenda-api/internal/application/usecase"
	"github.com/semed-merenda/merenda-api/internal/domain/entity"
	"github.com/semed-merenda/merenda-api/internal/domain/repository"
	apphttp "github.com/semed-merenda/merenda-api/internal/interfaces/http"
)

type fakeBalanceRepo struct{ central []*repository.StockRow }

func (f *fakeBalanceRepo) Get(string, entity.StockScope) (*entity.StockBalance, error) {
	return nil, nil
}
func (f *fakeBalanceRepo) GetForUpdate(string, entity.StockScope) (*entity.StockBalance, error) {
	return nil, nil
}
func (f *fakeBalanceRepo) Upsert(*entity.StockBalance) error { return nil }
func (f *fakeBalanceRepo) ListCentral(repository.StockBalanceFilter, int, int) ([]*repository.StockRow, error) {
	return f.central, nil
}
func (f *fakeBalanceRepo) ListBySchool(string) ([]*repository.StockRow, error) { return nil, nil }
func (f *fakeBalanceRepo) SetSchoolMinStock(string, string, decimal.Decimal) error {
	return nil
}

var _ repository.StockBalanceRepository = (*fakeBalanceRepo)(nil)

// ──────────────────────────────────────────────────────────────────────────────
// Export CSV dos saldos centrais
// ──────────────────────────────────────────────────────────────────────────────

func TestExportBalancesCSV_ColunasEMarcacaoDeBaixo(t *testing.T) {
	balanceRepo := &fakeBalanceRepo{central: []*repository.StockRow{
		{
			Balance: entity.StockBalance{SupplyID: "sup-arroz", Scope: entity.CentralScope(),
				Quantity: decimal.NewFromInt(3)},
			Supply: entity.Supply{ID: "sup-arroz", Name: "Arroz", Category: "graos",
				Unit: entity.UnitKG, MinStock: decimal.NewFromInt(5)},
		},
		{
			Balance: entity.StockBalance{SupplyID: "sup-feijao", Scope: entity.CentralScope(),
				Quantity: decimal.NewFromInt(50)},
			Supply: entity.Supply{ID: "sup-feijao", Name: "Feijao", Category: "graos",
				Unit: entity.UnitKG, MinStock: decimal.NewFromInt(5)},
		},
	}}
	stockUC := usecase.NewStockUseCase(balanceRepo, nil, nil, nil)
	handler := apphttp.NewStockHandler(stockUC, nil)

	app := fiber.New()
	app.Get("/api/stock/export", handler.ExportBalancesCSV)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/stock/export", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/csv")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 3, "cabeçalho + uma linha por saldo")
	assert.Equal(t, "insumo,categoria,unidade,quantidade,minimo,baixo", lines[0])
	assert.Equal(t, "Arroz,graos,kg,3,5,sim", lines[1])
	assert.Equal(t, "Feijao,graos,kg,50,5,nao", lines[2])
}
