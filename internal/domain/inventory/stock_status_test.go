package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/semed-merenda/merenda-api/internal/domain"
	"github.com/semed-merenda/merenda-api/internal/domain/entity"
	"github.com/semed-merenda/merenda-api/internal/domain/inventory"
)

func TestEffectiveMinStock_EscolaSobrescreveGlobal(t *testing.T) {
	supply := &entity.Supply{MinStock: decimal.NewFromInt(10)}

	// Sem limite próprio: vale o mínimo global do insumo.
	balance := &entity.StockBalance{MinStock: decimal.Zero}
	assert.True(t, inventory.EffectiveMinStock(balance, supply).Equal(decimal.NewFromInt(10)))

	// Limite próprio (> 0) da escola vence.
	balance.MinStock = decimal.NewFromInt(3)
	assert.True(t, inventory.EffectiveMinStock(balance, supply).Equal(decimal.NewFromInt(3)))

	// Saldo nulo (linha ainda não criada): mínimo global.
	assert.True(t, inventory.EffectiveMinStock(nil, supply).Equal(decimal.NewFromInt(10)))
}

func TestStockStatus_Fronteiras(t *testing.T) {
	min := decimal.NewFromInt(10)

	assert.Equal(t, inventory.StockStatusLow, inventory.StockStatus(decimal.NewFromInt(9), min))
	assert.Equal(t, inventory.StockStatusNormal, inventory.StockStatus(decimal.NewFromInt(10), min),
		"exatamente no mínimo não é baixo")
	assert.Equal(t, inventory.StockStatusNormal, inventory.StockStatus(decimal.NewFromInt(19), min))
	assert.Equal(t, inventory.StockStatusHigh, inventory.StockStatus(decimal.NewFromInt(20), min),
		"o dobro do mínimo já é alto")
}

func TestStockStatus_MinimoZero(t *testing.T) {
	// Com mínimo zero nada é baixo; qualquer quantidade é alta (>= 2*0).
	assert.Equal(t, inventory.StockStatusHigh, inventory.StockStatus(decimal.Zero, decimal.Zero))
	assert.Equal(t, inventory.StockStatusHigh, inventory.StockStatus(decimal.NewFromInt(5), decimal.Zero))
}

func TestIsLowStock(t *testing.T) {
	min := decimal.NewFromInt(5)
	assert.True(t, inventory.IsLowStock(decimal.NewFromInt(4), min))
	assert.False(t, inventory.IsLowStock(decimal.NewFromInt(5), min))
}

func TestValidateSignature(t *testing.T) {
	name, err := inventory.ValidateSignature("data:image/png;base64,AAAA", "  Maria  ")
	assert.NoError(t, err)
	assert.Equal(t, "Maria", name, "nome do signatário deve vir aparado")

	_, err = inventory.ValidateSignature("", "Maria")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = inventory.ValidateSignature("image/png;base64,AAAA", "Maria")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "payload sem prefixo data:image/ é rejeitado")

	_, err = inventory.ValidateSignature("data:image/png;base64,AAAA", "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "nome em branco é rejeitado")
}
