package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semed-merenda/merenda-api/internal/application/inventory"
	"github.com/semed-merenda/merenda-api/internal/domain"
	"github.com/semed-merenda/merenda-api/internal/domain/entity"
)

func seedConsumptionScenario(t *testing.T) (*fakeStore, *inventory.ConsumptionUseCase) {
	t.Helper()
	store := newFakeStore()
	store.schools[testSchoolID] = &entity.School{
		ID: testSchoolID, Name: "EM Paulo Freire", IsActive: true,
	}
	store.supplies["sup-arroz"] = &entity.Supply{
		ID: "sup-arroz", Name: "Arroz", Category: "graos", Unit: entity.UnitKG,
		MinStock: decimal.NewFromInt(5), IsActive: true,
	}
	store.supplies["sup-feijao"] = &entity.Supply{
		ID: "sup-feijao", Name: "Feijao", Category: "graos", Unit: entity.UnitKG,
		MinStock: decimal.NewFromInt(5), IsActive: true,
	}
	scope := entity.SchoolScope(testSchoolID)
	store.balances[balanceKey("sup-arroz", scope)] = &entity.StockBalance{
		SupplyID: "sup-arroz", Scope: scope, Quantity: decimal.NewFromInt(30),
	}
	store.balances[balanceKey("sup-feijao", scope)] = &entity.StockBalance{
		SupplyID: "sup-feijao", Scope: scope, Quantity: decimal.NewFromInt(10),
	}

	uc := inventory.NewConsumptionUseCase(&fakeTxRunner{store: store}, &fakeSchoolRepo{store: store})
	return store, uc
}

func TestConsumption_DebitaSaldoEscolar(t *testing.T) {
	store, uc := seedConsumptionScenario(t)

	err := uc.Record(context.Background(), testSchoolID, testActorID, []inventory.ConsumptionItemInput{
		{SupplyID: "sup-arroz", Quantity: decimal.NewFromInt(4), Note: "almoco de terca"},
		{SupplyID: "sup-feijao", Quantity: decimal.NewFromInt(2)},
	})
	require.NoError(t, err)

	assert.True(t, schoolQty(t, store, "sup-arroz").Equal(decimal.NewFromInt(26)))
	assert.True(t, schoolQty(t, store, "sup-feijao").Equal(decimal.NewFromInt(8)))

	require.Len(t, store.movements, 2)
	for _, m := range store.movements {
		assert.Equal(t, entity.MovementTypeOUT, m.Type)
		assert.Equal(t, testSchoolID, m.Scope.SchoolID())
		assert.Equal(t, testActorID, m.CreatedBy, "o ator resolvido deve assinar o lançamento")
	}
}

func TestConsumption_SaldoInsuficiente_RollbackTotal(t *testing.T) {
	store, uc := seedConsumptionScenario(t)

	err := uc.Record(context.Background(), testSchoolID, testActorID, []inventory.ConsumptionItemInput{
		{SupplyID: "sup-arroz", Quantity: decimal.NewFromInt(4)},
		{SupplyID: "sup-feijao", Quantity: decimal.NewFromInt(50)}, // só tem 10
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, schoolQty(t, store, "sup-arroz").Equal(decimal.NewFromInt(30)),
		"o débito do primeiro item deve ser desfeito")
	assert.True(t, schoolQty(t, store, "sup-feijao").Equal(decimal.NewFromInt(10)))
	assert.Empty(t, store.movements)
}

func TestConsumption_AbaixoDoMinimo_GeraAlerta(t *testing.T) {
	store, uc := seedConsumptionScenario(t)

	// Feijão: 10 - 7 = 3, abaixo do mínimo global 5.
	err := uc.Record(context.Background(), testSchoolID, testActorID, []inventory.ConsumptionItemInput{
		{SupplyID: "sup-feijao", Quantity: decimal.NewFromInt(7)},
	})
	require.NoError(t, err)

	require.Len(t, store.notifications, 1)
	assert.True(t, store.notifications[0].IsAlert)
	assert.Contains(t, store.notifications[0].Message, "Feijao")
	assert.Equal(t, testSchoolID, store.notifications[0].SchoolID)
}

func TestConsumption_InsumoDuplicado_Rejeitado(t *testing.T) {
	_, uc := seedConsumptionScenario(t)

	err := uc.Record(context.Background(), testSchoolID, testActorID, []inventory.ConsumptionItemInput{
		{SupplyID: "sup-arroz", Quantity: decimal.NewFromInt(1)},
		{SupplyID: "sup-arroz", Quantity: decimal.NewFromInt(2)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConsumption_EscolaInexistente_RetornaNotFound(t *testing.T) {
	_, uc := seedConsumptionScenario(t)

	err := uc.Record(context.Background(), "school-ghost", testActorID, []inventory.ConsumptionItemInput{
		{SupplyID: "sup-arroz", Quantity: decimal.NewFromInt(1)},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConsumption_QuantidadeNaoPositiva_Rejeitada(t *testing.T) {
	_, uc := seedConsumptionScenario(t)

	err := uc.Record(context.Background(), testSchoolID, testActorID, []inventory.ConsumptionItemInput{
		{SupplyID: "sup-arroz", Quantity: decimal.Zero},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
