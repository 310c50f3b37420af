package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semed-merenda/merenda-api/internal/application/inventory"
	"github.com/semed-merenda/merenda-api/internal/domain"
	"github.com/semed-merenda/merenda-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Cenário base: recebimento EXPECTED do fornecedor para o estoque central, com
// um item já casado com o catálogo e um item bruto (sem insumo).
// ──────────────────────────────────────────────────────────────────────────────

func seedReceiptScenario(t *testing.T) (*fakeStore, *inventory.ReceiptWorkflowUseCase, *entity.SupplierReceipt) {
	t.Helper()
	store := newFakeStore()
	store.schools[testSchoolID] = &entity.School{
		ID: testSchoolID, Name: "EM Paulo Freire", IsActive: true,
	}
	store.supplies["sup-arroz"] = &entity.Supply{
		ID: "sup-arroz", Name: "Arroz", Category: "graos", Unit: entity.UnitKG,
		MinStock: decimal.NewFromInt(5), IsActive: true,
	}

	receipt := &entity.SupplierReceipt{
		ID:           "rec-1",
		SupplierID:   "supplier-1",
		ExpectedDate: time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		Status:       entity.ReceiptStatusExpected,
		CreatedBy:    testActorID,
		CreatedAt:    time.Now(),
		Items: []entity.SupplierReceiptItem{
			{ID: "ritem-arroz", ReceiptID: "rec-1", SupplyID: "sup-arroz",
				Unit: entity.UnitKG, ExpectedQuantity: decimal.NewFromInt(40)},
			{ID: "ritem-oleo", ReceiptID: "rec-1", RawName: "Oleo de Soja", Category: "oleos",
				Unit: entity.UnitL, ExpectedQuantity: decimal.NewFromInt(12)},
		},
	}
	store.receipts[receipt.ID] = receipt

	uc := inventory.NewReceiptWorkflowUseCase(&fakeTxRunner{store: store}, &fakeSchoolRepo{store: store})
	return store, uc, receipt
}

// ──────────────────────────────────────────────────────────────────────────────
// StartConference / Cancel
// ──────────────────────────────────────────────────────────────────────────────

func TestStartConference_MarcaInConference(t *testing.T) {
	store, uc, receipt := seedReceiptScenario(t)

	started, err := uc.StartConference(context.Background(), receipt.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.ReceiptStatusInConference, started.Status)
	require.NotNil(t, started.ConferenceStartedAt)
	assert.Equal(t, entity.ReceiptStatusInConference, store.receipts[receipt.ID].Status)
}

func TestStartConference_Idempotente(t *testing.T) {
	_, uc, receipt := seedReceiptScenario(t)

	first, err := uc.StartConference(context.Background(), receipt.ID)
	require.NoError(t, err)
	startedAt := *first.ConferenceStartedAt

	second, err := uc.StartConference(context.Background(), receipt.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReceiptStatusInConference, second.Status)
	assert.True(t, second.ConferenceStartedAt.Equal(startedAt),
		"repetir o início não deve sobrescrever o carimbo original")
}

func TestStartConference_StatusTerminal_Rejeitado(t *testing.T) {
	store, uc, receipt := seedReceiptScenario(t)
	store.receipts[receipt.ID].Status = entity.ReceiptStatusConferred

	_, err := uc.StartConference(context.Background(), receipt.ID)
	assert.ErrorIs(t, err, domain.ErrTerminalStatus)
}

func TestCancel_DeQualquerEstadoNaoTerminal(t *testing.T) {
	store, uc, receipt := seedReceiptScenario(t)

	cancelled, err := uc.Cancel(context.Background(), receipt.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReceiptStatusCancelled, cancelled.Status)

	// Terminal: cancelar de novo é rejeitado.
	_, err = uc.Cancel(context.Background(), receipt.ID)
	assert.ErrorIs(t, err, domain.ErrTerminalStatus)

	// Nenhum saldo foi tocado.
	assert.Empty(t, store.movements)
	assert.Empty(t, store.balances)
}

// ──────────────────────────────────────────────────────────────────────────────
// SubmitConference
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmitReceiptConference_CreditaCentralECriaInsumo(t *testing.T) {
	store, uc, receipt := seedReceiptScenario(t)

	in := conferenceInput(
		inventory.ConferenceItemInput{ItemID: "ritem-arroz", ReceivedQuantity: decimal.NewFromInt(40)},
		inventory.ConferenceItemInput{ItemID: "ritem-oleo", ReceivedQuantity: decimal.NewFromInt(12)},
	)
	conferred, err := uc.SubmitConference(context.Background(), receipt.ID, in)
	require.NoError(t, err)

	assert.Equal(t, entity.ReceiptStatusConferred, conferred.Status)
	require.NotNil(t, conferred.ConferenceFinishedAt)
	require.NotNil(t, conferred.ConferenceStartedAt,
		"submissão direta deve retro-preencher o início da conferência")

	// Central creditado com o recebido do item conhecido.
	assert.True(t, centralQty(t, store, "sup-arroz").Equal(decimal.NewFromInt(40)))

	// O item bruto virou insumo novo no catálogo, com min_stock zero.
	got := store.receipts[receipt.ID]
	var oleoItem *entity.SupplierReceiptItem
	for i := range got.Items {
		if got.Items[i].ID == "ritem-oleo" {
			oleoItem = &got.Items[i]
		}
	}
	require.NotNil(t, oleoItem)
	require.NotEmpty(t, oleoItem.SupplyCreatedID, "o insumo criado deve ficar registrado no item")
	created := store.supplies[oleoItem.SupplyCreatedID]
	require.NotNil(t, created)
	assert.Equal(t, "Oleo de Soja", created.Name)
	assert.True(t, created.MinStock.IsZero())
	assert.True(t, created.IsActive)
	assert.True(t, centralQty(t, store, created.ID).Equal(decimal.NewFromInt(12)))

	// Dois lançamentos IN no razão.
	require.Len(t, store.movements, 2)
	for _, m := range store.movements {
		assert.Equal(t, entity.MovementTypeIN, m.Type)
		assert.True(t, m.Scope.IsCentral())
	}
}

func TestSubmitReceiptConference_ReaproveitaInsumoExistente(t *testing.T) {
	store, uc, receipt := seedReceiptScenario(t)
	// Catálogo já tem o óleo com outra caixa (case-insensitive).
	store.supplies["sup-oleo"] = &entity.Supply{
		ID: "sup-oleo", Name: "OLEO DE SOJA", Category: "Oleos", Unit: entity.UnitL,
		MinStock: decimal.NewFromInt(2), IsActive: true,
	}

	in := conferenceInput(
		inventory.ConferenceItemInput{ItemID: "ritem-arroz", ReceivedQuantity: decimal.NewFromInt(40)},
		inventory.ConferenceItemInput{ItemID: "ritem-oleo", ReceivedQuantity: decimal.NewFromInt(12)},
	)
	_, err := uc.SubmitConference(context.Background(), receipt.ID, in)
	require.NoError(t, err)

	assert.Len(t, store.supplies, 2, "nenhum insumo novo deve ser criado")
	assert.True(t, centralQty(t, store, "sup-oleo").Equal(decimal.NewFromInt(12)))

	got := store.receipts[receipt.ID]
	for _, item := range got.Items {
		if item.ID == "ritem-oleo" {
			assert.Equal(t, "sup-oleo", item.SupplyCreatedID)
		}
	}
}

func TestSubmitReceiptConference_ItemIrresoluvel_RollbackTotal(t *testing.T) {
	store, uc, receipt := seedReceiptScenario(t)
	// O segundo item perde todo dado de identificação.
	store.receipts[receipt.ID].Items[1].RawName = ""
	store.receipts[receipt.ID].Items[1].Category = ""

	in := conferenceInput(
		inventory.ConferenceItemInput{ItemID: "ritem-arroz", ReceivedQuantity: decimal.NewFromInt(40)},
		inventory.ConferenceItemInput{ItemID: "ritem-oleo", ReceivedQuantity: decimal.NewFromInt(12)},
	)
	_, err := uc.SubmitConference(context.Background(), receipt.ID, in)
	require.ErrorIs(t, err, domain.ErrUnresolvableItem)

	assert.Empty(t, store.movements, "crédito do primeiro item deve ser desfeito")
	assert.Empty(t, store.balances)
	assert.Equal(t, entity.ReceiptStatusExpected, store.receipts[receipt.ID].Status)
}

func TestSubmitReceiptConference_ZeroRecebido_NaoLancaMovimento(t *testing.T) {
	store, uc, receipt := seedReceiptScenario(t)

	in := conferenceInput(
		inventory.ConferenceItemInput{ItemID: "ritem-arroz", ReceivedQuantity: decimal.NewFromInt(40)},
		inventory.ConferenceItemInput{ItemID: "ritem-oleo", ReceivedQuantity: decimal.Zero, Note: "nao entregue"},
	)
	conferred, err := uc.SubmitConference(context.Background(), receipt.ID, in)
	require.NoError(t, err)

	assert.Equal(t, entity.ReceiptStatusConferred, conferred.Status)
	require.Len(t, store.movements, 1, "item com zero recebido não gera lançamento")
	assert.Equal(t, "sup-arroz", store.movements[0].SupplyID)
}

func TestSubmitReceiptConference_StatusTerminal_Rejeitado(t *testing.T) {
	store, uc, receipt := seedReceiptScenario(t)
	store.receipts[receipt.ID].Status = entity.ReceiptStatusCancelled

	in := conferenceInput(
		inventory.ConferenceItemInput{ItemID: "ritem-arroz", ReceivedQuantity: decimal.NewFromInt(40)},
		inventory.ConferenceItemInput{ItemID: "ritem-oleo", ReceivedQuantity: decimal.NewFromInt(12)},
	)
	_, err := uc.SubmitConference(context.Background(), receipt.ID, in)
	assert.ErrorIs(t, err, domain.ErrTerminalStatus)
}

func TestSubmitReceiptConference_ItensIncompletos_RetornaItemMismatch(t *testing.T) {
	_, uc, receipt := seedReceiptScenario(t)

	in := conferenceInput(
		inventory.ConferenceItemInput{ItemID: "ritem-arroz", ReceivedQuantity: decimal.NewFromInt(40)},
	)
	_, err := uc.SubmitConference(context.Background(), receipt.ID, in)
	assert.ErrorIs(t, err, domain.ErrItemMismatch)
}

func TestSubmitReceiptConference_ItemDuplicado_RetornaItemMismatch(t *testing.T) {
	store, uc, receipt := seedReceiptScenario(t)

	in := conferenceInput(
		inventory.ConferenceItemInput{ItemID: "ritem-arroz", ReceivedQuantity: decimal.NewFromInt(20)},
		inventory.ConferenceItemInput{ItemID: "ritem-arroz", ReceivedQuantity: decimal.NewFromInt(20)},
		inventory.ConferenceItemInput{ItemID: "ritem-oleo", ReceivedQuantity: decimal.NewFromInt(12)},
	)
	_, err := uc.SubmitConference(context.Background(), receipt.ID, in)
	assert.ErrorIs(t, err, domain.ErrItemMismatch)

	assert.Empty(t, store.movements)
	assert.Empty(t, store.balances)
	assert.Equal(t, entity.ReceiptStatusExpected, store.receipts[receipt.ID].Status)
}

// Recebimento direto para escola: credita o saldo escolar e avalia estoque baixo.
func TestSubmitReceiptConference_EscopoEscola_CreditaEscolaEAlerta(t *testing.T) {
	store, uc, receipt := seedReceiptScenario(t)
	store.receipts[receipt.ID].SchoolID = testSchoolID
	// Mínimo global do arroz acima do que será recebido nesta escola.
	store.supplies["sup-arroz"].MinStock = decimal.NewFromInt(100)

	in := conferenceInput(
		inventory.ConferenceItemInput{ItemID: "ritem-arroz", ReceivedQuantity: decimal.NewFromInt(40)},
		inventory.ConferenceItemInput{ItemID: "ritem-oleo", ReceivedQuantity: decimal.NewFromInt(12)},
	)
	_, err := uc.SubmitConference(context.Background(), receipt.ID, in)
	require.NoError(t, err)

	assert.True(t, schoolQty(t, store, "sup-arroz").Equal(decimal.NewFromInt(40)))
	for _, m := range store.movements {
		assert.Equal(t, testSchoolID, m.Scope.SchoolID())
	}

	require.NotEmpty(t, store.notifications, "saldo escolar abaixo do mínimo deve alertar")
	assert.True(t, store.notifications[0].IsAlert)
	assert.Contains(t, store.notifications[0].Message, "Arroz")
}
