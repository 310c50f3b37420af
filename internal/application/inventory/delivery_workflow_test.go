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
// Cenário base: estoque central abastecido, uma escola e uma entrega em DRAFT
// com dois itens (arroz e feijão).
// ──────────────────────────────────────────────────────────────────────────────

const (
	testActorID  = "user-admin-1"
	testSchoolID = "school-1"
)

func seedDeliveryScenario(t *testing.T) (*fakeStore, *inventory.DeliveryWorkflowUseCase, *entity.Delivery) {
	t.Helper()
	store := newFakeStore()
	store.schools[testSchoolID] = &entity.School{
		ID:          testSchoolID,
		Name:        "EM Paulo Freire",
		IsActive:    true,
		PublicSlug:  "em-paulo-freire",
		PublicToken: "tok-123",
	}
	store.supplies["sup-arroz"] = &entity.Supply{
		ID: "sup-arroz", Name: "Arroz", Category: "graos", Unit: entity.UnitKG,
		MinStock: decimal.NewFromInt(5), IsActive: true,
	}
	store.supplies["sup-feijao"] = &entity.Supply{
		ID: "sup-feijao", Name: "Feijao", Category: "graos", Unit: entity.UnitKG,
		MinStock: decimal.NewFromInt(5), IsActive: true,
	}
	setCentral(store, "sup-arroz", 100)
	setCentral(store, "sup-feijao", 50)

	delivery := &entity.Delivery{
		ID:           "del-1",
		SchoolID:     testSchoolID,
		DeliveryDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Status:       entity.DeliveryStatusDraft,
		CreatedBy:    testActorID,
		CreatedAt:    time.Now(),
		Items: []entity.DeliveryItem{
			{ID: "item-arroz", DeliveryID: "del-1", SupplyID: "sup-arroz", PlannedQuantity: decimal.NewFromInt(10)},
			{ID: "item-feijao", DeliveryID: "del-1", SupplyID: "sup-feijao", PlannedQuantity: decimal.NewFromInt(8)},
		},
	}
	store.deliveries[delivery.ID] = delivery

	uc := inventory.NewDeliveryWorkflowUseCase(&fakeTxRunner{store: store}, &fakeSchoolRepo{store: store})
	return store, uc, delivery
}

func setCentral(store *fakeStore, supplyID string, qty int64) {
	scope := entity.CentralScope()
	store.balances[balanceKey(supplyID, scope)] = &entity.StockBalance{
		SupplyID: supplyID, Scope: scope, Quantity: decimal.NewFromInt(qty),
	}
}

func centralQty(t *testing.T, store *fakeStore, supplyID string) decimal.Decimal {
	t.Helper()
	b, ok := store.balances[balanceKey(supplyID, entity.CentralScope())]
	require.True(t, ok, "saldo central de %s deveria existir", supplyID)
	return b.Quantity
}

func schoolQty(t *testing.T, store *fakeStore, supplyID string) decimal.Decimal {
	t.Helper()
	b, ok := store.balances[balanceKey(supplyID, entity.SchoolScope(testSchoolID))]
	require.True(t, ok, "saldo escolar de %s deveria existir", supplyID)
	return b.Quantity
}

func conferenceInput(items ...inventory.ConferenceItemInput) inventory.ConferenceInput {
	return inventory.ConferenceInput{
		Items:             items,
		SenderSignature:   "data:image/png;base64,AAAA",
		SenderName:        "  Joao Entregador  ",
		ReceiverSignature: "data:image/png;base64,BBBB",
		ReceiverName:      "Maria Merendeira",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Send
// ──────────────────────────────────────────────────────────────────────────────

func TestSend_DebitaCentralEMarcaSent(t *testing.T) {
	store, uc, delivery := seedDeliveryScenario(t)

	sent, err := uc.Send(context.Background(), delivery.ID, testActorID)
	require.NoError(t, err)

	assert.Equal(t, entity.DeliveryStatusSent, sent.Status)
	assert.True(t, sent.ConferenceEnabled, "o envio deve habilitar a conferência pública")
	require.NotNil(t, sent.SentAt)

	assert.True(t, centralQty(t, store, "sup-arroz").Equal(decimal.NewFromInt(90)),
		"central de arroz: 100 - 10 planejados")
	assert.True(t, centralQty(t, store, "sup-feijao").Equal(decimal.NewFromInt(42)),
		"central de feijão: 50 - 8 planejados")

	// Dois lançamentos OUT no razão, um por item, atribuídos ao ator.
	require.Len(t, store.movements, 2)
	for _, m := range store.movements {
		assert.Equal(t, entity.MovementTypeOUT, m.Type)
		assert.True(t, m.Scope.IsCentral())
		assert.Equal(t, testActorID, m.CreatedBy)
	}
}

func TestSend_SaldoInsuficiente_NaoMudaNada(t *testing.T) {
	store, uc, delivery := seedDeliveryScenario(t)
	// Feijão só tem 5 no central; o planejado é 8.
	setCentral(store, "sup-feijao", 5)

	_, err := uc.Send(context.Background(), delivery.ID, testActorID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &insErr)
	assert.Equal(t, "Feijao", insErr.SupplyName)

	// Atomicidade: o arroz (primeiro item) não pode ter sido debitado.
	assert.True(t, centralQty(t, store, "sup-arroz").Equal(decimal.NewFromInt(100)),
		"rollback deve restaurar o débito do primeiro item")
	assert.True(t, centralQty(t, store, "sup-feijao").Equal(decimal.NewFromInt(5)))
	assert.Empty(t, store.movements, "nenhum lançamento parcial do razão")
	assert.Equal(t, entity.DeliveryStatusDraft, store.deliveries[delivery.ID].Status)
}

func TestSend_ForaDeDraft_RetornaConflict(t *testing.T) {
	store, uc, delivery := seedDeliveryScenario(t)
	store.deliveries[delivery.ID].Status = entity.DeliveryStatusSent

	_, err := uc.Send(context.Background(), delivery.ID, testActorID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestSend_EntregaInexistente_RetornaNotFound(t *testing.T) {
	_, uc, _ := seedDeliveryScenario(t)

	_, err := uc.Send(context.Background(), "del-ghost", testActorID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// SubmitConference
// ──────────────────────────────────────────────────────────────────────────────

// Falta: recebido < planejado. A escola recebe o que chegou e a diferença
// volta ao estoque central.
func TestSubmitConference_FaltaDevolveAoCentral(t *testing.T) {
	store, uc, delivery := seedDeliveryScenario(t)
	_, err := uc.Send(context.Background(), delivery.ID, testActorID)
	require.NoError(t, err)

	in := conferenceInput(
		inventory.ConferenceItemInput{ItemID: "item-arroz", ReceivedQuantity: decimal.NewFromInt(7), Note: "3 sacos rasgados"},
		inventory.ConferenceItemInput{ItemID: "item-feijao", ReceivedQuantity: decimal.NewFromInt(8)},
	)
	conferred, err := uc.SubmitConference(context.Background(), delivery.ID, in)
	require.NoError(t, err)

	assert.Equal(t, entity.DeliveryStatusConferred, conferred.Status)
	require.NotNil(t, conferred.ConferenceAt)
	assert.Equal(t, "Joao Entregador", conferred.SenderSignedBy, "nome do remetente deve vir aparado")
	assert.Equal(t, "Maria Merendeira", conferred.ReceiverSignedBy)
	assert.Equal(t, conferred.ReceiverSignature, conferred.ConferenceSignature,
		"campos legados espelham o par do recebedor")

	// Escola credita o recebido.
	assert.True(t, schoolQty(t, store, "sup-arroz").Equal(decimal.NewFromInt(7)))
	assert.True(t, schoolQty(t, store, "sup-feijao").Equal(decimal.NewFromInt(8)))

	// Central: 100 - 10 no envio + 3 de falta devolvidos = 93.
	assert.True(t, centralQty(t, store, "sup-arroz").Equal(decimal.NewFromInt(93)))
	// Feijão sem divergência: 50 - 8 = 42.
	assert.True(t, centralQty(t, store, "sup-feijao").Equal(decimal.NewFromInt(42)))

	// Falta derivada no item.
	got := store.deliveries[delivery.ID]
	for _, item := range got.Items {
		if item.ID == "item-arroz" {
			assert.True(t, item.ShortageQuantity().Equal(decimal.NewFromInt(3)))
			assert.Equal(t, "3 sacos rasgados", item.DivergenceNote)
		}
	}

	// Conferência com observação gera alerta.
	require.NotEmpty(t, store.notifications)
	assert.Equal(t, entity.NotificationDeliveryWithNote, store.notifications[0].Type)
	assert.True(t, store.notifications[0].IsAlert)
}

// Excesso: recebido > planejado. O extra sai do estoque central.
func TestSubmitConference_ExcessoDebitaCentral(t *testing.T) {
	store, uc, delivery := seedDeliveryScenario(t)
	_, err := uc.Send(context.Background(), delivery.ID, testActorID)
	require.NoError(t, err)

	in := conferenceInput(
		inventory.ConferenceItemInput{ItemID: "item-arroz", ReceivedQuantity: decimal.NewFromInt(12)},
		inventory.ConferenceItemInput{ItemID: "item-feijao", ReceivedQuantity: decimal.NewFromInt(8)},
	)
	_, err = uc.SubmitConference(context.Background(), delivery.ID, in)
	require.NoError(t, err)

	assert.True(t, schoolQty(t, store, "sup-arroz").Equal(decimal.NewFromInt(12)))
	// Central: 100 - 10 no envio - 2 de excesso = 88.
	assert.True(t, centralQty(t, store, "sup-arroz").Equal(decimal.NewFromInt(88)))
}

// Excesso maior que o saldo central restante: a conferência inteira falha e
// nada muda (nem o crédito escolar do próprio item).
func TestSubmitConference_ExcessoSemSaldoCentral_RollbackTotal(t *testing.T) {
	store, uc, delivery := seedDeliveryScenario(t)
	_, err := uc.Send(context.Background(), delivery.ID, testActorID)
	require.NoError(t, err)
	// Zera o central de arroz depois do envio.
	setCentral(store, "sup-arroz", 0)
	movementsBefore := len(store.movements)

	in := conferenceInput(
		inventory.ConferenceItemInput{ItemID: "item-arroz", ReceivedQuantity: decimal.NewFromInt(15)},
		inventory.ConferenceItemInput{ItemID: "item-feijao", ReceivedQuantity: decimal.NewFromInt(8)},
	)
	_, err = uc.SubmitConference(context.Background(), delivery.ID, in)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, hasSchoolBalance := store.balances[balanceKey("sup-arroz", entity.SchoolScope(testSchoolID))]
	assert.False(t, hasSchoolBalance, "o crédito escolar deve ser desfeito no rollback")
	assert.Len(t, store.movements, movementsBefore, "nenhum lançamento novo após rollback")
	assert.Equal(t, entity.DeliveryStatusSent, store.deliveries[delivery.ID].Status)
}

func TestSubmitConference_Duplicada_RetornaConflict(t *testing.T) {
	_, uc, delivery := seedDeliveryScenario(t)
	_, err := uc.Send(context.Background(), delivery.ID, testActorID)
	require.NoError(t, err)

	in := conferenceInput(
		inventory.ConferenceItemInput{ItemID: "item-arroz", ReceivedQuantity: decimal.NewFromInt(10)},
		inventory.ConferenceItemInput{ItemID: "item-feijao", ReceivedQuantity: decimal.NewFromInt(8)},
	)
	_, err = uc.SubmitConference(context.Background(), delivery.ID, in)
	require.NoError(t, err)

	_, err = uc.SubmitConference(context.Background(), delivery.ID, in)
	assert.ErrorIs(t, err, domain.ErrConflict, "segunda conferência deve ser rejeitada")
}

func TestSubmitConference_EmDraft_RetornaConflict(t *testing.T) {
	_, uc, delivery := seedDeliveryScenario(t)

	in := conferenceInput(
		inventory.ConferenceItemInput{ItemID: "item-arroz", ReceivedQuantity: decimal.NewFromInt(10)},
		inventory.ConferenceItemInput{ItemID: "item-feijao", ReceivedQuantity: decimal.NewFromInt(8)},
	)
	_, err := uc.SubmitConference(context.Background(), delivery.ID, in)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestSubmitConference_ItensIncompletos_RetornaItemMismatch(t *testing.T) {
	_, uc, delivery := seedDeliveryScenario(t)
	_, err := uc.Send(context.Background(), delivery.ID, testActorID)
	require.NoError(t, err)

	// Payload cobre só um dos dois itens.
	in := conferenceInput(
		inventory.ConferenceItemInput{ItemID: "item-arroz", ReceivedQuantity: decimal.NewFromInt(10)},
	)
	_, err = uc.SubmitConference(context.Background(), delivery.ID, in)
	assert.ErrorIs(t, err, domain.ErrItemMismatch)
}

func TestSubmitConference_ItemDesconhecido_RetornaItemMismatch(t *testing.T) {
	_, uc, delivery := seedDeliveryScenario(t)
	_, err := uc.Send(context.Background(), delivery.ID, testActorID)
	require.NoError(t, err)

	in := conferenceInput(
		inventory.ConferenceItemInput{ItemID: "item-arroz", ReceivedQuantity: decimal.NewFromInt(10)},
		inventory.ConferenceItemInput{ItemID: "item-intruso", ReceivedQuantity: decimal.NewFromInt(1)},
	)
	_, err = uc.SubmitConference(context.Background(), delivery.ID, in)
	assert.ErrorIs(t, err, domain.ErrItemMismatch)
}

func TestSubmitConference_ItemDuplicado_RetornaItemMismatch(t *testing.T) {
	store, uc, delivery := seedDeliveryScenario(t)
	_, err := uc.Send(context.Background(), delivery.ID, testActorID)
	require.NoError(t, err)
	movementsAfterSend := len(store.movements)

	// O mesmo item aparece duas vezes no payload.
	in := conferenceInput(
		inventory.ConferenceItemInput{ItemID: "item-arroz", ReceivedQuantity: decimal.NewFromInt(5)},
		inventory.ConferenceItemInput{ItemID: "item-arroz", ReceivedQuantity: decimal.NewFromInt(5)},
		inventory.ConferenceItemInput{ItemID: "item-feijao", ReceivedQuantity: decimal.NewFromInt(8)},
	)
	_, err = uc.SubmitConference(context.Background(), delivery.ID, in)
	assert.ErrorIs(t, err, domain.ErrItemMismatch)

	// Nenhum saldo ou lançamento além dos do envio.
	assert.True(t, centralQty(t, store, "sup-arroz").Equal(decimal.NewFromInt(90)))
	_, hasSchool := store.balances[balanceKey("sup-arroz", entity.SchoolScope(testSchoolID))]
	assert.False(t, hasSchool, "a escola não deveria ter sido creditada")
	assert.Len(t, store.movements, movementsAfterSend)
	assert.Equal(t, entity.DeliveryStatusSent, store.deliveries[delivery.ID].Status)
}

func TestSubmitConference_AssinaturaInvalida_RetornaInvalidInput(t *testing.T) {
	_, uc, delivery := seedDeliveryScenario(t)
	_, err := uc.Send(context.Background(), delivery.ID, testActorID)
	require.NoError(t, err)

	in := conferenceInput(
		inventory.ConferenceItemInput{ItemID: "item-arroz", ReceivedQuantity: decimal.NewFromInt(10)},
		inventory.ConferenceItemInput{ItemID: "item-feijao", ReceivedQuantity: decimal.NewFromInt(8)},
	)
	in.ReceiverSignature = "nao-e-data-uri"
	_, err = uc.SubmitConference(context.Background(), delivery.ID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Conferência sem observações gera notificação informativa, não alerta.
func TestSubmitConference_SemObservacao_NotificaSemAlerta(t *testing.T) {
	store, uc, delivery := seedDeliveryScenario(t)
	_, err := uc.Send(context.Background(), delivery.ID, testActorID)
	require.NoError(t, err)

	in := conferenceInput(
		inventory.ConferenceItemInput{ItemID: "item-arroz", ReceivedQuantity: decimal.NewFromInt(10)},
		inventory.ConferenceItemInput{ItemID: "item-feijao", ReceivedQuantity: decimal.NewFromInt(8)},
	)
	_, err = uc.SubmitConference(context.Background(), delivery.ID, in)
	require.NoError(t, err)

	require.Len(t, store.notifications, 1)
	assert.Equal(t, entity.NotificationDeliveryConferred, store.notifications[0].Type)
	assert.False(t, store.notifications[0].IsAlert)
}

// Recebido abaixo do mínimo efetivo da escola dispara o alerta em lote de
// estoque baixo além da notificação de conferência.
func TestSubmitConference_EstoqueBaixoNaEscola_GeraAlerta(t *testing.T) {
	store, uc, delivery := seedDeliveryScenario(t)
	// Mínimo da escola para arroz acima do que será recebido.
	store.balances[balanceKey("sup-arroz", entity.SchoolScope(testSchoolID))] = &entity.StockBalance{
		SupplyID: "sup-arroz", Scope: entity.SchoolScope(testSchoolID),
		Quantity: decimal.Zero, MinStock: decimal.NewFromInt(20),
	}
	_, err := uc.Send(context.Background(), delivery.ID, testActorID)
	require.NoError(t, err)

	in := conferenceInput(
		inventory.ConferenceItemInput{ItemID: "item-arroz", ReceivedQuantity: decimal.NewFromInt(10)},
		inventory.ConferenceItemInput{ItemID: "item-feijao", ReceivedQuantity: decimal.NewFromInt(8)},
	)
	_, err = uc.SubmitConference(context.Background(), delivery.ID, in)
	require.NoError(t, err)

	var alert *entity.Notification
	for _, n := range store.notifications {
		if n.IsAlert {
			alert = n
		}
	}
	require.NotNil(t, alert, "deve existir alerta de estoque baixo")
	assert.Contains(t, alert.Message, "Arroz")
}
