package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/semed-merenda/merenda-api/internal/domain/entity"
	"github.com/semed-merenda/merenda-api/internal/domain/inventory"
)

// lowStockItem é um insumo de uma escola abaixo do mínimo efetivo, coletado
// durante uma mutação de saldo para o alerta em lote.
type lowStockItem struct {
	SupplyName string
	Quantity   decimal.Decimal
	MinStock   decimal.Decimal
}

// collectLowStock avalia o saldo recém-mutado contra o mínimo efetivo e, se
// estiver baixo, acrescenta o item à lista. Puramente observacional: nunca
// bloqueia nem desfaz a mutação.
func collectLowStock(items []lowStockItem, balance *entity.StockBalance, supply *entity.Supply) []lowStockItem {
	min := inventory.EffectiveMinStock(balance, supply)
	if !inventory.IsLowStock(balance.Quantity, min) {
		return items
	}
	return append(items, lowStockItem{
		SupplyName: supply.Name,
		Quantity:   balance.Quantity,
		MinStock:   min,
	})
}

// notifyLowStock grava o alerta em lote de estoque baixo para a escola.
// No-op com lista vazia.
func notifyLowStock(r TxRepos, school *entity.School, items []lowStockItem) error {
	if len(items) == 0 {
		return nil
	}
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s (%s)", item.SupplyName, item.Quantity.StringFixed(2)))
	}
	return r.Notifications.Create(&entity.Notification{
		ID:        uuid.New().String(),
		Type:      entity.NotificationDeliveryDivergence,
		Title:     fmt.Sprintf("Estoque baixo - %s", school.Name),
		Message:   fmt.Sprintf("Os seguintes itens estao com estoque abaixo do limite: %s", strings.Join(parts, ", ")),
		SchoolID:  school.ID,
		IsAlert:   true,
		CreatedAt: time.Now(),
	})
}
