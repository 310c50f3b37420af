package inventory

import (
	"context"

	"github.com/semed-merenda/merenda-api/internal/domain/repository"
)

// TxRepos agrupa os repositórios atados a uma mesma transação de BD.
// Os workflows recebem este conjunto para que toda operação de topo
// (send, submit_conference, consumo) seja um único all-or-nothing.
type TxRepos struct {
	Supplies      repository.SupplyRepository
	Balances      repository.StockBalanceRepository
	Movements     repository.StockMovementRepository
	Deliveries    repository.DeliveryRepository
	Receipts      repository.SupplierReceiptRepository
	Notifications repository.NotificationRepository
}

// TxRunner executa uma função dentro de uma transação de BD, passando
// repositórios atados a essa tx. Garante atomicidade para o motor de estoque:
// qualquer erro do callback desfaz tudo (nenhum lançamento parcial do razão).
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}
