package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status do ciclo de vida de uma entrega. Nenhuma transição pula estado.
const (
	DeliveryStatusDraft     = "DRAFT"
	DeliveryStatusSent      = "SENT"
	DeliveryStatusConferred = "CONFERRED"
)

// Delivery é a raiz do agregado de entrega: quantidades planejadas saindo do
// estoque central para uma escola, com etapa de conferência assinada.
// Somente entregas em DRAFT podem ser editadas ou excluídas.
type Delivery struct {
	ID                string
	SchoolID          string
	DeliveryDate      time.Time
	SenderID          string // Responsible opcional ("" = preenchido manualmente)
	ResponsibleName   string // legado
	ResponsiblePhone  string // legado
	Notes             string
	Status            string
	ConferenceEnabled bool
	SentAt            *time.Time
	ConferenceAt      *time.Time // conference_submitted_at

	// Assinatura de quem entregou.
	SenderSignature string
	SenderSignedBy  string
	// Assinatura de quem recebeu na escola.
	ReceiverSignature string
	ReceiverSignedBy  string
	// Campos legados de assinatura única (espelham o par do recebedor).
	ConferenceSignature string
	ConferenceSignedBy  string

	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time

	Items []DeliveryItem
}

// DeliveryItem é um item da entrega. Único por (entrega, insumo).
type DeliveryItem struct {
	ID               string
	DeliveryID       string
	SupplyID         string
	PlannedQuantity  decimal.Decimal
	ReceivedQuantity *decimal.Decimal // definido apenas na conferência
	DivergenceNote   string
	CreatedAt        time.Time
}

// ShortageQuantity devolve max(planejado - recebido, 0) quando o recebido é conhecido.
func (i DeliveryItem) ShortageQuantity() decimal.Decimal {
	if i.ReceivedQuantity == nil {
		return decimal.Zero
	}
	shortage := i.PlannedQuantity.Sub(*i.ReceivedQuantity)
	if shortage.IsNegative() {
		return decimal.Zero
	}
	return shortage
}
