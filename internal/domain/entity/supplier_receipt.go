package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status do ciclo de vida de um recebimento de fornecedor.
// CANCELLED é terminal alternativo, alcançável de qualquer estado não terminal.
const (
	ReceiptStatusDraft        = "DRAFT"
	ReceiptStatusExpected     = "EXPECTED"
	ReceiptStatusInConference = "IN_CONFERENCE"
	ReceiptStatusConferred    = "CONFERRED"
	ReceiptStatusCancelled    = "CANCELLED"
)

// ReceiptStatusTerminal indica se o status encerra o ciclo do recebimento.
func ReceiptStatusTerminal(status string) bool {
	return status == ReceiptStatusConferred || status == ReceiptStatusCancelled
}

// SupplierReceipt é a raiz do agregado de recebimento: estoque novo entrando
// do fornecedor para o central (SchoolID vazio) ou direto para uma escola.
type SupplierReceipt struct {
	ID           string
	SupplierID   string
	SchoolID     string // "" = estoque central
	ExpectedDate time.Time
	Status       string
	Notes        string

	SenderSignature   string
	SenderSignedBy    string
	ReceiverSignature string
	ReceiverSignedBy  string

	ConferenceStartedAt  *time.Time
	ConferenceFinishedAt *time.Time

	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time

	Items []SupplierReceiptItem
}

// SupplierReceiptItem é um item do recebimento. SupplyID vazio significa que o
// item ainda não foi casado com o catálogo; RawName/Category descrevem o item
// bruto e a conferência resolve ou cria o insumo (SupplyCreatedID registra qual).
// Único por (recebimento, insumo) apenas quando SupplyID não é vazio.
type SupplierReceiptItem struct {
	ID               string
	ReceiptID        string
	SupplyID         string
	RawName          string
	Category         string
	Unit             string
	ExpectedQuantity decimal.Decimal
	ReceivedQuantity *decimal.Decimal
	DivergenceNote   string
	SupplyCreatedID  string
	CreatedAt        time.Time
}
