package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSupplierRequest body para POST /api/suppliers.
type CreateSupplierRequest struct {
	Name        string `json:"name"`
	Document    string `json:"document,omitempty"`
	ContactName string `json:"contact_name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	Address     string `json:"address,omitempty"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

// UpdateSupplierRequest body para PUT /api/suppliers/:id (parcial).
type UpdateSupplierRequest struct {
	Name        *string `json:"name,omitempty"`
	Document    *string `json:"document,omitempty"`
	ContactName *string `json:"contact_name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Email       *string `json:"email,omitempty"`
	Address     *string `json:"address,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// SupplierResponse representação de um fornecedor.
type SupplierResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Document    string    `json:"document,omitempty"`
	ContactName string    `json:"contact_name,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	Address     string    `json:"address,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ReceiptItemRequest item de recebimento na criação/edição.
// SupplyID vazio com RawName/Category preenchidos descreve um item ainda não
// casado com o catálogo.
type ReceiptItemRequest struct {
	SupplyID         string          `json:"supply,omitempty"`
	RawName          string          `json:"raw_name,omitempty"`
	Category         string          `json:"category,omitempty"`
	Unit             string          `json:"unit"`
	ExpectedQuantity decimal.Decimal `json:"expected_quantity"`
}

// CreateReceiptRequest body para POST /api/supplier-receipts.
type CreateReceiptRequest struct {
	SupplierID   string               `json:"supplier"`
	SchoolID     string               `json:"school,omitempty"`
	ExpectedDate time.Time            `json:"expected_date"`
	Status       string               `json:"status,omitempty"`
	Notes        string               `json:"notes,omitempty"`
	Items        []ReceiptItemRequest `json:"items"`
}

// UpdateReceiptRequest body para PUT /api/supplier-receipts/:id.
type UpdateReceiptRequest struct {
	SchoolID     *string              `json:"school,omitempty"`
	ExpectedDate *time.Time           `json:"expected_date,omitempty"`
	Status       *string              `json:"status,omitempty"`
	Notes        *string              `json:"notes,omitempty"`
	Items        []ReceiptItemRequest `json:"items,omitempty"`
}

// ReceiptItemResponse item de recebimento.
type ReceiptItemResponse struct {
	ID               string           `json:"id"`
	SupplyID         string           `json:"supply,omitempty"`
	RawName          string           `json:"raw_name,omitempty"`
	Category         string           `json:"category,omitempty"`
	Unit             string           `json:"unit"`
	ExpectedQuantity decimal.Decimal  `json:"expected_quantity"`
	ReceivedQuantity *decimal.Decimal `json:"received_quantity,omitempty"`
	DivergenceNote   string           `json:"divergence_note,omitempty"`
	SupplyCreatedID  string           `json:"supply_created,omitempty"`
}

// ReceiptResponse representação de um recebimento de fornecedor.
type ReceiptResponse struct {
	ID                   string                `json:"id"`
	SupplierID           string                `json:"supplier"`
	SchoolID             string                `json:"school,omitempty"`
	ExpectedDate         time.Time             `json:"expected_date"`
	Status               string                `json:"status"`
	Notes                string                `json:"notes,omitempty"`
	SenderSignedBy       string                `json:"sender_signed_by,omitempty"`
	ReceiverSignedBy     string                `json:"receiver_signed_by,omitempty"`
	ConferenceStartedAt  *time.Time            `json:"conference_started_at,omitempty"`
	ConferenceFinishedAt *time.Time            `json:"conference_finished_at,omitempty"`
	CreatedBy            string                `json:"created_by"`
	CreatedAt            time.Time             `json:"created_at"`
	Items                []ReceiptItemResponse `json:"items"`
}
