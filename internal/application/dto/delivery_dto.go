package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryItemRequest item de entrega na criação/edição de rascunho.
type DeliveryItemRequest struct {
	SupplyID        string          `json:"supply_id"`
	PlannedQuantity decimal.Decimal `json:"planned_quantity"`
}

// CreateDeliveryRequest body para POST /api/deliveries.
type CreateDeliveryRequest struct {
	SchoolID         string                `json:"school_id"`
	DeliveryDate     time.Time             `json:"delivery_date"`
	SenderID         string                `json:"sender_id,omitempty"`
	ResponsibleName  string                `json:"responsible_name,omitempty"`
	ResponsiblePhone string                `json:"responsible_phone,omitempty"`
	Notes            string                `json:"notes,omitempty"`
	Items            []DeliveryItemRequest `json:"items"`
}

// UpdateDeliveryRequest body para PUT /api/deliveries/:id (apenas DRAFT).
type UpdateDeliveryRequest struct {
	DeliveryDate     *time.Time            `json:"delivery_date,omitempty"`
	SenderID         *string               `json:"sender_id,omitempty"`
	ResponsibleName  *string               `json:"responsible_name,omitempty"`
	ResponsiblePhone *string               `json:"responsible_phone,omitempty"`
	Notes            *string               `json:"notes,omitempty"`
	Items            []DeliveryItemRequest `json:"items,omitempty"`
}

// DeliveryItemResponse item de entrega com o derivado de falta.
type DeliveryItemResponse struct {
	ID               string           `json:"id"`
	SupplyID         string           `json:"supply_id"`
	PlannedQuantity  decimal.Decimal  `json:"planned_quantity"`
	ReceivedQuantity *decimal.Decimal `json:"received_quantity,omitempty"`
	ShortageQuantity decimal.Decimal  `json:"shortage_quantity"`
	DivergenceNote   string           `json:"divergence_note,omitempty"`
}

// DeliveryResponse representação de uma entrega.
type DeliveryResponse struct {
	ID                string                 `json:"id"`
	SchoolID          string                 `json:"school_id"`
	DeliveryDate      time.Time              `json:"delivery_date"`
	SenderID          string                 `json:"sender_id,omitempty"`
	Notes             string                 `json:"notes,omitempty"`
	Status            string                 `json:"status"`
	ConferenceEnabled bool                   `json:"conference_enabled"`
	SentAt            *time.Time             `json:"sent_at,omitempty"`
	ConferenceAt      *time.Time             `json:"conference_submitted_at,omitempty"`
	SenderSignedBy    string                 `json:"sender_signed_by,omitempty"`
	ReceiverSignedBy  string                 `json:"receiver_signed_by,omitempty"`
	CreatedBy         string                 `json:"created_by"`
	CreatedAt         time.Time              `json:"created_at"`
	Items             []DeliveryItemResponse `json:"items"`
}

// ConferenceItemRequest item conferido no payload da conferência.
type ConferenceItemRequest struct {
	ItemID           string          `json:"item_id"`
	ReceivedQuantity decimal.Decimal `json:"received_quantity"`
	Note             string          `json:"note,omitempty"`
}

// ConferenceRequest body da conferência (entrega e recebimento).
type ConferenceRequest struct {
	Items              []ConferenceItemRequest `json:"items"`
	SenderSignature    string                  `json:"sender_signature_data"`
	SenderSignerName   string                  `json:"sender_signer_name"`
	ReceiverSignature  string                  `json:"receiver_signature_data"`
	ReceiverSignerName string                  `json:"receiver_signer_name"`
}

// ConferenceLinkResponse dados do link público de conferência de uma entrega.
type ConferenceLinkResponse struct {
	Slug       string `json:"slug"`
	Token      string `json:"token"`
	DeliveryID string `json:"delivery_id"`
	URL        string `json:"url"`
	APIURL     string `json:"api_url"`
}
