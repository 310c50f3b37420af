package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/semed-merenda/merenda-api/internal/domain"
	"github.com/semed-merenda/merenda-api/internal/domain/inventory"
)

// ConferenceItemInput é a quantidade recebida informada para um item.
type ConferenceItemInput struct {
	ItemID           string
	ReceivedQuantity decimal.Decimal
	Note             string
}

// ConferenceInput é o payload da conferência de entregas e recebimentos:
// itens recebidos e os dois pares de assinatura (quem entregou, quem recebeu).
type ConferenceInput struct {
	Items []ConferenceItemInput

	SenderSignature string
	SenderName      string

	ReceiverSignature string
	ReceiverName      string
}

// validate checa itens (não vazios, sem duplicados, quantidades não negativas)
// e os pares de assinatura; devolve os nomes aparados.
func (in *ConferenceInput) validate() (senderName, receiverName string, err error) {
	if len(in.Items) == 0 {
		return "", "", domain.ErrInvalidInput
	}
	seen := make(map[string]struct{}, len(in.Items))
	for _, item := range in.Items {
		if item.ItemID == "" || item.ReceivedQuantity.IsNegative() {
			return "", "", domain.ErrInvalidInput
		}
		if _, dup := seen[item.ItemID]; dup {
			return "", "", domain.ErrItemMismatch
		}
		seen[item.ItemID] = struct{}{}
	}
	senderName, err = inventory.ValidateSignature(in.SenderSignature, in.SenderName)
	if err != nil {
		return "", "", err
	}
	receiverName, err = inventory.ValidateSignature(in.ReceiverSignature, in.ReceiverName)
	if err != nil {
		return "", "", err
	}
	return senderName, receiverName, nil
}
