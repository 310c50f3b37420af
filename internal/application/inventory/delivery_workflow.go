package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/semed-merenda/merenda-api/internal/domain"
	"github.com/semed-merenda/merenda-api/internal/domain/entity"
	"github.com/semed-merenda/merenda-api/internal/domain/repository"
)

// DeliveryWorkflowUseCase implementa a máquina de estados da entrega:
// DRAFT -> SENT -> CONFERRED, com débito otimista do estoque central no envio
// e reconciliação planejado vs. recebido na conferência.
type DeliveryWorkflowUseCase struct {
	txRunner   TxRunner
	schoolRepo repository.SchoolRepository
}

// NewDeliveryWorkflowUseCase constrói o caso de uso.
func NewDeliveryWorkflowUseCase(txRunner TxRunner, schoolRepo repository.SchoolRepository) *DeliveryWorkflowUseCase {
	return &DeliveryWorkflowUseCase{txRunner: txRunner, schoolRepo: schoolRepo}
}

// Send envia uma entrega em rascunho: para cada item, bloqueia o saldo central
// do insumo, verifica disponibilidade, debita e lança a saída no razão. Tudo em
// uma única transação: se qualquer item falhar, nenhum saldo muda e a entrega
// permanece em DRAFT.
func (uc *DeliveryWorkflowUseCase) Send(ctx context.Context, deliveryID, actorID string) (*entity.Delivery, error) {
	school := (*entity.School)(nil)
	var sent *entity.Delivery

	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		delivery, err := r.Deliveries.GetForUpdate(deliveryID)
		if err != nil {
			return err
		}
		if delivery == nil {
			return domain.ErrNotFound
		}
		if delivery.Status != entity.DeliveryStatusDraft {
			return domain.ErrConflict
		}
		if len(delivery.Items) == 0 {
			return domain.ErrInvalidInput
		}
		school, err = uc.schoolRepo.GetByID(delivery.SchoolID)
		if err != nil {
			return err
		}
		if school == nil {
			return domain.ErrNotFound
		}

		for _, item := range delivery.Items {
			supply, err := r.Supplies.GetByID(item.SupplyID)
			if err != nil {
				return err
			}
			if supply == nil {
				return domain.ErrNotFound
			}
			_, _, err = applyMovement(r, movementInput{
				Supply:       supply,
				Scope:        entity.CentralScope(),
				Type:         entity.MovementTypeOUT,
				Quantity:     item.PlannedQuantity,
				MovementDate: delivery.DeliveryDate,
				Note:         fmt.Sprintf("Saida automatica da entrega %s para %s.", delivery.ID, school.Name),
				ActorID:      actorID,
			})
			if err != nil {
				return err
			}
		}

		now := time.Now()
		delivery.Status = entity.DeliveryStatusSent
		delivery.ConferenceEnabled = true
		delivery.SentAt = &now
		delivery.UpdatedAt = now
		if err := r.Deliveries.Update(delivery); err != nil {
			return err
		}
		sent = delivery
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sent, nil
}

// SubmitConference registra a conferência de uma entrega enviada: credita o
// saldo da escola pelo recebido (entrada no razão), reconcilia o delta
// planejado/recebido contra o estoque central (falta devolve ao central,
// excesso debita, falhando se ficaria negativo) e marca a entrega como
// CONFERRED com os dois pares de assinatura. O conjunto de itens do payload
// deve casar exatamente com o da entrega.
func (uc *DeliveryWorkflowUseCase) SubmitConference(ctx context.Context, deliveryID string, in ConferenceInput) (*entity.Delivery, error) {
	senderName, receiverName, err := in.validate()
	if err != nil {
		return nil, err
	}

	var conferred *entity.Delivery
	err = uc.txRunner.Run(ctx, func(r TxRepos) error {
		delivery, err := r.Deliveries.GetForUpdate(deliveryID)
		if err != nil {
			return err
		}
		if delivery == nil {
			return domain.ErrNotFound
		}
		if delivery.Status == entity.DeliveryStatusConferred {
			return domain.ErrConflict
		}
		if delivery.Status != entity.DeliveryStatusSent {
			return domain.ErrConflict
		}
		school, err := uc.schoolRepo.GetByID(delivery.SchoolID)
		if err != nil {
			return err
		}
		if school == nil {
			return domain.ErrNotFound
		}

		byID := make(map[string]*entity.DeliveryItem, len(delivery.Items))
		for i := range delivery.Items {
			byID[delivery.Items[i].ID] = &delivery.Items[i]
		}
		// O payload deve cobrir todos os itens da entrega, sem sobras.
		if len(in.Items) != len(byID) {
			return domain.ErrItemMismatch
		}
		for _, entry := range in.Items {
			if _, ok := byID[entry.ItemID]; !ok {
				return domain.ErrItemMismatch
			}
		}

		var lowStock []lowStockItem
		hasNotes := false
		for _, entry := range in.Items {
			item := byID[entry.ItemID]
			supply, err := r.Supplies.GetByID(item.SupplyID)
			if err != nil {
				return err
			}
			if supply == nil {
				return domain.ErrNotFound
			}

			received := entry.ReceivedQuantity
			item.ReceivedQuantity = &received
			item.DivergenceNote = entry.Note
			if strings.TrimSpace(entry.Note) != "" {
				hasNotes = true
			}
			if err := r.Deliveries.UpdateItemConference(item); err != nil {
				return err
			}

			// Credita o saldo da escola pelo que de fato chegou.
			if received.IsPositive() {
				schoolBalance, _, err := applyMovement(r, movementInput{
					Supply:       supply,
					Scope:        entity.SchoolScope(school.ID),
					Type:         entity.MovementTypeIN,
					Quantity:     received,
					MovementDate: delivery.DeliveryDate,
					Note:         fmt.Sprintf("Entrada confirmada da entrega %s.", delivery.ID),
					ActorID:      delivery.CreatedBy,
				})
				if err != nil {
					return err
				}
				lowStock = collectLowStock(lowStock, schoolBalance, supply)
			} else {
				balance, err := r.Balances.Get(supply.ID, entity.SchoolScope(school.ID))
				if err != nil {
					return err
				}
				lowStock = collectLowStock(lowStock, balance, supply)
			}

			// Reconcilia o central: o envio debitou otimisticamente o planejado.
			// Falta (recebido < planejado) volta ao central; excesso sai dele.
			adjustment := item.PlannedQuantity.Sub(received)
			if adjustment.IsZero() {
				continue
			}
			adjType := entity.MovementTypeIN
			adjNote := fmt.Sprintf("Ajuste de conferencia (falta) da entrega %s.", delivery.ID)
			if adjustment.IsNegative() {
				adjustment = adjustment.Abs()
				adjType = entity.MovementTypeOUT
				adjNote = fmt.Sprintf("Ajuste de conferencia (excesso) da entrega %s.", delivery.ID)
			}
			_, _, err = applyMovement(r, movementInput{
				Supply:       supply,
				Scope:        entity.CentralScope(),
				Type:         adjType,
				Quantity:     adjustment,
				MovementDate: delivery.DeliveryDate,
				Note:         adjNote,
				ActorID:      delivery.CreatedBy,
			})
			if err != nil {
				return err
			}
		}

		now := time.Now()
		delivery.Status = entity.DeliveryStatusConferred
		delivery.ConferenceAt = &now
		delivery.SenderSignature = in.SenderSignature
		delivery.SenderSignedBy = senderName
		delivery.ReceiverSignature = in.ReceiverSignature
		delivery.ReceiverSignedBy = receiverName
		// Campos legados espelham o par do recebedor.
		delivery.ConferenceSignature = delivery.ReceiverSignature
		delivery.ConferenceSignedBy = delivery.ReceiverSignedBy
		delivery.UpdatedAt = now
		if err := r.Deliveries.Update(delivery); err != nil {
			return err
		}

		if err := uc.notifyConference(r, delivery, school, hasNotes); err != nil {
			return err
		}
		if err := notifyLowStock(r, school, lowStock); err != nil {
			return err
		}
		conferred = delivery
		return nil
	})
	if err != nil {
		return nil, err
	}
	return conferred, nil
}

func (uc *DeliveryWorkflowUseCase) notifyConference(r TxRepos, delivery *entity.Delivery, school *entity.School, hasNotes bool) error {
	date := delivery.DeliveryDate.Format("02/01/2006")
	notification := &entity.Notification{
		ID:         uuid.New().String(),
		DeliveryID: delivery.ID,
		SchoolID:   school.ID,
		CreatedAt:  time.Now(),
	}
	if hasNotes {
		notification.Type = entity.NotificationDeliveryWithNote
		notification.Title = fmt.Sprintf("Entrega com observacao - %s", school.Name)
		notification.Message = fmt.Sprintf("A entrega de %s para %s foi conferida com observacoes. Verificar os itens.", date, school.Name)
		notification.IsAlert = true
	} else {
		notification.Type = entity.NotificationDeliveryConferred
		notification.Title = fmt.Sprintf("Entrega conferida - %s", school.Name)
		notification.Message = fmt.Sprintf("A entrega de %s para %s foi conferida por %s.", date, school.Name, delivery.ReceiverSignedBy)
	}
	return r.Notifications.Create(notification)
}
