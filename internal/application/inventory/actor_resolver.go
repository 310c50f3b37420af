package inventory

import (
	"github.com/semed-merenda/merenda-api/internal/domain"
	"github.com/semed-merenda/merenda-api/internal/domain/repository"
)

// ActorResolver resolve o usuário a atribuir nos lançamentos originados do
// portal público, que não tem conta autenticada. A identidade resolvida é
// passada explicitamente aos casos de uso (nenhum estado ambiente de request).
type ActorResolver struct {
	deliveryRepo repository.DeliveryRepository
	movementRepo repository.StockMovementRepository
	userRepo     repository.UserRepository
}

// NewActorResolver constrói o resolutor.
func NewActorResolver(deliveryRepo repository.DeliveryRepository, movementRepo repository.StockMovementRepository, userRepo repository.UserRepository) *ActorResolver {
	return &ActorResolver{deliveryRepo: deliveryRepo, movementRepo: movementRepo, userRepo: userRepo}
}

// ResolveForSchool tenta, nesta ordem: o criador da entrega mais recente da
// escola, o criador do movimento mais recente da escola, algum admin ativo.
func (ar *ActorResolver) ResolveForSchool(schoolID string) (string, error) {
	actorID, err := ar.deliveryRepo.LatestCreatorForSchool(schoolID)
	if err != nil {
		return "", err
	}
	if actorID != "" {
		return actorID, nil
	}
	actorID, err = ar.movementRepo.LatestCreatorForSchool(schoolID)
	if err != nil {
		return "", err
	}
	if actorID != "" {
		return actorID, nil
	}
	actorID, err = ar.userRepo.AnyActiveAdminID()
	if err != nil {
		return "", err
	}
	if actorID == "" {
		return "", domain.ErrConflict
	}
	return actorID, nil
}
