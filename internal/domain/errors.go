package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound          = errors.New("recurso nao encontrado")
	ErrInvalidInput      = errors.New("entrada invalida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("nao autorizado")
	ErrForbidden         = errors.New("acesso negado")
	ErrConflict          = errors.New("conflito com o estado atual")
	ErrInsufficientStock = errors.New("saldo insuficiente")
	ErrItemMismatch      = errors.New("itens da conferencia nao correspondem aos itens registrados")
	ErrTerminalStatus    = errors.New("registro em status terminal")
	ErrUnresolvableItem  = errors.New("item sem insumo e sem dados para criar um")
	ErrProtected         = errors.New("recurso referenciado nao pode ser excluido")
	ErrUserNotFound      = errors.New("usuario nao encontrado")
)

// InsufficientStockError carrega o contexto necessário para a mensagem ao usuário:
// nome do insumo, quantidade disponível e escola (vazio = estoque central).
type InsufficientStockError struct {
	SupplyName string
	Available  decimal.Decimal
	SchoolID   string
}

func (e *InsufficientStockError) Error() string {
	if e.SchoolID != "" {
		return fmt.Sprintf("Estoque insuficiente de %s na escola. Disponivel: %s", e.SupplyName, e.Available)
	}
	return fmt.Sprintf("Saldo insuficiente para %s. Disponivel: %s", e.SupplyName, e.Available)
}

// Is permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
