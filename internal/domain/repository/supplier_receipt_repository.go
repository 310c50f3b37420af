package repository

import "github.com/semed-merenda/merenda-api/internal/domain/entity"

// ReceiptFilter filtros de listagem de recebimentos.
type ReceiptFilter struct {
	SupplierID string
	SchoolID   string
	Status     string
}

// SupplierReceiptRepository define a porta de persistência do agregado de
// recebimento de fornecedor.
type SupplierReceiptRepository interface {
	Create(receipt *entity.SupplierReceipt) error
	GetByID(id string) (*entity.SupplierReceipt, error)
	// GetForUpdate devolve o recebimento com itens, bloqueando a linha do
	// recebimento contra submissões concorrentes.
	GetForUpdate(id string) (*entity.SupplierReceipt, error)
	Update(receipt *entity.SupplierReceipt) error
	ReplaceItems(receiptID string, items []entity.SupplierReceiptItem) error
	// UpdateItemConference grava received_quantity, divergence_note, supply_id
	// e supply_created_id de um item.
	UpdateItemConference(item *entity.SupplierReceiptItem) error
	Delete(id string) error
	List(filter ReceiptFilter, limit, offset int) ([]*entity.SupplierReceipt, error)
}

// SupplierRepository define a porta de persistência de fornecedores.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	List(query string, isActive *bool, limit, offset int) ([]*entity.Supplier, error)
	// HasReceipts indica se o fornecedor já possui recebimentos (protect-on-delete).
	HasReceipts(id string) (bool, error)
	Delete(id string) error
}
