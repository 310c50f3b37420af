package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semed-merenda/merenda-api/internal/application/dto"
	"github.com/semed-merenda/merenda-api/internal/application/usecase"
	"github.com/semed-merenda/merenda-api/internal/domain"
	"github.com/semed-merenda/merenda-api/internal/domain/entity"
	"github.com/semed-merenda/merenda-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos: só o que a criação de recebimentos consulta.
// ──────────────────────────────────────────────────────────────────────────────

type fakeSupplierRepo struct{ suppliers map[string]*entity.Supplier }

func (f *fakeSupplierRepo) Create(*entity.Supplier) error { return nil }
func (f *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	return f.suppliers[id], nil
}
func (f *fakeSupplierRepo) Update(*entity.Supplier) error { return nil }
func (f *fakeSupplierRepo) List(string, *bool, int, int) ([]*entity.Supplier, error) {
	return nil, nil
}
func (f *fakeSupplierRepo) HasReceipts(string) (bool, error) { return false, nil }
func (f *fakeSupplierRepo) Delete(string) error              { return nil }

type fakeSchoolRepo struct{ schools map[string]*entity.School }

func (f *fakeSchoolRepo) Create(*entity.School) error                  { return nil }
func (f *fakeSchoolRepo) GetByID(id string) (*entity.School, error)    { return f.schools[id], nil }
func (f *fakeSchoolRepo) GetBySlug(slug string) (*entity.School, error) { return nil, nil }
func (f *fakeSchoolRepo) Update(*entity.School) error                  { return nil }
func (f *fakeSchoolRepo) List(string, *bool, int, int) ([]*entity.School, error) {
	return nil, nil
}
func (f *fakeSchoolRepo) SlugExists(string, string) (bool, error) { return false, nil }
func (f *fakeSchoolRepo) Delete(string) error                     { return nil }

type fakeSupplyRepo struct{ supplies map[string]*entity.Supply }

func (f *fakeSupplyRepo) Create(*entity.Supply) error               { return nil }
func (f *fakeSupplyRepo) GetByID(id string) (*entity.Supply, error) { return f.supplies[id], nil }
func (f *fakeSupplyRepo) Update(*entity.Supply) error               { return nil }
func (f *fakeSupplyRepo) List(repository.SupplyFilter, int, int) ([]*entity.Supply, error) {
	return nil, nil
}
func (f *fakeSupplyRepo) FindByNameCategoryUnit(string, string, string) (*entity.Supply, error) {
	return nil, nil
}
func (f *fakeSupplyRepo) HasMovements(string) (bool, error) { return false, nil }
func (f *fakeSupplyRepo) Delete(string) error               { return nil }

type fakeReceiptRepo struct{ created []*entity.SupplierReceipt }

func (f *fakeReceiptRepo) Create(r *entity.SupplierReceipt) error {
	f.created = append(f.created, r)
	return nil
}
func (f *fakeReceiptRepo) GetByID(string) (*entity.SupplierReceipt, error)      { return nil, nil }
func (f *fakeReceiptRepo) GetForUpdate(string) (*entity.SupplierReceipt, error) { return nil, nil }
func (f *fakeReceiptRepo) Update(*entity.SupplierReceipt) error                 { return nil }
func (f *fakeReceiptRepo) ReplaceItems(string, []entity.SupplierReceiptItem) error {
	return nil
}
func (f *fakeReceiptRepo) UpdateItemConference(*entity.SupplierReceiptItem) error { return nil }
func (f *fakeReceiptRepo) Delete(string) error                                    { return nil }
func (f *fakeReceiptRepo) List(repository.ReceiptFilter, int, int) ([]*entity.SupplierReceipt, error) {
	return nil, nil
}

var (
	_ repository.SupplierRepository        = (*fakeSupplierRepo)(nil)
	_ repository.SchoolRepository          = (*fakeSchoolRepo)(nil)
	_ repository.SupplyRepository          = (*fakeSupplyRepo)(nil)
	_ repository.SupplierReceiptRepository = (*fakeReceiptRepo)(nil)
)

func newReceiptUseCase() (*usecase.ReceiptUseCase, *fakeReceiptRepo) {
	receiptRepo := &fakeReceiptRepo{}
	uc := usecase.NewReceiptUseCase(
		receiptRepo,
		&fakeSupplierRepo{suppliers: map[string]*entity.Supplier{
			"supplier-1": {ID: "supplier-1", Name: "Distribuidora Bom Preço", IsActive: true},
		}},
		&fakeSchoolRepo{},
		&fakeSupplyRepo{},
	)
	return uc, receiptRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// Criação: quantidade esperada
// ──────────────────────────────────────────────────────────────────────────────

// Item bônus não planejado: esperado zero é válido, o que chega de fato
// aparece só na conferência.
func TestCreateReceipt_QuantidadeEsperadaZero_Aceita(t *testing.T) {
	uc, receiptRepo := newReceiptUseCase()

	resp, err := uc.Create(dto.CreateReceiptRequest{
		SupplierID: "supplier-1",
		Items: []dto.ReceiptItemRequest{
			{RawName: "Farinha de Mandioca", Category: "farinhas", Unit: entity.UnitKG,
				ExpectedQuantity: decimal.Zero},
		},
	}, "user-admin-1")
	require.NoError(t, err)

	require.Len(t, receiptRepo.created, 1)
	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].ExpectedQuantity.IsZero())
	assert.Equal(t, entity.ReceiptStatusDraft, resp.Status)
}

func TestCreateReceipt_QuantidadeEsperadaNegativa_Rejeitada(t *testing.T) {
	uc, receiptRepo := newReceiptUseCase()

	_, err := uc.Create(dto.CreateReceiptRequest{
		SupplierID: "supplier-1",
		Items: []dto.ReceiptItemRequest{
			{RawName: "Farinha de Mandioca", Category: "farinhas", Unit: entity.UnitKG,
				ExpectedQuantity: decimal.NewFromInt(-1)},
		},
	}, "user-admin-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, receiptRepo.created)
}
