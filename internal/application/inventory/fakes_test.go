package inventory_test

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/semed-merenda/merenda-api/internal/application/inventory"
	"github.com/semed-merenda/merenda-api/internal/domain"
	"github.com/semed-merenda/merenda-api/internal/domain/entity"
	"github.com/semed-merenda/merenda-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dublês em memória
//
// Um único fakeStore guarda todo o estado; os repositórios fake são visões
// sobre ele. O fakeTxRunner tira um snapshot profundo antes do callback e
// restaura em caso de erro, reproduzindo o all-or-nothing do TxRunner real.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	supplies      map[string]*entity.Supply
	balances      map[string]*entity.StockBalance // chave: schoolID+"/"+supplyID
	movements     []*entity.StockMovement
	deliveries    map[string]*entity.Delivery
	receipts      map[string]*entity.SupplierReceipt
	notifications []*entity.Notification
	schools       map[string]*entity.School
	users         map[string]*entity.User
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		supplies:   make(map[string]*entity.Supply),
		balances:   make(map[string]*entity.StockBalance),
		deliveries: make(map[string]*entity.Delivery),
		receipts:   make(map[string]*entity.SupplierReceipt),
		schools:    make(map[string]*entity.School),
		users:      make(map[string]*entity.User),
	}
}

func balanceKey(supplyID string, scope entity.StockScope) string {
	return scope.SchoolID() + "/" + supplyID
}

// snapshot clona o estado mutável do store para restauração em rollback.
func (s *fakeStore) snapshot() *fakeStore {
	snap := newFakeStore()
	for id, sp := range s.supplies {
		cp := *sp
		snap.supplies[id] = &cp
	}
	for k, b := range s.balances {
		cp := *b
		snap.balances[k] = &cp
	}
	snap.movements = make([]*entity.StockMovement, len(s.movements))
	copy(snap.movements, s.movements)
	for id, d := range s.deliveries {
		cp := *d
		cp.Items = make([]entity.DeliveryItem, len(d.Items))
		copy(cp.Items, d.Items)
		snap.deliveries[id] = &cp
	}
	for id, r := range s.receipts {
		cp := *r
		cp.Items = make([]entity.SupplierReceiptItem, len(r.Items))
		copy(cp.Items, r.Items)
		snap.receipts[id] = &cp
	}
	snap.notifications = make([]*entity.Notification, len(s.notifications))
	copy(snap.notifications, s.notifications)
	for id, sc := range s.schools {
		cp := *sc
		snap.schools[id] = &cp
	}
	for id, u := range s.users {
		cp := *u
		snap.users[id] = &cp
	}
	return snap
}

func (s *fakeStore) restore(snap *fakeStore) {
	s.supplies = snap.supplies
	s.balances = snap.balances
	s.movements = snap.movements
	s.deliveries = snap.deliveries
	s.receipts = snap.receipts
	s.notifications = snap.notifications
	s.schools = snap.schools
	s.users = snap.users
}

// fakeTxRunner executa o callback sobre o store, desfazendo tudo em erro.
type fakeTxRunner struct {
	store *fakeStore
}

var _ inventory.TxRunner = (*fakeTxRunner)(nil)

func (tr *fakeTxRunner) Run(_ context.Context, fn func(r inventory.TxRepos) error) error {
	snap := tr.store.snapshot()
	err := fn(inventory.TxRepos{
		Supplies:      &fakeSupplyRepo{store: tr.store},
		Balances:      &fakeBalanceRepo{store: tr.store},
		Movements:     &fakeMovementRepo{store: tr.store},
		Deliveries:    &fakeDeliveryRepo{store: tr.store},
		Receipts:      &fakeReceiptRepo{store: tr.store},
		Notifications: &fakeNotificationRepo{store: tr.store},
	})
	if err != nil {
		tr.store.restore(snap)
	}
	return err
}

// ── SupplyRepository ─────────────────────────────────────────────────────────

type fakeSupplyRepo struct{ store *fakeStore }

var _ repository.SupplyRepository = (*fakeSupplyRepo)(nil)

func (f *fakeSupplyRepo) Create(supply *entity.Supply) error {
	f.store.supplies[supply.ID] = supply
	return nil
}

func (f *fakeSupplyRepo) GetByID(id string) (*entity.Supply, error) {
	return f.store.supplies[id], nil
}

func (f *fakeSupplyRepo) Update(supply *entity.Supply) error {
	if _, ok := f.store.supplies[supply.ID]; !ok {
		return domain.ErrNotFound
	}
	f.store.supplies[supply.ID] = supply
	return nil
}

func (f *fakeSupplyRepo) List(_ repository.SupplyFilter, _, _ int) ([]*entity.Supply, error) {
	out := make([]*entity.Supply, 0, len(f.store.supplies))
	for _, sp := range f.store.supplies {
		out = append(out, sp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeSupplyRepo) FindByNameCategoryUnit(name, category, unit string) (*entity.Supply, error) {
	for _, sp := range f.store.supplies {
		if strings.EqualFold(sp.Name, name) && strings.EqualFold(sp.Category, category) && sp.Unit == unit {
			return sp, nil
		}
	}
	return nil, nil
}

func (f *fakeSupplyRepo) HasMovements(id string) (bool, error) {
	for _, m := range f.store.movements {
		if m.SupplyID == id {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSupplyRepo) Delete(id string) error {
	delete(f.store.supplies, id)
	return nil
}

// ── StockBalanceRepository ───────────────────────────────────────────────────

type fakeBalanceRepo struct{ store *fakeStore }

var _ repository.StockBalanceRepository = (*fakeBalanceRepo)(nil)

func (f *fakeBalanceRepo) Get(supplyID string, scope entity.StockScope) (*entity.StockBalance, error) {
	if b, ok := f.store.balances[balanceKey(supplyID, scope)]; ok {
		return b, nil
	}
	return &entity.StockBalance{SupplyID: supplyID, Scope: scope, Quantity: decimal.Zero}, nil
}

func (f *fakeBalanceRepo) GetForUpdate(supplyID string, scope entity.StockScope) (*entity.StockBalance, error) {
	key := balanceKey(supplyID, scope)
	if b, ok := f.store.balances[key]; ok {
		return b, nil
	}
	b := &entity.StockBalance{SupplyID: supplyID, Scope: scope, Quantity: decimal.Zero}
	f.store.balances[key] = b
	return b, nil
}

func (f *fakeBalanceRepo) Upsert(balance *entity.StockBalance) error {
	f.store.balances[balanceKey(balance.SupplyID, balance.Scope)] = balance
	return nil
}

func (f *fakeBalanceRepo) ListCentral(_ repository.StockBalanceFilter, _, _ int) ([]*repository.StockRow, error) {
	return f.listScope(entity.CentralScope()), nil
}

func (f *fakeBalanceRepo) ListBySchool(schoolID string) ([]*repository.StockRow, error) {
	return f.listScope(entity.SchoolScope(schoolID)), nil
}

func (f *fakeBalanceRepo) listScope(scope entity.StockScope) []*repository.StockRow {
	var out []*repository.StockRow
	for _, b := range f.store.balances {
		if b.Scope != scope {
			continue
		}
		supply := f.store.supplies[b.SupplyID]
		if supply == nil {
			continue
		}
		out = append(out, &repository.StockRow{Balance: *b, Supply: *supply})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Supply.Name < out[j].Supply.Name })
	return out
}

func (f *fakeBalanceRepo) SetSchoolMinStock(schoolID, supplyID string, minStock decimal.Decimal) error {
	scope := entity.SchoolScope(schoolID)
	b, _ := f.GetForUpdate(supplyID, scope)
	b.MinStock = minStock
	return f.Upsert(b)
}

// ── StockMovementRepository ──────────────────────────────────────────────────

type fakeMovementRepo struct{ store *fakeStore }

var _ repository.StockMovementRepository = (*fakeMovementRepo)(nil)

func (f *fakeMovementRepo) Create(movement *entity.StockMovement) error {
	f.store.movements = append(f.store.movements, movement)
	return nil
}

func (f *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	for _, m := range f.store.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeMovementRepo) List(filter repository.MovementFilter, _, _ int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range f.store.movements {
		if filter.SupplyID != "" && m.SupplyID != filter.SupplyID {
			continue
		}
		if filter.SchoolID != "" && m.Scope.SchoolID() != filter.SchoolID {
			continue
		}
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMovementRepo) LatestCreatorForSchool(schoolID string) (string, error) {
	for i := len(f.store.movements) - 1; i >= 0; i-- {
		m := f.store.movements[i]
		if m.Scope.SchoolID() == schoolID && m.CreatedBy != "" {
			return m.CreatedBy, nil
		}
	}
	return "", nil
}

// ── DeliveryRepository ───────────────────────────────────────────────────────

type fakeDeliveryRepo struct{ store *fakeStore }

var _ repository.DeliveryRepository = (*fakeDeliveryRepo)(nil)

func (f *fakeDeliveryRepo) Create(delivery *entity.Delivery) error {
	f.store.deliveries[delivery.ID] = delivery
	return nil
}

func (f *fakeDeliveryRepo) GetByID(id string) (*entity.Delivery, error) {
	return f.store.deliveries[id], nil
}

func (f *fakeDeliveryRepo) GetForUpdate(id string) (*entity.Delivery, error) {
	return f.store.deliveries[id], nil
}

func (f *fakeDeliveryRepo) Update(delivery *entity.Delivery) error {
	if _, ok := f.store.deliveries[delivery.ID]; !ok {
		return domain.ErrNotFound
	}
	f.store.deliveries[delivery.ID] = delivery
	return nil
}

func (f *fakeDeliveryRepo) ReplaceItems(deliveryID string, items []entity.DeliveryItem) error {
	d, ok := f.store.deliveries[deliveryID]
	if !ok {
		return domain.ErrNotFound
	}
	d.Items = items
	return nil
}

func (f *fakeDeliveryRepo) UpdateItemConference(item *entity.DeliveryItem) error {
	d, ok := f.store.deliveries[item.DeliveryID]
	if !ok {
		return domain.ErrNotFound
	}
	for i := range d.Items {
		if d.Items[i].ID == item.ID {
			d.Items[i].ReceivedQuantity = item.ReceivedQuantity
			d.Items[i].DivergenceNote = item.DivergenceNote
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeDeliveryRepo) Delete(id string) error {
	delete(f.store.deliveries, id)
	return nil
}

func (f *fakeDeliveryRepo) List(filter repository.DeliveryFilter, _, _ int) ([]*entity.Delivery, error) {
	var out []*entity.Delivery
	for _, d := range f.store.deliveries {
		if filter.SchoolID != "" && d.SchoolID != filter.SchoolID {
			continue
		}
		if filter.Status != "" && d.Status != filter.Status {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeDeliveryRepo) LatestEnabledForSchool(schoolID string) (*entity.Delivery, error) {
	var latest *entity.Delivery
	for _, d := range f.store.deliveries {
		if d.SchoolID != schoolID || !d.ConferenceEnabled {
			continue
		}
		if latest == nil || (d.SentAt != nil && latest.SentAt != nil && d.SentAt.After(*latest.SentAt)) {
			latest = d
		}
	}
	return latest, nil
}

func (f *fakeDeliveryRepo) LatestCreatorForSchool(schoolID string) (string, error) {
	var latest *entity.Delivery
	for _, d := range f.store.deliveries {
		if d.SchoolID != schoolID || d.CreatedBy == "" {
			continue
		}
		if latest == nil || d.CreatedAt.After(latest.CreatedAt) {
			latest = d
		}
	}
	if latest == nil {
		return "", nil
	}
	return latest.CreatedBy, nil
}

// ── SupplierReceiptRepository ────────────────────────────────────────────────

type fakeReceiptRepo struct{ store *fakeStore }

var _ repository.SupplierReceiptRepository = (*fakeReceiptRepo)(nil)

func (f *fakeReceiptRepo) Create(receipt *entity.SupplierReceipt) error {
	f.store.receipts[receipt.ID] = receipt
	return nil
}

func (f *fakeReceiptRepo) GetByID(id string) (*entity.SupplierReceipt, error) {
	return f.store.receipts[id], nil
}

func (f *fakeReceiptRepo) GetForUpdate(id string) (*entity.SupplierReceipt, error) {
	return f.store.receipts[id], nil
}

func (f *fakeReceiptRepo) Update(receipt *entity.SupplierReceipt) error {
	if _, ok := f.store.receipts[receipt.ID]; !ok {
		return domain.ErrNotFound
	}
	f.store.receipts[receipt.ID] = receipt
	return nil
}

func (f *fakeReceiptRepo) ReplaceItems(receiptID string, items []entity.SupplierReceiptItem) error {
	r, ok := f.store.receipts[receiptID]
	if !ok {
		return domain.ErrNotFound
	}
	r.Items = items
	return nil
}

func (f *fakeReceiptRepo) UpdateItemConference(item *entity.SupplierReceiptItem) error {
	r, ok := f.store.receipts[item.ReceiptID]
	if !ok {
		return domain.ErrNotFound
	}
	for i := range r.Items {
		if r.Items[i].ID == item.ID {
			r.Items[i].SupplyID = item.SupplyID
			r.Items[i].ReceivedQuantity = item.ReceivedQuantity
			r.Items[i].DivergenceNote = item.DivergenceNote
			r.Items[i].SupplyCreatedID = item.SupplyCreatedID
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeReceiptRepo) Delete(id string) error {
	delete(f.store.receipts, id)
	return nil
}

func (f *fakeReceiptRepo) List(filter repository.ReceiptFilter, _, _ int) ([]*entity.SupplierReceipt, error) {
	var out []*entity.SupplierReceipt
	for _, r := range f.store.receipts {
		if filter.SupplierID != "" && r.SupplierID != filter.SupplierID {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// ── NotificationRepository ───────────────────────────────────────────────────

type fakeNotificationRepo struct{ store *fakeStore }

var _ repository.NotificationRepository = (*fakeNotificationRepo)(nil)

func (f *fakeNotificationRepo) Create(notification *entity.Notification) error {
	f.store.notifications = append(f.store.notifications, notification)
	return nil
}

func (f *fakeNotificationRepo) List(filter repository.NotificationFilter, _, _ int) ([]*entity.Notification, error) {
	var out []*entity.Notification
	for _, n := range f.store.notifications {
		if filter.SchoolID != "" && n.SchoolID != filter.SchoolID {
			continue
		}
		if filter.IsAlert != nil && n.IsAlert != *filter.IsAlert {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (f *fakeNotificationRepo) MarkRead(id string) error {
	for _, n := range f.store.notifications {
		if n.ID == id {
			n.IsRead = true
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeNotificationRepo) MarkAllRead() error {
	for _, n := range f.store.notifications {
		n.IsRead = true
	}
	return nil
}

// ── SchoolRepository ─────────────────────────────────────────────────────────

type fakeSchoolRepo struct{ store *fakeStore }

var _ repository.SchoolRepository = (*fakeSchoolRepo)(nil)

func (f *fakeSchoolRepo) Create(school *entity.School) error {
	f.store.schools[school.ID] = school
	return nil
}

func (f *fakeSchoolRepo) GetByID(id string) (*entity.School, error) {
	return f.store.schools[id], nil
}

func (f *fakeSchoolRepo) GetBySlug(slug string) (*entity.School, error) {
	for _, sc := range f.store.schools {
		if sc.PublicSlug == slug {
			return sc, nil
		}
	}
	return nil, nil
}

func (f *fakeSchoolRepo) Update(school *entity.School) error {
	f.store.schools[school.ID] = school
	return nil
}

func (f *fakeSchoolRepo) List(_ string, _ *bool, _, _ int) ([]*entity.School, error) {
	var out []*entity.School
	for _, sc := range f.store.schools {
		out = append(out, sc)
	}
	return out, nil
}

func (f *fakeSchoolRepo) SlugExists(slug, excludeID string) (bool, error) {
	for _, sc := range f.store.schools {
		if sc.PublicSlug == slug && sc.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSchoolRepo) Delete(id string) error {
	delete(f.store.schools, id)
	return nil
}

// ── UserRepository ───────────────────────────────────────────────────────────

type fakeUserRepo struct{ store *fakeStore }

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func (f *fakeUserRepo) Create(user *entity.User) error {
	f.store.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	return f.store.users[id], nil
}

func (f *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range f.store.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(user *entity.User) error {
	f.store.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) AnyActiveAdminID() (string, error) {
	ids := make([]string, 0, len(f.store.users))
	for id, u := range f.store.users {
		if u.Role == entity.RoleAdmin && u.IsActive {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return "", nil
	}
	sort.Strings(ids)
	return ids[0], nil
}
