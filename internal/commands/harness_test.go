package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/voltstack/commerce-backend/internal/commands"
	"github.com/voltstack/commerce-backend/internal/data/repos"
	"github.com/voltstack/commerce-backend/internal/data/uow"
	"github.com/voltstack/commerce-backend/internal/domain"
	"github.com/voltstack/commerce-backend/internal/platform/dbctx"
	"github.com/voltstack/commerce-backend/internal/platform/logger"
)

// memStore backs the fake repositories with snapshot/restore transaction
// semantics, so handler tests can observe that a failed command leaves no
// partial writes behind.
type memStore struct {
	products     map[uuid.UUID]*domain.Product
	productOrder []uuid.UUID
	customers    map[uuid.UUID]*domain.Customer
	orders       map[uuid.UUID]*domain.Order

	snap *storeSnapshot
}

type storeSnapshot struct {
	products     map[uuid.UUID]*domain.Product
	productOrder []uuid.UUID
	customers    map[uuid.UUID]*domain.Customer
	orders       map[uuid.UUID]*domain.Order
}

func newMemStore() *memStore {
	return &memStore{
		products:  map[uuid.UUID]*domain.Product{},
		customers: map[uuid.UUID]*domain.Customer{},
		orders:    map[uuid.UUID]*domain.Order{},
	}
}

func cloneProduct(p *domain.Product) *domain.Product {
	c := *p
	return &c
}

func cloneCustomer(c *domain.Customer) *domain.Customer {
	out := *c
	return &out
}

func cloneOrder(o *domain.Order) *domain.Order {
	out := *o
	out.Items = append([]domain.OrderItem(nil), o.Items...)
	return &out
}

func (s *memStore) begin() {
	snap := &storeSnapshot{
		products:     make(map[uuid.UUID]*domain.Product, len(s.products)),
		productOrder: append([]uuid.UUID(nil), s.productOrder...),
		customers:    make(map[uuid.UUID]*domain.Customer, len(s.customers)),
		orders:       make(map[uuid.UUID]*domain.Order, len(s.orders)),
	}
	for id, p := range s.products {
		snap.products[id] = cloneProduct(p)
	}
	for id, c := range s.customers {
		snap.customers[id] = cloneCustomer(c)
	}
	for id, o := range s.orders {
		snap.orders[id] = cloneOrder(o)
	}
	s.snap = snap
}

func (s *memStore) rollback() {
	if s.snap == nil {
		return
	}
	s.products = s.snap.products
	s.productOrder = s.snap.productOrder
	s.customers = s.snap.customers
	s.orders = s.snap.orders
	s.snap = nil
}

func (s *memStore) commit() { s.snap = nil }

// txRunner is a unit of work over memStore: fn failure restores the
// pre-transaction snapshot.
type txRunner struct {
	store *memStore
}

func (r *txRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	r.store.begin()
	if err := fn(dbctx.Context{Ctx: ctx}); err != nil {
		r.store.rollback()
		return err
	}
	r.store.commit()
	return nil
}

type fakeProductRepo struct {
	store *memStore
}

func (r *fakeProductRepo) GetByID(_ dbctx.Context, id uuid.UUID) (*domain.Product, error) {
	row, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	return cloneProduct(row), nil
}

func (r *fakeProductRepo) GetPaged(_ dbctx.Context, page, pageSize int) ([]*domain.Product, int64, error) {
	total := int64(len(r.store.productOrder))
	start := (page - 1) * pageSize
	if start >= len(r.store.productOrder) {
		return nil, total, nil
	}
	end := start + pageSize
	if end > len(r.store.productOrder) {
		end = len(r.store.productOrder)
	}
	out := make([]*domain.Product, 0, end-start)
	for _, id := range r.store.productOrder[start:end] {
		out = append(out, cloneProduct(r.store.products[id]))
	}
	return out, total, nil
}

func (r *fakeProductRepo) Create(_ dbctx.Context, row *domain.Product) error {
	r.store.products[row.ID] = cloneProduct(row)
	r.store.productOrder = append(r.store.productOrder, row.ID)
	return nil
}

func (r *fakeProductRepo) Update(_ dbctx.Context, row *domain.Product) error {
	existing, ok := r.store.products[row.ID]
	if !ok || existing.Version != row.Version {
		return domain.NewError(domain.CodeConflict, "fakeProductRepo.Update", "product changed concurrently", nil)
	}
	saved := cloneProduct(row)
	saved.Version = row.Version + 1
	r.store.products[row.ID] = saved
	row.Version++
	return nil
}

func (r *fakeProductRepo) Delete(_ dbctx.Context, row *domain.Product) error {
	for _, o := range r.store.orders {
		for _, item := range o.Items {
			if item.ProductID == row.ID {
				return domain.NewError(domain.CodeConflict, "fakeProductRepo.Delete",
					"product is referenced by existing orders", nil)
			}
		}
	}
	delete(r.store.products, row.ID)
	kept := r.store.productOrder[:0]
	for _, id := range r.store.productOrder {
		if id != row.ID {
			kept = append(kept, id)
		}
	}
	r.store.productOrder = kept
	return nil
}

type fakeOrderRepo struct {
	store *memStore
}

func (r *fakeOrderRepo) GetByID(_ dbctx.Context, id uuid.UUID) (*domain.Order, error) {
	row, ok := r.store.orders[id]
	if !ok {
		return nil, nil
	}
	return cloneOrder(row), nil
}

func (r *fakeOrderRepo) GetPagedByCustomer(_ dbctx.Context, customerID uuid.UUID, page, pageSize int) ([]*domain.Order, int64, error) {
	var matched []*domain.Order
	for _, o := range r.store.orders {
		if customerID == uuid.Nil || o.CustomerID == customerID {
			matched = append(matched, cloneOrder(o))
		}
	}
	total := int64(len(matched))
	start := (page - 1) * pageSize
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *fakeOrderRepo) Create(_ dbctx.Context, row *domain.Order) error {
	r.store.orders[row.ID] = cloneOrder(row)
	return nil
}

func (r *fakeOrderRepo) Update(_ dbctx.Context, row *domain.Order) error {
	existing, ok := r.store.orders[row.ID]
	if !ok || existing.Version != row.Version {
		return domain.NewError(domain.CodeConflict, "fakeOrderRepo.Update", "order changed concurrently", nil)
	}
	saved := cloneOrder(row)
	saved.Version = row.Version + 1
	r.store.orders[row.ID] = saved
	row.Version++
	return nil
}

func (r *fakeOrderRepo) SaveItems(_ dbctx.Context, items []domain.OrderItem) error {
	byOrder := map[uuid.UUID][]domain.OrderItem{}
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}
	for orderID, lines := range byOrder {
		if existing, ok := r.store.orders[orderID]; ok {
			existing.Items = append([]domain.OrderItem(nil), lines...)
		}
	}
	return nil
}

type fakeCustomerRepo struct {
	store *memStore
}

func (r *fakeCustomerRepo) GetByID(_ dbctx.Context, id uuid.UUID) (*domain.Customer, error) {
	row, ok := r.store.customers[id]
	if !ok {
		return nil, nil
	}
	return cloneCustomer(row), nil
}

func (r *fakeCustomerRepo) GetByEmail(_ dbctx.Context, email domain.Email) (*domain.Customer, error) {
	for _, c := range r.store.customers {
		if c.Email == email {
			return cloneCustomer(c), nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) Create(_ dbctx.Context, row *domain.Customer) error {
	r.store.customers[row.ID] = cloneCustomer(row)
	return nil
}

func (r *fakeCustomerRepo) Update(_ dbctx.Context, row *domain.Customer) error {
	r.store.customers[row.ID] = cloneCustomer(row)
	return nil
}

var (
	_ repos.ProductRepo  = (*fakeProductRepo)(nil)
	_ repos.OrderRepo    = (*fakeOrderRepo)(nil)
	_ repos.CustomerRepo = (*fakeCustomerRepo)(nil)
)

// recordingCache tracks invalidations so tests can assert that stock-mutating
// commands drop the paged listing entries.
type recordingCache struct {
	invalidations []string
}

func (c *recordingCache) GetJSON(context.Context, string, any) bool          { return false }
func (c *recordingCache) SetJSON(context.Context, string, any, time.Duration) {}
func (c *recordingCache) InvalidatePrefix(_ context.Context, prefix string) {
	c.invalidations = append(c.invalidations, prefix)
}

var _ commands.ListingCache = (*recordingCache)(nil)

type harness struct {
	store     *memStore
	cache     *recordingCache
	products  *commands.ProductCommands
	orders    *commands.OrderCommands
	customers *commands.CustomerCommands
	dispatch  *commands.Dispatcher
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	logg, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	store := newMemStore()
	cache := &recordingCache{}
	deps := uow.Deps{UoW: &txRunner{store: store}, Hooks: uow.NoopHooks()}

	productRepo := &fakeProductRepo{store: store}
	orderRepo := &fakeOrderRepo{store: store}
	customerRepo := &fakeCustomerRepo{store: store}

	products := commands.NewProductCommands(deps, productRepo, cache, logg)
	orders := commands.NewOrderCommands(deps, orderRepo, productRepo, customerRepo, cache, logg)
	customers := commands.NewCustomerCommands(deps, customerRepo, logg)
	return &harness{
		store:     store,
		cache:     cache,
		products:  products,
		orders:    orders,
		customers: customers,
		dispatch:  commands.NewDispatcher(products, orders, customers),
	}
}

func (h *harness) seedProduct(t *testing.T, name, price string, stock int) *domain.Product {
	t.Helper()
	money, err := domain.MoneyFromString(price, domain.DefaultCurrency)
	if err != nil {
		t.Fatalf("MoneyFromString(%q): %v", price, err)
	}
	p, err := domain.NewProduct(name, "", money, stock, "test")
	if err != nil {
		t.Fatalf("NewProduct(%q): %v", name, err)
	}
	h.store.products[p.ID] = p
	h.store.productOrder = append(h.store.productOrder, p.ID)
	return p
}

func (h *harness) seedCustomer(t *testing.T, email string) *domain.Customer {
	t.Helper()
	addr, err := domain.NewAddress("1 Elm St", "Springfield", "IL", "62701", "USA")
	if err != nil {
		t.Fatalf("NewAddress: %v", err)
	}
	parsed, err := domain.NewEmail(email)
	if err != nil {
		t.Fatalf("NewEmail(%q): %v", email, err)
	}
	c, err := domain.NewCustomer("Test", "Customer", parsed, "", addr)
	if err != nil {
		t.Fatalf("NewCustomer: %v", err)
	}
	h.store.customers[c.ID] = c
	return c
}

func (h *harness) seedOrder(t *testing.T, customerID uuid.UUID) *domain.Order {
	t.Helper()
	addr, err := domain.NewAddress("1 Elm St", "Springfield", "IL", "62701", "USA")
	if err != nil {
		t.Fatalf("NewAddress: %v", err)
	}
	o, err := domain.NewOrder(customerID, domain.PaymentMethodCreditCard, addr)
	if err != nil {
		t.Fatalf("NewOrder: %v", err)
	}
	h.store.orders[o.ID] = o
	return o
}

func requireFailure(t *testing.T, out commands.Outcome, err error, code domain.ErrorCode) {
	t.Helper()
	if err != nil {
		t.Fatalf("expected business failure %s, got error: %v", code, err)
	}
	if out.IsSuccess() {
		t.Fatalf("expected failure %s, got success", code)
	}
	if out.FailureCode() != code {
		t.Fatalf("failure code = %s, want %s (message %q)", out.FailureCode(), code, out.FailureMessage())
	}
}
