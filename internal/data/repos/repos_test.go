package repos_test

import (
	"testing"

	"github.com/google/uuid"

	"github.com/voltstack/commerce-backend/internal/data/repos"
	"github.com/voltstack/commerce-backend/internal/data/repos/testutil"
	"github.com/voltstack/commerce-backend/internal/domain"
)

func newProduct(t *testing.T, name, price string, stock int) *domain.Product {
	t.Helper()
	money, err := domain.MoneyFromString(price, domain.DefaultCurrency)
	if err != nil {
		t.Fatalf("MoneyFromString: %v", err)
	}
	p, err := domain.NewProduct(name, "", money, stock, "test")
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	return p
}

func newCustomer(t *testing.T, email string) *domain.Customer {
	t.Helper()
	parsed, err := domain.NewEmail(email)
	if err != nil {
		t.Fatalf("NewEmail: %v", err)
	}
	addr, err := domain.NewAddress("1 Elm St", "Springfield", "IL", "62701", "USA")
	if err != nil {
		t.Fatalf("NewAddress: %v", err)
	}
	c, err := domain.NewCustomer("Test", "Customer", parsed, "", addr)
	if err != nil {
		t.Fatalf("NewCustomer: %v", err)
	}
	return c
}

func TestProductRepoRoundTrip(t *testing.T) {
	db := testutil.OpenTestDB(t)
	dbc := testutil.InTestTx(t, db)
	repo := repos.NewProductRepo(db, testutil.TestLogger(t))

	p := newProduct(t, "RT Widget", "10.00", 5)
	if err := repo.Create(dbc, p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(dbc, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.Name != "RT Widget" {
		t.Fatalf("got %+v", got)
	}
	if !got.Price.Equals(p.Price) {
		t.Fatalf("price round trip: got %s want %s", got.Price, p.Price)
	}

	got.StockQuantity = 3
	if err := repo.Update(dbc, got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	again, err := repo.GetByID(dbc, p.ID)
	if err != nil {
		t.Fatalf("GetByID after update: %v", err)
	}
	if again.StockQuantity != 3 || again.Version != 1 {
		t.Fatalf("stock=%d version=%d, want 3/1", again.StockQuantity, again.Version)
	}
}

func TestProductRepoStaleVersionConflicts(t *testing.T) {
	db := testutil.OpenTestDB(t)
	dbc := testutil.InTestTx(t, db)
	repo := repos.NewProductRepo(db, testutil.TestLogger(t))

	p := newProduct(t, "Stale Widget", "10.00", 5)
	if err := repo.Create(dbc, p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	fresh, err := repo.GetByID(dbc, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if err := repo.Update(dbc, fresh); err != nil {
		t.Fatalf("first Update: %v", err)
	}

	stale := *p // still version 0
	err = repo.Update(dbc, &stale)
	if !domain.IsCode(err, domain.CodeConflict) {
		t.Fatalf("stale update error = %v, want conflict", err)
	}
}

func TestProductRepoDeleteReferenced(t *testing.T) {
	db := testutil.OpenTestDB(t)
	dbc := testutil.InTestTx(t, db)
	products := repos.NewProductRepo(db, testutil.TestLogger(t))
	orders := repos.NewOrderRepo(db, testutil.TestLogger(t))
	customers := repos.NewCustomerRepo(db, testutil.TestLogger(t))

	p := newProduct(t, "Referenced Widget", "10.00", 5)
	if err := products.Create(dbc, p); err != nil {
		t.Fatalf("Create product: %v", err)
	}
	c := newCustomer(t, "repo-delete@example.com")
	if err := customers.Create(dbc, c); err != nil {
		t.Fatalf("Create customer: %v", err)
	}
	o, err := domain.NewOrder(c.ID, domain.PaymentMethodCreditCard, c.Address)
	if err != nil {
		t.Fatalf("NewOrder: %v", err)
	}
	if err := o.AddItem(p, 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := orders.Create(dbc, o); err != nil {
		t.Fatalf("Create order: %v", err)
	}

	err = products.Delete(dbc, p)
	if !domain.IsCode(err, domain.CodeConflict) {
		t.Fatalf("delete error = %v, want conflict", err)
	}
}

func TestOrderRepoPreloadsItems(t *testing.T) {
	db := testutil.OpenTestDB(t)
	dbc := testutil.InTestTx(t, db)
	products := repos.NewProductRepo(db, testutil.TestLogger(t))
	orders := repos.NewOrderRepo(db, testutil.TestLogger(t))
	customers := repos.NewCustomerRepo(db, testutil.TestLogger(t))

	p := newProduct(t, "Preload Widget", "12.50", 8)
	if err := products.Create(dbc, p); err != nil {
		t.Fatalf("Create product: %v", err)
	}
	c := newCustomer(t, "repo-preload@example.com")
	if err := customers.Create(dbc, c); err != nil {
		t.Fatalf("Create customer: %v", err)
	}
	o, err := domain.NewOrder(c.ID, domain.PaymentMethodPayPal, c.Address)
	if err != nil {
		t.Fatalf("NewOrder: %v", err)
	}
	if err := o.AddItem(p, 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := orders.Create(dbc, o); err != nil {
		t.Fatalf("Create order: %v", err)
	}

	got, err := orders.GetByID(dbc, o.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || len(got.Items) != 1 {
		t.Fatalf("got %+v", got)
	}
	if got.Items[0].Quantity != 2 || !got.Items[0].UnitPrice.Equals(p.Price) {
		t.Fatalf("item round trip: %+v", got.Items[0])
	}
}

func TestCustomerRepoGetByEmail(t *testing.T) {
	db := testutil.OpenTestDB(t)
	dbc := testutil.InTestTx(t, db)
	repo := repos.NewCustomerRepo(db, testutil.TestLogger(t))

	c := newCustomer(t, "repo-email@example.com")
	if err := repo.Create(dbc, c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := repo.GetByEmail(dbc, c.Email)
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got == nil || got.ID != c.ID {
		t.Fatalf("got %+v", got)
	}

	missing, err := repo.GetByEmail(dbc, domain.Email("nobody@example.com"))
	if err != nil {
		t.Fatalf("GetByEmail missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown email, got %+v", missing)
	}
}

func TestProductRepoGetByIDAbsent(t *testing.T) {
	db := testutil.OpenTestDB(t)
	dbc := testutil.InTestTx(t, db)
	repo := repos.NewProductRepo(db, testutil.TestLogger(t))

	got, err := repo.GetByID(dbc, uuid.New())
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for absent id, got %+v", got)
	}
}
