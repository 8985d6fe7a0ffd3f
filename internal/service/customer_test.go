package service

import (
	"context"
	"testing"

	"github.com/jmaddox/groundops/internal/calendar"
	"github.com/jmaddox/groundops/internal/domain"
	"github.com/jmaddox/groundops/internal/repository"
)

func newCustomerFixture(t *testing.T) (*CustomerService, *repository.CustomerRepository) {
	t.Helper()
	repo := repository.NewCustomerRepository(newTestDB(t), nil)
	return NewCustomerService(repo), repo
}

func TestRecordServiceCreatesMissingCustomer(t *testing.T) {
	svc, repo := newCustomerFixture(t)
	ctx := context.Background()

	date := calendar.New(2025, 6, 1)
	if err := svc.RecordService(ctx, "Pat Miller", "12 Elm St", 100, date); err != nil {
		t.Fatalf("RecordService returned error: %v", err)
	}

	customer, err := repo.GetByName(ctx, "Pat Miller")
	if err != nil {
		t.Fatalf("customer was not created: %v", err)
	}
	if customer.LifetimeSpend != 100 {
		t.Errorf("lifetime spend = %v, want 100", customer.LifetimeSpend)
	}
	if !customer.LastServiceDate.Equal(date) {
		t.Errorf("last service date = %v, want %v", customer.LastServiceDate, date)
	}
	if customer.Status != domain.CustomerActive {
		t.Errorf("status = %q, want active", customer.Status)
	}
}

func TestRecordServiceAccumulatesSpend(t *testing.T) {
	svc, repo := newCustomerFixture(t)
	ctx := context.Background()

	if err := svc.RecordService(ctx, "Pat Miller", "12 Elm St", 100, calendar.New(2025, 6, 1)); err != nil {
		t.Fatalf("first RecordService: %v", err)
	}
	if err := svc.RecordService(ctx, "Pat Miller", "", 50, calendar.New(2025, 6, 8)); err != nil {
		t.Fatalf("second RecordService: %v", err)
	}

	customer, _ := repo.GetByName(ctx, "Pat Miller")
	if customer.LifetimeSpend != 150 {
		t.Errorf("lifetime spend = %v, want 150", customer.LifetimeSpend)
	}
	// Empty job address leaves the stored address untouched.
	if customer.Address != "12 Elm St" {
		t.Errorf("address = %q, want unchanged", customer.Address)
	}
	if !customer.LastServiceDate.Equal(calendar.New(2025, 6, 8)) {
		t.Errorf("last service date = %v, want 2025-06-08", customer.LastServiceDate)
	}
}

func TestRecordServiceNeverDecrementsSpend(t *testing.T) {
	svc, repo := newCustomerFixture(t)
	ctx := context.Background()

	if err := svc.RecordService(ctx, "Pat Miller", "12 Elm St", 200, calendar.New(2025, 6, 1)); err != nil {
		t.Fatalf("RecordService: %v", err)
	}
	// A zero-payment service touches the date but not the spend.
	if err := svc.RecordService(ctx, "Pat Miller", "", 0, calendar.New(2025, 6, 15)); err != nil {
		t.Fatalf("RecordService: %v", err)
	}

	customer, _ := repo.GetByName(ctx, "Pat Miller")
	if customer.LifetimeSpend != 200 {
		t.Errorf("lifetime spend = %v, want 200", customer.LifetimeSpend)
	}
}

func TestRecordServiceMatchesExactNameOnly(t *testing.T) {
	svc, repo := newCustomerFixture(t)
	ctx := context.Background()

	if err := svc.RecordService(ctx, "Pat Miller", "", 100, calendar.New(2025, 6, 1)); err != nil {
		t.Fatalf("RecordService: %v", err)
	}
	if err := svc.RecordService(ctx, "pat miller", "", 40, calendar.New(2025, 6, 2)); err != nil {
		t.Fatalf("RecordService: %v", err)
	}

	exact, _ := repo.GetByName(ctx, "Pat Miller")
	if exact.LifetimeSpend != 100 {
		t.Errorf("exact-name record spend = %v, want 100", exact.LifetimeSpend)
	}
	lower, err := repo.GetByName(ctx, "pat miller")
	if err != nil {
		t.Fatalf("differently-cased name should create a separate record: %v", err)
	}
	if lower.LifetimeSpend != 40 {
		t.Errorf("second record spend = %v, want 40", lower.LifetimeSpend)
	}
}

func TestListByStatusFilters(t *testing.T) {
	svc, _ := newCustomerFixture(t)
	ctx := context.Background()

	seed := []domain.Customer{
		{Name: "Active One"},
		{Name: "Active Two", Status: domain.CustomerActive},
		{Name: "VIP", Status: domain.CustomerVIP},
		{Name: "Gone", Status: domain.CustomerCancelled},
	}
	for i := range seed {
		if err := svc.Create(ctx, &seed[i]); err != nil {
			t.Fatalf("seeding %q: %v", seed[i].Name, err)
		}
	}

	active, err := svc.ListByStatus(ctx, domain.CustomerActive)
	if err != nil {
		t.Fatalf("ListByStatus returned error: %v", err)
	}
	// Status defaults to active on create, so the unset seed counts too.
	if len(active) != 2 {
		t.Errorf("active customers = %d, want 2", len(active))
	}

	vip, err := svc.ListByStatus(ctx, domain.CustomerVIP)
	if err != nil {
		t.Fatalf("ListByStatus returned error: %v", err)
	}
	if len(vip) != 1 || vip[0].Name != "VIP" {
		t.Errorf("vip customers = %+v", vip)
	}
}

func TestCreateRejectsOversizedSubAddressList(t *testing.T) {
	svc, _ := newCustomerFixture(t)

	subs := make(domain.SubAddressList, domain.MaxCustomerSubAddresses+1)
	for i := range subs {
		subs[i] = domain.SubAddress{Location: "somewhere"}
	}
	err := svc.Create(context.Background(), &domain.Customer{
		Name:         "Big Condo",
		Type:         domain.CustomerCondo,
		SubAddresses: subs,
	})
	if err == nil {
		t.Fatal("Create accepted an oversized sub-address list")
	}
}
