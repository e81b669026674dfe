package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"washpos/backend/internal/domain"
	"washpos/backend/internal/store"
	"washpos/backend/internal/store/memory"
)

// Wednesday, January 10 2024.
var testNow = time.Date(2024, time.January, 10, 14, 30, 0, 0, time.UTC)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc := New(memory.NewSeeded(), nil, nil, Config{
		Baselines: domain.Baselines{WeekCents: 1_500_000, MonthCents: 6_500_000, YearCents: 80_000_000},
		Now:       func() time.Time { return testNow },
	})
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func TestCheckoutCashComputesChange(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.Checkout(context.Background(), domain.CheckoutRequest{
		Items:             []domain.CheckoutItem{{ProductID: "w-s", Quantity: 1}},
		PaymentMethod:     domain.PaymentCash,
		CashReceivedCents: 10000,
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	tx := resp.Transaction
	if tx.SubtotalCents != 8900 || tx.TaxCents != 0 || tx.TotalCents != 8900 {
		t.Fatalf("unexpected totals: %+v", tx)
	}
	if tx.ChangeCents != 1100 {
		t.Fatalf("expected change 1100, got %d", tx.ChangeCents)
	}
	if tx.ID == "" || !tx.Timestamp.Equal(testNow) {
		t.Fatalf("missing ID or wrong timestamp: %+v", tx)
	}

	// The appended transaction is immediately visible in the current
	// week view, in the Wednesday bucket.
	view, err := svc.PeriodView(context.Background(), domain.PeriodWeek, 0)
	if err != nil {
		t.Fatalf("PeriodView: %v", err)
	}
	if view.Buckets[2].TotalCents != 8900 {
		t.Fatalf("checkout not visible in week view: %+v", view.Buckets)
	}
}

func TestCheckoutAppliesTaxRate(t *testing.T) {
	svc := New(memory.NewSeeded(), nil, nil, Config{
		TaxRatePercent: 7,
		Now:            func() time.Time { return testNow },
	})
	defer svc.Close()

	resp, err := svc.Checkout(context.Background(), domain.CheckoutRequest{
		Items:             []domain.CheckoutItem{{ProductID: "w-s", Quantity: 1}},
		PaymentMethod:     domain.PaymentCash,
		CashReceivedCents: 20000,
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if resp.Transaction.TaxCents != 623 {
		t.Fatalf("expected 7%% of 8900 rounded = 623, got %d", resp.Transaction.TaxCents)
	}
	if resp.Transaction.TotalCents != 9523 {
		t.Fatalf("expected total 9523, got %d", resp.Transaction.TotalCents)
	}
}

func TestCheckoutRejectsInsufficientCash(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Checkout(context.Background(), domain.CheckoutRequest{
		Items:             []domain.CheckoutItem{{ProductID: "w-s", Quantity: 1}},
		PaymentMethod:     domain.PaymentCash,
		CashReceivedCents: 8899,
	})
	if !errors.Is(err, store.ErrInvalidTransaction) {
		t.Fatalf("expected ErrInvalidTransaction, got %v", err)
	}

	txs, _ := svc.Transactions(context.Background(), 10)
	if len(txs) != 0 {
		t.Fatal("refused checkout must not mutate the store")
	}
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Checkout(context.Background(), domain.CheckoutRequest{PaymentMethod: domain.PaymentCash})
	if !errors.Is(err, store.ErrInvalidTransaction) {
		t.Fatalf("expected ErrInvalidTransaction, got %v", err)
	}

	_, err = svc.Checkout(context.Background(), domain.CheckoutRequest{
		Items:         []domain.CheckoutItem{{ProductID: "w-s", Quantity: 0}},
		PaymentMethod: domain.PaymentCash,
	})
	if !errors.Is(err, store.ErrInvalidTransaction) {
		t.Fatalf("zero-quantity cart should be rejected, got %v", err)
	}
}

func TestCheckoutRejectsUnknownProduct(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Checkout(context.Background(), domain.CheckoutRequest{
		Items:             []domain.CheckoutItem{{ProductID: "nope", Quantity: 1}},
		PaymentMethod:     domain.PaymentCash,
		CashReceivedCents: 100000,
	})
	if !errors.Is(err, store.ErrInvalidTransaction) {
		t.Fatalf("expected ErrInvalidTransaction, got %v", err)
	}
}

func TestCheckoutQRIgnoresTender(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.Checkout(context.Background(), domain.CheckoutRequest{
		Items:         []domain.CheckoutItem{{ProductID: "w-m", Quantity: 2}},
		PaymentMethod: domain.PaymentQR,
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if resp.Transaction.TotalCents != 19800 {
		t.Fatalf("expected total 19800, got %d", resp.Transaction.TotalCents)
	}
	if resp.Transaction.ChangeCents != 0 {
		t.Fatalf("QR payments have no change, got %d", resp.Transaction.ChangeCents)
	}
}

func TestCheckoutVariantPricing(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.Checkout(context.Background(), domain.CheckoutRequest{
		Items: []domain.CheckoutItem{
			{ProductID: "w-m:deep_clean", Quantity: 1},
			{ProductID: "w-xl:full_set", Quantity: 1},
		},
		PaymentMethod: domain.PaymentQR,
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	items := resp.Transaction.Items
	if items[0].Product.PriceCents != 12900 {
		t.Fatalf("M deep clean should be 9900+3000, got %d", items[0].Product.PriceCents)
	}
	if items[0].Product.Name != "Size M/L (Sedan/SUV) + Deepclean/Polish" {
		t.Fatalf("unexpected variant name %q", items[0].Product.Name)
	}
	if items[0].Product.BaseID != "w-m" {
		t.Fatalf("variant must reference its base, got %q", items[0].Product.BaseID)
	}
	if items[1].Product.PriceCents != 18900 {
		t.Fatalf("XL full set should be 11900+7000, got %d", items[1].Product.PriceCents)
	}
	if resp.Transaction.TotalCents != 31800 {
		t.Fatalf("expected total 31800, got %d", resp.Transaction.TotalCents)
	}
}

func TestCheckoutMergesDuplicateLines(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.Checkout(context.Background(), domain.CheckoutRequest{
		Items: []domain.CheckoutItem{
			{ProductID: "w-s", Quantity: 1},
			{ProductID: "w-s", Quantity: 2},
		},
		PaymentMethod: domain.PaymentQR,
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if len(resp.Transaction.Items) != 1 || resp.Transaction.Items[0].Quantity != 3 {
		t.Fatalf("expected one merged line of 3, got %+v", resp.Transaction.Items)
	}
}

type recordingSink struct {
	received chan domain.Transaction
}

func (r *recordingSink) Log(_ context.Context, tx domain.Transaction) {
	r.received <- tx
}

func TestCheckoutForwardsToSink(t *testing.T) {
	sink := &recordingSink{received: make(chan domain.Transaction, 1)}
	svc := New(memory.NewSeeded(), sink, nil, Config{Now: func() time.Time { return testNow }})
	defer svc.Close()

	resp, err := svc.Checkout(context.Background(), domain.CheckoutRequest{
		Items:         []domain.CheckoutItem{{ProductID: "w-s", Quantity: 1}},
		PaymentMethod: domain.PaymentQR,
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	select {
	case got := <-sink.received:
		if got.ID != resp.Transaction.ID {
			t.Fatalf("sink received %s, want %s", got.ID, resp.Transaction.ID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("sink never received the transaction")
	}
}

func TestVariantsFor(t *testing.T) {
	svc := newTestService(t)

	variants, err := svc.VariantsFor(context.Background(), "w-xxl")
	if err != nil {
		t.Fatalf("VariantsFor: %v", err)
	}
	if len(variants) != 3 {
		t.Fatalf("expected base + 2 variants, got %d", len(variants))
	}
	if variants[0].ID != "w-xxl" || variants[0].PriceCents != 13900 {
		t.Fatalf("first entry should be the base product: %+v", variants[0])
	}
	if variants[1].ID != "w-xxl:deep_clean" || variants[1].PriceCents != 18900 {
		t.Fatalf("unexpected deep clean variant: %+v", variants[1])
	}
	if variants[2].ID != "w-xxl:full_set" || variants[2].PriceCents != 21900 {
		t.Fatalf("unexpected full set variant: %+v", variants[2])
	}

	if _, err := svc.VariantsFor(context.Background(), "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTrendUsesConfiguredBaseline(t *testing.T) {
	svc := newTestService(t)

	trend, err := svc.Trend(context.Background(), domain.PeriodWeek)
	if err != nil {
		t.Fatalf("Trend: %v", err)
	}
	if trend.BaselineCents != 1_500_000 {
		t.Fatalf("expected configured baseline, got %d", trend.BaselineCents)
	}
	if trend.Percent != -100 {
		t.Fatalf("no sales against a positive baseline should be -100, got %v", trend.Percent)
	}
}

func TestSalesViewNavigation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	view, err := svc.OpenSalesView(ctx, domain.PeriodWeek)
	if err != nil {
		t.Fatalf("OpenSalesView: %v", err)
	}
	if view.Offset != 0 || !view.CanGoBack || view.CanGoForward {
		t.Fatalf("unexpected opening view: %+v", view)
	}

	for i := 0; i < 3; i++ {
		if view, err = svc.PageSalesView(ctx, "back"); err != nil {
			t.Fatalf("PageSalesView back: %v", err)
		}
	}
	if view.Offset != -3 || view.CanGoBack {
		t.Fatalf("expected bound at -3, got %+v", view)
	}

	// One more back is a no-op and still returns the same page.
	view, err = svc.PageSalesView(ctx, "back")
	if err != nil {
		t.Fatalf("PageSalesView at bound: %v", err)
	}
	if view.Offset != -3 {
		t.Fatalf("paging past the bound moved the view to %d", view.Offset)
	}

	// Switching kind resets to the current period.
	view, err = svc.OpenSalesView(ctx, domain.PeriodMonth)
	if err != nil {
		t.Fatalf("OpenSalesView month: %v", err)
	}
	if view.Kind != domain.PeriodMonth || view.Offset != 0 {
		t.Fatalf("expected month at offset 0, got %+v", view)
	}

	if _, err := svc.PageSalesView(ctx, "sideways"); !errors.Is(err, store.ErrInvalidTransaction) {
		t.Fatalf("expected invalid direction error, got %v", err)
	}
}

func TestPeriodViewClampsOffset(t *testing.T) {
	svc := newTestService(t)

	view, err := svc.PeriodView(context.Background(), domain.PeriodWeek, -99)
	if err != nil {
		t.Fatalf("PeriodView: %v", err)
	}
	if view.Offset != -3 {
		t.Fatalf("expected clamp to -3, got %d", view.Offset)
	}

	view, err = svc.PeriodView(context.Background(), domain.PeriodYear, 7)
	if err != nil {
		t.Fatalf("PeriodView: %v", err)
	}
	if view.Offset != 0 {
		t.Fatalf("future offsets snap to 0, got %d", view.Offset)
	}
}

func TestDashboard(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := svc.Checkout(ctx, domain.CheckoutRequest{
			Items:         []domain.CheckoutItem{{ProductID: "w-m", Quantity: 1}},
			PaymentMethod: domain.PaymentQR,
		}); err != nil {
			t.Fatalf("Checkout: %v", err)
		}
	}

	dashboard, err := svc.Dashboard(ctx)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if dashboard.Summary.Orders != 2 || dashboard.Summary.RevenueCents != 19800 {
		t.Fatalf("unexpected summary: %+v", dashboard.Summary)
	}
	if len(dashboard.ByProduct) != 1 || dashboard.ByProduct[0].RevenueCents != 19800 {
		t.Fatalf("unexpected product breakdown: %+v", dashboard.ByProduct)
	}
	if len(dashboard.Trends) != 3 {
		t.Fatalf("expected 3 trends, got %d", len(dashboard.Trends))
	}
	if len(dashboard.Recent) != 2 {
		t.Fatalf("expected 2 recent transactions, got %d", len(dashboard.Recent))
	}
}

func TestLookupVehicle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	match, err := svc.LookupVehicle(ctx, "Toyota", "Alphard")
	if err != nil {
		t.Fatalf("LookupVehicle: %v", err)
	}
	if !match.Matched || match.Product.ID != "w-xxl" {
		t.Fatalf("expected w-xxl for an Alphard, got %+v", match)
	}
	if match.SizeCode != "XXL" {
		t.Fatalf("expected size XXL, got %q", match.SizeCode)
	}

	// Case-insensitive lookup.
	match, err = svc.LookupVehicle(ctx, "toyota", "commuter")
	if err != nil {
		t.Fatalf("LookupVehicle: %v", err)
	}
	if !match.Matched || match.Product.ID != "w-xxx" {
		t.Fatalf("expected w-xxx for a Commuter, got %+v", match)
	}

	// Unknown model is a non-fatal miss, not an error.
	match, err = svc.LookupVehicle(ctx, "Toyota", "Starship")
	if err != nil {
		t.Fatalf("LookupVehicle: %v", err)
	}
	if match.Matched {
		t.Fatalf("expected miss, got %+v", match)
	}
}

func TestInsightFallsBackWithoutModel(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.Insight(context.Background())
	if err != nil {
		t.Fatalf("Insight: %v", err)
	}
	if resp.Summary == "" {
		t.Fatal("expected fallback text, got empty summary")
	}
}

func TestProductLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, domain.ProductCreateRequest{
		Name:       "Engine Bay Detail",
		Category:   "Detail",
		PriceCents: 45000,
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated product ID")
	}

	newPrice := int64(47000)
	updated, err := svc.UpdateProduct(ctx, created.ID, domain.ProductUpdateRequest{PriceCents: &newPrice})
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	if updated.PriceCents != 47000 {
		t.Fatalf("price not applied: %+v", updated)
	}

	blank := "  "
	if _, err := svc.UpdateProduct(ctx, created.ID, domain.ProductUpdateRequest{Name: &blank}); !errors.Is(err, store.ErrInvalidProduct) {
		t.Fatalf("blank name should be rejected, got %v", err)
	}

	if err := svc.DeleteProduct(ctx, created.ID); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}
}
