package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"washpos/backend/internal/analytics"
	"washpos/backend/internal/carlookup"
	"washpos/backend/internal/domain"
	"washpos/backend/internal/insight"
	"washpos/backend/internal/store"
)

// TransactionSink receives completed transactions for side-channel
// delivery (spreadsheet logging). Implementations must not return
// errors to the caller; delivery failures are theirs to log.
type TransactionSink interface {
	Log(ctx context.Context, tx domain.Transaction)
}

type Config struct {
	TaxRatePercent float64
	Baselines      domain.Baselines
	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

type Service struct {
	repo           store.Repository
	insights       *insight.Generator
	nav            *analytics.Navigator
	taxRatePercent float64
	baselines      domain.Baselines
	now            func() time.Time

	// Outbound sink deliveries run on a single background worker so a
	// slow webhook can never block or fail a checkout.
	outbound chan domain.Transaction
	sink     TransactionSink
	done     chan struct{}
}

func New(repo store.Repository, sink TransactionSink, insights *insight.Generator, cfg Config) *Service {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	s := &Service{
		repo:           repo,
		insights:       insights,
		nav:            analytics.NewNavigator(),
		taxRatePercent: cfg.TaxRatePercent,
		baselines:      cfg.Baselines,
		now:            now,
		sink:           sink,
		done:           make(chan struct{}),
	}

	if sink != nil {
		s.outbound = make(chan domain.Transaction, 64)
		go s.forwardLoop()
	} else {
		close(s.done)
	}
	return s
}

// Close stops the sink worker after draining queued deliveries.
func (s *Service) Close() error {
	if s.outbound != nil {
		close(s.outbound)
		<-s.done
	}
	return nil
}

func (s *Service) forwardLoop() {
	for tx := range s.outbound {
		s.sink.Log(context.Background(), tx)
	}
	close(s.done)
}

func (s *Service) enqueueSink(tx domain.Transaction) {
	if s.outbound == nil {
		return
	}
	select {
	case s.outbound <- tx:
	default:
		log.Printf("[service] sink queue full, dropping transaction %s", tx.ID)
	}
}

// Checkout turns a cart into an immutable transaction: it prices the
// items, applies the configured tax rate, validates the tender, appends
// the record to the log, and queues it for the spreadsheet sink.
func (s *Service) Checkout(ctx context.Context, req domain.CheckoutRequest) (domain.CheckoutResponse, error) {
	if req.PaymentMethod == "" {
		req.PaymentMethod = domain.PaymentCash
	}
	if req.PaymentMethod != domain.PaymentCash && req.PaymentMethod != domain.PaymentQR {
		return domain.CheckoutResponse{}, fmt.Errorf("%w: unsupported payment method %q", store.ErrInvalidTransaction, req.PaymentMethod)
	}

	normalized := normalizeItems(req.Items)
	if len(normalized) == 0 {
		return domain.CheckoutResponse{}, fmt.Errorf("%w: empty cart", store.ErrInvalidTransaction)
	}

	items := make([]domain.CartItem, 0, len(normalized))
	subtotal := int64(0)
	for _, item := range normalized {
		product, err := s.resolveProduct(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return domain.CheckoutResponse{}, fmt.Errorf("%w: unknown product %q", store.ErrInvalidTransaction, item.ProductID)
			}
			return domain.CheckoutResponse{}, err
		}
		items = append(items, domain.CartItem{Product: *product, Quantity: item.Quantity})
		subtotal += product.PriceCents * int64(item.Quantity)
	}

	taxCents := int64(math.Round(float64(subtotal) * s.taxRatePercent / 100))
	totalCents := subtotal + taxCents

	tx := domain.Transaction{
		ID:            uuid.NewString(),
		Timestamp:     s.now(),
		Items:         items,
		SubtotalCents: subtotal,
		TaxCents:      taxCents,
		TotalCents:    totalCents,
		PaymentMethod: req.PaymentMethod,
	}

	switch req.PaymentMethod {
	case domain.PaymentCash:
		if req.CashReceivedCents < totalCents {
			return domain.CheckoutResponse{}, fmt.Errorf("%w: cash received below total", store.ErrInvalidTransaction)
		}
		tx.CashReceivedCents = req.CashReceivedCents
		tx.ChangeCents = req.CashReceivedCents - totalCents
	case domain.PaymentQR:
		tx.CashReceivedCents = totalCents
	}

	created, err := s.repo.AppendTransaction(ctx, tx)
	if err != nil {
		return domain.CheckoutResponse{}, err
	}

	s.enqueueSink(*created)
	return domain.CheckoutResponse{Transaction: *created}, nil
}

// normalizeItems merges duplicate product lines and drops non-positive
// quantities.
func normalizeItems(items []domain.CheckoutItem) []domain.CheckoutItem {
	merged := make(map[string]int)
	order := make([]string, 0, len(items))
	for _, item := range items {
		id := strings.TrimSpace(item.ProductID)
		if id == "" || item.Quantity < 1 {
			continue
		}
		if _, seen := merged[id]; !seen {
			order = append(order, id)
		}
		merged[id] += item.Quantity
	}

	out := make([]domain.CheckoutItem, 0, len(order))
	for _, id := range order {
		out = append(out, domain.CheckoutItem{ProductID: id, Quantity: merged[id]})
	}
	return out
}

// resolveProduct accepts either a catalog product ID or a derived
// variant ID of the form "<base>:<service level>".
func (s *Service) resolveProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	baseID, level, ok := parseVariantID(id)
	if !ok {
		return nil, store.ErrNotFound
	}
	base, err := s.repo.GetProductByID(ctx, baseID)
	if err != nil {
		return nil, err
	}
	variant := buildVariant(*base, level)
	return &variant, nil
}

func (s *Service) Transactions(ctx context.Context, limit int) ([]domain.Transaction, error) {
	return s.repo.ListRecentTransactions(ctx, limit)
}

// ResetHistory clears the transaction log, optionally refilling it with
// demo data via the seeder the caller supplies.
func (s *Service) ResetHistory(ctx context.Context) error {
	return s.repo.ResetTransactions(ctx)
}

// PeriodView is the stateless bucketing entry point: kind and offset
// come from the caller, with out-of-range offsets snapped to the
// nearest legal page.
func (s *Service) PeriodView(ctx context.Context, kind domain.PeriodKind, offset int) (domain.PeriodView, error) {
	if err := validateKind(kind); err != nil {
		return domain.PeriodView{}, err
	}
	txs, err := s.repo.ListTransactions(ctx)
	if err != nil {
		return domain.PeriodView{}, err
	}
	return analytics.BuildPeriodView(kind, analytics.ClampOffset(kind, offset), s.now(), txs)
}

// OpenSalesView resets the detail-view navigator to the current period
// of the given kind and returns that view.
func (s *Service) OpenSalesView(ctx context.Context, kind domain.PeriodKind) (domain.PeriodView, error) {
	if err := validateKind(kind); err != nil {
		return domain.PeriodView{}, err
	}
	s.nav.Reset(kind)
	return s.currentNavView(ctx)
}

// PageSalesView moves the detail view one period back or forward.
// Paging past a bound is a no-op: the unchanged view is returned.
func (s *Service) PageSalesView(ctx context.Context, direction string) (domain.PeriodView, error) {
	switch strings.ToLower(strings.TrimSpace(direction)) {
	case "back":
		s.nav.PageBack()
	case "forward":
		s.nav.PageForward()
	default:
		return domain.PeriodView{}, fmt.Errorf("%w: direction must be back or forward", store.ErrInvalidTransaction)
	}
	return s.currentNavView(ctx)
}

func (s *Service) currentNavView(ctx context.Context) (domain.PeriodView, error) {
	kind, offset := s.nav.Position()
	txs, err := s.repo.ListTransactions(ctx)
	if err != nil {
		return domain.PeriodView{}, err
	}
	return analytics.BuildPeriodView(kind, offset, s.now(), txs)
}

func (s *Service) Trend(ctx context.Context, kind domain.PeriodKind) (domain.TrendSummary, error) {
	if err := validateKind(kind); err != nil {
		return domain.TrendSummary{}, err
	}
	txs, err := s.repo.ListTransactions(ctx)
	if err != nil {
		return domain.TrendSummary{}, err
	}
	return analytics.Trend(kind, s.baselines.For(kind), s.now(), txs), nil
}

func (s *Service) Dashboard(ctx context.Context) (domain.DashboardResponse, error) {
	txs, err := s.repo.ListTransactions(ctx)
	if err != nil {
		return domain.DashboardResponse{}, err
	}
	recent, err := s.repo.ListRecentTransactions(ctx, 100)
	if err != nil {
		return domain.DashboardResponse{}, err
	}

	now := s.now()
	trends := make([]domain.TrendSummary, 0, 3)
	for _, kind := range []domain.PeriodKind{domain.PeriodWeek, domain.PeriodMonth, domain.PeriodYear} {
		trends = append(trends, analytics.Trend(kind, s.baselines.For(kind), now, txs))
	}

	return domain.DashboardResponse{
		Summary:   analytics.Summarize(txs),
		ByProduct: analytics.RevenueByProduct(txs),
		Trends:    trends,
		Recent:    recent,
	}, nil
}

// Insight asks the generator for an analyst writeup of the most recent
// transactions. It degrades to the fixed fallback text, never an error.
func (s *Service) Insight(ctx context.Context) (domain.InsightResponse, error) {
	recent, err := s.repo.ListRecentTransactions(ctx, 50)
	if err != nil {
		return domain.InsightResponse{}, err
	}
	return domain.InsightResponse{Summary: s.insights.Summarize(ctx, recent)}, nil
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *Service) CreateProduct(ctx context.Context, req domain.ProductCreateRequest) (domain.Product, error) {
	req.ID = strings.TrimSpace(req.ID)
	req.Name = strings.TrimSpace(req.Name)
	req.Category = strings.TrimSpace(req.Category)
	req.SizeCode = strings.ToUpper(strings.TrimSpace(req.SizeCode))

	if req.Name == "" || req.PriceCents < 0 {
		return domain.Product{}, store.ErrInvalidProduct
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.Category == "" {
		req.Category = "Wash"
	}

	created, err := s.repo.CreateProduct(ctx, domain.Product{
		ID:         req.ID,
		Name:       req.Name,
		Category:   req.Category,
		SizeCode:   req.SizeCode,
		PriceCents: req.PriceCents,
		ImageURL:   req.ImageURL,
	})
	if err != nil {
		return domain.Product{}, err
	}
	return *created, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id string, req domain.ProductUpdateRequest) (domain.Product, error) {
	existing, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return domain.Product{}, store.ErrInvalidProduct
		}
		existing.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		existing.Category = strings.TrimSpace(*req.Category)
	}
	if req.SizeCode != nil {
		existing.SizeCode = strings.ToUpper(strings.TrimSpace(*req.SizeCode))
	}
	if req.PriceCents != nil {
		if *req.PriceCents < 0 {
			return domain.Product{}, store.ErrInvalidProduct
		}
		existing.PriceCents = *req.PriceCents
	}
	if req.ImageURL != nil {
		existing.ImageURL = strings.TrimSpace(*req.ImageURL)
	}

	updated, err := s.repo.UpdateProduct(ctx, *existing)
	if err != nil {
		return domain.Product{}, err
	}
	return *updated, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.DeleteProduct(ctx, id)
}

// VariantsFor returns the base product followed by its deep-clean and
// full-set variants, priced by wash size.
func (s *Service) VariantsFor(ctx context.Context, id string) ([]domain.Product, error) {
	base, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return []domain.Product{
		*base,
		buildVariant(*base, domain.ServiceDeepClean),
		buildVariant(*base, domain.ServiceFullSet),
	}, nil
}

func (s *Service) Brands() []string {
	return carlookup.Brands()
}

func (s *Service) VehicleModels(brand string) ([]carlookup.Model, error) {
	models, ok := carlookup.ModelsFor(brand)
	if !ok {
		return nil, fmt.Errorf("%w: unknown brand %q", store.ErrNotFound, brand)
	}
	return models, nil
}

// LookupVehicle resolves a brand/model to the catalog product for its
// wash size. A miss on either the vehicle table or the catalog is not
// an error: Matched is simply false.
func (s *Service) LookupVehicle(ctx context.Context, brand string, model string) (domain.VehicleMatch, error) {
	match := domain.VehicleMatch{Brand: brand, Model: model}

	entry, ok := carlookup.Find(brand, model)
	if !ok {
		return match, nil
	}
	match.SizeCode = entry.SizeCode

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return domain.VehicleMatch{}, err
	}
	for _, product := range products {
		if product.BaseID == "" && product.SizeCode == entry.SizeCode {
			match.Matched = true
			match.Product = product
			return match, nil
		}
	}

	log.Printf("[service] no catalog product for size code %s (brand=%s model=%s)", entry.SizeCode, brand, model)
	return match, nil
}

func validateKind(kind domain.PeriodKind) error {
	switch kind {
	case domain.PeriodWeek, domain.PeriodMonth, domain.PeriodYear:
		return nil
	}
	return fmt.Errorf("%w: unknown period kind %q", store.ErrInvalidTransaction, kind)
}
