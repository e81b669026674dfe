package domain

import "time"

// PaymentMethod is the tender type recorded on a transaction.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "CASH"
	PaymentQR   PaymentMethod = "QR"
)

// ServiceLevel is the wash tier applied on top of a base product.
type ServiceLevel string

const (
	ServiceStandard  ServiceLevel = "standard"
	ServiceDeepClean ServiceLevel = "deep_clean"
	ServiceFullSet   ServiceLevel = "full_set"
)

// PeriodKind is the granularity at which sales are aggregated.
type PeriodKind string

const (
	PeriodWeek  PeriodKind = "WEEK"
	PeriodMonth PeriodKind = "MONTH"
	PeriodYear  PeriodKind = "YEAR"
)

// Product is one sellable catalog entry. Service variants are distinct
// products with their own ID and a BaseID pointing at the standard wash
// they derive from; BaseID is empty for base products.
type Product struct {
	ID         string `json:"id"`
	BaseID     string `json:"base_id,omitempty"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	SizeCode   string `json:"size_code,omitempty"`
	PriceCents int64  `json:"price_cents"`
	ImageURL   string `json:"image_url,omitempty"`
}

type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Transaction is an immutable completed sale. All amounts are satang.
type Transaction struct {
	ID                string        `json:"id"`
	Timestamp         time.Time     `json:"timestamp"`
	Items             []CartItem    `json:"items"`
	SubtotalCents     int64         `json:"subtotal_cents"`
	TaxCents          int64         `json:"tax_cents"`
	TotalCents        int64         `json:"total_cents"`
	PaymentMethod     PaymentMethod `json:"payment_method"`
	CashReceivedCents int64         `json:"cash_received_cents"`
	ChangeCents       int64         `json:"change_cents"`
}

type CheckoutItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type CheckoutRequest struct {
	Items             []CheckoutItem `json:"items"`
	PaymentMethod     PaymentMethod  `json:"payment_method"`
	CashReceivedCents int64          `json:"cash_received_cents"`
}

type CheckoutResponse struct {
	Transaction Transaction `json:"transaction"`
}

type ProductCreateRequest struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	SizeCode   string `json:"size_code"`
	PriceCents int64  `json:"price_cents"`
	ImageURL   string `json:"image_url"`
}

type ProductUpdateRequest struct {
	Name       *string `json:"name"`
	Category   *string `json:"category"`
	SizeCode   *string `json:"size_code"`
	PriceCents *int64  `json:"price_cents"`
	ImageURL   *string `json:"image_url"`
}

// PeriodBucket is one fixed slot within a period view (a weekday, a week
// of the month, or a month of the year).
type PeriodBucket struct {
	Label      string `json:"label"`
	TotalCents int64  `json:"total_cents"`
}

// PeriodView is the renderable result of bucketing the transaction log
// into one calendar-aligned period.
type PeriodView struct {
	Kind         PeriodKind     `json:"kind"`
	Offset       int            `json:"offset"`
	Title        string         `json:"title"`
	Start        time.Time      `json:"start"`
	End          time.Time      `json:"end"`
	Buckets      []PeriodBucket `json:"buckets"`
	TotalCents   int64          `json:"total_cents"`
	CanGoBack    bool           `json:"can_go_back"`
	CanGoForward bool           `json:"can_go_forward"`
}

// TrendSummary compares the running current period against a baseline
// total for the same period kind. Percent is signed and unclamped.
type TrendSummary struct {
	Kind            PeriodKind `json:"kind"`
	CurrentCents    int64      `json:"current_cents"`
	BaselineCents   int64      `json:"baseline_cents"`
	Percent         float64    `json:"percent"`
	ComparisonLabel string     `json:"comparison_label"`
}

type ProductRevenue struct {
	Name         string `json:"name"`
	DisplayName  string `json:"display_name"`
	RevenueCents int64  `json:"revenue_cents"`
	Quantity     int    `json:"quantity"`
}

type SalesSummary struct {
	RevenueCents  int64 `json:"revenue_cents"`
	Orders        int   `json:"orders"`
	ItemsSold     int   `json:"items_sold"`
	AvgOrderCents int64 `json:"avg_order_cents"`
}

type DashboardResponse struct {
	Summary   SalesSummary     `json:"summary"`
	ByProduct []ProductRevenue `json:"by_product"`
	Trends    []TrendSummary   `json:"trends"`
	Recent    []Transaction    `json:"recent"`
}

type InsightResponse struct {
	Summary string `json:"summary"`
}

// VehicleMatch is the outcome of a brand/model lookup. Product is only
// meaningful when Matched is true.
type VehicleMatch struct {
	Brand    string  `json:"brand"`
	Model    string  `json:"model"`
	SizeCode string  `json:"size_code"`
	Matched  bool    `json:"matched"`
	Product  Product `json:"product,omitempty"`
}

// Baselines are the prior-year reference totals the trend calculator
// compares against, in satang.
type Baselines struct {
	WeekCents  int64
	MonthCents int64
	YearCents  int64
}

func (b Baselines) For(kind PeriodKind) int64 {
	switch kind {
	case PeriodWeek:
		return b.WeekCents
	case PeriodMonth:
		return b.MonthCents
	case PeriodYear:
		return b.YearCents
	}
	return 0
}
