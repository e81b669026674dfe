package analytics

import (
	"slices"
	"strings"

	"washpos/backend/internal/domain"
)

// RevenueByProduct groups every line item across all transactions by
// product name and ranks the result by revenue, highest first. Grouping
// is by name rather than ID so priced service variants that share a base
// product land in their own row. Ties break on name so the order is
// stable across renders.
func RevenueByProduct(txs []domain.Transaction) []domain.ProductRevenue {
	revenue := make(map[string]*domain.ProductRevenue)
	order := make([]string, 0)

	for _, tx := range txs {
		for _, item := range tx.Items {
			entry, ok := revenue[item.Product.Name]
			if !ok {
				entry = &domain.ProductRevenue{
					Name:        item.Product.Name,
					DisplayName: DisplayName(item.Product.Name),
				}
				revenue[item.Product.Name] = entry
				order = append(order, item.Product.Name)
			}
			entry.RevenueCents += item.Product.PriceCents * int64(item.Quantity)
			entry.Quantity += item.Quantity
		}
	}

	out := make([]domain.ProductRevenue, 0, len(order))
	for _, name := range order {
		out = append(out, *revenue[name])
	}
	slices.SortFunc(out, func(a, b domain.ProductRevenue) int {
		if a.RevenueCents != b.RevenueCents {
			if a.RevenueCents > b.RevenueCents {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

// Summarize computes the lifetime headline metrics for the dashboard.
func Summarize(txs []domain.Transaction) domain.SalesSummary {
	summary := domain.SalesSummary{Orders: len(txs)}
	for _, tx := range txs {
		summary.RevenueCents += tx.TotalCents
		for _, item := range tx.Items {
			summary.ItemsSold += item.Quantity
		}
	}
	if summary.Orders > 0 {
		summary.AvgOrderCents = summary.RevenueCents / int64(summary.Orders)
	}
	return summary
}

// DisplayName shortens a catalog name for chart axes by dropping the
// "Size " prefix the wash products carry.
func DisplayName(name string) string {
	return strings.TrimPrefix(name, "Size ")
}
