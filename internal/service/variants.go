package service

import (
	"strings"

	"washpos/backend/internal/domain"
)

// Variant IDs are "<base product id>:<service level>", e.g.
// "w-m:deep_clean". The base product itself is the standard tier.

func variantID(baseID string, level domain.ServiceLevel) string {
	return baseID + ":" + string(level)
}

func parseVariantID(id string) (baseID string, level domain.ServiceLevel, ok bool) {
	baseID, raw, found := strings.Cut(id, ":")
	if !found || baseID == "" {
		return "", "", false
	}
	switch domain.ServiceLevel(raw) {
	case domain.ServiceDeepClean, domain.ServiceFullSet:
		return baseID, domain.ServiceLevel(raw), true
	}
	return "", "", false
}

// buildVariant derives a priced variant from a base product. Standard
// returns the base unchanged.
func buildVariant(base domain.Product, level domain.ServiceLevel) domain.Product {
	if level == domain.ServiceStandard {
		return base
	}

	deepCents, fullCents := surchargeFor(base.SizeCode)
	variant := base
	variant.ID = variantID(base.ID, level)
	variant.BaseID = base.ID

	switch level {
	case domain.ServiceDeepClean:
		variant.Name = base.Name + " + Deepclean/Polish"
		variant.PriceCents = base.PriceCents + deepCents
	case domain.ServiceFullSet:
		variant.Name = base.Name + " + Fullset"
		variant.PriceCents = base.PriceCents + fullCents
	}
	return variant
}

// surchargeFor prices the deep-clean and full-set upgrades by wash
// size. Unknown sizes fall back to the small-car rates.
func surchargeFor(sizeCode string) (deepCents int64, fullCents int64) {
	switch sizeCode {
	case "XL":
		return 4000, 7000
	case "XXL", "XXX":
		return 5000, 8000
	default:
		return 3000, 5000
	}
}
