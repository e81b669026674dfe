package memory

import (
	"fmt"
	"math/rand"
	"slices"
	"time"

	"washpos/backend/internal/domain"
)

type transactionSeed struct {
	id         string
	at         time.Time
	productIdx []int
}

func (t transactionSeed) build(products []domain.Product) domain.Transaction {
	items := make([]domain.CartItem, 0, len(t.productIdx))
	subtotal := int64(0)
	for _, idx := range t.productIdx {
		items = append(items, domain.CartItem{Product: products[idx], Quantity: 1})
		subtotal += products[idx].PriceCents
	}
	return domain.Transaction{
		ID:                t.id,
		Timestamp:         t.at,
		Items:             items,
		SubtotalCents:     subtotal,
		TotalCents:        subtotal,
		PaymentMethod:     domain.PaymentCash,
		CashReceivedCents: subtotal,
	}
}

// SeedDemoHistory fills the transaction log with one year of simulated
// sales ending at now: quieter rainy-season months, a busy high season
// around year end, and a 1.5x bump on Friday through Sunday. Quantities
// are always 1 and the demo tax rate is zero, so total == subtotal.
// Existing transactions are discarded. The random source is fixed so
// repeated runs produce the same history.
func (s *Store) SeedDemoHistory(now time.Time) int {
	rng := rand.New(rand.NewSource(20240101))

	products := seedProducts()
	start := now.AddDate(-1, 0, 0)

	var txs []transactionSeed
	dayIndex := 0
	for day := start; !day.After(now); day = day.AddDate(0, 0, 1) {
		base := 0.0
		switch month := day.Month(); {
		case month >= time.June && month <= time.October:
			base = 3 + rng.Float64()*5
		case month >= time.November || month <= time.February:
			base = 10 + rng.Float64()*10
		default:
			base = 6 + rng.Float64()*6
		}

		weekday := day.Weekday()
		if weekday == time.Friday || weekday == time.Saturday || weekday == time.Sunday {
			base *= 1.5
		}

		for i := 0; i < int(base); i++ {
			itemCount := 1
			if rng.Float64() > 0.8 {
				itemCount = 2
			}

			seed := transactionSeed{
				id: fmt.Sprintf("sim-%d-%d", dayIndex, i),
				at: time.Date(day.Year(), day.Month(), day.Day(), 8+rng.Intn(10), rng.Intn(60), 0, 0, day.Location()),
			}
			for j := 0; j < itemCount; j++ {
				seed.productIdx = append(seed.productIdx, rng.Intn(len(products)))
			}
			txs = append(txs, seed)
		}
		dayIndex++
	}

	slices.SortFunc(txs, func(a, b transactionSeed) int {
		return a.at.Compare(b.at)
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactions = s.transactions[:0]
	for _, seed := range txs {
		s.transactions = append(s.transactions, seed.build(products))
	}
	return len(s.transactions)
}
