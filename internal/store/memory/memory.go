package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"washpos/backend/internal/domain"
	"washpos/backend/internal/store"
)

// Store is the in-memory repository. All reads return clones so callers
// can never mutate shared state.
type Store struct {
	mu           sync.RWMutex
	products     map[string]domain.Product
	productOrder []string
	transactions []domain.Transaction
}

func New() *Store {
	return &Store{
		products: make(map[string]domain.Product),
	}
}

// NewSeeded returns a store pre-loaded with the wash-size catalog.
func NewSeeded() *Store {
	s := New()
	for _, product := range seedProducts() {
		s.products[product.ID] = product
		s.productOrder = append(s.productOrder, product.ID)
	}
	return s
}

func seedProducts() []domain.Product {
	return []domain.Product{
		{ID: "w-s", Name: "Size S (Eco/Compact)", Category: "Wash", SizeCode: "S", PriceCents: 8900},
		{ID: "w-m", Name: "Size M/L (Sedan/SUV)", Category: "Wash", SizeCode: "M", PriceCents: 9900},
		{ID: "w-xl", Name: "Size XL (Large SUV/Truck)", Category: "Wash", SizeCode: "XL", PriceCents: 11900},
		{ID: "w-xxl", Name: "Size XXL (Van)", Category: "Wash", SizeCode: "XXL", PriceCents: 13900},
		{ID: "w-xxx", Name: "Size XXX (Super Size)", Category: "Wash", SizeCode: "XXX", PriceCents: 15900},
	}
}

func (s *Store) ListProducts(_ context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]domain.Product, 0, len(s.productOrder))
	for _, id := range s.productOrder {
		products = append(products, s.products[id])
	}
	return products, nil
}

func (s *Store) GetProductByID(_ context.Context, id string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	clone := product
	return &clone, nil
}

func (s *Store) CreateProduct(_ context.Context, product domain.Product) (*domain.Product, error) {
	if strings.TrimSpace(product.ID) == "" || strings.TrimSpace(product.Name) == "" {
		return nil, store.ErrInvalidProduct
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[product.ID]; exists {
		return nil, store.ErrInvalidProduct
	}

	s.products[product.ID] = product
	s.productOrder = append(s.productOrder, product.ID)
	clone := product
	return &clone, nil
}

func (s *Store) UpdateProduct(_ context.Context, product domain.Product) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[product.ID]; !exists {
		return nil, store.ErrNotFound
	}

	s.products[product.ID] = product
	clone := product
	return &clone, nil
}

func (s *Store) DeleteProduct(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[id]; !exists {
		return store.ErrNotFound
	}

	delete(s.products, id)
	s.productOrder = slices.DeleteFunc(s.productOrder, func(existing string) bool {
		return existing == id
	})
	return nil
}

func (s *Store) AppendTransaction(_ context.Context, tx domain.Transaction) (*domain.Transaction, error) {
	if tx.ID == "" || len(tx.Items) == 0 {
		return nil, store.ErrInvalidTransaction
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactions = append(s.transactions, cloneTransaction(tx))
	clone := cloneTransaction(tx)
	return &clone, nil
}

// ListTransactions returns the full log in append (chronological) order.
func (s *Store) ListTransactions(_ context.Context) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Transaction, 0, len(s.transactions))
	for _, tx := range s.transactions {
		out = append(out, cloneTransaction(tx))
	}
	return out, nil
}

// ListRecentTransactions returns up to limit transactions, newest first.
func (s *Store) ListRecentTransactions(_ context.Context, limit int) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit < 1 || limit > len(s.transactions) {
		limit = len(s.transactions)
	}

	out := make([]domain.Transaction, 0, limit)
	for i := len(s.transactions) - 1; i >= len(s.transactions)-limit; i-- {
		out = append(out, cloneTransaction(s.transactions[i]))
	}
	return out, nil
}

func (s *Store) ResetTransactions(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactions = nil
	return nil
}

func cloneTransaction(tx domain.Transaction) domain.Transaction {
	clone := tx
	clone.Items = make([]domain.CartItem, len(tx.Items))
	copy(clone.Items, tx.Items)
	return clone
}
