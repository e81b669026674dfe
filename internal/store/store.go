package store

import (
	"context"
	"errors"

	"washpos/backend/internal/domain"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidProduct     = errors.New("invalid product")
	ErrInvalidTransaction = errors.New("invalid transaction")
)

// Repository is the catalog plus the append-only transaction log.
// Transactions are immutable historical facts: there is no update or
// delete, only append, snapshot reads, and a full reset.
type Repository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	AppendTransaction(ctx context.Context, tx domain.Transaction) (*domain.Transaction, error)
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
	ListRecentTransactions(ctx context.Context, limit int) ([]domain.Transaction, error)
	ResetTransactions(ctx context.Context) error
}
