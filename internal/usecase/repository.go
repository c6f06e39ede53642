package usecase

import (
	"context"

	"github.com/DRSN-tech/products-board/internal/domain"
)

// ProductRepository — удалённое хранилище продуктов (REST API).
// Любая ошибка считается NetworkOrServerFailure.
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id domain.ProductID) error
}
