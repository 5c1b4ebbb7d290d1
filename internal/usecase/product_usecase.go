package usecase

import (
	"context"
	"time"

	"github.com/DRSN-tech/ml-service/internal/catalog"
	"github.com/DRSN-tech/ml-service/pkg/e"
	"github.com/DRSN-tech/ml-service/pkg/logger"
)

// ProductUseCase отдаёт карточки товаров из снимка каталога.
type ProductUseCase struct {
	catalog *catalog.Catalog
	cache   CacheRepository
	logger  logger.Logger
}

func NewProductUC(
	cat *catalog.Catalog,
	cache CacheRepository,
	logger logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		catalog: cat,
		cache:   cache,
		logger:  logger,
	}
}

// GetProduct возвращает карточку товара по идентификатору.
func (p *ProductUseCase) GetProduct(ctx context.Context, id string) (*ProductInfo, error) {
	const op = "ProductUseCase.GetProduct"

	if cached, ok := p.cache.GetProduct(ctx, id); ok {
		return cached, nil
	}

	product, ok := p.catalog.Product(id)
	if !ok {
		return nil, e.Wrap(op+": "+id, e.ErrProductNotFound)
	}

	info := NewProductInfo(product.ID, product.Name, product.Category, product.Price)

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		p.cache.SetProduct(bgCtx, info)
	}()

	return info, nil
}

// Count — число товаров в снимке каталога.
func (p *ProductUseCase) Count(ctx context.Context) int {
	return p.catalog.Len()
}
