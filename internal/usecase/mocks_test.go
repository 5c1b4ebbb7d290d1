package usecase

import (
	"context"
	"fmt"
	"sync"
)

type nopLogger struct{}

func (nopLogger) Infof(format string, args ...any)            {}
func (nopLogger) Warnf(format string, args ...any)            {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

// fakeCache — кэш в памяти для тестов use case'ов.
type fakeCache struct {
	mu       sync.Mutex
	similar  map[string][]SimilarProduct
	products map[string]*ProductInfo
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		similar:  make(map[string][]SimilarProduct),
		products: make(map[string]*ProductInfo),
	}
}

func similarCacheKey(productID string, topK int) string {
	return fmt.Sprintf("%s:%d", productID, topK)
}

func (f *fakeCache) GetSimilarProducts(ctx context.Context, productID string, topK int) ([]SimilarProduct, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	recs, ok := f.similar[similarCacheKey(productID, topK)]
	return recs, ok
}

func (f *fakeCache) SetSimilarProducts(ctx context.Context, productID string, topK int, recs []SimilarProduct) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.similar[similarCacheKey(productID, topK)] = recs
}

func (f *fakeCache) GetProduct(ctx context.Context, id string) (*ProductInfo, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	info, ok := f.products[id]
	return info, ok
}

func (f *fakeCache) SetProduct(ctx context.Context, info *ProductInfo) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products[info.ID] = info
}
