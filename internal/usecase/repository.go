package usecase

import (
	"context"

	"github.com/DRSN-tech/ml-service/internal/domain"
)

// EmbeddingStore — хранилище эмбеддингов изображений с персистентностью
// в пару плоских файлов (векторы + идентификаторы).
type EmbeddingStore interface {
	Upsert(emb *domain.Embedding) error
	Search(query []float32, topK int) []ImageMatch
	Save(vectorsPath, idsPath string) error
	Len() int
	Dim() int
}

// CacheRepository — кэш ответов рекомендаций и карточек товаров.
// Ошибки кэша не видны пользователю: промах и отказ равнозначны.
type CacheRepository interface {
	GetSimilarProducts(ctx context.Context, productID string, topK int) ([]SimilarProduct, bool)
	SetSimilarProducts(ctx context.Context, productID string, topK int, recs []SimilarProduct)
	GetProduct(ctx context.Context, id string) (*ProductInfo, bool)
	SetProduct(ctx context.Context, info *ProductInfo)
}

// ImageRepository — чтение изображений товаров из S3-хранилища.
type ImageRepository interface {
	Download(ctx context.Context, key string) ([]byte, error)
}
