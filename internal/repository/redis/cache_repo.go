package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/DRSN-tech/ml-service/internal/cfg"
	"github.com/DRSN-tech/ml-service/internal/usecase"
	"github.com/DRSN-tech/ml-service/pkg/clients"
	"github.com/DRSN-tech/ml-service/pkg/e"
	"github.com/DRSN-tech/ml-service/pkg/logger"
	"github.com/jimlawless/whereami"
	goredis "github.com/redis/go-redis/v9"
)

// CacheRepo кэширует ответы рекомендаций и карточки товаров в Redis.
// Любая ошибка кэша трактуется как промах: запрос обслуживается без него.
type CacheRepo struct {
	client *clients.RedisClient
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// GetSimilarProducts возвращает закэшированный ответ похожих товаров,
// игнорируя промахи и логируя отказы.
func (r *CacheRepo) GetSimilarProducts(ctx context.Context, productID string, topK int) ([]usecase.SimilarProduct, bool) {
	data, err := r.client.Client.Get(ctx, r.similarKey(productID, topK)).Bytes()
	if err != nil {
		if err != goredis.Nil {
			r.logger.Warnf("Redis GET failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}
		return nil, false
	}

	var recs []usecase.SimilarProduct
	if err := json.Unmarshal(data, &recs); err != nil {
		r.logger.Warnf("Redis unmarshal failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return nil, false
	}

	return recs, true
}

// SetSimilarProducts кэширует ответ похожих товаров с TTL рекомендаций.
func (r *CacheRepo) SetSimilarProducts(ctx context.Context, productID string, topK int, recs []usecase.SimilarProduct) {
	data, err := json.Marshal(recs)
	if err != nil {
		r.logger.Warnf("Failed to marshal recommendations for caching: %v", e.Wrap(whereami.WhereAmI(), err))
		return
	}

	if err := r.client.Client.Set(ctx, r.similarKey(productID, topK), data, r.cfg.RecsTTL).Err(); err != nil {
		r.logger.Warnf("Redis SET failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}
}

// GetProduct возвращает закэшированную карточку товара.
func (r *CacheRepo) GetProduct(ctx context.Context, id string) (*usecase.ProductInfo, bool) {
	data, err := r.client.Client.Get(ctx, r.productKey(id)).Bytes()
	if err != nil {
		if err != goredis.Nil {
			r.logger.Warnf("Redis GET failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}
		return nil, false
	}

	var info usecase.ProductInfo
	if err := json.Unmarshal(data, &info); err != nil {
		r.logger.Warnf("Redis unmarshal failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return nil, false
	}

	if info.ID != id {
		r.logger.Warnf("Cache ID mismatch: key_id: %s, model_id: %s", id, info.ID)
		if err := r.client.Client.Del(context.Background(), r.productKey(id)).Err(); err != nil {
			r.logger.Warnf("Redis DEL failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}
		return nil, false
	}

	return &info, true
}

// SetProduct кэширует карточку товара с TTL товаров.
func (r *CacheRepo) SetProduct(ctx context.Context, info *usecase.ProductInfo) {
	data, err := json.Marshal(info)
	if err != nil {
		r.logger.Warnf("Failed to marshal product for caching (Product ID: %s): %v", info.ID, e.Wrap(whereami.WhereAmI(), err))
		return
	}

	if err := r.client.Client.Set(ctx, r.productKey(info.ID), data, r.cfg.RecsTTL).Err(); err != nil {
		r.logger.Warnf("Redis SET failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}
}

// similarKey возвращает Redis-ключ для ответа похожих товаров
func (r *CacheRepo) similarKey(productID string, topK int) string {
	return fmt.Sprintf("ml:similar:%s:%d", productID, topK)
}

// productKey возвращает Redis-ключ для одного товара
func (r *CacheRepo) productKey(id string) string {
	return fmt.Sprintf("ml:product:%s", id)
}
