package usecase

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/DRSN-tech/ml-service/internal/catalog"
	"github.com/DRSN-tech/ml-service/internal/domain"
	"github.com/DRSN-tech/ml-service/pkg/e"
	"github.com/DRSN-tech/ml-service/pkg/logger"
)

// Оценка-заглушка для пользователей без истории: рекомендация есть,
// но персонализации за ней нет.
const placeholderScore = 0.5

// RecommendUseCase реализует контентные рекомендации поверх снимка каталога.
// Снимок неизменяем, поэтому use case безопасен для конкурентных запросов.
type RecommendUseCase struct {
	catalog *catalog.Catalog
	enc     *catalog.Encoder
	cache   CacheRepository
	logger  logger.Logger
}

func NewRecommendUC(
	cat *catalog.Catalog,
	cache CacheRepository,
	logger logger.Logger,
) *RecommendUseCase {
	return &RecommendUseCase{
		catalog: cat,
		enc:     catalog.NewEncoder(cat),
		cache:   cache,
		logger:  logger,
	}
}

// RecommendForUser возвращает до req.TopK товаров, ближайших к профилю
// пользователя — среднему вектору признаков товаров его истории.
// Товары из истории в результат не попадают. Пустая или полностью
// неразрешимая история — не ошибка: отдаются первые товары каталога
// с оценкой-заглушкой.
func (r *RecommendUseCase) RecommendForUser(ctx context.Context, req *RecommendUserReq) ([]Recommendation, error) {
	const op = "RecommendUseCase.RecommendForUser"

	if len(req.History) == 0 {
		return r.placeholderRecommendations(req.TopK), nil
	}

	seen := make(map[string]struct{}, len(req.History))
	for _, item := range req.History {
		seen[item.ProductID] = struct{}{}
	}

	// Позиции истории, которых нет в каталоге, молча отбрасываются:
	// бэкенд может прислать устаревшие или чужие идентификаторы.
	resolved := make([]domain.Product, 0, len(req.History))
	for _, item := range req.History {
		if p, ok := r.catalog.Product(item.ProductID); ok {
			resolved = append(resolved, p)
		}
	}

	if len(resolved) == 0 {
		return r.placeholderRecommendations(req.TopK), nil
	}

	profile, err := r.userProfile(resolved)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	recs := make([]Recommendation, 0, r.catalog.Len())
	for _, p := range r.catalog.Products() {
		if _, ok := seen[p.ID]; ok {
			continue
		}

		vec, err := r.enc.Encode(&p)
		if err != nil {
			return nil, e.Wrap(op, err)
		}

		recs = append(recs, Recommendation{
			ProductID: p.ID,
			Name:      p.Name,
			Category:  p.Category,
			Price:     p.Price,
			Score:     cosineSimilarity(profile, vec),
		})
	}

	sortByScoreDesc(recs, func(rec Recommendation) float64 { return rec.Score })
	if len(recs) > req.TopK {
		recs = recs[:req.TopK]
	}

	return recs, nil
}

// RecommendSimilarProducts возвращает до req.TopK товаров, ближайших
// к заданному по категории и цене. Сам товар в результат не входит.
// Неизвестный идентификатор — ошибка вызывающего, не процесса.
func (r *RecommendUseCase) RecommendSimilarProducts(ctx context.Context, req *SimilarProductsReq) ([]SimilarProduct, error) {
	const op = "RecommendUseCase.RecommendSimilarProducts"

	target, ok := r.catalog.Product(req.ProductID)
	if !ok {
		return nil, e.Wrap(op+": "+req.ProductID, e.ErrProductNotFound)
	}

	if cached, ok := r.cache.GetSimilarProducts(ctx, req.ProductID, req.TopK); ok {
		return cached, nil
	}

	targetVec, err := r.enc.Encode(&target)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	recs := make([]SimilarProduct, 0, r.catalog.Len())
	for _, p := range r.catalog.Products() {
		if p.ID == req.ProductID {
			continue
		}

		vec, err := r.enc.Encode(&p)
		if err != nil {
			return nil, e.Wrap(op, err)
		}

		recs = append(recs, SimilarProduct{
			ProductID:  p.ID,
			Name:       p.Name,
			Category:   p.Category,
			Price:      p.Price,
			Similarity: cosineSimilarity(targetVec, vec),
		})
	}

	sortByScoreDesc(recs, func(rec SimilarProduct) float64 { return rec.Similarity })
	if len(recs) > req.TopK {
		recs = recs[:req.TopK]
	}

	// Фоновое кэширование, чтобы не задерживать ответ.
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		r.cache.SetSimilarProducts(bgCtx, req.ProductID, req.TopK, recs)
	}()

	return recs, nil
}

// placeholderRecommendations — первые topK товаров каталога в исходном порядке.
func (r *RecommendUseCase) placeholderRecommendations(topK int) []Recommendation {
	products := r.catalog.Products()
	if topK > len(products) {
		topK = len(products)
	}
	if topK < 0 {
		topK = 0
	}

	recs := make([]Recommendation, 0, topK)
	for _, p := range products[:topK] {
		recs = append(recs, Recommendation{
			ProductID: p.ID,
			Name:      p.Name,
			Category:  p.Category,
			Price:     p.Price,
			Score:     placeholderScore,
		})
	}

	return recs
}

// userProfile — покомпонентное среднее векторов признаков товаров истории.
func (r *RecommendUseCase) userProfile(products []domain.Product) ([]float64, error) {
	profile := make([]float64, r.enc.Dim())
	for i := range products {
		vec, err := r.enc.Encode(&products[i])
		if err != nil {
			return nil, err
		}

		for j, v := range vec {
			profile[j] += v
		}
	}

	n := float64(len(products))
	for j := range profile {
		profile[j] /= n
	}

	return profile, nil
}

// sortByScoreDesc сортирует по убыванию оценки; стабильная сортировка
// сохраняет порядок каталога при равных оценках.
func sortByScoreDesc[T any](recs []T, score func(T) float64) {
	sort.SliceStable(recs, func(i, j int) bool {
		return score(recs[i]) > score(recs[j])
	})
}

// cosineSimilarity — косинусная близость векторов признаков.
// Нулевая норма определена как близость 0.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
