package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/DRSN-tech/ml-service/internal/catalog"
	"github.com/DRSN-tech/ml-service/internal/domain"
	"github.com/DRSN-tech/ml-service/pkg/e"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]domain.Product{
		{ID: "A", Name: "Кроссовки", Category: "shoes", Price: 10000},
		{ID: "B", Name: "Кеды", Category: "shoes", Price: 12000},
		{ID: "C", Name: "Сумка", Category: "bags", Price: 5000},
	})
}

func TestRecommendForUser_EmptyHistory(t *testing.T) {
	uc := NewRecommendUC(testCatalog(), newFakeCache(), nopLogger{})

	recs, err := uc.RecommendForUser(context.Background(), NewRecommendUserReq("u1", nil, 2))
	if err != nil {
		t.Fatalf("RecommendForUser() error = %v", err)
	}

	if len(recs) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(recs))
	}
	// первые товары каталога в исходном порядке с оценкой-заглушкой
	if recs[0].ProductID != "A" || recs[1].ProductID != "B" {
		t.Errorf("got order [%s, %s], want [A, B]", recs[0].ProductID, recs[1].ProductID)
	}
	for _, rec := range recs {
		if rec.Score != 0.5 {
			t.Errorf("product %s score = %v, want 0.5", rec.ProductID, rec.Score)
		}
	}
}

func TestRecommendForUser_RanksSameCategoryAbove(t *testing.T) {
	uc := NewRecommendUC(testCatalog(), newFakeCache(), nopLogger{})

	history := []HistoryItem{{ProductID: "A", Category: "shoes", Price: 10000}}
	recs, err := uc.RecommendForUser(context.Background(), NewRecommendUserReq("u1", history, 2))
	if err != nil {
		t.Fatalf("RecommendForUser() error = %v", err)
	}

	if len(recs) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(recs))
	}
	if recs[0].ProductID != "B" || recs[1].ProductID != "C" {
		t.Errorf("got order [%s, %s], want [B, C]", recs[0].ProductID, recs[1].ProductID)
	}
	if recs[0].Score <= recs[1].Score {
		t.Errorf("score(B) = %v must be greater than score(C) = %v", recs[0].Score, recs[1].Score)
	}
}

func TestRecommendForUser_ExcludesHistory(t *testing.T) {
	uc := NewRecommendUC(testCatalog(), newFakeCache(), nopLogger{})

	history := []HistoryItem{{ProductID: "A", Category: "shoes", Price: 10000}}
	recs, err := uc.RecommendForUser(context.Background(), NewRecommendUserReq("u1", history, 10))
	if err != nil {
		t.Fatalf("RecommendForUser() error = %v", err)
	}

	for _, rec := range recs {
		if rec.ProductID == "A" {
			t.Error("history product A must not be recommended")
		}
	}
}

func TestRecommendForUser_UnresolvableHistoryFallsBack(t *testing.T) {
	uc := NewRecommendUC(testCatalog(), newFakeCache(), nopLogger{})

	history := []HistoryItem{
		{ProductID: "gone-1", Category: "shoes", Price: 100},
		{ProductID: "gone-2", Category: "bags", Price: 200},
	}
	recs, err := uc.RecommendForUser(context.Background(), NewRecommendUserReq("u1", history, 3))
	if err != nil {
		t.Fatalf("RecommendForUser() error = %v", err)
	}

	if len(recs) != 3 {
		t.Fatalf("got %d recommendations, want 3", len(recs))
	}
	for _, rec := range recs {
		if rec.Score != 0.5 {
			t.Errorf("product %s score = %v, want placeholder 0.5", rec.ProductID, rec.Score)
		}
	}
}

func TestRecommendForUser_TopKLargerThanCatalog(t *testing.T) {
	uc := NewRecommendUC(testCatalog(), newFakeCache(), nopLogger{})

	recs, err := uc.RecommendForUser(context.Background(), NewRecommendUserReq("u1", nil, 50))
	if err != nil {
		t.Fatalf("RecommendForUser() error = %v", err)
	}

	if len(recs) != 3 {
		t.Errorf("got %d recommendations, want all 3", len(recs))
	}
}

func TestRecommendSimilarProducts_Ranking(t *testing.T) {
	uc := NewRecommendUC(testCatalog(), newFakeCache(), nopLogger{})

	recs, err := uc.RecommendSimilarProducts(context.Background(), NewSimilarProductsReq("A", 2))
	if err != nil {
		t.Fatalf("RecommendSimilarProducts() error = %v", err)
	}

	if len(recs) != 2 {
		t.Fatalf("got %d products, want 2", len(recs))
	}
	// B делит категорию с A и ближе по цене, чем C
	if recs[0].ProductID != "B" || recs[1].ProductID != "C" {
		t.Errorf("got order [%s, %s], want [B, C]", recs[0].ProductID, recs[1].ProductID)
	}
	if recs[0].Similarity <= recs[1].Similarity {
		t.Errorf("similarity(B) = %v must be greater than similarity(C) = %v", recs[0].Similarity, recs[1].Similarity)
	}
}

func TestRecommendSimilarProducts_ExcludesSelf(t *testing.T) {
	uc := NewRecommendUC(testCatalog(), newFakeCache(), nopLogger{})

	recs, err := uc.RecommendSimilarProducts(context.Background(), NewSimilarProductsReq("A", 10))
	if err != nil {
		t.Fatalf("RecommendSimilarProducts() error = %v", err)
	}

	for _, rec := range recs {
		if rec.ProductID == "A" {
			t.Error("target product A must not appear in its own recommendations")
		}
	}
}

func TestRecommendSimilarProducts_UnknownProduct(t *testing.T) {
	uc := NewRecommendUC(testCatalog(), newFakeCache(), nopLogger{})

	_, err := uc.RecommendSimilarProducts(context.Background(), NewSimilarProductsReq("missing", 2))
	if !errors.Is(err, e.ErrProductNotFound) {
		t.Errorf("error = %v, want ErrProductNotFound", err)
	}
}

func TestRecommendSimilarProducts_CacheHit(t *testing.T) {
	cache := newFakeCache()
	cached := []SimilarProduct{{ProductID: "X", Similarity: 0.9}}
	cache.SetSimilarProducts(context.Background(), "A", 2, cached)

	uc := NewRecommendUC(testCatalog(), cache, nopLogger{})

	recs, err := uc.RecommendSimilarProducts(context.Background(), NewSimilarProductsReq("A", 2))
	if err != nil {
		t.Fatalf("RecommendSimilarProducts() error = %v", err)
	}

	if len(recs) != 1 || recs[0].ProductID != "X" {
		t.Errorf("got %+v, want the cached response", recs)
	}
}
