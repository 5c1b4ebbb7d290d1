package usecase

import "time"

// RECOMMENDATIONS

// HistoryItem — позиция истории покупок пользователя.
type HistoryItem struct {
	ProductID string
	Category  string
	Price     int64
}

// RecommendUserReq — запрос рекомендаций по истории пользователя.
type RecommendUserReq struct {
	UserID  string
	History []HistoryItem
	TopK    int
}

// Recommendation — рекомендованный товар с оценкой близости к профилю.
type Recommendation struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Price     int64   `json:"price"`
	Score     float64 `json:"score"`
}

// SimilarProductsReq — запрос товаров, похожих на заданный.
type SimilarProductsReq struct {
	ProductID string
	TopK      int
}

// SimilarProduct — похожий товар с косинусной близостью к целевому.
type SimilarProduct struct {
	ProductID  string  `json:"productId"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Price      int64   `json:"price"`
	Similarity float64 `json:"similarity"`
}

// IMAGE SEARCH

// ImageSearchReq — запрос поиска товаров по изображению.
type ImageSearchReq struct {
	Image []byte
	TopK  int
}

// ImageMatch — результат поиска по эмбеддингу: товар и близость к запросу.
// Метаданные товара сюда не подмешиваются, это забота вызывающего.
type ImageMatch struct {
	ProductID  string  `json:"productId"`
	Similarity float64 `json:"similarity"`
}

// VectorizeRes — результат векторизации одного изображения экстрактором.
type VectorizeRes struct {
	Vector       []float32
	ModelVersion string
}

// PRODUCTS

// ProductInfo — DTO с информацией о товаре для внешнего использования.
type ProductInfo struct {
	ID       string `json:"productId"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    int64  `json:"price"`
}

// BUILD

// BuildReport — итог фоновой сборки эмбеддингов каталога.
type BuildReport struct {
	Built        int
	Failed       int
	Placeholders int
	Dim          int
	Duration     time.Duration
}

// MAPPERS

func NewRecommendUserReq(userID string, history []HistoryItem, topK int) *RecommendUserReq {
	return &RecommendUserReq{
		UserID:  userID,
		History: history,
		TopK:    topK,
	}
}

func NewSimilarProductsReq(productID string, topK int) *SimilarProductsReq {
	return &SimilarProductsReq{
		ProductID: productID,
		TopK:      topK,
	}
}

func NewImageSearchReq(image []byte, topK int) *ImageSearchReq {
	return &ImageSearchReq{
		Image: image,
		TopK:  topK,
	}
}

func NewVectorizeRes(vector []float32, modelVersion string) *VectorizeRes {
	return &VectorizeRes{
		Vector:       vector,
		ModelVersion: modelVersion,
	}
}

func NewProductInfo(id string, name string, category string, price int64) *ProductInfo {
	return &ProductInfo{
		ID:       id,
		Name:     name,
		Category: category,
		Price:    price,
	}
}
