package usecase

import "context"

type RecommendUC interface {
	RecommendForUser(ctx context.Context, req *RecommendUserReq) ([]Recommendation, error)
	RecommendSimilarProducts(ctx context.Context, req *SimilarProductsReq) ([]SimilarProduct, error)
}

type ImageSearchUC interface {
	SearchByImage(ctx context.Context, req *ImageSearchReq) ([]ImageMatch, error)
}

type ProductUC interface {
	GetProduct(ctx context.Context, id string) (*ProductInfo, error)
	Count(ctx context.Context) int
}

type BuildUC interface {
	StartBuild(ctx context.Context) error
}
