package http

import (
	"net/http"

	_ "github.com/DRSN-tech/ml-service/docs" // Импорт сгенерированных файлов
	"github.com/DRSN-tech/ml-service/internal/usecase"
	"github.com/DRSN-tech/ml-service/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(
	recUC usecase.RecommendUC,
	imgUC usecase.ImageSearchUC,
	prUC usecase.ProductUC,
	buildUC usecase.BuildUC,
) {
	r.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.router.Get("/health", healthCheck)

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8000/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		registerRecommendRoutes(v1, NewRecommendHandler(recUC, r.logger))
		registerImageSearchRoutes(v1, NewImageSearchHandler(imgUC, r.logger))
		registerProductRoutes(v1, NewProductHandler(prUC, r.logger))
		registerBuildRoutes(v1, NewBuildHandler(buildUC, r.logger))
	})
}

func registerRecommendRoutes(router chi.Router, h *RecommendHandler) {
	router.Route("/recommendations", func(rec chi.Router) {
		rec.Post("/user", h.recommendForUser)
		rec.Post("/similar-products", h.recommendSimilarProducts)
	})
}

func registerImageSearchRoutes(router chi.Router, h *ImageSearchHandler) {
	router.Post("/image-search", h.searchByImage)
}

func registerProductRoutes(router chi.Router, h *ProductHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/count", h.getProductCount)
		pr.Get("/{productId}", h.getProduct)
	})
}

func registerBuildRoutes(router chi.Router, h *BuildHandler) {
	router.Route("/embeddings", func(emb chi.Router) {
		emb.Post("/build", h.startBuild)
	})
}

// healthCheck
//
//	@Summary		Liveness-проба
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	map[string]interface{}	"Сервис жив"
//	@Router			/health [get]
func healthCheck(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"message": "ML Service is running",
	})
}
