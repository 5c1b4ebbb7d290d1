package http

import (
	"encoding/json"
	"net/http"

	"github.com/DRSN-tech/ml-service/internal/usecase"
	"github.com/DRSN-tech/ml-service/pkg/e"
	"github.com/DRSN-tech/ml-service/pkg/logger"
)

type RecommendHandler struct {
	recommendUsecase usecase.RecommendUC
	logger           logger.Logger
}

func NewRecommendHandler(recommendUsecase usecase.RecommendUC, logger logger.Logger) *RecommendHandler {
	return &RecommendHandler{recommendUsecase: recommendUsecase, logger: logger}
}

type historyItemModel struct {
	ProductID string `json:"productId"`
	Category  string `json:"category"`
	Price     int64  `json:"price"`
}

type userRecommendationsRequest struct {
	UserID  string             `json:"userId"`
	History []historyItemModel `json:"user_history"`
	TopK    int                `json:"top_k"`
}

type userRecommendationsResponse struct {
	UserID          string                   `json:"userId"`
	Recommendations []usecase.Recommendation `json:"recommendations"`
	Count           int                      `json:"count"`
}

type similarProductsRequest struct {
	ProductID string `json:"productId"`
	TopK      int    `json:"top_k"`
}

type similarProductsResponse struct {
	ProductID       string                   `json:"productId"`
	SimilarProducts []usecase.SimilarProduct `json:"similarProducts"`
	Count           int                      `json:"count"`
}

// recommendForUser
//
//	@Summary		Персональные рекомендации
//	@Description	Подбирает товары по истории покупок пользователя
//	@Tags			recommendations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		userRecommendationsRequest	true	"История покупок"
//	@Success		200		{object}	userRecommendationsResponse	"Рекомендации"
//	@Failure		400		{object}	ErrorResponse				"Ошибка валидации"
//	@Router			/recommendations/user [post]
func (h *RecommendHandler) recommendForUser(w http.ResponseWriter, r *http.Request) {
	var req userRecommendationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	topK, err := validateTopK(req.TopK)
	if err != nil {
		h.logger.Warnf("%d %s: top_k=%d", http.StatusBadRequest, e.ErrInvalidTopK.Error(), req.TopK)
		WriteError(w, err)
		return
	}

	history := make([]usecase.HistoryItem, 0, len(req.History))
	for _, item := range req.History {
		history = append(history, usecase.HistoryItem{
			ProductID: item.ProductID,
			Category:  item.Category,
			Price:     item.Price,
		})
	}

	recs, err := h.recommendUsecase.RecommendForUser(r.Context(), usecase.NewRecommendUserReq(req.UserID, history, topK))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, userRecommendationsResponse{
		UserID:          req.UserID,
		Recommendations: recs,
		Count:           len(recs),
	})
}

// recommendSimilarProducts
//
//	@Summary		Похожие товары
//	@Description	Подбирает товары, похожие на заданный по категории и цене
//	@Tags			recommendations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		similarProductsRequest		true	"Товар и число рекомендаций"
//	@Success		200		{object}	similarProductsResponse		"Похожие товары"
//	@Failure		400		{object}	ErrorResponse				"Ошибка валидации"
//	@Failure		404		{object}	ErrorResponse				"Товар не найден"
//	@Router			/recommendations/similar-products [post]
func (h *RecommendHandler) recommendSimilarProducts(w http.ResponseWriter, r *http.Request) {
	var req similarProductsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	if req.ProductID == "" {
		h.logger.Warnf("%d %s: empty productId", http.StatusBadRequest, e.ErrMissingField.Error())
		WriteError(w, e.ErrMissingField)
		return
	}

	topK, err := validateTopK(req.TopK)
	if err != nil {
		h.logger.Warnf("%d %s: top_k=%d", http.StatusBadRequest, e.ErrInvalidTopK.Error(), req.TopK)
		WriteError(w, err)
		return
	}

	recs, err := h.recommendUsecase.RecommendSimilarProducts(r.Context(), usecase.NewSimilarProductsReq(req.ProductID, topK))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, similarProductsResponse{
		ProductID:       req.ProductID,
		SimilarProducts: recs,
		Count:           len(recs),
	})
}
