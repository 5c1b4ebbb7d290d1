package http

import (
	"net/http"

	"github.com/DRSN-tech/ml-service/internal/usecase"
	"github.com/DRSN-tech/ml-service/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	productUsecase usecase.ProductUC
	logger         logger.Logger
}

func NewProductHandler(productUsecase usecase.ProductUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{productUsecase: productUsecase, logger: logger}
}

type productCountResponse struct {
	Count int `json:"count"`
}

// getProduct
//
//	@Summary		Карточка товара
//	@Description	Возвращает товар из каталога по идентификатору
//	@Tags			products
//	@Produce		json
//	@Param			productId	path		string				true	"Идентификатор товара"
//	@Success		200			{object}	usecase.ProductInfo	"Товар"
//	@Failure		404			{object}	ErrorResponse		"Товар не найден"
//	@Router			/products/{productId} [get]
func (h *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productId")

	info, err := h.productUsecase.GetProduct(r.Context(), id)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, info)
}

// getProductCount
//
//	@Summary		Размер каталога
//	@Description	Возвращает число товаров в каталоге
//	@Tags			products
//	@Produce		json
//	@Success		200	{object}	productCountResponse	"Число товаров"
//	@Router			/products/count [get]
func (h *ProductHandler) getProductCount(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, productCountResponse{
		Count: h.productUsecase.Count(r.Context()),
	})
}
