package http

import (
	"net/http"

	"github.com/DRSN-tech/ml-service/internal/usecase"
	"github.com/DRSN-tech/ml-service/pkg/e"
	"github.com/DRSN-tech/ml-service/pkg/logger"
)

type ImageSearchHandler struct {
	imageSearchUsecase usecase.ImageSearchUC
	logger             logger.Logger
}

func NewImageSearchHandler(imageSearchUsecase usecase.ImageSearchUC, logger logger.Logger) *ImageSearchHandler {
	return &ImageSearchHandler{imageSearchUsecase: imageSearchUsecase, logger: logger}
}

type imageSearchResponse struct {
	Matches []usecase.ImageMatch `json:"matches"`
	Count   int                  `json:"count"`
}

// searchByImage
//
//	@Summary		Поиск товаров по изображению
//	@Description	Ищет визуально похожие товары по присланной картинке
//	@Tags			image-search
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file				true	"Изображение для поиска"
//	@Param			top_k	query		int					false	"Число результатов (1-50, по умолчанию 10)"
//	@Success		200		{object}	imageSearchResponse	"Найденные товары"
//	@Failure		400		{object}	ErrorResponse		"Ошибка валидации"
//	@Router			/image-search [post]
func (h *ImageSearchHandler) searchByImage(w http.ResponseWriter, r *http.Request) {
	const (
		maxTotalRequestSize = 20 << 20
		maxMemory           = 16 << 20
	)

	r.Body = http.MaxBytesReader(w, r.Body, maxTotalRequestSize)

	topK, err := parseTopKQuery(r)
	if err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrInvalidTopK.Error(), r.URL.Query().Get("top_k"))
		WriteError(w, err)
		return
	}

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), r.Header.Get("Content-Type"))
		WriteError(w, err)
		return
	}

	image, err := readImageFile(r.MultipartForm.File["file"])
	if err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	matches, err := h.imageSearchUsecase.SearchByImage(r.Context(), usecase.NewImageSearchReq(image, topK))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, imageSearchResponse{
		Matches: matches,
		Count:   len(matches),
	})
}
