package http

import (
	"net/http"

	"github.com/DRSN-tech/ml-service/internal/usecase"
	"github.com/DRSN-tech/ml-service/pkg/logger"
)

type BuildHandler struct {
	buildUsecase usecase.BuildUC
	logger       logger.Logger
}

func NewBuildHandler(buildUsecase usecase.BuildUC, logger logger.Logger) *BuildHandler {
	return &BuildHandler{buildUsecase: buildUsecase, logger: logger}
}

// startBuild
//
//	@Summary		Сборка эмбеддингов
//	@Description	Запускает фоновую сборку эмбеддингов изображений каталога
//	@Tags			embeddings
//	@Produce		json
//	@Success		202	{object}	map[string]interface{}	"Сборка запущена"
//	@Failure		409	{object}	ErrorResponse			"Сборка уже идёт"
//	@Router			/embeddings/build [post]
func (h *BuildHandler) startBuild(w http.ResponseWriter, r *http.Request) {
	if err := h.buildUsecase.StartBuild(r.Context()); err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusAccepted, map[string]interface{}{
		"status": "started",
	})
}
