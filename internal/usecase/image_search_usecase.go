package usecase

import (
	"context"

	"github.com/DRSN-tech/ml-service/pkg/e"
	"github.com/DRSN-tech/ml-service/pkg/logger"
)

// ImageSearchUseCase ищет товары, визуально похожие на присланное
// изображение: картинка векторизуется внешним экстрактором, затем
// вектор сравнивается со всеми эмбеддингами каталога.
type ImageSearchUseCase struct {
	store     EmbeddingStore
	extractor ExtractorInfra
	logger    logger.Logger
}

func NewImageSearchUC(
	store EmbeddingStore,
	extractor ExtractorInfra,
	logger logger.Logger,
) *ImageSearchUseCase {
	return &ImageSearchUseCase{
		store:     store,
		extractor: extractor,
		logger:    logger,
	}
}

// SearchByImage возвращает до req.TopK ближайших товаров. Пустое хранилище
// не повод дёргать экстрактор: ответ пуст сразу.
func (i *ImageSearchUseCase) SearchByImage(ctx context.Context, req *ImageSearchReq) ([]ImageMatch, error) {
	const op = "ImageSearchUseCase.SearchByImage"

	if len(req.Image) == 0 {
		return nil, e.Wrap(op, e.ErrInvalidImage)
	}

	if i.store.Len() == 0 {
		i.logger.Warnf("image search with empty embedding store, run a build first")
		return []ImageMatch{}, nil
	}

	res, err := i.extractor.Vectorize(ctx, req.Image)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return i.store.Search(res.Vector, req.TopK), nil
}
