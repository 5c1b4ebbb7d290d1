package usecase

import (
	"context"
	"sync/atomic"

	"github.com/DRSN-tech/ml-service/pkg/e"
	"github.com/DRSN-tech/ml-service/pkg/logger"
)

// BuildUseCase запускает фоновую сборку эмбеддингов каталога.
// Одновременно выполняется не больше одной сборки.
type BuildUseCase struct {
	builder  EmbeddingBuilder
	producer EventProducer
	logger   logger.Logger

	inFlight atomic.Bool
}

// NewBuildUC создаёт use case сборки. producer может быть nil,
// тогда события о сборках не публикуются.
func NewBuildUC(
	builder EmbeddingBuilder,
	producer EventProducer,
	logger logger.Logger,
) *BuildUseCase {
	return &BuildUseCase{
		builder:  builder,
		producer: producer,
		logger:   logger,
	}
}

// StartBuild запускает сборку в фоне и сразу возвращается.
// Повторный запуск при незавершённой сборке отклоняется.
func (b *BuildUseCase) StartBuild(ctx context.Context) error {
	const op = "BuildUseCase.StartBuild"

	if !b.inFlight.CompareAndSwap(false, true) {
		return e.Wrap(op, e.ErrBuildInProgress)
	}

	go func() {
		defer b.inFlight.Store(false)

		// Сборка переживает HTTP-запрос, который её запустил.
		report, err := b.builder.Build(context.Background())
		if err != nil {
			b.logger.Errorf(err, "embeddings build failed")
			return
		}

		b.logger.Infof(
			"embeddings build finished: built=%d failed=%d placeholders=%d dim=%d in %s",
			report.Built, report.Failed, report.Placeholders, report.Dim, report.Duration,
		)

		if b.producer == nil {
			return
		}

		if err := b.producer.PublishBuildReport(context.Background(), report); err != nil {
			b.logger.Errorf(err, "failed to publish build report")
		}
	}()

	return nil
}
