package usecase

import "context"

// ExtractorInfra — клиент внешнего CNN-экстрактора признаков.
// Для одинаковых байтов изображения возвращает одинаковый вектор
// фиксированной длины.
type ExtractorInfra interface {
	Vectorize(ctx context.Context, image []byte) (*VectorizeRes, error)
}

// EmbeddingBuilder — сборка эмбеддингов всего каталога.
type EmbeddingBuilder interface {
	Build(ctx context.Context) (*BuildReport, error)
}

// EventProducer — публикация событий о завершённых сборках эмбеддингов.
type EventProducer interface {
	PublishBuildReport(ctx context.Context, report *BuildReport) error
}
