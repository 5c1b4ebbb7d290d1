package builder

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/DRSN-tech/ml-service/internal/catalog"
	"github.com/DRSN-tech/ml-service/internal/cfg"
	"github.com/DRSN-tech/ml-service/internal/domain"
	"github.com/DRSN-tech/ml-service/internal/usecase"
	"github.com/DRSN-tech/ml-service/pkg/e"
	"github.com/DRSN-tech/ml-service/pkg/logger"
)

// Параметры изображения-заглушки, подаваемого экстрактору вместо
// недоступной картинки товара.
const (
	placeholderSide = 224
	placeholderR    = 73
	placeholderG    = 109
	placeholderB    = 137
)

// Builder собирает эмбеддинги изображений для всего каталога:
// скачивает картинку каждого товара, векторизует её экстрактором
// и кладёт вектор в хранилище. Недоступная картинка заменяется
// заглушкой, отказ векторизации пропускает товар.
type Builder struct {
	catalog    *catalog.Catalog
	store      usecase.EmbeddingStore
	extractor  usecase.ExtractorInfra
	images     usecase.ImageRepository // nil, если MinIO не настроен
	httpClient *http.Client
	cfg        *cfg.ExtractorCfg
	emb        *cfg.EmbeddingsCfg
	logger     logger.Logger

	placeholderOnce sync.Once
	placeholder     []byte
}

func NewBuilder(
	cat *catalog.Catalog,
	store usecase.EmbeddingStore,
	extractor usecase.ExtractorInfra,
	images usecase.ImageRepository,
	extractorCfg *cfg.ExtractorCfg,
	embCfg *cfg.EmbeddingsCfg,
	logger logger.Logger,
) *Builder {
	return &Builder{
		catalog:   cat,
		store:     store,
		extractor: extractor,
		images:    images,
		httpClient: &http.Client{
			Timeout: extractorCfg.ImageTimeout,
		},
		cfg:    extractorCfg,
		emb:    embCfg,
		logger: logger,
	}
}

// Build обрабатывает каталог параллельно с ограничением конкурентности
// и по завершении сохраняет хранилище на диск. Отказ одного товара
// не прерывает сборку, отказ сохранения прерывает.
func (b *Builder) Build(ctx context.Context) (*usecase.BuildReport, error) {
	const op = "Builder.Build"

	start := time.Now()

	var built, failed, placeholders atomic.Int64

	sem := make(chan struct{}, b.cfg.MaxConcurrent)
	var wg sync.WaitGroup
	for _, p := range b.catalog.Products() {
		p := p
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				failed.Add(1)
				return
			}

			img, isPlaceholder := b.fetchImage(ctx, &p)
			res, err := b.extractor.Vectorize(ctx, img)
			if err != nil {
				b.logger.Warnf("vectorization failed for product %s: %v", p.ID, err)
				failed.Add(1)
				return
			}

			if err := b.store.Upsert(domain.NewEmbedding(p.ID, res.Vector)); err != nil {
				b.logger.Warnf("upsert failed for product %s: %v", p.ID, err)
				failed.Add(1)
				return
			}

			built.Add(1)
			if isPlaceholder {
				placeholders.Add(1)
			}
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err := b.store.Save(b.emb.VectorsPath, b.emb.IDsPath); err != nil {
		return nil, e.Wrap(op, err)
	}

	return &usecase.BuildReport{
		Built:        int(built.Load()),
		Failed:       int(failed.Load()),
		Placeholders: int(placeholders.Load()),
		Dim:          b.store.Dim(),
		Duration:     time.Since(start),
	}, nil
}

// fetchImage возвращает байты картинки товара и признак того,
// что пришлось подставить заглушку. Сначала пробуем MinIO по ключу,
// затем внешний URL. Любой отказ логируется и заменяется заглушкой.
func (b *Builder) fetchImage(ctx context.Context, p *domain.Product) ([]byte, bool) {
	if p.ImageKey != "" && b.images != nil {
		data, err := b.images.Download(ctx, p.ImageKey)
		if err == nil {
			return data, false
		}
		b.logger.Warnf("minio download failed for product %s (key %s): %v", p.ID, p.ImageKey, err)
	}

	if p.ImageURL != "" {
		data, err := b.downloadURL(ctx, p.ImageURL)
		if err == nil {
			return data, false
		}
		b.logger.Warnf("image download failed for product %s: %v", p.ID, err)
	}

	return b.placeholderImage(), true
}

// downloadURL скачивает картинку по внешнему URL с таймаутом клиента
func (b *Builder) downloadURL(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// placeholderImage лениво кодирует однотонный PNG-квадрат.
// Заглушка детерминирована, поэтому все товары без картинки
// получают одинаковый эмбеддинг.
func (b *Builder) placeholderImage() []byte {
	b.placeholderOnce.Do(func() {
		img := image.NewRGBA(image.Rect(0, 0, placeholderSide, placeholderSide))
		fill := color.RGBA{R: placeholderR, G: placeholderG, B: placeholderB, A: 255}
		for y := 0; y < placeholderSide; y++ {
			for x := 0; x < placeholderSide; x++ {
				img.SetRGBA(x, y, fill)
			}
		}

		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			// Кодирование RGBA в PNG не отказывает на валидном изображении.
			b.logger.Errorf(err, "failed to encode placeholder image")
			return
		}

		b.placeholder = buf.Bytes()
	})

	return b.placeholder
}
