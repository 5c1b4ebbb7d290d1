package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/DRSN-tech/ml-service/internal/cfg"
	"github.com/DRSN-tech/ml-service/internal/usecase"
	"github.com/DRSN-tech/ml-service/pkg/e"
	"github.com/DRSN-tech/ml-service/pkg/jitter"
	"github.com/DRSN-tech/ml-service/pkg/logger"
)

// Client клиент для взаимодействия с внешним CNN-экстрактором признаков
type Client struct {
	addr       string
	httpClient *http.Client
	maxRetries int
	logger     logger.Logger
}

func NewClient(cfg *cfg.ExtractorCfg, logger logger.Logger) *Client {
	return &Client{
		addr: cfg.Addr,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		maxRetries: cfg.MaxRetries,
		logger:     logger,
	}
}

type vectorizeResponse struct {
	Vector       []float32 `json:"vector"`
	ModelVersion string    `json:"model_version"`
}

// Vectorize выполняет векторизацию изображения с retry-логикой и экспоненциальной задержкой
func (c *Client) Vectorize(ctx context.Context, image []byte) (*usecase.VectorizeRes, error) {
	const (
		op         = "extractor.Client.Vectorize"
		baseJitter = 1 * time.Second
		maxJitter  = 30 * time.Second
	)

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		res, err := c.vectorizeOnce(ctx, image)
		if err == nil {
			return res, nil
		}

		if attempt == c.maxRetries-1 {
			return nil, e.Wrap(op, fmt.Errorf("all %d attempts failed: %w", c.maxRetries, err))
		}

		sleepTime := jitter.ExponentialBackoff(
			baseJitter,
			maxJitter,
			attempt,
			jitter.DefaultJitter,
		)

		c.logger.Warnf("vectorization failed, retrying in %v (attempt %d): %v", sleepTime, attempt+1, err)
		select {
		case <-time.After(sleepTime):
		case <-ctx.Done():
			return nil, e.Wrap(op, ctx.Err())
		}
	}

	return nil, e.Wrap(op, fmt.Errorf("unreachable"))
}

// vectorizeOnce выполняет один запрос к экстрактору без повторов
func (c *Client) vectorizeOnce(ctx context.Context, image []byte) (*usecase.VectorizeRes, error) {
	const op = "extractor.Client.vectorizeOnce"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.addr+"/vectorize", bytes.NewReader(image))
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, e.Wrap(op, fmt.Errorf("extractor returned %d: %s", resp.StatusCode, body))
	}

	var model vectorizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&model); err != nil {
		return nil, e.Wrap(op, err)
	}

	if len(model.Vector) == 0 {
		return nil, e.Wrap(op, e.ErrEmptyVector)
	}

	return usecase.NewVectorizeRes(model.Vector, model.ModelVersion), nil
}
