package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/DRSN-tech/ml-service/internal/cfg"
	"github.com/DRSN-tech/ml-service/internal/usecase"
	"github.com/DRSN-tech/ml-service/pkg/e"
	"github.com/DRSN-tech/ml-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
	"github.com/segmentio/kafka-go"
)

// Producer публикует события о завершённых сборках эмбеддингов.
// Основной бэкенд по ним инвалидирует свои кэши похожих товаров.
type Producer struct {
	writer *kafka.Writer
	logger logger.Logger
	cfg    *cfg.KafkaCfg
}

func NewProducer(logger logger.Logger, cfg *cfg.KafkaCfg) (*Producer, error) {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchSize:    10,
		BatchTimeout: 500 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Warnf("Kafka producer error: %s", err.Error())
			}
		},
	}

	return &Producer{
		writer: writer,
		logger: logger,
		cfg:    cfg,
	}, nil
}

// embeddingsBuiltEvent — payload события в топике. Формат JSON,
// чтобы потребители не тянули наши схемы.
type embeddingsBuiltEvent struct {
	EventID      string `json:"event_id"`
	EventTS      int64  `json:"event_timestamp"`
	Built        int    `json:"built"`
	Failed       int    `json:"failed"`
	Placeholders int    `json:"placeholders"`
	Dim          int    `json:"dim"`
	DurationMS   int64  `json:"duration_ms"`
}

// PublishBuildReport публикует итог сборки эмбеддингов.
func (p *Producer) PublishBuildReport(ctx context.Context, report *usecase.BuildReport) error {
	event := embeddingsBuiltEvent{
		EventID:      uuid.NewString(),
		EventTS:      time.Now().UnixNano(),
		Built:        report.Built,
		Failed:       report.Failed,
		Placeholders: report.Placeholders,
		Dim:          report.Dim,
		DurationMS:   report.Duration.Milliseconds(),
	}

	value, err := json.Marshal(event)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.EventID),
		Value: value,
	})
}

// EnsureTopic создаёт топик, если его ещё нет.
func (p *Producer) EnsureTopic(timeout time.Duration) error {
	conn, err := kafka.Dial(p.cfg.NetworkMode, p.cfg.Brokers[0])
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions(p.cfg.Topic)
	if err == nil && len(partitions) > 0 {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		err := conn.CreateTopics(kafka.TopicConfig{
			Topic:             p.cfg.Topic,
			NumPartitions:     p.cfg.Partitions,
			ReplicationFactor: p.cfg.ReplicationFactor,
		})
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return e.Wrap(whereami.WhereAmI(), fmt.Errorf("failed to create topic %s: %w", p.cfg.Topic, err))
		}
		return nil
	case <-time.After(timeout):
		_ = conn.Close()
		return e.Wrap(whereami.WhereAmI(), fmt.Errorf("timeout: %v, topic: %s", timeout, p.cfg.Topic))
	}
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
