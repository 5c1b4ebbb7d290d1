package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DRSN-tech/ml-service/pkg/e"
)

type fakeBuilder struct {
	report  *BuildReport
	err     error
	started chan struct{}
	release chan struct{}
}

func newFakeBuilder(report *BuildReport) *fakeBuilder {
	return &fakeBuilder{
		report:  report,
		started: make(chan struct{}, 4),
		release: make(chan struct{}),
	}
}

func (f *fakeBuilder) Build(ctx context.Context) (*BuildReport, error) {
	select {
	case f.started <- struct{}{}:
	default:
	}
	<-f.release
	if f.err != nil {
		return nil, f.err
	}
	return f.report, nil
}

type fakeProducer struct {
	published chan *BuildReport
}

func (f *fakeProducer) PublishBuildReport(ctx context.Context, report *BuildReport) error {
	f.published <- report
	return nil
}

func TestStartBuild_RejectsConcurrent(t *testing.T) {
	builder := newFakeBuilder(&BuildReport{Built: 1})
	uc := NewBuildUC(builder, nil, nopLogger{})

	if err := uc.StartBuild(context.Background()); err != nil {
		t.Fatalf("first StartBuild() error = %v", err)
	}
	<-builder.started

	if err := uc.StartBuild(context.Background()); !errors.Is(err, e.ErrBuildInProgress) {
		t.Errorf("second StartBuild() error = %v, want ErrBuildInProgress", err)
	}

	close(builder.release)
}

func TestStartBuild_PublishesReport(t *testing.T) {
	report := &BuildReport{Built: 3, Failed: 1, Placeholders: 2, Dim: 4}
	builder := newFakeBuilder(report)
	producer := &fakeProducer{published: make(chan *BuildReport, 1)}
	uc := NewBuildUC(builder, producer, nopLogger{})

	if err := uc.StartBuild(context.Background()); err != nil {
		t.Fatalf("StartBuild() error = %v", err)
	}
	close(builder.release)

	select {
	case got := <-producer.published:
		if got.Built != 3 || got.Failed != 1 || got.Placeholders != 2 {
			t.Errorf("published report = %+v, want %+v", got, report)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("build report was not published")
	}
}

func TestStartBuild_AllowsRestartAfterCompletion(t *testing.T) {
	builder := newFakeBuilder(&BuildReport{})
	producer := &fakeProducer{published: make(chan *BuildReport, 1)}
	uc := NewBuildUC(builder, producer, nopLogger{})

	if err := uc.StartBuild(context.Background()); err != nil {
		t.Fatalf("StartBuild() error = %v", err)
	}
	close(builder.release)
	<-producer.published

	// после публикации отчёта сборка завершена, inFlight сброшен
	deadline := time.After(2 * time.Second)
	for {
		err := uc.StartBuild(context.Background())
		if err == nil {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("StartBuild() still rejected after completion: %v", err)
		case <-time.After(10 * time.Millisecond):
		}
	}
}
