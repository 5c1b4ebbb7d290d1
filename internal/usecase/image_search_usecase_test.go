package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/DRSN-tech/ml-service/internal/domain"
	"github.com/DRSN-tech/ml-service/pkg/e"
)

type fakeEmbStore struct {
	length  int
	dim     int
	matches []ImageMatch

	lastQuery []float32
	lastTopK  int
}

func (f *fakeEmbStore) Upsert(emb *domain.Embedding) error { return nil }

func (f *fakeEmbStore) Search(query []float32, topK int) []ImageMatch {
	f.lastQuery = query
	f.lastTopK = topK
	return f.matches
}

func (f *fakeEmbStore) Save(vectorsPath, idsPath string) error { return nil }
func (f *fakeEmbStore) Len() int                               { return f.length }
func (f *fakeEmbStore) Dim() int                               { return f.dim }

type fakeExtractor struct {
	res    *VectorizeRes
	err    error
	called bool
}

func (f *fakeExtractor) Vectorize(ctx context.Context, image []byte) (*VectorizeRes, error) {
	f.called = true
	if f.err != nil {
		return nil, f.err
	}
	return f.res, nil
}

func TestSearchByImage(t *testing.T) {
	store := &fakeEmbStore{
		length: 2,
		dim:    3,
		matches: []ImageMatch{
			{ProductID: "A", Similarity: 0.9},
			{ProductID: "B", Similarity: 0.5},
		},
	}
	ext := &fakeExtractor{res: NewVectorizeRes([]float32{1, 0, 0}, "v1")}
	uc := NewImageSearchUC(store, ext, nopLogger{})

	matches, err := uc.SearchByImage(context.Background(), NewImageSearchReq([]byte("png-bytes"), 2))
	if err != nil {
		t.Fatalf("SearchByImage() error = %v", err)
	}

	if len(matches) != 2 || matches[0].ProductID != "A" {
		t.Errorf("got %+v, want store matches", matches)
	}
	if store.lastTopK != 2 {
		t.Errorf("store received topK = %d, want 2", store.lastTopK)
	}
	if len(store.lastQuery) != 3 {
		t.Errorf("store received query of len %d, want 3", len(store.lastQuery))
	}
}

func TestSearchByImage_EmptyImage(t *testing.T) {
	uc := NewImageSearchUC(&fakeEmbStore{length: 1}, &fakeExtractor{}, nopLogger{})

	_, err := uc.SearchByImage(context.Background(), NewImageSearchReq(nil, 2))
	if !errors.Is(err, e.ErrInvalidImage) {
		t.Errorf("error = %v, want ErrInvalidImage", err)
	}
}

func TestSearchByImage_EmptyStoreSkipsExtractor(t *testing.T) {
	ext := &fakeExtractor{res: NewVectorizeRes([]float32{1}, "v1")}
	uc := NewImageSearchUC(&fakeEmbStore{length: 0}, ext, nopLogger{})

	matches, err := uc.SearchByImage(context.Background(), NewImageSearchReq([]byte("png-bytes"), 2))
	if err != nil {
		t.Fatalf("SearchByImage() error = %v", err)
	}

	if len(matches) != 0 {
		t.Errorf("got %d matches from empty store, want 0", len(matches))
	}
	if ext.called {
		t.Error("extractor must not be called when the store is empty")
	}
}

func TestSearchByImage_ExtractorError(t *testing.T) {
	wantErr := errors.New("extractor down")
	uc := NewImageSearchUC(&fakeEmbStore{length: 1}, &fakeExtractor{err: wantErr}, nopLogger{})

	_, err := uc.SearchByImage(context.Background(), NewImageSearchReq([]byte("png-bytes"), 2))
	if !errors.Is(err, wantErr) {
		t.Errorf("error = %v, want wrapped extractor error", err)
	}
}
