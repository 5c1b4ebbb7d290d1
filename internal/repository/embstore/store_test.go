package embstore

import (
	"errors"
	"math"
	"testing"

	"github.com/DRSN-tech/ml-service/internal/domain"
	"github.com/DRSN-tech/ml-service/pkg/e"
)

func TestUpsert(t *testing.T) {
	s := New()

	if err := s.Upsert(domain.NewEmbedding("A", []float32{1, 0, 0})); err != nil {
		t.Fatalf("Upsert(A) error = %v", err)
	}
	if err := s.Upsert(domain.NewEmbedding("B", []float32{0, 1, 0})); err != nil {
		t.Fatalf("Upsert(B) error = %v", err)
	}

	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if s.Dim() != 3 {
		t.Errorf("Dim() = %d, want 3", s.Dim())
	}
}

func TestUpsert_OverwriteKeepsLen(t *testing.T) {
	s := New()

	if err := s.Upsert(domain.NewEmbedding("A", []float32{1, 0})); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if err := s.Upsert(domain.NewEmbedding("A", []float32{0, 1})); err != nil {
		t.Fatalf("Upsert() overwrite error = %v", err)
	}

	if s.Len() != 1 {
		t.Errorf("Len() = %d after overwrite, want 1", s.Len())
	}

	matches := s.Search([]float32{0, 1}, 1)
	if len(matches) != 1 || matches[0].ProductID != "A" {
		t.Fatalf("Search() = %+v", matches)
	}
	if math.Abs(matches[0].Similarity-1) > 1e-9 {
		t.Errorf("similarity after overwrite = %v, want 1", matches[0].Similarity)
	}
}

func TestUpsert_Errors(t *testing.T) {
	s := New()

	if err := s.Upsert(domain.NewEmbedding("A", nil)); !errors.Is(err, e.ErrEmptyVector) {
		t.Errorf("Upsert(empty) error = %v, want ErrEmptyVector", err)
	}

	if err := s.Upsert(domain.NewEmbedding("A", []float32{1, 2})); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if err := s.Upsert(domain.NewEmbedding("B", []float32{1, 2, 3})); !errors.Is(err, e.ErrVectorDimMismatch) {
		t.Errorf("Upsert(wrong dim) error = %v, want ErrVectorDimMismatch", err)
	}
}

func TestUpsert_CopiesVector(t *testing.T) {
	s := New()

	vec := []float32{1, 0}
	if err := s.Upsert(domain.NewEmbedding("A", vec)); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	// мутация исходного среза не должна менять хранилище
	vec[0] = 0
	vec[1] = 1

	matches := s.Search([]float32{1, 0}, 1)
	if math.Abs(matches[0].Similarity-1) > 1e-9 {
		t.Errorf("similarity = %v, want 1: store must copy inserted vectors", matches[0].Similarity)
	}
}

func TestSearch_Ranking(t *testing.T) {
	s := New()
	for _, emb := range []*domain.Embedding{
		domain.NewEmbedding("far", []float32{0, 1, 0}),
		domain.NewEmbedding("near", []float32{1, 0.1, 0}),
		domain.NewEmbedding("exact", []float32{1, 0, 0}),
	} {
		if err := s.Upsert(emb); err != nil {
			t.Fatalf("Upsert(%s) error = %v", emb.ProductID, err)
		}
	}

	matches := s.Search([]float32{1, 0, 0}, 2)
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	if matches[0].ProductID != "exact" || matches[1].ProductID != "near" {
		t.Errorf("got order [%s, %s], want [exact, near]", matches[0].ProductID, matches[1].ProductID)
	}
	if matches[0].Similarity < matches[1].Similarity {
		t.Error("matches must be sorted by similarity descending")
	}
}

func TestSearch_TiesKeepInsertionOrder(t *testing.T) {
	s := New()
	if err := s.Upsert(domain.NewEmbedding("first", []float32{1, 0})); err != nil {
		t.Fatal(err)
	}
	if err := s.Upsert(domain.NewEmbedding("second", []float32{2, 0})); err != nil {
		t.Fatal(err)
	}

	// косинусная близость обоих векторов к запросу равна 1
	matches := s.Search([]float32{1, 0}, 2)
	if matches[0].ProductID != "first" || matches[1].ProductID != "second" {
		t.Errorf("got order [%s, %s], want insertion order [first, second]", matches[0].ProductID, matches[1].ProductID)
	}
}

func TestSearch_EmptyStore(t *testing.T) {
	s := New()

	if matches := s.Search([]float32{1}, 5); len(matches) != 0 {
		t.Errorf("Search() on empty store = %+v, want empty", matches)
	}
}

func TestSearch_ZeroNormQuery(t *testing.T) {
	s := New()
	if err := s.Upsert(domain.NewEmbedding("A", []float32{1, 0})); err != nil {
		t.Fatal(err)
	}

	matches := s.Search([]float32{0, 0}, 1)
	if len(matches) != 1 || matches[0].Similarity != 0 {
		t.Errorf("Search(zero query) = %+v, want similarity 0", matches)
	}
}
