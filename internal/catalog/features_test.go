package catalog

import (
	"errors"
	"math"
	"testing"

	"github.com/DRSN-tech/ml-service/internal/domain"
	"github.com/DRSN-tech/ml-service/pkg/e"
)

func TestEncoder_Dim(t *testing.T) {
	enc := NewEncoder(New(testProducts()))

	// bags + shoes + цена
	if got := enc.Dim(); got != 3 {
		t.Errorf("Dim() = %d, want 3", got)
	}
}

func TestEncoder_Encode(t *testing.T) {
	c := New(testProducts())
	enc := NewEncoder(c)

	tests := []struct {
		name    string
		product domain.Product
		want    []float64
	}{
		{
			name:    "shoes min price",
			product: domain.Product{ID: "A", Category: "shoes", Price: 10000},
			want:    []float64{0, 1, float64(10000-5000) / float64(12000-5000)},
		},
		{
			name:    "shoes max price",
			product: domain.Product{ID: "B", Category: "shoes", Price: 12000},
			want:    []float64{0, 1, 1},
		},
		{
			name:    "bags",
			product: domain.Product{ID: "C", Category: "bags", Price: 5000},
			want:    []float64{1, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := enc.Encode(&tt.product)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Encode() len = %d, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if math.Abs(got[i]-tt.want[i]) > 1e-12 {
					t.Errorf("Encode()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestEncoder_EncodeErrors(t *testing.T) {
	enc := NewEncoder(New(testProducts()))

	_, err := enc.Encode(&domain.Product{ID: "X", Category: "", Price: 100})
	if !errors.Is(err, e.ErrMissingField) {
		t.Errorf("Encode(empty category) error = %v, want ErrMissingField", err)
	}

	_, err = enc.Encode(&domain.Product{ID: "Y", Category: "toys", Price: 100})
	if !errors.Is(err, e.ErrUnknownCategory) {
		t.Errorf("Encode(unknown category) error = %v, want ErrUnknownCategory", err)
	}
}

func TestEncoder_UniformPrices(t *testing.T) {
	c := New([]domain.Product{
		{ID: "A", Category: "shoes", Price: 500},
		{ID: "B", Category: "shoes", Price: 500},
	})
	enc := NewEncoder(c)

	vec, err := enc.Encode(&domain.Product{ID: "A", Category: "shoes", Price: 500})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	// при вырожденном диапазоне цен признак равен 0
	if vec[len(vec)-1] != 0 {
		t.Errorf("normalized price = %v, want 0", vec[len(vec)-1])
	}
}
