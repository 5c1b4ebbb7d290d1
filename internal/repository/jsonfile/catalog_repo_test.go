package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/DRSN-tech/ml-service/internal/cfg"
	"github.com/DRSN-tech/ml-service/pkg/e"
)

type nopLogger struct{}

func (nopLogger) Infof(format string, args ...any)            {}
func (nopLogger) Warnf(format string, args ...any)            {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

func writeCatalogFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newRepo(path string) *CatalogRepo {
	return NewCatalogRepo(&cfg.CatalogCfg{Source: cfg.CatalogSourceFile, FilePath: path}, nopLogger{})
}

func TestLoadProducts(t *testing.T) {
	path := writeCatalogFile(t, `{
		"products": [
			{"id": "A", "name": "Кроссовки", "category": "shoes", "price": 599.99, "image_url": "http://img/a.jpg"},
			{"id": "B", "name": "Сумка", "category": "bags", "price": 120, "image_key": "images/b.png"}
		]
	}`)

	products, err := newRepo(path).LoadProducts(context.Background())
	if err != nil {
		t.Fatalf("LoadProducts() error = %v", err)
	}

	if len(products) != 2 {
		t.Fatalf("got %d products, want 2", len(products))
	}

	if products[0].ID != "A" || products[0].Price != 59999 {
		t.Errorf("products[0] = %+v, want price 59999 cents", products[0])
	}
	if products[0].ImageURL != "http://img/a.jpg" {
		t.Errorf("products[0].ImageURL = %q", products[0].ImageURL)
	}
	if products[1].Price != 12000 || products[1].ImageKey != "images/b.png" {
		t.Errorf("products[1] = %+v", products[1])
	}
}

func TestLoadProducts_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.json")

	products, err := newRepo(path).LoadProducts(context.Background())
	if err != nil {
		t.Fatalf("LoadProducts() error = %v, missing file must not fail", err)
	}
	if len(products) != 0 {
		t.Errorf("got %d products from missing file, want 0", len(products))
	}
}

func TestLoadProducts_BadJSON(t *testing.T) {
	path := writeCatalogFile(t, `{"products": [`)

	if _, err := newRepo(path).LoadProducts(context.Background()); err == nil {
		t.Error("LoadProducts() of corrupt file must fail")
	}
}

func TestLoadProducts_PriceErrors(t *testing.T) {
	tests := []struct {
		name    string
		price   string
		wantErr error
	}{
		{"negative", `-10`, e.ErrInvalidPrice},
		{"too many decimals", `9.999`, e.ErrPricePrecision},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCatalogFile(t, `{"products": [{"id": "A", "name": "x", "category": "c", "price": `+tt.price+`}]}`)

			_, err := newRepo(path).LoadProducts(context.Background())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadProducts() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParsePriceToCents(t *testing.T) {
	tests := []struct {
		raw  string
		want int64
	}{
		{"0", 0},
		{"120", 12000},
		{"599.99", 59999},
		{"0.01", 1},
		{"1000000", 100000000},
	}

	for _, tt := range tests {
		got, err := parsePriceToCents(json.Number(tt.raw))
		if err != nil {
			t.Errorf("parsePriceToCents(%q) error = %v", tt.raw, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parsePriceToCents(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}
