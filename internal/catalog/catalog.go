// Package catalog содержит неизменяемый снимок каталога товаров
// и производные от него статистики для кодирования признаков.
package catalog

import (
	"sort"

	"github.com/DRSN-tech/ml-service/internal/domain"
	"github.com/shopspring/decimal"
)

// PriceStats — статистика цен каталога, используется для нормализации.
type PriceStats struct {
	Min  int64
	Max  int64
	Mean decimal.Decimal
}

// Catalog — снимок каталога товаров с производными данными.
// После создания не изменяется, поэтому безопасен для конкурентного чтения.
type Catalog struct {
	products   []domain.Product
	byID       map[string]int
	categories []string
	catIdx     map[string]int
	stats      PriceStats
}

// New строит снимок каталога из упорядоченного списка товаров.
// Порядок категорий сортированный: он задаёт раскладку one-hot признаков
// и обязан быть детерминированным между перезапусками.
func New(products []domain.Product) *Catalog {
	c := &Catalog{
		products: products,
		byID:     make(map[string]int, len(products)),
		catIdx:   make(map[string]int),
	}

	catSet := make(map[string]struct{})
	for i, p := range products {
		c.byID[p.ID] = i
		if p.Category != "" {
			catSet[p.Category] = struct{}{}
		}
	}

	c.categories = make([]string, 0, len(catSet))
	for cat := range catSet {
		c.categories = append(c.categories, cat)
	}
	sort.Strings(c.categories)
	for i, cat := range c.categories {
		c.catIdx[cat] = i
	}

	c.stats = calcPriceStats(products)

	return c
}

// calcPriceStats вычисляет min/max/mean цен. Среднее считается точно, в decimal.
func calcPriceStats(products []domain.Product) PriceStats {
	if len(products) == 0 {
		return PriceStats{Min: 0, Max: 1, Mean: decimal.Zero}
	}

	stats := PriceStats{Min: products[0].Price, Max: products[0].Price}
	var sum int64
	for _, p := range products {
		if p.Price < stats.Min {
			stats.Min = p.Price
		}
		if p.Price > stats.Max {
			stats.Max = p.Price
		}
		sum += p.Price
	}

	stats.Mean = decimal.NewFromInt(sum).Div(decimal.NewFromInt(int64(len(products))))

	return stats
}

// Products возвращает товары в исходном порядке каталога.
func (c *Catalog) Products() []domain.Product {
	return c.products
}

// Product возвращает товар по идентификатору.
func (c *Catalog) Product(id string) (domain.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, false
	}

	return c.products[i], true
}

// Categories возвращает отсортированный список категорий каталога.
func (c *Catalog) Categories() []string {
	return c.categories
}

// CategoryIndex возвращает позицию категории в one-hot раскладке.
func (c *Catalog) CategoryIndex(category string) (int, bool) {
	i, ok := c.catIdx[category]
	return i, ok
}

// PriceStats возвращает статистику цен каталога.
func (c *Catalog) PriceStats() PriceStats {
	return c.stats
}

// Len возвращает количество товаров в каталоге.
func (c *Catalog) Len() int {
	return len(c.products)
}
