package catalog

import (
	"github.com/DRSN-tech/ml-service/internal/domain"
	"github.com/DRSN-tech/ml-service/pkg/e"
)

// Encoder кодирует товар в вектор признаков фиксированной длины:
// one-hot категории (в порядке Categories каталога) плюс нормализованная цена.
// Векторы, закодированные разными снимками каталога, несовместимы между собой.
type Encoder struct {
	c *Catalog
}

// NewEncoder привязывает кодировщик к снимку каталога.
func NewEncoder(c *Catalog) *Encoder {
	return &Encoder{c: c}
}

// Dim возвращает длину вектора признаков: |категорий| + 1.
func (enc *Encoder) Dim() int {
	return len(enc.c.categories) + 1
}

// Encode кодирует товар. Отсутствие категории у товара и категория,
// неизвестная снимку каталога, — явные ошибки: молча кодировать нулями нельзя,
// иначе битая запись превращается в неверный, но правдоподобный результат.
func (enc *Encoder) Encode(p *domain.Product) ([]float64, error) {
	const op = "Encoder.Encode"

	if p.Category == "" {
		return nil, e.Wrap(op+": product "+p.ID, e.ErrMissingField)
	}

	idx, ok := enc.c.catIdx[p.Category]
	if !ok {
		return nil, e.Wrap(op+": product "+p.ID+", category "+p.Category, e.ErrUnknownCategory)
	}

	vec := make([]float64, enc.Dim())
	vec[idx] = 1

	vec[len(vec)-1] = enc.normalizePrice(p.Price)

	return vec, nil
}

// normalizePrice приводит цену к [0, 1] по min/max каталога.
// При одинаковых ценах во всём каталоге признак вырождается в 0,
// а не делится на подправленный знаменатель.
func (enc *Encoder) normalizePrice(price int64) float64 {
	stats := enc.c.stats
	if stats.Max == stats.Min {
		return 0
	}

	return float64(price-stats.Min) / float64(stats.Max-stats.Min)
}
