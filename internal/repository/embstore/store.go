// Package embstore хранит эмбеддинги изображений товаров в памяти
// в виде параллельных массивов векторов и идентификаторов,
// с персистентностью в два плоских файла.
package embstore

import (
	"math"
	"sort"
	"sync"

	"github.com/DRSN-tech/ml-service/internal/domain"
	"github.com/DRSN-tech/ml-service/internal/usecase"
	"github.com/DRSN-tech/ml-service/pkg/e"
)

// Store — потокобезопасное хранилище эмбеддингов.
// Инварианты: len(vectors) == len(ids), идентификаторы уникальны,
// все векторы одной размерности.
type Store struct {
	mu      sync.RWMutex
	vectors [][]float32
	ids     []string
	rowByID map[string]int
	dim     int // 0, пока не вставлен первый вектор
}

// New создает пустое хранилище. Размерность фиксируется первым Upsert.
func New() *Store {
	return &Store{
		rowByID: make(map[string]int),
	}
}

// Upsert вставляет или перезаписывает эмбеддинг товара.
// Вектор с размерностью, отличной от размерности хранилища, — ошибка:
// молчаливое принятие разнокалиберных векторов ломает поиск незаметно.
func (s *Store) Upsert(emb *domain.Embedding) error {
	const op = "Store.Upsert"

	if len(emb.Vector) == 0 {
		return e.Wrap(op+": product "+emb.ProductID, e.ErrEmptyVector)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dim != 0 && len(emb.Vector) != s.dim {
		return e.Wrap(op+": product "+emb.ProductID, e.ErrVectorDimMismatch)
	}

	// копия: вызывающий может переиспользовать срез
	vec := make([]float32, len(emb.Vector))
	copy(vec, emb.Vector)

	if row, ok := s.rowByID[emb.ProductID]; ok {
		s.vectors[row] = vec
		return nil
	}

	s.rowByID[emb.ProductID] = len(s.vectors)
	s.vectors = append(s.vectors, vec)
	s.ids = append(s.ids, emb.ProductID)
	s.dim = len(vec)

	return nil
}

// Search возвращает не более topK пар (товар, косинусная близость к запросу)
// по убыванию близости. Равные значения сохраняют порядок вставки.
// Пустое хранилище — пустой результат, не ошибка.
func (s *Store) Search(query []float32, topK int) []usecase.ImageMatch {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.vectors) == 0 || topK <= 0 {
		return []usecase.ImageMatch{}
	}

	matches := make([]usecase.ImageMatch, 0, len(s.vectors))
	for i, vec := range s.vectors {
		matches = append(matches, usecase.ImageMatch{
			ProductID:  s.ids[i],
			Similarity: cosineSimilarity(query, vec),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	if len(matches) > topK {
		matches = matches[:topK]
	}

	return matches
}

// Len возвращает количество эмбеддингов в хранилище.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vectors)
}

// Dim возвращает размерность векторов (0 для пустого хранилища).
func (s *Store) Dim() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dim
}

// cosineSimilarity — косинусная близость двух векторов.
// Нулевая норма любого из векторов дает 0, а не панику деления.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
