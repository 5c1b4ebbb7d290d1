package domain

// Embedding представляет эмбеддинг изображения товара.
// Размерность фиксируется CNN-экстрактором и одинакова для всех векторов хранилища.
type Embedding struct {
	ProductID string
	Vector    []float32
}

func NewEmbedding(productID string, vector []float32) *Embedding {
	return &Embedding{
		ProductID: productID,
		Vector:    vector,
	}
}
