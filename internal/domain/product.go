package domain

// Product описывает товар каталога.
// Каталог загружается один раз на старте процесса и далее не изменяется.
type Product struct {
	ID       string // внешний идентификатор товара (productId бэкенда)
	Name     string
	Category string
	Price    int64  // Цена хранится в копейках
	ImageURL string // внешний URL изображения товара
	ImageKey string // ключ объекта в MinIO, если изображение хранится у нас
}

func NewProduct(id string, name string, category string, price int64) *Product {
	return &Product{
		ID:       id,
		Name:     name,
		Category: category,
		Price:    price,
	}
}
