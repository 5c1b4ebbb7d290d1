package pgdb

import (
	"context"
	"strconv"

	"github.com/DRSN-tech/ml-service/internal/domain"
	"github.com/DRSN-tech/ml-service/pkg/e"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// CatalogRepo читает каталог товаров из PostgreSQL основного бэкенда.
// Схемой владеет бэкенд, доступ строго read-only.
type CatalogRepo struct {
	pool *pgxpool.Pool
}

func NewCatalogRepo(pool *pgxpool.Pool) *CatalogRepo {
	return &CatalogRepo{
		pool: pool,
	}
}

// LoadProducts возвращает неархивированные товары с названием категории
// и ключом изображения. Порядок фиксирован по id, от него зависит
// детерминизм рекомендаций.
func (c *CatalogRepo) LoadProducts(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT pr.id, pr.name, cat.name, pr.price, COALESCE(pr.image_key, '')
		FROM products pr
		JOIN categories cat ON pr.category_id = cat.id
		WHERE NOT pr.is_archived
		ORDER BY pr.id
	`

	rows, err := c.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		var (
			id       int64
			name     string
			category string
			price    int64
			imageKey string
		)
		if err := rows.Scan(&id, &name, &category, &price, &imageKey); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		p := domain.NewProduct(strconv.FormatInt(id, 10), name, category, price)
		p.ImageKey = imageKey
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return products, nil
}
