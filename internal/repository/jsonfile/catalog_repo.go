package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"github.com/DRSN-tech/ml-service/internal/cfg"
	"github.com/DRSN-tech/ml-service/internal/domain"
	"github.com/DRSN-tech/ml-service/pkg/e"
	"github.com/DRSN-tech/ml-service/pkg/logger"
	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"
)

// CatalogRepo загружает каталог товаров из JSON-файла.
// Файл обновляется внешним пайплайном, сервис читает его один раз на старте.
type CatalogRepo struct {
	cfg    *cfg.CatalogCfg
	logger logger.Logger
}

func NewCatalogRepo(cfg *cfg.CatalogCfg, logger logger.Logger) *CatalogRepo {
	return &CatalogRepo{
		cfg:    cfg,
		logger: logger,
	}
}

type productModel struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Category string      `json:"category"`
	Price    json.Number `json:"price"`
	ImageURL string      `json:"image_url"`
	ImageKey string      `json:"image_key"`
}

type catalogModel struct {
	Products []productModel `json:"products"`
}

// LoadProducts читает каталог с диска. Отсутствующий файл не ошибка:
// сервис поднимается с пустым каталогом и ждёт, пока файл появится.
func (c *CatalogRepo) LoadProducts(ctx context.Context) ([]domain.Product, error) {
	data, err := os.ReadFile(c.cfg.FilePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.logger.Warnf("catalog file %s not found, starting with empty catalog", c.cfg.FilePath)
			return []domain.Product{}, nil
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var model catalogModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	products := make([]domain.Product, 0, len(model.Products))
	for _, pm := range model.Products {
		price, err := parsePriceToCents(pm.Price)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI()+": product "+pm.ID, err)
		}

		p := domain.NewProduct(pm.ID, pm.Name, pm.Category, price)
		p.ImageURL = pm.ImageURL
		p.ImageKey = pm.ImageKey
		products = append(products, *p)
	}

	return products, nil
}

// parsePriceToCents переводит цену из JSON в копейки.
// Цены хранятся с точностью не больше двух знаков после запятой,
// всё остальное считается испорченными данными.
func parsePriceToCents(raw json.Number) (int64, error) {
	if raw == "" {
		return 0, e.ErrInvalidPrice
	}

	price, err := decimal.NewFromString(raw.String())
	if err != nil {
		return 0, e.ErrInvalidPrice
	}

	if price.IsNegative() {
		return 0, e.ErrInvalidPrice
	}

	cents := price.Mul(decimal.NewFromInt(100))
	if !cents.IsInteger() {
		return 0, e.ErrPricePrecision
	}

	return cents.IntPart(), nil
}
