package e

import "fmt"

var (
	// Внутренние ошибки с векторами
	ErrEmptyVector       = fmt.Errorf("vector is empty")
	ErrVectorDimMismatch = fmt.Errorf("vector dimension mismatch")
	ErrStoreDesync       = fmt.Errorf("embedding store files are desynchronized")

	// Ошибки каталога и кодирования признаков
	ErrProductNotFound = fmt.Errorf("product not found")
	ErrMissingField    = fmt.Errorf("product field is missing")
	ErrUnknownCategory = fmt.Errorf("category is not known to the catalog")
	ErrInvalidPrice    = fmt.Errorf("invalid price")
	ErrPricePrecision  = fmt.Errorf("price must have at most 2 decimal places")

	// 400 Bad Request
	ErrStatusBadRequest  = fmt.Errorf("bad request")
	ErrExpectedMultipart = fmt.Errorf("expected multipart/form-data")
	ErrInvalidTopK       = fmt.Errorf("top_k must be between 1 and 50")
	ErrNoImage           = fmt.Errorf("no image provided")
	ErrInvalidImage      = fmt.Errorf("invalid image")
	ErrFileTooLarge      = fmt.Errorf("file too large")

	// 409 Conflict
	ErrBuildInProgress = fmt.Errorf("embedding build already in progress")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")

	// Конфигурация и инфраструктура
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
	ErrUnknownCatalogSource = fmt.Errorf("unknown catalog source")
	ErrBucketNotFound       = fmt.Errorf("bucket not found")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
