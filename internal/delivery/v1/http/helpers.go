package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/DRSN-tech/ml-service/pkg/e"
	"github.com/jimlawless/whereami"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrProductNotFound):
		return http.StatusNotFound, e.ErrProductNotFound.Error()
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrExpectedMultipart):
		return http.StatusBadRequest, e.ErrExpectedMultipart.Error()
	case errors.Is(err, e.ErrInvalidTopK):
		return http.StatusBadRequest, e.ErrInvalidTopK.Error()
	case errors.Is(err, e.ErrNoImage):
		return http.StatusBadRequest, e.ErrNoImage.Error()
	case errors.Is(err, e.ErrInvalidImage):
		return http.StatusBadRequest, e.ErrInvalidImage.Error()
	case errors.Is(err, e.ErrFileTooLarge):
		return http.StatusBadRequest, e.ErrFileTooLarge.Error()
	case errors.Is(err, e.ErrMissingField):
		return http.StatusBadRequest, e.ErrMissingField.Error()
	case errors.Is(err, e.ErrBuildInProgress):
		return http.StatusConflict, e.ErrBuildInProgress.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Границы top_k. Значения вне диапазона отклоняются, а не обрезаются.
const (
	defaultTopK = 10
	minTopK     = 1
	maxTopK     = 50
)

// validateTopK проверяет уже разобранное значение top_k.
// Ноль означает, что клиент значение не передал.
func validateTopK(topK int) (int, error) {
	if topK == 0 {
		return defaultTopK, nil
	}
	if topK < minTopK || topK > maxTopK {
		return 0, e.Wrap(whereami.WhereAmI(), e.ErrInvalidTopK)
	}

	return topK, nil
}

// parseTopKQuery читает top_k из query-параметра.
func parseTopKQuery(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("top_k")
	if raw == "" {
		return defaultTopK, nil
	}

	topK, err := strconv.Atoi(raw)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), e.ErrInvalidTopK)
	}

	return validateTopK(topK)
}

func ensureMultipartForm(r *http.Request, maxMemory int64) error {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return e.Wrap(whereami.WhereAmI(), e.ErrExpectedMultipart)
	}
	return r.ParseMultipartForm(maxMemory)
}

// readImageFile читает первый файл поля file из multipart-формы.
func readImageFile(files []*multipart.FileHeader) ([]byte, error) {
	const maxFileSize = 15 << 20

	if len(files) == 0 {
		return nil, e.ErrNoImage
	}

	fh := files[0]
	src, err := fh.Open()
	if err != nil {
		return nil, e.ErrInternalServerError
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, e.ErrInternalServerError
	}
	if int64(len(data)) > maxFileSize {
		return nil, e.Wrap(fh.Filename, e.ErrFileTooLarge)
	}
	if len(data) == 0 {
		return nil, e.ErrInvalidImage
	}

	return data, nil
}
