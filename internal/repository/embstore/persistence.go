package embstore

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/DRSN-tech/ml-service/pkg/e"
)

// Формат файла векторов: little-endian, заголовок из двух uint32 (строки,
// размерность), затем float32-значения построчно. Файл идентификаторов —
// JSON-массив строк; i-я строка соответствует i-му ряду векторов.
// Файлы читаются и пишутся только парой, иначе они рассинхронизируются.

// Load читает хранилище из пары файлов.
// Отсутствие любого из файлов — штатный холодный старт с пустым хранилищем.
// Повреждённые или рассинхронизированные файлы — ошибка: молча стартовать
// пустым поверх существующих данных нельзя.
func Load(vectorsPath, idsPath string) (*Store, error) {
	const op = "embstore.Load"

	vectors, dim, err := readVectors(vectorsPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return New(), nil
		}
		return nil, e.Wrap(op, err)
	}

	ids, err := readIDs(idsPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return New(), nil
		}
		return nil, e.Wrap(op, err)
	}

	if len(vectors) != len(ids) {
		return nil, e.Wrap(
			fmt.Sprintf("%s: %d vectors vs %d ids", op, len(vectors), len(ids)),
			e.ErrStoreDesync,
		)
	}

	s := New()
	s.vectors = vectors
	s.ids = ids
	s.dim = dim
	for i, id := range ids {
		if _, ok := s.rowByID[id]; ok {
			return nil, e.Wrap(op+": duplicate id "+id, e.ErrStoreDesync)
		}
		s.rowByID[id] = i
	}

	return s, nil
}

// Save записывает оба файла, создавая недостающие директории.
// Пустое хранилище пишет пустые массивы — это не ошибка.
func (s *Store) Save(vectorsPath, idsPath string) error {
	const op = "Store.Save"

	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := ensureDir(vectorsPath); err != nil {
		return e.Wrap(op, err)
	}
	if err := ensureDir(idsPath); err != nil {
		return e.Wrap(op, err)
	}

	if err := writeVectors(vectorsPath, s.vectors, s.dim); err != nil {
		return e.Wrap(op, err)
	}

	if err := writeIDs(idsPath, s.ids); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}

	return os.MkdirAll(dir, 0o755)
}

func writeVectors(path string, vectors [][]float32, dim int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	header := [2]uint32{uint32(len(vectors)), uint32(dim)}
	if err := binary.Write(f, binary.LittleEndian, header[:]); err != nil {
		return err
	}

	for _, vec := range vectors {
		if err := binary.Write(f, binary.LittleEndian, vec); err != nil {
			return err
		}
	}

	return f.Sync()
}

func readVectors(path string) ([][]float32, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	var header [2]uint32
	if err := binary.Read(f, binary.LittleEndian, header[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, 0, fmt.Errorf("truncated vectors file %s", path)
		}
		return nil, 0, err
	}

	rows, dim := int(header[0]), int(header[1])
	vectors := make([][]float32, 0, rows)
	for i := 0; i < rows; i++ {
		vec := make([]float32, dim)
		if err := binary.Read(f, binary.LittleEndian, vec); err != nil {
			return nil, 0, fmt.Errorf("truncated vectors file %s at row %d: %w", path, i, err)
		}
		vectors = append(vectors, vec)
	}

	if rows == 0 {
		dim = 0
	}

	return vectors, dim, nil
}

func writeIDs(path string, ids []string) error {
	if ids == nil {
		ids = []string{}
	}

	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

func readIDs(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("corrupt ids file %s: %w", path, err)
	}

	return ids, nil
}
