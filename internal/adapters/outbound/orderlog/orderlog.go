package orderlog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/happyshop/happyshop/internal/domain"
)

// FileLog implements domain.OrderLog as a JSON array on disk.
type FileLog struct {
	mu   sync.Mutex
	path string
}

func New(path string) *FileLog {
	return &FileLog{path: path}
}

func (l *FileLog) Path() string { return l.path }

func (l *FileLog) Save(o domain.Order) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	orders, err := l.load()
	if err != nil {
		return err
	}
	orders = append(orders, o)

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("creating order log dir: %w", err)
	}

	data, err := json.MarshalIndent(orders, "", "  ")
	if err != nil {
		return err
	}

	tmp := l.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing order log: %w", err)
	}
	return os.Rename(tmp, l.path)
}

// Load returns all recorded orders, oldest first. A missing file is an
// empty log.
func (l *FileLog) Load() ([]domain.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load()
}

func (l *FileLog) load() ([]domain.Order, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var orders []domain.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, fmt.Errorf("parsing order log %s: %w", l.path, err)
	}
	return orders, nil
}
