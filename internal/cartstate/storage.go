package cartstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// StorageKey names the persisted cart record.
const StorageKey = "cart-storage"

type Storage interface {
	// Load returns nil items and no error when nothing was stored yet.
	Load(ctx context.Context) ([]Item, error)
	Save(ctx context.Context, items []Item) error
}

type record struct {
	State struct {
		Items []Item `json:"items"`
	} `json:"state"`
	Version int `json:"version"`
}

func encode(items []Item) ([]byte, error) {
	var r record
	r.State.Items = items
	if r.State.Items == nil {
		r.State.Items = []Item{}
	}
	return json.Marshal(r)
}

func decode(data []byte) ([]Item, error) {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode %s: %w", StorageKey, err)
	}
	return r.State.Items, nil
}

// MemoryStorage keeps the encoded record in memory.
type MemoryStorage struct {
	mu   sync.Mutex
	data []byte
}

func (m *MemoryStorage) Load(context.Context) ([]Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, nil
	}
	return decode(m.data)
}

func (m *MemoryStorage) Save(_ context.Context, items []Item) error {
	data, err := encode(items)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data = data
	m.mu.Unlock()
	return nil
}

// Raw returns the stored record as written.
func (m *MemoryStorage) Raw() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.data...)
}

// FileStorage writes the record to <Dir>/<key>.json, where key is
// StorageKey optionally suffixed with Namespace.
type FileStorage struct {
	Dir       string
	Namespace string
}

func (f *FileStorage) Path() string {
	name := StorageKey
	if f.Namespace != "" {
		name += "-" + f.Namespace
	}
	return filepath.Join(f.Dir, name+".json")
}

func (f *FileStorage) Load(context.Context) ([]Item, error) {
	data, err := os.ReadFile(f.Path())
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decode(data)
}

func (f *FileStorage) Save(_ context.Context, items []Item) error {
	data, err := encode(items)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.Dir, StorageKey+"-*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), f.Path())
}
