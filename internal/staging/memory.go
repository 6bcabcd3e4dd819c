package staging

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store used by tests. Failures can be
// injected per path to exercise the pipeline's isolation behavior.
type MemoryStore struct {
	mu       sync.Mutex
	objects  map[string]memObject
	writeErr map[string]error
	readErr  map[string]error
	now      func() time.Time
}

type memObject struct {
	data     []byte
	modified time.Time
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		objects:  make(map[string]memObject),
		writeErr: make(map[string]error),
		readErr:  make(map[string]error),
		now:      time.Now,
	}
}

// FailWrites makes every Write to path return err.
func (m *MemoryStore) FailWrites(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr[path] = err
}

// FailReads makes every Read of path return err.
func (m *MemoryStore) FailReads(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readErr[path] = err
}

// SetClock overrides the modification-time source.
func (m *MemoryStore) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

func (m *MemoryStore) Write(_ context.Context, path string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.writeErr[path]; err != nil {
		return err
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	m.objects[path] = memObject{data: stored, modified: m.now()}
	return nil
}

func (m *MemoryStore) Read(_ context.Context, path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.readErr[path]; err != nil {
		return nil, err
	}
	obj, ok := m.objects[path]
	if !ok {
		return nil, ErrNotFound
	}
	data := make([]byte, len(obj.data))
	copy(data, obj.data)
	return data, nil
}

func (m *MemoryStore) List(_ context.Context, prefix string) ([]ObjectInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var infos []ObjectInfo
	for path, obj := range m.objects {
		if strings.HasPrefix(path, prefix) {
			infos = append(infos, ObjectInfo{Path: path, Modified: obj.modified})
		}
	}
	return infos, nil
}
