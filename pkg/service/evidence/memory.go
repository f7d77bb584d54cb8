package evidence

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/cybermatters/themis/pkg/domain/types"
)

type memoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

var _ Service = (*memoryStore)(nil)

// NewMemory returns an in-memory evidence store for tests and local runs.
func NewMemory() Service {
	return &memoryStore{
		objects: make(map[string][]byte),
	}
}

func memoryKey(tenantID types.TenantID, riskID types.RiskID, name string) string {
	return tenantID.String() + "/" + riskID.String() + "/" + name
}

func (s *memoryStore) Put(ctx context.Context, tenantID types.TenantID, riskID types.RiskID, name string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return goerr.Wrap(err, "failed to read evidence payload")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[memoryKey(tenantID, riskID, name)] = data

	return nil
}

func (s *memoryStore) Get(ctx context.Context, tenantID types.TenantID, riskID types.RiskID, name string) (io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.objects[memoryKey(tenantID, riskID, name)]
	if !ok {
		return nil, goerr.Wrap(ErrObjectNotFound, "no such evidence object", goerr.V("name", name))
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}
