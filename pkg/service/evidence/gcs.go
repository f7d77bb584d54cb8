package evidence

import (
	"context"
	"errors"
	"io"
	"path"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"

	"github.com/cybermatters/themis/pkg/domain/types"
)

var ErrObjectNotFound = goerr.New("evidence object not found")

type gcsStore struct {
	client *storage.Client
	bucket string
	prefix string
}

var _ Service = (*gcsStore)(nil)

type GCSOption func(*gcsStore)

// WithObjectPrefix prepends a path prefix to every object name. Useful when
// the bucket is shared with other services.
func WithObjectPrefix(prefix string) GCSOption {
	return func(s *gcsStore) {
		s.prefix = prefix
	}
}

func NewGCS(ctx context.Context, bucket string, opts ...GCSOption) (Service, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client", goerr.V("bucket", bucket))
	}

	s := &gcsStore{
		client: client,
		bucket: bucket,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

func (s *gcsStore) objectName(tenantID types.TenantID, riskID types.RiskID, name string) string {
	return path.Join(s.prefix, "tenants", tenantID.String(), "risks", riskID.String(), name)
}

func (s *gcsStore) Put(ctx context.Context, tenantID types.TenantID, riskID types.RiskID, name string, r io.Reader) error {
	objName := s.objectName(tenantID, riskID, name)
	w := s.client.Bucket(s.bucket).Object(objName).NewWriter(ctx)
	w.ContentType = "application/octet-stream"

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return goerr.Wrap(err, "failed to write evidence object", goerr.V("object", objName))
	}
	if err := w.Close(); err != nil {
		return goerr.Wrap(err, "failed to finalize evidence object", goerr.V("object", objName))
	}

	return nil
}

func (s *gcsStore) Get(ctx context.Context, tenantID types.TenantID, riskID types.RiskID, name string) (io.ReadCloser, error) {
	objName := s.objectName(tenantID, riskID, name)
	r, err := s.client.Bucket(s.bucket).Object(objName).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, goerr.Wrap(ErrObjectNotFound, "no such evidence object", goerr.V("object", objName))
		}
		return nil, goerr.Wrap(err, "failed to open evidence object", goerr.V("object", objName))
	}

	return r, nil
}
