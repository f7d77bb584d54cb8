package evidence

import (
	"context"
	"io"

	"github.com/cybermatters/themis/pkg/domain/types"
)

// Service stores evidence documents attached to risk records
type Service interface {
	// Put stores an evidence object for a risk, replacing any object with
	// the same name
	Put(ctx context.Context, tenantID types.TenantID, riskID types.RiskID, name string, r io.Reader) error

	// Get opens an evidence object for reading. The caller must close the
	// returned reader.
	Get(ctx context.Context, tenantID types.TenantID, riskID types.RiskID, name string) (io.ReadCloser, error)
}
