package model

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/cybermatters/themis/pkg/domain/types"
)

// Tenant represents an isolated customer organization. All risk and
// framework data is scoped by the tenant identity.
type Tenant struct {
	ID        types.TenantID
	Hash      string
	Name      string
	CreatedAt time.Time
}

// tenantHashLength is the number of hex characters in a tenant hash,
// the URL-safe identifier exposed to browsers instead of the tenant ID.
const tenantHashLength = 12

// NewTenantHash derives a short, hard-to-guess public identifier for a tenant.
func NewTenantHash(id types.TenantID) string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	sum := sha256.Sum256(fmt.Appendf(nil, "%s:%d:%x", id, time.Now().UnixNano(), buf))
	return hex.EncodeToString(sum[:])[:tenantHashLength]
}

// User represents an account belonging to a tenant
type User struct {
	ID           types.UserID
	TenantID     types.TenantID
	Email        string
	PasswordHash string `masq:"secret"`
	Role         string
	FirstName    string
	CreatedAt    time.Time
}

// RoleAdmin is assigned to the user who registers a tenant
const RoleAdmin = "admin"
