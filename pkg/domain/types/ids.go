package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// TenantID represents a unique identifier for a tenant
type TenantID string

// NewTenantID generates a new random TenantID
func NewTenantID() TenantID {
	return TenantID(uuid.New().String())
}

// Validate checks if the TenantID is valid
func (t TenantID) Validate() error {
	if t == "" {
		return goerr.New("tenant ID cannot be empty")
	}
	if _, err := uuid.Parse(string(t)); err != nil {
		return goerr.Wrap(err, "tenant ID must be a UUID", goerr.V("id", t))
	}
	return nil
}

// String returns the string representation of TenantID
func (t TenantID) String() string {
	return string(t)
}

// UserID represents a unique identifier for a tenant user
type UserID string

// NewUserID generates a new random UserID
func NewUserID() UserID {
	return UserID(uuid.New().String())
}

// String returns the string representation of UserID
func (u UserID) String() string {
	return string(u)
}

// RiskID represents a unique identifier for a risk record
type RiskID string

// NewRiskID generates a new random RiskID
func NewRiskID() RiskID {
	return RiskID(uuid.New().String())
}

// String returns the string representation of RiskID
func (r RiskID) String() string {
	return string(r)
}

// FrameworkID represents a unique identifier for a compliance framework
type FrameworkID string

// String returns the string representation of FrameworkID
func (f FrameworkID) String() string {
	return string(f)
}

// Validate checks if the FrameworkID is valid
func (f FrameworkID) Validate() error {
	if f == "" {
		return goerr.New("framework ID cannot be empty")
	}
	return nil
}
