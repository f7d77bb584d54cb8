package model

import (
	"time"

	"github.com/cybermatters/themis/pkg/domain/types"
)

// Framework represents a compliance standard tenants may subscribe to
type Framework struct {
	ID                     types.FrameworkID
	Name                   string
	Description            string
	FrameworkType          string
	Category               string
	IssuingBody            string
	StandardNumber         string
	CertificationAvailable bool
	Active                 bool
}

// Subscription links a tenant to a framework it has enabled
type Subscription struct {
	TenantID     types.TenantID
	FrameworkID  types.FrameworkID
	Enabled      bool
	SubscribedAt time.Time
}

// TenantFramework is a framework annotated with a tenant's subscription state
type TenantFramework struct {
	Framework
	Subscribed bool
}
