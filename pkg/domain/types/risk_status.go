package types

// RiskStatus represents the lifecycle state of a risk record
type RiskStatus string

const (
	RiskStatusOpen      RiskStatus = "open"
	RiskStatusMitigated RiskStatus = "mitigated"
	RiskStatusAccepted  RiskStatus = "accepted"
	RiskStatusClosed    RiskStatus = "closed"
)

// IsValid checks if the risk status is a known value
func (s RiskStatus) IsValid() bool {
	switch s {
	case RiskStatusOpen, RiskStatusMitigated, RiskStatusAccepted, RiskStatusClosed:
		return true
	default:
		return false
	}
}

// String returns the string representation of the risk status
func (s RiskStatus) String() string {
	return string(s)
}
