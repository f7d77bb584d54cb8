package types

// Timeframe represents when a mitigation strategy should be executed
type Timeframe string

const (
	TimeframeImmediate  Timeframe = "immediate"
	TimeframeMediumTerm Timeframe = "medium_term"
	TimeframeLongTerm   Timeframe = "long_term"
)

// IsValid checks if the timeframe is a known value
func (t Timeframe) IsValid() bool {
	switch t {
	case TimeframeImmediate, TimeframeMediumTerm, TimeframeLongTerm:
		return true
	default:
		return false
	}
}

// String returns the string representation of the timeframe
func (t Timeframe) String() string {
	return string(t)
}

// Priority represents the urgency of a recommendation
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// IsValid checks if the priority is a known value
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// String returns the string representation of the priority
func (p Priority) String() string {
	return string(p)
}
