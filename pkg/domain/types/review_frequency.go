package types

// ReviewFrequency represents how often a risk should be reviewed
type ReviewFrequency string

const (
	ReviewMonthly   ReviewFrequency = "monthly"
	ReviewQuarterly ReviewFrequency = "quarterly"
	ReviewAnnual    ReviewFrequency = "annual"
)

// DefaultReviewFrequency is used when a frequency is unspecified or unknown
const DefaultReviewFrequency = ReviewQuarterly

// IsValid checks if the review frequency is a known value
func (f ReviewFrequency) IsValid() bool {
	switch f {
	case ReviewMonthly, ReviewQuarterly, ReviewAnnual:
		return true
	default:
		return false
	}
}

// OrDefault returns the frequency itself when valid, otherwise the default
func (f ReviewFrequency) OrDefault() ReviewFrequency {
	if f.IsValid() {
		return f
	}
	return DefaultReviewFrequency
}

// String returns the string representation of the review frequency
func (f ReviewFrequency) String() string {
	return string(f)
}
