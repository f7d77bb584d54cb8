package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// RiskCategory represents a risk classification tag
type RiskCategory string

const (
	CategoryOperational   RiskCategory = "operational"
	CategoryFinancial     RiskCategory = "financial"
	CategoryStrategic     RiskCategory = "strategic"
	CategoryCompliance    RiskCategory = "compliance"
	CategoryReputational  RiskCategory = "reputational"
	CategoryEnvironmental RiskCategory = "environmental"
)

// AllRiskCategories returns all valid risk categories
func AllRiskCategories() []RiskCategory {
	return []RiskCategory{
		CategoryOperational,
		CategoryFinancial,
		CategoryStrategic,
		CategoryCompliance,
		CategoryReputational,
		CategoryEnvironmental,
	}
}

// IsValid checks if the risk category is a known value
func (c RiskCategory) IsValid() bool {
	switch c {
	case CategoryOperational,
		CategoryFinancial,
		CategoryStrategic,
		CategoryCompliance,
		CategoryReputational,
		CategoryEnvironmental:
		return true
	default:
		return false
	}
}

// Validate checks if the risk category is valid
func (c RiskCategory) Validate() error {
	if c == "" {
		return goerr.New("risk category cannot be empty")
	}
	if !c.IsValid() {
		return goerr.New("unknown risk category", goerr.V("category", c))
	}
	return nil
}

// String returns the string representation of the risk category
func (c RiskCategory) String() string {
	return string(c)
}
