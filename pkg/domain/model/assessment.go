package model

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/cybermatters/themis/pkg/domain/types"
)

// Score bounds for likelihood and impact. Values outside the range are
// replaced with DefaultScore during reconciliation.
const (
	ScoreMin     = 1
	ScoreMax     = 5
	DefaultScore = 3
)

// AssessmentRequest is the immutable input of the AI assessment workflow
type AssessmentRequest struct {
	Title       string
	Description string
	Category    types.RiskCategory
	Industry    string
	CompanySize string
}

// Defaults applied when the optional request fields are left empty
const (
	DefaultIndustry    = "technology"
	DefaultCompanySize = "medium"
)

// Validate checks the required request fields and fills optional defaults
func (r *AssessmentRequest) Validate() error {
	if r.Title == "" {
		return goerr.New("assessment request title is required")
	}
	if r.Description == "" {
		return goerr.New("assessment request description is required")
	}
	if err := r.Category.Validate(); err != nil {
		return goerr.Wrap(err, "invalid assessment request category")
	}
	if r.Industry == "" {
		r.Industry = DefaultIndustry
	}
	if r.CompanySize == "" {
		r.CompanySize = DefaultCompanySize
	}
	return nil
}

// ScoreDetail is a 1-5 score with the model's reasoning
type ScoreDetail struct {
	Score     int    `json:"score"`
	Reasoning string `json:"reasoning"`
}

// MitigationStrategy is one proposed treatment for a risk
type MitigationStrategy struct {
	Timeframe   types.Timeframe `json:"timeframe"`
	Strategy    string          `json:"strategy"`
	Description string          `json:"description"`
}

// BusinessImpacts describes the consequences of a risk materializing
type BusinessImpacts struct {
	Financial   string `json:"financial"`
	Operational string `json:"operational"`
	Regulatory  string `json:"regulatory"`
}

// Recommendation is the model's suggested course of action
type Recommendation struct {
	Priority  types.Priority `json:"priority"`
	NextSteps string         `json:"next_steps"`
}

// RiskAssessment is the canonical, reconciled assessment record. It is
// produced once per request and either merged into a Risk or discarded;
// it is never persisted itself.
//
// Invariant: RiskScore == Likelihood.Score * Impact.Score, with both scores
// within [ScoreMin, ScoreMax].
type RiskAssessment struct {
	Likelihood           ScoreDetail           `json:"likelihood"`
	Impact               ScoreDetail           `json:"impact"`
	RiskScore            int                   `json:"risk_score"`
	MitigationStrategies []MitigationStrategy  `json:"mitigation_strategies"`
	ReviewFrequency      types.ReviewFrequency `json:"review_frequency"`
	BusinessImpacts      BusinessImpacts       `json:"business_impacts"`
	ThreatSources        []string              `json:"threat_sources"`
	Vulnerabilities      []string              `json:"vulnerabilities"`
	Recommendations      Recommendation        `json:"recommendations"`
}
