package assess

import (
	"encoding/json"
	"strings"

	"github.com/cybermatters/themis/pkg/domain/model"
	"github.com/cybermatters/themis/pkg/domain/types"
)

// Result is the outcome of reconciling raw model output. Degraded is set
// when defaults or the full fallback were substituted, so callers can
// distinguish degraded assessments from fully trusted ones.
type Result struct {
	Assessment *model.RiskAssessment
	Degraded   bool
	Reason     string
}

// Reconcile extracts a JSON object from raw model output and normalizes it
// into a canonical RiskAssessment. It never fails: unusable input yields
// the fallback assessment with Degraded set.
//
// The risk score is always recomputed as likelihood × impact; a model-
// supplied risk_score is discarded. An out-of-range or non-numeric score
// is replaced with the documented default (3) rather than clamped, so a
// model that has misunderstood the scale does not skew the register.
func Reconcile(raw string) *Result {
	span, ok := extractObject(raw)
	if !ok {
		return fallbackResult("no JSON object found in model output")
	}

	var parsed rawAssessment
	if err := json.Unmarshal([]byte(span), &parsed); err != nil {
		return fallbackResult("model output is not valid JSON: " + err.Error())
	}

	if parsed.Likelihood == nil && parsed.Impact == nil {
		return fallbackResult("model output is missing both likelihood and impact")
	}

	var reasons []string
	likelihood, degraded := parsed.Likelihood.normalize()
	if degraded {
		reasons = append(reasons, "likelihood score substituted with default")
	}
	impact, degraded := parsed.Impact.normalize()
	if degraded {
		reasons = append(reasons, "impact score substituted with default")
	}

	assessment := &model.RiskAssessment{
		Likelihood:           likelihood,
		Impact:               impact,
		RiskScore:            model.InherentScore(likelihood.Score, impact.Score),
		MitigationStrategies: emptyIfNil(parsed.MitigationStrategies),
		ReviewFrequency:      parsed.ReviewFrequency.OrDefault(),
		BusinessImpacts:      parsed.BusinessImpacts,
		ThreatSources:        emptyIfNil(parsed.ThreatSources),
		Vulnerabilities:      emptyIfNil(parsed.Vulnerabilities),
		Recommendations:      parsed.Recommendations,
	}

	return &Result{
		Assessment: assessment,
		Degraded:   len(reasons) > 0,
		Reason:     strings.Join(reasons, "; "),
	}
}

// rawAssessment mirrors RiskAssessment with tolerant score decoding, so one
// malformed field does not discard the rest of the object. A model-supplied
// risk_score is intentionally absent: it is never trusted.
type rawAssessment struct {
	Likelihood           *rawScore                  `json:"likelihood"`
	Impact               *rawScore                  `json:"impact"`
	MitigationStrategies []model.MitigationStrategy `json:"mitigation_strategies"`
	ReviewFrequency      types.ReviewFrequency      `json:"review_frequency"`
	BusinessImpacts      model.BusinessImpacts      `json:"business_impacts"`
	ThreatSources        []string                   `json:"threat_sources"`
	Vulnerabilities      []string                   `json:"vulnerabilities"`
	Recommendations      model.Recommendation       `json:"recommendations"`
}

type rawScore struct {
	Score     json.RawMessage `json:"score"`
	Reasoning string          `json:"reasoning"`
}

const defaultScoreReasoning = "Score unavailable from AI assessment - default applied"

// normalize converts a loosely typed score into a validated ScoreDetail.
// The second return value reports whether the default was substituted.
func (s *rawScore) normalize() (model.ScoreDetail, bool) {
	if s == nil {
		return model.ScoreDetail{Score: model.DefaultScore, Reasoning: defaultScoreReasoning}, true
	}

	var value float64
	if err := json.Unmarshal(s.Score, &value); err != nil {
		return model.ScoreDetail{Score: model.DefaultScore, Reasoning: defaultScoreReasoning}, true
	}

	score := int(value)
	if float64(score) != value || score < model.ScoreMin || score > model.ScoreMax {
		return model.ScoreDetail{Score: model.DefaultScore, Reasoning: defaultScoreReasoning}, true
	}

	return model.ScoreDetail{Score: score, Reasoning: s.Reasoning}, false
}

func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// extractObject finds the first balanced top-level object literal in the
// text: from the first '{' through its matching closing '}'. The scan is
// aware of string literals and escapes so braces inside strings do not
// unbalance the span. The model may surround the JSON with commentary;
// everything outside the span is ignored.
func extractObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}

	return "", false
}

const fallbackReasoning = "AI assessment unavailable - manual review required"

// Fallback returns the assessment substituted when the model output is
// unusable: neutral scores and placeholders directing a manual review.
func Fallback() *model.RiskAssessment {
	return &model.RiskAssessment{
		Likelihood: model.ScoreDetail{Score: model.DefaultScore, Reasoning: fallbackReasoning},
		Impact:     model.ScoreDetail{Score: model.DefaultScore, Reasoning: fallbackReasoning},
		RiskScore:  model.InherentScore(model.DefaultScore, model.DefaultScore),
		MitigationStrategies: []model.MitigationStrategy{
			{
				Timeframe:   types.TimeframeImmediate,
				Strategy:    "Conduct manual risk assessment",
				Description: "Perform detailed manual evaluation of this risk",
			},
		},
		ReviewFrequency: types.DefaultReviewFrequency,
		BusinessImpacts: model.BusinessImpacts{
			Financial:   "To be determined",
			Operational: "To be assessed",
			Regulatory:  "To be reviewed",
		},
		ThreatSources:   []string{"To be identified"},
		Vulnerabilities: []string{"To be assessed"},
		Recommendations: model.Recommendation{
			Priority:  types.PriorityMedium,
			NextSteps: "Conduct manual risk assessment",
		},
	}
}

func fallbackResult(reason string) *Result {
	return &Result{
		Assessment: Fallback(),
		Degraded:   true,
		Reason:     reason,
	}
}
