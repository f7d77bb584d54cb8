package assess

import (
	"bytes"
	_ "embed"
	"text/template"

	"github.com/m-mizutani/goerr/v2"

	"github.com/cybermatters/themis/pkg/domain/model"
)

//go:embed prompt/assessment.md
var assessmentPromptTmpl string

var assessmentPrompt = template.Must(template.New("assessment").Parse(assessmentPromptTmpl))

// BuildPrompt renders the assessment prompt for a request. The prompt is
// deterministic for a given request so that assessments are reproducible
// up to the model's own variance.
func BuildPrompt(req *model.AssessmentRequest) (string, error) {
	var buf bytes.Buffer
	if err := assessmentPrompt.Execute(&buf, req); err != nil {
		return "", goerr.Wrap(err, "failed to render assessment prompt")
	}
	return buf.String(), nil
}
