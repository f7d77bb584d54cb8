package assess

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"

	"github.com/cybermatters/themis/pkg/domain/model"
)

// ErrExternalService indicates the external model call failed (network,
// auth, quota, timeout). Callers may recover by degrading to the fallback
// assessment.
var ErrExternalService = goerr.New("external model service failed")

// Requestor builds the assessment prompt and invokes the external model.
// It returns the raw text response unmodified; parsing is the reconciler's
// job so that prompt changes do not couple to parse failures.
type Requestor struct {
	llm gollem.LLMClient
}

// NewRequestor creates a new Requestor with the provided LLM client
func NewRequestor(llm gollem.LLMClient) (*Requestor, error) {
	if llm == nil {
		return nil, goerr.New("LLM client is required")
	}
	return &Requestor{llm: llm}, nil
}

// Request performs a single synchronous model call for the given request
// and returns the raw output text. It does not retry; retry policy, if
// any, belongs to the caller. Caller-supplied cancellation propagates
// through ctx to the external call.
func (r *Requestor) Request(ctx context.Context, req *model.AssessmentRequest) (string, error) {
	prompt, err := BuildPrompt(req)
	if err != nil {
		return "", err
	}

	// JSON content type pins the response to a single object, keeping the
	// output bounded and machine-readable
	session, err := r.llm.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
	)
	if err != nil {
		return "", goerr.Wrap(ErrExternalService, "failed to create LLM session",
			goerr.V("cause", err.Error()),
		)
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(prompt))
	if err != nil {
		return "", goerr.Wrap(ErrExternalService, "failed to generate assessment",
			goerr.V("title", req.Title),
			goerr.V("cause", err.Error()),
		)
	}
	if resp == nil || len(resp.Texts) == 0 {
		return "", goerr.Wrap(ErrExternalService, "model returned an empty response",
			goerr.V("title", req.Title),
		)
	}

	return strings.Join(resp.Texts, "\n"), nil
}
