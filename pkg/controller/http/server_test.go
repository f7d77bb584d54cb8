package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gt"

	server "github.com/cybermatters/themis/pkg/controller/http"
	"github.com/cybermatters/themis/pkg/domain/model"
	"github.com/cybermatters/themis/pkg/repository/memory"
	"github.com/cybermatters/themis/pkg/service/evidence"
	"github.com/cybermatters/themis/pkg/usecase"
)

type staticLLM struct {
	response string
}

type staticSession struct {
	response string
}

func (s *staticSession) GenerateContent(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
	return &gollem.Response{Texts: []string{s.response}}, nil
}

func (s *staticSession) GenerateStream(ctx context.Context, input ...gollem.Input) (<-chan *gollem.Response, error) {
	return nil, nil
}

func (s *staticSession) Generate(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (*gollem.Response, error) {
	return s.GenerateContent(ctx, input...)
}

func (s *staticSession) Stream(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (<-chan *gollem.Response, error) {
	return s.GenerateStream(ctx, input...)
}

func (s *staticSession) History() (*gollem.History, error) { return nil, nil }

func (s *staticSession) AppendHistory(*gollem.History) error { return nil }

func (s *staticSession) CountToken(ctx context.Context, input ...gollem.Input) (int, error) {
	return 0, nil
}

func (c *staticLLM) NewSession(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
	return &staticSession{response: c.response}, nil
}

func (c *staticLLM) GenerateEmbedding(ctx context.Context, dimension int, input []string) ([][]float64, error) {
	return nil, nil
}

const assessmentJSON = `{
	"likelihood": {"score": 4, "reasoning": "common threat"},
	"impact": {"score": 4, "reasoning": "severe"},
	"mitigation_strategies": [],
	"review_frequency": "quarterly",
	"business_impacts": {"financial": "Loss", "operational": "Halt", "regulatory": "Fines"},
	"threat_sources": ["phishing"],
	"vulnerabilities": ["weak passwords"],
	"recommendations": {"priority": "high", "next_steps": "Act"}
}`

type testServer struct {
	srv  *server.Server
	repo *memory.Memory
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	repo := memory.New()

	ctx := context.Background()
	frameworks := []*model.Framework{
		{ID: "iso-27001", Name: "ISO/IEC 27001", Category: "security", Active: true},
		{ID: "gdpr", Name: "GDPR", Category: "privacy", Active: true},
	}
	for _, f := range frameworks {
		gt.NoError(t, repo.Framework().Put(ctx, f)).Required()
	}

	uc := usecase.New(repo,
		usecase.WithTokenSecret([]byte("test-secret-for-session-tokens")),
		usecase.WithLLM(&staticLLM{response: assessmentJSON}),
	)

	return &testServer{
		srv:  server.New(uc, server.WithEvidence(evidence.NewMemory())),
		repo: repo,
	}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		gt.NoError(t, err).Required()
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	ts.srv.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &body)).Required()
	return body
}

func (ts *testServer) register(t *testing.T, email string) (token, tenantHash string) {
	t.Helper()
	w := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Acme Corp",
		"email":    email,
		"password": "a long enough password",
	})
	gt.Value(t, w.Code).Equal(http.StatusOK)
	body := decode(t, w)
	return body["token"].(string), body["tenantHash"].(string)
}

func TestServer_Health(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(t, http.MethodGet, "/health", "", nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)
	gt.Value(t, decode(t, w)["status"]).Equal("healthy")
}

func TestServer_AuthFlow(t *testing.T) {
	ts := newTestServer(t)
	_, tenantHash := ts.register(t, "alice@example.com")

	t.Run("login issues a usable token", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email":    "alice@example.com",
			"password": "a long enough password",
		})
		gt.Value(t, w.Code).Equal(http.StatusOK)
		body := decode(t, w)
		gt.Value(t, body["tenantHash"]).Equal(tenantHash)

		dash := ts.do(t, http.MethodGet, "/api/t/"+tenantHash+"/dashboard", body["token"].(string), nil)
		gt.Value(t, dash.Code).Equal(http.StatusOK)
	})

	t.Run("login scoped by tenant hash", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email":      "alice@example.com",
			"password":   "a long enough password",
			"tenantHash": tenantHash,
		})
		gt.Value(t, w.Code).Equal(http.StatusOK)
		gt.Value(t, decode(t, w)["tenantHash"]).Equal(tenantHash)
	})

	t.Run("login scoped to an unknown tenant yields 401", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email":      "alice@example.com",
			"password":   "a long enough password",
			"tenantHash": "ffffffffffff",
		})
		gt.Value(t, w.Code).Equal(http.StatusUnauthorized)
	})

	t.Run("wrong password yields 401", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email":    "alice@example.com",
			"password": "wrong",
		})
		gt.Value(t, w.Code).Equal(http.StatusUnauthorized)
	})

	t.Run("duplicate registration yields 400", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
			"name":     "Clone",
			"email":    "alice@example.com",
			"password": "another password",
		})
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
	})
}

func TestServer_TenantScoping(t *testing.T) {
	ts := newTestServer(t)
	token, tenantHash := ts.register(t, "alice@example.com")
	otherToken, _ := ts.register(t, "bob@other.com")

	t.Run("missing token yields 401", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/api/t/"+tenantHash+"/dashboard", "", nil)
		gt.Value(t, w.Code).Equal(http.StatusUnauthorized)
	})

	t.Run("garbage token yields 401", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/api/t/"+tenantHash+"/dashboard", "garbage", nil)
		gt.Value(t, w.Code).Equal(http.StatusUnauthorized)
	})

	t.Run("token of another tenant yields 403", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/api/t/"+tenantHash+"/dashboard", otherToken, nil)
		gt.Value(t, w.Code).Equal(http.StatusForbidden)
	})

	t.Run("matching token passes", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/api/t/"+tenantHash+"/dashboard", token, nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)
	})
}

func TestServer_Frameworks(t *testing.T) {
	ts := newTestServer(t)
	token, tenantHash := ts.register(t, "alice@example.com")

	t.Run("public catalog needs no auth", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/api/frameworks", "", nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)
		body := decode(t, w)
		gt.Value(t, body["success"]).Equal(true)
		gt.Array(t, body["data"].([]any)).Length(2)
	})

	t.Run("subscribe and see it in the tenant view", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/api/t/"+tenantHash+"/frameworks/iso-27001/subscribe", token, nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)

		list := ts.do(t, http.MethodGet, "/api/t/"+tenantHash+"/frameworks", token, nil)
		gt.Value(t, list.Code).Equal(http.StatusOK)

		subscribed := 0
		for _, item := range decode(t, list)["data"].([]any) {
			f := item.(map[string]any)
			if v, ok := f["subscribed"].(bool); ok && v {
				subscribed++
			}
		}
		gt.Value(t, subscribed).Equal(1)
	})

	t.Run("unknown framework yields 404", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/api/t/"+tenantHash+"/frameworks/nope/subscribe", token, nil)
		gt.Value(t, w.Code).Equal(http.StatusNotFound)
	})
}

func TestServer_Risks(t *testing.T) {
	ts := newTestServer(t)
	token, tenantHash := ts.register(t, "alice@example.com")
	base := "/api/t/" + tenantHash

	t.Run("manual risk creation", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, base+"/risks", token, map[string]any{
			"title":         "Vendor lock-in",
			"description":   "Single supplier",
			"risk_category": "strategic",
			"likelihood":    2,
			"impact":        4,
		})
		gt.Value(t, w.Code).Equal(http.StatusOK)
		gt.Value(t, decode(t, w)["success"]).Equal(true)
	})

	t.Run("invalid scores yield 400", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, base+"/risks", token, map[string]any{
			"title":         "Bad",
			"risk_category": "operational",
			"likelihood":    9,
			"impact":        1,
		})
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
	})

	t.Run("AI assisted creation merges the assessment", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, base+"/risks", token, map[string]any{
			"title":          "Ransomware attack",
			"description":    "Attackers encrypt production databases",
			"risk_category":  "operational",
			"use_assessment": true,
		})
		gt.Value(t, w.Code).Equal(http.StatusOK)
		body := decode(t, w)
		gt.Value(t, body["degraded"]).Equal(false)

		data := body["data"].(map[string]any)
		gt.Value(t, data["inherent_risk_score"]).Equal(float64(16))
		gt.Value(t, data["threat_description"]).Equal("phishing")
	})

	t.Run("list is ordered by score", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, base+"/risks", token, nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)

		data := decode(t, w)["data"].([]any)
		gt.Array(t, data).Length(2)
		first := data[0].(map[string]any)
		gt.Value(t, first["inherent_risk_score"]).Equal(float64(16))
	})

	t.Run("assessment preview endpoint", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, base+"/risks/assess", token, map[string]any{
			"title":         "Cloud outage",
			"description":   "Primary region unavailable",
			"risk_category": "operational",
		})
		gt.Value(t, w.Code).Equal(http.StatusOK)
		body := decode(t, w)
		gt.Value(t, body["degraded"]).Equal(false)

		assessment := body["data"].(map[string]any)
		gt.Value(t, assessment["risk_score"]).Equal(float64(16))
	})
}

func TestServer_Evidence(t *testing.T) {
	ts := newTestServer(t)
	token, tenantHash := ts.register(t, "alice@example.com")
	base := "/api/t/" + tenantHash

	w := ts.do(t, http.MethodPost, base+"/risks", token, map[string]any{
		"title":         "Vendor lock-in",
		"risk_category": "strategic",
		"likelihood":    2,
		"impact":        2,
	})
	gt.Value(t, w.Code).Equal(http.StatusOK)
	riskID := decode(t, w)["id"].(string)

	t.Run("upload and download round trip", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, base+"/risks/"+riskID+"/evidence/contract.txt", strings.NewReader("signed contract"))
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		ts.srv.ServeHTTP(rec, req)
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		dl := ts.do(t, http.MethodGet, base+"/risks/"+riskID+"/evidence/contract.txt", token, nil)
		gt.Value(t, dl.Code).Equal(http.StatusOK)
		gt.Value(t, dl.Body.String()).Equal("signed contract")
	})

	t.Run("evidence of an unknown risk yields 404", func(t *testing.T) {
		dl := ts.do(t, http.MethodGet, base+"/risks/00000000-0000-0000-0000-000000000000/evidence/contract.txt", token, nil)
		gt.Value(t, dl.Code).Equal(http.StatusNotFound)
	})
}
