package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucas/resume-studio/internal/config"
	"github.com/lucas/resume-studio/internal/generation"
	"github.com/lucas/resume-studio/internal/llm"
	"github.com/lucas/resume-studio/internal/server/ratelimit"
	"github.com/lucas/resume-studio/internal/types"
)

// stubLLMClient returns canned JSON keyed by the request schema name.
type stubLLMClient struct {
	responses map[string]string
}

func (c *stubLLMClient) ModelID() string            { return "stub-model" }
func (c *stubLLMClient) Family() llm.ProviderFamily { return llm.FamilyOpenAI }

func (c *stubLLMClient) GenerateJSON(_ context.Context, req llm.Request) (*llm.RawResponse, error) {
	text, ok := c.responses[req.SchemaName]
	if !ok {
		return nil, fmt.Errorf("no stubbed response for schema %q", req.SchemaName)
	}
	return &llm.RawResponse{
		Text:         text,
		Usage:        llm.Usage{PromptTokens: 100, CompletionTokens: 50, TotalTokens: 150},
		FinishReason: "stop",
	}, nil
}

// newTestServer builds a server against the in-memory store with the
// generation layer stubbed out. It returns a registered user and a
// valid bearer token for it.
func newTestServer(t *testing.T, responses map[string]string) (*Server, *fakeStore, uuid.UUID, string) {
	t.Helper()

	store := newFakeStore()
	jwtService := NewJWTService(&config.JWTConfig{Secret: "test-secret", ExpirationHours: 1})

	s := &Server{
		db:          store,
		rateLimiter: ratelimit.NewLimiter(0),
		jwtService:  jwtService,
		userService: NewUserService(store, testPasswordConfig()),
	}
	t.Cleanup(s.rateLimiter.Stop)
	s.authHandler = NewAuthHandler(s.userService, jwtService)

	s.gen = generation.NewService()
	s.gen.OnInvocation = s.logInvocation
	s.gen.Resolve = func(llm.GenerationConfig) llm.Client {
		return &stubLLMClient{responses: responses}
	}

	user, err := s.userService.Register(context.Background(), &types.RegisterRequest{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "password-123",
	})
	require.NoError(t, err)

	token, err := jwtService.GenerateToken(user.ID)
	require.NoError(t, err)

	return s, store, user.ID, token
}

func doJSON(t *testing.T, handler http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(rec *httptest.ResponseRecorder, dst any) error {
	return json.Unmarshal(rec.Body.Bytes(), dst)
}

func TestParseJobEndpoint(t *testing.T) {
	s, _, _, token := newTestServer(t, map[string]string{
		"job_listing": `{"content": {
			"company_name": "Initech",
			"position_title": "Backend Engineer",
			"description": "Build services.",
			"salary_range": "<UNKNOWN>",
			"keywords": ["go", "postgres"],
			"work_location": "Remote",
			"employment_type": "Contractor"
		}}`,
	})
	handler := s.routes()

	rec := doJSON(t, handler, http.MethodPost, "/jobs/parse", token, map[string]string{
		"text": "Initech is hiring a Backend Engineer...",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var job types.Job
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &job))
	assert.Equal(t, "Initech", job.CompanyName)
	assert.Empty(t, job.SalaryRange, "placeholder salary should be scrubbed")
	assert.Equal(t, types.WorkLocationRemote, job.WorkLocation)
	assert.Equal(t, types.EmploymentContract, job.EmploymentType)
}

func TestParseJobRequiresExactlyOneSource(t *testing.T) {
	s, _, _, token := newTestServer(t, nil)
	handler := s.routes()

	rec := doJSON(t, handler, http.MethodPost, "/jobs/parse", token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/jobs/parse", token, map[string]string{
		"text": "some listing",
		"url":  "https://example.com/job",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerationRequiresAuth(t *testing.T) {
	s, _, _, _ := newTestServer(t, nil)
	handler := s.routes()

	rec := doJSON(t, handler, http.MethodPost, "/jobs/parse", "", map[string]string{"text": "x"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTailorResumeEndpoint(t *testing.T) {
	s, _, _, token := newTestServer(t, map[string]string{
		"resume": `{"content": {
			"target_role": "Backend Engineer",
			"work_experience": [{
				"company": "Acme",
				"position": "Engineer",
				"date": "01/2020 - Present",
				"description": ["Shipped the billing service"]
			}],
			"education": [],
			"skills": [{"category": "Languages", "items": ["Go"]}],
			"projects": []
		}}`,
	})
	handler := s.routes()

	rec := doJSON(t, handler, http.MethodPost, "/resumes/tailor", token, map[string]any{
		"resume": types.Resume{Name: "Ada Lovelace", Email: "ada@example.com"},
		"job":    types.Job{CompanyName: "Initech", PositionTitle: "Backend Engineer", Description: "Go services"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resume types.Resume
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resume))
	assert.Equal(t, "Ada Lovelace", resume.Name, "contact info carries over from the base resume")
	assert.Equal(t, "Backend Engineer", resume.TargetRole)
	require.Len(t, resume.WorkExperience, 1)
	require.Len(t, resume.WorkExperience[0].Description, 1)
	assert.NotEmpty(t, resume.WorkExperience[0].Description[0].ID)
}

func TestInvocationLoggingThroughEndpoint(t *testing.T) {
	s, store, userID, token := newTestServer(t, map[string]string{
		"bullet_point": `{"content": "Reduced deploy time by 40%"}`,
	})
	handler := s.routes()

	rec := doJSON(t, handler, http.MethodPost, "/points/work-experience/improve", token, map[string]string{
		"point": "made deploys faster",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	records := store.invocations[userID]
	require.Len(t, records, 1)
	assert.Equal(t, "bullet_point", records[0].Contract)
	assert.Equal(t, "stub-model", records[0].Model)
	assert.Equal(t, int64(150), records[0].TotalTokens)

	// And the endpoint exposes it.
	rec = doJSON(t, handler, http.MethodGet, "/invocations", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Invocations []json.RawMessage `json:"invocations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Invocations, 1)
}

func TestCredentialEndpoints(t *testing.T) {
	s, _, _, token := newTestServer(t, nil)
	handler := s.routes()

	rec := doJSON(t, handler, http.MethodPut, "/credentials", token, map[string]string{
		"service": "openai",
		"api_key": "sk-test",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, handler, http.MethodGet, "/credentials", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"openai"`)
	assert.NotContains(t, rec.Body.String(), "sk-test", "keys must never be echoed back")

	rec = doJSON(t, handler, http.MethodDelete, "/credentials/openai", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodDelete, "/credentials/openai", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCredentialValidation(t *testing.T) {
	s, _, _, token := newTestServer(t, nil)
	handler := s.routes()

	rec := doJSON(t, handler, http.MethodPut, "/credentials", token, map[string]string{
		"service": "openai",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlanRateLimit(t *testing.T) {
	s, store, userID, token := newTestServer(t, map[string]string{
		"bullet_point": `{"content": "ok"}`,
	})
	handler := s.routes()

	improve := func() int {
		rec := doJSON(t, handler, http.MethodPost, "/points/work-experience/improve", token, map[string]string{
			"point": "something",
		})
		return rec.Code
	}

	// Free plan allows a burst of 5 generation calls.
	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusOK, improve(), "request %d within the free burst", i)
	}
	assert.Equal(t, http.StatusTooManyRequests, improve())

	// Upgrading resets nothing, but a pro user gets a bigger bucket.
	store.setPlan(userID, "pro")
	otherUser, err := s.userService.Register(context.Background(), &types.RegisterRequest{
		Name: "Pro User", Email: "pro@example.com", Password: "password-123",
	})
	require.NoError(t, err)
	store.setPlan(otherUser.ID, "pro")
	proToken, err := s.jwtService.GenerateToken(otherUser.ID)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		rec := doJSON(t, handler, http.MethodPost, "/points/work-experience/improve", proToken, map[string]string{
			"point": "something",
		})
		require.Equal(t, http.StatusOK, rec.Code, "pro request %d", i)
	}
}

func TestListModelsPublic(t *testing.T) {
	s, _, _, _ := newTestServer(t, nil)
	handler := s.routes()

	rec := doJSON(t, handler, http.MethodGet, "/models", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Models []llm.ModelDescriptor `json:"models"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Models)
}

func TestGenerationErrorMapsToGateway(t *testing.T) {
	// Schema-violating provider output: content must be a string.
	s, _, _, token := newTestServer(t, map[string]string{
		"bullet_point": `{"content": 42}`,
	})
	handler := s.routes()

	rec := doJSON(t, handler, http.MethodPost, "/points/work-experience/improve", token, map[string]string{
		"point": "something",
	})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	s, _, _, _ := newTestServer(t, nil)
	handler := s.routes()

	rec := doJSON(t, handler, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
