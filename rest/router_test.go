package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goliatone/go-testhooks/core"
)

type fakeService struct {
	tests    map[string]core.Test
	results  map[string][]core.TestResult
	projects map[string]core.Project
	users    map[string]core.User
}

func newFakeService() *fakeService {
	return &fakeService{
		tests:    map[string]core.Test{},
		results:  map[string][]core.TestResult{},
		projects: map[string]core.Project{},
		users:    map[string]core.User{},
	}
}

func (s *fakeService) RunTest(_ context.Context, testID string) (core.TestResult, error) {
	test, ok := s.tests[testID]
	if !ok {
		return core.TestResult{}, core.ErrTestNotFound
	}
	result := core.TestResult{
		ID:      "res_" + test.ID,
		TestID:  test.ID,
		Status:  core.ResultStatusSuccess,
		Payload: json.RawMessage(`{"ok":true}`),
	}
	s.results[test.ID] = append([]core.TestResult{result}, s.results[test.ID]...)
	return result, nil
}

func (s *fakeService) RunProject(_ context.Context, projectID string) ([]core.TestResult, error) {
	var out []core.TestResult
	for _, test := range s.tests {
		if test.ProjectID != projectID {
			continue
		}
		result, err := s.RunTest(context.Background(), test.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, result)
	}
	return out, nil
}

func (s *fakeService) ReportResult(_ context.Context, in core.ReportResultInput) (core.TestResult, error) {
	if _, ok := s.tests[in.TestID]; !ok {
		return core.TestResult{}, core.ErrTestNotFound
	}
	status, err := core.ParseResultStatus(in.Status)
	if err != nil {
		return core.TestResult{}, core.MapError(err)
	}
	result := core.TestResult{
		ID:      "res_reported",
		TestID:  in.TestID,
		Status:  status,
		Payload: in.Payload,
	}
	s.results[in.TestID] = append([]core.TestResult{result}, s.results[in.TestID]...)
	return result, nil
}

func (s *fakeService) CreateTest(_ context.Context, in core.CreateTestInput) (core.Test, error) {
	if err := in.Validate(); err != nil {
		return core.Test{}, core.MapError(err)
	}
	test := core.Test{
		ID:         "test_" + in.Name,
		Name:       in.Name,
		ProjectID:  in.ProjectID,
		WebhookURL: in.WebhookURL,
		Scheduled:  in.Scheduled,
	}
	s.tests[test.ID] = test
	return test, nil
}

func (s *fakeService) CreateProject(_ context.Context, in core.CreateProjectInput) (core.Project, error) {
	project := core.Project{ID: "proj_" + in.Name, Name: in.Name, UserID: in.UserID}
	s.projects[project.ID] = project
	return project, nil
}

func (s *fakeService) CreateUser(_ context.Context, in core.CreateUserInput) (core.User, error) {
	user := core.User{ID: "user_" + in.Username, Username: in.Username, APIKey: in.APIKey}
	s.users[user.APIKey] = user
	return user, nil
}

func (s *fakeService) GetTest(_ context.Context, testID string) (core.Test, error) {
	test, ok := s.tests[testID]
	if !ok {
		return core.Test{}, core.ErrTestNotFound
	}
	return test, nil
}

func (s *fakeService) ListResults(_ context.Context, testID string) ([]core.TestResult, error) {
	return s.results[testID], nil
}

func (s *fakeService) ListProjects(_ context.Context, userID string) ([]core.Project, error) {
	var out []core.Project
	for _, project := range s.projects {
		if project.UserID == userID {
			out = append(out, project)
		}
	}
	return out, nil
}

func newTestRouter(t *testing.T) (*fakeService, http.Handler) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	service := newFakeService()
	router := NewRouter(service, stubAuth{service: service}, nil)
	engine := gin.New()
	router.Mount(engine)
	return service, engine
}

type stubAuth struct {
	service *fakeService
}

func (a stubAuth) Authenticate(_ context.Context, apiKey string) (core.User, error) {
	key := strings.TrimSpace(apiKey)
	if key == "" {
		return core.User{}, core.MapError(errRequiredKey)
	}
	user, ok := a.service.users[key]
	if !ok {
		return core.User{}, core.ErrUserNotFound
	}
	return user, nil
}

var errRequiredKey = &requiredKeyError{}

type requiredKeyError struct{}

func (*requiredKeyError) Error() string { return "API key is required" }

func doJSON(t *testing.T, handler http.Handler, method, path string, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder
}

func TestCreateTestEndpoint(t *testing.T) {
	_, handler := newTestRouter(t)

	resp := doJSON(t, handler, http.MethodPost, "/api/tests",
		`{"name":"checkout","webhook_url":"https://hooks.example.com/checkout","scheduled":true}`, nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var view map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if view["webhook_url"] != "https://hooks.example.com/checkout" {
		t.Fatalf("unexpected response: %v", view)
	}
}

func TestCreateTestRejectsInvalidURL(t *testing.T) {
	_, handler := newTestRouter(t)

	resp := doJSON(t, handler, http.MethodPost, "/api/tests",
		`{"name":"bad","webhook_url":"not-a-url"}`, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestRunTestEndpointUnknownTest(t *testing.T) {
	_, handler := newTestRouter(t)

	resp := doJSON(t, handler, http.MethodPost, "/api/tests/missing/run", "", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestRunTestEndpointReturnsResult(t *testing.T) {
	service, handler := newTestRouter(t)
	service.tests["test_1"] = core.Test{ID: "test_1", Name: "checkout", WebhookURL: "https://hooks.example.com/x"}

	resp := doJSON(t, handler, http.MethodPost, "/api/tests/test_1/run", "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var view map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if view["test_id"] != "test_1" || view["status"] != "success" {
		t.Fatalf("unexpected response: %v", view)
	}
}

func TestListResultsEndpoint(t *testing.T) {
	service, handler := newTestRouter(t)
	service.tests["test_1"] = core.Test{ID: "test_1", Name: "checkout", WebhookURL: "https://hooks.example.com/x"}
	if _, err := service.RunTest(context.Background(), "test_1"); err != nil {
		t.Fatalf("seed result: %v", err)
	}

	resp := doJSON(t, handler, http.MethodGet, "/api/tests/test_1/results", "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var views []map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &views); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 result, got %d", len(views))
	}
}

func TestWebhookEndpointRequiresAPIKey(t *testing.T) {
	_, handler := newTestRouter(t)

	resp := doJSON(t, handler, http.MethodPost, "/api/tests/webhook",
		`{"testId":"test_1","status":"success"}`, nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestWebhookEndpointPersistsResult(t *testing.T) {
	service, handler := newTestRouter(t)
	service.tests["test_1"] = core.Test{ID: "test_1", Name: "checkout", WebhookURL: "https://hooks.example.com/x"}
	service.users["key_1"] = core.User{ID: "user_1", Username: "ops", APIKey: "key_1"}

	resp := doJSON(t, handler, http.MethodPost, "/api/tests/webhook",
		`{"testId":"test_1","status":"failed","result":{"error":"assertion failed"}}`,
		map[string]string{"X-API-Key": "key_1"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var view map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if view["status"] != "failed" {
		t.Fatalf("unexpected response: %v", view)
	}
}

func TestWebhookEndpointRejectsUnknownStatus(t *testing.T) {
	service, handler := newTestRouter(t)
	service.tests["test_1"] = core.Test{ID: "test_1", Name: "checkout", WebhookURL: "https://hooks.example.com/x"}
	service.users["key_1"] = core.User{ID: "user_1", Username: "ops", APIKey: "key_1"}

	resp := doJSON(t, handler, http.MethodPost, "/api/tests/webhook",
		`{"testId":"test_1","status":"flaky"}`,
		map[string]string{"X-API-Key": "key_1"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestRunProjectEndpointNoTests(t *testing.T) {
	_, handler := newTestRouter(t)

	resp := doJSON(t, handler, http.MethodPost, "/api/projects/empty/run-tests", "", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), "No tests found for this project") {
		t.Fatalf("unexpected body: %s", resp.Body.String())
	}
}

func TestRunProjectEndpointRunsAllTests(t *testing.T) {
	service, handler := newTestRouter(t)
	service.tests["test_1"] = core.Test{ID: "test_1", ProjectID: "proj_1", Name: "a", WebhookURL: "https://hooks.example.com/a"}
	service.tests["test_2"] = core.Test{ID: "test_2", ProjectID: "proj_1", Name: "b", WebhookURL: "https://hooks.example.com/b"}

	resp := doJSON(t, handler, http.MethodPost, "/api/projects/proj_1/run-tests", "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		Message string           `json:"message"`
		Results []map[string]any `json:"results"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Message != "All tests completed" {
		t.Fatalf("unexpected message: %q", body.Message)
	}
	if len(body.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(body.Results))
	}
}

func TestRegisterEndpointIssuesAPIKey(t *testing.T) {
	_, handler := newTestRouter(t)

	resp := doJSON(t, handler, http.MethodPost, "/api/auth/register",
		`{"username":"ops","password":"secret"}`, nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var view map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	apiKey, _ := view["api_key"].(string)
	if apiKey == "" {
		t.Fatalf("expected generated api key, got %v", view)
	}
	if _, hasHash := view["password_hash"]; hasHash {
		t.Fatalf("password hash must not be rendered: %v", view)
	}
}

func TestRegisterEndpointRequiresCredentials(t *testing.T) {
	_, handler := newTestRouter(t)

	resp := doJSON(t, handler, http.MethodPost, "/api/auth/register", `{"username":"ops"}`, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", resp.Code, resp.Body.String())
	}
}
