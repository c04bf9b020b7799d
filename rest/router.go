package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-testhooks/command"
	"github.com/goliatone/go-testhooks/core"
	"github.com/goliatone/go-testhooks/query"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	glog "github.com/goliatone/go-logger/glog"
)

// Service is the composed surface the HTTP layer drives. *core.Service
// satisfies it.
type Service interface {
	command.MutatingService
	query.TestReader
	query.ResultReader
	query.ProjectReader
}

// Authenticator guards the inbound webhook endpoint.
type Authenticator interface {
	Authenticate(ctx context.Context, apiKey string) (core.User, error)
}

type Router struct {
	runTest       *command.RunTestCommand
	runProject    *command.RunProjectCommand
	reportResult  *command.ReportResultCommand
	createTest    *command.CreateTestCommand
	createProject *command.CreateProjectCommand
	createUser    *command.CreateUserCommand

	getTest      *query.GetTestQuery
	listResults  *query.ListResultsQuery
	listProjects *query.ListProjectsQuery

	auth   Authenticator
	logger core.Logger
}

func NewRouter(service Service, auth Authenticator, logger core.Logger) *Router {
	return &Router{
		runTest:       command.NewRunTestCommand(service),
		runProject:    command.NewRunProjectCommand(service),
		reportResult:  command.NewReportResultCommand(service),
		createTest:    command.NewCreateTestCommand(service),
		createProject: command.NewCreateProjectCommand(service),
		createUser:    command.NewCreateUserCommand(service),
		getTest:       query.NewGetTestQuery(service),
		listResults:   query.NewListResultsQuery(service),
		listProjects:  query.NewListProjectsQuery(service),
		auth:          auth,
		logger:        glog.Ensure(logger),
	}
}

// Mount registers all API routes on the engine.
func (r *Router) Mount(engine *gin.Engine) {
	api := engine.Group("/api")

	tests := api.Group("/tests")
	tests.POST("", r.handleCreateTest)
	tests.POST("/webhook", RequireAPIKey(r.auth), r.handleWebhookCallback)
	tests.POST("/:testId/run", r.handleRunTest)
	tests.GET("/:testId/results", r.handleListResults)

	projects := api.Group("/projects")
	projects.POST("", r.handleCreateProject)
	projects.GET("/:userId", r.handleListProjects)
	projects.POST("/:projectId/run-tests", r.handleRunProject)

	api.POST("/auth/register", r.handleRegister)
}

type createTestRequest struct {
	Name       string `json:"name"`
	ProjectID  string `json:"project_id"`
	WebhookURL string `json:"webhook_url"`
	Scheduled  bool   `json:"scheduled"`
}

func (r *Router) handleCreateTest(c *gin.Context) {
	var req createTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid test data"})
		return
	}

	msg := command.CreateTestMessage{Input: core.CreateTestInput{
		Name:       req.Name,
		ProjectID:  req.ProjectID,
		WebhookURL: req.WebhookURL,
		Scheduled:  req.Scheduled,
	}}
	if err := msg.Validate(); err != nil {
		renderError(c, err)
		return
	}

	collector := gocmd.NewResult[core.Test]()
	ctx := gocmd.ContextWithResult(c.Request.Context(), collector)
	if err := r.createTest.Execute(ctx, msg); err != nil {
		renderError(c, err)
		return
	}
	test, _ := collector.Load()
	c.JSON(http.StatusCreated, newTestView(test))
}

func (r *Router) handleRunTest(c *gin.Context) {
	msg := command.RunTestMessage{TestID: c.Param("testId")}
	if err := msg.Validate(); err != nil {
		renderError(c, err)
		return
	}

	collector := gocmd.NewResult[core.TestResult]()
	ctx := gocmd.ContextWithResult(c.Request.Context(), collector)
	if err := r.runTest.Execute(ctx, msg); err != nil {
		renderError(c, err)
		return
	}
	result, _ := collector.Load()
	c.JSON(http.StatusOK, newResultView(result))
}

func (r *Router) handleListResults(c *gin.Context) {
	msg := query.ListResultsMessage{TestID: c.Param("testId")}
	if err := msg.Validate(); err != nil {
		renderError(c, err)
		return
	}

	results, err := r.listResults.Query(c.Request.Context(), msg)
	if err != nil {
		renderError(c, err)
		return
	}
	views := make([]resultView, 0, len(results))
	for _, result := range results {
		views = append(views, newResultView(result))
	}
	c.JSON(http.StatusOK, views)
}

type webhookCallbackRequest struct {
	TestID string          `json:"testId"`
	Status string          `json:"status"`
	Result json.RawMessage `json:"result"`
}

func (r *Router) handleWebhookCallback(c *gin.Context) {
	var req webhookCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid callback data"})
		return
	}

	msg := command.ReportResultMessage{Request: core.ReportResultInput{
		TestID:  req.TestID,
		Status:  req.Status,
		Payload: req.Result,
	}}
	if err := msg.Validate(); err != nil {
		renderError(c, err)
		return
	}

	collector := gocmd.NewResult[core.TestResult]()
	ctx := gocmd.ContextWithResult(c.Request.Context(), collector)
	if err := r.reportResult.Execute(ctx, msg); err != nil {
		renderError(c, err)
		return
	}
	result, _ := collector.Load()
	c.JSON(http.StatusOK, newResultView(result))
}

type createProjectRequest struct {
	Name   string `json:"name"`
	UserID string `json:"user_id"`
}

func (r *Router) handleCreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project data"})
		return
	}

	msg := command.CreateProjectMessage{Input: core.CreateProjectInput{
		Name:   req.Name,
		UserID: req.UserID,
	}}
	if err := msg.Validate(); err != nil {
		renderError(c, err)
		return
	}

	collector := gocmd.NewResult[core.Project]()
	ctx := gocmd.ContextWithResult(c.Request.Context(), collector)
	if err := r.createProject.Execute(ctx, msg); err != nil {
		renderError(c, err)
		return
	}
	project, _ := collector.Load()
	c.JSON(http.StatusCreated, newProjectView(project))
}

func (r *Router) handleListProjects(c *gin.Context) {
	msg := query.ListProjectsMessage{UserID: c.Param("userId")}
	if err := msg.Validate(); err != nil {
		renderError(c, err)
		return
	}

	projects, err := r.listProjects.Query(c.Request.Context(), msg)
	if err != nil {
		renderError(c, err)
		return
	}
	views := make([]projectView, 0, len(projects))
	for _, project := range projects {
		views = append(views, newProjectView(project))
	}
	c.JSON(http.StatusOK, views)
}

func (r *Router) handleRunProject(c *gin.Context) {
	msg := command.RunProjectMessage{ProjectID: c.Param("projectId")}
	if err := msg.Validate(); err != nil {
		renderError(c, err)
		return
	}

	collector := gocmd.NewResult[[]core.TestResult]()
	ctx := gocmd.ContextWithResult(c.Request.Context(), collector)
	if err := r.runProject.Execute(ctx, msg); err != nil {
		renderError(c, err)
		return
	}
	results, _ := collector.Load()
	if len(results) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No tests found for this project"})
		return
	}
	views := make([]resultView, 0, len(results))
	for _, result := range results {
		views = append(views, newResultView(result))
	}
	c.JSON(http.StatusOK, gin.H{"message": "All tests completed", "results": views})
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *Router) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		renderError(c, err)
		return
	}

	msg := command.CreateUserMessage{Input: core.CreateUserInput{
		Username:     req.Username,
		PasswordHash: string(hash),
		APIKey:       uuid.NewString(),
	}}
	if err := msg.Validate(); err != nil {
		renderError(c, err)
		return
	}

	collector := gocmd.NewResult[core.User]()
	ctx := gocmd.ContextWithResult(c.Request.Context(), collector)
	if err := r.createUser.Execute(ctx, msg); err != nil {
		renderError(c, err)
		return
	}
	user, _ := collector.Load()
	c.JSON(http.StatusCreated, newUserView(user))
}

type testView struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	ProjectID  string    `json:"project_id,omitempty"`
	WebhookURL string    `json:"webhook_url"`
	Scheduled  bool      `json:"scheduled"`
	CreatedAt  time.Time `json:"created_at"`
}

func newTestView(test core.Test) testView {
	return testView{
		ID:         test.ID,
		Name:       test.Name,
		ProjectID:  test.ProjectID,
		WebhookURL: test.WebhookURL,
		Scheduled:  test.Scheduled,
		CreatedAt:  test.CreatedAt,
	}
}

type resultView struct {
	ID        string          `json:"id"`
	TestID    string          `json:"test_id"`
	Status    string          `json:"status"`
	Result    json.RawMessage `json:"result"`
	CreatedAt time.Time       `json:"created_at"`
}

func newResultView(result core.TestResult) resultView {
	return resultView{
		ID:        result.ID,
		TestID:    result.TestID,
		Status:    string(result.Status),
		Result:    result.Payload,
		CreatedAt: result.CreatedAt,
	}
}

type projectView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func newProjectView(project core.Project) projectView {
	return projectView{
		ID:        project.ID,
		Name:      project.Name,
		UserID:    project.UserID,
		CreatedAt: project.CreatedAt,
	}
}

type userView struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	APIKey    string    `json:"api_key"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserView(user core.User) userView {
	return userView{
		ID:        user.ID,
		Username:  user.Username,
		APIKey:    user.APIKey,
		CreatedAt: user.CreatedAt,
	}
}
