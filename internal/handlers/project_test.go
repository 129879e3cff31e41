package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/mkarlin/project-tracker-api/internal/constants"
	"github.com/mkarlin/project-tracker-api/internal/database"
	"github.com/mkarlin/project-tracker-api/internal/lifecycle"
	"github.com/mkarlin/project-tracker-api/internal/models"
	"github.com/mkarlin/project-tracker-api/internal/repository"
	"github.com/mkarlin/project-tracker-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ProjectHandlerTestSuite defines the test suite for ProjectHandler
type ProjectHandlerTestSuite struct {
	suite.Suite
	db             *gorm.DB
	projectHandler *ProjectHandler
	taskHandler    *TaskHandler
	today          time.Time
}

// SetupTest runs before each test
func (suite *ProjectHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	suite.today = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	clock := lifecycle.FixedClock{Time: suite.today}

	projectService := services.NewProjectService(
		repository.NewProjectRepository(suite.db),
		repository.NewTaskRepository(suite.db),
		repository.NewUserRepository(suite.db),
		clock,
	)
	taskService := services.NewTaskService(suite.db, clock)

	suite.projectHandler = NewProjectHandler(projectService)
	suite.taskHandler = NewTaskHandler(taskService)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *ProjectHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *ProjectHandlerTestSuite) createTestUser(username string, role models.Role) *models.User {
	user := &models.User{
		Username:     username,
		PasswordHash: "hashedpassword",
		Role:         role,
	}
	suite.db.Create(user)
	return user
}

func (suite *ProjectHandlerTestSuite) createTestProject(name string, assignedUserID uint64) *models.Project {
	project := &models.Project{
		Name:           name,
		Status:         models.StatusInProgress,
		StartDate:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		AssignedUserID: assignedUserID,
	}
	suite.db.Create(project)
	return project
}

func (suite *ProjectHandlerTestSuite) createTestTask(projectID uint64, name string, assignedUserID *uint64) *models.Task {
	task := &models.Task{
		ProjectID:      projectID,
		Name:           name,
		Status:         models.StatusInProgress,
		StartDate:      time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
		AssignedUserID: assignedUserID,
	}
	suite.db.Create(task)
	return task
}

// performAs routes a request through a router that authenticates as the
// given user, mirroring what RequireAuth sets up in production.
func (suite *ProjectHandlerTestSuite) performAs(user *models.User, method, url string, body []byte) *httptest.ResponseRecorder {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyUser, *user)
	})
	r.GET("/api/projects", suite.projectHandler.ListProjects)
	r.POST("/api/projects", suite.projectHandler.CreateProject)
	r.GET("/api/projects/:id", suite.projectHandler.GetProject)
	r.POST("/api/projects/:id/tasks", suite.taskHandler.CreateTask)

	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func (suite *ProjectHandlerTestSuite) listedProjectNames(w *httptest.ResponseRecorder) []string {
	var response struct {
		Projects []struct {
			Name string `json:"name"`
		} `json:"projects"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	suite.Require().NoError(err)

	names := make([]string, len(response.Projects))
	for i, p := range response.Projects {
		names[i] = p.Name
	}
	return names
}

func (suite *ProjectHandlerTestSuite) TestListProjects_AdminSeesAll() {
	admin := suite.createTestUser("admin", models.RoleAdmin)
	manager := suite.createTestUser("manager1", models.RoleManager)
	suite.createTestProject("P1", manager.ID)
	suite.createTestProject("P2", manager.ID)

	w := suite.performAs(admin, "GET", "/api/projects", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.ElementsMatch(suite.T(), []string{"P1", "P2"}, suite.listedProjectNames(w))
}

func (suite *ProjectHandlerTestSuite) TestListProjects_ManagerSeesOnlyAssigned() {
	m1 := suite.createTestUser("manager1", models.RoleManager)
	m2 := suite.createTestUser("manager2", models.RoleManager)
	suite.createTestProject("P1", m1.ID)
	suite.createTestProject("P2", m2.ID)
	suite.createTestProject("P3", m1.ID)
	suite.createTestProject("P4", m2.ID)

	w := suite.performAs(m1, "GET", "/api/projects", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.ElementsMatch(suite.T(), []string{"P1", "P3"}, suite.listedProjectNames(w))
}

func (suite *ProjectHandlerTestSuite) TestListProjects_UserScopedByTasks() {
	manager := suite.createTestUser("manager1", models.RoleManager)
	user := suite.createTestUser("user1", models.RoleUser)
	p1 := suite.createTestProject("P1", manager.ID)
	p2 := suite.createTestProject("P2", manager.ID)
	suite.createTestTask(p1.ID, "Other work", nil)
	suite.createTestTask(p2.ID, "Their work", &user.ID)

	w := suite.performAs(user, "GET", "/api/projects", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), []string{"P2"}, suite.listedProjectNames(w))
}

func (suite *ProjectHandlerTestSuite) TestListProjects_UserWithNoTasksGetsEmptyList() {
	manager := suite.createTestUser("manager1", models.RoleManager)
	user := suite.createTestUser("user1", models.RoleUser)
	suite.createTestProject("P1", manager.ID)

	w := suite.performAs(user, "GET", "/api/projects", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Empty(suite.T(), suite.listedProjectNames(w))
}

func (suite *ProjectHandlerTestSuite) TestGetProject_NotFoundForEveryRole() {
	admin := suite.createTestUser("admin", models.RoleAdmin)
	user := suite.createTestUser("user1", models.RoleUser)

	w := suite.performAs(admin, "GET", "/api/projects/9999", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	w = suite.performAs(user, "GET", "/api/projects/9999", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *ProjectHandlerTestSuite) TestGetProject_ForbiddenIsNeverNotFound() {
	m1 := suite.createTestUser("manager1", models.RoleManager)
	m2 := suite.createTestUser("manager2", models.RoleManager)
	user := suite.createTestUser("user1", models.RoleUser)
	project := suite.createTestProject("P1", m1.ID)
	url := fmt.Sprintf("/api/projects/%d", project.ID)

	w := suite.performAs(m2, "GET", url, nil)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	w = suite.performAs(user, "GET", url, nil)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *ProjectHandlerTestSuite) TestGetProject_EmbedsTasks() {
	manager := suite.createTestUser("manager1", models.RoleManager)
	user := suite.createTestUser("user1", models.RoleUser)
	project := suite.createTestProject("P1", manager.ID)
	suite.createTestTask(project.ID, "Their work", &user.ID)

	w := suite.performAs(manager, "GET", fmt.Sprintf("/api/projects/%d", project.ID), nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)

	tasks := response["tasks"].([]interface{})
	assert.Len(suite.T(), tasks, 1)
	task := tasks[0].(map[string]interface{})
	assert.Equal(suite.T(), "Their work", task["name"])
	assert.Equal(suite.T(), "user1", task["assigned_user"])
}

func (suite *ProjectHandlerTestSuite) TestCreateProject_ForbiddenForNonAdmins() {
	manager := suite.createTestUser("manager1", models.RoleManager)
	user := suite.createTestUser("user1", models.RoleUser)

	body, _ := json.Marshal(map[string]interface{}{
		"name":             "New project",
		"start_date":       "2024-03-15",
		"end_date":         "2024-06-01",
		"assigned_user_id": manager.ID,
	})

	w := suite.performAs(manager, "POST", "/api/projects", body)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	w = suite.performAs(user, "POST", "/api/projects", body)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	var count int64
	suite.db.Model(&models.Project{}).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

func (suite *ProjectHandlerTestSuite) TestCreateProject_AdminStartingToday() {
	admin := suite.createTestUser("admin", models.RoleAdmin)
	manager := suite.createTestUser("manager1", models.RoleManager)

	body, _ := json.Marshal(map[string]interface{}{
		"name":             "New project",
		"description":      "Rollout work",
		"start_date":       "2024-03-15",
		"end_date":         "2024-06-01",
		"assigned_user_id": manager.ID,
	})

	w := suite.performAs(admin, "POST", "/api/projects", body)
	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), string(models.StatusInProgress), response["status"])
	assert.Equal(suite.T(), float64(0), response["hours_consumed"])
}

func (suite *ProjectHandlerTestSuite) TestCreateProject_AdminStartingLater() {
	admin := suite.createTestUser("admin", models.RoleAdmin)
	manager := suite.createTestUser("manager1", models.RoleManager)

	body, _ := json.Marshal(map[string]interface{}{
		"name":             "Future project",
		"start_date":       "2024-04-01",
		"end_date":         "2024-06-01",
		"assigned_user_id": manager.ID,
	})

	w := suite.performAs(admin, "POST", "/api/projects", body)
	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), string(models.StatusCreated), response["status"])
}

func (suite *ProjectHandlerTestSuite) TestCreateProject_InvalidDate() {
	admin := suite.createTestUser("admin", models.RoleAdmin)

	body, _ := json.Marshal(map[string]interface{}{
		"name":             "Bad dates",
		"start_date":       "15/03/2024",
		"end_date":         "2024-06-01",
		"assigned_user_id": admin.ID,
	})

	w := suite.performAs(admin, "POST", "/api/projects", body)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestProjectHandlerTestSuite runs the test suite
func TestProjectHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectHandlerTestSuite))
}
