package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskvault-dev/taskvault/internal/apperr"
	"github.com/taskvault-dev/taskvault/internal/models"
	"github.com/taskvault-dev/taskvault/internal/services"
	"github.com/taskvault-dev/taskvault/internal/utils"
)

type ProjectRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type SubtaskResponse struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Completed   bool       `json:"completed"`
	TodoID      uint       `json:"todo_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type TodoResponse struct {
	ID          uint              `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	DueDate     *time.Time        `json:"due_date"`
	Note        string            `json:"note"`
	Completed   bool              `json:"completed"`
	Project     *ProjectRef       `json:"project"`
	Subtasks    []SubtaskResponse `json:"subtasks"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type ProjectResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ProjectListItem struct {
	ProjectResponse
	TodoCount int64 `json:"todo_count"`
}

type ProjectDetailResponse struct {
	ProjectResponse
	Todos []TodoResponse `json:"todos"`
}

func newProjectResponse(project *models.Project) ProjectResponse {
	return ProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

func newProjectDetailResponse(project *models.Project, todos []models.Todo) ProjectDetailResponse {
	detail := ProjectDetailResponse{
		ProjectResponse: newProjectResponse(project),
		Todos:           make([]TodoResponse, 0, len(todos)),
	}

	for i := range todos {
		detail.Todos = append(detail.Todos, newTodoResponse(&todos[i]))
	}

	return detail
}

func newTodoResponse(todo *models.Todo) TodoResponse {
	response := TodoResponse{
		ID:          todo.ID,
		Title:       todo.Title,
		Description: todo.Description,
		DueDate:     todo.DueDate,
		Note:        todo.Note,
		Completed:   todo.Completed,
		Subtasks:    make([]SubtaskResponse, 0, len(todo.Subtasks)),
		CreatedAt:   todo.CreatedAt,
		UpdatedAt:   todo.UpdatedAt,
	}

	if todo.Project != nil {
		response.Project = &ProjectRef{
			ID:   todo.Project.ID,
			Name: todo.Project.Name,
		}
	}

	for i := range todo.Subtasks {
		response.Subtasks = append(response.Subtasks, newSubtaskResponse(&todo.Subtasks[i]))
	}

	return response
}

func newSubtaskResponse(subtask *models.Subtask) SubtaskResponse {
	return SubtaskResponse{
		ID:          subtask.ID,
		Title:       subtask.Title,
		Description: subtask.Description,
		DueDate:     subtask.DueDate,
		Completed:   subtask.Completed,
		TodoID:      subtask.TodoID,
		CreatedAt:   subtask.CreatedAt,
		UpdatedAt:   subtask.UpdatedAt,
	}
}

func newProjectListResponse(projects []services.ProjectWithTodoCount) []ProjectListItem {
	response := make([]ProjectListItem, 0, len(projects))

	for i := range projects {
		response = append(response, ProjectListItem{
			ProjectResponse: newProjectResponse(&projects[i].Project),
			TodoCount:       projects[i].TodoCount,
		})
	}

	return response
}

// respondError maps a service failure to its HTTP status. Unclassified
// errors are logged with the request id and reported generically.
func respondError(ctx *gin.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindAlreadyExists:
		ctx.JSON(http.StatusConflict, gin.H{"success": false, "error": err.Error()})
	case apperr.KindInvalidCredentials, apperr.KindUnauthorized:
		ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": err.Error()})
	case apperr.KindNotFound:
		ctx.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
	case apperr.KindValidation:
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	default:
		log.Printf("request %s failed: %v", utils.GetRequestID(ctx), err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
	}
}

func respondUnauthenticated(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User not authenticated"})
}

func respondInvalidRequest(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request: " + err.Error()})
}
