package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskvault-dev/taskvault/internal/apperr"
	"github.com/taskvault-dev/taskvault/internal/services"
	"github.com/taskvault-dev/taskvault/internal/utils"
)

type TodoHandler struct {
	todos *services.TodoService
}

func NewTodoHandler(todos *services.TodoService) *TodoHandler {
	return &TodoHandler{todos: todos}
}

type CreateTodoRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	DueDate     *string `json:"due_date"`
	Note        string  `json:"note"`
	ProjectID   *uint   `json:"project_id"`
}

type UpdateTodoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
	Note        *string `json:"note"`

	// Raw so that an explicit null (detach from project) can be told apart
	// from the field being absent.
	ProjectID json.RawMessage `json:"project_id"`
}

func (h *TodoHandler) Create(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		respondUnauthenticated(ctx)
		return
	}

	var req CreateTodoRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		respondInvalidRequest(ctx, err)
		return
	}

	dueDate, err := parseOptionalDueDate(req.DueDate)

	if err != nil {
		respondError(ctx, err)
		return
	}

	todo, err := h.todos.Create(ctx.Request.Context(), userID, services.CreateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
		Note:        req.Note,
		ProjectID:   req.ProjectID,
	})

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    newTodoResponse(todo),
		"message": "Todo created successfully",
	})
}

func (h *TodoHandler) List(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		respondUnauthenticated(ctx)
		return
	}

	todos, err := h.todos.List(ctx.Request.Context(), userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]TodoResponse, 0, len(todos))

	for i := range todos {
		response = append(response, newTodoResponse(&todos[i]))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    response,
	})
}

func (h *TodoHandler) GetByID(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		respondUnauthenticated(ctx)
		return
	}

	todoID, err := utils.PathID(ctx, "id")

	if err != nil {
		respondInvalidRequest(ctx, err)
		return
	}

	todo, err := h.todos.GetByID(ctx.Request.Context(), userID, todoID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    newTodoResponse(todo),
	})
}

func (h *TodoHandler) Update(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		respondUnauthenticated(ctx)
		return
	}

	todoID, err := utils.PathID(ctx, "id")

	if err != nil {
		respondInvalidRequest(ctx, err)
		return
	}

	var req UpdateTodoRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		respondInvalidRequest(ctx, err)
		return
	}

	input := services.UpdateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		Note:        req.Note,
	}

	if req.DueDate != nil {
		dueDate, err := parseOptionalDueDate(req.DueDate)

		if err != nil {
			respondError(ctx, err)
			return
		}

		input.DueDate = dueDate
	}

	if len(req.ProjectID) > 0 {
		input.SetProject = true

		if string(req.ProjectID) != "null" {
			var projectID uint

			if err := json.Unmarshal(req.ProjectID, &projectID); err != nil {
				respondError(ctx, apperr.Validation("Invalid project_id"))
				return
			}

			input.ProjectID = &projectID
		}
	}

	todo, err := h.todos.Update(ctx.Request.Context(), userID, todoID, input)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    newTodoResponse(todo),
		"message": "Todo updated successfully",
	})
}

func (h *TodoHandler) ToggleComplete(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		respondUnauthenticated(ctx)
		return
	}

	todoID, err := utils.PathID(ctx, "id")

	if err != nil {
		respondInvalidRequest(ctx, err)
		return
	}

	todo, err := h.todos.ToggleComplete(ctx.Request.Context(), userID, todoID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	message := "Todo marked as pending"

	if todo.Completed {
		message = "Todo marked as complete"
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    newTodoResponse(todo),
		"message": message,
	})
}

func (h *TodoHandler) Delete(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		respondUnauthenticated(ctx)
		return
	}

	todoID, err := utils.PathID(ctx, "id")

	if err != nil {
		respondInvalidRequest(ctx, err)
		return
	}

	if err := h.todos.Delete(ctx.Request.Context(), userID, todoID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Todo deleted successfully",
	})
}

func parseOptionalDueDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}

	dueDate, err := utils.ParseDueDate(*raw)

	if err != nil {
		return nil, apperr.Validation("Invalid due date: expected RFC 3339 or YYYY-MM-DD")
	}

	return &dueDate, nil
}
