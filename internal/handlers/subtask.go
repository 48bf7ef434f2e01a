package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskvault-dev/taskvault/internal/services"
	"github.com/taskvault-dev/taskvault/internal/utils"
)

type SubtaskHandler struct {
	subtasks *services.SubtaskService
}

func NewSubtaskHandler(subtasks *services.SubtaskService) *SubtaskHandler {
	return &SubtaskHandler{subtasks: subtasks}
}

type CreateSubtaskRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	DueDate     *string `json:"due_date"`
}

func (h *SubtaskHandler) Create(ctx *gin.Context) {
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

	var req CreateSubtaskRequest

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

	subtask, err := h.subtasks.Create(ctx.Request.Context(), userID, todoID, services.CreateSubtaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
	})

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    newSubtaskResponse(subtask),
		"message": "Subtask created successfully",
	})
}

func (h *SubtaskHandler) List(ctx *gin.Context) {
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

	subtasks, err := h.subtasks.List(ctx.Request.Context(), userID, todoID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]SubtaskResponse, 0, len(subtasks))

	for i := range subtasks {
		response = append(response, newSubtaskResponse(&subtasks[i]))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    response,
	})
}

func (h *SubtaskHandler) ToggleComplete(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		respondUnauthenticated(ctx)
		return
	}

	subtaskID, err := utils.PathID(ctx, "id")

	if err != nil {
		respondInvalidRequest(ctx, err)
		return
	}

	subtask, err := h.subtasks.ToggleComplete(ctx.Request.Context(), userID, subtaskID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	message := "Subtask marked as pending"

	if subtask.Completed {
		message = "Subtask marked as complete"
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    newSubtaskResponse(subtask),
		"message": message,
	})
}

func (h *SubtaskHandler) Delete(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		respondUnauthenticated(ctx)
		return
	}

	subtaskID, err := utils.PathID(ctx, "id")

	if err != nil {
		respondInvalidRequest(ctx, err)
		return
	}

	if err := h.subtasks.Delete(ctx.Request.Context(), userID, subtaskID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Subtask deleted successfully",
	})
}
