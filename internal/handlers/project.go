package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskvault-dev/taskvault/internal/services"
	"github.com/taskvault-dev/taskvault/internal/utils"
)

type ProjectHandler struct {
	projects *services.ProjectService
}

func NewProjectHandler(projects *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (h *ProjectHandler) Create(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		respondUnauthenticated(ctx)
		return
	}

	var req CreateProjectRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		respondInvalidRequest(ctx, err)
		return
	}

	project, err := h.projects.Create(ctx.Request.Context(), userID, req.Name, req.Description)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    newProjectResponse(project),
		"message": "Project created successfully",
	})
}

func (h *ProjectHandler) List(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		respondUnauthenticated(ctx)
		return
	}

	projects, err := h.projects.List(ctx.Request.Context(), userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    newProjectListResponse(projects),
	})
}

func (h *ProjectHandler) GetByID(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		respondUnauthenticated(ctx)
		return
	}

	projectID, err := utils.PathID(ctx, "id")

	if err != nil {
		respondInvalidRequest(ctx, err)
		return
	}

	project, err := h.projects.GetByID(ctx.Request.Context(), userID, projectID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    newProjectDetailResponse(project, project.Todos),
	})
}

func (h *ProjectHandler) Update(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		respondUnauthenticated(ctx)
		return
	}

	projectID, err := utils.PathID(ctx, "id")

	if err != nil {
		respondInvalidRequest(ctx, err)
		return
	}

	var req UpdateProjectRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		respondInvalidRequest(ctx, err)
		return
	}

	project, err := h.projects.Update(ctx.Request.Context(), userID, projectID, services.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
	})

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    newProjectResponse(project),
		"message": "Project updated successfully",
	})
}

func (h *ProjectHandler) Delete(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		respondUnauthenticated(ctx)
		return
	}

	projectID, err := utils.PathID(ctx, "id")

	if err != nil {
		respondInvalidRequest(ctx, err)
		return
	}

	if err := h.projects.Delete(ctx.Request.Context(), userID, projectID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Project deleted successfully",
	})
}

func (h *ProjectHandler) ListTodos(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		respondUnauthenticated(ctx)
		return
	}

	projectID, err := utils.PathID(ctx, "id")

	if err != nil {
		respondInvalidRequest(ctx, err)
		return
	}

	project, todos, err := h.projects.ListTodos(ctx.Request.Context(), userID, projectID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    newProjectDetailResponse(project, todos),
	})
}
