package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func HealthCheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func Root(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"message": "TaskVault API",
		"version": "1.0.0",
		"health":  "/api/health",
	})
}
