package controllers

import (
	"net/http"

	"nutriengine/config"
	"nutriengine/services"

	"github.com/gin-gonic/gin"
)

// POST /nutrition/analyze
// { "items": ["arroz branco", {"name":"feijao","grams":120}], "debug": true }
func AnalyzeNutrition(c *gin.Context) {
	var req services.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid body: " + err.Error()})
		return
	}

	svc := services.NewAnalysisService(
		services.NewGormStore(config.DB),
		services.DefaultFallbackTable(),
	)
	out, err := svc.Analyze(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /healthz
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
