package routes

import (
	"nutriengine/controllers"
	"nutriengine/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(middlewares.RequestLogger(), gin.Recovery())

	r.GET("/healthz", controllers.Healthz)

	nutrition := r.Group("/nutrition")
	{
		nutrition.POST("/analyze", controllers.AnalyzeNutrition)
	}

	return r
}
