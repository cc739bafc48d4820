package route

import (
	"github.com/cantiere-digitale/giornale/internal/controller"
	"github.com/cantiere-digitale/giornale/internal/middleware"
	"github.com/gin-gonic/gin"
)

func V1_Projects(r *gin.RouterGroup, pc *controller.ProjectController, dc *controller.DailyLogController, rc *controller.ReportController, middleware *middleware.Middleware) {
	v1 := r.Group("/v1/projects")
	v1.Use(middleware.AuthMiddleware)
	{
		v1.POST("", pc.CreateProject)
		v1.GET("", pc.GetOwnProjectList)
		v1.GET("/:projectId", pc.GetProjectById)
		v1.PATCH("/:projectId", pc.UpdateProject)
		v1.DELETE("/:projectId", pc.DeleteProject)
		v1.GET("/:projectId/role", pc.GetProjectRole)
		v1.PUT("/:projectId/catalogue", pc.ReplaceCatalogue)

		v1.GET("/:projectId/logs", dc.ListLogs)
		v1.GET("/:projectId/logs/:logId", dc.GetLog)
		v1.PUT("/:projectId/logs/:logId", dc.SaveLog)
		v1.POST("/:projectId/logs/:logId/annotations", dc.AddAnnotation)
		v1.DELETE("/:projectId/logs/:logId/annotations/:annotationId", dc.RemoveAnnotation)

		v1.GET("/:projectId/report", rc.ExportReport)
	}
}
