package routes

import (
	"registration-service-api/controllers"
	"registration-service-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		// Public routes
		public := api.Group("")
		{
			public.POST("/login", controllers.Login)

			// Customer intake form
			public.POST("/submissions", controllers.CreateSubmission)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Registration Service API is running",
				})
			})
		}

		// Admin routes (require authentication)
		admin := api.Group("")
		admin.Use(middleware.AuthMiddleware())
		{
			submissions := admin.Group("/submissions")
			{
				submissions.GET("", controllers.GetSubmissions)
				submissions.GET("/:id", controllers.GetSubmission)
				submissions.PUT("/:id/status", controllers.UpdateStatus)
				submissions.PUT("/:id/employee", controllers.AssignEmployee)
				submissions.POST("/:id/notes", controllers.AddNote)
				submissions.POST("/:id/internal-documents", controllers.AddInternalDocuments)
				submissions.DELETE("/:id/internal-documents/uid/:uid", controllers.DeleteInternalDocumentByUID)
				submissions.DELETE("/:id/internal-documents/:index", controllers.DeleteInternalDocument)
				submissions.GET("/:id/archive", controllers.DownloadCaseArchive)
			}

			admin.GET("/exports/submissions.xlsx", controllers.ExportSubmissionsToExcel)
		}
	}
}
