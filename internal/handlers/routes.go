package handlers

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the API routes on router
func RegisterRoutes(router *gin.Engine, emailHandler *EmailHandler, exportHandler *ExportHandler) {
	healthHandler := NewHealthHandler()
	notFoundHandler := NewNotFoundHandler()

	emails := router.Group("/emails")
	{
		emails.GET("", emailHandler.ListEmails)
		emails.POST("", emailHandler.CreateEmail)
		emails.GET("/:id", emailHandler.GetEmail)
		emails.PUT("/:id", emailHandler.UpdateEmail)
		emails.DELETE("/:id", emailHandler.DeleteEmail)
	}

	router.GET("/exports/emails", exportHandler.ExportEmails)

	// Health check endpoint
	router.GET("/health", healthHandler.HealthCheck)

	router.NoRoute(notFoundHandler.NotFound)
}
