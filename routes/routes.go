package routes

import (
	"net/http"

	"spiritualgifts/handlers"
	"spiritualgifts/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	Quiz     *handlers.QuizHandler
	Admin    *handlers.AdminHandler
	Question *handlers.QuestionHandler
}

func SetupRoutes(router *gin.Engine, h Handlers, verifier middleware.TokenVerifier) {
	// API routes
	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Spiritual Gifts API is running"})
		})

		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", h.Auth.Signup)
			auth.POST("/login", h.Auth.Login)
		}

		// Quiz routes
		quiz := api.Group("/quiz")
		quiz.Use(middleware.AuthMiddleware(verifier))
		{
			quiz.GET("/questions", h.Quiz.GetQuestions)
			quiz.POST("/submit", h.Quiz.SubmitQuiz)
			quiz.GET("/history", h.Quiz.GetHistory)
			quiz.GET("/result/:responseId", h.Quiz.GetResult)
		}

		// Admin routes
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(verifier), middleware.AdminOnly())
		{
			admin.GET("/results", h.Admin.GetResults)
			admin.GET("/user/:userId/response/:responseId", h.Admin.GetUserResponse)
			admin.DELETE("/user/:userId", h.Admin.DeleteUser)
			admin.GET("/gift-categories", h.Admin.GetGiftCategories)
			admin.GET("/gift-descriptions", h.Admin.GetGiftDescriptions)
			admin.POST("/create-admin", h.Admin.CreateAdmin)
			admin.GET("/users", h.Admin.GetUsers)

			questions := admin.Group("/questions")
			{
				questions.GET("", h.Question.ListQuestions)
				questions.POST("", h.Question.CreateQuestion)
				questions.DELETE("", h.Question.DeleteAllQuestions)
				questions.POST("/bulk", h.Question.BulkCreateQuestions)
				questions.GET("/:id", h.Question.GetQuestion)
				questions.PUT("/:id", h.Question.UpdateQuestion)
				questions.DELETE("/:id", h.Question.DeleteQuestion)
			}
		}
	}
}
