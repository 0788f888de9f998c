// Package app wires configuration, storage and services into the HTTP engine.
package app

import (
	"spiritualgifts/config"
	"spiritualgifts/handlers"
	"spiritualgifts/middleware"
	"spiritualgifts/routes"
	"spiritualgifts/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type App struct {
	Router *gin.Engine
	Seeder *services.Seeder
	Tokens *services.TokenIssuer
}

// New builds the services and routes. rdb may be nil, which disables the
// description cache.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *App {
	tokens := services.NewTokenIssuer(cfg.Auth.JWTSecret, config.Duration(cfg.Auth.TokenTTL, services.DefaultTokenTTL))
	descriptions := services.NewDescriptionCache(db, rdb, config.Duration(cfg.Redis.TTL, 0))

	// Initialize services
	authService := services.NewAuthService(db, tokens)
	quizService := services.NewQuizService(db, descriptions)
	adminService := services.NewAdminService(db, descriptions)
	questionService := services.NewQuestionService(db)

	// Setup Gin router
	router := gin.Default()
	router.Use(middleware.RequestID(), middleware.CORS())

	routes.SetupRoutes(router, routes.Handlers{
		Auth:     handlers.NewAuthHandler(authService),
		Quiz:     handlers.NewQuizHandler(quizService),
		Admin:    handlers.NewAdminHandler(adminService),
		Question: handlers.NewQuestionHandler(questionService),
	}, tokens)

	return &App{
		Router: router,
		Seeder: services.NewSeeder(db, descriptions),
		Tokens: tokens,
	}
}
