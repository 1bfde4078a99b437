package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/openedu/learnhub/internal/middleware"
	"github.com/openedu/learnhub/internal/models"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(app *fiber.App, handlers *Handlers) {
	// Middleware
	app.Use(recover.New())
	app.Use(middleware.RequestLogger())

	// Configuration delivery for browser clients
	app.Get("/api/config", handlers.GetClientConfig)

	// API group with versioning
	api := app.Group("/api/v1")

	// Health check endpoint
	api.Get("/health", handlers.HealthCheck)

	// Articles endpoints
	articles := api.Group("/articles")
	{
		articles.Get("", handlers.ListArticles)
		articles.Post("", middleware.ValidateRequest(func() interface{} {
			return new(models.ArticleInput)
		}), handlers.SubmitArticle)
		articles.Post("/preview", handlers.PreviewArticle)
		articles.Get("/:id", handlers.GetArticle)
		articles.Post("/:id/like", handlers.LikeArticle)
	}

	// Community endpoints
	community := api.Group("/community")
	{
		community.Get("/posts", handlers.ListPosts)
		community.Post("/posts", middleware.ValidateRequest(func() interface{} {
			return new(models.PostInput)
		}), handlers.CreatePost)
		community.Post("/posts/more", handlers.LoadMorePosts)
		community.Post("/posts/:id/like", handlers.LikePost)
		community.Post("/posts/:id/share", handlers.SharePost)
		community.Get("/stats", handlers.CommunityStats)
	}

	// Quiz endpoints
	quizGroup := api.Group("/quiz")
	{
		quizGroup.Get("/levels", handlers.ListQuizLevels)
		quizGroup.Get("/levels/:difficulty", handlers.GetQuizLevel)
		quizGroup.Post("/sessions", middleware.ValidateRequest(func() interface{} {
			return new(StartQuizRequest)
		}), handlers.StartQuizSession)
		quizGroup.Get("/sessions/:id", handlers.GetQuizSession)
		quizGroup.Post("/sessions/:id/answer", middleware.ValidateRequest(func() interface{} {
			return new(AnswerRequest)
		}), handlers.AnswerQuizSession)
		quizGroup.Post("/sessions/:id/next", handlers.NextQuizQuestion)
		quizGroup.Post("/sessions/:id/prev", handlers.PrevQuizQuestion)
		quizGroup.Post("/sessions/:id/submit", handlers.SubmitQuizSession)
		quizGroup.Get("/sessions/:id/result", handlers.GetQuizResult)
		quizGroup.Post("/sessions/:id/restart", handlers.RestartQuizSession)
	}

	// Admin endpoints
	admin := api.Group("/admin", middleware.AdminOnly(handlers.config.AdminAPIKey))
	{
		admin.Post("/articles/refresh", handlers.RefreshArticles)
		admin.Delete("/articles/:id", handlers.DeleteArticle)
	}

	// 404 Handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Endpoint not found",
		})
	})
}
