package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/openedu/learnhub/internal/config"
	"github.com/openedu/learnhub/internal/content"
	"github.com/openedu/learnhub/internal/logger"
	"github.com/openedu/learnhub/internal/models"
	"github.com/openedu/learnhub/internal/quiz"
)

type Handlers struct {
	config    *config.Config
	articles  *content.ArticleManager
	community *content.CommunityManager
	engine    *quiz.Engine
}

func NewHandlers(cfg *config.Config, articles *content.ArticleManager, community *content.CommunityManager, engine *quiz.Engine) *Handlers {
	return &Handlers{
		config:    cfg,
		articles:  articles,
		community: community,
		engine:    engine,
	}
}

// HealthCheck handles the /health endpoint
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": "1.0.0",
		"time":    time.Now().Format(time.RFC3339),
	})
}

// GetClientConfig handles GET /api/config. It hands the bin credentials to
// browser clients, mirroring the hosted configuration delivery endpoint.
func (h *Handlers) GetClientConfig(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"binId":  h.config.BinID,
		"apiKey": h.config.BinAPIKey,
	})
}

// ListArticles handles GET /api/v1/articles. A q parameter applies the
// free-text filter, a category parameter the category filter; whichever
// arrives wins, they do not combine.
func (h *Handlers) ListArticles(c *fiber.Ctx) error {
	var items []models.Article
	switch {
	case c.Query("q") != "":
		items = h.articles.Filter(c.Query("q"))
	case c.Query("category") != "":
		items = h.articles.SetCategory(c.Query("category"))
	default:
		items = h.articles.Visible()
	}

	return c.JSON(fiber.Map{
		"total":      len(items),
		"items":      items,
		"loading":    h.articles.Loading(),
		"configured": h.config.BinConfigured(),
		"notices":    h.articles.Notices(),
	})
}

// GetArticle handles GET /api/v1/articles/:id
func (h *Handlers) GetArticle(c *fiber.Ctx) error {
	id := c.Params("id")
	article, ok := h.articles.Get(id)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Article not found",
		})
	}
	return c.JSON(article)
}

// SubmitArticle handles POST /api/v1/articles
func (h *Handlers) SubmitArticle(c *fiber.Ctx) error {
	input := c.Locals("validated").(*models.ArticleInput)

	article, err := h.articles.Submit(c.Context(), *input)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(article)
}

// PreviewArticle handles POST /api/v1/articles/preview. Nothing is stored.
func (h *Handlers) PreviewArticle(c *fiber.Ctx) error {
	var input models.ArticleInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	article, err := h.articles.Preview(input)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(article)
}

// LikeArticle handles POST /api/v1/articles/:id/like
func (h *Handlers) LikeArticle(c *fiber.Ctx) error {
	id := c.Params("id")
	article, ok := h.articles.ToggleLike(c.Context(), id)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Article not found",
		})
	}
	return c.JSON(article)
}

// RefreshArticles handles POST /api/v1/admin/articles/refresh
func (h *Handlers) RefreshArticles(c *fiber.Ctx) error {
	articles, err := h.articles.Refresh(c.Context())
	if err != nil {
		logger.Get().Error().Err(err).Msg("Error refreshing articles")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to refresh articles from remote store",
		})
	}

	return c.JSON(fiber.Map{
		"status": "refreshed",
		"total":  len(articles),
	})
}

// DeleteArticle handles DELETE /api/v1/admin/articles/:id
func (h *Handlers) DeleteArticle(c *fiber.Ctx) error {
	id := c.Params("id")
	if !h.articles.Delete(c.Context(), id) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Article not found",
		})
	}

	return c.JSON(fiber.Map{
		"status":  "deleted",
		"message": "Article deleted successfully",
	})
}

// ListPosts handles GET /api/v1/community/posts
func (h *Handlers) ListPosts(c *fiber.Ctx) error {
	posts := h.community.List()
	return c.JSON(fiber.Map{
		"total":   len(posts),
		"items":   posts,
		"notices": h.community.Notices(),
	})
}

// CreatePost handles POST /api/v1/community/posts
func (h *Handlers) CreatePost(c *fiber.Ctx) error {
	input := c.Locals("validated").(*models.PostInput)

	post, err := h.community.CreatePost(*input)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// LikePost handles POST /api/v1/community/posts/:id/like
func (h *Handlers) LikePost(c *fiber.Ctx) error {
	post, ok := h.community.ToggleLike(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Post not found",
		})
	}
	return c.JSON(post)
}

// SharePost handles POST /api/v1/community/posts/:id/share
func (h *Handlers) SharePost(c *fiber.Ctx) error {
	result, ok := h.community.Share(c.Params("id"), c.BaseURL()+"/community")
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Post not found",
		})
	}
	return c.JSON(result)
}

// LoadMorePosts handles POST /api/v1/community/posts/more
func (h *Handlers) LoadMorePosts(c *fiber.Ctx) error {
	hasMore := h.community.LoadMore()
	posts := h.community.List()
	return c.JSON(fiber.Map{
		"total":    len(posts),
		"items":    posts,
		"has_more": hasMore,
	})
}

// CommunityStats handles GET /api/v1/community/stats
func (h *Handlers) CommunityStats(c *fiber.Ctx) error {
	return c.JSON(h.community.Stats())
}

// ListQuizLevels handles GET /api/v1/quiz/levels
func (h *Handlers) ListQuizLevels(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"levels": h.engine.Bank().Levels(),
	})
}

// GetQuizLevel handles GET /api/v1/quiz/levels/:difficulty and serves the
// reading material screen.
func (h *Handlers) GetQuizLevel(c *fiber.Ctx) error {
	difficulty := c.Params("difficulty")
	level, ok := h.engine.Bank().Level(difficulty)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Quiz data not found for this level",
		})
	}

	return c.JSON(fiber.Map{
		"difficulty":       difficulty,
		"title":            level.Title,
		"reading_material": level.ReadingMaterial,
		"questions_count":  level.QuestionsCount,
		"time_limit":       level.TimeLimit,
	})
}

// StartQuizRequest is the session creation payload.
type StartQuizRequest struct {
	Difficulty string `json:"difficulty" validate:"required,oneof=easy medium hard"`
}

// AnswerRequest records an option selection for the current question.
type AnswerRequest struct {
	Option *int `json:"option" validate:"required,min=0,max=3"`
}

// StartQuizSession handles POST /api/v1/quiz/sessions
func (h *Handlers) StartQuizSession(c *fiber.Ctx) error {
	req := c.Locals("validated").(*StartQuizRequest)

	session, err := h.engine.Start(req.Difficulty)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"session_id": session.ID,
		"difficulty": session.Difficulty,
		"title":      session.Title,
		"question":   session.Current(),
	})
}

func (h *Handlers) session(c *fiber.Ctx) (*quiz.Session, error) {
	session, ok := h.engine.Get(c.Params("id"))
	if !ok {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Quiz session not found",
		})
	}
	return session, nil
}

// GetQuizSession handles GET /api/v1/quiz/sessions/:id
func (h *Handlers) GetQuizSession(c *fiber.Ctx) error {
	session, err := h.session(c)
	if session == nil {
		return err
	}

	if result, done := session.Result(); done {
		return c.JSON(fiber.Map{
			"session_id": session.ID,
			"finished":   true,
			"result":     result,
		})
	}

	return c.JSON(fiber.Map{
		"session_id": session.ID,
		"finished":   false,
		"question":   session.Current(),
	})
}

// AnswerQuizSession handles POST /api/v1/quiz/sessions/:id/answer
func (h *Handlers) AnswerQuizSession(c *fiber.Ctx) error {
	session, err := h.session(c)
	if session == nil {
		return err
	}

	req := c.Locals("validated").(*AnswerRequest)
	if err := session.SelectOption(*req.Option); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(session.Current())
}

// NextQuizQuestion handles POST /api/v1/quiz/sessions/:id/next. On the last
// question this is the submit action.
func (h *Handlers) NextQuizQuestion(c *fiber.Ctx) error {
	session, err := h.session(c)
	if session == nil {
		return err
	}

	if session.Next() {
		return h.resultPayload(c, session)
	}
	return c.JSON(session.Current())
}

// PrevQuizQuestion handles POST /api/v1/quiz/sessions/:id/prev
func (h *Handlers) PrevQuizQuestion(c *fiber.Ctx) error {
	session, err := h.session(c)
	if session == nil {
		return err
	}

	session.Prev()
	return c.JSON(session.Current())
}

// SubmitQuizSession handles POST /api/v1/quiz/sessions/:id/submit
func (h *Handlers) SubmitQuizSession(c *fiber.Ctx) error {
	session, err := h.session(c)
	if session == nil {
		return err
	}

	session.Submit()
	return h.resultPayload(c, session)
}

// GetQuizResult handles GET /api/v1/quiz/sessions/:id/result
func (h *Handlers) GetQuizResult(c *fiber.Ctx) error {
	session, err := h.session(c)
	if session == nil {
		return err
	}

	if _, done := session.Result(); !done {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Quiz session is still in progress",
		})
	}
	return h.resultPayload(c, session)
}

// RestartQuizSession handles POST /api/v1/quiz/sessions/:id/restart and
// returns the client to difficulty selection.
func (h *Handlers) RestartQuizSession(c *fiber.Ctx) error {
	h.engine.Restart(c.Params("id"))
	return c.JSON(fiber.Map{
		"status": "restarted",
	})
}

func (h *Handlers) resultPayload(c *fiber.Ctx, session *quiz.Session) error {
	result, _ := session.Result()
	return c.JSON(fiber.Map{
		"session_id":  session.ID,
		"finished":    true,
		"result":      result,
		"share_text":  quiz.ShareText(result),
		"certificate": quiz.CertificateFor(result, time.Now()),
	})
}
