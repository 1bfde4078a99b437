package content

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/openedu/learnhub/internal/cache"
	"github.com/openedu/learnhub/internal/logger"
	"github.com/openedu/learnhub/internal/models"
)

// RemoteStore is the bin client surface the article manager depends on.
type RemoteStore interface {
	IsConfigured() bool
	FetchAll(ctx context.Context) ([]models.Article, error)
	ReplaceAll(ctx context.Context, articles []models.Article) error
}

const excerptLength = 150

// ArticleManager owns the in-memory article list and the currently visible
// subset. The in-memory copy is the working truth during a session: after the
// initial load it is only pushed to the remote store, never re-pulled (except
// for the read-modify-write cycle on likes and the admin refresh).
type ArticleManager struct {
	mu       sync.Mutex
	store    RemoteStore
	cache    cache.Cache
	cacheKey string
	cacheTTL time.Duration

	articles []models.Article // source list, original order
	visible  []models.Article // filtered subset shown to the page
	loading  bool

	notices *NoticeBoard
	now     func() time.Time
}

func NewArticleManager(store RemoteStore, docCache cache.Cache, cacheKey string, cacheTTL time.Duration) *ArticleManager {
	return &ArticleManager{
		store:    store,
		cache:    docCache,
		cacheKey: cacheKey,
		cacheTTL: cacheTTL,
		articles: []models.Article{},
		visible:  []models.Article{},
		notices:  NewNoticeBoard(),
		now:      time.Now,
	}
}

// Load populates the list from the remote store. The loading flag is always
// cleared afterward, even on error. Unconfigured stores start empty.
func (m *ArticleManager) Load(ctx context.Context) {
	m.mu.Lock()
	m.loading = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.loading = false
		m.mu.Unlock()
	}()

	if !m.store.IsConfigured() {
		return
	}

	articles, ok := m.cachedDocument(ctx)
	if !ok {
		var err error
		articles, err = m.store.FetchAll(ctx)
		if err != nil {
			logger.Get().Error().Err(err).Msg("Error loading articles")
		} else {
			m.storeDocument(ctx, articles)
		}
	}

	m.mu.Lock()
	m.articles = articles
	m.visible = append([]models.Article{}, articles...)
	m.mu.Unlock()
}

// Loading reports whether the initial load is still in progress.
func (m *ArticleManager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// Filter applies a case-insensitive substring search across title, author,
// content and category. An empty term restores the full list in original
// order. The source list is never mutated.
func (m *ArticleManager) Filter(term string) []models.Article {
	m.mu.Lock()
	defer m.mu.Unlock()

	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		m.visible = append([]models.Article{}, m.articles...)
	} else {
		filtered := make([]models.Article, 0, len(m.articles))
		for _, a := range m.articles {
			if a.Matches(term) {
				filtered = append(filtered, a)
			}
		}
		m.visible = filtered
	}

	return append([]models.Article{}, m.visible...)
}

// SetCategory replaces the visible subset by category. "all" restores the
// full list. Category and free-text filters are not combined: whichever was
// invoked last wins.
func (m *ArticleManager) SetCategory(category string) []models.Article {
	m.mu.Lock()
	defer m.mu.Unlock()

	if category == "" || category == "all" {
		m.visible = append([]models.Article{}, m.articles...)
	} else {
		filtered := make([]models.Article, 0, len(m.articles))
		for _, a := range m.articles {
			if a.Category == category {
				filtered = append(filtered, a)
			}
		}
		m.visible = filtered
	}

	return append([]models.Article{}, m.visible...)
}

// Visible returns the currently displayed subset.
func (m *ArticleManager) Visible() []models.Article {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Article{}, m.visible...)
}

// Get returns a single article by id for the detail view.
func (m *ArticleManager) Get(id string) (models.Article, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.articles {
		if a.ID == id {
			return a, true
		}
	}
	return models.Article{}, false
}

// Submit validates the input, synthesizes an article and prepends it to both
// lists. When configured, the entire updated list is pushed to the remote
// store; the submission is considered consumed regardless of the network
// outcome.
func (m *ArticleManager) Submit(ctx context.Context, input models.ArticleInput) (models.Article, error) {
	title := strings.TrimSpace(input.Title)
	author := strings.TrimSpace(input.Author)
	content := strings.TrimSpace(input.Content)
	excerpt := strings.TrimSpace(input.Excerpt)

	if title == "" || author == "" || input.Category == "" || content == "" {
		m.notices.Push(NoticeError, "Please fill in all required fields")
		return models.Article{}, fmt.Errorf("missing required fields")
	}

	if excerpt == "" {
		excerpt = makeExcerpt(content)
	}

	article := models.Article{
		ID:       strconv.FormatInt(m.now().UnixMilli(), 10),
		Title:    title,
		Author:   author,
		Category: input.Category,
		Content:  content,
		Excerpt:  excerpt,
		Date:     m.now().UTC().Format(time.RFC3339),
		Likes:    0,
		Liked:    false,
	}

	m.mu.Lock()
	m.articles = append([]models.Article{article}, m.articles...)
	m.visible = append([]models.Article{article}, m.visible...)
	snapshot := append([]models.Article{}, m.articles...)
	m.mu.Unlock()

	if m.store.IsConfigured() {
		if err := m.store.ReplaceAll(ctx, snapshot); err != nil {
			logger.Get().Error().Err(err).Str("id", article.ID).Msg("Error saving submitted article")
			m.notices.Push(NoticeError, "Failed to submit article")
			return article, nil
		}
		m.storeDocument(ctx, snapshot)
	}

	m.notices.Push(NoticeSuccess, "Article submitted successfully!")
	return article, nil
}

// ToggleLike flips the liked flag and adjusts the count, clamped at zero.
// When configured, the change is propagated read-modify-write: fetch the
// current remote state, patch the matching record, write the whole
// collection back.
func (m *ArticleManager) ToggleLike(ctx context.Context, id string) (models.Article, bool) {
	m.mu.Lock()
	var updated models.Article
	found := false
	for i := range m.articles {
		if m.articles[i].ID == id {
			a := &m.articles[i]
			a.Liked = !a.Liked
			if a.Liked {
				a.Likes++
			} else {
				a.Likes--
				if a.Likes < 0 {
					a.Likes = 0
				}
			}
			updated = *a
			found = true
			break
		}
	}
	if found {
		for i := range m.visible {
			if m.visible[i].ID == id {
				m.visible[i] = updated
				break
			}
		}
	}
	m.mu.Unlock()

	if !found {
		return models.Article{}, false
	}

	if m.store.IsConfigured() {
		if err := m.pushLike(ctx, updated); err != nil {
			logger.Get().Error().Err(err).Str("id", id).Msg("Error updating like")
			m.notices.Push(NoticeError, "Failed to update like")
		}
	}

	return updated, true
}

func (m *ArticleManager) pushLike(ctx context.Context, updated models.Article) error {
	current, err := m.store.FetchAll(ctx)
	if err != nil {
		return err
	}

	for i := range current {
		if current[i].ID == updated.ID {
			current[i].Likes = updated.Likes
			current[i].Liked = updated.Liked
			break
		}
	}

	if err := m.store.ReplaceAll(ctx, current); err != nil {
		return err
	}
	m.storeDocument(ctx, current)
	return nil
}

// Delete removes an article everywhere: the in-memory lists and, when
// configured, the remote document via the same read-filter-write cycle.
func (m *ArticleManager) Delete(ctx context.Context, id string) bool {
	m.mu.Lock()
	found := false
	kept := m.articles[:0]
	for _, a := range m.articles {
		if a.ID == id {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	m.articles = kept

	if found {
		visible := m.visible[:0]
		for _, a := range m.visible {
			if a.ID != id {
				visible = append(visible, a)
			}
		}
		m.visible = visible
	}
	m.mu.Unlock()

	if !found {
		return false
	}

	if m.store.IsConfigured() {
		current, err := m.store.FetchAll(ctx)
		if err == nil {
			remaining := make([]models.Article, 0, len(current))
			for _, a := range current {
				if a.ID != id {
					remaining = append(remaining, a)
				}
			}
			err = m.store.ReplaceAll(ctx, remaining)
			if err == nil {
				m.storeDocument(ctx, remaining)
			}
		}
		if err != nil {
			logger.Get().Error().Err(err).Str("id", id).Msg("Error deleting article remotely")
			m.notices.Push(NoticeError, "Failed to delete article")
		}
	}

	return true
}

// Refresh re-pulls the remote document, discarding local divergence.
func (m *ArticleManager) Refresh(ctx context.Context) ([]models.Article, error) {
	articles, err := m.store.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	m.storeDocument(ctx, articles)

	m.mu.Lock()
	m.articles = articles
	m.visible = append([]models.Article{}, articles...)
	m.mu.Unlock()

	return append([]models.Article{}, articles...), nil
}

// Preview builds a non-persisted article from form fields for the preview
// modal. Nothing is stored and no network call happens.
func (m *ArticleManager) Preview(input models.ArticleInput) (models.Article, error) {
	title := strings.TrimSpace(input.Title)
	author := strings.TrimSpace(input.Author)
	content := strings.TrimSpace(input.Content)

	if title == "" || author == "" || content == "" {
		return models.Article{}, fmt.Errorf("title, author, and content are required to preview")
	}

	return models.Article{
		Title:   title,
		Author:  author,
		Content: content,
		Excerpt: makeExcerpt(content),
		Date:    "Preview",
	}, nil
}

// Notices returns the live transient banners.
func (m *ArticleManager) Notices() []Notice {
	return m.notices.Active()
}

func (m *ArticleManager) cachedDocument(ctx context.Context) ([]models.Article, bool) {
	if m.cache == nil {
		return nil, false
	}

	data, ok, err := m.cache.GetDocument(ctx, m.cacheKey)
	if err != nil {
		logger.Get().Warn().Err(err).Msg("Document cache read failed")
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var articles []models.Article
	if err := json.Unmarshal(data, &articles); err != nil {
		logger.Get().Warn().Err(err).Msg("Discarding malformed cached document")
		return nil, false
	}
	return articles, true
}

func (m *ArticleManager) storeDocument(ctx context.Context, articles []models.Article) {
	if m.cache == nil {
		return
	}

	data, err := json.Marshal(articles)
	if err != nil {
		return
	}
	if err := m.cache.SetDocument(ctx, m.cacheKey, data, m.cacheTTL); err != nil {
		logger.Get().Warn().Err(err).Msg("Document cache write failed")
	}
}

func makeExcerpt(content string) string {
	if len(content) <= excerptLength {
		return content
	}
	return content[:excerptLength] + "..."
}
