package content

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/openedu/learnhub/internal/models"
)

const postsPerPage = 5

// CommunityManager owns the community feed. Posts are memory-only: they are
// never written to the remote store and vanish on restart.
type CommunityManager struct {
	mu        sync.Mutex
	posts     []models.Post
	displayed int

	notices *NoticeBoard
	now     func() time.Time
}

func NewCommunityManager() *CommunityManager {
	return &CommunityManager{
		posts:     []models.Post{},
		displayed: postsPerPage,
		notices:   NewNoticeBoard(),
		now:       time.Now,
	}
}

// CreatePost validates and prepends a new post authored by the page visitor.
func (m *CommunityManager) CreatePost(input models.PostInput) (models.Post, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		m.notices.Push(NoticeError, "Please enter some content for your post")
		return models.Post{}, fmt.Errorf("post content is required")
	}

	post := models.Post{
		ID:        strconv.FormatInt(m.now().UnixMilli(), 10),
		Author:    "You",
		Avatar:    "ME",
		Content:   content,
		Image:     input.Image,
		Timestamp: m.now().UTC().Format(time.RFC3339),
	}

	m.mu.Lock()
	m.posts = append([]models.Post{post}, m.posts...)
	m.mu.Unlock()

	m.notices.Push(NoticeSuccess, "Post published successfully!")
	return post, nil
}

// ToggleLike flips the liked flag; the count never drops below zero.
func (m *CommunityManager) ToggleLike(id string) (models.Post, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.posts {
		if m.posts[i].ID == id {
			p := &m.posts[i]
			p.Liked = !p.Liked
			if p.Liked {
				p.Likes++
			} else {
				p.Likes--
				if p.Likes < 0 {
					p.Likes = 0
				}
			}
			return *p, true
		}
	}
	return models.Post{}, false
}

// ShareResult is the composed share payload for a post.
type ShareResult struct {
	Post models.Post `json:"post"`
	Text string      `json:"text"`
	URL  string      `json:"url"`
}

// Share increments the share counter and composes the share text. The caller
// hands the text to a native share capability or the clipboard.
func (m *CommunityManager) Share(id, pageURL string) (ShareResult, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.posts {
		if m.posts[i].ID == id {
			m.posts[i].Shares++
			p := m.posts[i]

			snippet := p.Content
			if len(snippet) > 100 {
				snippet = snippet[:100]
			}

			return ShareResult{
				Post: p,
				Text: fmt.Sprintf("Check out this community post: %q...", snippet),
				URL:  fmt.Sprintf("%s#post-%s", pageURL, p.ID),
			}, true
		}
	}
	return ShareResult{}, false
}

// List returns the visible window of the feed, newest first. The window
// starts at five posts and grows by five per LoadMore call.
func (m *CommunityManager) List() []models.Post {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := m.displayed
	if n > len(m.posts) {
		n = len(m.posts)
	}
	return append([]models.Post{}, m.posts[:n]...)
}

// LoadMore widens the visible window and reports whether more posts remain.
func (m *CommunityManager) LoadMore() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.displayed += postsPerPage
	return m.displayed < len(m.posts)
}

// Stats returns the sidebar counters. Member count is static copy; the
// online count is decorative noise in [50,100).
func (m *CommunityManager) Stats() models.CommunityStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	return models.CommunityStats{
		TotalMembers: "1,247",
		TotalPosts:   len(m.posts),
		OnlineNow:    rand.Intn(50) + 50,
	}
}

// Notices returns the live transient banners.
func (m *CommunityManager) Notices() []Notice {
	return m.notices.Active()
}
