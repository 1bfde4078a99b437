package content

import (
	"strconv"
	"testing"

	"github.com/openedu/learnhub/internal/models"
)

func TestCreatePost(t *testing.T) {
	m := NewCommunityManager()

	post, err := m.CreatePost(models.PostInput{Content: "hello there"})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	if post.Author != "You" || post.Avatar != "ME" {
		t.Errorf("got author=%q avatar=%q, want You/ME", post.Author, post.Avatar)
	}
	if post.Likes != 0 || post.Comments != 0 || post.Shares != 0 {
		t.Error("new post counters not zeroed")
	}

	if list := m.List(); len(list) != 1 || list[0].ID != post.ID {
		t.Errorf("List = %v, want just the new post", list)
	}
}

func TestCreatePostRejectsEmptyContent(t *testing.T) {
	m := NewCommunityManager()

	if _, err := m.CreatePost(models.PostInput{Content: "   "}); err == nil {
		t.Error("CreatePost accepted blank content")
	}
	if len(m.List()) != 0 {
		t.Error("rejected post still landed in the feed")
	}
}

func TestPostLikeClamp(t *testing.T) {
	m := NewCommunityManager()
	post, err := m.CreatePost(models.PostInput{Content: "like me"})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	liked, _ := m.ToggleLike(post.ID)
	if liked.Likes != 1 || !liked.Liked {
		t.Errorf("after like: likes=%d liked=%v, want 1/true", liked.Likes, liked.Liked)
	}

	unliked, _ := m.ToggleLike(post.ID)
	if unliked.Likes != 0 || unliked.Liked {
		t.Errorf("after unlike: likes=%d liked=%v, want 0/false", unliked.Likes, unliked.Liked)
	}

	// A fresh unlike can never drive the count negative.
	again, _ := m.ToggleLike(post.ID)
	final, _ := m.ToggleLike(post.ID)
	if again.Likes != 1 || final.Likes != 0 {
		t.Errorf("clamp violated: %d then %d", again.Likes, final.Likes)
	}

	if _, ok := m.ToggleLike("missing"); ok {
		t.Error("ToggleLike found a nonexistent post")
	}
}

func TestShareComposesTextAndCounts(t *testing.T) {
	m := NewCommunityManager()
	post, err := m.CreatePost(models.PostInput{Content: "a post worth sharing"})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	result, ok := m.Share(post.ID, "https://example.com/community")
	if !ok {
		t.Fatal("Share did not find the post")
	}
	if result.Post.Shares != 1 {
		t.Errorf("Shares = %d, want 1", result.Post.Shares)
	}
	if result.Text == "" {
		t.Error("empty share text")
	}
	if want := "https://example.com/community#post-" + post.ID; result.URL != want {
		t.Errorf("URL = %q, want %q", result.URL, want)
	}

	if _, ok := m.Share("missing", "u"); ok {
		t.Error("Share found a nonexistent post")
	}
}

func TestListWindowGrowsByFive(t *testing.T) {
	m := NewCommunityManager()
	for i := 0; i < 12; i++ {
		if _, err := m.CreatePost(models.PostInput{Content: "post " + strconv.Itoa(i)}); err != nil {
			t.Fatalf("CreatePost failed: %v", err)
		}
	}

	if got := m.List(); len(got) != 5 {
		t.Fatalf("initial window = %d posts, want 5", len(got))
	}

	if !m.LoadMore() {
		t.Error("LoadMore reported no more posts with 12 in the feed")
	}
	if got := m.List(); len(got) != 10 {
		t.Errorf("window after LoadMore = %d posts, want 10", len(got))
	}

	if m.LoadMore() {
		t.Error("LoadMore reported more posts after the window covered all 12")
	}
	if got := m.List(); len(got) != 12 {
		t.Errorf("final window = %d posts, want 12", len(got))
	}
}

func TestListNewestFirst(t *testing.T) {
	m := NewCommunityManager()
	first, _ := m.CreatePost(models.PostInput{Content: "first"})
	second, _ := m.CreatePost(models.PostInput{Content: "second"})

	list := m.List()
	if list[0].ID != second.ID || list[1].ID != first.ID {
		t.Error("feed is not newest first")
	}
}

func TestStats(t *testing.T) {
	m := NewCommunityManager()
	m.CreatePost(models.PostInput{Content: "one"})
	m.CreatePost(models.PostInput{Content: "two"})

	stats := m.Stats()
	if stats.TotalPosts != 2 {
		t.Errorf("TotalPosts = %d, want 2", stats.TotalPosts)
	}
	if stats.OnlineNow < 50 || stats.OnlineNow >= 100 {
		t.Errorf("OnlineNow = %d, want [50,100)", stats.OnlineNow)
	}
	if stats.TotalMembers == "" {
		t.Error("TotalMembers is empty")
	}
}
