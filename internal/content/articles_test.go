package content

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/openedu/learnhub/internal/cache"
	"github.com/openedu/learnhub/internal/models"
)

// fakeStore stands in for the bin client and counts traffic.
type fakeStore struct {
	configured   bool
	remote       []models.Article
	fetchCalls   int
	replaceCalls int
	lastWrite    []models.Article
	fetchErr     error
	replaceErr   error
}

func (f *fakeStore) IsConfigured() bool {
	return f.configured
}

func (f *fakeStore) FetchAll(ctx context.Context) ([]models.Article, error) {
	f.fetchCalls++
	if f.fetchErr != nil {
		return []models.Article{}, f.fetchErr
	}
	return append([]models.Article{}, f.remote...), nil
}

func (f *fakeStore) ReplaceAll(ctx context.Context, articles []models.Article) error {
	f.replaceCalls++
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.lastWrite = append([]models.Article{}, articles...)
	f.remote = f.lastWrite
	return nil
}

func sampleArticles() []models.Article {
	return []models.Article{
		{ID: "1", Title: "Intro to Bins", Author: "Ada", Category: "technical", Content: "remote documents", Likes: 2},
		{ID: "2", Title: "Community Tips", Author: "Grace", Category: "tutorial", Content: "be kind"},
		{ID: "3", Title: "Release Notes", Author: "Ada", Category: "news", Content: "shipping remote sync"},
	}
}

func newTestManager(t *testing.T, store *fakeStore) *ArticleManager {
	t.Helper()

	m := NewArticleManager(store, nil, "test", time.Minute)
	m.Load(context.Background())
	return m
}

func TestLoadUnconfiguredStartsEmptyWithoutNetwork(t *testing.T) {
	store := &fakeStore{configured: false, remote: sampleArticles()}
	m := newTestManager(t, store)

	if store.fetchCalls != 0 {
		t.Errorf("fetchCalls = %d, want 0 when unconfigured", store.fetchCalls)
	}
	if got := m.Visible(); len(got) != 0 {
		t.Errorf("Visible returned %d articles, want 0", len(got))
	}
	if m.Loading() {
		t.Error("loading flag still set after Load")
	}
}

func TestLoadClearsLoadingOnError(t *testing.T) {
	store := &fakeStore{configured: true, fetchErr: context.DeadlineExceeded}
	m := newTestManager(t, store)

	if m.Loading() {
		t.Error("loading flag still set after failed Load")
	}
	if got := m.Visible(); len(got) != 0 {
		t.Errorf("Visible returned %d articles after failed load, want 0", len(got))
	}
}

func TestLoadUsesCachedDocument(t *testing.T) {
	docCache := cache.NewMemoryCache()
	data, _ := json.Marshal(sampleArticles())
	if err := docCache.SetDocument(context.Background(), "test", data, time.Minute); err != nil {
		t.Fatalf("SetDocument failed: %v", err)
	}

	store := &fakeStore{configured: true, remote: sampleArticles()}
	m := NewArticleManager(store, docCache, "test", time.Minute)
	m.Load(context.Background())

	if store.fetchCalls != 0 {
		t.Errorf("fetchCalls = %d, want 0 with a warm cache", store.fetchCalls)
	}
	if got := m.Visible(); len(got) != 3 {
		t.Errorf("Visible returned %d articles, want 3", len(got))
	}
}

func TestFilter(t *testing.T) {
	store := &fakeStore{configured: true, remote: sampleArticles()}
	m := newTestManager(t, store)

	got := m.Filter("ada")
	if len(got) != 2 {
		t.Fatalf("Filter(ada) returned %d articles, want 2", len(got))
	}

	// Filtering is idempotent against the source list.
	again := m.Filter("ada")
	if len(again) != len(got) {
		t.Errorf("repeated Filter returned %d articles, want %d", len(again), len(got))
	}

	// Empty term restores the full list in original order.
	restored := m.Filter("")
	if len(restored) != 3 {
		t.Fatalf("Filter(\"\") returned %d articles, want 3", len(restored))
	}
	for i, want := range []string{"1", "2", "3"} {
		if restored[i].ID != want {
			t.Errorf("restored[%d].ID = %q, want %q", i, restored[i].ID, want)
		}
	}
}

func TestFilterMatchesAllFields(t *testing.T) {
	store := &fakeStore{configured: true, remote: sampleArticles()}
	m := newTestManager(t, store)

	tests := []struct {
		term string
		want int
	}{
		{"RELEASE", 1},  // title, case-insensitive
		{"grace", 1},    // author
		{"remote", 2},   // content
		{"tutorial", 1}, // category
		{"zzz", 0},
	}

	for _, tt := range tests {
		if got := m.Filter(tt.term); len(got) != tt.want {
			t.Errorf("Filter(%q) returned %d articles, want %d", tt.term, len(got), tt.want)
		}
	}
}

func TestSetCategoryWinsOverSearch(t *testing.T) {
	store := &fakeStore{configured: true, remote: sampleArticles()}
	m := newTestManager(t, store)

	m.Filter("ada")
	got := m.SetCategory("news")
	if len(got) != 1 || got[0].ID != "3" {
		t.Fatalf("SetCategory(news) after Filter = %v, want only article 3", got)
	}

	if got := m.SetCategory("all"); len(got) != 3 {
		t.Errorf("SetCategory(all) returned %d articles, want 3", len(got))
	}
}

func TestSubmitRequiresFields(t *testing.T) {
	store := &fakeStore{configured: true, remote: sampleArticles()}
	m := newTestManager(t, store)
	store.replaceCalls = 0

	_, err := m.Submit(context.Background(), models.ArticleInput{
		Title:    "",
		Author:   "Ada",
		Category: "news",
		Content:  "body",
	})
	if err == nil {
		t.Fatal("Submit accepted an empty title")
	}

	if len(m.Visible()) != 3 {
		t.Error("rejected submit mutated the list")
	}
	if store.replaceCalls != 0 {
		t.Errorf("replaceCalls = %d, want 0 for rejected submit", store.replaceCalls)
	}
}

func TestSubmitPrependsAndPushesWholeList(t *testing.T) {
	store := &fakeStore{configured: true, remote: sampleArticles()}
	m := newTestManager(t, store)

	article, err := m.Submit(context.Background(), models.ArticleInput{
		Title:    "Fresh",
		Author:   "Lin",
		Category: "research",
		Content:  "new findings",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if article.ID == "" {
		t.Error("submitted article has no id")
	}
	if article.Likes != 0 || article.Liked {
		t.Error("new article did not start unliked")
	}

	visible := m.Visible()
	if visible[0].Title != "Fresh" {
		t.Errorf("new article not prepended, first is %q", visible[0].Title)
	}

	if store.replaceCalls != 1 {
		t.Fatalf("replaceCalls = %d, want 1", store.replaceCalls)
	}
	if len(store.lastWrite) != 4 {
		t.Errorf("write transmitted %d articles, want the entire list of 4", len(store.lastWrite))
	}
}

func TestSubmitDerivesExcerpt(t *testing.T) {
	store := &fakeStore{configured: false}
	m := newTestManager(t, store)

	long := make([]byte, 200)
	for i := range long {
		long[i] = 'x'
	}

	article, err := m.Submit(context.Background(), models.ArticleInput{
		Title:    "T",
		Author:   "A",
		Category: "news",
		Content:  string(long),
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if len(article.Excerpt) != excerptLength+3 {
		t.Errorf("excerpt length = %d, want %d", len(article.Excerpt), excerptLength+3)
	}
	if article.Excerpt[excerptLength:] != "..." {
		t.Error("derived excerpt does not end with ellipsis")
	}
}

func TestToggleLikeAlternatesAndClamps(t *testing.T) {
	store := &fakeStore{configured: false}
	m := newTestManager(t, store)
	seed, err := m.Submit(context.Background(), models.ArticleInput{
		Title: "T", Author: "A", Category: "news", Content: "c",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	prevLiked := false
	for i := 0; i < 7; i++ {
		article, ok := m.ToggleLike(context.Background(), seed.ID)
		if !ok {
			t.Fatal("article disappeared")
		}
		if article.Liked == prevLiked {
			t.Fatalf("liked did not alternate on call %d", i+1)
		}
		if article.Likes < 0 {
			t.Fatalf("likes went negative: %d", article.Likes)
		}
		prevLiked = article.Liked
	}
}

func TestToggleLikeReadModifyWrite(t *testing.T) {
	store := &fakeStore{configured: true, remote: sampleArticles()}
	m := newTestManager(t, store)
	store.fetchCalls = 0

	article, ok := m.ToggleLike(context.Background(), "1")
	if !ok {
		t.Fatal("article not found")
	}
	if article.Likes != 3 || !article.Liked {
		t.Errorf("got likes=%d liked=%v, want 3/true", article.Likes, article.Liked)
	}

	if store.fetchCalls != 1 {
		t.Errorf("fetchCalls = %d, want 1 (read before write)", store.fetchCalls)
	}
	if store.replaceCalls != 1 {
		t.Errorf("replaceCalls = %d, want 1", store.replaceCalls)
	}

	for _, a := range store.lastWrite {
		if a.ID == "1" && (a.Likes != 3 || !a.Liked) {
			t.Errorf("remote record not patched: likes=%d liked=%v", a.Likes, a.Liked)
		}
	}
}

func TestToggleLikeUnknownID(t *testing.T) {
	store := &fakeStore{configured: true, remote: sampleArticles()}
	m := newTestManager(t, store)
	store.fetchCalls = 0

	if _, ok := m.ToggleLike(context.Background(), "missing"); ok {
		t.Error("ToggleLike found a nonexistent article")
	}
	if store.fetchCalls != 0 || store.replaceCalls != 0 {
		t.Error("unknown id still triggered network traffic")
	}
}

func TestRemoteFailureRecordsNotice(t *testing.T) {
	store := &fakeStore{configured: true, remote: sampleArticles()}
	m := newTestManager(t, store)
	store.replaceErr = context.DeadlineExceeded

	if _, ok := m.ToggleLike(context.Background(), "1"); !ok {
		t.Fatal("local toggle should succeed even when the push fails")
	}

	notices := m.Notices()
	if len(notices) == 0 {
		t.Fatal("no notice after failed remote write")
	}
	if notices[0].Level != NoticeError {
		t.Errorf("notice level = %q, want error", notices[0].Level)
	}
}

func TestDelete(t *testing.T) {
	store := &fakeStore{configured: true, remote: sampleArticles()}
	m := newTestManager(t, store)

	if !m.Delete(context.Background(), "2") {
		t.Fatal("Delete did not find article 2")
	}
	if _, ok := m.Get("2"); ok {
		t.Error("article 2 still present locally")
	}
	for _, a := range store.lastWrite {
		if a.ID == "2" {
			t.Error("article 2 still present in remote write")
		}
	}

	if m.Delete(context.Background(), "2") {
		t.Error("Delete succeeded twice for the same id")
	}
}

func TestRefreshDiscardsLocalDivergence(t *testing.T) {
	store := &fakeStore{configured: true, remote: sampleArticles()}
	m := newTestManager(t, store)

	if _, err := m.Submit(context.Background(), models.ArticleInput{
		Title: "Local", Author: "A", Category: "news", Content: "c",
	}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	store.remote = sampleArticles() // remote forgets the submit

	articles, err := m.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if len(articles) != 3 {
		t.Errorf("Refresh returned %d articles, want 3", len(articles))
	}
	if _, ok := m.Get("1"); !ok {
		t.Error("remote article missing after refresh")
	}
}

func TestPreviewDoesNotPersist(t *testing.T) {
	store := &fakeStore{configured: true, remote: sampleArticles()}
	m := newTestManager(t, store)
	store.replaceCalls = 0

	preview, err := m.Preview(models.ArticleInput{Title: "P", Author: "A", Content: "c"})
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if preview.Date != "Preview" {
		t.Errorf("Date = %q, want Preview", preview.Date)
	}

	if len(m.Visible()) != 3 {
		t.Error("Preview mutated the list")
	}
	if store.replaceCalls != 0 {
		t.Error("Preview triggered a remote write")
	}

	if _, err := m.Preview(models.ArticleInput{Title: "P"}); err == nil {
		t.Error("Preview accepted missing fields")
	}
}
