package models

// Post is a community feed entry. Posts live only in page memory and are
// never persisted to the remote store; a restart drops them.
type Post struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Avatar    string `json:"avatar"`
	Content   string `json:"content"`
	Image     string `json:"image,omitempty"` // data URI
	Likes     int    `json:"likes"`
	Comments  int    `json:"comments"`
	Shares    int    `json:"shares"`
	Timestamp string `json:"timestamp"` // ISO-8601
	Liked     bool   `json:"liked"`
}

// PostInput is the community post form payload.
type PostInput struct {
	Content string `json:"content" validate:"required"`
	Image   string `json:"image"`
}

// CommunityStats is the sidebar counter block on the community page.
type CommunityStats struct {
	TotalMembers string `json:"total_members"`
	TotalPosts   int    `json:"total_posts"`
	OnlineNow    int    `json:"online_now"`
}
