package models

import "strings"

// Article categories accepted by the submit form.
const (
	CategoryTechnical = "technical"
	CategoryTutorial  = "tutorial"
	CategoryNews      = "news"
	CategoryResearch  = "research"
)

// Article is one entry of the remotely stored articles document.
// The remote store holds a serialized snapshot; during a session the
// in-memory copy is authoritative and is only pushed, never re-pulled.
type Article struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Category string `json:"category"`
	Content  string `json:"content"`
	Excerpt  string `json:"excerpt"`
	Date     string `json:"date"` // ISO-8601
	Likes    int    `json:"likes"`
	Liked    bool   `json:"liked"`
}

// ArticleInput is the submit form payload. Excerpt is optional and is
// derived from the content when empty.
type ArticleInput struct {
	Title    string `json:"title" validate:"required"`
	Author   string `json:"author" validate:"required"`
	Category string `json:"category" validate:"required,oneof=technical tutorial news research"`
	Content  string `json:"content" validate:"required"`
	Excerpt  string `json:"excerpt"`
}

// Matches reports whether the article matches a lowercased search term.
func (a Article) Matches(term string) bool {
	return strings.Contains(strings.ToLower(a.Title), term) ||
		strings.Contains(strings.ToLower(a.Author), term) ||
		strings.Contains(strings.ToLower(a.Content), term) ||
		strings.Contains(strings.ToLower(a.Category), term)
}
