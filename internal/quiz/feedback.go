package quiz

import (
	"fmt"
	"strings"
	"time"
)

// feedbackTier maps a minimum percentage to the result copy. Thresholds and
// wording are data, not logic; adjust the table, not the lookup.
type feedbackTier struct {
	Min      int
	Feedback string
	Message  string
}

var feedbackTiers = []feedbackTier{
	{90, "Outstanding!", "You have mastered this level!"},
	{70, "Great Job!", "You have a solid understanding of the material."},
	{50, "Good Effort!", "You have a basic understanding but room for improvement."},
	{0, "Keep Learning!", "Review the material and try again."},
}

func feedbackFor(percentage int) (string, string) {
	for _, tier := range feedbackTiers {
		if percentage >= tier.Min {
			return tier.Feedback, tier.Message
		}
	}
	last := feedbackTiers[len(feedbackTiers)-1]
	return last.Feedback, last.Message
}

// ShareText composes the result summary handed to a native share capability
// or the clipboard.
func ShareText(r *Result) string {
	return fmt.Sprintf("I scored %d%% on the LearnHub %s level quiz! Test your knowledge at LearnHub.",
		r.Percentage, r.Difficulty)
}

// Certificate is the display-only completion preview. PDF generation is a
// collaborator's responsibility and is not implemented here.
type Certificate struct {
	Difficulty  string `json:"difficulty"`
	Score       string `json:"score"`
	CompletedAt string `json:"completed_at"`
}

// CertificateFor builds the preview payload for a finished session.
func CertificateFor(r *Result, completedAt time.Time) Certificate {
	difficulty := r.Difficulty
	if difficulty != "" {
		difficulty = strings.ToUpper(difficulty[:1]) + difficulty[1:]
	}

	return Certificate{
		Difficulty:  difficulty,
		Score:       fmt.Sprintf("%d%%", r.Percentage),
		CompletedAt: completedAt.Format("January 2, 2006"),
	}
}
