package quiz

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/openedu/learnhub/internal/models"
)

// Bank holds the static question bank, keyed by difficulty. It is loaded
// once at startup and treated as read-only.
type Bank struct {
	levels map[string]models.QuizLevel
}

// LevelSummary is the difficulty card shown on the selection screen.
type LevelSummary struct {
	Difficulty     string `json:"difficulty"`
	Title          string `json:"title"`
	QuestionsCount int    `json:"questions_count"`
	TimeLimit      int    `json:"time_limit"`
}

// LoadBank reads and validates the quiz document. Malformed data blocks the
// quiz feature from initializing; nothing else depends on it.
func LoadBank(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read quiz data: %w", err)
	}
	return ParseBank(data)
}

// ParseBank validates a raw quiz document.
func ParseBank(data []byte) (*Bank, error) {
	var doc models.QuizBank
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse quiz data: %w", err)
	}

	v := validator.New()
	if err := v.Struct(doc); err != nil {
		return nil, fmt.Errorf("invalid quiz data: %w", err)
	}

	levels := make(map[string]models.QuizLevel, len(doc.QuizLevels))
	for difficulty, level := range doc.QuizLevels {
		// The advertised count drifts in hand-edited data; trust the list.
		level.QuestionsCount = len(level.Questions)
		levels[difficulty] = level
	}

	return &Bank{levels: levels}, nil
}

// EmptyBank returns a bank with no levels. Used when the quiz document is
// missing or malformed so the rest of the site keeps working.
func EmptyBank() *Bank {
	return &Bank{levels: map[string]models.QuizLevel{}}
}

// Level returns the tier for a difficulty.
func (b *Bank) Level(difficulty string) (models.QuizLevel, bool) {
	level, ok := b.levels[difficulty]
	return level, ok
}

// Levels lists the available tiers in a stable order.
func (b *Bank) Levels() []LevelSummary {
	out := make([]LevelSummary, 0, len(b.levels))
	for difficulty, level := range b.levels {
		out = append(out, LevelSummary{
			Difficulty:     difficulty,
			Title:          level.Title,
			QuestionsCount: level.QuestionsCount,
			TimeLimit:      level.TimeLimit,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return difficultyRank(out[i].Difficulty) < difficultyRank(out[j].Difficulty)
	})
	return out
}

func difficultyRank(d string) int {
	switch d {
	case "easy":
		return 0
	case "medium":
		return 1
	case "hard":
		return 2
	}
	return 3
}
