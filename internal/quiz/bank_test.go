package quiz

import (
	"path/filepath"
	"testing"
)

func TestLoadBank(t *testing.T) {
	bank, err := LoadBank(filepath.Join("testdata", "quiz.json"))
	if err != nil {
		t.Fatalf("LoadBank failed: %v", err)
	}

	levels := bank.Levels()
	if len(levels) != 2 {
		t.Fatalf("got %d levels, want 2", len(levels))
	}

	// Stable order: easy before medium.
	if levels[0].Difficulty != "easy" || levels[1].Difficulty != "medium" {
		t.Errorf("unexpected level order: %v, %v", levels[0].Difficulty, levels[1].Difficulty)
	}

	level, ok := bank.Level("easy")
	if !ok {
		t.Fatal("easy level missing")
	}
	if level.Title != "Basics" {
		t.Errorf("Title = %q, want Basics", level.Title)
	}
	if level.TimeLimit != 120 {
		t.Errorf("TimeLimit = %d, want 120", level.TimeLimit)
	}
	// Advertised count in the file is wrong on purpose; the list wins.
	if level.QuestionsCount != 2 {
		t.Errorf("QuestionsCount = %d, want 2", level.QuestionsCount)
	}
}

func TestLoadBankMissingFile(t *testing.T) {
	if _, err := LoadBank(filepath.Join("testdata", "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParseBankRejectsBadData(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed json", `{"quizLevels": `},
		{"no levels", `{"quizLevels": {}}`},
		{"three options", `{"quizLevels": {"easy": {"title": "T", "timeLimit": 60,
			"questions": [{"question": "q", "options": ["a", "b", "c"], "correctAnswer": 0}]}}}`},
		{"answer out of range", `{"quizLevels": {"easy": {"title": "T", "timeLimit": 60,
			"questions": [{"question": "q", "options": ["a", "b", "c", "d"], "correctAnswer": 4}]}}}`},
		{"no questions", `{"quizLevels": {"easy": {"title": "T", "timeLimit": 60, "questions": []}}}`},
		{"zero time limit", `{"quizLevels": {"easy": {"title": "T", "timeLimit": 0,
			"questions": [{"question": "q", "options": ["a", "b", "c", "d"], "correctAnswer": 0}]}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseBank([]byte(tt.data)); err == nil {
				t.Errorf("ParseBank accepted %s", tt.name)
			}
		})
	}
}

func TestEmptyBank(t *testing.T) {
	bank := EmptyBank()
	if levels := bank.Levels(); len(levels) != 0 {
		t.Errorf("EmptyBank has %d levels, want 0", len(levels))
	}
	if _, ok := bank.Level("easy"); ok {
		t.Error("EmptyBank returned a level")
	}
}
