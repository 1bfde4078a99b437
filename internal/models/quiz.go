package models

// Question is a single multiple-choice entry of a quiz level. CorrectAnswer
// indexes into Options.
type Question struct {
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"len=4,dive,required"`
	CorrectAnswer int      `json:"correctAnswer" validate:"min=0,max=3"`
}

// QuizLevel is one difficulty tier of the static question bank, including
// the reading material shown before the quiz starts.
type QuizLevel struct {
	Title           string     `json:"title" validate:"required"`
	ReadingMaterial string     `json:"readingMaterial"`
	TimeLimit       int        `json:"timeLimit" validate:"min=1"` // seconds
	QuestionsCount  int        `json:"questionsCount"`
	Questions       []Question `json:"questions" validate:"min=1,dive"`
}

// QuizBank is the on-disk quiz document, keyed by difficulty.
type QuizBank struct {
	QuizLevels map[string]QuizLevel `json:"quizLevels" validate:"min=1,dive"`
}
