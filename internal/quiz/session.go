package quiz

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/openedu/learnhub/internal/models"
)

const unanswered = -1

// Session is one timed quiz attempt. It moves through exactly one lifecycle:
// started, answered/navigated, then finished once, either by explicit submit
// or by the countdown reaching zero.
type Session struct {
	ID         string
	Difficulty string
	Title      string

	mu        sync.Mutex
	questions []models.Question
	current   int
	answers   []int // option index per question, unanswered sentinel
	startTime time.Time
	timeLimit time.Duration
	done      bool
	result    *Result

	stopc chan struct{}
	now   func() time.Time
}

// Result is the terminal scoring snapshot.
type Result struct {
	Difficulty string `json:"difficulty"`
	Correct    int    `json:"correct"`
	Incorrect  int    `json:"incorrect"`
	Skipped    int    `json:"skipped"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
	Feedback   string `json:"feedback"`
	Message    string `json:"message"`
	TimeTaken  int    `json:"time_taken"` // seconds
}

// QuestionView is the per-question render payload. The correct answer is
// deliberately absent.
type QuestionView struct {
	Index     int      `json:"index"`
	Total     int      `json:"total"`
	Question  string   `json:"question"`
	Options   []string `json:"options"`
	Selected  int      `json:"selected"` // -1 when unanswered
	Remaining int      `json:"remaining_seconds"`
	Last      bool     `json:"last"`
}

// Engine owns the bank and the live sessions.
type Engine struct {
	bank *Bank

	mu sync.Mutex
	// TODO: evict finished sessions after a retention window.
	sessions map[string]*Session

	now func() time.Time
}

func NewEngine(bank *Bank) *Engine {
	return &Engine{
		bank:     bank,
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Bank exposes the loaded question bank for the selection and reading
// material screens.
func (e *Engine) Bank() *Bank {
	return e.bank
}

// Start creates a session for a difficulty: the level's questions are copied
// and Fisher-Yates shuffled, answers reset, and the countdown started. The
// time limit comes from the level record.
func (e *Engine) Start(difficulty string) (*Session, error) {
	level, ok := e.bank.Level(difficulty)
	if !ok {
		return nil, fmt.Errorf("unknown difficulty %q", difficulty)
	}

	questions := make([]models.Question, len(level.Questions))
	copy(questions, level.Questions)
	rand.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})

	answers := make([]int, len(questions))
	for i := range answers {
		answers[i] = unanswered
	}

	s := &Session{
		ID:         uuid.NewString(),
		Difficulty: difficulty,
		Title:      level.Title,
		questions:  questions,
		answers:    answers,
		startTime:  e.now(),
		timeLimit:  time.Duration(level.TimeLimit) * time.Second,
		stopc:      make(chan struct{}),
		now:        e.now,
	}

	e.mu.Lock()
	e.sessions[s.ID] = s
	e.mu.Unlock()

	go s.runCountdown()

	return s, nil
}

// Get returns a live or finished session by id.
func (e *Engine) Get(id string) (*Session, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sessions[id]
	return s, ok
}

// Restart drops a session, returning the client to difficulty selection.
func (e *Engine) Restart(id string) {
	e.mu.Lock()
	s, ok := e.sessions[id]
	delete(e.sessions, id)
	e.mu.Unlock()

	if ok {
		s.mu.Lock()
		s.finishLocked() // stops the countdown if still running
		s.mu.Unlock()
	}
}

// runCountdown evaluates the deadline once per second. The check is
// elapsed-time based rather than decrement based, so it stays correct across
// scheduler jitter. It exits when the session finishes.
func (s *Session) runCountdown() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopc:
			return
		case <-ticker.C:
			if s.Tick() {
				return
			}
		}
	}
}

// Tick force-submits the session when the time limit has elapsed and reports
// whether the session is finished.
func (s *Session) Tick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return true
	}
	if s.now().Sub(s.startTime) >= s.timeLimit {
		s.finishLocked()
		return true
	}
	return false
}

// Remaining returns the whole seconds left on the countdown, never negative.
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remainingLocked()
}

func (s *Session) remainingLocked() int {
	left := s.timeLimit - s.now().Sub(s.startTime)
	if left < 0 {
		left = 0
	}
	return int(left / time.Second)
}

// SelectOption records the answer for the current question and keeps the
// session on it; navigation is separate.
func (s *Session) SelectOption(option int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return fmt.Errorf("session already finished")
	}
	if option < 0 || option >= len(s.questions[s.current].Options) {
		return fmt.Errorf("option index %d out of range", option)
	}

	s.answers[s.current] = option
	return nil
}

// Next advances to the following question, clamped at the end. On the last
// question it becomes the submit action and reports the session finished.
func (s *Session) Next() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return true
	}
	if s.current < len(s.questions)-1 {
		s.current++
		return false
	}

	s.finishLocked()
	return true
}

// Prev moves back one question, clamped at the start.
func (s *Session) Prev() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return
	}
	if s.current > 0 {
		s.current--
	}
}

// Current returns the render payload for the question under the cursor.
func (s *Session) Current() QuestionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := s.questions[s.current]
	options := make([]string, len(q.Options))
	copy(options, q.Options)

	return QuestionView{
		Index:     s.current,
		Total:     len(s.questions),
		Question:  q.Question,
		Options:   options,
		Selected:  s.answers[s.current],
		Remaining: s.remainingLocked(),
		Last:      s.current == len(s.questions)-1,
	}
}

// Submit ends the session and computes the result. Submitting an already
// finished session returns the existing result.
func (s *Session) Submit() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.finishLocked()
	return s.result
}

// Result returns the scoring snapshot once the session has finished.
func (s *Session) Result() (*Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.done {
		return nil, false
	}
	return s.result, true
}

// finishLocked terminates the session exactly once: it scores the answers
// and stops the countdown goroutine. Callers hold s.mu.
func (s *Session) finishLocked() {
	if s.done {
		return
	}
	s.done = true
	close(s.stopc)

	var correct, incorrect, skipped int
	for i, q := range s.questions {
		switch {
		case s.answers[i] == unanswered:
			skipped++
		case s.answers[i] == q.CorrectAnswer:
			correct++
		default:
			incorrect++
		}
	}

	total := len(s.questions)
	percentage := 0
	if total > 0 {
		percentage = int(math.Round(float64(correct) / float64(total) * 100))
	}

	feedback, message := feedbackFor(percentage)

	elapsed := s.now().Sub(s.startTime)
	if elapsed > s.timeLimit {
		elapsed = s.timeLimit
	}

	s.result = &Result{
		Difficulty: s.Difficulty,
		Correct:    correct,
		Incorrect:  incorrect,
		Skipped:    skipped,
		Total:      total,
		Percentage: percentage,
		Feedback:   feedback,
		Message:    message,
		TimeTaken:  int(elapsed / time.Second),
	}
}
