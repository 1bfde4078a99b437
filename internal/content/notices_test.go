package content

import (
	"testing"
	"time"
)

func TestNoticesExpireAfterFiveSeconds(t *testing.T) {
	board := NewNoticeBoard()
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	board.now = func() time.Time { return current }

	board.Push(NoticeError, "Failed to update like")
	board.Push(NoticeSuccess, "Article submitted successfully!")

	if got := board.Active(); len(got) != 2 {
		t.Fatalf("Active = %d notices, want 2", len(got))
	}

	current = current.Add(4 * time.Second)
	if got := board.Active(); len(got) != 2 {
		t.Errorf("Active = %d notices at 4s, want 2", len(got))
	}

	current = current.Add(2 * time.Second)
	if got := board.Active(); len(got) != 0 {
		t.Errorf("Active = %d notices at 6s, want 0", len(got))
	}
}

func TestNoticesMixedAges(t *testing.T) {
	board := NewNoticeBoard()
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	board.now = func() time.Time { return current }

	board.Push(NoticeError, "old")
	current = current.Add(4 * time.Second)
	board.Push(NoticeError, "new")
	current = current.Add(2 * time.Second)

	got := board.Active()
	if len(got) != 1 {
		t.Fatalf("Active = %d notices, want 1", len(got))
	}
	if got[0].Message != "new" {
		t.Errorf("surviving notice = %q, want new", got[0].Message)
	}
}
