package content

import (
	"sync"
	"time"
)

// noticeTTL matches the on-page banner lifetime.
const noticeTTL = 5 * time.Second

const (
	NoticeError   = "error"
	NoticeSuccess = "success"
)

// Notice is a transient banner entry. Notices expire on their own; there is
// no dismissal API.
type Notice struct {
	Level   string    `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// NoticeBoard collects transient notices and drops them after noticeTTL.
type NoticeBoard struct {
	mu      sync.Mutex
	entries []Notice
	now     func() time.Time
}

func NewNoticeBoard() *NoticeBoard {
	return &NoticeBoard{now: time.Now}
}

func (b *NoticeBoard) Push(level, message string) {
	b.mu.Lock()
	b.entries = append(b.entries, Notice{Level: level, Message: message, At: b.now()})
	b.mu.Unlock()
}

// Active returns notices younger than the banner lifetime and prunes the rest.
func (b *NoticeBoard) Active() []Notice {
	b.mu.Lock()
	defer b.mu.Unlock()

	cutoff := b.now().Add(-noticeTTL)
	live := b.entries[:0]
	for _, n := range b.entries {
		if n.At.After(cutoff) {
			live = append(live, n)
		}
	}
	b.entries = live

	out := make([]Notice, len(live))
	copy(out, live)
	return out
}
