// Package notify holds the transient user-facing notices. A notice
// auto-dismisses after a fixed delay; the rendering surface polls
// Active for whatever is still live.
package notify

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/middleclass/localstore/internal/sched"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

const DefaultTTL = 3 * time.Second

type Notice struct {
	ID        string    `json:"id"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type Notifier struct {
	mu     sync.Mutex
	active map[string]Notice

	Sched *sched.Scheduler
	TTL   time.Duration
}

func New(s *sched.Scheduler, ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Notifier{
		active: make(map[string]Notice),
		Sched:  s,
		TTL:    ttl,
	}
}

func (n *Notifier) Push(level Level, message string) Notice {
	notice := Notice{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}

	n.mu.Lock()
	n.active[notice.ID] = notice
	n.mu.Unlock()

	n.Sched.After("notice:"+notice.ID, n.TTL, func() {
		n.Dismiss(notice.ID)
	})
	return notice
}

func (n *Notifier) Dismiss(id string) {
	n.mu.Lock()
	delete(n.active, id)
	n.mu.Unlock()
	n.Sched.Cancel("notice:" + id)
}

func (n *Notifier) Active() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]Notice, 0, len(n.active))
	for _, notice := range n.active {
		out = append(out, notice)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
