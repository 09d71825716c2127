// Package webchat is the prototype browser chat front end: a stateless JSON
// endpoint with short-lived in-memory sessions.
package webchat

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2/expirable"

	"kairos/internal/qa"
	"kairos/internal/task"
	pkgLog "kairos/pkg/log"
)

// Session cache bounds. Sessions are a convenience, not state of record;
// losing one only resets the conversation transcript.
const (
	maxSessions = 512
	sessionTTL  = 30 * time.Minute
	maxHistory  = 20
)

// Handler is the interface for the web chat delivery handler.
type Handler interface {
	HandleChat(c *gin.Context)
}

// session holds one browser conversation. The LRU guards its own map, but
// concurrent requests can share a session value, so the history needs its
// own lock.
type session struct {
	mu      sync.Mutex
	history []turn
}

// snapshot copies the transcript for use outside the lock.
func (s *session) snapshot() []turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]turn(nil), s.history...)
}

// record appends a user/assistant exchange, keeping the most recent turns.
func (s *session) record(user, assistant string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, turn{Role: "user", Content: user}, turn{Role: "assistant", Content: assistant})
	if len(s.history) > maxHistory {
		s.history = s.history[len(s.history)-maxHistory:]
	}
}

type turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type handler struct {
	l        pkgLog.Logger
	tasks    task.UseCase
	qa       *qa.Responder
	sessions *lru.LRU[string, *session]
}

// New creates a new web chat delivery handler.
func New(l pkgLog.Logger, tasks task.UseCase, responder *qa.Responder) Handler {
	return &handler{
		l:        l,
		tasks:    tasks,
		qa:       responder,
		sessions: lru.NewLRU[string, *session](maxSessions, nil, sessionTTL),
	}
}
