package webchat

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"kairos/internal/view"
	pkgResponse "kairos/pkg/response"
)

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" binding:"required"`
}

type chatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
}

const chatHelp = "Try one of these:\n" +
	"- add task write essay due 2026-11-15 high\n" +
	"- show tasks\n" +
	"- weekly summary"

// HandleChat is the Gin handler for POST /chat. It understands a small fixed
// command set and falls back to the model for everything else.
func (h *handler) HandleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		pkgResponse.Error(c, err)
		return
	}

	sessionID := req.SessionID
	sess, ok := h.sessions.Get(sessionID)
	if !ok {
		sessionID = uuid.NewString()
		sess = &session{}
		h.sessions.Add(sessionID, sess)
	}

	reply := h.respond(c, strings.TrimSpace(req.Message), sess.snapshot())
	sess.record(req.Message, reply)

	pkgResponse.OK(c, chatResponse{SessionID: sessionID, Reply: reply})
}

func (h *handler) respond(c *gin.Context, message string, history []turn) string {
	ctx := c.Request.Context()
	lower := strings.ToLower(message)

	switch {
	case strings.HasPrefix(lower, "add task"):
		shorthand, ok := parseAdd(message)
		if !ok {
			return "Format: add task <title> due <YYYY-MM-DD> [high|medium|low]"
		}
		out, err := h.tasks.Add(ctx, shorthand)
		if err != nil {
			h.l.Errorf(ctx, "webchat handler: add task: %v", err)
			return "Could not add the task right now. Please try again."
		}
		return out

	case strings.Contains(lower, "show") && strings.Contains(lower, "task"):
		out, err := h.tasks.List(ctx, view.FilterNone, true)
		if err != nil {
			h.l.Errorf(ctx, "webchat handler: list tasks: %v", err)
			return "Could not fetch your tasks right now."
		}
		return out

	case strings.Contains(lower, "summary") || strings.Contains(lower, "week"):
		out, err := h.qa.Reply(ctx, "Summarize and prioritize my current tasks for the coming week.", "en")
		if err != nil {
			h.l.Errorf(ctx, "webchat handler: summary: %v", err)
			return "Could not build the summary right now."
		}
		return out

	default:
		out, err := h.qa.Reply(ctx, withHistory(history, message), "en")
		if err != nil {
			h.l.Warnf(ctx, "webchat handler: chat: %v", err)
			return chatHelp
		}
		return out
	}
}

// withHistory prefixes the message with the session transcript so the model
// can follow up on earlier turns.
func withHistory(history []turn, message string) string {
	if len(history) == 0 {
		return message
	}
	var b strings.Builder
	b.WriteString("Conversation so far:\n")
	for _, t := range history {
		fmt.Fprintf(&b, "%s: %s\n", t.Role, t.Content)
	}
	b.WriteString("\nLatest message: ")
	b.WriteString(message)
	return b.String()
}

// parseAdd converts "add task <title> due <date> [priority]" into the task
// shorthand grammar.
func parseAdd(message string) (string, bool) {
	body := strings.TrimSpace(message[len("add task"):])
	title, rest, found := strings.Cut(body, " due ")
	if !found {
		// "due" may directly follow the title without surrounding spaces
		// getting normalized; try the bare keyword.
		title, rest, found = strings.Cut(body, "due")
		if !found {
			return "", false
		}
	}
	title = strings.TrimSpace(title)
	fields := strings.Fields(rest)
	if title == "" || len(fields) == 0 {
		return "", false
	}

	shorthand := fmt.Sprintf("%s due:%s", title, fields[0])
	if len(fields) > 1 {
		switch strings.ToLower(fields[1]) {
		case "high", "medium", "low":
			shorthand += " [" + strings.ToLower(fields[1]) + "]"
		}
	}
	return shorthand, true
}
