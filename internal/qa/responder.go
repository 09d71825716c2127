// Package qa answers free-form messages with the language model, grounded
// in the user's current task board.
package qa

import (
	"context"
	"fmt"
	"strings"

	"kairos/internal/model"
	"kairos/internal/task/repository"
	"kairos/pkg/gemini"
	"kairos/pkg/log"
)

const chatTemperature = 0.7

// Responder generates conversational replies.
type Responder struct {
	l     log.Logger
	llm   gemini.IGemini
	tasks repository.TaskRepository
}

// New creates a responder.
func New(l log.Logger, llm gemini.IGemini, tasks repository.TaskRepository) *Responder {
	return &Responder{l: l, llm: llm, tasks: tasks}
}

// Reply answers the message in the given language, with the task board as
// context.
func (r *Responder) Reply(ctx context.Context, text, language string) (string, error) {
	var lines []string
	for _, t := range r.tasks.Query(ctx, repository.DefaultQueryLimit) {
		line := fmt.Sprintf("- %s [%s, %s]", t.Name, t.Status, t.Priority)
		if t.DueDate != nil {
			line += ", due " + t.DueDate.Format("2006-01-02")
		}
		lines = append(lines, line)
	}
	board := "(no tasks)"
	if len(lines) > 0 {
		board = strings.Join(lines, "\n")
	}

	prompt := fmt.Sprintf(`You are a concise personal productivity assistant.

Rules:
- Reply in language code %q.
- Plain text only, no emojis, no markdown.
- Keep replies under four sentences.
- Use the task list below when the question touches the user's work.
- Never invent deadlines or tasks that are not on the list.

Current tasks:
%s

User: %s`, language, board, text)

	reply, err := r.llm.GenerateText(ctx, prompt, chatTemperature)
	if err != nil {
		r.l.Warnf(ctx, "qa.Responder.Reply: %v", err)
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

// Translate renders text into the target language. Passthrough for English.
func (r *Responder) Translate(ctx context.Context, text, language string) string {
	if language == "" || language == "en" {
		return text
	}
	prompt := fmt.Sprintf("Translate the following message into the language with code %q. Output only the translation.\n\n%s", language, text)
	out, err := r.llm.GenerateText(ctx, prompt, 0.2)
	if err != nil {
		r.l.Warnf(ctx, "qa.Responder.Translate: %v", err)
		return text
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return text
	}
	return out
}

// Motivate produces a short encouragement tied to the user's open work.
func (r *Responder) Motivate(ctx context.Context, language string) (string, error) {
	open := 0
	for _, t := range r.tasks.Query(ctx, repository.DefaultQueryLimit) {
		if t.Status != model.StatusCompleted {
			open++
		}
	}
	prompt := fmt.Sprintf(`Write one short motivational message (two sentences at most) for someone with %d open tasks. Reply in language code %q. Plain text, no emojis.`, open, language)
	reply, err := r.llm.GenerateText(ctx, prompt, chatTemperature)
	if err != nil {
		r.l.Warnf(ctx, "qa.Responder.Motivate: %v", err)
		return "", err
	}
	return strings.TrimSpace(reply), nil
}
