// Package parser implements the task shorthand grammar:
//
//	name [priority] due:token project:token
//
// Extraction order matters: priority is stripped first, then project, then
// due date; whatever text remains is the task name.
package parser

import (
	"regexp"
	"strings"
	"time"

	"kairos/internal/model"
	"kairos/pkg/dateparse"
)

// Draft is a parsed task before creation. An empty Name signals a
// validation failure requiring usage help.
type Draft struct {
	Name     string
	Priority model.Priority
	DueDate  *time.Time
	Project  string
}

// Parser parses the task shorthand grammar.
type Parser struct {
	dates *dateparse.Parser
	now   func() time.Time
}

// New creates a parser resolving relative due tokens with dates.
func New(dates *dateparse.Parser) *Parser {
	return &Parser{dates: dates, now: time.Now}
}

// SetNow overrides the clock for testing purposes.
func (p *Parser) SetNow(now func() time.Time) {
	p.now = now
}

var priorityTokens = map[string]model.Priority{
	"[high]":   model.PriorityHigh,
	"[medium]": model.PriorityMedium,
	"[low]":    model.PriorityLow,
}

// ParseTaskInput extracts task fields from shorthand text.
func (p *Parser) ParseTaskInput(text string) Draft {
	draft := Draft{Priority: model.PriorityMedium}
	remaining := strings.TrimSpace(text)

	// Priority: bracketed token, case-insensitive, first match wins.
	lower := strings.ToLower(remaining)
	for token, priority := range priorityTokens {
		if strings.Contains(lower, token) {
			draft.Priority = priority
			re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(token))
			remaining = strings.TrimSpace(re.ReplaceAllString(remaining, ""))
			break
		}
	}

	// Project: everything after "project:" to end of line.
	if idx := strings.Index(strings.ToLower(remaining), "project:"); idx >= 0 {
		draft.Project = strings.TrimSpace(remaining[idx+len("project:"):])
		remaining = strings.TrimSpace(remaining[:idx])
	}

	// Due date: the single token after "due:"; unparseable tokens leave the
	// due date unset without failing the parse.
	if idx := strings.Index(strings.ToLower(remaining), "due:"); idx >= 0 {
		after := strings.TrimSpace(remaining[idx+len("due:"):])
		remaining = strings.TrimSpace(remaining[:idx])
		token := after
		if fields := strings.Fields(after); len(fields) > 0 {
			token = fields[0]
		}
		if due, ok := p.dates.ParseDueToken(token, p.now()); ok {
			draft.DueDate = &due
		}
	}

	draft.Name = strings.TrimSpace(remaining)
	return draft
}

// ParseSchedule parses multi-line pasted schedule text into task drafts, one
// per line. Lines without a "due:" marker are skipped.
func (p *Parser) ParseSchedule(text string) []Draft {
	var drafts []Draft
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.Contains(strings.ToLower(line), "due:") {
			continue
		}
		draft := p.ParseTaskInput(line)
		if draft.Name == "" {
			continue
		}
		drafts = append(drafts, draft)
	}
	return drafts
}
