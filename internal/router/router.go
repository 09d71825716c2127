// Package router maps free-form chat messages onto a closed set of bot
// actions using the language model. It is deliberately conservative: any
// parse or validation failure resolves to ActionNone so the message falls
// through to the normal chat path.
package router

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"kairos/internal/model"
	"kairos/internal/task/repository"
	"kairos/pkg/gemini"
	"kairos/pkg/log"
)

// Intent names the router can return. Anything else is treated as none.
const (
	ActionNone             = "none"
	ActionAddTask          = "add_task"
	ActionMarkDone         = "mark_done"
	ActionUpdateStatus     = "update_status"
	ActionStartPomodoro    = "start_pomodoro"
	ActionStopPomodoro     = "stop_pomodoro"
	ActionHabitAdd         = "habit_add"
	ActionHabitLog         = "habit_log"
	ActionEnableReminders  = "enable_reminders"
	ActionDisableReminders = "disable_reminders"
	ActionEnableNudges     = "enable_nudges"
	ActionDisableNudges    = "disable_nudges"
	ActionFocusMusic       = "focus_music"
)

const routeTemperature = 0.1

// Action is the router's structured verdict on one message.
type Action struct {
	Intent   string `json:"action"`
	Task     string `json:"task,omitempty"`
	Status   string `json:"status,omitempty"`
	Due      string `json:"due,omitempty"`
	Priority string `json:"priority,omitempty"`
	Habit    string `json:"habit,omitempty"`
}

// None reports whether the action carries no work.
func (a Action) None() bool {
	return a.Intent == ActionNone
}

// Router asks the model which action, if any, a message names.
type Router struct {
	l     log.Logger
	llm   gemini.IGemini
	tasks repository.TaskRepository
}

// New creates a router.
func New(l log.Logger, llm gemini.IGemini, tasks repository.TaskRepository) *Router {
	return &Router{l: l, llm: llm, tasks: tasks}
}

// Route classifies the message. It never returns an error for model or
// parse failures; those resolve to the none action.
func (r *Router) Route(ctx context.Context, text string) Action {
	prompt := r.buildPrompt(ctx, text)

	raw, err := r.llm.GenerateText(ctx, prompt, routeTemperature)
	if err != nil {
		r.l.Warnf(ctx, "router.Route generate: %v", err)
		return Action{Intent: ActionNone}
	}

	action, ok := parseAction(raw)
	if !ok {
		r.l.Debugf(ctx, "router.Route unparseable verdict: %.80s", raw)
		return Action{Intent: ActionNone}
	}
	if !validate(action) {
		r.l.Debugf(ctx, "router.Route incomplete action %q", action.Intent)
		return Action{Intent: ActionNone}
	}
	return action
}

func (r *Router) buildPrompt(ctx context.Context, text string) string {
	var titles []string
	for _, t := range r.tasks.Query(ctx, repository.DefaultQueryLimit) {
		titles = append(titles, "- "+t.Name)
	}
	taskList := "(no tasks)"
	if len(titles) > 0 {
		taskList = strings.Join(titles, "\n")
	}

	return fmt.Sprintf(`You classify a user's message for a task assistant. Respond with ONE JSON object and nothing else.

Schema:
{"action": "<intent>", "task": "...", "status": "...", "due": "...", "priority": "...", "habit": "..."}

Intents and their required fields:
- add_task: task (optional: due as YYYY-MM-DD, priority as High/Medium/Low)
- mark_done: task (must match one of the user's tasks below)
- update_status: task, status (one of "Not started", "In progress", "Completed")
- start_pomodoro: no fields (optional: task)
- stop_pomodoro: no fields
- habit_add: habit
- habit_log: habit
- enable_reminders, disable_reminders, enable_nudges, disable_nudges, focus_music: no fields
- none: no fields

Rules:
- Only pick an intent when the message clearly asks for that action.
- When in doubt, answer {"action": "none"}.
- Questions, greetings and small talk are always none.
- Omit fields you are not sure about.

Examples:
- "remind me to buy milk tomorrow" -> {"action": "add_task", "task": "buy milk"}
- "I finished the essay draft" (task "Essay Draft" on the list) -> {"action": "mark_done", "task": "Essay Draft"}
- "I finished the essay" (no matching task on the list) -> {"action": "none"}
- "start a pomodoro" -> {"action": "start_pomodoro"}
- "what should I do today?" -> {"action": "none"}
- "log my reading habit" -> {"action": "habit_log", "habit": "reading"}
- "how are you?" -> {"action": "none"}

User's tasks:
%s

Message: %q`, taskList, text)
}

// parseAction pulls the first JSON object out of the model reply. Models
// sometimes wrap the object in prose or code fences.
func parseAction(raw string) (Action, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return Action{}, false
	}

	var action Action
	if err := json.Unmarshal([]byte(raw[start:end+1]), &action); err != nil {
		return Action{}, false
	}
	action.Intent = strings.ToLower(strings.TrimSpace(action.Intent))
	action.Task = strings.TrimSpace(action.Task)
	action.Status = strings.TrimSpace(action.Status)
	action.Habit = strings.TrimSpace(action.Habit)
	action.Due = strings.TrimSpace(action.Due)
	action.Priority = strings.TrimSpace(action.Priority)
	return action, true
}

// validate rejects actions missing their required fields or naming an
// unknown intent.
func validate(a Action) bool {
	switch a.Intent {
	case ActionAddTask, ActionMarkDone:
		return a.Task != ""
	case ActionUpdateStatus:
		if a.Task == "" {
			return false
		}
		_, ok := model.NormalizeStatus(a.Status)
		return ok
	case ActionHabitAdd, ActionHabitLog:
		return a.Habit != ""
	case ActionStartPomodoro, ActionStopPomodoro,
		ActionEnableReminders, ActionDisableReminders,
		ActionEnableNudges, ActionDisableNudges,
		ActionFocusMusic, ActionNone:
		return true
	default:
		return false
	}
}
