package telegram

import (
	"context"
	"strings"

	"kairos/internal/router"
	"kairos/internal/view"
	pkgTelegram "kairos/pkg/telegram"
)

// Viewing-intent vocabulary for the keyword fallback. A match only counts
// when none of the action verbs appear, so "add a task" is never hijacked
// into a listing.
var viewKeywords = []string{
	"task", "workload", "schedule", "what do i have", "what's due", "whats due", "what is due", "upcoming",
}

var actionVerbs = []string{
	"add", "create", "delete", "remove", "mark", "complete", "finish", "update", "start", "stop", "log",
}

// handleFreeText runs the natural-language pipeline: greetings, then the
// intent router, then the keyword task-list fallback, then open-ended chat.
func (h *handler) handleFreeText(ctx context.Context, msg *pkgTelegram.Message, text string) error {
	userID, chatID := msg.From.ID, msg.Chat.ID

	if greetings[strings.ToLower(text)] {
		return h.reply(ctx, userID, chatID, "Hi, I'm Kairos, your productivity assistant.\nHow can I help you today?")
	}

	action := h.deps.Router.Route(ctx, text)
	if !action.None() {
		done, err := h.dispatchAction(ctx, msg, action)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}

	if wantsTaskView(text) {
		filter, intro := inferDateFilter(text)
		out, err := h.deps.Tasks.List(ctx, filter, false)
		if err == nil {
			return h.reply(ctx, userID, chatID, intro+"\n\n"+out)
		}
		// A board fetch failure falls through to chat.
		h.l.Warnf(ctx, "telegram handler: task view fallback: %v", err)
	}

	answer, err := h.deps.QA.Reply(ctx, text, h.deps.Prefs.Language(userID))
	if err != nil {
		return h.bot.SendMessage(chatID, "I couldn't come up with an answer just now. Please try again.")
	}
	return h.bot.SendMessage(chatID, answer)
}

// dispatchAction executes a routed intent. done=false lets the caller fall
// through to the next stage instead of replying.
func (h *handler) dispatchAction(ctx context.Context, msg *pkgTelegram.Message, action router.Action) (bool, error) {
	userID, chatID := msg.From.ID, msg.Chat.ID

	send := func(out string, err error) (bool, error) {
		if err != nil {
			return true, err
		}
		return true, h.reply(ctx, userID, chatID, out)
	}

	switch action.Intent {
	case router.ActionAddTask:
		text := action.Task
		if action.Priority != "" {
			text += " [" + strings.ToLower(action.Priority) + "]"
		}
		if action.Due != "" {
			text += " due:" + action.Due
		}
		return send(h.deps.Tasks.Add(ctx, text))

	case router.ActionMarkDone:
		return send(h.deps.Tasks.Done(ctx, action.Task))

	case router.ActionUpdateStatus:
		return send(h.deps.Tasks.UpdateStatus(ctx, action.Task, action.Status))

	case router.ActionStartPomodoro:
		return send(h.deps.Pomodoro.StartWork(ctx, userID, chatID, action.Task), nil)

	case router.ActionStopPomodoro:
		return send(h.deps.Pomodoro.Stop(ctx, userID), nil)

	case router.ActionHabitAdd:
		return send(h.deps.Habits.Add(ctx, action.Habit))

	case router.ActionHabitLog:
		return send(h.deps.Habits.Log(ctx, action.Habit))

	case router.ActionEnableReminders:
		return send(h.deps.Notify.EnableReminders(ctx, userID, chatID), nil)

	case router.ActionDisableReminders:
		return send(h.deps.Notify.DisableReminders(userID), nil)

	case router.ActionEnableNudges:
		return send(h.deps.Notify.EnableNudges(ctx, userID, chatID), nil)

	case router.ActionDisableNudges:
		return send(h.deps.Notify.DisableNudges(userID), nil)

	case router.ActionFocusMusic:
		return true, h.bot.SendMessage(chatID, randomFocusLink())

	default:
		return false, nil
	}
}

func wantsTaskView(text string) bool {
	lower := strings.ToLower(text)
	for _, verb := range actionVerbs {
		for _, word := range strings.Fields(lower) {
			if strings.Trim(word, ".,!?") == verb {
				return false
			}
		}
	}
	for _, kw := range viewKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// inferDateFilter picks a date filter and intro line from the message wording.
func inferDateFilter(text string) (view.DateFilter, string) {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "today"):
		return view.FilterToday, "Here's what you have today:"
	case strings.Contains(lower, "tomorrow"):
		return view.FilterTomorrow, "Here's what you have tomorrow:"
	case strings.Contains(lower, "week"):
		return view.FilterWeek, "Here's your workload for the week:"
	case strings.Contains(lower, "workload"):
		return view.FilterWeek, "Here's your workload:"
	case strings.Contains(lower, "due") || strings.Contains(lower, "upcoming"):
		return view.FilterNone, "Here are your upcoming tasks:"
	default:
		return view.FilterNone, "Here are your current tasks:"
	}
}
