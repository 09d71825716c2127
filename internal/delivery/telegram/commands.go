package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"kairos/internal/view"
	pkgTelegram "kairos/pkg/telegram"
)

const addUsage = `To add a task, use:
/add <task description>

Examples:
- /add Study for exam
- /add Finish homework [high] due:tomorrow
- /add Review notes due:2026-01-15 project:Math

Options:
- Priority: [high], [medium], [low]
- Due date: due:today, due:tomorrow, due:nextweek, due:YYYY-MM-DD
- Project: project:ProjectName`

// dispatchCommand routes a slash command to its handler. Unknown commands get
// the help text.
func (h *handler) dispatchCommand(ctx context.Context, msg *pkgTelegram.Message, text string) error {
	cmd, args, _ := strings.Cut(text, " ")
	args = strings.TrimSpace(args)
	// Strip the @botname suffix groups append.
	if at := strings.Index(cmd, "@"); at > 0 {
		cmd = cmd[:at]
	}

	userID, chatID := msg.From.ID, msg.Chat.ID

	switch cmd {
	case "/start", "/help":
		return h.bot.SendMessageWithMode(chatID, welcomeText, "Markdown")

	case "/tasks":
		filter, showAll := taskFilterArgs(args)
		out, err := h.deps.Tasks.List(ctx, filter, showAll)
		if err != nil {
			return err
		}
		return h.reply(ctx, userID, chatID, out)

	case "/add":
		if args == "" {
			return h.bot.SendMessageWithMode(chatID, addUsage, "Markdown")
		}
		out, err := h.deps.Tasks.Add(ctx, args)
		if err != nil {
			return err
		}
		return h.reply(ctx, userID, chatID, out)

	case "/done":
		if args == "" {
			return h.bot.SendMessage(chatID, "Usage: /done <task name>")
		}
		out, err := h.deps.Tasks.Done(ctx, args)
		if err != nil {
			return err
		}
		return h.reply(ctx, userID, chatID, out)

	case "/delete":
		if args == "" {
			return h.bot.SendMessage(chatID, "Usage: /delete <task name>")
		}
		out, err := h.deps.Tasks.Remove(ctx, args)
		if err != nil {
			return err
		}
		return h.reply(ctx, userID, chatID, out)

	case "/status":
		name, status, ok := splitNameArg(args)
		if !ok {
			return h.bot.SendMessage(chatID, "Usage: /status <task name>, <Not started|In progress|Completed>")
		}
		out, err := h.deps.Tasks.UpdateStatus(ctx, name, status)
		if err != nil {
			return err
		}
		return h.reply(ctx, userID, chatID, out)

	case "/due":
		name, due, ok := splitNameArg(args)
		if !ok {
			return h.bot.SendMessage(chatID, "Usage: /due <task name>, <today|tomorrow|nextweek|YYYY-MM-DD>")
		}
		out, err := h.deps.Tasks.UpdateDueDate(ctx, name, due)
		if err != nil {
			return err
		}
		return h.reply(ctx, userID, chatID, out)

	case "/pomodoro", "/pomodoro_start":
		return h.reply(ctx, userID, chatID, h.deps.Pomodoro.StartWork(ctx, userID, chatID, args))

	case "/pomodoro_break":
		return h.reply(ctx, userID, chatID, h.deps.Pomodoro.StartBreak(ctx, userID, chatID))

	case "/pomodoro_status":
		return h.reply(ctx, userID, chatID, h.deps.Pomodoro.Status(userID))

	case "/pomodoro_stop":
		return h.reply(ctx, userID, chatID, h.deps.Pomodoro.Stop(ctx, userID))

	case "/habit_add":
		out, err := h.deps.Habits.Add(ctx, args)
		if err != nil {
			return err
		}
		return h.reply(ctx, userID, chatID, out)

	case "/habit_log":
		out, err := h.deps.Habits.Log(ctx, args)
		if err != nil {
			return err
		}
		return h.reply(ctx, userID, chatID, out)

	case "/habit_list":
		out, err := h.deps.Habits.List(ctx)
		if err != nil {
			return err
		}
		return h.reply(ctx, userID, chatID, out)

	case "/habit_streak":
		if args == "" {
			return h.bot.SendMessage(chatID, "Usage: /habit_streak <name>")
		}
		out, err := h.deps.Habits.Streak(ctx, args)
		if err != nil {
			return err
		}
		return h.reply(ctx, userID, chatID, out)

	case "/recommend":
		out, err := h.deps.Tasks.Recommend(ctx)
		if err != nil {
			return err
		}
		return h.reply(ctx, userID, chatID, out)

	case "/analytics":
		out, err := h.deps.Reporter.Format(ctx)
		if err != nil {
			return err
		}
		return h.reply(ctx, userID, chatID, out)

	case "/reminder":
		return h.bot.SendMessage(chatID, "Use /reminder_enable to receive reminders each morning at 8 AM.")

	case "/reminder_enable":
		return h.reply(ctx, userID, chatID, h.deps.Notify.EnableReminders(ctx, userID, chatID))

	case "/reminder_disable":
		return h.reply(ctx, userID, chatID, h.deps.Notify.DisableReminders(userID))

	case "/nudges_enable":
		return h.reply(ctx, userID, chatID, h.deps.Notify.EnableNudges(ctx, userID, chatID))

	case "/nudges_disable":
		return h.reply(ctx, userID, chatID, h.deps.Notify.DisableNudges(userID))

	case "/music":
		if n, err := strconv.Atoi(args); err == nil {
			if link := musicChoice(n); link != "" {
				return h.bot.SendMessage(chatID, link)
			}
			return h.bot.SendMessage(chatID, fmt.Sprintf("Pick a number between 1 and %d.", len(focusSongs)))
		}
		return h.bot.SendMessageWithMode(chatID, musicMenu(), "Markdown")

	case "/focus_on", "/focuson", "/focus":
		return h.bot.SendMessage(chatID, randomFocusLink())

	case "/motivate":
		return h.reply(ctx, userID, chatID, randomQuote())

	case "/language":
		if args == "" {
			return h.bot.SendMessage(chatID, fmt.Sprintf("Current language: %s. Usage: /language <code>, e.g. /language es", h.deps.Prefs.Language(userID)))
		}
		h.deps.Prefs.SetLanguage(userID, strings.ToLower(args))
		return h.reply(ctx, userID, chatID, "Language updated.")

	case "/tts_on":
		h.deps.Prefs.SetTTS(userID, true)
		return h.reply(ctx, userID, chatID, "Voice replies on.")

	case "/tts_off":
		h.deps.Prefs.SetTTS(userID, false)
		return h.bot.SendMessage(chatID, "Voice replies off.")

	case "/import_schedule":
		if args == "" {
			return h.bot.SendMessage(chatID, "Usage: /import_schedule <pasted text>, one task per line with a due: marker.")
		}
		out, err := h.deps.Tasks.ImportSchedule(ctx, args)
		if err != nil {
			return err
		}
		return h.reply(ctx, userID, chatID, out)

	default:
		return h.bot.SendMessageWithMode(chatID, welcomeText, "Markdown")
	}
}

// splitNameArg parses "<name>, <value>" command arguments. A missing comma
// falls back to treating the last word as the value.
func splitNameArg(args string) (name, value string, ok bool) {
	if args == "" {
		return "", "", false
	}
	if before, after, found := strings.Cut(args, ","); found {
		name, value = strings.TrimSpace(before), strings.TrimSpace(after)
		return name, value, name != "" && value != ""
	}
	// Legacy form without a comma: the status is the trailing phrase.
	lower := strings.ToLower(args)
	for _, opt := range []string{"not started", "in progress", "completed"} {
		if strings.HasSuffix(lower, opt) {
			name = strings.TrimSpace(args[:len(args)-len(opt)])
			return name, opt, name != ""
		}
	}
	fields := strings.Fields(args)
	if len(fields) < 2 {
		return "", "", false
	}
	return strings.Join(fields[:len(fields)-1], " "), fields[len(fields)-1], true
}

// taskFilterArgs maps /tasks arguments to a view filter.
func taskFilterArgs(args string) (view.DateFilter, bool) {
	switch strings.ToLower(args) {
	case "today":
		return view.FilterToday, false
	case "tomorrow":
		return view.FilterTomorrow, false
	case "week":
		return view.FilterWeek, false
	case "all":
		return view.FilterNone, true
	default:
		return view.FilterNone, false
	}
}
