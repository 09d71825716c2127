package telegram

import (
	"fmt"
	"math/rand"
	"strings"
)

const welcomeText = `Hi, I'm Kairos, a student-friendly productivity assistant.
I help you manage tasks, focus with Pomodoro, track habits, and stay on top of deadlines.

*Task commands:*
- /tasks [today|tomorrow|week|all] — View your tasks
- /add <task> — Add a new task
- /done <task> — Mark a task completed
- /delete <task> — Remove a task
- /status <task>, <Not started|In progress|Completed> — Update status
- /due <task>, <date> — Reschedule a task

*Pomodoro:*
- /pomodoro [task] — Start a 25-min focus session
- /pomodoro_break — Start a 5-min break
- /pomodoro_status — Check timer status
- /pomodoro_stop — Stop current session

*Reminders:*
- /reminder_enable — Daily reminders at 8:00 AM
- /reminder_disable — Turn off daily reminders

*Nudges:*
- /nudges_enable — Encouraging daily nudges at 6:00 PM
- /nudges_disable — Turn off nudges

*Habits:*
- /habit_add <name>
- /habit_log <name>
- /habit_list
- /habit_streak <name>

*Recommendations and analytics:*
- /recommend — Next best tasks
- /analytics — Your weekly focus summary

*Focus mode:*
- /music [1-5] — Focus music menu
- /motivate — A push when you need one

*Other:*
- /language <code> — Reply language
- /tts_on, /tts_off — Voice replies
- /import_schedule <pasted text> — Bulk-create tasks

You can also just talk to me. I'll figure out what you mean.`

type focusSong struct {
	name     string
	url      string
	duration string
}

var focusSongs = []focusSong{
	{"Lo-fi Hip Hop Radio - Beats to Study/Relax", "https://www.youtube.com/watch?v=jfKfPfyJRdk", "Live stream"},
	{"Peaceful Piano - Calm & Relaxing", "https://www.youtube.com/watch?v=5Q2Pc-e-8Qc", "3 hours"},
	{"Rain Sounds + Jazz Music", "https://www.youtube.com/watch?v=ATOPZqUfzUo", "10 hours"},
	{"Deep Focus - Ambient Sounds", "https://www.youtube.com/watch?v=sUwD3GRPJos", "2 hours"},
	{"Synthwave - Cyberpunk Vibes", "https://www.youtube.com/watch?v=4xDzrJKXOOY", "1 hour"},
}

// musicMenu renders the numbered focus music list.
func musicMenu() string {
	var b strings.Builder
	b.WriteString("*Focus music* - pick a vibe:\n\n")
	for i, s := range focusSongs {
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, s.name, s.duration)
	}
	b.WriteString("\nReply with /music <number> to get the link.")
	return b.String()
}

// musicChoice resolves a 1-based menu choice, empty string when out of range.
func musicChoice(choice int) string {
	if choice < 1 || choice > len(focusSongs) {
		return ""
	}
	s := focusSongs[choice-1]
	return fmt.Sprintf("%s\n%s", s.name, s.url)
}

// randomFocusLink picks a song for the focus_music intent.
func randomFocusLink() string {
	s := focusSongs[rand.Intn(len(focusSongs))]
	return fmt.Sprintf("Try this while you focus: %s\n%s", s.name, s.url)
}

var motivationQuotes = []string{
	"The secret of getting ahead is getting started. - Mark Twain",
	"It does not matter how slowly you go as long as you do not stop. - Confucius",
	"Focus on being productive instead of busy. - Tim Ferriss",
	"Don't watch the clock; do what it does. Keep going. - Sam Levenson",
	"You don't have to be great to start, but you have to start to be great. - Zig Ziglar",
	"Small daily improvements over time lead to stunning results. - Robin Sharma",
	"The expert in anything was once a beginner. - Helen Hayes",
	"Done is better than perfect. Progress over perfection, always.",
	"Fall seven times, stand up eight. - Japanese Proverb",
	"The future depends on what you do today. - Mahatma Gandhi",
}

func randomQuote() string {
	return motivationQuotes[rand.Intn(len(motivationQuotes))]
}

// greetings the bot answers directly without consulting the model.
var greetings = map[string]bool{
	"hi": true, "hello": true, "hey": true, "yo": true, "sup": true, "start": true,
}
