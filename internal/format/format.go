package format

import (
	"time"

	"github.com/monocle-dev/taskhome/internal/types"
	"github.com/slack-go/slack"
)

const (
	dateLayout     = "Jan 2, 2006"
	dateTimeLayout = "Jan 2, 2006 at 3:04 PM"
)

// Date renders a timestamp for a task line. Missing timestamps read "Unknown".
func Date(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "Unknown"
	}
	return t.UTC().Format(dateLayout)
}

func DateTime(t time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}
	return t.UTC().Format(dateTimeLayout)
}

// NavBar is the row of mode buttons at the top of the home tab.
func NavBar(active types.Mode) []slack.Block {
	button := func(actionID, label string, mode types.Mode) *slack.ButtonBlockElement {
		b := slack.NewButtonBlockElement(actionID, string(mode), slack.NewTextBlockObject(slack.PlainTextType, label, true, false))
		if mode == active {
			b = b.WithStyle(slack.StylePrimary)
		}
		return b
	}

	return []slack.Block{
		slack.NewActionBlock("nav",
			button(types.ActionNavMyTasks, "📋 My Tasks", types.ModeMyTasks),
			button(types.ActionNavPeople, "👥 People", types.ModePeople),
			button(types.ActionNavPinned, "📌 Pinned", types.ModePinned),
		),
		slack.NewDividerBlock(),
	}
}
