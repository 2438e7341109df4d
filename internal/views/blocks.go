package views

import (
	"fmt"
	"strings"

	"github.com/slack-go/slack"
)

const (
	// viewBlockLimit is the most blocks Slack accepts in a home tab or modal.
	viewBlockLimit = 100
	// headerTextLimit is the most characters a header block may carry.
	headerTextLimit = 150
	// sectionTextLimit is the most characters a section text may carry.
	sectionTextLimit = 3000
)

var mrkdwnEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func plain(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.PlainTextType, text, true, false)
}

func mrkdwn(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.MarkdownType, text, false, false)
}

// escape keeps user text from being read as a mention, link or entity.
func escape(text string) string {
	return mrkdwnEscaper.Replace(text)
}

func header(text string) slack.Block {
	return slack.NewHeaderBlock(plain(truncate(text, headerTextLimit)))
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-1]) + "…"
}

func section(text string) *slack.SectionBlock {
	return slack.NewSectionBlock(mrkdwn(text), nil, nil)
}

// placeholder is the single line rendered in place of an empty list.
func placeholder(text string) slack.Block {
	return slack.NewContextBlock("", mrkdwn("_"+text+"_"))
}

func button(actionID, value, label string) *slack.ButtonBlockElement {
	return slack.NewButtonBlockElement(actionID, value, plain(label))
}

// fitRows flattens rows into at most room blocks. Rows are never split; when
// they do not all fit, the last slot holds the notice for the rows left out.
func fitRows(rows [][]slack.Block, room int, notice func(shown, total int) slack.Block) []slack.Block {
	total := 0
	for _, row := range rows {
		total += len(row)
	}

	var blocks []slack.Block
	if total <= room {
		for _, row := range rows {
			blocks = append(blocks, row...)
		}
		return blocks
	}

	shown := 0
	for _, row := range rows {
		if len(blocks)+len(row) > room-1 {
			break
		}
		blocks = append(blocks, row...)
		shown++
	}
	return append(blocks, notice(shown, len(rows)))
}

// listBlocks renders rows under the budget, or the empty placeholder when
// there are none.
func listBlocks(rows [][]slack.Block, room int, empty, noun string) []slack.Block {
	if len(rows) == 0 {
		return []slack.Block{placeholder(empty)}
	}
	return fitRows(rows, room, func(shown, total int) slack.Block {
		return placeholder(fmt.Sprintf("Showing %d of %d %s.", shown, total, noun))
	})
}
