package views

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/monocle-dev/taskhome/internal/models"
	"github.com/monocle-dev/taskhome/internal/nav"
	"github.com/monocle-dev/taskhome/internal/store"
	"github.com/monocle-dev/taskhome/internal/store/storetest"
	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

func newTestBuilder(t *testing.T) (*Builder, *store.Store) {
	t.Helper()
	s := storetest.Open(t)
	return NewBuilder(s, zap.NewNop()), s
}

// blockTexts flattens the visible text of headers, sections and context lines.
func blockTexts(blocks []slack.Block) []string {
	var out []string
	for _, block := range blocks {
		switch b := block.(type) {
		case *slack.HeaderBlock:
			out = append(out, b.Text.Text)
		case *slack.SectionBlock:
			if b.Text != nil {
				out = append(out, b.Text.Text)
			}
		case *slack.ContextBlock:
			for _, el := range b.ContextElements.Elements {
				if text, ok := el.(*slack.TextBlockObject); ok {
					out = append(out, text.Text)
				}
			}
		}
	}
	return out
}

func allButtons(blocks []slack.Block) []*slack.ButtonBlockElement {
	var out []*slack.ButtonBlockElement
	for _, block := range blocks {
		switch b := block.(type) {
		case *slack.ActionBlock:
			for _, el := range b.Elements.ElementSet {
				if button, ok := el.(*slack.ButtonBlockElement); ok {
					out = append(out, button)
				}
			}
		case *slack.SectionBlock:
			if b.Accessory != nil && b.Accessory.ButtonElement != nil {
				out = append(out, b.Accessory.ButtonElement)
			}
		}
	}
	return out
}

func buttonsFor(blocks []slack.Block, actionID string) []*slack.ButtonBlockElement {
	var out []*slack.ButtonBlockElement
	for _, button := range allButtons(blocks) {
		if button.ActionID == actionID {
			out = append(out, button)
		}
	}
	return out
}

// choicesFor returns the overflow menu choices standing for actionID.
func choicesFor(blocks []slack.Block, actionID string) []nav.MenuChoice {
	var out []nav.MenuChoice
	for _, block := range blocks {
		sec, ok := block.(*slack.SectionBlock)
		if !ok || sec.Accessory == nil || sec.Accessory.OverflowElement == nil {
			continue
		}
		for _, option := range sec.Accessory.OverflowElement.Options {
			if choice := nav.ParseMenuChoice(option.Value); choice.ActionID == actionID {
				out = append(out, choice)
			}
		}
	}
	return out
}

// between returns the texts after the header `from` and before the header `to`.
func between(texts []string, from, to string) []string {
	var out []string
	inside := false
	for _, text := range texts {
		switch {
		case text == from:
			inside = true
			continue
		case text == to:
			inside = false
		}
		if inside {
			out = append(out, text)
		}
	}
	return out
}

func containsText(texts []string, sub string) bool {
	for _, text := range texts {
		if strings.Contains(text, sub) {
			return true
		}
	}
	return false
}

// failingReader fails every listing query.
type failingReader struct {
	Reader
}

var errBoom = errors.New("boom")

func (failingReader) ListTasks(context.Context, string, string) ([]models.Task, error) {
	return nil, errBoom
}

func (failingReader) ListUpdatesByUser(context.Context, string, string) ([]models.Update, error) {
	return nil, errBoom
}

func (failingReader) ListUsers(context.Context, string) ([]models.User, error) {
	return nil, errBoom
}

func (failingReader) ListFavoriteIDs(context.Context, string, string) ([]string, error) {
	return nil, errBoom
}
