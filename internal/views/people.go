package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/monocle-dev/taskhome/internal/models"
	"github.com/monocle-dev/taskhome/internal/nav"
	"github.com/monocle-dev/taskhome/internal/types"
	"github.com/slack-go/slack"
	"golang.org/x/sync/errgroup"
)

// people lists the directory in at most room blocks, one block per person.
func (b *Builder) people(ctx context.Context, tenantID, viewerID, query string, room int) []slack.Block {
	var (
		users  []models.User
		pinned = map[string]bool{}
		g      errgroup.Group
	)

	g.Go(func() error {
		rows, err := b.store.ListUsers(ctx, tenantID)
		users = listOrEmpty(b, "users", rows, err)
		return nil
	})

	g.Go(func() error {
		ids, err := b.store.ListFavoriteIDs(ctx, tenantID, viewerID)
		for _, id := range listOrEmpty(b, "favorites", ids, err) {
			pinned[id] = true
		}
		return nil
	})

	_ = g.Wait()

	blocks := []slack.Block{searchInput(query), header("👥 People")}

	matches := FilterPeople(users, query)
	if len(matches) == 0 {
		if query != "" {
			return append(blocks, placeholder(fmt.Sprintf("No people match \"%s\".", escape(query))))
		}
		return append(blocks, placeholder("No people in the directory yet."))
	}

	rows := make([][]slack.Block, 0, len(matches))
	for _, user := range matches {
		toggle := menuOption(types.ActionPinEmployee, nav.ButtonValue{TargetID: user.ID, Origin: nav.OriginPeople}.Encode(), "📌 Pin")
		if pinned[user.ID] {
			toggle = menuOption(types.ActionUnpinEmployee, nav.ButtonValue{TargetID: user.ID, Origin: nav.OriginPeople}.Encode(), "Unpin")
		}
		rows = append(rows, []slack.Block{personRow(user, toggle, menuOption(types.ActionViewPersonTasks, user.ID, "View Tasks"))})
	}

	return append(blocks, fitRows(rows, room-len(blocks), func(shown, total int) slack.Block {
		return placeholder(fmt.Sprintf("Showing %d of %d people. Refine your search to see the rest.", shown, total))
	})...)
}

// personRow is a person's line with their actions folded into one overflow
// menu, so each person costs a single block.
func personRow(user models.User, options ...*slack.OptionBlockObject) slack.Block {
	menu := slack.NewOverflowBlockElement(types.ActionPersonMenu, options...)
	return slack.NewSectionBlock(mrkdwn(personLine(user)), nil, slack.NewAccessory(menu))
}

func menuOption(actionID, value, label string) *slack.OptionBlockObject {
	return slack.NewOptionBlockObject(nav.MenuChoice{ActionID: actionID, Value: value}.Encode(), plain(label), nil)
}

// FilterPeople keeps the users whose name or email contains query, ignoring
// case. An empty query keeps everyone in their original order.
func FilterPeople(users []models.User, query string) []models.User {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return users
	}

	var matches []models.User
	for _, user := range users {
		if user.Name != "" && strings.Contains(strings.ToLower(user.Name), q) {
			matches = append(matches, user)
			continue
		}
		if user.Email != "" && strings.Contains(strings.ToLower(user.Email), q) {
			matches = append(matches, user)
		}
	}
	return matches
}

func personLine(user models.User) string {
	name := escape(user.Name)
	if name == "" {
		name = "<@" + user.ID + ">"
	}

	if user.Email == "" {
		return "*" + name + "*"
	}
	return fmt.Sprintf("*%s*\n%s", name, escape(user.Email))
}

func searchInput(query string) slack.Block {
	input := slack.NewPlainTextInputBlockElement(plain("Search by name or email"), types.ActionPeopleSearch)
	input.InitialValue = query
	input.DispatchActionConfig = &slack.DispatchActionConfig{
		TriggerActionsOn: []string{"on_enter_pressed"},
	}

	block := slack.NewInputBlock(types.BlockPeopleSearch, plain("🔍 Search"), nil, input)
	block.DispatchAction = true
	block.Optional = true
	return block
}

func (b *Builder) pinned(ctx context.Context, tenantID, viewerID string, room int) []slack.Block {
	blocks := []slack.Block{header("📌 Pinned")}

	ids, err := b.store.ListFavoriteIDs(ctx, tenantID, viewerID)
	ids = listOrEmpty(b, "favorites", ids, err)
	if len(ids) == 0 {
		return append(blocks, placeholder("You haven't pinned anyone yet."))
	}

	users, err := b.store.ListUsersByIDs(ctx, tenantID, ids)
	users = listOrEmpty(b, "pinned users", users, err)

	rows := make([][]slack.Block, 0, len(users))
	for _, user := range users {
		rows = append(rows, []slack.Block{personRow(user,
			menuOption(types.ActionUnpinEmployee, nav.ButtonValue{TargetID: user.ID, Origin: nav.OriginPinned}.Encode(), "Unpin"),
			menuOption(types.ActionViewPinnedTasks, user.ID, "View Tasks"),
		)})
	}

	return append(blocks, listBlocks(rows, room-len(blocks), "Pinned people are not in the directory yet.", "pinned people")...)
}
