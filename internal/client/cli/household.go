package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/wghub/internal/client/models"
)

// argOrPrompt returns args[0] or asks for the value.
func (a *App) argOrPrompt(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return getSimpleText(a.reader, prompt, a.out)
}

func printHousehold(h *models.Household) {
	printlnFn(fmt.Sprintf("%s (invitation code: %s, %d members)", h.Name, h.InvitationCode, len(h.MemberIDs)))
}

func (a *App) Household(ctx context.Context) error {
	h, err := a.household.Current(ctx)
	if err != nil {
		return err
	}
	printHousehold(h)
	return nil
}

func (a *App) CreateHousehold(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Household name", a.out)
	if err != nil {
		return err
	}
	if name == "" {
		printlnFn("Name must not be empty")
		return nil
	}
	h, err := a.household.Create(ctx, name)
	if err != nil {
		return err
	}
	printHousehold(h)
	return nil
}

func (a *App) Join(ctx context.Context, args []string) error {
	code, err := a.argOrPrompt(args, "Invitation code")
	if err != nil {
		return err
	}
	h, err := a.household.Join(ctx, code)
	if err != nil {
		return err
	}
	printHousehold(h)
	return nil
}

func (a *App) Leave(ctx context.Context) error {
	if err := a.household.Leave(ctx); err != nil {
		return err
	}
	printlnFn("Left the household")
	return nil
}

func (a *App) Members(ctx context.Context) error {
	users, err := a.household.Members(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		marker := ""
		if u.ID == a.userID {
			marker = " (you)"
		}
		printlnFn(fmt.Sprintf("%s  %s%s", u.ID, u.DisplayName, marker))
	}
	return nil
}

func (a *App) RemoveMember(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, "User id to remove")
	if err != nil {
		return err
	}
	if id == a.userID {
		printlnFn("Use 'leave' to leave the household yourself")
		return nil
	}
	if err := a.household.RemoveMember(ctx, id); err != nil {
		return err
	}
	printlnFn("Removed", id)
	return nil
}

// scope returns the current household, which every shared record lives in.
func (a *App) scope(ctx context.Context) (*models.Household, error) {
	return a.household.Current(ctx)
}
