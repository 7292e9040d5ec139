package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/wghub/internal/client/models"
)

func formatTask(t models.Task) string {
	box := "[ ]"
	if t.Done {
		box = "[x]"
	}
	s := fmt.Sprintf("%s %s  %s", box, t.ID, t.Title)
	if t.Due != nil {
		s += "  due " + t.Due.Format(dateLayout)
	}
	return s
}

func (a *App) Tasks(ctx context.Context) error {
	h, err := a.scope(ctx)
	if err != nil {
		return err
	}
	tasks, err := a.tasks.List(ctx, h.ID)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		printlnFn("No tasks")
	}
	for _, t := range tasks {
		printlnFn(formatTask(t))
	}
	return nil
}

// AddTask creates a task assigned to the listed members, or to the current
// user when none are given.
func (a *App) AddTask(ctx context.Context) error {
	h, err := a.scope(ctx)
	if err != nil {
		return err
	}

	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	desc, err := GetMultiline(a.reader, "Description", a.out)
	if err != nil {
		return err
	}
	due, err := GetTime(a.reader, "Due date, empty for none", dateLayout, true, a.out)
	if err != nil {
		return err
	}
	assignees, err := getSimpleText(a.reader, "Assignees (user ids, comma separated, empty for yourself)", a.out)
	if err != nil {
		return err
	}

	t := models.Task{
		ID:            a.newID(),
		HouseholdID:   h.ID,
		Title:         title,
		Description:   desc,
		CreatedBy:     a.userID,
		AffectedUsers: splitList(assignees),
	}
	if !due.IsZero() {
		t.Due = &due
	}
	if len(t.AffectedUsers) == 0 {
		t.AffectedUsers = []string{a.userID}
	}

	created, err := a.tasks.Create(ctx, t)
	if err != nil {
		return err
	}
	printlnFn(formatTask(created))
	return nil
}

func (a *App) Done(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, "Task id")
	if err != nil {
		return err
	}
	t, err := a.tasks.Get(ctx, id)
	if err != nil {
		return err
	}
	t.Done = true
	updated, err := a.tasks.Update(ctx, t)
	if err != nil {
		return err
	}
	printlnFn(formatTask(updated))
	return nil
}

func (a *App) DelTask(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, "Task id")
	if err != nil {
		return err
	}
	if err := a.tasks.Delete(ctx, id); err != nil {
		return err
	}
	printlnFn("Deleted", id)
	return nil
}
