package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/wghub/internal/client/models"
)

func formatEntry(e models.CalendarEntry) string {
	return fmt.Sprintf("%s  %s - %s  %s", e.ID, e.Start.Format(dateTimeLayout), e.End.Format(dateTimeLayout), e.Title)
}

func formatAbsence(ab models.Absence) string {
	s := fmt.Sprintf("%s  %s  %s - %s", ab.ID, ab.UserID, ab.Start.Format(dateLayout), ab.End.Format(dateLayout))
	if ab.Note != "" {
		s += "  " + ab.Note
	}
	return s
}

func (a *App) Entries(ctx context.Context) error {
	h, err := a.scope(ctx)
	if err != nil {
		return err
	}
	entries, err := a.entries.List(ctx, h.ID)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		printlnFn("No calendar entries")
	}
	for _, e := range entries {
		printlnFn(formatEntry(e))
	}
	return nil
}

// AddEntry creates a calendar entry shared with the whole household.
func (a *App) AddEntry(ctx context.Context) error {
	h, err := a.scope(ctx)
	if err != nil {
		return err
	}

	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	start, err := GetTime(a.reader, "Start", dateTimeLayout, false, a.out)
	if err != nil {
		return err
	}
	end, err := GetTime(a.reader, "End", dateTimeLayout, false, a.out)
	if err != nil {
		return err
	}
	if end.Before(start) {
		printlnFn("End must not be before start")
		return nil
	}

	created, err := a.entries.Create(ctx, models.CalendarEntry{
		ID:            a.newID(),
		HouseholdID:   h.ID,
		Title:         title,
		Start:         start,
		End:           end,
		CreatedBy:     a.userID,
		AffectedUsers: append([]string(nil), h.MemberIDs...),
	})
	if err != nil {
		return err
	}
	printlnFn(formatEntry(created))
	return nil
}

func (a *App) DelEntry(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, "Entry id")
	if err != nil {
		return err
	}
	if err := a.entries.Delete(ctx, id); err != nil {
		return err
	}
	printlnFn("Deleted", id)
	return nil
}

func (a *App) Absences(ctx context.Context) error {
	h, err := a.scope(ctx)
	if err != nil {
		return err
	}
	list, err := a.absences.List(ctx, h.ID)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		printlnFn("No absences")
	}
	for _, ab := range list {
		printlnFn(formatAbsence(ab))
	}
	return nil
}

// AddAbsence records an absence of the current user, visible to the household.
func (a *App) AddAbsence(ctx context.Context) error {
	h, err := a.scope(ctx)
	if err != nil {
		return err
	}

	from, err := GetTime(a.reader, "From", dateLayout, false, a.out)
	if err != nil {
		return err
	}
	to, err := GetTime(a.reader, "To", dateLayout, false, a.out)
	if err != nil {
		return err
	}
	if to.Before(from) {
		printlnFn("End must not be before start")
		return nil
	}
	note, err := getSimpleText(a.reader, "Note (optional)", a.out)
	if err != nil {
		return err
	}

	created, err := a.absences.Create(ctx, models.Absence{
		ID:            a.newID(),
		HouseholdID:   h.ID,
		UserID:        a.userID,
		Start:         from,
		End:           to,
		Note:          note,
		AffectedUsers: append([]string(nil), h.MemberIDs...),
	})
	if err != nil {
		return err
	}
	printlnFn(formatAbsence(created))
	return nil
}

func (a *App) DelAbsence(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, "Absence id")
	if err != nil {
		return err
	}
	if err := a.absences.Delete(ctx, id); err != nil {
		return err
	}
	printlnFn("Deleted", id)
	return nil
}
