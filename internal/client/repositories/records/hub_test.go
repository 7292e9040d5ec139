package records

import (
	"testing"

	"github.com/dmitrijs2005/wghub/internal/client/models"
	"github.com/stretchr/testify/require"
)

func TestHub_NotifyCoalesces(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe(models.FamilyTask)
	defer cancel()

	h.Notify(models.FamilyTask)
	h.Notify(models.FamilyTask)
	h.Notify(models.FamilyTask)

	require.Len(t, ch, 1)
	<-ch
	require.Empty(t, ch)
}

func TestHub_NotifyOnlyTargetsFamily(t *testing.T) {
	h := NewHub()
	tasks, cancelTasks := h.Subscribe(models.FamilyTask)
	defer cancelTasks()
	users, cancelUsers := h.Subscribe(models.FamilyUser)
	defer cancelUsers()

	h.Notify(models.FamilyUser)

	require.Empty(t, tasks)
	require.Len(t, users, 1)
}

func TestHub_NotifyAll(t *testing.T) {
	h := NewHub()
	tasks, cancelTasks := h.Subscribe(models.FamilyTask)
	defer cancelTasks()
	users, cancelUsers := h.Subscribe(models.FamilyUser)
	defer cancelUsers()

	h.NotifyAll()

	require.Len(t, tasks, 1)
	require.Len(t, users, 1)
}

func TestHub_CancelStopsSignals(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe(models.FamilyTask)
	cancel()
	cancel()

	h.Notify(models.FamilyTask)
	require.Empty(t, ch)
}
