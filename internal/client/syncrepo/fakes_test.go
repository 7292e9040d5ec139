package syncrepo

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrijs2005/wghub/internal/client/models"
	"github.com/dmitrijs2005/wghub/internal/common"
)

// backend is an in-memory remote authority for tasks shared by every
// device in a test.
type backend struct {
	mu    sync.Mutex
	tasks map[string]models.Task
	next  int
	err   error
	log   *[]string
}

func newBackend(log *[]string) *backend {
	return &backend{tasks: map[string]models.Task{}, log: log}
}

func (b *backend) record(op string) {
	if b.log != nil {
		*b.log = append(*b.log, op)
	}
}

func (b *backend) Create(ctx context.Context, t models.Task) (models.Task, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("remote.create")
	if b.err != nil {
		return models.Task{}, b.err
	}
	b.next++
	t.ID = fmt.Sprintf("t%d", b.next)
	b.tasks[t.ID] = t
	return t, nil
}

func (b *backend) Update(ctx context.Context, t models.Task) (models.Task, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("remote.update")
	if b.err != nil {
		return models.Task{}, b.err
	}
	if _, ok := b.tasks[t.ID]; !ok {
		return models.Task{}, common.ErrNotFound
	}
	b.tasks[t.ID] = t
	return t, nil
}

func (b *backend) Get(ctx context.Context, id string) (models.Task, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("remote.get")
	if b.err != nil {
		return models.Task{}, b.err
	}
	t, ok := b.tasks[id]
	if !ok {
		return models.Task{}, common.ErrNotFound
	}
	return t, nil
}

func (b *backend) Delete(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("remote.delete")
	if b.err != nil {
		return b.err
	}
	delete(b.tasks, id)
	return nil
}

// memLocal is an in-memory cache that logs every mutation.
type memLocal struct {
	items map[string]models.Task
	err   error
	log   *[]string
}

func newMemLocal(log *[]string) *memLocal {
	return &memLocal{items: map[string]models.Task{}, log: log}
}

func (m *memLocal) record(op string) {
	if m.log != nil {
		*m.log = append(*m.log, op)
	}
}

func (m *memLocal) Upsert(ctx context.Context, t models.Task) error {
	m.record("local.upsert")
	if m.err != nil {
		return m.err
	}
	m.items[t.ID] = t
	return nil
}

func (m *memLocal) Delete(ctx context.Context, id string) error {
	m.record("local.delete")
	if m.err != nil {
		return m.err
	}
	delete(m.items, id)
	return nil
}

func (m *memLocal) GetByID(ctx context.Context, id string) (models.Task, error) {
	t, ok := m.items[id]
	if !ok {
		return models.Task{}, common.ErrNotFound
	}
	return t, nil
}

func (m *memLocal) ListByScope(ctx context.Context, scopeID string) ([]models.Task, error) {
	var out []models.Task
	for _, t := range m.items {
		if scopeID == "" || t.HouseholdID == scopeID {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b models.Task) int { return strings.Compare(a.ID, b.ID) })
	return out, nil
}

func (m *memLocal) Observe(ctx context.Context, scopeID string) <-chan []models.Task {
	ch := make(chan []models.Task, 1)
	items, _ := m.ListByScope(ctx, scopeID)
	ch <- items
	close(ch)
	return ch
}

func (m *memLocal) IDs(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(m.items))
	for id := range m.items {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

type staticUser struct {
	id  string
	err error
}

func (s staticUser) LocalUserID(ctx context.Context) (string, error) { return s.id, s.err }

// mismatchedGet answers every Get with a zero task, as a decoded empty body
// would.
type mismatchedGet struct {
	*backend
}

func (m *mismatchedGet) Get(ctx context.Context, id string) (models.Task, error) {
	m.record("remote.get")
	return models.Task{}, nil
}
