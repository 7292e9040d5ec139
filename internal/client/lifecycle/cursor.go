package lifecycle

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/dmitrijs2005/wghub/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/wghub/internal/common"
)

// CursorStore persists the cursor of each sequence. Load returns Step1 for
// a sequence that was never saved.
type CursorStore interface {
	Load(ctx context.Context, seq Sequence) (Step, error)
	Save(ctx context.Context, seq Sequence, step Step) error
}

// MetadataCursorStore keeps cursors in the local metadata table so a restart
// in the middle of a sequence resumes it.
type MetadataCursorStore struct {
	meta metadata.Repository
}

func NewMetadataCursorStore(meta metadata.Repository) *MetadataCursorStore {
	return &MetadataCursorStore{meta: meta}
}

func cursorKey(seq Sequence) string {
	return "lifecycle_cursor_" + string(seq)
}

func (s *MetadataCursorStore) Load(ctx context.Context, seq Sequence) (Step, error) {
	v, err := s.meta.GetString(ctx, cursorKey(seq))
	if err != nil {
		return 0, err
	}
	if v == "" {
		return Step1, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < int(Step1) {
		return 0, common.Persistence(fmt.Errorf("corrupt cursor %q for %s", v, seq))
	}
	return Step(n), nil
}

func (s *MetadataCursorStore) Save(ctx context.Context, seq Sequence, step Step) error {
	if step == Step1 {
		return s.meta.Delete(ctx, cursorKey(seq))
	}
	return s.meta.SetString(ctx, cursorKey(seq), strconv.Itoa(int(step)))
}

// MemoryCursorStore keeps cursors for the lifetime of the process.
type MemoryCursorStore struct {
	mu      sync.Mutex
	cursors map[Sequence]Step
}

func NewMemoryCursorStore() *MemoryCursorStore {
	return &MemoryCursorStore{cursors: make(map[Sequence]Step)}
}

func (s *MemoryCursorStore) Load(ctx context.Context, seq Sequence) (Step, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if step, ok := s.cursors[seq]; ok {
		return step, nil
	}
	return Step1, nil
}

func (s *MemoryCursorStore) Save(ctx context.Context, seq Sequence, step Step) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursors[seq] = step
	return nil
}
