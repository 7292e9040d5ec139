package records

import (
	"sync"

	"github.com/dmitrijs2005/wghub/internal/client/models"
)

// Hub delivers change signals per family. Signals are coalesced: a
// subscriber that has not consumed the previous signal gets no second one,
// so writers never block on slow readers.
type Hub struct {
	mu   sync.Mutex
	subs map[models.Family]map[chan struct{}]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[models.Family]map[chan struct{}]struct{})}
}

// Subscribe registers for signals of family f. The returned func cancels
// the subscription; it does not close the channel.
func (h *Hub) Subscribe(f models.Family) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	h.mu.Lock()
	set, ok := h.subs[f]
	if !ok {
		set = make(map[chan struct{}]struct{})
		h.subs[f] = set
	}
	set[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[f], ch)
			h.mu.Unlock()
		})
	}
}

// Notify signals all subscribers of family f.
func (h *Hub) Notify(f models.Family) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[f] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// NotifyAll signals every subscriber of every family.
func (h *Hub) NotifyAll() {
	h.mu.Lock()
	families := make([]models.Family, 0, len(h.subs))
	for f := range h.subs {
		families = append(families, f)
	}
	h.mu.Unlock()

	for _, f := range families {
		h.Notify(f)
	}
}
