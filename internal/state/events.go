// Package state bridges repository results into observable application state:
// each store keeps an in-memory mirror of the last-loaded scope, re-exposes
// the repository operations with optimistic mirror updates, and publishes
// change events to a hub consumed by the SSE feed.
package state

import "sync"

const (
	ActionCreated   = "created"
	ActionUpdated   = "updated"
	ActionDeleted   = "deleted"
	ActionReordered = "reordered"
)

const (
	EntityProject          = "project"
	EntityScene            = "scene"
	EntitySceneImage       = "sceneImage"
	EntityGenerationResult = "generationResult"
	EntityMedia            = "media"
	EntitySettings         = "settings"
)

// Event describes one committed mutation. ScopeID is the parent the entity
// lives under (project for scenes/media, scene for images, image for results).
type Event struct {
	Entity  string `json:"entity"`
	Action  string `json:"action"`
	ID      string `json:"id,omitempty"`
	ScopeID string `json:"scopeId,omitempty"`
}

// Hub fans events out to subscribers. Slow subscribers drop events rather
// than block mutations.
type Hub struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]struct{})}
}

// Subscribe registers a listener. The returned cancel func must be called to
// release the channel.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 64)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

func (h *Hub) Publish(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- event:
		default:
		}
	}
}
