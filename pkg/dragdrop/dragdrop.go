// Package dragdrop coordinates drag gestures between typed sources and
// drop zones. The coordinator holds at most one active drag at a time and
// never touches domain collections; a zone's drop handler decides what
// mutation, if any, the gesture turns into.
package dragdrop

import "sync"

// Kind discriminates drag payloads so a zone can accept some entity kinds
// and ignore others sharing the same screen region.
type Kind string

const (
	KindNote   Kind = "note"
	KindFolder Kind = "folder"
)

// Item is one draggable payload. Data carries the entity the drop handler
// needs, typed per source and zone.
type Item[T any] struct {
	Kind Kind
	ID   string
	Data T
}

// State is the read-only view of the coordinator for components that want
// cross-cutting feedback during a drag without being drop targets.
type State struct {
	Active bool
	Kind   Kind
	ID     string
}

type record struct {
	kind Kind
	id   string
	data any
}

// Coordinator owns the single global active-drag record. Sources publish
// into it on drag start and clear it on drag end; zones read it to decide
// acceptance. Each gesture gets a sequence number so a zone fires its drop
// handler at most once per gesture.
type Coordinator struct {
	mu     sync.RWMutex
	active *record
	seq    uint64
}

// NewCoordinator returns a coordinator with no active drag.
func NewCoordinator() *Coordinator {
	return &Coordinator{}
}

// State reports whether a drag is active and, if so, its kind and id.
func (c *Coordinator) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.active == nil {
		return State{}
	}
	return State{Active: true, Kind: c.active.kind, ID: c.active.id}
}

// Dragging reports whether any drag is currently active.
func (c *Coordinator) Dragging() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active != nil
}

func (c *Coordinator) start(kind Kind, id string, data any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active != nil {
		return false
	}
	c.active = &record{kind: kind, id: id, data: data}
	c.seq++
	return true
}

func (c *Coordinator) end(kind Kind, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active != nil && c.active.kind == kind && c.active.id == id {
		c.active = nil
	}
}

func (c *Coordinator) snapshot() (*record, uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active, c.seq
}

// ActiveItem returns the current drag payload typed as T. It reports false
// when no drag is active or the payload is some other type.
func ActiveItem[T any](c *Coordinator) (Item[T], bool) {
	rec, _ := c.snapshot()
	if rec == nil {
		return Item[T]{}, false
	}
	data, ok := rec.data.(T)
	if !ok {
		return Item[T]{}, false
	}
	return Item[T]{Kind: rec.kind, ID: rec.id, Data: data}, true
}
