package dragdrop

// ZoneConfig declares what a drop zone accepts and what happens on drop.
// CanDrop may be nil, meaning every accepted item can be dropped. OnDrop
// receives the item and performs the domain mutation; the coordinator
// never mutates anything itself.
type ZoneConfig[T any] struct {
	Accepts []Kind
	CanDrop func(Item[T]) bool
	OnDrop  func(Item[T])
}

// Zone is the receiving side of the protocol. The host component reports
// pointer enter/leave through SetOver and calls Drop when the gesture
// releases over it. A region that hosts several payload kinds registers
// one zone per kind; the active item's kind selects which zone engages.
type Zone[T any] struct {
	c          *Coordinator
	config     ZoneConfig[T]
	over       bool
	droppedSeq uint64
}

// NewZone registers a drop target with the coordinator.
func NewZone[T any](c *Coordinator, config ZoneConfig[T]) *Zone[T] {
	return &Zone[T]{c: c, config: config}
}

// current returns the active drag item when its kind is accepted and its
// payload has this zone's type.
func (z *Zone[T]) current() (Item[T], uint64, bool) {
	rec, seq := z.c.snapshot()
	if rec == nil {
		return Item[T]{}, 0, false
	}
	accepted := false
	for _, k := range z.config.Accepts {
		if k == rec.kind {
			accepted = true
			break
		}
	}
	if !accepted {
		return Item[T]{}, 0, false
	}
	data, ok := rec.data.(T)
	if !ok {
		return Item[T]{}, 0, false
	}
	return Item[T]{Kind: rec.kind, ID: rec.id, Data: data}, seq, true
}

// SetOver records whether the pointer is over this zone. The flag only has
// meaning while a drag is active; hosts typically call it from their
// pointer-motion handling.
func (z *Zone[T]) SetOver(over bool) {
	z.over = over
}

// Over reports whether the pointer is over this zone during an active drag
// of an accepted kind.
func (z *Zone[T]) Over() bool {
	if !z.over {
		return false
	}
	_, _, ok := z.current()
	return ok
}

// CanDrop evaluates the zone's predicate against the active item. It is
// false when no accepted drag is active.
func (z *Zone[T]) CanDrop() bool {
	item, _, ok := z.current()
	if !ok {
		return false
	}
	if z.config.CanDrop == nil {
		return true
	}
	return z.config.CanDrop(item)
}

// Drop fires the zone's handler if the pointer is over the zone and the
// predicate allows the active item. It reports whether the handler ran.
// A second call during the same gesture does nothing, so a host wired to
// both release and leave events cannot double-fire a mutation.
func (z *Zone[T]) Drop() bool {
	item, seq, ok := z.current()
	if !ok || !z.over {
		return false
	}
	if z.config.CanDrop != nil && !z.config.CanDrop(item) {
		return false
	}
	if seq == z.droppedSeq {
		return false
	}
	z.droppedSeq = seq
	if z.config.OnDrop != nil {
		z.config.OnDrop(item)
	}
	return true
}
