package dragdrop

// Source is the draggable side of the protocol. One source represents one
// on-screen draggable instance; it publishes its item into the coordinator
// when a gesture starts and withdraws it when the gesture ends.
type Source[T any] struct {
	c    *Coordinator
	item Item[T]
}

// NewSource registers a draggable item with the coordinator. Registration
// itself has no effect on shared state until Start is called.
func NewSource[T any](c *Coordinator, item Item[T]) *Source[T] {
	return &Source[T]{c: c, item: item}
}

// Start claims the global drag slot for this source. It reports false when
// another drag is already in flight, in which case the caller should treat
// the gesture as rejected.
func (s *Source[T]) Start() bool {
	return s.c.start(s.item.Kind, s.item.ID, s.item.Data)
}

// End withdraws this source's drag. A drop and a cancel both end the
// gesture the same way; only this source's own record is cleared, so a
// stale End after another source started cannot kill the newer drag.
func (s *Source[T]) End() {
	s.c.end(s.item.Kind, s.item.ID)
}

// Dragging reports whether this specific source owns the active drag.
func (s *Source[T]) Dragging() bool {
	st := s.c.State()
	return st.Active && st.Kind == s.item.Kind && st.ID == s.item.ID
}

// Item returns the payload this source publishes.
func (s *Source[T]) Item() Item[T] {
	return s.item
}
