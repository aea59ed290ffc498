package refcell

// Mut is a process-wide cell holding at most one exclusive (mutable)
// reference. It has everything Ref has, plus accessors that hand back the
// pointee for in-place mutation.
//
// The exclusivity contract is stronger than Ref's: while registered, no other
// live alias to the value — read or write — may exist anywhere in the
// program, because every GetMut caller receives effectively unsynchronized
// write access to it. The cell synchronizes the address lookup only, never
// the pointee; goroutines that mutate through concurrent GetMut calls race on
// the value itself and must bring their own coordination. That is a
// documented caller precondition, not something the cell arbitrates.
//
// The zero value is ready to use. A Mut must not be copied after first use.
type Mut[T any] struct {
	core[T]
}

// NewMut creates an exclusive cell with the given options. Plain cells don't
// need it; the zero value works.
func NewMut[T any](opts ...Option) *Mut[T] {
	m := &Mut[T]{}
	m.cfg = newCellConfig(opts)
	return m
}

// Set registers item's address for exclusive access. Prefer With, which
// clears automatically.
//
// In addition to Ref.Set's lifetime obligation, the caller must guarantee no
// other alias to *item is used anywhere while registered. Violations are
// undefined behavior. Last write wins on a second Set.
func (c *Mut[T]) Set(item *T) {
	c.set(item)
}

// Clear empties the slot, unconditionally and idempotently.
func (c *Mut[T]) Clear() {
	c.clear()
}

// With registers item for exclusive access, runs body, and clears the slot on
// every exit path, including a panic in body. Returns body's error unchanged.
func (c *Mut[T]) With(item *T, body func() error) error {
	return c.with(item, body)
}

// Get returns the registered reference for reading. Panics with an error
// wrapping ErrUnregistered when the slot is empty.
func (c *Mut[T]) Get() *T {
	return c.get("Get")
}

// TryGet returns the registered reference for reading, or (nil, false) when
// the slot is empty.
func (c *Mut[T]) TryGet() (*T, bool) {
	return c.tryGet()
}

// GetMut returns the registered reference for in-place mutation. Panics with
// an error wrapping ErrUnregistered when the slot is empty.
//
// Only the address lookup is synchronized. Two goroutines that both mutate
// through GetMut race on the pointee; serialize them externally (the tests'
// cross-goroutine scenario uses an explicit join).
func (c *Mut[T]) GetMut() *T {
	return c.get("GetMut")
}

// TryGetMut returns the registered reference for in-place mutation, or
// (nil, false) when the slot is empty.
func (c *Mut[T]) TryGetMut() (*T, bool) {
	return c.tryGet()
}

// Registered reports whether the cell currently holds a readable reference.
// It satisfies registry.Probe.
func (c *Mut[T]) Registered() bool {
	return c.registered()
}
