package refcell

// Ref is a process-wide cell holding at most one shared (read-only)
// reference. Declare one per logical global:
//
//	var config refcell.Ref[AppConfig]
//
// The zero value is ready to use. A Ref must not be copied after first use.
//
// The cell synchronizes only the slot itself: registrations, clears, and
// lookups are mutually exclusive and never observed torn. It never
// synchronizes, copies, allocates, or frees the referenced value — that value
// is owned entirely by the caller.
type Ref[T any] struct {
	core[T]
}

// NewRef creates a shared cell with the given options. Plain cells don't need
// it; the zero value works. Use NewRef to attach a name, logger, metrics, or
// tracing:
//
//	var config = refcell.NewRef[AppConfig](
//	    refcell.WithName("app-config"),
//	    refcell.WithLogger(logger),
//	)
func NewRef[T any](opts ...Option) *Ref[T] {
	r := &Ref[T]{}
	r.cfg = newCellConfig(opts)
	return r
}

// Set registers item's address so any other code, on any goroutine, can read
// it through the cell. Prefer With, which clears automatically.
//
// The caller must guarantee, for the whole registration:
//   - item outlives the registration (Clear before its storage is reused);
//   - nothing mutates *item while registered — concurrent readers alias it
//     read-only.
//
// The cell cannot check either obligation; violating them is undefined
// behavior, not a reported error. A second Set without an intervening Clear
// is legal and overwrites the first (last write wins).
func (c *Ref[T]) Set(item *T) {
	c.set(item)
}

// Clear empties the slot, unconditionally and idempotently.
func (c *Ref[T]) Clear() {
	c.clear()
}

// With registers item, runs body, and clears the slot on every exit path —
// normal return, error, or panic. This bounds the registration's lifetime to
// exactly body's execution and is the recommended entry point. Returns body's
// error unchanged.
//
// The internal lock is not held across body; a body that blocks stalls
// clearing, not other cells or other operations on this cell.
func (c *Ref[T]) With(item *T, body func() error) error {
	return c.with(item, body)
}

// Get returns the registered reference. Callers must treat the pointee as
// read-only; Ref's contract is that nothing mutates it while registered.
//
// Get panics with an error wrapping ErrUnregistered when the slot is empty:
// reading a value nobody registered is a programmer error, and continuing
// without valid data is almost never correct. Use TryGet where absence is a
// legitimate case.
func (c *Ref[T]) Get() *T {
	return c.get("Get")
}

// TryGet returns the registered reference, or (nil, false) when the slot is
// empty.
func (c *Ref[T]) TryGet() (*T, bool) {
	return c.tryGet()
}

// Registered reports whether the cell currently holds a readable reference.
// It satisfies registry.Probe.
func (c *Ref[T]) Registered() bool {
	return c.registered()
}
