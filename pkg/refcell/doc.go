/*
Package refcell provides thread-safe, lazily-initialized, single-slot cells
for publishing a borrowed reference process-wide.

# Overview

Some call sites can't receive data through parameters: callbacks invoked by
foreign code, handlers registered during static initialization, code behind an
API you don't control. refcell bridges them. One scope publishes a reference
into a cell; any other code — on any goroutine — reads it back for the
duration of that dynamically-scoped registration.

Two cell kinds exist:

  - [Ref] holds a shared reference: readers get read-only access.
  - [Mut] holds an exclusive reference: readers may also mutate in place.

A cell holds at most one address at a time. It never owns, copies, or frees
the referenced value; its only synchronized state is the slot itself.

# Basic Usage

Declare a cell per logical global. The zero value is ready to use; the
internal slot is created lazily on first access:

	var current refcell.Ref[Request]

	// The callback signature is fixed by foreign code: no parameters.
	func onEvent() {
	    req := current.Get()
	    fmt.Println(req.ID)
	}

	func handle(req *Request) error {
	    return current.With(req, func() error {
	        dispatch(onEvent) // onEvent sees req through the cell
	        return nil
	    })
	}

# Scoped Registration

With is the recommended entry point: it registers the reference, runs the
body, and clears the slot on every exit path, including a panic. That bounds
the registration to exactly the body's execution and removes the most common
mistake — forgetting to clear. Set and Clear exist for call sites whose
registration can't be expressed as a closure.

Get panics (with an error wrapping [ErrUnregistered]) when nothing is
registered; TryGet reports absence instead. Choose per call site.

# Safety Contract

The cell stores a raw captured address and synchronizes only the slot, so
three obligations fall on the caller and cannot be checked:

  - Lifetime: the referenced value must outlive the registration. Clear (or
    let With clear) before its storage is reused. The cell does not keep the
    value alive.
  - Shared aliasing ([Ref]): nothing may mutate the value while registered.
  - Exclusive aliasing ([Mut]): no other alias to the value may be used while
    registered, and concurrent mutation through GetMut is a race on the
    pointee — the cell adds no locking around the value, by contract.

Violating any of these is undefined behavior, not a reported error.

# Observability

Cells built with [NewRef] or [NewMut] can carry a name, a [log/slog] logger
for slot transitions, OpenTelemetry counters, and a span per scoped
registration:

	var config = refcell.NewRef[AppConfig](
	    refcell.WithName("app-config"),
	    refcell.WithLogger(logger),
	    refcell.WithMetrics(true),
	)

Named cells can also be tracked by the
[github.com/randalmurphal/refcell/pkg/refcell/registry] package, which
snapshots which cells currently hold a value.
*/
package refcell
