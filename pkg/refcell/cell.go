package refcell

import (
	"fmt"
	"sync"
	"time"

	"github.com/randalmurphal/refcell/pkg/refcell/internal/addr"
)

// slot is the synchronized storage behind a cell: the captured address of the
// current registration, if any. The mutex is held only for the copy in or
// out, never across caller code, so a concurrent accessor observes the state
// strictly before or strictly after a transition, never a torn one.
type slot struct {
	mu   sync.Mutex
	addr addr.Addr
	live bool
}

// core carries the state shared by both cell kinds: the lazily created slot
// and the cell's configuration. The zero value is ready to use; the slot is
// allocated on first access, whichever operation that is.
//
// A core must not be copied after first use, for the same reason a sync.Once
// must not be.
type core[T any] struct {
	once sync.Once
	s    *slot
	cfg  cellConfig
}

func (c *core[T]) slot() *slot {
	c.once.Do(func() {
		c.s = new(slot)
	})
	return c.s
}

// set captures the address of p into the slot. Last write wins; a prior
// registration is overwritten without error.
func (c *core[T]) set(p *T) {
	s := c.slot()
	s.mu.Lock()
	s.addr = addr.Of(p)
	s.live = true
	s.mu.Unlock()

	c.cfg.record().recordRegistration(c.cfg.label())
	c.cfg.logEvent("reference registered")
}

// clear empties the slot unconditionally. Idempotent.
func (c *core[T]) clear() {
	s := c.slot()
	s.mu.Lock()
	s.addr = addr.Addr{}
	s.live = false
	s.mu.Unlock()

	c.cfg.record().recordClear(c.cfg.label())
	c.cfg.logEvent("reference cleared")
}

// tryGet returns the registered reference, or reports absence. A nil
// registration captures the zero address and reads as absent.
func (c *core[T]) tryGet() (*T, bool) {
	s := c.slot()
	s.mu.Lock()
	a, live := s.addr, s.live
	s.mu.Unlock()

	if !live || a.IsZero() {
		c.cfg.record().recordMiss(c.cfg.label())
		return nil, false
	}
	c.cfg.record().recordRead(c.cfg.label())
	return addr.Deref[T](a), true
}

// get returns the registered reference or panics. op names the exported
// accessor for the panic message.
func (c *core[T]) get(op string) *T {
	p, ok := c.tryGet()
	if !ok {
		panic(fmt.Errorf("refcell: %s on empty cell %q: %w (call Set or With first)",
			op, c.cfg.label(), ErrUnregistered))
	}
	return p
}

// registered reports whether an accessor would currently succeed.
func (c *core[T]) registered() bool {
	s := c.slot()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live && !s.addr.IsZero()
}

// with bounds a registration to exactly the body's execution. The slot is
// cleared on every exit path, including a panic in the body. The body's error
// is returned unchanged.
func (c *core[T]) with(p *T, body func() error) (err error) {
	span := c.cfg.startScopeSpan()
	start := time.Now()

	c.set(p)
	defer func() {
		c.clear()
		c.cfg.record().recordScope(c.cfg.label(), time.Since(start))
		endScopeSpan(span, err)
	}()

	c.cfg.logEvent("scoped registration entered")
	err = body()
	return err
}
