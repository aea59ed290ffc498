package refcell

import "errors"

// Sentinel errors for cell access.
var (
	// ErrUnregistered indicates an accessor ran against a cell whose slot is
	// empty. Get and GetMut panic with an error wrapping ErrUnregistered so a
	// recover can still identify it with errors.Is; TryGet and TryGetMut
	// report the same condition as a false second return instead.
	ErrUnregistered = errors.New("cell is not registered")
)
