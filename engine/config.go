package engine

import "github.com/sirupsen/logrus"

// Config holds the engine's external configuration. It is passed
// explicitly to New rather than read from package-global state: the
// engine must not depend on hidden mutable package state, since two
// engines built from identical Config and fed an identical sequence of
// Tick calls must produce byte-identical results.
type Config struct {
	// Gravity is the downward acceleration applied to entities with
	// AffectedByGravity() true, in tiles/s².
	Gravity float64
	// TerminalVelocity caps downward speed for gravity-affected
	// entities, in tiles/s.
	TerminalVelocity float64
	// Width, Height size the geometry grid.
	Width, Height int
	// Logger receives programmer-error events (an invalid category or
	// scanType) just before the engine panics; no lifecycle events are
	// logged. Defaults to a discarding logger when nil (see
	// enginelog.Discard).
	Logger *logrus.Logger
}
