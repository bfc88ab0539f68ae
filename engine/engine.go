// Package engine is the World/Engine facade: ownership of the geometry
// grid and entity registry, the add/remove queue, and the tick driver.
package engine

import (
	"sync"

	"github.com/ridgepeak/tilephysics/collision"
	"github.com/ridgepeak/tilephysics/entity"
	"github.com/ridgepeak/tilephysics/enginelog"
	"github.com/ridgepeak/tilephysics/hitscan"
	"github.com/ridgepeak/tilephysics/physics"
	"github.com/ridgepeak/tilephysics/resolver"
	"github.com/ridgepeak/tilephysics/tilegrid"
	"github.com/ridgepeak/tilephysics/vecmath"
	"github.com/sirupsen/logrus"
)

// Engine owns the simulation's shared mutable state: the entity
// registry, the geometry grid, and run/terminate flags. A single
// exclusive tick at a time is sufficient to satisfy every consistency
// requirement; tickMu enforces that.
type Engine struct {
	tickMu sync.Mutex

	stateMu          sync.RWMutex
	gravity          float64
	terminalVelocity float64
	grid             *tilegrid.Grid
	runFlag          bool
	terminateFlag    bool

	registry *entity.Registry
	log      *logrus.Logger

	cps               int
	cyclesThisSecond  int
	millisSinceSecond int64
}

// New builds an Engine from cfg. A nil cfg.Logger defaults to a
// discarding logger; the engine never reaches for os.Getenv to pick a
// log level itself.
func New(cfg Config) *Engine {
	log := cfg.Logger
	if log == nil {
		log = enginelog.Discard()
	}
	return &Engine{
		gravity:          cfg.Gravity,
		terminalVelocity: cfg.TerminalVelocity,
		grid:             tilegrid.New(cfg.Width, cfg.Height),
		registry:         entity.NewRegistry(),
		log:              log,
	}
}

// Gravity / SetGravity, TerminalVelocity / SetTerminalVelocity,
// RunFlag / SetRunFlag, Geometry / SetGeometry are symmetric
// getter/setter pairs over the engine's live configuration.

func (e *Engine) Gravity() float64 {
	e.stateMu.RLock()
	defer e.stateMu.RUnlock()
	return e.gravity
}

func (e *Engine) SetGravity(g float64) {
	e.stateMu.Lock()
	defer e.stateMu.Unlock()
	e.gravity = g
}

func (e *Engine) TerminalVelocity() float64 {
	e.stateMu.RLock()
	defer e.stateMu.RUnlock()
	return e.terminalVelocity
}

func (e *Engine) SetTerminalVelocity(t float64) {
	e.stateMu.Lock()
	defer e.stateMu.Unlock()
	e.terminalVelocity = t
}

func (e *Engine) RunFlag() bool {
	e.stateMu.RLock()
	defer e.stateMu.RUnlock()
	return e.runFlag
}

func (e *Engine) SetRunFlag(run bool) {
	e.stateMu.Lock()
	defer e.stateMu.Unlock()
	e.runFlag = run
}

// Geometry returns the engine's geometry grid. The host may mutate it
// directly between ticks; a tick never mutates it.
func (e *Engine) Geometry() *tilegrid.Grid {
	e.stateMu.RLock()
	defer e.stateMu.RUnlock()
	return e.grid
}

// SetGeometry replaces the engine's geometry grid outright, observable
// starting the next tick.
func (e *Engine) SetGeometry(grid *tilegrid.Grid) {
	e.stateMu.Lock()
	defer e.stateMu.Unlock()
	e.grid = grid
}

// Terminate sets the terminate flag; a driver-mode Run loop exits before
// its next tick. In-flight tick work is never interrupted.
func (e *Engine) Terminate() {
	e.stateMu.Lock()
	defer e.stateMu.Unlock()
	e.terminateFlag = true
}

func (e *Engine) terminated() bool {
	e.stateMu.RLock()
	defer e.stateMu.RUnlock()
	return e.terminateFlag
}

// CPS returns the most recently measured cycles-per-second. Every Tick
// (whether called by Run or directly by the host) counts one cycle; the
// count is published each time the ticks' dtMillis total reaches 1000.
func (e *Engine) CPS() int {
	e.stateMu.RLock()
	defer e.stateMu.RUnlock()
	return e.cps
}

// Add appends entity to the master set under category. An out-of-range
// category is a programmer error and panics rather than silently
// defaulting; use AddDefault when no specific category applies. Add
// takes tickMu so a host calling it while a tick is in flight blocks
// until that tick's registry reads/writes finish, rather than racing
// them.
func (e *Engine) Add(en entity.Dynamic, category entity.Category) entity.Handle {
	if !category.Valid() {
		e.log.WithField("category", int(category)).Error("engine: invalid category passed to Add")
		panic("engine: invalid category passed to Add")
	}
	e.tickMu.Lock()
	defer e.tickMu.Unlock()
	return e.registry.Add(en, category)
}

// AddDefault appends entity under the default category, Environment.
func (e *Engine) AddDefault(en entity.Dynamic) entity.Handle {
	e.tickMu.Lock()
	defer e.tickMu.Unlock()
	return e.registry.Add(en, entity.Environment)
}

// Remove enqueues entity for removal; it takes effect once the next tick
// completes. Also takes tickMu, since Remove writes into the registry's
// pending set that DrainPending reads during a tick, so a call made while
// a tick is in flight waits for that tick to finish before enqueueing.
func (e *Engine) Remove(h entity.Handle) {
	e.tickMu.Lock()
	defer e.tickMu.Unlock()
	e.registry.Remove(h)
}

// Tick runs one simulation step: integrate motion, resolve and report
// collisions, then drain pending removals. A non-positive dtMillis is a
// no-op and returns immediately.
func (e *Engine) Tick(dtMillis int) {
	if dtMillis <= 0 {
		return
	}

	e.tickMu.Lock()
	defer e.tickMu.Unlock()

	e.stateMu.RLock()
	gravity := e.gravity
	terminalVelocity := e.terminalVelocity
	grid := e.grid
	e.stateMu.RUnlock()

	dtSeconds := float64(dtMillis) / 1000.0

	physics.Step(e.registry, grid, gravity, terminalVelocity, dtSeconds)
	collision.Run(e.registry, grid)
	e.registry.DrainPending()

	e.recordCycle(dtMillis)
}

// recordCycle updates the cps sliding-window counter.
func (e *Engine) recordCycle(dtMillis int) {
	e.stateMu.Lock()
	defer e.stateMu.Unlock()
	e.cyclesThisSecond++
	e.millisSinceSecond += int64(dtMillis)
	if e.millisSinceSecond >= 1000 {
		e.cps = e.cyclesThisSecond
		e.cyclesThisSecond = 0
		e.millisSinceSecond = 0
	}
}

// Run is the optional driver: it loops reading nowMillis (a monotonic ms
// clock collaborator), computes dt, calls Tick, and yields between
// iterations, until Terminate is called. A host may instead call Tick
// directly and never invoke Run at all.
func (e *Engine) Run(nowMillis func() int64, yield func()) {
	lastTime := nowMillis()
	for !e.terminated() {
		curTime := nowMillis()
		if e.RunFlag() {
			millisElapsed := int(curTime - lastTime)
			if millisElapsed > 0 {
				e.Tick(millisElapsed)
			}
		}
		lastTime = curTime
		yield()
	}
}

// IsInBounds reports whether (x, y) names a tile inside the geometry
// grid.
func (e *Engine) IsInBounds(x, y int) bool {
	return e.Geometry().InBounds(x, y)
}

// GetGeometryType returns the tile kind at (x, y); out-of-bounds
// coordinates return Full.
func (e *Engine) GetGeometryType(x, y int) tilegrid.GeometryType {
	return e.Geometry().At(x, y)
}

// PointCollidesWithGeometry reports whether point lies inside a solid
// tile.
func (e *Engine) PointCollidesWithGeometry(point vecmath.Vec2) bool {
	return resolver.PointCollidesWithGeometry(e.Geometry(), point)
}

// IsCollidingWithGeometry reports whether en's static AABB overlaps the
// grid.
func (e *Engine) IsCollidingWithGeometry(en entity.Dynamic) bool {
	return resolver.IsCollidingWithGeometry(en, e.Geometry())
}

// TouchingFloor, TouchingCeiling, TouchingLeftWall, TouchingRightWall
// report whether en is touching a solid surface in that direction.
func (e *Engine) TouchingFloor(en entity.Dynamic) bool {
	return resolver.TouchingFloor(en, e.Geometry())
}

func (e *Engine) TouchingCeiling(en entity.Dynamic) bool {
	return resolver.TouchingCeiling(en, e.Geometry())
}

func (e *Engine) TouchingLeftWall(en entity.Dynamic) bool {
	return resolver.TouchingLeftWall(en, e.Geometry())
}

func (e *Engine) TouchingRightWall(en entity.Dynamic) bool {
	return resolver.TouchingRightWall(en, e.Geometry())
}

// GetOrthoGeometryCollisionNormals returns a {x, y} pair each in
// {-1, 0, +1} summarizing adjacent-tile blockage one tile up/down/
// left/right of en's center. Unreliable for entities wider than one
// tile; that limitation is preserved, not guarded against.
func (e *Engine) GetOrthoGeometryCollisionNormals(en entity.Dynamic) vecmath.Vec2 {
	return resolver.OrthoGeometryCollisionNormals(en, e.Geometry())
}

// CalculateHitscan runs the combined entity+geometry ray query. scanType
// defaults to Environment when omitted.
func (e *Engine) CalculateHitscan(origin, distance vecmath.Vec2, scanType ...entity.Category) hitscan.Result {
	st := resolveScanType(scanType)
	return hitscan.Calculate(e.registry, e.Geometry(), origin, distance, st, e.log)
}

// GetHitscanImpact runs only the entity-ray query.
func (e *Engine) GetHitscanImpact(origin, distance vecmath.Vec2, scanType ...entity.Category) (entity.Dynamic, float64, bool) {
	st := resolveScanType(scanType)
	return hitscan.EntityImpact(e.registry, origin, distance, st, e.log)
}

// GetHitscanImpactGeometry runs only the geometry-ray query.
func (e *Engine) GetHitscanImpactGeometry(origin, distance vecmath.Vec2) vecmath.Vec2 {
	return hitscan.GeometryImpact(e.Geometry(), origin, distance)
}

func resolveScanType(scanType []entity.Category) entity.Category {
	if len(scanType) == 0 {
		return entity.Environment
	}
	return scanType[0]
}
