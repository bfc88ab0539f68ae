package entity

import "github.com/google/uuid"

// Handle is an opaque arena handle for a registered entity. Pairwise
// reports in this module still carry the Dynamic value directly — a
// host that wants handle indirection can look one up via
// Registry.HandleOf — but the arena itself is keyed by Handle so
// removal and lookup never depend on the entity's own identity/equality
// semantics.
type Handle uuid.UUID

// NewHandle mints a fresh, globally unique handle.
func NewHandle() Handle {
	return Handle(uuid.New())
}

func (h Handle) String() string {
	return uuid.UUID(h).String()
}

// record pairs a registered entity with its handle and category.
type record struct {
	handle   Handle
	category Category
	entity   Dynamic
}

// Registry owns the master set and the five per-category subsets.
// Insertion order is preserved per list: given identical inputs, two
// engines must iterate entities in the same order and so produce
// byte-identical results. Removal is deferred: Remove enqueues into a
// pending set drained by DrainPending after a tick completes.
type Registry struct {
	order   []Handle
	records map[Handle]*record

	byCategory map[Category][]Handle

	pending map[Handle]struct{}
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		records: make(map[Handle]*record),
		byCategory: map[Category][]Handle{
			Player:           nil,
			PlayerProjectile: nil,
			Enemy:            nil,
			EnemyProjectile:  nil,
			Environment:      nil,
		},
		pending: make(map[Handle]struct{}),
	}
}

// Add appends e to the master set and to category's subset, returning
// its handle. category defaults to Environment when not Valid.
func (r *Registry) Add(e Dynamic, category Category) Handle {
	if !category.Valid() {
		category = Environment
	}
	h := NewHandle()
	r.order = append(r.order, h)
	r.records[h] = &record{handle: h, category: category, entity: e}
	r.byCategory[category] = append(r.byCategory[category], h)
	return h
}

// Remove enqueues h for removal; it takes effect only once DrainPending
// runs after the current tick completes.
func (r *Registry) Remove(h Handle) {
	if _, ok := r.records[h]; !ok {
		return
	}
	r.pending[h] = struct{}{}
}

// DrainPending removes every handle enqueued via Remove since the last
// drain, from the master set and from its category subset. Must not be
// called while a tick's integration or collision phase is iterating the
// lists.
func (r *Registry) DrainPending() {
	if len(r.pending) == 0 {
		return
	}
	for h := range r.pending {
		rec, ok := r.records[h]
		if !ok {
			continue
		}
		delete(r.records, h)
		r.order = removeHandle(r.order, h)
		r.byCategory[rec.category] = removeHandle(r.byCategory[rec.category], h)
	}
	r.pending = make(map[Handle]struct{})
}

func removeHandle(list []Handle, h Handle) []Handle {
	for i, x := range list {
		if x == h {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// All returns the master set O in insertion order.
func (r *Registry) All() []Dynamic {
	out := make([]Dynamic, 0, len(r.order))
	for _, h := range r.order {
		out = append(out, r.records[h].entity)
	}
	return out
}

// Category returns the per-category subset in insertion order.
func (r *Registry) Category(c Category) []Dynamic {
	handles := r.byCategory[c]
	out := make([]Dynamic, 0, len(handles))
	for _, h := range handles {
		out = append(out, r.records[h].entity)
	}
	return out
}

// HandleOf returns the handle a previous Add call minted for e, and
// whether e is currently registered. Lookup is O(n) in the master set;
// the registry favors ordered-slice iteration determinism over handle
// lookup speed. A tombstoned index would speed this up for large worlds
// but is not implemented.
func (r *Registry) HandleOf(e Dynamic) (Handle, bool) {
	for _, h := range r.order {
		if r.records[h].entity == e {
			return h, true
		}
	}
	return Handle{}, false
}

// Len returns the number of currently registered entities (pending
// removals still counted until drained).
func (r *Registry) Len() int {
	return len(r.order)
}
