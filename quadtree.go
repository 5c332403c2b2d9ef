// Package quadtree implements an in-memory spatial index over a 2D integer
// coordinate space. Values are keyed by axis-aligned rectangular regions and
// queried by region intersection or containment. Space is recursively
// partitioned into quadrants down to a fixed maximum depth.
//
// A tree instance is not safe for concurrent use, and mutating a tree
// invalidates any iterator obtained from it.
package quadtree

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/google/uuid"
)

// Quadtree stores entries in a recursive quadrant partition and owns the
// central entry store the partition's nodes reference by identifier.
type Quadtree[U Coordinate, V any] struct {
	depth uint
	inner *qtInner[U]
	store *entryStore[U, V]
}

// New returns a quadtree anchored at the origin. See NewWithAnchor.
func New[U Coordinate, V any](depth uint) *Quadtree[U, V] {
	return NewWithAnchor[U, V](Point[U]{}, depth)
}

// NewWithAnchor returns a quadtree covering the square of side 2^depth
// anchored at anchor, subdividable depth times.
func NewWithAnchor[U Coordinate, V any](anchor Point[U], depth uint) *Quadtree[U, V] {
	side := U(1) << depth
	return &Quadtree[U, V]{
		depth: depth,
		inner: newQTInner(NewArea(anchor, side, side), depth),
		store: newEntryStore[U, V](),
	}
}

// Anchor returns the minimum corner of the tree's coverage.
func (q *Quadtree[U, V]) Anchor() Point[U] {
	return q.inner.region.Anchor
}

// Depth returns the maximum subdivision depth.
func (q *Quadtree[U, V]) Depth() uint {
	return q.depth
}

// Coverage returns the total region the tree indexes.
func (q *Quadtree[U, V]) Coverage() Area[U] {
	return q.inner.region
}

// Len returns the number of stored entries.
func (q *Quadtree[U, V]) Len() int {
	return q.store.len()
}

func (q *Quadtree[U, V]) IsEmpty() bool {
	return q.store.len() == 0
}

// Insert stores value under region and returns the identifier minted for
// the new entry. The region must have non-negative dimensions and lie
// within the tree's coverage.
func (q *Quadtree[U, V]) Insert(region Area[U], value V) (uuid.UUID, error) {
	if region.Width < 0 || region.Height < 0 {
		return uuid.Nil, errors.New("region has negative dimensions").
			WithTag("region", region)
	}
	if !q.inner.region.Contains(region) {
		logs.WithTag("region", region).
			WithTag("coverage", q.inner.region).
			Debug("insert rejected")
		return uuid.Nil, errors.New("region is outside the quadtree coverage").
			WithTag("region", region).
			WithTag("coverage", q.inner.region)
	}

	id := q.store.add(region, value)
	q.inner.insert(region, id, q.store)
	insertTotal.Inc()
	entryCount.Inc()
	return id, nil
}

// InsertPt stores value under the 1x1 region covering pt.
func (q *Quadtree[U, V]) InsertPt(pt Point[U], value V) (uuid.UUID, error) {
	return q.Insert(PointArea(pt), value)
}

// Pair is a region/value pair for bulk insertion.
type Pair[U Coordinate, V any] struct {
	Region Area[U]
	Value  V
}

// PtPair is a point/value pair for bulk insertion.
type PtPair[U Coordinate, V any] struct {
	Pt    Point[U]
	Value V
}

// Extend inserts each pair in order. The batch is not atomic: the first
// failing pair aborts the remainder and its error is returned, prior pairs
// stay inserted.
func (q *Quadtree[U, V]) Extend(pairs []Pair[U, V]) error {
	for _, p := range pairs {
		if _, err := q.Insert(p.Region, p.Value); err != nil {
			return errors.New("bulk insert aborted").Wrap(err)
		}
	}
	return nil
}

// ExtendPts inserts each point pair in order, with Extend's batch
// semantics.
func (q *Quadtree[U, V]) ExtendPts(pairs []PtPair[U, V]) error {
	for _, p := range pairs {
		if _, err := q.InsertPt(p.Pt, p.Value); err != nil {
			return errors.New("bulk insert aborted").Wrap(err)
		}
	}
	return nil
}

// Query returns a lazy iterator over the entries whose region intersects
// region.
func (q *Quadtree[U, V]) Query(region Area[U]) *Iter[U, V] {
	return q.query(region, Overlapping)
}

// QueryStrict returns a lazy iterator over the entries whose region is
// fully contained by region.
func (q *Quadtree[U, V]) QueryStrict(region Area[U]) *Iter[U, V] {
	return q.query(region, Strict)
}

func (q *Quadtree[U, V]) query(region Area[U], method Traversal) *Iter[U, V] {
	queryTotal.With(methodLabels(method)).Inc()

	engine := newUUIDIter(q.inner)
	engine.queryOptimization(region, method)
	return &Iter[U, V]{
		engine: engine,
		store:  q.store,
		query:  &region,
		method: method,
	}
}

// Iter returns a lazy iterator over every entry, in no particular order.
func (q *Quadtree[U, V]) Iter() *Iter[U, V] {
	return &Iter[U, V]{
		engine: newUUIDIter(q.inner),
		store:  q.store,
	}
}

// Regions returns the region of every entry.
func (q *Quadtree[U, V]) Regions() []Area[U] {
	regions := make([]Area[U], 0, q.Len())
	it := q.Iter()
	for e, ok := it.Next(); ok; e, ok = it.Next() {
		regions = append(regions, e.Region)
	}
	return regions
}

// Values returns the value of every entry.
func (q *Quadtree[U, V]) Values() []V {
	values := make([]V, 0, q.Len())
	it := q.Iter()
	for e, ok := it.Next(); ok; e, ok = it.Next() {
		values = append(values, e.Value)
	}
	return values
}

// ModifyAll applies fn to every entry's value in place. Regions and the
// tree shape are unchanged.
func (q *Quadtree[U, V]) ModifyAll(fn func(v *V)) {
	it := q.Iter()
	for e, ok := it.Next(); ok; e, ok = it.Next() {
		fn(&e.Value)
	}
}

// Delete removes every entry whose region intersects region, from both the
// entry store and the node keeping it, and returns the removed entries.
// The result is fully materialized before any mutation happens, so it never
// aliases the structure being modified.
func (q *Quadtree[U, V]) Delete(region Area[U]) []Entry[U, V] {
	it := q.query(region, Overlapping)
	var ids []uuid.UUID
	for e, ok := it.Next(); ok; e, ok = it.Next() {
		ids = append(ids, e.id)
	}

	removed := make([]Entry[U, V], 0, len(ids))
	for _, id := range ids {
		e, ok := q.store.remove(id)
		if !ok {
			continue
		}
		q.inner.remove(e.Region, e.id)
		removed = append(removed, *e)
	}

	deleteTotal.Add(float64(len(removed)))
	entryCount.Sub(float64(len(removed)))
	return removed
}

// Drain returns every entry and leaves the tree empty.
func (q *Quadtree[U, V]) Drain() []Entry[U, V] {
	entries := make([]Entry[U, V], 0, q.Len())
	it := q.Iter()
	for e, ok := it.Next(); ok; e, ok = it.Next() {
		entries = append(entries, *e)
	}
	q.Reset()
	return entries
}

// Reset discards all entries and collapses every subdivision, restoring the
// tree to its freshly constructed state.
func (q *Quadtree[U, V]) Reset() {
	entryCount.Sub(float64(q.store.len()))
	q.inner = newQTInner(q.inner.region, q.depth)
	q.store.reset()

	logs.WithTag("coverage", q.inner.region).Debug("quadtree reset")
}
