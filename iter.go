package quadtree

import "github.com/google/uuid"

// Traversal selects how a query region relates to candidate entries.
type Traversal int

const (
	// Overlapping selects entries whose region intersects the query region.
	Overlapping Traversal = iota
	// Strict selects entries whose region is fully contained by the query
	// region.
	Strict
)

func (t Traversal) String() string {
	switch t {
	case Overlapping:
		return "overlapping"
	case Strict:
		return "strict"
	default:
		return "unknown"
	}
}

// uuidIter is a lazy depth-first walk over the entry identifiers reachable
// from a starting node. Identifiers can surface more than once (descent
// collection and node expansion may both find the same one), so a visited
// set deduplicates them.
//
// The iterator borrows the tree's structure; mutating the tree while an
// iterator is live is a caller contract violation.
type uuidIter[U Coordinate] struct {
	uuidStack []uuid.UUID
	qtStack   []*qtInner[U]
	visited   map[uuid.UUID]struct{}
}

func newUUIDIter[U Coordinate](root *qtInner[U]) *uuidIter[U] {
	return &uuidIter[U]{
		qtStack: []*qtInner[U]{root},
		visited: make(map[uuid.UUID]struct{}),
	}
}

// next yields each identifier in the subtree exactly once. The order is an
// implementation detail.
func (it *uuidIter[U]) next() (uuid.UUID, bool) {
	for {
		if n := len(it.uuidStack); n > 0 {
			id := it.uuidStack[n-1]
			it.uuidStack = it.uuidStack[:n-1]
			if _, seen := it.visited[id]; seen {
				continue
			}
			it.visited[id] = struct{}{}
			return id, true
		}

		n := len(it.qtStack)
		if n == 0 {
			return uuid.Nil, false
		}
		qt := it.qtStack[n-1]
		it.qtStack = it.qtStack[:n-1]

		it.uuidStack = append(it.uuidStack, qt.kept...)
		if qt.children != nil {
			for _, c := range qt.children {
				it.qtStack = append(it.qtStack, c)
			}
		}
	}
}

// queryOptimization makes a beeline for the lowest node which still fully
// contains req (but no lower) instead of walking the entire tree; iteration
// then resumes from that node. When the traversal is Overlapping, the kept
// identifiers of every node left behind are collected on the way down:
// those entries may intersect req without being contained by the new root
// and would otherwise never be visited.
//
// Must be called on a freshly constructed iterator, before the first next.
func (it *uuidIter[U]) queryOptimization(req Area[U], method Traversal) {
	if len(it.qtStack) != 1 || len(it.uuidStack) != 0 || len(it.visited) != 0 {
		panic("quadtree: query optimization on an already running iterator")
	}

descent:
	for {
		qt := it.qtStack[0]
		// Too far down: this node no longer contains the query region.
		if !qt.region.Contains(req) || qt.children == nil {
			return
		}
		for _, sq := range qt.children {
			if sq.region.Contains(req) {
				if method == Overlapping {
					it.uuidStack = append(it.uuidStack, qt.kept...)
				}
				// The subquadrant becomes the sole node to expand.
				it.qtStack[0] = sq
				continue descent
			}
		}
		// No single child contains req: this is the deepest anchor.
		return
	}
}

// Iter lazily yields entries discovered by the identifier engine, looked up
// in the entry store. A nil query yields every entry; otherwise the exact
// geometric predicate for the traversal method is re-applied, since the
// engine only narrows the search space.
type Iter[U Coordinate, V any] struct {
	engine *uuidIter[U]
	store  *entryStore[U, V]
	query  *Area[U]
	method Traversal
}

// Next returns the next entry, or false when the traversal is exhausted.
// The returned entry is the live stored entry: its Value may be modified in
// place, its Region must not be.
func (it *Iter[U, V]) Next() (*Entry[U, V], bool) {
	for {
		id, ok := it.engine.next()
		if !ok {
			return nil, false
		}
		e, ok := it.store.get(id)
		if !ok {
			continue
		}
		if it.query != nil && !it.matches(e.Region) {
			continue
		}
		return e, true
	}
}

func (it *Iter[U, V]) matches(region Area[U]) bool {
	if it.method == Strict {
		return it.query.Contains(region)
	}
	return it.query.Intersects(region)
}
