package quadtree

import "github.com/google/uuid"

// nodeCapacity is the number of entries a childless node holds before it
// splits into quadrants.
const nodeCapacity = 8

// regionLookup resolves an entry identifier to its region. Satisfied by the
// entry store; nodes never see entry values.
type regionLookup[U Coordinate] interface {
	regionOf(id uuid.UUID) Area[U]
}

// qtInner is one level of the recursive spatial partition. depth counts the
// subdivision levels remaining below this node; a node at depth 0 never
// splits. children is non-nil iff the node has been split, in which case
// the four child regions exactly tile this node's region.
//
// An entry identifier is kept here iff the entry's region is contained by
// this node's region but not by any single child's region.
type qtInner[U Coordinate] struct {
	region   Area[U]
	depth    uint
	kept     []uuid.UUID
	children *[4]*qtInner[U]
}

func newQTInner[U Coordinate](region Area[U], depth uint) *qtInner[U] {
	return &qtInner[U]{
		region: region,
		depth:  depth,
	}
}

// insert stores id at the deepest node that contains region without
// splitting it across quadrants. The caller guarantees region is contained
// by n.region.
func (n *qtInner[U]) insert(region Area[U], id uuid.UUID, store regionLookup[U]) {
	if n.children == nil {
		if n.depth == 0 || len(n.kept) < nodeCapacity {
			n.kept = append(n.kept, id)
			return
		}
		n.split(store)
	}
	if c := n.childContaining(region); c != nil {
		c.insert(region, id, store)
		return
	}

	// The region straddles a split boundary: it belongs here.
	n.kept = append(n.kept, id)
}

// split quarters this node and redistributes every kept entry wholly
// containable by a single child, so entries always live as deep as their
// region allows. Only called on childless nodes above depth 0.
func (n *qtInner[U]) split(store regionLookup[U]) {
	quads := n.region.quadrants()
	var children [4]*qtInner[U]
	for i := range quads {
		children[i] = newQTInner(quads[i], n.depth-1)
	}
	n.children = &children

	kept := n.kept
	n.kept = nil
	for _, id := range kept {
		region := store.regionOf(id)
		if c := n.childContaining(region); c != nil {
			c.insert(region, id, store)
		} else {
			n.kept = append(n.kept, id)
		}
	}
}

func (n *qtInner[U]) childContaining(region Area[U]) *qtInner[U] {
	if n.children == nil {
		return nil
	}
	for _, c := range n.children {
		if c.region.Contains(region) {
			return c
		}
	}
	return nil
}

// remove deletes id from the node keeping it, following the same
// containment path insert descended.
func (n *qtInner[U]) remove(region Area[U], id uuid.UUID) bool {
	for i, kid := range n.kept {
		if kid == id {
			n.kept[i] = n.kept[len(n.kept)-1]
			n.kept = n.kept[:len(n.kept)-1]
			return true
		}
	}
	if c := n.childContaining(region); c != nil {
		return c.remove(region, id)
	}
	return false
}

// walk visits n and every node below it, parents first.
func (n *qtInner[U]) walk(fn func(*qtInner[U])) {
	fn(n)
	if n.children == nil {
		return
	}
	for _, c := range n.children {
		c.walk(fn)
	}
}
