package quadtree

import (
	"github.com/segmentio/encoding/json"
)

// DebugInfo is a point-in-time snapshot of a tree's shape, meant for logs
// and debugging rather than programmatic use.
type DebugInfo struct {
	Depth        uint   `json:"depth"`
	Coverage     string `json:"coverage"`
	Entries      int    `json:"entries"`
	NodeCount    int    `json:"node_count"`
	SplitCount   int    `json:"split_count"`
	MaxOccupancy int    `json:"max_occupancy"`
}

func (d DebugInfo) String() string {
	b, err := json.Marshal(d)
	if err != nil {
		return err.Error()
	}
	return string(b)
}

// DebugInfo walks the whole tree; it is not meant for hot paths.
func (q *Quadtree[U, V]) DebugInfo() DebugInfo {
	info := DebugInfo{
		Depth:    q.depth,
		Coverage: q.inner.region.String(),
		Entries:  q.store.len(),
	}

	q.inner.walk(func(n *qtInner[U]) {
		info.NodeCount++
		if n.children != nil {
			info.SplitCount++
		}
		if len(n.kept) > info.MaxOccupancy {
			info.MaxOccupancy = len(n.kept)
		}
	})

	return info
}
