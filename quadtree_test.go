package quadtree

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// The tree used by the iterator and deletion tests: anchored at (-35,-35)
// with depth 8, holding three point entries.
func mkIterTestTree(t *testing.T) *Quadtree[int, int] {
	t.Helper()

	q := NewWithAnchor[int, int](NewPoint(-35, -35), 8)
	err := q.ExtendPts([]PtPair[int, int]{
		{Pt: NewPoint(0, -5), Value: 10},
		{Pt: NewPoint(-15, 20), Value: -25},
		{Pt: NewPoint(30, -35), Value: 40},
	})
	require.NoError(t, err)
	require.Equal(t, 3, q.Len())
	return q
}

func collectValues(it *Iter[int, int]) []int {
	var values []int
	for e, ok := it.Next(); ok; e, ok = it.Next() {
		values = append(values, e.Value)
	}
	return values
}

func collectEntries(it *Iter[int, int]) []Entry[int, int] {
	var entries []Entry[int, int]
	for e, ok := it.Next(); ok; e, ok = it.Next() {
		entries = append(entries, *e)
	}
	return entries
}

func TestNewWithAnchor(t *testing.T) {
	q := NewWithAnchor[int, int](NewPoint(-35, -35), 8)
	require.Equal(t, NewPoint(-35, -35), q.Anchor())
	require.Equal(t, uint(8), q.Depth())
	require.Equal(t, NewArea(NewPoint(-35, -35), 256, 256), q.Coverage())
	require.True(t, q.IsEmpty())
}

func TestInsertRoundTrip(t *testing.T) {
	q := New[int, string](6)
	region := NewArea(NewPoint(12, 7), 3, 2)

	id, err := q.Insert(region, "hello")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)
	require.Equal(t, 1, q.Len())

	entries := q.Query(region)
	e, ok := entries.Next()
	require.True(t, ok)
	require.Equal(t, id, e.UUID())
	require.Equal(t, region, e.Region)
	require.Equal(t, "hello", e.Value)

	_, ok = entries.Next()
	require.False(t, ok)
}

func TestInsertPreconditions(t *testing.T) {
	q := New[int, int](4)

	t.Run("Insert: region outside coverage", func(t *testing.T) {
		_, err := q.Insert(PointArea(NewPoint(-1, 0)), 1)
		require.Error(t, err)
		require.True(t, q.IsEmpty())
	})

	t.Run("Insert: region exceeding coverage", func(t *testing.T) {
		_, err := q.Insert(NewArea(NewPoint(10, 10), 10, 10), 1)
		require.Error(t, err)
		require.True(t, q.IsEmpty())
	})

	t.Run("Insert: negative dimensions", func(t *testing.T) {
		_, err := q.Insert(NewArea(NewPoint(1, 1), -1, 1), 1)
		require.Error(t, err)
		require.True(t, q.IsEmpty())
	})
}

func TestExtendAbortsOnFirstError(t *testing.T) {
	q := New[int, int](4)
	err := q.Extend([]Pair[int, int]{
		{Region: PointArea(NewPoint(1, 1)), Value: 1},
		{Region: PointArea(NewPoint(-1, -1)), Value: 2},
		{Region: PointArea(NewPoint(2, 2)), Value: 3},
	})
	require.Error(t, err)
	require.Equal(t, 1, q.Len())
}

func TestIterAll(t *testing.T) {
	q := mkIterTestTree(t)

	entries := collectEntries(q.Iter())
	require.Len(t, entries, 3)

	byValue := make(map[int]Area[int], len(entries))
	for _, e := range entries {
		byValue[e.Value] = e.Region
	}
	require.Equal(t, PointArea(NewPoint(0, -5)), byValue[10])
	require.Equal(t, PointArea(NewPoint(-15, 20)), byValue[-25])
	require.Equal(t, PointArea(NewPoint(30, -35)), byValue[40])
}

func TestModifyAll(t *testing.T) {
	q := mkIterTestTree(t)

	q.ModifyAll(func(v *int) { *v++ })

	require.ElementsMatch(t, []int{11, -24, 41}, q.Values())
	require.ElementsMatch(t, []Area[int]{
		PointArea(NewPoint(0, -5)),
		PointArea(NewPoint(-15, 20)),
		PointArea(NewPoint(30, -35)),
	}, q.Regions())
}

func TestRegionsAndValues(t *testing.T) {
	q := mkIterTestTree(t)

	require.ElementsMatch(t, []int{10, -25, 40}, q.Values())
	require.ElementsMatch(t, []Area[int]{
		PointArea(NewPoint(0, -5)),
		PointArea(NewPoint(-15, 20)),
		PointArea(NewPoint(30, -35)),
	}, q.Regions())
}

func TestDrain(t *testing.T) {
	q := mkIterTestTree(t)

	entries := q.Drain()
	require.Len(t, entries, 3)
	require.True(t, q.IsEmpty())

	values := make([]int, 0, len(entries))
	for _, e := range entries {
		values = append(values, e.Value)
	}
	require.ElementsMatch(t, []int{10, -25, 40}, values)
}

func TestDeleteEverything(t *testing.T) {
	q := mkIterTestTree(t)

	removed := q.Delete(NewArea(NewPoint(-35, -35), 80, 80))
	require.Len(t, removed, 3)
	require.Equal(t, 0, q.Len())
}

func TestDeleteRegion(t *testing.T) {
	q := mkIterTestTree(t)

	t.Run("Delete: near miss", func(t *testing.T) {
		removed := q.Delete(PointArea(NewPoint(29, -36)))
		require.Empty(t, removed)
		require.Equal(t, 3, q.Len())
	})

	t.Run("Delete: direct hit", func(t *testing.T) {
		removed := q.Delete(PointArea(NewPoint(30, -35)))
		require.Len(t, removed, 1)
		require.Equal(t, 2, q.Len())
		require.Equal(t, 40, removed[0].Value)
		require.Equal(t, PointArea(NewPoint(30, -35)), removed[0].Region)
	})
}

func TestDeleteRegionTwo(t *testing.T) {
	q := mkIterTestTree(t)

	// Just large enough to encompass two of the three points.
	removed := q.Delete(NewArea(NewPoint(-15, -5), 16, 26))
	require.Len(t, removed, 2)
	require.Equal(t, 1, q.Len())

	values := []int{removed[0].Value, removed[1].Value}
	require.ElementsMatch(t, []int{-25, 10}, values)
}

func TestDeleteLeavesNoIntersectingEntries(t *testing.T) {
	q := New[int, int](6)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		region := NewArea(NewPoint(rng.Intn(60), rng.Intn(60)), rng.Intn(4)+1, rng.Intn(4)+1)
		_, err := q.Insert(region, i)
		require.NoError(t, err)
	}

	req := NewArea(NewPoint(10, 10), 20, 20)
	before := q.Len()
	removed := q.Delete(req)
	require.Equal(t, before-len(removed), q.Len())

	for _, region := range q.Regions() {
		require.False(t, region.Intersects(req))
	}
	for _, e := range removed {
		require.True(t, e.Region.Intersects(req))
	}
}

func TestQueryDisjointRegion(t *testing.T) {
	q := mkIterTestTree(t)

	entries := collectEntries(q.Query(NewArea(NewPoint(100, 100), 5, 5)))
	require.Empty(t, entries)
	require.Equal(t, 3, q.Len())
}

func TestQueryMatchesBruteForce(t *testing.T) {
	q := New[int, int](6)
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 300; i++ {
		region := NewArea(NewPoint(rng.Intn(60), rng.Intn(60)), rng.Intn(4)+1, rng.Intn(4)+1)
		_, err := q.Insert(region, i)
		require.NoError(t, err)
	}

	requests := []Area[int]{
		PointArea(NewPoint(13, 27)),
		NewArea(NewPoint(0, 0), 64, 64),
		NewArea(NewPoint(30, 5), 9, 17),
		NewArea(NewPoint(55, 55), 20, 20),
	}

	for _, req := range requests {
		var wantOverlapping, wantStrict []int
		it := q.Iter()
		for e, ok := it.Next(); ok; e, ok = it.Next() {
			if req.Intersects(e.Region) {
				wantOverlapping = append(wantOverlapping, e.Value)
			}
			if req.Contains(e.Region) {
				wantStrict = append(wantStrict, e.Value)
			}
		}

		require.ElementsMatch(t, wantOverlapping, collectValues(q.Query(req)))
		require.ElementsMatch(t, wantStrict, collectValues(q.QueryStrict(req)))
	}
}

func TestReset(t *testing.T) {
	q := mkIterTestTree(t)

	q.Reset()
	require.Equal(t, 0, q.Len())
	require.True(t, q.IsEmpty())
	require.Equal(t, 1, q.DebugInfo().NodeCount)

	// The tree behaves as freshly constructed.
	_, err := q.InsertPt(NewPoint(30, -35), 40)
	require.NoError(t, err)
	require.Equal(t, []int{40}, collectValues(q.Query(PointArea(NewPoint(30, -35)))))
}

func TestDebugInfo(t *testing.T) {
	q := New[int, int](5)
	for i := 0; i <= nodeCapacity; i++ {
		_, err := q.InsertPt(NewPoint(i, i), i)
		require.NoError(t, err)
	}

	info := q.DebugInfo()
	require.Equal(t, uint(5), info.Depth)
	require.Equal(t, q.Len(), info.Entries)
	require.Greater(t, info.NodeCount, 1)
	require.Greater(t, info.SplitCount, 0)
	require.Contains(t, info.String(), "node_count")
}

func BenchmarkInsert(b *testing.B) {
	q := New[int, int](10)
	rng := rand.New(rand.NewSource(1))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		q.InsertPt(NewPoint(rng.Intn(1024), rng.Intn(1024)), i)
	}
}

func BenchmarkQuery(b *testing.B) {
	q := New[int, int](10)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10000; i++ {
		q.InsertPt(NewPoint(rng.Intn(1024), rng.Intn(1024)), i)
	}
	req := NewArea(NewPoint(500, 500), 16, 16)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		it := q.Query(req)
		for _, ok := it.Next(); ok; _, ok = it.Next() {
		}
	}
}
