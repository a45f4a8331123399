package spatial

import "sort"

// QueryRect returns every payload whose stored point lies inside the closed
// rectangle (x, y, x+w, y+h).
func (q *Quadtree[T]) QueryRect(x, y, w, h float64) []T {
	region := Bounds{X: x, Y: y, W: w, H: h}
	var out []T
	q.collectRect(region, &out)
	return out
}

func (q *Quadtree[T]) collectRect(region Bounds, out *[]T) {
	if !q.bounds.Intersects(region) {
		return
	}
	for _, e := range q.entries {
		if region.Contains(e.X, e.Y) {
			*out = append(*out, e.Data)
		}
	}
	if q.subdivided() {
		for _, c := range q.children {
			c.collectRect(region, out)
		}
	}
}

// QueryRadius returns every payload whose squared distance to (cx, cy) is
// <= r*r.
func (q *Quadtree[T]) QueryRadius(cx, cy, r float64) []T {
	r2 := r * r
	region := Bounds{X: cx - r, Y: cy - r, W: 2 * r, H: 2 * r}
	var out []T
	q.collectRadius(region, cx, cy, r2, &out)
	return out
}

func (q *Quadtree[T]) collectRadius(region Bounds, cx, cy, r2 float64, out *[]T) {
	if !q.bounds.Intersects(region) {
		return
	}
	for _, e := range q.entries {
		if sqDist(e.X, e.Y, cx, cy) <= r2 {
			*out = append(*out, e.Data)
		}
	}
	if q.subdivided() {
		for _, c := range q.children {
			c.collectRadius(region, cx, cy, r2, out)
		}
	}
}

func sqDist(x1, y1, x2, y2 float64) float64 {
	dx := x1 - x2
	dy := y1 - y2
	return dx*dx + dy*dy
}

// QueryNearest returns the k payloads nearest to (x, y), sorted
// nearest-first. Ties break by encounter order (GetEntries order). This is
// a correctness-first, brute-force collect-and-sort implementation rather
// than a proper k-d/heap nearest-neighbor walk.
func (q *Quadtree[T]) QueryNearest(x, y float64, k int) []T {
	if k <= 0 {
		return nil
	}
	entries := q.GetEntries()
	sort.SliceStable(entries, func(i, j int) bool {
		return sqDist(entries[i].X, entries[i].Y, x, y) < sqDist(entries[j].X, entries[j].Y, x, y)
	})
	if k > len(entries) {
		k = len(entries)
	}
	out := make([]T, k)
	for i := 0; i < k; i++ {
		out[i] = entries[i].Data
	}
	return out
}
