// Package spatial implements a generic axis-aligned quadtree for
// proximity queries over arbitrary payload types.
package spatial

// Bounds is an axis-aligned rectangle, closed on all four edges.
type Bounds struct {
	X, Y, W, H float64
}

// Contains reports whether (x, y) lies within the closed rectangle.
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.X && x <= b.X+b.W && y >= b.Y && y <= b.Y+b.H
}

// Intersects reports whether b and o overlap (closed rectangles).
func (b Bounds) Intersects(o Bounds) bool {
	return b.X <= o.X+o.W && b.X+b.W >= o.X && b.Y <= o.Y+o.H && b.Y+b.H >= o.Y
}

// Entry is one stored (position, payload) pair.
type Entry[T comparable] struct {
	X, Y float64
	Data T
}

const (
	defaultMaxEntries = 8
	defaultMaxDepth   = 8
)

// Quadtree is a generic, axis-aligned quadtree. A node subdivides once its
// own entry count exceeds maxEntries and its depth is below maxDepth; on
// subdivision, existing entries are redistributed to the four children. A
// point on a shared child boundary goes to the first child (NW, NE, SW, SE
// order) whose closed bounds contain it; an entry that no child contains
// stays on the parent as a fallback bucket entry. No entry is ever lost: every entry
// lives either on a leaf or on a subdivided parent's fallback bucket.
type Quadtree[T comparable] struct {
	bounds     Bounds
	maxEntries int
	maxDepth   int
	depth      int

	entries  []Entry[T]
	children [4]*Quadtree[T] // nil until subdivided
}

// New creates a root Quadtree covering bounds with the default maxEntries
// (8) and maxDepth (8).
func New[T comparable](bounds Bounds) *Quadtree[T] {
	return NewWithLimits[T](bounds, defaultMaxEntries, defaultMaxDepth)
}

// NewWithLimits creates a root Quadtree with explicit subdivision limits.
func NewWithLimits[T comparable](bounds Bounds, maxEntries, maxDepth int) *Quadtree[T] {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}
	return &Quadtree[T]{bounds: bounds, maxEntries: maxEntries, maxDepth: maxDepth}
}

func (q *Quadtree[T]) subdivided() bool {
	return q.children[0] != nil
}

func (q *Quadtree[T]) subdivide() {
	hw, hh := q.bounds.W/2, q.bounds.H/2
	x, y := q.bounds.X, q.bounds.Y
	quads := [4]Bounds{
		{X: x, Y: y, W: hw, H: hh},           // NW
		{X: x + hw, Y: y, W: hw, H: hh},       // NE
		{X: x, Y: y + hh, W: hw, H: hh},       // SW
		{X: x + hw, Y: y + hh, W: hw, H: hh},  // SE
	}
	for i, b := range quads {
		q.children[i] = NewWithLimits[T](b, q.maxEntries, q.maxDepth)
		q.children[i].depth = q.depth + 1
	}

	kept := q.entries[:0]
	for _, e := range q.entries {
		if child := q.childFor(e.X, e.Y); child != nil {
			child.entries = append(child.entries, e)
		} else {
			kept = append(kept, e)
		}
	}
	q.entries = kept
}

// childFor returns the first child whose bounds contain (x, y), or nil if
// none do (the node is not subdivided, or the point is outside it). A point
// on a shared boundary goes to the first child that contains it.
func (q *Quadtree[T]) childFor(x, y float64) *Quadtree[T] {
	if !q.subdivided() {
		return nil
	}
	for _, c := range q.children {
		if c.bounds.Contains(x, y) {
			return c
		}
	}
	return nil
}

// Insert adds (x, y, data) to the tree. Returns false without modifying the
// tree if (x, y) is outside the root bounds.
func (q *Quadtree[T]) Insert(x, y float64, data T) bool {
	if !q.bounds.Contains(x, y) {
		return false
	}
	q.insert(x, y, data)
	return true
}

func (q *Quadtree[T]) insert(x, y float64, data T) {
	if q.subdivided() {
		if child := q.childFor(x, y); child != nil {
			child.insert(x, y, data)
			return
		}
		q.entries = append(q.entries, Entry[T]{X: x, Y: y, Data: data})
		return
	}

	q.entries = append(q.entries, Entry[T]{X: x, Y: y, Data: data})
	if len(q.entries) > q.maxEntries && q.depth < q.maxDepth {
		q.subdivide()
	}
}

// Remove deletes the first entry matching both the exact position and
// payload equality, found in depth-first order (this node's own fallback
// entries, then each child in turn). Returns true if an entry was removed.
func (q *Quadtree[T]) Remove(x, y float64, data T) bool {
	for i, e := range q.entries {
		if e.X == x && e.Y == y && e.Data == data {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return true
		}
	}
	if q.subdivided() {
		for _, c := range q.children {
			if c.Remove(x, y, data) {
				return true
			}
		}
	}
	return false
}

// Size returns the total number of entries stored anywhere in the tree.
func (q *Quadtree[T]) Size() int {
	n := len(q.entries)
	if q.subdivided() {
		for _, c := range q.children {
			n += c.Size()
		}
	}
	return n
}

// Clear empties the tree back to an unsubdivided root with no entries.
func (q *Quadtree[T]) Clear() {
	q.entries = nil
	q.children = [4]*Quadtree[T]{}
}

// GetBounds returns the node's bounds.
func (q *Quadtree[T]) GetBounds() Bounds { return q.bounds }

// GetDepth returns the node's depth (0 for the root).
func (q *Quadtree[T]) GetDepth() int { return q.depth }

// GetEntries returns every entry stored anywhere in the tree, in no
// particular order.
func (q *Quadtree[T]) GetEntries() []Entry[T] {
	out := append([]Entry[T](nil), q.entries...)
	if q.subdivided() {
		for _, c := range q.children {
			out = append(out, c.GetEntries()...)
		}
	}
	return out
}

// Rebalance collects every entry currently stored anywhere in the tree and
// re-inserts them all from scratch against the root's bounds, maxEntries
// and maxDepth, producing the same shape a fresh tree bulk-loaded with
// those entries would have. Useful after many remove/insert cycles have
// skewed node populations.
func (q *Quadtree[T]) Rebalance() {
	all := q.GetEntries()
	q.Clear()
	for _, e := range all {
		q.insert(e.X, e.Y, e.Data)
	}
}
