package rng

import "math"

// Simplex2D is a 2D simplex noise field over a permutation table derived
// from a forked Source, so two fields built from the same parent seed but
// different labels never correlate.
type Simplex2D struct {
	perm [512]int
}

// NewSimplex2D builds a noise field seeded from src (typically a label-
// specific fork; see Source.Fork).
func NewSimplex2D(src *Source) *Simplex2D {
	p := make([]int, 256)
	for i := range p {
		p[i] = i
	}
	// Fisher-Yates shuffle driven by the deterministic source.
	for i := len(p) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		p[i], p[j] = p[j], p[i]
	}
	n := &Simplex2D{}
	for i := 0; i < 512; i++ {
		n.perm[i] = p[i%256]
	}
	return n
}

var simplexGrad2 = [8][2]float64{
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
}

const (
	f2 = 0.3660254037844386  // 0.5*(sqrt(3)-1)
	g2 = 0.21132486540518713 // (3-sqrt(3))/6
)

// At returns simplex noise for (x, y), in roughly [-1, 1].
func (n *Simplex2D) At(x, y float64) float64 {
	s := (x + y) * f2
	i := math.Floor(x + s)
	j := math.Floor(y + s)

	t := (i + j) * g2
	x0 := x - (i - t)
	y0 := y - (j - t)

	var i1, j1 int
	if x0 > y0 {
		i1, j1 = 1, 0
	} else {
		i1, j1 = 0, 1
	}

	x1 := x0 - float64(i1) + g2
	y1 := y0 - float64(j1) + g2
	x2 := x0 - 1 + 2*g2
	y2 := y0 - 1 + 2*g2

	ii := int(i) & 255
	jj := int(j) & 255

	n0 := n.corner(ii, jj, x0, y0)
	n1 := n.corner(ii+i1, jj+j1, x1, y1)
	n2 := n.corner(ii+1, jj+1, x2, y2)

	return 70 * (n0 + n1 + n2)
}

func (n *Simplex2D) corner(i, j int, x, y float64) float64 {
	t := 0.5 - x*x - y*y
	if t < 0 {
		return 0
	}
	gi := n.perm[(i&255)+n.perm[j&255]] % 8
	g := simplexGrad2[gi]
	t *= t
	return t * t * (g[0]*x + g[1]*y)
}
