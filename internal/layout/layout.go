package layout

import (
	"math"
	"math/rand"

	"github.com/ziadkadry99/asset-atlas/internal/graph"
)

// Point is a 2-D node position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Positions maps node ids to coordinates.
type Positions map[string]Point

// Engine places the nodes of a graph. Implementations must return a position
// for every node of g.
type Engine interface {
	Layout(g *graph.Digraph) Positions
}

// Spring is a Fruchterman-Reingold force-directed layout. Runs with the same
// Seed on the same graph produce the same positions. Output is scaled so the
// largest coordinate magnitude is 1.
type Spring struct {
	K          float64 // optimal node distance; 0 means 1/sqrt(n)
	Iterations int
	Seed       int64
}

// DefaultSpring mirrors the classic spring_layout(k=0.5, iterations=50).
func DefaultSpring() Spring {
	return Spring{K: 0.5, Iterations: 50, Seed: 1}
}

// Layout implements Engine.
func (s Spring) Layout(g *graph.Digraph) Positions {
	nodes := g.Nodes()
	n := len(nodes)
	out := make(Positions, n)
	switch n {
	case 0:
		return out
	case 1:
		out[nodes[0]] = Point{}
		return out
	}

	rng := rand.New(rand.NewSource(s.Seed))
	pos := make([]Point, n)
	for i := range pos {
		pos[i] = Point{X: rng.Float64(), Y: rng.Float64()}
	}
	index := make(map[string]int, n)
	for i, id := range nodes {
		index[id] = i
	}

	k := s.K
	if k <= 0 {
		k = 1 / math.Sqrt(float64(n))
	}
	iters := s.Iterations
	if iters <= 0 {
		iters = 50
	}

	// Edge direction does not matter for attraction.
	type pair struct{ a, b int }
	var springs []pair
	for _, e := range g.Edges() {
		a, b := index[e.Source], index[e.Target]
		if a != b {
			springs = append(springs, pair{a, b})
		}
	}

	temp := 0.1
	cool := temp / float64(iters+1)
	disp := make([]Point, n)
	for it := 0; it < iters; it++ {
		for i := range disp {
			disp[i] = Point{}
		}
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				dx, dy, d := delta(pos[i], pos[j])
				f := k * k / d
				disp[i].X += dx / d * f
				disp[i].Y += dy / d * f
				disp[j].X -= dx / d * f
				disp[j].Y -= dy / d * f
			}
		}
		for _, p := range springs {
			dx, dy, d := delta(pos[p.a], pos[p.b])
			f := d * d / k
			disp[p.a].X -= dx / d * f
			disp[p.a].Y -= dy / d * f
			disp[p.b].X += dx / d * f
			disp[p.b].Y += dy / d * f
		}
		for i := range pos {
			l := math.Hypot(disp[i].X, disp[i].Y)
			if l < 1e-9 {
				continue
			}
			step := math.Min(l, temp)
			pos[i].X += disp[i].X / l * step
			pos[i].Y += disp[i].Y / l * step
		}
		temp -= cool
	}

	rescale(pos)
	for i, id := range nodes {
		out[id] = pos[i]
	}
	return out
}

// delta returns a-b and its length, never less than a small epsilon so
// coincident nodes still repel.
func delta(a, b Point) (dx, dy, d float64) {
	dx, dy = a.X-b.X, a.Y-b.Y
	d = math.Hypot(dx, dy)
	if d < 0.01 {
		d = 0.01
	}
	return dx, dy, d
}

// rescale centres pos on the origin and scales it into [-1, 1].
func rescale(pos []Point) {
	var cx, cy float64
	for _, p := range pos {
		cx += p.X
		cy += p.Y
	}
	cx /= float64(len(pos))
	cy /= float64(len(pos))

	var lim float64
	for i := range pos {
		pos[i].X -= cx
		pos[i].Y -= cy
		lim = math.Max(lim, math.Max(math.Abs(pos[i].X), math.Abs(pos[i].Y)))
	}
	if lim == 0 {
		return
	}
	for i := range pos {
		pos[i].X /= lim
		pos[i].Y /= lim
	}
}
