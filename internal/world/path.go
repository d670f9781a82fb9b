package world

import (
	"math"

	"github.com/zyedidia/generic/heap"
)

// OccupiedCost is the step cost of a tile another actor stands on. High enough
// to route around a blocker, finite so a path still exists behind it.
const OccupiedCost = 1000.0

// Heuristic estimates the remaining cost from a position to the goal.
type Heuristic func(from, goal Position) float64

// Chebyshev is the 8-way grid distance. Admissible, since no step costs less than 1.
func Chebyshev(from, goal Position) float64 {
	return float64(from.Chebyshev(goal))
}

// Euclidean is the straight-line distance. It overestimates diagonal moves, so
// the path it finds is not guaranteed to be the cheapest.
func Euclidean(from, goal Position) float64 {
	return from.Euclidean(goal)
}

// PathOptions tunes a search. A nil Heuristic runs plain Dijkstra.
type PathOptions struct {
	Heuristic Heuristic
	Occupied  Occupancy
}

type frontierNode struct {
	pos      Position
	priority float64
	seq      int // insertion order, breaks priority ties
}

// Search finds the cheapest path from origin to goal over the eight
// neighbours of each tile. The result includes both ends. It is empty when
// either end is a wall or out of bounds, or when no path exists.
func Search(g *Grid, origin, goal Position, opts PathOptions) []Position {
	if !g.InBounds(origin) || !g.InBounds(goal) {
		return nil
	}
	if g.TypeAt(origin) == TileWall || g.TypeAt(goal) == TileWall {
		return nil
	}
	if origin == goal {
		return []Position{origin}
	}

	n := g.Width * g.Height
	dist := make([]float64, n)
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	came := make([]int, n)
	for i := range came {
		came[i] = -1
	}
	closed := make([]bool, n)

	frontier := heap.New[frontierNode](func(a, b frontierNode) bool {
		if a.priority != b.priority {
			return a.priority < b.priority
		}
		return a.seq < b.seq
	})
	seq := 0
	push := func(p Position, priority float64) {
		frontier.Push(frontierNode{pos: p, priority: priority, seq: seq})
		seq++
	}

	start, target := g.index(origin), g.index(goal)
	dist[start] = 0
	push(origin, 0)

	for frontier.Size() > 0 {
		node, _ := frontier.Pop()
		cur := g.index(node.pos)
		if closed[cur] {
			continue
		}
		if cur == target {
			break
		}
		closed[cur] = true

		for _, d := range neighbours8 {
			next := node.pos.Add(d)
			if !g.InBounds(next) {
				continue
			}
			ni := g.index(next)
			if closed[ni] {
				continue
			}
			step := g.stepCost(next, goal, opts.Occupied)
			if math.IsInf(step, 1) {
				continue
			}
			cost := dist[cur] + step
			if cost >= dist[ni] {
				continue
			}
			dist[ni] = cost
			came[ni] = cur

			priority := cost
			if opts.Heuristic != nil {
				priority += opts.Heuristic(next, goal)
			}
			push(next, priority)
		}
	}

	if came[target] < 0 {
		return nil
	}

	var path []Position
	for i := target; i >= 0; i = came[i] {
		path = append(path, g.position(i))
		if i == start {
			break
		}
	}
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path
}

// stepCost is the cost of entering p. An occupied tile other than the goal
// costs OccupiedCost instead of its terrain cost.
func (g *Grid) stepCost(p, goal Position, occupied Occupancy) float64 {
	t, _ := g.Tile(p)
	if !t.IsPassable() {
		return t.Cost
	}
	if occupied != nil && p != goal && occupied.Occupied(p) {
		return OccupiedCost
	}
	return t.Cost
}

// FindPath runs A* with the Chebyshev heuristic, avoiding actors reported by
// the grid's occupancy predicate.
func (g *Grid) FindPath(origin, goal Position) []Position {
	return Search(g, origin, goal, PathOptions{
		Heuristic: Chebyshev,
		Occupied:  g.occupancy,
	})
}
