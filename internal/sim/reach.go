package sim

import (
	"github.com/vovakirdan/levelsim/internal/core"
	"github.com/vovakirdan/levelsim/internal/physics"
	"github.com/vovakirdan/levelsim/internal/tilemap"
)

// Reachability is the result of one breadth-first search.
type Reachability struct {
	Start       tilemap.Stand
	Transitions []Transition // accepted edges, in discovery order

	order   []tilemap.Stand // visited stands, in visitation order
	visited map[tilemap.StandKey]bool
}

// Stands returns the reachable stands in visitation order, start first.
func (r *Reachability) Stands() []tilemap.Stand {
	return r.order
}

// Contains reports whether the stand with key k was reached.
func (r *Reachability) Contains(k tilemap.StandKey) bool {
	return r.visited[k]
}

// Len returns the number of reachable stands.
func (r *Reachability) Len() int {
	return len(r.order)
}

// Count returns how many accepted transitions have difficulty d.
func (r *Reachability) Count(d Difficulty) int {
	n := 0
	for _, t := range r.Transitions {
		if t.Difficulty == d {
			n++
		}
	}
	return n
}

// HardRatio returns the share of accepted transitions graded hard.
func (r *Reachability) HardRatio() float64 {
	if len(r.Transitions) == 0 {
		return 0
	}
	return float64(r.Count(Hard)) / float64(len(r.Transitions))
}

// Reach runs a breadth-first search from the stand under start. A stand is
// enqueued the first time any visited stand within the horizontal window
// has a non-impossible transition to it.
func (s *Simulator) Reach(start tilemap.Coord, a physics.Animal) *Reachability {
	e := s.evaluator(a)
	stands := s.grid.Stands()
	first := s.grid.StartStand(start)

	r := &Reachability{
		Start:   first,
		order:   []tilemap.Stand{first},
		visited: map[tilemap.StandKey]bool{first.Key(): true},
	}

	for head := 0; head < len(r.order); head++ {
		cur := r.order[head]
		for _, target := range stands {
			if r.visited[target.Key()] || core.Abs(target.X-cur.X) > s.window {
				continue
			}
			t := e.eval(cur, target)
			if t.Difficulty == Impossible {
				continue
			}
			r.visited[target.Key()] = true
			r.order = append(r.order, target)
			r.Transitions = append(r.Transitions, t)
		}
	}
	return r
}
