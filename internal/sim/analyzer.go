package sim

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/levelsim/internal/config"
	"github.com/vovakirdan/levelsim/internal/levels"
	"github.com/vovakirdan/levelsim/internal/lint"
	"github.com/vovakirdan/levelsim/internal/physics"
	"github.com/vovakirdan/levelsim/internal/registry"
	"github.com/vovakirdan/levelsim/internal/tilemap"
)

// Issue strings recorded per animal.
const IssueNest = "CANNOT REACH NEST"

// AnimalResult is the full verdict for one animal on one level.
type AnimalResult struct {
	Animal          physics.Animal
	Nest            bool
	Eggs            []EggResult
	Slides          []bool
	Stands          int
	Transitions     int
	HardTransitions int
	FunScore        int
	Issues          []string
}

// Passed reports whether the animal has no unresolved issues.
func (r AnimalResult) Passed() bool {
	return len(r.Issues) == 0
}

// EggsCollected returns how many eggs the animal can pick up.
func (r AnimalResult) EggsCollected() int {
	n := 0
	for _, e := range r.Eggs {
		if e.Collectable() {
			n++
		}
	}
	return n
}

// SlidesReached returns how many slides the animal can get to.
func (r AnimalResult) SlidesReached() int {
	n := 0
	for _, ok := range r.Slides {
		if ok {
			n++
		}
	}
	return n
}

// LevelResult aggregates every animal's verdict and the structural lint
// findings for one level.
type LevelResult struct {
	Level      *levels.Level
	Eggs       []levels.Egg // the eggs every animal was checked against
	Structural []lint.Issue
	Animals    []AnimalResult // in animal table order
	Rules      config.Rulebook
	Elapsed    time.Duration
}

// Passed reports whether every animal is free of issues. With strict set,
// structural findings fail the level too.
func (r LevelResult) Passed(strict bool) bool {
	if strict && len(r.Structural) > 0 {
		return false
	}
	for _, a := range r.Animals {
		if !a.Passed() {
			return false
		}
	}
	return true
}

// AvgFun returns the mean fun score across animals.
func (r LevelResult) AvgFun() float64 {
	if len(r.Animals) == 0 {
		return 0
	}
	sum := 0
	for _, a := range r.Animals {
		sum += a.FunScore
	}
	return float64(sum) / float64(len(r.Animals))
}

// BelowFunTarget lists animals scoring under the rulebook's minimum.
func (r LevelResult) BelowFunTarget() []AnimalResult {
	var out []AnimalResult
	for _, a := range r.Animals {
		if a.FunScore < r.Rules.MinFunScore {
			out = append(out, a)
		}
	}
	return out
}

// IssueCount returns the total number of per-animal issues.
func (r LevelResult) IssueCount() int {
	n := 0
	for _, a := range r.Animals {
		n += len(a.Issues)
	}
	return n
}

// Analyzer runs the full per-animal analysis for levels.
type Analyzer struct {
	cfg     config.Config
	engine  *physics.Engine
	logger  *log.Logger
	workers int
	skip    map[string]bool
}

// NewAnalyzer creates an analyzer. A nil logger discards output; workers
// below 1 means one worker per animal.
func NewAnalyzer(cfg config.Config, logger *log.Logger, workers int) *Analyzer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Analyzer{
		cfg:     cfg,
		engine:  physics.NewEngine(cfg.Physics),
		logger:  logger,
		workers: workers,
	}
}

// SkipRules excludes structural rules by ID from subsequent runs.
func (an *Analyzer) SkipRules(skip map[string]bool) {
	an.skip = skip
}

// Engine returns the analyzer's kinematics engine.
func (an *Analyzer) Engine() *physics.Engine {
	return an.engine
}

// Analyze checks every spawn point of the level as an egg.
func (an *Analyzer) Analyze(ctx context.Context, lvl *levels.Level) (LevelResult, error) {
	eggs := make([]levels.Egg, len(lvl.Spawns))
	for i, sp := range lvl.Spawns {
		eggs[i] = levels.Egg{Pos: sp.Pos, Difficulty: sp.Difficulty}
	}
	return an.AnalyzeEggs(ctx, lvl, eggs)
}

// AnalyzeEggs checks the given eggs. Animals are analyzed concurrently;
// results keep the animal table's order.
func (an *Analyzer) AnalyzeEggs(ctx context.Context, lvl *levels.Level, eggs []levels.Egg) (LevelResult, error) {
	started := time.Now()
	res := LevelResult{
		Level:      lvl,
		Eggs:       eggs,
		Structural: lint.RunContext(registry.NewContext(lvl, an.cfg.Rules), an.skip),
		Animals:    make([]AnimalResult, len(an.cfg.Animals)),
		Rules:      an.cfg.Rules,
	}
	an.logger.Debug("lint done", "level", lvl.ID, "issues", len(res.Structural))

	s := New(lvl.Grid, an.engine)

	g, gctx := errgroup.WithContext(ctx)
	if an.workers > 0 {
		g.SetLimit(an.workers)
	}
	for i, a := range an.cfg.Animals {
		i, a := i, a
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res.Animals[i] = an.analyzeAnimal(s, lvl, eggs, a)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return LevelResult{}, fmt.Errorf("analyzing %s: %w", lvl.ID, err)
	}

	res.Elapsed = time.Since(started)
	an.logger.Info("level analyzed", "level", lvl.ID, "animals", len(res.Animals),
		"issues", res.IssueCount(), "avg_fun", fmt.Sprintf("%.1f", res.AvgFun()), "elapsed", res.Elapsed)
	return res, nil
}

func (an *Analyzer) analyzeAnimal(s *Simulator, lvl *levels.Level, eggs []levels.Egg, a physics.Animal) AnimalResult {
	reach := s.Reach(lvl.Start, a)
	res := AnimalResult{
		Animal:          a,
		Stands:          reach.Len(),
		Transitions:     len(reach.Transitions),
		HardTransitions: reach.Count(Hard),
	}

	res.Nest = NestReachable(lvl.Nest, reach)
	if !res.Nest {
		res.Issues = append(res.Issues, IssueNest)
	}

	hardEggs := 0
	for _, egg := range eggs {
		er := s.EggAccess(egg.Pos, egg.Difficulty, reach, a)
		res.Eggs = append(res.Eggs, er)
		if !er.Collectable() {
			res.Issues = append(res.Issues, eggIssue(egg.Pos, egg.Difficulty, er.Reason))
		}
		if er.Difficulty == Hard {
			hardEggs++
		}
	}

	for i, slide := range lvl.Slides {
		ok := SlideReachable(slide, reach)
		res.Slides = append(res.Slides, ok)
		if !ok {
			res.Issues = append(res.Issues, fmt.Sprintf("Cannot reach water slide %d", i+1))
		}
	}

	res.FunScore = FunScore(FunInputs{
		Animal:    a,
		Eggs:      res.EggsCollected(),
		HardEggs:  hardEggs,
		Nest:      res.Nest,
		Slides:    res.SlidesReached(),
		HardRatio: reach.HardRatio(),
		Issues:    len(res.Issues),
	})

	an.logger.Debug("animal analyzed", "level", lvl.ID, "animal", a.ID,
		"stands", res.Stands, "transitions", res.Transitions, "hard", res.HardTransitions,
		"fun", res.FunScore)
	return res
}

func eggIssue(pos tilemap.Coord, tier levels.Difficulty, reason string) string {
	return fmt.Sprintf("Cannot get egg %s [%s]: %s", pos, tier, reason)
}
