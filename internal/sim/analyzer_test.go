package sim_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/levelsim/internal/config"
	"github.com/vovakirdan/levelsim/internal/levels"
	"github.com/vovakirdan/levelsim/internal/lint"
	"github.com/vovakirdan/levelsim/internal/sim"
)

func defaultConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.Load(config.Paths{})
	require.NoError(t, err)
	return cfg
}

func builtinLevel(t *testing.T, id string) *levels.Level {
	t.Helper()
	lvl, err := levels.Builtin().LoadByID(id)
	require.NoError(t, err)
	return &lvl
}

func analyze(t *testing.T, id string, workers int) sim.LevelResult {
	t.Helper()
	an := sim.NewAnalyzer(defaultConfig(t), nil, workers)
	res, err := an.Analyze(context.Background(), builtinLevel(t, id))
	require.NoError(t, err)
	return res
}

func byID(res sim.LevelResult) map[string]sim.AnimalResult {
	out := make(map[string]sim.AnimalResult, len(res.Animals))
	for _, a := range res.Animals {
		out[a.Animal.ID] = a
	}
	return out
}

func TestAnalyzeRooftopGardenPassesForEveryAnimal(t *testing.T) {
	res := analyze(t, "rooftop-garden", 0)

	assert.Empty(t, res.Structural)
	require.Len(t, res.Animals, 16)
	assert.True(t, res.Passed(false))
	assert.True(t, res.Passed(true))
	assert.Zero(t, res.IssueCount())
	assert.Empty(t, res.BelowFunTarget())

	for _, a := range res.Animals {
		assert.True(t, a.Nest, a.Animal.ID)
		assert.Equal(t, len(res.Eggs), a.EggsCollected(), a.Animal.ID)
		assert.Equal(t, len(res.Level.Slides), a.SlidesReached(), a.Animal.ID)
	}
	assert.Equal(t, 100, byID(res)["bunny"].FunScore)
}

func TestAnalyzeKeepsAnimalTableOrder(t *testing.T) {
	cfg := defaultConfig(t)
	res := analyze(t, "rooftop-garden", 3)

	require.Len(t, res.Animals, len(cfg.Animals))
	for i, a := range cfg.Animals {
		assert.Equal(t, a.ID, res.Animals[i].Animal.ID)
	}
}

func TestAnalyzeCityParkSlowAnimalsMissHighEgg(t *testing.T) {
	res := analyze(t, "city-park", 0)
	animals := byID(res)

	assert.False(t, res.Passed(false))
	assert.NotEmpty(t, res.Structural)

	for _, id := range []string{"penguin", "turtle"} {
		a := animals[id]
		assert.False(t, a.Passed(), id)
		assert.Equal(t, []string{"Cannot get egg (30,6) [hard]: no reachable position near egg"}, a.Issues, id)
		assert.True(t, a.Nest, id)
		assert.Less(t, a.FunScore, 100, id)
	}
	assert.Equal(t, 79, animals["turtle"].FunScore)

	for _, id := range []string{"bunny", "cat", "bird", "fox"} {
		assert.True(t, animals[id].Passed(), id)
	}
	assert.Equal(t, 2, res.IssueCount())
}

func TestAnalyzeUndergroundTunnelsFails(t *testing.T) {
	res := analyze(t, "underground-tunnels", 0)

	assert.False(t, res.Passed(false))
	for _, a := range res.Animals {
		assert.Contains(t, a.Issues, "Cannot reach water slide 1", a.Animal.ID)
		assert.True(t, a.Nest, a.Animal.ID)
	}
	assert.Len(t, res.BelowFunTarget(), len(res.Animals))
}

func TestAnalyzeDeterministic(t *testing.T) {
	first := analyze(t, "city-park", 0)
	second := analyze(t, "city-park", 1)
	first.Elapsed, second.Elapsed = 0, 0

	assert.Equal(t, first.Structural, second.Structural)
	assert.Equal(t, first.Animals, second.Animals)
}

func TestAnalyzeEggsUsesGivenEggs(t *testing.T) {
	lvl := builtinLevel(t, "rooftop-garden")
	eggs := levels.SelectEggs(lvl.Spawns, rand.New(rand.NewSource(7)))
	require.Len(t, eggs, 3)

	an := sim.NewAnalyzer(defaultConfig(t), nil, 0)
	res, err := an.AnalyzeEggs(context.Background(), lvl, eggs)
	require.NoError(t, err)

	assert.Equal(t, eggs, res.Eggs)
	for _, a := range res.Animals {
		require.Len(t, a.Eggs, 3)
		for i, e := range a.Eggs {
			assert.Equal(t, eggs[i].Pos, e.Pos)
			assert.Equal(t, eggs[i].Difficulty, e.Tier)
		}
	}
}

func TestAnalyzeSkipRules(t *testing.T) {
	an := sim.NewAnalyzer(defaultConfig(t), nil, 0)
	an.SkipRules(map[string]bool{"platform-gap": true})

	res, err := an.Analyze(context.Background(), builtinLevel(t, "city-park"))
	require.NoError(t, err)
	for _, is := range res.Structural {
		assert.NotEqual(t, "platform-gap", is.Rule)
	}
}

func TestAnalyzeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	an := sim.NewAnalyzer(defaultConfig(t), nil, 2)
	_, err := an.Analyze(ctx, builtinLevel(t, "rooftop-garden"))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "rooftop-garden")
}

func TestLevelResultPassedStrict(t *testing.T) {
	res := sim.LevelResult{
		Animals: []sim.AnimalResult{{FunScore: 90}, {FunScore: 60}},
		Rules:   config.DefaultRulebook(),
	}
	assert.True(t, res.Passed(true))
	assert.InDelta(t, 75.0, res.AvgFun(), 1e-9)
	require.Len(t, res.BelowFunTarget(), 1)
	assert.Equal(t, 60, res.BelowFunTarget()[0].FunScore)

	res.Animals[1].Issues = []string{sim.IssueNest}
	assert.False(t, res.Passed(false))
	assert.Equal(t, 1, res.IssueCount())

	res.Animals[1].Issues = nil
	res.Structural = []lint.Issue{{Rule: "gap-width", Message: "GAP TOO WIDE at x=4 (3 tiles, max 2)"}}
	assert.True(t, res.Passed(false))
	assert.False(t, res.Passed(true))
}
