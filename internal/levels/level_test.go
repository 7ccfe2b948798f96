package levels_test

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/levelsim/internal/levels"
	"github.com/vovakirdan/levelsim/internal/tilemap"
)

func TestBuiltinLevels(t *testing.T) {
	all, err := levels.Builtin().LoadAll()
	require.NoError(t, err)
	require.Len(t, all, 3)

	testCases := []struct {
		id        string
		number    int
		w, h      int
		spawns    int
		slides    int
		groundRow int
	}{
		{"rooftop-garden", 1, 50, 16, 12, 2, 13},
		{"city-park", 2, 52, 16, 12, 2, 13},
		{"underground-tunnels", 3, 48, 18, 12, 1, 15},
	}

	for i, tc := range testCases {
		t.Run(tc.id, func(t *testing.T) {
			lvl := all[i]
			assert.Equal(t, tc.id, lvl.ID)
			assert.Equal(t, tc.number, lvl.Number)
			assert.Equal(t, tc.w, lvl.Grid.W)
			assert.Equal(t, tc.h, lvl.Grid.H)
			assert.Len(t, lvl.Spawns, tc.spawns)
			assert.Len(t, lvl.Slides, tc.slides)
			assert.Equal(t, tc.groundRow, lvl.GroundRow())
		})
	}
}

func TestRooftopGardenDetails(t *testing.T) {
	lvl, err := levels.Builtin().LoadByID("rooftop-garden")
	require.NoError(t, err)

	assert.Equal(t, "Level 1: Rooftop Garden", lvl.Title())
	assert.Equal(t, tilemap.C(2, 12), lvl.Start)
	assert.Equal(t, tilemap.C(48, 12), lvl.Nest)
	assert.Equal(t, 40*time.Second, lvl.Medals.Gold)
	assert.Len(t, lvl.SpawnsBy(levels.Easy), 6)
	assert.Len(t, lvl.SpawnsBy(levels.Medium), 4)
	assert.Len(t, lvl.SpawnsBy(levels.Hard), 2)

	assert.Equal(t, tilemap.C(20, 10), lvl.Slides[0].EntryTile())
	assert.Equal(t, tilemap.C(39, 8), lvl.Slides[1].EntryTile())

	assert.Equal(t, tilemap.Wall, lvl.Grid.At(28, 7))
	assert.Equal(t, tilemap.Empty, lvl.Grid.At(15, 13), "gap in the sidewalk")
	assert.Equal(t, tilemap.Platform, lvl.Grid.At(38, 8))
}

func TestCityParkCarriesExtras(t *testing.T) {
	lvl, err := levels.Builtin().LoadByID("city-park")
	require.NoError(t, err)

	require.Len(t, lvl.MovingPlatforms, 2)
	assert.Equal(t, 3*time.Second, lvl.MovingPlatforms[0].Duration)
	require.Len(t, lvl.WindZones, 1)
	assert.Equal(t, "right", lvl.WindZones[0].Direction)
	require.Len(t, lvl.Puddles, 1)
	assert.Equal(t, 0.5, lvl.Puddles[0].SlowFactor)
}

func TestSlideSampleEndpoints(t *testing.T) {
	s := levels.WaterSlide{
		Top:    levels.Point{X: 640, Y: 320},
		Bottom: levels.Point{X: 800, Y: 400},
		Curve:  levels.Point{X: 736, Y: 320},
	}

	assert.Equal(t, s.Top, s.Sample(0))
	assert.Equal(t, s.Bottom, s.Sample(1))
	mid := s.Sample(0.5)
	assert.InDelta(t, 728.0, mid.X, 1e-9)
	assert.InDelta(t, 340.0, mid.Y, 1e-9)
}

func TestSlideEntryTileRoundsHalfUp(t *testing.T) {
	s := levels.WaterSlide{Top: levels.Point{X: 48, Y: 80}}
	assert.Equal(t, tilemap.C(2, 3), s.EntryTile())
}

func TestLoaderDirectory(t *testing.T) {
	loader := levels.NewLoader(filepath.Join("testdata", "levels"))

	ids, err := loader.ListIDs()
	require.NoError(t, err)
	// "tiny" has no number, so it sorts before numbered levels.
	assert.Equal(t, []string{"tiny", "flat"}, ids)

	tiny, err := loader.LoadByID("tiny")
	require.NoError(t, err)
	assert.Equal(t, "Tiny Test Level", tiny.Title())
	assert.Equal(t, filepath.Join("testdata", "levels", "tiny.yaml"), tiny.FilePath)
	assert.Equal(t, 3, tiny.GroundRow())

	_, err = loader.LoadByID("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "level not found")
}

func TestLoadAllRejectsDuplicateIDs(t *testing.T) {
	body := []byte("id: same\nplayer_start: {x: 0, y: 0}\nnest: {x: 0, y: 0}\ntiles: [\"=\"]\n")
	loader := &levels.Loader{
		FS: fstest.MapFS{
			"a.yaml": {Data: body},
			"b.yaml": {Data: body},
		},
		Root: "mem",
	}

	_, err := loader.LoadAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate level id")
}

func TestLoadAllFailsOnInvalidFile(t *testing.T) {
	loader := &levels.Loader{
		FS: fstest.MapFS{
			"good.yaml": {Data: []byte("id: good\nplayer_start: {x: 0, y: 0}\nnest: {x: 0, y: 0}\ntiles: [\"=\"]\n")},
			"bad.yaml":  {Data: []byte("id: bad\nplayer_start: {x: 0, y: 0}\nnest: {x: 0, y: 0}\ntiles: [\"==\", \"=\"]\n")},
		},
		Root: "mem",
	}

	_, err := loader.LoadAll()
	require.Error(t, err)

	var verr levels.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "NOT_RECTANGULAR", verr.Code)
}

func TestValidationErrors(t *testing.T) {
	const grid = "tiles:\n  - \"....\"\n  - \"====\"\n"

	testCases := []struct {
		name string
		body string
		code string
	}{
		{"missing id", "player_start: {x: 0, y: 0}\nnest: {x: 0, y: 0}\n" + grid, "MISSING_ID"},
		{"no tiles", "id: x\nplayer_start: {x: 0, y: 0}\nnest: {x: 0, y: 0}\n", "EMPTY_GRID"},
		{"bad tile", "id: x\nplayer_start: {x: 0, y: 0}\nnest: {x: 0, y: 0}\ntiles: [\"..7.\"]\n", "BAD_TILE"},
		{"ragged", "id: x\nplayer_start: {x: 0, y: 0}\nnest: {x: 0, y: 0}\ntiles: [\"....\", \"===\"]\n", "NOT_RECTANGULAR"},
		{"start", "id: x\nplayer_start: {x: 9, y: 0}\nnest: {x: 0, y: 0}\n" + grid, "START_OUT_OF_BOUNDS"},
		{"nest", "id: x\nplayer_start: {x: 0, y: 0}\nnest: {x: 0, y: -1}\n" + grid, "NEST_OUT_OF_BOUNDS"},
		{"spawn", "id: x\nplayer_start: {x: 0, y: 0}\nnest: {x: 0, y: 0}\nspawns: [{x: 4, y: 0, difficulty: easy}]\n" + grid, "SPAWN_OUT_OF_BOUNDS"},
		{"difficulty", "id: x\nplayer_start: {x: 0, y: 0}\nnest: {x: 0, y: 0}\nspawns: [{x: 1, y: 0, difficulty: extreme}]\n" + grid, "BAD_DIFFICULTY"},
		{"wind", "id: x\nplayer_start: {x: 0, y: 0}\nnest: {x: 0, y: 0}\nwind_zones: [{x: 1, y: 0, direction: down}]\n" + grid, "BAD_WIND"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "level.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.body), 0o644))

			_, err := levels.LoadPath(path)
			require.Error(t, err)

			var verr levels.ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tc.code, verr.Code)
		})
	}
}

func TestLoadPathRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "level.yaml")
	require.NoError(t, os.WriteFile(path, []byte("id: x\nnets: {x: 0, y: 0}\ntiles: [\"=\"]\n"), 0o644))

	_, err := levels.LoadPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing file")
}

func TestIsLevelFile(t *testing.T) {
	assert.True(t, levels.IsLevelFile("a/b.yaml"))
	assert.True(t, levels.IsLevelFile("B.YML"))
	assert.False(t, levels.IsLevelFile("rooftop-garden"))
}

func TestSelectEggs(t *testing.T) {
	lvl, err := levels.Builtin().LoadByID("rooftop-garden")
	require.NoError(t, err)

	first := levels.SelectEggs(lvl.Spawns, rand.New(rand.NewSource(7)))
	again := levels.SelectEggs(lvl.Spawns, rand.New(rand.NewSource(7)))
	assert.Equal(t, first, again, "same seed, same eggs")

	require.Len(t, first, 3)
	for i, d := range levels.Difficulties {
		assert.Equal(t, d, first[i].Difficulty)
		sp, ok := lvl.SpawnAt(first[i].Pos)
		require.True(t, ok)
		assert.Equal(t, d, sp.Difficulty)
	}
	assert.Equal(t, "white", first[0].Type())
	assert.Equal(t, "rainbow", first[2].Type())
}

func TestSelectEggsSkipsEmptyTier(t *testing.T) {
	spawns := []levels.SpawnPoint{
		{Pos: tilemap.C(1, 1), Difficulty: levels.Easy},
		{Pos: tilemap.C(2, 1), Difficulty: levels.Hard},
	}
	eggs := levels.SelectEggs(spawns, rand.New(rand.NewSource(1)))
	require.Len(t, eggs, 2)
	assert.Equal(t, levels.Easy, eggs[0].Difficulty)
	assert.Equal(t, levels.Hard, eggs[1].Difficulty)
}
