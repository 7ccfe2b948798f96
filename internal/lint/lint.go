// Package lint runs the structural rulebook over a level. Every rule runs;
// findings are collected in rule registration order.
package lint

import (
	"fmt"

	"github.com/vovakirdan/levelsim/internal/config"
	"github.com/vovakirdan/levelsim/internal/levels"
	"github.com/vovakirdan/levelsim/internal/registry"
)

// Issue is one structural finding.
type Issue struct {
	Rule    string
	Message string
}

func (i Issue) String() string {
	return i.Message
}

// rule adapts a check function to registry.Rule.
type rule struct {
	id    string
	title string
	check func(ctx *registry.Context) []string
}

func (r rule) ID() string                           { return r.id }
func (r rule) Title() string                        { return r.title }
func (r rule) Check(ctx *registry.Context) []string { return r.check(ctx) }

func init() {
	for _, r := range []rule{
		{"floating-egg", "every egg spawn has a surface within 1 tile below", checkFloatingEggs},
		{"spawn-coverage", "at least one spawn point per difficulty tier", checkSpawnCoverage},
		{"gap-width", "gaps in the walking row are narrow enough to jump", checkGapWidth},
		{"gap-bridge", "gaps in the walking row have a platform bridge", checkGapBridge},
		{"wall-blocks-path", "walls stay clear of the walking row", checkWallBlocksPath},
		{"wall-height", "walls are not too tall", checkWallHeight},
		{"wall-in-slide", "walls do not cut through water slides", checkWallInSlide},
		{"wall-pair-gap", "wall-jump pairs are far enough apart", checkWallPairGap},
		{"platform-gap", "stacked platforms leave room to stand", checkPlatformGap},
	} {
		registry.Register(r)
	}
}

// Run lints a level against a rulebook with every registered rule.
func Run(lvl *levels.Level, rb config.Rulebook) []Issue {
	return RunContext(registry.NewContext(lvl, rb), nil)
}

// RunContext lints with the registered rules, skipping any whose ID is in
// skip.
func RunContext(ctx *registry.Context, skip map[string]bool) []Issue {
	var issues []Issue
	for _, r := range registry.All() {
		if skip[r.ID()] {
			continue
		}
		for _, msg := range r.Check(ctx) {
			issues = append(issues, Issue{Rule: r.ID(), Message: msg})
		}
	}
	return issues
}

// ValidateSkip returns an error naming the first unknown rule ID.
func ValidateSkip(ids []string) (map[string]bool, error) {
	skip := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !registry.Exists(id) {
			return nil, fmt.Errorf("unknown rule %q", id)
		}
		skip[id] = true
	}
	return skip, nil
}
