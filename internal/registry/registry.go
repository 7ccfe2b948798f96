// Package registry provides a global registry for structural lint rules.
// Rules register themselves in init() functions, allowing the linter and
// the CLI to discover them without hardcoded lists. Rules run in
// registration order.
package registry

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/levelsim/internal/config"
	"github.com/vovakirdan/levelsim/internal/levels"
)

// Context is the read-only input handed to every rule.
type Context struct {
	Level     *levels.Level
	Rules     config.Rulebook
	GroundRow int // main walking row, derived from the player start
}

// NewContext builds a context for one level.
func NewContext(lvl *levels.Level, rb config.Rulebook) *Context {
	return &Context{Level: lvl, Rules: rb, GroundRow: lvl.GroundRow()}
}

// Rule is one independent structural check. Rules are stateless and never
// depend on animal data.
type Rule interface {
	// ID returns a unique kebab-case identifier (e.g., "floating-egg").
	ID() string

	// Title returns a one-line description for listings.
	Title() string

	// Check returns zero or more human-readable findings.
	Check(ctx *Context) []string
}

// RuleInfo contains metadata about a registered rule.
type RuleInfo struct {
	ID    string
	Title string
}

var (
	rules = make(map[string]Rule)
	order []string
	mu    sync.RWMutex
)

// Register adds a rule to the registry.
// Panics if a rule with the same ID is already registered.
func Register(r Rule) {
	mu.Lock()
	defer mu.Unlock()

	id := r.ID()
	if _, exists := rules[id]; exists {
		panic(fmt.Sprintf("registry: rule %q already registered", id))
	}

	rules[id] = r
	order = append(order, id)
}

// List returns information about all registered rules in registration order.
func List() []RuleInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]RuleInfo, 0, len(order))
	for _, id := range order {
		result = append(result, RuleInfo{ID: id, Title: rules[id].Title()})
	}
	return result
}

// All returns the registered rules in registration order.
func All() []Rule {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Rule, 0, len(order))
	for _, id := range order {
		result = append(result, rules[id])
	}
	return result
}

// Lookup returns a rule by its ID.
// Returns an error if the rule ID is not registered.
func Lookup(id string) (Rule, error) {
	mu.RLock()
	defer mu.RUnlock()

	r, ok := rules[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown rule %q", id)
	}
	return r, nil
}

// Exists checks if a rule with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := rules[id]
	return ok
}
