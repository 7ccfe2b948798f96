// Package report renders analysis results as terminal text. Output is
// styled with lipgloss; with color off every style degrades to plain text
// so the report can be diffed and piped.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"

	"github.com/vovakirdan/levelsim/internal/levels"
	"github.com/vovakirdan/levelsim/internal/physics"
	"github.com/vovakirdan/levelsim/internal/sim"
	"github.com/vovakirdan/levelsim/internal/tilemap"
)

const (
	banner    = "LEVEL FEASIBILITY + FUN SIMULATOR"
	ruleWidth = 110
	nameWidth = 10
)

// styles holds the renderer-bound styles used across sections.
type styles struct {
	banner  lipgloss.Style
	section lipgloss.Style
	ok      lipgloss.Style
	bad     lipgloss.Style
	warn    lipgloss.Style
	dim     lipgloss.Style
	marker  lipgloss.Style
	wall    lipgloss.Style
	header  lipgloss.Style
	cell    lipgloss.Style
	border  lipgloss.Style
	bar     lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		banner:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Border(lipgloss.DoubleBorder()).Padding(0, 8),
		section: r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		ok:      r.NewStyle().Foreground(lipgloss.Color("10")),
		bad:     r.NewStyle().Foreground(lipgloss.Color("9")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("11")),
		dim:     r.NewStyle().Foreground(lipgloss.Color("241")),
		marker:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("208")),
		wall:    r.NewStyle().Foreground(lipgloss.Color("130")),
		header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Padding(0, 1),
		cell:    r.NewStyle().Padding(0, 1),
		border:  r.NewStyle().Foreground(lipgloss.Color("240")),
		bar:     r.NewStyle().Foreground(lipgloss.Color("212")),
	}
}

// Printer writes reports to an output stream.
type Printer struct {
	w      io.Writer
	engine *physics.Engine
	st     styles
	strict bool
}

// NewPrinter creates a printer. The engine supplies the jump heights shown
// in the physics summary. With color off, output carries no escape codes.
func NewPrinter(w io.Writer, engine *physics.Engine, color bool) *Printer {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Printer{w: w, engine: engine, st: newStyles(r)}
}

// SetStrict makes structural findings count against the verdict.
func (p *Printer) SetStrict(strict bool) {
	p.strict = strict
}

// Render returns the full level report as a string.
func Render(res sim.LevelResult, engine *physics.Engine, color bool) string {
	var sb strings.Builder
	NewPrinter(&sb, engine, color).Level(res)
	return sb.String()
}

func (p *Printer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) println(s string) {
	fmt.Fprintln(p.w, s)
}

// Level writes the complete report for one analyzed level.
func (p *Printer) Level(res sim.LevelResult) {
	p.println(p.st.banner.Render(banner))
	p.println("")
	p.header(res)
	p.levelMap(res)
	p.structural(res)
	p.physicsSummary(animalsOf(res))
	p.reachability(res)
	p.overall(res)
	p.EggMatrix(res)
	p.funRanking(res)
	p.funTargets(res)
	p.verdict(res)
}

func (p *Printer) header(res sim.LevelResult) {
	lvl := res.Level
	p.printf("Level: %s  (%dx%d tiles)\n", lvl.Title(), lvl.Grid.W, lvl.Grid.H)
	if lvl.Theme != "" {
		p.printf("Theme: %s\n", lvl.Theme)
	}
	p.printf("Player start: (%d, %d)  Nest: (%d, %d)\n", lvl.Start.X, lvl.Start.Y, lvl.Nest.X, lvl.Nest.Y)
	p.printf("Egg spawn points: %d (%d easy, %d medium, %d hard)  Water slides: %d\n",
		len(lvl.Spawns),
		len(lvl.SpawnsBy(levels.Easy)), len(lvl.SpawnsBy(levels.Medium)), len(lvl.SpawnsBy(levels.Hard)),
		len(lvl.Slides))
	if extras := extrasLine(lvl); extras != "" {
		p.println("Extras: " + extras)
	}
	if m := lvl.Medals; m.Gold > 0 {
		p.printf("Medals: gold %s  silver %s  bronze %s\n", m.Gold, m.Silver, m.Bronze)
	}
	p.println("")
}

func extrasLine(lvl *levels.Level) string {
	var parts []string
	if n := len(lvl.MovingPlatforms); n > 0 {
		parts = append(parts, plural(n, "moving platform"))
	}
	if n := len(lvl.WindZones); n > 0 {
		parts = append(parts, plural(n, "wind zone"))
	}
	if n := len(lvl.Puddles); n > 0 {
		parts = append(parts, plural(n, "puddle"))
	}
	return strings.Join(parts, ", ")
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// levelMap draws the grid with the start, nest and eggs overlaid.
func (p *Printer) levelMap(res sim.LevelResult) {
	lvl := res.Level
	eggs := make(map[tilemap.Coord]bool, len(res.Eggs))
	for _, e := range res.Eggs {
		eggs[e.Pos] = true
	}

	p.println(p.st.section.Render("LEVEL MAP:"))
	for y, row := range lvl.Grid.Rows() {
		var sb strings.Builder
		fmt.Fprintf(&sb, "%2d│", y)
		for x, ch := range row {
			c := tilemap.C(x, y)
			switch {
			case c == lvl.Start:
				sb.WriteString(p.st.marker.Render("P"))
			case c == lvl.Nest:
				sb.WriteString(p.st.marker.Render("N"))
			case eggs[c]:
				sb.WriteString(p.st.marker.Render("E"))
			case ch == '#':
				sb.WriteString(p.st.wall.Render("#"))
			default:
				sb.WriteRune(ch)
			}
		}
		p.println(sb.String())
	}
	p.println("  │" + ruler(lvl.Grid.W))
}

// ruler returns the column digits 0-9 repeated to width.
func ruler(width int) string {
	var sb strings.Builder
	for x := 0; x < width; x++ {
		sb.WriteByte(byte('0' + x%10))
	}
	return sb.String()
}

func (p *Printer) structural(res sim.LevelResult) {
	p.println("")
	p.println(p.st.section.Render("── STRUCTURAL ANALYSIS ──"))
	if len(res.Structural) == 0 {
		p.println(p.st.ok.Render("  ✅ No structural issues found"))
		return
	}
	for _, is := range res.Structural {
		p.println(p.st.bad.Render("  ❌ " + is.Message))
	}
}

func animalsOf(res sim.LevelResult) []physics.Animal {
	out := make([]physics.Animal, len(res.Animals))
	for i, a := range res.Animals {
		out[i] = a.Animal
	}
	return out
}

func (p *Printer) physicsSummary(animals []physics.Animal) {
	p.println("")
	p.println(p.st.section.Render("── PHYSICS SUMMARY ──"))
	p.PhysicsTable(animals)
}

// PhysicsTable writes one row per animal: speed, single and effective jump
// height, and ability tags.
func (p *Printer) PhysicsTable(animals []physics.Animal) {
	rows := make([][]string, len(animals))
	for i, a := range animals {
		rows[i] = []string{
			a.DisplayName(),
			fmt.Sprintf("%.0f", a.Speed),
			fmt.Sprintf("%.0f", p.engine.MaxSingleJump(a)),
			fmt.Sprintf("%.0f", p.engine.EffectiveMaxHeight(a)),
			a.AbilityString(),
		}
	}
	p.println(p.table([]string{"Animal", "Spd", "JmpH", "EffH", "Abilities"}, rows, 1, 2, 3))
}

// table renders a bordered table. Columns listed in right are right-aligned.
func (p *Printer) table(headers []string, rows [][]string, right ...int) string {
	align := make(map[int]bool, len(right))
	for _, c := range right {
		align[c] = true
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(p.st.border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := p.st.cell
			if row == table.HeaderRow {
				s = p.st.header
			}
			if align[col] {
				s = s.Align(lipgloss.Right)
			}
			return s
		})
	return t.String()
}

func (p *Printer) reachability(res sim.LevelResult) {
	p.println("")
	p.println(p.st.section.Render("── REACHABILITY PER ANIMAL ──"))
	p.println(strings.Repeat("═", ruleWidth))
	for _, a := range res.Animals {
		p.println(p.animalLine(a))
		for _, is := range a.Issues {
			p.printf("%s %s %s\n", strings.Repeat(" ", nameWidth), p.st.dim.Render("│   └─"), is)
		}
	}
	p.println(strings.Repeat("═", ruleWidth))
}

func (p *Printer) animalLine(a sim.AnimalResult) string {
	eggs := make([]string, len(a.Eggs))
	for i, e := range a.Eggs {
		eggs[i] = e.Difficulty.Symbol()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%-*s │ Eggs[%s] │ Nest:%s", nameWidth, a.Animal.DisplayName(), strings.Join(eggs, " "), check(a.Nest))
	for i, ok := range a.Slides {
		fmt.Fprintf(&sb, " S%d:%s", i+1, check(ok))
	}
	fmt.Fprintf(&sb, " │ Hard:%d │ Fun:%3d │ ", a.HardTransitions, a.FunScore)

	if a.Passed() {
		sb.WriteString(p.st.ok.Render("✅"))
	} else {
		sb.WriteString(p.st.warn.Render(fmt.Sprintf("⚠️  %s", plural(len(a.Issues), "issue"))))
	}
	return sb.String()
}

func check(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

func (p *Printer) overall(res sim.LevelResult) {
	status := p.st.ok.Render("✅ ALL PASS")
	if !res.Passed(p.strict) {
		status = p.st.bad.Render("❌ ISSUES FOUND")
	}
	p.printf("\nOVERALL: %s  │  Avg fun: %.1f/100\n", status, res.AvgFun())
}

// EggMatrix writes the per-animal egg grades, one column per egg.
func (p *Printer) EggMatrix(res sim.LevelResult) {
	p.println("")
	p.println(p.st.section.Render("EGG DIFFICULTY MATRIX (✓=easy ○=medium △=hard ✗=impossible):"))

	headers := []string{"Animal"}
	for _, e := range res.Eggs {
		headers = append(headers, e.Pos.String())
	}
	rows := make([][]string, len(res.Animals))
	for i, a := range res.Animals {
		row := []string{a.Animal.DisplayName()}
		for _, e := range a.Eggs {
			row = append(row, e.Difficulty.Symbol())
		}
		rows[i] = row
	}
	p.println(p.table(headers, rows))
}

// Ranking returns the animals sorted by fun score, highest first. Ties keep
// animal table order.
func Ranking(res sim.LevelResult) []sim.AnimalResult {
	out := make([]sim.AnimalResult, len(res.Animals))
	copy(out, res.Animals)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].FunScore > out[j].FunScore
	})
	return out
}

// FunBar is one block per five points of fun.
func FunBar(fun int) string {
	return strings.Repeat("█", max(fun, 0)/5)
}

func (p *Printer) funRanking(res sim.LevelResult) {
	p.println("")
	p.println(p.st.section.Render("FUN RANKING:"))
	for i, a := range Ranking(res) {
		p.printf("  %2d. %-*s %3d %s\n", i+1, nameWidth, a.Animal.DisplayName(), a.FunScore, p.st.bar.Render(FunBar(a.FunScore)))
	}
}

func (p *Printer) funTargets(res sim.LevelResult) {
	rb := res.Rules
	p.println("")
	p.printf("%s min %d, avg %d\n", p.st.section.Render("FUN TARGETS:"), rb.MinFunScore, rb.TargetAvgFun)

	low := res.BelowFunTarget()
	avg := res.AvgFun()
	if len(low) == 0 && avg >= float64(rb.TargetAvgFun) {
		p.println(p.st.ok.Render("  ✅ Fun targets met"))
		return
	}
	for _, a := range low {
		p.println(p.st.warn.Render(fmt.Sprintf("  ⚠️  %s below minimum fun (%d < %d)", a.Animal.DisplayName(), a.FunScore, rb.MinFunScore)))
	}
	if avg < float64(rb.TargetAvgFun) {
		p.println(p.st.warn.Render(fmt.Sprintf("  ⚠️  Average fun %.1f below target %d", avg, rb.TargetAvgFun)))
	}
}

func (p *Printer) verdict(res sim.LevelResult) {
	p.println("")
	if res.Passed(p.strict) {
		p.println(p.st.ok.Render("✅ LEVEL READY"))
		return
	}
	p.println(p.st.bad.Render("❌ LEVEL NEEDS FIXES - see issues above"))
}
