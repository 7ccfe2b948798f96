package report

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/levelsim/internal/levels"
	"github.com/vovakirdan/levelsim/internal/registry"
	"github.com/vovakirdan/levelsim/internal/sim"
	"github.com/vovakirdan/levelsim/internal/storage"
)

const timeLayout = "2006-01-02 15:04"

// Summary writes one row per analyzed level, for multi-level runs.
func (p *Printer) Summary(results []sim.LevelResult) {
	rows := make([][]string, len(results))
	failed := 0
	for i, res := range results {
		passed := 0
		for _, a := range res.Animals {
			if a.Passed() {
				passed++
			}
		}
		verdict := p.st.ok.Render("PASS")
		if !res.Passed(p.strict) {
			verdict = p.st.bad.Render("FAIL")
			failed++
		}
		rows[i] = []string{
			res.Level.ID,
			fmt.Sprintf("%d/%d", passed, len(res.Animals)),
			strconv.Itoa(res.IssueCount()),
			strconv.Itoa(len(res.Structural)),
			fmt.Sprintf("%.1f", res.AvgFun()),
			verdict,
		}
	}

	p.println("")
	p.println(p.st.section.Render("SUMMARY"))
	p.println(p.table([]string{"Level", "Animals OK", "Issues", "Structural", "Avg fun", "Verdict"}, rows, 1, 2, 3, 4))
	p.printf("%d of %d levels need fixes\n", failed, len(results))
}

// Levels writes the level listing.
func (p *Printer) Levels(lvls []levels.Level) {
	rows := make([][]string, len(lvls))
	for i, l := range lvls {
		num := "-"
		if l.Number > 0 {
			num = strconv.Itoa(l.Number)
		}
		rows[i] = []string{
			num,
			l.ID,
			l.Name,
			fmt.Sprintf("%dx%d", l.Grid.W, l.Grid.H),
			strconv.Itoa(len(l.Spawns)),
			strconv.Itoa(len(l.Slides)),
		}
	}
	p.println(p.table([]string{"#", "ID", "Name", "Size", "Spawns", "Slides"}, rows, 0, 4, 5))
}

// Rules writes the registered structural rules in run order.
func (p *Printer) Rules(infos []registry.RuleInfo) {
	rows := make([][]string, len(infos))
	for i, r := range infos {
		rows[i] = []string{r.ID, r.Title}
	}
	p.println(p.table([]string{"ID", "Checks that"}, rows))
}

// History writes a level's recorded runs, newest first, under its
// aggregate stats.
func (p *Printer) History(stats *storage.LevelStats, runs []storage.Run) {
	p.println(p.st.section.Render("HISTORY: " + stats.LevelID))
	if stats.RunsCount == 0 {
		p.println(p.st.dim.Render("No runs recorded yet."))
		return
	}
	p.printf("Runs: %d  Passed: %d  Avg fun: %.1f  Best: %.0f  Last: %s\n",
		stats.RunsCount, stats.PassCount, stats.AvgFun, stats.BestFun, stats.LastRun.Format(timeLayout))

	rows := make([][]string, len(runs))
	for i, r := range runs {
		verdict := p.st.ok.Render("PASS")
		if !r.Passed {
			verdict = p.st.bad.Render("FAIL")
		}
		mode := ""
		if r.Strict {
			mode = "strict"
		}
		rows[i] = []string{
			strconv.FormatInt(r.ID, 10),
			r.CreatedAt.Format(timeLayout),
			verdict,
			strconv.Itoa(r.Issues),
			strconv.Itoa(r.Structural),
			fmt.Sprintf("%.1f", r.AvgFun),
			mode,
		}
	}
	p.println(p.table([]string{"Run", "Date", "Verdict", "Issues", "Structural", "Avg fun", "Mode"}, rows, 0, 3, 4, 5))
}

// Trend writes one animal's fun scores across recorded runs.
func (p *Printer) Trend(animalID string, rows []storage.AnimalRun) {
	p.println("")
	p.println(p.st.section.Render("TREND: " + animalID))
	if len(rows) == 0 {
		p.println(p.st.dim.Render("No runs recorded for this animal."))
		return
	}
	for _, r := range rows {
		nest := "✓"
		if !r.Nest {
			nest = "✗"
		}
		p.printf("  #%-4d %s  Eggs %d/%d  Nest:%s  Fun:%3d %s\n",
			r.RunID, r.CreatedAt.Format(timeLayout), r.Eggs, r.EggTotal, nest, r.FunScore, p.st.bar.Render(FunBar(r.FunScore)))
	}
}
