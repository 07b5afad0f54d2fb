package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/DaanHessen/cmmc-trail/internal/achievements"
	"github.com/DaanHessen/cmmc-trail/internal/engine"
)

const barWidth = 30

const titleArt = `
  ____ __  __ __  __  ____   _____           _ _
 / ___|  \/  |  \/  |/ ___| |_   _| __ __ _(_) |
| |   | |\/| | |\/| | |       | || '__/ _' | | |
| |___| |  | | |  | | |___    | || | | (_| | | |
 \____|_|  |_|_|  |_|\____|   |_||_|  \__,_|_|_|`

func (m model) View() string {
	var body string
	switch m.state.Screen {
	case engine.ScreenTitle:
		body = m.viewTitle()
	case engine.ScreenIntro:
		body = m.briefing + "\n" + m.styles.muted.Render("enter: choose your team")
	case engine.ScreenParty:
		body = m.viewParty()
	case engine.ScreenTrail:
		body = m.viewTrail()
	case engine.ScreenQuestion:
		body = m.viewQuestion()
	case engine.ScreenResult:
		body = m.viewResult()
	case engine.ScreenEvent:
		body = m.viewEvent()
	case engine.ScreenDeath:
		body = m.viewDeath()
	case engine.ScreenSupplies:
		body = m.viewSupplies()
	case engine.ScreenResting:
		body = m.styles.title.Render("Resting") + "\n\nThe team takes a long lunch away from the audit binders...\n\n" +
			m.styles.muted.Render("enter: wake them early")
	case engine.ScreenHunting:
		body = m.styles.title.Render("Vulnerability scan") + "\n\nNessus is crawling every subnet. Please hold...\n\n" +
			m.styles.muted.Render("enter: skip the progress bar")
	case engine.ScreenRiver:
		body = m.viewRiver()
	case engine.ScreenValley:
		body = m.viewValley()
	case engine.ScreenStore:
		body = m.viewStore()
	case engine.ScreenGameOver, engine.ScreenVictory:
		body = m.viewEnd()
	case engine.ScreenLeaderboard:
		body = m.viewLeaderboard()
	case engine.ScreenAchievements:
		body = m.viewAchievements()
	}
	if m.notice != "" {
		body += "\n\n" + m.styles.warn.Render(m.notice)
	}
	for _, b := range m.badges {
		body += "\n" + m.styles.good.Render(fmt.Sprintf("%s Achievement unlocked: %s", b.Icon, b.Name))
	}
	return m.styles.box.Width(m.contentWidth()).Render(body)
}

func (m model) viewTitle() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render(titleArt))
	b.WriteString("\n\n" + m.styles.accent.Render("The road to CMMC Level 2 certification") + "\n\n")
	fmt.Fprintf(&b, "Difficulty: %s\n", m.state.Difficulty.Label())
	if m.state.GodMode {
		b.WriteString(m.styles.bad.Render("GOD MODE") + "\n")
	}
	if m.tracker != nil {
		unlocked, total := m.tracker.Progress()
		fmt.Fprintf(&b, "Achievements: %d / %d\n", unlocked, total)
	}
	b.WriteString("\n" + m.styles.muted.Render("enter: start  d: difficulty  l: leaderboard  a: achievements  f: fire tank  t: theme  q: quit"))
	return b.String()
}

func (m model) viewParty() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("Assemble your compliance team") + "\n\n")
	if m.partyMode == partyChoose {
		b.WriteString("1. Use the default team: " + strings.Join(engine.DefaultParty(), ", ") + "\n")
		b.WriteString("2. Name your own team\n")
		return b.String()
	}
	for _, in := range m.inputs {
		b.WriteString(in.View() + "\n")
	}
	b.WriteString("\n" + m.styles.muted.Render("tab: next field  enter on the last field: hit the trail  esc: back"))
	return b.String()
}

func (m model) bar(label string, value, lo, hi int, suffix string) string {
	span := hi - lo
	filled := 0
	if span > 0 {
		filled = (value - lo) * barWidth / span
	}
	filled = engine.Clamp(filled, 0, barWidth)
	return fmt.Sprintf("%-9s %s%s %d%s", label,
		m.styles.barFill.Render(strings.Repeat("█", filled)),
		m.styles.barRest.Render(strings.Repeat("░", barWidth-filled)),
		value, suffix)
}

func (m model) gauges() string {
	s := m.state
	lines := []string{
		m.bar("Progress", engine.ProgressPercent(s), 0, 100, fmt.Sprintf("%% (%d / %d mi)", s.Miles, s.TotalMiles)),
		m.bar("Morale", s.Morale, engine.MinMorale, engine.MaxMorale, "%"),
		m.bar("SPRS", s.SPRSScore, engine.MinSPRS, engine.MaxSPRS, ""),
	}
	return strings.Join(lines, "\n")
}

func (m model) partyLine() string {
	parts := make([]string, 0, len(m.state.Party))
	for _, p := range m.state.Party {
		if p.Alive {
			parts = append(parts, m.styles.good.Render(p.Name))
		} else {
			parts = append(parts, m.styles.muted.Render("✝ "+p.Name))
		}
	}
	line := "Team: " + strings.Join(parts, ", ")
	if m.state.DeathShield {
		line += "  " + m.styles.accent.Render("[insured]")
	}
	return line
}

func (m model) viewTrail() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("On the trail") + "\n\n")
	b.WriteString(m.gauges() + "\n\n")
	b.WriteString(m.partyLine() + "\n")
	fmt.Fprintf(&b, "Questions: %d answered, %d%% accuracy\n", m.state.QuestionsAnswered, engine.Accuracy(m.state))
	if m.state.LastOutcome != "" {
		b.WriteString("\n" + m.state.LastOutcome + "\n")
	}
	if h := m.state.HuntingResult; h != nil {
		b.WriteString(m.styles.muted.Render(fmt.Sprintf("Last scan: %d findings (%s)", h.Findings, h.Severity)) + "\n")
	}
	b.WriteString("\n" + m.styles.muted.Render("enter: continue  r: rest  h: hunt vulnerabilities  s: supplies  g: give up"))
	return b.String()
}

func (m model) viewQuestion() string {
	q := m.state.CurrentQuestion
	if q == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.styles.title.Render("Compliance checkpoint") + "\n\n")
	b.WriteString(q.Prompt + "\n\n")
	for i, slot := range q.Slots() {
		fmt.Fprintf(&b, "%s) %s\n", slot, q.Options[i])
	}
	b.WriteString("\n" + m.styles.muted.Render("a-d or 1-4: answer"))
	return b.String()
}

func (m model) viewResult() string {
	r := m.state.LastAnswer
	if r == nil {
		return ""
	}
	var b strings.Builder
	switch r.Quality {
	case engine.QualityBest:
		b.WriteString(m.styles.good.Render("Excellent! Best answer.") + "\n\n")
	case engine.QualityGood:
		b.WriteString(m.styles.warn.Render("Acceptable. There was a better answer.") + "\n\n")
		b.WriteString("Best answer: " + r.BestAnswer + "\n\n")
	default:
		b.WriteString(m.styles.bad.Render("Wrong!") + "\n\n")
		b.WriteString("Best answer: " + r.BestAnswer + "\n")
		if r.GoodAnswer != "" {
			b.WriteString("Also acceptable: " + r.GoodAnswer + "\n")
		}
		b.WriteString("\n")
	}
	if r.Explanation != "" {
		b.WriteString(m.styles.muted.Render(r.Explanation) + "\n")
	}
	b.WriteString("\n" + m.gauges() + "\n\n" + m.styles.muted.Render("enter: continue"))
	return b.String()
}

func (m model) viewEvent() string {
	e := m.state.CurrentEvent
	if e == nil {
		return ""
	}
	style := m.styles.text
	switch e.Type {
	case engine.EventGood:
		style = m.styles.good
	case engine.EventBad:
		style = m.styles.warn
	case engine.EventDeath:
		style = m.styles.bad
	}
	return m.styles.title.Render("Trail event") + "\n\n" + style.Render(e.Text) + "\n\n" + m.styles.muted.Render("enter: continue")
}

func (m model) viewDeath() string {
	d := m.state.LastDeath
	if d == nil {
		return ""
	}
	tomb := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2).Render("R.I.P.\n" + d.Name)
	return m.styles.bad.Render(d.Name+" has died.") + "\n\n" + tomb + "\n\n" + d.Message + "\n\n" + m.styles.muted.Render("enter: continue")
}

func (m model) viewSupplies() string {
	s := m.state
	var b strings.Builder
	b.WriteString(m.styles.title.Render("Supplies") + "\n\n")
	b.WriteString(m.gauges() + "\n\n")
	fmt.Fprintf(&b, "Miles remaining: %d\n", engine.MilesRemaining(s))
	fmt.Fprintf(&b, "Alive: %d / %d\n", s.AliveCount(), len(s.Party))
	fmt.Fprintf(&b, "Items bought: %d\n", s.ItemsBought)
	if s.DeathShield {
		b.WriteString("Cyber insurance: active\n")
	}
	b.WriteString("\n" + m.styles.muted.Render("enter: back to the trail"))
	return b.String()
}

func (m model) viewRiver() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render(m.state.Landmark) + "\n\n")
	b.WriteString("A river of unpatched systems blocks the trail. How do you cross?\n\n")
	b.WriteString("1. Ford the river (patch everything in production tonight)\n")
	b.WriteString("2. Wait for the ferry (schedule a maintenance window)\n")
	b.WriteString("3. Caulk the wagon and float (compensating controls)\n")
	return b.String()
}

func (m model) viewValley() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render(m.state.Landmark) + "\n\n")
	b.WriteString("Leadership questions whether any of this is worth the budget. Make your pitch:\n\n")
	for i, p := range valleyPitches {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p.label)
	}
	return b.String()
}

func (m model) viewStore() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render(m.state.Landmark) + "\n\n")
	fmt.Fprintf(&b, "SPRS points to spend: %d\n\n", m.state.SPRSScore)
	for i, it := range engine.StoreItems() {
		line := fmt.Sprintf("%d. %-28s %4d  %s", i+1, it.Name, it.Cost, it.Description)
		owned := it.Effect == engine.EffectShield && m.state.DeathShield
		if owned {
			line = m.styles.good.Render(fmt.Sprintf("%d. %-28s owned", i+1, it.Name))
		} else if it.Cost > m.state.SPRSScore {
			line = m.styles.muted.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + m.styles.muted.Render("1-7: buy  enter: leave the depot"))
	return b.String()
}

func (m model) viewEnd() string {
	var b strings.Builder
	if m.state.Screen == engine.ScreenVictory {
		b.WriteString(m.report)
		b.WriteString("\n" + m.styles.muted.Render("p: export certificate  enter: play again  q: quit"))
	} else {
		b.WriteString(m.report)
		b.WriteString("\n" + m.styles.muted.Render("enter: try again  q: quit"))
	}
	return b.String()
}

func (m model) viewLeaderboard() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("Leaderboard") + "\n\n")
	if m.repo == nil {
		b.WriteString("Run history is disabled.\n")
	} else if len(m.leaderboard) == 0 {
		b.WriteString("No runs recorded yet.\n")
	}
	for i, e := range m.leaderboard {
		line := fmt.Sprintf("%2d. %-16s %-9s %-10s SPRS %4d  %4d mi  %3d%%  %s",
			i+1, e.Leader, e.Outcome, e.Difficulty, e.SPRSScore, e.Miles, e.Accuracy,
			e.CreatedAt.Format("2006-01-02"))
		if e.Outcome == string(engine.OutcomeVictory) {
			line = m.styles.good.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + m.styles.muted.Render("esc: back"))
	return b.String()
}

func (m model) viewAchievements() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("Achievements") + "\n\n")
	for _, d := range achievements.All() {
		if m.tracker != nil && m.tracker.IsUnlocked(d.ID) {
			b.WriteString(m.styles.good.Render(fmt.Sprintf("%s %-20s %s", d.Icon, d.Name, d.Description)) + "\n")
		} else {
			b.WriteString(m.styles.muted.Render(fmt.Sprintf("🔒 %-20s %s", d.Name, d.Description)) + "\n")
		}
	}
	b.WriteString("\n" + m.styles.muted.Render("esc: back"))
	return b.String()
}
