package ui

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/DaanHessen/cmmc-trail/internal/achievements"
	"github.com/DaanHessen/cmmc-trail/internal/engine"
	"github.com/DaanHessen/cmmc-trail/internal/report"
	"github.com/DaanHessen/cmmc-trail/internal/store"
	"github.com/DaanHessen/cmmc-trail/internal/text"
	"github.com/DaanHessen/cmmc-trail/internal/util"
)

const (
	finishDelay     = 2 * time.Second
	leaderboardSize = 10
	fallbackSeed    = "cmmc-trail"
)

// finishMsg fires when a resting or hunting timer runs out. Only the latest timer counts.
type finishMsg struct {
	screen engine.Screen
	timer  int
}

type partyMode int

const (
	partyChoose partyMode = iota
	partyCustom
)

var konamiCode = []string{"up", "up", "down", "down", "left", "right", "left", "right", "b", "a"}

type valleyPitch struct {
	label string
	odds  float64
}

var valleyPitches = []valleyPitch{
	{"Show them the DoD contract revenue at risk if the assessment fails", 0.7},
	{"Walk them through all 110 NIST SP 800-171 controls, one slide each", 0.4},
	{"Mention the intern already bought the tools on a personal card", 0.2},
}

type model struct {
	ctx      context.Context
	cfg      util.Config
	state    engine.State
	seed     engine.RunSeed
	narrator text.Narrator
	repo     store.Repository
	tracker  *achievements.Tracker

	// dispatches labels the random stream of every reducer call.
	dispatches int
	timer      int

	theme         string
	styles        styles
	width, height int

	partyMode partyMode
	inputs    []textinput.Model
	focus     int
	konami    int

	recorded    bool
	briefing    string
	report      string
	notice      string
	badges      []achievements.Definition
	leaderboard []store.Entry
}

func newModel(ctx context.Context, repo store.Repository, narrator text.Narrator, cfg util.Config) model {
	seed, err := engine.NewRunSeed(strings.TrimSpace(cfg.SeedText))
	if err != nil {
		seed, _ = engine.NewRunSeed(fallbackSeed)
	}
	if narrator == nil {
		narrator = text.NewTemplateNarrator()
	}
	var badgeStore achievements.Store
	if repo != nil {
		badgeStore = repo
	}
	tracker, err := achievements.NewTracker(ctx, badgeStore)
	if err != nil {
		log.Printf("load achievements: %v", err)
	}
	m := model{
		ctx:      ctx,
		cfg:      cfg,
		state:    engine.NewState(),
		seed:     seed,
		narrator: narrator,
		repo:     repo,
		tracker:  tracker,
	}
	m.setTheme(cfg.Theme)
	if d := engine.Difficulty(cfg.Difficulty); d.Validate() {
		m.state = engine.Reduce(m.state, engine.Action{Type: engine.ActSetDifficulty, Difficulty: d}, nil)
	}
	m.resetInputs()
	return m
}

func (m *model) setTheme(name string) {
	if _, ok := palettes[name]; !ok {
		name = defaultTheme
	}
	m.theme = name
	m.styles = newStyles(paletteFor(name))
}

func (m *model) resetInputs() {
	defaults := engine.DefaultParty()
	m.inputs = make([]textinput.Model, len(defaults))
	for i, name := range defaults {
		ti := textinput.New()
		ti.Placeholder = name
		ti.CharLimit = 32
		ti.Width = 32
		ti.Prompt = fmt.Sprintf("%d. ", i+1)
		m.inputs[i] = ti
	}
	m.focus = 0
	m.partyMode = partyChoose
}

func (m *model) setFocus(i int) tea.Cmd {
	if i < 0 {
		i = len(m.inputs) - 1
	}
	if i >= len(m.inputs) {
		i = 0
	}
	for j := range m.inputs {
		m.inputs[j].Blur()
	}
	m.focus = i
	return m.inputs[i].Focus()
}

// dispatch runs the reducer with a fresh labelled stream and updates side state.
func (m *model) dispatch(a engine.Action) tea.Cmd {
	r := m.seed.Stream(fmt.Sprintf("dispatch:%d", m.dispatches))
	m.dispatches++
	prev := m.state.Screen
	m.state = engine.Reduce(m.state, a, r)
	return m.afterDispatch(a, prev)
}

func (m *model) afterDispatch(a engine.Action, prev engine.Screen) tea.Cmd {
	var cmd tea.Cmd
	cur := m.state.Screen
	if a.Type == engine.ActRestart {
		m.recorded = false
		m.report = ""
		m.briefing = ""
		m.timer++
		m.resetInputs()
	}
	if cur != prev {
		switch cur {
		case engine.ScreenIntro:
			m.renderBriefing()
		case engine.ScreenResting, engine.ScreenHunting:
			cmd = m.finishAfter(cur)
		case engine.ScreenLeaderboard:
			m.refreshLeaderboard()
		}
	}

	stats := engine.Stats(m.state)
	if m.tracker != nil {
		fresh, err := m.tracker.Observe(m.ctx, stats)
		if err != nil {
			log.Printf("persist achievements: %v", err)
		}
		m.badges = append(m.badges, fresh...)
	}
	if stats.Outcome != engine.OutcomeInProgress && !m.recorded {
		m.recorded = true
		m.recordRun(stats)
		m.renderReport(stats)
	}
	return cmd
}

func (m *model) finishAfter(screen engine.Screen) tea.Cmd {
	m.timer++
	token := m.timer
	return tea.Tick(finishDelay, func(time.Time) tea.Msg {
		return finishMsg{screen: screen, timer: token}
	})
}

func (m *model) recordRun(stats engine.RunStats) {
	if m.repo == nil {
		return
	}
	if err := m.repo.RecordRun(m.ctx, store.NewEntry(stats, m.seed.Text, time.Now())); err != nil {
		log.Printf("record run: %v", err)
		m.notice = "Could not save this run to the leaderboard."
		return
	}
	m.notice = "Run recorded on the leaderboard."
}

func (m *model) refreshLeaderboard() {
	m.leaderboard = nil
	if m.repo == nil {
		return
	}
	entries, err := m.repo.TopRuns(m.ctx, leaderboardSize)
	if err != nil {
		log.Printf("load leaderboard: %v", err)
		return
	}
	m.leaderboard = entries
}

func (m *model) renderBriefing() {
	md, err := m.narrator.Briefing(m.ctx, m.state)
	if err != nil {
		log.Printf("briefing: %v", err)
	}
	m.briefing = text.Render(md, m.contentWidth())
}

func (m *model) renderReport(stats engine.RunStats) {
	md, err := m.narrator.Report(m.ctx, stats)
	if err != nil {
		log.Printf("report: %v", err)
	}
	m.report = text.Render(md, m.contentWidth())
}

func (m *model) exportCertificate() {
	path, err := report.WriteCertificate(m.cfg.CertificateDir, engine.Stats(m.state), m.seed.Text, time.Now())
	if err != nil {
		log.Printf("certificate: %v", err)
		m.notice = "Certificate export failed: " + err.Error()
		return
	}
	m.notice = "Certificate saved to " + path
}

func (m *model) contentWidth() int {
	w := m.width
	if w <= 0 {
		w = 100
	}
	if w > 100 {
		w = 100
	}
	return w - 8
}

// tea.Model implementation ---------------------------------------------------
func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.state.Screen == engine.ScreenIntro {
			m.renderBriefing()
		}
		return m, nil
	case finishMsg:
		if msg.timer != m.timer || msg.screen != m.state.Screen {
			return m, nil
		}
		return m, m.finishTimed()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	if m.state.Screen == engine.ScreenParty && m.partyMode == partyCustom {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *model) finishTimed() tea.Cmd {
	switch m.state.Screen {
	case engine.ScreenResting:
		return m.dispatch(engine.Action{Type: engine.ActFinishRest})
	case engine.ScreenHunting:
		return m.dispatch(engine.Action{Type: engine.ActFinishHunting})
	}
	return nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	switch k {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+r":
		return m, m.dispatch(engine.Action{Type: engine.ActRestart})
	}
	m.notice = ""
	m.badges = nil

	var cmd tea.Cmd
	switch m.state.Screen {
	case engine.ScreenTitle:
		if k == "q" && m.konami == 0 {
			return m, tea.Quit
		}
		cmd = m.titleKey(k)
	case engine.ScreenIntro:
		if k == "enter" || k == " " {
			cmd = m.dispatch(engine.Action{Type: engine.ActShowPartySelect})
		}
	case engine.ScreenParty:
		cmd = m.partyKey(msg)
	case engine.ScreenTrail:
		cmd = m.trailKey(k)
	case engine.ScreenQuestion:
		if slot := answerSlot(k); slot != "" {
			cmd = m.dispatch(engine.Action{Type: engine.ActAnswerQuestion, Answer: slot})
		}
	case engine.ScreenResult:
		cmd = m.onConfirm(k, engine.ActDismissResult)
	case engine.ScreenEvent:
		cmd = m.onConfirm(k, engine.ActDismissEvent)
	case engine.ScreenDeath:
		cmd = m.onConfirm(k, engine.ActDismissDeath)
	case engine.ScreenSupplies:
		if k == "enter" || k == "esc" || k == "s" {
			cmd = m.dispatch(engine.Action{Type: engine.ActCloseSupplies})
		}
	case engine.ScreenResting, engine.ScreenHunting:
		if k == "enter" {
			m.timer++
			cmd = m.finishTimed()
		}
	case engine.ScreenRiver:
		cmd = m.riverKey(k)
	case engine.ScreenValley:
		cmd = m.valleyKey(k)
	case engine.ScreenStore:
		cmd = m.storeKey(k)
	case engine.ScreenGameOver, engine.ScreenVictory:
		switch k {
		case "q":
			return m, tea.Quit
		case "enter", "r":
			cmd = m.dispatch(engine.Action{Type: engine.ActRestart})
		case "p":
			if m.state.Screen == engine.ScreenVictory {
				m.exportCertificate()
			}
		}
	case engine.ScreenLeaderboard, engine.ScreenAchievements:
		if k == "esc" || k == "enter" || k == "q" {
			cmd = m.dispatch(engine.Action{Type: engine.ActBackToTitle})
		}
	}
	return m, cmd
}

func (m *model) onConfirm(k string, t engine.ActionType) tea.Cmd {
	if k == "enter" || k == " " {
		return m.dispatch(engine.Action{Type: t})
	}
	return nil
}

// trackKonami advances the cheat sequence and reports completion.
func (m *model) trackKonami(k string) bool {
	if k == konamiCode[m.konami] {
		m.konami++
		if m.konami == len(konamiCode) {
			m.konami = 0
			return true
		}
		return false
	}
	m.konami = 0
	if k == konamiCode[0] {
		m.konami = 1
	}
	return false
}

func (m *model) titleKey(k string) tea.Cmd {
	if m.trackKonami(k) {
		cmd := m.dispatch(engine.Action{Type: engine.ActToggleGodMode})
		if m.state.GodMode {
			m.notice = "CHEAT ACTIVATED: god mode on."
		} else {
			m.notice = "God mode off."
		}
		return cmd
	}
	if m.konami > 0 {
		return nil
	}
	switch k {
	case "enter", " ":
		return m.dispatch(engine.Action{Type: engine.ActStartGame})
	case "d":
		return m.dispatch(engine.Action{Type: engine.ActSetDifficulty, Difficulty: nextDifficulty(m.state.Difficulty)})
	case "f":
		cmd := m.dispatch(engine.Action{Type: engine.ActFireTank})
		m.notice = fmt.Sprintf("BOOM! The compliance tank fires at a non-compliant vendor. (%d)", m.state.TankFireCount)
		return cmd
	case "l":
		return m.dispatch(engine.Action{Type: engine.ActShowLeaderboard})
	case "a":
		return m.dispatch(engine.Action{Type: engine.ActShowAchievements})
	case "t":
		m.setTheme(nextThemeName(m.theme, 1))
		m.notice = "Theme: " + m.theme
	}
	return nil
}

func nextDifficulty(d engine.Difficulty) engine.Difficulty {
	all := engine.ListDifficulties()
	for i, x := range all {
		if x == d {
			return all[(i+1)%len(all)]
		}
	}
	return engine.DifficultyNormal
}

func (m *model) partyKey(msg tea.KeyMsg) tea.Cmd {
	k := msg.String()
	if m.partyMode == partyChoose {
		switch k {
		case "1", "d":
			return m.dispatch(engine.Action{Type: engine.ActSetParty, Party: engine.DefaultParty()})
		case "2", "c":
			m.partyMode = partyCustom
			return m.setFocus(0)
		}
		return nil
	}
	switch k {
	case "esc":
		for i := range m.inputs {
			m.inputs[i].Blur()
		}
		m.partyMode = partyChoose
		return nil
	case "tab", "down":
		return m.setFocus(m.focus + 1)
	case "shift+tab", "up":
		return m.setFocus(m.focus - 1)
	case "enter":
		if m.focus < len(m.inputs)-1 {
			return m.setFocus(m.focus + 1)
		}
		names := make([]string, len(m.inputs))
		for i, in := range m.inputs {
			names[i] = in.Value()
		}
		cmd := m.dispatch(engine.Action{Type: engine.ActSetParty, Party: names})
		if m.state.SecretNameUsed {
			m.notice = "A legend joins the wagon..."
		}
		return cmd
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return cmd
}

func (m *model) trailKey(k string) tea.Cmd {
	switch k {
	case "enter", "c", " ":
		return m.dispatch(engine.Action{Type: engine.ActContinueTrail})
	case "r":
		return m.dispatch(engine.Action{Type: engine.ActRest})
	case "h":
		return m.dispatch(engine.Action{Type: engine.ActHunt})
	case "s":
		return m.dispatch(engine.Action{Type: engine.ActCheckSupplies})
	case "g":
		return m.dispatch(engine.Action{Type: engine.ActGiveUp})
	case "q":
		return tea.Quit
	}
	return nil
}

func answerSlot(k string) string {
	if len(k) != 1 {
		return ""
	}
	c := k[0]
	switch {
	case c >= 'a' && c <= 'd':
		return string(rune(c - 'a' + 'A'))
	case c >= 'A' && c <= 'D':
		return k
	case c >= '1' && c <= '4':
		return string(rune(c - '1' + 'A'))
	}
	return ""
}

func (m *model) riverKey(k string) tea.Cmd {
	switch k {
	case "1", "f":
		return m.dispatch(engine.Action{Type: engine.ActFordRiver})
	case "2", "w":
		return m.dispatch(engine.Action{Type: engine.ActWaitForFerry})
	case "3", "c":
		return m.dispatch(engine.Action{Type: engine.ActCaulkAndFloat})
	}
	return nil
}

func (m *model) valleyKey(k string) tea.Cmd {
	if len(k) != 1 || k[0] < '1' || int(k[0]-'1') >= len(valleyPitches) {
		return nil
	}
	pitch := valleyPitches[k[0]-'1']
	roll := m.seed.Stream(fmt.Sprintf("pitch:%d", m.dispatches)).Float64()
	return m.dispatch(engine.Action{Type: engine.ActConvinceLeadership, Success: roll < pitch.odds})
}

func (m *model) storeKey(k string) tea.Cmd {
	switch k {
	case "enter", "esc", "l":
		return m.dispatch(engine.Action{Type: engine.ActLeaveStore})
	}
	items := engine.StoreItems()
	if len(k) == 1 && k[0] >= '1' && int(k[0]-'1') < len(items) {
		item := items[k[0]-'1']
		if item.Effect == engine.EffectShield && m.state.DeathShield {
			m.notice = fmt.Sprintf("You already have %s protection!", item.Name)
			return nil
		}
		before := m.state.ItemsBought
		cmd := m.dispatch(engine.Action{Type: engine.ActBuyItem, Item: item.ID})
		if m.state.ItemsBought == before {
			m.notice = fmt.Sprintf("Not enough SPRS points for %s.", item.Name)
		} else {
			m.notice = m.state.LastOutcome
		}
		return cmd
	}
	return nil
}
