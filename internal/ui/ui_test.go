package ui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DaanHessen/cmmc-trail/internal/achievements"
	"github.com/DaanHessen/cmmc-trail/internal/engine"
	"github.com/DaanHessen/cmmc-trail/internal/store"
	"github.com/DaanHessen/cmmc-trail/internal/util"
)

type fakeRepo struct {
	runs     []store.Entry
	unlocked []string
}

func (f *fakeRepo) RecordRun(_ context.Context, e store.Entry) error {
	f.runs = append(f.runs, e)
	return nil
}
func (f *fakeRepo) TopRuns(_ context.Context, limit int) ([]store.Entry, error) {
	if len(f.runs) > limit {
		return f.runs[:limit], nil
	}
	return f.runs, nil
}
func (f *fakeRepo) Unlock(_ context.Context, id string) (bool, error) {
	f.unlocked = append(f.unlocked, id)
	return true, nil
}
func (f *fakeRepo) Unlocked(context.Context) ([]string, error) { return f.unlocked, nil }
func (f *fakeRepo) Close() error                               { return nil }

func testModel(t *testing.T, repo store.Repository) model {
	t.Helper()
	cfg := util.Defaults()
	cfg.SeedText = "ui-test"
	return newModel(context.Background(), repo, nil, cfg)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m model, keys ...string) (model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		m = next.(model)
	}
	return m, cmd
}

func TestTitleToIntroToParty(t *testing.T) {
	m := testModel(t, nil)
	m, _ = press(t, m, "enter")
	if m.state.Screen != engine.ScreenIntro {
		t.Fatalf("expected intro, got %s", m.state.Screen)
	}
	if m.briefing == "" {
		t.Fatalf("briefing not rendered")
	}
	m, _ = press(t, m, "enter")
	if m.state.Screen != engine.ScreenParty {
		t.Fatalf("expected party select, got %s", m.state.Screen)
	}
}

func TestDefaultTeam(t *testing.T) {
	m := testModel(t, nil)
	m, _ = press(t, m, "enter", "enter", "d")
	if m.state.Screen != engine.ScreenTrail {
		t.Fatalf("expected trail, got %s", m.state.Screen)
	}
	if len(m.state.Party) != len(engine.DefaultParty()) {
		t.Fatalf("party = %v", m.state.Party)
	}
}

func TestCustomTeamFillsBlanks(t *testing.T) {
	m := testModel(t, nil)
	m, _ = press(t, m, "enter", "enter", "c", "A", "n", "a", "enter", "enter", "enter", "enter", "enter")
	if m.state.Screen != engine.ScreenTrail {
		t.Fatalf("expected trail, got %s", m.state.Screen)
	}
	defaults := engine.DefaultParty()
	if m.state.Party[0].Name != "Ana" || m.state.Party[1].Name != defaults[1] {
		t.Fatalf("party = %v", m.state.Party)
	}
}

func TestKonamiTogglesGodMode(t *testing.T) {
	m := testModel(t, nil)
	m, _ = press(t, m, konamiCode...)
	if !m.state.GodMode {
		t.Fatalf("god mode should be on")
	}
	if m.state.Screen != engine.ScreenTitle {
		t.Fatalf("the final key must not navigate, got %s", m.state.Screen)
	}
	if !m.tracker.IsUnlocked(achievements.Konami) {
		t.Fatalf("konami badge not unlocked")
	}
}

func TestBrokenKonamiFallsThrough(t *testing.T) {
	m := testModel(t, nil)
	m, _ = press(t, m, "up", "up", "x", "a")
	if m.state.GodMode {
		t.Fatalf("god mode toggled by a broken sequence")
	}
	if m.state.Screen != engine.ScreenAchievements {
		t.Fatalf("expected achievements after reset, got %s", m.state.Screen)
	}
}

func TestRestingTimer(t *testing.T) {
	m := testModel(t, nil)
	m, _ = press(t, m, "enter", "enter", "d")
	m, cmd := press(t, m, "r")
	if m.state.Screen != engine.ScreenResting || cmd == nil {
		t.Fatalf("resting should schedule a timer; screen=%s", m.state.Screen)
	}
	next, _ := m.Update(finishMsg{screen: engine.ScreenResting, timer: m.timer - 1})
	if next.(model).state.Screen != engine.ScreenResting {
		t.Fatalf("stale timer must be ignored")
	}
	next, _ = m.Update(finishMsg{screen: engine.ScreenResting, timer: m.timer})
	if next.(model).state.Screen == engine.ScreenResting {
		t.Fatalf("timer did not finish the rest")
	}
}

func TestHuntSkipWithEnter(t *testing.T) {
	m := testModel(t, nil)
	m, _ = press(t, m, "enter", "enter", "d", "h")
	if m.state.Screen != engine.ScreenHunting {
		t.Fatalf("expected hunting, got %s", m.state.Screen)
	}
	m, _ = press(t, m, "enter")
	if m.state.Screen == engine.ScreenHunting || m.state.HuntingResult == nil {
		t.Fatalf("hunt not finished: %s", m.state.Screen)
	}
}

func TestFinishedRunIsRecordedOnce(t *testing.T) {
	repo := &fakeRepo{}
	m := testModel(t, repo)
	m, _ = press(t, m, "enter", "enter", "d", "g")
	if m.state.Screen != engine.ScreenGameOver {
		t.Fatalf("expected game over, got %s", m.state.Screen)
	}
	if len(repo.runs) != 1 || repo.runs[0].Outcome != string(engine.OutcomeDefeat) {
		t.Fatalf("runs = %+v", repo.runs)
	}
	if m.report == "" {
		t.Fatalf("report not rendered")
	}
	m, _ = press(t, m, "x")
	if len(repo.runs) != 1 {
		t.Fatalf("run recorded twice")
	}
	m, _ = press(t, m, "enter")
	if m.state.Screen != engine.ScreenTitle || m.recorded {
		t.Fatalf("restart did not reset the run")
	}
	m, _ = press(t, m, "l")
	if m.state.Screen != engine.ScreenLeaderboard || len(m.leaderboard) != 1 {
		t.Fatalf("leaderboard = %+v", m.leaderboard)
	}
	m, _ = press(t, m, "esc")
	if m.state.Screen != engine.ScreenTitle {
		t.Fatalf("esc should return to title")
	}
}

func TestWrongScreenKeysAreIgnored(t *testing.T) {
	m := testModel(t, nil)
	m, _ = press(t, m, "enter", "enter", "d")
	before := m.state
	m, _ = press(t, m, "z", "9")
	if m.state.Screen != before.Screen || m.state.Miles != before.Miles {
		t.Fatalf("unbound keys changed state")
	}
}

func TestThemeCycle(t *testing.T) {
	m := testModel(t, nil)
	m, _ = press(t, m, "t")
	if m.theme != "amber" {
		t.Fatalf("theme = %s", m.theme)
	}
	if got := nextThemeName("amber", -1); got != "terminal" {
		t.Fatalf("nextThemeName backwards = %s", got)
	}
	if got := nextThemeName("missing", 1); got != "catppuccin" {
		t.Fatalf("unknown theme should start from the first: %s", got)
	}
}

func TestDifficultyFromConfigAndCycle(t *testing.T) {
	cfg := util.Defaults()
	cfg.SeedText = "x"
	cfg.Difficulty = "nightmare"
	m := newModel(context.Background(), nil, nil, cfg)
	if m.state.Difficulty != engine.DifficultyNightmare {
		t.Fatalf("difficulty = %s", m.state.Difficulty)
	}
	m, _ = press(t, m, "d")
	if m.state.Difficulty != engine.DifficultyEasy {
		t.Fatalf("difficulty should wrap to easy, got %s", m.state.Difficulty)
	}
}

func TestAnswerSlot(t *testing.T) {
	cases := map[string]string{"a": "A", "D": "D", "1": "A", "4": "D", "e": "", "5": "", "enter": ""}
	for in, want := range cases {
		if got := answerSlot(in); got != want {
			t.Fatalf("answerSlot(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestViewRendersEveryScreen(t *testing.T) {
	m := testModel(t, nil)
	for _, s := range engine.ListScreens() {
		m.state.Screen = s
		_ = m.View()
	}
}

func TestStoreRefusesSecondShield(t *testing.T) {
	m := testModel(t, nil)
	m, _ = press(t, m, "enter", "enter", "d")
	m.state.Screen = engine.ScreenStore
	m.state.SPRSScore = 100
	m.state.DeathShield = true
	m, _ = press(t, m, "5")
	if m.state.SPRSScore != 100 || m.state.ItemsBought != 0 {
		t.Fatalf("shield bought twice: sprs=%d items=%d", m.state.SPRSScore, m.state.ItemsBought)
	}
	if !m.state.DeathShield || m.state.Screen != engine.ScreenStore {
		t.Fatalf("state changed: shield=%t screen=%s", m.state.DeathShield, m.state.Screen)
	}
	if m.notice == "" {
		t.Fatalf("expected a notice explaining the refusal")
	}

	m.state.DeathShield = false
	m, _ = press(t, m, "5")
	if m.state.SPRSScore != 80 || !m.state.DeathShield || m.state.ItemsBought != 1 {
		t.Fatalf("first shield purchase failed: sprs=%d shield=%t", m.state.SPRSScore, m.state.DeathShield)
	}
}
