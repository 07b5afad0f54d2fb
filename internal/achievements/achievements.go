package achievements

import (
	"context"
	"sort"

	"github.com/DaanHessen/cmmc-trail/internal/engine"
)

// ID identifies a badge.
type ID string

const (
	FirstWin       ID = "first_win"
	PerfectRun     ID = "perfect_run"
	InternRevenge  ID = "intern_revenge"
	SoloSurvivor   ID = "solo_survivor"
	AgainstAllOdds ID = "against_all_odds"
	FirstBlood     ID = "first_blood"
	TotalPartyKill ID = "total_party_kill"
	Perfect10      ID = "perfect_10"
	SpeedRunner    ID = "speed_runner"
	Completionist  ID = "completionist"
	Shopaholic     ID = "shopaholic"
	Konami         ID = "konami"
	SecretName     ID = "secret_name"
	TankCommander  ID = "tank_commander"
	EasyWin        ID = "easy_win"
	NormalWin      ID = "normal_win"
	HardWin        ID = "hard_win"
	NightmareWin   ID = "nightmare_win"
)

// Definition describes a badge and when it is earned.
type Definition struct {
	ID          ID
	Name        string
	Description string
	Icon        string
	earned      func(engine.RunStats) bool
}

const (
	streakTarget   = 10
	speedRunLimit  = 35
	shopaholicBuys = 5
	tankTarget     = 10
)

func won(st engine.RunStats) bool { return st.Outcome == engine.OutcomeVictory }

func hasEnding(e engine.Ending) func(engine.RunStats) bool {
	return func(st engine.RunStats) bool {
		for _, got := range st.Endings {
			if got == e {
				return true
			}
		}
		return false
	}
}

func wonOn(d engine.Difficulty) func(engine.RunStats) bool {
	return func(st engine.RunStats) bool { return won(st) && st.Difficulty == d }
}

var definitions = []Definition{
	{FirstWin, "Certified!", "Complete the CMMC Trail for the first time", "🏆", won},
	{PerfectRun, "Legendary CISO", "Win with 100% accuracy and no deaths", "👑", hasEnding(engine.EndingPerfectRun)},
	{InternRevenge, "Intern's Revenge", "Win with only the intern surviving", "📎", hasEnding(engine.EndingInternRevenge)},
	{SoloSurvivor, "Sole Survivor", "Win with only 1 party member alive", "🦸", hasEnding(engine.EndingSoleSurvivor)},
	{AgainstAllOdds, "Against All Odds", "Win with a negative SPRS score", "🎲", hasEnding(engine.EndingAgainstAllOdds)},
	{FirstBlood, "First Blood", "Lose your first team member", "💀", func(st engine.RunStats) bool { return st.TotalDeaths > 0 }},
	{TotalPartyKill, "Total Party Kill", "Lose all team members", "☠️", func(st engine.RunStats) bool {
		return st.PartySize > 0 && len(st.Survivors) == 0
	}},
	{Perfect10, "Perfect Audit", "Answer 10 questions correctly in a row", "✅", func(st engine.RunStats) bool {
		return st.ConsecutiveCorrect >= streakTarget
	}},
	{SpeedRunner, "Speed Runner", "Win in under 35 questions", "⚡", func(st engine.RunStats) bool {
		return won(st) && st.QuestionsAnswered < speedRunLimit
	}},
	{Completionist, "Completionist", "See every question in the bank", "📚", func(st engine.RunStats) bool {
		return st.QuestionsSeen >= len(engine.Questions())
	}},
	{Shopaholic, "Shopaholic", "Buy 5 items from the store in one game", "🛒", func(st engine.RunStats) bool {
		return st.ItemsBought >= shopaholicBuys
	}},
	{Konami, "Old School", "Enter the Konami code", "🎮", func(st engine.RunStats) bool { return st.GodMode }},
	{SecretName, "Who Are You?", "Use a secret party member name", "🕵️", func(st engine.RunStats) bool { return st.SecretNameUsed }},
	{TankCommander, "Tank Commander", "Fire the main gun 10 times in one game", "🎯", func(st engine.RunStats) bool {
		return st.TankFireCount >= tankTarget
	}},
	{EasyWin, "Training Complete", "Win on Compliance Intern difficulty", "🎓", wonOn(engine.DifficultyEasy)},
	{NormalWin, "Security Analyst", "Win on Security Analyst difficulty", "🔒", wonOn(engine.DifficultyNormal)},
	{HardWin, "Audit Survivor", "Win on Audit Season difficulty", "📋", wonOn(engine.DifficultyHard)},
	{NightmareWin, "Congressional Hero", "Win on Congressional Hearing difficulty", "🏛️", wonOn(engine.DifficultyNightmare)},
}

// All returns every badge in display order.
func All() []Definition { return append([]Definition{}, definitions...) }

// Lookup returns the definition for id.
func Lookup(id ID) (Definition, bool) {
	for _, d := range definitions {
		if d.ID == id {
			return d, true
		}
	}
	return Definition{}, false
}

// Evaluate returns the badges whose conditions hold for st, in display order.
func Evaluate(st engine.RunStats) []ID {
	var out []ID
	for _, d := range definitions {
		if d.earned(st) {
			out = append(out, d.ID)
		}
	}
	return out
}

// Store persists unlocked badge ids across runs.
type Store interface {
	Unlock(ctx context.Context, id string) (bool, error)
	Unlocked(ctx context.Context) ([]string, error)
}

// Tracker remembers which badges are unlocked and reports new ones.
// A nil Store keeps everything in memory for the session.
type Tracker struct {
	store    Store
	unlocked map[ID]bool
}

// NewTracker loads previously unlocked badges from store.
func NewTracker(ctx context.Context, store Store) (*Tracker, error) {
	t := &Tracker{store: store, unlocked: map[ID]bool{}}
	if store == nil {
		return t, nil
	}
	ids, err := store.Unlocked(ctx)
	if err != nil {
		return t, err
	}
	for _, id := range ids {
		t.unlocked[ID(id)] = true
	}
	return t, nil
}

// Observe evaluates st and returns badges unlocked for the first time.
// Unlocks are kept in memory even if persisting them fails; the first error is returned.
func (t *Tracker) Observe(ctx context.Context, st engine.RunStats) ([]Definition, error) {
	var (
		fresh    []Definition
		firstErr error
	)
	for _, id := range Evaluate(st) {
		if t.unlocked[id] {
			continue
		}
		t.unlocked[id] = true
		if t.store != nil {
			if _, err := t.store.Unlock(ctx, string(id)); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		d, _ := Lookup(id)
		fresh = append(fresh, d)
	}
	return fresh, firstErr
}

// IsUnlocked reports whether id has been earned.
func (t *Tracker) IsUnlocked(id ID) bool { return t.unlocked[id] }

// Progress returns unlocked and total badge counts.
func (t *Tracker) Progress() (unlocked, total int) {
	for _, d := range definitions {
		if t.unlocked[d.ID] {
			unlocked++
		}
	}
	return unlocked, len(definitions)
}

// UnlockedIDs lists earned badges sorted by id.
func (t *Tracker) UnlockedIDs() []ID {
	out := make([]ID, 0, len(t.unlocked))
	for id := range t.unlocked {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
