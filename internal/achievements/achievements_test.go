package achievements

import (
	"context"
	"errors"
	"testing"

	"github.com/DaanHessen/cmmc-trail/internal/engine"
)

type memStore struct {
	ids  []string
	fail bool
}

func (m *memStore) Unlock(_ context.Context, id string) (bool, error) {
	if m.fail {
		return false, errors.New("disk full")
	}
	for _, x := range m.ids {
		if x == id {
			return false, nil
		}
	}
	m.ids = append(m.ids, id)
	return true, nil
}

func (m *memStore) Unlocked(context.Context) ([]string, error) { return m.ids, nil }

func has(ids []ID, id ID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

func TestDefinitionsAreUnique(t *testing.T) {
	seen := map[ID]bool{}
	for _, d := range All() {
		if seen[d.ID] {
			t.Fatalf("duplicate badge %s", d.ID)
		}
		seen[d.ID] = true
	}
	if len(seen) != 18 {
		t.Fatalf("expected 18 badges, got %d", len(seen))
	}
}

func TestEvaluateVictory(t *testing.T) {
	st := engine.RunStats{
		Outcome:           engine.OutcomeVictory,
		Difficulty:        engine.DifficultyHard,
		QuestionsAnswered: 20,
		PartySize:         5,
		Survivors:         []string{engine.InternName},
		TotalDeaths:       4,
		Endings:           []engine.Ending{engine.EndingSoleSurvivor, engine.EndingInternRevenge},
	}
	got := Evaluate(st)
	for _, want := range []ID{FirstWin, InternRevenge, SoloSurvivor, FirstBlood, SpeedRunner, HardWin} {
		if !has(got, want) {
			t.Fatalf("missing %s in %v", want, got)
		}
	}
	for _, not := range []ID{PerfectRun, NormalWin, TotalPartyKill, Konami} {
		if has(got, not) {
			t.Fatalf("unexpected %s in %v", not, got)
		}
	}
}

func TestEvaluateInProgress(t *testing.T) {
	st := engine.RunStats{
		Outcome:            engine.OutcomeInProgress,
		ConsecutiveCorrect: 10,
		ItemsBought:        5,
		TankFireCount:      10,
		GodMode:            true,
		SecretNameUsed:     true,
		PartySize:          3,
		Survivors:          []string{"a", "b", "c"},
	}
	got := Evaluate(st)
	for _, want := range []ID{Perfect10, Shopaholic, TankCommander, Konami, SecretName} {
		if !has(got, want) {
			t.Fatalf("missing %s in %v", want, got)
		}
	}
	if has(got, FirstWin) || has(got, SpeedRunner) {
		t.Fatalf("victory badges awarded mid-run: %v", got)
	}
}

func TestTrackerReportsOnlyNewUnlocks(t *testing.T) {
	ctx := context.Background()
	store := &memStore{ids: []string{string(Konami)}}
	tr, err := NewTracker(ctx, store)
	if err != nil {
		t.Fatalf("NewTracker: %v", err)
	}
	st := engine.RunStats{GodMode: true, SecretNameUsed: true}
	fresh, err := tr.Observe(ctx, st)
	if err != nil {
		t.Fatalf("Observe: %v", err)
	}
	if len(fresh) != 1 || fresh[0].ID != SecretName {
		t.Fatalf("fresh = %+v", fresh)
	}
	if again, _ := tr.Observe(ctx, st); len(again) != 0 {
		t.Fatalf("second observe should unlock nothing, got %+v", again)
	}
	if n, total := tr.Progress(); n != 2 || total != 18 {
		t.Fatalf("progress = %d/%d", n, total)
	}
	if len(store.ids) != 2 {
		t.Fatalf("store ids = %v", store.ids)
	}
}

func TestTrackerKeepsUnlocksWhenStoreFails(t *testing.T) {
	ctx := context.Background()
	tr, _ := NewTracker(ctx, &memStore{fail: true})
	fresh, err := tr.Observe(ctx, engine.RunStats{TankFireCount: 12})
	if err == nil {
		t.Fatalf("expected store error")
	}
	if len(fresh) != 1 || !tr.IsUnlocked(TankCommander) {
		t.Fatalf("unlock should survive a store error")
	}
}

func TestTrackerWithoutStore(t *testing.T) {
	tr, err := NewTracker(context.Background(), nil)
	if err != nil {
		t.Fatalf("NewTracker: %v", err)
	}
	if _, err := tr.Observe(context.Background(), engine.RunStats{SecretNameUsed: true}); err != nil {
		t.Fatalf("Observe: %v", err)
	}
	if ids := tr.UnlockedIDs(); len(ids) != 1 || ids[0] != SecretName {
		t.Fatalf("ids = %v", ids)
	}
}
