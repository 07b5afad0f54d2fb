package text

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DaanHessen/cmmc-trail/internal/engine"
)

type failingNarrator struct{}

func (failingNarrator) Briefing(context.Context, engine.State) (string, error) {
	return "", errors.New("offline")
}
func (failingNarrator) Report(context.Context, engine.RunStats) (string, error) {
	return "", errors.New("offline")
}

func TestBriefingMentionsDistance(t *testing.T) {
	md, err := NewTemplateNarrator().Briefing(context.Background(), engine.NewState())
	if err != nil {
		t.Fatalf("Briefing: %v", err)
	}
	if !strings.Contains(md, "2000-mile") || !strings.Contains(md, "Security Analyst") {
		t.Fatalf("briefing missing details:\n%s", md)
	}
}

func TestReportVictory(t *testing.T) {
	st := engine.RunStats{
		Outcome:    engine.OutcomeVictory,
		Miles:      2000,
		TotalMiles: 2000,
		Survivors:  []string{"Ana"},
		Fallen:     []string{"Bo"},
		PartySize:  2,
		Endings:    []engine.Ending{engine.EndingSoleSurvivor},
	}
	md, _ := NewTemplateNarrator().Report(context.Background(), st)
	for _, want := range []string{"CERTIFIED", "| Survivors | 1 / 2 |", "Lost on the trail:** Bo", "Sole survivor"} {
		if !strings.Contains(md, want) {
			t.Fatalf("report missing %q:\n%s", want, md)
		}
	}
}

func TestReportDefeatShowsReason(t *testing.T) {
	st := engine.RunStats{Outcome: engine.OutcomeDefeat, GameOverReason: engine.GiveUpReason}
	md, _ := NewTemplateNarrator().Report(context.Background(), st)
	if !strings.Contains(md, "Vermont") {
		t.Fatalf("defeat report missing reason:\n%s", md)
	}
}

func TestWithFallback(t *testing.T) {
	n := WithFallback(failingNarrator{}, NewTemplateNarrator())
	md, err := n.Briefing(context.Background(), engine.NewState())
	if err != nil || md == "" {
		t.Fatalf("fallback did not take over: %q %v", md, err)
	}
	n = WithFallback(nil, NewTemplateNarrator())
	if md, err := n.Report(context.Background(), engine.RunStats{}); err != nil || !strings.Contains(md, "Trail report") {
		t.Fatalf("nil primary should use fallback: %q %v", md, err)
	}
}

func TestRenderKeepsText(t *testing.T) {
	out := Render("# Hello\n\nThe **trail** awaits.", 40)
	if !strings.Contains(out, "Hello") || !strings.Contains(out, "awaits") {
		t.Fatalf("rendered output lost text: %q", out)
	}
}
