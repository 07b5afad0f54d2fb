package text

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/DaanHessen/cmmc-trail/internal/engine"
)

// Narrator is the interface used by the game to render prose.
type Narrator interface {
	Briefing(ctx context.Context, st engine.State) (string, error)
	Report(ctx context.Context, st engine.RunStats) (string, error)
}

// templateNarrator is a deterministic, offline narrator used as fallback.
type templateNarrator struct{}

func NewTemplateNarrator() Narrator { return &templateNarrator{} }

func (t *templateNarrator) Briefing(ctx context.Context, st engine.State) (string, error) {
	var b strings.Builder
	b.WriteString("# The year is 2024\n\n")
	b.WriteString("The Department of Defense has mandated **CMMC 2.0** for all contractors.\n\n")
	fmt.Fprintf(&b, "Your mission: lead your compliance team on a treacherous **%d-mile** journey through the wilderness of federal cybersecurity requirements.\n\n", st.TotalMiles)
	b.WriteString("You will face:\n\n")
	for _, hazard := range []string{
		"Compliance checkpoints with difficult questions",
		"Random auditor encounters",
		"The ever-present threat of data breaches",
		"Legacy systems that refuse to die",
		"Shadow IT lurking in every department",
	} {
		b.WriteString("- " + hazard + "\n")
	}
	fmt.Fprintf(&b, "\nDifficulty: *%s*. ", st.Difficulty.Label())
	b.WriteString("Many compliance teams have tried this journey before. Most have perished from unpatched vulnerabilities.\n")
	return b.String(), nil
}

func (t *templateNarrator) Report(ctx context.Context, st engine.RunStats) (string, error) {
	var b strings.Builder
	switch st.Outcome {
	case engine.OutcomeVictory:
		b.WriteString("# ★ CERTIFIED ★\n\n**CMMC Level 2 achieved!**\n\n")
	case engine.OutcomeDefeat:
		b.WriteString("# Game over\n\n")
		if st.GameOverReason != "" {
			b.WriteString(st.GameOverReason + "\n\n")
		}
	default:
		b.WriteString("# Trail report\n\n")
	}
	b.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Miles | %d / %d |\n", st.Miles, st.TotalMiles)
	fmt.Fprintf(&b, "| Survivors | %d / %d |\n", len(st.Survivors), st.PartySize)
	fmt.Fprintf(&b, "| Questions answered | %d |\n", st.QuestionsAnswered)
	fmt.Fprintf(&b, "| Accuracy | %d%% |\n", st.Accuracy)
	fmt.Fprintf(&b, "| Final morale | %d%% |\n", st.Morale)
	fmt.Fprintf(&b, "| Final SPRS score | %d |\n", st.SPRSScore)
	if len(st.Survivors) > 0 {
		b.WriteString("\n**Made it:** " + strings.Join(st.Survivors, ", ") + "\n")
	}
	if len(st.Fallen) > 0 {
		b.WriteString("\n**Lost on the trail:** " + strings.Join(st.Fallen, ", ") + "\n")
	}
	for _, e := range st.Endings {
		b.WriteString("\n> " + endingLine(e) + "\n")
	}
	if st.Outcome == engine.OutcomeVictory {
		b.WriteString("\n*(...until next year's reassessment)*\n")
	}
	return b.String(), nil
}

func endingLine(e engine.Ending) string {
	switch e {
	case engine.EndingPerfectRun:
		return "Perfect run. Every answer right and nobody left behind."
	case engine.EndingSoleSurvivor:
		return "Sole survivor. One assessor limps across the finish line."
	case engine.EndingInternRevenge:
		return "The intern nobody bothered to name is the last one standing."
	case engine.EndingAgainstAllOdds:
		return "Against all odds. Certified with a negative SPRS score."
	default:
		return string(e)
	}
}

// WithFallback returns a narrator that prefers primary and falls back to backup on error.
func WithFallback(primary, fallback Narrator) Narrator { return &fallbackNarrator{p: primary, f: fallback} }

type fallbackNarrator struct{ p, f Narrator }

func (n *fallbackNarrator) Briefing(ctx context.Context, st engine.State) (string, error) {
	if n.p == nil {
		return n.f.Briefing(ctx, st)
	}
	if s, err := n.p.Briefing(ctx, st); err == nil {
		return s, nil
	}
	return n.f.Briefing(ctx, st)
}

func (n *fallbackNarrator) Report(ctx context.Context, st engine.RunStats) (string, error) {
	if n.p == nil {
		return n.f.Report(ctx, st)
	}
	if s, err := n.p.Report(ctx, st); err == nil {
		return s, nil
	}
	return n.f.Report(ctx, st)
}

// Render turns markdown into styled terminal output at width columns.
// The raw markdown is returned when rendering fails.
func Render(md string, width int) string {
	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(width))
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}
