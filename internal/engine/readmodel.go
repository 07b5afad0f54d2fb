package engine

import "math"

// Outcome is the coarse status of a run.
type Outcome string

const (
	OutcomeInProgress Outcome = "in_progress"
	OutcomeVictory    Outcome = "victory"
	OutcomeDefeat     Outcome = "defeat"
)

// RunStats is the plain-data summary handed to achievement and leaderboard collaborators.
type RunStats struct {
	Outcome            Outcome
	Miles              int
	TotalMiles         int
	QuestionsAnswered  int
	CorrectAnswers     int
	Accuracy           int
	Survivors          []string
	Fallen             []string
	PartySize          int
	Morale             int
	SPRSScore          int
	Difficulty         Difficulty
	GodMode            bool
	TotalDeaths        int
	ConsecutiveCorrect int
	ItemsBought        int
	TankFireCount      int
	SecretNameUsed     bool
	QuestionsSeen      int
	GameOverReason     string
	Endings            []Ending
}

// ProgressPercent is the floored share of the trail covered, 0-100.
func ProgressPercent(s State) int {
	if s.TotalMiles <= 0 {
		return 0
	}
	return Clamp(s.Miles*100/s.TotalMiles, 0, 100)
}

// MilesRemaining is the distance left to certification.
func MilesRemaining(s State) int {
	return Clamp(s.TotalMiles-s.Miles, 0, s.TotalMiles)
}

// Survivors returns the living members in roster order.
func Survivors(s State) []PartyMember {
	out := make([]PartyMember, 0, len(s.Party))
	for _, m := range s.Party {
		if m.Alive {
			out = append(out, m)
		}
	}
	return out
}

// Fallen returns the dead members in roster order.
func Fallen(s State) []PartyMember {
	out := make([]PartyMember, 0, len(s.Party))
	for _, m := range s.Party {
		if !m.Alive {
			out = append(out, m)
		}
	}
	return out
}

// Accuracy is the rounded percentage of credited answers, 0 when nothing was answered.
func Accuracy(s State) int {
	if s.QuestionsAnswered <= 0 {
		return 0
	}
	return int(math.Round(float64(s.CorrectAnswers) * 100 / float64(s.QuestionsAnswered)))
}

// RunOutcome derives the run status from the screen.
func RunOutcome(s State) Outcome {
	switch s.Screen {
	case ScreenVictory:
		return OutcomeVictory
	case ScreenGameOver:
		return OutcomeDefeat
	default:
		return OutcomeInProgress
	}
}

// QuestionsSeen counts distinct questions shown this run.
func QuestionsSeen(s State) int {
	seen := make(map[int]struct{}, len(s.UsedQuestions))
	for _, id := range s.UsedQuestions {
		seen[id] = struct{}{}
	}
	return len(seen)
}

// ClassifyEnding lists the special endings a finished, winning run earned.
// Non-victories earn none.
func ClassifyEnding(s State) []Ending {
	if RunOutcome(s) != OutcomeVictory {
		return nil
	}
	var out []Ending
	survivors := Survivors(s)
	if s.QuestionsAnswered > 0 && s.CorrectAnswers == s.QuestionsAnswered && len(survivors) == len(s.Party) {
		out = append(out, EndingPerfectRun)
	}
	if len(survivors) == 1 {
		out = append(out, EndingSoleSurvivor)
		if survivors[0].Name == InternName {
			out = append(out, EndingInternRevenge)
		}
	}
	if s.SPRSScore < 0 {
		out = append(out, EndingAgainstAllOdds)
	}
	return out
}

func names(members []PartyMember) []string {
	out := make([]string, len(members))
	for i, m := range members {
		out[i] = m.Name
	}
	return out
}

// Stats summarises s for collaborators.
func Stats(s State) RunStats {
	return RunStats{
		Outcome:            RunOutcome(s),
		Miles:              s.Miles,
		TotalMiles:         s.TotalMiles,
		QuestionsAnswered:  s.QuestionsAnswered,
		CorrectAnswers:     s.CorrectAnswers,
		Accuracy:           Accuracy(s),
		Survivors:          names(Survivors(s)),
		Fallen:             names(Fallen(s)),
		PartySize:          len(s.Party),
		Morale:             s.Morale,
		SPRSScore:          s.SPRSScore,
		Difficulty:         s.Difficulty,
		GodMode:            s.GodMode,
		TotalDeaths:        s.TotalDeaths,
		ConsecutiveCorrect: s.ConsecutiveCorrect,
		ItemsBought:        s.ItemsBought,
		TankFireCount:      s.TankFireCount,
		SecretNameUsed:     s.SecretNameUsed,
		QuestionsSeen:      QuestionsSeen(s),
		GameOverReason:     s.GameOverReason,
		Endings:            ClassifyEnding(s),
	}
}
