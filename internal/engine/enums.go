package engine

// String backed enums so values survive JSON and DB round trips unchanged.

type Screen string
type Difficulty string
type EventType string
type Quality string
type Severity string
type ItemEffect string
type Encounter string
type Ending string

const (
	ScreenTitle        Screen = "title"
	ScreenIntro        Screen = "intro"
	ScreenParty        Screen = "party"
	ScreenTrail        Screen = "trail"
	ScreenQuestion     Screen = "question"
	ScreenResult       Screen = "result"
	ScreenEvent        Screen = "event"
	ScreenDeath        Screen = "death"
	ScreenSupplies     Screen = "supplies"
	ScreenResting      Screen = "resting"
	ScreenHunting      Screen = "hunting"
	ScreenRiver        Screen = "river"
	ScreenValley       Screen = "valley_of_despair"
	ScreenStore        Screen = "store"
	ScreenGameOver     Screen = "gameover"
	ScreenVictory      Screen = "victory"
	ScreenLeaderboard  Screen = "leaderboard"
	ScreenAchievements Screen = "achievements"
)

var AllScreens = []Screen{
	ScreenTitle, ScreenIntro, ScreenParty, ScreenTrail, ScreenQuestion, ScreenResult,
	ScreenEvent, ScreenDeath, ScreenSupplies, ScreenResting, ScreenHunting, ScreenRiver,
	ScreenValley, ScreenStore, ScreenGameOver, ScreenVictory, ScreenLeaderboard, ScreenAchievements,
}

const (
	DifficultyEasy      Difficulty = "easy"
	DifficultyNormal    Difficulty = "normal"
	DifficultyHard      Difficulty = "hard"
	DifficultyNightmare Difficulty = "nightmare"
)

var AllDifficulties = []Difficulty{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyNightmare}

const (
	EventDeath   EventType = "death"
	EventGood    EventType = "good"
	EventBad     EventType = "bad"
	EventNeutral EventType = "neutral"
)

var AllEventTypes = []EventType{EventDeath, EventGood, EventBad, EventNeutral}

const (
	QualityBest  Quality = "best"
	QualityGood  Quality = "good"
	QualityWrong Quality = "wrong"
)

var AllQualities = []Quality{QualityBest, QualityGood, QualityWrong}

const (
	SeverityCritical Severity = "critical"
	SeverityModerate Severity = "moderate"
	SeverityLow      Severity = "low"
)

var AllSeverities = []Severity{SeverityCritical, SeverityModerate, SeverityLow}

const (
	EffectMorale ItemEffect = "morale"
	EffectSPRS   ItemEffect = "sprs"
	EffectShield ItemEffect = "shield"
	EffectBoth   ItemEffect = "both"
)

var AllItemEffects = []ItemEffect{EffectMorale, EffectSPRS, EffectShield, EffectBoth}

const (
	EncounterNone   Encounter = "none"
	EncounterStore  Encounter = "store"
	EncounterRiver  Encounter = "river"
	EncounterValley Encounter = "valley"
)

var AllEncounters = []Encounter{EncounterNone, EncounterStore, EncounterRiver, EncounterValley}

const (
	EndingPerfectRun     Ending = "perfect_run"
	EndingSoleSurvivor   Ending = "sole_survivor"
	EndingInternRevenge  Ending = "intern_revenge"
	EndingAgainstAllOdds Ending = "against_all_odds"
)

var AllEndings = []Ending{EndingPerfectRun, EndingSoleSurvivor, EndingInternRevenge, EndingAgainstAllOdds}

// Generic helpers
func contains[T ~string](list []T, v T) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func (s Screen) Validate() bool     { return contains(AllScreens, s) }
func (d Difficulty) Validate() bool { return contains(AllDifficulties, d) }
func (e EventType) Validate() bool  { return contains(AllEventTypes, e) }
func (q Quality) Validate() bool    { return contains(AllQualities, q) }
func (s Severity) Validate() bool   { return contains(AllSeverities, s) }
func (e ItemEffect) Validate() bool { return contains(AllItemEffects, e) }
func (e Encounter) Validate() bool  { return contains(AllEncounters, e) }

// Correct reports whether the tier earns credit in the counters.
func (q Quality) Correct() bool { return q == QualityBest || q == QualityGood }

// Label is the in-game title for a difficulty.
func (d Difficulty) Label() string {
	switch d {
	case DifficultyEasy:
		return "Compliance Intern"
	case DifficultyHard:
		return "Audit Season"
	case DifficultyNightmare:
		return "Congressional Hearing"
	default:
		return "Security Analyst"
	}
}

// List helpers
func ListScreens() []Screen           { return append([]Screen{}, AllScreens...) }
func ListDifficulties() []Difficulty  { return append([]Difficulty{}, AllDifficulties...) }
func ListEventTypes() []EventType     { return append([]EventType{}, AllEventTypes...) }
func ListItemEffects() []ItemEffect   { return append([]ItemEffect{}, AllItemEffects...) }
func ListEndings() []Ending           { return append([]Ending{}, AllEndings...) }
