package engine

// Gauge bounds and trail length.
const (
	TotalMiles = 2000
	MinMorale  = 0
	MaxMorale  = 100
	MinSPRS    = -203
	MaxSPRS    = 110

	StartMorale = 100
	StartSPRS   = 50

	MaxPartySize = 5
)

// PartyMember is one member of the compliance team. Members are never removed; dead ones stay listed.
type PartyMember struct {
	Name  string
	Alive bool
}

// PresentedQuestion is a question with its options in display order.
// Best and Good hold the slot letters ("A".."D") of the graded options; Good is empty when the question has none.
type PresentedQuestion struct {
	ID      int
	Prompt  string
	Options []string
	Best    string
	Good    string
	BestWhy string
	GoodWhy string
}

// Slots returns the slot letters in display order.
func (q PresentedQuestion) Slots() []string {
	out := make([]string, len(q.Options))
	for i := range q.Options {
		out[i] = slotLetter(i)
	}
	return out
}

// OptionAt returns the option text shown in slot, or "" if slot is not on screen.
func (q PresentedQuestion) OptionAt(slot string) string {
	idx := slotIndex(slot)
	if idx < 0 || idx >= len(q.Options) {
		return ""
	}
	return q.Options[idx]
}

// AnswerOutcome is the graded result of the most recent answer.
type AnswerOutcome struct {
	Quality     Quality
	Explanation string
	Chosen      string
	BestAnswer  string
	GoodAnswer  string
}

// Death records who died most recently and how.
type Death struct {
	Name    string
	Message string
}

// HuntResult is the outcome of the last vulnerability scan.
type HuntResult struct {
	Findings int
	Severity Severity
}

// State is the complete game state. Reduce never mutates a State it was given;
// slices are copied before any change.
type State struct {
	Screen     Screen
	Party      []PartyMember
	Miles      int
	TotalMiles int
	Morale     int
	SPRSScore  int

	QuestionsAnswered int
	CorrectAnswers    int
	UsedQuestions     []int

	CurrentQuestion *PresentedQuestion
	CurrentEvent    *Event
	LastAnswer      *AnswerOutcome
	LastDeath       *Death
	HuntingResult   *HuntResult
	GameOverReason  string
	LastOutcome     string
	Landmark        string

	Difficulty  Difficulty
	GodMode     bool
	DeathShield bool

	TotalDeaths        int
	ConsecutiveCorrect int
	ItemsBought        int
	TankFireCount      int
	SecretNameUsed     bool

	VisitedStores []int
	VisitedRivers []int
	VisitedValley bool
}

// NewState returns the pristine state shown at process start and after a restart.
func NewState() State {
	return State{
		Screen:     ScreenTitle,
		TotalMiles: TotalMiles,
		Morale:     StartMorale,
		SPRSScore:  StartSPRS,
		Difficulty: DifficultyNormal,
	}
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (s *State) addMorale(delta int) { s.Morale = Clamp(s.Morale+delta, MinMorale, MaxMorale) }
func (s *State) addSPRS(delta int)   { s.SPRSScore = Clamp(s.SPRSScore+delta, MinSPRS, MaxSPRS) }

func (s *State) addMiles(delta int) {
	if delta < 0 {
		return
	}
	s.Miles = Clamp(s.Miles+delta, 0, s.TotalMiles)
}

// AliveCount returns the number of living party members.
func (s State) AliveCount() int {
	n := 0
	for _, m := range s.Party {
		if m.Alive {
			n++
		}
	}
	return n
}

func cloneInts(in []int) []int {
	if in == nil {
		return nil
	}
	return append(make([]int, 0, len(in)+1), in...)
}

func cloneParty(in []PartyMember) []PartyMember {
	if in == nil {
		return nil
	}
	return append(make([]PartyMember, 0, len(in)), in...)
}

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func slotLetter(i int) string { return string(rune('A' + i)) }

func slotIndex(slot string) int {
	if len(slot) != 1 {
		return -1
	}
	c := slot[0]
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	if c < 'A' || c > 'Z' {
		return -1
	}
	return int(c - 'A')
}
