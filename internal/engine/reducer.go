package engine

import (
	"fmt"
	"sort"
	"strings"
)

// ActionType names a player or timer action.
type ActionType string

const (
	ActStartGame          ActionType = "START_GAME"
	ActShowIntro          ActionType = "SHOW_INTRO"
	ActShowPartySelect    ActionType = "SHOW_PARTY_SELECT"
	ActSetParty           ActionType = "SET_PARTY"
	ActSetPartyWithBonus  ActionType = "SET_PARTY_WITH_BONUS"
	ActStartTrail         ActionType = "START_TRAIL"
	ActContinueTrail      ActionType = "CONTINUE_TRAIL"
	ActStartQuestion      ActionType = "START_QUESTION"
	ActAnswerQuestion     ActionType = "ANSWER_QUESTION"
	ActDismissResult      ActionType = "DISMISS_RESULT"
	ActTriggerEvent       ActionType = "TRIGGER_EVENT"
	ActDismissEvent       ActionType = "DISMISS_EVENT"
	ActDismissDeath       ActionType = "DISMISS_DEATH"
	ActRest               ActionType = "REST"
	ActFinishRest         ActionType = "FINISH_REST"
	ActHunt               ActionType = "HUNT_VULNERABILITIES"
	ActFinishHunting      ActionType = "FINISH_HUNTING"
	ActCheckSupplies      ActionType = "CHECK_SUPPLIES"
	ActCloseSupplies      ActionType = "CLOSE_SUPPLIES"
	ActFordRiver          ActionType = "FORD_RIVER"
	ActWaitForFerry       ActionType = "WAIT_FOR_FERRY"
	ActCaulkAndFloat      ActionType = "CAULK_AND_FLOAT"
	ActConvinceLeadership ActionType = "CONVINCE_LEADERSHIP"
	ActBuyItem            ActionType = "BUY_ITEM"
	ActLeaveStore         ActionType = "LEAVE_STORE"
	ActGiveUp             ActionType = "GIVE_UP"
	ActRestart            ActionType = "RESTART"
	ActToggleGodMode      ActionType = "TOGGLE_GOD_MODE"
	ActSetDifficulty      ActionType = "SET_DIFFICULTY"
	ActFireTank           ActionType = "FIRE_TANK"
	ActShowLeaderboard    ActionType = "SHOW_LEADERBOARD"
	ActShowAchievements   ActionType = "SHOW_ACHIEVEMENTS"
	ActBackToTitle        ActionType = "BACK_TO_TITLE"
)

// Action is a dispatched action. Only the payload field relevant to Type is read.
type Action struct {
	Type       ActionType
	Party      []string
	Answer     string
	Success    bool
	Item       string
	Difficulty Difficulty
	Bonus      int
}

// Probabilities and deltas.
const (
	eventChance     = 0.35
	restEventChance = 0.20
	wrongDeathRoll  = 0.50
	valleyDeathRoll = 0.25

	fordDeath    = 0.10
	fordPenalty  = 0.40
	caulkDeath   = 0.20
	caulkPenalty = 0.50

	huntMaxFindings   = 50
	huntCriticalAbove = 30
	huntModerateAbove = 10
)

// GiveUpReason is the narrative shown when the player quits the trail.
const GiveUpReason = "You abandoned your CMMC journey to start an organic vegetable farm in Vermont. The DoD is disappointed but respects your decision."

const (
	reasonPartyWiped     = "Your entire compliance team has perished on the trail."
	reasonMoraleCollapse = "Your team's morale has collapsed. They've abandoned compliance to become organic farmers in Vermont."
)

type reward struct {
	miles, morale, sprs int
}

var answerRewards = map[Quality]reward{
	QualityBest:  {miles: 100, morale: 10, sprs: 5},
	QualityGood:  {miles: 75, morale: 5, sprs: 2},
	QualityWrong: {miles: 25, morale: -15, sprs: -8},
}

type handler func(s State, a Action, r Rand) (State, bool)

var handlers = map[ActionType]handler{}

// screens on which each action means something; anything else is ignored.
var allowedScreens = map[ActionType][]Screen{
	ActStartGame:          {ScreenTitle},
	ActShowIntro:          {ScreenTitle},
	ActShowPartySelect:    {ScreenTitle, ScreenIntro},
	ActSetParty:           {ScreenTitle, ScreenIntro, ScreenParty},
	ActSetPartyWithBonus:  {ScreenTitle, ScreenIntro, ScreenParty},
	ActStartTrail:         {ScreenTrail, ScreenSupplies},
	ActContinueTrail:      {ScreenTrail},
	ActStartQuestion:      {ScreenTrail},
	ActAnswerQuestion:     {ScreenQuestion},
	ActDismissResult:      {ScreenResult},
	ActTriggerEvent:       {ScreenTrail},
	ActDismissEvent:       {ScreenEvent},
	ActDismissDeath:       {ScreenDeath},
	ActRest:               {ScreenTrail},
	ActFinishRest:         {ScreenResting},
	ActHunt:               {ScreenTrail},
	ActFinishHunting:      {ScreenHunting},
	ActCheckSupplies:      {ScreenTrail},
	ActCloseSupplies:      {ScreenSupplies},
	ActFordRiver:          {ScreenRiver},
	ActWaitForFerry:       {ScreenRiver},
	ActCaulkAndFloat:      {ScreenRiver},
	ActConvinceLeadership: {ScreenValley},
	ActBuyItem:            {ScreenStore},
	ActLeaveStore:         {ScreenStore},
	ActGiveUp:             {ScreenTrail},
	ActRestart:            AllScreens,
	ActToggleGodMode:      {ScreenTitle},
	ActSetDifficulty:      {ScreenTitle},
	ActFireTank:           {ScreenTitle},
	ActShowLeaderboard:    {ScreenTitle},
	ActShowAchievements:   {ScreenTitle},
	ActBackToTitle:        {ScreenLeaderboard, ScreenAchievements},
}

func init() {
	handlers[ActStartGame] = goTo(ScreenIntro)
	handlers[ActShowIntro] = goTo(ScreenIntro)
	handlers[ActShowPartySelect] = goTo(ScreenParty)
	handlers[ActSetParty] = setParty
	handlers[ActSetPartyWithBonus] = setParty
	handlers[ActStartTrail] = startTrail
	handlers[ActContinueTrail] = continueTrail
	handlers[ActStartQuestion] = startQuestion
	handlers[ActAnswerQuestion] = answerQuestion
	handlers[ActDismissResult] = dismissResult
	handlers[ActTriggerEvent] = triggerEvent
	handlers[ActDismissEvent] = dismissEvent
	handlers[ActDismissDeath] = dismissDeath
	handlers[ActRest] = goTo(ScreenResting)
	handlers[ActFinishRest] = finishRest
	handlers[ActHunt] = goTo(ScreenHunting)
	handlers[ActFinishHunting] = finishHunting
	handlers[ActCheckSupplies] = goTo(ScreenSupplies)
	handlers[ActCloseSupplies] = goTo(ScreenTrail)
	handlers[ActFordRiver] = fordRiver
	handlers[ActWaitForFerry] = waitForFerry
	handlers[ActCaulkAndFloat] = caulkAndFloat
	handlers[ActConvinceLeadership] = convinceLeadership
	handlers[ActBuyItem] = buyItem
	handlers[ActLeaveStore] = leaveStore
	handlers[ActGiveUp] = giveUp
	handlers[ActRestart] = func(State, Action, Rand) (State, bool) { return NewState(), true }
	handlers[ActToggleGodMode] = toggleGodMode
	handlers[ActSetDifficulty] = setDifficulty
	handlers[ActFireTank] = fireTank
	handlers[ActShowLeaderboard] = goTo(ScreenLeaderboard)
	handlers[ActShowAchievements] = goTo(ScreenAchievements)
	handlers[ActBackToTitle] = goTo(ScreenTitle)
}

// Reduce applies a to s and returns the next state. Actions that make no sense
// for the current screen, unknown actions and missing payloads return s unchanged.
// s itself is never modified.
func Reduce(s State, a Action, r Rand) State {
	h, ok := handlers[a.Type]
	if !ok || !contains(allowedScreens[a.Type], s.Screen) {
		return s
	}
	if r == nil {
		r = newStream(SeedFromString(string(a.Type)))
	}
	next := s
	next.LastOutcome = ""
	out, changed := h(next, a, r)
	if !changed {
		return s
	}
	return out
}

// AllowedOn reports whether t is handled on screen.
func AllowedOn(t ActionType, screen Screen) bool {
	return contains(allowedScreens[t], screen)
}

// ActionTypes lists every action the reducer understands.
func ActionTypes() []ActionType {
	out := make([]ActionType, 0, len(allowedScreens))
	for t := range allowedScreens {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func goTo(screen Screen) handler {
	return func(s State, _ Action, _ Rand) (State, bool) {
		s.Screen = screen
		return s, true
	}
}

func (s *State) clearTransient() {
	s.CurrentQuestion = nil
	s.CurrentEvent = nil
	s.LastAnswer = nil
	s.LastDeath = nil
}

// checkEnd evaluates loss before win: a wiped party or collapsed morale loses
// even on the tick the destination is reached.
func checkEnd(s State) (ended, victory bool, reason string) {
	if s.AliveCount() == 0 {
		return true, false, reasonPartyWiped
	}
	if s.Morale <= 0 {
		return true, false, reasonMoraleCollapse
	}
	if s.Miles >= s.TotalMiles {
		return true, true, ""
	}
	return false, false, ""
}

// settle ends the run if an end condition holds, otherwise returns to the trail.
func (s *State) settle() {
	s.clearTransient()
	ended, victory, reason := checkEnd(*s)
	switch {
	case ended && victory:
		s.Screen = ScreenVictory
	case ended:
		s.Screen = ScreenGameOver
		s.GameOverReason = reason
	default:
		s.Screen = ScreenTrail
	}
}

func (s *State) poseQuestion(r Rand) {
	q := PickQuestion(s.UsedQuestions, r)
	pq := ShuffleQuestion(q, r)
	s.clearTransient()
	s.CurrentQuestion = &pq
	s.UsedQuestions = append(cloneInts(s.UsedQuestions), q.ID)
	s.Screen = ScreenQuestion
}

func (s *State) poseEvent(r Rand) {
	ev := PickEvent(r)
	s.clearTransient()
	s.CurrentEvent = &ev
	s.Screen = ScreenEvent
}

func (s *State) noteCasualty(r Rand) bool {
	died := applyCasualty(s, r)
	if died {
		death := s.LastDeath
		s.clearTransient()
		s.LastDeath = death
		s.Screen = ScreenDeath
	}
	return died
}

func buildParty(names []string) ([]PartyMember, bool) {
	if len(names) == 0 || len(names) > MaxPartySize {
		return nil, false
	}
	party := make([]PartyMember, 0, len(names))
	seen := make(map[string]bool, len(names))
	for i, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			name = defaultParty[i]
		}
		base := name
		for n := 2; seen[name]; n++ {
			name = fmt.Sprintf("%s (%d)", base, n)
		}
		seen[name] = true
		party = append(party, PartyMember{Name: name, Alive: true})
	}
	return party, true
}

func setParty(s State, a Action, _ Rand) (State, bool) {
	party, ok := buildParty(a.Party)
	if !ok {
		return s, false
	}
	s.Party = party
	for _, m := range party {
		if IsSecretName(m.Name) {
			s.SecretNameUsed = true
		}
	}
	if a.Type == ActSetPartyWithBonus {
		s.addSPRS(a.Bonus)
	}
	s.clearTransient()
	s.Screen = ScreenTrail
	return s, true
}

func startTrail(s State, _ Action, _ Rand) (State, bool) {
	if len(s.Party) == 0 {
		return s, false
	}
	s.Screen = ScreenTrail
	return s, true
}

func continueTrail(s State, _ Action, r Rand) (State, bool) {
	kind, milestone := NextEncounter(s.Miles, s.visits())
	switch kind {
	case EncounterStore:
		s.VisitedStores = append(cloneInts(s.VisitedStores), milestone)
		s.Screen = ScreenStore
	case EncounterRiver:
		s.VisitedRivers = append(cloneInts(s.VisitedRivers), milestone)
		s.Screen = ScreenRiver
	case EncounterValley:
		s.VisitedValley = true
		s.Screen = ScreenValley
	default:
		if r.Float64() < eventChance {
			s.poseEvent(r)
		} else {
			s.poseQuestion(r)
		}
		return s, true
	}
	s.clearTransient()
	s.Landmark = LandmarkName(kind, milestone)
	return s, true
}

func startQuestion(s State, _ Action, r Rand) (State, bool) {
	s.poseQuestion(r)
	return s, true
}

func triggerEvent(s State, _ Action, r Rand) (State, bool) {
	s.poseEvent(r)
	return s, true
}

func answerQuestion(s State, a Action, r Rand) (State, bool) {
	q := s.CurrentQuestion
	if q == nil {
		return s, false
	}
	slot := strings.ToUpper(strings.TrimSpace(a.Answer))
	if q.OptionAt(slot) == "" {
		return s, false
	}
	quality := QualityWrong
	switch {
	case slot == q.Best:
		quality = QualityBest
	case q.Good != "" && slot == q.Good:
		quality = QualityGood
	}
	out := &AnswerOutcome{
		Quality:    quality,
		Chosen:     slot,
		BestAnswer: q.Best + ") " + q.OptionAt(q.Best),
	}
	if q.Good != "" {
		out.GoodAnswer = q.Good + ") " + q.OptionAt(q.Good)
	}
	out.Explanation = q.BestWhy
	if quality == QualityGood && q.GoodWhy != "" {
		out.Explanation = q.GoodWhy
	}

	s.clearTransient()
	s.QuestionsAnswered++
	if quality.Correct() {
		s.CorrectAnswers++
		s.ConsecutiveCorrect++
	} else {
		s.ConsecutiveCorrect = 0
	}
	rw := answerRewards[quality]
	s.addMiles(rw.miles)
	s.addMorale(rw.morale)
	s.addSPRS(rw.sprs)
	if quality == QualityWrong && r.Float64() < wrongDeathRoll {
		applyCasualty(&s, r)
	}
	s.LastAnswer = out
	s.Screen = ScreenResult
	return s, true
}

func dismissResult(s State, _ Action, _ Rand) (State, bool) {
	if s.LastDeath != nil {
		death := s.LastDeath
		s.clearTransient()
		s.LastDeath = death
		s.Screen = ScreenDeath
		return s, true
	}
	s.settle()
	return s, true
}

func dismissEvent(s State, _ Action, r Rand) (State, bool) {
	ev := s.CurrentEvent
	if ev == nil {
		return s, false
	}
	switch ev.Type {
	case EventDeath:
		if s.noteCasualty(r) {
			return s, true
		}
	case EventGood:
		s.addMorale(15)
		s.addSPRS(5)
	case EventBad:
		s.addMorale(-15)
		s.addSPRS(-10)
	}
	s.poseQuestion(r)
	return s, true
}

func dismissDeath(s State, _ Action, _ Rand) (State, bool) {
	s.settle()
	return s, true
}

func finishRest(s State, _ Action, r Rand) (State, bool) {
	s.addMorale(15)
	s.addMiles(25)
	s.LastOutcome = "The team rested. Morale recovered a little."
	if r.Float64() < restEventChance {
		s.poseEvent(r)
		return s, true
	}
	s.settle()
	return s, true
}

// ClassifyFindings maps a finding count from a vulnerability scan.
func ClassifyFindings(findings int) Severity {
	switch {
	case findings > huntCriticalAbove:
		return SeverityCritical
	case findings > huntModerateAbove:
		return SeverityModerate
	default:
		return SeverityLow
	}
}

func finishHunting(s State, _ Action, r Rand) (State, bool) {
	findings := r.Intn(huntMaxFindings + 1)
	sev := ClassifyFindings(findings)
	s.addMiles(50)
	switch sev {
	case SeverityCritical:
		s.addMorale(-10)
		s.addSPRS(-15)
	case SeverityModerate:
		s.addSPRS(-5)
	default:
		s.addMorale(5)
		s.addSPRS(10)
	}
	s.HuntingResult = &HuntResult{Findings: findings, Severity: sev}
	s.LastOutcome = fmt.Sprintf("The scan found %d vulnerabilities (%s).", findings, sev)
	s.settle()
	return s, true
}

func (s *State) leaveLandmark(r Rand, outcome string, deathRoll bool) {
	s.Landmark = ""
	s.LastOutcome = outcome
	if deathRoll && s.noteCasualty(r) {
		return
	}
	s.settle()
}

func fordRiver(s State, _ Action, r Rand) (State, bool) {
	roll := r.Float64()
	switch {
	case roll < fordDeath:
		s.addMiles(50)
		s.addMorale(-10)
		s.leaveLandmark(r, "The ford turned into a flash flood of legacy data.", true)
	case roll < fordPenalty:
		s.addMiles(50)
		s.addMorale(-10)
		s.addSPRS(-5)
		s.leaveLandmark(r, "You forded the river but lost evidence artifacts to the current.", false)
	default:
		s.addMiles(100)
		s.leaveLandmark(r, "You forded the river without incident.", false)
	}
	return s, true
}

func waitForFerry(s State, _ Action, r Rand) (State, bool) {
	s.addMiles(50)
	s.addMorale(-5)
	s.leaveLandmark(r, "The vendor ferry finally arrived. Slow, but nobody got wet.", false)
	return s, true
}

func caulkAndFloat(s State, _ Action, r Rand) (State, bool) {
	roll := r.Float64()
	switch {
	case roll < caulkDeath:
		s.addMiles(25)
		s.addMorale(-20)
		s.addSPRS(-10)
		s.leaveLandmark(r, "The wagon sank. The caulk was a deprecated firewall rule.", true)
	case roll < caulkPenalty:
		s.addMiles(25)
		s.addMorale(-20)
		s.addSPRS(-10)
		s.leaveLandmark(r, "The wagon leaked all the way across. Everyone is soaked and grumpy.", false)
	default:
		s.addMiles(150)
		s.addMorale(10)
		s.leaveLandmark(r, "You floated across in record time. The team feels unstoppable.", false)
	}
	return s, true
}

func convinceLeadership(s State, a Action, r Rand) (State, bool) {
	if a.Success {
		s.addMiles(150)
		s.addMorale(20)
		s.addSPRS(10)
		s.leaveLandmark(r, "Leadership approved the budget. The Valley of Despair is behind you.", false)
		return s, true
	}
	s.addMiles(50)
	s.addMorale(-20)
	s.addSPRS(-10)
	s.Landmark = ""
	s.LastOutcome = "Leadership said 'maybe next fiscal year'. The team trudges on."
	if r.Float64() < valleyDeathRoll && s.noteCasualty(r) {
		return s, true
	}
	s.settle()
	return s, true
}

func buyItem(s State, a Action, _ Rand) (State, bool) {
	item, ok := StoreItemByID(a.Item)
	if !ok || s.SPRSScore < item.Cost {
		return s, false
	}
	s.addSPRS(-item.Cost)
	switch item.Effect {
	case EffectMorale:
		s.addMorale(item.MoraleBonus)
	case EffectSPRS:
		s.addSPRS(item.SPRSBonus)
	case EffectShield:
		s.DeathShield = true
	case EffectBoth:
		s.addMorale(item.MoraleBonus)
		s.addSPRS(item.SPRSBonus)
	}
	s.ItemsBought++
	s.LastOutcome = "Purchased " + item.Name + "."
	return s, true
}

func leaveStore(s State, _ Action, r Rand) (State, bool) {
	s.Landmark = ""
	s.poseQuestion(r)
	return s, true
}

func giveUp(s State, _ Action, _ Rand) (State, bool) {
	s.clearTransient()
	s.Screen = ScreenGameOver
	s.GameOverReason = GiveUpReason
	return s, true
}

func toggleGodMode(s State, _ Action, _ Rand) (State, bool) {
	s.GodMode = !s.GodMode
	return s, true
}

func setDifficulty(s State, a Action, _ Rand) (State, bool) {
	if !a.Difficulty.Validate() {
		return s, false
	}
	s.Difficulty = a.Difficulty
	return s, true
}

func fireTank(s State, _ Action, _ Rand) (State, bool) {
	s.TankFireCount++
	return s, true
}
