package engine

import (
	"reflect"
	"testing"
)

func finished(alive ...bool) State {
	s := NewState()
	s.Screen = ScreenVictory
	s.Miles = TotalMiles
	for i, a := range alive {
		s.Party = append(s.Party, PartyMember{Name: defaultParty[i], Alive: a})
	}
	return s
}

func TestProgressAndAccuracy(t *testing.T) {
	s := NewState()
	s.Miles = 1999
	if got := ProgressPercent(s); got != 99 {
		t.Fatalf("progress = %d, want 99", got)
	}
	if got := MilesRemaining(s); got != 1 {
		t.Fatalf("remaining = %d", got)
	}
	if got := Accuracy(s); got != 0 {
		t.Fatalf("accuracy with no answers = %d", got)
	}
	s.QuestionsAnswered, s.CorrectAnswers = 3, 2
	if got := Accuracy(s); got != 67 {
		t.Fatalf("accuracy = %d, want 67", got)
	}
}

func TestSurvivorsAndFallen(t *testing.T) {
	s := finished(true, false, true)
	if got := names(Survivors(s)); !reflect.DeepEqual(got, []string{defaultParty[0], defaultParty[2]}) {
		t.Fatalf("survivors = %v", got)
	}
	if got := names(Fallen(s)); !reflect.DeepEqual(got, []string{defaultParty[1]}) {
		t.Fatalf("fallen = %v", got)
	}
}

func TestRunOutcome(t *testing.T) {
	s := NewState()
	if RunOutcome(s) != OutcomeInProgress {
		t.Fatalf("fresh run should be in progress")
	}
	s.Screen = ScreenGameOver
	if RunOutcome(s) != OutcomeDefeat {
		t.Fatalf("game over should be a defeat")
	}
	if ClassifyEnding(s) != nil {
		t.Fatalf("defeats earn no endings")
	}
}

func TestClassifyEnding(t *testing.T) {
	perfect := finished(true, true, true)
	perfect.QuestionsAnswered, perfect.CorrectAnswers = 10, 10
	if got := ClassifyEnding(perfect); !reflect.DeepEqual(got, []Ending{EndingPerfectRun}) {
		t.Fatalf("perfect = %v", got)
	}

	intern := finished(false, false, false, false, true)
	intern.SPRSScore = -12
	want := []Ending{EndingSoleSurvivor, EndingInternRevenge, EndingAgainstAllOdds}
	if got := ClassifyEnding(intern); !reflect.DeepEqual(got, want) {
		t.Fatalf("intern = %v, want %v", got, want)
	}

	plain := finished(true, false, true)
	plain.QuestionsAnswered, plain.CorrectAnswers = 4, 4
	if got := ClassifyEnding(plain); len(got) != 0 {
		t.Fatalf("a run with casualties is not perfect: %v", got)
	}
}

func TestStats(t *testing.T) {
	s := finished(true, false)
	s.QuestionsAnswered, s.CorrectAnswers = 4, 3
	s.UsedQuestions = []int{1, 2, 2, 5}
	s.ItemsBought = 2
	st := Stats(s)
	if st.Outcome != OutcomeVictory || st.Accuracy != 75 || st.PartySize != 2 || st.QuestionsSeen != 3 || st.ItemsBought != 2 {
		t.Fatalf("stats = %+v", st)
	}
	if !reflect.DeepEqual(st.Survivors, []string{defaultParty[0]}) || !reflect.DeepEqual(st.Endings, []Ending{EndingSoleSurvivor}) {
		t.Fatalf("stats = %+v", st)
	}
}
