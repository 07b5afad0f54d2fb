package engine

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// PickQuestion draws uniformly from questions whose id is not in used.
// Once every question has been shown it draws from the whole table again.
// The caller records the returned id.
func PickQuestion(used []int, r Rand) Question {
	available := make([]Question, 0, len(questions))
	for _, q := range questions {
		if !containsInt(used, q.ID) {
			available = append(available, q)
		}
	}
	if len(available) == 0 {
		available = questions
	}
	q := available[r.Intn(len(available))]
	q.Options = append([]Option{}, q.Options...)
	return q
}

// ShuffleQuestion returns q with its options in a random display order,
// remembering which slots hold the best and good answers.
func ShuffleQuestion(q Question, r Rand) PresentedQuestion {
	opts := append([]Option{}, q.Options...)
	for i := len(opts) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		opts[i], opts[j] = opts[j], opts[i]
	}
	pq := PresentedQuestion{
		ID:      q.ID,
		Prompt:  q.Prompt,
		Options: make([]string, len(opts)),
		BestWhy: q.BestWhy,
		GoodWhy: q.GoodWhy,
	}
	for i, o := range opts {
		pq.Options[i] = o.Text
		switch o.Tier {
		case QualityBest:
			pq.Best = slotLetter(i)
		case QualityGood:
			pq.Good = slotLetter(i)
		}
	}
	return pq
}

// PickEvent draws uniformly from the event table.
func PickEvent(r Rand) Event {
	return randomEvents[r.Intn(len(randomEvents))]
}

// PickDeathMessage draws a flavour line; it has no bearing on what caused the death.
func PickDeathMessage(r Rand) string {
	return deathMessages[r.Intn(len(deathMessages))]
}

// KillRandomMember picks a living member uniformly and returns a new party with
// only that member marked dead. victim is nil when nobody is alive; party is then returned as is.
func KillRandomMember(party []PartyMember, r Rand) ([]PartyMember, *PartyMember) {
	alive := make([]int, 0, len(party))
	for i, m := range party {
		if m.Alive {
			alive = append(alive, i)
		}
	}
	if len(alive) == 0 {
		return party, nil
	}
	idx := alive[r.Intn(len(alive))]
	out := cloneParty(party)
	out[idx].Alive = false
	victim := out[idx]
	return out, &victim
}

// IsSecretName reports whether name is one of the easter-egg names, tolerating one typo.
func IsSecretName(name string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return false
	}
	for _, s := range secretNames {
		if levenshtein.ComputeDistance(n, strings.ToLower(s)) <= 1 {
			return true
		}
	}
	return false
}

const shieldNote = "Your EDR license quarantined the threat. Nobody died, but the license is spent."

// applyCasualty is the one path every death roll goes through. An active
// death shield is consumed instead of a life. It reports whether a member died.
func applyCasualty(s *State, r Rand) bool {
	if s.DeathShield {
		s.DeathShield = false
		s.LastOutcome = strings.TrimSpace(s.LastOutcome + " " + shieldNote)
		return false
	}
	party, victim := KillRandomMember(s.Party, r)
	if victim == nil {
		return false
	}
	s.Party = party
	s.LastDeath = &Death{Name: victim.Name, Message: PickDeathMessage(r)}
	s.TotalDeaths++
	return true
}
