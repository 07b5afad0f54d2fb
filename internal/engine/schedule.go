package engine

// Milestone distances. Each fires at most once per run.
var (
	StoreMilestones = []int{500, 1500}
	RiverMilestones = []int{700, 1300}
	ValleyMilestone = 1000
)

// ContinueStep is the lookahead used when deciding whether the next stretch crosses a milestone.
const ContinueStep = 100

var landmarks = map[Encounter]map[int]string{
	EncounterStore: {
		500:  "Fort Compliance Supply Depot",
		1500: "Last Chance Audit Outfitters",
	},
	EncounterRiver: {
		700:  "River of Legacy Systems",
		1300: "Creek of Unpatched CVEs",
	},
	EncounterValley: {
		1000: "Valley of Despair",
	},
}

// LandmarkName returns the display name of a milestone encounter.
func LandmarkName(kind Encounter, milestone int) string {
	return landmarks[kind][milestone]
}

// Visits is the set of milestones already triggered this run.
type Visits struct {
	Stores []int
	Rivers []int
	Valley bool
}

func (s State) visits() Visits {
	return Visits{Stores: s.VisitedStores, Rivers: s.VisitedRivers, Valley: s.VisitedValley}
}

func crosses(miles, milestone int) bool {
	return miles < milestone && miles+ContinueStep >= milestone
}

// NextEncounter decides whether a continue from miles is intercepted by a
// milestone encounter. Stores are checked first, then rivers, then the valley;
// at most one encounter is returned.
func NextEncounter(miles int, v Visits) (Encounter, int) {
	for _, m := range StoreMilestones {
		if !containsInt(v.Stores, m) && crosses(miles, m) {
			return EncounterStore, m
		}
	}
	for _, m := range RiverMilestones {
		if !containsInt(v.Rivers, m) && crosses(miles, m) {
			return EncounterRiver, m
		}
	}
	if !v.Valley && crosses(miles, ValleyMilestone) {
		return EncounterValley, ValleyMilestone
	}
	return EncounterNone, 0
}
