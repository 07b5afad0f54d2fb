package engine

// Option is one answer choice as authored. Order here is irrelevant; the
// presentation order is shuffled per question.
type Option struct {
	Text string
	Tier Quality
}

// Question is a trivia prompt with exactly one best option and at most one good option.
type Question struct {
	ID      int
	Prompt  string
	Options []Option
	BestWhy string
	GoodWhy string
}

// Event is a random trail event; Type drives how dismissing it resolves.
type Event struct {
	Text string
	Type EventType
}

// StoreItem is something the supply depot sells for SPRS points.
type StoreItem struct {
	ID          string
	Name        string
	Description string
	Cost        int
	Effect      ItemEffect
	MoraleBonus int
	SPRSBonus   int
}

func best(text string) Option  { return Option{Text: text, Tier: QualityBest} }
func good(text string) Option  { return Option{Text: text, Tier: QualityGood} }
func wrong(text string) Option { return Option{Text: text, Tier: QualityWrong} }

var deathMessages = []string{
	"has died of unencrypted data exposure",
	"was lost to a ransomware attack while reviewing the SSP",
	"perished from acute SPRS score anxiety",
	"succumbed to a fatal case of scope creep",
	"was carried away by rogue auditors",
	"drowned in a sea of POA&M items",
	"expired from exhaustion after the 47th control review",
	"was fatally wounded by a penetration test finding",
	"died of dysentery... and also didn't encrypt their CUI",
	"was lost crossing the River of Legacy Systems",
	"perished when their MFA token battery died",
	"succumbed to policy documentation poisoning",
	"was struck down by an unexpected C3PAO visit",
	"died after realizing they scoped their entire network",
	"was consumed by the void of missing evidence artifacts",
	"perished explaining FCI vs CUI to leadership... again",
	"died of shock when they saw the consultant's invoice",
	"was lost in the NIST 800-171 cross-references",
	"expired waiting for the DIBCAC callback",
	"succumbed to a critical vulnerability in their argument",
}

var randomEvents = []Event{
	{Text: "Your SIEM license expired. Alert fatigue claims a victim.", Type: EventDeath},
	{Text: "You found an abandoned System Security Plan template on the trail! Team morale increases.", Type: EventGood},
	{Text: "A wild auditor appears! They just want to chat about controls. False alarm.", Type: EventNeutral},
	{Text: "Your vulnerability scanner found 10,000 new findings overnight. Morale drops.", Type: EventBad},
	{Text: "Good news! Your SPRS score went up by 3 points!", Type: EventGood},
	{Text: "A consultant wagon passes by and drops some free templates!", Type: EventGood},
	{Text: "The intern accidentally emailed CUI to their personal Gmail.", Type: EventDeath},
	{Text: "You successfully convinced leadership to fund the project! Morale soars!", Type: EventGood},
	{Text: "Your C3PAO assessment got rescheduled... for the 4th time.", Type: EventNeutral},
	{Text: "Heavy rain has flooded your on-prem data center. Morale drops.", Type: EventBad},
	{Text: "You discovered shadow IT. Everywhere. So much shadow IT.", Type: EventBad},
	{Text: "A friendly MSP offers to manage your EDR. Seems legit.", Type: EventNeutral},
	{Text: "Your POA&M milestones are all GREEN! Is this real life?", Type: EventGood},
	{Text: "Supply chain attack! Your monitoring tool was compromised.", Type: EventDeath},
	{Text: "The DoD released new guidance. Everything you knew is wrong now.", Type: EventBad},
	{Text: "You found a working printer. It's a miracle!", Type: EventGood},
	{Text: "Your SSP backup was actually current. Unbelievable!", Type: EventGood},
	{Text: "A team member accidentally deleted the evidence folder.", Type: EventBad},
	{Text: "The firewall rules actually make sense! Someone documented them!", Type: EventGood},
	{Text: "Ransomware gang sends a LinkedIn connection request to your CISO.", Type: EventNeutral},
}

var questions = []Question{
	{ID: 1, Prompt: "What does CUI stand for?", Options: []Option{
		best("Controlled Unclassified Information"), wrong("Cybersecurity Unified Infrastructure"),
		wrong("Compliance Under Investigation"), wrong("Computers Under Inspection"),
	}, BestWhy: "CUI = Controlled Unclassified Information. The whole reason we're on this trail!"},
	{ID: 2, Prompt: "How many practices/controls are in CMMC Level 2?", Options: []Option{
		wrong("17"), best("110"), good("110 plus whatever the assessor invents"), wrong("42 (the answer to everything)"),
	}, BestWhy: "110 practices from NIST SP 800-171. You'll know them by heart... or die trying.",
		GoodWhy: "Technically 110. Emotionally, the cynics are not wrong."},
	{ID: 3, Prompt: "What is an SSP?", Options: []Option{
		wrong("Super Secret Protocol"), best("System Security Plan"),
		wrong("SPRS Score Predictor"), wrong("Security Specialist Party"),
	}, BestWhy: "System Security Plan - the document that will consume your next 6 months."},
	{ID: 4, Prompt: "What is the minimum SPRS score possible?", Options: []Option{
		wrong("0"), best("-203"), wrong("-100"), good("Your self-esteem after an audit"),
	}, BestWhy: "-203 is the minimum. If you're there, may your documentation be thorough.",
		GoodWhy: "Emotionally accurate. Numerically, it's -203."},
	{ID: 5, Prompt: "What does FCI stand for?", Options: []Option{
		best("Federal Contract Information"), wrong("Firewall Configuration Index"),
		wrong("First Compliance Incident"), wrong("Finally Certified, Incredible"),
	}, BestWhy: "Federal Contract Information - the less scary cousin of CUI."},
	{ID: 6, Prompt: "What NIST publication does CMMC Level 2 align with?", Options: []Option{
		good("NIST 800-53"), best("NIST 800-171"), wrong("NIST 800-HELP-ME"), wrong("NIST 800-WHY"),
	}, BestWhy: "NIST SP 800-171. Your new bedtime reading material.",
		GoodWhy: "800-171 is derived from 800-53, so you're in the right family."},
	{ID: 7, Prompt: "What is a POA&M?", Options: []Option{
		best("Plan of Action & Milestones"), wrong("Policy on Audits & Management"),
		wrong("Proof of Acceptable Monitoring"), good("Pain, Anguish & Misery"),
	}, BestWhy: "Plan of Action & Milestones.",
		GoodWhy: "Technically correct in practice. Officially: Plan of Action & Milestones."},
	{ID: 8, Prompt: "Who performs CMMC Level 2 certification assessments?", Options: []Option{
		good("The DoD directly (DIBCAC, sometimes)"), best("C3PAO (Third-Party Assessment Org)"),
		wrong("Your IT guy who 'knows security'"), wrong("A ouija board"),
	}, BestWhy: "C3PAO - the people who will make you question every life decision.",
		GoodWhy: "DIBCAC does assess some contractors, but certification usually means a C3PAO."},
	{ID: 9, Prompt: "What is 'scoping' in CMMC?", Options: []Option{
		wrong("Looking through a telescope at servers"), best("Defining systems that process/store CUI"),
		wrong("Checking if anyone is watching"), wrong("Running away from auditors"),
	}, BestWhy: "Proper scoping can save you from certifying your entire company."},
	{ID: 10, Prompt: "What is the purpose of FIPS-validated encryption?", Options: []Option{
		wrong("To make data extra crispy"), best("Ensure crypto modules meet standards"),
		wrong("To confuse developers"), good("Justify expensive hardware purchases"),
	}, BestWhy: "FIPS validation proves your encryption isn't just 'password123' with extra steps.",
		GoodWhy: "A side effect, sadly. The point is validated crypto modules."},
	{ID: 11, Prompt: "What is an enclave in CMMC context?", Options: []Option{
		wrong("A secret government bunker"), best("Segmented network boundary with CUI"),
		good("Where compliance officers cry"), wrong("A fancy word for 'server room'"),
	}, BestWhy: "An enclave is a properly segmented environment for CUI.",
		GoodWhy: "Also valid. But the graded answer is a segmented CUI boundary."},
	{ID: 12, Prompt: "How often should security awareness training occur?", Options: []Option{
		wrong("Never, ignorance is bliss"), wrong("Once per decade"),
		best("Annually at minimum"), good("Every phishing click (so, daily)"),
	}, BestWhy: "Annual training minimum.",
		GoodWhy: "Continuous training works too, but the baseline is annual."},
	{ID: 13, Prompt: "What does MFA stand for?", Options: []Option{
		best("Multi-Factor Authentication"), wrong("Mandatory Firewall Application"),
		wrong("Most Frustrating Approach"), wrong("My Favorite Acronym"),
	}, BestWhy: "Multi-Factor Authentication - because passwords alone aren't enough."},
	{ID: 14, Prompt: "What is the CMMC Level 1 requirement for CUI?", Options: []Option{
		wrong("Full NIST 800-171 compliance"), best("Level 1 is for FCI only, not CUI"),
		wrong("Just install antivirus"), wrong("Post a 'No Hackers' sign"),
	}, BestWhy: "Level 1 is FCI only (17 practices). CUI requires Level 2 minimum!"},
	{ID: 15, Prompt: "What is a 'NOT MET' finding?", Options: []Option{
		wrong("An auditor you haven't met"), best("Control that fails requirements"),
		wrong("A meeting that was cancelled"), good("The last thing you want to hear"),
	}, BestWhy: "A NOT MET means you failed a control.",
		GoodWhy: "True, and it means a control failed its requirements."},
	{ID: 16, Prompt: "What system holds your SPRS score?", Options: []Option{
		wrong("The Cloud"), wrong("A blockchain somewhere"),
		best("Supplier Performance Risk System"), wrong("A filing cabinet in the Pentagon"),
	}, BestWhy: "SPRS - Supplier Performance Risk System. Your score lives there."},
	{ID: 17, Prompt: "What is 'evidence' in a CMMC assessment?", Options: []Option{
		good("Screenshots of you doing work"), best("Docs proving control implementation"),
		wrong("Witness testimonies"), wrong("Vibes"),
	}, BestWhy: "Evidence = proof your controls work. Policies, logs, configs - all of it.",
		GoodWhy: "Screenshots count, but only as part of the documented proof."},
	{ID: 18, Prompt: "How long should you retain audit logs under a typical 800-171 policy?", Options: []Option{
		wrong("30 days"), best("90 days minimum"),
		good("Until heat death of universe"), wrong("Logs? What logs?"),
	}, BestWhy: "90 days minimum retention is the common baseline. Your SIEM storage costs just increased.",
		GoodWhy: "Over-retention beats under-retention, but storage isn't free."},
	{ID: 19, Prompt: "What does 800-171A provide?", Options: []Option{
		best("Assessment procedures for controls"), wrong("A way for auditors to feel important"),
		wrong("More acronyms"), good("Job security for consultants"),
	}, BestWhy: "800-171A tells you HOW you'll be assessed. Know it. Fear it.",
		GoodWhy: "A known side effect of assessment procedures."},
	{ID: 20, Prompt: "What should you do if you discover a CUI incident?", Options: []Option{
		best("Report to DoD within 72 hours"), wrong("Delete evidence and hope"),
		wrong("Blame the intern"), wrong("Update LinkedIn to 'Open to Work'"),
	}, BestWhy: "Report to DoD within 72 hours via the DIBNet portal."},
	{ID: 21, Prompt: "What does C3PAO stand for?", Options: []Option{
		best("CMMC Third-Party Assessment Organization"), wrong("Certified Cyber Compliance Protocol Android Officer"),
		good("A droid fluent in six million compliance frameworks"), wrong("Chief Compliance Cost Payment Authority Office"),
	}, BestWhy: "CMMC Third-Party Assessment Organization.",
		GoodWhy: "Close enough in spirit. Officially a Third-Party Assessment Organization."},
	{ID: 22, Prompt: "Which document tracks unimplemented controls and when they'll be fixed?", Options: []Option{
		wrong("The SSP's table of contents"), best("The POA&M"),
		wrong("A sticky note on the CISO's monitor"), good("The risk register"),
	}, BestWhy: "The POA&M lists open gaps with milestones to close them.",
		GoodWhy: "A risk register helps, but the POA&M is what assessors ask for."},
	{ID: 23, Prompt: "What is the point of least privilege?", Options: []Option{
		best("Users get only the access they need"), wrong("Interns get admin to save time"),
		wrong("Everyone shares one account for simplicity"), good("Fewer accounts, fewer problems"),
	}, BestWhy: "Least privilege: grant the minimum access required for the job.",
		GoodWhy: "Reducing accounts helps, but the principle is minimum necessary access."},
	{ID: 24, Prompt: "What should happen to a laptop with CUI that leaves the enclave?", Options: []Option{
		wrong("Nothing, laptops are trustworthy"), best("Full-disk encryption with validated crypto"),
		good("A very strong password sticker"), wrong("Wrap it in tin foil"),
	}, BestWhy: "Mobile devices with CUI need validated full-disk encryption.",
		GoodWhy: "Passwords help, stickers do not. Encrypt the disk."},
}

var defaultParty = []string{
	"CISO McSecurityface",
	"Compliance Carl",
	"Policy Patricia",
	"Audit Andy",
	InternName,
}

// InternName is the default roster's fifth member, tracked for the intern's-revenge ending.
const InternName = "The Intern (unnamed)"

// Easter-egg party names.
var secretNames = []string{
	"Bobby Tables",
	"Clippy",
	"Chuck Norris",
	"Kevin Mitnick",
	"Mr Robot",
}

var storeItems = []StoreItem{
	{ID: "coffee", Name: "Industrial Coffee Drum", Description: "Fuel for the 3 AM evidence hunt.", Cost: 5, Effect: EffectMorale, MoraleBonus: 20},
	{ID: "pizza", Name: "Team Pizza Party", Description: "Nothing says 'we value you' like cold pepperoni.", Cost: 10, Effect: EffectMorale, MoraleBonus: 35},
	{ID: "consultant", Name: "Consultant Hours", Description: "Someone who has seen an SSP before.", Cost: 15, Effect: EffectSPRS, SPRSBonus: 25},
	{ID: "templates", Name: "Policy Template Pack", Description: "Find and replace 'ACME Corp' with your name.", Cost: 8, Effect: EffectSPRS, SPRSBonus: 12},
	{ID: "edr", Name: "EDR License", Description: "Blocks the next casualty. One at a time.", Cost: 20, Effect: EffectShield},
	{ID: "training", Name: "Security Awareness Training", Description: "Nobody clicks the phish this week.", Cost: 12, Effect: EffectBoth, MoraleBonus: 10, SPRSBonus: 10},
	{ID: "energy", Name: "Energy Drink Crate", Description: "Documentation sprint fuel. Side effects may vary.", Cost: 3, Effect: EffectBoth, MoraleBonus: -5, SPRSBonus: 8},
}

// Questions returns a copy of the question table.
func Questions() []Question {
	out := make([]Question, len(questions))
	for i, q := range questions {
		q.Options = append([]Option{}, q.Options...)
		out[i] = q
	}
	return out
}

// QuestionByID looks up a question in the table.
func QuestionByID(id int) (Question, bool) {
	for _, q := range questions {
		if q.ID == id {
			q.Options = append([]Option{}, q.Options...)
			return q, true
		}
	}
	return Question{}, false
}

func Events() []Event           { return append([]Event{}, randomEvents...) }
func DeathMessages() []string   { return append([]string{}, deathMessages...) }
func DefaultParty() []string    { return append([]string{}, defaultParty...) }
func StoreItems() []StoreItem   { return append([]StoreItem{}, storeItems...) }
func SecretNames() []string     { return append([]string{}, secretNames...) }

// StoreItemByID returns the catalogue entry for id.
func StoreItemByID(id string) (StoreItem, bool) {
	for _, it := range storeItems {
		if it.ID == id {
			return it, true
		}
	}
	return StoreItem{}, false
}
