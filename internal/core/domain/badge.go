package domain

// Badge describes one achievement in the catalog. Predicates are evaluated
// over the full ledger plus every habit of the user; unlocks are append-only
// and idempotent.
type Badge struct {
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`

	predicate func(stats *UserStats, habits []*Habit) bool
}

func (b Badge) Unlocked(stats *UserStats, habits []*Habit) bool {
	return b.predicate(stats, habits)
}

const (
	BadgeFirstWin   = "First Win"
	BadgeRisingStar = "Rising Star"
	BadgeConsistent = "Consistent"
	BadgeDeepWork   = "Deep Work"
	BadgeCenturion  = "Centurion"
	BadgeLegendary  = "Legendary"
)

// BadgeCatalog is ordered; evaluation walks it in order so unlock events are
// stable across runs. Adding a badge here never invalidates stored data.
var BadgeCatalog = []Badge{
	{
		Name: BadgeFirstWin, Icon: "bolt", Description: "Complete your very first task.",
		predicate: func(s *UserStats, _ []*Habit) bool { return s.TotalXP >= 10 },
	},
	{
		Name: BadgeRisingStar, Icon: "star", Description: "Reach Level 10.",
		predicate: func(s *UserStats, _ []*Habit) bool { return s.Level() >= 10 },
	},
	{
		Name: BadgeConsistent, Icon: "flame", Description: "Reach a 7-day streak.",
		predicate: func(s *UserStats, _ []*Habit) bool { return s.GlobalStreak >= 7 },
	},
	{
		Name: BadgeDeepWork, Icon: "timer", Description: "Finish 10 focus sessions.",
		predicate: func(_ *UserStats, habits []*Habit) bool {
			total := 0
			for _, h := range habits {
				total += h.TimedSessionsCompleted
			}
			return total >= 10
		},
	},
	{
		Name: BadgeCenturion, Icon: "shield", Description: "Complete a habit 100 times.",
		predicate: func(_ *UserStats, habits []*Habit) bool {
			for _, h := range habits {
				if h.TotalCompletions >= 100 {
					return true
				}
			}
			return false
		},
	},
	{
		Name: BadgeLegendary, Icon: "crown", Description: "Reach Level 50.",
		predicate: func(s *UserStats, _ []*Habit) bool { return s.Level() >= 50 },
	},
}

// EvaluateBadges appends every newly earned badge to the ledger and returns
// the names unlocked by this pass. Re-running with unchanged state returns
// nothing and mutates nothing.
func EvaluateBadges(stats *UserStats, habits []*Habit) []string {
	var unlocked []string
	for _, b := range BadgeCatalog {
		if stats.HasBadge(b.Name) {
			continue
		}
		if b.Unlocked(stats, habits) {
			stats.AwardBadge(b.Name)
			unlocked = append(unlocked, b.Name)
		}
	}
	return unlocked
}
