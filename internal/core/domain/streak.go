package domain

// EvaluateGlobalStreak applies the once-per-day global success check to the
// ledger. It is safe to call after every single completion: the date guard
// makes redundant calls no-ops, and the success predicate itself is
// idempotent over unchanged state.
//
// Rules:
//   - at most one success per calendar day (LastGlobalSuccessDate guard);
//   - only non-archived habits scheduled on the given weekday count;
//   - no habits due means nothing to succeed at, so no advance;
//   - every due habit must have reached its goal or been skipped today.
//
// Reports whether the streak advanced.
func EvaluateGlobalStreak(today string, weekday int, habits []*Habit, stats *UserStats) bool {
	if stats.LastGlobalSuccessDate == today {
		return false
	}

	var due []*Habit
	for _, h := range habits {
		if h.IsScheduledOn(weekday) {
			due = append(due, h)
		}
	}
	if len(due) == 0 {
		return false
	}

	for _, h := range due {
		if !h.SatisfiedOn(today) {
			return false
		}
	}

	stats.GlobalStreak++
	stats.LastGlobalSuccessDate = today
	stats.AddXP(XPPerStreakDay)
	return true
}
