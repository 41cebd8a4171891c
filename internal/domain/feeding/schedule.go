package feeding

import "time"

// isDue: pendiente solo cuando se supera el intervalo (igualdad exacta = todavía no).
func isDue(last time.Time, interval time.Duration, now time.Time) bool {
	return now.Sub(last) > interval
}

// isNearDue: |next - now| <= window. Se comparan instantes y no una
// diferencia: Sub satura en ~292 años y el valor negado desborda.
func isNearDue(next time.Time, now time.Time, window time.Duration) bool {
	return !now.Before(next.Add(-window)) && !now.After(next.Add(window))
}

func statusOf(s *Subject, now time.Time, window time.Duration) Status {
	next := s.NextFeedingAt()

	var overdue time.Duration
	if now.After(next) {
		overdue = now.Sub(next)
	}

	return Status{
		SubjectID:       s.ID,
		Name:            s.Name,
		FeedingInterval: s.FeedingInterval,
		LastFeedingAt:   s.LastFeedingAt,
		NextFeedingAt:   next,
		Due:             isDue(s.LastFeedingAt, s.FeedingInterval, now),
		NearDue:         isNearDue(next, now, window),
		Overdue:         overdue,
		EvaluatedAt:     now,
	}
}
