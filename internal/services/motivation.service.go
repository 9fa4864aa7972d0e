package services

import (
	"time"

	"statusboard/internal/models"
)

var quotes = []string{
	"Ship small, ship often.",
	"Make it work, make it right, make it fast.",
	"The best time to fix the build is before lunch.",
	"Simple things should be simple, complex things should be possible.",
	"Done is better than perfect.",
}

// Quotes returns a copy of the rotation in order.
func Quotes() []string {
	out := make([]string, len(quotes))
	copy(out, quotes)
	return out
}

// MotivationAt picks the quote for the minute containing t:
// index = floor(unixMillis / 60000) mod len(quotes).
func MotivationAt(t time.Time) models.Motivation {
	n := int64(len(quotes))
	minute := t.UnixMilli() / 60000
	if t.UnixMilli() < 0 && t.UnixMilli()%60000 != 0 {
		minute--
	}
	idx := ((minute % n) + n) % n

	return models.Motivation{
		Quote:     quotes[idx],
		AllQuotes: Quotes(),
	}
}

// MotivationService serves the quote of the current minute.
type MotivationService struct {
	now func() time.Time
}

func NewMotivationService(now func() time.Time) *MotivationService {
	if now == nil {
		now = time.Now
	}
	return &MotivationService{now: now}
}

func (s *MotivationService) Motivation() models.Motivation {
	return MotivationAt(s.now())
}
