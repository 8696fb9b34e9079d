package research

import "time"

// Freshness names a recency window bounding acceptable information age.
type Freshness string

const (
	FreshnessOneDay   Freshness = "oneDay"
	FreshnessOneWeek  Freshness = "oneWeek"
	FreshnessOneMonth Freshness = "oneMonth"
	FreshnessOneYear  Freshness = "oneYear"
	FreshnessNoLimit  Freshness = "noLimit"
)

// ParseFreshness validates a freshness token. Empty input maps to noLimit.
func ParseFreshness(s string) (Freshness, bool) {
	switch Freshness(s) {
	case FreshnessOneDay, FreshnessOneWeek, FreshnessOneMonth, FreshnessOneYear, FreshnessNoLimit:
		return Freshness(s), true
	case "":
		return FreshnessNoLimit, true
	}
	return FreshnessNoLimit, false
}

// Window returns the recency window duration. The second return is false for
// noLimit and unknown tokens, which impose no bound.
func (f Freshness) Window() (time.Duration, bool) {
	switch f {
	case FreshnessOneDay:
		return 24 * time.Hour, true
	case FreshnessOneWeek:
		return 7 * 24 * time.Hour, true
	case FreshnessOneMonth:
		return 30 * 24 * time.Hour, true
	case FreshnessOneYear:
		return 365 * 24 * time.Hour, true
	}
	return 0, false
}

// Stale reports whether a publish time (YYYY-MM-DD) falls outside the window
// relative to now. Missing or unparseable publish times are not stale: the
// age is unknown, and unknown must not be treated as fresh either — callers
// that care distinguish via the empty publish time.
func (f Freshness) Stale(publish string, now time.Time) bool {
	window, ok := f.Window()
	if !ok || publish == "" {
		return false
	}
	t, err := time.Parse("2006-01-02", publish)
	if err != nil {
		return false
	}
	return now.Sub(t) > window
}
