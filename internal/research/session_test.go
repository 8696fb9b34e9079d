package research

import (
	"testing"
)

func TestNewSessionStartsEmpty(t *testing.T) {
	s := NewSession(5)
	if s.ID() == "" {
		t.Fatalf("expected a session id")
	}
	status := s.Status()
	if status.RoundsUsed != 0 || status.RoundsRemaining != 5 || status.TotalCollected != 0 {
		t.Fatalf("unexpected fresh status: %+v", status)
	}
	if !status.CanContinue {
		t.Fatalf("fresh session should be able to continue")
	}
	if len(status.QueriesUsed) != 0 {
		t.Fatalf("expected no queries used, got %v", status.QueriesUsed)
	}
}

func TestRecordRoundCountsAgainstBudget(t *testing.T) {
	s := NewSession(2)

	status := s.RecordRound("q1", "oneWeek", 30, 10, "first pass")
	if status.RoundsUsed != 1 || status.RoundsRemaining != 1 {
		t.Fatalf("after one round: %+v", status)
	}
	if !status.CanContinue {
		t.Fatalf("one round into a budget of two should continue")
	}

	status = s.RecordRound("q2", "oneWeek", 20, 5, "")
	if status.CanContinue {
		t.Fatalf("budget spent, CanContinue should be false")
	}
	if status.RoundsRemaining != 0 {
		t.Fatalf("expected 0 remaining, got %d", status.RoundsRemaining)
	}
}

func TestRecordRoundNeverRejectsPastBudget(t *testing.T) {
	s := NewSession(1)
	s.RecordRound("q1", "", 1, 1, "")
	status := s.RecordRound("q2", "", 1, 1, "")
	if status.RoundsUsed != 2 {
		t.Fatalf("rounds past the budget must still be recorded, got %d", status.RoundsUsed)
	}
	if status.RoundsRemaining != -1 {
		t.Fatalf("expected remaining -1, got %d", status.RoundsRemaining)
	}
	if status.CanContinue {
		t.Fatalf("CanContinue must stay false past the budget")
	}
}

func TestHistoryIsAppendOnlyAndCopied(t *testing.T) {
	s := NewSession(3)
	s.RecordRound("alpha", "oneDay", 10, 3, "n1")
	s.RecordRound("beta", "oneMonth", 8, 2, "n2")

	hist := s.History()
	if len(hist) != 2 {
		t.Fatalf("expected 2 rounds, got %d", len(hist))
	}
	if hist[0].Round != 1 || hist[1].Round != 2 {
		t.Fatalf("round numbers must be sequential from 1: %+v", hist)
	}
	if hist[0].Query != "alpha" || hist[1].Query != "beta" {
		t.Fatalf("rounds must keep insertion order: %+v", hist)
	}

	hist[0].Query = "mutated"
	if s.History()[0].Query != "alpha" {
		t.Fatalf("History must return a copy")
	}
}

func TestSetTaskDefaults(t *testing.T) {
	s := NewSession(3)
	conf := s.SetTask("track lithium prices", nil, 0, "")
	if conf.Criteria.MinSources != 3 {
		t.Fatalf("expected min sources default 3, got %d", conf.Criteria.MinSources)
	}
	if conf.Criteria.TimeSensitivity != "oneMonth" {
		t.Fatalf("expected time sensitivity default oneMonth, got %q", conf.Criteria.TimeSensitivity)
	}
	if s.Task() != "track lithium prices" {
		t.Fatalf("task not recorded")
	}

	conf = s.SetTask("other", []string{"news"}, 5, "oneDay")
	if conf.Criteria.MinSources != 5 || conf.Criteria.TimeSensitivity != "oneDay" {
		t.Fatalf("explicit criteria must pass through: %+v", conf.Criteria)
	}
}

func TestAddItemDefaultsAndCounts(t *testing.T) {
	s := NewSession(3)
	st := s.AddItem("content a", "https://reuters.com/a", "2026-08-01", 0.9, "")
	if st.TotalItems != 1 || st.UniqueSources != 1 {
		t.Fatalf("unexpected collection status: %+v", st)
	}
	if s.Items()[0].Category != "general" {
		t.Fatalf("empty category must default to general, got %q", s.Items()[0].Category)
	}

	// duplicates are allowed and counted separately
	st = s.AddItem("content a", "https://reuters.com/a", "2026-08-01", 0.9, "news")
	if st.TotalItems != 2 || st.UniqueSources != 1 {
		t.Fatalf("duplicate item handling wrong: %+v", st)
	}

	// relevance outside [0,1] is stored as given
	s.AddItem("content b", "https://example.com/b", "", 7.5, "news")
	items := s.Items()
	if items[2].Relevance != 7.5 {
		t.Fatalf("relevance must not be clamped, got %v", items[2].Relevance)
	}
}

func TestUniqueSourcesSortedDedupe(t *testing.T) {
	s := NewSession(3)
	s.AddItem("a", "https://b.example/x", "", 1, "")
	s.AddItem("b", "https://a.example/y", "", 1, "")
	s.AddItem("c", "https://b.example/x", "", 1, "")
	s.AddItem("d", "", "", 1, "")

	sources := s.UniqueSources()
	if len(sources) != 2 {
		t.Fatalf("expected 2 sources, got %v", sources)
	}
	if sources[0] != "https://a.example/y" || sources[1] != "https://b.example/x" {
		t.Fatalf("sources must be sorted: %v", sources)
	}
}

func TestStatusTracksQueriesInOrder(t *testing.T) {
	s := NewSession(4)
	s.RecordRound("first", "", 0, 0, "")
	s.RecordRound("second", "", 0, 0, "")
	status := s.Status()
	if len(status.QueriesUsed) != 2 || status.QueriesUsed[0] != "first" || status.QueriesUsed[1] != "second" {
		t.Fatalf("queries out of order: %v", status.QueriesUsed)
	}
}
