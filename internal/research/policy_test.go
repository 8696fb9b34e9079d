package research

import (
	"strings"
	"testing"
)

func TestShouldContinueDefault(t *testing.T) {
	s := NewSession(3)
	s.RecordRound("q", "", 5, 2, "")

	d := s.ShouldContinue(false, nil)
	if !d.ShouldContinue || d.State != StateCanContinue {
		t.Fatalf("expected CAN_CONTINUE, got %+v", d)
	}
	if d.RemainingRounds != 2 {
		t.Fatalf("expected 2 remaining, got %d", d.RemainingRounds)
	}
	if !strings.Contains(d.Reason, "2") {
		t.Fatalf("reason should name the remaining budget: %q", d.Reason)
	}
}

func TestShouldContinueBudgetExhausted(t *testing.T) {
	s := NewSession(1)
	s.RecordRound("q", "", 5, 2, "")

	d := s.ShouldContinue(false, nil)
	if d.ShouldContinue || d.State != StateBudgetExhausted {
		t.Fatalf("expected BUDGET_EXHAUSTED, got %+v", d)
	}
	if !strings.Contains(d.Reason, "rounds") {
		t.Fatalf("reason should reference the round limit: %q", d.Reason)
	}
}

func TestShouldContinueBudgetOutranksCompletion(t *testing.T) {
	s := NewSession(1)
	s.RecordRound("q", "", 5, 2, "")

	// budget exhaustion wins even when the task is also marked complete
	// and stop reasons are present
	d := s.ShouldContinue(true, []string{"quality plateau"})
	if d.State != StateBudgetExhausted {
		t.Fatalf("budget must outrank completion and stop reasons, got %s", d.State)
	}
}

func TestShouldContinueCompletionOutranksReasons(t *testing.T) {
	s := NewSession(3)
	d := s.ShouldContinue(true, []string{"diminishing returns"})
	if d.ShouldContinue || d.State != StateMarkedComplete {
		t.Fatalf("expected MARKED_COMPLETE, got %+v", d)
	}
}

func TestShouldContinueStoppedByReason(t *testing.T) {
	s := NewSession(3)
	d := s.ShouldContinue(false, []string{"no new sources", "query space exhausted"})
	if d.ShouldContinue || d.State != StateStoppedByReason {
		t.Fatalf("expected STOPPED_BY_REASON, got %+v", d)
	}
	if d.Reason != "no new sources; query space exhausted" {
		t.Fatalf("reasons must be joined: %q", d.Reason)
	}
}

func TestShouldContinueIsReadOnly(t *testing.T) {
	s := NewSession(3)
	s.RecordRound("q", "", 1, 1, "")
	s.ShouldContinue(false, nil)
	s.ShouldContinue(true, []string{"x"})
	if s.Status().RoundsUsed != 1 {
		t.Fatalf("ShouldContinue must not consume rounds")
	}
}

func TestReflectOnCoverageRecommendsMissingAspects(t *testing.T) {
	s := NewSession(3)
	s.RecordRound("q", "", 5, 2, "")
	s.AddItem("a", "s1", "", 1, "")

	r := s.ReflectOnCoverage("industry report", []string{"pricing"}, []string{"supply chain", "regulation"})
	if r.RoundsUsed != 1 || r.RoundsRemaining != 2 || r.TotalCollected != 1 {
		t.Fatalf("status fields wrong: %+v", r)
	}
	if len(r.Recommendations) != 2 {
		t.Fatalf("expected one recommendation per missing aspect, got %v", r.Recommendations)
	}
	if r.Recommendations[0] != "search: supply chain" || r.Recommendations[1] != "search: regulation" {
		t.Fatalf("unexpected recommendations: %v", r.Recommendations)
	}
}

func TestReflectOnCoverageExhaustedBudget(t *testing.T) {
	s := NewSession(1)
	s.RecordRound("q", "", 1, 1, "")
	r := s.ReflectOnCoverage("task", nil, []string{"anything"})
	if r.CanContinue {
		t.Fatalf("budget spent, CanContinue must be false")
	}
	if len(r.Recommendations) != 1 || !strings.Contains(r.Recommendations[0], "exhausted") {
		t.Fatalf("expected exhausted-budget recommendation, got %v", r.Recommendations)
	}
}

func TestReflectOnCoverageNothingMissing(t *testing.T) {
	s := NewSession(3)
	r := s.ReflectOnCoverage("task", []string{"all of it"}, nil)
	if len(r.Recommendations) != 1 || !strings.Contains(r.Recommendations[0], "final report") {
		t.Fatalf("expected ready-to-report recommendation, got %v", r.Recommendations)
	}
}
