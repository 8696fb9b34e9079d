package research

import (
	"fmt"
	"strings"
)

// DecisionState labels the terminal state of a continuation decision.
type DecisionState string

const (
	StateCanContinue     DecisionState = "CAN_CONTINUE"
	StateBudgetExhausted DecisionState = "BUDGET_EXHAUSTED"
	StateMarkedComplete  DecisionState = "MARKED_COMPLETE"
	StateStoppedByReason DecisionState = "STOPPED_BY_REASON"
)

// Decision is the authoritative continue/stop verdict for one round.
type Decision struct {
	ShouldContinue  bool          `json:"should_continue"`
	State           DecisionState `json:"state"`
	Reason          string        `json:"reason"`
	RemainingRounds int           `json:"remaining_rounds"`
	Recommendations []string      `json:"recommendations"`
}

// CoverageReport summarizes what the search has covered so far. It is a pure
// reporting projection and never halts the loop by itself.
type CoverageReport struct {
	Task            string   `json:"task"`
	Covered         []string `json:"covered"`
	Missing         []string `json:"missing"`
	RoundsUsed      int      `json:"search_rounds_used"`
	RoundsRemaining int      `json:"search_rounds_remaining"`
	TotalCollected  int      `json:"total_info_collected"`
	UniqueSources   int      `json:"unique_sources"`
	CanContinue     bool     `json:"can_continue_searching"`
	Recommendations []string `json:"recommendations"`
}

// ShouldContinue turns the round budget and caller-supplied signals into the
// single authoritative stop/continue verdict. Branches are evaluated in
// strict priority order: budget exhaustion, explicit completion, explicit
// stop reasons, then continue. Quality scores never enter this decision
// directly; the caller translates them into taskComplete or reasonsToStop.
func (s *Session) ShouldContinue(taskComplete bool, reasonsToStop []string) Decision {
	status := s.Status()
	d := Decision{
		RemainingRounds: status.RoundsRemaining,
		Recommendations: []string{},
	}

	switch {
	case !status.CanContinue:
		d.State = StateBudgetExhausted
		d.Reason = "maximum search rounds reached"
		d.Recommendations = append(d.Recommendations, "generate the report from the information already collected")
	case taskComplete:
		d.State = StateMarkedComplete
		d.Reason = "task marked complete"
		d.Recommendations = append(d.Recommendations, "generate the final report")
	case len(reasonsToStop) > 0:
		d.State = StateStoppedByReason
		d.Reason = strings.Join(reasonsToStop, "; ")
		d.Recommendations = append(d.Recommendations, "consider adjusting the search strategy or ending the search")
	default:
		d.ShouldContinue = true
		d.State = StateCanContinue
		d.Reason = fmt.Sprintf("%d search rounds remaining", status.RoundsRemaining)
		d.Recommendations = append(d.Recommendations, "continue searching to improve coverage")
	}
	return d
}

// ReflectOnCoverage bundles the current status with the caller's own
// assessment of covered and missing aspects, plus a recommendation per
// missing aspect while the budget allows further rounds.
func (s *Session) ReflectOnCoverage(task string, covered, missing []string) CoverageReport {
	status := s.Status()
	report := CoverageReport{
		Task:            task,
		Covered:         append([]string{}, covered...),
		Missing:         append([]string{}, missing...),
		RoundsUsed:      status.RoundsUsed,
		RoundsRemaining: status.RoundsRemaining,
		TotalCollected:  status.TotalCollected,
		UniqueSources:   len(s.UniqueSources()),
		CanContinue:     status.CanContinue,
		Recommendations: []string{},
	}

	switch {
	case len(missing) > 0 && status.CanContinue:
		for _, aspect := range missing {
			report.Recommendations = append(report.Recommendations, "search: "+aspect)
		}
	case !status.CanContinue:
		report.Recommendations = append(report.Recommendations, "search budget exhausted; report with the information already collected")
	default:
		report.Recommendations = append(report.Recommendations, "task covered; ready to produce the final report")
	}
	return report
}
