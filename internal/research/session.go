// Package research tracks the state of one bounded research task: search
// rounds spent against a fixed budget, information collected along the way,
// and the deterministic quality and continuation signals derived from both.
package research

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// DefaultMaxRounds is the round budget used when a caller does not pick one.
const DefaultMaxRounds = 5

// SearchRound is an immutable record of one completed search.
type SearchRound struct {
	Round        int       `json:"round"`
	Query        string    `json:"query"`
	Freshness    string    `json:"freshness"`
	TotalResults int       `json:"results_count"`
	ValidResults int       `json:"valid_results_count"`
	Notes        string    `json:"notes"`
	Timestamp    time.Time `json:"timestamp"`
}

// CollectedItem is an immutable record of one piece of gathered evidence.
type CollectedItem struct {
	Content     string    `json:"content"`
	Source      string    `json:"source"`
	PublishTime string    `json:"publish_time,omitempty"`
	Relevance   float64   `json:"relevance_score"`
	Category    string    `json:"category"`
	CollectedAt time.Time `json:"collected_at"`
}

// TaskCriteria captures the success criteria a caller attached to the task.
// Recorded for reporting only; nothing in the session enforces them.
type TaskCriteria struct {
	RequiredInfoTypes []string `json:"required_info_types"`
	MinSources        int      `json:"min_sources"`
	TimeSensitivity   string   `json:"time_sensitivity"`
}

// SessionStatus is the snapshot handed back to the planner between rounds.
type SessionStatus struct {
	SessionID       string   `json:"session_id"`
	RoundsUsed      int      `json:"current_round"`
	MaxRounds       int      `json:"max_rounds"`
	RoundsRemaining int      `json:"remaining_rounds"`
	TotalCollected  int      `json:"total_info_collected"`
	CanContinue     bool     `json:"can_continue"`
	QueriesUsed     []string `json:"queries_used"`
	CurrentTask     string   `json:"current_task"`
}

// CollectionStatus is returned after each AddItem call.
type CollectionStatus struct {
	TotalItems    int `json:"total_info_count"`
	UniqueSources int `json:"unique_sources"`
}

// TaskConfirmation echoes back the task configuration after SetTask.
type TaskConfirmation struct {
	Task     string       `json:"task"`
	Criteria TaskCriteria `json:"criteria"`
}

// Session holds the state of a single research task. It has exactly one
// logical owner and carries no locking: concurrent mutation is a usage error,
// not a supported mode.
type Session struct {
	id        string
	maxRounds int
	rounds    []SearchRound
	items     []CollectedItem
	queries   []string
	task      string
	criteria  TaskCriteria
	createdAt time.Time

	now func() time.Time
}

// NewSession creates a fresh session with an empty round and item history.
// Callers replace a prior session wholesale by creating a new one; there is
// no merge. A non-positive maxRounds is passed through unchanged — the round
// budget is a status signal, never a rejected input.
func NewSession(maxRounds int) *Session {
	return &Session{
		id:        uuid.NewString(),
		maxRounds: maxRounds,
		createdAt: time.Now(),
		now:       time.Now,
	}
}

// ID returns the session identifier assigned at creation.
func (s *Session) ID() string { return s.id }

// MaxRounds returns the fixed round budget.
func (s *Session) MaxRounds() int { return s.maxRounds }

// SetTask records the task description and success criteria. Zero-value
// minSources and timeSensitivity take the conventional defaults. The
// timeSensitivity token is recorded as given, without validation.
func (s *Session) SetTask(task string, requiredInfoTypes []string, minSources int, timeSensitivity string) TaskConfirmation {
	if minSources <= 0 {
		minSources = 3
	}
	if timeSensitivity == "" {
		timeSensitivity = string(FreshnessOneMonth)
	}
	s.task = task
	s.criteria = TaskCriteria{
		RequiredInfoTypes: append([]string(nil), requiredInfoTypes...),
		MinSources:        minSources,
		TimeSensitivity:   timeSensitivity,
	}
	return TaskConfirmation{Task: task, Criteria: s.criteria}
}

// Task returns the current task description.
func (s *Session) Task() string { return s.task }

// Criteria returns the recorded task criteria.
func (s *Session) Criteria() TaskCriteria { return s.criteria }

// RecordRound appends a search round and returns the updated status. It
// always succeeds, including past the round budget: exceeding maxRounds
// flips CanContinue rather than rejecting the call.
func (s *Session) RecordRound(query, freshness string, totalResults, validResults int, notes string) SessionStatus {
	s.rounds = append(s.rounds, SearchRound{
		Round:        len(s.rounds) + 1,
		Query:        query,
		Freshness:    freshness,
		TotalResults: totalResults,
		ValidResults: validResults,
		Notes:        notes,
		Timestamp:    s.now(),
	})
	s.queries = append(s.queries, query)
	return s.Status()
}

// AddItem appends a collected item. Relevance is stored as given: the
// observed upstream behavior performs no range validation, and duplicates of
// the same (content, source) pair are permitted and counted separately.
func (s *Session) AddItem(content, source, publishTime string, relevance float64, category string) CollectionStatus {
	if category == "" {
		category = "general"
	}
	s.items = append(s.items, CollectedItem{
		Content:     content,
		Source:      source,
		PublishTime: publishTime,
		Relevance:   relevance,
		Category:    category,
		CollectedAt: s.now(),
	})
	return CollectionStatus{TotalItems: len(s.items), UniqueSources: len(s.UniqueSources())}
}

// Status returns the current session snapshot.
func (s *Session) Status() SessionStatus {
	return SessionStatus{
		SessionID:       s.id,
		RoundsUsed:      len(s.rounds),
		MaxRounds:       s.maxRounds,
		RoundsRemaining: s.maxRounds - len(s.rounds),
		TotalCollected:  len(s.items),
		CanContinue:     len(s.rounds) < s.maxRounds,
		QueriesUsed:     append([]string(nil), s.queries...),
		CurrentTask:     s.task,
	}
}

// History returns a copy of the round history; callers may mutate it freely.
func (s *Session) History() []SearchRound {
	return append([]SearchRound(nil), s.rounds...)
}

// Items returns a copy of the collected items in insertion order.
func (s *Session) Items() []CollectedItem {
	return append([]CollectedItem(nil), s.items...)
}

// UniqueSources returns the deduplicated source identifiers across all
// collected items, sorted for deterministic output.
func (s *Session) UniqueSources() []string {
	seen := make(map[string]struct{}, len(s.items))
	for _, it := range s.items {
		if it.Source != "" {
			seen[it.Source] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for src := range seen {
		out = append(out, src)
	}
	sort.Strings(out)
	return out
}
