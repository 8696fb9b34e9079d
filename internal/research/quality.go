package research

import (
	"fmt"
	"strings"
)

// Dimension names one axis of search-quality evaluation.
type Dimension string

const (
	DimensionCompleteness Dimension = "completeness"
	DimensionTimeliness   Dimension = "timeliness"
	DimensionRelevance    Dimension = "relevance"
	DimensionDiversity    Dimension = "diversity"
	DimensionCredibility  Dimension = "credibility"
)

// Dimensions lists every supported quality dimension.
var Dimensions = []Dimension{
	DimensionCompleteness,
	DimensionTimeliness,
	DimensionRelevance,
	DimensionDiversity,
	DimensionCredibility,
}

// QualityScore is the result of evaluating one dimension. Suggestions is
// empty when the score is adequate for that dimension's threshold.
type QualityScore struct {
	Dimension   Dimension              `json:"dimension"`
	Score       float64                `json:"score"`
	Details     map[string]interface{} `json:"details"`
	Suggestions []string               `json:"suggestions"`
}

// Source substrings treated as credible for the credibility dimension.
var credibleKeywords = []string{".gov", ".edu", "reuters", "bloomberg", "xinhua", "people"}

// Evaluate scores the session on a single dimension. Every dimension is a
// pure function of the collected items and round history; no call mutates
// state. Unknown dimensions are rejected.
func (s *Session) Evaluate(dimension Dimension) (QualityScore, error) {
	eval := QualityScore{
		Dimension:   dimension,
		Details:     map[string]interface{}{},
		Suggestions: []string{},
	}

	switch dimension {
	case DimensionCompleteness:
		seen := map[string]struct{}{}
		names := []string{}
		for _, it := range s.items {
			if _, dup := seen[it.Category]; !dup {
				seen[it.Category] = struct{}{}
				names = append(names, it.Category)
			}
		}
		if len(names) > 0 {
			eval.Score = capAt1(float64(len(names)) / 3)
		}
		eval.Details["categories_found"] = names
		if eval.Score < 0.7 {
			eval.Suggestions = append(eval.Suggestions, "search from additional angles to broaden coverage")
		}

	case DimensionTimeliness:
		if len(s.items) == 0 {
			eval.Suggestions = append(eval.Suggestions, "no information collected yet")
			break
		}
		dated := 0
		for _, it := range s.items {
			if it.PublishTime != "" {
				dated++
			}
		}
		eval.Score = capAt1(float64(dated) / float64(len(s.items)))
		eval.Details["total_info"] = len(s.items)
		eval.Details["info_with_timestamp"] = dated
		if eval.Score < 0.5 {
			eval.Suggestions = append(eval.Suggestions, "use a shorter freshness window to surface newer information")
		}

	case DimensionRelevance:
		if len(s.items) == 0 {
			eval.Suggestions = append(eval.Suggestions, "no information collected yet")
			break
		}
		sum := 0.0
		for _, it := range s.items {
			sum += it.Relevance
		}
		eval.Score = sum / float64(len(s.items))
		eval.Details["average_relevance"] = eval.Score
		if eval.Score < 0.7 {
			eval.Suggestions = append(eval.Suggestions, "refine search keywords to improve relevance")
		}

	case DimensionDiversity:
		sources := s.UniqueSources()
		if len(sources) > 0 {
			eval.Score = capAt1(float64(len(sources)) / 3)
		}
		eval.Details["unique_sources"] = len(sources)
		eval.Details["total_info"] = len(s.items)
		if eval.Score < 0.5 {
			eval.Suggestions = append(eval.Suggestions, "vary the queries to reach more distinct sources")
		}

	case DimensionCredibility:
		if len(s.items) == 0 {
			eval.Suggestions = append(eval.Suggestions, "no information collected yet")
			break
		}
		credible := 0
		for _, it := range s.items {
			if matchesCredibleSource(it.Source) {
				credible++
			}
		}
		eval.Score = capAt1(float64(credible) / float64(len(s.items)))
		eval.Details["credible_sources"] = credible
		if eval.Score < 0.3 {
			eval.Suggestions = append(eval.Suggestions, "restrict searches to authoritative sources")
		}

	default:
		return QualityScore{}, fmt.Errorf("unknown quality dimension: %q", dimension)
	}

	return eval, nil
}

func matchesCredibleSource(source string) bool {
	lower := strings.ToLower(source)
	for _, kw := range credibleKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func capAt1(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}
