package research

import "testing"

func TestSearchCollectedFindsMatchingItems(t *testing.T) {
	s := NewSession(3)
	s.AddItem("lithium carbonate spot price rose sharply this week", "https://a.example", "2026-08-20", 0.9, "pricing")
	s.AddItem("new battery factory announced in Germany", "https://b.example", "", 0.8, "industry")
	s.AddItem("lithium supply constraints in Chile", "https://c.example", "", 0.7, "supply")

	hits, err := s.SearchCollected("lithium", 10)
	if err != nil {
		t.Fatalf("SearchCollected: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d: %+v", len(hits), hits)
	}
	for i, h := range hits {
		if h.Rank != i+1 {
			t.Fatalf("ranks must start at 1 and be sequential: %+v", hits)
		}
		if h.Score <= 0 {
			t.Fatalf("expected a positive score: %+v", h)
		}
	}
}

func TestSearchCollectedRespectsLimit(t *testing.T) {
	s := NewSession(3)
	for i := 0; i < 5; i++ {
		s.AddItem("solar panel efficiency report", "src", "", 1, "")
	}
	hits, err := s.SearchCollected("solar", 2)
	if err != nil {
		t.Fatalf("SearchCollected: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected the limit to apply, got %d", len(hits))
	}
}

func TestSearchCollectedEmptySession(t *testing.T) {
	s := NewSession(3)
	hits, err := s.SearchCollected("anything", 5)
	if err != nil {
		t.Fatalf("SearchCollected: %v", err)
	}
	if len(hits) != 0 {
		t.Fatalf("expected no hits, got %+v", hits)
	}
}
