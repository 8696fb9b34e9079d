package readability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head><title>Lithium market update</title></head>
<body>
<article>
<h1>Lithium market update</h1>
<p>Spot prices for battery-grade lithium carbonate rose four percent this week,
driven by restocking demand from cathode producers and slower-than-expected
capacity ramp-ups in South America. Analysts expect the tightness to persist
through the fourth quarter.</p>
<p>Several producers have announced expansions, but permitting delays keep the
supply response slow. Inventories at major exchanges remain near multi-year
lows.</p>
</article>
</body>
</html>`

func TestReadExtractsArticle(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(articleHTML))
	}))
	defer ts.Close()

	f := &Fetch{Timeout: 5 * time.Second, MaxChars: 20000}
	page, err := f.Read(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if page.Title != "Lithium market update" {
		t.Fatalf("title wrong: %q", page.Title)
	}
	if !strings.Contains(page.Content, "battery-grade lithium carbonate") {
		t.Fatalf("content missing article text: %q", page.Content)
	}
	if page.URL != ts.URL {
		t.Fatalf("url wrong: %q", page.URL)
	}
}

func TestReadCapsContentLength(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(articleHTML))
	}))
	defer ts.Close()

	f := &Fetch{Timeout: 5 * time.Second, MaxChars: 60}
	page, err := f.Read(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(page.Content) > 60 {
		t.Fatalf("content must be capped at MaxChars, got %d", len(page.Content))
	}
	if len(page.RawContent) <= 60 {
		t.Fatalf("raw content must stay uncapped")
	}
}

func TestReadRejectsBadURLs(t *testing.T) {
	f := &Fetch{Timeout: time.Second, MaxChars: 1000}
	for _, u := range []string{"", "ftp://example.com/file", "not a url at all://"} {
		if _, err := f.Read(context.Background(), u); err == nil {
			t.Fatalf("expected error for %q", u)
		}
	}
}

func TestReadNonOKStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer ts.Close()

	f := &Fetch{Timeout: time.Second, MaxChars: 1000}
	if _, err := f.Read(context.Background(), ts.URL); err == nil {
		t.Fatalf("expected error on 404")
	}
}

func TestReadRejectsThinPages(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body><p>hi</p></body></html>"))
	}))
	defer ts.Close()

	f := &Fetch{Timeout: time.Second, MaxChars: 1000}
	if _, err := f.Read(context.Background(), ts.URL); err == nil {
		t.Fatalf("pages with no meaningful content must be rejected")
	}
}
