package readability

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"

	"github.com/l0he1g/BaYeAgent/tools/web_fetch/models"
)

// Fetch downloads a page over plain HTTP and runs readability extraction.
type Fetch struct {
	Timeout  time.Duration
	MaxChars int
	Client   *http.Client
}

func (f *Fetch) Read(ctx context.Context, rawURL string) (models.Page, error) {
	target, err := validateURL(rawURL)
	if err != nil {
		return models.Page{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, f.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return models.Page{}, err
	}
	req.Header.Set("User-Agent", "BaYeAgent/1.0 (+research-bot)")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return models.Page{}, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return models.Page{}, fmt.Errorf("fetching %s: status %d", rawURL, resp.StatusCode)
	}

	article, err := readability.FromReader(resp.Body, target)
	if err != nil {
		return models.Page{}, fmt.Errorf("extracting %s: %w", rawURL, err)
	}

	text := strings.TrimSpace(article.TextContent)
	if len(text) < 50 {
		return models.Page{}, fmt.Errorf("no meaningful content extracted from %s", rawURL)
	}
	content := text
	if len(content) > f.MaxChars {
		content = content[:f.MaxChars]
	}

	return models.Page{
		URL:         rawURL,
		Title:       strings.TrimSpace(article.Title),
		PublishTime: publishDate(article.PublishedTime),
		Content:     content,
		RawContent:  text,
	}, nil
}

func validateURL(rawURL string) (*url.URL, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, errors.New("url must be a non-empty string")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("url must start with http:// or https://, got %q", rawURL)
	}
	return u, nil
}

func publishDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
