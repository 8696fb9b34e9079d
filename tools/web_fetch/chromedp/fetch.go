package chromedp

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/go-shiori/go-readability"

	"github.com/l0he1g/BaYeAgent/tools/web_fetch/models"
)

// Fetch renders a page in headless Chrome before readability extraction.
// Needed for sites that assemble their article body with JavaScript.
type Fetch struct {
	Timeout  time.Duration
	MaxChars int
}

func (f *Fetch) Read(ctx context.Context, rawURL string) (models.Page, error) {
	if strings.TrimSpace(rawURL) == "" {
		return models.Page{}, errors.New("invalid url")
	}
	target, err := url.Parse(rawURL)
	if err != nil {
		return models.Page{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, f.Timeout)
	defer cancel()

	html, err := renderHTML(ctx, rawURL)
	if err != nil {
		return models.Page{}, err
	}

	article, err := readability.FromReader(strings.NewReader(html), target)
	if err != nil {
		return models.Page{}, err
	}
	text := strings.TrimSpace(article.TextContent)
	content := text
	if len(content) > f.MaxChars {
		content = content[:f.MaxChars]
	}

	var published string
	if article.PublishedTime != nil {
		published = article.PublishedTime.Format("2006-01-02")
	}

	return models.Page{
		URL:         rawURL,
		Title:       strings.TrimSpace(article.Title),
		PublishTime: published,
		Content:     content,
		RawContent:  text,
	}, nil
}

func renderHTML(ctx context.Context, rawURL string) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.UserAgent("BaYeAgent/1.0 (+research-bot)"),
	)
	actx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	bctx, cancelBrowser := chromedp.NewContext(actx)
	defer cancelBrowser()

	var html string
	err := chromedp.Run(bctx,
		chromedp.Navigate(rawURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	return html, err
}
