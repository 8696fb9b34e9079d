package web_fetch

import (
	"context"
	"errors"
	"time"

	"github.com/l0he1g/BaYeAgent/tools/web_fetch/chromedp"
	"github.com/l0he1g/BaYeAgent/tools/web_fetch/models"
	"github.com/l0he1g/BaYeAgent/tools/web_fetch/readability"
)

const (
	DefaultTimeout  = 15 * time.Second
	MaxCharsDefault = 20000
)

// WebReader extracts the main content of a webpage.
type WebReader interface {
	Read(ctx context.Context, url string) (models.Page, error)
}

type FetcherType string

const (
	ReadabilityFetcherType FetcherType = "readability"
	ChromedpFetcherType    FetcherType = "chromedp"
)

var ErrUnsupportedFetcher = errors.New("unsupported fetcher type")

func NewWebReader(fetcherType FetcherType, timeout time.Duration, maxChars int) (WebReader, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxChars <= 0 {
		maxChars = MaxCharsDefault
	}

	switch fetcherType {
	case ReadabilityFetcherType:
		return &readability.Fetch{Timeout: timeout, MaxChars: maxChars}, nil
	case ChromedpFetcherType:
		return &chromedp.Fetch{Timeout: timeout, MaxChars: maxChars}, nil
	default:
		return nil, ErrUnsupportedFetcher
	}
}
