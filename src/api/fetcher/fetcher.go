package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultProxyBase = "https://r.jina.ai/"

	directUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	fallbackUserAgent = "ArtDetective/1.0 (+https://github.com/hellowinnielee/Art-detective)"
)

var (
	// ErrTimeout means a fetch attempt exceeded its time budget.
	ErrTimeout = errors.New("listing fetch timed out")
	// ErrBotBlocked means the page returned was an anti-scraping interstitial.
	ErrBotBlocked = errors.New("listing fetch blocked by anti-bot interstitial")
)

// StatusError reports a non-success HTTP status from the listing server.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("listing server returned status %d", e.Code)
}

// botBlockSignatures are phrases that anti-scraping interstitials show in
// place of real listing content. Matched case-insensitively.
var botBlockSignatures = []string{
	"robot check",
	"access denied",
	"to continue, please verify",
	"security measure",
	"captcha",
}

// IsBotBlockPage reports whether body looks like a bot interstitial
// rather than listing content.
func IsBotBlockPage(body string) bool {
	lower := strings.ToLower(body)
	for _, sig := range botBlockSignatures {
		if strings.Contains(lower, sig) {
			return true
		}
	}
	return false
}

// IsEbayHost reports whether host belongs to the ebay.* domain family
// (ebay.com, www.ebay.co.uk, ...).
func IsEbayHost(host string) bool {
	for _, label := range strings.Split(strings.ToLower(host), ".") {
		if label == "ebay" {
			return true
		}
	}
	return false
}

// Fetcher retrieves raw listing HTML. eBay hosts get one extra attempt
// through a read-through proxy because direct fetches there are routinely
// served an interstitial.
type Fetcher struct {
	client    *http.Client
	proxyBase string
	timeout   time.Duration
}

func New(timeout time.Duration, proxyBase string) *Fetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if proxyBase == "" {
		proxyBase = defaultProxyBase
	}
	return &Fetcher{
		client:    &http.Client{},
		proxyBase: proxyBase,
		timeout:   timeout,
	}
}

// FetchListingHTML returns the raw HTML of the listing at rawURL, or one of
// ErrTimeout, ErrBotBlocked, *StatusError.
func (f *Fetcher) FetchListingHTML(ctx context.Context, rawURL string) (string, error) {
	body, err := f.fetchDirect(ctx, rawURL)
	if err == nil {
		return body, nil
	}

	u, parseErr := url.Parse(rawURL)
	if parseErr != nil || !IsEbayHost(u.Hostname()) {
		return "", err
	}
	return f.fetchViaProxy(ctx, rawURL)
}

func (f *Fetcher) fetchDirect(ctx context.Context, rawURL string) (string, error) {
	req, err := f.newRequest(ctx, rawURL)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", directUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	body, status, err := f.do(req)
	if err != nil {
		return "", err
	}
	if status >= 400 {
		return "", &StatusError{Code: status}
	}
	if IsBotBlockPage(body) {
		return "", ErrBotBlocked
	}
	return body, nil
}

// fetchViaProxy rewrites the listing URL to plain http and fetches it
// through the read-through proxy.
func (f *Fetcher) fetchViaProxy(ctx context.Context, rawURL string) (string, error) {
	target := strings.Replace(rawURL, "https://", "http://", 1)
	req, err := f.newRequest(ctx, f.proxyBase+target)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", fallbackUserAgent)

	body, status, err := f.do(req)
	if err != nil {
		return "", err
	}
	if status >= 400 {
		return "", &StatusError{Code: status}
	}
	return body, nil
}

func (f *Fetcher) newRequest(ctx context.Context, rawURL string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	return req, nil
}

func (f *Fetcher) do(req *http.Request) (string, int, error) {
	ctx, cancel := context.WithTimeout(req.Context(), f.timeout)
	defer cancel()

	resp, err := f.client.Do(req.WithContext(ctx))
	if err != nil {
		if isTimeout(ctx, err) {
			return "", 0, ErrTimeout
		}
		return "", 0, fmt.Errorf("fetch %s: %w", req.URL.Hostname(), err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(ctx, err) {
			return "", 0, ErrTimeout
		}
		return "", 0, fmt.Errorf("read body: %w", err)
	}
	return string(raw), resp.StatusCode, nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var ne interface{ Timeout() bool }
	return errors.As(err, &ne) && ne.Timeout()
}
