package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestIsBotBlockPage(t *testing.T) {
	tests := []struct {
		body string
		want bool
	}{
		{"<h1>Robot Check</h1>", true},
		{"ACCESS DENIED", true},
		{"please solve this CAPTCHA to continue", true},
		{"As a security measure we need to verify you", true},
		{"<h1>Blue Nude lithograph, signed</h1>", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsBotBlockPage(tt.body); got != tt.want {
			t.Errorf("IsBotBlockPage(%q) = %v; want %v", tt.body, got, tt.want)
		}
	}
}

func TestIsEbayHost(t *testing.T) {
	tests := []struct {
		host string
		want bool
	}{
		{"www.ebay.com", true},
		{"ebay.co.uk", true},
		{"EBAY.DE", true},
		{"stockx.com", false},
		{"notebay.com", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsEbayHost(tt.host); got != tt.want {
			t.Errorf("IsEbayHost(%q) = %v; want %v", tt.host, got, tt.want)
		}
	}
}

func TestFetchDirectSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != directUserAgent {
			t.Errorf("direct UA = %q", ua)
		}
		w.Write([]byte("<html>listing body</html>"))
	}))
	defer srv.Close()

	f := New(5*time.Second, "http://127.0.0.1:0/unused/")
	body, err := f.FetchListingHTML(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if body != "<html>listing body</html>" {
		t.Errorf("body = %q", body)
	}
}

func TestFetchBotBlocked(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("To continue, please verify you are human"))
	}))
	defer srv.Close()

	f := New(5*time.Second, "")
	_, err := f.FetchListingHTML(context.Background(), srv.URL)
	if !errors.Is(err, ErrBotBlocked) {
		t.Errorf("err = %v; want ErrBotBlocked", err)
	}
}

func TestFetchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := New(5*time.Second, "")
	_, err := f.FetchListingHTML(context.Background(), srv.URL)
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusNotFound {
		t.Errorf("err = %v; want StatusError 404", err)
	}
}

func TestFetchTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte("too late"))
	}))
	defer srv.Close()

	f := New(50*time.Millisecond, "")
	_, err := f.FetchListingHTML(context.Background(), srv.URL)
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("err = %v; want ErrTimeout", err)
	}
}

// A failed eBay fetch must fall back through the proxy exactly once.
func TestEbayFallbackAttemptedOnce(t *testing.T) {
	var proxyCalls atomic.Int32
	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		proxyCalls.Add(1)
		if ua := r.Header.Get("User-Agent"); ua != fallbackUserAgent {
			t.Errorf("fallback UA = %q", ua)
		}
		w.Write([]byte("proxied listing"))
	}))
	defer proxy.Close()

	// .invalid never resolves, so the direct attempt fails fast.
	f := New(5*time.Second, proxy.URL+"/")
	body, err := f.FetchListingHTML(context.Background(), "https://www.ebay.invalid/itm/1")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if body != "proxied listing" {
		t.Errorf("body = %q", body)
	}
	if n := proxyCalls.Load(); n != 1 {
		t.Errorf("proxy calls = %d; want exactly 1", n)
	}
}

func TestEbayFallbackRewritesScheme(t *testing.T) {
	var gotPath string
	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte("ok"))
	}))
	defer proxy.Close()

	f := New(5*time.Second, proxy.URL+"/")
	if _, err := f.FetchListingHTML(context.Background(), "https://www.ebay.invalid/itm/9"); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if gotPath != "/http://www.ebay.invalid/itm/9" {
		t.Errorf("proxied path = %q; want scheme rewritten to http", gotPath)
	}
}

// Non-eBay hosts get no second chance: the original failure propagates
// and the proxy must never be touched.
func TestNoFallbackForOtherHosts(t *testing.T) {
	var proxyCalls atomic.Int32
	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		proxyCalls.Add(1)
	}))
	defer proxy.Close()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	f := New(5*time.Second, proxy.URL+"/")
	_, err := f.FetchListingHTML(context.Background(), srv.URL)
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusForbidden {
		t.Errorf("err = %v; want StatusError 403", err)
	}
	if n := proxyCalls.Load(); n != 0 {
		t.Errorf("proxy calls = %d; want 0", n)
	}
}

func TestFallbackStatusPropagates(t *testing.T) {
	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer proxy.Close()

	f := New(5*time.Second, proxy.URL+"/")
	_, err := f.FetchListingHTML(context.Background(), "https://www.ebay.invalid/itm/1")
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusBadGateway {
		t.Errorf("err = %v; want StatusError 502 from fallback", err)
	}
}
