package fetch

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestGet_UserAgentAndHeaders(t *testing.T) {
	t.Setenv("RADAR_UA", "test-agent/1.0")
	var gotUA, gotLang string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cl, err := New(Options{Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	resp, err := cl.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	_ = resp.Body.Close()
	if gotUA != "test-agent/1.0" {
		t.Fatalf("user-agent = %q", gotUA)
	}
	if gotLang == "" {
		t.Fatal("accept-language header missing")
	}
}

func TestGet_RetryOn5xx(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cl, _ := New(Options{Retry: 1, Timeout: 2 * time.Second})
	resp, err := cl.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	_ = resp.Body.Close()
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Fatalf("calls = %d, want 2", n)
	}
}

func TestGet_NoRetryOn4xx(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	cl, _ := New(Options{Retry: 2, Timeout: 2 * time.Second})
	if _, err := cl.Get(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error on 403")
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("4xx must not retry, calls = %d", n)
	}
}

func TestGetWithHeaders_Extra(t *testing.T) {
	var gotReferer string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReferer = r.Header.Get("Referer")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cl, _ := New(Options{Timeout: 2 * time.Second})
	resp, err := cl.GetWithHeaders(context.Background(), srv.URL, map[string]string{"Referer": "https://www.cls.cn/telegraph"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	_ = resp.Body.Close()
	if gotReferer != "https://www.cls.cn/telegraph" {
		t.Fatalf("referer = %q", gotReferer)
	}
}

func TestGet_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cl, _ := New(Options{Timeout: 100 * time.Millisecond})
	_, err := cl.Get(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("unexpected error: %v", err)
	}
}
