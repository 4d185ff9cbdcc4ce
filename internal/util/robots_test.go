package util

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestCanFetch(t *testing.T) {
	var robotsHits int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			atomic.AddInt64(&robotsHits, 1)
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	checker := NewRobotsChecker("veridict-test", 5*time.Second)

	allowed, err := checker.CanFetch(context.Background(), server.URL+"/articles/1")
	if err != nil {
		t.Fatalf("CanFetch failed: %v", err)
	}
	if !allowed {
		t.Error("Expected public path to be allowed")
	}

	allowed, err = checker.CanFetch(context.Background(), server.URL+"/private/2")
	if err != nil {
		t.Fatalf("CanFetch failed: %v", err)
	}
	if allowed {
		t.Error("Expected private path to be disallowed")
	}

	if got := atomic.LoadInt64(&robotsHits); got != 1 {
		t.Errorf("Expected robots.txt to be fetched once per host, got %d fetches", got)
	}
}

func TestCanFetch_MissingRobotsAllows(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	checker := NewRobotsChecker("veridict-test", 5*time.Second)
	allowed, err := checker.CanFetch(context.Background(), server.URL+"/anything")
	if err != nil {
		t.Fatalf("CanFetch failed: %v", err)
	}
	if !allowed {
		t.Error("Expected fetch to be allowed when robots.txt is missing")
	}
}

func TestCanFetch_UnreachableHostAllows(t *testing.T) {
	checker := NewRobotsChecker("veridict-test", 500*time.Millisecond)
	allowed, err := checker.CanFetch(context.Background(), "http://127.0.0.1:1/page")
	if err != nil {
		t.Fatalf("CanFetch failed: %v", err)
	}
	if !allowed {
		t.Error("Expected fetch to be allowed when robots.txt is unreachable")
	}
}

func TestCanFetch_BadURL(t *testing.T) {
	checker := NewRobotsChecker("veridict-test", time.Second)
	if _, err := checker.CanFetch(context.Background(), "://not-a-url"); err == nil {
		t.Error("Expected error for unparseable URL")
	}
}
