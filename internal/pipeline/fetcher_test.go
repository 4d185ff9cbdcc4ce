package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestExtractText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "basic document",
			in:   `<html><head><title>x</title></head><body><h1>Breaking</h1><p>Story text here.</p></body></html>`,
			want: "Breaking Story text here.",
		},
		{
			name: "skips script and style",
			in:   `<body><script>alert(1)</script><style>p{}</style><p>Visible</p></body>`,
			want: "Visible",
		},
		{
			name: "collapses whitespace",
			in:   "<p>one\n\n   two\tthree</p>",
			want: "one two three",
		},
		{
			name: "plain text passthrough",
			in:   "just a sentence",
			want: "just a sentence",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractText(tt.in); got != tt.want {
				t.Errorf("ExtractText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFetchText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/robots.txt":
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
		case "/article":
			_, _ = w.Write([]byte(`<html><body><p>Economy grows two percent.</p></body></html>`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	f := NewFetcher(5*time.Second, "veridict-test", 1<<20)

	text, err := f.FetchText(context.Background(), server.URL+"/article")
	if err != nil {
		t.Fatalf("FetchText failed: %v", err)
	}
	if text != "Economy grows two percent." {
		t.Errorf("Unexpected text: %q", text)
	}
}

func TestFetchText_RobotsDisallowed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/robots.txt":
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
		default:
			_, _ = w.Write([]byte(`<p>secret</p>`))
		}
	}))
	defer server.Close()

	f := NewFetcher(5*time.Second, "veridict-test", 1<<20)

	_, err := f.FetchText(context.Background(), server.URL+"/private/page")
	if err == nil {
		t.Fatal("Expected error for disallowed path")
	}
	if !strings.Contains(err.Error(), "robots.txt") {
		t.Errorf("Expected robots.txt error, got %v", err)
	}
}

func TestFetchText_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nAllow: /\n"))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	f := NewFetcher(5*time.Second, "veridict-test", 1<<20)

	if _, err := f.FetchText(context.Background(), server.URL+"/article"); err == nil {
		t.Error("Expected error for 500 response")
	}
}

func TestFetchText_EmptyPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`<html><head><script>void 0</script></head><body></body></html>`))
	}))
	defer server.Close()

	f := NewFetcher(5*time.Second, "veridict-test", 1<<20)

	if _, err := f.FetchText(context.Background(), server.URL+"/empty"); err == nil {
		t.Error("Expected error for page with no text content")
	}
}
