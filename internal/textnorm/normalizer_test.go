package textnorm

import "testing"

func newTestNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	n, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return n
}

func TestNormalize_CaseFolding(t *testing.T) {
	n := newTestNormalizer(t)

	got := n.Normalize("HELLO World")
	if got != "hello world" {
		t.Errorf("Expected %q, got %q", "hello world", got)
	}
}

func TestNormalize_StripsURLs(t *testing.T) {
	n := newTestNormalizer(t)

	cases := []struct {
		in   string
		want string
	}{
		{"read https://example.com/story today", "read today"},
		{"read http://example.com today", "read today"},
		{"read www.example.com today", "read today"},
	}
	for _, tc := range cases {
		if got := n.Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalize_StripsMentionsKeepsHashtagText(t *testing.T) {
	n := newTestNormalizer(t)

	got := n.Normalize("@alice posted #crypto scandal")
	want := "post crypto scandal"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestNormalize_StripsPunctuation(t *testing.T) {
	n := newTestNormalizer(t)

	got := n.Normalize("miracle!!! cure??? (guaranteed)")
	want := "miracle cure guarantee"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestNormalize_DropsStopwords(t *testing.T) {
	n := newTestNormalizer(t)

	got := n.Normalize("the sky is blue and calm")
	want := "sky blue calm"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestNormalize_Lemmatizes(t *testing.T) {
	n := newTestNormalizer(t)

	got := n.Normalize("cats running")
	want := "cat run"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestNormalize_EmptyAndStopwordOnlyInput(t *testing.T) {
	n := newTestNormalizer(t)

	if got := n.Normalize(""); got != "" {
		t.Errorf("Expected empty output for empty input, got %q", got)
	}
	if got := n.Normalize("the and of !!!"); got != "" {
		t.Errorf("Expected empty output for stopword-only input, got %q", got)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	n := newTestNormalizer(t)

	inputs := []string{
		"The cats were running towards https://example.com quickly!",
		"@bob shared #breaking miracle cure stories",
		"Scientists confirm that eating chocolate every day improves longevity.",
		"",
		"the and of",
	}
	for _, in := range inputs {
		once := n.Normalize(in)
		twice := n.Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}
