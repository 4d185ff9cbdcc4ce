package model

import (
	"errors"
	"testing"
)

func TestParseLabel(t *testing.T) {
	tests := []struct {
		in   string
		want Label
	}{
		{"real", LabelReal},
		{"REAL", LabelReal},
		{"0", LabelReal},
		{" Real ", LabelReal},
		{"fake", LabelFake},
		{"Fake", LabelFake},
		{"1", LabelFake},
	}

	for _, tt := range tests {
		got, err := ParseLabel(tt.in)
		if err != nil {
			t.Errorf("ParseLabel(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLabel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseLabel_Unknown(t *testing.T) {
	for _, in := range []string{"", "maybe", "2", "true"} {
		if _, err := ParseLabel(in); !errors.Is(err, ErrMalformedInput) {
			t.Errorf("ParseLabel(%q): expected ErrMalformedInput, got %v", in, err)
		}
	}
}

func TestLabelString(t *testing.T) {
	if LabelReal.String() != "Real" {
		t.Errorf("Expected %q, got %q", "Real", LabelReal.String())
	}
	if LabelFake.String() != "Fake" {
		t.Errorf("Expected %q, got %q", "Fake", LabelFake.String())
	}
}
