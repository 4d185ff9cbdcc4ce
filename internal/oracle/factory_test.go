package oracle

import (
	"context"
	"testing"

	"github.com/veridict/veridict/internal/model"
)

func TestNewSentimentOracle(t *testing.T) {
	o, err := NewSentimentOracle(model.OracleConfig{})
	if err != nil || o != nil {
		t.Errorf("Expected nil backend for empty provider, got %v / %v", o, err)
	}

	o, err = NewSentimentOracle(model.OracleConfig{Provider: "server", BaseURL: "http://localhost:8080"})
	if err != nil {
		t.Fatalf("NewSentimentOracle(server) failed: %v", err)
	}
	if o.Name() != "server" {
		t.Errorf("Expected backend name %q, got %q", "server", o.Name())
	}

	if _, err := NewSentimentOracle(model.OracleConfig{Provider: "carrier-pigeon"}); err == nil {
		t.Error("Expected error for unknown provider")
	}
}

func TestNewEntityOracle(t *testing.T) {
	o, err := NewEntityOracle(model.OracleConfig{})
	if err != nil || o != nil {
		t.Errorf("Expected nil backend for empty provider, got %v / %v", o, err)
	}

	o, err = NewEntityOracle(model.OracleConfig{Provider: "prose"})
	if err != nil {
		t.Fatalf("NewEntityOracle(prose) failed: %v", err)
	}
	if o.Name() != "prose" {
		t.Errorf("Expected backend name %q, got %q", "prose", o.Name())
	}

	if _, err := NewEntityOracle(model.OracleConfig{Provider: "carrier-pigeon"}); err == nil {
		t.Error("Expected error for unknown provider")
	}
}

func TestProseEntities_Recognize(t *testing.T) {
	o := NewProseEntities()

	spans, err := o.Recognize(context.Background(), "Barack Obama visited Paris last Tuesday to meet officials from Google.")
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}
	if len(spans) == 0 {
		t.Fatal("Expected at least one recognized entity")
	}
	for _, s := range spans {
		if s.Text == "" || s.Label == "" {
			t.Errorf("Expected non-empty span fields, got %+v", s)
		}
	}
}

func TestProseEntities_CancelledContext(t *testing.T) {
	o := NewProseEntities()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := o.Recognize(ctx, "some text"); err == nil {
		t.Error("Expected error for cancelled context")
	}
}
