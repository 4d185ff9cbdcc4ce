package pipeline

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/veridict/veridict/internal/model"
)

// Renderer writes prediction results to the console and to JSON files.
type Renderer struct{}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderJSON writes the result as pretty-printed JSON to path.
func (r *Renderer) RenderJSON(result *model.PredictionResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

// RenderSummary prints a human-readable verdict to stdout.
func (r *Renderer) RenderSummary(result *model.PredictionResult) {
	fmt.Println("═══════════════════════════════════════")
	fmt.Printf("  Verdict:    %s\n", result.Prediction)
	fmt.Printf("  Confidence: %.4f (decision margin, not a probability)\n", result.Confidence)
	fmt.Printf("  Sentiment:  %s (%.2f)\n", result.Sentiment, result.SentimentScore)
	fmt.Printf("  Entities:   %d\n", result.EntityCount)
	fmt.Println("═══════════════════════════════════════")
	for _, w := range result.Warnings {
		fmt.Printf("  Warning: %s\n", w)
	}
}
