package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/veridict/veridict/internal/pipeline"
	"github.com/veridict/veridict/internal/textnorm"
	"github.com/veridict/veridict/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Triage multiple documents from a file in parallel",
	Long: `Batch triages many documents concurrently:
- Read documents from the input file (one per line)
- Predict in parallel with a configurable worker count; inference is
  read-only against the loaded model, so predictions parallelize freely
- Write one JSON report per document

Example:
  veridict batch posts.txt --model model.bin
  veridict batch posts.txt --concurrency 10 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./veridict-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	batchCmd.Flags().StringVar(&artifactPath, "model", "model.bin", "model artifact path")
	batchCmd.Flags().StringVar(&sentimentProvider, "sentiment-provider", "", "sentiment oracle backend (openai, server; empty disables)")
	batchCmd.Flags().StringVar(&entityProvider, "entity-provider", "prose", "entity oracle backend (prose, server; empty disables)")
	batchCmd.Flags().StringVar(&oracleURL, "oracle-url", "", "base URL for the server oracle backend")
	batchCmd.Flags().IntVar(&oracleTimeout, "oracle-timeout", 10, "per-oracle timeout in seconds")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the enrichment cache")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	texts, err := worker.ReadTexts(args[0])
	if err != nil {
		return fmt.Errorf("read documents: %w", err)
	}
	if len(texts) == 0 {
		return fmt.Errorf("no documents found in %s", args[0])
	}

	cfg, err := buildPredictConfig()
	if err != nil {
		return err
	}
	normalizer, err := textnorm.New()
	if err != nil {
		return err
	}
	enricher, err := buildEnricher(cfg)
	if err != nil {
		return err
	}

	p := pipeline.New(cfg, normalizer, enricher)
	if err := p.Load(artifactPath); err != nil {
		return fmt.Errorf("load artifact: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Triaging %d documents with %d workers\n", len(texts), concurrency)
	}

	processor := worker.NewBatchProcessor(p, concurrency)
	outcomes := processor.ProcessTexts(ctx, texts)

	renderer := pipeline.NewRenderer()
	var failed int
	for _, outcome := range outcomes {
		if outcome.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ document %d: %v\n", outcome.Index+1, outcome.Error)
			continue
		}
		path := filepath.Join(outputDir, fmt.Sprintf("report-%04d.json", outcome.Index+1))
		if err := renderer.RenderJSON(outcome.Result, path); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ document %d: %v\n", outcome.Index+1, err)
			continue
		}
		fmt.Printf("✓ %04d  %-4s  confidence=%.4f  %s\n",
			outcome.Index+1, outcome.Result.Prediction, outcome.Result.Confidence, path)
	}

	fmt.Printf("\nProcessed %d documents (%d failed)\n", len(outcomes), failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(outcomes))
	}
	return nil
}
