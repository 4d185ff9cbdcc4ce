package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/veridict/veridict/internal/cache"
	"github.com/veridict/veridict/internal/enrich"
	"github.com/veridict/veridict/internal/model"
	"github.com/veridict/veridict/internal/oracle"
	"github.com/veridict/veridict/internal/pipeline"
	"github.com/veridict/veridict/internal/textnorm"
)

var (
	artifactPath      string
	inputFile         string
	inputURL          string
	outJSON           string
	predictTimeout    time.Duration
	sentimentProvider string
	sentimentModel    string
	entityProvider    string
	oracleURL         string
	oracleTimeout     int
	noCache           bool
)

// predictCmd represents the predict command
var predictCmd = &cobra.Command{
	Use:   "predict [text]",
	Short: "Triage a single document and report verdict plus signals",
	Long: `Predict normalizes the document, projects it into the trained feature
space, classifies it, and independently enriches the raw text with
sentiment and named-entity signals from the configured oracles.

Oracle failures never fail the prediction: the verdict and confidence
are always populated, with sentiment reported as "unknown" when the
oracle is unreachable.

Example:
  veridict predict "Miracle cure heals everything overnight" --model model.bin
  veridict predict --file article.txt --model model.bin --json report.json
  veridict predict --url https://example.com/story --model model.bin
  veridict predict --file article.txt --sentiment-provider openai`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPredict,
}

func init() {
	rootCmd.AddCommand(predictCmd)

	predictCmd.Flags().StringVar(&artifactPath, "model", "model.bin", "model artifact path")
	predictCmd.Flags().StringVar(&inputFile, "file", "", "read the document from a file")
	predictCmd.Flags().StringVar(&inputURL, "url", "", "fetch the document from a URL")
	predictCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	predictCmd.Flags().DurationVar(&predictTimeout, "timeout", time.Minute, "overall prediction timeout")

	// Oracle flags
	predictCmd.Flags().StringVar(&sentimentProvider, "sentiment-provider", "", "sentiment oracle backend (openai, server; empty disables)")
	predictCmd.Flags().StringVar(&sentimentModel, "sentiment-model", "", "model name for the openai backend")
	predictCmd.Flags().StringVar(&entityProvider, "entity-provider", "prose", "entity oracle backend (prose, server; empty disables)")
	predictCmd.Flags().StringVar(&oracleURL, "oracle-url", "", "base URL for the server oracle backend")
	predictCmd.Flags().IntVar(&oracleTimeout, "oracle-timeout", 10, "per-oracle timeout in seconds")
	predictCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the enrichment cache")
}

func runPredict(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), predictTimeout)
	defer cancel()

	cfg, err := buildPredictConfig()
	if err != nil {
		return err
	}

	text, err := resolveInput(ctx, cfg, args)
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

	result, err := p.PredictOne(ctx, text)
	if err != nil {
		return fmt.Errorf("predict failed: %w", err)
	}

	renderer := pipeline.NewRenderer()
	if outJSON != "" {
		if err := renderer.RenderJSON(result, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}
	renderer.RenderSummary(result)
	return nil
}

func buildPredictConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose
	cfg.Cache.Enabled = !noCache

	cfg.Oracles.Sentiment.Provider = sentimentProvider
	cfg.Oracles.Sentiment.Model = sentimentModel
	cfg.Oracles.Sentiment.BaseURL = oracleURL
	cfg.Oracles.Sentiment.Timeout = oracleTimeout
	cfg.Oracles.Entity.Provider = entityProvider
	cfg.Oracles.Entity.BaseURL = oracleURL
	cfg.Oracles.Entity.Timeout = oracleTimeout

	if sentimentProvider == "openai" {
		cfg.Oracles.Sentiment.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.Oracles.Sentiment.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}
	return cfg, nil
}

func resolveInput(ctx context.Context, cfg *model.Config, args []string) (string, error) {
	sources := 0
	if len(args) == 1 {
		sources++
	}
	if inputFile != "" {
		sources++
	}
	if inputURL != "" {
		sources++
	}
	if sources != 1 {
		return "", fmt.Errorf("provide exactly one of: text argument, --file, --url")
	}

	switch {
	case len(args) == 1:
		return args[0], nil
	case inputFile != "":
		data, err := os.ReadFile(inputFile)
		if err != nil {
			return "", fmt.Errorf("read input file: %w", err)
		}
		return string(data), nil
	default:
		fetcher := pipeline.NewFetcher(cfg.HTTP.Timeout, cfg.HTTP.UserAgent, cfg.HTTP.MaxBodyBytes)
		if verbose {
			fmt.Fprintf(os.Stderr, "Fetching: %s\n", inputURL)
		}
		return fetcher.FetchText(ctx, inputURL)
	}
}

func buildEnricher(cfg *model.Config) (*enrich.Enricher, error) {
	sentiment, err := oracle.NewSentimentOracle(cfg.Oracles.Sentiment)
	if err != nil {
		return nil, err
	}
	entities, err := oracle.NewEntityOracle(cfg.Oracles.Entity)
	if err != nil {
		return nil, err
	}

	opts := enrich.Options{
		Limiter:  rate.NewLimiter(rate.Limit(cfg.Oracles.RequestsPerSecond), cfg.Oracles.Burst),
		Timeout:  time.Duration(cfg.Oracles.Sentiment.Timeout) * time.Second,
		CacheTTL: cfg.Cache.MemoryTTL,
	}
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			opts.Cache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		} else {
			opts.Cache = cache.NewMemoryCache(cfg.Cache.MemoryTTL, 10*time.Minute)
		}
	}

	return enrich.New(sentiment, entities, opts), nil
}
