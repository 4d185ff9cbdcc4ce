package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/veridict/veridict/internal/dataset"
	"github.com/veridict/veridict/internal/model"
	"github.com/veridict/veridict/internal/pipeline"
	"github.com/veridict/veridict/internal/textnorm"
)

var (
	trainCSV       string
	trainSQLite    string
	trainTable     string
	artifactOut    string
	dfCeiling      float64
	aggressiveness float64
	maxPasses      int
)

// trainCmd represents the train command
var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the classifier on a labeled dataset and save the model artifact",
	Long: `Train fits the full pipeline on a labeled dataset:
- Normalize every document (case folding, URL/mention stripping,
  stopword removal, lemmatization)
- Fit the TF-IDF feature space on the normalized corpus
- Fit the passive-aggressive classifier on the vectorized batch
- Save the (feature space, classifier) pair as one binary artifact

The dataset must provide 'text' and 'label' columns with labels
fake/real (or 1/0), and must contain at least one example of each class.

Example:
  veridict train --csv news.csv --out model.bin
  veridict train --sqlite corpus.db --table articles --out model.bin
  veridict train --csv news.csv --df-ceiling 0.5 --max-passes 50`,
	RunE: runTrain,
}

func init() {
	rootCmd.AddCommand(trainCmd)

	trainCmd.Flags().StringVar(&trainCSV, "csv", "", "CSV dataset path (text,label columns)")
	trainCmd.Flags().StringVar(&trainSQLite, "sqlite", "", "SQLite dataset path")
	trainCmd.Flags().StringVar(&trainTable, "table", "articles", "SQLite table name")
	trainCmd.Flags().StringVar(&artifactOut, "out", "model.bin", "output path for the model artifact")

	trainCmd.Flags().Float64Var(&dfCeiling, "df-ceiling", 0.70, "drop terms present in more than this fraction of documents")
	trainCmd.Flags().Float64Var(&aggressiveness, "aggressiveness", 1.0, "passive-aggressive regularization bound (C)")
	trainCmd.Flags().IntVar(&maxPasses, "max-passes", 100, "maximum training passes over the data")
}

func runTrain(cmd *cobra.Command, args []string) error {
	samples, err := loadSamples(cmd.Context())
	if err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Loaded %d samples\n", len(samples))
	}

	cfg := model.DefaultConfig()
	cfg.Training.DocFreqCeiling = dfCeiling
	cfg.Training.Aggressiveness = aggressiveness
	cfg.Training.MaxPasses = maxPasses

	normalizer, err := textnorm.New()
	if err != nil {
		return err
	}

	p := pipeline.New(cfg, normalizer, nil)

	docs, labels := dataset.Split(samples)
	start := time.Now()
	if err := p.Train(docs, labels); err != nil {
		return fmt.Errorf("train failed: %w", err)
	}

	if err := p.Save(artifactOut); err != nil {
		return fmt.Errorf("save artifact: %w", err)
	}

	var fake, real int
	for _, l := range labels {
		if l == model.LabelFake {
			fake++
		} else {
			real++
		}
	}
	fmt.Printf("✓ Trained on %d documents (%d fake, %d real) in %v\n",
		len(docs), fake, real, time.Since(start).Round(time.Millisecond))
	fmt.Printf("✓ Feature space dimensionality: %d\n", p.Dimension())
	fmt.Printf("✓ Wrote artifact: %s\n", artifactOut)
	return nil
}

func loadSamples(ctx context.Context) ([]dataset.Sample, error) {
	switch {
	case trainCSV != "" && trainSQLite != "":
		return nil, fmt.Errorf("use either --csv or --sqlite, not both")
	case trainCSV != "":
		return dataset.LoadCSV(trainCSV)
	case trainSQLite != "":
		return dataset.LoadSQLite(ctx, trainSQLite, trainTable)
	default:
		return nil, fmt.Errorf("a dataset is required (--csv or --sqlite)")
	}
}
