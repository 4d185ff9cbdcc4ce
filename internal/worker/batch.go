package worker

import (
	"bufio"
	"context"
	"os"
	"sort"
	"strings"

	"github.com/veridict/veridict/internal/model"
)

// Predictor is the inference surface the batch processor drives.
// Satisfied by pipeline.Controller.
type Predictor interface {
	PredictOne(ctx context.Context, rawText string) (*model.PredictionResult, error)
}

// PredictJob triages one document.
type PredictJob struct {
	Index     int
	Text      string
	Predictor Predictor
}

// Execute runs the prediction.
func (j *PredictJob) Execute(ctx context.Context) Result {
	result, err := j.Predictor.PredictOne(ctx, j.Text)
	return &PredictOutcome{
		Index:  j.Index,
		Text:   j.Text,
		Result: result,
		Error:  err,
	}
}

// PredictOutcome is the per-document batch result.
type PredictOutcome struct {
	Index  int
	Text   string
	Result *model.PredictionResult
	Error  error
}

// Err returns the prediction error, if any.
func (o *PredictOutcome) Err() error {
	return o.Error
}

// BatchProcessor triages many documents concurrently. Inference is
// read-only against the frozen model, so predictions parallelize freely.
type BatchProcessor struct {
	predictor   Predictor
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(predictor Predictor, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		predictor:   predictor,
		concurrency: concurrency,
	}
}

// ProcessTexts triages all texts and returns outcomes ordered by input
// position.
func (b *BatchProcessor) ProcessTexts(ctx context.Context, texts []string) []*PredictOutcome {
	if len(texts) == 0 {
		return []*PredictOutcome{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	go func() {
		defer pool.Done()
		for i, text := range texts {
			if ctx.Err() != nil {
				return
			}
			pool.Submit(&PredictJob{Index: i, Text: text, Predictor: b.predictor})
		}
	}()

	outcomes := make([]*PredictOutcome, 0, len(texts))
	for _, r := range pool.Wait() {
		outcomes = append(outcomes, r.(*PredictOutcome))
	}
	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].Index < outcomes[j].Index })
	return outcomes
}

// ReadTexts reads one document per non-empty line from a file.
func ReadTexts(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var texts []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		texts = append(texts, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return texts, nil
}
