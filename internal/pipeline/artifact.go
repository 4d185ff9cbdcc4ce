package pipeline

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"github.com/veridict/veridict/internal/classify"
	"github.com/veridict/veridict/internal/feature"
	"github.com/veridict/veridict/internal/model"
)

const artifactVersion = 1

// artifactBlob is the serialized pair of learned artifacts. The
// classifier is meaningless without its matching feature space, so the
// two are always saved and loaded as one unit.
type artifactBlob struct {
	Version int
	Space   feature.Snapshot
	Model   classify.Snapshot
}

// Save persists the fitted (feature space, classifier) pair to a single
// binary file. The write goes through a temp file and rename so a crash
// can never leave a partial artifact behind.
func (c *Controller) Save(path string) error {
	c.mu.RLock()
	spaceSnap, err := c.space.Snapshot()
	if err != nil {
		c.mu.RUnlock()
		return fmt.Errorf("save: %w", err)
	}
	modelSnap, err := c.clf.Snapshot()
	c.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}

	blob := artifactBlob{
		Version: artifactVersion,
		Space:   *spaceSnap,
		Model:   *modelSnap,
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(blob); err != nil {
		return fmt.Errorf("encode artifact: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".veridict-artifact-*")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close artifact: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename artifact: %w", err)
	}
	return nil
}

// Load restores the (feature space, classifier) pair from a persisted
// artifact, replacing any learned state the controller holds. A partial
// or mismatched-dimensionality pair is rejected.
func (c *Controller) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read artifact: %w", err)
	}

	var blob artifactBlob
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&blob); err != nil {
		return fmt.Errorf("decode artifact: %w", err)
	}
	if blob.Version != artifactVersion {
		return fmt.Errorf("unsupported artifact version %d", blob.Version)
	}
	if len(blob.Model.Weights) != len(blob.Space.Terms) {
		return fmt.Errorf("load: weights %d vs vocabulary %d: %w",
			len(blob.Model.Weights), len(blob.Space.Terms), model.ErrDimensionMismatch)
	}

	space, err := feature.FromSnapshot(blob.Space)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	clf := classify.FromSnapshot(blob.Model)

	c.mu.Lock()
	c.space = space
	c.clf = clf
	c.mu.Unlock()
	return nil
}
