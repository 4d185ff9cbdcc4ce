package oracle

import (
	"fmt"
	"strings"

	"github.com/veridict/veridict/internal/model"
)

// NewSentimentOracle creates a sentiment backend from configuration.
// An empty provider returns nil (sentiment enrichment disabled).
func NewSentimentOracle(cfg model.OracleConfig) (SentimentOracle, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAISentiment(cfg)

	case "server":
		return NewServerSentiment(cfg)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown sentiment provider: %s (supported: openai, server)", cfg.Provider)
	}
}

// NewEntityOracle creates an entity-recognition backend from
// configuration. An empty provider returns nil (entity enrichment
// disabled).
func NewEntityOracle(cfg model.OracleConfig) (EntityOracle, error) {
	switch strings.ToLower(cfg.Provider) {
	case "prose":
		return NewProseEntities(), nil

	case "server":
		return NewServerEntities(cfg)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown entity provider: %s (supported: prose, server)", cfg.Provider)
	}
}
