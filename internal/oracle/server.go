package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/veridict/veridict/internal/model"
)

func newProxyFunc(httpProxy, httpsProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	return func(req *http.Request) (*url.URL, error) {
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}

// serverClient is the shared HTTP plumbing for self-hosted inference
// servers exposing /v1/sentiment and /v1/entities.
type serverClient struct {
	baseURL    string
	httpClient *http.Client
}

type serverRequest struct {
	Text string `json:"text"`
}

type serverSentimentResponse struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type serverEntitiesResponse struct {
	Entities []struct {
		Text  string `json:"text"`
		Label string `json:"label"`
		Start int    `json:"start,omitempty"`
		End   int    `json:"end,omitempty"`
	} `json:"entities"`
}

type serverError struct {
	Error string `json:"error"`
}

func newServerClient(cfg model.OracleConfig) (*serverClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("inference server base URL is required")
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &serverClient{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: newProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy),
			},
		},
	}, nil
}

func (c *serverClient) post(ctx context.Context, path, text string, out any) error {
	body, err := json.Marshal(serverRequest{Text: text})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	endpoint := c.baseURL + path
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		var apiErr serverError
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("API error (%d): %s", httpResp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("API error (%d): %s", httpResp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

// ServerSentiment implements SentimentOracle against a self-hosted
// inference server.
type ServerSentiment struct {
	client *serverClient
}

// NewServerSentiment creates a new server-backed sentiment oracle.
func NewServerSentiment(cfg model.OracleConfig) (*ServerSentiment, error) {
	client, err := newServerClient(cfg)
	if err != nil {
		return nil, err
	}
	return &ServerSentiment{client: client}, nil
}

// Name returns the backend name
func (s *ServerSentiment) Name() string {
	return "server"
}

// Analyze returns the top-ranked sentiment class for the text.
func (s *ServerSentiment) Analyze(ctx context.Context, text string) (*Sentiment, error) {
	var resp serverSentimentResponse
	if err := s.client.post(ctx, "/v1/sentiment", text, &resp); err != nil {
		return nil, err
	}
	if resp.Label == "" {
		return nil, fmt.Errorf("sentiment server returned no label")
	}
	return &Sentiment{Label: resp.Label, Score: resp.Score}, nil
}

// ServerEntities implements EntityOracle against a self-hosted inference
// server.
type ServerEntities struct {
	client *serverClient
}

// NewServerEntities creates a new server-backed entity oracle.
func NewServerEntities(cfg model.OracleConfig) (*ServerEntities, error) {
	client, err := newServerClient(cfg)
	if err != nil {
		return nil, err
	}
	return &ServerEntities{client: client}, nil
}

// Name returns the backend name
func (s *ServerEntities) Name() string {
	return "server"
}

// Recognize returns the recognized entity spans.
func (s *ServerEntities) Recognize(ctx context.Context, text string) ([]Span, error) {
	var resp serverEntitiesResponse
	if err := s.client.post(ctx, "/v1/entities", text, &resp); err != nil {
		return nil, err
	}
	spans := make([]Span, 0, len(resp.Entities))
	for _, e := range resp.Entities {
		spans = append(spans, Span{Text: e.Text, Label: e.Label})
	}
	return spans, nil
}
