// Package llm provides the Gemini REST client used to enhance chatbot
// responses. Every caller must tolerate a nil client: the service stays
// fully functional on deterministic fallbacks without an API key.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/nethmalgunawardhana/spiriter-ai-chat/pkg/env/gemini"
	"github.com/nethmalgunawardhana/spiriter-ai-chat/pkg/version"
)

const (
	requestTimeout = 30 * time.Second
	retryMax       = 2
)

type Client struct {
	env    *gemini.Env
	client *retryablehttp.Client
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client.HTTPClient = client
	}
}

func NewClient(env *gemini.Env, options ...Option) *Client {
	client := retryablehttp.NewClient()
	client.RetryMax = retryMax
	client.HTTPClient.Timeout = requestTimeout
	client.Logger = nil

	c := &Client{env: env, client: client}
	for _, option := range options {
		option(c)
	}

	return c
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type embedRequest struct {
	Model   string  `json:"model"`
	Content content `json:"content"`
}

type embedResponse struct {
	Embedding struct {
		Values []float32 `json:"values"`
	} `json:"embedding"`
}

// Generate produces a model response for the given prompt.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	request := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}

	var response generateResponse
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.env.APIURL, c.env.Model)
	if err := c.post(ctx, url, request, &response); err != nil {
		return "", err
	}

	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("unable to read Gemini candidates: empty response")
	}

	return strings.TrimSpace(response.Candidates[0].Content.Parts[0].Text), nil
}

// Embed produces a vector embedding for the given text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	request := embedRequest{
		Model:   fmt.Sprintf("models/%s", c.env.EmbeddingModel),
		Content: content{Parts: []part{{Text: text}}},
	}

	var response embedResponse
	url := fmt.Sprintf("%s/v1beta/models/%s:embedContent", c.env.APIURL, c.env.EmbeddingModel)
	if err := c.post(ctx, url, request, &response); err != nil {
		return nil, err
	}

	if len(response.Embedding.Values) == 0 {
		return nil, fmt.Errorf("unable to read Gemini embedding: empty response")
	}

	return response.Embedding.Values, nil
}

func (c *Client) post(ctx context.Context, url string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("unable to marshal Gemini request: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("unable to create request to Gemini: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("x-goog-api-key", c.env.APIKey)
	req.Header.Set("User-Agent", fmt.Sprintf("SpiriterChat/%s", version.Version()))

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("unable to send request to Gemini: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("unable to read Gemini response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unable to query Gemini: %s (%d)", http.StatusText(resp.StatusCode), resp.StatusCode)
	}

	if err := json.Unmarshal(content, out); err != nil {
		return fmt.Errorf("unable to unmarshal Gemini response: %w", err)
	}

	return nil
}
