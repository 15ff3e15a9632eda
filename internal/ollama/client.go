package ollama

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
)

const (
	// DefaultModel is the recommended model for commit message drafts
	DefaultModel = "qwen2.5-coder:3b"
	// DefaultURL is the default Ollama API endpoint
	DefaultURL = "http://localhost:11434"
)

// Client wraps the Ollama API client
type Client struct {
	client *api.Client
	model  string
}

// NewClient creates a new Ollama client
func NewClient(url, model string) (*Client, error) {
	if url == "" {
		url = DefaultURL
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := api.ClientFromEnvironment()
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}

	return &Client{
		client: client,
		model:  model,
	}, nil
}

// IsAvailable checks if Ollama is running and accessible
func IsAvailable(url string) bool {
	if url == "" {
		url = DefaultURL
	}

	// Try to connect with a short timeout
	client := &http.Client{
		Timeout: 2 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

// GenerateCommitMessage drafts a one-line commit message from the lists
// of paths about to be committed.
func (c *Client) GenerateCommitMessage(ctx context.Context, added, modified, deleted []string) (string, error) {
	if len(added)+len(modified)+len(deleted) == 0 {
		return "", fmt.Errorf("no changes to describe")
	}

	var sb strings.Builder
	sb.WriteString("Write a single-line git commit message (max 72 characters, imperative mood, no quotes) for these changes to a knowledge repository:\n")
	for _, p := range added {
		fmt.Fprintf(&sb, "added: %s\n", p)
	}
	for _, p := range modified {
		fmt.Fprintf(&sb, "modified: %s\n", p)
	}
	for _, p := range deleted {
		fmt.Fprintf(&sb, "deleted: %s\n", p)
	}

	stream := false
	req := &api.GenerateRequest{
		Model:  c.model,
		Prompt: sb.String(),
		Stream: &stream,
	}

	var out strings.Builder
	err := c.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		out.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate commit message: %w", err)
	}

	message := strings.TrimSpace(out.String())
	if message == "" {
		return "", fmt.Errorf("empty response from model")
	}

	// Keep only the first line; models sometimes add commentary.
	if idx := strings.IndexByte(message, '\n'); idx >= 0 {
		message = strings.TrimSpace(message[:idx])
	}

	return message, nil
}

// GetModel returns the model being used
func (c *Client) GetModel() string {
	return c.model
}
