package anthropic

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/weljim73-spec/soccertrainerocr/internal/core/ports"
	"github.com/weljim73-spec/soccertrainerocr/internal/infrastructure/resilience"
)

const (
	defaultBaseURL = "https://api.anthropic.com"
	apiVersion     = "2023-06-01"
)

// Client talks to the Anthropic messages API. It implements
// ports.VisionModel: one prompt plus a batch of screenshots in a single
// multi-part user message.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	executor   *resilience.Executor
}

func New(baseURL, apiKey string, timeout time.Duration, executor *resilience.Executor) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		executor:   executor,
	}
}

type contentBlock struct {
	Type   string       `json:"type"`
	Text   string       `json:"text,omitempty"`
	Source *imageSource `json:"source,omitempty"`
}

type imageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

type messagesResponse struct {
	Content []contentBlock `json:"content"`
}

func (c *Client) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	blocks := make([]contentBlock, 0, len(req.Images)+1)
	for _, img := range req.Images {
		blocks = append(blocks, contentBlock{
			Type: "image",
			Source: &imageSource{
				Type:      "base64",
				MediaType: img.MediaType(),
				Data:      base64.StdEncoding.EncodeToString(img.Data),
			},
		})
	}
	blocks = append(blocks, contentBlock{Type: "text", Text: req.Prompt})

	body := messagesRequest{
		Model:     req.Model,
		MaxTokens: req.MaxTokens,
		Messages:  []message{{Role: "user", Content: blocks}},
	}

	apiKey := req.APIKey
	if apiKey == "" {
		apiKey = c.apiKey
	}

	var out messagesResponse
	call := func(ctx context.Context) error {
		return c.postJSON(ctx, "/v1/messages", apiKey, body, &out, "messages")
	}
	var err error
	if c.executor != nil {
		err = c.executor.Execute(ctx, "vision."+req.Model, call, classifyAnthropicError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return "", wrapDomainKind("vision completion", err)
	}

	text := collectText(out.Content)
	if text == "" {
		return "", fmt.Errorf("vision completion: empty response content")
	}
	return text, nil
}

func collectText(blocks []contentBlock) string {
	var b strings.Builder
	for _, blk := range blocks {
		if blk.Type != "text" {
			continue
		}
		b.WriteString(blk.Text)
	}
	return strings.TrimSpace(b.String())
}
