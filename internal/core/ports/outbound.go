package ports

import (
	"context"

	"github.com/weljim73-spec/soccertrainerocr/internal/core/domain"
)

// CompletionRequest carries one vision prompt to the model provider.
type CompletionRequest struct {
	Model     string
	Prompt    string
	Images    []domain.ImageFile
	MaxTokens int
	// APIKey overrides the server credential when the deployment lets
	// callers bring their own key.
	APIKey string
}

// VisionModel sends a prompt plus images to a multimodal model and returns
// the raw text of the reply.
type VisionModel interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
