package ports

import (
	"context"

	"github.com/weljim73-spec/soccertrainerocr/internal/core/domain"
)

// SessionExtractor is the inbound contract for screenshot extraction
// orchestration.
type SessionExtractor interface {
	Extract(ctx context.Context, req domain.ExtractionRequest) (*domain.Extraction, error)
}

// SessionValidator is the inbound contract for checking uploads against the
// claimed session type before the full extraction runs.
type SessionValidator interface {
	Validate(ctx context.Context, claimed domain.SessionType, images []domain.ImageFile, apiKey string) (domain.Verdict, error)
}
