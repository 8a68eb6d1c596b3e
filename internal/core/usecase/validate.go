package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/weljim73-spec/soccertrainerocr/internal/core/domain"
	"github.com/weljim73-spec/soccertrainerocr/internal/core/ports"
)

const classifyMaxTokens = 64

// ValidateSessionUseCase cross-checks the caller's claimed session type
// against a small sample of the uploaded screenshots. It is a soft
// guardrail: any failure of the classification call itself resolves to an
// accepting verdict so the main extraction is never blocked.
type ValidateSessionUseCase struct {
	vision ports.VisionModel
	model  string
}

func NewValidateSessionUseCase(vision ports.VisionModel, model string) *ValidateSessionUseCase {
	return &ValidateSessionUseCase{vision: vision, model: model}
}

func (uc *ValidateSessionUseCase) Validate(ctx context.Context, claimed domain.SessionType, images []domain.ImageFile, apiKey string) (domain.Verdict, error) {
	answer, err := uc.vision.Complete(ctx, ports.CompletionRequest{
		Model:     uc.model,
		Prompt:    classifyPrompt,
		Images:    sampleImages(images),
		MaxTokens: classifyMaxTokens,
		APIKey:    apiKey,
	})
	if err != nil {
		slog.Warn("session_validation_failed",
			"claimed_type", string(claimed),
			"error", err.Error(),
		)
		return domain.Verdict{
			DetectedType: domain.DetectedUnknown,
			Confidence:   domain.ConfidenceValidationError,
			Valid:        true,
		}, nil
	}

	detected, confidence := normalizeAnswer(answer)
	verdict := domain.Verdict{
		DetectedType: detected,
		Confidence:   confidence,
		Valid:        detected == string(claimed),
	}
	slog.Info("session_validation",
		"claimed_type", string(claimed),
		"detected_type", verdict.DetectedType,
		"confidence", string(verdict.Confidence),
		"is_valid", verdict.Valid,
	)
	return verdict, nil
}

// sampleImages picks the first screenshot, plus the middle one when more
// than three were uploaded. Two samples keep the pre-check cheap while
// still catching a mixed batch.
func sampleImages(images []domain.ImageFile) []domain.ImageFile {
	if len(images) <= 3 {
		return images[:1]
	}
	return []domain.ImageFile{images[0], images[len(images)/2]}
}

// normalizeAnswer maps the model's short reply onto a session type label.
// Compound labels are checked first so "match" inside a longer answer
// cannot swallow them.
func normalizeAnswer(answer string) (string, domain.Confidence) {
	s := strings.ToLower(strings.TrimSpace(answer))
	confidence := domain.ConfidenceConfident
	if strings.HasPrefix(s, "uncertain:") {
		confidence = domain.ConfidenceUncertain
		s = strings.TrimSpace(strings.TrimPrefix(s, "uncertain:"))
	}
	switch {
	case strings.Contains(s, "speed") && strings.Contains(s, "agility"):
		return string(domain.SessionSpeedAgility), confidence
	case strings.Contains(s, "ball work") || strings.Contains(s, "ball_work") || strings.Contains(s, "ballwork"):
		return string(domain.SessionBallWork), confidence
	case strings.Contains(s, "match"):
		return string(domain.SessionMatch), confidence
	default:
		return domain.DetectedUnknown, confidence
	}
}

// mismatchOverlap reports whether a confident mismatch falls into the
// known match/ball-work overlap: match screenshots show a superset of the
// ball-work metrics, so the classifier confuses the two in either
// direction and a warning is the right outcome.
func mismatchOverlap(claimed domain.SessionType, detected string) bool {
	pair := map[string]bool{string(claimed): true, detected: true}
	return pair[string(domain.SessionMatch)] && pair[string(domain.SessionBallWork)]
}
