package domain

import (
	"fmt"
	"strings"
)

type SessionType string

const (
	SessionMatch        SessionType = "match"
	SessionBallWork     SessionType = "ball_work"
	SessionSpeedAgility SessionType = "speed_agility"
)

// DetectedUnknown marks a classifier answer that matched none of the
// three session types.
const DetectedUnknown = "unknown"

func ParseSessionType(raw string) (SessionType, error) {
	switch SessionType(strings.ToLower(strings.TrimSpace(raw))) {
	case SessionMatch:
		return SessionMatch, nil
	case SessionBallWork:
		return SessionBallWork, nil
	case SessionSpeedAgility:
		return SessionSpeedAgility, nil
	default:
		return "", WrapError(ErrInvalidInput, "parse session type", fmt.Errorf("unknown session type %q", raw))
	}
}

// ImageFile is one uploaded screenshot. The filename is only used to pick
// the media type tag sent upstream.
type ImageFile struct {
	Filename string
	Data     []byte
}

func (f ImageFile) MediaType() string {
	if strings.HasSuffix(strings.ToLower(f.Filename), ".png") {
		return "image/png"
	}
	return "image/jpeg"
}

type Confidence string

const (
	ConfidenceConfident       Confidence = "confident"
	ConfidenceUncertain       Confidence = "uncertain"
	ConfidenceValidationError Confidence = "validation_error"
)

// ExtractionRequest is one extraction job: the session type the caller
// claims, the screenshots, and an optional caller-supplied API key.
type ExtractionRequest struct {
	SessionType SessionType
	Images      []ImageFile
	APIKey      string
}

// Verdict is the classifier's cross-check of the claimed session type
// against what the sampled screenshots actually show.
type Verdict struct {
	DetectedType string     `json:"detected_type"`
	Confidence   Confidence `json:"confidence"`
	Valid        bool       `json:"is_valid"`
}

// Extraction is the orchestrator's output: the canonical record plus the
// raw model response kept for auditing. ModelUsed and FallbackUsed are
// operational detail and never surface to the caller.
type Extraction struct {
	SessionType  SessionType
	Record       SessionRecord
	RawText      string
	Verdict      Verdict
	ModelUsed    string
	FallbackUsed bool
}
