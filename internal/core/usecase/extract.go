package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/weljim73-spec/soccertrainerocr/internal/core/domain"
	"github.com/weljim73-spec/soccertrainerocr/internal/core/normalize"
	"github.com/weljim73-spec/soccertrainerocr/internal/core/ports"
)

const extractMaxTokens = 2048

// ResponseMode selects how the model is asked to reply and how the reply
// is normalized.
type ResponseMode string

const (
	// ResponseModeJSON asks for a single JSON object keyed by the
	// normalizer's binding tables.
	ResponseModeJSON ResponseMode = "json"
	// ResponseModeText asks for a free transcription and runs the regex
	// battery over it.
	ResponseModeText ResponseMode = "text"
)

// KeyModeServer and KeyModeUser select where the upstream credential
// comes from.
const (
	KeyModeServer = "server"
	KeyModeUser   = "user"
)

// ExtractLimits bounds a request before any outbound call is made.
// PerType caps catch an obviously misdeclared session type early: a
// speed & agility session is one or two screens, a ball work session a
// handful, while a match report spans the whole batch.
type ExtractLimits struct {
	MaxFileSizeBytes int64
	MaxFiles         int
	PerType          map[domain.SessionType]int
}

func (l *ExtractLimits) applyDefaults() {
	if l.MaxFileSizeBytes <= 0 {
		l.MaxFileSizeBytes = 10 * 1024 * 1024
	}
	if l.MaxFiles <= 0 {
		l.MaxFiles = 20
	}
	if l.PerType == nil {
		l.PerType = map[domain.SessionType]int{}
	}
	if l.PerType[domain.SessionSpeedAgility] <= 0 {
		l.PerType[domain.SessionSpeedAgility] = 2
	}
	if l.PerType[domain.SessionBallWork] <= 0 {
		l.PerType[domain.SessionBallWork] = 8
	}
	if l.PerType[domain.SessionMatch] <= 0 {
		l.PerType[domain.SessionMatch] = l.MaxFiles
	}
}

// ExtractSessionUseCase sequences validation, classification, the vision
// call with its single fallback tier, and normalization.
type ExtractSessionUseCase struct {
	vision        ports.VisionModel
	validator     ports.SessionValidator
	model         string
	fallbackModel string
	responseMode  ResponseMode
	keyMode       string
	serverAPIKey  string
	limits        ExtractLimits
}

func NewExtractSessionUseCase(
	vision ports.VisionModel,
	validator ports.SessionValidator,
	model string,
	fallbackModel string,
	responseMode ResponseMode,
	keyMode string,
	serverAPIKey string,
	limits ExtractLimits,
) *ExtractSessionUseCase {
	limits.applyDefaults()
	if responseMode != ResponseModeText {
		responseMode = ResponseModeJSON
	}
	if keyMode != KeyModeServer {
		keyMode = KeyModeUser
	}
	return &ExtractSessionUseCase{
		vision:        vision,
		validator:     validator,
		model:         model,
		fallbackModel: fallbackModel,
		responseMode:  responseMode,
		keyMode:       keyMode,
		serverAPIKey:  serverAPIKey,
		limits:        limits,
	}
}

func (uc *ExtractSessionUseCase) Extract(ctx context.Context, req domain.ExtractionRequest) (*domain.Extraction, error) {
	if err := uc.validateInput(req); err != nil {
		return nil, err
	}

	apiKey, err := uc.resolveAPIKey(req.APIKey)
	if err != nil {
		return nil, err
	}

	verdict, err := uc.checkSessionType(ctx, req, apiKey)
	if err != nil {
		return nil, err
	}

	raw, modelUsed, fellBack, err := uc.callVision(ctx, req, apiKey)
	if err != nil {
		return nil, err
	}

	record, err := uc.normalizeResponse(req.SessionType, raw)
	if err != nil {
		return nil, err
	}

	return &domain.Extraction{
		SessionType:  req.SessionType,
		Record:       record,
		RawText:      raw,
		Verdict:      verdict,
		ModelUsed:    modelUsed,
		FallbackUsed: fellBack,
	}, nil
}

func (uc *ExtractSessionUseCase) validateInput(req domain.ExtractionRequest) error {
	if len(req.Images) == 0 {
		return domain.WrapError(domain.ErrInvalidInput, "validate upload", errors.New("no images provided"))
	}
	if len(req.Images) > uc.limits.MaxFiles {
		return domain.WrapError(domain.ErrInvalidInput, "validate upload",
			fmt.Errorf("too many files: %d, maximum %d allowed", len(req.Images), uc.limits.MaxFiles))
	}
	if typeMax, ok := uc.limits.PerType[req.SessionType]; ok && len(req.Images) > typeMax {
		return domain.WrapError(domain.ErrInvalidInput, "validate upload",
			fmt.Errorf("too many files for a %s session: %d, maximum %d allowed", req.SessionType, len(req.Images), typeMax))
	}
	for _, img := range req.Images {
		if int64(len(img.Data)) > uc.limits.MaxFileSizeBytes {
			return domain.WrapError(domain.ErrInvalidInput, "validate upload",
				fmt.Errorf("file %s exceeds %dMB limit", img.Filename, uc.limits.MaxFileSizeBytes/1024/1024))
		}
		if len(img.Data) == 0 {
			return domain.WrapError(domain.ErrInvalidInput, "validate upload",
				fmt.Errorf("file %s is empty", img.Filename))
		}
	}
	return nil
}

func (uc *ExtractSessionUseCase) resolveAPIKey(formKey string) (string, error) {
	if uc.keyMode == KeyModeServer {
		if uc.serverAPIKey == "" {
			return "", domain.WrapError(domain.ErrTemporary, "resolve credential", errors.New("server api key not configured"))
		}
		return uc.serverAPIKey, nil
	}
	if formKey == "" {
		return "", domain.WrapError(domain.ErrInvalidInput, "resolve credential", errors.New("api key is required"))
	}
	return formKey, nil
}

func (uc *ExtractSessionUseCase) checkSessionType(ctx context.Context, req domain.ExtractionRequest, apiKey string) (domain.Verdict, error) {
	verdict, err := uc.validator.Validate(ctx, req.SessionType, req.Images, apiKey)
	if err != nil {
		// The validator itself fails open; an error here would be a
		// programming mistake, treated the same way.
		verdict = domain.Verdict{
			DetectedType: domain.DetectedUnknown,
			Confidence:   domain.ConfidenceValidationError,
			Valid:        true,
		}
	}
	if verdict.Valid || verdict.Confidence != domain.ConfidenceConfident {
		if !verdict.Valid {
			slog.Warn("session_type_uncertain_mismatch",
				"claimed_type", string(req.SessionType),
				"detected_type", verdict.DetectedType,
			)
		}
		return verdict, nil
	}
	if mismatchOverlap(req.SessionType, verdict.DetectedType) {
		slog.Warn("session_type_overlap_mismatch",
			"claimed_type", string(req.SessionType),
			"detected_type", verdict.DetectedType,
		)
		return verdict, nil
	}
	return verdict, domain.WrapError(domain.ErrSessionMismatch, "validate session type",
		fmt.Errorf("screenshots look like a %s session, not %s", verdict.DetectedType, req.SessionType))
}

// callVision runs the extraction call against the primary model and, on
// any error, retries exactly once with the fallback model using the same
// prompt and images. That retry is the system's only retry policy.
func (uc *ExtractSessionUseCase) callVision(ctx context.Context, req domain.ExtractionRequest, apiKey string) (string, string, bool, error) {
	prompt := uc.buildPrompt(req.SessionType)
	creq := ports.CompletionRequest{
		Model:     uc.model,
		Prompt:    prompt,
		Images:    req.Images,
		MaxTokens: extractMaxTokens,
		APIKey:    apiKey,
	}

	raw, err := uc.vision.Complete(ctx, creq)
	if err == nil {
		return raw, uc.model, false, nil
	}
	if uc.fallbackModel == "" || uc.fallbackModel == uc.model {
		return "", "", false, fmt.Errorf("vision extraction: %w", err)
	}

	slog.Warn("vision_fallback",
		"primary_model", uc.model,
		"fallback_model", uc.fallbackModel,
		"error", err.Error(),
	)
	creq.Model = uc.fallbackModel
	raw, ferr := uc.vision.Complete(ctx, creq)
	if ferr != nil {
		return "", "", false, fmt.Errorf("vision extraction (fallback): %w", ferr)
	}
	return raw, uc.fallbackModel, true, nil
}

func (uc *ExtractSessionUseCase) buildPrompt(sessionType domain.SessionType) string {
	if uc.responseMode == ResponseModeText {
		return textPrompt(sessionType)
	}
	return jsonPrompt(sessionType)
}

func (uc *ExtractSessionUseCase) normalizeResponse(sessionType domain.SessionType, raw string) (domain.SessionRecord, error) {
	if uc.responseMode == ResponseModeText {
		return normalize.RecordFromText(sessionType, raw), nil
	}
	record, err := uc.normalizeJSON(sessionType, raw)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (uc *ExtractSessionUseCase) normalizeJSON(sessionType domain.SessionType, raw string) (domain.SessionRecord, error) {
	if flat, err := normalize.FlatObject(raw); err == nil {
		if werr := normalize.CheckFlat(sessionType, flat); werr != nil {
			slog.Warn("extraction_schema_mismatch",
				"session_type", string(sessionType),
				"error", werr.Error(),
			)
		}
	}
	record, err := normalize.RecordFromJSON(sessionType, raw)
	if err != nil {
		return nil, fmt.Errorf("normalize extraction: %w", err)
	}
	return record, nil
}
