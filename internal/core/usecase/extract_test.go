package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/weljim73-spec/soccertrainerocr/internal/core/domain"
)

type fakeValidator struct {
	verdict domain.Verdict
	claimed domain.SessionType
}

func (f *fakeValidator) Validate(_ context.Context, claimed domain.SessionType, _ []domain.ImageFile, _ string) (domain.Verdict, error) {
	f.claimed = claimed
	return f.verdict, nil
}

func acceptingValidator() *fakeValidator {
	return &fakeValidator{verdict: domain.Verdict{
		DetectedType: string(domain.SessionMatch),
		Confidence:   domain.ConfidenceConfident,
		Valid:        true,
	}}
}

func newExtractUC(vision *fakeVision, validator *fakeValidator) *ExtractSessionUseCase {
	return NewExtractSessionUseCase(vision, validator, "primary", "fallback", ResponseModeJSON, KeyModeUser, "", ExtractLimits{})
}

func matchRequest(n int) domain.ExtractionRequest {
	return domain.ExtractionRequest{
		SessionType: domain.SessionMatch,
		Images:      images(n),
		APIKey:      "user-key",
	}
}

func TestExtractHappyPath(t *testing.T) {
	vision := &fakeVision{responses: []string{`{"goals": 2, "assists": 1}`}}
	uc := newExtractUC(vision, acceptingValidator())

	result, err := uc.Extract(context.Background(), matchRequest(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.FallbackUsed {
		t.Fatalf("fallback must not trigger on success")
	}
	if result.ModelUsed != "primary" {
		t.Fatalf("expected primary model, got %q", result.ModelUsed)
	}
	record, ok := result.Record.(*domain.MatchRecord)
	if !ok {
		t.Fatalf("expected a match record, got %T", result.Record)
	}
	if record.Overview.Goals == nil || *record.Overview.Goals != 2 {
		t.Fatalf("goals not carried through: %+v", record.Overview)
	}
	if vision.calls[0].APIKey != "user-key" {
		t.Fatalf("user key must be forwarded, got %q", vision.calls[0].APIKey)
	}
}

func TestExtractRejectsEmptyUpload(t *testing.T) {
	uc := newExtractUC(&fakeVision{}, acceptingValidator())

	_, err := uc.Extract(context.Background(), domain.ExtractionRequest{SessionType: domain.SessionMatch, APIKey: "k"})
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestExtractEnforcesPerTypeCap(t *testing.T) {
	vision := &fakeVision{responses: []string{`{"top_speed_mph": 15}`}}
	uc := newExtractUC(vision, acceptingValidator())

	req := domain.ExtractionRequest{
		SessionType: domain.SessionSpeedAgility,
		Images:      images(3),
		APIKey:      "k",
	}
	_, err := uc.Extract(context.Background(), req)
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("three screenshots must exceed the speed & agility cap, got %v", err)
	}
	if len(vision.calls) != 0 {
		t.Fatalf("no outbound call expected on a rejected upload")
	}

	// The same batch size is fine for a match session.
	uc2 := newExtractUC(&fakeVision{responses: []string{`{}`}}, acceptingValidator())
	if _, err := uc2.Extract(context.Background(), matchRequest(3)); err != nil {
		t.Fatalf("match session should accept 3 screenshots: %v", err)
	}
}

func TestExtractRejectsOversizedFile(t *testing.T) {
	uc := NewExtractSessionUseCase(&fakeVision{}, acceptingValidator(), "primary", "fallback",
		ResponseModeJSON, KeyModeUser, "", ExtractLimits{MaxFileSizeBytes: 4})

	req := domain.ExtractionRequest{
		SessionType: domain.SessionMatch,
		Images:      []domain.ImageFile{{Filename: "big.png", Data: []byte("too large")}},
		APIKey:      "k",
	}
	_, err := uc.Extract(context.Background(), req)
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for oversized file, got %v", err)
	}
}

func TestExtractUserModeRequiresKey(t *testing.T) {
	uc := newExtractUC(&fakeVision{}, acceptingValidator())

	req := matchRequest(1)
	req.APIKey = ""
	_, err := uc.Extract(context.Background(), req)
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for missing key, got %v", err)
	}
}

func TestExtractServerModeUsesConfiguredKey(t *testing.T) {
	vision := &fakeVision{responses: []string{`{}`}}
	uc := NewExtractSessionUseCase(vision, acceptingValidator(), "primary", "fallback",
		ResponseModeJSON, KeyModeServer, "server-key", ExtractLimits{})

	req := matchRequest(1)
	req.APIKey = "ignored"
	if _, err := uc.Extract(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vision.calls[0].APIKey != "server-key" {
		t.Fatalf("server mode must use the configured key, got %q", vision.calls[0].APIKey)
	}
}

func TestExtractServerModeWithoutKeyFails(t *testing.T) {
	uc := NewExtractSessionUseCase(&fakeVision{}, acceptingValidator(), "primary", "fallback",
		ResponseModeJSON, KeyModeServer, "", ExtractLimits{})

	_, err := uc.Extract(context.Background(), matchRequest(1))
	if !domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("expected temporary error for unconfigured server key, got %v", err)
	}
}

func TestExtractConfidentMismatchRejected(t *testing.T) {
	validator := &fakeValidator{verdict: domain.Verdict{
		DetectedType: string(domain.SessionMatch),
		Confidence:   domain.ConfidenceConfident,
		Valid:        false,
	}}
	vision := &fakeVision{}
	uc := newExtractUC(vision, validator)

	req := domain.ExtractionRequest{SessionType: domain.SessionSpeedAgility, Images: images(1), APIKey: "k"}
	_, err := uc.Extract(context.Background(), req)
	if !domain.IsKind(err, domain.ErrSessionMismatch) {
		t.Fatalf("expected session mismatch, got %v", err)
	}
	if !strings.Contains(err.Error(), "match") {
		t.Fatalf("mismatch error should name the detected type: %v", err)
	}
	if len(vision.calls) != 0 {
		t.Fatalf("extraction must not run after a rejected mismatch")
	}
}

func TestExtractOverlapMismatchProceeds(t *testing.T) {
	validator := &fakeValidator{verdict: domain.Verdict{
		DetectedType: string(domain.SessionBallWork),
		Confidence:   domain.ConfidenceConfident,
		Valid:        false,
	}}
	vision := &fakeVision{responses: []string{`{"goals": 1}`}}
	uc := newExtractUC(vision, validator)

	result, err := uc.Extract(context.Background(), matchRequest(1))
	if err != nil {
		t.Fatalf("match vs ball work overlap must proceed: %v", err)
	}
	if result.Verdict.Valid {
		t.Fatalf("verdict should still report the mismatch")
	}
}

func TestExtractUncertainMismatchProceeds(t *testing.T) {
	validator := &fakeValidator{verdict: domain.Verdict{
		DetectedType: string(domain.SessionMatch),
		Confidence:   domain.ConfidenceUncertain,
		Valid:        false,
	}}
	vision := &fakeVision{responses: []string{`{"ball_touches": 40}`}}
	uc := newExtractUC(vision, validator)

	req := domain.ExtractionRequest{SessionType: domain.SessionBallWork, Images: images(1), APIKey: "k"}
	if _, err := uc.Extract(context.Background(), req); err != nil {
		t.Fatalf("uncertain mismatch must proceed: %v", err)
	}
}

func TestExtractFallsBackOnce(t *testing.T) {
	vision := &fakeVision{
		errs:      []error{errors.New("overloaded")},
		responses: []string{"", `{"goals": 3}`},
	}
	uc := newExtractUC(vision, acceptingValidator())

	result, err := uc.Extract(context.Background(), matchRequest(1))
	if err != nil {
		t.Fatalf("fallback should absorb the primary failure: %v", err)
	}
	if !result.FallbackUsed || result.ModelUsed != "fallback" {
		t.Fatalf("expected fallback attribution, got used=%v model=%q", result.FallbackUsed, result.ModelUsed)
	}
	if len(vision.calls) != 2 {
		t.Fatalf("expected exactly two vision calls, got %d", len(vision.calls))
	}
	if vision.calls[0].Model != "primary" || vision.calls[1].Model != "fallback" {
		t.Fatalf("model tiers out of order: %q then %q", vision.calls[0].Model, vision.calls[1].Model)
	}
	if vision.calls[0].Prompt != vision.calls[1].Prompt {
		t.Fatalf("fallback must reuse the same prompt")
	}
}

func TestExtractBothTiersFail(t *testing.T) {
	rateLimited := domain.WrapError(domain.ErrRateLimited, "messages", errors.New("429"))
	vision := &fakeVision{errs: []error{errors.New("overloaded"), rateLimited}}
	uc := newExtractUC(vision, acceptingValidator())

	_, err := uc.Extract(context.Background(), matchRequest(1))
	if !domain.IsKind(err, domain.ErrRateLimited) {
		t.Fatalf("fallback failure must surface with its kind, got %v", err)
	}
	if len(vision.calls) != 2 {
		t.Fatalf("expected exactly two vision calls, got %d", len(vision.calls))
	}
}

func TestExtractNoFallbackWhenUnconfigured(t *testing.T) {
	vision := &fakeVision{errs: []error{errors.New("overloaded")}}
	uc := NewExtractSessionUseCase(vision, acceptingValidator(), "primary", "",
		ResponseModeJSON, KeyModeUser, "", ExtractLimits{})

	_, err := uc.Extract(context.Background(), matchRequest(1))
	if err == nil {
		t.Fatalf("expected error without a fallback tier")
	}
	if len(vision.calls) != 1 {
		t.Fatalf("no second call expected, got %d", len(vision.calls))
	}
}

func TestExtractTextModeUsesRegexBattery(t *testing.T) {
	ocr := "Morning Session,\nBall Work\nBall Touches: 132\nTop Speed 14.2 mph\n"
	vision := &fakeVision{responses: []string{ocr}}
	uc := NewExtractSessionUseCase(vision, acceptingValidator(), "primary", "fallback",
		ResponseModeText, KeyModeUser, "", ExtractLimits{})

	req := domain.ExtractionRequest{SessionType: domain.SessionBallWork, Images: images(1), APIKey: "k"}
	result, err := uc.Extract(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	record, ok := result.Record.(*domain.BallWorkRecord)
	if !ok {
		t.Fatalf("expected a ball work record, got %T", result.Record)
	}
	if record.Highlights.BallTouches == nil || *record.Highlights.BallTouches != 132 {
		t.Fatalf("ball touches not extracted: %+v", record.Highlights)
	}
	if result.RawText != ocr {
		t.Fatalf("raw text must be preserved verbatim")
	}
	if !strings.Contains(vision.calls[0].Prompt, "ball work session screenshot") {
		t.Fatalf("text mode should use the ball work transcription prompt")
	}
}

func TestExtractMalformedJSONResponse(t *testing.T) {
	vision := &fakeVision{responses: []string{"I could not read the screenshots, sorry."}}
	uc := newExtractUC(vision, acceptingValidator())

	_, err := uc.Extract(context.Background(), matchRequest(1))
	if !domain.IsKind(err, domain.ErrMalformedResponse) {
		t.Fatalf("expected malformed response, got %v", err)
	}
}
